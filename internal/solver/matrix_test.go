package solver

import (
	"math/bits"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMatrixPushRowMaintainsSemiCanonicalForm(t *testing.T) {
	var m matrix
	rows := []uint32{
		0x00000003,
		0x00000005,
		0x80000009, // affine bit set
		0x0000000A,
	}
	for _, r := range rows {
		m.PushRow(r)
	}
	for k := 0; k < matrixSize; k++ {
		row := m.Row(k)
		if row == 0 {
			continue
		}
		pivot := bits.TrailingZeros32(row)
		require.Equal(t, k, pivot, "row %d has pivot at column %d", k, pivot)
		for other := 0; other < matrixSize; other++ {
			if other == k {
				continue
			}
			require.Zero(t, m.Row(other)&(1<<uint(k)), "row %d still has bit %d set after pivoting on it", other, k)
		}
	}
}

func TestMatrixPushRowRejectsDependentRows(t *testing.T) {
	var m matrix
	require.True(t, m.PushRow(0b0011))
	require.True(t, m.PushRow(0b0101))
	// 0b0011 ^ 0b0101 == 0b0110, already representable, so pushing it adds nothing.
	require.False(t, m.PushRow(0b0110))
}

func TestMatrixRowSumIdempotence(t *testing.T) {
	var m matrix
	m.PushRow(0b1011)
	m.PushRow(0b0101)
	m.PushRow(0b1100)

	var x uint32
	for i := 0; i < 50000; i++ { // sparse sweep over selectors; x wraps around past 2^32
		sum := m.RowSum(x)
		require.False(t, m.PushRow(sum), "push_row(row_sum(%#x)) should be a no-op", x)
		x += 104173
	}
}

func TestMatrixRankMatchesNonzeroRowCount(t *testing.T) {
	var m matrix
	rank := 0
	candidates := []uint32{1, 2, 4, 8, 3, 16, 32, 64, 1 | 1<<31}
	for _, c := range candidates {
		if m.PushRow(c) {
			rank++
		}
	}
	nonzero := 0
	for k := 0; k < matrixSize; k++ {
		if m.Row(k) != 0 {
			nonzero++
		}
	}
	require.Equal(t, rank, nonzero)
}
