package solver

import "math/bits"

// matrixSize is the dimension of the GF(2) equation matrix: 31 unknown
// initial-state parities plus one affine column (bit 31 of every row).
const matrixSize = 32

// matrix is a 32x32 bit-matrix over GF(2) kept in semi-canonical form:
// every nonzero row has its least-significant set bit at a column index
// equal to its own row index, with zero rows permitted between pivots.
// Rank equals the number of nonzero rows, and the nonzero rows always
// span the same subspace as every row ever pushed.
type matrix struct {
	rows [matrixSize]uint32
}

// Row returns the row at index.
func (m *matrix) Row(index int) uint32 { return m.rows[index] }

// RowSum XORs together every row m.rows[k] for which bit k of select is
// set. Expressed as a fixed 32-iteration masked-XOR reduction with no
// data-dependent branching: each row's mask is built from its selector
// bit by arithmetic negation.
func (m *matrix) RowSum(select_ uint32) uint32 {
	var result uint32
	for i := 0; i < matrixSize; i++ {
		mask := -((select_ >> uint(i)) & 1)
		result ^= mask & m.rows[i]
	}
	return result
}

// PushRow attempts to insert row into the matrix. It returns true if
// and only if row added new information, i.e. it was not already a
// linear combination of rows present, in which case rank increases by
// one.
func (m *matrix) PushRow(row uint32) bool {
	reduced := row ^ m.RowSum(row)
	if reduced == 0 {
		return false
	}

	pivot := bits.TrailingZeros32(reduced)
	// m.rows[pivot] is necessarily zero here: RowSum(reduced) would
	// otherwise have eliminated this bit.

	for i := 0; i < matrixSize; i++ {
		mask := -((m.rows[i] >> uint(pivot)) & 1)
		m.rows[i] ^= mask & reduced
	}
	m.rows[pivot] = reduced

	return true
}
