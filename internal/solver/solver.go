// Package solver implements an incremental GF(2) Gaussian-elimination
// engine that reconstructs the internal state of a prng.Generator from
// a live stream of its outputs.
//
// The approach exploits a bit-level carry observation: three state
// words s_i, s_{i-3}, s_{i-31} satisfying s_i = s_{i-3} + s_{i-31}
// (mod 2^32) make their outputs (o_j = s_j >> 1) satisfy the same
// recurrence modulo 2^31, except when the low bits of both source
// words are 1, where an extra carry of 1 appears. Detecting that
// off-by-one from the observed outputs reveals that s_{i-3} and
// s_{i-31} were both odd, and since every state parity is a fixed
// GF(2) linear combination of the 31 initial parities, each such
// carry yields two linear equations. Once 31 independent equations
// accumulate, the system inverts directly into the full state.
package solver

import (
	"math/bits"

	"github.com/surrealwaffle/predicting-random/internal/buffer"
	"github.com/surrealwaffle/predicting-random/internal/prng"
)

const windowSize = 31

// Solver consumes generator output one value at a time via Feed and,
// once it has accumulated 31 independent parity constraints,
// reconstructs an equivalent generator.
//
// The zero value is not usable; construct one with New. A solver that
// has already yielded a generator must not be reused.
type Solver struct {
	history *buffer.Ring[uint32] // most recent observed outputs
	parity  *buffer.Ring[uint32] // symbolic parity of current-generation state words

	rank int
	eqs  matrix
}

// New constructs a solver ready to be fed output, with its symbolic
// parity window pre-seeded to match the 310-step warm-up every
// prng.Generator performs after seed expansion.
func New() *Solver {
	s := &Solver{
		history: buffer.New[uint32](windowSize),
		parity:  buffer.New[uint32](windowSize),
	}

	for k := 0; k < windowSize; k++ {
		s.parity.Push(uint32(1) << uint(k))
	}
	for i := 0; i < 3; i++ {
		s.parity.Push(s.parity.At(0))
	}
	for i := 0; i < 310; i++ {
		s.parity.Push(s.parity.At(-3) ^ s.parity.At(-31))
	}

	return s
}

// Feed consumes one generator output in [0, 2^31). It returns a
// reconstructed generator and true once rank reaches 31; otherwise it
// returns the zero generator and false.
//
// Feed must be called with outputs in the exact order the target
// generator produced them. Driving it with ill-formed input (a value
// outside [0, 2^31) or inconsistent with the carry invariant) is a
// programming error and panics rather than returning a sentinel error.
func (s *Solver) Feed(v uint32) (prng.Generator, bool) {
	if v > prng.Max() {
		panic("solver: output out of range")
	}

	if s.history.Len() < windowSize {
		s.history.Push(v)
		s.parity.Push(s.parity.At(-3) ^ s.parity.At(-31))
		return prng.Generator{}, false
	}

	o3 := s.history.At(-3)
	o31 := s.history.At(-31)
	q3 := s.parity.At(-3)
	q31 := s.parity.At(-31)

	s.history.Push(v)
	s.parity.Push(q3 ^ q31)

	expected := (o3 + o31) % (1 << 31)
	if v == expected {
		return prng.Generator{}, false
	}
	if v != (expected+1)%(1<<31) {
		panic("solver: output inconsistent with carry invariant")
	}

	if s.push(q31, true) || s.push(q3, true) {
		return s.solve(), true
	}
	return prng.Generator{}, false
}

// push records the equation
//
//	XOR_{k: bit k of coefficients set}(p_k) = affine  (mod 2)
//
// and reports whether the system has become solvable, i.e. rank == 31.
func (s *Solver) push(coefficients uint32, affine bool) bool {
	row := coefficients
	if affine {
		row |= 1 << 31
	}
	if s.eqs.PushRow(row) {
		s.rank++
	}
	return s.rank == 31
}

// solve reconstructs the target generator. The caller must have
// already reached rank 31.
func (s *Solver) solve() prng.Generator {
	initialParities := s.solveInitialParities()

	var currentParities uint32
	s.parity.Each(func(i int, q uint32) {
		bit := uint32(bits.OnesCount32(q&initialParities) % 2)
		currentParities |= bit << uint(i)
	})

	var table [windowSize]uint32
	remaining := currentParities
	s.history.Each(func(i int, o uint32) {
		table[i] = (o << 1) | (remaining & 1)
		remaining >>= 1
	})

	return prng.NewGeneratorFromTable(table)
}

// solveInitialParities extracts the 31 initial-state parities from the
// now-rank-31 matrix. Because the matrix is semi-canonical, every row
// present has reduced to at most one variable coefficient (its own
// diagonal bit) plus possibly the affine bit; this is asserted rather
// than re-derived with an extra elimination pass.
func (s *Solver) solveInitialParities() uint32 {
	var initial uint32
	for k := 0; k < matrixSize; k++ {
		row := s.eqs.Row(k)
		if bits.OnesCount32(row) > 2 {
			panic("solver: matrix row carries more than one variable after full reduction")
		}
		initial |= (row >> 31) << uint(k)
	}
	return initial
}

// Rank reports the number of independent equations accumulated so far,
// in [0, 31].
func (s *Solver) Rank() int { return s.rank }
