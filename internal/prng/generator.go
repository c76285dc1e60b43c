// Package prng implements a faithful model of the additive
// lagged-Fibonacci generator used by glibc's random() in its default
// configuration ("TYPE_3"): 31 words of state, updated as
// s_i = s_{i-3} + s_{i-31} (mod 2^32), with the low bit of the state
// word discarded on output.
package prng

import "github.com/surrealwaffle/predicting-random/internal/buffer"

const (
	tableSize = 31

	// parkMillerMultiplier and parkMillerModulus parameterize the
	// Lehmer/Park-Miller step used to expand a seed into the first 31
	// state words.
	parkMillerMultiplier = 16807
	parkMillerModulus    = 2147483647 // 2^31 - 1
)

// Generator holds the 31-word state table of a TYPE_3 generator.
type Generator struct {
	table *buffer.Ring[uint32]
}

// Min is the smallest output Generator ever produces.
func Min() uint32 { return 0 }

// Max is the largest output Generator ever produces: (2^32-1)>>1.
func Max() uint32 { return (1<<32 - 1) >> 1 }

// NewGenerator constructs a generator from a nonzero 32-bit seed,
// performing the Park-Miller seed expansion, the three-word extension,
// and the 310-step warm-up. A zero seed is unsupported (spec §9) and
// panics rather than silently producing a degenerate table.
func NewGenerator(seed uint32) Generator {
	if seed == 0 {
		panic("prng: zero seed is unsupported")
	}

	table := buffer.New[uint32](tableSize)
	table.Push(seed)
	prev := seed
	for i := 1; i < tableSize; i++ {
		prev = parkMillerStep(prev)
		table.Push(prev)
	}

	// extend by three: push s0, s1, s2 again, evicting the oldest three.
	for i := 0; i < 3; i++ {
		table.Push(table.At(0))
	}

	g := Generator{table: table}
	for i := 0; i < 310; i++ {
		g.Advance()
	}
	return g
}

// NewGeneratorFromTable adopts the given 31 words verbatim as the
// generator's state, performing no warm-up. table[0] is the oldest
// retained word, table[30] the most recent.
func NewGeneratorFromTable(table [tableSize]uint32) Generator {
	r := buffer.New[uint32](tableSize)
	for _, v := range table {
		r.Push(v)
	}
	return Generator{table: r}
}

// parkMillerStep computes the next Lehmer sequence value from prev,
// using signed 64-bit arithmetic modulo 2^31-1 as required when prev's
// signed interpretation is negative.
func parkMillerStep(prev uint32) uint32 {
	v := (int64(parkMillerMultiplier) * int64(int32(prev))) % parkMillerModulus
	if v < 0 {
		v += parkMillerModulus
	}
	return uint32(v)
}

// PeekState returns the next internal state word without mutating the
// generator.
func (g Generator) PeekState() uint32 {
	return g.table.At(-3) + g.table.At(-31)
}

// PeekOutput returns the next output without mutating the generator.
func (g Generator) PeekOutput() uint32 {
	return g.PeekState() >> 1
}

// Advance generates the next state word, pushes it into the table
// (evicting the oldest), and returns the corresponding output.
func (g *Generator) Advance() uint32 {
	next := g.PeekState()
	g.table.Push(next)
	return next >> 1
}

// StateAt returns the state word at offset, using the same
// negative-indexed convention as the rest of this module: a negative
// offset counts back from the most recently pushed word (-1), a
// non-negative offset counts forward from the oldest retained word (0).
func (g Generator) StateAt(offset int) uint32 {
	return g.table.At(offset)
}

// Table returns the 31 state words in chronological order, oldest
// first.
func (g Generator) Table() [tableSize]uint32 {
	var out [tableSize]uint32
	copy(out[:], g.table.Snapshot())
	return out
}

// Equal reports whether g and other hold the same 31-word table in the
// same cyclic order.
func (g Generator) Equal(other Generator) bool {
	return g.Table() == other.Table()
}
