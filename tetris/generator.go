package tetris

import (
	"math/rand/v2"
	"time"

	"github.com/kamstrup/intmap"
)

// RandomSource picks an integer in [0, n). *rand.Rand from math/rand/v2
// satisfies it.
type RandomSource interface {
	IntN(n int) int
}

// NewSource returns a deterministic PCG source for the given seed.
func NewSource(seed uint64) RandomSource {
	return rand.New(rand.NewPCG(seed, 0))
}

// Generator produces randomized pieces for a board of a fixed width.
// It keeps per-kind spawn counts for statistics displays.
type Generator struct {
	cols   int
	src    RandomSource
	counts *intmap.Map[Kind, int]
	total  int
}

// NewGenerator creates a generator for boards with cols columns. A nil source
// is replaced by one seeded from the clock.
func NewGenerator(cols int, src RandomSource) *Generator {
	if src == nil {
		src = NewSource(uint64(time.Now().UnixNano()))
	}
	return &Generator{
		cols:   cols,
		src:    src,
		counts: intmap.New[Kind, int](KindCount),
	}
}

// Next selects a kind uniformly at random and returns it as a spawned piece.
func (g *Generator) Next() Piece {
	kind := Kind(g.src.IntN(KindCount))

	n, _ := g.counts.Get(kind)
	g.counts.Put(kind, n+1)
	g.total++

	return NewPiece(kind, g.cols)
}

// Counts returns how many pieces of each kind were generated since the last
// Reset. Kinds never generated are absent.
func (g *Generator) Counts() map[Kind]int {
	out := make(map[Kind]int, g.counts.Len())
	g.counts.ForEach(func(k Kind, n int) bool {
		out[k] = n
		return true
	})
	return out
}

// Total returns the number of pieces generated since the last Reset.
func (g *Generator) Total() int {
	return g.total
}

// Reset clears the statistics. The random source is left untouched.
func (g *Generator) Reset() {
	g.counts = intmap.New[Kind, int](KindCount)
	g.total = 0
}
