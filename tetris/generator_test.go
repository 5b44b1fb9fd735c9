package tetris_test

import (
	"testing"

	"github.com/plus3/blockfall/tetris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedSource replays a list of kinds, wrapping around.
type fixedSource struct {
	kinds []tetris.Kind
	i     int
}

func (s *fixedSource) IntN(n int) int {
	k := s.kinds[s.i%len(s.kinds)]
	s.i++
	return int(k) % n
}

func TestGeneratorSpawnPosition(t *testing.T) {
	for _, kind := range tetris.Kinds() {
		t.Run(kind.String(), func(t *testing.T) {
			gen := tetris.NewGenerator(10, &fixedSource{kinds: []tetris.Kind{kind}})
			p := gen.Next()

			assert.Equal(t, kind, p.Kind)
			assert.Equal(t, (10-p.Shape.Width())/2, p.X)
			assert.Equal(t, 0, p.Y)
			assert.True(t, p.Shape.Equal(kind.Shape()))
		})
	}
}

func TestGeneratorSpawnColumns(t *testing.T) {
	gen := tetris.NewGenerator(10, &fixedSource{kinds: []tetris.Kind{tetris.KindI, tetris.KindO, tetris.KindT}})

	assert.Equal(t, 3, gen.Next().X)
	assert.Equal(t, 4, gen.Next().X)
	assert.Equal(t, 3, gen.Next().X)
}

func TestGeneratorDeterministic(t *testing.T) {
	a := tetris.NewGenerator(10, tetris.NewSource(42))
	b := tetris.NewGenerator(10, tetris.NewSource(42))

	for range 100 {
		assert.Equal(t, a.Next().Kind, b.Next().Kind)
	}
}

func TestGeneratorPiecesDoNotAlias(t *testing.T) {
	gen := tetris.NewGenerator(10, &fixedSource{kinds: []tetris.Kind{tetris.KindO}})
	first := gen.Next()
	first.Shape[0][0] = false

	second := gen.Next()
	assert.True(t, second.Shape[0][0])
}

func TestGeneratorCounts(t *testing.T) {
	gen := tetris.NewGenerator(10, tetris.NewSource(3))

	const draws = 7000
	for range draws {
		gen.Next()
	}

	counts := gen.Counts()
	require.Len(t, counts, tetris.KindCount)
	assert.Equal(t, draws, gen.Total())

	sum := 0
	for _, kind := range tetris.Kinds() {
		n := counts[kind]
		sum += n
		// expected 1000 per kind; generous bounds keep this stable
		assert.InDelta(t, 1000, n, 200, "kind %s", kind)
	}
	assert.Equal(t, draws, sum)

	gen.Reset()
	assert.Empty(t, gen.Counts())
	assert.Zero(t, gen.Total())
}

func TestGeneratorNilSource(t *testing.T) {
	gen := tetris.NewGenerator(10, nil)
	p := gen.Next()
	assert.Less(t, int(p.Kind), tetris.KindCount)
}
