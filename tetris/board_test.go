package tetris_test

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/plus3/blockfall/tetris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fillRow(b *tetris.Board, row int, c tetris.Cell, except ...int) {
	skip := make(map[int]bool, len(except))
	for _, col := range except {
		skip[col] = true
	}
	for col := range b.Cols() {
		if !skip[col] {
			b.Set(row, col, c)
		}
	}
}

func TestNewBoard(t *testing.T) {
	b := tetris.NewBoard(20, 10)

	assert.Equal(t, 20, b.Rows())
	assert.Equal(t, 10, b.Cols())
	assert.True(t, b.IsEmpty())

	cells := b.Cells()
	require.Len(t, cells, 20)
	for _, row := range cells {
		assert.Len(t, row, 10)
	}
}

func TestBoardOutOfRange(t *testing.T) {
	b := tetris.NewBoard(4, 4)
	b.Set(-1, 0, 3)
	b.Set(0, 4, 3)
	b.Set(4, 0, 3)

	assert.True(t, b.IsEmpty())
	assert.Equal(t, tetris.Cell(0), b.At(-1, 0))
	assert.Equal(t, tetris.Cell(0), b.At(0, 99))
}

func TestCanPlaceBounds(t *testing.T) {
	b := tetris.NewBoard(20, 10)
	square := tetris.KindO.Shape()

	tests := []struct {
		name string
		x, y int
		want bool
	}{
		{"origin", 0, 0, true},
		{"right edge", 8, 0, true},
		{"past right edge", 9, 0, false},
		{"past left edge", -1, 0, false},
		{"bottom", 0, 18, true},
		{"past bottom", 0, 19, false},
		{"partly above top", 0, -1, true},
		{"fully above top", 0, -5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, b.CanPlace(square, tt.x, tt.y))
		})
	}
}

func TestCanPlaceOverlap(t *testing.T) {
	b := tetris.NewBoard(20, 10)
	b.Set(10, 5, 1)

	tee := tetris.KindT.Shape() // ### / .#.
	assert.False(t, b.CanPlace(tee, 4, 9), "stem lands on occupied cell")
	assert.False(t, b.CanPlace(tee, 3, 10), "bar covers occupied cell")
	assert.True(t, b.CanPlace(tee, 5, 9), "stem beside occupied cell")
	assert.True(t, b.CanPlace(tee, 4, 8))
}

// canPlace must be false exactly when an occupied cell leaves the columns,
// reaches past the floor, or hits an occupied cell on the board.
func TestCanPlaceMatchesDefinition(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	b := tetris.NewBoard(20, 10)
	for range 60 {
		b.Set(rng.IntN(20), rng.IntN(10), tetris.Cell(rng.IntN(7)+1))
	}

	for _, kind := range tetris.Kinds() {
		shape := kind.Shape()
		for range 4 {
			for y := -4; y <= 21; y++ {
				for x := -4; x <= 11; x++ {
					want := true
					for dy, row := range shape {
						for dx, filled := range row {
							if !filled {
								continue
							}
							col, r := x+dx, y+dy
							if col < 0 || col >= 10 || r >= 20 || (r >= 0 && !b.At(r, col).Empty()) {
								want = false
							}
						}
					}
					require.Equal(t, want, b.CanPlace(shape, x, y), "kind %s at (%d,%d)", kind, x, y)
				}
			}
			shape = shape.Rotate()
		}
	}
}

func TestMergeDropsCellsAboveTop(t *testing.T) {
	b := tetris.NewBoard(20, 10)
	p := tetris.Piece{Kind: tetris.KindO, Shape: tetris.KindO.Shape(), X: 2, Y: -1}

	b.Merge(p)

	assert.Equal(t, tetris.KindO.Color(), b.At(0, 2))
	assert.Equal(t, tetris.KindO.Color(), b.At(0, 3))
	assert.Equal(t, tetris.Cell(0), b.At(1, 2))
}

func TestClearLines(t *testing.T) {
	t.Run("no complete rows", func(t *testing.T) {
		b := tetris.NewBoard(6, 4)
		fillRow(b, 5, 1, 0)
		assert.Equal(t, 0, b.ClearLines())
		assert.Equal(t, tetris.Cell(1), b.At(5, 1))
	})

	t.Run("single row leaves board empty", func(t *testing.T) {
		b := tetris.NewBoard(20, 10)
		fillRow(b, 19, 2)
		assert.Equal(t, 1, b.ClearLines())
		assert.True(t, b.IsEmpty())
	})

	t.Run("adjacent rows rechecked at same index", func(t *testing.T) {
		b := tetris.NewBoard(6, 4)
		b.Set(2, 0, 5)      // marker above the stack
		fillRow(b, 3, 4, 1) // partial
		fillRow(b, 4, 1)    // full
		fillRow(b, 5, 2)    // full

		assert.Equal(t, 2, b.ClearLines())

		assert.Equal(t, tetris.Cell(5), b.At(4, 0), "marker shifted down two rows")
		assert.Equal(t, tetris.Cell(4), b.At(5, 0))
		assert.Equal(t, tetris.Cell(0), b.At(5, 1))
		assert.Equal(t, tetris.Cell(4), b.At(5, 2))
		for r := range 4 {
			for c := range 4 {
				assert.True(t, b.At(r, c).Empty(), "row %d col %d", r, c)
			}
		}
	})

	t.Run("split rows keep relative order", func(t *testing.T) {
		b := tetris.NewBoard(8, 4)
		fillRow(b, 3, 1)
		fillRow(b, 4, 3, 2)
		fillRow(b, 5, 1)
		fillRow(b, 6, 6, 0)
		fillRow(b, 7, 1)

		assert.Equal(t, 3, b.ClearLines())

		assert.Equal(t, tetris.Cell(3), b.At(6, 0))
		assert.True(t, b.At(6, 2).Empty())
		assert.True(t, b.At(7, 0).Empty())
		assert.Equal(t, tetris.Cell(6), b.At(7, 1))
		for r := range 6 {
			for c := range 4 {
				assert.True(t, b.At(r, c).Empty(), fmt.Sprintf("row %d col %d", r, c))
			}
		}
	})
}

func TestCloneIsIndependent(t *testing.T) {
	b := tetris.NewBoard(4, 4)
	c := b.Clone()
	c.Set(0, 0, 1)

	assert.True(t, b.IsEmpty())
	assert.False(t, c.IsEmpty())
}
