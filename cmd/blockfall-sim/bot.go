package main

import (
	"math"

	"github.com/plus3/blockfall/tetris"
)

// placement is a target orientation and column for the active piece.
type placement struct {
	rotations int
	x         int
	score     float64
}

// Heuristic weights for the greedy placement bot.
const (
	weightLines     = 0.76
	weightHeight    = -0.51
	weightHoles     = -0.36
	weightBumpiness = -0.18
)

// choose evaluates every rotation and column for the current piece on a
// scratch copy of the board and returns the best one.
func choose(board *tetris.Board, piece tetris.Piece) (placement, bool) {
	best := placement{score: math.Inf(-1)}
	found := false

	shape := piece.Shape
	for r := range 4 {
		for x := -shape.Width(); x < board.Cols()+shape.Width(); x++ {
			if !board.CanPlace(shape, x, piece.Y) {
				continue
			}
			y := piece.Y
			for board.CanPlace(shape, x, y+1) {
				y++
			}

			trial := board.Clone()
			trial.Merge(tetris.Piece{Kind: piece.Kind, Shape: shape, X: x, Y: y})
			lines := trial.ClearLines()

			score := evaluate(trial, lines)
			if score > best.score {
				best = placement{rotations: r, x: x, score: score}
				found = true
			}
		}
		shape = shape.Rotate()
	}

	return best, found
}

func evaluate(b *tetris.Board, lines int) float64 {
	heights := make([]int, b.Cols())
	holes := 0

	for c := range b.Cols() {
		seen := false
		for r := range b.Rows() {
			if !b.At(r, c).Empty() {
				if !seen {
					heights[c] = b.Rows() - r
					seen = true
				}
			} else if seen {
				holes++
			}
		}
	}

	aggregate, bumpiness := 0, 0
	for c, h := range heights {
		aggregate += h
		if c > 0 {
			bumpiness += abs(h - heights[c-1])
		}
	}

	return weightLines*float64(lines) +
		weightHeight*float64(aggregate) +
		weightHoles*float64(holes) +
		weightBumpiness*float64(bumpiness)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// play steers the engine's current piece towards p. Rejected rotations or
// moves leave the piece where the engine allows it to be.
func play(engine *tetris.Engine, p placement) {
	for range p.rotations {
		if !engine.Rotate() {
			break
		}
	}

	for engine.Current().X < p.x && engine.MoveRight() {
	}
	for engine.Current().X > p.x && engine.MoveLeft() {
	}
}
