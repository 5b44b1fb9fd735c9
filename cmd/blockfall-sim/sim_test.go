package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/blockfall/tetris"
)

func TestChooseCompletesLine(t *testing.T) {
	board := tetris.NewBoard(20, 10)
	for c := range 10 {
		if c < 3 || c > 6 {
			board.Set(19, c, 1)
		}
	}

	p, ok := choose(board, tetris.NewPiece(tetris.KindI, 10))
	require.True(t, ok)
	assert.Equal(t, 3, p.x)
	assert.Equal(t, 0, p.rotations%2)
}

func TestPlayMovesToTarget(t *testing.T) {
	engine, err := tetris.New(tetris.Options{Source: tetris.NewSource(9)})
	require.NoError(t, err)
	engine.Start()

	play(engine, placement{x: 0})
	assert.Equal(t, 0, engine.Current().X)
}

func TestBotClearsLines(t *testing.T) {
	engine, err := tetris.New(tetris.Options{Source: tetris.NewSource(1)})
	require.NoError(t, err)
	engine.Start()

	for range 200 {
		if engine.Status() != tetris.StatusRunning {
			break
		}
		if p, ok := choose(engine.Board(), engine.Current()); ok {
			play(engine, p)
		}
		engine.HardDrop()
	}

	assert.Greater(t, engine.Lines(), 0)
}

func TestReport(t *testing.T) {
	r := &Report{
		Difficulty: "easy",
		Games: []GameResult{
			{Seed: 1, Score: 300, Lines: 3, Level: 1, Pieces: 40, Over: true},
			{Seed: 2, Score: 900, Lines: 9, Level: 1, Pieces: 70},
			{Seed: 3, Score: 100, Lines: 1, Level: 1, Pieces: 20, Over: true},
		},
		Counts: map[tetris.Kind]int{tetris.KindI: 1, tetris.KindO: 3},
	}
	r.Finalize()

	assert.Equal(t, 900, r.BestScore)
	assert.Equal(t, 300, r.MedianScore)
	assert.Equal(t, 2, r.ToppedOut)
	assert.InDelta(t, 13.0/3, r.AvgLines, 1e-9)
	require.Len(t, r.KindRows, tetris.KindCount)
	assert.Equal(t, 75.0, r.KindRows[1].Share)

	var buf bytes.Buffer
	require.NoError(t, r.Generate(&buf))
	assert.Contains(t, buf.String(), "| O | 3 | 75.00% |")
	assert.Contains(t, buf.String(), "**Games Played:** 3")
}
