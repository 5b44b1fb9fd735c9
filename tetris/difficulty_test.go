package tetris_test

import (
	"errors"
	"testing"
	"time"

	"github.com/plus3/blockfall/tetris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupDifficulty(t *testing.T) {
	tests := []struct {
		name       string
		initial    time.Duration
		increase   time.Duration
		multiplier float64
	}{
		{"easy", 1000 * time.Millisecond, 50 * time.Millisecond, 1},
		{"medium", 750 * time.Millisecond, 75 * time.Millisecond, 1.5},
		{"hard", 500 * time.Millisecond, 100 * time.Millisecond, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := tetris.LookupDifficulty(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.initial, d.InitialSpeed)
			assert.Equal(t, tt.increase, d.SpeedIncrease)
			assert.Equal(t, tt.multiplier, d.ScoreMultiplier)
			assert.NoError(t, d.Validate())
		})
	}

	assert.Equal(t, []string{"easy", "hard", "medium"}, tetris.DifficultyNames())
}

func TestLookupUnknownDifficulty(t *testing.T) {
	_, err := tetris.LookupDifficulty("nightmare")
	require.Error(t, err)
	assert.True(t, errors.Is(err, tetris.ErrUnknownDifficulty))
	assert.Contains(t, err.Error(), "nightmare")
}

func TestDifficultyValidate(t *testing.T) {
	bad := []tetris.Difficulty{
		{Name: "zero", InitialSpeed: 0, ScoreMultiplier: 1},
		{Name: "negative increase", InitialSpeed: time.Second, SpeedIncrease: -time.Millisecond, ScoreMultiplier: 1},
		{Name: "no multiplier", InitialSpeed: time.Second},
	}
	for _, d := range bad {
		t.Run(d.Name, func(t *testing.T) {
			assert.ErrorIs(t, d.Validate(), tetris.ErrInvalidDifficulty)
		})
	}
}

func TestDifficultyInterval(t *testing.T) {
	assert.Equal(t, 1000*time.Millisecond, tetris.Easy.Interval(1))
	assert.Equal(t, 950*time.Millisecond, tetris.Easy.Interval(2))
	assert.Equal(t, 100*time.Millisecond, tetris.Easy.Interval(19))
	assert.Equal(t, tetris.MinInterval, tetris.Easy.Interval(40))

	assert.Equal(t, 675*time.Millisecond, tetris.Medium.Interval(2))
	assert.Equal(t, 100*time.Millisecond, tetris.Hard.Interval(5))
	assert.Equal(t, tetris.MinInterval, tetris.Hard.Interval(6))
}

func TestDifficultyLineScore(t *testing.T) {
	assert.Equal(t, 100, tetris.Easy.LineScore(1, 1))
	assert.Equal(t, 800, tetris.Easy.LineScore(4, 2))
	assert.Equal(t, 150, tetris.Medium.LineScore(1, 1))
	assert.Equal(t, 450, tetris.Medium.LineScore(1, 3))
	assert.Equal(t, 600, tetris.Hard.LineScore(3, 1))
}
