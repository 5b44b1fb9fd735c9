package tetris

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"
)

var (
	// ErrUnknownDifficulty is returned when a difficulty name has no preset.
	ErrUnknownDifficulty = errors.New("unknown difficulty")
	// ErrInvalidDifficulty is returned for difficulties with unusable values.
	ErrInvalidDifficulty = errors.New("invalid difficulty")
)

// MinInterval is the fastest gravity interval regardless of level.
const MinInterval = 100 * time.Millisecond

// LinesPerLevel is the number of cleared lines needed to advance a level.
const LinesPerLevel = 10

// Difficulty controls gravity speed and score scaling.
type Difficulty struct {
	Name            string
	InitialSpeed    time.Duration
	SpeedIncrease   time.Duration
	ScoreMultiplier float64
}

var (
	Easy = Difficulty{
		Name:            "easy",
		InitialSpeed:    1000 * time.Millisecond,
		SpeedIncrease:   50 * time.Millisecond,
		ScoreMultiplier: 1,
	}
	Medium = Difficulty{
		Name:            "medium",
		InitialSpeed:    750 * time.Millisecond,
		SpeedIncrease:   75 * time.Millisecond,
		ScoreMultiplier: 1.5,
	}
	Hard = Difficulty{
		Name:            "hard",
		InitialSpeed:    500 * time.Millisecond,
		SpeedIncrease:   100 * time.Millisecond,
		ScoreMultiplier: 2,
	}
)

var presets = map[string]Difficulty{
	Easy.Name:   Easy,
	Medium.Name: Medium,
	Hard.Name:   Hard,
}

// LookupDifficulty returns the preset with the given name.
func LookupDifficulty(name string) (Difficulty, error) {
	d, ok := presets[name]
	if !ok {
		return Difficulty{}, fmt.Errorf("%w: %q", ErrUnknownDifficulty, name)
	}
	return d, nil
}

// DifficultyNames returns the preset names in sorted order.
func DifficultyNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks that the difficulty can drive a game.
func (d Difficulty) Validate() error {
	switch {
	case d.InitialSpeed <= 0:
		return fmt.Errorf("%w: initial speed must be positive, got %s", ErrInvalidDifficulty, d.InitialSpeed)
	case d.SpeedIncrease < 0:
		return fmt.Errorf("%w: speed increase must not be negative, got %s", ErrInvalidDifficulty, d.SpeedIncrease)
	case d.ScoreMultiplier <= 0 || math.IsNaN(d.ScoreMultiplier) || math.IsInf(d.ScoreMultiplier, 0):
		return fmt.Errorf("%w: score multiplier must be positive, got %v", ErrInvalidDifficulty, d.ScoreMultiplier)
	}
	return nil
}

// Interval returns the gravity interval for a level, never below MinInterval.
func (d Difficulty) Interval(level int) time.Duration {
	return max(d.InitialSpeed-time.Duration(level-1)*d.SpeedIncrease, MinInterval)
}

// LineScore returns the points for clearing n lines at the given level.
func (d Difficulty) LineScore(n, level int) int {
	return int(math.Round(float64(n*100*level) * d.ScoreMultiplier))
}
