// Package config loads game settings from defaults, an optional YAML file,
// .env files and the environment, in that order of precedence (last wins).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/plus3/blockfall/tetris"
)

// ErrInvalidConfig is returned by Validate for unusable settings.
var ErrInvalidConfig = errors.New("invalid config")

// Environment variables read by ApplyEnv.
const (
	EnvDifficulty = "BLOCKFALL_DIFFICULTY"
	EnvRows       = "BLOCKFALL_ROWS"
	EnvCols       = "BLOCKFALL_COLS"
	EnvSeed       = "BLOCKFALL_SEED"
	EnvLogLevel   = "BLOCKFALL_LOG_LEVEL"
)

// DifficultySpec is the file form of a difficulty.
type DifficultySpec struct {
	InitialSpeedMs  int     `yaml:"initial_speed_ms"`
	SpeedIncreaseMs int     `yaml:"speed_increase_ms"`
	ScoreMultiplier float64 `yaml:"score_multiplier"`
}

// Config holds everything needed to build an engine and its session.
type Config struct {
	Difficulty string `yaml:"difficulty"`
	Rows       int    `yaml:"rows"`
	Cols       int    `yaml:"cols"`
	// Seed selects a deterministic piece sequence; zero means random.
	Seed     uint64 `yaml:"seed"`
	LogLevel string `yaml:"log_level"`

	// Difficulties adds custom entries or overrides presets by name.
	Difficulties map[string]DifficultySpec `yaml:"difficulties"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Difficulty: tetris.Easy.Name,
		Rows:       tetris.DefaultRows,
		Cols:       tetris.DefaultCols,
		LogLevel:   zerolog.InfoLevel.String(),
	}
}

// Load overlays the YAML file at path onto the defaults. A missing file is
// not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadEnv reads .env files into the process environment without overriding
// variables that are already set. Missing files are skipped.
func LoadEnv(paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("load env %s: %w", p, err)
		}
	}
	return nil
}

// NormalizeDifficulty puts a user-typed difficulty name in the form presets
// and custom entries are keyed by.
func NormalizeDifficulty(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ApplyEnv overrides fields from BLOCKFALL_* environment variables.
func (c *Config) ApplyEnv() error {
	if v, ok := os.LookupEnv(EnvDifficulty); ok && v != "" {
		c.Difficulty = NormalizeDifficulty(v)
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok && v != "" {
		c.LogLevel = v
	}

	ints := []struct {
		key string
		dst *int
	}{
		{EnvRows, &c.Rows},
		{EnvCols, &c.Cols},
	}
	for _, e := range ints {
		v, ok := os.LookupEnv(e.key)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", e.key, err)
		}
		*e.dst = n
	}

	if v, ok := os.LookupEnv(EnvSeed); ok && v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSeed, err)
		}
		c.Seed = seed
	}
	return nil
}

// ResolveDifficulty returns the named difficulty, preferring custom entries
// over presets.
func (c Config) ResolveDifficulty() (tetris.Difficulty, error) {
	if spec, ok := c.Difficulties[c.Difficulty]; ok {
		d := tetris.Difficulty{
			Name:            c.Difficulty,
			InitialSpeed:    time.Duration(spec.InitialSpeedMs) * time.Millisecond,
			SpeedIncrease:   time.Duration(spec.SpeedIncreaseMs) * time.Millisecond,
			ScoreMultiplier: spec.ScoreMultiplier,
		}
		if err := d.Validate(); err != nil {
			return tetris.Difficulty{}, fmt.Errorf("difficulty %q: %w", c.Difficulty, err)
		}
		return d, nil
	}
	return tetris.LookupDifficulty(c.Difficulty)
}

// Level parses LogLevel.
func (c Config) Level() (zerolog.Level, error) {
	return zerolog.ParseLevel(strings.ToLower(c.LogLevel))
}

// Validate checks the whole configuration before a session starts.
func (c Config) Validate() error {
	var errs []error

	if c.Rows < 4 || c.Cols < 4 {
		errs = append(errs, fmt.Errorf("%w: board %dx%d is too small", ErrInvalidConfig, c.Rows, c.Cols))
	}
	if _, err := c.ResolveDifficulty(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, fmt.Errorf("%w: log level %q", ErrInvalidConfig, c.LogLevel))
	}

	return errors.Join(errs...)
}

// EngineOptions builds engine options from the configuration.
func (c Config) EngineOptions() (tetris.Options, error) {
	d, err := c.ResolveDifficulty()
	if err != nil {
		return tetris.Options{}, err
	}

	var src tetris.RandomSource
	if c.Seed != 0 {
		src = tetris.NewSource(c.Seed)
	}

	return tetris.Options{
		Rows:       c.Rows,
		Cols:       c.Cols,
		Difficulty: d,
		Source:     src,
	}, nil
}
