package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/gravity"
	"github.com/plus3/blockfall/tetris"
)

// engineTarget lets the gravity scheduler step an engine without a session.
type engineTarget struct {
	engine *tetris.Engine
}

func (t engineTarget) TickInterval() time.Duration { return t.engine.TickInterval() }

func (t engineTarget) Step() (time.Duration, bool) {
	t.engine.Tick()
	return t.engine.TickInterval(), t.engine.Status() == tetris.StatusOver
}

func main() {
	duration := flag.Duration("duration", 10*time.Second, "Upper bound on total run time.")
	games := flag.Int("games", 100, "The number of games to play.")
	maxPieces := flag.Int("max-pieces", 2000, "Stop a game after this many pieces.")
	difficulty := flag.String("difficulty", tetris.Easy.Name, "Difficulty preset.")
	seed := flag.Uint64("seed", 1, "Seed for the first game; game i uses seed+i.")
	gravitySteps := flag.Int("gravity", 2, "Gravity steps applied to each piece before it is dropped.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	d, err := tetris.LookupDifficulty(config.NormalizeDifficulty(*difficulty))
	if err != nil {
		log.Fatal().Err(err).Msg("invalid difficulty")
	}

	report := &Report{
		Duration:       *duration,
		Difficulty:     d.Name,
		MaxPieces:      *maxPieces,
		GCPauseMetrics: *gcPauseMetrics,
		Counts:         make(map[tetris.Kind]int),
		StepTime:       Stats{Samples: make([]time.Duration, 0)},
		PlaceTime:      Stats{Samples: make([]time.Duration, 0)},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Info().Int("games", *games).Str("difficulty", d.Name).Msg("starting simulation")
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()

Loop:
	for i := range *games {
		select {
		case <-ctx.Done():
			break Loop
		default:
		}

		engine, err := tetris.New(tetris.Options{
			Difficulty: d,
			Source:     tetris.NewSource(*seed + uint64(i)),
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create engine")
		}
		engine.Start()

		scheduler := gravity.New(engineTarget{engine: engine})
		result := GameResult{Seed: *seed + uint64(i)}

		for engine.Status() == tetris.StatusRunning && result.Pieces < *maxPieces {
			if ctx.Err() != nil {
				break
			}

			placeStart := time.Now()
			if p, ok := choose(engine.Board(), engine.Current()); ok {
				play(engine, p)
			}
			report.PlaceTime.Samples = append(report.PlaceTime.Samples, time.Since(placeStart))

			for range *gravitySteps {
				if _, done := scheduler.Once(); done {
					break
				}
			}

			if engine.Status() == tetris.StatusRunning {
				engine.HardDrop()
			}
			result.Pieces++
		}

		result.Score = engine.Score()
		result.Lines = engine.Lines()
		result.Level = engine.Level()
		result.Over = engine.Status() == tetris.StatusOver
		for k, n := range engine.Counts() {
			report.Counts[k] += n
		}

		stats := scheduler.Stats()
		report.StepTime.Samples = append(report.StepTime.Samples, stats.AvgDuration)
		report.Games = append(report.Games, result)

		log.Debug().
			Uint64("seed", result.Seed).
			Int("score", result.Score).
			Int("lines", result.Lines).
			Int("pieces", result.Pieces).
			Msg("game finished")
	}

	report.TotalTime = time.Since(startTime)
	report.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Info().Int("games", len(report.Games)).Msg("simulation finished")

	fmt.Println("\n\n--- Simulation Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("failed to generate report")
	}
	fmt.Println("--- End of Report ---")
}
