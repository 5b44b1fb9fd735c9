package main

import (
	"context"
	"flag"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/session"
	"github.com/plus3/blockfall/tetris"
)

func main() {
	configPath := flag.String("config", "blockfall.yaml", "Path to an optional YAML config file.")
	difficulty := flag.String("difficulty", "", "Difficulty name; overrides config and environment.")
	seed := flag.Uint64("seed", 0, "Piece sequence seed; zero picks a random one.")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := config.LoadEnv(".env"); err != nil {
		log.Fatal().Err(err).Msg("failed to load .env")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.ApplyEnv(); err != nil {
		log.Fatal().Err(err).Msg("invalid environment")
	}
	if name := config.NormalizeDifficulty(*difficulty); name != "" {
		cfg.Difficulty = name
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	level, _ := cfg.Level()
	zerolog.SetGlobalLevel(level)

	opts, err := cfg.EngineOptions()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to resolve difficulty")
	}
	engine, err := tetris.New(opts)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create engine")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := session.New(engine, session.WithLogger(log.Logger))
	defer s.Stop()
	s.Start(ctx)

	game := newGame(ctx, s, cfg, opts.Rows, opts.Cols)

	w, h := game.Layout(0, 0)
	ebiten.SetWindowSize(w*2, h*2)
	ebiten.SetWindowTitle("blockfall")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil && err != ebiten.Termination {
		log.Fatal().Err(err).Msg("game loop exited")
	}
}
