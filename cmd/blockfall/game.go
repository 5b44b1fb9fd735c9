package main

import (
	"context"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog/log"

	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/session"
	"github.com/plus3/blockfall/tetris"
)

const (
	cellSize  = 16
	margin    = 16
	sideWidth = 120

	repeatDelay = 12 // ticks before a held key repeats
	repeatRate  = 3
)

// Game adapts a session to ebiten. It is the input source and the
// presentation layer; it never touches the engine directly.
type Game struct {
	ctx     context.Context
	session *session.Session
	cfg     config.Config
	rows    int
	cols    int
}

func newGame(ctx context.Context, s *session.Session, cfg config.Config, rows, cols int) *Game {
	return &Game{
		ctx:     ctx,
		session: s,
		cfg:     cfg,
		rows:    rows,
		cols:    cols,
	}
}

func repeating(key ebiten.Key) bool {
	d := inpututil.KeyPressDuration(key)
	if d == 1 {
		return true
	}
	return d > repeatDelay && (d-repeatDelay)%repeatRate == 0
}

var difficultyKeys = map[ebiten.Key]string{
	ebiten.Key1: tetris.Easy.Name,
	ebiten.Key2: tetris.Medium.Name,
	ebiten.Key3: tetris.Hard.Name,
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.session.Start(g.ctx)
		return nil
	}

	for key, name := range difficultyKeys {
		if !inpututil.IsKeyJustPressed(key) {
			continue
		}
		cfg := g.cfg
		cfg.Difficulty = name
		d, err := cfg.ResolveDifficulty()
		if err != nil {
			log.Warn().Err(err).Msg("difficulty not available")
			continue
		}
		if err := g.session.SetDifficulty(g.ctx, d); err != nil {
			log.Warn().Err(err).Msg("failed to change difficulty")
		}
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.session.Enqueue(session.ActionPause)
	}
	if repeating(ebiten.KeyArrowLeft) {
		g.session.Enqueue(session.ActionMoveLeft)
	}
	if repeating(ebiten.KeyArrowRight) {
		g.session.Enqueue(session.ActionMoveRight)
	}
	if repeating(ebiten.KeyArrowDown) {
		g.session.Enqueue(session.ActionSoftDrop)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		g.session.Enqueue(session.ActionRotate)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.session.Enqueue(session.ActionHardDrop)
	}

	g.session.Flush()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	snap := g.session.Snapshot()
	drawBoard(screen, snap, g.rows, g.cols)
	drawSidebar(screen, snap, g.cols)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return margin*3 + g.cols*cellSize + sideWidth, margin*2 + g.rows*cellSize
}
