// Package session owns a single running game: it serializes gravity steps and
// player input on one engine and drives the gravity scheduler.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/plus3/blockfall/gravity"
	"github.com/plus3/blockfall/tetris"
)

// Session guards an engine with a mutex so that no two mutations interleave.
// The presentation layer reads state through Snapshot.
type Session struct {
	mu       sync.Mutex
	engine   *tetris.Engine
	commands Commands
	log      zerolog.Logger

	runMu     sync.Mutex
	scheduler *gravity.Scheduler
	cancel    context.CancelFunc
	done      chan struct{}
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger used for lifecycle and scoring events.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Session) {
		s.log = l
	}
}

// New wraps an engine. The engine must not be used directly afterwards.
func New(engine *tetris.Engine, opts ...Option) *Session {
	s := &Session{
		engine: engine,
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start begins a new game and a gravity loop bound to ctx. Any previous loop
// is stopped first.
func (s *Session) Start(ctx context.Context) {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	s.stopLocked()

	s.mu.Lock()
	s.engine.Start()
	s.commands = Commands{}
	d := s.engine.Difficulty()
	s.mu.Unlock()

	s.log.Info().
		Str("difficulty", d.Name).
		Dur("interval", d.InitialSpeed).
		Msg("game started")

	s.launchLocked(ctx)
}

// SetDifficulty switches difficulty, which always restarts the game.
func (s *Session) SetDifficulty(ctx context.Context, d tetris.Difficulty) error {
	if err := d.Validate(); err != nil {
		return err
	}

	s.runMu.Lock()
	defer s.runMu.Unlock()

	s.stopLocked()

	s.mu.Lock()
	err := s.engine.SetDifficulty(d)
	s.commands = Commands{}
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.log.Info().Str("difficulty", d.Name).Msg("difficulty changed, game restarted")

	s.launchLocked(ctx)
	return nil
}

func (s *Session) launchLocked(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	scheduler := gravity.New(s)
	done := make(chan struct{})

	s.scheduler = scheduler
	s.cancel = cancel
	s.done = done

	go func() {
		defer close(done)
		err := scheduler.Run(ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			s.log.Warn().Err(err).Msg("gravity loop stopped")
			return
		}
		stats := scheduler.Stats()
		s.log.Debug().
			Int64("steps", stats.Steps).
			Dur("avg_step", stats.AvgDuration).
			Msg("gravity loop finished")
	}()
}

func (s *Session) stopLocked() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
	s.cancel = nil
}

// Stop halts the gravity loop and waits for it to exit. The game state is
// kept.
func (s *Session) Stop() {
	s.runMu.Lock()
	defer s.runMu.Unlock()
	s.stopLocked()
}

// Done is closed when the current gravity loop exits, either because the
// game ended or because it was stopped. It is nil before Start.
func (s *Session) Done() <-chan struct{} {
	s.runMu.Lock()
	defer s.runMu.Unlock()
	return s.done
}

// Stats returns the current gravity loop's statistics.
func (s *Session) Stats() gravity.Stats {
	s.runMu.Lock()
	defer s.runMu.Unlock()
	if s.scheduler == nil {
		return gravity.Stats{}
	}
	return s.scheduler.Stats()
}

// TickInterval reports the engine's gravity interval.
func (s *Session) TickInterval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.TickInterval()
}

// Step runs one gravity tick. It reports done once the game is over.
func (s *Session) Step() (time.Duration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	level := s.engine.Level()
	res := s.engine.Tick()
	s.observe("gravity", res, level)

	return s.engine.TickInterval(), s.engine.Status() == tetris.StatusOver
}

// Do applies a single action immediately.
func (s *Session) Do(a Action) tetris.Result {
	s.mu.Lock()
	level := s.engine.Level()
	res := apply(s.engine, a)
	s.observe(a.String(), res, level)
	s.mu.Unlock()

	if res.IntervalChanged {
		s.resetGravity()
	}
	return res
}

// Enqueue buffers an action until the next Flush.
func (s *Session) Enqueue(a Action) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commands.Push(a)
}

// Flush applies all buffered actions in order under a single lock.
func (s *Session) Flush() []tetris.Result {
	s.mu.Lock()
	if s.commands.Len() == 0 {
		s.mu.Unlock()
		return nil
	}

	changed := false
	level := s.engine.Level()
	results := s.commands.Flush(s.engine)
	for _, res := range results {
		s.observe("input", res, level)
		level = s.engine.Level()
		changed = changed || res.IntervalChanged
	}
	s.mu.Unlock()

	if changed {
		s.resetGravity()
	}
	return results
}

// resetGravity restarts the pending gravity wait with the engine's current
// interval. It must be called without mu held.
func (s *Session) resetGravity() {
	s.runMu.Lock()
	defer s.runMu.Unlock()
	if s.cancel == nil {
		return
	}
	s.scheduler.Reset(s.TickInterval())
}

// Snapshot returns a copy of the game state.
func (s *Session) Snapshot() tetris.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Snapshot()
}

// Status returns the engine status.
func (s *Session) Status() tetris.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Status()
}

// Final returns the end-of-game stats once the game is over.
func (s *Session) Final() (tetris.FinalStats, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Final()
}

func (s *Session) observe(source string, res tetris.Result, prevLevel int) {
	if res.Cleared > 0 {
		s.log.Debug().
			Str("source", source).
			Int("lines", res.Cleared).
			Int("score", s.engine.Score()).
			Msg("lines cleared")
	}

	if level := s.engine.Level(); level != prevLevel {
		s.log.Info().
			Int("level", level).
			Dur("interval", res.Interval).
			Msg("level up")
	}

	if res.Over {
		final, _ := s.engine.Final()
		s.log.Info().
			Int("score", final.Score).
			Int("lines", final.Lines).
			Int("level", final.Level).
			Msg("game over")
	}
}
