package tetris

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidBoard is returned for board dimensions too small to hold a piece.
var ErrInvalidBoard = errors.New("invalid board size")

const (
	DefaultRows = 20
	DefaultCols = 10

	minBoardSide = 4
)

// Status is the engine's lifecycle state.
type Status int

const (
	// StatusIdle is the state of an engine that has never been started.
	StatusIdle Status = iota
	StatusRunning
	StatusPaused
	StatusOver
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRunning:
		return "running"
	case StatusPaused:
		return "paused"
	case StatusOver:
		return "over"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Options configures a new Engine. Zero Rows or Cols select the defaults and
// a zero Difficulty selects Easy.
type Options struct {
	Rows       int
	Cols       int
	Difficulty Difficulty
	Source     RandomSource
}

// Result describes what a gravity step or player drop did.
type Result struct {
	Moved           bool
	Locked          bool
	Dropped         int
	Cleared         int
	IntervalChanged bool
	Interval        time.Duration
	Over            bool
}

// FinalStats is the payload exposed once a game has ended.
type FinalStats struct {
	Score int
	Lines int
	Level int
}

// Snapshot is a read-only copy of the game state for presentation.
type Snapshot struct {
	Board      [][]Cell
	Current    Piece
	Next       Piece
	Ghost      Piece
	Score      int
	Level      int
	Lines      int
	Status     Status
	Interval   time.Duration
	Difficulty string
	Counts     map[Kind]int
}

// Engine is the falling-block state machine. It holds the board, the active
// and upcoming pieces and the score counters. It is not safe for concurrent
// use; callers serialize access.
type Engine struct {
	board      *Board
	gen        *Generator
	difficulty Difficulty

	current Piece
	next    Piece

	score    int
	level    int
	lines    int
	status   Status
	interval time.Duration
}

// New creates an idle engine. Call Start to begin a game.
func New(opts Options) (*Engine, error) {
	if opts.Rows == 0 {
		opts.Rows = DefaultRows
	}
	if opts.Cols == 0 {
		opts.Cols = DefaultCols
	}
	if opts.Rows < minBoardSide || opts.Cols < minBoardSide {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidBoard, opts.Rows, opts.Cols)
	}

	if opts.Difficulty == (Difficulty{}) {
		opts.Difficulty = Easy
	}
	if err := opts.Difficulty.Validate(); err != nil {
		return nil, err
	}

	return &Engine{
		board:      NewBoard(opts.Rows, opts.Cols),
		gen:        NewGenerator(opts.Cols, opts.Source),
		difficulty: opts.Difficulty,
		level:      1,
		interval:   opts.Difficulty.InitialSpeed,
	}, nil
}

// Start resets the board and counters and spawns the first two pieces.
func (e *Engine) Start() {
	e.board.Clear()
	e.gen.Reset()
	e.score = 0
	e.level = 1
	e.lines = 0
	e.interval = e.difficulty.Interval(1)
	e.current = e.gen.Next()
	e.next = e.gen.Next()
	e.status = StatusRunning
}

// SetDifficulty switches difficulty and restarts the game. Reconfiguration
// never resumes an in-progress game.
func (e *Engine) SetDifficulty(d Difficulty) error {
	if err := d.Validate(); err != nil {
		return err
	}
	e.difficulty = d
	e.Start()
	return nil
}

// Difficulty returns the active difficulty.
func (e *Engine) Difficulty() Difficulty { return e.difficulty }

// Tick advances the active piece one row, locking it when it cannot fall.
// It does nothing unless the game is running.
func (e *Engine) Tick() Result {
	return e.step()
}

// SoftDrop is a player-triggered Tick.
func (e *Engine) SoftDrop() Result {
	return e.step()
}

func (e *Engine) step() Result {
	if e.status != StatusRunning {
		return Result{}
	}

	if e.fits(e.current.Shape, e.current.X, e.current.Y+1) {
		e.current.Y++
		return Result{Moved: true, Dropped: 1, Interval: e.interval}
	}

	return e.lock(Result{})
}

// HardDrop moves the active piece down until it is blocked and locks it once.
func (e *Engine) HardDrop() Result {
	if e.status != StatusRunning {
		return Result{}
	}

	res := Result{}
	for e.fits(e.current.Shape, e.current.X, e.current.Y+1) {
		e.current.Y++
		res.Dropped++
	}
	res.Moved = res.Dropped > 0

	return e.lock(res)
}

// MoveHorizontal shifts the active piece one column; dir must be -1 or +1.
// It reports whether the piece moved. It never locks.
func (e *Engine) MoveHorizontal(dir int) bool {
	if e.status != StatusRunning || (dir != -1 && dir != 1) {
		return false
	}
	if !e.fits(e.current.Shape, e.current.X+dir, e.current.Y) {
		return false
	}
	e.current.X += dir
	return true
}

// MoveLeft is MoveHorizontal(-1).
func (e *Engine) MoveLeft() bool { return e.MoveHorizontal(-1) }

// MoveRight is MoveHorizontal(+1).
func (e *Engine) MoveRight() bool { return e.MoveHorizontal(1) }

// Rotate turns the active piece 90 degrees in place. The rotation is rejected
// when the turned shape does not fit at the same origin; no kicks are tried.
func (e *Engine) Rotate() bool {
	if e.status != StatusRunning {
		return false
	}
	rotated := e.current.Shape.Rotate()
	if !e.fits(rotated, e.current.X, e.current.Y) {
		return false
	}
	e.current.Shape = rotated
	return true
}

// TogglePause flips between running and paused and returns the new status.
// Idle and finished games are unaffected.
func (e *Engine) TogglePause() Status {
	switch e.status {
	case StatusRunning:
		e.status = StatusPaused
	case StatusPaused:
		e.status = StatusRunning
	}
	return e.status
}

// CanPlace is the engine's collision test against the current board.
func (e *Engine) CanPlace(shape Shape, x, y int) bool {
	return e.fits(shape, x, y)
}

func (e *Engine) fits(shape Shape, x, y int) bool {
	return e.board.CanPlace(shape, x, y)
}

func (e *Engine) lock(res Result) Result {
	e.board.Merge(e.current)
	res.Locked = true

	if n := e.board.ClearLines(); n > 0 {
		res.Cleared = n
		e.lines += n
		e.score += e.difficulty.LineScore(n, e.level)
		e.level = e.lines/LinesPerLevel + 1

		interval := e.difficulty.Interval(e.level)
		res.IntervalChanged = interval != e.interval
		e.interval = interval
	}
	res.Interval = e.interval

	e.current = e.next
	e.next = e.gen.Next()

	if !e.fits(e.current.Shape, e.current.X, e.current.Y) {
		e.status = StatusOver
		res.Over = true
	}

	return res
}

// Ghost returns the active piece moved to the lowest row it can reach.
func (e *Engine) Ghost() Piece {
	g := e.current.Clone()
	if g.Shape.Count() == 0 {
		return g
	}
	for e.fits(g.Shape, g.X, g.Y+1) {
		g.Y++
	}
	return g
}

// TickInterval returns the current gravity interval.
func (e *Engine) TickInterval() time.Duration { return e.interval }

// Status returns the lifecycle state.
func (e *Engine) Status() Status { return e.status }

// Score returns the current score.
func (e *Engine) Score() int { return e.score }

// Level returns the current level, starting at 1.
func (e *Engine) Level() int { return e.level }

// Lines returns the total number of cleared lines.
func (e *Engine) Lines() int { return e.lines }

// Current returns a copy of the active piece.
func (e *Engine) Current() Piece { return e.current.Clone() }

// Next returns a copy of the upcoming piece.
func (e *Engine) Next() Piece { return e.next.Clone() }

// Board returns a copy of the board.
func (e *Engine) Board() *Board { return e.board.Clone() }

// Counts returns per-kind spawn statistics for the current game.
func (e *Engine) Counts() map[Kind]int { return e.gen.Counts() }

// Final returns the end-of-game stats once the game is over.
func (e *Engine) Final() (FinalStats, bool) {
	if e.status != StatusOver {
		return FinalStats{}, false
	}
	return FinalStats{Score: e.score, Lines: e.lines, Level: e.level}, true
}

// Snapshot copies the full state for a reader.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Board:      e.board.Cells(),
		Current:    e.current.Clone(),
		Next:       e.next.Clone(),
		Ghost:      e.Ghost(),
		Score:      e.score,
		Level:      e.level,
		Lines:      e.lines,
		Status:     e.status,
		Interval:   e.interval,
		Difficulty: e.difficulty.Name,
		Counts:     e.gen.Counts(),
	}
}
