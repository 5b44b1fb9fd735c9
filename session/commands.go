package session

import "github.com/plus3/blockfall/tetris"

// Action is a player input mapped from a raw device event.
type Action int

const (
	ActionMoveLeft Action = iota
	ActionMoveRight
	ActionSoftDrop
	ActionHardDrop
	ActionRotate
	ActionPause
)

var actionNames = map[Action]string{
	ActionMoveLeft:  "left",
	ActionMoveRight: "right",
	ActionSoftDrop:  "soft_drop",
	ActionHardDrop:  "hard_drop",
	ActionRotate:    "rotate",
	ActionPause:     "pause",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// Commands buffers actions collected during a frame so they can be applied
// together between gravity steps.
type Commands struct {
	actions []Action
}

// Push queues an action.
func (c *Commands) Push(a Action) {
	c.actions = append(c.actions, a)
}

// Len returns the number of queued actions.
func (c *Commands) Len() int {
	return len(c.actions)
}

// Flush applies every queued action to the engine in order, resetting the
// buffer. Actions other than pause are skipped unless the game is running.
func (c *Commands) Flush(engine *tetris.Engine) []tetris.Result {
	results := make([]tetris.Result, 0, len(c.actions))
	for _, a := range c.actions {
		results = append(results, apply(engine, a))
	}
	c.actions = c.actions[:0]
	return results
}

func apply(engine *tetris.Engine, a Action) tetris.Result {
	if a == ActionPause {
		engine.TogglePause()
		return tetris.Result{Interval: engine.TickInterval()}
	}

	if engine.Status() != tetris.StatusRunning {
		return tetris.Result{}
	}

	switch a {
	case ActionMoveLeft:
		return tetris.Result{Moved: engine.MoveLeft(), Interval: engine.TickInterval()}
	case ActionMoveRight:
		return tetris.Result{Moved: engine.MoveRight(), Interval: engine.TickInterval()}
	case ActionRotate:
		return tetris.Result{Moved: engine.Rotate(), Interval: engine.TickInterval()}
	case ActionSoftDrop:
		return engine.SoftDrop()
	case ActionHardDrop:
		return engine.HardDrop()
	}
	return tetris.Result{}
}
