package input

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/fpcontroller/game"
)

// Action is an input action an Actions provider listens to.
type Action uint8

const (
	ActionMove Action = iota
	ActionLean
	ActionJump
	ActionRun
	ActionCrouch
)

// Actions is a Provider fed by input events. Performed and Canceled may be called from any goroutine; the
// state they build up is latched into intents when Update is called.
type Actions struct {
	intents

	mu      sync.Mutex
	pending state
}

// NewActions returns an Actions provider with no input.
func NewActions() *Actions {
	return &Actions{}
}

// Performed handles an action being performed. Move reads both components of value, lean reads X and
// buttons ignore it.
func (a *Actions) Performed(action Action, value mgl32.Vec2) {
	a.mu.Lock()
	defer a.mu.Unlock()

	switch action {
	case ActionMove:
		a.pending.move = mgl32.Vec2{game.ClampFloat(value.X(), -1, 1), game.ClampFloat(value.Y(), -1, 1)}
	case ActionLean:
		a.pending.lean = game.ClampFloat(value.X(), -1, 1)
	case ActionJump:
		a.pending.jump = true
	case ActionRun:
		a.pending.run = true
	case ActionCrouch:
		a.pending.crouch = true
	}
}

// Canceled handles an action being released.
func (a *Actions) Canceled(action Action) {
	a.mu.Lock()
	defer a.mu.Unlock()

	switch action {
	case ActionMove:
		a.pending.move = mgl32.Vec2{}
	case ActionLean:
		a.pending.lean = 0
	case ActionJump:
		a.pending.jump = false
	case ActionRun:
		a.pending.run = false
	case ActionCrouch:
		a.pending.crouch = false
	}
}

// Update latches the input received so far. It is called by the controller at the start of every step.
func (a *Actions) Update() {
	a.mu.Lock()
	s := a.pending
	a.mu.Unlock()

	a.update(s)
}
