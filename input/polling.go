package input

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/fpcontroller/game"
)

// Source is a device that can be polled for the state of named axes and buttons.
type Source interface {
	Axis(name string) float32
	Button(name string) bool
}

// Bindings are the axis and button names a Polling provider reads.
type Bindings struct {
	MoveHorizontalAxis string
	MoveVerticalAxis   string
	LeanAxis           string
	JumpButton         string
	RunButton          string
	CrouchButton       string
}

// DefaultBindings returns the bindings used by NewPolling when none are given.
func DefaultBindings() Bindings {
	return Bindings{
		MoveHorizontalAxis: "Horizontal",
		MoveVerticalAxis:   "Vertical",
		LeanAxis:           "Lean",
		JumpButton:         "Jump",
		RunButton:          "Run",
		CrouchButton:       "Crouch",
	}
}

// Polling is a Provider that reads a Source every time Update is called.
type Polling struct {
	intents

	src      Source
	bindings Bindings
}

// NewPolling returns a Polling provider reading src with the bindings given.
func NewPolling(src Source, bindings Bindings) *Polling {
	return &Polling{src: src, bindings: bindings}
}

// Update samples the source. It is called by the controller at the start of every step.
func (p *Polling) Update() {
	p.update(state{
		move: mgl32.Vec2{
			game.ClampFloat(p.src.Axis(p.bindings.MoveHorizontalAxis), -1, 1),
			game.ClampFloat(p.src.Axis(p.bindings.MoveVerticalAxis), -1, 1),
		},
		lean:   game.ClampFloat(p.src.Axis(p.bindings.LeanAxis), -1, 1),
		jump:   p.src.Button(p.bindings.JumpButton),
		run:    p.src.Button(p.bindings.RunButton),
		crouch: p.src.Button(p.bindings.CrouchButton),
	})
}
