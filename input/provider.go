package input

import "github.com/go-gl/mathgl/mgl32"

// Provider supplies the intents of a player for the current step. Abilities only ever read from it.
type Provider interface {
	// Move returns the movement input, with X being strafe and Y being forward. Each axis is in [-1, 1].
	Move() mgl32.Vec2
	// WantsToRun returns true while the player holds the run input.
	WantsToRun() bool
	// WantsToStartRunning returns true if the player wants to start running this step.
	WantsToStartRunning() bool
	// WantsToStopRunning returns true if the player wants to stop running this step.
	WantsToStopRunning() bool
	WantsToJump() bool
	WantsToCrouch() bool
	WantsToStandUp() bool
	WantsToSlide() bool
	// Lean returns the signed lean input, negative leaning left and positive leaning right.
	Lean() float32
}

// Updater is implemented by providers that need to sample their input once at the start of every step.
type Updater interface {
	Update()
}

// Frame is a snapshot of every intent of a Provider. It is what gets recorded and replayed.
type Frame struct {
	Move         mgl32.Vec2 `yaml:"move,flow"`
	Run          bool       `yaml:"run,omitempty"`
	StartRunning bool       `yaml:"start_running,omitempty"`
	StopRunning  bool       `yaml:"stop_running,omitempty"`
	Jump         bool       `yaml:"jump,omitempty"`
	Crouch       bool       `yaml:"crouch,omitempty"`
	StandUp      bool       `yaml:"stand_up,omitempty"`
	Slide        bool       `yaml:"slide,omitempty"`
	Lean         float32    `yaml:"lean,omitempty"`
}

// Capture returns the current intents of p as a Frame.
func Capture(p Provider) Frame {
	return Frame{
		Move:         p.Move(),
		Run:          p.WantsToRun(),
		StartRunning: p.WantsToStartRunning(),
		StopRunning:  p.WantsToStopRunning(),
		Jump:         p.WantsToJump(),
		Crouch:       p.WantsToCrouch(),
		StandUp:      p.WantsToStandUp(),
		Slide:        p.WantsToSlide(),
		Lean:         p.Lean(),
	}
}

// state holds raw button and axis input.
type state struct {
	move   mgl32.Vec2
	lean   float32
	jump   bool
	run    bool
	crouch bool
}

// intents turns raw input sampled once per step into the intents of a Provider. Crouch toggles on
// every press, except that pressing it while running asks for a slide instead.
type intents struct {
	current   Frame
	previous  state
	crouching bool
}

func (i *intents) update(s state) {
	if l := s.move.Len(); l > 1 {
		s.move = s.move.Mul(1 / l)
	}
	crouchPressed := s.crouch && !i.previous.crouch
	slide := false
	if crouchPressed {
		if s.run && !i.crouching {
			slide = true
		} else {
			i.crouching = !i.crouching
		}
	}
	running := s.run && s.move.Y() > 0

	i.current = Frame{
		Move:         s.move,
		Run:          s.run,
		StartRunning: running,
		StopRunning:  !running,
		Jump:         s.jump,
		Crouch:       i.crouching,
		StandUp:      !i.crouching,
		Slide:        slide,
		Lean:         s.lean,
	}
	i.previous = s
}

func (i *intents) Move() mgl32.Vec2          { return i.current.Move }
func (i *intents) WantsToRun() bool          { return i.current.Run }
func (i *intents) WantsToStartRunning() bool { return i.current.StartRunning }
func (i *intents) WantsToStopRunning() bool  { return i.current.StopRunning }
func (i *intents) WantsToJump() bool         { return i.current.Jump }
func (i *intents) WantsToCrouch() bool       { return i.current.Crouch }
func (i *intents) WantsToStandUp() bool      { return i.current.StandUp }
func (i *intents) WantsToSlide() bool        { return i.current.Slide }
func (i *intents) Lean() float32             { return i.current.Lean }
