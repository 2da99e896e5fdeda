package ability

import (
	"github.com/oomph-ac/fpcontroller/game"
	"github.com/oomph-ac/fpcontroller/player"
	"github.com/oomph-ac/fpcontroller/settings"
)

const NameSlide = "slide"

// Slide lowers a fast moving player and lets it keep its momentum. Gravity along the ground accelerates
// the slide down slopes while ground friction slows it down, until the player is too slow to keep sliding.
type Slide struct {
	player.NopAbility
	opts settings.Slide
}

// NewSlide ...
func NewSlide(opts settings.Slide) *Slide {
	return &Slide{opts: opts}
}

func (*Slide) Name() string   { return NameSlide }
func (*Slide) Blocking() bool { return true }

func (s *Slide) CanActivate(ctx *player.Context) bool {
	return ctx.Input().WantsToSlide() && ctx.State().Speed() >= s.opts.SpeedRequiredToSlide
}

func (s *Slide) OnActivate(ctx *player.Context) {
	ctx.ChangeHeight(s.opts.ColliderHeight, s.opts.EyeHeight)
}

// OnDeactivate stands the player back up if there is room. Otherwise the height is kept, and Crouch takes
// over as it cannot stand up either.
func (*Slide) OnDeactivate(ctx *player.Context) {
	if ctx.CanStandUp() {
		ctx.ResetHeight()
	}
}

func (s *Slide) FixedUpdate(ctx *player.Context) {
	state := ctx.State()
	if state.Grounded {
		g := game.ProjectOnPlane(ctx.Gravity(), state.GroundNormal)
		state.ControlVelocity = state.ControlVelocity.Add(g.Mul(ctx.DT()))
		ctx.ApplyGroundFriction(s.opts.GroundFriction, s.opts.GroundFrictionCombine)
	} else {
		ctx.ApplyAirDrag()
	}

	if state.Speed() <= s.opts.SpeedThresholdToExit {
		ctx.Deactivate()
	}
}
