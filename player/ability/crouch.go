package ability

import (
	"github.com/oomph-ac/fpcontroller/player"
	"github.com/oomph-ac/fpcontroller/settings"
)

const NameCrouch = "crouch"

// Crouch lowers the player and moves it at crouching speed. It also takes over whenever there is no room to
// stand, for example after sliding under something low.
type Crouch struct {
	player.NopAbility
	opts settings.Crouch
}

// NewCrouch ...
func NewCrouch(opts settings.Crouch) *Crouch {
	return &Crouch{opts: opts}
}

func (*Crouch) Name() string   { return NameCrouch }
func (*Crouch) Blocking() bool { return true }

func (*Crouch) CanActivate(ctx *player.Context) bool {
	return ctx.Input().WantsToCrouch() || !ctx.CanStandUp()
}

func (c *Crouch) OnActivate(ctx *player.Context) {
	ctx.ChangeHeight(c.opts.ColliderHeight, c.opts.EyeHeight)
}

// OnDeactivate leaves the height alone: every ability that can take over sets its own.
func (*Crouch) OnDeactivate(*player.Context) {}

func (c *Crouch) FixedUpdate(ctx *player.Context) {
	if ctx.Input().WantsToStandUp() && ctx.CanStandUp() {
		ctx.Deactivate()
		return
	}
	ctx.ApplyUserInputMovement(c.opts.Speed)
}
