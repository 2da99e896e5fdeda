package ability

import (
	"github.com/chewxy/math32"
	"github.com/oomph-ac/fpcontroller/player"
	"github.com/oomph-ac/fpcontroller/settings"
)

const NameJump = "jump"

// Jump launches a grounded player upwards so that it peaks at the configured height. It deactivates as
// soon as it has activated.
type Jump struct {
	player.NopAbility
	opts settings.Jump
}

// NewJump ...
func NewJump(opts settings.Jump) *Jump {
	return &Jump{opts: opts}
}

func (*Jump) Name() string { return NameJump }

func (*Jump) CanActivate(ctx *player.Context) bool {
	return ctx.State().Grounded && ctx.Input().WantsToJump()
}

func (j *Jump) OnActivate(ctx *player.Context) {
	s := ctx.State()
	s.VerticalVelocity = math32.Sqrt(2 * j.opts.Height * math32.Abs(ctx.Gravity().Y()))
	s.Grounded = false
	ctx.Deactivate()
}
