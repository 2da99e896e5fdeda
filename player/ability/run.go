package ability

import (
	"github.com/oomph-ac/fpcontroller/player"
	"github.com/oomph-ac/fpcontroller/settings"
)

const NameRun = "run"

// Run moves the player at running speed for as long as the player keeps wanting to run.
type Run struct {
	player.NopAbility
	opts settings.Run
}

// NewRun ...
func NewRun(opts settings.Run) *Run {
	return &Run{opts: opts}
}

func (*Run) Name() string   { return NameRun }
func (*Run) Blocking() bool { return true }

func (*Run) CanActivate(ctx *player.Context) bool {
	return ctx.Input().WantsToStartRunning() && ctx.CanStandUp()
}

func (*Run) OnActivate(ctx *player.Context) {
	ctx.ResetHeight()
}

func (r *Run) FixedUpdate(ctx *player.Context) {
	if ctx.Input().WantsToStopRunning() {
		ctx.Deactivate()
		return
	}
	ctx.ApplyUserInputMovement(r.opts.Speed)
}
