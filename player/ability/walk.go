package ability

import (
	"github.com/oomph-ac/fpcontroller/player"
	"github.com/oomph-ac/fpcontroller/settings"
)

const NameWalk = "walk"

// Walk is the fallback ability, moving the player at walking speed whenever there is room to stand.
type Walk struct {
	player.NopAbility
	opts settings.Walk
}

// NewWalk ...
func NewWalk(opts settings.Walk) *Walk {
	return &Walk{opts: opts}
}

func (*Walk) Name() string   { return NameWalk }
func (*Walk) Blocking() bool { return true }

func (*Walk) CanActivate(ctx *player.Context) bool {
	return ctx.CanStandUp()
}

func (*Walk) OnActivate(ctx *player.Context) {
	ctx.ResetHeight()
}

func (w *Walk) FixedUpdate(ctx *player.Context) {
	ctx.ApplyUserInputMovement(w.opts.Speed)
}
