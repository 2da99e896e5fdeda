package ability

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/fpcontroller/game"
	"github.com/oomph-ac/fpcontroller/player"
	"github.com/oomph-ac/fpcontroller/settings"
)

const NameLean = "lean"

// Lean offsets the eyes sideways while the player leans. It keeps updating while inactive so that the eyes
// return to the centre once the player stops leaning. The offset never moves the eyes into a wall.
type Lean struct {
	player.NopAbility
	opts settings.Lean
}

// NewLean ...
func NewLean(opts settings.Lean) *Lean {
	return &Lean{opts: opts}
}

func (*Lean) Name() string               { return NameLean }
func (*Lean) UpdatesWhenNotActive() bool { return true }

func (*Lean) CanActivate(ctx *player.Context) bool {
	return ctx.Input().Lean() != 0
}

func (l *Lean) FixedUpdate(ctx *player.Context) {
	lean := ctx.Input().Lean()
	if ctx.Active() && lean == 0 {
		ctx.Deactivate()
	}

	target := game.ClampFloat(lean, -1, 1) * l.opts.Distance
	if target != 0 {
		target = l.clamp(ctx, target)
	}

	s := ctx.State()
	s.Lean = moveTowards(s.Lean, target, l.opts.Speed*ctx.DT())
	if l.opts.Distance > 0 {
		s.LeanAngle = s.Lean / l.opts.Distance * l.opts.Angle
	}
}

// clamp shortens the lean target so that the eyes stay clear of anything to the side of them.
func (l *Lean) clamp(ctx *player.Context, target float32) float32 {
	s := ctx.State()
	body := ctx.Body()

	side := game.YawRotation(s.Yaw).Rotate(mgl32.Vec3{1, 0, 0})
	if target < 0 {
		side = side.Mul(-1)
	}
	eye := body.Position().Add(mgl32.Vec3{0, s.EyeHeight, 0})
	hit, ok := body.World().SphereCast(eye, ctx.Opts().CameraCollisionRadius, side, math32.Abs(target), body.CollisionMask)
	if !ok {
		return target
	}
	return math32.Copysign(hit.Distance, target)
}

// moveTowards moves current towards target by at most maxDelta.
func moveTowards(current, target, maxDelta float32) float32 {
	if math32.Abs(target-current) <= maxDelta {
		return target
	}
	if target > current {
		return current + maxDelta
	}
	return current - maxDelta
}
