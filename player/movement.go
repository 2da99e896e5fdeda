package player

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/fpcontroller/game"
	"github.com/oomph-ac/fpcontroller/settings"
	"github.com/oomph-ac/fpcontroller/world"
)

// TargetSpeed returns the speed the curve passed maps the movement input to.
func TargetSpeed(speed settings.Speed, move mgl32.Vec2) float32 {
	magnitude := move.Len()
	if speed.FullSpeedThreshold > 0 {
		magnitude /= speed.FullSpeedThreshold
	}
	return speed.Max * math32.Pow(game.Clamp01(magnitude), speed.Exponent)
}

// applyUserInputMovement steers the control velocity with the movement input. On the ground the control
// velocity follows the input exactly, in the plane of the ground. In the air the input only pulls the
// control velocity towards it, limited by the air control of the controller.
func (c *Controller) applyUserInputMovement(speed settings.Speed, dt float32) {
	s := &c.state
	rotation := game.YawRotation(s.Yaw)
	if s.Grounded {
		rotation = game.FromToRotation(game.Up, s.GroundNormal).Mul(rotation)
	}

	move := c.input.Move()
	direction := game.SafeNormalize(rotation.Rotate(mgl32.Vec3{move.X(), 0, move.Y()}))
	magnitude := game.Lerp(s.ControlVelocity.Len(), TargetSpeed(speed, move), c.opts.Acceleration*dt)
	velocity := direction.Mul(magnitude)

	if s.Grounded {
		s.ControlVelocity = velocity
		return
	}
	if velocity.LenSqr() > 0 {
		s.ControlVelocity = game.LerpVec3(s.ControlVelocity, game.ProjectOnPlane(velocity, game.Up), c.opts.AirControl*dt)
	}
	c.applyAirDrag(dt)
}

// applyAirDrag slows the control velocity down by the air drag of the controller.
func (c *Controller) applyAirDrag(dt float32) {
	c.state.ControlVelocity = c.state.ControlVelocity.Mul(1 / (1 + c.opts.AirDrag*dt))
}

// applyGroundFriction slows the control velocity down by the friction between the ground and a surface with
// the friction and combine rule passed. The direction of the control velocity is kept.
func (c *Controller) applyGroundFriction(friction float32, combine world.Combine, dt float32) {
	s := &c.state
	speed := s.ControlVelocity.Len()
	if speed == 0 {
		return
	}
	mu := s.GroundMaterial.CombinedFriction(friction, combine)
	decel := mu * math32.Abs(c.opts.Gravity) * dt
	s.ControlVelocity = s.ControlVelocity.Mul(math32.Max(speed-decel, 0) / speed)
}
