package capsule

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/fpcontroller/game"
	"github.com/sirupsen/logrus"
)

// MoveWithVelocity moves the body by velocity*dt, sliding along anything it hits on the way. It returns
// the velocity actually achieved, which is lower than the one given when the body was blocked.
func (b *Body) MoveWithVelocity(velocity mgl32.Vec3, dt float32) mgl32.Vec3 {
	if dt <= 0 {
		return mgl32.Vec3{}
	}

	original := b.position
	movement := velocity.Mul(dt)

	iterations := 0
	for ; iterations < game.SweepMaxIterations && !game.ApproxZero(movement.LenSqr()); iterations++ {
		movement, _ = b.sweep(movement)
	}
	if !game.ApproxZero(movement.LenSqr()) {
		b.log.WithFields(logrus.Fields{
			"position": b.position,
			"residual": movement,
		}).Debug("capsule: sweep iteration cap reached, dropping residual movement")
	}
	return b.position.Sub(original).Mul(1 / dt)
}

// sweep moves the body once along movement and returns the movement left over, projected onto the surface
// that was hit, if any.
func (b *Body) sweep(movement mgl32.Vec3) (mgl32.Vec3, bool) {
	dir := game.SafeNormalize(movement)

	skin := dir.Mul(b.SkinThickness)
	b.position = b.position.Sub(skin)
	movement = movement.Add(skin)

	hit, ok := b.world.SweepCapsule(b.Capsule(), dir, movement.Len(), b.CollisionMask)
	if !ok {
		b.position = b.position.Add(movement)
		return mgl32.Vec3{}, false
	}

	allowed := dir.Mul(hit.Distance)
	b.position = b.position.Add(allowed)
	movement = movement.Sub(allowed)

	// Only keep the movement along the surface, so the next sweep slides instead of hitting it again.
	return movement.Sub(hit.Normal.Mul(movement.Dot(hit.Normal))), true
}
