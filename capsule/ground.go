package capsule

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/fpcontroller/game"
	"github.com/oomph-ac/fpcontroller/world"
	"github.com/sirupsen/logrus"
)

var down = mgl32.Vec3{0, -1, 0}

// CheckForGround looks for ground under the body and, if found, moves the body vertically so that it
// stands exactly on it. When stick is true the body also snaps down onto ground up to StepHeight below
// it. The vertical movement applied is returned so that callers can keep things like the camera steady.
func (b *Body) CheckForGround(stick bool) (hit world.Hit, verticalApplied float32, ok bool) {
	maxDistance := b.centerY + game.GroundCheckPadding
	if stick {
		maxDistance += b.stepHeight
	}
	maxDistance -= b.colliderRadius

	origin := b.position.Add(b.Center())
	sphereHit, ok := b.world.SphereCast(origin, b.colliderRadius, down, maxDistance, b.GroundMask)
	if !ok {
		return world.Hit{}, 0, false
	}

	// The sphere hits ledges with its curved side, which would leave the body hovering over the edge.
	// Correct the distance so the bottom behaves like a flat cylinder.
	cylinderCorrection := sphereHit.Point.Y() - (origin.Y() - sphereHit.Distance - b.colliderRadius)
	verticalApplied = b.centerY - sphereHit.Distance - b.colliderRadius + cylinderCorrection

	// The sphere hit may be on a ledge, so its normal is not reliable. A single ray gives the normal of the
	// surface directly below; if we're hanging over an edge it misses and the last ground hit is kept.
	hit = sphereHit
	if rayHit, rayOk := b.world.Raycast(origin, down, maxDistance+b.colliderRadius, b.GroundMask); rayOk {
		b.lastGroundHit, b.hasGroundHit = rayHit, true
		hit = rayHit
	} else if b.hasGroundHit {
		b.log.WithFields(logrus.Fields{
			"position": b.position,
			"normal":   b.lastGroundHit.Normal,
		}).Debug("capsule: ground ray missed, reusing last ground hit")
		hit = b.lastGroundHit
	}

	b.Translate(mgl32.Vec3{0, verticalApplied, 0})
	return hit, verticalApplied, true
}
