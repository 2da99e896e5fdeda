package capsule

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/fpcontroller/game"
	"github.com/oomph-ac/fpcontroller/world"
	"github.com/sirupsen/logrus"
)

// ResolveOverlaps pushes the body out of anything it overlaps, one collider per pass along the shortest
// penetration. After a few passes the body is left where it is, even if it still overlaps something.
func (b *Body) ResolveOverlaps() {
	for i := 0; i < game.OverlapMaxIterations; i++ {
		c := b.Capsule()
		b.overlaps = b.world.OverlapCapsule(c, b.CollisionMask, b.overlaps[:0])
		if len(b.overlaps) == 0 {
			return
		}

		var (
			shortestDir      mgl32.Vec3
			shortestDistance = float32(math32.MaxFloat32)
			found            bool
		)
		for _, other := range b.overlaps {
			dir, distance, ok := b.world.ComputePenetration(c, other)
			if ok && distance < shortestDistance {
				shortestDir, shortestDistance, found = dir, distance, true
			}
		}
		if found {
			b.Translate(shortestDir.Mul(shortestDistance + world.ContactOffset))
		}
	}

	if b.world.CheckCapsule(b.Capsule(), b.CollisionMask) {
		b.log.WithFields(logrus.Fields{
			"position": b.position,
			"height":   b.height,
			"radius":   b.colliderRadius,
		}).Debug("capsule: could not resolve all overlaps")
	}
}
