package world

import (
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/fpcontroller/game"
)

// ContactOffset is the gap SweepCapsule leaves between a swept capsule and the surface it hits.
const ContactOffset = float32(1e-4)

// Querier answers the spatial queries a capsule body needs to move through a world. Casts ignore
// colliders the shape already overlaps at its origin unless the shape is moving further into them.
type Querier interface {
	// SphereCast sweeps a sphere from origin along direction and returns the closest hit within maxDistance.
	SphereCast(origin mgl32.Vec3, radius float32, direction mgl32.Vec3, maxDistance float32, mask Mask) (Hit, bool)
	// Raycast returns the closest surface hit by a ray from origin along direction within maxDistance.
	Raycast(origin, direction mgl32.Vec3, maxDistance float32, mask Mask) (Hit, bool)
	// SweepCapsule sweeps a capsule along direction for movement. Hits are reported ContactOffset
	// before the capsule would touch the surface.
	SweepCapsule(c Capsule, direction mgl32.Vec3, maxDistance float32, mask Mask) (Hit, bool)
	// OverlapCapsule appends every collider overlapping the capsule to buf[:0]. A buffer with a non-zero
	// capacity limits the amount of colliders returned.
	OverlapCapsule(c Capsule, mask Mask, buf []*Collider) []*Collider
	// ComputePenetration returns the direction and distance the capsule must be moved to stop
	// overlapping other, or false if the two do not overlap.
	ComputePenetration(c Capsule, other *Collider) (mgl32.Vec3, float32, bool)
	// CheckCapsule returns true if the capsule overlaps any collider.
	CheckCapsule(c Capsule, mask Mask) bool
}

// Mask is a set of collision layers.
type Mask uint32

const (
	// MaskDefault is the layer colliders are placed on unless told otherwise.
	MaskDefault Mask = 1 << iota
	// MaskPlayer is the layer of player-owned geometry, ignored by the controller's own queries.
	MaskPlayer
	// MaskTrigger is never returned by ground queries.
	MaskTrigger

	MaskAll Mask = ^Mask(0)
)

// In returns true if any layer of m is part of other.
func (m Mask) In(other Mask) bool {
	return m&other != 0
}

// Without returns m with the layers of other removed.
func (m Mask) Without(other Mask) Mask {
	return m &^ other
}

// Hit is the result of a cast against the world.
type Hit struct {
	// Distance is how far the shape travelled along the cast direction before hitting.
	Distance float32
	// Normal is the surface normal at the contact, pointing away from the collider hit.
	Normal mgl32.Vec3
	// Point is the contact point on the collider's surface.
	Point mgl32.Vec3
	// Collider is the collider hit.
	Collider *Collider
}

// Material returns the physics material of the collider hit, or DefaultMaterial if nothing was hit.
func (h Hit) Material() Material {
	if h.Collider == nil {
		return DefaultMaterial
	}
	return h.Collider.Material
}

// Capsule is a world space capsule: every point within Radius of the segment P0-P1.
type Capsule struct {
	P0, P1 mgl32.Vec3
	Radius float32
}

// Translate returns the capsule moved by delta.
func (c Capsule) Translate(delta mgl32.Vec3) Capsule {
	return Capsule{P0: c.P0.Add(delta), P1: c.P1.Add(delta), Radius: c.Radius}
}

// Bounds returns the bounding box of the capsule.
func (c Capsule) Bounds() cube.BBox {
	return game.BBoxFromPoints(c.P0, c.P1).Grow(c.Radius)
}
