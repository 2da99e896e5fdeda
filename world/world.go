package world

import (
	"slices"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/fpcontroller/game"
	"github.com/sasha-s/go-deadlock"
)

// broadphaseMargin is added around every query volume before it is tested against collider bounds.
const broadphaseMargin = float32(0.01)

// World is a collection of box colliders that answers the collision queries of the Querier interface.
// Queries may run concurrently with each other. Adding, removing or moving colliders takes a write lock.
type World struct {
	colliders []*Collider

	deadlock.RWMutex
}

// New returns a World holding the colliders given.
func New(colliders ...*Collider) *World {
	w := &World{}
	w.Add(colliders...)
	return w
}

// Add adds the colliders given to the world.
func (w *World) Add(colliders ...*Collider) {
	w.Lock()
	defer w.Unlock()

	w.colliders = append(w.colliders, colliders...)
}

// Remove removes a collider from the world. It returns false if the collider was not present.
func (w *World) Remove(c *Collider) bool {
	w.Lock()
	defer w.Unlock()

	idx := slices.Index(w.colliders, c)
	if idx < 0 {
		return false
	}
	w.colliders = slices.Delete(w.colliders, idx, idx+1)
	return true
}

// SetPose moves and rotates a collider that is part of the world. This is how dynamic geometry such as
// moving platforms is represented.
func (w *World) SetPose(c *Collider, position mgl32.Vec3, rotation mgl32.Quat) {
	w.Lock()
	defer w.Unlock()

	c.setPose(position, rotation)
}

// Colliders returns a copy of the colliders in the world.
func (w *World) Colliders() []*Collider {
	w.RLock()
	defer w.RUnlock()

	return slices.Clone(w.colliders)
}

// SphereCast ...
func (w *World) SphereCast(origin mgl32.Vec3, radius float32, direction mgl32.Vec3, maxDistance float32, mask Mask) (Hit, bool) {
	return w.CapsuleCast(Capsule{P0: origin, P1: origin, Radius: radius}, direction, maxDistance, mask)
}

// CapsuleCast ...
func (w *World) CapsuleCast(c Capsule, direction mgl32.Vec3, maxDistance float32, mask Mask) (Hit, bool) {
	return w.sweep(c, direction, maxDistance, mask, 0)
}

// SweepCapsule casts the capsule like CapsuleCast, but reports hits at the distance where the capsule
// is ContactOffset away from the surface. Resting bodies therefore never touch geometry exactly.
func (w *World) SweepCapsule(c Capsule, direction mgl32.Vec3, maxDistance float32, mask Mask) (Hit, bool) {
	return w.sweep(c, direction, maxDistance, mask, ContactOffset)
}

func (w *World) sweep(c Capsule, direction mgl32.Vec3, maxDistance float32, mask Mask, offset float32) (Hit, bool) {
	direction = game.SafeNormalize(direction)
	if direction.LenSqr() == 0 || maxDistance <= 0 {
		return Hit{}, false
	}

	travel := direction.Mul(maxDistance)
	bounds := game.BBoxFromPoints(c.P0, c.P1, c.P0.Add(travel), c.P1.Add(travel)).Grow(c.Radius + offset + broadphaseMargin)

	w.RLock()
	defer w.RUnlock()

	var (
		closest Hit
		found   bool
	)
	for _, col := range w.colliders {
		if !col.Layer.In(mask) || !bounds.IntersectsWith(col.bounds) {
			continue
		}
		hit, ok := col.cast(c, direction, maxDistance, offset)
		if ok && (!found || hit.Distance < closest.Distance) {
			closest, found = hit, true
		}
	}
	return closest, found
}

// Raycast ...
func (w *World) Raycast(origin, direction mgl32.Vec3, maxDistance float32, mask Mask) (Hit, bool) {
	direction = game.SafeNormalize(direction)
	if direction.LenSqr() == 0 || maxDistance <= 0 {
		return Hit{}, false
	}
	end := origin.Add(direction.Mul(maxDistance))
	bounds := game.BBoxFromPoints(origin, end).Grow(broadphaseMargin)

	w.RLock()
	defer w.RUnlock()

	var (
		closest Hit
		found   bool
	)
	for _, col := range w.colliders {
		if !col.Layer.In(mask) || !bounds.IntersectsWith(col.bounds) {
			continue
		}
		hit, ok := col.raycast(origin, end)
		if ok && (!found || hit.Distance < closest.Distance) {
			closest, found = hit, true
		}
	}
	return closest, found
}

// OverlapCapsule ...
func (w *World) OverlapCapsule(c Capsule, mask Mask, buf []*Collider) []*Collider {
	buf = buf[:0]
	bounds := c.Bounds().Grow(broadphaseMargin)

	w.RLock()
	defer w.RUnlock()

	for _, col := range w.colliders {
		if len(buf) == cap(buf) && cap(buf) > 0 {
			break
		}
		if !col.Layer.In(mask) || !bounds.IntersectsWith(col.bounds) {
			continue
		}
		if col.overlaps(c) {
			buf = append(buf, col)
		}
	}
	return buf
}

// CheckCapsule ...
func (w *World) CheckCapsule(c Capsule, mask Mask) bool {
	bounds := c.Bounds().Grow(broadphaseMargin)

	w.RLock()
	defer w.RUnlock()

	for _, col := range w.colliders {
		if col.Layer.In(mask) && bounds.IntersectsWith(col.bounds) && col.overlaps(c) {
			return true
		}
	}
	return false
}

// ComputePenetration ...
func (w *World) ComputePenetration(c Capsule, other *Collider) (mgl32.Vec3, float32, bool) {
	w.RLock()
	defer w.RUnlock()

	return other.penetration(c)
}

// boundsOf returns the world space bounds of a box with the given half extents and pose.
func boundsOf(extents, position mgl32.Vec3, rotation mgl32.Quat) cube.BBox {
	corners := make([]mgl32.Vec3, 0, 8)
	for _, sx := range [2]float32{-1, 1} {
		for _, sy := range [2]float32{-1, 1} {
			for _, sz := range [2]float32{-1, 1} {
				local := mgl32.Vec3{extents.X() * sx, extents.Y() * sy, extents.Z() * sz}
				corners = append(corners, position.Add(rotation.Rotate(local)))
			}
		}
	}
	return game.BBoxFromPoints(corners...)
}
