package world

import (
	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/ethaniccc/float32-cube/cube/trace"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/fpcontroller/game"
)

const (
	searchIterations = 40
	rootIterations   = 32
	// separationEpsilon is the distance under which a capsule segment counts as touching a box core.
	separationEpsilon = float32(1e-6)
	// approachEpsilon is how much a cast direction must point into a touching collider to be stopped by it.
	approachEpsilon = float32(1e-5)
)

// Collider is an oriented box in the world.
type Collider struct {
	// Name identifies the collider in debug output.
	Name     string
	Layer    Mask
	Material Material

	position mgl32.Vec3
	rotation mgl32.Quat
	inverse  mgl32.Quat
	extents  mgl32.Vec3

	// local is the box in its own space, centred on the origin.
	local  cube.BBox
	bounds cube.BBox
}

// NewBox returns an axis aligned box collider centred on center with the half extents given. The
// collider is placed on MaskDefault and uses DefaultMaterial.
func NewBox(name string, center, halfExtents mgl32.Vec3) *Collider {
	halfExtents = game.AbsVec32(halfExtents)
	c := &Collider{
		Name:     name,
		Layer:    MaskDefault,
		Material: DefaultMaterial,
		extents:  halfExtents,
		local:    cube.Box(-halfExtents.X(), -halfExtents.Y(), -halfExtents.Z(), halfExtents.X(), halfExtents.Y(), halfExtents.Z()),
	}
	c.setPose(center, mgl32.QuatIdent())
	return c
}

// NewBoxFromBBox returns an axis aligned box collider covering the bounding box given.
func NewBoxFromBBox(name string, bb cube.BBox) *Collider {
	center := bb.Min().Add(bb.Max()).Mul(0.5)
	return NewBox(name, center, bb.Max().Sub(center))
}

// Rotated returns the collider after rotating it around its centre. It must not be used on colliders
// that are already part of a World; use World.SetPose instead.
func (c *Collider) Rotated(rotation mgl32.Quat) *Collider {
	c.setPose(c.position, rotation)
	return c
}

// OnLayer sets the layer of the collider and returns it.
func (c *Collider) OnLayer(layer Mask) *Collider {
	c.Layer = layer
	return c
}

// WithMaterial sets the material of the collider and returns it.
func (c *Collider) WithMaterial(m Material) *Collider {
	c.Material = m
	return c
}

// Position returns the centre of the collider.
func (c *Collider) Position() mgl32.Vec3 {
	return c.position
}

// Rotation returns the orientation of the collider.
func (c *Collider) Rotation() mgl32.Quat {
	return c.rotation
}

// Extents returns the half extents of the collider.
func (c *Collider) Extents() mgl32.Vec3 {
	return c.extents
}

// Bounds returns the world space bounding box of the collider.
func (c *Collider) Bounds() cube.BBox {
	return c.bounds
}

func (c *Collider) setPose(position mgl32.Vec3, rotation mgl32.Quat) {
	c.position = position
	c.rotation = rotation.Normalize()
	c.inverse = c.rotation.Inverse()
	c.bounds = boundsOf(c.extents, c.position, c.rotation)
}

func (c *Collider) toLocal(p mgl32.Vec3) mgl32.Vec3 {
	return c.inverse.Rotate(p.Sub(c.position))
}

func (c *Collider) toWorld(p mgl32.Vec3) mgl32.Vec3 {
	return c.position.Add(c.rotation.Rotate(p))
}

// closest returns the distance between the segment a-b and the box, both in local space, along with
// the closest point on the segment and the closest point on the box.
func (c *Collider) closest(a, b mgl32.Vec3) (dist float32, onSegment, onBox mgl32.Vec3) {
	at := func(t float32) mgl32.Vec3 {
		return a.Add(b.Sub(a).Mul(t))
	}
	distAt := func(t float32) float32 {
		return game.AABBVectorDistance(c.local, at(t))
	}

	t := float32(0)
	if a.Sub(b).LenSqr() > 1e-14 {
		t, _ = minimise(distAt, 0, 1, searchIterations)
	}
	onSegment = at(t)
	onBox = game.ClosestPointToBBox(onSegment, c.local)
	return onSegment.Sub(onBox).Len(), onSegment, onBox
}

// separation returns the local direction and distance the segment a-b must move to be at least radius
// away from the box. ok is false if the segment is already far enough away.
func (c *Collider) separation(a, b mgl32.Vec3, radius float32) (dir mgl32.Vec3, depth float32, ok bool) {
	dist, onSegment, onBox := c.closest(a, b)
	if dist >= radius {
		return mgl32.Vec3{}, 0, false
	}
	if dist > separationEpsilon {
		return onSegment.Sub(onBox).Mul(1 / dist), radius - dist, true
	}

	// The segment passes through the box: push it out through the face needing the least movement.
	depth = math32.MaxFloat32
	for axis := 0; axis < 3; axis++ {
		lo, hi := math32.Min(a[axis], b[axis]), math32.Max(a[axis], b[axis])
		if push := c.extents[axis] - lo + radius; push < depth {
			depth, dir = push, mgl32.Vec3{}
			dir[axis] = 1
		}
		if push := hi + c.extents[axis] + radius; push < depth {
			depth, dir = push, mgl32.Vec3{}
			dir[axis] = -1
		}
	}
	return dir, depth, true
}

func (c *Collider) overlaps(capsule Capsule) bool {
	dist, _, _ := c.closest(c.toLocal(capsule.P0), c.toLocal(capsule.P1))
	return dist < capsule.Radius
}

func (c *Collider) penetration(capsule Capsule) (mgl32.Vec3, float32, bool) {
	dir, depth, ok := c.separation(c.toLocal(capsule.P0), c.toLocal(capsule.P1), capsule.Radius)
	if !ok {
		return mgl32.Vec3{}, 0, false
	}
	return c.rotation.Rotate(dir), depth, true
}

// cast sweeps the capsule along direction. The distance between a moving segment and a box is convex
// in the distance travelled, so the first contact is found by locating the minimum gap and bisecting
// towards the start.
func (c *Collider) cast(capsule Capsule, direction mgl32.Vec3, maxDistance, offset float32) (Hit, bool) {
	a, b := c.toLocal(capsule.P0), c.toLocal(capsule.P1)
	dir := c.inverse.Rotate(direction)
	reach := capsule.Radius + offset

	gap := func(s float32) float32 {
		shift := dir.Mul(s)
		dist, _, _ := c.closest(a.Add(shift), b.Add(shift))
		return dist - reach
	}

	if gap(0) <= 0 {
		n, _, ok := c.separation(a, b, reach)
		if !ok || n.Dot(dir) >= -approachEpsilon {
			// Already touching but not moving any further in.
			return Hit{}, false
		}
		return c.hitAt(a, b, 0, dir, n), true
	}

	deepest, minGap := minimise(gap, 0, maxDistance, searchIterations)
	if minGap > 0 {
		return Hit{}, false
	}

	lo, hi := float32(0), deepest
	for i := 0; i < rootIterations; i++ {
		mid := (lo + hi) * 0.5
		if gap(mid) > 0 {
			lo = mid
		} else {
			hi = mid
		}
	}
	n, _, ok := c.separation(a.Add(dir.Mul(hi)), b.Add(dir.Mul(hi)), reach+separationEpsilon*10)
	if !ok {
		n = dir.Mul(-1)
	}
	return c.hitAt(a, b, lo, dir, n), true
}

// hitAt builds a world space hit for the segment a-b swept distance along dir, with the local normal n.
func (c *Collider) hitAt(a, b mgl32.Vec3, distance float32, dir, n mgl32.Vec3) Hit {
	shift := dir.Mul(distance)
	_, _, onBox := c.closest(a.Add(shift), b.Add(shift))
	return Hit{
		Distance: distance,
		Normal:   game.SafeNormalize(c.rotation.Rotate(n)),
		Point:    c.toWorld(onBox),
		Collider: c,
	}
}

func (c *Collider) raycast(origin, end mgl32.Vec3) (Hit, bool) {
	start, stop := c.toLocal(origin), c.toLocal(end)
	if game.BBoxContains(c.local, start) {
		return Hit{}, false
	}
	result, ok := trace.BBoxIntercept(c.local, start, stop)
	if !ok {
		return Hit{}, false
	}
	return Hit{
		Distance: result.Position().Sub(start).Len(),
		Normal:   c.rotation.Rotate(faceNormal(result.Face())),
		Point:    c.toWorld(result.Position()),
		Collider: c,
	}, true
}

// faceNormal returns the outward normal of a box face.
func faceNormal(f cube.Face) mgl32.Vec3 {
	switch f {
	case cube.FaceDown:
		return mgl32.Vec3{0, -1, 0}
	case cube.FaceUp:
		return mgl32.Vec3{0, 1, 0}
	case cube.FaceNorth:
		return mgl32.Vec3{0, 0, -1}
	case cube.FaceSouth:
		return mgl32.Vec3{0, 0, 1}
	case cube.FaceWest:
		return mgl32.Vec3{-1, 0, 0}
	default:
		return mgl32.Vec3{1, 0, 0}
	}
}

// minimise finds the minimum of a unimodal function on [lo, hi] with a golden section search. Both
// ends of the range are always considered.
func minimise(f func(float32) float32, lo, hi float32, iterations int) (x, fx float32) {
	const invPhi = float32(0.6180339887)
	start, end := lo, hi
	x1 := hi - invPhi*(hi-lo)
	x2 := lo + invPhi*(hi-lo)
	f1, f2 := f(x1), f(x2)
	for i := 0; i < iterations; i++ {
		if f1 <= f2 {
			hi, x2, f2 = x2, x1, f1
			x1 = hi - invPhi*(hi-lo)
			f1 = f(x1)
		} else {
			lo, x1, f1 = x1, x2, f2
			x2 = lo + invPhi*(hi-lo)
			f2 = f(x2)
		}
	}
	if f1 <= f2 {
		x, fx = x1, f1
	} else {
		x, fx = x2, f2
	}
	if fs := f(start); fs <= fx {
		x, fx = start, fs
	}
	if fe := f(end); fe < fx {
		x, fx = end, fe
	}
	return x, fx
}
