package capsule

import (
	"io"

	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/fpcontroller/assert"
	"github.com/oomph-ac/fpcontroller/game"
	"github.com/oomph-ac/fpcontroller/settings"
	"github.com/oomph-ac/fpcontroller/world"
	"github.com/sirupsen/logrus"
)

// Body is a kinematic capsule standing on its root position. The capsule itself starts StepHeight above
// the root: the space below it is covered by the ground check, which lets the body walk up and down
// steps without colliding with them.
type Body struct {
	world world.Querier
	log   *logrus.Logger

	position   mgl32.Vec3
	height     float32
	radius     float32
	stepHeight float32

	// SkinThickness is how far the body is pulled back before each sweep, so that a body resting flush
	// against a surface does not slip into it.
	SkinThickness float32
	// GroundMask holds the layers checked by CheckForGround.
	GroundMask world.Mask
	// CollisionMask holds the layers the body is swept and depenetrated against.
	CollisionMask world.Mask

	colliderHeight float32
	colliderRadius float32
	centerY        float32

	lastGroundHit world.Hit
	hasGroundHit  bool

	overlaps []*world.Collider
}

// New creates a body at the position given. A nil logger discards all output.
func New(w world.Querier, position mgl32.Vec3, s settings.Body, log *logrus.Logger) *Body {
	assert.IsTrue(w != nil, "capsule body requires a world")
	assert.IsTrue(s.Height > 0 && s.Radius > 0, "capsule body requires a positive height and radius (got %v, %v)", s.Height, s.Radius)
	assert.IsTrue(s.StepHeight >= 0 && s.StepHeight < s.Height, "step height %v must be in [0, %v)", s.StepHeight, s.Height)

	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	b := &Body{
		world:         w,
		log:           log,
		position:      position,
		height:        s.Height,
		radius:        s.Radius,
		stepHeight:    s.StepHeight,
		SkinThickness: s.SkinThickness,
		GroundMask:    s.GroundMask,
		CollisionMask: s.CollisionMask,
		overlaps:      make([]*world.Collider, 0, game.OverlapBufferSize),
	}
	b.resize(false)
	return b
}

// World returns the world the body moves through.
func (b *Body) World() world.Querier {
	return b.world
}

// Position returns the root position of the body, at the bottom of its feet.
func (b *Body) Position() mgl32.Vec3 {
	return b.position
}

// SetPosition teleports the body without any collision checks.
func (b *Body) SetPosition(pos mgl32.Vec3) {
	b.position = pos
}

// Translate moves the body by delta without any collision checks.
func (b *Body) Translate(delta mgl32.Vec3) {
	b.position = b.position.Add(delta)
}

// Height returns the total height of the body.
func (b *Body) Height() float32 {
	return b.height
}

// SetHeight changes the total height of the body. Growing resolves any overlaps the new shape causes.
func (b *Body) SetHeight(height float32) {
	if height == b.height {
		return
	}
	assert.IsTrue(height > b.stepHeight, "height %v must exceed step height %v", height, b.stepHeight)

	growing := height > b.height
	b.height = height
	b.resize(growing)
}

// Radius returns the configured radius of the body. The radius actually used may be smaller, see
// ColliderRadius.
func (b *Body) Radius() float32 {
	return b.radius
}

// SetRadius changes the radius of the body. Growing resolves any overlaps the new shape causes.
func (b *Body) SetRadius(radius float32) {
	if radius == b.radius {
		return
	}
	assert.IsTrue(radius > 0, "radius must be positive (got %v)", radius)

	growing := radius > b.radius
	b.radius = radius
	b.resize(growing)
}

// StepHeight returns how far the body may step up or down while staying grounded.
func (b *Body) StepHeight() float32 {
	return b.stepHeight
}

// SetStepHeight changes the step height. A smaller step height means a larger capsule, so lowering it
// resolves overlaps.
func (b *Body) SetStepHeight(stepHeight float32) {
	if stepHeight == b.stepHeight {
		return
	}
	assert.IsTrue(stepHeight >= 0 && stepHeight < b.height, "step height %v must be in [0, %v)", stepHeight, b.height)

	growing := stepHeight < b.stepHeight
	b.stepHeight = stepHeight
	b.resize(growing)
}

// ColliderHeight returns the height of the capsule itself.
func (b *Body) ColliderHeight() float32 {
	return b.colliderHeight
}

// ColliderRadius returns the radius of the capsule, which never exceeds half of ColliderHeight.
func (b *Body) ColliderRadius() float32 {
	return b.colliderRadius
}

// Center returns the centre of the capsule relative to the root position.
func (b *Body) Center() mgl32.Vec3 {
	return mgl32.Vec3{0, b.centerY, 0}
}

// Capsule returns the capsule of the body in world space.
func (b *Body) Capsule() world.Capsule {
	return b.capsuleAt(b.position, b.height, b.colliderRadius)
}

// Bounds returns a bounding box around the whole body, including the space below the capsule.
func (b *Body) Bounds() cube.BBox {
	r := b.colliderRadius
	return cube.Box(-r, 0, -r, r, b.height, r).Translate(b.position)
}

// CheckCapsule returns true if a body of the height given, standing at pos, would overlap anything. The
// radius and step height rules of the body are applied to the tested capsule.
func (b *Body) CheckCapsule(pos mgl32.Vec3, height float32) bool {
	r := math32.Min(b.radius, (height-b.stepHeight)*0.5)
	return b.world.CheckCapsule(b.capsuleAt(pos, height, r), b.CollisionMask)
}

// CheckCapsuleRadius is CheckCapsule with an explicit radius, for callers that need to shrink the tested
// shape slightly to ignore surfaces the body is merely touching.
func (b *Body) CheckCapsuleRadius(pos mgl32.Vec3, height, radius float32) bool {
	return b.world.CheckCapsule(b.capsuleAt(pos, height, radius), b.CollisionMask)
}

func (b *Body) capsuleAt(pos mgl32.Vec3, height, radius float32) world.Capsule {
	return world.Capsule{
		P0:     pos.Add(mgl32.Vec3{0, b.stepHeight + radius, 0}),
		P1:     pos.Add(mgl32.Vec3{0, height - radius, 0}),
		Radius: radius,
	}
}

// resize derives the capsule shape from the height, radius and step height of the body.
func (b *Body) resize(growing bool) {
	b.colliderHeight = b.height - b.stepHeight
	b.colliderRadius = math32.Min(b.radius, b.colliderHeight*0.5)
	b.centerY = b.colliderHeight*0.5 + b.stepHeight

	if growing {
		b.ResolveOverlaps()
	}
}
