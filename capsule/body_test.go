package capsule

import (
	"math/rand"
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/fpcontroller/settings"
	"github.com/oomph-ac/fpcontroller/world"
)

func newBody(w *world.World, pos mgl32.Vec3) *Body {
	return New(w, pos, settings.Default().Body, nil)
}

func approx(a, b, tolerance float32) bool {
	return math32.Abs(a-b) <= tolerance
}

func vecApprox(a, b mgl32.Vec3, tolerance float32) bool {
	return a.Sub(b).Len() <= tolerance
}

func floor() *world.Collider {
	return world.NewBox("floor", mgl32.Vec3{0, -0.5, 0}, mgl32.Vec3{20, 0.5, 20})
}

func TestShapeDerivation(t *testing.T) {
	b := newBody(world.New(), mgl32.Vec3{})
	if !approx(b.ColliderHeight(), 1.35, 1e-6) {
		t.Fatalf("expected collider height 1.35, got %v", b.ColliderHeight())
	}
	if !approx(b.Center().Y(), 1.025, 1e-6) {
		t.Fatalf("expected centre at 1.025, got %v", b.Center().Y())
	}

	b.SetRadius(2)
	if !approx(b.ColliderRadius(), 0.675, 1e-6) {
		t.Fatalf("radius should be clamped to half the collider height, got %v", b.ColliderRadius())
	}
	c := b.Capsule()
	if !vecApprox(c.P0, c.P1, 1e-6) {
		t.Fatalf("a fully clamped capsule should degenerate to a sphere, got %v-%v", c.P0, c.P1)
	}
}

func TestMoveWithVelocityUnobstructed(t *testing.T) {
	b := newBody(world.New(), mgl32.Vec3{1, 2, 3})

	velocity := mgl32.Vec3{1, -2, 3}
	achieved := b.MoveWithVelocity(velocity, 0.02)
	if !vecApprox(achieved, velocity, 1e-3) {
		t.Fatalf("expected achieved velocity %v, got %v", velocity, achieved)
	}
	want := mgl32.Vec3{1.02, 1.96, 3.06}
	if !vecApprox(b.Position(), want, 1e-5) {
		t.Fatalf("expected position %v, got %v", want, b.Position())
	}

	if v := b.MoveWithVelocity(velocity, 0); v != (mgl32.Vec3{}) {
		t.Fatalf("zero step duration should not move, got %v", v)
	}
}

func TestMoveWithVelocityBlockedByWall(t *testing.T) {
	w := world.New(world.NewBox("wall", mgl32.Vec3{2.5, 1.5, 0}, mgl32.Vec3{0.5, 1.5, 5}))
	b := newBody(w, mgl32.Vec3{})

	achieved := b.MoveWithVelocity(mgl32.Vec3{10, 0, 0}, 1)
	if !approx(b.Position().X(), 2-0.35, 1e-3) {
		t.Fatalf("expected body to stop against the wall, got %v", b.Position())
	}
	if !approx(achieved.X(), b.Position().X(), 1e-4) {
		t.Fatalf("achieved velocity should match the distance covered, got %v", achieved)
	}
	if w.CheckCapsule(b.Capsule(), world.MaskAll) {
		t.Fatalf("body should not overlap the wall")
	}
}

func TestMoveWithVelocitySlidesAlongWall(t *testing.T) {
	w := world.New(world.NewBox("wall", mgl32.Vec3{1.5, 1.5, 0}, mgl32.Vec3{0.5, 1.5, 5}))
	b := newBody(w, mgl32.Vec3{})

	b.MoveWithVelocity(mgl32.Vec3{10, 0, 10}, 0.1)
	if !approx(b.Position().X(), 0.65, 1e-3) {
		t.Fatalf("expected body against the wall, got %v", b.Position())
	}
	if !approx(b.Position().Z(), 1, 1e-3) {
		t.Fatalf("expected body to keep all its movement along the wall, got %v", b.Position())
	}
}

func TestSweepRemovesNormalComponent(t *testing.T) {
	w := world.New(world.NewBox("wall", mgl32.Vec3{1.5, 1.5, 0}, mgl32.Vec3{0.5, 1.5, 5}))
	b := newBody(w, mgl32.Vec3{})

	remaining, hit := b.sweep(mgl32.Vec3{2, 0, 1})
	if !hit {
		t.Fatalf("expected sweep to hit the wall")
	}
	if !approx(remaining.Dot(mgl32.Vec3{-1, 0, 0}), 0, 1e-5) {
		t.Fatalf("remaining movement should be tangent to the wall, got %v", remaining)
	}
	if remaining.Z() <= 0 {
		t.Fatalf("remaining movement should still slide along the wall, got %v", remaining)
	}
}

func TestMoveWithVelocityTerminatesInRoom(t *testing.T) {
	w := world.New(
		floor(),
		world.NewBox("ceiling", mgl32.Vec3{0, 3.5, 0}, mgl32.Vec3{20, 0.5, 20}),
		world.NewBox("west", mgl32.Vec3{-2.5, 1.5, 0}, mgl32.Vec3{0.5, 3, 20}),
		world.NewBox("east", mgl32.Vec3{2.5, 1.5, 0}, mgl32.Vec3{0.5, 3, 20}),
		world.NewBox("north", mgl32.Vec3{0, 1.5, -2.5}, mgl32.Vec3{20, 3, 0.5}),
		world.NewBox("south", mgl32.Vec3{0, 1.5, 2.5}, mgl32.Vec3{20, 3, 0.5}),
	)
	b := newBody(w, mgl32.Vec3{0, 0.5, 0})

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		v := mgl32.Vec3{
			rng.Float32()*100 - 50,
			rng.Float32()*100 - 50,
			rng.Float32()*100 - 50,
		}
		b.MoveWithVelocity(v, 0.1)

		c := b.Capsule()
		c.Radius -= 1e-3
		if w.CheckCapsule(c, world.MaskAll) {
			t.Fatalf("move %v with velocity %v left the body inside geometry at %v", i, v, b.Position())
		}
	}
}

func TestCheckForGroundSnap(t *testing.T) {
	w := world.New(floor())
	b := newBody(w, mgl32.Vec3{0, 0.2, 0})

	if _, _, ok := b.CheckForGround(false); ok {
		t.Fatalf("ground 0.2 below the body should only be found when sticking")
	}
	if b.Position().Y() != 0.2 {
		t.Fatalf("a failed ground check should not move the body")
	}

	hit, vertical, ok := b.CheckForGround(true)
	if !ok {
		t.Fatalf("expected ground to be found")
	}
	if !approx(vertical, -0.2, 1e-3) {
		t.Fatalf("expected vertical correction of -0.2, got %v", vertical)
	}
	if !approx(b.Position().Y(), 0, 1e-3) {
		t.Fatalf("expected body to rest on the ground, got %v", b.Position())
	}
	if !approx(b.Position().Y(), 0.2+vertical, 1e-6) {
		t.Fatalf("reported correction %v does not match the movement applied", vertical)
	}
	if !vecApprox(hit.Normal, mgl32.Vec3{0, 1, 0}, 1e-4) {
		t.Fatalf("expected up normal, got %v", hit.Normal)
	}
}

func TestCheckForGroundStepsUp(t *testing.T) {
	step := world.NewBox("step", mgl32.Vec3{0, 0.1, 0}, mgl32.Vec3{2, 0.1, 2})
	b := newBody(world.New(floor(), step), mgl32.Vec3{0, 0, 0})

	_, vertical, ok := b.CheckForGround(false)
	if !ok || !approx(vertical, 0.2, 1e-3) {
		t.Fatalf("expected body to be lifted onto the step, got %v (%v)", vertical, ok)
	}
}

func TestCheckForGroundReusesLastHitOverLedge(t *testing.T) {
	platform := world.NewBox("platform", mgl32.Vec3{-5, -0.5, 0}, mgl32.Vec3{5, 0.5, 5})
	w := world.New(platform)

	b := newBody(w, mgl32.Vec3{0.2, 0, 0})
	hit, _, ok := b.CheckForGround(true)
	if !ok {
		t.Fatalf("sphere should still touch the ledge")
	}
	if hit.Collider != platform {
		t.Fatalf("without a cached hit the sphere hit should be reported, got %v", hit.Collider)
	}

	b.SetPosition(mgl32.Vec3{-1, 0, 0})
	if _, _, ok := b.CheckForGround(true); !ok {
		t.Fatalf("expected ground under the body")
	}

	b.SetPosition(mgl32.Vec3{0.2, 0, 0})
	hit, vertical, ok := b.CheckForGround(true)
	if !ok {
		t.Fatalf("sphere should still touch the ledge")
	}
	if hit.Collider != platform || !vecApprox(hit.Normal, mgl32.Vec3{0, 1, 0}, 1e-4) {
		t.Fatalf("expected the cached ground hit, got %+v", hit)
	}
	if !approx(vertical, 0, 1e-3) {
		t.Fatalf("body should stay level with the ledge, got %v", vertical)
	}
}

func TestResolveOverlapsOnGrowth(t *testing.T) {
	w := world.New(world.NewBox("wall", mgl32.Vec3{1, 1.5, 0}, mgl32.Vec3{0.5, 1.5, 5}))
	b := newBody(w, mgl32.Vec3{})

	b.SetRadius(0.6)
	if w.CheckCapsule(b.Capsule(), world.MaskAll) {
		t.Fatalf("growing should resolve the overlap with the wall")
	}
	if !approx(b.Position().X(), -0.1, 1e-3) {
		t.Fatalf("expected body to be pushed away from the wall, got %v", b.Position())
	}

	pos := b.Position()
	b.SetRadius(0.3)
	if b.Position() != pos {
		t.Fatalf("shrinking should never move the body")
	}
}

func TestSmallerStepHeightGrowsCapsule(t *testing.T) {
	ledge := world.NewBox("ledge", mgl32.Vec3{0, 0.15, 0}, mgl32.Vec3{5, 0.15, 5})
	w := world.New(ledge)
	b := newBody(w, mgl32.Vec3{})

	b.SetStepHeight(0.5)
	if b.Position() != (mgl32.Vec3{}) {
		t.Fatalf("a larger step height shrinks the capsule and should not move the body")
	}

	b.SetStepHeight(0.2)
	if w.CheckCapsule(b.Capsule(), world.MaskAll) {
		t.Fatalf("lowering the step height should resolve the new overlap")
	}
	if !approx(b.Position().Y(), 0.1, 1e-3) {
		t.Fatalf("expected body to be pushed up by 0.1, got %v", b.Position())
	}
}

func TestCheckCapsule(t *testing.T) {
	w := world.New(world.NewBox("ceiling", mgl32.Vec3{0, 1.6, 0}, mgl32.Vec3{5, 0.4, 5}))
	b := newBody(w, mgl32.Vec3{})

	if !b.CheckCapsule(b.Position(), 1.7) {
		t.Fatalf("a standing capsule should overlap the low ceiling")
	}
	if b.CheckCapsule(b.Position(), 1.0) {
		t.Fatalf("a crouching capsule should fit under the ceiling")
	}
	if b.Height() != 1.7 || b.Position() != (mgl32.Vec3{}) {
		t.Fatalf("CheckCapsule must not change the body")
	}
}
