package player

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/fpcontroller/capsule"
	"github.com/oomph-ac/fpcontroller/game"
	"github.com/oomph-ac/fpcontroller/input"
	"github.com/oomph-ac/fpcontroller/settings"
	"github.com/oomph-ac/fpcontroller/world"
)

const dt = game.FixedDeltaTime

type fakeAbility struct {
	NopAbility
	name     string
	blocking bool
	always   bool
	can      bool
	// exitNow makes the ability deactivate itself during its next update.
	exitNow bool

	activations, deactivations, updates int
}

func (a *fakeAbility) Name() string                  { return a.name }
func (a *fakeAbility) Blocking() bool                { return a.blocking }
func (a *fakeAbility) UpdatesWhenNotActive() bool    { return a.always }
func (a *fakeAbility) CanActivate(ctx *Context) bool { return a.can }
func (a *fakeAbility) OnActivate(*Context)           { a.activations++ }
func (a *fakeAbility) OnDeactivate(*Context)         { a.deactivations++ }
func (a *fakeAbility) FixedUpdate(ctx *Context) {
	a.updates++
	if a.exitNow && ctx.Active() {
		a.exitNow = false
		ctx.Deactivate()
	}
}

type recordingHandler struct {
	NopHandler
	landings []float32
	changes  []string
	steps    int
}

func (h *recordingHandler) HandleLand(_ *Controller, velocity float32) {
	h.landings = append(h.landings, velocity)
}

func (h *recordingHandler) HandleAbilityChange(_ *Controller, name string, active bool) {
	if active {
		h.changes = append(h.changes, "+"+name)
	} else {
		h.changes = append(h.changes, "-"+name)
	}
}

func (h *recordingHandler) HandleStep(*Controller, StepResult) {
	h.steps++
}

func floor() *world.Collider {
	return world.NewBox("floor", mgl32.Vec3{0, -0.5, 0}, mgl32.Vec3{20, 0.5, 20})
}

func newController(w *world.World, pos mgl32.Vec3, in input.Provider) *Controller {
	s := settings.Default()
	body := capsule.New(w, pos, s.Body, nil)
	return New(body, in, s.Controller, nil)
}

func approx(a, b, tolerance float32) bool {
	return math32.Abs(a-b) <= tolerance
}

func vecApprox(a, b mgl32.Vec3, tolerance float32) bool {
	return a.Sub(b).Len() <= tolerance
}

func TestAbilityExclusivity(t *testing.T) {
	c := newController(world.New(floor()), mgl32.Vec3{}, input.NewScripted())

	first := &fakeAbility{name: "first", blocking: true, can: true}
	second := &fakeAbility{name: "second", can: true}
	always := &fakeAbility{name: "always", always: true}
	c.RegisterAbility(first)
	c.RegisterAbility(second)
	c.RegisterAbility(always)

	c.Step(dt)
	if !c.Active("first") || c.Active("second") {
		t.Fatalf("expected only the blocking ability to be active, got %v", c.ActiveAbilities())
	}
	if second.updates != 0 {
		t.Fatalf("a blocked ability should not be updated, got %d updates", second.updates)
	}
	if always.updates != 1 || c.Active("always") {
		t.Fatalf("an always updating ability should update while inactive, got %d updates", always.updates)
	}

	// An ability deactivating itself stops blocking within the same step.
	first.exitNow = true
	first.can = false
	c.Step(dt)
	if c.Active("first") || !c.Active("second") {
		t.Fatalf("expected the second ability to take over, got %v", c.ActiveAbilities())
	}
	if first.deactivations != 1 || second.activations != 1 || second.updates != 1 {
		t.Fatalf("unexpected lifecycle counts: first -%d, second +%d/%d updates", first.deactivations, second.activations, second.updates)
	}

	// A blocking ability activating again deactivates everything after it.
	first.can = true
	c.Step(dt)
	if !c.Active("first") || c.Active("second") || second.deactivations != 1 {
		t.Fatalf("expected the blocking ability to deactivate the second, got %v", c.ActiveAbilities())
	}
}

func TestRegisterDuplicateAbilityPanics(t *testing.T) {
	c := newController(world.New(floor()), mgl32.Vec3{}, input.NewScripted())
	c.RegisterAbility(&fakeAbility{name: "walk"})

	defer func() {
		if recover() == nil {
			t.Fatalf("registering an ability twice should panic")
		}
	}()
	c.RegisterAbility(&fakeAbility{name: "walk"})
}

func TestAbilityChangeEvents(t *testing.T) {
	c := newController(world.New(floor()), mgl32.Vec3{}, input.NewScripted())
	h := &recordingHandler{}
	c.Handle(h)

	once := &fakeAbility{name: "once", can: true, exitNow: true}
	c.RegisterAbility(once)
	c.Step(dt)

	if len(h.changes) != 2 || h.changes[0] != "+once" || h.changes[1] != "-once" {
		t.Fatalf("expected an activation and a deactivation, got %v", h.changes)
	}
	if h.steps != 1 {
		t.Fatalf("expected one step event, got %d", h.steps)
	}
}

func TestFallAndLand(t *testing.T) {
	c := newController(world.New(floor()), mgl32.Vec3{0, 1, 0}, input.NewScripted())
	h := &recordingHandler{}
	c.Handle(h)

	var landedAt uint64
	for i := 0; i < 100 && landedAt == 0; i++ {
		if res := c.Step(dt); res.Landed {
			landedAt = res.Tick
		}
	}
	if landedAt == 0 {
		t.Fatalf("controller never landed, position %v", c.Body().Position())
	}
	if len(h.landings) != 1 || h.landings[0] >= 0 {
		t.Fatalf("expected one landing with a downward velocity, got %v", h.landings)
	}
	if !approx(c.Body().Position().Y(), 0, 5e-3) {
		t.Fatalf("expected the controller to rest on the floor, got %v", c.Body().Position())
	}

	for i := 0; i < 10; i++ {
		if res := c.Step(dt); !res.Grounded || res.Landed {
			t.Fatalf("expected to stay grounded without landing again at tick %d", res.Tick)
		}
	}
	if s := c.State(); s.VerticalVelocity > 0 || s.GroundNormal != game.Up {
		t.Fatalf("unexpected grounded state: %+v", *s)
	}
}

func TestGroundReprojection(t *testing.T) {
	slope := world.NewBox("slope", mgl32.Vec3{0, -0.5, 0}, mgl32.Vec3{20, 0.5, 20}).
		Rotated(mgl32.QuatRotate(mgl32.DegToRad(10), mgl32.Vec3{1, 0, 0}))
	c := newController(world.New(slope), mgl32.Vec3{0, 0.1, 0}, input.NewScripted())

	s := c.State()
	s.Grounded = true
	s.ControlVelocity = mgl32.Vec3{0, 0, 2}
	c.checkForGround()

	if !s.Grounded {
		t.Fatalf("expected to be grounded on the slope")
	}
	want := mgl32.Vec3{0, math32.Cos(mgl32.DegToRad(10)), math32.Sin(mgl32.DegToRad(10))}
	if !vecApprox(s.GroundNormal, want, 1e-3) {
		t.Fatalf("expected ground normal %v, got %v", want, s.GroundNormal)
	}
	if !approx(s.ControlVelocity.Dot(s.GroundNormal), 0, 1e-4) {
		t.Fatalf("control velocity %v should lie in the ground plane", s.ControlVelocity)
	}
	if !approx(s.ControlVelocity.Len(), 2, 1e-4) {
		t.Fatalf("reprojection should keep the magnitude, got %v", s.ControlVelocity.Len())
	}
}

func TestAirControl(t *testing.T) {
	in := input.NewScripted(input.Frame{Move: mgl32.Vec2{0, 1}})
	c := newController(world.New(), mgl32.Vec3{}, in)
	c.opts.Acceleration = 50
	c.opts.AirControl = 20
	c.opts.AirDrag = 0
	speed := settings.Speed{Max: 3, Exponent: 1, FullSpeedThreshold: 0.95}

	in.Update()
	c.applyUserInputMovement(speed, 0.02)
	if want := (mgl32.Vec3{0, 0, 1.2}); !vecApprox(c.State().ControlVelocity, want, 1e-5) {
		t.Fatalf("expected control velocity %v, got %v", want, c.State().ControlVelocity)
	}

	// Turning in the air only moves part of the way towards the new direction.
	in.Append(input.Frame{Move: mgl32.Vec2{1, 0}})
	c.State().ControlVelocity = mgl32.Vec3{0, 0, 2}
	in.Update()
	c.applyUserInputMovement(speed, 0.02)
	if want := (mgl32.Vec3{1.2, 0, 1.2}); !vecApprox(c.State().ControlVelocity, want, 1e-5) {
		t.Fatalf("expected control velocity %v, got %v", want, c.State().ControlVelocity)
	}

	in.Append(input.Frame{Move: mgl32.Vec2{0, 1}})
	c.State().ControlVelocity = mgl32.Vec3{}
	c.opts.AirDrag = 0.5
	in.Update()
	c.applyUserInputMovement(speed, 0.02)
	if want := 1.2 / float32(1.01); !approx(c.State().ControlVelocity.Z(), want, 1e-5) {
		t.Fatalf("expected air drag to slow control velocity to %v, got %v", want, c.State().ControlVelocity)
	}
}

func TestGroundedMovementFollowsYaw(t *testing.T) {
	in := input.NewScripted(input.Frame{Move: mgl32.Vec2{0, 1}})
	c := newController(world.New(), mgl32.Vec3{}, in)
	c.opts.Acceleration = 50
	c.SetYaw(90)
	c.State().Grounded = true

	in.Update()
	c.applyUserInputMovement(settings.Speed{Max: 2, Exponent: 1, FullSpeedThreshold: 1}, 0.02)
	if want := (mgl32.Vec3{2, 0, 0}); !vecApprox(c.State().ControlVelocity, want, 1e-4) {
		t.Fatalf("expected control velocity %v, got %v", want, c.State().ControlVelocity)
	}

	// Without input the controller stops immediately on the ground.
	in.Update()
	c.applyUserInputMovement(settings.Speed{Max: 2, Exponent: 1, FullSpeedThreshold: 1}, 0.02)
	if v := c.State().ControlVelocity; v.LenSqr() != 0 {
		t.Fatalf("expected to stop without input, got %v", v)
	}
}

func TestTargetSpeed(t *testing.T) {
	speed := settings.Speed{Max: 4, Exponent: 2, FullSpeedThreshold: 0.5}
	tests := []struct {
		move mgl32.Vec2
		want float32
	}{
		{mgl32.Vec2{}, 0},
		{mgl32.Vec2{0, 0.25}, 1},
		{mgl32.Vec2{0, 0.5}, 4},
		{mgl32.Vec2{1, 0}, 4},
	}
	for _, tt := range tests {
		if got := TargetSpeed(speed, tt.move); !approx(got, tt.want, 1e-5) {
			t.Errorf("TargetSpeed(%v) = %v, want %v", tt.move, got, tt.want)
		}
	}
}

func TestGroundFriction(t *testing.T) {
	c := newController(world.New(), mgl32.Vec3{}, input.NewScripted())
	s := c.State()
	s.GroundMaterial = world.Material{DynamicFriction: 0.2, FrictionCombine: world.CombineAverage}
	s.ControlVelocity = mgl32.Vec3{3, 0, 4}

	// mu = max(0.2, 0.5) = 0.5, deceleration = 0.5 * 9.81 * 0.02.
	c.applyGroundFriction(0.5, world.CombineMax, 0.02)
	want := 5 - 0.5*9.81*0.02
	if !approx(s.ControlVelocity.Len(), float32(want), 1e-4) {
		t.Fatalf("expected speed %v, got %v", want, s.ControlVelocity.Len())
	}
	if !vecApprox(game.SafeNormalize(s.ControlVelocity), mgl32.Vec3{0.6, 0, 0.8}, 1e-5) {
		t.Fatalf("friction should keep the direction, got %v", s.ControlVelocity)
	}

	s.ControlVelocity = mgl32.Vec3{0.01, 0, 0}
	c.applyGroundFriction(0.5, world.CombineMax, 0.02)
	if s.ControlVelocity.LenSqr() != 0 {
		t.Fatalf("friction should stop slow movement without reversing it, got %v", s.ControlVelocity)
	}
}

func TestCanStandUp(t *testing.T) {
	w := world.New(floor())
	c := newController(w, mgl32.Vec3{}, input.NewScripted())
	if !c.CanStandUp() {
		t.Fatalf("expected to be able to stand up in open space")
	}

	c.ChangeHeight(1, 0.9)
	ceiling := world.NewBox("ceiling", mgl32.Vec3{0, 1.6, 0}, mgl32.Vec3{2, 0.3, 2})
	w.Add(ceiling)
	if c.CanStandUp() {
		t.Fatalf("expected the ceiling to prevent standing up")
	}
	if c.Body().Height() != 1 || c.State().TargetEyeHeight != 0.9 {
		t.Fatalf("ChangeHeight did not apply: height %v, eye %v", c.Body().Height(), c.State().TargetEyeHeight)
	}

	w.Remove(ceiling)
	if !c.CanStandUp() {
		t.Fatalf("expected to be able to stand up once the ceiling is gone")
	}
	c.ResetHeight()
	if c.Body().Height() != 1.7 || c.State().TargetEyeHeight != 1.6 {
		t.Fatalf("ResetHeight did not apply: height %v, eye %v", c.Body().Height(), c.State().TargetEyeHeight)
	}
}

func TestCeilingStopsRising(t *testing.T) {
	w := world.New(floor(), world.NewBox("ceiling", mgl32.Vec3{0, 2.25, 0}, mgl32.Vec3{2, 0.5, 2}))
	c := newController(w, mgl32.Vec3{}, input.NewScripted())
	c.State().VerticalVelocity = 5

	c.Step(dt)
	s := c.State()
	if s.VerticalVelocity >= 5+c.opts.Gravity*dt-ceilingTolerance {
		t.Fatalf("expected the ceiling to reduce vertical velocity, got %v", s.VerticalVelocity)
	}
	if top := c.Body().Position().Y() + c.Body().Height(); top > 1.75 {
		t.Fatalf("body went through the ceiling, top at %v", top)
	}
}

func TestEyeHeightAnimation(t *testing.T) {
	c := newController(world.New(floor()), mgl32.Vec3{}, input.NewScripted())
	c.Step(dt)
	if c.State().EyeHeight != 1.6 {
		t.Fatalf("expected eyes at the default height, got %v", c.State().EyeHeight)
	}

	c.ChangeHeight(1, 0.9)
	c.Step(dt)
	eye := c.State().EyeHeight
	if eye >= 1.6 || eye <= 0.9 {
		t.Fatalf("expected the eyes to move part of the way down, got %v", eye)
	}
	for i := 0; i < 50; i++ {
		c.Step(dt)
	}
	if c.State().EyeHeight != 0.9 {
		t.Fatalf("expected the eyes to settle at 0.9, got %v", c.State().EyeHeight)
	}
}

func TestDebugger(t *testing.T) {
	c := newController(world.New(floor()), mgl32.Vec3{}, input.NewScripted())
	d := c.Debugger()
	if d.Enabled(DebugModeGround) {
		t.Fatalf("debug modes should start disabled")
	}
	if !d.Toggle(DebugModeGround) || !d.Enabled(DebugModeGround) {
		t.Fatalf("toggling should enable the mode")
	}
	mode, err := ParseDebugMode("Movement")
	if err != nil || mode != DebugModeMovement {
		t.Fatalf("expected movement mode, got %v (%v)", mode, err)
	}
	if _, err := ParseDebugMode("teleport"); err == nil {
		t.Fatalf("expected an error for an unknown mode")
	}
	d.Toggle(DebugModeMovement)
	c.Step(dt)
}
