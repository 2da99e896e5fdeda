package player

import (
	"io"

	"github.com/chewxy/math32"
	"github.com/elliotchance/orderedmap/v2"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/fpcontroller/assert"
	"github.com/oomph-ac/fpcontroller/capsule"
	"github.com/oomph-ac/fpcontroller/game"
	"github.com/oomph-ac/fpcontroller/input"
	"github.com/oomph-ac/fpcontroller/settings"
	"github.com/oomph-ac/fpcontroller/world"
	"github.com/sirupsen/logrus"
)

// ceilingTolerance is how much lower the achieved vertical velocity may be than the requested one before
// the body is considered to have hit a ceiling.
const ceilingTolerance = 1e-2

// Controller drives a capsule body with a list of abilities. Every call to Step runs one fixed update: the
// ground check, gravity, the abilities in priority order, the movement of the body and finally the eye
// height. A Controller is not safe for concurrent use.
type Controller struct {
	body  *capsule.Body
	input input.Provider
	opts  settings.Controller
	log   *logrus.Logger

	handler  Handler
	debugger *Debugger

	state State
	slots []*slot
	tick  uint64
}

// StepResult is a summary of a single step of a Controller.
type StepResult struct {
	Tick     uint64
	DT       float32
	Position mgl32.Vec3
	Velocity mgl32.Vec3
	Grounded bool
	// Landed is true if the controller became grounded this step.
	Landed bool
	// Active holds the names of the abilities active at the end of the step, in priority order.
	Active []string
}

// New creates a controller for the body passed, reading input from in. A nil logger discards all output.
// Abilities must be registered with RegisterAbility before the first Step.
func New(body *capsule.Body, in input.Provider, opts settings.Controller, log *logrus.Logger) *Controller {
	assert.IsTrue(body != nil, "controller requires a body")
	assert.IsTrue(in != nil, "controller requires an input provider")

	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	c := &Controller{
		body:    body,
		input:   in,
		opts:    opts,
		log:     log,
		handler: NopHandler{},
	}
	c.debugger = NewDebugger(log)
	c.state.GroundNormal = game.Up
	c.state.GroundMaterial = world.DefaultMaterial
	c.state.EyeHeight = opts.DefaultEyeHeight
	c.ResetHeight()
	return c
}

// RegisterAbility adds an ability with a lower priority than every ability registered before it.
func (c *Controller) RegisterAbility(a Ability) {
	assert.IsTrue(a != nil, "cannot register a nil ability")
	assert.IsTrue(c.Ability(a.Name()) == nil, "ability %q is already registered", a.Name())

	s := &slot{ability: a}
	s.ctx = &Context{c: c, slot: s, dt: game.FixedDeltaTime}
	c.slots = append(c.slots, s)
}

// Ability returns the registered ability with the name passed, or nil if there is none.
func (c *Controller) Ability(name string) Ability {
	for _, s := range c.slots {
		if s.ability.Name() == name {
			return s.ability
		}
	}
	return nil
}

// Active returns true if the ability with the name passed is registered and active.
func (c *Controller) Active(name string) bool {
	for _, s := range c.slots {
		if s.ability.Name() == name {
			return s.active
		}
	}
	return false
}

// ActiveAbilities returns the names of all active abilities in priority order.
func (c *Controller) ActiveAbilities() []string {
	names := make([]string, 0, len(c.slots))
	for _, s := range c.slots {
		if s.active {
			names = append(names, s.ability.Name())
		}
	}
	return names
}

// Handle sets the handler of the controller. Passing nil resets it to a NopHandler.
func (c *Controller) Handle(h Handler) {
	if h == nil {
		h = NopHandler{}
	}
	c.handler = h
}

// Body returns the body driven by the controller.
func (c *Controller) Body() *capsule.Body {
	return c.body
}

// Input returns the input provider of the controller.
func (c *Controller) Input() input.Provider {
	return c.input
}

// State returns the movement state of the controller.
func (c *Controller) State() *State {
	return &c.state
}

// Opts returns the settings of the controller.
func (c *Controller) Opts() settings.Controller {
	return c.opts
}

// Debugger returns the debugger of the controller.
func (c *Controller) Debugger() *Debugger {
	return c.debugger
}

// Tick returns the amount of steps run so far.
func (c *Controller) Tick() uint64 {
	return c.tick
}

// SetYaw sets the facing of the controller in degrees.
func (c *Controller) SetYaw(yaw float32) {
	c.state.Yaw = yaw
}

// Gravity returns the gravity acceleration of the controller.
func (c *Controller) Gravity() mgl32.Vec3 {
	return mgl32.Vec3{0, c.opts.Gravity, 0}
}

// CanStandUp returns true if there is room for the body at its default height. The capsule tested is very
// slightly thinner than the body so that walls the body is merely touching are not counted.
func (c *Controller) CanStandUp() bool {
	r := math32.Min(c.body.Radius(), (c.opts.DefaultColliderHeight-c.body.StepHeight())*0.5) - game.StandUpInset
	return !c.body.CheckCapsuleRadius(c.body.Position(), c.opts.DefaultColliderHeight, r)
}

// ChangeHeight changes the height of the body and the height the eyes animate towards.
func (c *Controller) ChangeHeight(colliderHeight, eyeHeight float32) {
	c.body.SetHeight(colliderHeight)
	c.state.TargetEyeHeight = eyeHeight
}

// ResetHeight changes the height of the body and eyes back to their defaults.
func (c *Controller) ResetHeight() {
	c.ChangeHeight(c.opts.DefaultColliderHeight, c.opts.DefaultEyeHeight)
}

// Step runs a single fixed update of dt seconds.
func (c *Controller) Step(dt float32) StepResult {
	assert.IsTrue(dt > 0, "step duration must be positive (got %v)", dt)

	if u, ok := c.input.(input.Updater); ok {
		u.Update()
	}
	c.tick++

	landed := c.checkForGround()
	c.addGravity(dt)
	c.updateAbilities(dt)
	c.applyVelocityToBody(dt)
	c.adjustEyeHeight(dt)

	res := StepResult{
		Tick:     c.tick,
		DT:       dt,
		Position: c.body.Position(),
		Velocity: c.state.Velocity,
		Grounded: c.state.Grounded,
		Landed:   landed,
		Active:   c.ActiveAbilities(),
	}
	c.handler.HandleStep(c, res)
	return res
}

// checkForGround updates the grounded state of the controller. It returns true if the controller landed.
func (c *Controller) checkForGround() bool {
	s := &c.state
	hit, vertical, ok := c.body.CheckForGround(s.Grounded)

	// The body was moved by the ground check, so the eyes move the other way to stay where they were in
	// the world. They animate back to their target height at the end of the step.
	if ok {
		s.EyeHeight -= vertical
	}

	wasGrounded := s.Grounded
	s.Grounded = ok && s.VerticalVelocity <= 0
	if !s.Grounded {
		s.GroundNormal = game.Up
		s.GroundMaterial = world.DefaultMaterial
		return false
	}

	impact := s.VerticalVelocity
	s.VerticalVelocity = 0
	s.GroundNormal = hit.Normal
	s.GroundMaterial = hit.Material()
	s.ControlVelocity = game.ReprojectOnPlane(s.ControlVelocity, s.GroundNormal)

	landed := !wasGrounded
	if landed {
		c.debugger.Notify(DebugModeGround, true, "landed at %v (vertical velocity %.3f, normal %v)", c.body.Position(), impact, hit.Normal)
		c.handler.HandleLand(c, impact)
	}
	return landed
}

func (c *Controller) addGravity(dt float32) {
	c.state.VerticalVelocity += c.opts.Gravity * dt
}

// updateAbilities runs every ability in priority order. An active blocking ability deactivates every
// ability after it. An ability that deactivates itself during its update does not block.
func (c *Controller) updateAbilities(dt float32) {
	blocked := false
	for _, s := range c.slots {
		s.ctx.dt = dt
		if blocked {
			c.deactivate(s)
		} else {
			c.activate(s)
		}
		if s.active || s.ability.UpdatesWhenNotActive() {
			s.ability.FixedUpdate(s.ctx)
		}
		if s.active && s.ability.Blocking() {
			blocked = true
		}
	}
}

func (c *Controller) activate(s *slot) {
	if s.active || !s.ability.CanActivate(s.ctx) {
		return
	}
	// The flag is set before OnActivate so that an ability may deactivate itself from it.
	s.active = true
	c.debugger.Notify(DebugModeAbilities, true, "%s activated", s.ability.Name())
	c.handler.HandleAbilityChange(c, s.ability.Name(), true)
	s.ability.OnActivate(s.ctx)
}

func (c *Controller) deactivate(s *slot) {
	if !s.active {
		return
	}
	s.active = false
	c.debugger.Notify(DebugModeAbilities, true, "%s deactivated", s.ability.Name())
	c.handler.HandleAbilityChange(c, s.ability.Name(), false)
	s.ability.OnDeactivate(s.ctx)
}

// applyVelocityToBody moves the body by the control and vertical velocity of the controller.
func (c *Controller) applyVelocityToBody(dt float32) {
	s := &c.state
	velocity := s.ControlVelocity.Add(mgl32.Vec3{0, s.VerticalVelocity, 0})
	s.Velocity = c.body.MoveWithVelocity(velocity, dt)

	// Moving up less than we asked for means we hit something above us, so stop rising.
	if s.VerticalVelocity > 0 && s.Velocity.Y() < s.VerticalVelocity-ceilingTolerance {
		c.debugger.Notify(DebugModeCollision, true, "ceiling hit: vertical velocity %.3f -> %.3f", s.VerticalVelocity, s.Velocity.Y())
		s.VerticalVelocity = math32.Max(s.Velocity.Y(), 0)
	}
	if c.debugger.Enabled(DebugModeMovement) {
		fields := orderedmap.NewOrderedMap[string, any]()
		fields.Set("tick", c.tick)
		fields.Set("requested", velocity)
		fields.Set("achieved", s.Velocity)
		fields.Set("position", c.body.Position())
		fields.Set("grounded", s.Grounded)
		c.debugger.NotifyFields(DebugModeMovement, "moved", fields)
	}
}

// adjustEyeHeight moves the eyes towards their target height, keeping them below anything above the body.
// While airborne the body moves the other way, as if the legs were pulled up.
func (c *Controller) adjustEyeHeight(dt float32) {
	s := &c.state
	old := s.EyeHeight

	hit, ok := c.body.World().SphereCast(c.body.Position(), c.opts.CameraCollisionRadius, game.Up, s.TargetEyeHeight, c.body.CollisionMask)
	if ok && old > hit.Distance {
		// The legs are not pulled up here, as that would push the body into whatever is above it.
		s.EyeHeight = hit.Distance
		return
	}

	if math32.Abs(old-s.TargetEyeHeight) < game.EyeSnapDistance {
		s.EyeHeight = s.TargetEyeHeight
	} else {
		s.EyeHeight = game.Lerp(old, s.TargetEyeHeight, c.opts.EyeHeightAnimationSpeed*dt)
	}
	if !s.Grounded {
		c.body.Translate(mgl32.Vec3{0, old - s.EyeHeight, 0})
	}
}
