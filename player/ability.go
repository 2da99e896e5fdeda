package player

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/fpcontroller/capsule"
	"github.com/oomph-ac/fpcontroller/input"
	"github.com/oomph-ac/fpcontroller/settings"
	"github.com/oomph-ac/fpcontroller/world"
)

// Ability is a movement behaviour competing for control of a controller's body every step.
type Ability interface {
	// Name returns a unique name for the ability.
	Name() string
	// Blocking returns true if, while active, the ability prevents lower priority abilities from being active.
	Blocking() bool
	// UpdatesWhenNotActive returns true if FixedUpdate should be called even while the ability is inactive.
	UpdatesWhenNotActive() bool
	// CanActivate returns true if the ability can become active this step.
	CanActivate(ctx *Context) bool
	// OnActivate is called when the ability becomes active.
	OnActivate(ctx *Context)
	// OnDeactivate is called when the ability stops being active.
	OnDeactivate(ctx *Context)
	// FixedUpdate is called every step the ability is active, or every step if UpdatesWhenNotActive is true.
	FixedUpdate(ctx *Context)
}

// NopAbility implements every method of Ability except Name, doing nothing. It may be embedded to only
// implement the methods needed.
type NopAbility struct{}

func (NopAbility) Blocking() bool             { return false }
func (NopAbility) UpdatesWhenNotActive() bool { return false }
func (NopAbility) CanActivate(*Context) bool  { return false }
func (NopAbility) OnActivate(*Context)        {}
func (NopAbility) OnDeactivate(*Context)      {}
func (NopAbility) FixedUpdate(*Context)       {}

// slot holds an ability registered to a controller along with whether it is active.
type slot struct {
	ability Ability
	active  bool
	ctx     *Context
}

// Context is what an ability sees of its controller.
type Context struct {
	c    *Controller
	slot *slot
	dt   float32
}

// State returns the movement state of the controller. Changes to it are seen by every ability after this one.
func (ctx *Context) State() *State {
	return &ctx.c.state
}

// Input returns the input of the controller.
func (ctx *Context) Input() input.Provider {
	return ctx.c.input
}

// Body returns the body of the controller.
func (ctx *Context) Body() *capsule.Body {
	return ctx.c.body
}

// Opts returns the settings of the controller.
func (ctx *Context) Opts() settings.Controller {
	return ctx.c.opts
}

// DT returns the duration of the current step.
func (ctx *Context) DT() float32 {
	return ctx.dt
}

// Gravity returns the gravity acceleration of the controller.
func (ctx *Context) Gravity() mgl32.Vec3 {
	return ctx.c.Gravity()
}

// Active returns true if the ability is active.
func (ctx *Context) Active() bool {
	return ctx.slot.active
}

// Deactivate deactivates the ability. It may be called from OnActivate for abilities that only act once.
func (ctx *Context) Deactivate() {
	ctx.c.deactivate(ctx.slot)
}

// CanStandUp returns true if the body has room to stand at its default height.
func (ctx *Context) CanStandUp() bool {
	return ctx.c.CanStandUp()
}

// ChangeHeight changes the height of the body and the height the eyes animate towards.
func (ctx *Context) ChangeHeight(colliderHeight, eyeHeight float32) {
	ctx.c.ChangeHeight(colliderHeight, eyeHeight)
}

// ResetHeight changes the height of the body and eyes back to their defaults.
func (ctx *Context) ResetHeight() {
	ctx.c.ResetHeight()
}

// ApplyUserInputMovement steers the control velocity with the movement input, using the speed curve given.
func (ctx *Context) ApplyUserInputMovement(speed settings.Speed) {
	ctx.c.applyUserInputMovement(speed, ctx.dt)
}

// ApplyAirDrag slows the control velocity down by the air drag of the controller.
func (ctx *Context) ApplyAirDrag() {
	ctx.c.applyAirDrag(ctx.dt)
}

// ApplyGroundFriction slows the control velocity down by the friction between the ground and a surface with
// the friction and combine rule given.
func (ctx *Context) ApplyGroundFriction(friction float32, combine world.Combine) {
	ctx.c.applyGroundFriction(friction, combine, ctx.dt)
}
