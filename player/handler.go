package player

// Handler handles events of a Controller. Handlers are called synchronously from Step, so they must not
// block.
type Handler interface {
	// HandleLand is called when the controller becomes grounded. velocity is the vertical velocity the
	// controller had when it hit the ground.
	HandleLand(c *Controller, velocity float32)
	// HandleAbilityChange is called when an ability is activated or deactivated.
	HandleAbilityChange(c *Controller, name string, active bool)
	// HandleStep is called at the end of every step.
	HandleStep(c *Controller, res StepResult)
}

// NopHandler implements Handler without doing anything. It may be embedded to only implement some of the
// methods.
type NopHandler struct{}

func (NopHandler) HandleLand(*Controller, float32)               {}
func (NopHandler) HandleAbilityChange(*Controller, string, bool) {}
func (NopHandler) HandleStep(*Controller, StepResult)            {}
