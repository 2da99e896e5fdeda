package ability

import (
	"github.com/oomph-ac/fpcontroller/player"
	"github.com/oomph-ac/fpcontroller/settings"
)

// Register registers every ability to the controller passed, in order of priority: Lean, Jump, Slide,
// Crouch, Run and finally Walk.
func Register(c *player.Controller, s settings.Settings) {
	c.RegisterAbility(NewLean(s.Lean))
	c.RegisterAbility(NewJump(s.Jump))
	c.RegisterAbility(NewSlide(s.Slide))
	c.RegisterAbility(NewCrouch(s.Crouch))
	c.RegisterAbility(NewRun(s.Run))
	c.RegisterAbility(NewWalk(s.Walk))
}
