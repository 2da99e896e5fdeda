package player

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/fpcontroller/world"
)

// State is the movement state of a controller. It is owned by the Controller and handed to abilities by
// pointer through their Context, so that there is only ever one copy of it.
type State struct {
	// Grounded is true if the body stood on ground at the start of the step and was not moving up.
	Grounded bool
	// VerticalVelocity is the velocity along the world up axis, driven by gravity and jumping.
	VerticalVelocity float32
	// ControlVelocity is the velocity abilities steer with. While grounded it lies in the ground plane.
	ControlVelocity mgl32.Vec3
	// GroundNormal is the normal of the ground below the body, or the world up vector in the air.
	GroundNormal mgl32.Vec3
	// GroundMaterial is the material of the ground below the body.
	GroundMaterial world.Material
	// Velocity is the velocity the body actually achieved in the last step.
	Velocity mgl32.Vec3

	// Yaw is the facing of the controller in degrees. Zero faces +Z.
	Yaw float32

	// EyeHeight is the current height of the eyes above the body's root.
	EyeHeight float32
	// TargetEyeHeight is the height EyeHeight animates towards.
	TargetEyeHeight float32
	// Lean is the current sideways offset of the eyes, negative being left.
	Lean float32
	// LeanAngle is the current roll of the view in degrees.
	LeanAngle float32
}

// Speed returns the magnitude of the velocity achieved in the last step.
func (s *State) Speed() float32 {
	return s.Velocity.Len()
}
