package game

import "github.com/go-gl/mathgl/mgl32"

const (
	// Gravity is the default downward acceleration applied to every controller, in m/s².
	Gravity = float32(-9.81)
	// FixedDeltaTime is the step duration the controller is tuned for.
	FixedDeltaTime = float32(0.02)

	SweepMaxIterations   = 10
	OverlapMaxIterations = 5
	OverlapBufferSize    = 16

	GroundCheckPadding = float32(0.001)
	StandUpInset       = float32(0.001)
	EyeSnapDistance    = float32(0.01)
)

// Up is the world up vector.
var Up = mgl32.Vec3{0, 1, 0}
