package input

import "github.com/go-gl/mathgl/mgl32"

// Scripted is a Provider replaying a fixed list of frames, one per step. After the last frame it keeps
// returning an empty frame.
type Scripted struct {
	frames []Frame
	index  int
	frame  Frame
}

// NewScripted returns a Scripted provider for the frames given.
func NewScripted(frames ...Frame) *Scripted {
	return &Scripted{frames: frames, index: -1}
}

// Hold returns n copies of frame, for building scripts.
func Hold(frame Frame, n int) []Frame {
	frames := make([]Frame, n)
	for i := range frames {
		frames[i] = frame
	}
	return frames
}

// Append adds frames to the end of the script.
func (s *Scripted) Append(frames ...Frame) {
	s.frames = append(s.frames, frames...)
}

// Update moves to the next frame.
func (s *Scripted) Update() {
	s.index++
	if s.index < len(s.frames) {
		s.frame = s.frames[s.index]
	} else {
		s.frame = Frame{}
	}
}

// Done returns true once every frame has been played.
func (s *Scripted) Done() bool {
	return s.index >= len(s.frames)-1
}

func (s *Scripted) Move() mgl32.Vec2          { return s.frame.Move }
func (s *Scripted) WantsToRun() bool          { return s.frame.Run }
func (s *Scripted) WantsToStartRunning() bool { return s.frame.StartRunning }
func (s *Scripted) WantsToStopRunning() bool  { return s.frame.StopRunning }
func (s *Scripted) WantsToJump() bool         { return s.frame.Jump }
func (s *Scripted) WantsToCrouch() bool       { return s.frame.Crouch }
func (s *Scripted) WantsToStandUp() bool      { return s.frame.StandUp }
func (s *Scripted) WantsToSlide() bool        { return s.frame.Slide }
func (s *Scripted) Lean() float32             { return s.frame.Lean }
