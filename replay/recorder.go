package replay

import (
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/oomph-ac/fpcontroller/assert"
	"github.com/oomph-ac/fpcontroller/input"
	"github.com/oomph-ac/fpcontroller/player"
	"github.com/oomph-ac/fpcontroller/settings"
)

// Recorder records a Frame for every step of a controller. It is a player.Handler and must be set as the
// handler of the controller, or be called from it, before the controller's first step. Only the most recent
// frames are kept once the capacity is reached.
type Recorder struct {
	player.NopHandler

	id       uuid.UUID
	settings settings.Settings
	start    mgl32.Vec3

	frames  *ring[Frame]
	dropped int
}

// NewRecorder creates a recorder for a controller created from the settings passed, keeping at most
// capacity frames.
func NewRecorder(c *player.Controller, s settings.Settings, capacity int) *Recorder {
	assert.IsTrue(c.Tick() == 0, "recorder must be created before the first step (at tick %d)", c.Tick())
	assert.IsTrue(capacity > 0, "recorder capacity must be positive (got %d)", capacity)
	return &Recorder{
		id:       uuid.New(),
		settings: s,
		start:    c.Body().Position(),
		frames:   newRing[Frame](capacity),
	}
}

// ID returns the session identifier of the recording.
func (r *Recorder) ID() uuid.UUID {
	return r.id
}

// HandleStep records the step that was just run.
func (r *Recorder) HandleStep(c *player.Controller, res player.StepResult) {
	f := Frame{
		Tick:     res.Tick,
		DT:       res.DT,
		Yaw:      c.State().Yaw,
		Input:    input.Capture(c.Input()),
		Position: res.Position,
		Velocity: res.Velocity,
		Grounded: res.Grounded,
		Active:   slices.Clone(res.Active),
	}
	if r.frames.push(f) {
		r.dropped++
	}
}

// Len returns the amount of frames currently held.
func (r *Recorder) Len() int {
	return r.frames.len()
}

// Dropped returns the amount of frames that were overwritten.
func (r *Recorder) Dropped() int {
	return r.dropped
}

// Frame returns the frame at index, 0 being the oldest frame held.
func (r *Recorder) Frame(index int) (Frame, bool) {
	return r.frames.at(index)
}

// Log returns a log of every frame held by the recorder.
func (r *Recorder) Log() Log {
	l := Log{
		ID:        r.id,
		Settings:  r.settings,
		Start:     r.start,
		Truncated: r.dropped > 0,
		Frames:    make([]Frame, 0, r.frames.len()),
	}
	for f := range r.frames.all() {
		l.Frames = append(l.Frames, f)
	}
	return l
}
