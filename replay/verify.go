package replay

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/oomph-ac/fpcontroller/capsule"
	"github.com/oomph-ac/fpcontroller/input"
	"github.com/oomph-ac/fpcontroller/oerror"
	"github.com/oomph-ac/fpcontroller/player"
	"github.com/oomph-ac/fpcontroller/player/ability"
	"github.com/oomph-ac/fpcontroller/worker"
	"github.com/oomph-ac/fpcontroller/world"
)

// ErrDiverged is returned when simulating a log again does not produce the recorded state.
var ErrDiverged = errors.New("replay diverged")

var errPanicked = oerror.New("replay verification panicked")

// Result is the outcome of verifying a single log.
type Result struct {
	ID uuid.UUID
	// Verified is the amount of frames that matched.
	Verified int
	// Tick is the first tick that did not match, or 0 if every frame matched.
	Tick uint64
	Err  error
}

// Verify simulates the log again in the world passed, starting from scratch with the recorded settings and
// inputs, and checks that every step ends in the recorded state.
func Verify(l Log, w world.Querier) Result {
	res := Result{ID: l.ID}
	if l.Truncated {
		res.Err = oerror.New("replay %s is truncated", l.ID)
		return res
	}
	if err := l.Settings.Validate(); err != nil {
		res.Err = fmt.Errorf("replay %s has invalid settings: %w", l.ID, err)
		return res
	}

	frames := make([]input.Frame, len(l.Frames))
	for i, f := range l.Frames {
		if f.DT <= 0 {
			res.Err = oerror.New("replay %s has an invalid step duration at tick %d", l.ID, f.Tick)
			return res
		}
		frames[i] = f.Input
	}

	in := input.NewScripted(frames...)
	c := player.New(capsule.New(w, l.Start, l.Settings.Body, nil), in, l.Settings.Controller, nil)
	ability.Register(c, l.Settings)

	for _, want := range l.Frames {
		c.SetYaw(want.Yaw)
		step := c.Step(want.DT)
		got := Frame{
			Tick:     step.Tick,
			DT:       step.DT,
			Position: step.Position,
			Velocity: step.Velocity,
			Grounded: step.Grounded,
			Active:   step.Active,
		}
		if got.Digest() != want.Digest() {
			res.Tick = want.Tick
			res.Err = fmt.Errorf("tick %d: expected %v, got %v: %w", want.Tick, want.Position, got.Position, ErrDiverged)
			return res
		}
		res.Verified++
	}
	return res
}

// VerifyAll verifies every log passed in parallel on the worker queue. The results are in the same order
// as the logs.
func VerifyAll(logs []Log, w world.Querier) []Result {
	results := make([]Result, len(logs))
	done := make([]<-chan struct{}, len(logs))
	for i, l := range logs {
		results[i] = Result{ID: l.ID, Err: errPanicked}
		done[i] = worker.Go(func() {
			results[i] = Verify(l, w)
		})
	}
	for _, ch := range done {
		<-ch
	}
	return results
}
