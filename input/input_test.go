package input

import (
	"sync"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

type mapSource struct {
	axes    map[string]float32
	buttons map[string]bool
}

func (m mapSource) Axis(name string) float32 { return m.axes[name] }
func (m mapSource) Button(name string) bool  { return m.buttons[name] }

func newMapSource() mapSource {
	return mapSource{axes: map[string]float32{}, buttons: map[string]bool{}}
}

func TestPollingReadsSource(t *testing.T) {
	src := newMapSource()
	p := NewPolling(src, DefaultBindings())

	src.axes["Horizontal"] = 1
	src.axes["Vertical"] = 1
	src.axes["Lean"] = -3
	src.buttons["Jump"] = true
	p.Update()

	if l := p.Move().Len(); l < 0.999 || l > 1.001 {
		t.Fatalf("diagonal movement should be normalised, got %v", p.Move())
	}
	if p.Lean() != -1 {
		t.Fatalf("lean should be clamped to -1, got %v", p.Lean())
	}
	if !p.WantsToJump() {
		t.Fatalf("expected jump intent")
	}
	if p.WantsToStartRunning() || !p.WantsToStopRunning() {
		t.Fatalf("should not want to run without the run button")
	}

	src.buttons["Run"] = true
	p.Update()
	if !p.WantsToRun() || !p.WantsToStartRunning() || p.WantsToStopRunning() {
		t.Fatalf("holding run while moving forward should start running")
	}

	src.axes["Vertical"] = -1
	p.Update()
	if p.WantsToStartRunning() || !p.WantsToStopRunning() {
		t.Fatalf("running backwards should not be possible")
	}
}

func TestCrouchTogglesAndSlides(t *testing.T) {
	src := newMapSource()
	p := NewPolling(src, DefaultBindings())

	src.buttons["Crouch"] = true
	p.Update()
	if !p.WantsToCrouch() || p.WantsToStandUp() {
		t.Fatalf("pressing crouch should start crouching")
	}
	p.Update()
	if !p.WantsToCrouch() {
		t.Fatalf("holding crouch should keep crouching")
	}
	src.buttons["Crouch"] = false
	p.Update()
	if !p.WantsToCrouch() {
		t.Fatalf("crouch is a toggle, releasing should keep crouching")
	}
	src.buttons["Crouch"] = true
	p.Update()
	if p.WantsToCrouch() || !p.WantsToStandUp() {
		t.Fatalf("pressing crouch again should stand up")
	}

	src.buttons["Crouch"] = false
	src.buttons["Run"] = true
	src.axes["Vertical"] = 1
	p.Update()
	src.buttons["Crouch"] = true
	p.Update()
	if !p.WantsToSlide() {
		t.Fatalf("pressing crouch while running should slide")
	}
	if p.WantsToCrouch() {
		t.Fatalf("sliding should not toggle crouch")
	}
	p.Update()
	if p.WantsToSlide() {
		t.Fatalf("slide intent should only last for the step crouch was pressed")
	}
}

func TestActions(t *testing.T) {
	a := NewActions()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		a.Performed(ActionMove, mgl32.Vec2{0, 1})
	}()
	go func() {
		defer wg.Done()
		a.Performed(ActionRun, mgl32.Vec2{})
	}()
	wg.Wait()

	if a.Move() != (mgl32.Vec2{}) {
		t.Fatalf("input should only be visible after Update")
	}
	a.Update()
	if a.Move() != (mgl32.Vec2{0, 1}) || !a.WantsToStartRunning() {
		t.Fatalf("expected to run forward, got %+v", Capture(a))
	}

	a.Performed(ActionLean, mgl32.Vec2{0.5, 0})
	a.Canceled(ActionRun)
	a.Update()
	if a.Lean() != 0.5 || a.WantsToRun() {
		t.Fatalf("expected lean without running, got %+v", Capture(a))
	}

	a.Canceled(ActionMove)
	a.Canceled(ActionLean)
	a.Update()
	if a.Move() != (mgl32.Vec2{}) || a.Lean() != 0 {
		t.Fatalf("canceled actions should reset, got %+v", Capture(a))
	}
}

func TestScripted(t *testing.T) {
	jump := Frame{Jump: true}
	s := NewScripted(Hold(jump, 2)...)
	s.Append(Frame{Lean: 1})

	for i := 0; i < 2; i++ {
		s.Update()
		if !s.WantsToJump() {
			t.Fatalf("frame %v should jump", i)
		}
	}
	s.Update()
	if s.WantsToJump() || s.Lean() != 1 {
		t.Fatalf("expected third frame, got %+v", Capture(s))
	}
	if !s.Done() {
		t.Fatalf("script should be done")
	}
	s.Update()
	if Capture(s) != (Frame{}) {
		t.Fatalf("finished script should return empty frames")
	}
}
