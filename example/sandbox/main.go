package main

import (
	"errors"
	"flag"
	"os"
	"strings"
	"time"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/getsentry/sentry-go"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/fpcontroller/capsule"
	"github.com/oomph-ac/fpcontroller/game"
	"github.com/oomph-ac/fpcontroller/input"
	"github.com/oomph-ac/fpcontroller/player"
	"github.com/oomph-ac/fpcontroller/player/ability"
	"github.com/oomph-ac/fpcontroller/replay"
	"github.com/oomph-ac/fpcontroller/settings"
	"github.com/oomph-ac/fpcontroller/world"
	"github.com/sirupsen/logrus"
)

var (
	settingsPath = flag.String("settings", "settings.toml", "path of the settings file, created with the defaults if missing")
	debugModes   = flag.String("debug", "", "comma separated debug modes to enable (ground, abilities, movement, collision)")
	replayPath   = flag.String("replay", "", "path to save the recorded replay to, if any")
	verify       = flag.Bool("verify", true, "re-simulate the recorded session and check that it matches")
)

// The following program runs a controller through a small obstacle course and logs what it does.
func main() {
	flag.Parse()

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		ForceColors:     false,
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
	})
	logger.SetLevel(logrus.InfoLevel)

	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: dsn}); err != nil {
			logger.Errorf("unable to initialise sentry: %v", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	if os.Getenv("PPROF_ENABLED") != "" {
		// set configurations before calling `statsview.New()` method
		viewer.SetConfiguration(viewer.WithTheme(viewer.ThemeWesteros), viewer.WithAddr("localhost:8080"))

		mgr := statsview.New()
		go mgr.Start()
		defer mgr.Stop()
	}

	s, err := loadSettings(*settingsPath)
	if err != nil {
		logger.Fatalf("unable to load settings: %v", err)
	}

	w := course()
	frames := script()
	c := player.New(capsule.New(w, mgl32.Vec3{}, s.Body, logger), input.NewScripted(frames...), s.Controller, logger)
	ability.Register(c, s)

	if *debugModes != "" {
		logger.SetLevel(logrus.DebugLevel)
		for _, name := range strings.Split(*debugModes, ",") {
			mode, err := player.ParseDebugMode(strings.TrimSpace(name))
			if err != nil {
				logger.Fatalf("%v", err)
			}
			c.Debugger().Toggle(mode)
		}
	}

	rec := replay.NewRecorder(c, s, len(frames))
	c.Handle(&handler{Recorder: rec, log: logger})
	logger.Infof("running session %s for %d steps", rec.ID(), len(frames))

	for range frames {
		c.Step(game.FixedDeltaTime)
	}
	logger.Infof("finished at %v", c.Body().Position())

	l := rec.Log()
	if *replayPath != "" {
		if err := l.Save(*replayPath); err != nil {
			logger.Errorf("%v", err)
		}
	}
	if *verify {
		if res := replay.Verify(l, w); res.Err != nil {
			logger.Errorf("replay verification failed after %d frames: %v", res.Verified, res.Err)
		} else {
			logger.Infof("replay verified (%d frames)", res.Verified)
		}
	}
}

// handler records every step and logs the events of the controller.
type handler struct {
	*replay.Recorder
	log *logrus.Logger
}

func (h *handler) HandleLand(c *player.Controller, velocity float32) {
	h.log.Infof("tick %d: landed at %v (%.2f m/s)", c.Tick(), c.Body().Position(), -velocity)
}

func (h *handler) HandleAbilityChange(c *player.Controller, name string, active bool) {
	if active {
		h.log.Infof("tick %d: %s started", c.Tick(), name)
	} else {
		h.log.Infof("tick %d: %s stopped", c.Tick(), name)
	}
}

// loadSettings loads the settings at path, creating the file with the default settings first if needed.
func loadSettings(path string) (settings.Settings, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := settings.SaveDefault(path); err != nil {
			return settings.Settings{}, err
		}
	}
	return settings.Load(path)
}

// course builds a floor with a step, a ramp, a wall and a low tunnel along +Z.
func course() *world.World {
	ice := world.Material{DynamicFriction: 0.05, StaticFriction: 0.05, FrictionCombine: world.CombineMin}
	return world.New(
		world.NewBox("floor", mgl32.Vec3{0, -0.5, 20}, mgl32.Vec3{10, 0.5, 30}),
		world.NewBox("step", mgl32.Vec3{0, 0.15, 5}, mgl32.Vec3{3, 0.15, 1}),
		world.NewBox("ramp", mgl32.Vec3{0, 0.5, 12}, mgl32.Vec3{3, 0.2, 3}).
			Rotated(mgl32.QuatRotate(mgl32.DegToRad(-10), mgl32.Vec3{1, 0, 0})),
		world.NewBox("ice", mgl32.Vec3{0, -0.45, 22}, mgl32.Vec3{3, 0.5, 4}).WithMaterial(ice),
		world.NewBox("tunnel", mgl32.Vec3{0, 1.6, 30}, mgl32.Vec3{3, 0.4, 3}),
		world.NewBoxFromBBox("wall", cube.Box(-4.5, 0, -10, -3.5, 3, 50)),
		world.NewBox("trigger", mgl32.Vec3{0, 1, 40}, mgl32.Vec3{3, 1, 1}).OnLayer(world.MaskTrigger),
	)
}

// script walks over the step, runs up the ramp, slides over the ice into the tunnel, crawls out of it
// and jumps.
func script() []input.Frame {
	walk := input.Frame{Move: mgl32.Vec2{0, 1}}
	run := input.Frame{Move: mgl32.Vec2{0, 1}, Run: true, StartRunning: true}
	slide := run
	slide.Slide = true
	crouch := input.Frame{Move: mgl32.Vec2{0, 1}, Crouch: true}

	frames := input.Hold(walk, 150)
	frames = append(frames, input.Hold(run, 250)...)
	frames = append(frames, slide)
	frames = append(frames, input.Hold(walk, 150)...)
	frames = append(frames, input.Hold(crouch, 200)...)
	frames = append(frames, input.Hold(input.Frame{Move: mgl32.Vec2{0, 1}, StandUp: true, Lean: 1}, 50)...)
	frames = append(frames, input.Frame{Jump: true})
	return append(frames, input.Hold(input.Frame{}, 100)...)
}
