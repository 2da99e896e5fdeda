package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/oomph-ac/fpcontroller/game"
	"github.com/oomph-ac/fpcontroller/oerror"
	"github.com/oomph-ac/fpcontroller/world"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// Settings contains every tunable of a character: its body, its controller and each of its abilities.
type Settings struct {
	Body       Body       `toml:"body" yaml:"body"`
	Controller Controller `toml:"controller" yaml:"controller"`
	Walk       Walk       `toml:"walk" yaml:"walk"`
	Run        Run        `toml:"run" yaml:"run"`
	Crouch     Crouch     `toml:"crouch" yaml:"crouch"`
	Jump       Jump       `toml:"jump" yaml:"jump"`
	Slide      Slide      `toml:"slide" yaml:"slide"`
	Lean       Lean       `toml:"lean" yaml:"lean"`
}

// Body are the settings of the capsule body.
type Body struct {
	// Height is the total height of the character. The capsule height is this value minus the step height.
	Height float32 `toml:"height" yaml:"height"`
	// Radius is the collision radius. It is clamped to half the capsule height.
	Radius float32 `toml:"radius" yaml:"radius"`
	// StepHeight is how far the character can step up or down while staying grounded.
	StepHeight float32 `toml:"step_height" yaml:"step_height"`
	// SkinThickness is how far the body is pulled back before every sweep.
	SkinThickness float32 `toml:"skin_thickness" yaml:"skin_thickness"`
	// GroundMask holds the layers that count as ground.
	GroundMask world.Mask `toml:"ground_mask" yaml:"ground_mask"`
	// CollisionMask holds the layers the body collides with.
	CollisionMask world.Mask `toml:"collision_mask" yaml:"collision_mask"`
}

// Controller are the settings shared by every ability of a player controller.
type Controller struct {
	Gravity                 float32 `toml:"gravity" yaml:"gravity"`
	Acceleration            float32 `toml:"acceleration" yaml:"acceleration"`
	AirDrag                 float32 `toml:"air_drag" yaml:"air_drag"`
	AirControl              float32 `toml:"air_control" yaml:"air_control"`
	DefaultColliderHeight   float32 `toml:"default_collider_height" yaml:"default_collider_height"`
	DefaultEyeHeight        float32 `toml:"default_eye_height" yaml:"default_eye_height"`
	EyeHeightAnimationSpeed float32 `toml:"eye_height_animation_speed" yaml:"eye_height_animation_speed"`
	CameraCollisionRadius   float32 `toml:"camera_collision_radius" yaml:"camera_collision_radius"`
}

// Speed maps the magnitude of the movement input to a target speed.
type Speed struct {
	// Max is the speed reached at full input.
	Max float32 `toml:"max" yaml:"max"`
	// Exponent eases the curve between no input and full input.
	Exponent float32 `toml:"exponent" yaml:"exponent"`
	// FullSpeedThreshold is the input magnitude at and above which Max is used.
	FullSpeedThreshold float32 `toml:"full_speed_threshold" yaml:"full_speed_threshold"`
}

// Walk ...
type Walk struct {
	Speed Speed `toml:"speed" yaml:"speed"`
}

// Run ...
type Run struct {
	Speed Speed `toml:"speed" yaml:"speed"`
}

// Crouch ...
type Crouch struct {
	Speed          Speed   `toml:"speed" yaml:"speed"`
	ColliderHeight float32 `toml:"collider_height" yaml:"collider_height"`
	EyeHeight      float32 `toml:"eye_height" yaml:"eye_height"`
}

// Jump ...
type Jump struct {
	Height float32 `toml:"height" yaml:"height"`
}

// Slide ...
type Slide struct {
	SpeedRequiredToSlide  float32       `toml:"speed_required_to_slide" yaml:"speed_required_to_slide"`
	SpeedThresholdToExit  float32       `toml:"speed_threshold_to_exit" yaml:"speed_threshold_to_exit"`
	ColliderHeight        float32       `toml:"collider_height" yaml:"collider_height"`
	EyeHeight             float32       `toml:"eye_height" yaml:"eye_height"`
	GroundFriction        float32       `toml:"ground_friction" yaml:"ground_friction"`
	GroundFrictionCombine world.Combine `toml:"ground_friction_combine" yaml:"ground_friction_combine"`
}

// Lean ...
type Lean struct {
	// Distance is how far the eyes move sideways at full lean.
	Distance float32 `toml:"distance" yaml:"distance"`
	// Angle is the roll in degrees at full lean.
	Angle float32 `toml:"angle" yaml:"angle"`
	// Speed is how fast the lean offset moves, in metres per second.
	Speed float32 `toml:"speed" yaml:"speed"`
}

// Default returns the default settings of a character.
func Default() Settings {
	s := Settings{}
	s.Body = Body{
		Height:        1.7,
		Radius:        0.35,
		StepHeight:    0.35,
		SkinThickness: 0.05,
		GroundMask:    world.MaskDefault,
		CollisionMask: world.MaskAll.Without(world.MaskPlayer | world.MaskTrigger),
	}
	s.Controller = Controller{
		Gravity:                 game.Gravity,
		Acceleration:            2,
		AirDrag:                 0.2,
		AirControl:              20,
		DefaultColliderHeight:   1.7,
		DefaultEyeHeight:        1.6,
		EyeHeightAnimationSpeed: 10,
		CameraCollisionRadius:   0.2,
	}
	s.Walk.Speed = Speed{Max: 2, Exponent: 1, FullSpeedThreshold: 0.95}
	s.Run.Speed = Speed{Max: 6, Exponent: 1, FullSpeedThreshold: 0.95}
	s.Crouch = Crouch{
		Speed:          Speed{Max: 1, Exponent: 1, FullSpeedThreshold: 0.95},
		ColliderHeight: 1,
		EyeHeight:      0.9,
	}
	s.Jump.Height = 1.5
	s.Slide = Slide{
		SpeedRequiredToSlide:  3.5,
		SpeedThresholdToExit:  0.8,
		ColliderHeight:        0.9,
		EyeHeight:             0.8,
		GroundFriction:        0.4,
		GroundFrictionCombine: world.CombineAverage,
	}
	s.Lean = Lean{Distance: 0.6, Angle: 15, Speed: 4}
	return s
}

// Validate returns an error describing the first tunable that cannot produce a working controller.
func (s Settings) Validate() error {
	switch {
	case s.Body.Height <= 0:
		return oerror.New("body height must be positive (got %v)", s.Body.Height)
	case s.Body.Radius <= 0:
		return oerror.New("body radius must be positive (got %v)", s.Body.Radius)
	case s.Body.StepHeight < 0 || s.Body.StepHeight >= s.Body.Height:
		return oerror.New("step height must be in [0, height) (got %v)", s.Body.StepHeight)
	case s.Body.SkinThickness < 0:
		return oerror.New("skin thickness must not be negative (got %v)", s.Body.SkinThickness)
	case s.Controller.DefaultColliderHeight <= s.Body.StepHeight:
		return oerror.New("default collider height must exceed the step height (got %v)", s.Controller.DefaultColliderHeight)
	case s.Crouch.ColliderHeight <= s.Body.StepHeight:
		return oerror.New("crouch collider height must exceed the step height (got %v)", s.Crouch.ColliderHeight)
	case s.Slide.ColliderHeight <= s.Body.StepHeight:
		return oerror.New("slide collider height must exceed the step height (got %v)", s.Slide.ColliderHeight)
	case s.Jump.Height < 0:
		return oerror.New("jump height must not be negative (got %v)", s.Jump.Height)
	case s.Slide.SpeedThresholdToExit > s.Slide.SpeedRequiredToSlide:
		return oerror.New("slide exit speed %v is above the entry speed %v", s.Slide.SpeedThresholdToExit, s.Slide.SpeedRequiredToSlide)
	}
	for i, speed := range [...]Speed{s.Walk.Speed, s.Run.Speed, s.Crouch.Speed} {
		if speed.Max < 0 || speed.FullSpeedThreshold <= 0 || speed.Exponent <= 0 {
			return oerror.New("%v speed curve is invalid: %+v", [...]string{"walk", "run", "crouch"}[i], speed)
		}
	}
	return nil
}

// SaveDefault will create and save the default settings file. If the file already exists, it will return an error.
func SaveDefault(path string) error {
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return errors.New("settings file already exists")
	}
	data, err := Marshal(path, Default())
	if err != nil {
		return fmt.Errorf("failed encoding default settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed creating settings file: %w", err)
	}
	return nil
}

// Load will load the settings from your settings file, and return an error if the file does not exist.
// The format is picked from the extension of the path: .toml, .yaml or .yml. Fields missing from the
// file keep their default value.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Settings{}, errors.New("settings file doesn't exist")
	} else if err != nil {
		return Settings{}, fmt.Errorf("error reading settings: %w", err)
	}

	s := Default()
	if err := Unmarshal(path, data, &s); err != nil {
		return Settings{}, fmt.Errorf("error decoding settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Marshal encodes the settings in the format matching the extension of path.
func Marshal(path string, s Settings) ([]byte, error) {
	switch format(path) {
	case "toml":
		return toml.Marshal(s)
	case "yaml":
		return yaml.Marshal(s)
	}
	return nil, oerror.New("unsupported settings format %q", filepath.Ext(path))
}

// Unmarshal decodes data in the format matching the extension of path into s.
func Unmarshal(path string, data []byte, s *Settings) error {
	switch format(path) {
	case "toml":
		return toml.Unmarshal(data, s)
	case "yaml":
		return yaml.Unmarshal(data, s)
	}
	return oerror.New("unsupported settings format %q", filepath.Ext(path))
}

func format(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return "toml"
	case ".yaml", ".yml":
		return "yaml"
	}
	return ""
}
