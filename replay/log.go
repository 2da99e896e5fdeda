package replay

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/oomph-ac/fpcontroller/settings"
	"gopkg.in/yaml.v3"
)

// Log is a recorded session of a controller, holding everything needed to simulate it again.
type Log struct {
	ID       uuid.UUID         `yaml:"id"`
	Settings settings.Settings `yaml:"settings"`
	Start    mgl32.Vec3        `yaml:"start,flow"`
	// Truncated is true if the recorder dropped frames from the start of the session. A truncated log
	// cannot be verified.
	Truncated bool    `yaml:"truncated,omitempty"`
	Frames    []Frame `yaml:"frames"`
}

// Save writes the log to path as YAML.
func (l Log) Save(path string) error {
	data, err := yaml.Marshal(l)
	if err != nil {
		return fmt.Errorf("failed encoding replay %s: %w", l.ID, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed writing replay %s: %w", l.ID, err)
	}
	return nil
}

// LoadLog reads a log saved with Log.Save.
func LoadLog(path string) (Log, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Log{}, fmt.Errorf("error reading replay: %w", err)
	}
	var l Log
	if err := yaml.Unmarshal(data, &l); err != nil {
		return Log{}, fmt.Errorf("error decoding replay: %w", err)
	}
	return l, nil
}
