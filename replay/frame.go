package replay

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/fpcontroller/input"
	"github.com/zeebo/xxh3"
)

// Frame is the input of a single step along with the state the controller ended up in.
type Frame struct {
	Tick     uint64      `yaml:"tick"`
	DT       float32     `yaml:"dt"`
	Yaw      float32     `yaml:"yaw,omitempty"`
	Input    input.Frame `yaml:"input"`
	Position mgl32.Vec3  `yaml:"position,flow"`
	Velocity mgl32.Vec3  `yaml:"velocity,flow"`
	Grounded bool        `yaml:"grounded"`
	Active   []string    `yaml:"active,flow"`
}

// Digest returns a hash of the simulated state of the frame. Two frames produced from the same input by
// the same simulation have the same digest.
func (f Frame) Digest() uint64 {
	buf := make([]byte, 0, 64)
	buf = binary.LittleEndian.AppendUint64(buf, f.Tick)
	buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(f.DT))
	for _, v := range [...]float32{
		f.Position.X(), f.Position.Y(), f.Position.Z(),
		f.Velocity.X(), f.Velocity.Y(), f.Velocity.Z(),
	} {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(v))
	}
	if f.Grounded {
		buf = append(buf, 1)
	} else {
		buf = append(buf, 0)
	}

	h := xxh3.New()
	_, _ = h.Write(buf)
	for _, name := range f.Active {
		_, _ = h.WriteString(name)
		_, _ = h.Write([]byte{0})
	}
	return h.Sum64()
}
