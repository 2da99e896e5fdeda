package world

import "github.com/chewxy/math32"

// Combine is the rule used to merge the friction of two touching surfaces. When two surfaces use a
// different rule, the one with the highest value wins: Max, then Multiply, then Min, then Average.
type Combine uint8

const (
	CombineAverage Combine = iota
	CombineMin
	CombineMultiply
	CombineMax
)

// String ...
func (c Combine) String() string {
	switch c {
	case CombineAverage:
		return "average"
	case CombineMin:
		return "min"
	case CombineMultiply:
		return "multiply"
	case CombineMax:
		return "max"
	}
	return "unknown"
}

// Apply combines a and b using the rule.
func (c Combine) Apply(a, b float32) float32 {
	switch c {
	case CombineMin:
		return math32.Min(a, b)
	case CombineMultiply:
		return a * b
	case CombineMax:
		return math32.Max(a, b)
	default:
		return (a + b) * 0.5
	}
}

// Resolve returns the rule that applies when surfaces using c and other touch.
func (c Combine) Resolve(other Combine) Combine {
	if other > c {
		return other
	}
	return c
}

// Material describes the friction of a surface.
type Material struct {
	DynamicFriction float32 `toml:"dynamic_friction" yaml:"dynamic_friction"`
	StaticFriction  float32 `toml:"static_friction" yaml:"static_friction"`
	FrictionCombine Combine `toml:"friction_combine" yaml:"friction_combine"`
}

// DefaultMaterial is used for colliders that don't specify a material.
var DefaultMaterial = Material{DynamicFriction: 0.6, StaticFriction: 0.6, FrictionCombine: CombineAverage}

// CombinedFriction returns the dynamic friction between a surface of material m and a surface with
// the friction and rule given.
func (m Material) CombinedFriction(friction float32, rule Combine) float32 {
	return m.FrictionCombine.Resolve(rule).Apply(m.DynamicFriction, friction)
}
