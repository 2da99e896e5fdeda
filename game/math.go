package game

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// ApproxZero returns true if the squared length given is small enough to be treated as no movement.
func ApproxZero(sqr float32) bool {
	return sqr <= 1e-10
}

// ClampFloat clamps num between min and max.
func ClampFloat(num, min, max float32) float32 {
	if num < min {
		return min
	} else if num > max {
		return max
	}
	return num
}

// Clamp01 clamps v between 0 and 1.
func Clamp01(v float32) float32 {
	return ClampFloat(v, 0, 1)
}

// Lerp interpolates between a and b by t, with t clamped to [0, 1].
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*Clamp01(t)
}

// LerpVec3 interpolates between a and b by t, with t clamped to [0, 1].
func LerpVec3(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(Clamp01(t)))
}

// SafeNormalize returns v normalized, or a zero vector if v has no length.
func SafeNormalize(v mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if l <= 1e-7 {
		return mgl32.Vec3{}
	}
	return v.Mul(1 / l)
}

// ProjectOnPlane removes the component of v along the plane normal n.
func ProjectOnPlane(v, n mgl32.Vec3) mgl32.Vec3 {
	sqr := n.LenSqr()
	if sqr <= 1e-12 {
		return v
	}
	return v.Sub(n.Mul(v.Dot(n) / sqr))
}

// ReprojectOnPlane projects v onto the plane with normal n and restores the original length of v.
func ReprojectOnPlane(v, n mgl32.Vec3) mgl32.Vec3 {
	return SafeNormalize(ProjectOnPlane(v, n)).Mul(v.Len())
}

// YawRotation returns a rotation of the given amount of degrees around the world up axis. A yaw of zero
// faces +Z and a positive yaw turns towards +X.
func YawRotation(yaw float32) mgl32.Quat {
	return mgl32.QuatRotate(mgl32.DegToRad(yaw), Up)
}

// FromToRotation returns the shortest rotation that maps from onto to.
func FromToRotation(from, to mgl32.Vec3) mgl32.Quat {
	from, to = SafeNormalize(from), SafeNormalize(to)
	if from.LenSqr() == 0 || to.LenSqr() == 0 || from.Sub(to).LenSqr() <= 1e-12 {
		return mgl32.QuatIdent()
	}
	return mgl32.QuatBetweenVectors(from, to)
}

// AbsVec32 will return the given vector, but all the values of it are switched to their absolute values.
func AbsVec32(vec mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{math32.Abs(vec.X()), math32.Abs(vec.Y()), math32.Abs(vec.Z())}
}
