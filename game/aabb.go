package game

import (
	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

// ClosestPointToBBox returns the point on or inside the bounding box that is closest to v.
func ClosestPointToBBox(v mgl32.Vec3, bb cube.BBox) mgl32.Vec3 {
	min, max := bb.Min(), bb.Max()
	return mgl32.Vec3{
		ClampFloat(v.X(), min.X(), max.X()),
		ClampFloat(v.Y(), min.Y(), max.Y()),
		ClampFloat(v.Z(), min.Z(), max.Z()),
	}
}

// AABBVectorDistance calculates the distance between an AABB and a vector.
func AABBVectorDistance(a cube.BBox, v mgl32.Vec3) float32 {
	x := math32.Max(a.Min().X()-v.X(), math32.Max(0, v.X()-a.Max().X()))
	y := math32.Max(a.Min().Y()-v.Y(), math32.Max(0, v.Y()-a.Max().Y()))
	z := math32.Max(a.Min().Z()-v.Z(), math32.Max(0, v.Z()-a.Max().Z()))
	return math32.Sqrt(x*x + y*y + z*z)
}

// BBoxContains returns true if v lies inside the bounding box or on its surface.
func BBoxContains(bb cube.BBox, v mgl32.Vec3) bool {
	min, max := bb.Min(), bb.Max()
	return v.X() >= min.X() && v.X() <= max.X() &&
		v.Y() >= min.Y() && v.Y() <= max.Y() &&
		v.Z() >= min.Z() && v.Z() <= max.Z()
}

// BBoxFromPoints returns the smallest bounding box containing all points given.
func BBoxFromPoints(points ...mgl32.Vec3) cube.BBox {
	min := mgl32.Vec3{math32.MaxFloat32, math32.MaxFloat32, math32.MaxFloat32}
	max := min.Mul(-1)
	for _, p := range points {
		for i := 0; i < 3; i++ {
			min[i] = math32.Min(min[i], p[i])
			max[i] = math32.Max(max[i], p[i])
		}
	}
	return cube.Box(min.X(), min.Y(), min.Z(), max.X(), max.Y(), max.Z())
}
