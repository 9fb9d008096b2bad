package sieroom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

type Vector3 struct {
	X float64
	Y float64
	Z float64
	W float64
}

func NewVector3(x, y, z float64) *Vector3 {
	return &Vector3{
		X: x,
		Y: y,
		Z: z,
		W: 1.0,
	}
}

func NewVector3dFromArray(normal []float64) *Vector3 {
	return NewVector3(normal[0], normal[1], normal[2])
}

func (v *Vector3) Normalize() {
	length := math.Sqrt(math.Abs(v.X*v.X + v.Y*v.Y + v.Z*v.Z))
	if length == 0 {
		return
	}
	v.X /= length
	v.Y /= length
	v.Z /= length
}

func (v *Vector3) Copy() *Vector3 {
	return &Vector3{
		X: v.X,
		Y: v.Y,
		Z: v.Z,
		W: v.W,
	}
}

func (v *Vector3) Vec3() mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func dot3(a, b []float64) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}
