package sieroom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	minOrbitDistance = 2.0
	maxOrbitDistance = 40.0
	maxElevation     = 85 * math.Pi / 180
)

// Camera looks from Position at Target. The view matrix maps world space to
// camera space with x to the right, y down the screen and z forward.
type Camera struct {
	Position mgl64.Vec3
	Target   mgl64.Vec3
	Up       mgl64.Vec3
	FOV      float64

	camMatrixRev *Matrix
}

func NewCameraLookAt(position, target mgl64.Vec3, fov float64) *Camera {
	c := &Camera{
		Position: position,
		Target:   target,
		Up:       mgl64.Vec3{0, 1, 0},
		FOV:      fov,
	}
	c.update()
	return c
}

func (c *Camera) update() {
	forward := c.Target.Sub(c.Position).Normalize()
	right := forward.Cross(c.Up)
	if right.Len() == 0 {
		right = mgl64.Vec3{1, 0, 0}
	}
	right = right.Normalize()
	down := forward.Cross(right)

	m := newSquare()
	for k := 0; k < 3; k++ {
		m[k][0] = right[k]
		m[k][1] = down[k]
		m[k][2] = forward[k]
	}
	m[3][0] = -right.Dot(c.Position)
	m[3][1] = -down.Dot(c.Position)
	m[3][2] = -forward.Dot(c.Position)
	m[3][3] = 1

	c.camMatrixRev = &Matrix{ThisMatrix: m}
}

// GetMatrix is the world to camera transform.
func (c *Camera) GetMatrix() *Matrix {
	return c.camMatrixRev
}

func (c *Camera) Projection(width, height float64) Projection {
	return NewProjection(width, height, c.FOV)
}

// ToCamera transforms a world point into camera space.
func (c *Camera) ToCamera(p mgl64.Vec3) mgl64.Vec3 {
	return c.camMatrixRev.TransformPoint(p)
}

func (c *Camera) Distance() float64 {
	return c.Position.Sub(c.Target).Len()
}

// Orbit turns the camera around its target by the given azimuth and
// elevation deltas in radians. Elevation stays short of the poles.
func (c *Camera) Orbit(dAzimuth, dElevation float64) {
	offset := c.Position.Sub(c.Target)
	r := offset.Len()
	if r == 0 {
		return
	}
	azimuth := math.Atan2(offset[0], offset[2]) + dAzimuth
	elevation := mgl64.Clamp(math.Asin(offset[1]/r)+dElevation, -maxElevation, maxElevation)

	c.Position = c.Target.Add(mgl64.Vec3{
		r * math.Cos(elevation) * math.Sin(azimuth),
		r * math.Sin(elevation),
		r * math.Cos(elevation) * math.Cos(azimuth),
	})
	c.update()
}

// Dolly scales the distance to the target, keeping it within the orbit limits.
func (c *Camera) Dolly(factor float64) {
	offset := c.Position.Sub(c.Target)
	r := offset.Len()
	if r == 0 || factor <= 0 {
		return
	}
	nr := mgl64.Clamp(r*factor, minOrbitDistance, maxOrbitDistance)
	c.Position = c.Target.Add(offset.Mul(nr / r))
	c.update()
}
