package sieroom

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Plane is Ax + By + Cz + D = 0 with (A, B, C) the unit normal.
type Plane struct {
	A, B, C, D float64
}

// planeThickness is in world units (metres); points closer than this are on the plane.
const planeThickness = 1e-4

func NewPlane(f *Face, normal *Vector3) *Plane {
	p := &Plane{
		A: normal.X,
		B: normal.Y,
		C: normal.Z,
	}
	p.D = -(p.A*f.Points[0][0] + p.B*f.Points[0][1] + p.C*f.Points[0][2])
	return p
}

func (p *Plane) normal() mgl64.Vec3 {
	return mgl64.Vec3{p.A, p.B, p.C}
}

// PointOnPlane is the signed distance of the point, snapped to 0 within
// planeThickness.
func (p *Plane) PointOnPlane(x, y, z float64) float64 {
	num := p.A*x + p.B*y + p.C*z + p.D
	if math.Abs(num) < planeThickness {
		return 0.0
	}
	return num
}

func (p *Plane) distance(v mgl64.Vec3) float64 {
	return p.PointOnPlane(v[0], v[1], v[2])
}

// crosses is true when a and b lie strictly on opposite sides.
func (p *Plane) crosses(a, b mgl64.Vec3) bool {
	return p.distance(a)*p.distance(b) < 0
}

// intersect is where the segment a-b meets the plane.
func (p *Plane) intersect(a, b mgl64.Vec3) (mgl64.Vec3, bool) {
	dir := b.Sub(a)
	denom := p.normal().Dot(dir)
	if denom == 0 {
		return mgl64.Vec3{}, false
	}
	t := -(p.normal().Dot(a) + p.D) / denom
	return a.Add(dir.Mul(t)), true
}

// FaceIntersect reports whether the face has points strictly on both sides.
func (p *Plane) FaceIntersect(f *Face) bool {
	var d float64
	for a := 0; a < f.Cnum; a++ {
		n := p.PointOnPlane(f.Points[a][0], f.Points[a][1], f.Points[a][2])
		if n == 0 {
			continue
		}
		if d == 0 {
			d = n
			continue
		}
		if (d > 0) != (n > 0) {
			return true
		}
	}
	return false
}

// SplitFace cuts aFace along the plane. The second entry is nil when the
// face does not cross the plane.
func (p *Plane) SplitFace(aFace *Face) []*Face {
	if !p.FaceIntersect(aFace) {
		return []*Face{aFace, nil}
	}

	parts := []*Face{
		NewFace(nil, color.RGBA{}, nil),
		NewFace(nil, color.RGBA{}, nil),
	}
	add := func(side int, v mgl64.Vec3) {
		parts[side].AddPoint(v[0], v[1], v[2])
	}

	side := 0
	split := false
	n := aFace.Cnum
	for i := 0; i < n; i++ {
		cur := vec3(aFace.Points[i])
		next := vec3(aFace.Points[(i+1)%n])

		switch {
		case p.crosses(cur, next):
			split = true
			add(side, cur)
			if at, ok := p.intersect(cur, next); ok {
				add(side, at)
				side = 1 - side
				add(side, at)
			}
		case p.distance(cur) == 0:
			split = true
			add(side, cur)
			side = 1 - side
			add(side, cur)
		default:
			add(side, cur)
		}
	}

	if !split {
		return []*Face{aFace, nil}
	}
	parts[0].Finished(FACE_NORMAL)
	parts[1].Finished(FACE_NORMAL)
	return parts
}

// Where sums the signed distances of the face's points: positive is the
// front half-space.
func (p *Plane) Where(f *Face) float64 {
	var inter float64
	for i := 0; i < len(f.Points); i++ {
		inter += p.PointOnPlane(f.Points[i][0], f.Points[i][1], f.Points[i][2])
	}
	return inter
}

func vec3(p []float64) mgl64.Vec3 {
	return mgl64.Vec3{p[0], p[1], p[2]}
}
