package sieroom

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
)

// BoxFaces returns the six faces of an axis aligned box, wound
// counter-clockwise seen from outside.
func BoxFaces(center, size mgl64.Vec3, col color.RGBA) []*Face {
	half := size.Mul(0.5)
	lo := center.Sub(half)
	hi := center.Add(half)
	x0, y0, z0 := lo[0], lo[1], lo[2]
	x1, y1, z1 := hi[0], hi[1], hi[2]

	quads := [][4][3]float64{
		{{x0, y0, z1}, {x1, y0, z1}, {x1, y1, z1}, {x0, y1, z1}}, // +z
		{{x1, y0, z0}, {x0, y0, z0}, {x0, y1, z0}, {x1, y1, z0}}, // -z
		{{x1, y0, z1}, {x1, y0, z0}, {x1, y1, z0}, {x1, y1, z1}}, // +x
		{{x0, y0, z0}, {x0, y0, z1}, {x0, y1, z1}, {x0, y1, z0}}, // -x
		{{x0, y1, z1}, {x1, y1, z1}, {x1, y1, z0}, {x0, y1, z0}}, // +y
		{{x0, y0, z0}, {x1, y0, z0}, {x1, y0, z1}, {x0, y0, z1}}, // -y
	}

	faces := make([]*Face, 0, len(quads))
	for _, q := range quads {
		f := NewFaceEmpty(col, nil)
		for _, p := range q {
			f.AddPoint(p[0], p[1], p[2])
		}
		f.Finished(FACE_NORMAL)
		faces = append(faces, f)
	}
	return faces
}

func NewBox(name string, center, size mgl64.Vec3, col color.RGBA) *Model {
	m := NewModel(name)
	for _, f := range BoxFaces(center, size, col) {
		m.AddFace(f)
	}
	return m
}

// NewPlaneModel is a width x height rectangle in the XY plane facing +z.
// Its texture coordinates put the top of an image at the top of the plane.
func NewPlaneModel(name string, center mgl64.Vec3, width, height float64, col color.RGBA) (*Model, [][2]float64) {
	hw, hh := width/2, height/2
	cx, cy, cz := center[0], center[1], center[2]

	f := NewFaceEmpty(col, nil)
	f.AddPoint(cx-hw, cy-hh, cz)
	f.AddPoint(cx+hw, cy-hh, cz)
	f.AddPoint(cx+hw, cy+hh, cz)
	f.AddPoint(cx-hw, cy+hh, cz)
	f.Finished(FACE_NORMAL)

	m := NewModel(name)
	m.AddFace(f)
	return m, [][2]float64{{0, 1}, {1, 1}, {1, 0}, {0, 0}}
}

// NewTriangleModel builds a model from a triangle list in model space.
// Degenerate triangles are dropped.
func NewTriangleModel(name string, positions []mgl64.Vec3, indices []uint32, col color.RGBA) *Model {
	m := NewModel(name)
	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := indices[i], indices[i+1], indices[i+2]
		if int(a) >= len(positions) || int(b) >= len(positions) || int(c) >= len(positions) {
			continue
		}
		pa, pb, pc := positions[a], positions[b], positions[c]
		if pb.Sub(pa).Cross(pc.Sub(pb)).Len() < 1e-12 {
			continue
		}
		f := NewFaceEmpty(col, nil)
		f.AddPoint(pa[0], pa[1], pa[2])
		f.AddPoint(pb[0], pb[1], pb[2])
		f.AddPoint(pc[0], pc[1], pc[2])
		f.Finished(FACE_NORMAL)
		m.AddFace(f)
	}
	return m
}
