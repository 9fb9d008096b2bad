package sieroom

import "math"

// nearPlaneZ is the camera-space depth below which geometry is cut away.
const nearPlaneZ = 0.1

type Point struct {
	X, Y float32
}

// Projection maps camera-space points (x right, y down, z forward) to pixels.
type Projection struct {
	Width  float64
	Height float64
	Focal  float64
}

// NewProjection derives the focal length from a vertical field of view in degrees.
func NewProjection(width, height, fovDegrees float64) Projection {
	half := fovDegrees * math.Pi / 360
	return Projection{
		Width:  width,
		Height: height,
		Focal:  (height / 2) / math.Tan(half),
	}
}

func (p Projection) ToScreenX(x, z float64) float32 {
	return float32(p.Focal*x/z + p.Width/2)
}

func (p Projection) ToScreenY(y, z float64) float32 {
	return float32(p.Focal*y/z + p.Height/2)
}

// FromScreen is the inverse of ToScreenX/ToScreenY at depth z.
func (p Projection) FromScreen(sx, sy, z float64) (float64, float64) {
	x := (sx - p.Width/2) * z / p.Focal
	y := (sy - p.Height/2) * z / p.Focal
	return x, y
}

// clipPolygonAgainstNearPlane keeps the part of a camera-space polygon with
// z >= nearPlaneZ.
func clipPolygonAgainstNearPlane(points [][]float64) [][]float64 {
	if len(points) == 0 {
		return [][]float64{}
	}

	out := make([][]float64, 0, len(points)+2)
	prev := points[len(points)-1]
	prevIn := prev[2] >= nearPlaneZ
	for _, cur := range points {
		curIn := cur[2] >= nearPlaneZ
		switch {
		case curIn && prevIn:
			out = append(out, cur)
		case curIn && !prevIn:
			out = append(out, intersectNearPlane(prev, cur), cur)
		case !curIn && prevIn:
			out = append(out, intersectNearPlane(prev, cur))
		}
		prev, prevIn = cur, curIn
	}
	return out
}

// intersectNearPlane returns where p1-p2 crosses the near plane, or p1 when
// the segment runs parallel to it.
func intersectNearPlane(p1, p2 []float64) []float64 {
	dz := p2[2] - p1[2]
	if dz == 0 {
		return []float64{p1[0], p1[1], p1[2]}
	}
	t := (nearPlaneZ - p1[2]) / dz
	return []float64{
		p1[0] + (p2[0]-p1[0])*t,
		p1[1] + (p2[1]-p1[1])*t,
		nearPlaneZ,
	}
}

type clipEdge struct {
	inside    func(Point) bool
	intersect func(a, b Point) Point
}

// clipPolygon clips screen points to [0, width+1] x [0, height+1].
func clipPolygon(points []Point, screenWidth, screenHeight float32) []Point {
	maxX := screenWidth + 1
	maxY := screenHeight + 1

	atX := func(a, b Point, x float32) Point {
		t := (x - a.X) / (b.X - a.X)
		return Point{X: x, Y: a.Y + (b.Y-a.Y)*t}
	}
	atY := func(a, b Point, y float32) Point {
		t := (y - a.Y) / (b.Y - a.Y)
		return Point{X: a.X + (b.X-a.X)*t, Y: y}
	}

	edges := []clipEdge{
		{func(p Point) bool { return p.X >= 0 }, func(a, b Point) Point { return atX(a, b, 0) }},
		{func(p Point) bool { return p.X <= maxX }, func(a, b Point) Point { return atX(a, b, maxX) }},
		{func(p Point) bool { return p.Y >= 0 }, func(a, b Point) Point { return atY(a, b, 0) }},
		{func(p Point) bool { return p.Y <= maxY }, func(a, b Point) Point { return atY(a, b, maxY) }},
	}

	out := points
	for _, e := range edges {
		if len(out) == 0 {
			break
		}
		in := out
		out = make([]Point, 0, len(in)+2)
		prev := in[len(in)-1]
		for _, cur := range in {
			curIn, prevIn := e.inside(cur), e.inside(prev)
			switch {
			case curIn && prevIn:
				out = append(out, cur)
			case curIn && !prevIn:
				out = append(out, e.intersect(prev, cur), cur)
			case !curIn && prevIn:
				out = append(out, e.intersect(prev, cur))
			}
			prev = cur
		}
	}
	return out
}
