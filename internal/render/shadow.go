package render

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/smasonuk/sieroom"
	"github.com/smasonuk/sieroom/internal/room"
)

// shadowLift keeps shadow polygons just above the surface they fall on.
const shadowLift = 2e-3

// receiver is the top of a flat box that takes shadows.
type receiver struct {
	y          float64
	minX, maxX float64
	minZ, maxZ float64
}

// receivers picks the shadow receiving elements whose largest face points
// up. Walls receive shadows too but nothing is cast onto them. The part of a
// receiver's top covered by a standing wall is cut away.
func receivers(elements []room.Element) []receiver {
	var out []receiver
	for i, e := range elements {
		if !e.ReceiveShadow {
			continue
		}
		s := e.Size
		if s[1] > s[0] || s[1] > s[2] {
			continue
		}
		r := receiver{
			y:    e.Position[1] + s[1]/2,
			minX: e.Position[0] - s[0]/2,
			maxX: e.Position[0] + s[0]/2,
			minZ: e.Position[2] - s[2]/2,
			maxZ: e.Position[2] + s[2]/2,
		}
		for j, w := range elements {
			if j != i && w.Kind == room.KindWall {
				r = r.under(w)
			}
		}
		if r.minX < r.maxX && r.minZ < r.maxZ {
			out = append(out, r)
		}
	}
	return out
}

// under trims r where wall w stands on it. w must rise through the
// receiver's top and overlap it. The cut is made along w's thinner horizontal side,
// keeping the part away from w's centre.
func (r receiver) under(w room.Element) receiver {
	lo, hi := w.Position.Sub(w.Size.Mul(0.5)), w.Position.Add(w.Size.Mul(0.5))
	if lo[1] > r.y || hi[1] <= r.y+shadowLift {
		return r
	}
	if hi[0] <= r.minX || lo[0] >= r.maxX || hi[2] <= r.minZ || lo[2] >= r.maxZ {
		return r
	}

	if w.Size[0] <= w.Size[2] {
		if w.Position[0] < (r.minX+r.maxX)/2 {
			r.minX = max(r.minX, hi[0])
		} else {
			r.maxX = min(r.maxX, lo[0])
		}
		return r
	}
	if w.Position[2] < (r.minZ+r.maxZ)/2 {
		r.minZ = max(r.minZ, hi[2])
	} else {
		r.maxZ = min(r.maxZ, lo[2])
	}
	return r
}

// shadowCaster projects triangles from a point light onto receivers and
// collects the results in one translucent decal model facing up.
type shadowCaster struct {
	light     mgl64.Vec3
	col       color.RGBA
	receivers []receiver
	model     *sieroom.Model
}

func newShadowCaster(light mgl64.Vec3, col color.RGBA, recv []receiver) *shadowCaster {
	m := sieroom.NewModel("shadows")
	m.SetDecal(true)
	return &shadowCaster{light: light, col: col, receivers: recv, model: m}
}

// cast adds the shadow of every triangle that faces the light. Back faces
// are skipped so a closed mesh darkens each spot once.
func (s *shadowCaster) cast(positions []mgl64.Vec3, indices []uint32) {
	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := indices[i], indices[i+1], indices[i+2]
		if int(a) >= len(positions) || int(b) >= len(positions) || int(c) >= len(positions) {
			continue
		}
		tri := []mgl64.Vec3{positions[a], positions[b], positions[c]}
		n := tri[1].Sub(tri[0]).Cross(tri[2].Sub(tri[0]))
		if n.Dot(s.light.Sub(tri[0])) <= 0 {
			continue
		}
		for _, r := range s.receivers {
			if poly, ok := r.project(s.light, tri); ok {
				s.add(poly)
			}
		}
	}
}

// add stores poly as a face whose normal points up, whatever its winding.
func (s *shadowCaster) add(poly []mgl64.Vec3) {
	f := sieroom.NewFaceEmpty(s.col, nil)
	for _, p := range poly {
		f.AddPoint(p[0], p[1], p[2])
	}
	winding := sieroom.FACE_NORMAL
	if poly[1].Sub(poly[0]).Cross(poly[2].Sub(poly[1]))[1] < 0 {
		winding = sieroom.FACE_REVERSE
	}
	f.Finished(winding)
	s.model.AddFace(f)
}

// project drops tri from light onto the receiver's top and clips it to the
// receiver's extent. Triangles with a point at or below the top, or at or
// above the light, cast nothing.
func (r receiver) project(light mgl64.Vec3, tri []mgl64.Vec3) ([]mgl64.Vec3, bool) {
	poly := make([]mgl64.Vec3, 0, len(tri))
	for _, p := range tri {
		if p[1] <= r.y || p[1] >= light[1] {
			return nil, false
		}
		t := (light[1] - r.y) / (light[1] - p[1])
		q := light.Add(p.Sub(light).Mul(t))
		q[1] = r.y + shadowLift
		poly = append(poly, q)
	}

	poly = clipAxis(poly, 0, r.minX, true)
	poly = clipAxis(poly, 0, r.maxX, false)
	poly = clipAxis(poly, 2, r.minZ, true)
	poly = clipAxis(poly, 2, r.maxZ, false)
	if len(poly) < 3 {
		return nil, false
	}
	return poly, true
}

// clipAxis keeps the part of poly with p[axis] >= limit (keepAbove) or
// p[axis] <= limit.
func clipAxis(poly []mgl64.Vec3, axis int, limit float64, keepAbove bool) []mgl64.Vec3 {
	if len(poly) == 0 {
		return poly
	}
	inside := func(p mgl64.Vec3) bool {
		if keepAbove {
			return p[axis] >= limit
		}
		return p[axis] <= limit
	}

	out := make([]mgl64.Vec3, 0, len(poly)+1)
	prev := poly[len(poly)-1]
	for _, cur := range poly {
		curIn, prevIn := inside(cur), inside(prev)
		if curIn != prevIn {
			t := (limit - prev[axis]) / (cur[axis] - prev[axis])
			out = append(out, prev.Add(cur.Sub(prev).Mul(t)))
		}
		if curIn {
			out = append(out, cur)
		}
		prev = cur
	}
	return out
}
