// Package render turns a room tree into engine models.
package render

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/sirupsen/logrus"

	"github.com/smasonuk/sieroom"
	"github.com/smasonuk/sieroom/internal/room"
	"github.com/smasonuk/sieroom/internal/scenegraph"
)

// labelGap is the space between a placeholder box and its label.
const labelGap = 0.15

// Build converts tree into a world ready to paint. The floor and walls form
// the BSP stage. Actors, the logo and shadows are sorted into it, so a wall
// between the camera and an actor hides the actor.
func Build(tree room.Tree) *sieroom.World {
	w := sieroom.NewWorld()
	w.SetCamera(sieroom.NewCameraLookAt(tree.Camera.Position, tree.Camera.Target, tree.Camera.FOV))

	light := Lighting(tree)
	b := &builder{world: w, light: light}

	var shadows *shadowCaster
	if caster, ok := light.ShadowCaster(); ok {
		shadows = newShadowCaster(caster.Position, tree.Shadow, receivers(tree.Elements))
	}

	shell := sieroom.NewModel("shell")
	for _, e := range tree.Elements {
		switch e.Kind {
		case room.KindFloor, room.KindWall:
			for _, f := range sieroom.BoxFaces(e.Position, e.Size, e.Color) {
				if e.Edge != nil {
					f.SetEdge(*e.Edge)
				}
				shell.AddFace(f)
			}
		case room.KindLogo:
			b.logo(e)
		case room.KindActor:
			b.actor(e, shadows)
		case room.KindFallback:
			b.fallback(e)
		}
	}
	shell.Shade(light)
	shell.Finished(true)
	w.SetStage(shell)

	if shadows != nil && shadows.model.FaceCount() > 0 {
		shadows.model.Finished(false)
		w.AddObject(shadows.model)
	}

	log.WithFields(logrus.Fields{
		"elements": len(tree.Elements),
		"models":   len(w.Objects()),
	}).Debug("world built")
	return w
}

// Lighting is the tree's ambient level and point lights.
func Lighting(tree room.Tree) *sieroom.Lighting {
	l := &sieroom.Lighting{Ambient: tree.Ambient}
	for _, p := range tree.Lights {
		l.Points = append(l.Points, sieroom.PointLight{Position: p.Position, Intensity: p.Intensity})
	}
	return l
}

type builder struct {
	world *sieroom.World
	light *sieroom.Lighting
}

// logo draws a textured plane. Without a texture a transparent logo draws
// nothing at all.
func (b *builder) logo(e room.Element) {
	col := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	if e.Transparent && e.Texture == nil {
		col.A = 0
	}
	m, coords := sieroom.NewPlaneModel(e.Name, e.Position, e.Size[0], e.Size[1], col)
	if e.Texture != nil {
		m.SetTexture(e.Texture.Image, coords)
	}
	m.Finished(false)
	b.world.AddObject(m)
}

// actor adds one model per mesh. Node transforms are baked into the mesh
// points and the element's position and scale become the model's placement.
func (b *builder) actor(e room.Element, shadows *shadowCaster) {
	place := sieroom.TransMatrix(e.Position[0], e.Position[1], e.Position[2]).
		MultiplyBy(sieroom.ScaleMatrix(e.Scale, e.Scale, e.Scale))

	i := 0
	scenegraph.Meshes(e.Scene, mgl64.Ident4(), func(n *scenegraph.Node, local mgl64.Mat4) {
		positions := make([]mgl64.Vec3, len(n.Mesh.Positions))
		for k, p := range n.Mesh.Positions {
			positions[k] = mgl64.TransformCoordinate(p, local)
		}
		indices := n.Mesh.Indices
		if local.Det() < 0 {
			indices = flipWinding(indices)
		}

		mat := n.Mesh.Material
		if mat == nil {
			mat = &scenegraph.Material{Color: color.RGBA{R: 255, G: 255, B: 255, A: 255}}
		}
		col := mat.Color
		if !mat.IsTransparent() {
			col = opaque(col)
		}

		m := sieroom.NewTriangleModel(fmt.Sprintf("%s/%d", e.Name, i), positions, indices, col)
		m.ApplyMatrix(place)
		m.SetDrawAllFaces(mat.DoubleSided)
		m.Shade(b.light)
		m.Finished(false)
		b.world.AddObject(m)
		i++

		if mat.CastShadow && shadows != nil {
			rot := m.GetRotMatrix()
			placed := make([]mgl64.Vec3, len(positions))
			for k, p := range positions {
				placed[k] = rot.TransformPoint(p)
			}
			shadows.cast(placed, indices)
		}
	})
}

func (b *builder) fallback(e room.Element) {
	m := sieroom.NewBox(e.Name, e.Position, e.Size, e.Color)
	m.Shade(b.light)
	m.Finished(false)
	b.world.AddObject(m)

	if e.Label != "" {
		at := e.Position.Add(mgl64.Vec3{0, e.Size[1]/2 + labelGap, 0})
		b.world.AddLabel(at, e.Label, e.Color)
	}
}

// opaque drops the alpha of a premultiplied colour.
func opaque(c color.RGBA) color.RGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return color.RGBA{R: n.R, G: n.G, B: n.B, A: 255}
}

func flipWinding(indices []uint32) []uint32 {
	out := make([]uint32, len(indices))
	copy(out, indices)
	for i := 0; i+2 < len(out); i += 3 {
		out[i+1], out[i+2] = out[i+2], out[i+1]
	}
	return out
}
