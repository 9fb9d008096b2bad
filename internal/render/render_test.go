package render

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smasonuk/sieroom/internal/assets"
	"github.com/smasonuk/sieroom/internal/config"
	"github.com/smasonuk/sieroom/internal/room"
	"github.com/smasonuk/sieroom/internal/scenegraph"
)

type painted struct {
	fill    color.RGBA
	outline bool
	tex     image.Image
}

type recordingBatcher struct {
	polygons []painted
	labels   []string
}

func (b *recordingBatcher) AddPolygon(xp, yp []float32, clr color.RGBA) {
	b.polygons = append(b.polygons, painted{fill: clr})
}

func (b *recordingBatcher) AddPolygonAndOutline(xp, yp []float32, fillClr, strokeClr color.RGBA, strokeWidth float32) {
	b.polygons = append(b.polygons, painted{fill: fillClr, outline: true})
}

func (b *recordingBatcher) AddTexturedPolygon(xp, yp, u, v []float32, tex image.Image) {
	b.polygons = append(b.polygons, painted{tex: tex})
}

func (b *recordingBatcher) AddLabel(x, y float32, text string, clr color.RGBA) {
	b.labels = append(b.labels, text)
}

func (b *recordingBatcher) count(match func(painted) bool) int {
	n := 0
	for _, p := range b.polygons {
		if match(p) {
			n++
		}
	}
	return n
}

func cubeScene() *scenegraph.Node {
	root := scenegraph.NewNode("cube")
	root.Mesh = &scenegraph.Mesh{
		Positions: []mgl64.Vec3{
			{-0.5, -0.5, -0.5}, {0.5, -0.5, -0.5}, {0.5, 0.5, -0.5}, {-0.5, 0.5, -0.5},
			{-0.5, -0.5, 0.5}, {0.5, -0.5, 0.5}, {0.5, 0.5, 0.5}, {-0.5, 0.5, 0.5},
		},
		Indices: []uint32{
			4, 5, 6, 4, 6, 7,
			1, 0, 3, 1, 3, 2,
			5, 1, 2, 5, 2, 6,
			0, 4, 7, 0, 7, 3,
			7, 6, 2, 7, 2, 3,
			0, 1, 5, 0, 5, 4,
		},
		Material: &scenegraph.Material{
			Color:         color.RGBA{R: 100, G: 100, B: 200, A: 255},
			CastShadow:    true,
			ReceiveShadow: true,
		},
	}
	return root
}

// testTree is the default room with the given actor elements and a plain
// logo texture.
func testTree(actors ...room.Element) room.Tree {
	cfg := config.Default().Scene
	tree := room.Tree{
		Camera:  cfg.Camera,
		Ambient: cfg.Ambient,
		Shadow:  cfg.Shadow.ToRGBA(),
	}
	for _, l := range cfg.Lights {
		tree.Lights = append(tree.Lights, room.Light{Position: l.Position, Intensity: l.Intensity})
	}

	box := func(kind room.Kind, b config.BoxConfig) room.Element {
		e := room.Element{Kind: kind, Name: b.Name, Position: b.Position, Size: b.Size, Color: b.Color.ToRGBA(), ReceiveShadow: b.ReceiveShadow}
		if b.Edge != nil {
			edge := b.Edge.ToRGBA()
			e.Edge = &edge
		}
		return e
	}
	tree.Elements = append(tree.Elements, box(room.KindFloor, cfg.Floor))
	for _, w := range cfg.Walls {
		tree.Elements = append(tree.Elements, box(room.KindWall, w))
	}

	logo := image.NewRGBA(image.Rect(0, 0, 4, 4))
	tree.Elements = append(tree.Elements, room.Element{
		Kind:        room.KindLogo,
		Name:        "logo",
		Position:    cfg.Logo.Position,
		Size:        mgl64.Vec3{cfg.Logo.Width, cfg.Logo.Height, 0},
		Transparent: true,
		Texture:     &assets.Texture{Image: logo, Source: assets.SRGB},
	})
	tree.Elements = append(tree.Elements, actors...)
	return tree
}

func chair() room.Element {
	return room.Element{
		Kind:     room.KindActor,
		Name:     "chair",
		Position: mgl64.Vec3{0, 0.9, 0},
		Scale:    0.8,
		Scene:    cubeScene(),
	}
}

func paint(t *testing.T, tree room.Tree) *recordingBatcher {
	t.Helper()
	w := Build(tree)
	b := &recordingBatcher{}
	w.PaintObjects(b, 1024, 768)
	return b
}

func TestBuildStaticRoom(t *testing.T) {
	w := Build(testTree())
	objects := w.Objects()
	require.Len(t, objects, 2)
	assert.Equal(t, "shell", objects[0].Name)
	assert.Equal(t, "logo", objects[1].Name)

	b := &recordingBatcher{}
	w.PaintObjects(b, 1024, 768)
	assert.Positive(t, b.count(func(p painted) bool { return p.outline }), "walls are outlined")
	assert.Equal(t, 1, b.count(func(p painted) bool { return p.tex != nil }), "logo")
	assert.Empty(t, b.labels)
}

func TestBuildActorCastsShadow(t *testing.T) {
	w := Build(testTree(chair()))
	names := make([]string, 0)
	for _, m := range w.Objects() {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"shell", "logo", "chair/0", "shadows"}, names)

	actor := w.Objects()[2]
	min, max := actor.Bounds()
	assert.InDelta(t, 0.5, min[1], 1e-9)
	assert.InDelta(t, 1.3, max[1], 1e-9)
	assert.InDelta(t, -0.4, min[0], 1e-9)

	b := paint(t, testTree(chair()))
	shadow := config.Default().Scene.Shadow.ToRGBA()
	assert.Positive(t, b.count(func(p painted) bool { return p.fill == shadow }))
}

func TestActorWithoutShadowCastsNone(t *testing.T) {
	c := chair()
	c.Scene.Mesh.Material.CastShadow = false

	for _, m := range Build(testTree(c)).Objects() {
		assert.NotEqual(t, "shadows", m.Name)
	}
}

func TestFallbackBoxAndLabel(t *testing.T) {
	cfg := config.Default().Scene
	fb := room.NewFallback(cfg.Fallback).Element("chair", mgl64.Vec3{0, 0.9, 0}, errors.New("boom"))

	w := Build(testTree(fb))
	objects := w.Objects()
	require.Len(t, objects, 3)
	box := objects[2]
	assert.Equal(t, "chair", box.Name)
	assert.Equal(t, 6, box.FaceCount())
	min, max := box.Bounds()
	assert.InDelta(t, 0.75, min[1], 1e-9)
	assert.InDelta(t, 1.05, max[1], 1e-9)

	b := &recordingBatcher{}
	w.PaintObjects(b, 1024, 768)
	assert.Equal(t, []string{"Model Error"}, b.labels)
	assert.Positive(t, b.count(func(p painted) bool { return p.tex == nil && p.fill.R > 100 && p.fill.G < 50 }))
}

func TestTransparentLogoWithoutTexture(t *testing.T) {
	tree := testTree()
	for i, e := range tree.Elements {
		if e.Kind == room.KindLogo {
			tree.Elements[i].Texture = nil
		}
	}

	w := Build(tree)
	logo := w.Objects()[1]
	require.Equal(t, "logo", logo.Name)
	assert.Nil(t, logo.Texture())
	assert.Equal(t, uint8(0), logo.Face(0).Col.A)

	b := &recordingBatcher{}
	w.PaintObjects(b, 1024, 768)
	assert.Zero(t, b.count(func(p painted) bool { return p.tex != nil || p.fill.A == 0 }))
}

func TestMirroredActorKeepsOutwardFaces(t *testing.T) {
	c := chair()
	c.Scene.Transform = mgl64.Scale3D(-1, 1, 1)

	w := Build(testTree(c))
	actor := w.Objects()[2]
	require.Equal(t, "chair/0", actor.Name)
	place := actor.GetRotMatrix()
	for i := 0; i < actor.FaceCount(); i++ {
		f := actor.Face(i)
		mid := place.TransformPoint(f.GetMidPoint().Vec3())
		out := mid.Sub(mgl64.Vec3{0, 0.9, 0})
		assert.Positive(t, place.RotateVector3(f.GetNormal()).Vec3().Dot(out), "face %d", i)
	}
}

func TestActorPlacedByModelMatrix(t *testing.T) {
	w := Build(testTree(chair()))
	actor := w.Objects()[2]

	// mesh points stay in model space, the placement moves them
	local := actor.Face(0).GetMidPoint().Vec3()
	placed := actor.GetRotMatrix().TransformPoint(local)
	want := local.Mul(0.8).Add(mgl64.Vec3{0, 0.9, 0})
	for k := 0; k < 3; k++ {
		assert.InDelta(t, want[k], placed[k], 1e-9)
	}
}

func TestActorAlphaFollowsMaterial(t *testing.T) {
	half := color.RGBA{R: 50, G: 50, B: 100, A: 128}

	c := chair()
	c.Scene.Mesh.Material.Color = half
	actor := Build(testTree(c)).Objects()[2]
	assert.Equal(t, uint8(255), actor.Face(0).Col.A, "opaque material")

	c = chair()
	c.Scene.Mesh.Material.Color = half
	c.Scene.Mesh.Material.Transparent = true
	actor = Build(testTree(c)).Objects()[2]
	assert.Equal(t, uint8(128), actor.Face(0).Col.A, "blended material")
}

func TestWallHidesActorAfterOrbit(t *testing.T) {
	w := Build(testTree(chair()))
	w.Camera().Orbit(math.Pi/2, 0)
	require.Greater(t, w.Camera().Position[0], 3.2, "camera is outside the right wall")

	b := &recordingBatcher{}
	w.PaintObjects(b, 1024, 768)

	lastChair, lastWall := -1, -1
	for i, p := range b.polygons {
		switch {
		case p.outline:
			lastWall = i
		case p.tex == nil && p.fill.B > p.fill.R:
			lastChair = i
		}
	}
	require.NotEqual(t, -1, lastChair)
	assert.Less(t, lastChair, lastWall, "the right wall is painted over the chair")
}

func TestShadowsNotSeenFromBelowFloor(t *testing.T) {
	tree := testTree(chair())
	tree.Camera.Position = mgl64.Vec3{0, -4, 6}
	tree.Camera.Target = mgl64.Vec3{0, 0, 0}

	b := paint(t, tree)
	shadow := config.Default().Scene.Shadow.ToRGBA()
	assert.Zero(t, b.count(func(p painted) bool { return p.fill == shadow }))
}

func TestLightingFromTree(t *testing.T) {
	l := Lighting(testTree())
	assert.Equal(t, 0.55, l.Ambient)
	require.Len(t, l.Points, 1)
	assert.Equal(t, mgl64.Vec3{10, 10, 10}, l.Points[0].Position)
}
