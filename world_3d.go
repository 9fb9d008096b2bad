package sieroom

import (
	"image"
	"image/color"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

type drawItem struct {
	depth  float64
	anchor []float64
	decal  bool
	xp, yp []float32
	face   *Face

	tex  image.Image
	u, v []float32
}

// drawList collects polygons from several models so they can be painted
// furthest first.
type drawList struct {
	items []drawItem
}

func (l *drawList) add(item drawItem) {
	l.items = append(l.items, item)
}

func (l *drawList) emit(batcher PolygonBatcher) {
	emitItems(batcher, l.items)
	l.items = l.items[:0]
}

// emitItems paints decals in insertion order, then everything else furthest
// first.
func emitItems(batcher PolygonBatcher, items []drawItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].decal != items[j].decal {
			return items[i].decal
		}
		if items[i].decal {
			return false
		}
		return items[i].depth > items[j].depth
	})
	for _, item := range items {
		if item.tex != nil {
			batcher.AddTexturedPolygon(item.xp, item.yp, item.u, item.v, item.tex)
			continue
		}
		emitPolygon(batcher, item.xp, item.yp, item.face)
	}
}

type label struct {
	position mgl64.Vec3
	text     string
	col      color.RGBA
}

// World holds everything painted for one frame. Objects are depth sorted
// polygon by polygon. When a stage is set the sorted polygons are painted
// inside its BSP tree, each on the side of every splitting plane its centre
// lies on. Labels go on top.
type World struct {
	objects []*Model
	stage   *Model
	labels  []label
	camera  *Camera
	list    drawList
}

func NewWorld() *World {
	return &World{}
}

func (w *World) AddObject(obj *Model) {
	w.objects = append(w.objects, obj)
}

// SetStage makes m the BSP model the other objects are painted within.
func (w *World) SetStage(m *Model) {
	w.stage = m
}

func (w *World) AddLabel(position mgl64.Vec3, text string, col color.RGBA) {
	w.labels = append(w.labels, label{position: position, text: text, col: col})
}

func (w *World) SetCamera(c *Camera) {
	w.camera = c
}

func (w *World) Camera() *Camera {
	return w.camera
}

func (w *World) Objects() []*Model {
	var all []*Model
	if w.stage != nil {
		all = append(all, w.stage)
	}
	return append(all, w.objects...)
}

func (w *World) PaintObjects(batcher PolygonBatcher, xsize, ysize int) {
	if w.camera == nil {
		return
	}
	cam := w.camera.GetMatrix()
	proj := w.camera.Projection(float64(xsize), float64(ysize))

	for _, obj := range w.objects {
		obj.ApplyMatrixTemp(cam)
		if obj.useBsp {
			obj.PaintObject(batcher, proj)
			continue
		}
		obj.collect(&w.list, proj)
	}

	switch {
	case w.stage == nil:
		w.list.emit(batcher)
	case w.stage.useBsp:
		w.stage.ApplyMatrixTemp(cam)
		w.stage.root.paintWith(batcher, proj, w.stage.transFaceMesh.Points, w.stage.transNormalMesh.Points, w.list.items)
		w.list.items = w.list.items[:0]
	default:
		w.stage.ApplyMatrixTemp(cam)
		w.stage.collect(&w.list, proj)
		w.list.emit(batcher)
	}

	for _, l := range w.labels {
		p := w.camera.ToCamera(l.position)
		if p[2] < nearPlaneZ {
			continue
		}
		batcher.AddLabel(proj.ToScreenX(p[0], p[2]), proj.ToScreenY(p[1], p[2]), l.text, l.col)
	}
}
