package sieroom

import (
	"image"
	"image/color"
)

type recordedPolygon struct {
	xp, yp  []float32
	fill    color.RGBA
	stroke  color.RGBA
	outline bool
	tex     image.Image
	u, v    []float32
}

type recordedLabel struct {
	x, y float32
	text string
}

// recordingBatcher keeps everything painted, in order.
type recordingBatcher struct {
	polygons []recordedPolygon
	labels   []recordedLabel
}

func (b *recordingBatcher) AddPolygon(xp, yp []float32, clr color.RGBA) {
	b.polygons = append(b.polygons, recordedPolygon{xp: xp, yp: yp, fill: clr})
}

func (b *recordingBatcher) AddPolygonAndOutline(xp, yp []float32, fillClr, strokeClr color.RGBA, strokeWidth float32) {
	b.polygons = append(b.polygons, recordedPolygon{xp: xp, yp: yp, fill: fillClr, stroke: strokeClr, outline: true})
}

func (b *recordingBatcher) AddTexturedPolygon(xp, yp, u, v []float32, tex image.Image) {
	b.polygons = append(b.polygons, recordedPolygon{xp: xp, yp: yp, tex: tex, u: u, v: v})
}

func (b *recordingBatcher) AddLabel(x, y float32, text string, clr color.RGBA) {
	b.labels = append(b.labels, recordedLabel{x: x, y: y, text: text})
}

func (b *recordingBatcher) fills() []color.RGBA {
	out := make([]color.RGBA, len(b.polygons))
	for i, p := range b.polygons {
		out[i] = p.fill
	}
	return out
}
