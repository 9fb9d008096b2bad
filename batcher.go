package sieroom

import (
	"image"
	"image/color"
)

// PolygonBatcher receives screen-space output in painting order.
// Texture coordinates passed to AddTexturedPolygon are normalized to [0, 1].
type PolygonBatcher interface {
	AddPolygon(xp, yp []float32, clr color.RGBA)
	AddPolygonAndOutline(xp, yp []float32, fillClr, strokeClr color.RGBA, strokeWidth float32)
	AddTexturedPolygon(xp, yp, u, v []float32, tex image.Image)
	AddLabel(x, y float32, text string, clr color.RGBA)
}

const edgeWidth = 2.0

func emitPolygon(batcher PolygonBatcher, xp, yp []float32, face *Face) {
	if face.HasEdge {
		batcher.AddPolygonAndOutline(xp, yp, face.Col, face.Edge, edgeWidth)
		return
	}
	batcher.AddPolygon(xp, yp, face.Col)
}

// projectPolygon clips camera-space points to the near plane and the screen.
// ok is false when nothing is left to draw.
func projectPolygon(proj Projection, points [][]float64) (xp, yp []float32, ok bool) {
	clipped := clipPolygonAgainstNearPlane(points)
	if len(clipped) < 3 {
		return nil, nil, false
	}

	screen := make([]Point, len(clipped))
	for i, p := range clipped {
		screen[i] = Point{
			X: proj.ToScreenX(p[0], p[2]),
			Y: proj.ToScreenY(p[1], p[2]),
		}
	}

	screen = clipPolygon(screen, float32(proj.Width), float32(proj.Height))
	if len(screen) < 3 {
		return nil, nil, false
	}

	xp = make([]float32, len(screen))
	yp = make([]float32, len(screen))
	for i, p := range screen {
		xp[i] = p.X
		yp[i] = p.Y
	}
	return xp, yp, true
}
