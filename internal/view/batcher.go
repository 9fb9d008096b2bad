package view

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// Batcher paints engine polygons onto an ebiten image.
type Batcher struct {
	screen   *ebiten.Image
	whiteSub *ebiten.Image
	textures map[image.Image]*ebiten.Image
	face     text.Face
}

func NewBatcher() *Batcher {
	white := ebiten.NewImage(3, 3)
	white.Fill(color.White)
	return &Batcher{
		whiteSub: white.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image),
		textures: make(map[image.Image]*ebiten.Image),
		face:     text.NewGoXFace(basicfont.Face7x13),
	}
}

// Begin directs the following calls at screen.
func (b *Batcher) Begin(screen *ebiten.Image) {
	b.screen = screen
}

func (b *Batcher) AddPolygon(xp, yp []float32, clr color.RGBA) {
	b.fillConvexPolygon(xp, yp, clr)
}

func (b *Batcher) AddPolygonAndOutline(xp, yp []float32, fillClr, strokeClr color.RGBA, strokeWidth float32) {
	b.fillConvexPolygon(xp, yp, fillClr)
	b.drawPolygonOutline(xp, yp, strokeWidth, strokeClr)
}

// AddTexturedPolygon maps tex over a convex polygon. u and v are in [0, 1].
func (b *Batcher) AddTexturedPolygon(xp, yp, u, v []float32, tex image.Image) {
	if len(xp) < 3 || b.screen == nil {
		return
	}
	img := b.texture(tex)
	size := img.Bounds().Size()
	w, h := float32(size.X), float32(size.Y)

	vertices := make([]ebiten.Vertex, len(xp))
	for i := range xp {
		vertices[i] = ebiten.Vertex{
			DstX:   xp[i],
			DstY:   yp[i],
			SrcX:   u[i] * w,
			SrcY:   v[i] * h,
			ColorR: 1,
			ColorG: 1,
			ColorB: 1,
			ColorA: 1,
		}
	}

	op := &ebiten.DrawTrianglesOptions{}
	op.AntiAlias = true
	op.Filter = ebiten.FilterLinear
	b.screen.DrawTriangles(vertices, fanIndices(len(xp)), img, op)
}

// AddLabel centres text on (x, y).
func (b *Batcher) AddLabel(x, y float32, s string, clr color.RGBA) {
	if b.screen == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(clr)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	text.Draw(b.screen, s, b.face, op)
}

// texture uploads each decoded image once.
func (b *Batcher) texture(src image.Image) *ebiten.Image {
	if img, ok := b.textures[src]; ok {
		return img
	}
	img := ebiten.NewImageFromImage(src)
	b.textures[src] = img
	return img
}

func fanIndices(n int) []uint16 {
	indices := make([]uint16, 0, (n-2)*3)
	for i := 2; i < n; i++ {
		indices = append(indices, 0, uint16(i-1), uint16(i))
	}
	return indices
}

func (b *Batcher) fillConvexPolygon(xp, yp []float32, clr color.RGBA) {
	if len(xp) < 3 || b.screen == nil {
		return
	}

	vertices := make([]ebiten.Vertex, len(xp))
	cr, cg, cb, ca := vertexColor(clr)
	for i := range xp {
		vertices[i] = ebiten.Vertex{
			DstX:   xp[i],
			DstY:   yp[i],
			SrcX:   1,
			SrcY:   1,
			ColorR: cr,
			ColorG: cg,
			ColorB: cb,
			ColorA: ca,
		}
	}

	op := &ebiten.DrawTrianglesOptions{}
	op.AntiAlias = true
	b.screen.DrawTriangles(vertices, fanIndices(len(xp)), b.whiteSub, op)
}

func (b *Batcher) drawPolygonOutline(xp, yp []float32, strokeWidth float32, clr color.RGBA) {
	if len(xp) < 2 || b.screen == nil {
		return
	}

	var path vector.Path
	path.MoveTo(xp[0], yp[0])
	for i := 1; i < len(xp); i++ {
		path.LineTo(xp[i], yp[i])
	}
	path.Close()

	strokeOp := &vector.StrokeOptions{
		Width:    strokeWidth,
		LineJoin: vector.LineJoinMiter,
	}
	vertices, indices := path.AppendVerticesAndIndicesForStroke(nil, nil, strokeOp)

	cr, cg, cb, ca := vertexColor(clr)
	for i := range vertices {
		vertices[i].ColorR = cr
		vertices[i].ColorG = cg
		vertices[i].ColorB = cb
		vertices[i].ColorA = ca
		vertices[i].SrcX = 1
		vertices[i].SrcY = 1
	}

	b.screen.DrawTriangles(vertices, indices, b.whiteSub, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

// vertexColor is clr as vertex colour scales. color.RGBA is already
// premultiplied, as ebiten expects.
func vertexColor(clr color.RGBA) (r, g, b, a float32) {
	return float32(clr.R) / 255, float32(clr.G) / 255, float32(clr.B) / 255, float32(clr.A) / 255
}
