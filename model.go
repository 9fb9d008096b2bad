package sieroom

import (
	"image"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	log "github.com/sirupsen/logrus"
)

type Model struct {
	Name string

	faceMesh        *FaceMesh
	normalMesh      *NormalMesh
	transFaceMesh   *FaceMesh
	transNormalMesh *NormalMesh
	theFaces        *FaceStore
	root            *BspNode
	rotMatrix       *Matrix
	useBsp          bool
	finished        bool

	// for when not using BSP
	faceIndicies   [][]int
	normalIndicies []int
	drawAllFaces   bool
	decal          bool

	texture   image.Image
	texCoords [][2]float64
}

func NewModel(name string) *Model {
	return &Model{
		Name:            name,
		transFaceMesh:   NewFaceMesh(),
		transNormalMesh: NewNormalMesh(),
		theFaces:        NewFaceStore(),
		rotMatrix:       IdentMatrix(),
		faceIndicies:    make([][]int, 0),
		normalIndicies:  make([]int, 0),
	}
}

// SetDrawAllFaces disables back-face culling.
func (o *Model) SetDrawAllFaces(draw bool) {
	o.drawAllFaces = draw
}

// SetDecal marks the faces as lying on a surface of the stage. Decals are
// painted before other loose polygons sharing their region.
func (o *Model) SetDecal(decal bool) {
	o.decal = decal
}

// SetTexture maps img onto the first face. coords holds one normalized
// (u, v) per point of that face.
func (o *Model) SetTexture(img image.Image, coords [][2]float64) {
	o.texture = img
	o.texCoords = coords
}

func (o *Model) Texture() image.Image {
	return o.texture
}

func (o *Model) AddFace(f *Face) {
	o.theFaces.AddFace(f)
}

func (o *Model) FaceCount() int {
	return o.theFaces.FaceCount()
}

func (o *Model) Face(i int) *Face {
	return o.theFaces.GetFace(i)
}

// Shade bakes lighting into every face colour, lighting each face where
// the model's placement puts it. Call it before Finished.
func (o *Model) Shade(l *Lighting) {
	if l == nil {
		return
	}
	for i := 0; i < o.theFaces.FaceCount(); i++ {
		f := o.theFaces.GetFace(i)
		if len(f.Points) < 3 {
			continue
		}
		mid := o.rotMatrix.TransformPoint(f.GetMidPoint().Vec3())
		normal := o.rotMatrix.RotateVector3(f.GetNormal())
		normal.Normalize()
		f.SetColor(l.Shade(f.Col, mid, normal.Vec3()))
	}
}

func (o *Model) createFaceList() {
	faces, newFaces, newNormMesh := o.theFaces, o.transFaceMesh, o.transNormalMesh
	for i := 0; i < faces.FaceCount(); i++ {
		originalFace := faces.GetFace(i)
		_, ind := newFaces.AddFace(originalFace)

		_, normalIndex := newNormMesh.AddNormal(originalFace.GetNormal())

		o.faceIndicies = append(o.faceIndicies, ind)
		o.normalIndicies = append(o.normalIndicies, normalIndex)
	}
}

// Finished freezes the geometry. With useBspTree the faces are compiled into
// a BSP tree and painted in tree order, otherwise they are painted through
// the world's depth sort.
func (o *Model) Finished(useBspTree bool) {
	if o.finished {
		return
	}
	if o.theFaces.FaceCount() > 0 {
		if useBspTree {
			o.root = o.createBspTree(o.theFaces.Copy(), o.transFaceMesh, o.transNormalMesh)
		} else {
			o.createFaceList()
		}
	}
	o.useBsp = useBspTree
	o.finished = true

	o.faceMesh = o.transFaceMesh.Copy()
	o.normalMesh = o.transNormalMesh.Copy()

	log.WithFields(log.Fields{
		"model":   o.Name,
		"faces":   o.theFaces.FaceCount(),
		"points":  o.faceMesh.Len(),
		"normals": o.normalMesh.Len(),
		"bsp":     o.root.Count(),
	}).Debug("model finished")
}

// Bounds is the axis aligned box around the model's placed points.
func (o *Model) Bounds() (mgl64.Vec3, mgl64.Vec3) {
	if o.faceMesh == nil || o.faceMesh.Len() == 0 {
		return mgl64.Vec3{}, mgl64.Vec3{}
	}

	inf := math.Inf(1)
	lo := mgl64.Vec3{inf, inf, inf}
	hi := mgl64.Vec3{-inf, -inf, -inf}
	for _, point := range o.faceMesh.Points.ThisMatrix {
		p := o.rotMatrix.TransformPoint(vec3(point))
		for k := 0; k < 3; k++ {
			lo[k] = math.Min(lo[k], p[k])
			hi[k] = math.Max(hi[k], p[k])
		}
	}
	return lo, hi
}

func (o *Model) GetExtents() (float64, float64, float64) {
	lo, hi := o.Bounds()
	d := hi.Sub(lo)
	return d[0], d[1], d[2]
}

// ApplyMatrix composes m after the model's own placement.
func (o *Model) ApplyMatrix(m *Matrix) {
	o.rotMatrix = m.MultiplyBy(o.rotMatrix)
}

func (o *Model) GetRotMatrix() *Matrix {
	return o.rotMatrix
}

// ApplyMatrixTemp transforms the model by its placement and then aMatrix,
// leaving the result in the transformed meshes used for painting.
func (o *Model) ApplyMatrixTemp(aMatrix *Matrix) {
	if !o.finished {
		return
	}
	rotMatrixTemp := aMatrix.MultiplyBy(o.rotMatrix)

	rotMatrixTemp.TransformNormals(o.normalMesh.Points, o.transNormalMesh.Points)
	rotMatrixTemp.TransformObj(o.faceMesh.Points, o.transFaceMesh.Points)
}

// PaintObject paints a model that has been moved into camera space by
// ApplyMatrixTemp. BSP models paint in tree order, others in face order.
func (o *Model) PaintObject(batcher PolygonBatcher, proj Projection) {
	if o.useBsp {
		if o.root != nil {
			o.root.Paint(batcher, proj, o.transFaceMesh.Points, o.transNormalMesh.Points)
		}
		return
	}

	var list drawList
	o.collect(&list, proj)
	list.emit(batcher)
}

// collect adds the visible faces of a non-BSP model to the depth sorted list.
func (o *Model) collect(list *drawList, proj Projection) {
	points := o.transFaceMesh.Points.ThisMatrix
	normals := o.transNormalMesh.Points.ThisMatrix

	for i, indices := range o.faceIndicies {
		face := o.theFaces.GetFace(i)
		if len(indices) < 3 {
			continue
		}

		pts := make([][]float64, len(indices))
		anchor := make([]float64, 3)
		for k, idx := range indices {
			pts[k] = points[idx]
			for c := 0; c < 3; c++ {
				anchor[c] += pts[k][c] / float64(len(indices))
			}
		}
		depth := anchor[2]

		if !o.drawAllFaces && dot3(normals[o.normalIndicies[i]], pts[0]) >= 0 {
			continue
		}

		if i == 0 && o.texture != nil && len(o.texCoords) == len(indices) {
			if item, ok := o.texturedItem(proj, pts, depth); ok {
				item.anchor, item.decal = anchor, o.decal
				list.add(item)
				continue
			}
		}

		if face.Col.A == 0 {
			continue
		}
		xp, yp, ok := projectPolygon(proj, pts)
		if !ok {
			continue
		}
		list.add(drawItem{depth: depth, anchor: anchor, decal: o.decal, xp: xp, yp: yp, face: face})
	}
}

// texturedItem projects a textured face. Faces crossing the near plane are
// left to the untextured path.
func (o *Model) texturedItem(proj Projection, pts [][]float64, depth float64) (drawItem, bool) {
	xp := make([]float32, len(pts))
	yp := make([]float32, len(pts))
	u := make([]float32, len(pts))
	v := make([]float32, len(pts))
	for k, p := range pts {
		if p[2] < nearPlaneZ {
			return drawItem{}, false
		}
		xp[k] = proj.ToScreenX(p[0], p[2])
		yp[k] = proj.ToScreenY(p[1], p[2])
		u[k] = float32(o.texCoords[k][0])
		v[k] = float32(o.texCoords[k][1])
	}
	return drawItem{depth: depth, xp: xp, yp: yp, u: u, v: v, tex: o.texture}, true
}

func (o *Model) createBspTree(faces *FaceStore, newFaces *FaceMesh, newNormMesh *NormalMesh) *BspNode {
	if faces.FaceCount() == 0 {
		return nil
	}

	parentFace := o.choosePlane(faces)
	originalNormal, normalIndex := newNormMesh.AddNormal(parentFace.GetNormal())
	parentFace.SetNormal(NewVector3dFromArray(originalNormal))
	newFace, parentIndices := newFaces.AddFace(parentFace)
	parent := NewBspNode(newFace, parentIndices, normalIndex)
	pPlane := NewPlane(newFace, newFace.GetNormal())

	fvLeft := NewFaceStore()
	fvRight := NewFaceStore()

	for a := 0; a < faces.FaceCount(); a++ {
		currentFace := faces.GetFace(a)
		if pPlane.FaceIntersect(currentFace) {
			split := pPlane.SplitFace(currentFace)
			for _, facePart := range split {
				if facePart == nil || len(facePart.Points) < 3 {
					continue
				}
				part := NewFace(facePart.Points, currentFace.Col, currentFace.GetNormal()).inheritStyle(currentFace)
				if pPlane.Where(part) <= 0 {
					fvLeft.AddFace(part)
				} else {
					fvRight.AddFace(part)
				}
			}
		} else {
			if pPlane.Where(currentFace) <= 0 {
				fvLeft.AddFace(currentFace)
			} else {
				fvRight.AddFace(currentFace)
			}
		}
	}

	if fvLeft.FaceCount() > 0 {
		parent.Left = o.createBspTree(fvLeft, newFaces, newNormMesh)
	}
	if fvRight.FaceCount() > 0 {
		parent.Right = o.createBspTree(fvRight, newFaces, newNormMesh)
	}

	return parent
}

// choosePlane removes and returns the face whose plane splits the fewest others.
func (o *Model) choosePlane(fs *FaceStore) *Face {
	leastFace, leastFaceTotal := 0, fs.FaceCount()

	for chosen := 0; chosen < fs.FaceCount(); chosen++ {
		total := 0
		p := fs.GetFace(chosen).GetPlane()
		for i := 0; i < fs.FaceCount(); i++ {
			if i == chosen {
				continue
			}
			if p.FaceIntersect(fs.GetFace(i)) {
				total++
			}
		}
		if total < leastFaceTotal {
			leastFaceTotal = total
			leastFace = chosen
			if total == 0 {
				break
			}
		}
	}
	return fs.RemoveFaceAt(leastFace)
}
