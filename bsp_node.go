package sieroom

type BspNode struct {
	Left  *BspNode
	Right *BspNode

	face             *Face
	facePointIndices []int
	normalIndex      int
	pointsToUse      [][]float64
}

func NewBspNode(face *Face, pointIndices []int, normalIdx int) *BspNode {
	return &BspNode{
		face:             face,
		facePointIndices: pointIndices,
		normalIndex:      normalIdx,
		pointsToUse:      make([][]float64, 0, len(pointIndices)),
	}
}

// Paint draws the subtree back to front for a camera at the camera-space
// origin. Faces seen from behind are skipped.
func (b *BspNode) Paint(batcher PolygonBatcher, proj Projection, transPoints, transNormals *Matrix) {
	b.paintWith(batcher, proj, transPoints, transNormals, nil)
}

// paintWith is Paint with loose polygons sorted into the tree. An item goes
// to the front of a node when its anchor lies in front of the node's plane.
// Items reaching an empty subtree are painted there, decals first.
func (b *BspNode) paintWith(batcher PolygonBatcher, proj Projection, transPoints, transNormals *Matrix, items []drawItem) {
	if b == nil || len(b.facePointIndices) == 0 {
		if len(items) > 0 {
			emitItems(batcher, items)
		}
		return
	}

	transformedNormal := transNormals.ThisMatrix[b.normalIndex]
	firstTransformedPoint := transPoints.ThisMatrix[b.facePointIndices[0]]

	// negative: the camera is on the front side of this node's plane
	where := dot3(transformedNormal, firstTransformedPoint)

	var front, back []drawItem
	for _, item := range items {
		if dot3(transformedNormal, item.anchor)-where > 0 {
			front = append(front, item)
		} else {
			back = append(back, item)
		}
	}

	if where < 0 {
		b.Left.paintWith(batcher, proj, transPoints, transNormals, back)
		b.paintPoly(batcher, proj, transPoints)
		b.Right.paintWith(batcher, proj, transPoints, transNormals, front)
	} else {
		b.Right.paintWith(batcher, proj, transPoints, transNormals, front)
		b.Left.paintWith(batcher, proj, transPoints, transNormals, back)
	}
}

func (b *BspNode) paintPoly(batcher PolygonBatcher, proj Projection, verticesInCameraSpace *Matrix) {
	if b.face.Col.A == 0 {
		return
	}

	pointsToUse := b.pointsToUse[:0]
	for _, pointIndex := range b.facePointIndices {
		pointsToUse = append(pointsToUse, verticesInCameraSpace.ThisMatrix[pointIndex])
	}

	xp, yp, ok := projectPolygon(proj, pointsToUse)
	if !ok {
		return
	}
	emitPolygon(batcher, xp, yp, b.face)
}

// Count is the number of nodes in the subtree.
func (b *BspNode) Count() int {
	if b == nil {
		return 0
	}
	return 1 + b.Left.Count() + b.Right.Count()
}
