package sieroom

// Mesh is a point list that stores each distinct point once, so faces
// sharing a corner transform it once per frame.
type Mesh struct {
	Points     *Matrix
	pointIndex map[[3]float64]int
}

func NewMesh() *Mesh {
	return &Mesh{
		Points:     NewMatrix(),
		pointIndex: make(map[[3]float64]int),
	}
}

// AddPoint returns the stored copy of point and its index, adding it when it
// has not been seen before.
func (m *Mesh) AddPoint(point []float64) ([]float64, int) {
	key := [3]float64{point[0], point[1], point[2]}
	if index, found := m.pointIndex[key]; found {
		return m.Points.ThisMatrix[index], index
	}

	stored := make([]float64, len(point))
	copy(stored, point)
	m.Points.AddRow(stored)
	index := len(m.Points.ThisMatrix) - 1
	m.pointIndex[key] = index
	return stored, index
}

func (m *Mesh) Len() int {
	return len(m.Points.ThisMatrix)
}

func (m *Mesh) Copy() *Mesh {
	index := make(map[[3]float64]int, len(m.pointIndex))
	for key, value := range m.pointIndex {
		index[key] = value
	}
	return &Mesh{
		Points:     m.Points.Copy(),
		pointIndex: index,
	}
}

// FaceMesh holds face corners as homogeneous points (w = 1).
type FaceMesh struct {
	Mesh
}

func NewFaceMesh() *FaceMesh {
	return &FaceMesh{Mesh: *NewMesh()}
}

// AddFace stores the face's points in the shared point list and returns a
// face over those shared points with the index of each one.
func (fm *FaceMesh) AddFace(f *Face) (*Face, []int) {
	points := make([][]float64, len(f.Points))
	indices := make([]int, len(f.Points))
	for i, p := range f.Points {
		points[i], indices[i] = fm.AddPoint(p)
	}
	return NewFace(points, f.Col, f.GetNormal()).inheritStyle(f), indices
}

func (fm *FaceMesh) Copy() *FaceMesh {
	return &FaceMesh{Mesh: *fm.Mesh.Copy()}
}

// NormalMesh holds face normals as directions (w = 0) so translation
// leaves them alone.
type NormalMesh struct {
	Mesh
}

func NewNormalMesh() *NormalMesh {
	return &NormalMesh{Mesh: *NewMesh()}
}

func (nm *NormalMesh) AddNormal(n *Vector3) ([]float64, int) {
	return nm.AddPoint([]float64{n.X, n.Y, n.Z, 0})
}

func (nm *NormalMesh) Copy() *NormalMesh {
	return &NormalMesh{Mesh: *nm.Mesh.Copy()}
}
