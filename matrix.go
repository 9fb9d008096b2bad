package sieroom

import "github.com/go-gl/mathgl/mgl64"

// Matrix is a row-vector transform: points are multiplied on the left, so the
// translation lives in row 3. a.MultiplyBy(b) applies b first, then a.
type Matrix struct {
	ThisMatrix [][]float64
}

func NewMatrix() *Matrix {
	return &Matrix{
		ThisMatrix: make([][]float64, 0, 100),
	}
}

func NewMatrixFromData(aMatrix [][]float64) *Matrix {
	m := &Matrix{
		ThisMatrix: make([][]float64, len(aMatrix)),
	}
	for i := range aMatrix {
		m.ThisMatrix[i] = make([]float64, len(aMatrix[i]))
		copy(m.ThisMatrix[i], aMatrix[i])
	}
	return m
}

func newSquare() [][]float64 {
	m := make([][]float64, 4)
	for i := range m {
		m[i] = make([]float64, 4)
	}
	return m
}

func IdentMatrix() *Matrix {
	m := newSquare()
	m[0][0], m[1][1], m[2][2], m[3][3] = 1.0, 1.0, 1.0, 1.0
	return &Matrix{ThisMatrix: m}
}

// TransMatrix moves points by (x, y, z).
func TransMatrix(x, y, z float64) *Matrix {
	nm := IdentMatrix()
	nm.ThisMatrix[3][0] = x
	nm.ThisMatrix[3][1] = y
	nm.ThisMatrix[3][2] = z
	return nm
}

func ScaleMatrix(x, y, z float64) *Matrix {
	nm := IdentMatrix()
	nm.ThisMatrix[0][0] = x
	nm.ThisMatrix[1][1] = y
	nm.ThisMatrix[2][2] = z
	return nm
}

func (m *Matrix) AddRow(row []float64) {
	m.ThisMatrix = append(m.ThisMatrix, row)
}

func (m *Matrix) MultiplyBy(aMatrix *Matrix) *Matrix {
	newMatrixData := make([][]float64, len(aMatrix.ThisMatrix))
	for i := range newMatrixData {
		newMatrixData[i] = make([]float64, 4)
	}

	for y := 0; y < 4; y++ {
		for x := 0; x < len(aMatrix.ThisMatrix); x++ {
			newMatrixData[x][y] = m.ThisMatrix[0][y]*aMatrix.ThisMatrix[x][0] +
				m.ThisMatrix[1][y]*aMatrix.ThisMatrix[x][1] +
				m.ThisMatrix[2][y]*aMatrix.ThisMatrix[x][2] +
				m.ThisMatrix[3][y]*aMatrix.ThisMatrix[x][3]
		}
	}
	return &Matrix{ThisMatrix: newMatrixData}
}

// TransformObj writes every point of src, transformed by m, into the
// matching row of dest. dest must already hold as many rows as src.
func (m *Matrix) TransformObj(src, dest *Matrix) {
	for x := 0; x < len(src.ThisMatrix); x++ {
		sx, sy, sz := src.ThisMatrix[x][0], src.ThisMatrix[x][1], src.ThisMatrix[x][2]
		dest.ThisMatrix[x][0] = m.ThisMatrix[0][0]*sx + m.ThisMatrix[1][0]*sy + m.ThisMatrix[2][0]*sz + m.ThisMatrix[3][0]
		dest.ThisMatrix[x][1] = m.ThisMatrix[0][1]*sx + m.ThisMatrix[1][1]*sy + m.ThisMatrix[2][1]*sz + m.ThisMatrix[3][1]
		dest.ThisMatrix[x][2] = m.ThisMatrix[0][2]*sx + m.ThisMatrix[1][2]*sy + m.ThisMatrix[2][2]*sz + m.ThisMatrix[3][2]
	}
}

// TransformNormals is TransformObj without the translation row.
func (m *Matrix) TransformNormals(src, dest *Matrix) {
	for x := 0; x < len(src.ThisMatrix); x++ {
		sx, sy, sz := src.ThisMatrix[x][0], src.ThisMatrix[x][1], src.ThisMatrix[x][2]
		dest.ThisMatrix[x][0] = m.ThisMatrix[0][0]*sx + m.ThisMatrix[1][0]*sy + m.ThisMatrix[2][0]*sz
		dest.ThisMatrix[x][1] = m.ThisMatrix[0][1]*sx + m.ThisMatrix[1][1]*sy + m.ThisMatrix[2][1]*sz
		dest.ThisMatrix[x][2] = m.ThisMatrix[0][2]*sx + m.ThisMatrix[1][2]*sy + m.ThisMatrix[2][2]*sz
	}
}

func (m *Matrix) TransformPoint(p mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{
		m.ThisMatrix[0][0]*p[0] + m.ThisMatrix[1][0]*p[1] + m.ThisMatrix[2][0]*p[2] + m.ThisMatrix[3][0],
		m.ThisMatrix[0][1]*p[0] + m.ThisMatrix[1][1]*p[1] + m.ThisMatrix[2][1]*p[2] + m.ThisMatrix[3][1],
		m.ThisMatrix[0][2]*p[0] + m.ThisMatrix[1][2]*p[1] + m.ThisMatrix[2][2]*p[2] + m.ThisMatrix[3][2],
	}
}

// RotateVector3 rotates v by the 3x3 part of the matrix, ignoring translation.
func (m *Matrix) RotateVector3(v *Vector3) *Vector3 {
	vx, vy, vz := v.X, v.Y, v.Z
	newX := m.ThisMatrix[0][0]*vx + m.ThisMatrix[1][0]*vy + m.ThisMatrix[2][0]*vz
	newY := m.ThisMatrix[0][1]*vx + m.ThisMatrix[1][1]*vy + m.ThisMatrix[2][1]*vz
	newZ := m.ThisMatrix[0][2]*vx + m.ThisMatrix[1][2]*vy + m.ThisMatrix[2][2]*vz
	return NewVector3(newX, newY, newZ)
}

func (m *Matrix) Copy() *Matrix {
	return NewMatrixFromData(m.ThisMatrix)
}
