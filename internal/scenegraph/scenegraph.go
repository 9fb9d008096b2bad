// Package scenegraph is the parsed form of a loaded model: a tree of
// transformed nodes, some of which carry a triangle mesh and its material.
package scenegraph

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Material describes how a mesh surface is drawn.
type Material struct {
	Name  string
	Color color.RGBA

	Transparent bool
	DoubleSided bool

	CastShadow    bool
	ReceiveShadow bool
}

// IsTransparent is true when the material blends and its colour is not
// opaque. Other materials draw at full alpha.
func (mt *Material) IsTransparent() bool {
	return mt.Transparent && mt.Color.A < 255
}

// Mesh is an indexed triangle list in node space.
type Mesh struct {
	Positions []mgl64.Vec3
	Indices   []uint32
	Material  *Material
}

func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

type Node struct {
	Name      string
	Transform mgl64.Mat4
	Mesh      *Mesh
	Children  []*Node
}

func NewNode(name string) *Node {
	return &Node{Name: name, Transform: mgl64.Ident4()}
}

func (n *Node) AddChild(child *Node) *Node {
	n.Children = append(n.Children, child)
	return child
}

const (
	Continue = true
	Break    = false
)

// Visitor is called for every node in depth-first pre-order with the node's
// world transform. Returning Break skips the node's children.
type Visitor interface {
	Visit(n *Node, world mgl64.Mat4) bool
}

type VisitorFunc func(n *Node, world mgl64.Mat4) bool

func (f VisitorFunc) Visit(n *Node, world mgl64.Mat4) bool {
	return f(n, world)
}

// Walk visits root and its descendants. parent is the transform above root.
func Walk(root *Node, parent mgl64.Mat4, v Visitor) {
	if root == nil {
		return
	}
	world := parent.Mul4(root.Transform)
	if !v.Visit(root, world) {
		return
	}
	for _, c := range root.Children {
		Walk(c, world, v)
	}
}

// Meshes calls fn for every mesh under root.
func Meshes(root *Node, parent mgl64.Mat4, fn func(n *Node, world mgl64.Mat4)) {
	Walk(root, parent, VisitorFunc(func(n *Node, world mgl64.Mat4) bool {
		if n.Mesh != nil {
			fn(n, world)
		}
		return Continue
	}))
}

// Clone copies the node tree and its materials. Vertex data is shared, it
// is never modified after loading. Materials shared between meshes stay
// shared in the copy.
func Clone(root *Node) *Node {
	if root == nil {
		return nil
	}
	return cloneNode(root, make(map[*Material]*Material))
}

func cloneNode(n *Node, materials map[*Material]*Material) *Node {
	out := &Node{Name: n.Name, Transform: n.Transform}
	if n.Mesh != nil {
		mesh := *n.Mesh
		if n.Mesh.Material != nil {
			mat, ok := materials[n.Mesh.Material]
			if !ok {
				copied := *n.Mesh.Material
				mat = &copied
				materials[n.Mesh.Material] = mat
			}
			mesh.Material = mat
		}
		out.Mesh = &mesh
	}
	for _, c := range n.Children {
		out.Children = append(out.Children, cloneNode(c, materials))
	}
	return out
}

// Bounds is the axis aligned box of every mesh vertex under root in the
// parent's space. ok is false when there are no vertices.
func Bounds(root *Node, parent mgl64.Mat4) (min, max mgl64.Vec3, ok bool) {
	inf := math.Inf(1)
	min = mgl64.Vec3{inf, inf, inf}
	max = mgl64.Vec3{-inf, -inf, -inf}
	Meshes(root, parent, func(n *Node, world mgl64.Mat4) {
		for _, p := range n.Mesh.Positions {
			wp := mgl64.TransformCoordinate(p, world)
			for k := 0; k < 3; k++ {
				min[k] = math.Min(min[k], wp[k])
				max[k] = math.Max(max[k], wp[k])
			}
			ok = true
		}
	})
	if !ok {
		return mgl64.Vec3{}, mgl64.Vec3{}, false
	}
	return min, max, true
}

// Stats counts the nodes, meshes and triangles under root.
type Stats struct {
	Nodes     int `yaml:"nodes"`
	Meshes    int `yaml:"meshes"`
	Triangles int `yaml:"triangles"`
}

func Count(root *Node) Stats {
	var s Stats
	Walk(root, mgl64.Ident4(), VisitorFunc(func(n *Node, _ mgl64.Mat4) bool {
		s.Nodes++
		if n.Mesh != nil {
			s.Meshes++
			s.Triangles += n.Mesh.TriangleCount()
		}
		return Continue
	}))
	return s
}
