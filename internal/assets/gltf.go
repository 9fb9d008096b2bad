package assets

import (
	"context"
	"fmt"
	"image/color"
	"io"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/sirupsen/logrus"

	"github.com/smasonuk/sieroom/internal/scenegraph"
)

// maxNodeDepth stops malformed files with cyclic node references.
const maxNodeDepth = 64

var defaultMaterial = scenegraph.Material{
	Name:  "default",
	Color: color.RGBA{R: 204, G: 204, B: 204, A: 255},
}

// GLBLoader reads binary glTF files, and text glTF files whose buffers are
// embedded. Only triangle primitives and base colours are used.
type GLBLoader struct{}

func (GLBLoader) Load(ctx context.Context, path string, r io.Reader) (*Asset, error) {
	doc := new(gltf.Document)
	if err := gltf.NewDecoder(r).Decode(doc); err != nil {
		return nil, fmt.Errorf("decode gltf: %w", err)
	}

	b := &sceneBuilder{
		ctx:       ctx,
		doc:       doc,
		materials: make(map[int]*scenegraph.Material),
	}
	root, err := b.build(path)
	if err != nil {
		return nil, err
	}

	stats := scenegraph.Count(root)
	if stats.Triangles == 0 {
		return nil, ErrEmptyScene
	}
	log.WithFields(logrus.Fields{
		"path":      path,
		"nodes":     stats.Nodes,
		"meshes":    stats.Meshes,
		"triangles": stats.Triangles,
	}).Debug("model decoded")

	return &Asset{Path: path, Kind: KindGLB, Scene: root}, nil
}

type sceneBuilder struct {
	ctx       context.Context
	doc       *gltf.Document
	materials map[int]*scenegraph.Material
	fallback  *scenegraph.Material
}

func (b *sceneBuilder) build(name string) (*scenegraph.Node, error) {
	if len(b.doc.Scenes) == 0 {
		return nil, ErrEmptyScene
	}
	sceneIndex := 0
	if b.doc.Scene != nil && *b.doc.Scene < len(b.doc.Scenes) {
		sceneIndex = *b.doc.Scene
	}

	root := scenegraph.NewNode(name)
	for _, ni := range b.doc.Scenes[sceneIndex].Nodes {
		child, err := b.node(ni, 0)
		if err != nil {
			return nil, err
		}
		root.AddChild(child)
	}
	return root, nil
}

func (b *sceneBuilder) node(index, depth int) (*scenegraph.Node, error) {
	if err := b.ctx.Err(); err != nil {
		return nil, err
	}
	if depth > maxNodeDepth {
		return nil, fmt.Errorf("node hierarchy deeper than %d", maxNodeDepth)
	}
	if index < 0 || index >= len(b.doc.Nodes) {
		return nil, fmt.Errorf("node %d out of range", index)
	}

	src := b.doc.Nodes[index]
	out := scenegraph.NewNode(src.Name)
	out.Transform = nodeTransform(src)

	if src.Mesh != nil {
		if err := b.mesh(out, *src.Mesh); err != nil {
			return nil, err
		}
	}
	for _, ci := range src.Children {
		child, err := b.node(ci, depth+1)
		if err != nil {
			return nil, err
		}
		out.AddChild(child)
	}
	return out, nil
}

// mesh attaches the triangle primitives of mesh index to n. A single
// primitive goes on n itself, several become children.
func (b *sceneBuilder) mesh(n *scenegraph.Node, index int) error {
	if index < 0 || index >= len(b.doc.Meshes) {
		return fmt.Errorf("mesh %d out of range", index)
	}
	src := b.doc.Meshes[index]

	var meshes []*scenegraph.Mesh
	for i, p := range src.Primitives {
		if p.Mode != gltf.PrimitiveTriangles {
			continue
		}
		m, err := b.primitive(p)
		if err != nil {
			return fmt.Errorf("mesh %q primitive %d: %w", src.Name, i, err)
		}
		if m != nil {
			meshes = append(meshes, m)
		}
	}

	switch len(meshes) {
	case 0:
	case 1:
		n.Mesh = meshes[0]
	default:
		for i, m := range meshes {
			child := scenegraph.NewNode(fmt.Sprintf("%s#%d", src.Name, i))
			child.Mesh = m
			n.AddChild(child)
		}
	}
	return nil
}

func (b *sceneBuilder) primitive(p *gltf.Primitive) (*scenegraph.Mesh, error) {
	posIndex, ok := p.Attributes[gltf.POSITION]
	if !ok || posIndex >= len(b.doc.Accessors) {
		return nil, nil
	}
	positions, err := modeler.ReadPosition(b.doc, b.doc.Accessors[posIndex], nil)
	if err != nil {
		return nil, fmt.Errorf("read positions: %w", err)
	}

	var indices []uint32
	if p.Indices != nil && *p.Indices < len(b.doc.Accessors) {
		indices, err = modeler.ReadIndices(b.doc, b.doc.Accessors[*p.Indices], nil)
		if err != nil {
			return nil, fmt.Errorf("read indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}
	if len(indices) < 3 {
		return nil, nil
	}

	m := &scenegraph.Mesh{
		Positions: make([]mgl64.Vec3, len(positions)),
		Indices:   indices,
		Material:  b.material(p.Material),
	}
	for i, pos := range positions {
		m.Positions[i] = mgl64.Vec3{float64(pos[0]), float64(pos[1]), float64(pos[2])}
	}
	return m, nil
}

// material converts each glTF material once so meshes keep sharing it.
func (b *sceneBuilder) material(index *int) *scenegraph.Material {
	if index == nil || *index < 0 || *index >= len(b.doc.Materials) {
		if b.fallback == nil {
			mat := defaultMaterial
			b.fallback = &mat
		}
		return b.fallback
	}
	if m, ok := b.materials[*index]; ok {
		return m
	}

	src := b.doc.Materials[*index]
	m := &scenegraph.Material{
		Name:        src.Name,
		Color:       defaultMaterial.Color,
		Transparent: src.AlphaMode == gltf.AlphaBlend,
		DoubleSided: src.DoubleSided,
	}
	if pbr := src.PBRMetallicRoughness; pbr != nil {
		f := pbr.BaseColorFactorOrDefault()
		alpha := float64(f[3])
		if !m.Transparent {
			alpha = 1
		}
		m.Color = linearToRGBA(float64(f[0]), float64(f[1]), float64(f[2]), alpha)
	}
	b.materials[*index] = m
	return m
}

// linearToRGBA encodes a linear glTF colour factor for display as a
// premultiplied colour.
func linearToRGBA(r, g, b, a float64) color.RGBA {
	c := colorful.LinearRgb(r, g, b).Clamped()
	r8, g8, b8 := c.RGB255()
	n := color.NRGBA{R: r8, G: g8, B: b8, A: uint8(mgl64.Clamp(a, 0, 1)*255 + 0.5)}
	return color.RGBAModel.Convert(n).(color.RGBA)
}

// nodeTransform is the node's local matrix, from its matrix property when
// set and from translation, rotation and scale otherwise.
func nodeTransform(n *gltf.Node) mgl64.Mat4 {
	m := n.MatrixOrDefault()
	if m != gltf.DefaultMatrix {
		var out mgl64.Mat4
		for i := range out {
			out[i] = float64(m[i])
		}
		return out
	}

	t := n.TranslationOrDefault()
	r := n.RotationOrDefault()
	s := n.ScaleOrDefault()
	q := mgl64.Quat{W: float64(r[3]), V: mgl64.Vec3{float64(r[0]), float64(r[1]), float64(r[2])}}
	if q.Len() == 0 {
		q = mgl64.QuatIdent()
	}

	return mgl64.Translate3D(float64(t[0]), float64(t[1]), float64(t[2])).
		Mul4(q.Normalize().Mat4()).
		Mul4(mgl64.Scale3D(float64(s[0]), float64(s[1]), float64(s[2])))
}
