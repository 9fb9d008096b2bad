// Package assetstest builds asset files for tests.
package assetstest

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// CubeGLB is a binary glTF holding one unit cube mesh.
func CubeGLB(t testing.TB) []byte {
	t.Helper()

	doc := gltf.NewDocument()
	positions := [][3]float32{
		{-0.5, -0.5, -0.5}, {0.5, -0.5, -0.5}, {0.5, 0.5, -0.5}, {-0.5, 0.5, -0.5},
		{-0.5, -0.5, 0.5}, {0.5, -0.5, 0.5}, {0.5, 0.5, 0.5}, {-0.5, 0.5, 0.5},
	}
	indices := []uint16{
		4, 5, 6, 4, 6, 7, // +z
		1, 0, 3, 1, 3, 2, // -z
		5, 1, 2, 5, 2, 6, // +x
		0, 4, 7, 0, 7, 3, // -x
		7, 6, 2, 7, 2, 3, // +y
		0, 1, 5, 0, 5, 4, // -y
	}
	doc.Meshes = []*gltf.Mesh{{
		Name: "cube",
		Primitives: []*gltf.Primitive{{
			Indices:    gltf.Index(modeler.WriteIndices(doc, indices)),
			Attributes: map[string]int{gltf.POSITION: modeler.WritePosition(doc, positions)},
		}},
	}}
	doc.Nodes = []*gltf.Node{{Name: "cube", Mesh: gltf.Index(0)}}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)

	var buf bytes.Buffer
	enc := gltf.NewEncoder(&buf)
	enc.AsBinary = true
	if err := enc.Encode(doc); err != nil {
		t.Fatalf("encode glb: %v", err)
	}
	return buf.Bytes()
}

// EmptyGLB is a valid binary glTF with a scene but no meshes.
func EmptyGLB(t testing.TB) []byte {
	t.Helper()

	doc := gltf.NewDocument()
	doc.Nodes = []*gltf.Node{{Name: "empty"}}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)

	var buf bytes.Buffer
	enc := gltf.NewEncoder(&buf)
	enc.AsBinary = true
	if err := enc.Encode(doc); err != nil {
		t.Fatalf("encode glb: %v", err)
	}
	return buf.Bytes()
}

// PNG is a w x h image filled with c.
func PNG(t testing.TB, w, h int, c color.Color) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

// Room is an asset tree with every default model and the logo.
func Room(t testing.TB) fstest.MapFS {
	t.Helper()

	cube := CubeGLB(t)
	return fstest.MapFS{
		"models/surgical_chair.glb":                           {Data: cube},
		"models/nurse_surgical_rigged.glb":                    {Data: cube},
		"models/surgical__instrument_table_collection.glb":    {Data: cube},
		"models/Purple_Water_Bottle_o_0409083005_texture.glb": {Data: cube},
		"assets/aumlogo.png":                                  {Data: PNG(t, 8, 8, color.RGBA{R: 20, G: 60, B: 200, A: 255})},
	}
}
