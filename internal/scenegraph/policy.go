package scenegraph

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
)

// Policy changes a material in place and reports whether it changed
// anything. Applying a policy twice must change nothing the second time.
type Policy interface {
	Apply(m *Material) bool
}

// ShadowPolicy tags materials to cast and receive shadows.
type ShadowPolicy struct {
	Cast    bool
	Receive bool
}

func (p ShadowPolicy) Apply(m *Material) bool {
	changed := m.CastShadow != p.Cast || m.ReceiveShadow != p.Receive
	m.CastShadow = p.Cast
	m.ReceiveShadow = p.Receive
	return changed
}

// RecolorPolicy replaces every material colour.
type RecolorPolicy struct {
	Color color.RGBA
}

func (p RecolorPolicy) Apply(m *Material) bool {
	if m.Color == p.Color {
		return false
	}
	m.Color = p.Color
	return true
}

// Policies applies each policy in order.
type Policies []Policy

func (ps Policies) Apply(m *Material) bool {
	changed := false
	for _, p := range ps {
		if p.Apply(m) {
			changed = true
		}
	}
	return changed
}

// policyVisitor applies a policy to each distinct material once.
type policyVisitor struct {
	policy  Policy
	seen    map[*Material]bool
	changed int
}

func (v *policyVisitor) Visit(n *Node, _ mgl64.Mat4) bool {
	if n.Mesh == nil {
		return Continue
	}
	if n.Mesh.Material == nil {
		n.Mesh.Material = &Material{Color: color.RGBA{R: 255, G: 255, B: 255, A: 255}}
	}
	if v.seen[n.Mesh.Material] {
		return Continue
	}
	v.seen[n.Mesh.Material] = true
	if v.policy.Apply(n.Mesh.Material) {
		v.changed++
	}
	return Continue
}

// ApplyPolicy runs policy over every mesh material under root and returns
// how many materials it changed. Meshes without a material get a white one.
func ApplyPolicy(root *Node, policy Policy) int {
	v := &policyVisitor{policy: policy, seen: make(map[*Material]bool)}
	Walk(root, mgl64.Ident4(), v)
	return v.changed
}
