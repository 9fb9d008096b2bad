package sieroom

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
)

type PointLight struct {
	Position  mgl64.Vec3
	Intensity float64
}

// Lighting is an ambient term plus point lights. Only diffuse light is
// modelled, so a face's shade does not depend on the camera and is baked once.
type Lighting struct {
	Ambient float64
	Points  []PointLight
}

// Brightness at point for a surface with the given unit normal, in [0, 1].
func (l *Lighting) Brightness(point, normal mgl64.Vec3) float64 {
	b := l.Ambient
	for _, pl := range l.Points {
		toLight := pl.Position.Sub(point)
		if toLight.Len() == 0 {
			continue
		}
		diffuse := normal.Dot(toLight.Normalize())
		if diffuse > 0 {
			b += diffuse * pl.Intensity
		}
	}
	return mgl64.Clamp(b, 0, 1)
}

// Shade darkens base by the brightness the same way for every channel,
// never going below a small floor so black surfaces keep some definition.
func (l *Lighting) Shade(base color.RGBA, point, normal mgl64.Vec3) color.RGBA {
	c := 240 - int(l.Brightness(point, normal)*240)

	// premultiplied channels never exceed alpha
	hi := int(base.A)
	lo := clamp(7, 0, hi)
	return color.RGBA{
		R: uint8(clamp(int(base.R)-c, lo, hi)),
		G: uint8(clamp(int(base.G)-c, lo, hi)),
		B: uint8(clamp(int(base.B)-c, lo, hi)),
		A: base.A,
	}
}

// ShadowCaster is the first point light, the one shadows are cast from.
func (l *Lighting) ShadowCaster() (PointLight, bool) {
	if len(l.Points) == 0 {
		return PointLight{}, false
	}
	return l.Points[0], true
}

func clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
