package room

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/smasonuk/sieroom/internal/assets"
	"github.com/smasonuk/sieroom/internal/config"
	"github.com/smasonuk/sieroom/internal/scenegraph"
)

type Kind int

const (
	KindFloor Kind = iota
	KindWall
	KindLogo
	KindActor
	KindFallback
)

func (k Kind) String() string {
	switch k {
	case KindFloor:
		return "floor"
	case KindWall:
		return "wall"
	case KindLogo:
		return "logo"
	case KindActor:
		return "actor"
	case KindFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Element is one thing drawn in the room.
type Element struct {
	Kind     Kind
	Name     string
	Position mgl64.Vec3
	// Size is the box size for floor, walls and placeholders, and
	// (width, height, 0) for the logo.
	Size mgl64.Vec3
	// Scale is the uniform scale of an actor's model.
	Scale float64

	Color         color.RGBA
	Edge          *color.RGBA
	ReceiveShadow bool
	Transparent   bool

	// Texture is the logo image, nil while it is loading or when it failed.
	Texture *assets.Texture
	// Scene is an actor's model.
	Scene *scenegraph.Node

	// Label and Err are set on placeholders.
	Label string
	Err   error
}

// Fallback describes the placeholder shown for a failed actor.
type Fallback struct {
	Size  float64
	Color color.RGBA
	Label string
}

func NewFallback(cfg config.FallbackConfig) Fallback {
	return Fallback{Size: cfg.Size, Color: cfg.Color.ToRGBA(), Label: cfg.Label}
}

func (f Fallback) Element(name string, position mgl64.Vec3, err error) Element {
	return Element{
		Kind:     KindFallback,
		Name:     name,
		Position: position,
		Size:     mgl64.Vec3{f.Size, f.Size, f.Size},
		Color:    f.Color,
		Label:    f.Label,
		Err:      err,
	}
}

type Light struct {
	Position  mgl64.Vec3
	Intensity float64
}

// Tree is everything needed to draw one state of the room.
type Tree struct {
	Camera   config.CameraConfig
	Ambient  float64
	Lights   []Light
	Shadow   color.RGBA
	Elements []Element
}

func (t Tree) Count(kind Kind) int {
	n := 0
	for _, e := range t.Elements {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// Find returns the first element of kind with the given name.
func (t Tree) Find(kind Kind, name string) (Element, bool) {
	for _, e := range t.Elements {
		if e.Kind == kind && e.Name == name {
			return e, true
		}
	}
	return Element{}, false
}
