package room

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/smasonuk/sieroom/internal/scenegraph"
)

// Description is a plain view of a Tree for printing.
type Description struct {
	Camera   CameraDescription    `yaml:"camera"`
	Elements []ElementDescription `yaml:"elements"`
	Counts   map[string]int       `yaml:"counts"`
}

type CameraDescription struct {
	Position mgl64.Vec3 `yaml:"position,flow"`
	Target   mgl64.Vec3 `yaml:"target,flow"`
	FOV      float64    `yaml:"fov"`
}

type ElementDescription struct {
	Kind     Kind              `yaml:"kind"`
	Name     string            `yaml:"name"`
	Position mgl64.Vec3        `yaml:"position,flow"`
	Size     *mgl64.Vec3       `yaml:"size,omitempty,flow"`
	Scale    float64           `yaml:"scale,omitempty"`
	Texture  string            `yaml:"texture,omitempty"`
	Model    *scenegraph.Stats `yaml:"model,omitempty"`
	Label    string            `yaml:"label,omitempty"`
	Error    string            `yaml:"error,omitempty"`
}

func (t Tree) Describe() Description {
	d := Description{
		Camera: CameraDescription{
			Position: t.Camera.Position,
			Target:   t.Camera.Target,
			FOV:      t.Camera.FOV,
		},
		Counts: make(map[string]int),
	}

	for _, e := range t.Elements {
		ed := ElementDescription{
			Kind:     e.Kind,
			Name:     e.Name,
			Position: e.Position,
			Label:    e.Label,
		}
		switch e.Kind {
		case KindActor:
			ed.Scale = e.Scale
			stats := scenegraph.Count(e.Scene)
			ed.Model = &stats
		case KindLogo:
			size := e.Size
			ed.Size = &size
			ed.Texture = "none"
			if e.Texture != nil {
				ed.Texture = e.Texture.Bounds().Size().String()
			}
		default:
			size := e.Size
			ed.Size = &size
		}
		if e.Err != nil {
			ed.Error = e.Err.Error()
		}
		d.Elements = append(d.Elements, ed)
		d.Counts[e.Kind.String()]++
	}
	return d
}
