package assets

import (
	"context"
	"image"
	"io"
	"strings"

	"github.com/smasonuk/sieroom/internal/scenegraph"
)

// Asset is a parsed file. Exactly one of Scene and Texture is set.
type Asset struct {
	Path    string
	Kind    Kind
	Scene   *scenegraph.Node
	Texture *Texture
}

// Loader parses one kind of asset. Load must give up when ctx ends.
type Loader interface {
	Load(ctx context.Context, path string, r io.Reader) (*Asset, error)
}

type LoaderFunc func(ctx context.Context, path string, r io.Reader) (*Asset, error)

func (f LoaderFunc) Load(ctx context.Context, path string, r io.Reader) (*Asset, error) {
	return f(ctx, path, r)
}

type ColorSpace int

const (
	SRGB ColorSpace = iota
	Linear
)

func ParseColorSpace(s string) ColorSpace {
	if strings.EqualFold(s, "linear") {
		return Linear
	}
	return SRGB
}

func (cs ColorSpace) String() string {
	if cs == Linear {
		return "linear"
	}
	return "srgb"
}

// Texture is a decoded image ready to be shown as is.
type Texture struct {
	Image image.Image
	// Source is the colour space the file was stored in.
	Source ColorSpace
}

func (t *Texture) Bounds() image.Rectangle {
	return t.Image.Bounds()
}
