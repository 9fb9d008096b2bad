package assets

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/transform"
	"github.com/sirupsen/logrus"
)

// displayGamma encodes linear colour data for an sRGB display.
const displayGamma = 2.2

// TextureLoader decodes PNG, JPEG and GIF files.
type TextureLoader struct {
	// MaxSize caps the longest side, 0 for no cap.
	MaxSize int
	// ColorSpace is the space the files are stored in. Linear data is
	// gamma encoded after decoding.
	ColorSpace ColorSpace
}

func (l *TextureLoader) Load(ctx context.Context, path string, r io.Reader) (*Asset, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if w, h, ok := fitWithin(img.Bounds().Dx(), img.Bounds().Dy(), l.MaxSize); ok {
		img = transform.Resize(img, w, h, transform.Linear)
	}
	if l.ColorSpace == Linear {
		img = adjust.Gamma(img, displayGamma)
	}

	log.WithFields(logrus.Fields{
		"path":   path,
		"format": format,
		"size":   img.Bounds().Size().String(),
	}).Debug("texture decoded")

	return &Asset{
		Path:    path,
		Kind:    KindImage,
		Texture: &Texture{Image: img, Source: l.ColorSpace},
	}, nil
}

// fitWithin scales w x h down so the longest side is limit, keeping the
// aspect ratio. ok is false when no scaling is needed.
func fitWithin(w, h, limit int) (int, int, bool) {
	if limit <= 0 || (w <= limit && h <= limit) {
		return w, h, false
	}
	if w >= h {
		return limit, max(1, h*limit/w), true
	}
	return max(1, w*limit/h), limit, true
}
