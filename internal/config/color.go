package config

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// Color is a premultiplied RGBA colour written in config files as a CSS
// name, "transparent", or #rgb / #rrggbb / #rrggbbaa. Hex digits are
// straight alpha.
type Color color.RGBA

// RGBA takes premultiplied components.
func RGBA(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

func (c Color) ToRGBA() color.RGBA {
	return color.RGBA(c)
}

func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Color{}, fmt.Errorf("empty color")
	}
	if s[0] == '#' {
		return parseHex(s)
	}

	low := strings.ToLower(s)
	if low == "transparent" {
		return Color{}, nil
	}
	nc, ok := colornames.Map[low]
	if !ok {
		return Color{}, fmt.Errorf("color name not found: %q", s)
	}
	return Color(nc), nil
}

func parseHex(s string) (Color, error) {
	alpha := uint8(255)
	hex := s
	if len(s) == 9 {
		var a uint8
		if _, err := fmt.Sscanf(s[7:], "%02x", &a); err != nil {
			return Color{}, fmt.Errorf("parse alpha of %q: %w", s, err)
		}
		alpha = a
		hex = s[:7]
	}

	c, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return Color(color.RGBAModel.Convert(color.NRGBA{R: r, G: g, B: b, A: alpha}).(color.RGBA)), nil
}

func (c Color) String() string {
	n := color.NRGBAModel.Convert(color.RGBA(c)).(color.NRGBA)
	if n.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A)
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
