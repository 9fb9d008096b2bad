package assets

import (
	"bytes"
	"context"
	"image/color"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smasonuk/sieroom/internal/assets/assetstest"
)

func TestTextureLoader(t *testing.T) {
	grey := color.RGBA{R: 64, G: 64, B: 64, A: 255}
	data := assetstest.PNG(t, 8, 4, grey)

	testCases := []struct {
		name      string
		loader    *TextureLoader
		wantW     int
		wantH     int
		brightens bool
	}{
		{"sRGB as is", &TextureLoader{}, 8, 4, false},
		{"Capped size", &TextureLoader{MaxSize: 4}, 4, 2, false},
		{"Linear is gamma encoded", &TextureLoader{ColorSpace: Linear}, 8, 4, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			asset, err := tc.loader.Load(context.Background(), "logo.png", bytes.NewReader(data))
			require.NoError(t, err)
			require.NotNil(t, asset.Texture)

			b := asset.Texture.Bounds()
			assert.Equal(t, tc.wantW, b.Dx())
			assert.Equal(t, tc.wantH, b.Dy())
			assert.Equal(t, tc.loader.ColorSpace, asset.Texture.Source)

			r, _, _, _ := asset.Texture.Image.At(b.Min.X+1, b.Min.Y+1).RGBA()
			if tc.brightens {
				assert.Greater(t, r>>8, uint32(grey.R))
			} else {
				assert.InDelta(t, grey.R, r>>8, 1)
			}
		})
	}
}

func TestTextureLoaderRejectsGarbage(t *testing.T) {
	_, err := (&TextureLoader{}).Load(context.Background(), "logo.png", bytes.NewReader([]byte("nope")))
	assert.Error(t, err)
}

func TestFitWithin(t *testing.T) {
	testCases := []struct {
		w, h, limit  int
		wantW, wantH int
		scaled       bool
	}{
		{100, 50, 0, 100, 50, false},
		{100, 50, 200, 100, 50, false},
		{100, 50, 10, 10, 5, true},
		{50, 100, 10, 5, 10, true},
		{1000, 1, 10, 10, 1, true},
	}
	for _, tc := range testCases {
		w, h, scaled := fitWithin(tc.w, tc.h, tc.limit)
		assert.Equal(t, []int{tc.wantW, tc.wantH}, []int{w, h})
		assert.Equal(t, tc.scaled, scaled)
	}
}

func TestCacheLoadsTexture(t *testing.T) {
	cache := NewCache(
		fstest.MapFS{"assets/aumlogo.png": {Data: assetstest.PNG(t, 4, 4, color.White)}},
		WithLoader(KindImage, &TextureLoader{MaxSize: 2}),
	)
	h := cache.Acquire("assets/aumlogo.png")
	defer h.Release()

	res := waitResult(t, h)
	require.Equal(t, Ready, res.State)
	assert.Equal(t, KindImage, res.Asset.Kind)
	assert.Equal(t, 2, res.Asset.Texture.Bounds().Dx())
	assert.Equal(t, "srgb", res.Asset.Texture.Source.String())
}

func TestParseColorSpace(t *testing.T) {
	assert.Equal(t, Linear, ParseColorSpace("linear"))
	assert.Equal(t, SRGB, ParseColorSpace("srgb"))
	assert.Equal(t, SRGB, ParseColorSpace(""))
}
