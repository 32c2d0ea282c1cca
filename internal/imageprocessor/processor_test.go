package imageprocessor

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestFit_ShrinksLargePNG(t *testing.T) {
	p := NewProcessor(100, 0)

	out, err := p.Fit(encodePNG(t, 400, 200), "image/png")
	require.NoError(t, err)

	cfg, format, err := image.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 100, cfg.Width)
	assert.Equal(t, 50, cfg.Height)
}

func TestFit_ShrinksTallJPEG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 60, 300)), nil))

	out, err := NewProcessor(150, 90).Fit(buf.Bytes(), "image/jpeg")
	require.NoError(t, err)

	cfg, format, err := image.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 30, cfg.Width)
	assert.Equal(t, 150, cfg.Height)
}

func TestFit_LeavesSmallAndOtherTypes(t *testing.T) {
	p := NewProcessor(100, 0)

	small := encodePNG(t, 50, 50)
	out, err := p.Fit(small, "image/png")
	require.NoError(t, err)
	assert.Equal(t, small, out)

	pdf := []byte("%PDF-1.4")
	out, err = p.Fit(pdf, "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, pdf, out)

	_, err = p.Fit([]byte("not an image"), "image/png")
	assert.Error(t, err)
}
