package utils

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestNormalizeToJPGConvertsAndResizes(t *testing.T) {
	input := testPNG(t, 1024, 256)

	out, err := NormalizeToJPG(input, 512, 85)
	require.NoError(t, err)

	decoded, err := jpeg.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 512, decoded.Bounds().Dx())
	assert.Equal(t, 128, decoded.Bounds().Dy())
}

func TestNormalizeToJPGKeepsSmallImages(t *testing.T) {
	input := testPNG(t, 100, 40)

	out, err := NormalizeToJPG(input, 512, 85)
	require.NoError(t, err)

	decoded, err := jpeg.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 100, decoded.Bounds().Dx())
	assert.Equal(t, 40, decoded.Bounds().Dy())
}

func TestNormalizeToJPGRejectsGarbage(t *testing.T) {
	_, err := NormalizeToJPG([]byte("definitely not an image"), 512, 85)
	assert.Error(t, err)

	_, err = NormalizeToJPG(nil, 512, 85)
	assert.Error(t, err)
}

func TestApplyOrientationSwapsAxes(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 2))

	rotated := applyOrientation(src, 6)
	assert.Equal(t, 2, rotated.Bounds().Dx())
	assert.Equal(t, 4, rotated.Bounds().Dy())

	same := applyOrientation(src, 1)
	assert.Equal(t, 4, same.Bounds().Dx())
	assert.Equal(t, 2, same.Bounds().Dy())
}

func TestReadAllLimit(t *testing.T) {
	b, err := ReadAllLimit(strings.NewReader("hello"), 10)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), b)

	_, err = ReadAllLimit(strings.NewReader("hello"), 4)
	assert.Error(t, err)
}
