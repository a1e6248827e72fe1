package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x += 10 {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestPrepareJPEGKeepsSmallImages(t *testing.T) {
	out, err := PrepareJPEG(encodePNG(t, 640, 480))
	require.NoError(t, err)

	img, format, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 640, img.Bounds().Dx())
	assert.Equal(t, 480, img.Bounds().Dy())
}

func TestPrepareJPEGDownscalesLargeImages(t *testing.T) {
	out, err := PrepareJPEG(encodePNG(t, 3200, 2400))
	require.NoError(t, err)

	img, _, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.LessOrEqual(t, img.Bounds().Dx(), 1600)
	assert.LessOrEqual(t, img.Bounds().Dy(), 1600)
	// Aspect ratio survives the downscale.
	assert.Equal(t, 1600, img.Bounds().Dx())
	assert.Equal(t, 1200, img.Bounds().Dy())
}

func TestPrepareJPEGRejectsGarbage(t *testing.T) {
	_, err := PrepareJPEG([]byte("not an image"))
	assert.Error(t, err)
}
