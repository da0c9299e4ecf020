package imaging

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

func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.NRGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func decodeJPEG(t *testing.T, data []byte) image.Image {
	t.Helper()

	img, err := jpeg.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	return img
}

func TestNormalize_DownscalesWideImage(t *testing.T) {
	data := encodePNG(t, 1280, 960)

	out, err := Normalize(data, Options{MaxWidth: 640, Quality: 85})
	require.NoError(t, err)

	img := decodeJPEG(t, out)
	assert.Equal(t, 640, img.Bounds().Dx())
	assert.Equal(t, 480, img.Bounds().Dy())
}

func TestNormalize_KeepsNarrowImageSize(t *testing.T) {
	data := encodePNG(t, 320, 200)

	out, err := Normalize(data, Options{MaxWidth: 640, Quality: 85})
	require.NoError(t, err)

	img := decodeJPEG(t, out)
	assert.Equal(t, 320, img.Bounds().Dx())
	assert.Equal(t, 200, img.Bounds().Dy())
}

func TestNormalize_ConvertsPNGToJPEG(t *testing.T) {
	data := encodePNG(t, 100, 100)

	out, err := Normalize(data, DefaultOptions())
	require.NoError(t, err)

	_, format, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
}

func TestNormalize_DefaultsInvalidQuality(t *testing.T) {
	data := encodePNG(t, 100, 100)

	out, err := Normalize(data, Options{MaxWidth: 640, Quality: -1})
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestNormalize_RejectsInvalidData(t *testing.T) {
	_, err := Normalize([]byte("not an image"), DefaultOptions())
	assert.Error(t, err)
}
