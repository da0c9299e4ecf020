package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
)

// Options controls how an uploaded image is normalized
type Options struct {
	MaxWidth int
	Quality  int
}

// DefaultOptions returns the normalization defaults
func DefaultOptions() Options {
	return Options{
		MaxWidth: 640,
		Quality:  85,
	}
}

// Normalize decodes an uploaded image, downscales it to at most
// opts.MaxWidth pixels wide preserving aspect ratio, flattens it to RGB
// and re-encodes it as JPEG. Images already within the width limit are
// re-encoded without resizing.
func Normalize(data []byte, opts Options) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := src.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if opts.MaxWidth > 0 && width > opts.MaxWidth {
		// Scale height proportionally to the clamped width
		newHeight := height * opts.MaxWidth / width
		if newHeight < 1 {
			newHeight = 1
		}
		dst := image.NewRGBA(image.Rect(0, 0, opts.MaxWidth, newHeight))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
		src = dst
	} else {
		// Flatten to RGBA so alpha channels encode cleanly as JPEG
		dst := image.NewRGBA(image.Rect(0, 0, width, height))
		draw.Draw(dst, dst.Bounds(), src, bounds.Min, draw.Src)
		src = dst
	}

	quality := opts.Quality
	if quality <= 0 || quality > 100 {
		quality = 85
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, src, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return buf.Bytes(), nil
}
