// Package imaging prepares photo files for storage: images are downscaled
// to a display size and re-encoded as JPEG before they are inlined into a
// record as a data URL.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"github.com/nfnt/resize"
)

const (
	// maxDimension bounds the longer side of a stored photo.
	maxDimension = 1600
	jpegQuality  = 85
)

// PrepareJPEG decodes an image, downscales it so neither side exceeds
// maxDimension, and re-encodes it as JPEG.
func PrepareJPEG(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxDimension || bounds.Dy() > maxDimension {
		img = resize.Thumbnail(maxDimension, maxDimension, img, resize.Lanczos3)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}
