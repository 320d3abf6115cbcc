package storage

import (
	"bytes"
	"fmt"
	"io"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // register webp decoding
)

const (
	// maxWidth is the upper bound for stored photos; wider uploads are
	// downsized proportionally.
	maxWidth = 1600
	// jpegQuality trades file size for a quality-lossy re-encode.
	jpegQuality = 85
)

// ProcessImage decodes an uploaded image, downsizes it to maxWidth
// preserving the aspect ratio and re-encodes it as RGB JPEG. Images
// narrower than maxWidth keep their dimensions but are still re-encoded.
func ProcessImage(file io.Reader) ([]byte, error) {
	img, err := imaging.Decode(file, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	if img.Bounds().Dx() > maxWidth {
		img = imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}
