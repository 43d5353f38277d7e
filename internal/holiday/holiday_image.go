package holiday

import (
	"bytes"
	"fmt"
	"image"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

// maxImageEdge caps the longest side sent to the extractor.
const maxImageEdge = 2048

const (
	ocrJPEGQuality = 85
	ocrMimeType    = "image/jpeg"
)

func decodeImage(data []byte, mimeType string) (image.Image, error) {
	if mimeType == "image/webp" {
		return webp.Decode(bytes.NewReader(data))
	}
	return imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
}

// normalizeImage re-encodes an upload as a JPEG no larger than maxImageEdge
// on either side. The stored original is left untouched.
func normalizeImage(data []byte, mimeType string) ([]byte, string, error) {
	img, err := decodeImage(data, mimeType)
	if err != nil {
		return nil, "", fmt.Errorf("decode %s: %w", mimeType, err)
	}

	b := img.Bounds()
	if b.Dx() > maxImageEdge || b.Dy() > maxImageEdge {
		img = imaging.Fit(img, maxImageEdge, maxImageEdge, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(ocrJPEGQuality)); err != nil {
		return nil, "", fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), ocrMimeType, nil
}
