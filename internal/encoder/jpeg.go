package encoder

import (
	"bytes"
	"errors"
	"image"
	"image/jpeg"
	"math"
)

// ErrEmptyImage is returned when there is nothing to encode.
var ErrEmptyImage = errors.New("encoder: empty image")

// JPEGEncoder encodes frames as JPEG.
type JPEGEncoder struct {
	quality int
}

// NewJPEGEncoder creates a JPEG encoder. quality is on the 0-1 scale used
// by canvas encoders and is mapped onto image/jpeg's 1-100.
func NewJPEGEncoder(quality float64) *JPEGEncoder {
	return &JPEGEncoder{quality: QualityFromUnit(quality)}
}

// QualityFromUnit maps a 0-1 quality onto 1-100.
func QualityFromUnit(q float64) int {
	v := int(math.Round(q * 100))
	if v < 1 {
		v = 1
	}
	if v > 100 {
		v = 100
	}
	return v
}

// Quality returns the image/jpeg quality in use.
func (e *JPEGEncoder) Quality() int {
	return e.quality
}

func (e *JPEGEncoder) Encode(img image.Image) ([]byte, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, ErrEmptyImage
	}
	var buf bytes.Buffer
	buf.Grow(64 * 1024)
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: e.quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
