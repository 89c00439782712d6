// Package surface provides the fixed-size drawing surface frames are
// rendered onto before encoding.
package surface

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Surface is a fixed-size RGBA pixel buffer. Its dimensions never change
// after creation.
type Surface struct {
	img *image.RGBA
}

// New creates a black surface of width x height pixels.
func New(width, height int) *Surface {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
	return &Surface{img: img}
}

// Bounds returns the surface rectangle.
func (s *Surface) Bounds() image.Rectangle {
	return s.img.Bounds()
}

// Draw stretches src over the whole surface, replacing its contents.
// A nil src leaves the surface unchanged.
func (s *Surface) Draw(src image.Image) {
	if src == nil || src.Bounds().Empty() {
		return
	}
	if src.Bounds().Size() == s.img.Bounds().Size() {
		draw.Draw(s.img, s.img.Bounds(), src, src.Bounds().Min, draw.Src)
		return
	}
	draw.ApproxBiLinear.Scale(s.img, s.img.Bounds(), src, src.Bounds(), draw.Src, nil)
}

// Snapshot returns a copy of the current contents.
func (s *Surface) Snapshot() *image.RGBA {
	cp := &image.RGBA{
		Pix:    make([]byte, len(s.img.Pix)),
		Stride: s.img.Stride,
		Rect:   s.img.Rect,
	}
	copy(cp.Pix, s.img.Pix)
	return cp
}
