package capture

import (
	"context"
	"image"
	"image/color"
	"sync"
	"time"
)

// PatternDevice generates a moving color gradient. It stands in for a
// camera in headless runs and tests.
type PatternDevice struct {
	width, height int
	interval      time.Duration
	limit         int // frames before ErrEnded, 0 = unlimited

	mu     sync.Mutex
	n      int
	closed bool
	last   time.Time
}

// NewPatternDevice creates a pattern source of the given size producing
// one frame per interval. A zero interval produces frames as fast as read.
func NewPatternDevice(width, height int, interval time.Duration) *PatternDevice {
	return &PatternDevice{width: width, height: height, interval: interval}
}

// WithLimit ends the stream after n frames.
func (d *PatternDevice) WithLimit(n int) *PatternDevice {
	d.limit = n
	return d
}

// Opener returns an Opener that always grants access to d.
func (d *PatternDevice) Opener() Opener {
	return func(ctx context.Context) (Device, error) {
		return d, ctx.Err()
	}
}

func (d *PatternDevice) Read() (image.Image, error) {
	d.mu.Lock()
	if d.closed || (d.limit > 0 && d.n >= d.limit) {
		d.mu.Unlock()
		return nil, ErrEnded
	}
	wait := time.Until(d.last.Add(d.interval))
	d.mu.Unlock()

	if wait > 0 {
		time.Sleep(wait)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.n++
	d.last = time.Now()
	return d.render(d.n), nil
}

// Frames returns the number of frames produced so far.
func (d *PatternDevice) Frames() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.n
}

func (d *PatternDevice) Close() error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()
	return nil
}

func (d *PatternDevice) render(n int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, d.width, d.height))
	shift := n * 4
	for y := 0; y < d.height; y++ {
		for x := 0; x < d.width; x++ {
			img.SetRGBA(x, y, color.RGBA{
				R: uint8((x + shift) * 255 / max(d.width, 1)),
				G: uint8(y * 255 / max(d.height, 1)),
				B: uint8(shift),
				A: 0xff,
			})
		}
	}
	return img
}
