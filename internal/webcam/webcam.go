// Package webcam opens physical cameras through OpenCV.
package webcam

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"

	"gocv.io/x/gocv"

	"github.com/junsooki/posecam/internal/capture"
)

// Device is a video-only camera implementing capture.Device.
type Device struct {
	mu  sync.Mutex
	cam *gocv.VideoCapture
	mat gocv.Mat
}

// Opener returns a capture.Opener for the camera at index. Opening is
// where the operating system gates camera access.
func Opener(index int) capture.Opener {
	return func(ctx context.Context) (capture.Device, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return Open(index)
	}
}

// Open opens the camera at index.
func Open(index int) (*Device, error) {
	cam, err := gocv.OpenVideoCapture(index)
	if err != nil {
		return nil, fmt.Errorf("open camera %d: %w", index, err)
	}
	if !cam.IsOpened() {
		cam.Close()
		return nil, fmt.Errorf("open camera %d: device not available", index)
	}
	return &Device{cam: cam, mat: gocv.NewMat()}, nil
}

// Read blocks until the camera delivers a frame.
func (d *Device) Read() (image.Image, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cam == nil {
		return nil, capture.ErrEnded
	}
	if ok := d.cam.Read(&d.mat); !ok {
		return nil, capture.ErrEnded
	}
	if d.mat.Empty() {
		return nil, nil
	}
	img, err := d.mat.ToImage()
	if err != nil {
		return nil, fmt.Errorf("convert frame: %w", err)
	}
	return img, nil
}

func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cam == nil {
		return nil
	}
	err := errors.Join(d.cam.Close(), d.mat.Close())
	d.cam = nil
	return err
}
