package capture

import (
	"context"
	"errors"
	"image"
	"time"
)

// ErrEnded is returned by a Device that has no more frames.
var ErrEnded = errors.New("capture: stream ended")

// Frame represents a captured camera frame.
type Frame struct {
	Image     image.Image
	Seq       uint64
	Timestamp time.Time
}

// Device is a video-only frame source.
type Device interface {
	// Read blocks until the next frame is available.
	Read() (image.Image, error)
	Close() error
}

// Opener requests access to a capture device. It blocks until access is
// granted or refused.
type Opener func(ctx context.Context) (Device, error)
