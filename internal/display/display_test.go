package display

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

type staticText string

func (s staticText) Text() string { return string(s) }

func TestEbitenUpdateTerminatesOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	d := NewEbitenDisplay(ctx, "test", nil, staticText(""), nil)

	cancel()
	if err := d.Update(); !errors.Is(err, ebiten.Termination) {
		t.Errorf("Update() after cancel = %v, want ebiten.Termination", err)
	}
}

func TestHeadlessReturnsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	h := NewHeadless(ctx)

	done := make(chan error, 1)
	go func() { done <- h.Run() }()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestAspectFitTransform(t *testing.T) {
	tests := []struct {
		name              string
		viewW, viewH      float64
		frameW, frameH    float64
		scale, offX, offY float64
	}{
		{"same", 640, 480, 640, 480, 1, 0, 0},
		{"pillarbox", 800, 480, 640, 480, 1, 80, 0},
		{"letterbox", 640, 600, 640, 480, 1, 0, 60},
		{"downscale", 320, 240, 640, 480, 0.5, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scale, x, y := aspectFitTransform(tt.viewW, tt.viewH, tt.frameW, tt.frameH)
			if scale != tt.scale || x != tt.offX || y != tt.offY {
				t.Errorf("aspectFitTransform() = (%v, %v, %v), want (%v, %v, %v)",
					scale, x, y, tt.scale, tt.offX, tt.offY)
			}
		})
	}
}
