package display

import "github.com/junsooki/posecam/internal/capture"

// Display renders the live video and the landmark text.
type Display interface {
	Run() error
}

// FrameSource provides the frame to show.
type FrameSource interface {
	CurrentFrame() *capture.Frame
}

// TextSource provides the landmark text to show.
type TextSource interface {
	Text() string
}

// Playback is toggled from the keyboard.
type Playback interface {
	Toggle()
}
