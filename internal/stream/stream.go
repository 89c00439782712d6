// Package stream implements the capture-and-stream loop: on a fixed
// cadence the current camera frame is drawn onto a fixed-size surface,
// encoded as JPEG and sent as one binary message.
package stream

import (
	"context"
	"fmt"
	"image"
	"sync"
	"sync/atomic"
	"time"

	"github.com/junsooki/posecam/internal/capture"
	"github.com/junsooki/posecam/internal/encoder"
	"github.com/junsooki/posecam/internal/log"
	"github.com/junsooki/posecam/internal/surface"
	"github.com/junsooki/posecam/internal/transport"
)

const (
	// Interval is the delay between capture cycles.
	Interval = 25 * time.Millisecond

	// Quality is the JPEG quality on the 0-1 scale.
	Quality = 0.7
)

// FrameSource provides the frame to draw each cycle.
type FrameSource interface {
	CurrentFrame() *capture.Frame
}

// Stats counts loop activity.
type Stats struct {
	Cycles  uint64 // frames drawn
	Encoded uint64 // frames encoded
	Sent    uint64 // frames handed to an open connection
	Dropped uint64 // frames discarded because the connection was not open
	Failed  uint64 // encode or write failures
}

// Streamer runs the capture-and-stream loop.
type Streamer struct {
	surface  *surface.Surface
	enc      encoder.Encoder
	sender   transport.FrameSender
	interval time.Duration

	mu     sync.Mutex
	source FrameSource

	// active gates the loop. It is set by play events and cleared by
	// pause and ended events.
	active atomic.Bool
	wake   chan struct{}

	inflight sync.WaitGroup

	cycles, encoded, sent, dropped, failed atomic.Uint64
}

// New creates a streamer drawing onto a width x height surface.
func New(width, height int, enc encoder.Encoder, sender transport.FrameSender) *Streamer {
	return &Streamer{
		surface:  surface.New(width, height),
		enc:      enc,
		sender:   sender,
		interval: Interval,
		wake:     make(chan struct{}, 1),
	}
}

// Start requests the capture device, attaches a player for it and starts
// playback. On error nothing is attached and the loop never runs. The
// caller must Run the returned player.
func (s *Streamer) Start(ctx context.Context, open capture.Opener) (*capture.Player, error) {
	dev, err := open(ctx)
	if err != nil {
		return nil, fmt.Errorf("open capture device: %w", err)
	}
	p := capture.NewPlayer(dev)
	s.Attach(p)
	p.Play()
	return p, nil
}

// Attach makes p the frame source and follows its playback events.
func (s *Streamer) Attach(p *capture.Player) {
	s.mu.Lock()
	s.source = p
	s.mu.Unlock()
	p.OnEvent(s.HandleEvent)
}

// HandleEvent reacts to a playback event.
func (s *Streamer) HandleEvent(e capture.Event) {
	switch e {
	case capture.EventPlay:
		s.active.Store(true)
		select {
		case s.wake <- struct{}{}:
		default:
		}
	case capture.EventPause, capture.EventEnded:
		s.active.Store(false)
	}
}

// Active reports whether the loop is allowed to run.
func (s *Streamer) Active() bool {
	return s.active.Load()
}

// Stats returns a snapshot of the counters.
func (s *Streamer) Stats() Stats {
	return Stats{
		Cycles:  s.cycles.Load(),
		Encoded: s.encoded.Load(),
		Sent:    s.sent.Load(),
		Dropped: s.dropped.Load(),
		Failed:  s.failed.Load(),
	}
}

// Run starts a loop for every play event, keeping at most one running,
// until ctx is cancelled. It waits for in-flight encodes before returning.
func (s *Streamer) Run(ctx context.Context) error {
	defer s.inflight.Wait()

	var loopDone chan struct{}
	start := func() {
		loopDone = make(chan struct{})
		go s.loop(ctx, loopDone)
	}

	for {
		select {
		case <-ctx.Done():
			s.active.Store(false)
			if loopDone != nil {
				<-loopDone
			}
			return nil
		case <-s.wake:
			if loopDone == nil && s.active.Load() {
				start()
			}
		case <-loopDone:
			loopDone = nil
			// A play event may have landed while the loop was exiting.
			if s.active.Load() {
				start()
			}
		}
	}
}

func (s *Streamer) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	log.Debug("capture loop started", "interval", s.interval)
	defer func() { log.Debug("capture loop stopped", "cycles", s.cycles.Load()) }()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for s.active.Load() {
		s.cycle()
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// cycle draws the current frame and hands a snapshot to its own encode
// goroutine. Cycles never wait for earlier encodes.
func (s *Streamer) cycle() {
	s.mu.Lock()
	src := s.source
	s.mu.Unlock()

	if src != nil {
		if f := src.CurrentFrame(); f != nil {
			s.surface.Draw(f.Image)
		}
	}
	snap := s.surface.Snapshot()
	s.cycles.Add(1)

	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		s.encodeAndSend(snap)
	}()
}

func (s *Streamer) encodeAndSend(img *image.RGBA) {
	data, err := s.enc.Encode(img)
	if err != nil {
		s.failed.Add(1)
		log.Warn("encode frame", "error", err)
		return
	}
	s.encoded.Add(1)

	if err := s.sender.SendFrame(data); err != nil {
		if transport.IsNotOpen(err) {
			s.dropped.Add(1)
			log.Debug("frame dropped", "reason", err)
			return
		}
		s.failed.Add(1)
		log.Warn("send frame", "error", err)
		return
	}
	s.sent.Add(1)
}
