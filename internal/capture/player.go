package capture

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/junsooki/posecam/internal/log"
)

// Event is a playback state change.
type Event int

const (
	EventPlay Event = iota
	EventPause
	EventEnded
)

func (e Event) String() string {
	switch e {
	case EventPlay:
		return "play"
	case EventPause:
		return "pause"
	case EventEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Player plays a Device continuously and keeps only the newest frame.
type Player struct {
	dev Device

	mu        sync.Mutex
	frame     *Frame
	seq       uint64
	playing   bool
	ended     bool
	listeners []func(Event)

	// Held across a state change and its emission so listeners see events
	// in the order the state changed.
	emitMu sync.Mutex

	wake chan struct{}
}

// NewPlayer creates a paused player for dev.
func NewPlayer(dev Device) *Player {
	return &Player{
		dev:  dev,
		wake: make(chan struct{}, 1),
	}
}

// OnEvent registers a callback for playback events. Callbacks run on the
// goroutine that caused the change and must not block or change the
// playback state.
func (p *Player) OnEvent(cb func(Event)) {
	p.mu.Lock()
	p.listeners = append(p.listeners, cb)
	p.mu.Unlock()
}

// Play starts or resumes playback. It has no effect once playback ended.
func (p *Player) Play() {
	p.emitMu.Lock()
	defer p.emitMu.Unlock()

	p.mu.Lock()
	if p.playing || p.ended {
		p.mu.Unlock()
		return
	}
	p.playing = true
	p.mu.Unlock()

	select {
	case p.wake <- struct{}{}:
	default:
	}
	p.emit(EventPlay)
}

// Pause stops playback. The device stays open.
func (p *Player) Pause() {
	p.emitMu.Lock()
	defer p.emitMu.Unlock()

	p.mu.Lock()
	if !p.playing {
		p.mu.Unlock()
		return
	}
	p.playing = false
	p.mu.Unlock()
	p.emit(EventPause)
}

// Toggle pauses a playing player and resumes a paused one.
func (p *Player) Toggle() {
	if p.Playing() {
		p.Pause()
	} else {
		p.Play()
	}
}

// Playing reports whether playback is active.
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

// Ended reports whether the device ran out of frames.
func (p *Player) Ended() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ended
}

// CurrentFrame returns the newest frame, or nil before the first one.
func (p *Player) CurrentFrame() *Frame {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.frame
}

// Run reads the device while playing until the device ends or ctx is
// cancelled. The device is closed on return.
func (p *Player) Run(ctx context.Context) {
	defer p.dev.Close()

	for {
		if !p.waitPlaying(ctx) {
			return
		}

		img, err := p.dev.Read()
		if err != nil {
			if !errors.Is(err, ErrEnded) {
				log.Warn("capture read failed", "error", err)
			}
			p.end()
			return
		}
		if img == nil {
			continue
		}

		p.mu.Lock()
		p.seq++
		p.frame = &Frame{Image: img, Seq: p.seq, Timestamp: time.Now()}
		p.mu.Unlock()
	}
}

func (p *Player) waitPlaying(ctx context.Context) bool {
	for !p.Playing() {
		select {
		case <-ctx.Done():
			return false
		case <-p.wake:
		}
	}
	return ctx.Err() == nil
}

func (p *Player) end() {
	p.emitMu.Lock()
	defer p.emitMu.Unlock()

	p.mu.Lock()
	if p.ended {
		p.mu.Unlock()
		return
	}
	p.ended = true
	p.playing = false
	p.mu.Unlock()
	p.emit(EventEnded)
}

func (p *Player) emit(e Event) {
	p.mu.Lock()
	listeners := append([]func(Event){}, p.listeners...)
	p.mu.Unlock()

	log.Debug("playback event", "event", e.String())
	for _, cb := range listeners {
		cb(e)
	}
}
