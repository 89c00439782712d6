package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/junsooki/posecam/internal/capture"
	"github.com/junsooki/posecam/internal/config"
	"github.com/junsooki/posecam/internal/display"
	"github.com/junsooki/posecam/internal/encoder"
	"github.com/junsooki/posecam/internal/landmarks"
	"github.com/junsooki/posecam/internal/log"
	"github.com/junsooki/posecam/internal/stream"
	"github.com/junsooki/posecam/internal/transport"
	"github.com/junsooki/posecam/internal/webcam"
)

func main() {
	cfg := config.ParseFlags()
	log.Init(cfg.LogLevel)
	logger := log.With("client", cfg.ClientID)

	logger.Info("posecam starting",
		"server", cfg.ServerURL,
		"device", cfg.Device,
		"surface", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
		"interval", stream.Interval,
		"quality", stream.Quality,
	)

	opener, err := openerFor(cfg)
	if err != nil {
		logger.Error("invalid device", "error", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Text region.
	board := landmarks.NewBoard(func(text string) {
		if cfg.Headless {
			logger.Info("landmarks", "text", text)
		} else {
			logger.Debug("landmarks updated", "bytes", len(text))
		}
	})

	// Connection.
	conn := transport.NewConn(cfg.ServerURL, transport.Handler{
		OnMessage: func(data []byte) {
			if err := board.Apply(data); err != nil {
				logger.Error("bad landmark message", "error", err)
			}
		},
	})

	// Capture-and-stream loop.
	streamer := stream.New(cfg.Width, cfg.Height, encoder.NewJPEGEncoder(stream.Quality), conn)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		conn.Run(gctx)
		return nil
	})
	g.Go(func() error {
		return streamer.Run(gctx)
	})

	// Camera. A refusal only stops the capture path; the connection and
	// the text region keep working.
	player, err := streamer.Start(gctx, opener)
	if err != nil {
		logger.Error("error accessing webcam", "error", err)
	} else {
		g.Go(func() error {
			player.Run(gctx)
			return nil
		})
	}

	var disp display.Display
	if cfg.Headless {
		disp = display.NewHeadless(gctx)
	} else {
		var (
			frames   display.FrameSource
			playback display.Playback
		)
		if player != nil {
			frames, playback = player, player
		}
		disp = display.NewEbitenDisplay(gctx, "posecam", frames, board, playback)
	}

	// Ebitengine RunGame must be on the main goroutine (macOS requirement).
	// Both displays return once gctx is cancelled.
	if err := disp.Run(); err != nil {
		logger.Error("display", "error", err)
	}

	logger.Info("shutting down")
	stop()
	if err := g.Wait(); err != nil {
		logger.Error("shutdown", "error", err)
	}

	st := streamer.Stats()
	logger.Info("stopped",
		"cycles", st.Cycles,
		"sent", st.Sent,
		"dropped", st.Dropped,
		"failed", st.Failed,
	)
}

func openerFor(cfg *config.Config) (capture.Opener, error) {
	if cfg.Device == "pattern" {
		return capture.NewPatternDevice(1280, 720, 33*time.Millisecond).Opener(), nil
	}
	index, err := strconv.Atoi(cfg.Device)
	if err != nil || index < 0 {
		return nil, fmt.Errorf("device must be a camera index or \"pattern\", got %q", cfg.Device)
	}
	return webcam.Opener(index), nil
}
