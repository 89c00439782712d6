package config

import (
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"
)

// Defaults.
const (
	DefaultServerURL = "ws://localhost:8000/ws"
	DefaultDevice    = "0"
	DefaultWidth     = 640
	DefaultHeight    = 480
)

// Config holds all runtime configuration.
type Config struct {
	ServerURL string
	ClientID  string
	Device    string // camera index or "pattern"
	Width     int
	Height    int
	Headless  bool
	LogLevel  string
}

// ParseFlags parses the process command line and exits on error.
func ParseFlags() *Config {
	cfg, err := Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	return cfg
}

// Parse parses args into a Config.
func Parse(args []string) (*Config, error) {
	fs := flag.NewFlagSet("posecam", flag.ContinueOnError)

	cfg := &Config{}
	fs.StringVar(&cfg.ServerURL, "server", DefaultServerURL, "Landmark server WebSocket URL")
	fs.StringVar(&cfg.ClientID, "id", "", "Client ID for logs (auto-generated if empty)")
	fs.StringVar(&cfg.Device, "device", DefaultDevice, `Camera index, or "pattern" for a synthetic source`)
	fs.IntVar(&cfg.Width, "width", DefaultWidth, "Drawing surface width in pixels")
	fs.IntVar(&cfg.Height, "height", DefaultHeight, "Drawing surface height in pixels")
	fs.BoolVar(&cfg.Headless, "headless", false, "Log landmarks instead of opening a window")
	fs.StringVar(&cfg.LogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("surface size must be positive, got %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.ClientID == "" {
		cfg.ClientID = fmt.Sprintf("client-%s", uuid.NewString()[:8])
	}
	return cfg, nil
}
