package config

import (
	"strings"
	"testing"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.ServerURL != "ws://localhost:8000/ws" {
		t.Errorf("ServerURL = %q", cfg.ServerURL)
	}
	if cfg.Device != "0" {
		t.Errorf("Device = %q, want 0", cfg.Device)
	}
	if cfg.Width != 640 || cfg.Height != 480 {
		t.Errorf("size = %dx%d, want 640x480", cfg.Width, cfg.Height)
	}
	if cfg.Headless {
		t.Error("Headless should default to false")
	}
	if !strings.HasPrefix(cfg.ClientID, "client-") {
		t.Errorf("ClientID = %q, want generated client- prefix", cfg.ClientID)
	}
}

func TestParseOverrides(t *testing.T) {
	cfg, err := Parse([]string{
		"-server", "ws://example:9000/ws",
		"-id", "cam-1",
		"-device", "pattern",
		"-width", "320",
		"-height", "240",
		"-headless",
		"-log-level", "debug",
	})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.ServerURL != "ws://example:9000/ws" || cfg.ClientID != "cam-1" || cfg.Device != "pattern" {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.Width != 320 || cfg.Height != 240 || !cfg.Headless || cfg.LogLevel != "debug" {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestParseRejectsBadSize(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"zero width", []string{"-width", "0"}},
		{"negative height", []string{"-height", "-1"}},
		{"unknown flag", []string{"-fps", "30"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.args); err == nil {
				t.Error("Parse() expected error")
			}
		})
	}
}
