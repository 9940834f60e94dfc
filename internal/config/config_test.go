package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFromPathMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if cfg.GapSize != 8 {
		t.Fatalf("expected default gap size 8, got %d", cfg.GapSize)
	}
}

func TestLoadFromPathParsesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "gap_size: 16\nlog_level: debug\nsocket_path: /tmp/custom.sock\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if cfg.GapSize != 16 {
		t.Fatalf("GapSize = %d, want 16", cfg.GapSize)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.SocketPath != "/tmp/custom.sock" {
		t.Fatalf("SocketPath = %q", cfg.SocketPath)
	}
}

func TestCursorPollIntervalFallsBackToDefault(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.CursorPollInterval(50 * time.Millisecond); got != 50*time.Millisecond {
		t.Fatalf("expected fallback default, got %v", got)
	}
	cfg.CursorPollIntervalMS = 100
	if got := cfg.CursorPollInterval(50 * time.Millisecond); got != 100*time.Millisecond {
		t.Fatalf("expected override, got %v", got)
	}
}
