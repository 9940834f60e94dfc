// Package config loads the daemon's YAML configuration file: layout
// gap/padding, cursor-poll cadence, the IPC socket path, an open-command
// table, and optional hotkeys.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Margins is a four-sided inset, reused for screen padding.
type Margins struct {
	Top    int `yaml:"top"`
	Bottom int `yaml:"bottom"`
	Left   int `yaml:"left"`
	Right  int `yaml:"right"`
}

// Config is the daemon's effective configuration.
type Config struct {
	// GapSize is the pixel inset the layout engine applies on every
	// side of the work rect. Adjacent windows are placed edge to edge,
	// with no gap between them.
	GapSize int `yaml:"gap_size"`

	// ScreenPadding insets every monitor's work rect beyond whatever
	// the platform itself already reserves for docks/panels.
	ScreenPadding Margins `yaml:"screen_padding"`

	// CursorPollIntervalMS overrides the focus-follows-mouse poll
	// cadence. 0 means use the built-in default.
	CursorPollIntervalMS int `yaml:"cursor_poll_interval_ms"`

	// SocketPath is the Unix socket the IPC server listens on and
	// winscrollwmctl connects to.
	SocketPath string `yaml:"socket_path"`

	// LogLevel names a log verbosity: debug, info, warn, error. It is
	// loaded and saved with the rest of the file; the daemon's logging
	// does not read it.
	LogLevel string `yaml:"log_level"`

	// OpenCommands maps a logical program name to a shell command line.
	// It is loaded and saved with the rest of the file; the open verb
	// does not consult it and passes its arguments to the adapter
	// unchanged.
	OpenCommands map[string]string `yaml:"open_commands"`

	// Hotkeys optionally registers global X11 hotkeys mapped to
	// command-protocol verbs. Empty means no hotkeys are registered and
	// the daemon relies entirely on its external command stream.
	Hotkeys map[string]string `yaml:"hotkeys,omitempty"`
}

// CursorPollInterval returns the effective poll interval, falling back
// to def when unset.
func (c *Config) CursorPollInterval(def time.Duration) time.Duration {
	if c.CursorPollIntervalMS <= 0 {
		return def
	}
	return time.Duration(c.CursorPollIntervalMS) * time.Millisecond
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		GapSize:    8,
		SocketPath: defaultSocketPath(),
		LogLevel:   "info",
		OpenCommands: map[string]string{
			"terminal": "x-terminal-emulator",
		},
	}
}

func defaultSocketPath() string {
	dir := os.Getenv("XDG_RUNTIME_DIR")
	if dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "winscrollwm.sock")
}

// DefaultConfigPath returns ~/.config/winscrollwm/config.yaml.
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "winscrollwm", "config.yaml"), nil
}

// Load reads and merges the configuration at the standard path over
// DefaultConfig. A missing file is not an error: it yields the default
// configuration unchanged.
func Load() (*Config, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath reads and merges the configuration at path over
// DefaultConfig.
func LoadFromPath(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to the standard config path, creating its parent
// directory if necessary.
func Save(cfg *Config) error {
	path, err := DefaultConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}
