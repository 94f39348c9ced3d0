// Package config loads the viewer settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/OpenTraceLab/OpenTraceSchema/pkg/kicad/schematic/renderer"
)

// Config stores persistent application settings
type Config struct {
	Log     LogConfig     `yaml:"log"`
	View    ViewConfig    `yaml:"view"`
	Metrics MetricsConfig `yaml:"metrics"`
}

type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

type ViewConfig struct {
	Theme  string `yaml:"theme"` // light or dark
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

type MetricsConfig struct {
	// Address serves /metrics when set, e.g. ":9090".
	Address string `yaml:"address"`
}

// Default returns the settings used when no file exists.
func Default() *Config {
	return &Config{
		Log:  LogConfig{Level: "info", Format: "text"},
		View: ViewConfig{Theme: "light", Width: 1280, Height: 800},
	}
}

// Path returns the per-user config file location.
func Path() (string, error) {
	var configDir string
	// Use platform-appropriate config directory
	if appData := os.Getenv("APPDATA"); appData != "" {
		// Windows: use %APPDATA%\OpenTraceSchema
		configDir = filepath.Join(appData, "OpenTraceSchema")
	} else {
		// Linux/macOS: use ~/.config/opentraceschema
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(homeDir, ".config", "opentraceschema")
	}
	return filepath.Join(configDir, "config.yaml"), nil
}

// Load reads path, or the per-user file when path is empty. A missing
// file yields Default. Keys absent from the file keep their defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := Path()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path, creating the directory if needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate rejects values the viewer cannot use.
func (c *Config) Validate() error {
	var errs []error
	if _, err := ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q", c.Log.Format))
	}
	if _, err := renderer.ParseTheme(c.View.Theme); err != nil {
		errs = append(errs, err)
	}
	if c.View.Width <= 0 || c.View.Height <= 0 {
		errs = append(errs, fmt.Errorf("view size must be positive, got %dx%d", c.View.Width, c.View.Height))
	}
	return errors.Join(errs...)
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
	return level, nil
}
