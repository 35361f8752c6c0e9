// Package config loads the window and runtime settings of jazz programs.
package config

import (
	_ "embed"
	"time"

	"github.com/pkg/errors"
)

//go:embed default.yaml
var defaultYAML []byte

// Config is the complete jazz configuration.
type Config struct {
	// TPS is the number of frame ticks per second.
	TPS int `yaml:"tps"`
	// RandomSeed seeds the global generator from the clock at startup.
	RandomSeed bool `yaml:"random_seed"`
	// Seed, when non-zero, replaces the default seed at startup. Ignored if
	// RandomSeed is set.
	Seed int64 `yaml:"seed"`
	// FallbackWidth and FallbackHeight size windows that asked for
	// fullscreen on a device that can't do it.
	FallbackWidth  int `yaml:"fallback_width"`
	FallbackHeight int `yaml:"fallback_height"`

	RunnableOnUnfocused bool `yaml:"runnable_on_unfocused"`
	Resizable           bool `yaml:"resizable"`

	// CreateTimeout bounds how long window creation waits for the UI
	// context.
	CreateTimeout time.Duration `yaml:"create_timeout"`

	View View `yaml:"view"`
	Log  Log  `yaml:"log"`
}

// View configures the zoom and pan controls of windows.
type View struct {
	// Interactive enables wheel zoom and right-button drag panning.
	Interactive bool    `yaml:"interactive"`
	MinZoom     float64 `yaml:"min_zoom"`
	MaxZoom     float64 `yaml:"max_zoom"`
	ZoomStep    float64 `yaml:"zoom_step"`
}

// Log configures the logger.
type Log struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json, logfmt
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		TPS:                 60,
		FallbackWidth:       800,
		FallbackHeight:      600,
		RunnableOnUnfocused: true,
		Resizable:           true,
		CreateTimeout:       10 * time.Second,
		View: View{
			Interactive: true,
			MinZoom:     0.1,
			MaxZoom:     16,
			ZoomStep:    1.1,
		},
		Log: Log{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.TPS <= 0 {
		return errors.Errorf("tps must be positive, got %d", c.TPS)
	}
	if c.FallbackWidth <= 0 || c.FallbackHeight <= 0 {
		return errors.Errorf("fallback size must be positive, got %dx%d", c.FallbackWidth, c.FallbackHeight)
	}
	if c.CreateTimeout <= 0 {
		return errors.Errorf("create_timeout must be positive, got %v", c.CreateTimeout)
	}
	if c.View.MinZoom <= 0 || c.View.MinZoom > c.View.MaxZoom {
		return errors.Errorf("invalid zoom limits [%v, %v]", c.View.MinZoom, c.View.MaxZoom)
	}
	if c.View.ZoomStep <= 1 {
		return errors.Errorf("zoom_step must be greater than 1, got %v", c.View.ZoomStep)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.Errorf("unknown log level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json", "logfmt":
	default:
		return errors.Errorf("unknown log format %q", c.Log.Format)
	}
	return nil
}
