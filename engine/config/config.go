// Package config holds the sandbox settings shared by both binaries.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Carmen-Shannon/oxy-sandbox/engine/renderer"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned by Validate and Load when a setting is out of range.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the complete sandbox configuration.
type Config struct {
	Window   WindowConfig   `toml:"window" yaml:"window"`
	Renderer RendererConfig `toml:"renderer" yaml:"renderer"`
	App      AppConfig      `toml:"app" yaml:"app"`
	Engine   EngineConfig   `toml:"engine" yaml:"engine"`
	Log      LogConfig      `toml:"log" yaml:"log"`
}

// WindowConfig configures the native window.
type WindowConfig struct {
	Title  string `toml:"title" yaml:"title"`
	Width  int    `toml:"width" yaml:"width"`
	Height int    `toml:"height" yaml:"height"`
}

// RendererConfig configures buffer capacities and presentation.
type RendererConfig struct {
	MaxVertices int `toml:"max_vertices" yaml:"max_vertices"`
	MaxIndices  int `toml:"max_indices" yaml:"max_indices"`
	// PresentMode is one of "auto", "vsync" or "uncapped".
	PresentMode   string     `toml:"present_mode" yaml:"present_mode"`
	ForceSoftware bool       `toml:"force_software" yaml:"force_software"`
	ClearColor    [4]float64 `toml:"clear_color" yaml:"clear_color"`
}

// AppConfig configures the application state machine.
type AppConfig struct {
	// DurationSeconds is how long one traversal of the camera path takes.
	DurationSeconds float64 `toml:"duration_seconds" yaml:"duration_seconds"`
}

// EngineConfig configures the event loop driver.
type EngineConfig struct {
	Profile bool `toml:"profile" yaml:"profile"`
	// FrameLimit caps rendered frames per second. Zero is uncapped.
	FrameLimit float64 `toml:"frame_limit" yaml:"frame_limit"`
	// MaxFrames stops the loop after this many iterations. Zero runs until the window closes.
	MaxFrames int `toml:"max_frames" yaml:"max_frames"`
}

// LogConfig configures the slog handler installed by the binaries.
type LogConfig struct {
	// Level is one of "debug", "info", "warn" or "error".
	Level string `toml:"level" yaml:"level"`
}

// Default returns the built-in configuration.
//
// Returns:
//   - Config: the defaults
func Default() Config {
	c := renderer.DefaultClearColor
	return Config{
		Window: WindowConfig{
			Title:  "oxy sandbox",
			Width:  800,
			Height: 600,
		},
		Renderer: RendererConfig{
			MaxVertices: renderer.DefaultMaxVertices,
			MaxIndices:  renderer.DefaultMaxIndices,
			PresentMode: renderer.PresentModeAuto.String(),
			ClearColor:  [4]float64{c.R, c.G, c.B, c.A},
		},
		App: AppConfig{
			DurationSeconds: 5,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads a TOML (.toml) or YAML (.yaml, .yml) file over the defaults and validates the result.
// Keys missing from the file keep their default value. Unknown keys are an error.
//
// Parameters:
//   - path: the file to read
//
// Returns:
//   - Config: the loaded configuration
//   - error: an error if the file cannot be read, decoded or validated
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return Config{}, fmt.Errorf("decode %s: %w", path, err)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		// an empty document leaves the defaults untouched
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("decode %s: %w", path, err)
		}
	default:
		return Config{}, fmt.Errorf("%w: unsupported config extension %q", ErrInvalidConfig, ext)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every setting.
//
// Returns:
//   - error: an error wrapping ErrInvalidConfig naming the first bad setting
func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	case c.Renderer.MaxVertices <= 0:
		return fmt.Errorf("%w: renderer.max_vertices %d", ErrInvalidConfig, c.Renderer.MaxVertices)
	case c.Renderer.MaxIndices <= 0:
		return fmt.Errorf("%w: renderer.max_indices %d", ErrInvalidConfig, c.Renderer.MaxIndices)
	case c.App.DurationSeconds <= 0:
		return fmt.Errorf("%w: app.duration_seconds %v", ErrInvalidConfig, c.App.DurationSeconds)
	case c.Engine.FrameLimit < 0:
		return fmt.Errorf("%w: engine.frame_limit %v", ErrInvalidConfig, c.Engine.FrameLimit)
	case c.Engine.MaxFrames < 0:
		return fmt.Errorf("%w: engine.max_frames %d", ErrInvalidConfig, c.Engine.MaxFrames)
	}
	if _, err := ParsePresentMode(c.Renderer.PresentMode); err != nil {
		return err
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// ParsePresentMode maps a present mode name onto renderer.PresentMode.
//
// Parameters:
//   - name: "auto", "vsync" or "uncapped", case insensitive
//
// Returns:
//   - renderer.PresentMode: the present mode
//   - error: an error wrapping ErrInvalidConfig for unknown names
func ParsePresentMode(name string) (renderer.PresentMode, error) {
	for _, m := range []renderer.PresentMode{renderer.PresentModeAuto, renderer.PresentModeVSync, renderer.PresentModeUncapped} {
		if strings.EqualFold(name, m.String()) {
			return m, nil
		}
	}
	return renderer.PresentModeAuto, fmt.Errorf("%w: unknown present mode %q", ErrInvalidConfig, name)
}

// ParseLevel maps a log level name onto slog.Level.
//
// Parameters:
//   - name: "debug", "info", "warn" or "error", case insensitive
//
// Returns:
//   - slog.Level: the level
//   - error: an error wrapping ErrInvalidConfig for unknown names
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo, fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, name)
	}
	return level, nil
}

// Duration returns the camera path traversal time.
func (c Config) Duration() time.Duration {
	return time.Duration(c.App.DurationSeconds * float64(time.Second))
}

// RendererOptions turns the renderer section into renderer builder options. Call Validate first.
//
// Returns:
//   - []renderer.RendererBuilderOption: the options for renderer.NewRenderer
func (c Config) RendererOptions() []renderer.RendererBuilderOption {
	mode, _ := ParsePresentMode(c.Renderer.PresentMode)
	cc := c.Renderer.ClearColor
	return []renderer.RendererBuilderOption{
		renderer.WithCapacity(c.Renderer.MaxVertices, c.Renderer.MaxIndices),
		renderer.WithPresentMode(mode),
		renderer.WithForceSoftwareRenderer(c.Renderer.ForceSoftware),
		renderer.WithClearColor(wgpu.Color{R: cc[0], G: cc[1], B: cc[2], A: cc[3]}),
	}
}
