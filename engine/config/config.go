// Package config holds the settings a game is started with. Settings are read from TOML and
// merged over Default, so a file only needs the keys it changes.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Carmen-Shannon/breakout/common"
	"github.com/Carmen-Shannon/breakout/engine/renderer"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"
)

// Config is the complete set of startup settings.
type Config struct {
	Window   WindowConfig   `toml:"window"`
	Renderer RendererConfig `toml:"renderer"`
	Game     GameConfig     `toml:"game"`
	Log      LogConfig      `toml:"log"`
	Profiler ProfilerConfig `toml:"profiler"`
}

// WindowConfig describes the host window.
type WindowConfig struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

// RendererConfig selects the graphics backend and frame pacing.
type RendererConfig struct {
	Backend       string     `toml:"backend"`
	VSync         bool       `toml:"vsync"`
	ClearColor    [3]float32 `toml:"clear_color"`
	LoaderWorkers int        `toml:"loader_workers"`
	TickRate      int        `toml:"tick_rate"`
	FrameLimit    int        `toml:"frame_limit"`
}

// GameConfig holds the gameplay tunables.
type GameConfig struct {
	Columns      int     `toml:"columns"`
	Rows         int     `toml:"rows"`
	Spacing      float32 `toml:"spacing"`
	PaddleSpeed  float32 `toml:"paddle_speed"`
	Friction     float32 `toml:"friction"`
	IntroSeconds float32 `toml:"intro_seconds"`
}

// LogConfig configures the root logger.
type LogConfig struct {
	Level       string `toml:"level"`
	Development bool   `toml:"development"`
}

// ProfilerConfig configures frame statistics.
type ProfilerConfig struct {
	Enabled         bool    `toml:"enabled"`
	IntervalSeconds float64 `toml:"interval_seconds"`
}

// Default returns the settings used when no file or flag overrides them.
//
// Returns:
//   - Config: the default settings
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:  "Breakout",
			Width:  800,
			Height: 600,
		},
		Renderer: RendererConfig{
			Backend:       renderer.BackendTypeGL.String(),
			VSync:         true,
			LoaderWorkers: 2,
			TickRate:      60,
		},
		Game: GameConfig{
			Columns:      14,
			Rows:         8,
			Spacing:      0.03,
			PaddleSpeed:  80,
			Friction:     30,
			IntroSeconds: 1.5,
		},
		Log: LogConfig{
			Level: "info",
		},
		Profiler: ProfilerConfig{
			IntervalSeconds: 1,
		},
	}
}

// Load reads the TOML file at path over Default.
//
// Parameters:
//   - path: the config file path
//
// Returns:
//   - Config: the merged settings
//   - error: an error if the file cannot be read, decoded or validated
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %q: %w", path, err)
	}
	cfg, err := Decode(bytes.NewReader(data))
	if err != nil {
		return Config{}, fmt.Errorf("failed to load config %q: %w", path, err)
	}
	return cfg, nil
}

// Decode reads TOML from r over Default. Unknown keys are rejected.
//
// Parameters:
//   - r: the TOML document
//
// Returns:
//   - Config: the merged settings
//   - error: an error if the document cannot be decoded or validated
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var decodeErr *toml.DecodeError
		if errors.As(err, &decodeErr) {
			row, col := decodeErr.Position()
			return Config{}, fmt.Errorf("failed to decode config at line %d column %d: %w", row, col, err)
		}
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Encode writes cfg as TOML.
//
// Parameters:
//   - w: the destination
//
// Returns:
//   - error: an error if encoding fails
func (c Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// Validate reports every invalid setting at once.
//
// Returns:
//   - error: the combined validation errors, nil when valid
func (c Config) Validate() error {
	var errs error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if _, err := renderer.ParseBackendType(c.Renderer.Backend); err != nil {
		errs = multierr.Append(errs, err)
	}
	if c.Renderer.LoaderWorkers <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("loader_workers must be positive, got %d", c.Renderer.LoaderWorkers))
	}
	if c.Renderer.TickRate <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("tick_rate must be positive, got %d", c.Renderer.TickRate))
	}
	if c.Renderer.FrameLimit < 0 {
		errs = multierr.Append(errs, fmt.Errorf("frame_limit must not be negative, got %d", c.Renderer.FrameLimit))
	}
	if c.Game.Columns <= 0 || c.Game.Rows <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("brick grid must be positive, got %dx%d", c.Game.Columns, c.Game.Rows))
	}
	if c.Game.Spacing < 0 {
		errs = multierr.Append(errs, fmt.Errorf("spacing must not be negative, got %g", c.Game.Spacing))
	}
	if c.Game.IntroSeconds < 0 {
		errs = multierr.Append(errs, fmt.Errorf("intro_seconds must not be negative, got %g", c.Game.IntroSeconds))
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("invalid log level: %w", err))
	}
	if c.Profiler.Enabled && c.Profiler.IntervalSeconds <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("profiler interval_seconds must be positive, got %g", c.Profiler.IntervalSeconds))
	}
	return errs
}

// BackendType returns the parsed renderer backend. Call Validate first.
func (c Config) BackendType() renderer.BackendType {
	b, _ := renderer.ParseBackendType(c.Renderer.Backend)
	return b
}

// ClearColor returns the renderer clear color.
func (c Config) ClearColor() common.Color {
	return common.Color{R: c.Renderer.ClearColor[0], G: c.Renderer.ClearColor[1], B: c.Renderer.ClearColor[2]}
}

// ProfilerInterval returns the profiler interval as a duration.
func (c Config) ProfilerInterval() time.Duration {
	return time.Duration(c.Profiler.IntervalSeconds * float64(time.Second))
}
