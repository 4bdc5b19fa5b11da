// Command breakout opens a window and plays the brick wall intro on the selected backend.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Carmen-Shannon/breakout/engine"
	"github.com/Carmen-Shannon/breakout/engine/config"
	"github.com/Carmen-Shannon/breakout/engine/input"
	"github.com/Carmen-Shannon/breakout/engine/logging"
	"github.com/Carmen-Shannon/breakout/engine/profiler"
	"github.com/Carmen-Shannon/breakout/engine/registry"
	"github.com/Carmen-Shannon/breakout/engine/renderer"
	"github.com/Carmen-Shannon/breakout/engine/window"
	"github.com/Carmen-Shannon/breakout/game/breakout"
	"github.com/spf13/pflag"
	"go.uber.org/multierr"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, "breakout:", err)
		os.Exit(1)
	}
}

// options are the command line settings that do not live in the config file.
type options struct {
	maxFrames uint64
}

// loadConfig parses args, loads the --config file when given and applies every flag the user
// set on top of it.
func loadConfig(args []string) (config.Config, options, error) {
	var (
		opts options
		path string
	)
	cfg := config.Default()

	flags := pflag.NewFlagSet("breakout", pflag.ContinueOnError)
	flags.StringVarP(&path, "config", "c", "", "path to a TOML config file")
	backendName := flags.String("backend", cfg.Renderer.Backend, "graphics backend: gl, wgpu or headless")
	width := flags.Int("width", cfg.Window.Width, "window width in pixels")
	height := flags.Int("height", cfg.Window.Height, "window height in pixels")
	columns := flags.Int("columns", cfg.Game.Columns, "bricks per row")
	rows := flags.Int("rows", cfg.Game.Rows, "brick rows")
	vsync := flags.Bool("vsync", cfg.Renderer.VSync, "wait for vertical blank when presenting")
	level := flags.String("log-level", cfg.Log.Level, "log level: debug, info, warn or error")
	profile := flags.Bool("profile", cfg.Profiler.Enabled, "log frame statistics")
	flags.Uint64Var(&opts.maxFrames, "frames", 0, "stop after this many frames, 0 runs until closed")
	if err := flags.Parse(args); err != nil {
		return config.Config{}, opts, err
	}

	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return config.Config{}, opts, err
		}
		cfg = loaded
	}

	if flags.Changed("backend") {
		cfg.Renderer.Backend = *backendName
	}
	if flags.Changed("width") {
		cfg.Window.Width = *width
	}
	if flags.Changed("height") {
		cfg.Window.Height = *height
	}
	if flags.Changed("columns") {
		cfg.Game.Columns = *columns
	}
	if flags.Changed("rows") {
		cfg.Game.Rows = *rows
	}
	if flags.Changed("vsync") {
		cfg.Renderer.VSync = *vsync
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = *level
	}
	if flags.Changed("profile") {
		cfg.Profiler.Enabled = *profile
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, opts, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, opts, nil
}

func presentMode(cfg config.Config) renderer.PresentMode {
	if cfg.Renderer.VSync {
		return renderer.PresentModeVSync
	}
	return renderer.PresentModeUncapped
}

func layout(cfg config.Config) breakout.Layout {
	l := breakout.DefaultLayout()
	l.Columns = cfg.Game.Columns
	l.Rows = cfg.Game.Rows
	l.Spacing = cfg.Game.Spacing
	return l
}

func run(args []string) (err error) {
	cfg, opts, err := loadConfig(args)
	if err != nil {
		return err
	}

	logger, err := logging.Init(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logging.Context(ctx, logger)

	kind := cfg.BackendType()
	kb := input.NewKeyboard()

	// ── Window ──────────────────────────────────────────────────────
	var win window.Window
	if kind != renderer.BackendTypeHeadless {
		win, err = window.NewWindow(
			window.WithTitle(cfg.Window.Title),
			window.WithWidth(cfg.Window.Width),
			window.WithHeight(cfg.Window.Height),
			window.WithClientAPI(engine.ClientAPI(kind)),
			window.WithKeyboard(kb),
		)
		if err != nil {
			return err
		}
		defer func() { err = multierr.Append(err, win.Close()) }()
	}

	// ── Graphics context ────────────────────────────────────────────
	gctx, err := engine.NewContext(kind, win, presentMode(cfg), logger)
	if err != nil {
		return err
	}
	defer gctx.Release()

	// ── Renderer ────────────────────────────────────────────────────
	rendererOpts, err := breakout.RendererOptions()
	if err != nil {
		return err
	}
	rendererOpts = append(rendererOpts,
		renderer.WithClearColor(cfg.ClearColor()),
		renderer.WithLoaderWorkers(cfg.Renderer.LoaderWorkers),
		renderer.WithLogger(logger),
	)
	if cfg.Profiler.Enabled {
		prof := profiler.NewProfiler(
			profiler.WithInterval(cfg.ProfilerInterval()),
			profiler.WithLogger(logger),
		)
		rendererOpts = append(rendererOpts, renderer.WithProfiler(prof))
		defer prof.LogSummary()
	}
	r := renderer.NewRenderer(gctx, rendererOpts...)
	defer r.Release()

	// ── Game ────────────────────────────────────────────────────────
	game, err := breakout.NewGame(registry.NewRegistry(), kb,
		breakout.WithLayout(layout(cfg)),
		breakout.WithPaddle(cfg.Game.PaddleSpeed, cfg.Game.Friction),
		breakout.WithIntro(cfg.Game.IntroSeconds),
		breakout.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	if err := game.Load(ctx, r); err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, r.Decompose(game.Scene())) }()

	// ── Engine ──────────────────────────────────────────────────────
	engineOpts := []engine.EngineBuilderOption{
		engine.WithScene(0, game.Scene()),
		engine.WithTickRate(float64(cfg.Renderer.TickRate)),
		engine.WithRenderFrameLimit(float64(cfg.Renderer.FrameLimit)),
		engine.WithMaxFrames(opts.maxFrames),
		engine.WithLogger(logger),
	}
	if win != nil {
		engineOpts = append(engineOpts, engine.WithWindow(win))
	}
	eng := engine.NewEngine(r, engineOpts...)

	if err := eng.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
