// Command sandbox-headless runs the sandbox against the headless backend and a scripted window.
// It needs no GPU or display and exits after a fixed number of frames.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Carmen-Shannon/oxy-sandbox/common"
	"github.com/Carmen-Shannon/oxy-sandbox/engine"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/app"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/config"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/event"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/renderer"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/window"
)

const (
	defaultFrames = 300
	spawnEvery    = 30
)

func main() {
	flags := config.RegisterFlags(flag.CommandLine)
	flag.Parse()

	cfg, err := flags.Resolve()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(2)
	}
	common.SetLogger(config.NewLogger(cfg, os.Stderr))

	if err := run(cfg); err != nil {
		common.Logger().Error("sandbox stopped", "err", err)
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	frames := common.Coalesce(cfg.Engine.MaxFrames, defaultFrames)

	// ── Window ──────────────────────────────────────────────────────────
	opts := []window.HeadlessWindowOption{
		window.WithHeadlessSize(cfg.Window.Width, cfg.Window.Height),
		window.WithFrameCount(frames),
	}
	spawn := event.KeyboardInput{Key: event.KeySpace, State: event.Pressed}
	for poll := 0; poll < frames; poll += spawnEvery {
		opts = append(opts, window.WithScriptedEvents(poll, spawn))
	}
	win := window.NewHeadlessWindow(opts...)
	defer win.Close()

	// ── Renderer ────────────────────────────────────────────────────────
	var backend renderer.HeadlessRendererBackend
	factory := func(bc renderer.BackendConfig) (renderer.RendererBackend, error) {
		b, err := renderer.NewHeadlessRendererBackend(bc)
		if err != nil {
			return nil, err
		}
		backend = b.(renderer.HeadlessRendererBackend)
		return b, nil
	}
	r, err := renderer.NewRenderer(win, factory, cfg.RendererOptions()...)
	if err != nil {
		return fmt.Errorf("construct renderer: %w", err)
	}
	defer r.Release()

	// ── Application + Engine ────────────────────────────────────────────
	a := app.NewApplication(r, app.WithDuration(cfg.Duration()))
	eng := engine.NewEngine(win, a,
		engine.WithProfiling(cfg.Engine.Profile),
		engine.WithRenderFrameLimit(cfg.Engine.FrameLimit),
	)
	if err := eng.Run(); err != nil {
		return err
	}

	common.Logger().Info("headless run finished",
		"frames", len(backend.Frames()),
		"vertices", r.VertexCount(),
		"indices", r.IndexCount(),
	)
	return nil
}
