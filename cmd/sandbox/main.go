// Command sandbox opens a GLFW window and renders the camera fly-through with the WebGPU backend.
// Press Space to spawn a random triangle, Escape or close the window to quit.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Carmen-Shannon/oxy-sandbox/common"
	"github.com/Carmen-Shannon/oxy-sandbox/engine"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/app"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/config"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/renderer"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/window"
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
	// ── Window ──────────────────────────────────────────────────────────
	win, err := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
	)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	defer win.Close()

	// ── Renderer ────────────────────────────────────────────────────────
	r, err := renderer.NewRenderer(win, renderer.NewWGPURendererBackend, cfg.RendererOptions()...)
	if err != nil {
		return fmt.Errorf("construct renderer: %w", err)
	}
	defer r.Release()

	// ── Application + Engine ────────────────────────────────────────────
	a := app.NewApplication(r, app.WithDuration(cfg.Duration()))
	eng := engine.NewEngine(win, a,
		engine.WithProfiling(cfg.Engine.Profile),
		engine.WithRenderFrameLimit(cfg.Engine.FrameLimit),
		engine.WithMaxFrames(cfg.Engine.MaxFrames),
	)
	return eng.Run()
}
