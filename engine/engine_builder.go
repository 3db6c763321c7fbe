package engine

import (
	"time"

	"github.com/Carmen-Shannon/oxy-sandbox/engine/profiler"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithProfiler replaces the default profiler.
//
// Parameters:
//   - p: the profiler ticked once per rendered frame
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiler(p *profiler.Profiler) EngineBuilderOption {
	return func(e *engine) {
		e.profiler = p
	}
}

// WithRenderFrameLimit sets an optional render frame rate cap in frames per second.
// Pass 0 to uncap the render loop (default).
//
// Parameters:
//   - fps: maximum render frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.renderFrameLimit = frameDuration(fps)
	}
}

// WithMaxFrames stops Run after the given number of rendered frames. Values <= 0 run until the window closes.
//
// Parameters:
//   - frames: the frame budget
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithMaxFrames(frames int) EngineBuilderOption {
	return func(e *engine) {
		if frames < 0 {
			frames = 0
		}
		e.maxFrames = frames
	}
}

// WithSleep replaces time.Sleep for frame limiting and minimized idling.
//
// Parameters:
//   - sleep: the sleep function
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithSleep(sleep func(time.Duration)) EngineBuilderOption {
	return func(e *engine) {
		e.sleep = sleep
	}
}
