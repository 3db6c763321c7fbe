package engine

import (
	"time"

	"github.com/Carmen-Shannon/oxy-sandbox/common"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/event"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/profiler"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/window"
)

// minimizedWait is how long the loop idles per iteration while the window has no drawable area.
const minimizedWait = 16 * time.Millisecond

// engine implements the Engine interface.
// Owns exactly one window and one handler and runs them on the calling goroutine.
type engine struct {
	window  window.Window
	handler event.Handler

	profiler         *profiler.Profiler
	profilingEnabled bool

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
	maxFrames        int           // 0 = until the window closes
	frames           int

	sleep func(time.Duration)
	now   func() time.Time
}

// Engine is the application loop driver.
// It polls the window, hands every translated event to the handler one at a time, then asks for a frame.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetRenderFrameLimit sets an optional render frame rate cap in frames per second.
	// Pass 0 to uncap the render loop (default).
	//
	// Parameters:
	//   - fps: maximum render frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// Frames returns how many Render events have been dispatched.
	//
	// Returns:
	//   - int: the number of rendered frames
	Frames() int

	// Run drives the loop on the calling goroutine until the window stops running, the frame budget is
	// spent or the handler fails. Must be called from the goroutine that created the window.
	//
	// Returns:
	//   - error: the first handler error, or nil on a clean shutdown
	Run() error
}

// NewEngine creates a new Engine driving w and delivering its events to h.
//
// Parameters:
//   - w: the window to poll
//   - h: the handler receiving every event
//   - options: functional options for engine configuration (profiling, frame limit, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(w window.Window, h event.Handler, options ...EngineBuilderOption) Engine {
	e := &engine{
		window:   w,
		handler:  h,
		profiler: profiler.NewProfiler(),
		sleep:    time.Sleep,
		now:      time.Now,
	}

	for _, opt := range options {
		opt(e)
	}
	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Frames() int {
	return e.frames
}

func (e *engine) Run() error {
	var pending []event.Event
	sink := func(ev event.Event) {
		pending = append(pending, ev)
	}

	for e.window.IsRunning() {
		if e.maxFrames > 0 && e.frames >= e.maxFrames {
			break
		}
		frameStart := e.now()

		pending = pending[:0]
		e.window.PollEvents(sink)
		for _, ev := range pending {
			if err := e.handler.HandleEvent(ev); err != nil {
				return err
			}
		}

		if !e.window.IsRunning() {
			break
		}
		if e.window.Minimized() {
			e.sleep(minimizedWait)
			continue
		}

		if err := e.handler.HandleEvent(event.Render{}); err != nil {
			return err
		}
		e.frames++

		if e.profilingEnabled && e.profiler != nil {
			e.profiler.Tick()
		}

		// Frame rate limiting
		if e.renderFrameLimit > 0 {
			if remaining := e.renderFrameLimit - e.now().Sub(frameStart); remaining > 0 {
				e.sleep(remaining)
			}
		}
	}

	common.Logger().Debug("event loop stopped", "frames", e.frames)
	return nil
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

// SetRenderFrameLimit sets an optional render frame rate cap.
// Pass 0 to uncap the render loop.
func (e *engine) SetRenderFrameLimit(fps float64) {
	e.renderFrameLimit = frameDuration(fps)
}

func frameDuration(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}
