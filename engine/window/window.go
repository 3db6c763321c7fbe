package window

import (
	"github.com/Carmen-Shannon/oxy-sandbox/engine/event"
	"github.com/cogentcore/webgpu/wgpu"
)

// Window provides platform windowing and translates native input into events.
// It doubles as the drawable surface handed to the renderer.
type Window interface {
	// PollEvents processes pending native events without blocking and delivers the translated events to sink
	// in the order they arrived. A close request or an Escape press stops the window instead of producing an event.
	//
	// Parameters:
	//   - sink: function receiving each translated event
	PollEvents(sink func(event.Event))

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if there is no native window
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// Minimized reports whether the drawable area is currently empty. No frames should be rendered while it is.
	//
	// Returns:
	//   - bool: true if the framebuffer has a zero dimension
	Minimized() bool

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// Width returns the current framebuffer width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the current framebuffer height in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int

	// ScaleFactor returns the ratio between framebuffer pixels and screen coordinates.
	//
	// Returns:
	//   - float64: the scale factor
	ScaleFactor() float64
}

// engineWindow is the GLFW implementation of the Window interface.
type engineWindow struct {
	// title is the window title displayed in the title bar.
	title string

	// maxWidth is the maximum allowed window width during resize.
	maxWidth int

	// maxHeight is the maximum allowed window height during resize.
	maxHeight int

	// minWidth is the minimum allowed window width during resize.
	minWidth int

	// minHeight is the minimum allowed window height during resize.
	minHeight int

	// width and height are the initial window size in screen coordinates.
	width  int
	height int

	// internalWindow holds the GLFW window state.
	internalWindow *glfwWindow

	// translator turns native callbacks into events and tracks framebuffer size, scale and modifiers.
	translator *translator
}

var _ Window = &engineWindow{}

// NewWindow creates and shows a new Window with the specified options.
// Applies default values first, then each option in order. Must be called from the main goroutine.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the spawned window
//   - error: error if GLFW or the native window could not be created
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := &engineWindow{
		title:     "oxy sandbox",
		maxWidth:  -1,
		maxHeight: -1,
		minWidth:  -1,
		minHeight: -1,
		width:     800,
		height:    600,
	}
	for _, opt := range options {
		opt(w)
	}
	if err := newPlatformWindow(w); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *engineWindow) PollEvents(sink func(event.Event)) {
	if w.internalWindow == nil {
		return
	}
	w.translator.sink = sink
	platformProcessMessages(w)
	w.translator.sink = nil
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) Minimized() bool {
	return w.translator.minimized()
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) Width() int {
	return w.translator.width
}

func (w *engineWindow) Height() int {
	return w.translator.height
}

func (w *engineWindow) ScaleFactor() float64 {
	return w.translator.scale
}
