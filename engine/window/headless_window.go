package window

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-sandbox/engine/event"
	"github.com/cogentcore/webgpu/wgpu"
)

// HeadlessWindowOption is a functional option for configuring a headless window.
type HeadlessWindowOption func(w *headlessWindow)

// WithHeadlessSize sets the initial framebuffer size of a headless window.
//
// Parameters:
//   - width: framebuffer width in pixels
//   - height: framebuffer height in pixels
//
// Returns:
//   - HeadlessWindowOption: option function to apply
func WithHeadlessSize(width, height int) HeadlessWindowOption {
	return func(w *headlessWindow) {
		w.width = width
		w.height = height
	}
}

// WithFrameCount stops the window after the given number of polls. Zero or less runs until Close.
//
// Parameters:
//   - frames: number of PollEvents calls before the window stops
//
// Returns:
//   - HeadlessWindowOption: option function to apply
func WithFrameCount(frames int) HeadlessWindowOption {
	return func(w *headlessWindow) {
		w.frames = frames
	}
}

// WithScriptedEvents queues events to be delivered by the poll with the given zero based index.
// Resize and Escape events are handled the way a native window handles them.
//
// Parameters:
//   - poll: the index of the PollEvents call delivering the events
//   - events: the events to deliver in order
//
// Returns:
//   - HeadlessWindowOption: option function to apply
func WithScriptedEvents(poll int, events ...event.Event) HeadlessWindowOption {
	return func(w *headlessWindow) {
		w.script[poll] = append(w.script[poll], events...)
	}
}

// headlessWindow is a Window with no native backing. It replays scripted events and has no surface descriptor.
type headlessWindow struct {
	mu *sync.Mutex

	frames  int
	polls   int
	running bool
	script  map[int][]event.Event

	translator *translator
	width      int
	height     int
}

var _ Window = &headlessWindow{}

// NewHeadlessWindow creates a Window that never touches the platform. Defaults to 800x600 at scale 1 and
// runs until closed.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the headless window
func NewHeadlessWindow(options ...HeadlessWindowOption) Window {
	w := &headlessWindow{
		mu:      &sync.Mutex{},
		running: true,
		script:  make(map[int][]event.Event),
		width:   800,
		height:  600,
	}
	for _, opt := range options {
		opt(w)
	}
	w.translator = &translator{
		quit:   func() { w.running = false },
		width:  w.width,
		height: w.height,
		scale:  1,
	}
	return w
}

func (w *headlessWindow) PollEvents(sink func(event.Event)) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return
	}
	if w.frames > 0 && w.polls >= w.frames {
		w.running = false
		return
	}

	w.translator.sink = sink
	for _, e := range w.script[w.polls] {
		w.replay(e)
		if !w.running {
			break
		}
	}
	w.translator.sink = nil
	w.polls++
}

// replay routes a scripted event through the translator so it gets native window semantics.
func (w *headlessWindow) replay(e event.Event) {
	switch e := e.(type) {
	case event.Resize:
		if e.ScaleFactor > 0 {
			w.translator.scale = e.ScaleFactor
		}
		w.translator.framebufferSize(int(e.Width), int(e.Height))
	case event.KeyboardInput:
		if e.Key == event.KeyEscape && e.State == event.Pressed {
			w.translator.quit()
			return
		}
		w.translator.emit(e)
	case event.ModifiersChanged:
		w.translator.mods = e.Modifiers
		w.translator.emit(e)
	default:
		w.translator.emit(e)
	}
}

func (w *headlessWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return nil
}

func (w *headlessWindow) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

func (w *headlessWindow) Minimized() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.translator.minimized()
}

func (w *headlessWindow) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.running = false
	return nil
}

func (w *headlessWindow) Width() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.translator.width
}

func (w *headlessWindow) Height() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.translator.height
}

func (w *headlessWindow) ScaleFactor() float64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.translator.scale
}
