// package event defines the closed set of events a window delivers to an application.
package event

// Event is one input or lifecycle notification. The set of implementations is closed to this package.
type Event interface {
	isEvent()
}

// Handler consumes events one at a time on the thread that owns the window.
type Handler interface {
	// HandleEvent processes a single event. A non-nil error is fatal to the event loop.
	//
	// Parameters:
	//   - e: the event to process
	//
	// Returns:
	//   - error: the first error raised while handling e
	HandleEvent(e Event) error
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc func(e Event) error

// HandleEvent calls f(e).
func (f HandlerFunc) HandleEvent(e Event) error {
	return f(e)
}

// ElementState is the state of a key or button.
type ElementState uint8

const (
	Pressed ElementState = iota
	Released
)

func (s ElementState) String() string {
	switch s {
	case Pressed:
		return "Pressed"
	case Released:
		return "Released"
	default:
		return "Unknown"
	}
}

// Render requests that the application draw a frame.
type Render struct{}

// Resize reports a new drawable size in physical pixels.
type Resize struct {
	Width       uint32
	Height      uint32
	ScaleFactor float64
}

// KeyboardInput reports a key changing state.
type KeyboardInput struct {
	Key   Key
	State ElementState
}

// ModifiersChanged reports a change in the held modifier keys.
type ModifiersChanged struct {
	Modifiers Modifier
}

// MouseInput reports a mouse button changing state.
type MouseInput struct {
	Button MouseButton
	State  ElementState
}

// MouseWheel reports a scroll delta in lines.
type MouseWheel struct {
	DeltaX float64
	DeltaY float64
}

// CursorMoved reports the cursor position in window coordinates.
type CursorMoved struct {
	X float64
	Y float64
}

func (Render) isEvent()           {}
func (Resize) isEvent()           {}
func (KeyboardInput) isEvent()    {}
func (ModifiersChanged) isEvent() {}
func (MouseInput) isEvent()       {}
func (MouseWheel) isEvent()       {}
func (CursorMoved) isEvent()      {}
