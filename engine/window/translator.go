package window

import (
	"github.com/Carmen-Shannon/oxy-sandbox/engine/event"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// modifierMask keeps Shift, Control, Alt and Super. Lock key state is not a modifier.
const modifierMask = glfw.ModShift | glfw.ModControl | glfw.ModAlt | glfw.ModSuper

// translator converts GLFW callbacks into events and keeps the framebuffer state they depend on.
type translator struct {
	// sink receives translated events while a poll is in progress.
	sink func(event.Event)
	// quit stops the window.
	quit func()

	mods   event.Modifier
	width  int
	height int
	scale  float64
}

func (t *translator) emit(e event.Event) {
	if t.sink != nil {
		t.sink(e)
	}
}

func (t *translator) minimized() bool {
	return t.width == 0 || t.height == 0
}

// updateModifiers emits ModifiersChanged when the held modifiers differ from the last seen set.
func (t *translator) updateModifiers(mods glfw.ModifierKey) {
	m := event.Modifier(mods & modifierMask)
	if m == t.mods {
		return
	}
	t.mods = m
	t.emit(event.ModifiersChanged{Modifiers: m})
}

func (t *translator) key(key glfw.Key, action glfw.Action, mods glfw.ModifierKey) {
	if key == glfw.KeyEscape && action == glfw.Press {
		if t.quit != nil {
			t.quit()
		}
		return
	}
	t.updateModifiers(mods)

	state, ok := elementState(action)
	if !ok {
		return
	}
	t.emit(event.KeyboardInput{Key: event.Key(key), State: state})
}

func (t *translator) mouseButton(button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	t.updateModifiers(mods)

	state, ok := elementState(action)
	if !ok {
		return
	}
	t.emit(event.MouseInput{Button: event.MouseButton(button), State: state})
}

func (t *translator) scroll(xoff, yoff float64) {
	t.emit(event.MouseWheel{DeltaX: xoff, DeltaY: yoff})
}

func (t *translator) cursorPos(x, y float64) {
	t.emit(event.CursorMoved{X: x, Y: y})
}

// framebufferSize records the new size. Empty framebuffers mark the window minimized and produce no event.
func (t *translator) framebufferSize(width, height int) {
	t.width, t.height = width, height
	if t.minimized() {
		return
	}
	t.emit(event.Resize{Width: uint32(width), Height: uint32(height), ScaleFactor: t.scale})
}

// contentScale records the new scale and re-announces the current size with it.
func (t *translator) contentScale(x, _ float32) {
	t.scale = float64(x)
	if t.minimized() {
		return
	}
	t.emit(event.Resize{Width: uint32(t.width), Height: uint32(t.height), ScaleFactor: t.scale})
}

func elementState(action glfw.Action) (event.ElementState, bool) {
	switch action {
	case glfw.Press, glfw.Repeat:
		return event.Pressed, true
	case glfw.Release:
		return event.Released, true
	default:
		return 0, false
	}
}
