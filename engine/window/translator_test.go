package window

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-sandbox/engine/event"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"
)

func newRecordingTranslator() (*translator, *[]event.Event, *bool) {
	var events []event.Event
	quit := false
	t := &translator{
		sink:   func(e event.Event) { events = append(events, e) },
		quit:   func() { quit = true },
		width:  800,
		height: 600,
		scale:  1,
	}
	return t, &events, &quit
}

func TestTranslatorKey(t *testing.T) {
	tests := []struct {
		name   string
		action glfw.Action
		want   event.ElementState
	}{
		{name: "press", action: glfw.Press, want: event.Pressed},
		{name: "repeat", action: glfw.Repeat, want: event.Pressed},
		{name: "release", action: glfw.Release, want: event.Released},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, events, _ := newRecordingTranslator()
			tr.key(glfw.KeySpace, tt.action, 0)
			assert.Equal(t, []event.Event{event.KeyboardInput{Key: event.KeySpace, State: tt.want}}, *events)
		})
	}
}

func TestTranslatorEscapeQuits(t *testing.T) {
	tr, events, quit := newRecordingTranslator()

	tr.key(glfw.KeyEscape, glfw.Press, 0)
	assert.True(t, *quit)
	assert.Empty(t, *events)
}

func TestTranslatorModifiers(t *testing.T) {
	tr, events, _ := newRecordingTranslator()

	tr.key(glfw.KeyA, glfw.Press, glfw.ModShift|glfw.ModCapsLock)
	tr.key(glfw.KeyA, glfw.Release, glfw.ModShift)
	tr.mouseButton(glfw.MouseButtonLeft, glfw.Press, 0)

	assert.Equal(t, []event.Event{
		event.ModifiersChanged{Modifiers: event.ModShift},
		event.KeyboardInput{Key: event.KeyA, State: event.Pressed},
		event.KeyboardInput{Key: event.KeyA, State: event.Released},
		event.ModifiersChanged{Modifiers: 0},
		event.MouseInput{Button: event.MouseButtonLeft, State: event.Pressed},
	}, *events)
}

func TestTranslatorPointer(t *testing.T) {
	tr, events, _ := newRecordingTranslator()

	tr.scroll(0, -2)
	tr.cursorPos(12.5, 40)

	assert.Equal(t, []event.Event{
		event.MouseWheel{DeltaX: 0, DeltaY: -2},
		event.CursorMoved{X: 12.5, Y: 40},
	}, *events)
}

func TestTranslatorFramebufferSize(t *testing.T) {
	tr, events, _ := newRecordingTranslator()

	tr.framebufferSize(0, 0)
	assert.True(t, tr.minimized())
	assert.Empty(t, *events)

	// scale changes while minimized are remembered but not announced
	tr.contentScale(2, 2)
	assert.Empty(t, *events)

	tr.framebufferSize(1024, 768)
	assert.False(t, tr.minimized())
	assert.Equal(t, []event.Event{event.Resize{Width: 1024, Height: 768, ScaleFactor: 2}}, *events)
}

func TestTranslatorContentScale(t *testing.T) {
	tr, events, _ := newRecordingTranslator()

	tr.contentScale(1.5, 1.5)
	assert.Equal(t, []event.Event{event.Resize{Width: 800, Height: 600, ScaleFactor: 1.5}}, *events)
}

func TestTranslatorWithoutSink(t *testing.T) {
	tr := &translator{}
	assert.NotPanics(t, func() {
		tr.key(glfw.KeyA, glfw.Press, 0)
		tr.key(glfw.KeyEscape, glfw.Press, 0)
	})
}
