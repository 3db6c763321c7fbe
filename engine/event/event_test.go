package event

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventVariants(t *testing.T) {
	events := []Event{
		Render{},
		Resize{Width: 800, Height: 600, ScaleFactor: 1},
		KeyboardInput{Key: KeySpace, State: Pressed},
		ModifiersChanged{Modifiers: ModShift | ModControl},
		MouseInput{Button: MouseButtonLeft, State: Released},
		MouseWheel{DeltaY: -1},
		CursorMoved{X: 10, Y: 20},
	}
	for _, e := range events {
		assert.NotNil(t, e)
	}
}

func TestHandlerFunc(t *testing.T) {
	var got Event
	want := errors.New("boom")
	h := HandlerFunc(func(e Event) error {
		got = e
		return want
	})
	err := h.HandleEvent(Resize{Width: 1, Height: 2})
	assert.ErrorIs(t, err, want)
	assert.Equal(t, Resize{Width: 1, Height: 2}, got)
}

func TestModifierHas(t *testing.T) {
	m := ModShift | ModAlt
	assert.True(t, m.Has(ModShift))
	assert.True(t, m.Has(ModShift|ModAlt))
	assert.False(t, m.Has(ModControl))
}

func TestElementStateString(t *testing.T) {
	assert.Equal(t, "Pressed", Pressed.String())
	assert.Equal(t, "Released", Released.String())
	assert.Equal(t, "Unknown", ElementState(9).String())
}
