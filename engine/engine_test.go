package engine

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-sandbox/engine/app"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/event"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/renderer"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/window"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingHandler struct {
	events []event.Event
	failOn func(event.Event) error
}

func (h *recordingHandler) HandleEvent(e event.Event) error {
	h.events = append(h.events, e)
	if h.failOn != nil {
		return h.failOn(e)
	}
	return nil
}

type sleepRecorder struct {
	calls []time.Duration
}

func (s *sleepRecorder) sleep(d time.Duration) {
	s.calls = append(s.calls, d)
}

func TestRunDispatchesEventsBeforeRender(t *testing.T) {
	resize := event.Resize{Width: 640, Height: 480, ScaleFactor: 1}
	key := event.KeyboardInput{Key: event.KeySpace, State: event.Pressed}
	w := window.NewHeadlessWindow(window.WithFrameCount(2), window.WithScriptedEvents(0, resize, key))
	h := &recordingHandler{}

	e := NewEngine(w, h)
	require.NoError(t, e.Run())

	assert.Equal(t, []event.Event{resize, key, event.Render{}, event.Render{}}, h.events)
	assert.Equal(t, 2, e.Frames())
	assert.Same(t, w, e.Window())
}

func TestRunReturnsFirstHandlerError(t *testing.T) {
	boom := errors.New("boom")
	w := window.NewHeadlessWindow(window.WithFrameCount(5),
		window.WithScriptedEvents(1, event.KeyboardInput{Key: event.KeySpace, State: event.Pressed}))
	h := &recordingHandler{failOn: func(e event.Event) error {
		if _, ok := e.(event.KeyboardInput); ok {
			return boom
		}
		return nil
	}}

	e := NewEngine(w, h)
	assert.ErrorIs(t, e.Run(), boom)
	assert.Equal(t, 1, e.Frames())
	assert.Len(t, h.events, 2)
}

func TestRunSkipsRenderWhileMinimized(t *testing.T) {
	w := window.NewHeadlessWindow(window.WithFrameCount(3),
		window.WithScriptedEvents(0, event.Resize{Width: 0, Height: 0}),
		window.WithScriptedEvents(1, event.Resize{Width: 800, Height: 600}),
	)
	h := &recordingHandler{}
	s := &sleepRecorder{}

	e := NewEngine(w, h, WithSleep(s.sleep))
	require.NoError(t, e.Run())

	assert.Equal(t, []event.Event{
		event.Resize{Width: 800, Height: 600, ScaleFactor: 1},
		event.Render{},
		event.Render{},
	}, h.events)
	assert.Equal(t, []time.Duration{minimizedWait}, s.calls)
}

func TestRunStopsOnEscape(t *testing.T) {
	w := window.NewHeadlessWindow(
		window.WithScriptedEvents(1, event.KeyboardInput{Key: event.KeyEscape, State: event.Pressed}),
	)
	h := &recordingHandler{}

	e := NewEngine(w, h)
	require.NoError(t, e.Run())
	assert.Equal(t, 1, e.Frames())
	assert.False(t, w.IsRunning())
}

func TestWithMaxFrames(t *testing.T) {
	h := &recordingHandler{}
	e := NewEngine(window.NewHeadlessWindow(), h, WithMaxFrames(3), WithProfiling(true))

	require.NoError(t, e.Run())
	assert.Equal(t, 3, e.Frames())
}

func TestWithRenderFrameLimit(t *testing.T) {
	s := &sleepRecorder{}
	e := NewEngine(window.NewHeadlessWindow(), &recordingHandler{},
		WithMaxFrames(1), WithRenderFrameLimit(1), WithSleep(s.sleep))

	require.NoError(t, e.Run())
	require.Len(t, s.calls, 1)
	assert.Greater(t, s.calls[0], 900*time.Millisecond)
	assert.LessOrEqual(t, s.calls[0], time.Second)
}

func TestSetRenderFrameLimit(t *testing.T) {
	e := NewEngine(window.NewHeadlessWindow(), &recordingHandler{}).(*engine)

	e.SetRenderFrameLimit(50)
	assert.Equal(t, 20*time.Millisecond, e.renderFrameLimit)
	e.SetRenderFrameLimit(0)
	assert.Zero(t, e.renderFrameLimit)

	e.EnableProfiler()
	assert.True(t, e.profilingEnabled)
	e.DisableProfiler()
	assert.False(t, e.profilingEnabled)
}

func TestRunHeadlessSandbox(t *testing.T) {
	w := window.NewHeadlessWindow(window.WithHeadlessSize(320, 240), window.WithFrameCount(3),
		window.WithScriptedEvents(0, event.KeyboardInput{Key: event.KeySpace, State: event.Pressed}),
		window.WithScriptedEvents(1, event.Resize{Width: 640, Height: 480, ScaleFactor: 1}),
	)

	var backend renderer.HeadlessRendererBackend
	factory := func(cfg renderer.BackendConfig) (renderer.RendererBackend, error) {
		b, err := renderer.NewHeadlessRendererBackend(cfg)
		backend = b.(renderer.HeadlessRendererBackend)
		return b, err
	}
	r, err := renderer.NewRenderer(w, factory)
	require.NoError(t, err)
	defer r.Release()

	a := app.NewApplication(r, app.WithReportWriter(io.Discard))
	require.NoError(t, NewEngine(w, a).Run())

	frames := backend.Frames()
	require.Len(t, frames, 3)
	for _, f := range frames {
		require.Len(t, f.Draws, 1)
		assert.Equal(t, 3, f.Draws[0].IndexCount)
	}
	assert.Equal(t, uint32(320), frames[0].Draws[0].Width)
	assert.Equal(t, uint32(640), frames[1].Draws[0].Width)
}
