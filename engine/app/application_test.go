package app

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-sandbox/common"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/animation"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/event"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/renderer"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type resizeCall struct {
	width, height uint32
	scaleFactor   float64
}

type recordingRenderer struct {
	renders   []common.Camera
	resizes   []resizeCall
	meshes    []common.Mesh
	renderErr error
}

func (r *recordingRenderer) Render(cam common.Camera) error {
	r.renders = append(r.renders, cam)
	return r.renderErr
}

func (r *recordingRenderer) Resize(width, height uint32, scaleFactor float64) error {
	r.resizes = append(r.resizes, resizeCall{width, height, scaleFactor})
	return nil
}

func (r *recordingRenderer) LoadMesh(mesh common.Mesh) error {
	r.meshes = append(r.meshes, mesh)
	return nil
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// timeCurve exposes the normalized time as the x coordinate.
var timeCurve = animation.CurveFunc(func(t float32) animation.Pose {
	return animation.Pose{t, 0, 0, 0, 0}
})

func newTestApplication(r Renderer, options ...ApplicationBuilderOption) (Application, *fakeClock, *bytes.Buffer) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	report := &bytes.Buffer{}
	base := []ApplicationBuilderOption{
		WithClock(clock.Now),
		WithReportWriter(report),
		WithRand(rand.New(rand.NewSource(1))),
		WithCurve(timeCurve),
	}
	return NewApplication(r, append(base, options...)...), clock, report
}

func TestRenderSamplesCurve(t *testing.T) {
	r := &recordingRenderer{}
	a, clock, report := newTestApplication(r)

	clock.Advance(2500 * time.Millisecond)
	require.NoError(t, a.HandleEvent(event.Render{}))
	clock.Advance(2500 * time.Millisecond)
	require.NoError(t, a.HandleEvent(event.Render{}))

	require.Len(t, r.renders, 2)
	assert.InDelta(t, 0.5, r.renders[0].Position[0], 1e-6)
	assert.InDelta(t, 1.0, r.renders[1].Position[0], 1e-6)
	assert.Equal(t, 2, a.FrameCount())
	assert.Empty(t, report.String())
}

func TestRenderReportsAndResetsAfterWindow(t *testing.T) {
	r := &recordingRenderer{}
	a, clock, report := newTestApplication(r)

	for range 3 {
		clock.Advance(time.Second)
		require.NoError(t, a.HandleEvent(event.Render{}))
	}
	require.Len(t, r.renders, 3)

	clock.Advance(2100 * time.Millisecond)
	require.NoError(t, a.HandleEvent(event.Render{}))

	assert.Equal(t, "Average FPS over 5s: 0.6\n", report.String())
	assert.Len(t, r.renders, 3, "the reporting tick does not draw")
	assert.Zero(t, a.FrameCount())
	assert.Equal(t, clock.Now(), a.WindowStart())

	// the next tick starts the new window from zero
	clock.Advance(time.Second)
	require.NoError(t, a.HandleEvent(event.Render{}))
	require.Len(t, r.renders, 4)
	assert.InDelta(t, 0.2, r.renders[3].Position[0], 1e-6)
	assert.Equal(t, 1, a.FrameCount())
}

func TestDefaultCurveStartsAtPathStart(t *testing.T) {
	r := &recordingRenderer{}
	clock := &fakeClock{now: time.Unix(0, 0)}
	a := NewApplication(r, WithClock(clock.Now), WithReportWriter(&bytes.Buffer{}))

	require.NoError(t, a.HandleEvent(event.Render{}))
	require.Len(t, r.renders, 1)
	assert.Equal(t, animation.Sample(animation.DefaultPath(), 0), r.renders[0])
}

func TestWithDurationChangesReport(t *testing.T) {
	r := &recordingRenderer{}
	a, clock, report := newTestApplication(r, WithDuration(2*time.Second))

	clock.Advance(time.Second)
	require.NoError(t, a.HandleEvent(event.Render{}))
	clock.Advance(1500 * time.Millisecond)
	require.NoError(t, a.HandleEvent(event.Render{}))

	assert.Equal(t, "Average FPS over 2s: 0.5\n", report.String())
}

func TestSpawnKeyLoadsTriangle(t *testing.T) {
	r := &recordingRenderer{}
	a, _, _ := newTestApplication(r)

	require.NoError(t, a.HandleEvent(event.KeyboardInput{Key: event.KeySpace, State: event.Released}))
	require.NoError(t, a.HandleEvent(event.KeyboardInput{Key: event.KeyA, State: event.Pressed}))
	assert.Empty(t, r.meshes)

	require.NoError(t, a.HandleEvent(event.KeyboardInput{Key: event.KeySpace, State: event.Pressed}))
	require.Len(t, r.meshes, 1)
	mesh := r.meshes[0]
	assert.Equal(t, []uint32{0, 1, 2}, mesh.Indices)
	require.Len(t, mesh.Vertices, 3)
	for _, v := range mesh.Vertices {
		for _, c := range v.Position {
			assert.GreaterOrEqual(t, c, float32(-1))
			assert.LessOrEqual(t, c, float32(1))
		}
	}
}

func TestWithSpawnKey(t *testing.T) {
	r := &recordingRenderer{}
	a, _, _ := newTestApplication(r, WithSpawnKey(event.KeyT))

	require.NoError(t, a.HandleEvent(event.KeyboardInput{Key: event.KeySpace, State: event.Pressed}))
	assert.Empty(t, r.meshes)
	require.NoError(t, a.HandleEvent(event.KeyboardInput{Key: event.KeyT, State: event.Pressed}))
	assert.Len(t, r.meshes, 1)
}

func TestResizeForwarded(t *testing.T) {
	r := &recordingRenderer{}
	a, _, _ := newTestApplication(r)

	require.NoError(t, a.HandleEvent(event.Resize{Width: 800, Height: 600, ScaleFactor: 1.5}))
	assert.Equal(t, []resizeCall{{800, 600, 1.5}}, r.resizes)
}

func TestOtherEventsIgnored(t *testing.T) {
	r := &recordingRenderer{}
	a, _, _ := newTestApplication(r)

	events := []event.Event{
		event.ModifiersChanged{Modifiers: event.ModShift},
		event.MouseInput{Button: event.MouseButtonLeft, State: event.Pressed},
		event.MouseWheel{DeltaY: 1},
		event.CursorMoved{X: 10, Y: 20},
	}
	for _, e := range events {
		require.NoError(t, a.HandleEvent(e))
	}
	assert.Empty(t, r.renders)
	assert.Empty(t, r.resizes)
	assert.Empty(t, r.meshes)
	assert.Zero(t, a.FrameCount())
}

func TestRendererErrorsReturned(t *testing.T) {
	lost := errors.New("device lost")
	r := &recordingRenderer{renderErr: lost}
	a, _, _ := newTestApplication(r)

	assert.ErrorIs(t, a.HandleEvent(event.Render{}), lost)
}

type headlessSurface struct{}

func (headlessSurface) SurfaceDescriptor() *wgpu.SurfaceDescriptor { return nil }
func (headlessSurface) Width() int                                  { return 320 }
func (headlessSurface) Height() int                                 { return 240 }

func TestSpawnThenRenderDrawsTriangle(t *testing.T) {
	var backend renderer.HeadlessRendererBackend
	factory := func(cfg renderer.BackendConfig) (renderer.RendererBackend, error) {
		b, err := renderer.NewHeadlessRendererBackend(cfg)
		backend = b.(renderer.HeadlessRendererBackend)
		return b, err
	}
	r, err := renderer.NewRenderer(headlessSurface{}, factory)
	require.NoError(t, err)
	defer r.Release()

	a, _, _ := newTestApplication(r)
	require.NoError(t, a.HandleEvent(event.KeyboardInput{Key: event.KeySpace, State: event.Pressed}))
	require.NoError(t, a.HandleEvent(event.Render{}))

	frames := backend.Frames()
	require.Len(t, frames, 1)
	require.Len(t, frames[0].Draws, 1)
	assert.GreaterOrEqual(t, frames[0].Draws[0].IndexCount, 3)
}
