// Package app holds the sandbox application state machine: it turns window events into renderer calls.
package app

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-sandbox/common"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/animation"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/event"
)

// DefaultDuration is the length of one animation and FPS reporting window.
const DefaultDuration = 5 * time.Second

// Renderer is the part of the renderer the application drives.
type Renderer interface {
	Render(cam common.Camera) error
	Resize(width, height uint32, scaleFactor float64) error
	LoadMesh(mesh common.Mesh) error
}

type application struct {
	mu *sync.Mutex

	renderer Renderer
	curve    animation.Curve
	clock    func() time.Time
	rng      *rand.Rand
	report   io.Writer
	spawnKey event.Key
	duration time.Duration

	initTime   time.Time
	frameCount int
}

// Application animates the camera along a curve, spawns a random triangle on a key press and reports the
// average frame rate once per animation window.
type Application interface {
	event.Handler

	// FrameCount returns the number of frames rendered in the current window.
	//
	// Returns:
	//   - int: the frame count
	FrameCount() int

	// WindowStart returns the instant the current animation window started.
	//
	// Returns:
	//   - time.Time: the window start
	WindowStart() time.Time
}

var _ Application = &application{}

// NewApplication creates an Application driving r. The animation window starts immediately.
//
// Parameters:
//   - r: the renderer to drive
//   - options: functional options to configure the application
//
// Returns:
//   - Application: the application
func NewApplication(r Renderer, options ...ApplicationBuilderOption) Application {
	a := &application{
		mu:       &sync.Mutex{},
		renderer: r,
		curve:    animation.DefaultPath(),
		clock:    time.Now,
		report:   os.Stdout,
		spawnKey: event.KeySpace,
		duration: DefaultDuration,
	}
	for _, opt := range options {
		opt(a)
	}
	if a.rng == nil {
		a.rng = rand.New(rand.NewSource(a.clock().UnixNano()))
	}
	a.initTime = a.clock()
	return a
}

func (a *application) HandleEvent(e event.Event) error {
	switch ev := e.(type) {
	case event.Render:
		return a.render()
	case event.Resize:
		if err := a.renderer.Resize(ev.Width, ev.Height, ev.ScaleFactor); err != nil {
			return fmt.Errorf("resize: %w", err)
		}
	case event.KeyboardInput:
		if ev.Key == a.spawnKey && ev.State == event.Pressed {
			return a.spawn()
		}
	}
	return nil
}

func (a *application) FrameCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.frameCount
}

func (a *application) WindowStart() time.Time {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.initTime
}

// render advances the animation by one tick. The tick that crosses the end of the window only reports.
func (a *application) render() error {
	a.mu.Lock()
	now := a.clock()
	t := float32(now.Sub(a.initTime).Seconds() / a.duration.Seconds())
	if t > 1 {
		seconds := a.duration.Seconds()
		fps := float32(float64(a.frameCount) / seconds)
		a.initTime = now
		a.frameCount = 0
		a.mu.Unlock()

		fmt.Fprintf(a.report, "Average FPS over %ss: %s\n",
			strconv.FormatFloat(seconds, 'f', -1, 64),
			strconv.FormatFloat(float64(fps), 'f', -1, 32),
		)
		common.Logger().Info("animation window finished", "seconds", seconds, "fps", fps)
		return nil
	}
	a.frameCount++
	a.mu.Unlock()

	if err := a.renderer.Render(animation.Sample(a.curve, t)); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

// spawn loads one triangle with every coordinate drawn uniformly from [-1, 1].
func (a *application) spawn() error {
	a.mu.Lock()
	vertices := make([]common.Vertex, 3)
	for i := range vertices {
		vertices[i].Position = [3]float32{
			a.rng.Float32()*2.0 - 1.0,
			a.rng.Float32()*2.0 - 1.0,
			a.rng.Float32()*2.0 - 1.0,
		}
	}
	a.mu.Unlock()

	if err := a.renderer.LoadMesh(common.Mesh{
		Vertices: vertices,
		Indices:  []uint32{0, 1, 2},
	}); err != nil {
		return fmt.Errorf("load mesh: %w", err)
	}
	return nil
}
