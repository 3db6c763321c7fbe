package renderer

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-sandbox/common"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// SurfaceConfig is one ConfigureSurface call seen by a headless backend.
type SurfaceConfig struct {
	Width       uint32
	Height      uint32
	PresentMode PresentMode
}

// Draw is one DrawCall recorded by a headless backend.
type Draw struct {
	PipelineKey string
	IndexCount  int
	// BindGroups holds the labels of the bind group providers in group order.
	BindGroups []string
	// Width and Height are the surface size the draw targeted.
	Width  uint32
	Height uint32
}

// Frame is one presented frame recorded by a headless backend.
type Frame struct {
	ClearColor wgpu.Color
	Draws      []Draw
}

// HeadlessRendererBackend is a RendererBackend that keeps CPU mirrors of every buffer and records frames instead
// of talking to a GPU. It backs the headless binary and renderer tests.
type HeadlessRendererBackend interface {
	RendererBackend

	// SurfaceConfigs returns every surface configuration in call order.
	SurfaceConfigs() []SurfaceConfig

	// Frames returns every presented frame in order.
	Frames() []Frame

	// BufferData returns a copy of the mirrored contents of one provider buffer.
	//
	// Parameters:
	//   - provider: the provider owning the buffer
	//   - target: which buffer of the provider
	//   - binding: the binding index, only used with BufferTargetBinding
	//
	// Returns:
	//   - []byte: the buffer contents
	//   - bool: false if the buffer was never initialized
	BufferData(provider bind_group_provider.BindGroupProvider, target bind_group_provider.BufferTarget, binding int) ([]byte, bool)

	// Released reports whether Release has been called.
	Released() bool
}

type bufferKey struct {
	provider bind_group_provider.BindGroupProvider
	target   bind_group_provider.BufferTarget
	binding  int
}

type headlessRendererBackendImpl struct {
	mu *sync.Mutex

	presentMode PresentMode
	clearColor  wgpu.Color
	width       uint32
	height      uint32

	pipelines map[string]bool
	buffers   map[bufferKey][]byte

	surfaceConfigs []SurfaceConfig
	frames         []Frame
	current        *Frame
	passOpen       bool
	released       bool
}

var _ HeadlessRendererBackend = &headlessRendererBackendImpl{}

// NewHeadlessRendererBackend creates a backend with no GPU. The surface descriptor is ignored.
//
// Parameters:
//   - cfg: the construction settings
//
// Returns:
//   - RendererBackend: the headless backend, assertable to HeadlessRendererBackend
//   - error: always nil
func NewHeadlessRendererBackend(cfg BackendConfig) (RendererBackend, error) {
	common.Logger().Debug("headless backend ready", "present_mode", cfg.PresentMode.String())
	return &headlessRendererBackendImpl{
		mu:          &sync.Mutex{},
		presentMode: cfg.PresentMode,
		clearColor:  cfg.ClearColor,
		pipelines:   make(map[string]bool),
		buffers:     make(map[bufferKey][]byte),
	}, nil
}

func (b *headlessRendererBackendImpl) ConfigureSurface(width, height uint32) error {
	if width == 0 || height == 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSurfaceSize, width, height)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.width, b.height = width, height
	b.surfaceConfigs = append(b.surfaceConfigs, SurfaceConfig{Width: width, Height: height, PresentMode: b.presentMode})
	return nil
}

func (b *headlessRendererBackendImpl) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.presentMode = mode
}

func (b *headlessRendererBackendImpl) RegisterRenderPipeline(p pipeline.Pipeline) error {
	if err := p.Validate(); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.width == 0 {
		return errors.New("surface must be configured before registering a render pipeline")
	}
	b.pipelines[p.PipelineKey()] = true
	return nil
}

func (b *headlessRendererBackendImpl) InitMeshBuffers(provider bind_group_provider.BindGroupProvider) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if provider.VertexCapacity() == 0 || provider.IndexCapacity() == 0 {
		return fmt.Errorf("%s: mesh buffers need a non zero capacity", provider.Label())
	}
	b.buffers[bufferKey{provider: provider, target: bind_group_provider.BufferTargetVertex}] = make([]byte, provider.VertexCapacity())
	b.buffers[bufferKey{provider: provider, target: bind_group_provider.BufferTargetIndex}] = make([]byte, provider.IndexCapacity())
	return nil
}

func (b *headlessRendererBackendImpl) InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, entry := range descriptor.Entries {
		if _, err := bufferUsage(entry.Buffer.Type); err != nil {
			return fmt.Errorf("binding %d: %w", entry.Binding, err)
		}
		key := bufferKey{provider: provider, target: bind_group_provider.BufferTargetBinding, binding: int(entry.Binding)}
		b.buffers[key] = make([]byte, entry.Buffer.MinBindingSize)
	}
	return nil
}

func (b *headlessRendererBackendImpl) WriteBuffers(writes []bind_group_provider.BufferWrite) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	// every write is checked before any lands so a rejected batch leaves the mirrors untouched
	for _, w := range writes {
		buf, ok := b.buffers[keyOf(w)]
		if !ok {
			return fmt.Errorf("%s %s buffer is not initialized", w.Provider.Label(), w.Target)
		}
		if w.End() > uint64(len(buf)) {
			return fmt.Errorf("%w: write of %d bytes at offset %d into %s %s buffer of %d bytes",
				ErrCapacityExceeded, len(w.Data), w.Offset, w.Provider.Label(), w.Target, len(buf))
		}
	}
	for _, w := range writes {
		copy(b.buffers[keyOf(w)][w.Offset:], w.Data)
	}
	return nil
}

func (b *headlessRendererBackendImpl) BeginFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.current != nil {
		return errors.New("previous frame surface not yet presented")
	}
	if b.width == 0 {
		return errors.New("surface is not configured")
	}
	b.current = &Frame{ClearColor: b.clearColor}
	b.passOpen = true
	return nil
}

func (b *headlessRendererBackendImpl) DrawCall(
	p pipeline.Pipeline,
	meshProvider bind_group_provider.BindGroupProvider,
	bindGroups []bind_group_provider.BindGroupProvider,
) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.passOpen {
		return errors.New("draw call outside of a frame")
	}
	if !b.pipelines[p.PipelineKey()] {
		return fmt.Errorf("render pipeline %q is not registered", p.PipelineKey())
	}

	labels := make([]string, len(bindGroups))
	for i, bg := range bindGroups {
		labels[i] = bg.Label()
	}
	b.current.Draws = append(b.current.Draws, Draw{
		PipelineKey: p.PipelineKey(),
		IndexCount:  meshProvider.IndexCount(),
		BindGroups:  labels,
		Width:       b.width,
		Height:      b.height,
	})
	return nil
}

func (b *headlessRendererBackendImpl) EndFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.passOpen {
		return errors.New("end frame without a frame")
	}
	b.passOpen = false
	return nil
}

func (b *headlessRendererBackendImpl) Present() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.current == nil {
		return errors.New("no acquired frame to present")
	}
	b.frames = append(b.frames, *b.current)
	b.current = nil
	return nil
}

func (b *headlessRendererBackendImpl) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.buffers = make(map[bufferKey][]byte)
	b.pipelines = make(map[string]bool)
	b.current = nil
	b.passOpen = false
	b.released = true
}

func (b *headlessRendererBackendImpl) SurfaceConfigs() []SurfaceConfig {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]SurfaceConfig(nil), b.surfaceConfigs...)
}

func (b *headlessRendererBackendImpl) Frames() []Frame {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Frame(nil), b.frames...)
}

func (b *headlessRendererBackendImpl) BufferData(provider bind_group_provider.BindGroupProvider, target bind_group_provider.BufferTarget, binding int) ([]byte, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if target != bind_group_provider.BufferTargetBinding {
		binding = 0
	}
	buf, ok := b.buffers[bufferKey{provider: provider, target: target, binding: binding}]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), buf...), true
}

func (b *headlessRendererBackendImpl) Released() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.released
}

func keyOf(w bind_group_provider.BufferWrite) bufferKey {
	k := bufferKey{provider: w.Provider, target: w.Target}
	if w.Target == bind_group_provider.BufferTargetBinding {
		k.binding = w.Binding
	}
	return k
}
