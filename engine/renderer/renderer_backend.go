package renderer

import (
	"github.com/Carmen-Shannon/oxy-sandbox/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeAuto uses the first present mode the surface reports as supported.
	PresentModeAuto PresentMode = iota

	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

func (m PresentMode) String() string {
	switch m {
	case PresentModeAuto:
		return "auto"
	case PresentModeVSync:
		return "vsync"
	case PresentModeUncapped:
		return "uncapped"
	default:
		return "unknown"
	}
}

// DefaultClearColor is the light blue every frame is cleared to.
var DefaultClearColor = wgpu.Color{R: 0.4, G: 0.9, B: 1.0, A: 1.0}

// Surface is an opaque drawable area owned by the windowing layer.
type Surface interface {
	// SurfaceDescriptor returns the platform specific descriptor used to create a GPU surface.
	// Backends that never touch a GPU may ignore it, and it may be nil.
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// Width returns the current drawable width in pixels.
	Width() int

	// Height returns the current drawable height in pixels.
	Height() int
}

// BackendConfig carries the construction time settings handed to a BackendFactory.
type BackendConfig struct {
	Surface              Surface
	ForceFallbackAdapter bool
	PresentMode          PresentMode
	ClearColor           wgpu.Color
}

// BackendFactory constructs the RendererBackend a binary links against.
// NewWGPURendererBackend and NewHeadlessRendererBackend both satisfy it.
type BackendFactory func(cfg BackendConfig) (RendererBackend, error)

// RendererBackend is the GPU facing half of the Renderer. The Renderer owns buffer cursors, the camera and
// the draw decision; the backend owns every GPU object and turns those decisions into commands.
type RendererBackend interface {
	// ConfigureSurface (re)configures the presentable surface for a new size.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	//
	// Returns:
	//   - error: ErrInvalidSurfaceSize for zero dimensions, or an error from the GPU API
	ConfigureSurface(width, height uint32) error

	// SetPresentMode sets the surface present mode. Takes effect on the next ConfigureSurface.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// RegisterRenderPipeline creates the shader modules, pipeline layout and render pipeline for p, storing
	// the result on p via SetRenderPipeline.
	//
	// Parameters:
	//   - p: the pipeline description
	//
	// Returns:
	//   - error: an error if the pipeline could not be created
	RegisterRenderPipeline(p pipeline.Pipeline) error

	// InitMeshBuffers allocates the vertex and index buffers of a mesh provider, sized by its capacities.
	//
	// Parameters:
	//   - provider: the provider to store the created buffers on
	//
	// Returns:
	//   - error: an error if the buffers could not be created
	InitMeshBuffers(provider bind_group_provider.BindGroupProvider) error

	// InitBindGroup creates one buffer per layout entry, sized by MinBindingSize, plus the layout and bind
	// group, and stores them on the provider.
	//
	// Parameters:
	//   - provider: the provider to store the created resources on
	//   - descriptor: the layout descriptor defining the bind group entries
	//
	// Returns:
	//   - error: an error if bind group creation fails
	InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor) error

	// WriteBuffers uploads every staged write in order.
	//
	// Parameters:
	//   - writes: the staged writes
	//
	// Returns:
	//   - error: an error if a target buffer is missing or a write does not fit
	WriteBuffers(writes []bind_group_provider.BufferWrite) error

	// BeginFrame acquires the next presentable frame and begins a render pass clearing it.
	// Must be paired with EndFrame.
	//
	// Returns:
	//   - error: an error if the frame could not be acquired
	BeginFrame() error

	// DrawCall encodes an indexed draw of the first IndexCount indices of meshProvider.
	//
	// Parameters:
	//   - p: a registered render pipeline
	//   - meshProvider: the provider holding vertex and index buffers
	//   - bindGroups: providers whose bind groups are set at group 0, 1, ... in order
	//
	// Returns:
	//   - error: an error if no frame is open or the pipeline is not registered
	DrawCall(p pipeline.Pipeline, meshProvider bind_group_provider.BindGroupProvider, bindGroups []bind_group_provider.BindGroupProvider) error

	// EndFrame ends the render pass and submits the recorded commands.
	//
	// Returns:
	//   - error: an error if the commands could not be finished
	EndFrame() error

	// Present hands the frame to the display and releases every per-frame object.
	//
	// Returns:
	//   - error: an error if there is no frame to present
	Present() error

	// Release releases the device, surface and every backend owned object.
	Release()
}
