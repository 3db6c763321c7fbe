package renderer

import (
	"github.com/Carmen-Shannon/oxy-sandbox/common"
	"github.com/cogentcore/webgpu/wgpu"
)

const (
	// DefaultMaxVertices is the vertex buffer capacity used when WithCapacity is not given.
	DefaultMaxVertices = 100
	// DefaultMaxIndices is the index buffer capacity used when WithCapacity is not given.
	DefaultMaxIndices = 100
)

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithCapacity sets how many vertices and indices the renderer's fixed buffers can hold.
// Values below 1 are ignored.
//
// Parameters:
//   - maxVertices: the vertex buffer capacity in vertices
//   - maxIndices: the index buffer capacity in indices
//
// Returns:
//   - RendererBuilderOption: a function that applies the capacity option to a renderer
func WithCapacity(maxVertices, maxIndices int) RendererBuilderOption {
	return func(r *renderer) {
		if maxVertices > 0 {
			r.maxVertices = maxVertices
		}
		if maxIndices > 0 {
			r.maxIndices = maxIndices
		}
	}
}

// WithPresentMode sets the surface present mode which controls how frames are delivered to the display.
//
// Parameters:
//   - mode: the PresentMode to use (Auto, VSync or Uncapped)
//
// Returns:
//   - RendererBuilderOption: a function that applies the present mode option to a renderer
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(r *renderer) {
		r.presentMode = mode
	}
}

// WithClearColor sets the color every frame is cleared to before drawing.
//
// Parameters:
//   - color: the clear color
//
// Returns:
//   - RendererBuilderOption: a function that applies the clear color option to a renderer
func WithClearColor(color wgpu.Color) RendererBuilderOption {
	return func(r *renderer) {
		r.clearColor = color
	}
}

// WithForceSoftwareRenderer forces WGPU to use a CPU/software fallback adapter instead of
// hardware GPU acceleration. This requires a software Vulkan ICD to be installed on the system
// (e.g. SwiftShader or lavapipe).
//
// Parameters:
//   - force: true to force the software fallback adapter, false to use hardware (default)
//
// Returns:
//   - RendererBuilderOption: a function that applies the force software renderer option to a renderer
func WithForceSoftwareRenderer(force bool) RendererBuilderOption {
	return func(r *renderer) {
		r.forceFallbackAdapter = force
	}
}

// WithInitialPose sets the camera pose used until the first Render call.
//
// Parameters:
//   - pose: the initial camera pose
//
// Returns:
//   - RendererBuilderOption: a function that applies the initial pose option to a renderer
func WithInitialPose(pose common.Camera) RendererBuilderOption {
	return func(r *renderer) {
		r.initialPose = pose
	}
}
