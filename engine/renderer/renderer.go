package renderer

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-sandbox/common"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/camera"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// SandboxPipelineKey is the key of the single render pipeline the renderer draws with.
const SandboxPipelineKey = "sandbox"

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backend  RendererBackend
	pipeline pipeline.Pipeline
	camera   camera.Camera
	mesh     bind_group_provider.BindGroupProvider

	maxVertices int
	maxIndices  int
	// vertexCount and indexCount are the high-water marks of the vertex and index buffers.
	vertexCount int
	indexCount  int

	width  uint32
	height uint32

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	presentMode          PresentMode
	clearColor           wgpu.Color
	initialPose          common.Camera
}

// Renderer draws a single growing triangle list from the point of view of a camera pose.
//
// Geometry is appended with LoadMesh into fixed-capacity vertex and index buffers and is never removed.
// Every Render call re-uploads the camera uniform, clears the frame, draws everything loaded so far and
// presents. The GPU work is delegated to a RendererBackend chosen by the BackendFactory given to NewRenderer.
type Renderer interface {
	// Render draws one frame seen from cam and presents it.
	//
	// Parameters:
	//   - cam: the camera pose for this frame
	//
	// Returns:
	//   - error: an error wrapping ErrSurfaceLost if no frame could be acquired, or a backend error
	Render(cam common.Camera) error

	// Resize reconfigures the surface for a new size before the next Render.
	//
	// Parameters:
	//   - width: the new width in pixels
	//   - height: the new height in pixels
	//   - scaleFactor: the display scale factor reported by the window
	//
	// Returns:
	//   - error: ErrInvalidSurfaceSize if either dimension is zero, or a backend error
	Resize(width, height uint32, scaleFactor float64) error

	// LoadMesh appends a mesh after the geometry already loaded. Indices are offset by the current vertex
	// high-water mark so they keep addressing the mesh's own vertices. A failed call changes nothing.
	//
	// Parameters:
	//   - mesh: the mesh to append
	//
	// Returns:
	//   - error: an error wrapping common.ErrMalformedMesh or ErrCapacityExceeded, or a backend error
	LoadMesh(mesh common.Mesh) error

	// VertexCount returns the vertex high-water mark.
	//
	// Returns:
	//   - int: the number of vertices loaded so far
	VertexCount() int

	// IndexCount returns the index high-water mark.
	//
	// Returns:
	//   - int: the number of indices loaded so far
	IndexCount() int

	// Capacity returns the vertex and index buffer capacities.
	//
	// Returns:
	//   - maxVertices: the vertex capacity
	//   - maxIndices: the index capacity
	Capacity() (maxVertices, maxIndices int)

	// SurfaceSize returns the size the surface was last configured with.
	//
	// Returns:
	//   - width, height: the surface size in pixels
	SurfaceSize() (width, height uint32)

	// Camera returns the GPU camera the renderer uploads each frame.
	//
	// Returns:
	//   - camera.Camera: the camera
	Camera() camera.Camera

	// Release releases the pipeline, every buffer and the backend.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer drawing into surface through the backend built by factory.
// It configures the surface, creates the camera uniform, the vertex and index buffers and the render pipeline.
//
// Parameters:
//   - surface: the drawable surface owned by the window
//   - factory: the backend constructor linked into this binary
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: the constructed renderer
//   - error: an error wrapping ErrConstruction if any GPU object could not be created
func NewRenderer(surface Surface, factory BackendFactory, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		mu:          &sync.Mutex{},
		maxVertices: DefaultMaxVertices,
		maxIndices:  DefaultMaxIndices,
		presentMode: PresentModeAuto,
		clearColor:  DefaultClearColor,
	}
	for _, opt := range options {
		opt(r)
	}

	if surface.Width() <= 0 || surface.Height() <= 0 {
		return nil, fmt.Errorf("%w: %w: %dx%d", ErrConstruction, ErrInvalidSurfaceSize, surface.Width(), surface.Height())
	}
	r.width, r.height = uint32(surface.Width()), uint32(surface.Height())

	backend, err := factory(BackendConfig{
		Surface:              surface,
		ForceFallbackAdapter: r.forceFallbackAdapter,
		PresentMode:          r.presentMode,
		ClearColor:           r.clearColor,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConstruction, err)
	}
	r.backend = backend

	if err := r.init(); err != nil {
		r.Release()
		return nil, fmt.Errorf("%w: %w", ErrConstruction, err)
	}

	common.Logger().Info("renderer ready",
		"width", r.width,
		"height", r.height,
		"present_mode", r.presentMode.String(),
		"max_vertices", r.maxVertices,
		"max_indices", r.maxIndices,
	)
	return r, nil
}

// init creates every GPU resource the renderer draws with.
func (r *renderer) init() error {
	if err := r.backend.ConfigureSurface(r.width, r.height); err != nil {
		return fmt.Errorf("configure surface: %w", err)
	}

	r.camera = camera.NewCamera(
		camera.WithPose(r.initialPose),
		camera.WithAspect(float32(r.width)/float32(r.height)),
	)

	includes := shader.WithIncludes(map[string]string{
		"camera": camera.GPUCameraUniformSource,
		"vertex": GPUVertexSource,
	})
	vs, err := shader.NewShader(SandboxPipelineKey+"_vertex", shader.ShaderTypeVertex, shader.SandboxSource, includes)
	if err != nil {
		return fmt.Errorf("vertex shader: %w", err)
	}
	fs, err := shader.NewShader(SandboxPipelineKey+"_fragment", shader.ShaderTypeFragment, shader.SandboxSource, includes)
	if err != nil {
		return fmt.Errorf("fragment shader: %w", err)
	}

	r.pipeline = pipeline.NewPipeline(SandboxPipelineKey,
		pipeline.WithVertexShader(vs),
		pipeline.WithFragmentShader(fs),
	)
	if err := r.backend.RegisterRenderPipeline(r.pipeline); err != nil {
		return fmt.Errorf("register pipeline %q: %w", SandboxPipelineKey, err)
	}

	layouts := r.pipeline.BindGroupLayouts()
	cameraLayout, ok := layouts[0]
	if !ok {
		return fmt.Errorf("pipeline %q declares no bind group 0 for the camera", SandboxPipelineKey)
	}
	if err := r.backend.InitBindGroup(r.camera.BindGroupProvider(), cameraLayout); err != nil {
		return fmt.Errorf("camera bind group: %w", err)
	}

	r.mesh = bind_group_provider.NewBindGroupProvider("mesh",
		bind_group_provider.WithMeshCapacity(
			uint64(r.maxVertices*VertexStride),
			uint64(r.maxIndices*IndexStride),
		),
	)
	if err := r.backend.InitMeshBuffers(r.mesh); err != nil {
		return fmt.Errorf("mesh buffers: %w", err)
	}
	return nil
}

func (r *renderer) Render(cam common.Camera) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.camera.SetPose(cam)
	uniform := r.camera.Uniform()
	cameraProvider := r.camera.BindGroupProvider()

	if err := r.backend.WriteBuffers([]bind_group_provider.BufferWrite{{
		Provider: cameraProvider,
		Target:   bind_group_provider.BufferTargetBinding,
		Binding:  0,
		Data:     uniform.Marshal(),
	}}); err != nil {
		return fmt.Errorf("write camera uniform: %w", err)
	}

	if err := r.backend.BeginFrame(); err != nil {
		return fmt.Errorf("%w: %w", ErrSurfaceLost, err)
	}

	var drawErr error
	if r.vertexCount > 0 && r.indexCount > 0 {
		drawErr = r.backend.DrawCall(r.pipeline, r.mesh, []bind_group_provider.BindGroupProvider{cameraProvider})
	}

	// the pass is always closed and the frame handed back, even after a failed draw
	if err := r.backend.EndFrame(); err != nil {
		return fmt.Errorf("end frame: %w", err)
	}
	if err := r.backend.Present(); err != nil {
		return fmt.Errorf("%w: %w", ErrSurfaceLost, err)
	}
	if drawErr != nil {
		return fmt.Errorf("draw: %w", drawErr)
	}
	return nil
}

func (r *renderer) Resize(width, height uint32, scaleFactor float64) error {
	if width == 0 || height == 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSurfaceSize, width, height)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.backend.ConfigureSurface(width, height); err != nil {
		return fmt.Errorf("configure surface: %w", err)
	}
	r.width, r.height = width, height
	r.camera.SetAspect(float32(width) / float32(height))

	common.Logger().Debug("surface resized", "width", width, "height", height, "scale_factor", scaleFactor)
	return nil
}

func (r *renderer) LoadMesh(mesh common.Mesh) error {
	if err := mesh.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.vertexCount+len(mesh.Vertices) > r.maxVertices {
		return fmt.Errorf("%w: vertex buffer holds %d of %d vertices, cannot append %d",
			ErrCapacityExceeded, r.vertexCount, r.maxVertices, len(mesh.Vertices))
	}
	if r.indexCount+len(mesh.Indices) > r.maxIndices {
		return fmt.Errorf("%w: index buffer holds %d of %d indices, cannot append %d",
			ErrCapacityExceeded, r.indexCount, r.maxIndices, len(mesh.Indices))
	}

	writes := make([]bind_group_provider.BufferWrite, 0, 2)
	if len(mesh.Vertices) > 0 {
		writes = append(writes, bind_group_provider.BufferWrite{
			Provider: r.mesh,
			Target:   bind_group_provider.BufferTargetVertex,
			Offset:   uint64(r.vertexCount * VertexStride),
			Data:     marshalVertices(mesh.Vertices),
		})
	}
	if len(mesh.Indices) > 0 {
		writes = append(writes, bind_group_provider.BufferWrite{
			Provider: r.mesh,
			Target:   bind_group_provider.BufferTargetIndex,
			Offset:   uint64(r.indexCount * IndexStride),
			Data:     marshalIndices(mesh.Indices, uint32(r.vertexCount)),
		})
	}
	if len(writes) == 0 {
		return nil
	}
	if err := r.backend.WriteBuffers(writes); err != nil {
		return fmt.Errorf("write mesh: %w", err)
	}

	r.vertexCount += len(mesh.Vertices)
	r.indexCount += len(mesh.Indices)
	r.mesh.SetIndexCount(r.indexCount)

	common.Logger().Debug("mesh loaded",
		"vertices", len(mesh.Vertices),
		"indices", len(mesh.Indices),
		"vertex_count", r.vertexCount,
		"index_count", r.indexCount,
	)
	return nil
}

func (r *renderer) VertexCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.vertexCount
}

func (r *renderer) IndexCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.indexCount
}

func (r *renderer) Capacity() (maxVertices, maxIndices int) {
	return r.maxVertices, r.maxIndices
}

func (r *renderer) SurfaceSize() (width, height uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

func (r *renderer) Camera() camera.Camera {
	return r.camera
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.pipeline != nil {
		r.pipeline.Release()
		r.pipeline = nil
	}
	if r.mesh != nil {
		r.mesh.Release()
		r.mesh = nil
	}
	if r.camera != nil {
		if p := r.camera.BindGroupProvider(); p != nil {
			p.Release()
		}
	}
	if r.backend != nil {
		r.backend.Release()
		r.backend = nil
	}
}
