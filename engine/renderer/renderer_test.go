package renderer

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-sandbox/common"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/renderer/bind_group_provider"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedSurface struct {
	width, height int
}

func (s fixedSurface) SurfaceDescriptor() *wgpu.SurfaceDescriptor { return nil }
func (s fixedSurface) Width() int                                  { return s.width }
func (s fixedSurface) Height() int                                 { return s.height }

func newHeadlessRenderer(t *testing.T, opts ...RendererBuilderOption) (Renderer, HeadlessRendererBackend) {
	t.Helper()
	var backend HeadlessRendererBackend
	factory := func(cfg BackendConfig) (RendererBackend, error) {
		b, err := NewHeadlessRendererBackend(cfg)
		backend = b.(HeadlessRendererBackend)
		return b, err
	}
	r, err := NewRenderer(fixedSurface{width: 320, height: 240}, factory, opts...)
	require.NoError(t, err)
	t.Cleanup(r.Release)
	return r, backend
}

func triangle(offset float32) common.Mesh {
	return common.Mesh{
		Vertices: []common.Vertex{
			{Position: [3]float32{offset, 0, 0}},
			{Position: [3]float32{offset + 1, 0, 0}},
			{Position: [3]float32{offset, 1, 0}},
		},
		Indices: []uint32{0, 1, 2},
	}
}

func decodeIndices(buf []byte, n int) []uint32 {
	out := make([]uint32, n)
	for i := range out {
		out[i] = binary.LittleEndian.Uint32(buf[i*IndexStride:])
	}
	return out
}

func TestNewRenderer(t *testing.T) {
	r, backend := newHeadlessRenderer(t)

	assert.Equal(t, []SurfaceConfig{{Width: 320, Height: 240, PresentMode: PresentModeAuto}}, backend.SurfaceConfigs())
	assert.Zero(t, r.VertexCount())
	assert.Zero(t, r.IndexCount())

	maxVertices, maxIndices := r.Capacity()
	assert.Equal(t, DefaultMaxVertices, maxVertices)
	assert.Equal(t, DefaultMaxIndices, maxIndices)

	w, h := r.SurfaceSize()
	assert.Equal(t, uint32(320), w)
	assert.Equal(t, uint32(240), h)
	assert.InDelta(t, float32(320)/240, r.Camera().Aspect(), 1e-6)
}

func TestNewRendererErrors(t *testing.T) {
	t.Run("empty surface", func(t *testing.T) {
		_, err := NewRenderer(fixedSurface{width: 0, height: 240}, NewHeadlessRendererBackend)
		assert.ErrorIs(t, err, ErrConstruction)
		assert.ErrorIs(t, err, ErrInvalidSurfaceSize)
	})

	t.Run("no adapter", func(t *testing.T) {
		noAdapter := errors.New("no adapter")
		factory := func(BackendConfig) (RendererBackend, error) { return nil, noAdapter }
		_, err := NewRenderer(fixedSurface{width: 320, height: 240}, factory)
		assert.ErrorIs(t, err, ErrConstruction)
		assert.ErrorIs(t, err, noAdapter)
	})
}

func TestLoadMeshOffsetsIndices(t *testing.T) {
	r, backend := newHeadlessRenderer(t)

	require.NoError(t, r.LoadMesh(triangle(0)))
	require.NoError(t, r.LoadMesh(triangle(5)))
	assert.Equal(t, 6, r.VertexCount())
	assert.Equal(t, 6, r.IndexCount())

	mesh := r.(*renderer).mesh
	indices, ok := backend.BufferData(mesh, bind_group_provider.BufferTargetIndex, 0)
	require.True(t, ok)
	assert.Equal(t, []uint32{0, 1, 2, 3, 4, 5}, decodeIndices(indices, 6))
	assert.Equal(t, 6, mesh.IndexCount())
}

func TestLoadMeshWritesVertices(t *testing.T) {
	r, backend := newHeadlessRenderer(t)
	require.NoError(t, r.LoadMesh(triangle(0)))
	require.NoError(t, r.LoadMesh(triangle(7)))

	vertices, ok := backend.BufferData(r.(*renderer).mesh, bind_group_provider.BufferTargetVertex, 0)
	require.True(t, ok)

	// fourth vertex is the first of the second mesh: (7, 0, 0, 1)
	base := 3 * VertexStride
	got := [4]float32{}
	for i := range got {
		got[i] = math.Float32frombits(binary.LittleEndian.Uint32(vertices[base+i*4:]))
	}
	assert.Equal(t, [4]float32{7, 0, 0, 1}, got)
}

func TestLoadMeshCapacityExceeded(t *testing.T) {
	tests := []struct {
		name        string
		maxVertices int
		maxIndices  int
		mesh        common.Mesh
	}{
		{
			name:        "vertex buffer full",
			maxVertices: 4,
			maxIndices:  100,
			mesh:        common.Mesh{Vertices: make([]common.Vertex, 2), Indices: []uint32{0, 1, 0}},
		},
		{
			name:        "index buffer full",
			maxVertices: 100,
			maxIndices:  5,
			mesh:        triangle(1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newHeadlessRenderer(t, WithCapacity(tt.maxVertices, tt.maxIndices))
			require.NoError(t, r.LoadMesh(triangle(0)))

			err := r.LoadMesh(tt.mesh)
			assert.ErrorIs(t, err, ErrCapacityExceeded)
			assert.Equal(t, 3, r.VertexCount())
			assert.Equal(t, 3, r.IndexCount())
		})
	}
}

func TestLoadMeshFillsExactly(t *testing.T) {
	r, _ := newHeadlessRenderer(t, WithCapacity(3, 3))
	require.NoError(t, r.LoadMesh(triangle(0)))
	assert.ErrorIs(t, r.LoadMesh(triangle(1)), ErrCapacityExceeded)
}

func TestLoadMeshMalformed(t *testing.T) {
	r, _ := newHeadlessRenderer(t)

	err := r.LoadMesh(common.Mesh{Vertices: make([]common.Vertex, 3), Indices: []uint32{0, 1, 3}})
	assert.ErrorIs(t, err, common.ErrMalformedMesh)
	assert.Zero(t, r.VertexCount())
}

func TestRenderWithoutGeometryOnlyClears(t *testing.T) {
	r, backend := newHeadlessRenderer(t)
	pose := common.Camera{Position: [3]float32{0, 0, 3}, Yaw: math.Pi}

	require.NoError(t, r.Render(pose))

	frames := backend.Frames()
	require.Len(t, frames, 1)
	assert.Equal(t, DefaultClearColor, frames[0].ClearColor)
	assert.Empty(t, frames[0].Draws)

	uniform := r.Camera().Uniform()
	data, ok := backend.BufferData(r.Camera().BindGroupProvider(), bind_group_provider.BufferTargetBinding, 0)
	require.True(t, ok)
	assert.Equal(t, uniform.Marshal(), data)
	assert.Equal(t, pose, r.Camera().Pose())
}

func TestRenderDrawsLoadedGeometry(t *testing.T) {
	r, backend := newHeadlessRenderer(t, WithClearColor(wgpu.Color{R: 1, A: 1}))
	require.NoError(t, r.LoadMesh(triangle(0)))
	require.NoError(t, r.LoadMesh(triangle(2)))

	require.NoError(t, r.Render(common.Camera{}))
	require.NoError(t, r.Render(common.Camera{}))

	frames := backend.Frames()
	require.Len(t, frames, 2)
	assert.Equal(t, wgpu.Color{R: 1, A: 1}, frames[1].ClearColor)
	require.Len(t, frames[1].Draws, 1)

	draw := frames[1].Draws[0]
	assert.Equal(t, SandboxPipelineKey, draw.PipelineKey)
	assert.Equal(t, 6, draw.IndexCount)
	assert.Equal(t, []string{r.Camera().BindGroupProvider().Label()}, draw.BindGroups)
}

func TestResize(t *testing.T) {
	r, backend := newHeadlessRenderer(t)
	require.NoError(t, r.LoadMesh(triangle(0)))

	require.NoError(t, r.Resize(800, 600, 2))
	require.NoError(t, r.Render(common.Camera{}))

	configs := backend.SurfaceConfigs()
	require.Len(t, configs, 2)
	assert.Equal(t, uint32(800), configs[1].Width)
	assert.Equal(t, uint32(600), configs[1].Height)

	frames := backend.Frames()
	require.Len(t, frames, 1)
	require.Len(t, frames[0].Draws, 1)
	assert.Equal(t, uint32(800), frames[0].Draws[0].Width)
	assert.InDelta(t, float32(800)/600, r.Camera().Aspect(), 1e-6)

	w, h := r.SurfaceSize()
	assert.Equal(t, uint32(800), w)
	assert.Equal(t, uint32(600), h)
}

func TestResizeRejectsEmptySize(t *testing.T) {
	r, backend := newHeadlessRenderer(t)

	assert.ErrorIs(t, r.Resize(0, 600, 1), ErrInvalidSurfaceSize)
	assert.ErrorIs(t, r.Resize(800, 0, 1), ErrInvalidSurfaceSize)
	assert.Len(t, backend.SurfaceConfigs(), 1)

	w, h := r.SurfaceSize()
	assert.Equal(t, uint32(320), w)
	assert.Equal(t, uint32(240), h)
}

// lostSurfaceBackend fails every frame acquisition.
type lostSurfaceBackend struct {
	RendererBackend
}

func (lostSurfaceBackend) BeginFrame() error {
	return errors.New("surface timeout")
}

func TestRenderSurfaceLost(t *testing.T) {
	factory := func(cfg BackendConfig) (RendererBackend, error) {
		b, err := NewHeadlessRendererBackend(cfg)
		return lostSurfaceBackend{RendererBackend: b}, err
	}
	r, err := NewRenderer(fixedSurface{width: 320, height: 240}, factory)
	require.NoError(t, err)
	defer r.Release()

	assert.ErrorIs(t, r.Render(common.Camera{}), ErrSurfaceLost)
}

func TestReleaseReleasesBackend(t *testing.T) {
	var backend HeadlessRendererBackend
	factory := func(cfg BackendConfig) (RendererBackend, error) {
		b, err := NewHeadlessRendererBackend(cfg)
		backend = b.(HeadlessRendererBackend)
		return b, err
	}
	r, err := NewRenderer(fixedSurface{width: 64, height: 64}, factory, WithPresentMode(PresentModeVSync))
	require.NoError(t, err)

	assert.Equal(t, PresentModeVSync, backend.SurfaceConfigs()[0].PresentMode)
	r.Release()
	assert.True(t, backend.Released())
}

func TestHeadlessWriteBuffersIsAtomic(t *testing.T) {
	b, err := NewHeadlessRendererBackend(BackendConfig{})
	require.NoError(t, err)
	p := bind_group_provider.NewBindGroupProvider("mesh", bind_group_provider.WithMeshCapacity(16, 8))
	require.NoError(t, b.InitMeshBuffers(p))

	err = b.WriteBuffers([]bind_group_provider.BufferWrite{
		{Provider: p, Target: bind_group_provider.BufferTargetVertex, Data: []byte{1, 2, 3, 4}},
		{Provider: p, Target: bind_group_provider.BufferTargetIndex, Offset: 4, Data: make([]byte, 8)},
	})
	assert.ErrorIs(t, err, ErrCapacityExceeded)

	data, ok := b.(HeadlessRendererBackend).BufferData(p, bind_group_provider.BufferTargetVertex, 0)
	require.True(t, ok)
	assert.Equal(t, make([]byte, 16), data)
}

func TestGPUVertex(t *testing.T) {
	v := NewGPUVertex(common.Vertex{Position: [3]float32{1, 2, 3}})
	assert.Equal(t, [4]float32{1, 2, 3, 1}, v.Position)
	assert.Equal(t, VertexStride, v.Size())
}

func TestMarshalIndices(t *testing.T) {
	buf := marshalIndices([]uint32{0, 2, 1}, 10)
	assert.Equal(t, []uint32{10, 12, 11}, decodeIndices(buf, 3))
}

func TestPreferredSurfaceFormat(t *testing.T) {
	assert.Equal(t, wgpu.TextureFormatBGRA8UnormSrgb,
		preferredSurfaceFormat([]wgpu.TextureFormat{wgpu.TextureFormatBGRA8Unorm, wgpu.TextureFormatBGRA8UnormSrgb}))
	assert.Equal(t, wgpu.TextureFormatRGBA8Unorm,
		preferredSurfaceFormat([]wgpu.TextureFormat{wgpu.TextureFormatRGBA8Unorm, wgpu.TextureFormatBGRA8Unorm}))
}

func TestResolvePresentMode(t *testing.T) {
	supported := []wgpu.PresentMode{wgpu.PresentModeFifo, wgpu.PresentModeMailbox}

	assert.Equal(t, wgpu.PresentModeFifo, resolvePresentMode(PresentModeAuto, supported))
	assert.Equal(t, wgpu.PresentModeFifo, resolvePresentMode(PresentModeVSync, supported))
	// immediate is not supported, fall back to the first mode
	assert.Equal(t, wgpu.PresentModeFifo, resolvePresentMode(PresentModeUncapped, supported))
	assert.Equal(t, wgpu.PresentModeImmediate,
		resolvePresentMode(PresentModeUncapped, []wgpu.PresentMode{wgpu.PresentModeFifo, wgpu.PresentModeImmediate}))
}

func TestPresentModeString(t *testing.T) {
	assert.Equal(t, "auto", PresentModeAuto.String())
	assert.Equal(t, "vsync", PresentModeVSync.String())
	assert.Equal(t, "uncapped", PresentModeUncapped.String())
	assert.Equal(t, "unknown", PresentMode(9).String())
}
