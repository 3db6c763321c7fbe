package renderer

import (
	"encoding/binary"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-sandbox/common"
)

const (
	// VertexStride is the size in bytes of one GPUVertex in the vertex buffer.
	VertexStride = 16
	// IndexStride is the size in bytes of one uint32 index in the index buffer.
	IndexStride = 4
)

// GPUVertexSource is the canonical WGSL definition of the VertexInput struct.
// Matches GPUVertex layout exactly (16 bytes).
const GPUVertexSource = `struct VertexInput {
    @location(0) position: vec4<f32>,
};
`

// GPUVertex is the GPU-aligned representation of a single vertex.
// Matches the WGSL VertexInput struct layout exactly (see GPUVertexSource).
type GPUVertex struct {
	Position [4]float32 // offset 0: homogeneous position, w is always 1 (vec4<f32>)
}

// NewGPUVertex lifts a world-space vertex into its GPU representation.
//
// Parameters:
//   - v: the vertex to convert
//
// Returns:
//   - GPUVertex: the vertex with w set to 1
func NewGPUVertex(v common.Vertex) GPUVertex {
	return GPUVertex{Position: [4]float32{v.Position[0], v.Position[1], v.Position[2], 1}}
}

// Size returns the size of the GPUVertex struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (16)
func (g *GPUVertex) Size() int {
	return int(unsafe.Sizeof(*g))
}

// marshalVertices lays vertices out back to back in GPUVertex layout.
func marshalVertices(vertices []common.Vertex) []byte {
	gpu := make([]GPUVertex, len(vertices))
	for i, v := range vertices {
		gpu[i] = NewGPUVertex(v)
	}
	return common.SliceToBytes(gpu)
}

// marshalIndices serializes indices as little-endian uint32 values, each shifted by base.
func marshalIndices(indices []uint32, base uint32) []byte {
	buf := make([]byte, len(indices)*IndexStride)
	for i, idx := range indices {
		binary.LittleEndian.PutUint32(buf[i*IndexStride:], idx+base)
	}
	return buf
}
