package bind_group_provider

import "github.com/cogentcore/webgpu/wgpu"

// BufferTarget selects which buffer of a provider a BufferWrite lands in.
type BufferTarget int

const (
	// BufferTargetBinding targets the bind group buffer at BufferWrite.Binding.
	BufferTargetBinding BufferTarget = iota
	// BufferTargetVertex targets the provider's vertex buffer.
	BufferTargetVertex
	// BufferTargetIndex targets the provider's index buffer.
	BufferTargetIndex
)

func (t BufferTarget) String() string {
	switch t {
	case BufferTargetBinding:
		return "binding"
	case BufferTargetVertex:
		return "vertex"
	case BufferTargetIndex:
		return "index"
	default:
		return "unknown"
	}
}

// BufferWrite describes a single GPU buffer write at a byte offset into one of a provider's buffers.
type BufferWrite struct {
	Provider BindGroupProvider
	Target   BufferTarget
	// Binding is only used with BufferTargetBinding.
	Binding int
	Offset  uint64
	Data    []byte
}

// End returns the byte offset one past the last byte written.
func (w BufferWrite) End() uint64 {
	return w.Offset + uint64(len(w.Data))
}

// Buffer resolves the GPU buffer the write targets, or nil if it has not been created.
//
// Returns:
//   - *wgpu.Buffer: the target buffer or nil
func (w BufferWrite) Buffer() *wgpu.Buffer {
	switch w.Target {
	case BufferTargetVertex:
		return w.Provider.VertexBuffer()
	case BufferTargetIndex:
		return w.Provider.IndexBuffer()
	default:
		return w.Provider.Buffer(w.Binding)
	}
}
