package bind_group_provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewBindGroupProvider(t *testing.T) {
	p := NewBindGroupProvider("mesh", WithMeshCapacity(1600, 400))
	assert.Equal(t, "mesh", p.Label())
	assert.Equal(t, uint64(1600), p.VertexCapacity())
	assert.Equal(t, uint64(400), p.IndexCapacity())
	assert.Zero(t, p.IndexCount())
	assert.Nil(t, p.BindGroup())
	assert.Nil(t, p.VertexBuffer())
	assert.Empty(t, p.Buffers())

	p.SetIndexCount(6)
	assert.Equal(t, 6, p.IndexCount())

	// releasing a provider without GPU resources is a no-op
	p.Release()
	assert.Nil(t, p.IndexBuffer())
}

func TestBufferWrite(t *testing.T) {
	p := NewBindGroupProvider("camera")
	w := BufferWrite{Provider: p, Target: BufferTargetVertex, Offset: 32, Data: make([]byte, 48)}
	assert.Equal(t, uint64(80), w.End())
	assert.Nil(t, w.Buffer())

	assert.Equal(t, "binding", BufferTargetBinding.String())
	assert.Equal(t, "vertex", BufferTargetVertex.String())
	assert.Equal(t, "index", BufferTargetIndex.String())
	assert.Equal(t, "unknown", BufferTarget(7).String())
}
