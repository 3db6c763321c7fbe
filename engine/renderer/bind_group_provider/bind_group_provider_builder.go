package bind_group_provider

import "github.com/cogentcore/webgpu/wgpu"

// BindGroupProviderOption is a functional option used to configure a BindGroupProvider during construction.
type BindGroupProviderOption func(*bindGroupProvider)

// WithMeshCapacity sets the byte sizes of the vertex and index buffers a backend allocates for this provider.
//
// Parameters:
//   - vertexBytes: size of the vertex buffer in bytes
//   - indexBytes: size of the index buffer in bytes
//
// Returns:
//   - BindGroupProviderOption: a function that sets the mesh buffer capacities
func WithMeshCapacity(vertexBytes, indexBytes uint64) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.vertexCapacity = vertexBytes
		p.indexCapacity = indexBytes
	}
}

// WithBindGroupLayout sets a pre-created bind group layout, so a backend reuses it instead of creating one.
//
// Parameters:
//   - bgl: the bind group layout to use for this provider
//
// Returns:
//   - BindGroupProviderOption: a function that sets the bind group layout for this provider
func WithBindGroupLayout(bgl *wgpu.BindGroupLayout) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.bindGroupLayout = bgl
	}
}
