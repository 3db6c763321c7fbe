// package common contains common types that are used throughout the sandbox. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"errors"
	"fmt"
)

// ErrMalformedMesh is returned when a Mesh does not describe a whole number of triangles.
var ErrMalformedMesh = errors.New("malformed mesh")

// Vertex is a single point of geometry in world space.
type Vertex struct {
	// Position is the world-space position of the vertex.
	Position [3]float32
}

// Mesh is an indexed triangle list. Indices address Vertices of the same Mesh; the renderer offsets them
// when the mesh is appended into its shared buffers.
type Mesh struct {
	// Vertices is the ordered list of vertices referenced by Indices.
	Vertices []Vertex
	// Indices is the triangle list, three indices per triangle.
	Indices []uint32
}

// Validate reports whether the mesh describes a whole number of triangles and whether every index
// addresses one of its own vertices.
//
// Returns:
//   - error: an error wrapping ErrMalformedMesh, or nil if the mesh is well formed
func (m Mesh) Validate() error {
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("%w: index count %d is not a multiple of 3", ErrMalformedMesh, len(m.Indices))
	}
	for i, idx := range m.Indices {
		if int(idx) >= len(m.Vertices) {
			return fmt.Errorf("%w: index %d at position %d out of range for %d vertices", ErrMalformedMesh, idx, i, len(m.Vertices))
		}
	}
	return nil
}

// Camera is a camera pose sampled for a single frame.
// Pitch 0 is horizontal. Yaw 0 looks towards +x, yaw Pi looks towards -x.
type Camera struct {
	// Position is the world-space eye position.
	Position [3]float32
	// Pitch is the elevation angle in radians.
	Pitch float32
	// Yaw is the heading angle in radians around the +y axis.
	Yaw float32
}

// CameraFromPose builds a Camera from a 5-component pose sample laid out as x, y, z, pitch, yaw.
//
// Parameters:
//   - pose: the sampled pose
//
// Returns:
//   - Camera: the camera described by the pose
func CameraFromPose(pose [5]float32) Camera {
	return Camera{
		Position: [3]float32{pose[0], pose[1], pose[2]},
		Pitch:    pose[3],
		Yaw:      pose[4],
	}
}
