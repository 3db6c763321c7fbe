package common

import (
	"unsafe"

	"github.com/chewxy/math32"
)

// Identity resets a 4x4 matrix (flat slice) to the identity matrix.
// The matrix is stored in column-major order.
//
// Parameters:
//   - m: destination slice (must be at least 16 elements)
func Identity(m []float32) {
	for i := range m {
		m[i] = 0
	}
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
}

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	totalBytes := int(size) * len(data)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), totalBytes)
}

// Mul4 multiplies two 4x4 matrices and stores the result in out.
// All matrices are stored in column-major order (OpenGL/WebGPU convention).
// Result: out = a * b
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - a: left-hand matrix (16 elements)
//   - b: right-hand matrix (16 elements)
func Mul4(out, a, b []float32) {
	var buf [16]float32
	for i := 0; i < 4; i++ { // column of B
		for j := 0; j < 4; j++ { // row of A
			sum := float32(0)
			for k := 0; k < 4; k++ {
				sum += a[k*4+j] * b[i*4+k]
			}
			buf[i*4+j] = sum
		}
	}
	copy(out, buf[:])
}

// Perspective creates a right-handed perspective projection matrix mapping depth into the
// WebGPU clip range [0, 1].
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
func Perspective(out []float32, fovY, aspect, near, far float32) {
	f := 1.0 / math32.Tan(fovY/2.0)
	Identity(out)

	out[0] = f / aspect
	out[5] = f
	out[10] = far / (near - far)
	out[11] = -1.0
	out[14] = (near * far) / (near - far)
	out[15] = 0.0
}

// Direction converts a pitch/yaw pair into a unit view direction.
// Pitch 0 is horizontal; yaw 0 points towards +x and yaw Pi towards -x.
//
// Parameters:
//   - pitch: elevation angle in radians
//   - yaw: heading angle in radians
//
// Returns:
//   - [3]float32: the direction (cos(yaw)cos(pitch), sin(pitch), cos(pitch)sin(yaw))
func Direction(pitch, yaw float32) [3]float32 {
	cp := math32.Cos(pitch)
	return [3]float32{
		math32.Cos(yaw) * cp,
		math32.Sin(pitch),
		cp * math32.Sin(yaw),
	}
}

// LookTo creates a right-handed view matrix for a camera at eye looking along dir.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - eyeX, eyeY, eyeZ: camera position in world space
//   - dirX, dirY, dirZ: view direction (need not be normalized)
//   - upX, upY, upZ: up vector defining camera orientation (typically 0,1,0)
func LookTo(out []float32, eyeX, eyeY, eyeZ, dirX, dirY, dirZ, upX, upY, upZ float32) {
	// z points away from the view direction
	z0, z1, z2 := normalize3(-dirX, -dirY, -dirZ)

	x0, x1, x2 := normalize3(
		upY*z2-upZ*z1,
		upZ*z0-upX*z2,
		upX*z1-upY*z0,
	)

	y0 := z1*x2 - z2*x1
	y1 := z2*x0 - z0*x2
	y2 := z0*x1 - z1*x0

	out[0], out[4], out[8], out[12] = x0, x1, x2, -(x0*eyeX + x1*eyeY + x2*eyeZ)
	out[1], out[5], out[9], out[13] = y0, y1, y2, -(y0*eyeX + y1*eyeY + y2*eyeZ)
	out[2], out[6], out[10], out[14] = z0, z1, z2, -(z0*eyeX + z1*eyeY + z2*eyeZ)
	out[3], out[7], out[11], out[15] = 0, 0, 0, 1
}

// normalize3 scales a vector to unit length. Zero vectors are returned unchanged.
func normalize3(x, y, z float32) (float32, float32, float32) {
	length := math32.Sqrt(x*x + y*y + z*z)
	if length == 0 {
		return x, y, z
	}
	inv := 1.0 / length
	return x * inv, y * inv, z * inv
}
