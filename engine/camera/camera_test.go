package camera

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-sandbox/common"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/renderer/bind_group_provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func transform(m [16]float32, v [4]float32) [4]float32 {
	var out [4]float32
	for i := range 4 {
		for j := range 4 {
			out[i] += m[j*4+i] * v[j]
		}
	}
	return out
}

func TestNewCameraDefaults(t *testing.T) {
	c := NewCamera()
	assert.InDelta(t, math.Pi/4, c.Fov(), 1e-6)
	assert.Equal(t, float32(1), c.Aspect())
	assert.Equal(t, float32(0.1), c.Near())
	assert.Equal(t, float32(100), c.Far())
	x, y, z := c.Up()
	assert.Equal(t, [3]float32{0, 1, 0}, [3]float32{x, y, z})
	require.NotNil(t, c.BindGroupProvider())
	assert.Contains(t, c.BindGroupProvider().Label(), "camera_")
}

func TestCameraDirection(t *testing.T) {
	tests := []struct {
		name string
		pose common.Camera
		want [3]float32
	}{
		{name: "yaw zero", pose: common.Camera{}, want: [3]float32{1, 0, 0}},
		{name: "yaw pi", pose: common.Camera{Yaw: math.Pi}, want: [3]float32{-1, 0, 0}},
		{name: "straight up", pose: common.Camera{Pitch: math.Pi / 2}, want: [3]float32{0, 1, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCamera(WithPose(tt.pose))
			got := c.Direction()
			for i := range 3 {
				assert.InDelta(t, tt.want[i], got[i], 1e-6)
			}
		})
	}
}

func TestViewProjectionCentersTarget(t *testing.T) {
	c := NewCamera()
	c.SetPose(common.Camera{Position: [3]float32{1, 2, 3}})

	clip := transform(c.ViewProjectionMatrix(), [4]float32{11, 2, 3, 1})
	require.InDelta(t, 10, clip[3], 1e-4)
	assert.InDelta(t, 0, clip[0]/clip[3], 1e-5)
	assert.InDelta(t, 0, clip[1]/clip[3], 1e-5)
	depth := clip[2] / clip[3]
	assert.Greater(t, depth, float32(0))
	assert.Less(t, depth, float32(1))

	// behind the camera lands outside the clip volume
	behind := transform(c.ViewProjectionMatrix(), [4]float32{-9, 2, 3, 1})
	assert.Less(t, behind[3], float32(0))
}

func TestSetAspectScalesX(t *testing.T) {
	c := NewCamera()
	before := c.ProjectionMatrix()[0]
	c.SetAspect(2)
	assert.InDelta(t, before/2, c.ProjectionMatrix()[0], 1e-6)
	assert.Equal(t, before, c.ProjectionMatrix()[5])
}

func TestUniformMarshal(t *testing.T) {
	c := NewCamera(WithAspect(800.0/600.0), WithClipPlanes(0.5, 50))
	u := c.Uniform()
	assert.Equal(t, 64, u.Size())
	assert.Equal(t, c.ViewProjectionMatrix(), u.ViewProj)

	buf := u.Marshal()
	require.Len(t, buf, 64)
	for i, v := range u.ViewProj {
		assert.Equal(t, math.Float32bits(v), binary.LittleEndian.Uint32(buf[i*4:]))
	}
}

func TestWithBindGroupProvider(t *testing.T) {
	p := bind_group_provider.NewBindGroupProvider("shared")
	c := NewCamera(WithBindGroupProvider(p))
	assert.Same(t, p, c.BindGroupProvider())
}
