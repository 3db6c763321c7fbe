package animation

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

const eps = 1e-5

func assertPose(t *testing.T, want, got Pose) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], eps, "component %d", i)
	}
}

func TestLineEndpointsAndMidpoint(t *testing.T) {
	l := Line(Pose{0, 0, 0, 0, 0}, Pose{2, 4, 6, 8, 10})
	assertPose(t, Pose{0, 0, 0, 0, 0}, l.PointAt(0))
	assertPose(t, Pose{1, 2, 3, 4, 5}, l.PointAt(0.5))
	assertPose(t, Pose{2, 4, 6, 8, 10}, l.PointAt(1))
	assert.Equal(t, 1, l.Degree())
}

func TestQuadraticBezier(t *testing.T) {
	b := NewBezier(Pose{0}, Pose{1}, Pose{2})
	assertPose(t, Pose{1}, b.PointAt(0.5))

	c := NewBezier(Pose{0}, Pose{4}, Pose{0})
	// (1-t)^2*0 + 2t(1-t)*4 + t^2*0 at t = 0.5
	assertPose(t, Pose{2}, c.PointAt(0.5))
	assert.Equal(t, 2, c.Degree())
}

func TestBezierDegenerate(t *testing.T) {
	assert.Equal(t, Pose{}, NewBezier().PointAt(0.3))
	assert.Equal(t, Pose{1, 2, 3, 4, 5}, NewBezier(Pose{1, 2, 3, 4, 5}).PointAt(0.7))
	assert.Equal(t, 0, NewBezier().Degree())
}

func TestDefaultPath(t *testing.T) {
	p := DefaultPath()
	assertPose(t, Pose{0, 0, 10, 0, math32.Pi * 3 / 2}, p.PointAt(0))
	assertPose(t, Pose{10, 0, 0, 0, math32.Pi}, p.PointAt(1))

	cam := Sample(p, 0.5)
	assert.InDelta(t, 5, cam.Position[0], eps)
	assert.InDelta(t, 5, cam.Position[2], eps)
	assert.InDelta(t, math32.Pi*5/4, cam.Yaw, eps)
}

func TestSequence(t *testing.T) {
	s := NewSequence(
		Line(Pose{0}, Pose{1}),
		Line(Pose{1}, Pose{3}),
	)
	assertPose(t, Pose{0}, s.PointAt(0))
	assertPose(t, Pose{0.5}, s.PointAt(0.25))
	assertPose(t, Pose{2}, s.PointAt(0.75))
	assertPose(t, Pose{3}, s.PointAt(1))
	assertPose(t, Pose{3}, s.PointAt(2))
	assert.Equal(t, Pose{}, NewSequence().PointAt(0.5))
}

func TestCurveFunc(t *testing.T) {
	c := CurveFunc(func(t float32) Pose { return Pose{t} })
	assert.Equal(t, Pose{0.25}, c.PointAt(0.25))
}
