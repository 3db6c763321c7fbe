// package animation provides the curves that drive the sandbox camera over time.
package animation

import (
	"github.com/Carmen-Shannon/oxy-sandbox/common"
	"github.com/chewxy/math32"
)

// Pose is a 5-component camera sample laid out as x, y, z, pitch, yaw.
type Pose = [5]float32

// Curve maps a normalized time onto a camera pose.
type Curve interface {
	// PointAt samples the curve.
	//
	// Parameters:
	//   - t: normalized time, 0 at the start of the curve and 1 at the end
	//
	// Returns:
	//   - Pose: the sampled pose
	PointAt(t float32) Pose
}

// CurveFunc adapts a plain function to the Curve interface.
type CurveFunc func(t float32) Pose

// PointAt calls f(t).
func (f CurveFunc) PointAt(t float32) Pose {
	return f(t)
}

// Bezier is a Bezier curve of arbitrary degree over 5-component control points.
type Bezier struct {
	points []Pose
}

var _ Curve = &Bezier{}

// NewBezier creates a Bezier curve from its control points. The curve passes through the first and last points.
// A curve without control points always samples the zero pose.
//
// Parameters:
//   - points: the control points in order
//
// Returns:
//   - *Bezier: the curve
func NewBezier(points ...Pose) *Bezier {
	cp := make([]Pose, len(points))
	copy(cp, points)
	return &Bezier{points: cp}
}

// Line creates a degree-one Bezier curve between two poses.
//
// Parameters:
//   - from: the pose at t = 0
//   - to: the pose at t = 1
//
// Returns:
//   - *Bezier: the line
func Line(from, to Pose) *Bezier {
	return NewBezier(from, to)
}

// DefaultPath returns the path the sandbox camera flies by default: from (0, 0, 10) looking towards -z to
// (10, 0, 0) looking towards -x.
//
// Returns:
//   - *Bezier: the default camera path
func DefaultPath() *Bezier {
	return Line(
		Pose{0, 0, 10, 0, math32.Pi * 3 / 2},
		Pose{10, 0, 0, 0, math32.Pi},
	)
}

// PointAt evaluates the curve with de Casteljau's algorithm. t is not clamped.
func (b *Bezier) PointAt(t float32) Pose {
	switch len(b.points) {
	case 0:
		return Pose{}
	case 1:
		return b.points[0]
	}

	work := make([]Pose, len(b.points))
	copy(work, b.points)
	for n := len(work) - 1; n > 0; n-- {
		for i := 0; i < n; i++ {
			work[i] = lerp(work[i], work[i+1], t)
		}
	}
	return work[0]
}

// Degree returns the degree of the curve, one less than the number of control points.
func (b *Bezier) Degree() int {
	return max(len(b.points)-1, 0)
}

// Sequence joins curves end to end. Each curve occupies an equal share of the normalized time range.
type Sequence struct {
	curves []Curve
}

var _ Curve = &Sequence{}

// NewSequence creates a Sequence from curves played in order.
//
// Parameters:
//   - curves: the segments of the sequence
//
// Returns:
//   - *Sequence: the joined curve
func NewSequence(curves ...Curve) *Sequence {
	return &Sequence{curves: curves}
}

// PointAt samples the segment that owns t, rescaling t into that segment's own range.
// Values outside [0, 1] are clamped.
func (s *Sequence) PointAt(t float32) Pose {
	if len(s.curves) == 0 {
		return Pose{}
	}
	t = math32.Max(0, math32.Min(1, t))
	scaled := t * float32(len(s.curves))
	idx := int(scaled)
	if idx >= len(s.curves) {
		idx = len(s.curves) - 1
	}
	return s.curves[idx].PointAt(scaled - float32(idx))
}

// Sample evaluates a curve and converts the result into a camera.
//
// Parameters:
//   - c: the curve to sample
//   - t: normalized time
//
// Returns:
//   - common.Camera: the sampled camera
func Sample(c Curve, t float32) common.Camera {
	return common.CameraFromPose(c.PointAt(t))
}

func lerp(a, b Pose, t float32) Pose {
	var out Pose
	for i := range out {
		out[i] = a[i] + (b[i]-a[i])*t
	}
	return out
}
