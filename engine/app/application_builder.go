package app

import (
	"io"
	"math/rand"
	"time"

	"github.com/Carmen-Shannon/oxy-sandbox/engine/animation"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/event"
)

// ApplicationBuilderOption is a functional option applied to an application during construction.
type ApplicationBuilderOption func(*application)

// WithCurve sets the curve the camera follows. Defaults to animation.DefaultPath.
//
// Parameters:
//   - c: the camera curve
//
// Returns:
//   - ApplicationBuilderOption: a function that sets the curve
func WithCurve(c animation.Curve) ApplicationBuilderOption {
	return func(a *application) {
		if c != nil {
			a.curve = c
		}
	}
}

// WithClock sets the time source. Defaults to time.Now.
//
// Parameters:
//   - clock: the time source
//
// Returns:
//   - ApplicationBuilderOption: a function that sets the clock
func WithClock(clock func() time.Time) ApplicationBuilderOption {
	return func(a *application) {
		if clock != nil {
			a.clock = clock
		}
	}
}

// WithRand sets the random source used to place spawned triangles.
//
// Parameters:
//   - rng: the random source
//
// Returns:
//   - ApplicationBuilderOption: a function that sets the random source
func WithRand(rng *rand.Rand) ApplicationBuilderOption {
	return func(a *application) {
		a.rng = rng
	}
}

// WithReportWriter sets where FPS reports are written. Defaults to os.Stdout.
//
// Parameters:
//   - w: the report destination
//
// Returns:
//   - ApplicationBuilderOption: a function that sets the report writer
func WithReportWriter(w io.Writer) ApplicationBuilderOption {
	return func(a *application) {
		if w != nil {
			a.report = w
		}
	}
}

// WithSpawnKey sets the key that spawns a triangle. Defaults to event.KeySpace.
//
// Parameters:
//   - key: the spawn key
//
// Returns:
//   - ApplicationBuilderOption: a function that sets the spawn key
func WithSpawnKey(key event.Key) ApplicationBuilderOption {
	return func(a *application) {
		a.spawnKey = key
	}
}

// WithDuration sets the animation window length. Non-positive values are ignored.
//
// Parameters:
//   - d: the window length
//
// Returns:
//   - ApplicationBuilderOption: a function that sets the duration
func WithDuration(d time.Duration) ApplicationBuilderOption {
	return func(a *application) {
		if d > 0 {
			a.duration = d
		}
	}
}
