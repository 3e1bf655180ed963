package anim

import (
	"math"
	"time"
)

// Bounce transiently scales a marker when it is placed: a quick
// grow to the overshoot size, then an elastic settle back to 1.0.
type Bounce struct {
	base
	IsPrimary bool
}

// NewBounce creates a bounce starting at the given time
func NewBounce(start time.Time, isPrimary bool) *Bounce {
	return &Bounce{
		base:      base{start: start, duration: BounceDuration},
		IsPrimary: isPrimary,
	}
}

// Scale returns the current display scale factor for the marker
func (a *Bounce) Scale(now time.Time) float64 {
	t := a.progress(now)

	// Fast grow for the first fifth of the animation
	if t < 0.2 {
		return 1.0 + (bounceScaleMax-1.0)*EaseOutQuad(t/0.2)
	}

	// Elastic settle for the rest
	sub := (t - 0.2) / 0.8
	overshoot := bounceScaleMax - 1.0
	return 1.0 + overshoot*(1.0-EaseOutElastic(sub))
}

// moveWobble is the small scale pulse applied while a marker travels
func moveWobble(t float64) float64 {
	return 1.0 + 0.1*math.Sin(t*math.Pi)
}
