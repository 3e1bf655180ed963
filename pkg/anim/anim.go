// Package anim is a cooperative tween scheduler for viewport
// feedback: marker bounces, avoidance moves, and line/rotation
// sweep previews. Animations are pure functions of elapsed time;
// the engine polls them on a ~60 Hz timer and republishes their
// current values for the renderer.
package anim

import (
	"time"

	"github.com/canopy-cad/canopy/pkg/geometry"
)

// Durations and visual constants for the built-in animations
const (
	BounceDuration        = 300 * time.Millisecond
	MoveDuration          = 250 * time.Millisecond
	LineDrawDuration      = 150 * time.Millisecond
	LineHoldDuration      = 80 * time.Millisecond
	LineEraseDuration     = 150 * time.Millisecond
	RotationPhaseDuration = 200 * time.Millisecond

	// SecondaryDelay staggers the secondary marker's move during a
	// swap so the two sweeps read as separate motions
	SecondaryDelay = 40 * time.Millisecond

	bounceScaleMax = 1.4
)

// TickInterval is the nominal scheduler period (~60 Hz)
const TickInterval = 16 * time.Millisecond

// Animation is a time-bounded tween. Completion latches: once a
// progress computation reaches 1.0 the animation stays done.
type Animation interface {
	Done() bool
	Cancel()
}

// SegmentAnimation is implemented by animations the renderer draws
// as a line segment (previews and sweeps)
type SegmentAnimation interface {
	Animation
	Segment(now time.Time) (start, end geometry.Vector3, opacity float64)
}

// base carries the shared start/duration/completion state
type base struct {
	start    time.Time
	duration time.Duration
	done     bool
}

// progress returns the clamped progress at now, latching completion
func (b *base) progress(now time.Time) float64 {
	if b.done {
		return 1
	}
	if b.duration <= 0 {
		b.done = true
		return 1
	}
	t := now.Sub(b.start).Seconds() / b.duration.Seconds()
	if t >= 1 {
		b.done = true
		return 1
	}
	if t < 0 {
		return 0
	}
	return t
}

// elapsed returns time since the animation started, latching
// completion once the full duration has passed
func (b *base) elapsed(now time.Time) time.Duration {
	e := now.Sub(b.start)
	if e >= b.duration {
		b.done = true
	}
	return e
}

// Done reports whether the animation has completed or been cancelled
func (b *base) Done() bool { return b.done }

// Cancel marks the animation complete immediately
func (b *base) Cancel() { b.done = true }
