package anim

import (
	"time"

	"github.com/canopy-cad/canopy/pkg/geometry"
)

// Move interpolates a marker's display position from Start to End.
// When the other marker's endpoints are supplied the path bows along
// a quadratic Bézier perpendicular to the travel direction so the
// two markers never visually cross during a swap. A start delay
// holds the marker at Start before the motion begins.
type Move struct {
	base
	Start     geometry.Vector3
	End       geometry.Vector3
	IsPrimary bool
	Delay     time.Duration

	avoid      bool
	otherStart geometry.Vector3
	otherEnd   geometry.Vector3
}

// NewMove creates a straight move
func NewMove(start time.Time, from, to geometry.Vector3, isPrimary bool, delay time.Duration) *Move {
	return &Move{
		base:      base{start: start, duration: MoveDuration + delay},
		Start:     from,
		End:       to,
		IsPrimary: isPrimary,
		Delay:     delay,
	}
}

// NewAvoidingMove creates a move that bows around the other marker's
// path, given that marker's own start and end positions
func NewAvoidingMove(start time.Time, from, to, otherFrom, otherTo geometry.Vector3, isPrimary bool, delay time.Duration) *Move {
	m := NewMove(start, from, to, isPrimary, delay)
	m.avoid = true
	m.otherStart = otherFrom
	m.otherEnd = otherTo
	return m
}

// Position returns the current display position and scale factor
func (a *Move) Position(now time.Time) (geometry.Vector3, float64) {
	elapsed := a.elapsed(now)

	if elapsed < a.Delay {
		return a.Start, 1.0
	}

	t := 1.0
	if MoveDuration > 0 {
		t = (elapsed - a.Delay).Seconds() / MoveDuration.Seconds()
		if t >= 1 {
			t = 1
			a.done = true
		}
	}
	eased := EaseOutBack(t)

	var pos geometry.Vector3
	if a.avoid {
		mid := a.Start.Add(a.End).Mul(0.5)

		// Bow perpendicular to the travel direction; primary and
		// secondary take opposite sides
		direction := a.End.Sub(a.Start)
		perp := geometry.NewVector3(-direction.Y, direction.X, direction.Z).Normalize()

		offset := direction.Length() * 0.3
		var control geometry.Vector3
		if a.IsPrimary {
			control = mid.Add(perp.Mul(offset))
		} else {
			control = mid.Sub(perp.Mul(offset))
		}

		pos = geometry.QuadraticBezier(a.Start, control, a.End, eased)
	} else {
		pos = a.Start.Lerp(a.End, eased)
	}

	return pos, moveWobble(t)
}
