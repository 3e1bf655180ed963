package anim

import (
	"time"

	"github.com/canopy-cad/canopy/pkg/geometry"
)

// LineDraw is the three-phase preview line: drawn from Start to End,
// held fully visible, then erased from one end while fading.
type LineDraw struct {
	base
	Start          geometry.Vector3
	End            geometry.Vector3
	EraseFromStart bool
}

// NewLineDraw creates a line preview starting at the given time
func NewLineDraw(start time.Time, from, to geometry.Vector3, eraseFromStart bool) *LineDraw {
	return &LineDraw{
		base: base{
			start:    start,
			duration: LineDrawDuration + LineHoldDuration + LineEraseDuration,
		},
		Start:          from,
		End:            to,
		EraseFromStart: eraseFromStart,
	}
}

// Segment returns the currently visible span and its opacity
func (a *LineDraw) Segment(now time.Time) (geometry.Vector3, geometry.Vector3, float64) {
	elapsed := a.elapsed(now)

	switch {
	case elapsed < LineDrawDuration:
		t := EaseOutQuad(elapsed.Seconds() / LineDrawDuration.Seconds())
		return a.Start, a.Start.Lerp(a.End, t), 1.0

	case elapsed < LineDrawDuration+LineHoldDuration:
		return a.Start, a.End, 1.0

	case elapsed < a.duration:
		t := EaseInQuad((elapsed - LineDrawDuration - LineHoldDuration).Seconds() / LineEraseDuration.Seconds())
		if a.EraseFromStart {
			return a.Start.Lerp(a.End, t), a.End, 1.0 - t*0.4
		}
		return a.Start, a.End.Lerp(a.Start, t), 1.0 - t*0.4
	}

	return a.End, a.End, 0.0
}
