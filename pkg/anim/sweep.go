package anim

import (
	"math"
	"time"

	"github.com/canopy-cad/canopy/pkg/geometry"
)

// RotationSweep previews a rotation around a pivot: a radial line is
// drawn out to the start point, swung through the angle between the
// start and target vectors, then erased outward from the pivot.
type RotationSweep struct {
	base
	Pivot       geometry.Vector3
	StartPoint  geometry.Vector3
	TargetPoint geometry.Vector3

	radius float64
	angle  float64
	axis   geometry.Vector3
}

// NewRotationSweep creates a rotation preview; the rotation axis and
// angle are derived from the pivot-to-point vectors
func NewRotationSweep(start time.Time, pivot, from, to geometry.Vector3) *RotationSweep {
	a := &RotationSweep{
		base: base{
			start:    start,
			duration: LineDrawDuration + RotationPhaseDuration + LineEraseDuration,
		},
		Pivot:       pivot,
		StartPoint:  from,
		TargetPoint: to,
	}

	a.radius = from.Sub(pivot).Length()

	vecStart := from.Sub(pivot).Normalize()
	vecTarget := to.Sub(pivot).Normalize()
	if vecStart.Length() > 0.001 && vecTarget.Length() > 0.001 {
		dot := math.Max(-1.0, math.Min(1.0, vecStart.Dot(vecTarget)))
		a.angle = math.Acos(dot)

		a.axis = vecStart.Cross(vecTarget)
		if a.axis.Length() < 0.001 {
			a.axis = geometry.NewVector3(0, 0, 1)
		} else {
			a.axis = a.axis.Normalize()
		}
	} else {
		a.axis = geometry.NewVector3(0, 0, 1)
	}

	return a
}

// Segment returns the currently visible radial segment and opacity
func (a *RotationSweep) Segment(now time.Time) (geometry.Vector3, geometry.Vector3, float64) {
	elapsed := a.elapsed(now)
	direction := a.StartPoint.Sub(a.Pivot)
	if direction.Length() > 0.001 {
		direction = direction.Normalize()
	}

	switch {
	case elapsed < LineDrawDuration:
		t := EaseOutQuad(elapsed.Seconds() / LineDrawDuration.Seconds())
		end := a.Pivot.Add(direction.Mul(a.radius * t))
		return a.Pivot, end, 1.0

	case elapsed < LineDrawDuration+RotationPhaseDuration:
		rt := (elapsed - LineDrawDuration).Seconds() / RotationPhaseDuration.Seconds()
		current := a.angle * EaseInOutQuad(rt)

		rot := geometry.RotationAbout(a.axis, current)
		end := a.Pivot.Add(rot.MulPoint(a.StartPoint.Sub(a.Pivot)))
		return a.Pivot, end, 1.0

	case elapsed < a.duration:
		et := (elapsed - LineDrawDuration - RotationPhaseDuration).Seconds() / LineEraseDuration.Seconds()
		t := EaseInQuad(et)

		rot := geometry.RotationAbout(a.axis, a.angle)
		finalEnd := a.Pivot.Add(rot.MulPoint(a.StartPoint.Sub(a.Pivot)))

		return a.Pivot.Lerp(finalEnd, t), finalEnd, 1.0 - t*0.5
	}

	return a.Pivot, a.Pivot, 0.0
}

// EdgeRotationSweep previews rotating an edge about its own center:
// the edge is drawn out symmetrically, turned from its current
// direction to the target direction, then collapsed back inward.
type EdgeRotationSweep struct {
	base
	Center     geometry.Vector3
	StartDir   geometry.Vector3
	TargetDir  geometry.Vector3
	EdgeLength float64
}

// NewEdgeRotationSweep creates an edge rotation preview
func NewEdgeRotationSweep(start time.Time, center, startDir, targetDir geometry.Vector3, length float64) *EdgeRotationSweep {
	if startDir.Length() > 0.001 {
		startDir = startDir.Normalize()
	}
	if targetDir.Length() > 0.001 {
		targetDir = targetDir.Normalize()
	}
	return &EdgeRotationSweep{
		base: base{
			start:    start,
			duration: LineDrawDuration + RotationPhaseDuration + LineEraseDuration,
		},
		Center:     center,
		StartDir:   startDir,
		TargetDir:  targetDir,
		EdgeLength: length,
	}
}

// Segment returns the currently visible edge span and opacity
func (a *EdgeRotationSweep) Segment(now time.Time) (geometry.Vector3, geometry.Vector3, float64) {
	elapsed := a.elapsed(now)
	half := a.EdgeLength / 2

	switch {
	case elapsed < LineDrawDuration:
		t := EaseOutQuad(elapsed.Seconds() / LineDrawDuration.Seconds())
		cur := half * t
		return a.Center.Sub(a.StartDir.Mul(cur)), a.Center.Add(a.StartDir.Mul(cur)), 1.0

	case elapsed < LineDrawDuration+RotationPhaseDuration:
		rt := (elapsed - LineDrawDuration).Seconds() / RotationPhaseDuration.Seconds()
		dir := a.StartDir.Lerp(a.TargetDir, EaseInOutQuad(rt))
		if dir.Length() > 0.001 {
			dir = dir.Normalize()
		}
		return a.Center.Sub(dir.Mul(half)), a.Center.Add(dir.Mul(half)), 1.0

	case elapsed < a.duration:
		et := (elapsed - LineDrawDuration - RotationPhaseDuration).Seconds() / LineEraseDuration.Seconds()
		t := EaseInQuad(et)
		cur := half * (1.0 - t)
		return a.Center.Sub(a.TargetDir.Mul(cur)), a.Center.Add(a.TargetDir.Mul(cur)), 1.0 - t*0.5
	}

	return a.Center, a.Center, 0.0
}
