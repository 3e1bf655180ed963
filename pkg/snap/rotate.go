package snap

import (
	"fmt"
	"math"

	"github.com/canopy-cad/canopy/pkg/geometry"
)

// angleBetween returns the signed Z-plane angle (radians) from p1 to
// p2 as seen from pivot, positive counter-clockwise. ok is false when
// either point is too close to the pivot to define a direction.
func angleBetween(pivot, p1, p2 geometry.Vector3) (angle float64, ok bool) {
	v1 := p1.Sub(pivot)
	v2 := p2.Sub(pivot)
	if v1.Length() < MinPivotDistance || v2.Length() < MinPivotDistance {
		return 0, false
	}
	v1 = v1.Normalize()
	v2 = v2.Normalize()

	dot := v1.Dot(v2)
	if dot > 1 {
		dot = 1
	} else if dot < -1 {
		dot = -1
	}
	angle = math.Acos(dot)
	if v1.Cross(v2).Z < 0 {
		angle = -angle
	}
	return angle, true
}

// rotationAxis returns the axis perpendicular to the two pivot rays,
// falling back to +Z when the rays are colinear
func rotationAxis(pivot, from, to geometry.Vector3) geometry.Vector3 {
	v1 := from.Sub(pivot).Normalize()
	v2 := to.Sub(pivot).Normalize()
	axis := v1.Cross(v2)
	if axis.Length() < degenerateEps {
		return geometry.AxisVector(geometry.AxisZ)
	}
	return axis.Normalize()
}

// rotateObject applies a rotation about an axis through pivot to the
// object's world transform
func rotateObject(obj Object, pivot, axis geometry.Vector3, angle float64) {
	rot := geometry.RotationAround(pivot, axis, angle)
	obj.SetWorldMatrix(rot.Mul(obj.WorldMatrix()))
}

// RotateToSecondary rotates the primary marker's object around the
// host cursor until the primary marker lies on the ray from the
// cursor through the secondary marker. The rotation axis is the
// normal of the plane spanned by the two cursor-to-marker rays. The
// marker follows the rotation; its distance to the cursor is
// unchanged.
func (o *Ops) RotateToSecondary() error {
	return o.rotateMarkerToMarker(&o.State.Primary, &o.State.Secondary)
}

// RotateToPrimary is the mirror of RotateToSecondary: the secondary
// marker's object rotates onto the primary's bearing.
func (o *Ops) RotateToPrimary() error {
	return o.rotateMarkerToMarker(&o.State.Secondary, &o.State.Primary)
}

func (o *Ops) rotateMarkerToMarker(moving, target *Marker) error {
	if err := o.requireBoth(); err != nil {
		return err
	}
	if !moving.OwnerValid() {
		return ErrStaleOwner
	}

	pivot := o.Cursor()
	angle, ok := angleBetween(pivot, moving.Location, target.Location)
	if !ok {
		return fmt.Errorf("%w: marker too close to the rotation pivot", ErrDegenerate)
	}

	axis := rotationAxis(pivot, moving.Location, target.Location)
	rotateObject(moving.Owner, pivot, axis, angle)
	end := geometry.RotationAround(pivot, axis, angle).MulPoint(moving.Location)

	o.Anim.PreviewRotation(pivot, moving.Location, end)
	moving.Location = end

	o.Log.Info().
		Str("object", moving.Owner.Name()).
		Float64("degrees", angle*180/math.Pi).
		Msg("rotated onto marker bearing")
	o.State.requestRedraw()
	return nil
}

// RotateByAngle rotates the primary marker's object by the given
// angle (radians) around the host cursor on the Z axis. The marker
// follows the rotation.
func (o *Ops) RotateByAngle(angle float64) error {
	if !o.State.Primary.IsSet() {
		return ErrNoPrimary
	}
	if !o.State.Primary.OwnerValid() {
		return ErrStaleOwner
	}

	pivot := o.Cursor()
	if o.State.Primary.Location.Sub(pivot).Length() < MinPivotDistance {
		return fmt.Errorf("%w: marker too close to the rotation pivot", ErrDegenerate)
	}

	axis := geometry.AxisVector(geometry.AxisZ)
	rotateObject(o.State.Primary.Owner, pivot, axis, angle)
	o.State.Primary.Location = geometry.RotationAround(pivot, axis, angle).
		MulPoint(o.State.Primary.Location)

	o.Log.Info().
		Str("object", o.State.Primary.Owner.Name()).
		Float64("degrees", angle*180/math.Pi).
		Msg("rotated around cursor")
	o.State.requestRedraw()
	return nil
}

// RotateAroundPrimary rotates the selection by the given angle
// (radians) about the chosen axis through the primary marker
func (o *Ops) RotateAroundPrimary(selection []Object, axis geometry.Axis, angle float64) error {
	if !o.State.Primary.IsSet() {
		return ErrNoPrimary
	}
	return o.rotateSelectionAround(selection, o.State.Primary.Location, axis, angle)
}

// RotateAroundSecondary is RotateAroundPrimary pivoting on the
// secondary marker instead
func (o *Ops) RotateAroundSecondary(selection []Object, axis geometry.Axis, angle float64) error {
	if !o.State.Secondary.IsSet() {
		return ErrNoSecondary
	}
	return o.rotateSelectionAround(selection, o.State.Secondary.Location, axis, angle)
}

func (o *Ops) rotateSelectionAround(selection []Object, pivot geometry.Vector3, axis geometry.Axis, angle float64) error {
	selection = liveSelection(selection)
	if len(selection) == 0 {
		return ErrNoSelection
	}

	dir := geometry.AxisVector(axis)
	for _, obj := range selection {
		rotateObject(obj, pivot, dir, angle)
	}

	o.Log.Info().
		Int("objects", len(selection)).
		Stringer("axis", axis).
		Float64("degrees", angle*180/math.Pi).
		Msg("selection rotated around marker")
	o.State.requestRedraw()
	return nil
}

// edgeAlignment computes the rotation taking startDir onto targetDir.
// Anti-parallel edges flip half a turn about a perpendicular; already
// parallel edges return ok=false with no error.
func edgeAlignment(startDir, targetDir geometry.Vector3) (axis geometry.Vector3, angle float64, ok bool) {
	dot := startDir.Dot(targetDir)
	if dot > 1 {
		dot = 1
	} else if dot < -1 {
		dot = -1
	}

	cross := startDir.Cross(targetDir)
	if cross.Length() < degenerateEps {
		if dot > 0 {
			return geometry.Vector3{}, 0, false
		}
		// Anti-parallel: any perpendicular works, pick one from a
		// basis vector the edge is not aligned with
		basis := geometry.AxisVector(geometry.AxisX)
		if math.Abs(startDir.X) >= 0.9 {
			basis = geometry.AxisVector(geometry.AxisY)
		}
		return startDir.Cross(basis).Normalize(), math.Pi, true
	}
	return cross.Normalize(), math.Acos(dot), true
}

// edgeAt returns the unit direction and length of the marker's edge
func edgeAt(m *Marker) (dir geometry.Vector3, length float64, err error) {
	if m.Kind != ElementEdge {
		return geometry.Vector3{}, 0, ErrNotEdges
	}
	dir, length, ok := m.Owner.ClosestEdgeDirection(m.Location)
	if !ok || length < degenerateEps {
		return geometry.Vector3{}, 0, fmt.Errorf("%w: marker edge has no usable direction", ErrDegenerate)
	}
	return dir.Normalize(), length, nil
}

// MakeEdgesParallelPrimary rotates the primary marker's object about
// the primary marker until its edge is parallel to the secondary
// marker's edge. Both markers must sit on edge midpoints.
func (o *Ops) MakeEdgesParallelPrimary() error {
	return o.makeEdgesParallel(&o.State.Primary, &o.State.Secondary)
}

// MakeEdgesParallelSecondary rotates the secondary marker's object to
// match the primary marker's edge
func (o *Ops) MakeEdgesParallelSecondary() error {
	return o.makeEdgesParallel(&o.State.Secondary, &o.State.Primary)
}

func (o *Ops) makeEdgesParallel(moving, target *Marker) error {
	if err := o.requireBoth(); err != nil {
		return err
	}
	if !moving.OwnerValid() || !target.OwnerValid() {
		return ErrStaleOwner
	}

	startDir, length, err := edgeAt(moving)
	if err != nil {
		return err
	}
	targetDir, _, err := edgeAt(target)
	if err != nil {
		return err
	}

	axis, angle, ok := edgeAlignment(startDir, targetDir)
	if !ok {
		o.Log.Debug().Msg("edges already parallel")
		return nil
	}

	o.Anim.PreviewEdgeRotation(moving.Location, startDir, targetDir, length)
	rotateObject(moving.Owner, moving.Location, axis, angle)

	o.Log.Info().
		Str("object", moving.Owner.Name()).
		Float64("degrees", angle*180/math.Pi).
		Msg("edge made parallel")
	o.State.requestRedraw()
	return nil
}

// OrientToPrimary rotates every selected object in place so its local
// +Y axis points at the primary marker. Up stays world +Z, switching
// to +Y for near-vertical bearings. Objects sitting on the marker are
// skipped.
func (o *Ops) OrientToPrimary(selection []Object) error {
	if !o.State.Primary.IsSet() {
		return ErrNoPrimary
	}
	selection = liveSelection(selection)
	if len(selection) == 0 {
		return ErrNoSelection
	}

	target := o.State.Primary.Location
	count := 0
	for _, obj := range selection {
		toMarker := target.Sub(obj.Position())
		if toMarker.Length() < MinPivotDistance {
			continue
		}
		dir := toMarker.Normalize()

		up := geometry.AxisVector(geometry.AxisZ)
		if math.Abs(dir.Z) > 0.99 {
			up = geometry.AxisVector(geometry.AxisY)
		}
		right := dir.Cross(up).Normalize()
		up = right.Cross(dir).Normalize()

		obj.SetWorldMatrix(geometry.Translation(obj.Position()).Mul(geometry.Basis(right, dir, up)))
		count++
	}

	o.Log.Info().Int("objects", count).Msg("selection oriented toward primary marker")
	o.State.requestRedraw()
	return nil
}

// PreviewMoveToSecondary shows the path MoveToSecondary would take
func (o *Ops) PreviewMoveToSecondary() error {
	if err := o.requireBoth(); err != nil {
		return err
	}
	o.Anim.PreviewLine(o.State.Primary.Location, o.State.Secondary.Location, false)
	return nil
}

// PreviewRotateToSecondary shows the sweep RotateToSecondary would
// perform
func (o *Ops) PreviewRotateToSecondary() error {
	if err := o.requireBoth(); err != nil {
		return err
	}
	pivot := o.Cursor()
	angle, ok := angleBetween(pivot, o.State.Primary.Location, o.State.Secondary.Location)
	if !ok {
		return fmt.Errorf("%w: marker too close to the rotation pivot", ErrDegenerate)
	}
	axis := rotationAxis(pivot, o.State.Primary.Location, o.State.Secondary.Location)
	end := geometry.RotationAround(pivot, axis, angle).
		MulPoint(o.State.Primary.Location)
	o.Anim.PreviewRotation(pivot, o.State.Primary.Location, end)
	return nil
}

// PreviewEdgesParallel shows the edge sweep MakeEdgesParallelPrimary
// would perform
func (o *Ops) PreviewEdgesParallel() error {
	if err := o.requireBoth(); err != nil {
		return err
	}
	if !o.State.Primary.OwnerValid() || !o.State.Secondary.OwnerValid() {
		return ErrStaleOwner
	}
	startDir, length, err := edgeAt(&o.State.Primary)
	if err != nil {
		return err
	}
	targetDir, _, err := edgeAt(&o.State.Secondary)
	if err != nil {
		return err
	}
	o.Anim.PreviewEdgeRotation(o.State.Primary.Location, startDir, targetDir, length)
	return nil
}
