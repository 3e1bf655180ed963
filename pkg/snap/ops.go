package snap

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/rs/zerolog"

	"github.com/canopy-cad/canopy/pkg/anim"
	"github.com/canopy-cad/canopy/pkg/geometry"
)

// Precondition errors. A failed precondition performs no mutation;
// hosts surface these as status messages, not hard failures.
var (
	ErrNoPrimary   = errors.New("primary marker not set")
	ErrNoSecondary = errors.New("secondary marker not set")
	ErrStaleOwner  = errors.New("marker object no longer exists")
	ErrDegenerate  = errors.New("degenerate geometry")
	ErrNoSelection = errors.New("no objects selected")
	ErrNeedTwo     = errors.New("at least two objects required")
	ErrNotEdges    = errors.New("both markers must be on edge midpoints")
)

// MinPivotDistance rejects rotations whose marker sits on the pivot
const MinPivotDistance = 0.01

const degenerateEps = 0.001

// Ops bundles the transform operations over a marker state. Each
// operation is synchronous, checks its preconditions up front, and
// leaves every transform untouched on failure.
type Ops struct {
	State *State
	Anim  *anim.Engine
	Log   zerolog.Logger

	// Cursor supplies the host's 3D cursor, the pivot for the
	// marker-to-marker rotations. Defaults to the world origin.
	Cursor func() geometry.Vector3
}

// NewOps creates the operation set for a state/engine pair
func NewOps(state *State, engine *anim.Engine, log zerolog.Logger) *Ops {
	return &Ops{
		State:  state,
		Anim:   engine,
		Log:    log,
		Cursor: func() geometry.Vector3 { return geometry.Vector3{} },
	}
}

// requireBoth checks that both markers are placed
func (o *Ops) requireBoth() error {
	if !o.State.Primary.IsSet() {
		return ErrNoPrimary
	}
	if !o.State.Secondary.IsSet() {
		return ErrNoSecondary
	}
	return nil
}

// liveSelection filters out objects deleted since selection
func liveSelection(selection []Object) []Object {
	out := selection[:0:0]
	for _, obj := range selection {
		if obj != nil && obj.Valid() {
			out = append(out, obj)
		}
	}
	return out
}

// MoveToSecondary translates the primary marker's object so the
// marker lands on the secondary marker; the primary marker follows.
func (o *Ops) MoveToSecondary() error {
	if err := o.requireBoth(); err != nil {
		return err
	}
	if !o.State.Primary.OwnerValid() {
		return ErrStaleOwner
	}

	offset := o.State.Secondary.Location.Sub(o.State.Primary.Location)
	o.State.Primary.Owner.Translate(offset)
	o.State.Primary.Location = o.State.Secondary.Location

	o.Log.Info().Str("object", o.State.Primary.Owner.Name()).Msg("moved to secondary marker")
	o.State.requestRedraw()
	return nil
}

// MoveToPrimary translates the secondary marker's object so the
// marker lands on the primary marker; the secondary marker follows.
func (o *Ops) MoveToPrimary() error {
	if err := o.requireBoth(); err != nil {
		return err
	}
	if !o.State.Secondary.OwnerValid() {
		return ErrStaleOwner
	}

	offset := o.State.Primary.Location.Sub(o.State.Secondary.Location)
	o.State.Secondary.Owner.Translate(offset)
	o.State.Secondary.Location = o.State.Primary.Location

	o.Log.Info().Str("object", o.State.Secondary.Owner.Name()).Msg("moved to primary marker")
	o.State.requestRedraw()
	return nil
}

// SnapSelectionToPrimary moves the selection so its centroid lands
// on the primary marker
func (o *Ops) SnapSelectionToPrimary(selection []Object) error {
	if !o.State.Primary.IsSet() {
		return ErrNoPrimary
	}
	selection = liveSelection(selection)
	if len(selection) == 0 {
		return ErrNoSelection
	}

	var center geometry.Vector3
	for _, obj := range selection {
		center = center.Add(obj.Position())
	}
	center = center.Mul(1.0 / float64(len(selection)))

	offset := o.State.Primary.Location.Sub(center)
	for _, obj := range selection {
		obj.Translate(offset)
	}

	o.Log.Info().Int("objects", len(selection)).Msg("selection snapped to primary marker")
	o.State.requestRedraw()
	return nil
}

// MoveByOffset translates the selection by the secondary−primary
// vector
func (o *Ops) MoveByOffset(selection []Object) error {
	if err := o.requireBoth(); err != nil {
		return err
	}
	selection = liveSelection(selection)
	if len(selection) == 0 {
		return ErrNoSelection
	}

	offset := o.State.Secondary.Location.Sub(o.State.Primary.Location)
	for _, obj := range selection {
		obj.Translate(offset)
	}

	o.Log.Info().
		Int("objects", len(selection)).
		Float64("distance", offset.Length()).
		Msg("selection moved by marker offset")
	o.State.requestRedraw()
	return nil
}

// Swap exchanges the two markers' objects: each object keeps its own
// offset from its marker but takes the other marker's position, and
// the marker labels are exchanged. Triggers the avoidance move pair.
func (o *Ops) Swap() error {
	if err := o.requireBoth(); err != nil {
		return err
	}
	if !o.State.Primary.OwnerValid() || !o.State.Secondary.OwnerValid() {
		return ErrStaleOwner
	}

	primary := &o.State.Primary
	secondary := &o.State.Secondary

	o.Anim.SwapMarkers(primary.Location, secondary.Location)

	// Each object keeps its own offset from its marker, so markers on
	// edge midpoints or face centers land exactly after the swap
	primary.Owner.Translate(secondary.Location.Sub(primary.Location))
	secondary.Owner.Translate(primary.Location.Sub(secondary.Location))

	primary.Owner, secondary.Owner = secondary.Owner, primary.Owner
	primary.Kind, secondary.Kind = secondary.Kind, primary.Kind

	o.Log.Info().Msg("marker objects swapped")
	o.State.requestRedraw()
	return nil
}

// AlignToAxis sets every selected object's coordinate on the axis to
// the primary marker's coordinate
func (o *Ops) AlignToAxis(axis geometry.Axis, selection []Object) error {
	if !o.State.Primary.IsSet() {
		return ErrNoPrimary
	}
	selection = liveSelection(selection)
	if len(selection) == 0 {
		return ErrNoSelection
	}

	reference := o.State.Primary.Location.Component(axis)
	for _, obj := range selection {
		pos := obj.Position()
		obj.Translate(pos.WithComponent(axis, reference).Sub(pos))
	}

	o.Log.Info().
		Int("objects", len(selection)).
		Stringer("axis", axis).
		Msg("selection aligned")
	o.State.requestRedraw()
	return nil
}

// DistributeLinear spaces the selection evenly along the segment
// from the primary to the secondary marker, preserving the order of
// current distance from the primary
func (o *Ops) DistributeLinear(selection []Object) error {
	if err := o.requireBoth(); err != nil {
		return err
	}
	selection = liveSelection(selection)
	if len(selection) < 2 {
		return ErrNeedTwo
	}

	primary := o.State.Primary.Location
	sort.SliceStable(selection, func(i, j int) bool {
		return selection[i].Position().Distance(primary) < selection[j].Position().Distance(primary)
	})

	step := o.State.Secondary.Location.Sub(primary).Mul(1.0 / float64(len(selection)-1))
	for i, obj := range selection {
		target := primary.Add(step.Mul(float64(i)))
		obj.Translate(target.Sub(obj.Position()))
	}

	o.Log.Info().Int("objects", len(selection)).Msg("selection distributed linearly")
	o.State.requestRedraw()
	return nil
}

// DistributeCircular places the selection on a circle around the
// primary marker in the XY plane, using the mean current distance as
// the radius
func (o *Ops) DistributeCircular(selection []Object) error {
	if !o.State.Primary.IsSet() {
		return ErrNoPrimary
	}
	selection = liveSelection(selection)
	if len(selection) < 2 {
		return ErrNeedTwo
	}

	primary := o.State.Primary.Location

	radius := 0.0
	for _, obj := range selection {
		radius += obj.Position().Distance(primary)
	}
	radius /= float64(len(selection))
	if radius < degenerateEps {
		radius = 1.0
	}

	angleStep := 2 * math.Pi / float64(len(selection))
	for i, obj := range selection {
		angle := angleStep * float64(i)
		target := primary.Add(geometry.NewVector3(
			math.Cos(angle)*radius,
			math.Sin(angle)*radius,
			0,
		))
		obj.Translate(target.Sub(obj.Position()))
	}

	o.Log.Info().
		Int("objects", len(selection)).
		Float64("radius", radius).
		Msg("selection distributed in a circle")
	o.State.requestRedraw()
	return nil
}

// DistributeGrid places the selection on a rectangular grid in the
// XY plane anchored at the primary marker
func (o *Ops) DistributeGrid(selection []Object, columns int, spacing float64) error {
	if !o.State.Primary.IsSet() {
		return ErrNoPrimary
	}
	if columns < 1 {
		return fmt.Errorf("%w: grid needs at least one column", ErrDegenerate)
	}
	selection = liveSelection(selection)
	if len(selection) == 0 {
		return ErrNoSelection
	}

	primary := o.State.Primary.Location
	for i, obj := range selection {
		col := i % columns
		row := i / columns
		target := primary.Add(geometry.NewVector3(
			float64(col)*spacing,
			float64(row)*spacing,
			0,
		))
		obj.Translate(target.Sub(obj.Position()))
	}

	o.Log.Info().
		Int("objects", len(selection)).
		Int("columns", columns).
		Msg("selection distributed on a grid")
	o.State.requestRedraw()
	return nil
}
