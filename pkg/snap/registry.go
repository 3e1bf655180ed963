package snap

import (
	"math"

	"github.com/canopy-cad/canopy/pkg/geometry"
)

// Grid distribution defaults used when the host passes no overrides
const (
	DefaultGridColumns = 3
	DefaultGridSpacing = 2.0
)

// Descriptor is one registry entry: a stable ID for key bindings, a
// menu label, an availability poll and the operation itself.
type Descriptor struct {
	ID    string
	Label string
	Poll  func(o *Ops, selection []Object) bool
	Run   func(o *Ops, selection []Object) error
}

func pollPrimary(o *Ops, _ []Object) bool {
	return o.State.Primary.IsSet()
}

func pollBoth(o *Ops, _ []Object) bool {
	return o.State.Primary.IsSet() && o.State.Secondary.IsSet()
}

func pollPrimaryAndSelection(o *Ops, selection []Object) bool {
	return o.State.Primary.IsSet() && len(liveSelection(selection)) > 0
}

func pollBothAndSelection(o *Ops, selection []Object) bool {
	return pollBoth(o, nil) && len(liveSelection(selection)) > 0
}

func pollSecondaryAndSelection(o *Ops, selection []Object) bool {
	return o.State.Secondary.IsSet() && len(liveSelection(selection)) > 0
}

func pollBothEdges(o *Ops, _ []Object) bool {
	return pollBoth(o, nil) &&
		o.State.Primary.Kind == ElementEdge &&
		o.State.Secondary.Kind == ElementEdge
}

// Operations is the full registry in menu order. The slice is static;
// hosts index it by Descriptor.ID for key bindings.
var Operations = []Descriptor{
	{
		ID:    "move_to_secondary",
		Label: "Move to Secondary",
		Poll:  pollBoth,
		Run:   func(o *Ops, _ []Object) error { return o.MoveToSecondary() },
	},
	{
		ID:    "move_to_primary",
		Label: "Move to Primary",
		Poll:  pollBoth,
		Run:   func(o *Ops, _ []Object) error { return o.MoveToPrimary() },
	},
	{
		ID:    "snap_selection",
		Label: "Snap Selection to Primary",
		Poll:  pollPrimaryAndSelection,
		Run:   func(o *Ops, sel []Object) error { return o.SnapSelectionToPrimary(sel) },
	},
	{
		ID:    "move_by_offset",
		Label: "Move Selection by Marker Offset",
		Poll:  pollBothAndSelection,
		Run:   func(o *Ops, sel []Object) error { return o.MoveByOffset(sel) },
	},
	{
		ID:    "swap",
		Label: "Swap Marker Objects",
		Poll:  pollBoth,
		Run:   func(o *Ops, _ []Object) error { return o.Swap() },
	},
	{
		ID:    "align_x",
		Label: "Align Selection on X",
		Poll:  pollPrimaryAndSelection,
		Run:   func(o *Ops, sel []Object) error { return o.AlignToAxis(geometry.AxisX, sel) },
	},
	{
		ID:    "align_y",
		Label: "Align Selection on Y",
		Poll:  pollPrimaryAndSelection,
		Run:   func(o *Ops, sel []Object) error { return o.AlignToAxis(geometry.AxisY, sel) },
	},
	{
		ID:    "align_z",
		Label: "Align Selection on Z",
		Poll:  pollPrimaryAndSelection,
		Run:   func(o *Ops, sel []Object) error { return o.AlignToAxis(geometry.AxisZ, sel) },
	},
	{
		ID:    "distribute_linear",
		Label: "Distribute Between Markers",
		Poll:  pollBothAndSelection,
		Run:   func(o *Ops, sel []Object) error { return o.DistributeLinear(sel) },
	},
	{
		ID:    "distribute_circular",
		Label: "Distribute in Circle",
		Poll:  pollPrimaryAndSelection,
		Run:   func(o *Ops, sel []Object) error { return o.DistributeCircular(sel) },
	},
	{
		ID:    "distribute_grid",
		Label: "Distribute on Grid",
		Poll:  pollPrimaryAndSelection,
		Run: func(o *Ops, sel []Object) error {
			return o.DistributeGrid(sel, DefaultGridColumns, DefaultGridSpacing)
		},
	},
	{
		ID:    "rotate_to_secondary",
		Label: "Rotate to Secondary",
		Poll:  pollBoth,
		Run:   func(o *Ops, _ []Object) error { return o.RotateToSecondary() },
	},
	{
		ID:    "rotate_to_primary",
		Label: "Rotate to Primary",
		Poll:  pollBoth,
		Run:   func(o *Ops, _ []Object) error { return o.RotateToPrimary() },
	},
	{
		ID:    "edges_parallel_primary",
		Label: "Make Primary Edge Parallel",
		Poll:  pollBothEdges,
		Run:   func(o *Ops, _ []Object) error { return o.MakeEdgesParallelPrimary() },
	},
	{
		ID:    "edges_parallel_secondary",
		Label: "Make Secondary Edge Parallel",
		Poll:  pollBothEdges,
		Run:   func(o *Ops, _ []Object) error { return o.MakeEdgesParallelSecondary() },
	},
	{
		ID:    "rotate_selection_ccw",
		Label: "Rotate Selection 90° CCW",
		Poll:  pollPrimaryAndSelection,
		Run: func(o *Ops, sel []Object) error {
			return o.RotateAroundPrimary(sel, geometry.AxisZ, math.Pi/2)
		},
	},
	{
		ID:    "rotate_selection_cw",
		Label: "Rotate Selection 90° CW",
		Poll:  pollPrimaryAndSelection,
		Run: func(o *Ops, sel []Object) error {
			return o.RotateAroundPrimary(sel, geometry.AxisZ, -math.Pi/2)
		},
	},
	{
		ID:    "rotate_secondary_ccw",
		Label: "Rotate Selection 90° CCW (Secondary)",
		Poll:  pollSecondaryAndSelection,
		Run: func(o *Ops, sel []Object) error {
			return o.RotateAroundSecondary(sel, geometry.AxisZ, math.Pi/2)
		},
	},
	{
		ID:    "rotate_secondary_cw",
		Label: "Rotate Selection 90° CW (Secondary)",
		Poll:  pollSecondaryAndSelection,
		Run: func(o *Ops, sel []Object) error {
			return o.RotateAroundSecondary(sel, geometry.AxisZ, -math.Pi/2)
		},
	},
	{
		ID:    "orient_to_primary",
		Label: "Orient Selection to Primary",
		Poll:  pollPrimaryAndSelection,
		Run:   func(o *Ops, sel []Object) error { return o.OrientToPrimary(sel) },
	},
}

// Lookup returns the descriptor with the given ID
func Lookup(id string) (Descriptor, bool) {
	for _, d := range Operations {
		if d.ID == id {
			return d, true
		}
	}
	return Descriptor{}, false
}
