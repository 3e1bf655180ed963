package snap

import (
	"github.com/rs/zerolog"

	"github.com/canopy-cad/canopy/pkg/anim"
	"github.com/canopy-cad/canopy/pkg/geometry"
)

// State holds the two reference markers, their bounded history, and
// the transient display values the animation engine writes between
// frames. One State is created per session and passed explicitly to
// the operations and the renderer.
//
// All access is main-thread only: click handling, operations and the
// animation tick are interleaved on the host's UI thread.
type State struct {
	Primary   Marker
	Secondary Marker

	history []snapshot
	cursor  int // ≤ 0; 0 means "at the latest state"
	pending snapshot

	primaryDrawPos   *geometry.Vector3
	secondaryDrawPos *geometry.Vector3
	primaryScale     float64
	secondaryScale   float64

	redraw anim.Redrawer
	log    zerolog.Logger
}

// NewState creates an empty marker state
func NewState(redraw anim.Redrawer, log zerolog.Logger) *State {
	return &State{
		primaryScale:   1.0,
		secondaryScale: 1.0,
		redraw:         redraw,
		log:            log,
	}
}

// Reset clears both markers, the history, and the transient display
// state. Global settings are untouched.
func (s *State) Reset() {
	s.Primary.clear()
	s.Secondary.clear()
	s.history = nil
	s.cursor = 0
	s.pending = snapshot{}
	s.ClearDrawPositions()
	s.primaryScale = 1.0
	s.secondaryScale = 1.0
	s.requestRedraw()
}

// Place handles one successful pick: location/kind on obj becomes
// the new primary marker, with the previous primary demoted to
// secondary. The previous pair is snapshotted first, and the
// matching feedback animations are enqueued on e.
func (s *State) Place(e *anim.Engine, obj Object, location geometry.Vector3, kind ElementKind) {
	hadPrimary := s.Primary.IsSet()
	hadSecondary := s.Secondary.IsSet()

	if hadPrimary {
		s.SaveState()
	}

	oldPrimary := s.Primary
	oldSecondary := s.Secondary

	if hadPrimary {
		s.Secondary = oldPrimary
	}
	s.Primary = Marker{Location: location, Owner: obj, Kind: kind, set: true}

	switch {
	case !hadPrimary:
		// First placement: the new marker bounces in place
		e.Bounce(true)

	case !hadSecondary:
		// Second placement: primary slides to the clicked point, the
		// inherited secondary bounces where it appeared
		e.MoveMarker(oldPrimary.Location, location, true, 0)
		e.Bounce(false)

	default:
		// Steady state: both markers travel, each bowing around the
		// other's path, secondary slightly staggered
		now := e.Now()
		e.Add(anim.NewAvoidingMove(now,
			oldPrimary.Location, location,
			oldSecondary.Location, oldPrimary.Location,
			true, 0))
		e.Add(anim.NewAvoidingMove(now,
			oldSecondary.Location, oldPrimary.Location,
			oldPrimary.Location, location,
			false, anim.SecondaryDelay))
	}

	s.log.Debug().
		Str("object", obj.Name()).
		Stringer("kind", kind).
		Msg("marker placed")
	s.requestRedraw()
}

// DrawPosition returns where a marker should currently be rendered:
// the animated display position while a move is live, otherwise the
// committed location. ok is false when the marker is unset.
func (s *State) DrawPosition(isPrimary bool) (geometry.Vector3, bool) {
	if isPrimary {
		if !s.Primary.IsSet() {
			return geometry.Vector3{}, false
		}
		if s.primaryDrawPos != nil {
			return *s.primaryDrawPos, true
		}
		return s.Primary.Location, true
	}
	if !s.Secondary.IsSet() {
		return geometry.Vector3{}, false
	}
	if s.secondaryDrawPos != nil {
		return *s.secondaryDrawPos, true
	}
	return s.Secondary.Location, true
}

// BounceScale returns the marker's current display scale factor
func (s *State) BounceScale(isPrimary bool) float64 {
	if isPrimary {
		return s.primaryScale
	}
	return s.secondaryScale
}

// ClearDrawPositions drops the animated display positions so markers
// render at their committed locations. Part of anim.DisplaySink.
func (s *State) ClearDrawPositions() {
	s.primaryDrawPos = nil
	s.secondaryDrawPos = nil
}

// SetDrawPosition sets a marker's animated display position.
// Part of anim.DisplaySink.
func (s *State) SetDrawPosition(isPrimary bool, pos geometry.Vector3) {
	if isPrimary {
		s.primaryDrawPos = &pos
	} else {
		s.secondaryDrawPos = &pos
	}
}

// SetBounceScale sets a marker's display scale factor.
// Part of anim.DisplaySink.
func (s *State) SetBounceScale(isPrimary bool, scale float64) {
	if isPrimary {
		s.primaryScale = scale
	} else {
		s.secondaryScale = scale
	}
}

func (s *State) requestRedraw() {
	if s.redraw != nil {
		s.redraw.RequestRedraw()
	}
}
