// Package snap implements the reference-marker core: picking mesh
// elements under the cursor, the primary/secondary marker state with
// bounded history, and the transform operations that position
// objects relative to the markers.
package snap

import (
	"github.com/canopy-cad/canopy/pkg/geometry"
)

// ElementKind classifies the mesh feature a marker was snapped to
type ElementKind int

const (
	ElementVertex ElementKind = iota
	ElementEdge
	ElementFace
)

// String returns a human-readable element kind name
func (k ElementKind) String() string {
	switch k {
	case ElementVertex:
		return "vertex"
	case ElementEdge:
		return "edge"
	case ElementFace:
		return "face"
	}
	return "unknown"
}

// Object is the host scene object a marker can own. Objects may be
// deleted externally at any time; Valid must be checked before the
// object is read or mutated.
type Object interface {
	Name() string
	Valid() bool

	Position() geometry.Vector3
	Translate(delta geometry.Vector3)
	WorldMatrix() geometry.Mat4
	SetWorldMatrix(m geometry.Mat4)

	// World-space mesh element queries
	Vertices() []geometry.Vector3
	EdgeMidpoints() []geometry.Vector3
	FaceCenters() []geometry.Vector3
	ClosestEdgeDirection(pos geometry.Vector3) (dir geometry.Vector3, length float64, ok bool)
}

// Projector is the host's 3D→2D projection. ok is false when the
// point is off-screen or behind the camera.
type Projector interface {
	Project(world geometry.Vector3) (screen geometry.Vector2, ok bool)
}

// Marker is one of the two named reference points. Location and
// Owner are set together or not at all.
type Marker struct {
	Location geometry.Vector3
	Owner    Object
	Kind     ElementKind

	set bool
}

// IsSet reports whether the marker has been placed
func (m *Marker) IsSet() bool { return m.set }

// OwnerValid reports whether the marker is placed and its owning
// object still exists in the scene
func (m *Marker) OwnerValid() bool {
	return m.set && m.Owner != nil && m.Owner.Valid()
}

// clear unsets the marker
func (m *Marker) clear() {
	*m = Marker{}
}
