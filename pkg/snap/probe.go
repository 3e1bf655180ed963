package snap

import (
	"github.com/canopy-cad/canopy/pkg/geometry"
)

// DetectionMode restricts which mesh element kinds the probe tests
type DetectionMode int

const (
	DetectAll DetectionMode = iota
	DetectVertex
	DetectEdge
	DetectFace
)

// String returns the mode name used in config files
func (m DetectionMode) String() string {
	switch m {
	case DetectVertex:
		return "vertex"
	case DetectEdge:
		return "edge"
	case DetectFace:
		return "face"
	}
	return "all"
}

// ParseDetectionMode maps a config string to a mode; unknown values
// fall back to DetectAll
func ParseDetectionMode(s string) DetectionMode {
	switch s {
	case "vertex":
		return DetectVertex
	case "edge":
		return DetectEdge
	case "face":
		return DetectFace
	}
	return DetectAll
}

func (m DetectionMode) wants(k ElementKind) bool {
	switch m {
	case DetectAll:
		return true
	case DetectVertex:
		return k == ElementVertex
	case DetectEdge:
		return k == ElementEdge
	case DetectFace:
		return k == ElementFace
	}
	return false
}

// FindClosest scans the object's vertices, edge midpoints and face
// centers for the candidate whose screen projection is nearest the
// cursor, within threshold pixels. Candidates that project behind
// the camera or off-screen are skipped. Ties between kinds resolve
// in evaluation order: vertex, then edge, then face. ok is false
// when nothing is within the threshold.
//
// The scan is linear in the mesh element count; fine for interactive
// picking, no spatial index.
func FindClosest(obj Object, cursor geometry.Vector2, view Projector, mode DetectionMode, threshold float64) (point geometry.Vector3, kind ElementKind, ok bool) {
	if obj == nil || !obj.Valid() {
		return geometry.Vector3{}, 0, false
	}

	bestDist := threshold
	found := false

	test := func(points []geometry.Vector3, k ElementKind) {
		if !mode.wants(k) {
			return
		}
		for _, p := range points {
			screen, visible := view.Project(p)
			if !visible {
				continue
			}
			dist := cursor.Distance(screen)
			if dist < bestDist {
				bestDist = dist
				point = p
				kind = k
				found = true
			}
		}
	}

	test(obj.Vertices(), ElementVertex)
	test(obj.EdgeMidpoints(), ElementEdge)
	test(obj.FaceCenters(), ElementFace)

	return point, kind, found
}
