package scene

import (
	"github.com/canopy-cad/canopy/pkg/geometry"
)

// Scene owns the set of objects the user can place markers on
type Scene struct {
	objects []*Object
}

// New creates an empty scene
func New() *Scene {
	return &Scene{}
}

// Add inserts an object into the scene
func (s *Scene) Add(obj *Object) {
	s.objects = append(s.objects, obj)
}

// Remove takes an object out of the scene and invalidates it
func (s *Scene) Remove(obj *Object) {
	for i, o := range s.objects {
		if o == obj {
			s.objects = append(s.objects[:i], s.objects[i+1:]...)
			obj.removed = true
			return
		}
	}
}

// Objects returns the scene contents in insertion order
func (s *Scene) Objects() []*Object {
	return s.objects
}

// Selected returns the currently selected objects in insertion order
func (s *Scene) Selected() []*Object {
	var out []*Object
	for _, o := range s.objects {
		if o.selected {
			out = append(out, o)
		}
	}
	return out
}

// ClearSelection deselects every object
func (s *Scene) ClearSelection() {
	for _, o := range s.objects {
		o.selected = false
	}
}

// BoundingBox returns the world-space bounds of all objects
func (s *Scene) BoundingBox() (min, max geometry.Vector3) {
	first := true
	for _, o := range s.objects {
		for _, v := range o.Vertices() {
			if first {
				min, max = v, v
				first = false
				continue
			}
			min = min.Min(v)
			max = max.Max(v)
		}
	}
	return min, max
}
