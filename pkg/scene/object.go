package scene

import (
	"github.com/canopy-cad/canopy/pkg/geometry"
)

// Object is a mesh placed in the scene with a world transform.
// Objects are handed out by reference; removing one from its scene
// marks it invalid rather than freeing it, so stale references held
// elsewhere (e.g. by snap markers) can be detected.
type Object struct {
	name     string
	mesh     *Mesh
	world    geometry.Mat4
	selected bool
	removed  bool
}

// NewObject creates an object at the world origin
func NewObject(name string, mesh *Mesh) *Object {
	return &Object{
		name:  name,
		mesh:  mesh,
		world: geometry.Identity(),
	}
}

// Name returns the object name
func (o *Object) Name() string { return o.name }

// Mesh returns the object's mesh
func (o *Object) Mesh() *Mesh { return o.mesh }

// SetMesh replaces the object's mesh, keeping its transform. Used
// when a watched model file changes on disk.
func (o *Object) SetMesh(m *Mesh) { o.mesh = m }

// Valid reports whether the object is still part of its scene
func (o *Object) Valid() bool { return o != nil && !o.removed }

// Position returns the object's world-space origin
func (o *Object) Position() geometry.Vector3 {
	return o.world.Translation()
}

// Translate moves the object by delta in world space
func (o *Object) Translate(delta geometry.Vector3) {
	o.world = geometry.Translation(delta).Mul(o.world)
}

// SetPosition places the object's origin at the given world point
func (o *Object) SetPosition(p geometry.Vector3) {
	o.Translate(p.Sub(o.Position()))
}

// WorldMatrix returns the object's world transform
func (o *Object) WorldMatrix() geometry.Mat4 { return o.world }

// SetWorldMatrix replaces the object's world transform
func (o *Object) SetWorldMatrix(m geometry.Mat4) { o.world = m }

// Selected reports whether the object is in the current selection
func (o *Object) Selected() bool { return o.selected }

// SetSelected marks the object as selected
func (o *Object) SetSelected(sel bool) { o.selected = sel }

// Vertices returns all mesh vertices in world space
func (o *Object) Vertices() []geometry.Vector3 {
	out := make([]geometry.Vector3, len(o.mesh.Vertices))
	for i, v := range o.mesh.Vertices {
		out[i] = o.world.MulPoint(v)
	}
	return out
}

// EdgeMidpoints returns all edge midpoints in world space
func (o *Object) EdgeMidpoints() []geometry.Vector3 {
	out := make([]geometry.Vector3, len(o.mesh.Edges))
	for i := range o.mesh.Edges {
		out[i] = o.world.MulPoint(o.mesh.EdgeMidpoint(i))
	}
	return out
}

// FaceCenters returns all face centroids in world space
func (o *Object) FaceCenters() []geometry.Vector3 {
	out := make([]geometry.Vector3, len(o.mesh.Faces))
	for i := range o.mesh.Faces {
		out[i] = o.world.MulPoint(o.mesh.FaceCenter(i))
	}
	return out
}

// ClosestEdgeDirection finds the mesh edge whose world-space midpoint
// is closest to pos and returns its normalized direction and length.
// ok is false when the mesh has no edges.
func (o *Object) ClosestEdgeDirection(pos geometry.Vector3) (dir geometry.Vector3, length float64, ok bool) {
	best := -1
	bestDist := 0.0
	for i := range o.mesh.Edges {
		mid := o.world.MulPoint(o.mesh.EdgeMidpoint(i))
		d := mid.Distance(pos)
		if best < 0 || d < bestDist {
			best = i
			bestDist = d
		}
	}
	if best < 0 {
		return geometry.Vector3{}, 0, false
	}
	e := o.mesh.Edges[best]
	v1 := o.world.MulPoint(o.mesh.Vertices[e[0]])
	v2 := o.world.MulPoint(o.mesh.Vertices[e[1]])
	span := v2.Sub(v1)
	return span.Normalize(), span.Length(), true
}
