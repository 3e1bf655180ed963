package scene

import (
	"github.com/canopy-cad/canopy/pkg/geometry"
)

// Mesh is an indexed triangle mesh in object-local coordinates.
// Vertices are deduplicated and edges are unique and undirected, so
// element queries (vertices, edge midpoints, face centers) enumerate
// each feature exactly once.
type Mesh struct {
	Vertices []geometry.Vector3
	Edges    [][2]int
	Faces    [][3]int
}

type vertexKey struct {
	x, y, z float64
}

// meshBuilder accumulates triangles into an indexed mesh
type meshBuilder struct {
	mesh    *Mesh
	indexOf map[vertexKey]int
	edges   map[[2]int]struct{}
}

func newMeshBuilder() *meshBuilder {
	return &meshBuilder{
		mesh:    &Mesh{},
		indexOf: make(map[vertexKey]int),
		edges:   make(map[[2]int]struct{}),
	}
}

func (b *meshBuilder) vertex(v geometry.Vector3) int {
	key := vertexKey{v.X, v.Y, v.Z}
	if idx, ok := b.indexOf[key]; ok {
		return idx
	}
	idx := len(b.mesh.Vertices)
	b.mesh.Vertices = append(b.mesh.Vertices, v)
	b.indexOf[key] = idx
	return idx
}

func (b *meshBuilder) edge(a, c int) {
	if a > c {
		a, c = c, a
	}
	key := [2]int{a, c}
	if _, ok := b.edges[key]; ok {
		return
	}
	b.edges[key] = struct{}{}
	b.mesh.Edges = append(b.mesh.Edges, key)
}

// AddTriangle adds one triangle, merging shared vertices and edges
func (b *meshBuilder) AddTriangle(v1, v2, v3 geometry.Vector3) {
	i1 := b.vertex(v1)
	i2 := b.vertex(v2)
	i3 := b.vertex(v3)
	b.mesh.Faces = append(b.mesh.Faces, [3]int{i1, i2, i3})
	b.edge(i1, i2)
	b.edge(i2, i3)
	b.edge(i3, i1)
}

// EdgeMidpoint returns the midpoint of edge i in local coordinates
func (m *Mesh) EdgeMidpoint(i int) geometry.Vector3 {
	e := m.Edges[i]
	return m.Vertices[e[0]].Add(m.Vertices[e[1]]).Mul(0.5)
}

// FaceCenter returns the centroid of face i in local coordinates
func (m *Mesh) FaceCenter(i int) geometry.Vector3 {
	f := m.Faces[i]
	return m.Vertices[f[0]].Add(m.Vertices[f[1]]).Add(m.Vertices[f[2]]).Mul(1.0 / 3.0)
}

// BoundingBox returns the local-space bounds of the mesh
func (m *Mesh) BoundingBox() (min, max geometry.Vector3) {
	if len(m.Vertices) == 0 {
		return geometry.Vector3{}, geometry.Vector3{}
	}
	min = m.Vertices[0]
	max = m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		min = min.Min(v)
		max = max.Max(v)
	}
	return min, max
}
