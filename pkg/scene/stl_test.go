package scene

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canopy-cad/canopy/pkg/geometry"
)

const asciiTriangle = `solid test
  facet normal 0 0 1
    outer loop
      vertex 0 0 0
      vertex 1 0 0
      vertex 0 1 0
    endloop
  endfacet
  facet normal 0 0 1
    outer loop
      vertex 1 0 0
      vertex 1 1 0
      vertex 0 1 0
    endloop
  endfacet
endsolid test
`

func TestLoadSTLASCII(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quad.stl")
	require.NoError(t, os.WriteFile(path, []byte(asciiTriangle), 0o644))

	obj, err := LoadSTL(path)
	require.NoError(t, err)

	assert.Equal(t, "quad", obj.Name())
	mesh := obj.Mesh()
	assert.Len(t, mesh.Vertices, 4, "shared vertices are merged")
	assert.Len(t, mesh.Faces, 2)
	assert.Len(t, mesh.Edges, 5)
}

func TestLoadSTLBinary(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(make([]byte, 80)) // header
	binary.Write(&buf, binary.LittleEndian, uint32(1))

	writeVec := func(x, y, z float32) {
		binary.Write(&buf, binary.LittleEndian, x)
		binary.Write(&buf, binary.LittleEndian, y)
		binary.Write(&buf, binary.LittleEndian, z)
	}
	writeVec(0, 0, 1) // normal
	writeVec(0, 0, 0)
	writeVec(1, 0, 0)
	writeVec(0, 1, 0)
	binary.Write(&buf, binary.LittleEndian, uint16(0)) // attributes

	path := filepath.Join(t.TempDir(), "tri.stl")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	obj, err := LoadSTL(path)
	require.NoError(t, err)

	mesh := obj.Mesh()
	require.Len(t, mesh.Faces, 1)
	assert.Len(t, mesh.Vertices, 3)
	assert.Equal(t, geometry.NewVector3(1, 0, 0), mesh.Vertices[1])
}

func TestLoadSTLMissingFile(t *testing.T) {
	_, err := LoadSTL(filepath.Join(t.TempDir(), "nope.stl"))
	assert.Error(t, err)
}

func TestLoadSTLReloadKeepsTransform(t *testing.T) {
	path := filepath.Join(t.TempDir(), "part.stl")
	require.NoError(t, os.WriteFile(path, []byte(asciiTriangle), 0o644))

	obj, err := LoadSTL(path)
	require.NoError(t, err)
	obj.Translate(geometry.NewVector3(5, 0, 0))

	reloaded, err := LoadSTL(path)
	require.NoError(t, err)
	obj.SetMesh(reloaded.Mesh())

	// The transform survives a mesh swap
	assert.Equal(t, geometry.NewVector3(5, 0, 0), obj.Position())
	for _, v := range obj.Vertices() {
		assert.False(t, math.IsNaN(v.X))
		assert.GreaterOrEqual(t, v.X, 5.0)
	}
}
