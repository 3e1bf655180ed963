package scene

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/canopy-cad/canopy/pkg/geometry"
)

// LoadSTL reads an STL file and returns an object named after the
// file. ASCII and binary formats are detected automatically.
func LoadSTL(filename string) (*Object, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	header := make([]byte, 6)
	n, err := file.Read(header)
	if err != nil {
		return nil, fmt.Errorf("failed to read file header: %w", err)
	}
	if _, err := file.Seek(0, 0); err != nil {
		return nil, fmt.Errorf("failed to reset file pointer: %w", err)
	}

	var mesh *Mesh
	if n >= 5 && strings.HasPrefix(string(header[:5]), "solid") {
		mesh, err = parseASCII(file)
	} else {
		mesh, err = parseBinary(file)
	}
	if err != nil {
		return nil, err
	}

	name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	return NewObject(name, mesh), nil
}

// parseASCII parses an ASCII STL stream
func parseASCII(reader io.Reader) (*Mesh, error) {
	scanner := bufio.NewScanner(reader)
	builder := newMeshBuilder()

	var vertices []geometry.Vector3

	for scanner.Scan() {
		fields := strings.Fields(strings.TrimSpace(scanner.Text()))
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "vertex":
			if len(fields) >= 4 {
				x, _ := strconv.ParseFloat(fields[1], 64)
				y, _ := strconv.ParseFloat(fields[2], 64)
				z, _ := strconv.ParseFloat(fields[3], 64)
				vertices = append(vertices, geometry.NewVector3(x, y, z))
			}

		case "endfacet":
			if len(vertices) == 3 {
				builder.AddTriangle(vertices[0], vertices[1], vertices[2])
			}
			vertices = vertices[:0]
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading ASCII STL: %w", err)
	}
	return builder.mesh, nil
}

// parseBinary parses a binary STL stream
func parseBinary(reader io.Reader) (*Mesh, error) {
	header := make([]byte, 80)
	if _, err := io.ReadFull(reader, header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	var count uint32
	if err := binary.Read(reader, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("failed to read triangle count: %w", err)
	}

	builder := newMeshBuilder()
	buf := make([]byte, 50) // normal + 3 vertices + attribute count

	for i := uint32(0); i < count; i++ {
		if _, err := io.ReadFull(reader, buf); err != nil {
			return nil, fmt.Errorf("failed to read triangle %d: %w", i, err)
		}
		// Skip the 12-byte normal; probe queries never use it
		v1 := readVector3(buf[12:])
		v2 := readVector3(buf[24:])
		v3 := readVector3(buf[36:])
		builder.AddTriangle(v1, v2, v3)
	}

	return builder.mesh, nil
}

func readVector3(b []byte) geometry.Vector3 {
	return geometry.NewVector3(
		float64(math.Float32frombits(binary.LittleEndian.Uint32(b[0:]))),
		float64(math.Float32frombits(binary.LittleEndian.Uint32(b[4:]))),
		float64(math.Float32frombits(binary.LittleEndian.Uint32(b[8:]))),
	)
}

// UnitCube returns a 2×2×2 cube mesh centered on the origin,
// useful as a default object when no model file is given.
func UnitCube() *Mesh {
	b := newMeshBuilder()
	v := func(x, y, z float64) geometry.Vector3 { return geometry.NewVector3(x, y, z) }
	quads := [][4]geometry.Vector3{
		{v(-1, -1, -1), v(1, -1, -1), v(1, 1, -1), v(-1, 1, -1)},
		{v(-1, -1, 1), v(1, -1, 1), v(1, 1, 1), v(-1, 1, 1)},
		{v(-1, -1, -1), v(-1, 1, -1), v(-1, 1, 1), v(-1, -1, 1)},
		{v(1, -1, -1), v(1, 1, -1), v(1, 1, 1), v(1, -1, 1)},
		{v(-1, -1, -1), v(1, -1, -1), v(1, -1, 1), v(-1, -1, 1)},
		{v(-1, 1, -1), v(1, 1, -1), v(1, 1, 1), v(-1, 1, 1)},
	}
	for _, q := range quads {
		b.AddTriangle(q[0], q[1], q[2])
		b.AddTriangle(q[0], q[2], q[3])
	}
	return b.mesh
}
