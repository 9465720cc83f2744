// Package stl reads ASCII and binary STL files into single-part meshes.
package stl

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/philipparndt/robomap/pkg/geometry"
	"github.com/philipparndt/robomap/pkg/mesh"
)

const (
	binaryHeaderSize   = 80
	binaryTriangleSize = 50
)

// Parse reads an STL file and returns a Model with one part.
// It automatically detects whether the file is ASCII or binary format.
func Parse(filename string) (*mesh.Model, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	model, err := ParseBytes(data)
	if err != nil {
		return nil, err
	}
	model.Source = filename
	if model.Name == "" {
		model.Name = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	}
	return model, nil
}

// ParseBytes parses STL content held in memory
func ParseBytes(data []byte) (*mesh.Model, error) {
	if isASCII(data) {
		return parseASCII(bytes.NewReader(data))
	}
	return parseBinary(bytes.NewReader(data))
}

// isASCII reports whether data looks like ASCII STL. Some exporters write
// "solid" into binary headers, so a size that matches the binary layout wins.
func isASCII(data []byte) bool {
	if !bytes.HasPrefix(data, []byte("solid")) {
		return false
	}
	if len(data) >= binaryHeaderSize+4 {
		count := binary.LittleEndian.Uint32(data[binaryHeaderSize : binaryHeaderSize+4])
		if int64(len(data)) == int64(binaryHeaderSize+4)+int64(count)*binaryTriangleSize {
			return false
		}
	}
	return true
}

// parseASCII parses an ASCII STL file
func parseASCII(reader io.Reader) (*mesh.Model, error) {
	scanner := bufio.NewScanner(reader)
	model := mesh.NewModel("")
	part := mesh.NewPart("")

	var vertices []geometry.Vector3
	line := 0

	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "solid":
			if len(fields) > 1 {
				model.Name = strings.Join(fields[1:], " ")
				part.Name = model.Name
			}

		case "vertex":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: vertex needs 3 coordinates", line)
			}
			v, err := parseCoords(fields[1:4])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			vertices = append(vertices, v)

		case "endfacet":
			if len(vertices) != 3 {
				return nil, fmt.Errorf("line %d: facet has %d vertices, expected 3", line, len(vertices))
			}
			part.AddTriangle(geometry.NewTriangle(vertices[0], vertices[1], vertices[2]))
			vertices = vertices[:0]
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading ASCII STL: %w", err)
	}

	model.AddPart(part)
	return model, nil
}

func parseCoords(fields []string) (geometry.Vector3, error) {
	var c [3]float64
	for i, f := range fields {
		value, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return geometry.Vector3{}, fmt.Errorf("invalid coordinate %q: %w", f, err)
		}
		c[i] = value
	}
	return geometry.NewVector3(c[0], c[1], c[2]), nil
}

// binaryFacet mirrors the 50 byte on-disk triangle record
type binaryFacet struct {
	Normal     [3]float32
	V1, V2, V3 [3]float32
	Attribute  uint16
}

// parseBinary parses a binary STL file
func parseBinary(reader io.Reader) (*mesh.Model, error) {
	header := make([]byte, binaryHeaderSize)
	if _, err := io.ReadFull(reader, header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	model := mesh.NewModel(strings.TrimSpace(string(bytes.TrimRight(header, "\x00"))))
	part := mesh.NewPart(model.Name)

	var triangleCount uint32
	if err := binary.Read(reader, binary.LittleEndian, &triangleCount); err != nil {
		return nil, fmt.Errorf("failed to read triangle count: %w", err)
	}

	toVector := func(v [3]float32) geometry.Vector3 {
		return geometry.NewVector3(float64(v[0]), float64(v[1]), float64(v[2]))
	}

	for i := uint32(0); i < triangleCount; i++ {
		var facet binaryFacet
		if err := binary.Read(reader, binary.LittleEndian, &facet); err != nil {
			return nil, fmt.Errorf("failed to read triangle %d: %w", i, err)
		}
		// Stored normals are ignored; they are recomputed from winding when needed
		part.AddTriangle(geometry.NewTriangle(toVector(facet.V1), toVector(facet.V2), toVector(facet.V3)))
	}

	model.AddPart(part)
	return model, nil
}
