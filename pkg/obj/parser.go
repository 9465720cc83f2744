// Package obj reads Wavefront OBJ geometry into multi-part meshes.
//
// Only the geometric subset is interpreted: "v" vertex positions, "f"
// faces (fan-triangulated), and "o"/"g" statements that start a new part.
// Texture coordinates, normals, materials and smoothing groups are skipped.
package obj

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/philipparndt/robomap/pkg/geometry"
	"github.com/philipparndt/robomap/pkg/mesh"
)

// Parse reads an OBJ file and returns a Model
func Parse(filename string) (*mesh.Model, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	model, err := ParseReader(file, name)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}
	model.Source = filename
	return model, nil
}

// ParseReader parses OBJ content. Parts without faces are dropped.
func ParseReader(reader io.Reader, name string) (*mesh.Model, error) {
	p := &parser{model: mesh.NewModel(name)}
	p.current = mesh.NewPart(name)

	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		p.line++
		if err := p.parseLine(scanner.Text()); err != nil {
			return nil, fmt.Errorf("line %d: %w", p.line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading OBJ: %w", err)
	}

	p.flush()
	return p.model, nil
}

type parser struct {
	model    *mesh.Model
	current  *mesh.Part
	vertices []geometry.Vector3
	line     int
}

func (p *parser) parseLine(raw string) error {
	if i := strings.IndexByte(raw, '#'); i >= 0 {
		raw = raw[:i]
	}
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return nil
	}

	switch fields[0] {
	case "v":
		if len(fields) < 4 {
			return fmt.Errorf("vertex needs 3 coordinates, got %d", len(fields)-1)
		}
		v, err := parseVertex(fields[1:4])
		if err != nil {
			return err
		}
		p.vertices = append(p.vertices, v)

	case "f":
		return p.parseFace(fields[1:])

	case "o", "g":
		p.flush()
		partName := p.model.Name
		if len(fields) > 1 {
			partName = strings.Join(fields[1:], " ")
		}
		p.current = mesh.NewPart(partName)
	}

	return nil
}

// parseFace resolves vertex references and emits a triangle fan around the
// first corner
func (p *parser) parseFace(refs []string) error {
	if len(refs) < 3 {
		return fmt.Errorf("face needs at least 3 vertices, got %d", len(refs))
	}

	corners := make([]geometry.Vector3, len(refs))
	for i, ref := range refs {
		v, err := p.resolve(ref)
		if err != nil {
			return err
		}
		corners[i] = v
	}

	for i := 1; i+1 < len(corners); i++ {
		p.current.AddTriangle(geometry.NewTriangle(corners[0], corners[i], corners[i+1]))
	}
	return nil
}

// resolve maps a "v", "v/vt", "v//vn" or "v/vt/vn" reference to a position.
// Indices are 1-based; negative indices count back from the last vertex.
func (p *parser) resolve(ref string) (geometry.Vector3, error) {
	index := ref
	if i := strings.IndexByte(ref, '/'); i >= 0 {
		index = ref[:i]
	}

	n, err := strconv.Atoi(index)
	if err != nil {
		return geometry.Vector3{}, fmt.Errorf("invalid vertex reference %q: %w", ref, err)
	}

	switch {
	case n > 0:
		n--
	case n < 0:
		n += len(p.vertices)
	default:
		return geometry.Vector3{}, fmt.Errorf("vertex index 0 is not valid")
	}

	if n < 0 || n >= len(p.vertices) {
		return geometry.Vector3{}, fmt.Errorf("vertex reference %q out of range (%d vertices)", ref, len(p.vertices))
	}
	return p.vertices[n], nil
}

func (p *parser) flush() {
	if p.current != nil && p.current.TriangleCount() > 0 {
		p.model.AddPart(p.current)
	}
	p.current = nil
}

func parseVertex(fields []string) (geometry.Vector3, error) {
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
