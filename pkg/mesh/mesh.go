// Package mesh holds triangle soup models made of named parts.
//
// Each part stores its triangles as a flat position buffer, nine floats
// per triangle (three vertices of x, y, z), the layout produced by most
// rendering pipelines for non-indexed geometry.
package mesh

import (
	"errors"
	"fmt"
	"iter"

	"github.com/philipparndt/robomap/pkg/geometry"
)

// FloatsPerTriangle is the number of buffer entries that make up one triangle
const FloatsPerTriangle = 9

// ErrMalformedBuffer is returned when a position buffer does not hold whole triangles
var ErrMalformedBuffer = errors.New("position buffer length is not a multiple of 9")

// Part is a single sub-mesh
type Part struct {
	Name      string
	Positions []float64
}

// NewPart creates an empty part
func NewPart(name string) *Part {
	return &Part{Name: name}
}

// AddTriangle appends a triangle to the position buffer
func (p *Part) AddTriangle(t geometry.Triangle) {
	p.Positions = append(p.Positions,
		t.V1.X, t.V1.Y, t.V1.Z,
		t.V2.X, t.V2.Y, t.V2.Z,
		t.V3.X, t.V3.Y, t.V3.Z,
	)
}

// Validate checks that the buffer holds whole triangles
func (p *Part) Validate() error {
	if len(p.Positions)%FloatsPerTriangle != 0 {
		return fmt.Errorf("part %q has %d floats: %w", p.Name, len(p.Positions), ErrMalformedBuffer)
	}
	return nil
}

// TriangleCount returns the number of complete triangles in the buffer
func (p *Part) TriangleCount() int {
	return len(p.Positions) / FloatsPerTriangle
}

// Triangles yields every triangle of the buffer in order.
// A trailing partial triangle is not yielded; call Validate first.
func (p *Part) Triangles() iter.Seq[geometry.Triangle] {
	return func(yield func(geometry.Triangle) bool) {
		buf := p.Positions
		for i := 0; i+FloatsPerTriangle <= len(buf); i += FloatsPerTriangle {
			tri := geometry.NewTriangle(
				geometry.NewVector3(buf[i], buf[i+1], buf[i+2]),
				geometry.NewVector3(buf[i+3], buf[i+4], buf[i+5]),
				geometry.NewVector3(buf[i+6], buf[i+7], buf[i+8]),
			)
			if !yield(tri) {
				return
			}
		}
	}
}

// Vertices yields every vertex of the buffer, including duplicates shared
// between triangles
func (p *Part) Vertices() iter.Seq[geometry.Vector3] {
	return func(yield func(geometry.Vector3) bool) {
		buf := p.Positions
		for i := 0; i+3 <= len(buf); i += 3 {
			if !yield(geometry.NewVector3(buf[i], buf[i+1], buf[i+2])) {
				return
			}
		}
	}
}

// Bounds returns the axis-aligned bounding box of every vertex in the part
func (p *Part) Bounds() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for v := range p.Vertices() {
		bbox.Extend(v)
	}
	return bbox
}

// Model is a named collection of parts
type Model struct {
	Name   string
	Source string
	parts  []*Part
}

// NewModel creates an empty model
func NewModel(name string) *Model {
	return &Model{Name: name}
}

// AddPart appends a part to the model
func (m *Model) AddPart(p *Part) {
	m.parts = append(m.parts, p)
}

// Parts returns the parts of the model in load order
func (m *Model) Parts() []*Part {
	if m == nil {
		return nil
	}
	return m.parts
}

// TriangleCount returns the number of triangles across all parts
func (m *Model) TriangleCount() int {
	count := 0
	for _, p := range m.Parts() {
		count += p.TriangleCount()
	}
	return count
}

// Triangles yields the triangles of all parts
func (m *Model) Triangles() iter.Seq[geometry.Triangle] {
	return func(yield func(geometry.Triangle) bool) {
		for _, p := range m.Parts() {
			for tri := range p.Triangles() {
				if !yield(tri) {
					return
				}
			}
		}
	}
}

// BoundingBox calculates the bounding box of the entire model
func (m *Model) BoundingBox() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, p := range m.Parts() {
		bbox.Union(p.Bounds())
	}
	return bbox
}

// SurfaceArea calculates the total surface area of the model
func (m *Model) SurfaceArea() float64 {
	total := 0.0
	for tri := range m.Triangles() {
		total += tri.Area()
	}
	return total
}

// Validate checks every part buffer
func (m *Model) Validate() error {
	for _, p := range m.Parts() {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	return nil
}
