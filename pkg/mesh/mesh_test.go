package mesh

import (
	"testing"

	"github.com/philipparndt/robomap/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartTrianglesIterates(t *testing.T) {
	part := NewPart("tri")
	part.AddTriangle(geometry.NewTriangle(
		geometry.NewVector3(0, 0, 0),
		geometry.NewVector3(1, 0, 0),
		geometry.NewVector3(0, 1, 0),
	))
	part.AddTriangle(geometry.NewTriangle(
		geometry.NewVector3(0, 0, 1),
		geometry.NewVector3(1, 0, 1),
		geometry.NewVector3(0, 1, 1),
	))

	require.NoError(t, part.Validate())
	assert.Equal(t, 2, part.TriangleCount())

	var got []geometry.Triangle
	for tri := range part.Triangles() {
		got = append(got, tri)
	}
	require.Len(t, got, 2)
	assert.Equal(t, geometry.NewVector3(1, 0, 1), got[1].V2)

	count := 0
	for range part.Vertices() {
		count++
	}
	assert.Equal(t, 6, count)
}

func TestPartTrianglesStopsEarly(t *testing.T) {
	part := Cube("cube", geometry.Vector3{}, 1)

	seen := 0
	for range part.Triangles() {
		seen++
		if seen == 3 {
			break
		}
	}
	assert.Equal(t, 3, seen)
}

func TestPartValidateRejectsPartialTriangle(t *testing.T) {
	part := &Part{Name: "broken", Positions: make([]float64, 10)}

	err := part.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedBuffer)
	assert.Contains(t, err.Error(), "broken")

	model := NewModel("m")
	model.AddPart(Cube("ok", geometry.Vector3{}, 1))
	model.AddPart(part)
	assert.ErrorIs(t, model.Validate(), ErrMalformedBuffer)
}

func TestCubeGeometry(t *testing.T) {
	part := Cube("cube", geometry.NewVector3(1, 2, 3), 2)

	assert.Equal(t, 12, part.TriangleCount())

	bbox := part.Bounds()
	assert.Equal(t, geometry.NewVector3(1, 2, 3), bbox.Min)
	assert.Equal(t, geometry.NewVector3(3, 4, 5), bbox.Max)

	area := 0.0
	for tri := range part.Triangles() {
		area += tri.Area()
		// Every face normal must point away from the center
		toFace := tri.Center().Sub(bbox.Center())
		assert.Greater(t, tri.Normal().Dot(toFace), 0.0)
	}
	assert.InDelta(t, 24.0, area, 1e-9)
}

func TestModelAggregates(t *testing.T) {
	model := NewModel("scene")
	model.AddPart(Cube("a", geometry.Vector3{}, 1))
	model.AddPart(Cube("b", geometry.NewVector3(4, 0, 0), 1))

	assert.Len(t, model.Parts(), 2)
	assert.Equal(t, 24, model.TriangleCount())
	assert.InDelta(t, 12.0, model.SurfaceArea(), 1e-9)

	bbox := model.BoundingBox()
	assert.Equal(t, geometry.NewVector3(0, 0, 0), bbox.Min)
	assert.Equal(t, geometry.NewVector3(5, 1, 1), bbox.Max)
}

func TestNilModelHasNoParts(t *testing.T) {
	var model *Model
	assert.Empty(t, model.Parts())
	assert.Equal(t, 0, model.TriangleCount())
}
