package analysis

import (
	"math"
	"testing"

	"github.com/philipparndt/robomap/pkg/geometry"
	"github.com/philipparndt/robomap/pkg/mesh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoCubes() *mesh.Model {
	model := mesh.NewModel("scene")
	model.AddPart(mesh.Cube("small", geometry.Vector3{}, 1))
	model.AddPart(mesh.Cube("large", geometry.NewVector3(3, 0, 0), 2))
	return model
}

func TestAnalyzeModel(t *testing.T) {
	result := AnalyzeModel(twoCubes())

	assert.Equal(t, 24, result.TriangleCount)
	assert.Equal(t, 16, result.VertexCount)
	assert.Equal(t, 72, result.EdgeCount)
	assert.InDelta(t, 6.0+24.0, result.SurfaceArea, 1e-9)
	assert.Equal(t, geometry.NewVector3(5, 2, 2), result.Dimensions)

	require.Len(t, result.Parts, 2)
	assert.Equal(t, "large", result.Parts[1].Name)
	assert.Equal(t, 12, result.Parts[1].Triangles)

	assert.Equal(t, 1.0, result.MinEdgeLength)
	assert.InDelta(t, 2*math.Sqrt2, result.MaxEdgeLength, 1e-12)
}

func TestAnalyzeEmptyModel(t *testing.T) {
	result := AnalyzeModel(mesh.NewModel("empty"))

	assert.Equal(t, 0, result.EdgeCount)
	assert.Equal(t, 0.0, result.MinEdgeLength)
	assert.True(t, result.BoundingBox.IsEmpty())
}

func TestFindLongestAndShortestEdges(t *testing.T) {
	result := AnalyzeModel(twoCubes())

	longest := FindLongestEdges(result, 2)
	require.Len(t, longest, 2)
	assert.Equal(t, "large", longest[0].Part)
	assert.InDelta(t, 2*math.Sqrt2, longest[0].Length, 1e-12)

	shortest := FindShortestEdges(result, 1000)
	assert.Len(t, shortest, result.EdgeCount)
	assert.Equal(t, "small", shortest[0].Part)
}

func TestFindNearestVertex(t *testing.T) {
	nearest, distance, ok := FindNearestVertex(twoCubes(), geometry.NewVector3(2.9, 0.1, 0))
	require.True(t, ok)
	assert.Equal(t, geometry.NewVector3(3, 0, 0), nearest)
	assert.InDelta(t, math.Sqrt(0.02), distance, 1e-9)

	_, _, ok = FindNearestVertex(mesh.NewModel("empty"), geometry.Vector3{})
	assert.False(t, ok)
}
