// Package analysis computes summary statistics over meshes.
package analysis

import (
	"math"
	"sort"

	"github.com/philipparndt/robomap/pkg/geometry"
	"github.com/philipparndt/robomap/pkg/mesh"
)

// EdgeInfo contains information about a triangle edge
type EdgeInfo struct {
	geometry.Segment
	Length     float64
	Part       string
	TriangleID int
}

// PartSummary describes a single part
type PartSummary struct {
	Name        string
	Triangles   int
	BoundingBox geometry.BoundingBox
}

// MeasurementResult contains measurements of a model
type MeasurementResult struct {
	BoundingBox   geometry.BoundingBox
	Dimensions    geometry.Vector3
	SurfaceArea   float64
	TriangleCount int
	VertexCount   int
	Parts         []PartSummary
	EdgeCount     int
	MinEdgeLength float64
	MaxEdgeLength float64
	AvgEdgeLength float64
	AllEdges      []EdgeInfo
}

// AnalyzeModel measures every part of model
func AnalyzeModel(model *mesh.Model) *MeasurementResult {
	result := &MeasurementResult{
		BoundingBox:   model.BoundingBox(),
		SurfaceArea:   model.SurfaceArea(),
		TriangleCount: model.TriangleCount(),
	}
	result.Dimensions = result.BoundingBox.Size()

	minLength := math.MaxFloat64
	maxLength := 0.0
	totalLength := 0.0
	unique := make(map[geometry.GridKey]struct{})

	for _, part := range model.Parts() {
		result.Parts = append(result.Parts, PartSummary{
			Name:        part.Name,
			Triangles:   part.TriangleCount(),
			BoundingBox: part.Bounds(),
		})

		for v := range part.Vertices() {
			unique[v.Quantize(6)] = struct{}{}
		}

		i := 0
		for tri := range part.Triangles() {
			for _, seg := range tri.Edges() {
				length := seg.Length()
				result.AllEdges = append(result.AllEdges, EdgeInfo{
					Segment:    seg,
					Length:     length,
					Part:       part.Name,
					TriangleID: i,
				})

				totalLength += length
				minLength = math.Min(minLength, length)
				maxLength = math.Max(maxLength, length)
			}
			i++
		}
	}

	result.VertexCount = len(unique)
	result.EdgeCount = len(result.AllEdges)
	if result.EdgeCount > 0 {
		result.MinEdgeLength = minLength
		result.MaxEdgeLength = maxLength
		result.AvgEdgeLength = totalLength / float64(result.EdgeCount)
	}

	return result
}

// FindLongestEdges returns the N longest edges
func FindLongestEdges(result *MeasurementResult, count int) []EdgeInfo {
	return sortedEdges(result, count, func(a, b EdgeInfo) bool { return a.Length > b.Length })
}

// FindShortestEdges returns the N shortest edges
func FindShortestEdges(result *MeasurementResult, count int) []EdgeInfo {
	return sortedEdges(result, count, func(a, b EdgeInfo) bool { return a.Length < b.Length })
}

func sortedEdges(result *MeasurementResult, count int, less func(a, b EdgeInfo) bool) []EdgeInfo {
	edges := make([]EdgeInfo, len(result.AllEdges))
	copy(edges, result.AllEdges)

	sort.SliceStable(edges, func(i, j int) bool {
		return less(edges[i], edges[j])
	})

	if count > len(edges) {
		count = len(edges)
	}
	return edges[:count]
}

// FindNearestVertex finds the vertex of model nearest to point.
// ok is false for a model without vertices.
func FindNearestVertex(model *mesh.Model, point geometry.Vector3) (nearest geometry.Vector3, distance float64, ok bool) {
	distance = math.MaxFloat64
	for _, part := range model.Parts() {
		for v := range part.Vertices() {
			if d := point.Distance(v); d < distance {
				nearest, distance, ok = v, d, true
			}
		}
	}
	return nearest, distance, ok
}
