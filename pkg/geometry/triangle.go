package geometry

// Segment is a straight edge between two points
type Segment struct {
	Start Vector3
	End   Vector3
}

// Midpoint returns the center of the segment
func (s Segment) Midpoint() Vector3 {
	return s.Start.Midpoint(s.End)
}

// Direction returns the unit vector pointing from Start to End
func (s Segment) Direction() Vector3 {
	return s.End.Sub(s.Start).Normalize()
}

// Length returns the distance between the segment endpoints
func (s Segment) Length() float64 {
	return s.Start.Distance(s.End)
}

// Triangle represents a triangular facet in 3D space
type Triangle struct {
	V1, V2, V3 Vector3
}

// NewTriangle creates a new triangle
func NewTriangle(v1, v2, v3 Vector3) Triangle {
	return Triangle{V1: v1, V2: v2, V3: v3}
}

// Vertices returns the three corners in winding order
func (t Triangle) Vertices() [3]Vector3 {
	return [3]Vector3{t.V1, t.V2, t.V3}
}

// Edges returns the edges V1->V2, V2->V3 and V3->V1
func (t Triangle) Edges() [3]Segment {
	return [3]Segment{
		{Start: t.V1, End: t.V2},
		{Start: t.V2, End: t.V3},
		{Start: t.V3, End: t.V1},
	}
}

// Normal computes the unit face normal from the winding order
func (t Triangle) Normal() Vector3 {
	edge1 := t.V2.Sub(t.V1)
	edge2 := t.V3.Sub(t.V1)
	return edge1.Cross(edge2).Normalize()
}

// Area returns the surface area of the triangle
func (t Triangle) Area() float64 {
	edge1 := t.V2.Sub(t.V1)
	edge2 := t.V3.Sub(t.V1)
	return edge1.Cross(edge2).Length() / 2.0
}

// EdgeLengths returns the lengths of all three edges
func (t Triangle) EdgeLengths() [3]float64 {
	edges := t.Edges()
	return [3]float64{edges[0].Length(), edges[1].Length(), edges[2].Length()}
}

// Perimeter returns the total length of all edges
func (t Triangle) Perimeter() float64 {
	lengths := t.EdgeLengths()
	return lengths[0] + lengths[1] + lengths[2]
}

// Center returns the centroid of the triangle
func (t Triangle) Center() Vector3 {
	return Vector3{
		X: (t.V1.X + t.V2.X + t.V3.X) / 3.0,
		Y: (t.V1.Y + t.V2.Y + t.V3.Y) / 3.0,
		Z: (t.V1.Z + t.V2.Z + t.V3.Z) / 3.0,
	}
}
