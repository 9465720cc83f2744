package geometry

import (
	"math"
	"testing"
)

func rightTriangle() Triangle {
	// Sides 3, 4, 5
	return NewTriangle(
		NewVector3(0, 0, 0),
		NewVector3(3, 0, 0),
		NewVector3(0, 4, 0),
	)
}

func TestTriangleArea(t *testing.T) {
	area := rightTriangle().Area()
	expected := 6.0

	if math.Abs(area-expected) > 1e-10 {
		t.Errorf("Area failed: expected %v, got %v", expected, area)
	}
}

func TestTriangleEdgeLengths(t *testing.T) {
	lengths := rightTriangle().EdgeLengths()

	expected := [3]float64{3, 5, 4}
	for i := range expected {
		if math.Abs(lengths[i]-expected[i]) > 1e-10 {
			t.Errorf("Edge %d length failed: expected %v, got %v", i, expected[i], lengths[i])
		}
	}
}

func TestTriangleEdgesWinding(t *testing.T) {
	tri := rightTriangle()
	edges := tri.Edges()

	if edges[0].Start != tri.V1 || edges[0].End != tri.V2 {
		t.Errorf("Edge 0 should run V1->V2, got %v->%v", edges[0].Start, edges[0].End)
	}
	if edges[2].Start != tri.V3 || edges[2].End != tri.V1 {
		t.Errorf("Edge 2 should run V3->V1, got %v->%v", edges[2].Start, edges[2].End)
	}

	mid := edges[0].Midpoint()
	if mid != NewVector3(1.5, 0, 0) {
		t.Errorf("Midpoint failed: got %v", mid)
	}
	if dir := edges[0].Direction(); dir != NewVector3(1, 0, 0) {
		t.Errorf("Direction failed: got %v", dir)
	}
}

func TestTrianglePerimeter(t *testing.T) {
	perimeter := rightTriangle().Perimeter()
	expected := 12.0

	if math.Abs(perimeter-expected) > 1e-10 {
		t.Errorf("Perimeter failed: expected %v, got %v", expected, perimeter)
	}
}

func TestTriangleNormal(t *testing.T) {
	normal := rightTriangle().Normal()
	expected := NewVector3(0, 0, 1)

	if normal != expected {
		t.Errorf("Normal failed: expected %v, got %v", expected, normal)
	}
}

func TestTriangleCenter(t *testing.T) {
	tri := NewTriangle(
		NewVector3(0, 0, 0),
		NewVector3(3, 0, 0),
		NewVector3(0, 3, 0),
	)

	center := tri.Center()
	expected := NewVector3(1, 1, 0)

	if center != expected {
		t.Errorf("Center failed: expected %v, got %v", expected, center)
	}
}
