package snap

import (
	"github.com/philipparndt/robomap/pkg/geometry"
	"github.com/philipparndt/robomap/pkg/mesh"
)

// Edge is a triangle edge whose midpoint lies near the click
type Edge struct {
	Position  geometry.Vector3 `json:"position"`
	Direction geometry.Vector3 `json:"direction"`
	Length    float64          `json:"length"`
	Distance  float64          `json:"distance"`
}

// Corner is a vertex shared by several triangle corners
type Corner struct {
	Position  geometry.Vector3 `json:"position"`
	Sharpness int              `json:"sharpness"`
	Distance  float64          `json:"distance"`
}

// Obstacle is a part whose bounding box looks like something a robot
// would have to drive around
type Obstacle struct {
	Position geometry.Vector3 `json:"position"`
	Size     geometry.Vector3 `json:"size"`
	Kind     string           `json:"kind"`
	Distance float64          `json:"distance"`
}

// ObstacleKind is the label attached to every detected obstacle
const ObstacleKind = "potential_obstacle"

// Plane is a flat surface such as a floor or wall
type Plane struct {
	Position geometry.Vector3 `json:"position"`
	Normal   geometry.Vector3 `json:"normal"`
	Area     float64          `json:"area"`
}

// PlaneDetector finds planar regions in a part. Planes are reported in
// Features but do not feed candidate selection.
type PlaneDetector interface {
	DetectPlanes(part *mesh.Part, click geometry.Vector3, radius float64) []Plane
}

// NoPlanes is the default detector; it never reports a plane
type NoPlanes struct{}

// DetectPlanes implements PlaneDetector
func (NoPlanes) DetectPlanes(*mesh.Part, geometry.Vector3, float64) []Plane {
	return nil
}

// Features are the geometric features found around a click, in scan order
type Features struct {
	Edges     []Edge     `json:"edges"`
	Corners   []Corner   `json:"corners"`
	Planes    []Plane    `json:"planes"`
	Obstacles []Obstacle `json:"obstacles"`
}

// Count returns the total number of features of every type
func (f *Features) Count() int {
	return len(f.Edges) + len(f.Corners) + len(f.Planes) + len(f.Obstacles)
}

// detectEdges keeps every triangle edge whose midpoint is strictly closer
// than radius. Shared edges are reported once per triangle.
func detectEdges(part *mesh.Part, click geometry.Vector3, radius float64) []Edge {
	var edges []Edge
	for tri := range part.Triangles() {
		for _, seg := range tri.Edges() {
			mid := seg.Midpoint()
			distance := mid.Distance(click)
			if distance < radius {
				edges = append(edges, Edge{
					Position:  mid,
					Direction: seg.Direction(),
					Length:    seg.Length(),
					Distance:  distance,
				})
			}
		}
	}
	return edges
}

type vertexBucket struct {
	position geometry.Vector3
	count    int
}

// detectCorners merges duplicate vertices by quantized position and keeps
// the ones where at least minFaces triangle corners meet
func detectCorners(part *mesh.Part, click geometry.Vector3, radius float64, minFaces, decimals int) []Corner {
	// buckets keep first-seen order
	index := make(map[geometry.GridKey]int)
	var buckets []vertexBucket

	for v := range part.Vertices() {
		key := v.Quantize(decimals)
		i, ok := index[key]
		if !ok {
			i = len(buckets)
			index[key] = i
			buckets = append(buckets, vertexBucket{position: v})
		}
		buckets[i].count++
	}

	var corners []Corner
	for _, b := range buckets {
		if b.count < minFaces {
			continue
		}
		distance := b.position.Distance(click)
		if distance < radius {
			corners = append(corners, Corner{
				Position:  b.position,
				Sharpness: b.count,
				Distance:  distance,
			})
		}
	}
	return corners
}

// detectObstacles treats the whole part as an obstacle when its height is
// inside the band and its center is within radius of the click
func detectObstacles(part *mesh.Part, click geometry.Vector3, radius, minHeight, maxHeight float64) []Obstacle {
	bbox := part.Bounds()
	if bbox.IsEmpty() {
		return nil
	}

	height := bbox.Height()
	if height <= minHeight || height >= maxHeight {
		return nil
	}

	center := bbox.Center()
	distance := center.Distance(click)
	if distance >= radius {
		return nil
	}

	return []Obstacle{{
		Position: center,
		Size:     bbox.Size(),
		Kind:     ObstacleKind,
		Distance: distance,
	}}
}
