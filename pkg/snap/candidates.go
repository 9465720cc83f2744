package snap

import "github.com/philipparndt/robomap/pkg/geometry"

// Candidate is a feature tagged with the role it would play as a snap target
type Candidate struct {
	Kind     Kind
	Position geometry.Vector3
	Distance float64

	// Direction is set for edge-like candidates only
	Direction    geometry.Vector3
	HasDirection bool

	Length    float64
	Sharpness int
	Size      geometry.Vector3
}

// CandidatesFor selects and tags the features that matter for category.
// Unknown categories behave like CategoryGeneral.
func CandidatesFor(f *Features, category Category) []Candidate {
	var out []Candidate

	switch category {
	case CategoryNavigationWaypoint:
		out = appendCorners(out, f.Corners)
		out = appendEdges(out, f.Edges, KindEdge)
	case CategoryObstacle:
		out = appendObstacles(out, f.Obstacles)
	case CategoryPath:
		out = appendEdges(out, f.Edges, KindPathEdge)
	default:
		out = appendCorners(out, f.Corners)
		out = appendEdges(out, f.Edges, KindEdge)
		out = appendObstacles(out, f.Obstacles)
	}

	return out
}

func appendCorners(out []Candidate, corners []Corner) []Candidate {
	for _, c := range corners {
		out = append(out, Candidate{
			Kind:      KindCorner,
			Position:  c.Position,
			Distance:  c.Distance,
			Sharpness: c.Sharpness,
		})
	}
	return out
}

func appendEdges(out []Candidate, edges []Edge, kind Kind) []Candidate {
	for _, e := range edges {
		out = append(out, Candidate{
			Kind:         kind,
			Position:     e.Position,
			Distance:     e.Distance,
			Direction:    e.Direction,
			HasDirection: true,
			Length:       e.Length,
		})
	}
	return out
}

func appendObstacles(out []Candidate, obstacles []Obstacle) []Candidate {
	for _, o := range obstacles {
		out = append(out, Candidate{
			Kind:     KindObstacle,
			Position: o.Position,
			Distance: o.Distance,
			Size:     o.Size,
		})
	}
	return out
}
