package snap

import (
	"math"

	"github.com/philipparndt/robomap/pkg/geometry"
)

// Score is the breakdown of a candidate's total score
type Score struct {
	Distance float64
	Feature  float64
	Total    float64
}

// scoreCandidate computes distance and feature scores for one candidate.
// The distance score is not clamped; it is positive for every candidate
// the extractors produce because they only keep distances below the threshold.
func (c Config) scoreCandidate(cand Candidate, click geometry.Vector3, category Category) Score {
	distance := cand.Position.Distance(click)
	distanceScore := 1.0 - distance/c.Threshold

	featureScore := c.BaselineBonus
	switch {
	case category == CategoryNavigationWaypoint && cand.Kind == KindCorner:
		featureScore = c.CornerBonus
	case category == CategoryObstacle && cand.Kind == KindObstacle:
		featureScore = c.ObstacleBonus
	}

	return Score{
		Distance: distanceScore,
		Feature:  featureScore,
		Total:    distanceScore*c.DistanceWeight + featureScore*c.FeatureWeight,
	}
}

// pickBest returns the highest scoring candidate. On exact ties the earlier
// candidate wins. ok is false when there are no candidates.
func (c Config) pickBest(cands []Candidate, click geometry.Vector3, category Category) (best Candidate, score Score, ok bool) {
	bestTotal := math.Inf(-1)
	for _, cand := range cands {
		s := c.scoreCandidate(cand, click, category)
		if s.Total > bestTotal {
			bestTotal = s.Total
			best, score, ok = cand, s, true
		}
	}
	return best, score, ok
}

// EstimateNormal returns a coarse orientation for the annotation marker:
// perpendicular to world up and the edge for edge-like candidates, world up
// otherwise. It is not a surface normal.
func EstimateNormal(cand Candidate) geometry.Vector3 {
	if cand.HasDirection {
		return geometry.Up.Cross(cand.Direction).Normalize()
	}
	return geometry.Up
}
