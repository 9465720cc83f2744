package snap

import (
	"fmt"

	"github.com/philipparndt/robomap/pkg/geometry"
)

var suggestionTable = map[Kind][3]string{
	KindCorner:    {"Navigation waypoint", "Turn point", "Reference corner"},
	KindEdge:      {"Wall edge", "Path boundary", "Obstacle edge"},
	KindObstacle:  {"Detected obstacle", "Dynamic object", "Navigation hazard"},
	KindPathEdge:  {"Path segment", "Navigation corridor", "Safe passage"},
	KindFreeSpace: {"Open area", "Free space", "Exploration zone"},
}

// Suggestion proposes annotation labels for a snap result
type Suggestion struct {
	Primary      string             `json:"primary" yaml:"primary"`
	Alternatives []string           `json:"alternatives" yaml:"alternatives"`
	Metadata     SuggestionMetadata `json:"metadata" yaml:"metadata"`
}

// SuggestionMetadata carries display strings for the suggestion
type SuggestionMetadata struct {
	Position   string `json:"position" yaml:"position"`
	Confidence string `json:"confidence" yaml:"confidence"`
	Type       string `json:"type" yaml:"type"`
}

// Suggest builds the label suggestion for a snapped kind. Unknown kinds
// get the free space labels.
func Suggest(kind Kind, position geometry.Vector3, confidence float64) Suggestion {
	labels, ok := suggestionTable[kind]
	if !ok {
		labels = suggestionTable[KindFreeSpace]
	}

	return Suggestion{
		Primary:      labels[0],
		Alternatives: []string{labels[1], labels[2]},
		Metadata: SuggestionMetadata{
			Position:   position.Format(2),
			Confidence: fmt.Sprintf("%.0f%%", confidence*100),
			Type:       string(kind),
		},
	}
}
