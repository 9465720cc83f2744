package snap

import (
	"fmt"
	"strings"
)

// Category is the kind of annotation being placed. It decides which
// features become candidates and how they are weighted.
type Category string

const (
	CategoryGeneral            Category = "general"
	CategoryNavigationWaypoint Category = "navigation_waypoint"
	CategoryObstacle           Category = "obstacle"
	CategoryPath               Category = "path"
)

// Categories lists every known category in display order
var Categories = []Category{
	CategoryGeneral,
	CategoryNavigationWaypoint,
	CategoryObstacle,
	CategoryPath,
}

// ParseCategory accepts a category name, case-insensitively.
// The empty string maps to CategoryGeneral.
func ParseCategory(s string) (Category, error) {
	if s == "" {
		return CategoryGeneral, nil
	}
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Categories {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// Kind labels a snap candidate
type Kind string

const (
	KindCorner    Kind = "corner"
	KindEdge      Kind = "edge"
	KindObstacle  Kind = "obstacle"
	KindPathEdge  Kind = "path_edge"
	KindFreeSpace Kind = "free_space"
)
