package snap

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// ErrInvalidConfig is returned for out of range configuration values
var ErrInvalidConfig = errors.New("invalid snap config")

// Config holds the tunables of the scoring pipeline. The defaults reproduce
// the heuristics of the annotation tool.
type Config struct {
	// Threshold is the search radius around the click, in model units
	Threshold float64 `toml:"threshold"`

	DistanceWeight float64 `toml:"distance_weight"`
	FeatureWeight  float64 `toml:"feature_weight"`

	// Feature bonuses: corner for navigation waypoints, obstacle for
	// obstacles, baseline for everything else
	CornerBonus   float64 `toml:"corner_bonus"`
	ObstacleBonus float64 `toml:"obstacle_bonus"`
	BaselineBonus float64 `toml:"baseline_bonus"`

	MinCornerFaces   int `toml:"min_corner_faces"`
	QuantizeDecimals int `toml:"quantize_decimals"`

	// Parts whose height lies strictly inside this band are obstacles
	ObstacleMinHeight float64 `toml:"obstacle_min_height"`
	ObstacleMaxHeight float64 `toml:"obstacle_max_height"`

	FreeSpaceConfidence float64 `toml:"free_space_confidence"`
}

// DefaultConfig returns the stock tuning
func DefaultConfig() Config {
	return Config{
		Threshold:           0.5,
		DistanceWeight:      0.7,
		FeatureWeight:       0.3,
		CornerBonus:         1.0,
		ObstacleBonus:       0.9,
		BaselineBonus:       0.5,
		MinCornerFaces:      3,
		QuantizeDecimals:    3,
		ObstacleMinHeight:   0.1,
		ObstacleMaxHeight:   2.0,
		FreeSpaceConfidence: 0.1,
	}
}

// Validate reports the first out of range field. Weights and bonuses are
// bounded so that a total score never exceeds 1.
func (c Config) Validate() error {
	floats := []struct {
		name  string
		value float64
	}{
		{"threshold", c.Threshold},
		{"distance_weight", c.DistanceWeight},
		{"feature_weight", c.FeatureWeight},
		{"corner_bonus", c.CornerBonus},
		{"obstacle_bonus", c.ObstacleBonus},
		{"baseline_bonus", c.BaselineBonus},
		{"obstacle_min_height", c.ObstacleMinHeight},
		{"obstacle_max_height", c.ObstacleMaxHeight},
		{"free_space_confidence", c.FreeSpaceConfidence},
	}
	for _, f := range floats {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s must be a finite number, got %v", ErrInvalidConfig, f.name, f.value)
		}
	}

	switch {
	case c.Threshold <= 0:
		return fmt.Errorf("%w: threshold must be positive, got %v", ErrInvalidConfig, c.Threshold)
	case c.DistanceWeight < 0 || c.FeatureWeight < 0:
		return fmt.Errorf("%w: weights must not be negative", ErrInvalidConfig)
	case c.DistanceWeight+c.FeatureWeight > 1+weightTolerance:
		return fmt.Errorf("%w: distance_weight + feature_weight must not exceed 1, got %v", ErrInvalidConfig, c.DistanceWeight+c.FeatureWeight)
	case !unitInterval(c.CornerBonus):
		return fmt.Errorf("%w: corner_bonus must be within [0, 1], got %v", ErrInvalidConfig, c.CornerBonus)
	case !unitInterval(c.ObstacleBonus):
		return fmt.Errorf("%w: obstacle_bonus must be within [0, 1], got %v", ErrInvalidConfig, c.ObstacleBonus)
	case !unitInterval(c.BaselineBonus):
		return fmt.Errorf("%w: baseline_bonus must be within [0, 1], got %v", ErrInvalidConfig, c.BaselineBonus)
	case c.MinCornerFaces < 1:
		return fmt.Errorf("%w: min_corner_faces must be at least 1, got %d", ErrInvalidConfig, c.MinCornerFaces)
	case c.QuantizeDecimals < 0 || c.QuantizeDecimals > 9:
		return fmt.Errorf("%w: quantize_decimals must be within 0..9, got %d", ErrInvalidConfig, c.QuantizeDecimals)
	case c.ObstacleMinHeight >= c.ObstacleMaxHeight:
		return fmt.Errorf("%w: obstacle height band (%v, %v) is empty", ErrInvalidConfig, c.ObstacleMinHeight, c.ObstacleMaxHeight)
	case !unitInterval(c.FreeSpaceConfidence):
		return fmt.Errorf("%w: free_space_confidence must be within [0, 1], got %v", ErrInvalidConfig, c.FreeSpaceConfidence)
	}
	return nil
}

// weightTolerance absorbs rounding in sums such as 0.7 + 0.3
const weightTolerance = 1e-9

func unitInterval(v float64) bool {
	return v >= 0 && v <= 1
}

type configFile struct {
	Snap Config `toml:"snap"`
}

// LoadConfig reads the [snap] table of a TOML file on top of DefaultConfig.
// Unknown keys are an error.
func LoadConfig(path string) (Config, error) {
	file := configFile{Snap: DefaultConfig()}

	md, err := toml.DecodeFile(path, &file)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return Config{}, fmt.Errorf("%w: unknown keys in %s: %s", ErrInvalidConfig, path, strings.Join(keys, ", "))
	}

	if err := file.Snap.Validate(); err != nil {
		return Config{}, err
	}
	return file.Snap, nil
}
