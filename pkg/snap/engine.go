// Package snap suggests where an annotation clicked onto a mesh should land.
//
// The engine looks at the geometry around the click (edge midpoints,
// corner vertices and obstacle-sized parts), keeps the features that make
// sense for the annotation category, scores them by distance and feature
// type and returns the best one together with a label suggestion. When
// nothing is close enough the click itself is returned as free space with
// a low confidence; callers usually apply a snap only above ApplyThreshold.
package snap

import (
	"context"
	"runtime"

	"github.com/philipparndt/robomap/internal/logging"
	"github.com/philipparndt/robomap/pkg/geometry"
	"github.com/philipparndt/robomap/pkg/mesh"
	"golang.org/x/sync/errgroup"
)

// ApplyThreshold is the confidence above which a UI should move the
// annotation to the snapped position
const ApplyThreshold = 0.5

// Mesh is anything that can be split into triangle parts
type Mesh interface {
	Parts() []*mesh.Part
}

// Result is the outcome of a snap
type Result struct {
	Position      geometry.Vector3 `json:"position"`
	Normal        geometry.Vector3 `json:"normal"`
	Confidence    float64          `json:"confidence"`
	Kind          Kind             `json:"type"`
	Suggestion    Suggestion       `json:"suggestion"`
	DistanceScore float64          `json:"distanceScore"`
	FeatureScore  float64          `json:"featureScore"`
	Candidates    int              `json:"candidates"`
}

// ShouldApply reports whether the snapped position should replace the click
func (r *Result) ShouldApply() bool {
	return r != nil && r.Kind != KindFreeSpace && r.Confidence > ApplyThreshold
}

// Option configures an Engine
type Option func(*Engine)

// WithLogger sets the logger. The default discards output.
func WithLogger(l *logging.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithPlaneDetector replaces the default detector, which finds no planes
func WithPlaneDetector(d PlaneDetector) Option {
	return func(e *Engine) {
		e.planes = d
	}
}

// Engine is a ready-to-use snap engine. It holds no mutable state and is
// safe for concurrent use.
type Engine struct {
	cfg    Config
	planes PlaneDetector
	logger *logging.Logger
}

// Initialize validates cfg and returns an engine
func Initialize(ctx context.Context, cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:    cfg,
		planes: NoPlanes{},
		logger: logging.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.logger.InfoContext(ctx, "auto-snap initialized", "threshold", cfg.Threshold)
	return e, nil
}

// Config returns the configuration the engine was built with
func (e *Engine) Config() Config {
	return e.cfg
}

func isNilMesh(m Mesh) bool {
	if m == nil {
		return true
	}
	model, ok := m.(*mesh.Model)
	return ok && model == nil
}

// ExtractFeatures collects the features within the search radius of click.
// It fails on parts whose buffer does not hold whole triangles.
func (e *Engine) ExtractFeatures(ctx context.Context, m Mesh, click geometry.Vector3) (*Features, error) {
	features := &Features{}
	if isNilMesh(m) {
		return features, nil
	}

	radius := e.cfg.Threshold
	for _, part := range m.Parts() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := part.Validate(); err != nil {
			return nil, err
		}

		features.Edges = append(features.Edges, detectEdges(part, click, radius)...)
		features.Corners = append(features.Corners, detectCorners(part, click, radius, e.cfg.MinCornerFaces, e.cfg.QuantizeDecimals)...)
		features.Planes = append(features.Planes, e.planes.DetectPlanes(part, click, radius)...)
		features.Obstacles = append(features.Obstacles, detectObstacles(part, click, radius, e.cfg.ObstacleMinHeight, e.cfg.ObstacleMaxHeight)...)
	}

	return features, nil
}

// FindSnapPoint returns the best snap target near click. A nil mesh yields
// a nil result and no error.
func (e *Engine) FindSnapPoint(ctx context.Context, click geometry.Vector3, m Mesh, category Category) (*Result, error) {
	if isNilMesh(m) {
		return nil, nil
	}

	features, err := e.ExtractFeatures(ctx, m, click)
	if err != nil {
		return nil, err
	}

	candidates := CandidatesFor(features, category)
	result := e.resolve(candidates, click, category)

	e.logger.LogSnap(ctx, string(category), string(result.Kind), len(candidates), result.Confidence)
	return result, nil
}

func (e *Engine) resolve(candidates []Candidate, click geometry.Vector3, category Category) *Result {
	best, score, ok := e.cfg.pickBest(candidates, click, category)
	if !ok {
		return &Result{
			Position:   click,
			Normal:     geometry.Up,
			Confidence: e.cfg.FreeSpaceConfidence,
			Kind:       KindFreeSpace,
			Suggestion: Suggest(KindFreeSpace, click, e.cfg.FreeSpaceConfidence),
		}
	}

	return &Result{
		Position:      best.Position,
		Normal:        EstimateNormal(best),
		Confidence:    score.Total,
		Kind:          best.Kind,
		Suggestion:    Suggest(best.Kind, best.Position, score.Total),
		DistanceScore: score.Distance,
		FeatureScore:  score.Feature,
		Candidates:    len(candidates),
	}
}

// FindSnapPoints snaps every click independently, in parallel, and returns
// the results in input order
func (e *Engine) FindSnapPoints(ctx context.Context, clicks []geometry.Vector3, m Mesh, category Category) ([]*Result, error) {
	results := make([]*Result, len(clicks))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, click := range clicks {
		g.Go(func() error {
			res, err := e.FindSnapPoint(ctx, click, m, category)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
