// Package annotation stores the named points users place on a model.
package annotation

import (
	"errors"
	"time"

	"github.com/philipparndt/robomap/pkg/geometry"
	"github.com/philipparndt/robomap/pkg/snap"
)

var (
	// ErrNotFound is returned when no annotation has the requested id
	ErrNotFound = errors.New("annotation not found")
	// ErrInvalidName is returned for empty annotation names
	ErrInvalidName = errors.New("annotation name must not be empty")
	// ErrInvalidVisibility is returned for visibilities other than public and private
	ErrInvalidVisibility = errors.New("visibility must be public or private")
)

// Visibility controls who can see an annotation
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

func (v Visibility) valid() bool {
	return v == VisibilityPublic || v == VisibilityPrivate
}

// Annotation is a named point of interest on a model
type Annotation struct {
	ID            string           `json:"id" yaml:"id"`
	Name          string           `json:"name" yaml:"name"`
	Type          snap.Category    `json:"type" yaml:"type"`
	WorldPosition geometry.Vector3 `json:"worldPosition" yaml:"worldPosition"`
	ModelName     string           `json:"modelName,omitempty" yaml:"modelName,omitempty"`
	CreatedAt     time.Time        `json:"createdAt" yaml:"createdAt"`
	Author        string           `json:"author" yaml:"author"`
	Tags          []string         `json:"tags" yaml:"tags"`
	Visibility    Visibility       `json:"visibility" yaml:"visibility"`
	AIConfidence  *float64         `json:"aiConfidence,omitempty" yaml:"aiConfidence,omitempty"`
	AISuggestion  *snap.Suggestion `json:"aiSuggestion,omitempty" yaml:"aiSuggestion,omitempty"`
}

func (a Annotation) clone() Annotation {
	a.Tags = append(make([]string, 0, len(a.Tags)), a.Tags...)
	if a.AIConfidence != nil {
		c := *a.AIConfidence
		a.AIConfidence = &c
	}
	if a.AISuggestion != nil {
		s := *a.AISuggestion
		s.Alternatives = append([]string(nil), s.Alternatives...)
		a.AISuggestion = &s
	}
	return a
}

// CreateData describes a new annotation
type CreateData struct {
	Name         string
	Type         snap.Category
	Position     geometry.Vector3
	Tags         []string
	Visibility   Visibility
	AIConfidence *float64
	AISuggestion *snap.Suggestion
}

// UpdateData lists the fields to change; nil fields are left alone
type UpdateData struct {
	Name       *string
	Type       *snap.Category
	Position   *geometry.Vector3
	Tags       []string
	Visibility *Visibility
}

// FromSnap builds CreateData for a click, moving it to the snapped position
// when the result is confident enough. An empty name takes the primary
// suggestion.
func FromSnap(name string, category snap.Category, click geometry.Vector3, result *snap.Result) CreateData {
	data := CreateData{
		Name:     name,
		Type:     category,
		Position: click,
	}
	if result == nil {
		return data
	}

	if result.ShouldApply() {
		data.Position = result.Position
	}
	confidence := result.Confidence
	suggestion := result.Suggestion
	data.AIConfidence = &confidence
	data.AISuggestion = &suggestion

	if data.Name == "" {
		data.Name = suggestion.Primary
	}
	return data
}
