package annotation

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/philipparndt/robomap/internal/logging"
)

// EventType names a store mutation
type EventType string

const (
	EventCreated EventType = "created"
	EventUpdated EventType = "updated"
	EventDeleted EventType = "deleted"
)

// Event is delivered to subscribers after every mutation
type Event struct {
	Type       EventType
	Annotation Annotation
}

// DefaultAuthor is recorded when no author is configured
const DefaultAuthor = "Current User"

// Option configures a Store
type Option func(*Store)

// WithAuthor sets the author recorded on created annotations
func WithAuthor(author string) Option {
	return func(s *Store) {
		s.author = author
	}
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithIDs replaces the uuid generator
func WithIDs(next func() string) Option {
	return func(s *Store) {
		s.newID = next
	}
}

// WithLogger sets the logger
func WithLogger(l *logging.Logger) Option {
	return func(s *Store) {
		s.logger = l
	}
}

// Store keeps the annotations of one model in memory. It is safe for
// concurrent use.
type Store struct {
	mu    sync.RWMutex
	model string
	items []Annotation

	subs    map[int]chan Event
	nextSub int

	author string
	now    func() time.Time
	newID  func() string
	logger *logging.Logger
}

// NewStore creates an empty store for modelName
func NewStore(modelName string, opts ...Option) *Store {
	s := &Store{
		model:  modelName,
		subs:   make(map[int]chan Event),
		author: DefaultAuthor,
		now:    time.Now,
		newID:  uuid.NewString,
		logger: logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Model returns the model name the store belongs to
func (s *Store) Model() string {
	return s.model
}

// Len returns the number of annotations
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// List returns a copy of all annotations in creation order
func (s *Store) List() []Annotation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Annotation, len(s.items))
	for i, a := range s.items {
		out[i] = a.clone()
	}
	return out
}

// Get returns the annotation with the given id
func (s *Store) Get(id string) (Annotation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return Annotation{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.items[i].clone(), nil
}

// Create stores a new annotation
func (s *Store) Create(ctx context.Context, data CreateData) (Annotation, error) {
	name := strings.TrimSpace(data.Name)
	if name == "" {
		return Annotation{}, ErrInvalidName
	}

	visibility := data.Visibility
	if visibility == "" {
		visibility = VisibilityPublic
	}
	if !visibility.valid() {
		return Annotation{}, fmt.Errorf("%w: %q", ErrInvalidVisibility, visibility)
	}

	tags := data.Tags
	if tags == nil {
		tags = []string{}
	}

	a := Annotation{
		Name:          name,
		Type:          data.Type,
		WorldPosition: data.Position,
		ModelName:     s.model,
		Author:        s.author,
		Tags:          tags,
		Visibility:    visibility,
		AIConfidence:  data.AIConfidence,
		AISuggestion:  data.AISuggestion,
	}
	a = a.clone()

	s.mu.Lock()
	a.ID = s.newID()
	a.CreatedAt = s.now().UTC()
	s.items = append(s.items, a)
	s.publish(Event{Type: EventCreated, Annotation: a.clone()})
	s.mu.Unlock()

	s.logger.LogAnnotation(ctx, "create", a.ID, nil)
	return a.clone(), nil
}

// Update applies the non-nil fields of data
func (s *Store) Update(ctx context.Context, id string, data UpdateData) (Annotation, error) {
	if data.Name != nil && strings.TrimSpace(*data.Name) == "" {
		return Annotation{}, ErrInvalidName
	}
	if data.Visibility != nil && !data.Visibility.valid() {
		return Annotation{}, fmt.Errorf("%w: %q", ErrInvalidVisibility, *data.Visibility)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		err := fmt.Errorf("%w: %s", ErrNotFound, id)
		s.logger.LogAnnotation(ctx, "update", id, err)
		return Annotation{}, err
	}

	a := &s.items[i]
	if data.Name != nil {
		a.Name = strings.TrimSpace(*data.Name)
	}
	if data.Type != nil {
		a.Type = *data.Type
	}
	if data.Position != nil {
		a.WorldPosition = *data.Position
	}
	if data.Tags != nil {
		a.Tags = append([]string(nil), data.Tags...)
	}
	if data.Visibility != nil {
		a.Visibility = *data.Visibility
	}

	s.publish(Event{Type: EventUpdated, Annotation: a.clone()})
	s.logger.LogAnnotation(ctx, "update", id, nil)
	return a.clone(), nil
}

// Delete removes the annotation with the given id
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		err := fmt.Errorf("%w: %s", ErrNotFound, id)
		s.logger.LogAnnotation(ctx, "delete", id, err)
		return err
	}

	removed := s.items[i]
	s.items = slices.Delete(s.items, i, i+1)

	s.publish(Event{Type: EventDeleted, Annotation: removed})
	s.logger.LogAnnotation(ctx, "delete", id, nil)
	return nil
}

// Replace swaps the whole content, for example after loading from disk.
// Subscribers are not notified.
func (s *Store) Replace(items []Annotation) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make([]Annotation, len(items))
	for i, a := range items {
		s.items[i] = a.clone()
	}
}

// Subscribe returns a channel of change events and a function that
// unsubscribes and closes it. Events are dropped for subscribers whose
// buffer is full.
func (s *Store) Subscribe(buffer int) (<-chan Event, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	ch := make(chan Event, buffer)
	s.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs, id)
			close(ch)
		})
	}
}

// publish must be called with mu held
func (s *Store) publish(ev Event) {
	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.items, func(a Annotation) bool {
		return a.ID == id
	})
}
