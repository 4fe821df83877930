// Package shelter implements the shelter container: an ordered collection of
// animals that can be sorted, searched, adopted from and dumped to disk.
//
// A Shelter is owned by a single goroutine. Adoption handlers run
// synchronously on the caller's goroutine, in registration order.
package shelter

import (
	"iter"
	"log/slog"
	"slices"
	"strings"

	"github.com/fourpaws/shelter-hub/internal/domain/animal"
	"github.com/fourpaws/shelter-hub/internal/domain/shared"
)

// Shelter holds animals of type T.
type Shelter[T animal.Animal] struct {
	name     string
	animals  []T
	handlers []AdoptionHandler
	logger   *slog.Logger
}

// Option configures a Shelter.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets the logger used for warnings and swallowed failures.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// New creates a shelter. The shelter takes ownership of animals.
// Identities are expected to be unique; this is not checked.
func New[T animal.Animal](name string, animals []T, opts ...Option) *Shelter[T] {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	return &Shelter[T]{
		name:    name,
		animals: animals,
		logger:  o.logger.With("component", "shelter", "shelter", name),
	}
}

// Name returns the shelter name.
func (s *Shelter[T]) Name() string { return s.name }

// Len returns the number of animals still in the shelter.
func (s *Shelter[T]) Len() int { return len(s.animals) }

// Animals returns a copy of the current collection.
func (s *Shelter[T]) Animals() []T {
	return slices.Clone(s.animals)
}

// Subscribe registers an adoption handler. Nil handlers are ignored.
func (s *Shelter[T]) Subscribe(h AdoptionHandler) {
	if h == nil {
		return
	}
	s.handlers = append(s.handlers, h)
}

// Sort orders the animals by identity.
//
// Deprecated: use SortBy with an explicit comparator.
func (s *Shelter[T]) Sort() {
	s.SortBy(animal.For[T](animal.Compare))
}

// SortBy orders the animals in place with cmp.
// An empty shelter is left alone and a warning is logged.
func (s *Shelter[T]) SortBy(cmp func(a, b T) int) {
	if len(s.animals) == 0 {
		s.logger.Warn(shared.ErrEmptyShelter.Message)
		return
	}
	if cmp == nil {
		cmp = animal.For[T](animal.Compare)
	}
	slices.SortStableFunc(s.animals, cmp)
}

// SearchAnimal returns the first animal whose identity equals index.
// A negative index fails with shared.ErrInvalidIndex; a miss is reported
// through found and is not an error.
func (s *Shelter[T]) SearchAnimal(index int) (a T, found bool, err error) {
	if index < 0 {
		return a, false, shared.ErrInvalidIndex
	}
	for _, candidate := range s.animals {
		if candidate.Index() == index {
			return candidate, true, nil
		}
	}
	return a, false, nil
}

// Adopt removes pet from the shelter and notifies every handler.
// It is a no-op when pet is not in the shelter. Reports whether the
// adoption happened.
func (s *Shelter[T]) Adopt(pet T, ownerName string) bool {
	i := slices.IndexFunc(s.animals, func(a T) bool {
		return animal.Equal(a, pet)
	})
	if i < 0 {
		return false
	}

	adopted := s.animals[i]
	s.animals = slices.Delete(s.animals, i, i+1)

	event := NewAdoptionEvent(adopted, ownerName, s.name)
	s.logger.Info("animal adopted",
		"animal_index", adopted.Index(),
		"animal_name", adopted.Name(),
		"owner", ownerName,
	)

	for _, h := range s.handlers {
		if err := h(s, event); err != nil {
			s.logger.Error("adoption handler failed",
				"event_id", event.ID,
				"error", err,
			)
		}
	}
	return true
}

// All iterates over the animals in order.
func (s *Shelter[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, a := range s.animals {
			if !yield(a) {
				return
			}
		}
	}
}

// String lists every animal, one per line.
func (s *Shelter[T]) String() string {
	var sb strings.Builder
	sb.Grow(500)
	sb.WriteString("Animal database:\n")

	en := s.Enumerator()
	en.Reset()
	for en.MoveNext() {
		sb.WriteString(en.Current().String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
