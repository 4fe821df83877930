package shelter

import "github.com/fourpaws/shelter-hub/internal/domain/animal"

// Enumerator walks the live collection of a shelter.
// It starts before the first element; call MoveNext before Current.
type Enumerator[T animal.Animal] struct {
	shelter *Shelter[T]
	pos     int
}

// Enumerator returns a new enumerator positioned before the first animal.
func (s *Shelter[T]) Enumerator() *Enumerator[T] {
	return &Enumerator[T]{shelter: s, pos: -1}
}

// MoveNext advances to the next animal and reports whether there is one.
func (e *Enumerator[T]) MoveNext() bool {
	e.pos++
	return e.pos < len(e.shelter.animals)
}

// Current returns the animal at the current position, or the zero value
// when the enumerator is not on an element.
func (e *Enumerator[T]) Current() T {
	var zero T
	if e.pos < 0 || e.pos >= len(e.shelter.animals) {
		return zero
	}
	return e.shelter.animals[e.pos]
}

// Reset moves the enumerator back before the first animal.
func (e *Enumerator[T]) Reset() {
	e.pos = -1
}
