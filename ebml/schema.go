package ebml

// This file provides the cardinality primitives spec §4.C describes
// abstractly (T / Option<T> / Vec<T> / Option<Vec<T>>) as small generic
// helpers. Each master element's Go struct (in package matroska) embeds
// these in its partial form instead of going through a reflective runtime
// registry — matroska's hand-written parseXxx functions play the role of
// the "handler" and "finalize" the spec describes, field by field, the way
// the teacher's parseTrackEntry/parseSegmentInfo do it.

// Single holds a required-or-optional, non-repeatable field while it is
// being collected. Insert enforces the "single fields reject duplicates"
// rule (spec §4.C).
type Single[T any] struct {
	v    T
	set  bool
}

// Insert stores v, or reports ErrDuplicateElement if a value was already
// stored.
func (s *Single[T]) Insert(v T) error {
	if s.set {
		return ErrDuplicateElement
	}
	s.v, s.set = v, true
	return nil
}

// Present reports whether Insert has been called.
func (s *Single[T]) Present() bool { return s.set }

// Get returns the stored value and whether it was present.
func (s *Single[T]) Get() (T, bool) { return s.v, s.set }

// Require returns the stored value, or ErrMissingElement if absent.
func (s *Single[T]) Require() (T, error) {
	if !s.set {
		var zero T
		return zero, ErrMissingElement
	}
	return s.v, nil
}

// OrDefault returns the stored value, or def if absent — for schema fields
// declared with a default (spec §4.C step 4, "defaulted field absent ->
// default evaluated lazily").
func (s *Single[T]) OrDefault(def T) T {
	if s.set {
		return s.v
	}
	return def
}

// Multi holds a repeatable field while it is being collected. Append always
// succeeds; cardinality is only checked at Finalize.
type Multi[T any] struct {
	vs []T
}

// Append adds v to the collection.
func (m *Multi[T]) Append(v T) { m.vs = append(m.vs, v) }

// Len reports how many values have been collected.
func (m *Multi[T]) Len() int { return len(m.vs) }

// Finalize returns the collected slice, or ErrMissingElement if it is empty
// and required is true (spec §4.C step 4, "multi field absent -> empty
// collection if optional, or MissingElement if required").
func (m *Multi[T]) Finalize(required bool) ([]T, error) {
	if required && len(m.vs) == 0 {
		return nil, ErrMissingElement
	}
	return m.vs, nil
}
