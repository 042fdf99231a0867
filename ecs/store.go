package ecs

// Store is sparse-set storage for one component type, keyed by entity.
// Values live in a dense slice for cache-friendly iteration; pointers
// returned by Get and Each stay valid until the next Set or Remove.
type Store[T any] struct {
	denseEntities []Entity
	denseValues   []T
	sparse        []int
}

func (s *Store[T]) index(e Entity) (int, bool) {
	id := int(e.id())
	if s == nil || id == 0 || id > len(s.sparse) {
		return 0, false
	}
	idx := s.sparse[id-1]
	if idx < 0 || idx >= len(s.denseEntities) || s.denseEntities[idx] != e {
		return 0, false
	}
	return idx, true
}

// Has reports whether e has a component in this store.
func (s *Store[T]) Has(e Entity) bool {
	_, ok := s.index(e)
	return ok
}

// Get returns a pointer to e's component.
func (s *Store[T]) Get(e Entity) (*T, bool) {
	idx, ok := s.index(e)
	if !ok {
		return nil, false
	}
	return &s.denseValues[idx], true
}

// Set inserts or overwrites e's component.
func (s *Store[T]) Set(e Entity, v T) {
	if s == nil || !e.Valid() {
		return
	}
	if idx, ok := s.index(e); ok {
		s.denseValues[idx] = v
		return
	}
	id := int(e.id())
	for len(s.sparse) < id {
		s.sparse = append(s.sparse, -1)
	}
	s.denseEntities = append(s.denseEntities, e)
	s.denseValues = append(s.denseValues, v)
	s.sparse[id-1] = len(s.denseEntities) - 1
}

// Remove deletes e's component, swapping the last dense element into its
// place. Reports whether anything was removed.
func (s *Store[T]) Remove(e Entity) bool {
	idx, ok := s.index(e)
	if !ok {
		return false
	}
	last := len(s.denseEntities) - 1
	moved := s.denseEntities[last]
	s.denseEntities[idx] = moved
	s.denseValues[idx] = s.denseValues[last]
	s.sparse[moved.id()-1] = idx

	var zero T
	s.denseValues[last] = zero
	s.denseEntities = s.denseEntities[:last]
	s.denseValues = s.denseValues[:last]
	s.sparse[e.id()-1] = -1
	return true
}

// Len returns the number of stored components.
func (s *Store[T]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.denseEntities)
}

// Each calls fn with every entity and a mutable pointer to its component.
// Iteration order is unspecified. fn must not add or remove components in
// this store.
func (s *Store[T]) Each(fn func(e Entity, v *T)) {
	if s == nil {
		return
	}
	for i := range s.denseEntities {
		fn(s.denseEntities[i], &s.denseValues[i])
	}
}

// discard implements the untyped cleanup hook used on entity destruction.
func (s *Store[T]) discard(e Entity) {
	s.Remove(e)
}
