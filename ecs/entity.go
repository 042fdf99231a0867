package ecs

import "fmt"

const entityIDBits = 32

type entityID uint32

type generation uint32

// Entity is a stable handle to a live entity. The slot index is packed
// with a generation so handles left over from a destroyed entity are
// detected instead of aliasing its replacement.
type Entity uint64

func makeEntity(id entityID, gen generation) Entity {
	return Entity(uint64(gen)<<entityIDBits | uint64(id))
}

func (e Entity) id() entityID {
	return entityID(e & (1<<entityIDBits - 1))
}

func (e Entity) generation() generation {
	return generation(e >> entityIDBits)
}

// Valid reports whether e was produced by CreateEntity. It does not check
// liveness; use World.IsAlive for that.
func (e Entity) Valid() bool {
	return e.id() != 0
}

func (e Entity) String() string {
	return fmt.Sprintf("entity(%d:%d)", e.id(), e.generation())
}

// entityStore tracks slot generations and recycles freed slots.
type entityStore struct {
	gens []generation
	free []entityID
}

func (s *entityStore) create() Entity {
	if n := len(s.free); n > 0 {
		id := s.free[n-1]
		s.free = s.free[:n-1]
		return makeEntity(id, s.gens[id-1])
	}
	s.gens = append(s.gens, 0)
	return makeEntity(entityID(len(s.gens)), 0)
}

func (s *entityStore) destroy(e Entity) bool {
	if !s.isAlive(e) {
		return false
	}
	id := e.id()
	s.gens[id-1]++
	s.free = append(s.free, id)
	return true
}

func (s *entityStore) isAlive(e Entity) bool {
	id := e.id()
	return id != 0 && int(id) <= len(s.gens) && s.gens[id-1] == e.generation()
}

func (s *entityStore) count() int {
	return len(s.gens) - len(s.free)
}
