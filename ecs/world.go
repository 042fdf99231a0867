package ecs

// Stage is one slot in the fixed per-tick pipeline. Stages run in
// declaration order: sensors refresh probe data, user controls issue their
// requests, logic advances them, motors hand the results to the physics
// backend.
type Stage int

const (
	StageSensors Stage = iota
	StageUserControls
	StageLogic
	StageMotors

	stageCount
)

// System updates a world once per tick.
type System interface {
	Update(w *World)
}

// SystemFunc adapts a function to the System interface.
type SystemFunc func(w *World)

func (f SystemFunc) Update(w *World) { f(w) }

type anyStore interface {
	discard(e Entity)
}

// World owns entities, component stores, and the staged system pipeline.
type World struct {
	entities entityStore
	stores   map[componentID]anyStore
	stages   [stageCount][]System
	dt       float64
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{stores: make(map[componentID]anyStore)}
}

// CreateEntity allocates a new entity.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity kills an entity and releases all its components. Reports
// whether the handle was alive.
func (w *World) DestroyEntity(e Entity) bool {
	if !w.entities.destroy(e) {
		return false
	}
	for _, s := range w.stores {
		s.discard(e)
	}
	return true
}

// IsAlive reports whether an entity handle is still valid.
func (w *World) IsAlive(e Entity) bool {
	return w.entities.isAlive(e)
}

// EntityCount returns the number of live entities.
func (w *World) EntityCount() int {
	return w.entities.count()
}

// AddSystem appends a system to the given pipeline stage.
func (w *World) AddSystem(st Stage, s System) {
	if s == nil || st < 0 || st >= stageCount {
		return
	}
	w.stages[st] = append(w.stages[st], s)
}

// Tick runs one simulation step: it records the elapsed frame duration,
// then runs every stage in order. A zero dt still runs the stages, so
// user-control systems can keep issuing requests; time-dependent systems
// are expected to check DT themselves.
func (w *World) Tick(dt float64) {
	w.dt = dt
	for st := Stage(0); st < stageCount; st++ {
		for _, s := range w.stages[st] {
			s.Update(w)
		}
	}
}

// DT returns the elapsed seconds of the tick currently running.
func (w *World) DT() float64 {
	return w.dt
}

// StoreOf returns the world's store for a component handle, creating it on
// first use.
func StoreOf[T any](w *World, h Handle[T]) *Store[T] {
	if w.stores == nil {
		w.stores = make(map[componentID]anyStore)
	}
	if s, ok := w.stores[h.id]; ok {
		return s.(*Store[T])
	}
	s := &Store[T]{}
	w.stores[h.id] = s
	return s
}

// Add attaches a component to a live entity.
func Add[T any](w *World, e Entity, h Handle[T], v T) error {
	if !w.IsAlive(e) {
		return ErrEntityNotAlive
	}
	StoreOf(w, h).Set(e, v)
	return nil
}

// Get returns a mutable pointer to e's component, if attached.
func Get[T any](w *World, e Entity, h Handle[T]) (*T, bool) {
	return StoreOf(w, h).Get(e)
}

// Has reports whether e carries the component.
func Has[T any](w *World, e Entity, h Handle[T]) bool {
	return StoreOf(w, h).Has(e)
}

// Remove detaches the component from e.
func Remove[T any](w *World, e Entity, h Handle[T]) bool {
	return StoreOf(w, h).Remove(e)
}
