package ecs

import (
	"reflect"

	"github.com/milk9111/siteeditor/ecs/component"
)

// System updates a world once per tick.
type System interface {
	Update(w *World)
}

// World owns entities, component stores, the parent/child hierarchy, typed
// resources and the event queue.
type World struct {
	entities  entityStore
	stores    map[component.ComponentID]*SparseSet
	hierarchy hierarchy
	resources map[reflect.Type]any
	events    EventQueue
	changes   changeLog
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{
		stores:    make(map[component.ComponentID]*SparseSet),
		resources: make(map[reflect.Type]any),
	}
}

// CreateEntity allocates a new entity.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

func (w *World) store(id component.ComponentID, create bool) *SparseSet {
	s, ok := w.stores[id]
	if !ok && create {
		s = newSparseSet()
		w.stores[id] = s
	}
	return s
}

// AddComponent inserts or replaces the value of component id on e.
func (w *World) AddComponent(e Entity, id component.ComponentID, value any) error {
	if w == nil || !w.entities.isAlive(e) {
		return component.ErrEntityNotAlive
	}
	if id == 0 {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	if rv := reflect.ValueOf(value); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return component.ErrNilComponent
	}
	if w.store(id, true).Set(e, value) {
		w.changes.recordAdded(id, e)
	}
	return nil
}

// GetComponent returns the raw value of component id on e.
func (w *World) GetComponent(e Entity, id component.ComponentID) (any, bool) {
	if w == nil || !w.entities.isAlive(e) {
		return nil, false
	}
	s := w.store(id, false)
	if !s.Has(e) {
		return nil, false
	}
	return s.Get(e), true
}

// HasComponent reports whether e carries component id.
func (w *World) HasComponent(e Entity, id component.ComponentID) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	return w.store(id, false).Has(e)
}

// RemoveComponent deletes component id from e and reports whether it was present.
func (w *World) RemoveComponent(e Entity, id component.ComponentID) bool {
	if w == nil {
		return false
	}
	if w.store(id, false).Remove(e) {
		w.changes.recordRemoved(id, e)
		return true
	}
	return false
}

func (w *World) destroy(e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for id, s := range w.stores {
		if s.Remove(e) {
			w.changes.recordRemoved(id, e)
		}
	}
	w.hierarchy.detach(e)
	return w.entities.destroy(e)
}

// beginTick publishes the component changes recorded since the previous tick.
func (w *World) beginTick() {
	w.changes.swap()
}

func (w *World) endTick() {
	w.events.flush()
}

// Update runs the given systems as one tick.
func (w *World) Update(systems ...System) {
	if w == nil {
		return
	}
	w.beginTick()
	for _, s := range systems {
		if s != nil {
			s.Update(w)
		}
	}
	w.endTick()
}
