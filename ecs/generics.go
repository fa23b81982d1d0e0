package ecs

import "github.com/milk9111/siteeditor/ecs/component"

func CreateEntity(w *World) Entity {
	if w == nil {
		return 0
	}
	return w.CreateEntity()
}

// DestroyEntity removes every component of e, detaches it from its parent and
// orphans its children. It reports whether e was alive.
func DestroyEntity(w *World, e Entity) bool {
	return w.destroy(e)
}

func IsAlive(w *World, e Entity) bool {
	return w != nil && w.entities.isAlive(e)
}

// Entities returns every live entity in slot order.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	return w.entities.all()
}

func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	return w.AddComponent(e, kind.ID(), value)
}

func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	return w.RemoveComponent(e, kind.ID())
}

func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	return w.HasComponent(e, kind.ID())
}

func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	value, ok := w.GetComponent(e, kind.ID())
	if !ok {
		return nil, false
	}
	cast, ok := value.(*T)
	if !ok {
		return nil, false
	}
	return cast, true
}

// snapshot copies the entity list of a store so callbacks may add, remove or
// destroy while iterating.
func snapshot(w *World, id component.ComponentID) []Entity {
	if w == nil {
		return nil
	}
	s := w.store(id, false)
	if s.Len() == 0 {
		return nil
	}
	return append([]Entity(nil), s.Entities()...)
}

func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(Entity, *T)) {
	for _, e := range snapshot(w, kind.ID()) {
		a, ok := Get(w, e, kind)
		if !ok {
			continue
		}
		fn(e, a)
	}
}

func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	if w == nil {
		return
	}
	sb := w.store(kb.ID(), false)
	if sb == nil {
		return
	}
	for _, e := range snapshot(w, ka.ID()) {
		a, ok := Get(w, e, ka)
		if !ok {
			continue
		}
		b, ok := Get(w, e, kb)
		if !ok {
			continue
		}
		fn(e, a, b)
	}
}

func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	ForEach2(w, ka, kb, func(e Entity, a *A, b *B) {
		c, ok := Get(w, e, kc)
		if !ok {
			return
		}
		fn(e, a, b, c)
	})
}

func ForEach4[A, B, C, D any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], kd component.ComponentKind[D], fn func(Entity, *A, *B, *C, *D)) {
	ForEach3(w, ka, kb, kc, func(e Entity, a *A, b *B, c *C) {
		d, ok := Get(w, e, kd)
		if !ok {
			return
		}
		fn(e, a, b, c, d)
	})
}

// First returns the live entity with the lowest slot id carrying kind.
func First[T any](w *World, kind component.ComponentKind[T]) (Entity, bool) {
	var (
		best  Entity
		found bool
	)
	for _, e := range snapshot(w, kind.ID()) {
		if !IsAlive(w, e) {
			continue
		}
		if !found || e.Less(best) {
			best, found = e, true
		}
	}
	return best, found
}

// Query returns live entities carrying every given component id.
func Query(w *World, ids ...component.ComponentID) []Entity {
	if w == nil || len(ids) == 0 {
		return nil
	}
	sets := make([]*SparseSet, 0, len(ids))
	for _, id := range ids {
		sets = append(sets, w.store(id, false))
	}
	return IntersectEntities(sets...)
}

// Added returns entities that gained kind during the previous tick window,
// filtered to those still carrying it.
func Added[T any](w *World, kind component.ComponentKind[T]) []Entity {
	if w == nil {
		return nil
	}
	var out []Entity
	seen := make(map[Entity]struct{})
	for _, e := range w.changes.added[kind.ID()] {
		if _, dup := seen[e]; dup {
			continue
		}
		seen[e] = struct{}{}
		if Has(w, e, kind) {
			out = append(out, e)
		}
	}
	return out
}

// Removed returns entities that lost kind, or were destroyed while carrying it,
// during the previous tick window.
func Removed[T any](w *World, kind component.ComponentKind[T]) []Entity {
	if w == nil {
		return nil
	}
	var out []Entity
	seen := make(map[Entity]struct{})
	for _, e := range w.changes.removed[kind.ID()] {
		if _, dup := seen[e]; dup {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}
	return out
}
