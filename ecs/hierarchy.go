package ecs

import (
	"errors"
	"iter"
	"slices"

	"github.com/milk9111/siteeditor/ecs/component"
)

var ErrHierarchyCycle = errors.New("ecs: parent would create a cycle")

type hierarchy struct {
	parent   map[Entity]Entity
	children map[Entity][]Entity
}

func (h *hierarchy) link(child, parent Entity) {
	if h.parent == nil {
		h.parent = make(map[Entity]Entity)
		h.children = make(map[Entity][]Entity)
	}
	h.unlink(child)
	h.parent[child] = parent
	h.children[parent] = append(h.children[parent], child)
}

func (h *hierarchy) unlink(child Entity) {
	old, ok := h.parent[child]
	if !ok {
		return
	}
	delete(h.parent, child)
	siblings := h.children[old]
	if i := slices.Index(siblings, child); i >= 0 {
		siblings = slices.Delete(siblings, i, i+1)
	}
	if len(siblings) == 0 {
		delete(h.children, old)
	} else {
		h.children[old] = siblings
	}
}

// detach removes e from its parent and orphans its children.
func (h *hierarchy) detach(e Entity) {
	h.unlink(e)
	for _, c := range h.children[e] {
		delete(h.parent, c)
	}
	delete(h.children, e)
}

// SetParent makes child a child of parent, replacing any previous parent.
func SetParent(w *World, child, parent Entity) error {
	if !IsAlive(w, child) || !IsAlive(w, parent) {
		return component.ErrEntityNotAlive
	}
	if child == parent || IsDescendantOf(w, parent, child) {
		return ErrHierarchyCycle
	}
	w.hierarchy.link(child, parent)
	return nil
}

// RemoveParent detaches child from its parent, if any.
func RemoveParent(w *World, child Entity) {
	if w == nil {
		return
	}
	w.hierarchy.unlink(child)
}

func Parent(w *World, e Entity) (Entity, bool) {
	if w == nil {
		return 0, false
	}
	p, ok := w.hierarchy.parent[e]
	return p, ok
}

// Children returns a copy of e's children in insertion order.
func Children(w *World, e Entity) []Entity {
	if w == nil {
		return nil
	}
	return slices.Clone(w.hierarchy.children[e])
}

// Ancestors yields e's parent, grandparent, and so on. e itself is not yielded.
func Ancestors(w *World, e Entity) iter.Seq[Entity] {
	return func(yield func(Entity) bool) {
		if w == nil {
			return
		}
		cur := e
		for {
			p, ok := w.hierarchy.parent[cur]
			if !ok || !yield(p) {
				return
			}
			cur = p
		}
	}
}

// IsDescendantOf reports whether root is a strict ancestor of e.
func IsDescendantOf(w *World, e, root Entity) bool {
	for a := range Ancestors(w, e) {
		if a == root {
			return true
		}
	}
	return false
}

// DespawnRecursive destroys e and all of its descendants, returning how many
// entities were destroyed.
func DespawnRecursive(w *World, e Entity) int {
	if !IsAlive(w, e) {
		return 0
	}
	n := 0
	for _, c := range Children(w, e) {
		n += DespawnRecursive(w, c)
	}
	if DestroyEntity(w, e) {
		n++
	}
	return n
}
