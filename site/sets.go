package site

import (
	"slices"

	"github.com/milk9111/siteeditor/ecs"
	"github.com/zyedidia/generic/mapset"
)

// entitySet is a set of entity handles that iterates in ascending entity
// order. The zero value is empty and ready to use.
type entitySet struct {
	set mapset.Set[ecs.Entity]
	ok  bool
}

func newEntitySet(es ...ecs.Entity) entitySet {
	s := entitySet{set: mapset.New[ecs.Entity](), ok: true}
	for _, e := range es {
		s.set.Put(e)
	}
	return s
}

func (s *entitySet) init() {
	if !s.ok {
		s.set = mapset.New[ecs.Entity]()
		s.ok = true
	}
}

// Insert adds e and reports whether it was not already present.
func (s *entitySet) Insert(e ecs.Entity) bool {
	s.init()
	if s.set.Has(e) {
		return false
	}
	s.set.Put(e)
	return true
}

// Remove deletes e and reports whether it was present.
func (s *entitySet) Remove(e ecs.Entity) bool {
	if !s.Contains(e) {
		return false
	}
	s.set.Remove(e)
	return true
}

func (s entitySet) Contains(e ecs.Entity) bool {
	return s.ok && s.set.Has(e)
}

func (s entitySet) Len() int {
	if !s.ok {
		return 0
	}
	return s.set.Size()
}

func (s entitySet) IsEmpty() bool {
	return s.Len() == 0
}

// Sorted returns the members in ascending entity order.
func (s entitySet) Sorted() []ecs.Entity {
	if !s.ok {
		return nil
	}
	out := make([]ecs.Entity, 0, s.set.Size())
	s.set.Each(func(e ecs.Entity) {
		out = append(out, e)
	})
	slices.SortFunc(out, ecs.Compare)
	return out
}

// Clone returns an independent copy.
func (s entitySet) Clone() entitySet {
	return newEntitySet(s.Sorted()...)
}
