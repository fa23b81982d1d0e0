package system

import (
	"github.com/milk9111/siteeditor/ecs"
	"github.com/milk9111/siteeditor/site"
)

// AnchorLedgerSystem keeps every anchor's Dependents in step with the edges
// that reference it. It remembers what each dependent registered so it can
// deregister after the dependent's data is gone.
type AnchorLedgerSystem struct {
	OnError    ErrorHandler
	registered map[ecs.Entity][2]ecs.Entity
}

func NewAnchorLedgerSystem() *AnchorLedgerSystem {
	return &AnchorLedgerSystem{registered: make(map[ecs.Entity][2]ecs.Entity)}
}

func (s *AnchorLedgerSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	if s.registered == nil {
		s.registered = make(map[ecs.Entity][2]ecs.Entity)
	}

	for _, e := range ecs.Removed(w, site.EdgeComponent.Kind()) {
		if ecs.Has(w, e, site.EdgeComponent.Kind()) {
			continue
		}
		if anchors, ok := s.registered[e]; ok {
			site.DeregisterDependent(w, e, anchors)
			delete(s.registered, e)
		}
	}

	ecs.ForEach(w, site.EdgeComponent.Kind(), func(e ecs.Entity, edge *site.Edge) {
		current := edge.Array()
		if prev, ok := s.registered[e]; ok {
			if prev == current {
				return
			}
			site.DeregisterDependent(w, e, prev)
		}
		if err := site.RegisterDependent(w, e, *edge); err != nil {
			report(s.OnError, "anchor ledger", err)
			return
		}
		s.registered[e] = current
	})
}

// Registered reports the anchors dependent is currently recorded against.
func (s *AnchorLedgerSystem) Registered(dependent ecs.Entity) ([2]ecs.Entity, bool) {
	anchors, ok := s.registered[dependent]
	return anchors, ok
}
