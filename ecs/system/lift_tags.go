package system

import (
	"fmt"

	"github.com/milk9111/siteeditor/ecs"
	"github.com/milk9111/siteeditor/site"
)

// LiftTagSystem finishes newly created lifts: default transform, visibility
// and category, adoption of orphans into the current site, and an initial
// cabin build request.
type LiftTagSystem struct {
	OnError ErrorHandler
}

func NewLiftTagSystem() *LiftTagSystem { return &LiftTagSystem{} }

func (s *LiftTagSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	for _, e := range ecs.Added(w, site.LiftCabinComponent.Kind()) {
		if !ecs.Has(w, e, site.TransformComponent.Kind()) {
			_ = ecs.Add(w, e, site.TransformComponent.Kind(), &site.Transform{})
		}
		if !ecs.Has(w, e, site.VisibilityComponent.Kind()) {
			_ = ecs.Add(w, e, site.VisibilityComponent.Kind(), site.Visible())
		}
		category := site.CategoryLift
		_ = ecs.Add(w, e, site.CategoryComponent.Kind(), &category)
		if !ecs.Has(w, e, site.RecallLiftCabinComponent.Kind()) {
			_ = ecs.Add(w, e, site.RecallLiftCabinComponent.Kind(), &site.RecallLiftCabin{})
		}

		if _, ok := ecs.Parent(w, e); !ok {
			ws, _ := ecs.Resource[site.CurrentWorkspace](w)
			if root, ok := ws.ToSite(w); ok {
				if err := ecs.SetParent(w, e, root); err != nil {
					report(s.OnError, "lift tags", fmt.Errorf("adopt lift %v: %w", e, err))
				}
			} else {
				report(s.OnError, "lift tags", fmt.Errorf("place newly created lift %v: %w", e, site.ErrNoCurrentWorkspace))
			}
		}

		site.MarkCabinDirty(w, e)
	}
}
