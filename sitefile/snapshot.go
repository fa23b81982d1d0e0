package sitefile

import (
	"fmt"
	"slices"

	"github.com/milk9111/siteeditor/ecs"
	"github.com/milk9111/siteeditor/ecs/component"
	"github.com/milk9111/siteeditor/site"
)

// Snapshot captures the current workspace site as a spec. Pending elements
// are left out and ids are renumbered from 1 in entity order.
func Snapshot(w *ecs.World) (*SiteSpec, error) {
	ws, _ := ecs.Resource[site.CurrentWorkspace](w)
	root, ok := ws.ToSite(w)
	if !ok {
		if root, ok = ecs.First(w, site.SiteComponent.Kind()); !ok {
			return nil, ErrNoSite
		}
	}
	return SnapshotSite(w, root)
}

func SnapshotSite(w *ecs.World, root ecs.Entity) (*SiteSpec, error) {
	s, ok := ecs.Get(w, root, site.SiteComponent.Kind())
	if !ok {
		return nil, fmt.Errorf("sitefile: snapshot %v: %w", root, ErrNoSite)
	}
	spec := &SiteSpec{Name: s.Name}
	ids := make(map[ecs.Entity]uint32)
	var next uint32
	assign := func(e ecs.Entity) uint32 {
		next++
		ids[e] = next
		return next
	}

	for _, level := range sortedWith(w, site.LevelComponent.Kind(), func(e ecs.Entity) bool {
		p, ok := ecs.Parent(w, e)
		return ok && p == root
	}) {
		l, _ := ecs.Get(w, level, site.LevelComponent.Kind())
		spec.Levels = append(spec.Levels, LevelSpec{
			ID:        assign(level),
			Name:      nameOf(w, level),
			Elevation: l.Elevation,
		})
	}

	for _, anchor := range sortedWith(w, site.AnchorComponent.Kind(), func(e ecs.Entity) bool {
		if ecs.Has(w, e, site.SubordinateComponent.Kind()) {
			return false
		}
		p, ok := ecs.Parent(w, e)
		if !ok {
			return false
		}
		_, onLevel := ids[p]
		return p == root || onLevel
	}) {
		a, _ := ecs.Get(w, anchor, site.AnchorComponent.Kind())
		out := AnchorSpec{X: a.Position.X, Y: a.Position.Y}
		if a.Is3D() {
			z := a.Position.Z
			out.Z = &z
		}
		if p, _ := ecs.Parent(w, anchor); p != root {
			out.Level = ids[p]
		}
		out.ID = assign(anchor)
		spec.Anchors = append(spec.Anchors, out)
	}

	for _, lift := range sortedWith(w, site.LiftCabinComponent.Kind(), func(e ecs.Entity) bool {
		return ecs.IsDescendantOf(w, e, root)
	}) {
		out, err := snapshotLift(w, lift, ids)
		if err != nil {
			return nil, fmt.Errorf("sitefile: snapshot lift %v: %w", lift, err)
		}
		out.ID = assign(lift)
		spec.Lifts = append(spec.Lifts, out)
	}
	return spec, nil
}

func snapshotLift(w *ecs.World, lift ecs.Entity, ids map[ecs.Entity]uint32) (LiftSpec, error) {
	out := LiftSpec{Name: nameOf(w, lift)}
	edge, ok := ecs.Get(w, lift, site.EdgeComponent.Kind())
	if !ok {
		return out, fmt.Errorf("missing reference anchors")
	}
	for _, a := range edge.Array() {
		id, ok := ids[a]
		if !ok {
			return out, fmt.Errorf("anchor %v: %w", a, ErrUnknownID)
		}
		out.ReferenceAnchors = append(out.ReferenceAnchors, id)
	}

	cabin, _ := ecs.Get(w, lift, site.LiftCabinComponent.Kind())
	if cabin == nil || cabin.Rect == nil {
		return out, site.ErrMissingCabin
	}
	rect := cabin.Rect
	out.Cabin = CabinSpec{
		Width:         rect.Width,
		Depth:         rect.Depth,
		WallThickness: rect.WallThickness,
		Gap:           rect.Gap,
		Shift:         rect.Shift,
	}
	for face, p := range cabin.DoorPlacements() {
		if ecs.Has(w, p.Door, site.PendingComponent.Kind()) {
			continue
		}
		door := DoorSpec{Width: p.Width, Shifted: p.Shifted}
		if dt, ok := ecs.Get(w, p.Door, site.DoorTypeComponent.Kind()); ok {
			door.Kind = dt.Kind.String()
			if dt.LeftRightRatio != 1 {
				door.Ratio = dt.LeftRightRatio
			}
		}
		if visits, ok := ecs.Get(w, p.Door, site.LevelVisitsComponent.Kind()); ok {
			for _, level := range visits.Sorted() {
				if id, ok := ids[level]; ok {
					door.Visits = append(door.Visits, id)
				}
			}
		}
		if len(door.Visits) == 0 {
			continue
		}
		if out.Cabin.Doors == nil {
			out.Cabin.Doors = make(map[string]DoorSpec)
		}
		out.Cabin.Doors[face.String()] = door
	}
	return out, nil
}

// sortedWith lists non-pending entities carrying kind that satisfy keep, in
// ascending entity order.
func sortedWith[T any](w *ecs.World, kind component.ComponentKind[T], keep func(ecs.Entity) bool) []ecs.Entity {
	var out []ecs.Entity
	ecs.ForEach(w, kind, func(e ecs.Entity, _ *T) {
		if ecs.Has(w, e, site.PendingComponent.Kind()) || !keep(e) {
			return
		}
		out = append(out, e)
	})
	slices.SortFunc(out, ecs.Compare)
	return out
}

func nameOf(w *ecs.World, e ecs.Entity) string {
	if n, ok := ecs.Get(w, e, site.NameInSiteComponent.Kind()); ok {
		return n.Name
	}
	return ""
}
