package site

import (
	"fmt"

	"github.com/milk9111/siteeditor/ecs"
)

// SpawnSite creates a site root and makes it the current workspace.
func SpawnSite(w *ecs.World, name string) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, SiteComponent.Kind(), &Site{Name: name}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, NameInSiteComponent.Kind(), &NameInSite{Name: name}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, CategoryComponent.Kind(), ptr(CategorySite)); err != nil {
		return 0, err
	}
	if _, ok := ecs.Resource[CurrentWorkspace](w); !ok {
		ecs.SetResource(w, &CurrentWorkspace{Root: e})
	}
	return e, nil
}

func SpawnLevel(w *ecs.World, siteRoot ecs.Entity, name string, elevation float64) (ecs.Entity, error) {
	if !ecs.Has(w, siteRoot, SiteComponent.Kind()) {
		return 0, fmt.Errorf("spawn level %q: %v is not a site", name, siteRoot)
	}
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, LevelComponent.Kind(), &Level{Elevation: elevation}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, NameInSiteComponent.Kind(), &NameInSite{Name: name}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, CategoryComponent.Kind(), ptr(CategoryLevel)); err != nil {
		return 0, err
	}
	if err := ecs.SetParent(w, e, siteRoot); err != nil {
		return 0, err
	}
	return e, nil
}

// SpawnLift creates a lift referencing two anchors. A zero parent leaves the
// lift orphaned; the lift tag pass will adopt it into the current site.
func SpawnLift(w *ecs.World, parent ecs.Entity, name string, edge Edge, cabin *RectCabin) (ecs.Entity, error) {
	if cabin == nil {
		cabin = DefaultRectCabin()
	}
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, NameInSiteComponent.Kind(), &NameInSite{Name: name}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, EdgeComponent.Kind(), &edge); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, RecallLiftCabinComponent.Kind(), &RecallLiftCabin{}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, LiftCabinComponent.Kind(), NewRectLiftCabin(cabin)); err != nil {
		return 0, err
	}
	if parent.Valid() {
		if err := ecs.SetParent(w, e, parent); err != nil {
			return 0, fmt.Errorf("spawn lift %q: %w", name, err)
		}
	}
	return e, nil
}

// RegisterDependent records dependent in the Dependents set of every anchor of
// edge. Registration is idempotent.
func RegisterDependent(w *ecs.World, dependent ecs.Entity, edge Edge) error {
	for _, a := range edge.Array() {
		if !ecs.Has(w, a, AnchorComponent.Kind()) {
			return fmt.Errorf("register %v on %v: %w", dependent, a, ErrNotAnAnchor)
		}
		deps, ok := ecs.Get(w, a, DependentsComponent.Kind())
		if !ok {
			deps = NewDependents()
			if err := ecs.Add(w, a, DependentsComponent.Kind(), deps); err != nil {
				return err
			}
		}
		deps.Insert(dependent)
	}
	return nil
}

// DeregisterDependent drops dependent from the anchors it was registered on.
// Anchors that no longer exist are skipped.
func DeregisterDependent(w *ecs.World, dependent ecs.Entity, anchors [2]ecs.Entity) {
	for _, a := range anchors {
		if deps, ok := ecs.Get(w, a, DependentsComponent.Kind()); ok {
			deps.Remove(dependent)
		}
	}
}

// EnsureCabinAnchorGroup returns the container for lift's door anchors,
// adopting an existing child group or creating one.
func EnsureCabinAnchorGroup(w *ecs.World, lift ecs.Entity) (ecs.Entity, error) {
	if g, ok := ecs.Get(w, lift, ChildCabinAnchorGroupComponent.Kind()); ok && ecs.IsAlive(w, g.Group) {
		return g.Group, nil
	}
	for _, c := range ecs.Children(w, lift) {
		if ecs.Has(w, c, CabinAnchorGroupComponent.Kind()) {
			return c, ecs.Add(w, lift, ChildCabinAnchorGroupComponent.Kind(), &ChildCabinAnchorGroup{Group: c})
		}
	}

	tf := Transform{}
	if cabin, ok := ecs.Get(w, lift, LiftCabinComponent.Kind()); ok && cabin.Rect != nil {
		tf.Transform = cabin.Rect.CabinTransform()
	}
	g := ecs.CreateEntity(w)
	if err := ecs.Add(w, g, CabinAnchorGroupComponent.Kind(), &CabinAnchorGroup{}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, g, CategoryComponent.Kind(), ptr(CategoryLift)); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, g, TransformComponent.Kind(), &tf); err != nil {
		return 0, err
	}
	if err := ecs.SetParent(w, g, lift); err != nil {
		return 0, err
	}
	return g, ecs.Add(w, lift, ChildCabinAnchorGroupComponent.Kind(), &ChildCabinAnchorGroup{Group: g})
}

// SpawnCabinDoor fabricates a door on the empty face of lift: two
// subordinate anchors in the cabin anchor group, the door entity visiting
// levels, and the placement on the cabin. The door is registered as a
// dependent of its anchors and parented to the lift. The face is only
// claimed once the door is complete.
func SpawnCabinDoor(w *ecs.World, lift ecs.Entity, face RectFace, width, shifted float64, levels ...ecs.Entity) (ecs.Entity, error) {
	cabin, ok := ecs.Get(w, lift, LiftCabinComponent.Kind())
	if !ok || cabin.Rect == nil {
		return 0, fmt.Errorf("lift %v: %w", lift, ErrMissingCabin)
	}
	if face < 0 || int(face) >= len(AllRectFaces) {
		return 0, fmt.Errorf("site: lift %v: unknown cabin face %v", lift, face)
	}
	if p := cabin.Rect.Door(face); p != nil {
		return 0, fmt.Errorf("lift %v %v face holds %v: %w", lift, face, p.Door, ErrFaceOccupied)
	}
	group, err := EnsureCabinAnchorGroup(w, lift)
	if err != nil {
		return 0, fmt.Errorf("lift %v anchor group: %w", lift, err)
	}

	door := ecs.CreateEntity(w)
	placement := LiftCabinDoorPlacement{Door: door, Width: width, Shifted: shifted}

	var edge Edge
	for i, a := range cabin.Rect.PlacementAnchors(face, placement) {
		anchor, err := SpawnAnchor(w, group, a)
		if err != nil {
			return 0, fmt.Errorf("lift %v door anchor: %w", lift, err)
		}
		if err := ecs.Add(w, anchor, SubordinateComponent.Kind(), &Subordinate{Owner: lift}); err != nil {
			return 0, err
		}
		if i == 0 {
			edge.Left = anchor
		} else {
			edge.Right = anchor
		}
	}

	if err := ecs.Add(w, door, DoorTypeComponent.Kind(), DefaultDoubleSlidingDoor()); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, door, EdgeComponent.Kind(), &edge); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, door, LevelVisitsComponent.Kind(), NewLevelVisits(levels...)); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, door, LiftCabinDoorMarkerComponent.Kind(), &LiftCabinDoorMarker{}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, door, DependentsComponent.Kind(), NewDependents(lift)); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, door, CategoryComponent.Kind(), ptr(CategoryDoor)); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, door, VisibilityComponent.Kind(), Visible()); err != nil {
		return 0, err
	}
	if err := ecs.SetParent(w, door, lift); err != nil {
		return 0, err
	}
	if err := RegisterDependent(w, door, edge); err != nil {
		return 0, err
	}
	cabin.Rect.SetDoor(face, &placement)
	return door, nil
}
