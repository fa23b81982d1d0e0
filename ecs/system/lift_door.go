package system

import (
	"fmt"

	"github.com/milk9111/siteeditor/ecs"
	"github.com/milk9111/siteeditor/site"
)

// LiftDoorSystem owns the lifecycle of cabin doors. One pass handles, in
// order: availability toggles in arrival order, current level visibility,
// level additions, then level removals as a single batch. Cabins touched by
// any of these are marked dirty for the geometry pass that follows.
type LiftDoorSystem struct {
	OnError ErrorHandler
}

func NewLiftDoorSystem() *LiftDoorSystem { return &LiftDoorSystem{} }

func (s *LiftDoorSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	current, _ := ecs.Resource[site.CurrentLevel](w)

	for _, toggle := range ecs.ReadEvents[site.ToggleLiftDoorAvailability](w, site.ToggleLiftDoorAvailabilityEvent) {
		if toggle.DoorAvailable {
			s.enable(w, toggle, current)
		} else {
			s.disable(w, toggle, current)
		}
	}

	if current != nil && current.Changed {
		ecs.ForEach2(w, site.LiftCabinDoorMarkerComponent.Kind(), site.LevelVisitsComponent.Kind(), func(door ecs.Entity, _ *site.LiftCabinDoorMarker, visits *site.LevelVisits) {
			projectVisibility(w, door, visits, current)
		})
		current.Changed = false
	}

	if len(ecs.Added(w, site.LevelComponent.Kind())) > 0 {
		markAllCabinsDirty(w)
	}

	if removed := ecs.Removed(w, site.LevelComponent.Kind()); len(removed) > 0 {
		s.removeLevels(w, removed)
		markAllCabinsDirty(w)
	}
}

func (s *LiftDoorSystem) enable(w *ecs.World, t site.ToggleLiftDoorAvailability, current *site.CurrentLevel) {
	cabin, ok := ecs.Get(w, t.ForLift, site.LiftCabinComponent.Kind())
	if !ok || cabin.Rect == nil {
		report(s.OnError, "lift doors", fmt.Errorf("toggle on lift %v: %w", t.ForLift, site.ErrMissingCabin))
		return
	}
	if !ecs.Has(w, t.OnLevel, site.LevelComponent.Kind()) {
		report(s.OnError, "lift doors", fmt.Errorf(
			"turn on lift %v %v availability for level %v: %w",
			t.ForLift, t.CabinDoor, t.OnLevel, site.ErrLevelNotFound,
		))
		return
	}

	door, err := s.occupyFace(w, t, cabin)
	if err != nil {
		report(s.OnError, "lift doors", err)
		return
	}

	if visits, ok := ecs.Get(w, door, site.LevelVisitsComponent.Kind()); ok {
		visits.Insert(t.OnLevel)
		ecs.Remove(w, door, site.PendingComponent.Kind())
		_ = ecs.Add(w, door, site.VisibilityComponent.Kind(), site.Visible())
		projectVisibility(w, door, visits, current)
	}

	if edge, ok := ecs.Get(w, door, site.EdgeComponent.Kind()); ok {
		for _, a := range edge.Array() {
			ecs.Remove(w, a, site.PendingComponent.Kind())
			_ = ecs.Add(w, a, site.VisibilityComponent.Kind(), site.Visible())
		}
	}

	site.MarkCabinDirty(w, t.ForLift)
}

// occupyFace returns the door addressed by t, reviving a recalled door or
// fabricating a new one when the face is empty.
func (s *LiftDoorSystem) occupyFace(w *ecs.World, t site.ToggleLiftDoorAvailability, cabin *site.LiftCabin) (ecs.Entity, error) {
	rect := cabin.Rect
	if t.CabinDoor.IsEntity() {
		door := t.CabinDoor.Entity
		if err := checkDoorOfLift(w, t.ForLift, door); err != nil {
			return 0, err
		}
		if _, ok := rect.FaceOf(door); ok {
			return door, nil
		}
		if err := reclaimFace(w, t.ForLift, door, rect); err != nil {
			return 0, err
		}
		return door, nil
	}

	face := t.CabinDoor.Face
	if p := rect.Door(face); p != nil {
		return p.Door, nil
	}

	recall, _ := ecs.Get(w, t.ForLift, site.RecallLiftCabinComponent.Kind())
	if old := recall.RectDoor(face); old != nil && ecs.Has(w, old.Door, site.LiftCabinDoorMarkerComponent.Kind()) {
		placement := *old
		rect.SetDoor(face, &placement)
		return placement.Door, nil
	}

	door, err := site.SpawnCabinDoor(w, t.ForLift, face, rect.NewDoorWidth(), 0, t.OnLevel)
	if err != nil {
		return 0, fmt.Errorf("lift %v new %v door: %w", t.ForLift, face, err)
	}
	return door, nil
}

// reclaimFace puts a released door back on the face it last held.
func reclaimFace(w *ecs.World, lift, door ecs.Entity, rect *site.RectCabin) error {
	recall, _ := ecs.Get(w, lift, site.RecallLiftCabinComponent.Kind())
	face, ok := recall.FaceOf(door)
	if !ok {
		return fmt.Errorf("lift %v has no face to restore door %v on", lift, door)
	}
	if p := rect.Door(face); p != nil {
		return fmt.Errorf("restore door %v on lift %v %v face held by %v: %w", door, lift, face, p.Door, site.ErrFaceOccupied)
	}
	placement := *recall.RectDoor(face)
	rect.SetDoor(face, &placement)
	return nil
}

func checkDoorOfLift(w *ecs.World, lift, door ecs.Entity) error {
	if !ecs.Has(w, door, site.LiftCabinDoorMarkerComponent.Kind()) {
		return fmt.Errorf("lift %v: %v is not a cabin door", lift, door)
	}
	if parent, ok := ecs.Parent(w, door); !ok || parent != lift {
		return fmt.Errorf("lift %v door %v: %w", lift, door, site.ErrDoorNotOnLift)
	}
	return nil
}

func (s *LiftDoorSystem) disable(w *ecs.World, t site.ToggleLiftDoorAvailability, current *site.CurrentLevel) {
	cabin, ok := ecs.Get(w, t.ForLift, site.LiftCabinComponent.Kind())
	if !ok || cabin.Rect == nil {
		report(s.OnError, "lift doors", fmt.Errorf("toggle off lift %v: %w", t.ForLift, site.ErrMissingCabin))
		return
	}

	var door ecs.Entity
	if t.CabinDoor.IsEntity() {
		door = t.CabinDoor.Entity
		if err := checkDoorOfLift(w, t.ForLift, door); err != nil {
			report(s.OnError, "lift doors", err)
			return
		}
	} else if p := cabin.Rect.Door(t.CabinDoor.Face); p != nil {
		door = p.Door
	}
	if !door.Valid() {
		return
	}

	if visits, ok := ecs.Get(w, door, site.LevelVisitsComponent.Kind()); ok {
		visits.Remove(t.OnLevel)
		projectVisibility(w, door, visits, current)
		if visits.IsEmpty() {
			removeDoor(w, t.ForLift, door, cabin)
		}
	}

	site.MarkCabinDirty(w, t.ForLift)
}

func (s *LiftDoorSystem) removeLevels(w *ecs.World, levels []ecs.Entity) {
	var emptied []ecs.Entity
	ecs.ForEach2(w, site.LiftCabinDoorMarkerComponent.Kind(), site.LevelVisitsComponent.Kind(), func(door ecs.Entity, _ *site.LiftCabinDoorMarker, visits *site.LevelVisits) {
		changed := false
		for _, level := range levels {
			if visits.Remove(level) {
				changed = true
			}
		}
		if changed && visits.IsEmpty() {
			emptied = append(emptied, door)
		}
	})

	for _, door := range emptied {
		lift, ok := ecs.Parent(w, door)
		if !ok {
			report(s.OnError, "lift doors", fmt.Errorf("door %v while handling a removed level: %w", door, site.ErrMissingParentLift))
			continue
		}
		cabin, ok := ecs.Get(w, lift, site.LiftCabinComponent.Kind())
		if !ok {
			report(s.OnError, "lift doors", fmt.Errorf("lift %v of door %v: %w", lift, door, site.ErrMissingCabin))
			continue
		}
		removeDoor(w, lift, door, cabin)
	}
}

// removeDoor clears door from its face and parks it as pending. Its anchors
// are parked too unless something other than the door still depends on them.
func removeDoor(w *ecs.World, lift, door ecs.Entity, cabin *site.LiftCabin) {
	recall, ok := ecs.Get(w, lift, site.RecallLiftCabinComponent.Kind())
	if !ok {
		recall = &site.RecallLiftCabin{}
		_ = ecs.Add(w, lift, site.RecallLiftCabinComponent.Kind(), recall)
	}
	recall.Remember(cabin)
	cabin.RemoveDoor(door)

	_ = ecs.Add(w, door, site.PendingComponent.Kind(), &site.Pending{})
	_ = ecs.Add(w, door, site.VisibilityComponent.Kind(), site.Hidden())

	edge, ok := ecs.Get(w, door, site.EdgeComponent.Kind())
	if !ok {
		return
	}
	for _, a := range edge.Array() {
		if deps, ok := ecs.Get(w, a, site.DependentsComponent.Kind()); ok && deps.AnyOtherThan(door) {
			return
		}
	}
	for _, a := range edge.Array() {
		_ = ecs.Add(w, a, site.PendingComponent.Kind(), &site.Pending{})
		_ = ecs.Add(w, a, site.VisibilityComponent.Kind(), site.Hidden())
	}
}

func projectVisibility(w *ecs.World, door ecs.Entity, visits *site.LevelVisits, current *site.CurrentLevel) {
	if current == nil || !current.Level.Valid() {
		return
	}
	_ = ecs.Add(w, door, site.VisibilityComponent.Kind(), &site.Visibility{Hidden: !visits.Contains(current.Level)})
}

func markAllCabinsDirty(w *ecs.World) {
	ecs.ForEach(w, site.LiftCabinComponent.Kind(), func(lift ecs.Entity, _ *site.LiftCabin) {
		site.MarkCabinDirty(w, lift)
	})
}
