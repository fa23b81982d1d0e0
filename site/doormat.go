package site

import (
	"slices"

	"github.com/milk9111/siteeditor/ecs"
	"github.com/milk9111/siteeditor/ecs/component"
	"github.com/milk9111/siteeditor/geometry"
)

// CabinDoorID addresses a cabin door either by face or directly by entity.
type CabinDoorID struct {
	Entity ecs.Entity
	Face   RectFace
}

func CabinDoorFace(face RectFace) CabinDoorID {
	return CabinDoorID{Face: face}
}

func CabinDoorEntity(door ecs.Entity) CabinDoorID {
	return CabinDoorID{Entity: door}
}

func (id CabinDoorID) IsEntity() bool {
	return id.Entity.Valid()
}

func (id CabinDoorID) String() string {
	if id.IsEntity() {
		return "door " + id.Entity.String()
	}
	return id.Face.String() + " face"
}

// LiftDoormat is a clickable region in front of one cabin face on one level.
type LiftDoormat struct {
	ForLift       ecs.Entity
	OnLevel       ecs.Entity
	CabinDoor     CabinDoorID
	DoorAvailable bool
	// Region is the mat footprint in the cabin frame.
	Region geometry.Aabb
}

// ToggleAvailability builds the request that flips this mat's availability.
func (d LiftDoormat) ToggleAvailability() ToggleLiftDoorAvailability {
	return ToggleLiftDoorAvailability{
		ForLift:       d.ForLift,
		OnLevel:       d.OnLevel,
		CabinDoor:     d.CabinDoor,
		DoorAvailable: !d.DoorAvailable,
	}
}

var LiftDoormatComponent = component.NewComponent[LiftDoormat]()

const ToggleLiftDoorAvailabilityEvent = "lift_door_availability"

// ToggleLiftDoorAvailability is the only way to change cabin door state.
type ToggleLiftDoorAvailability struct {
	ForLift       ecs.Entity
	OnLevel       ecs.Entity
	CabinDoor     CabinDoorID
	DoorAvailable bool
}

func RequestToggle(w *ecs.World, t ToggleLiftDoorAvailability) {
	ecs.Emit(w, ToggleLiftDoorAvailabilityEvent, t)
}

// PickDoormat returns the doormat on level whose region contains the world
// point p. Mats are tested in ascending entity order.
func PickDoormat(w *ecs.World, level ecs.Entity, p geometry.Vec3) (ecs.Entity, LiftDoormat, bool) {
	mats := ecs.Query(w, LiftDoormatComponent.Kind().ID())
	slices.SortFunc(mats, ecs.Compare)
	for _, e := range mats {
		mat, ok := ecs.Get(w, e, LiftDoormatComponent.Kind())
		if !ok || mat.OnLevel != level {
			continue
		}
		local := GlobalTransform(w, e).Inverse().Apply(p)
		if mat.Region.ContainsPlanar(local.Planar()) {
			return e, *mat, true
		}
	}
	return 0, LiftDoormat{}, false
}
