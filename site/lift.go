package site

import (
	"github.com/milk9111/siteeditor/ecs"
	"github.com/milk9111/siteeditor/ecs/component"
)

// LiftCabin is the cabin variant of a lift. Rect is the only variant.
type LiftCabin struct {
	Rect *RectCabin
}

func NewRectLiftCabin(rect *RectCabin) *LiftCabin {
	return &LiftCabin{Rect: rect}
}

// RemoveDoor clears the placement of door from whichever face holds it.
func (c *LiftCabin) RemoveDoor(door ecs.Entity) bool {
	if c == nil || c.Rect == nil {
		return false
	}
	return c.Rect.RemoveDoor(door)
}

// DoorPlacements returns a copy of every occupied face.
func (c *LiftCabin) DoorPlacements() map[RectFace]LiftCabinDoorPlacement {
	out := make(map[RectFace]LiftCabinDoorPlacement)
	if c == nil || c.Rect == nil {
		return out
	}
	for _, f := range AllRectFaces {
		if p := c.Rect.Door(f); p != nil {
			out[f] = *p
		}
	}
	return out
}

var LiftCabinComponent = component.NewComponent[LiftCabin]()

// RecallLiftCabin remembers the last placement each face held so a door the
// user removed can be revived with its anchors and width. The current cabin
// always wins over what is recalled.
type RecallLiftCabin struct {
	Doors [len(AllRectFaces)]*LiftCabinDoorPlacement
}

func (r *RecallLiftCabin) RectDoor(face RectFace) *LiftCabinDoorPlacement {
	if r == nil || face < 0 || int(face) >= len(r.Doors) {
		return nil
	}
	return r.Doors[face]
}

// FaceOf returns the face whose remembered placement holds door.
func (r *RecallLiftCabin) FaceOf(door ecs.Entity) (RectFace, bool) {
	if r == nil {
		return 0, false
	}
	for _, f := range AllRectFaces {
		if p := r.Doors[f]; p != nil && p.Door == door {
			return f, true
		}
	}
	return 0, false
}

// Remember copies every occupied face of cabin into the recall.
func (r *RecallLiftCabin) Remember(cabin *LiftCabin) {
	if r == nil || cabin == nil || cabin.Rect == nil {
		return
	}
	for _, f := range AllRectFaces {
		if p := cabin.Rect.Door(f); p != nil {
			placement := *p
			r.Doors[f] = &placement
		}
	}
}

var RecallLiftCabinComponent = component.NewComponent[RecallLiftCabin]()

// CabinDirty requests a rebuild of the cabin geometry and doormats.
type CabinDirty struct{}

var CabinDirtyComponent = component.NewComponent[CabinDirty]()

// MarkCabinDirty flags lift for a cabin rebuild on the next geometry pass.
func MarkCabinDirty(w *ecs.World, lift ecs.Entity) {
	_ = ecs.Add(w, lift, CabinDirtyComponent.Kind(), &CabinDirty{})
}

// ChildLiftCabinGroup points at the render group holding the cabin meshes and
// doormats. BuiltForSite is the site the group was built against.
type ChildLiftCabinGroup struct {
	Group        ecs.Entity
	BuiltForSite ecs.Entity
}

var ChildLiftCabinGroupComponent = component.NewComponent[ChildLiftCabinGroup]()

// ChildCabinAnchorGroup points at the container of the cabin's door anchors.
type ChildCabinAnchorGroup struct {
	Group ecs.Entity
}

var ChildCabinAnchorGroupComponent = component.NewComponent[ChildCabinAnchorGroup]()

type CabinAnchorGroup struct{}

var CabinAnchorGroupComponent = component.NewComponent[CabinAnchorGroup]()
