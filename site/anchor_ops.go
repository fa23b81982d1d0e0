package site

import (
	"fmt"

	"github.com/milk9111/siteeditor/ecs"
	"github.com/milk9111/siteeditor/geometry"
)

// AnchorPoint returns anchor's position in the world frame.
func AnchorPoint(w *ecs.World, anchor ecs.Entity) (geometry.Vec3, error) {
	a, ok := ecs.Get(w, anchor, AnchorComponent.Kind())
	if !ok {
		return geometry.Vec3{}, fmt.Errorf("anchor %v: %w", anchor, ErrNotAnAnchor)
	}
	p := a.Point()
	if parent, ok := ecs.Parent(w, anchor); ok {
		p = GlobalTransform(w, parent).Apply(p)
	}
	return p, nil
}

// PointInParentFrameOf expresses anchor's position in the frame of e's
// parent, which is the frame e's own Transform is written in.
func PointInParentFrameOf(w *ecs.World, anchor, e ecs.Entity) (geometry.Vec3, error) {
	p, err := AnchorPoint(w, anchor)
	if err != nil {
		return geometry.Vec3{}, err
	}
	parent, ok := ecs.Parent(w, e)
	if !ok {
		return p, nil
	}
	return GlobalTransform(w, parent).Inverse().Apply(p), nil
}

// MoveAnchor sets the local position of a free anchor. Subordinate anchors
// follow their owner and cannot be moved directly.
func MoveAnchor(w *ecs.World, anchor ecs.Entity, to geometry.Vec3) error {
	a, ok := ecs.Get(w, anchor, AnchorComponent.Kind())
	if !ok {
		return fmt.Errorf("move anchor %v: %w", anchor, ErrNotAnAnchor)
	}
	if ecs.Has(w, anchor, SubordinateComponent.Kind()) {
		return fmt.Errorf("move anchor %v: %w", anchor, ErrSubordinateAnchor)
	}
	a.Position = to
	if !a.Is3D() {
		a.Position.Z = 0
	}
	return ecs.Add(w, anchor, AnchorMovedComponent.Kind(), &AnchorMoved{})
}

// DeleteAnchor destroys an anchor nothing depends on.
func DeleteAnchor(w *ecs.World, anchor ecs.Entity) error {
	if !ecs.Has(w, anchor, AnchorComponent.Kind()) {
		return fmt.Errorf("delete anchor %v: %w", anchor, ErrNotAnAnchor)
	}
	if ecs.Has(w, anchor, SubordinateComponent.Kind()) {
		return fmt.Errorf("delete anchor %v: %w", anchor, ErrSubordinateAnchor)
	}
	if deps, ok := ecs.Get(w, anchor, DependentsComponent.Kind()); ok && !deps.IsEmpty() {
		return fmt.Errorf("delete anchor %v (%d dependents): %w", anchor, deps.Len(), ErrAnchorInUse)
	}
	ecs.DespawnRecursive(w, anchor)
	return nil
}

// SpawnAnchor creates an anchor under parent with an empty dependents set.
func SpawnAnchor(w *ecs.World, parent ecs.Entity, a Anchor) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, AnchorComponent.Kind(), &a); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, DependentsComponent.Kind(), NewDependents()); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, CategoryComponent.Kind(), ptr(CategoryAnchor)); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, VisibilityComponent.Kind(), Visible()); err != nil {
		return 0, err
	}
	if parent.Valid() {
		if err := ecs.SetParent(w, e, parent); err != nil {
			return 0, fmt.Errorf("spawn anchor: %w", err)
		}
	}
	return e, nil
}

func ptr[T any](v T) *T {
	return &v
}
