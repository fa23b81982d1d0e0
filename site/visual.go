package site

import (
	"github.com/milk9111/siteeditor/ecs"
	"github.com/milk9111/siteeditor/ecs/component"
	"github.com/milk9111/siteeditor/geometry"
)

type Visibility struct {
	Hidden bool
}

func Visible() *Visibility { return &Visibility{} }
func Hidden() *Visibility  { return &Visibility{Hidden: true} }

var VisibilityComponent = component.NewComponent[Visibility]()

// IsVisible treats entities without a Visibility component as visible.
func IsVisible(w *ecs.World, e ecs.Entity) bool {
	v, ok := ecs.Get(w, e, VisibilityComponent.Kind())
	return !ok || !v.Hidden
}

// Pending marks an element that was removed by the user but kept around so it
// can be revived. Pending elements are left out of saved sites.
type Pending struct{}

var PendingComponent = component.NewComponent[Pending]()

// Transform places an entity in its parent's frame.
type Transform struct {
	geometry.Transform
}

var TransformComponent = component.NewComponent[Transform]()

// GlobalTransform composes every Transform from the root down to e.
func GlobalTransform(w *ecs.World, e ecs.Entity) geometry.Transform {
	chain := []ecs.Entity{e}
	for a := range ecs.Ancestors(w, e) {
		chain = append(chain, a)
	}
	out := geometry.Identity()
	for i := len(chain) - 1; i >= 0; i-- {
		if tf, ok := ecs.Get(w, chain[i], TransformComponent.Kind()); ok {
			out = out.Mul(tf.Transform)
		}
	}
	return out
}

type Material string

const (
	MaterialLiftFloor Material = "lift_floor"
	MaterialLiftWall  Material = "lift_wall"
	MaterialDoormat   Material = "doormat"
)

// Mesh is the render payload handed to the presentation layer.
type Mesh struct {
	Buffer   geometry.MeshBuffer
	Material Material
}

var MeshComponent = component.NewComponent[Mesh]()

// Selectable routes picks on a render child back to the element that owns it.
type Selectable struct {
	Element ecs.Entity
}

var SelectableComponent = component.NewComponent[Selectable]()
