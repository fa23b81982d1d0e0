package site

import (
	"github.com/milk9111/siteeditor/ecs"
	"github.com/milk9111/siteeditor/ecs/component"
	"github.com/milk9111/siteeditor/geometry"
)

type AnchorKind int

const (
	AnchorTranslate2D AnchorKind = iota
	AnchorPose3D
)

// Anchor is a named reference point expressed in the frame of its parent
// container (site, level, or cabin anchor group).
type Anchor struct {
	Kind     AnchorKind
	Position geometry.Vec3
}

func Anchor2D(x, y float64) Anchor {
	return Anchor{Kind: AnchorTranslate2D, Position: geometry.V3(x, y, 0)}
}

func Anchor3D(x, y, z float64) Anchor {
	return Anchor{Kind: AnchorPose3D, Position: geometry.V3(x, y, z)}
}

func (a Anchor) Is3D() bool {
	return a.Kind == AnchorPose3D
}

// Point returns the anchor position in its parent frame. 2D anchors sit on
// the floor of their parent.
func (a Anchor) Point() geometry.Vec3 {
	if a.Is3D() {
		return a.Position
	}
	return geometry.V3(a.Position.X, a.Position.Y, 0)
}

var AnchorComponent = component.NewComponent[Anchor]()

// Dependents records which entities rely on an anchor (or on a cabin door).
// It only holds back-references; the owner never owns its dependents.
type Dependents struct {
	entitySet
}

func NewDependents(es ...ecs.Entity) *Dependents {
	return &Dependents{entitySet: newEntitySet(es...)}
}

// AnyOtherThan reports whether a dependent other than e is present.
func (d *Dependents) AnyOtherThan(e ecs.Entity) bool {
	for _, dep := range d.Sorted() {
		if dep != e {
			return true
		}
	}
	return false
}

var DependentsComponent = component.NewComponent[Dependents]()

// Subordinate marks an anchor whose lifecycle is driven by Owner. Subordinate
// anchors are excluded from independent moves and deletion.
type Subordinate struct {
	Owner ecs.Entity
}

var SubordinateComponent = component.NewComponent[Subordinate]()

// AnchorMoved is a transient marker set when an anchor's position changes so
// dependents can refresh their transforms.
type AnchorMoved struct{}

var AnchorMovedComponent = component.NewComponent[AnchorMoved]()
