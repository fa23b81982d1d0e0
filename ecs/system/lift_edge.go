package system

import (
	"fmt"
	"math"

	"github.com/milk9111/siteeditor/ecs"
	"github.com/milk9111/siteeditor/geometry"
	"github.com/milk9111/siteeditor/site"
)

// LiftEdgeSystem places lifts from their reference anchors. It runs for new
// lifts and for lifts whose anchors were moved since the last tick.
type LiftEdgeSystem struct {
	// SameAnchorWidth spans lifts whose reference edge starts and ends on one
	// anchor. Zero means site.DefaultCabinWidth.
	SameAnchorWidth float64
	OnError         ErrorHandler
}

func NewLiftEdgeSystem() *LiftEdgeSystem { return &LiftEdgeSystem{} }

func (s *LiftEdgeSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	stale := make(map[ecs.Entity]struct{})
	for _, e := range ecs.Added(w, site.EdgeComponent.Kind()) {
		stale[e] = struct{}{}
	}
	for _, e := range ecs.Added(w, site.LiftCabinComponent.Kind()) {
		stale[e] = struct{}{}
	}
	ecs.ForEach(w, site.AnchorMovedComponent.Kind(), func(a ecs.Entity, _ *site.AnchorMoved) {
		if deps, ok := ecs.Get(w, a, site.DependentsComponent.Kind()); ok {
			for _, d := range deps.Sorted() {
				stale[d] = struct{}{}
			}
		}
		ecs.Remove(w, a, site.AnchorMovedComponent.Kind())
	})

	for e := range stale {
		if !ecs.Has(w, e, site.LiftCabinComponent.Kind()) {
			continue
		}
		edge, ok := ecs.Get(w, e, site.EdgeComponent.Kind())
		if !ok {
			continue
		}
		tf, err := MakeLiftTransform(w, e, *edge, s.SameAnchorWidth)
		if err != nil {
			report(s.OnError, "lift edge", err)
			continue
		}
		_ = ecs.Add(w, e, site.TransformComponent.Kind(), &site.Transform{Transform: tf})
	}
}

// MakeLiftTransform centres a lift between its reference anchors and turns it
// to face along the edge. A lift referencing one anchor twice spans width
// along -Y, or the default cabin width when width is not positive.
func MakeLiftTransform(w *ecs.World, lift ecs.Entity, edge site.Edge, width float64) (geometry.Transform, error) {
	start, err := site.PointInParentFrameOf(w, edge.Start(), lift)
	if err != nil {
		return geometry.Transform{}, fmt.Errorf("lift %v start anchor: %w", lift, err)
	}
	end, err := site.PointInParentFrameOf(w, edge.End(), lift)
	if err != nil {
		return geometry.Transform{}, fmt.Errorf("lift %v end anchor: %w", lift, err)
	}
	if edge.Left == edge.Right {
		if width <= 0 {
			width = site.DefaultCabinWidth
		}
		end = start.Sub(geometry.UnitY.Scale(width))
	}

	dp := start.Sub(end)
	center := start.Add(end).Scale(0.5)
	return geometry.Transform{
		Translation: geometry.V3(center.X, center.Y, 0),
		Yaw:         math.Atan2(-dp.X, dp.Y),
	}, nil
}
