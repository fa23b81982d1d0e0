package site

import (
	"github.com/milk9111/siteeditor/ecs"
	"github.com/milk9111/siteeditor/ecs/component"
)

// Edge references two anchors. Lifts and cabin doors both carry one.
type Edge struct {
	Left  ecs.Entity
	Right ecs.Entity
}

func NewEdge(left, right ecs.Entity) *Edge {
	return &Edge{Left: left, Right: right}
}

func (e Edge) Start() ecs.Entity { return e.Left }
func (e Edge) End() ecs.Entity   { return e.Right }

func (e Edge) Array() [2]ecs.Entity {
	return [2]ecs.Entity{e.Left, e.Right}
}

var EdgeComponent = component.NewComponent[Edge]()
