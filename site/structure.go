package site

import (
	"github.com/milk9111/siteeditor/ecs"
	"github.com/milk9111/siteeditor/ecs/component"
)

type Category int

const (
	CategorySite Category = iota
	CategoryLevel
	CategoryLift
	CategoryAnchor
	CategoryDoor
)

func (c Category) String() string {
	switch c {
	case CategorySite:
		return "Site"
	case CategoryLevel:
		return "Level"
	case CategoryLift:
		return "Lift"
	case CategoryAnchor:
		return "Anchor"
	case CategoryDoor:
		return "Door"
	default:
		return "Unknown"
	}
}

var CategoryComponent = component.NewComponent[Category]()

// Site is the root of one facility layout.
type Site struct {
	Name string
}

var SiteComponent = component.NewComponent[Site]()

// Level is a floor of a site. Levels are children of their site.
type Level struct {
	Elevation float64
}

var LevelComponent = component.NewComponent[Level]()

type NameInSite struct {
	Name string
}

var NameInSiteComponent = component.NewComponent[NameInSite]()

// CurrentWorkspace is the root the editor is working in.
type CurrentWorkspace struct {
	Root ecs.Entity
}

// ToSite returns the workspace root when it is a live site.
func (c *CurrentWorkspace) ToSite(w *ecs.World) (ecs.Entity, bool) {
	if c == nil || !ecs.Has(w, c.Root, SiteComponent.Kind()) {
		return 0, false
	}
	return c.Root, true
}

// CurrentLevel is the floor the editor is showing. Changed is raised by
// SetCurrentLevel and cleared by the system that projects door visibility.
type CurrentLevel struct {
	Level   ecs.Entity
	Changed bool
}

func SetCurrentLevel(w *ecs.World, level ecs.Entity) {
	cur, ok := ecs.Resource[CurrentLevel](w)
	if !ok {
		ecs.SetResource(w, &CurrentLevel{Level: level, Changed: true})
		return
	}
	if cur.Level != level {
		cur.Level = level
		cur.Changed = true
	}
}

// SiteOf walks up from e to the nearest site entity.
func SiteOf(w *ecs.World, e ecs.Entity) (ecs.Entity, bool) {
	if ecs.Has(w, e, SiteComponent.Kind()) {
		return e, true
	}
	for a := range ecs.Ancestors(w, e) {
		if ecs.Has(w, a, SiteComponent.Kind()) {
			return a, true
		}
	}
	return 0, false
}
