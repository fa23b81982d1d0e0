package editor

import (
	"github.com/milk9111/siteeditor/ecs"
	"github.com/milk9111/siteeditor/site"
)

// Summary is a name-level view of the site for reporting.
type Summary struct {
	Site         string         `yaml:"site"`
	CurrentLevel string         `yaml:"current_level,omitempty"`
	Levels       []string       `yaml:"levels"`
	Lifts        []LiftSummary  `yaml:"lifts"`
	Issues       []IssueSummary `yaml:"issues,omitempty"`
}

type LiftSummary struct {
	Name     string        `yaml:"name"`
	Yaw      float64       `yaml:"yaw"`
	X        float64       `yaml:"x"`
	Y        float64       `yaml:"y"`
	Doors    []DoorSummary `yaml:"doors,omitempty"`
	Doormats int           `yaml:"doormats"`
}

type DoorSummary struct {
	Face   string   `yaml:"face"`
	Width  float64  `yaml:"width"`
	Visits []string `yaml:"visits,flow"`
}

type IssueSummary struct {
	Brief string   `yaml:"brief"`
	Hint  string   `yaml:"hint"`
	Lifts []string `yaml:"lifts,flow"`
}

func (s *Session) Summary() Summary {
	w := s.World
	var out Summary
	root, ok := s.Site()
	if !ok {
		return out
	}
	out.Site = s.Name(root)
	if cur, ok := ecs.Resource[site.CurrentLevel](w); ok && cur.Level.Valid() {
		out.CurrentLevel = s.Name(cur.Level)
	}
	for _, level := range s.Levels() {
		out.Levels = append(out.Levels, s.Name(level))
	}

	for _, lift := range s.Lifts() {
		ls := LiftSummary{Name: s.Name(lift)}
		if tf, ok := ecs.Get(w, lift, site.TransformComponent.Kind()); ok {
			ls.X, ls.Y, ls.Yaw = tf.Translation.X, tf.Translation.Y, tf.Yaw
		}
		cabin, _ := ecs.Get(w, lift, site.LiftCabinComponent.Kind())
		for _, face := range site.AllRectFaces {
			if cabin == nil || cabin.Rect == nil {
				break
			}
			p := cabin.Rect.Door(face)
			if p == nil {
				continue
			}
			ds := DoorSummary{Face: face.String(), Width: p.Width}
			if visits, ok := ecs.Get(w, p.Door, site.LevelVisitsComponent.Kind()); ok {
				for _, level := range visits.Sorted() {
					ds.Visits = append(ds.Visits, s.Name(level))
				}
			}
			ls.Doors = append(ls.Doors, ds)
		}
		if g, ok := ecs.Get(w, lift, site.ChildLiftCabinGroupComponent.Kind()); ok {
			for _, c := range ecs.Children(w, g.Group) {
				if ecs.Has(w, c, site.LiftDoormatComponent.Kind()) {
					ls.Doormats++
				}
			}
		}
		out.Lifts = append(out.Lifts, ls)
	}

	for _, issue := range site.IssuesUnder(w, root) {
		is := IssueSummary{Brief: issue.Brief, Hint: issue.Hint}
		for _, e := range issue.Key.Entities {
			is.Lifts = append(is.Lifts, s.Name(e))
		}
		out.Issues = append(out.Issues, is)
	}
	return out
}

// Name returns the site name of e, or its handle when it has none.
func (s *Session) Name(e ecs.Entity) string {
	if n, ok := ecs.Get(s.World, e, site.NameInSiteComponent.Kind()); ok {
		return n.Name
	}
	return e.String()
}
