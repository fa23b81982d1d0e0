package sitefile

import (
	"fmt"
	"slices"

	"github.com/milk9111/siteeditor/ecs"
	"github.com/milk9111/siteeditor/site"
)

// Index maps file ids to the entities built from them.
type Index struct {
	Site    ecs.Entity
	Levels  map[uint32]ecs.Entity
	Anchors map[uint32]ecs.Entity
	Lifts   map[uint32]ecs.Entity
}

// Build spawns the site described by spec into w. The new site becomes the
// current workspace when w has none.
func Build(w *ecs.World, spec *SiteSpec) (*Index, error) {
	if spec == nil {
		return nil, fmt.Errorf("sitefile: build: nil spec")
	}
	root, err := site.SpawnSite(w, spec.Name)
	if err != nil {
		return nil, fmt.Errorf("sitefile: spawn site %q: %w", spec.Name, err)
	}
	ix := &Index{
		Site:    root,
		Levels:  make(map[uint32]ecs.Entity, len(spec.Levels)),
		Anchors: make(map[uint32]ecs.Entity, len(spec.Anchors)),
		Lifts:   make(map[uint32]ecs.Entity, len(spec.Lifts)),
	}

	for _, l := range spec.Levels {
		e, err := site.SpawnLevel(w, root, l.Name, l.Elevation)
		if err != nil {
			return nil, fmt.Errorf("sitefile: level %d: %w", l.ID, err)
		}
		ix.Levels[l.ID] = e
	}

	for _, a := range spec.Anchors {
		parent := root
		if a.Level != 0 {
			level, ok := ix.Levels[a.Level]
			if !ok {
				return nil, fmt.Errorf("sitefile: anchor %d level %d: %w", a.ID, a.Level, ErrUnknownID)
			}
			parent = level
		}
		anchor := site.Anchor2D(a.X, a.Y)
		if a.Z != nil {
			anchor = site.Anchor3D(a.X, a.Y, *a.Z)
		}
		e, err := site.SpawnAnchor(w, parent, anchor)
		if err != nil {
			return nil, fmt.Errorf("sitefile: anchor %d: %w", a.ID, err)
		}
		ix.Anchors[a.ID] = e
	}

	for _, l := range spec.Lifts {
		if err := ix.buildLift(w, l); err != nil {
			return nil, fmt.Errorf("sitefile: lift %d %q: %w", l.ID, l.Name, err)
		}
	}
	return ix, nil
}

func (ix *Index) buildLift(w *ecs.World, l LiftSpec) error {
	if len(l.ReferenceAnchors) != 2 {
		return fmt.Errorf("need two reference anchors, got %d", len(l.ReferenceAnchors))
	}
	var refs [2]ecs.Entity
	for i, id := range l.ReferenceAnchors {
		a, ok := ix.Anchors[id]
		if !ok {
			return fmt.Errorf("anchor %d: %w", id, ErrUnknownID)
		}
		refs[i] = a
	}

	rect := &site.RectCabin{
		Width:         l.Cabin.Width,
		Depth:         l.Cabin.Depth,
		WallThickness: l.Cabin.WallThickness,
		Gap:           l.Cabin.Gap,
		Shift:         l.Cabin.Shift,
	}
	if rect.Width <= 0 {
		rect.Width = site.DefaultCabinWidth
	}
	if rect.Depth <= 0 {
		rect.Depth = site.DefaultCabinDepth
	}

	edge := site.Edge{Left: refs[0], Right: refs[1]}
	lift, err := site.SpawnLift(w, ix.Site, l.Name, edge, rect)
	if err != nil {
		return err
	}
	if err := site.RegisterDependent(w, lift, edge); err != nil {
		return err
	}
	ix.Lifts[l.ID] = lift

	faces := make([]string, 0, len(l.Cabin.Doors))
	for face := range l.Cabin.Doors {
		faces = append(faces, face)
	}
	slices.Sort(faces)
	for _, name := range faces {
		d := l.Cabin.Doors[name]
		face, err := site.ParseRectFace(name)
		if err != nil {
			return err
		}
		kind, err := site.ParseDoorKind(d.Kind)
		if err != nil {
			return err
		}
		visits := make([]ecs.Entity, 0, len(d.Visits))
		for _, id := range d.Visits {
			level, ok := ix.Levels[id]
			if !ok {
				return fmt.Errorf("%s door level %d: %w", face, id, ErrUnknownID)
			}
			visits = append(visits, level)
		}
		width := d.Width
		if width <= 0 {
			width = rect.NewDoorWidth()
		}
		door, err := site.SpawnCabinDoor(w, lift, face, width, d.Shifted, visits...)
		if err != nil {
			return err
		}
		ratio := d.Ratio
		if ratio <= 0 {
			ratio = 1
		}
		if err := ecs.Add(w, door, site.DoorTypeComponent.Kind(), &site.DoorType{Kind: kind, LeftRightRatio: ratio}); err != nil {
			return err
		}
	}
	return nil
}
