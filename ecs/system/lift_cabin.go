package system

import (
	"fmt"
	"slices"

	"github.com/milk9111/siteeditor/ecs"
	"github.com/milk9111/siteeditor/geometry"
	"github.com/milk9111/siteeditor/site"
)

// LiftCabinSystem rebuilds the render group of every lift whose cabin is
// dirty or whose site changed since its last build: floor and wall meshes,
// one hidden doormat per face per level of the lift's site, door anchor
// positions and the cabin anchor group transform.
type LiftCabinSystem struct {
	DoormatThickness float64
	OnError          ErrorHandler
}

func NewLiftCabinSystem() *LiftCabinSystem {
	return &LiftCabinSystem{DoormatThickness: site.DefaultDoormatThickness}
}

func (s *LiftCabinSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach(w, site.LiftCabinComponent.Kind(), func(lift ecs.Entity, cabin *site.LiftCabin) {
		siteRoot, _ := site.SiteOf(w, lift)
		group, hasGroup := ecs.Get(w, lift, site.ChildLiftCabinGroupComponent.Kind())
		stale := !hasGroup || !ecs.IsAlive(w, group.Group) || group.BuiltForSite != siteRoot
		if !stale && !ecs.Has(w, lift, site.CabinDirtyComponent.Kind()) {
			return
		}
		if hasGroup {
			ecs.DespawnRecursive(w, group.Group)
			ecs.Remove(w, lift, site.ChildLiftCabinGroupComponent.Kind())
		}
		if err := s.rebuild(w, lift, cabin, siteRoot); err != nil {
			report(s.OnError, "lift cabin", fmt.Errorf("rebuild cabin of lift %v: %w", lift, err))
		}
		ecs.Remove(w, lift, site.CabinDirtyComponent.Kind())
	})
}

func (s *LiftCabinSystem) rebuild(w *ecs.World, lift ecs.Entity, cabin *site.LiftCabin, siteRoot ecs.Entity) error {
	rect := cabin.Rect
	if rect == nil {
		return site.ErrMissingCabin
	}
	cabinTf := rect.CabinTransform()
	t := rect.Thickness()

	group := ecs.CreateEntity(w)
	if err := ecs.Add(w, group, site.TransformComponent.Kind(), &site.Transform{Transform: cabinTf}); err != nil {
		return err
	}
	if err := ecs.Add(w, group, site.VisibilityComponent.Kind(), site.Visible()); err != nil {
		return err
	}
	if err := ecs.SetParent(w, group, lift); err != nil {
		return err
	}

	floor := geometry.FlatRectMesh(rect.Depth+2*t, rect.Width+2*t)
	if err := spawnMesh(w, group, lift, floor, site.MaterialLiftFloor); err != nil {
		return err
	}
	var walls geometry.MeshBuffer
	for _, seg := range rect.WallCoordinates() {
		walls = walls.MergeWith(geometry.WallMesh(seg[0], seg[1], t, site.DefaultLevelHeight/3))
	}
	if err := spawnMesh(w, group, lift, walls, site.MaterialLiftWall); err != nil {
		return err
	}

	recall, _ := ecs.Get(w, lift, site.RecallLiftCabinComponent.Kind())
	regions := rect.LevelDoormats(s.thickness(), recall)
	for _, level := range levelsOf(w, siteRoot) {
		for _, region := range regions {
			available := false
			if region.Door.Valid() {
				if visits, ok := ecs.Get(w, region.Door, site.LevelVisitsComponent.Kind()); ok {
					available = visits.Contains(level)
				}
			}
			if err := spawnDoormat(w, group, site.LiftDoormat{
				ForLift:       lift,
				OnLevel:       level,
				CabinDoor:     site.CabinDoorFace(region.Face),
				DoorAvailable: available,
				Region:        region.Aabb,
			}); err != nil {
				return err
			}
		}
	}

	if err := ecs.Add(w, lift, site.ChildLiftCabinGroupComponent.Kind(), &site.ChildLiftCabinGroup{
		Group:        group,
		BuiltForSite: siteRoot,
	}); err != nil {
		return err
	}

	for _, face := range site.AllRectFaces {
		p := rect.Door(face)
		local, ok := rect.LevelDoorAnchors(face)
		if p == nil || !ok {
			continue
		}
		edge, ok := ecs.Get(w, p.Door, site.EdgeComponent.Kind())
		if !ok {
			continue
		}
		for i, a := range edge.Array() {
			if anchor, ok := ecs.Get(w, a, site.AnchorComponent.Kind()); ok {
				*anchor = local[i]
			}
		}
	}

	anchorGroup, err := site.EnsureCabinAnchorGroup(w, lift)
	if err != nil {
		return err
	}
	if err := ecs.Add(w, anchorGroup, site.TransformComponent.Kind(), &site.Transform{Transform: cabinTf}); err != nil {
		return err
	}

	if recall == nil {
		recall = &site.RecallLiftCabin{}
		if err := ecs.Add(w, lift, site.RecallLiftCabinComponent.Kind(), recall); err != nil {
			return err
		}
	}
	recall.Remember(cabin)
	return nil
}

func (s *LiftCabinSystem) thickness() float64 {
	if s.DoormatThickness > 0 {
		return s.DoormatThickness
	}
	return site.DefaultDoormatThickness
}

func spawnMesh(w *ecs.World, group, owner ecs.Entity, buf geometry.MeshBuffer, material site.Material) error {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, site.MeshComponent.Kind(), &site.Mesh{Buffer: buf, Material: material}); err != nil {
		return err
	}
	if err := ecs.Add(w, e, site.TransformComponent.Kind(), &site.Transform{}); err != nil {
		return err
	}
	if err := ecs.Add(w, e, site.VisibilityComponent.Kind(), site.Visible()); err != nil {
		return err
	}
	if err := ecs.Add(w, e, site.SelectableComponent.Kind(), &site.Selectable{Element: owner}); err != nil {
		return err
	}
	return ecs.SetParent(w, e, group)
}

// spawnDoormat adds a mat under group. Mats start hidden; presentation code
// reveals them when it wants them as a cue.
func spawnDoormat(w *ecs.World, group ecs.Entity, mat site.LiftDoormat) error {
	e := ecs.CreateEntity(w)
	mesh := &site.Mesh{Buffer: geometry.FlatMeshForAabb(mat.Region), Material: site.MaterialDoormat}
	if err := ecs.Add(w, e, site.MeshComponent.Kind(), mesh); err != nil {
		return err
	}
	if err := ecs.Add(w, e, site.TransformComponent.Kind(), &site.Transform{}); err != nil {
		return err
	}
	if err := ecs.Add(w, e, site.VisibilityComponent.Kind(), site.Hidden()); err != nil {
		return err
	}
	if err := ecs.Add(w, e, site.LiftDoormatComponent.Kind(), &mat); err != nil {
		return err
	}
	return ecs.SetParent(w, e, group)
}

// levelsOf lists the levels directly under siteRoot in ascending entity order.
func levelsOf(w *ecs.World, siteRoot ecs.Entity) []ecs.Entity {
	if !siteRoot.Valid() {
		return nil
	}
	var out []ecs.Entity
	ecs.ForEach(w, site.LevelComponent.Kind(), func(level ecs.Entity, _ *site.Level) {
		if p, ok := ecs.Parent(w, level); ok && p == siteRoot {
			out = append(out, level)
		}
	})
	slices.SortFunc(out, ecs.Compare)
	return out
}
