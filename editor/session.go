// Package editor drives a site world: it owns the ECS world and the system
// schedule and exposes the edit operations used by scripts and the CLI.
package editor

import (
	"context"
	"fmt"
	"log"
	"slices"

	"github.com/milk9111/siteeditor/ecs"
	"github.com/milk9111/siteeditor/ecs/system"
	"github.com/milk9111/siteeditor/geometry"
	"github.com/milk9111/siteeditor/script"
	"github.com/milk9111/siteeditor/site"
	"github.com/milk9111/siteeditor/sitefile"
)

// Session is single goroutine: every method must be called from the
// goroutine that owns it.
type Session struct {
	World  *ecs.World
	Config Config
	// Index maps site file ids to entities when the session was opened from
	// a site file.
	Index *sitefile.Index

	scheduler *ecs.Scheduler
	errs      []error
}

func NewSession(cfg Config) *Session {
	cfg.normalize()
	s := &Session{World: ecs.NewWorld(), Config: cfg}

	ledger := system.NewAnchorLedgerSystem()
	tags := system.NewLiftTagSystem()
	edge := system.NewLiftEdgeSystem()
	edge.SameAnchorWidth = cfg.DefaultCabinWidth
	doors := system.NewLiftDoorSystem()
	cabins := system.NewLiftCabinSystem()
	cabins.DoormatThickness = cfg.DoormatThickness
	names := system.NewLiftNameSystem()
	names.ReplacePrevious = cfg.ReplacePreviousIssues

	ledger.OnError = s.report
	tags.OnError = s.report
	edge.OnError = s.report
	doors.OnError = s.report
	cabins.OnError = s.report
	names.OnError = s.report

	s.scheduler = ecs.NewScheduler(ledger, tags, edge, doors, cabins, names)
	return s
}

// Open builds spec into a fresh session, shows its lowest level and runs one
// tick so lifts are placed and cabins built.
func Open(cfg Config, spec *sitefile.SiteSpec) (*Session, error) {
	s := NewSession(cfg)
	ix, err := sitefile.Build(s.World, spec)
	if err != nil {
		return nil, err
	}
	s.Index = ix
	if levels := s.Levels(); len(levels) > 0 {
		site.SetCurrentLevel(s.World, levels[0])
	}
	s.Tick()
	return s, nil
}

func (s *Session) report(err error) {
	log.Printf("editor: %v", err)
	s.errs = append(s.errs, err)
}

// DrainErrors returns the errors systems reported since the last drain.
func (s *Session) DrainErrors() []error {
	out := s.errs
	s.errs = nil
	return out
}

// Tick runs every system once.
func (s *Session) Tick() {
	s.scheduler.Update(s.World)
}

// Site returns the current workspace site.
func (s *Session) Site() (ecs.Entity, bool) {
	ws, _ := ecs.Resource[site.CurrentWorkspace](s.World)
	return ws.ToSite(s.World)
}

// Levels lists the levels of the current site in ascending entity order.
func (s *Session) Levels() []ecs.Entity {
	root, ok := s.Site()
	if !ok {
		return nil
	}
	var out []ecs.Entity
	for _, c := range ecs.Children(s.World, root) {
		if ecs.Has(s.World, c, site.LevelComponent.Kind()) {
			out = append(out, c)
		}
	}
	slices.SortFunc(out, ecs.Compare)
	return out
}

func (s *Session) Level(name string) (ecs.Entity, error) {
	for _, level := range s.Levels() {
		if n, ok := ecs.Get(s.World, level, site.NameInSiteComponent.Kind()); ok && n.Name == name {
			return level, nil
		}
	}
	return 0, fmt.Errorf("level %q: %w", name, site.ErrLevelNotFound)
}

// Lifts lists the lifts of the current site in ascending entity order.
func (s *Session) Lifts() []ecs.Entity {
	root, ok := s.Site()
	if !ok {
		return nil
	}
	var out []ecs.Entity
	ecs.ForEach(s.World, site.LiftCabinComponent.Kind(), func(e ecs.Entity, _ *site.LiftCabin) {
		if ecs.IsDescendantOf(s.World, e, root) {
			out = append(out, e)
		}
	})
	slices.SortFunc(out, ecs.Compare)
	return out
}

// Lift returns the lowest lift entity carrying name.
func (s *Session) Lift(name string) (ecs.Entity, error) {
	for _, lift := range s.Lifts() {
		if n, ok := ecs.Get(s.World, lift, site.NameInSiteComponent.Kind()); ok && n.Name == name {
			return lift, nil
		}
	}
	return 0, fmt.Errorf("lift %q: %w", name, ErrLiftNotFound)
}

// Anchor resolves a site file anchor id.
func (s *Session) Anchor(id uint32) (ecs.Entity, error) {
	if s.Index != nil {
		if a, ok := s.Index.Anchors[id]; ok && ecs.IsAlive(s.World, a) {
			return a, nil
		}
	}
	return 0, fmt.Errorf("anchor %d: %w", id, ErrAnchorNotFound)
}

// Toggle queues a change of door availability for face of lift on level. It
// takes effect on the next tick.
func (s *Session) Toggle(lift, level ecs.Entity, face site.RectFace, available bool) {
	site.RequestToggle(s.World, site.ToggleLiftDoorAvailability{
		ForLift:       lift,
		OnLevel:       level,
		CabinDoor:     site.CabinDoorFace(face),
		DoorAvailable: available,
	})
}

// ToggleDoormat flips the availability shown by mat.
func (s *Session) ToggleDoormat(mat site.LiftDoormat) {
	site.RequestToggle(s.World, mat.ToggleAvailability())
}

func (s *Session) AddLevel(name string, elevation float64) (ecs.Entity, error) {
	root, ok := s.Site()
	if !ok {
		return 0, site.ErrNoCurrentWorkspace
	}
	return site.SpawnLevel(s.World, root, name, elevation)
}

// RemoveLevel destroys level and everything under it. When it was the
// current level the lowest remaining level takes its place.
func (s *Session) RemoveLevel(level ecs.Entity) error {
	if !ecs.Has(s.World, level, site.LevelComponent.Kind()) {
		return fmt.Errorf("remove %v: %w", level, site.ErrLevelNotFound)
	}
	ecs.DespawnRecursive(s.World, level)
	if cur, ok := ecs.Resource[site.CurrentLevel](s.World); ok && cur.Level == level {
		var next ecs.Entity
		if levels := s.Levels(); len(levels) > 0 {
			next = levels[0]
		}
		site.SetCurrentLevel(s.World, next)
	}
	return nil
}

func (s *Session) SetCurrentLevel(level ecs.Entity) error {
	if !ecs.Has(s.World, level, site.LevelComponent.Kind()) {
		return fmt.Errorf("show %v: %w", level, site.ErrLevelNotFound)
	}
	site.SetCurrentLevel(s.World, level)
	return nil
}

func (s *Session) MoveAnchor(anchor ecs.Entity, to geometry.Vec3) error {
	return site.MoveAnchor(s.World, anchor, to)
}

func (s *Session) DeleteAnchor(anchor ecs.Entity) error {
	return site.DeleteAnchor(s.World, anchor)
}

// Validate runs the validators over the current site and returns every issue
// now attached to it.
func (s *Session) Validate() ([]site.Issue, error) {
	root, ok := s.Site()
	if !ok {
		return nil, site.ErrNoCurrentWorkspace
	}
	site.RequestValidation(s.World, root)
	s.Tick()
	return site.IssuesUnder(s.World, root), nil
}

// PickDoormat finds the doormat on level under the world point (x, y).
func (s *Session) PickDoormat(level ecs.Entity, x, y float64) (site.LiftDoormat, bool) {
	_, mat, ok := site.PickDoormat(s.World, level, geometry.V3(x, y, 0))
	return mat, ok
}

// Snapshot captures the current site for saving.
func (s *Session) Snapshot() (*sitefile.SiteSpec, error) {
	return sitefile.Snapshot(s.World)
}

// Apply executes cmds in order, ticking after each one so later commands see
// the effects of earlier ones. It stops at the first failing command.
func (s *Session) Apply(ctx context.Context, cmds []script.Command) error {
	for i, cmd := range cmds {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.apply(cmd); err != nil {
			return fmt.Errorf("command %d (%s): %w", i, cmd, err)
		}
		s.Tick()
	}
	return nil
}

func (s *Session) apply(cmd script.Command) error {
	switch cmd.Op {
	case script.OpToggle:
		lift, err := s.Lift(cmd.Lift)
		if err != nil {
			return err
		}
		level, err := s.Level(cmd.Level)
		if err != nil {
			return err
		}
		face, err := site.ParseRectFace(cmd.Face)
		if err != nil {
			return err
		}
		s.Toggle(lift, level, face, cmd.Available)
	case script.OpAddLevel:
		_, err := s.AddLevel(cmd.Level, cmd.Elevation)
		return err
	case script.OpRemoveLevel:
		level, err := s.Level(cmd.Level)
		if err != nil {
			return err
		}
		return s.RemoveLevel(level)
	case script.OpCurrentLevel:
		level, err := s.Level(cmd.Level)
		if err != nil {
			return err
		}
		return s.SetCurrentLevel(level)
	case script.OpMoveAnchor:
		anchor, err := s.Anchor(cmd.Anchor)
		if err != nil {
			return err
		}
		to := geometry.V3(cmd.X, cmd.Y, 0)
		if cmd.Z != nil {
			to.Z = *cmd.Z
		}
		return s.MoveAnchor(anchor, to)
	case script.OpValidate:
		_, err := s.Validate()
		return err
	default:
		return fmt.Errorf("%w %q", script.ErrUnknownOp, cmd.Op)
	}
	return nil
}
