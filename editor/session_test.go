package editor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/milk9111/siteeditor/ecs"
	"github.com/milk9111/siteeditor/script"
	"github.com/milk9111/siteeditor/site"
	"github.com/milk9111/siteeditor/sitefile"
)

func openDemo(t *testing.T, cfg Config) *Session {
	t.Helper()
	spec, err := sitefile.LoadSpec("demo.yaml")
	if err != nil {
		t.Fatalf("LoadSpec: %v", err)
	}
	s, err := Open(cfg, spec)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if errs := s.DrainErrors(); len(errs) != 0 {
		t.Fatalf("unexpected errors opening demo: %v", errs)
	}
	return s
}

func liftSummary(t *testing.T, s *Session, i int) LiftSummary {
	t.Helper()
	sum := s.Summary()
	if len(sum.Lifts) <= i {
		t.Fatalf("expected at least %d lifts, got %d", i+1, len(sum.Lifts))
	}
	return sum.Lifts[i]
}

func TestOpenDemo(t *testing.T) {
	s := openDemo(t, DefaultConfig())
	sum := s.Summary()

	if sum.Site != "demo" || sum.CurrentLevel != "L1" {
		t.Fatalf("unexpected summary header %+v", sum)
	}
	if !slices.Equal(sum.Levels, []string{"L1", "L2"}) {
		t.Fatalf("unexpected levels %v", sum.Levels)
	}
	if len(sum.Lifts) != 2 {
		t.Fatalf("expected 2 lifts, got %d", len(sum.Lifts))
	}
	lift := sum.Lifts[0]
	if lift.Doormats != 2*len(site.AllRectFaces) {
		t.Fatalf("expected %d doormats, got %d", 2*len(site.AllRectFaces), lift.Doormats)
	}
	if len(lift.Doors) != 1 || lift.Doors[0].Face != "front" || !slices.Equal(lift.Doors[0].Visits, []string{"L1", "L2"}) {
		t.Fatalf("unexpected doors %+v", lift.Doors)
	}
	if lift.X != 0 || lift.Y != -0.75 {
		t.Fatalf("unexpected lift position (%g, %g)", lift.X, lift.Y)
	}
}

func TestValidateReportsDuplicateLiftNames(t *testing.T) {
	s := openDemo(t, DefaultConfig())
	issues, err := s.Validate()
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if len(issues) != 1 || len(issues[0].Key.Entities) != 2 {
		t.Fatalf("expected one issue naming two lifts, got %+v", issues)
	}

	issues, _ = s.Validate()
	if len(issues) != 2 {
		t.Fatalf("repeated validation should add a fresh batch, got %d issues", len(issues))
	}

	cfg := DefaultConfig()
	cfg.ReplacePreviousIssues = true
	s = openDemo(t, cfg)
	s.Validate()
	issues, _ = s.Validate()
	if len(issues) != 1 {
		t.Fatalf("replace_previous_issues should keep one batch, got %d issues", len(issues))
	}
}

func TestApplyScript(t *testing.T) {
	s := openDemo(t, DefaultConfig())
	cmds, err := script.Run(context.Background(), []byte(`
editor.toggle("lift_a", "L1", "back", true)
editor.add_level("L3", 8)
editor.remove_level("L2")
`))
	if err != nil {
		t.Fatalf("script.Run: %v", err)
	}
	if err := s.Apply(context.Background(), cmds); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if errs := s.DrainErrors(); len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	lift := liftSummary(t, s, 0)
	if lift.Doormats != 2*len(site.AllRectFaces) {
		t.Fatalf("expected doormats for L1 and L3, got %d", lift.Doormats)
	}
	want := []DoorSummary{
		{Face: "front", Width: 0.75, Visits: []string{"L1"}},
		{Face: "back", Width: 0.75, Visits: []string{"L1"}},
	}
	if len(lift.Doors) != len(want) {
		t.Fatalf("unexpected doors %+v", lift.Doors)
	}
	for i := range want {
		if lift.Doors[i].Face != want[i].Face || lift.Doors[i].Width != want[i].Width || !slices.Equal(lift.Doors[i].Visits, want[i].Visits) {
			t.Fatalf("door %d: expected %+v, got %+v", i, want[i], lift.Doors[i])
		}
	}
}

func TestApplyStopsAtFirstFailure(t *testing.T) {
	cases := []struct {
		name string
		cmd  script.Command
		want error
	}{
		{"unknown_lift", script.Command{Op: script.OpToggle, Lift: "nope", Level: "L1", Face: "front"}, ErrLiftNotFound},
		{"unknown_level", script.Command{Op: script.OpCurrentLevel, Level: "L9"}, site.ErrLevelNotFound},
		{"unknown_anchor", script.Command{Op: script.OpMoveAnchor, Anchor: 99}, ErrAnchorNotFound},
		{"unknown_op", script.Command{Op: "fly"}, script.ErrUnknownOp},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := openDemo(t, DefaultConfig())
			cmds := []script.Command{c.cmd, {Op: script.OpAddLevel, Level: "L3"}}
			if err := s.Apply(context.Background(), cmds); !errors.Is(err, c.want) {
				t.Fatalf("expected %v, got %v", c.want, err)
			}
			if _, err := s.Level("L3"); err == nil {
				t.Fatalf("commands after the failure should not run")
			}
		})
	}
}

func TestApplyHonoursContext(t *testing.T) {
	s := openDemo(t, DefaultConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := s.Apply(ctx, []script.Command{{Op: script.OpValidate}})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestPickAndToggleDoormat(t *testing.T) {
	s := openDemo(t, DefaultConfig())
	l1, err := s.Level("L1")
	if err != nil {
		t.Fatalf("Level: %v", err)
	}

	mat, ok := s.PickDoormat(l1, 0.14, -0.75)
	if !ok {
		t.Fatalf("expected the front doormat of lift_a")
	}
	if !mat.DoorAvailable || mat.CabinDoor.Face != site.RectFaceFront {
		t.Fatalf("unexpected doormat %+v", mat)
	}

	s.ToggleDoormat(mat)
	s.Tick()

	lift := liftSummary(t, s, 0)
	if len(lift.Doors) != 1 || !slices.Equal(lift.Doors[0].Visits, []string{"L2"}) {
		t.Fatalf("front door should only visit L2 now, got %+v", lift.Doors)
	}
	if mat, _ = s.PickDoormat(l1, 0.14, -0.75); mat.DoorAvailable {
		t.Fatalf("doormat should now show the door as unavailable")
	}
}

func TestRemoveCurrentLevelShowsNext(t *testing.T) {
	s := openDemo(t, DefaultConfig())
	l1, _ := s.Level("L1")
	if err := s.RemoveLevel(l1); err != nil {
		t.Fatalf("RemoveLevel: %v", err)
	}
	s.Tick()
	if got := s.Summary().CurrentLevel; got != "L2" {
		t.Fatalf("expected L2 to become current, got %q", got)
	}
	if err := s.RemoveLevel(l1); !errors.Is(err, site.ErrLevelNotFound) {
		t.Fatalf("expected ErrLevelNotFound, got %v", err)
	}
}

func TestDeleteAnchorInUse(t *testing.T) {
	s := openDemo(t, DefaultConfig())
	a, err := s.Anchor(10)
	if err != nil {
		t.Fatalf("Anchor: %v", err)
	}
	if err := s.DeleteAnchor(a); !errors.Is(err, site.ErrAnchorInUse) {
		t.Fatalf("expected ErrAnchorInUse, got %v", err)
	}

	free, _ := s.Anchor(14)
	if err := s.DeleteAnchor(free); err != nil {
		t.Fatalf("DeleteAnchor: %v", err)
	}
	if _, err := s.Anchor(14); !errors.Is(err, ErrAnchorNotFound) {
		t.Fatalf("deleted anchor should no longer resolve, got %v", err)
	}
}

func TestSnapshotAfterEdits(t *testing.T) {
	s := openDemo(t, DefaultConfig())
	l1, _ := s.Level("L1")
	lift, _ := s.Lift("lift_a")
	s.Toggle(lift, l1, site.RectFaceFront, false)
	s.Toggle(lift, l1, site.RectFaceLeft, true)
	s.Tick()

	spec, err := s.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	doors := spec.Lifts[0].Cabin.Doors
	if len(doors) != 2 || !slices.Equal(doors["front"].Visits, []uint32{2}) || !slices.Equal(doors["left"].Visits, []uint32{1}) {
		t.Fatalf("unexpected doors %+v", doors)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadConfig(filepath.Join(dir, "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}

	path := filepath.Join(dir, "siteeditor.yaml")
	data := "doormat_thickness: 0.5\nreplace_previous_issues: true\nwatch_debounce: 250ms\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err = LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	want := Config{
		DoormatThickness:      0.5,
		DefaultCabinWidth:     site.DefaultCabinWidth,
		ReplacePreviousIssues: true,
		WatchDebounce:         250 * time.Millisecond,
	}
	if cfg != want {
		t.Fatalf("expected %+v, got %+v", want, cfg)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("doormat_thickness: [\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadConfig(bad); err == nil {
		t.Fatalf("expected an error for malformed yaml")
	}
}

func TestSessionWithoutSite(t *testing.T) {
	s := NewSession(Config{})
	if s.Config.DoormatThickness != site.DefaultDoormatThickness {
		t.Fatalf("config should be normalised, got %+v", s.Config)
	}
	if _, err := s.Validate(); !errors.Is(err, site.ErrNoCurrentWorkspace) {
		t.Fatalf("expected ErrNoCurrentWorkspace, got %v", err)
	}
	if _, err := s.AddLevel("L1", 0); !errors.Is(err, site.ErrNoCurrentWorkspace) {
		t.Fatalf("expected ErrNoCurrentWorkspace, got %v", err)
	}
	if s.Name(ecs.Entity(0)) != "none" {
		t.Fatalf("unnamed zero entity should print as none")
	}
}
