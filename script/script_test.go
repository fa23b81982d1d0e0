package script

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestRunRecordsCallsThenCommands(t *testing.T) {
	src := `
editor.toggle("lift_a", "L1", "front", true)
editor.move_anchor(10, 1.5, -2)
commands := [
	{op: "add_level", level: "L3", elevation: 8},
	{op: "current_level", level: "L3"},
	{op: "validate"}
]
`
	cmds, err := Run(context.Background(), []byte(src))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := []Command{
		{Op: OpToggle, Lift: "lift_a", Level: "L1", Face: "front", Available: true},
		{Op: OpMoveAnchor, Anchor: 10, X: 1.5, Y: -2},
		{Op: OpAddLevel, Level: "L3", Elevation: 8},
		{Op: OpCurrentLevel, Level: "L3"},
		{Op: OpValidate},
	}
	if len(cmds) != len(want) {
		t.Fatalf("expected %d commands, got %d: %v", len(want), len(cmds), cmds)
	}
	for i := range want {
		if cmds[i] != want[i] {
			t.Fatalf("command %d: expected %+v, got %+v", i, want[i], cmds[i])
		}
	}
}

func TestRunScriptLogic(t *testing.T) {
	src := `
for i := 0; i < 3; i++ {
	editor.add_level("L" + string(i+2), i * 4.0)
}
`
	cmds, err := Run(context.Background(), []byte(src))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(cmds) != 3 || cmds[2].Level != "L4" || cmds[2].Elevation != 8 {
		t.Fatalf("unexpected commands %v", cmds)
	}
}

func TestRunRejectsBadCommands(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want error
	}{
		{"unknown_op", `commands := [{op: "fly"}]`, ErrUnknownOp},
		{"incomplete_toggle", `editor.toggle("lift_a", "L1", "", true)`, nil},
		{"missing_arguments", `editor.toggle("lift_a")`, nil},
		{"commands_not_maps", `commands := [1, 2]`, nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Run(context.Background(), []byte(c.src))
			if err == nil {
				t.Fatalf("expected an error")
			}
			if c.want != nil && !errors.Is(err, c.want) {
				t.Fatalf("expected %v, got %v", c.want, err)
			}
		})
	}
}

func TestRunHonoursContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := Run(ctx, []byte(`for {}`)); err == nil {
		t.Fatalf("expected the runaway script to be stopped")
	}
}

func TestRunFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edit.tengo")
	if err := os.WriteFile(path, []byte(`editor.validate()`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cmds, err := RunFile(context.Background(), path)
	if err != nil {
		t.Fatalf("RunFile: %v", err)
	}
	if len(cmds) != 1 || cmds[0].Op != OpValidate {
		t.Fatalf("unexpected commands %v", cmds)
	}

	if _, err := RunFile(context.Background(), filepath.Join(t.TempDir(), "missing.tengo")); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}

func TestCommandString(t *testing.T) {
	cases := []struct {
		cmd  Command
		want string
	}{
		{Command{Op: OpToggle, Lift: "a", Face: "front", Level: "L1", Available: true}, "toggle a front door on L1 to true"},
		{Command{Op: OpAddLevel, Level: "L3", Elevation: 8}, "add level L3 at 8"},
		{Command{Op: OpRemoveLevel, Level: "L2"}, "remove_level L2"},
		{Command{Op: OpValidate}, "validate"},
	}
	for _, c := range cases {
		if got := c.cmd.String(); got != c.want {
			t.Fatalf("String() = %q, want %q", got, c.want)
		}
	}
}
