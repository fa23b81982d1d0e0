package script

import (
	"errors"
	"fmt"
	"strings"
)

type Op string

const (
	OpToggle       Op = "toggle"
	OpAddLevel     Op = "add_level"
	OpRemoveLevel  Op = "remove_level"
	OpCurrentLevel Op = "current_level"
	OpMoveAnchor   Op = "move_anchor"
	OpValidate     Op = "validate"
)

var ErrUnknownOp = errors.New("script: unknown op")

// Command is one edit produced by a script. Lifts and levels are addressed by
// name; anchors by their site file id.
type Command struct {
	Op        Op
	Lift      string
	Level     string
	Face      string
	Available bool
	Elevation float64
	Anchor    uint32
	X, Y      float64
	Z         *float64
}

func (c Command) String() string {
	switch c.Op {
	case OpToggle:
		return fmt.Sprintf("toggle %s %s door on %s to %t", c.Lift, c.Face, c.Level, c.Available)
	case OpAddLevel:
		return fmt.Sprintf("add level %s at %g", c.Level, c.Elevation)
	case OpRemoveLevel, OpCurrentLevel:
		return fmt.Sprintf("%s %s", c.Op, c.Level)
	case OpMoveAnchor:
		return fmt.Sprintf("move anchor %d to (%g, %g)", c.Anchor, c.X, c.Y)
	default:
		return string(c.Op)
	}
}

// decodeCommand reads a command from the map form used by the `commands`
// script global.
func decodeCommand(m map[string]any) (Command, error) {
	op, _ := m["op"].(string)
	cmd := Command{Op: Op(strings.TrimSpace(op))}
	cmd.Lift, _ = m["lift"].(string)
	cmd.Level, _ = m["level"].(string)
	cmd.Face, _ = m["face"].(string)
	cmd.Available, _ = m["available"].(bool)
	cmd.Elevation = number(m["elevation"])
	cmd.X = number(m["x"])
	cmd.Y = number(m["y"])
	if z, ok := m["z"]; ok {
		v := number(z)
		cmd.Z = &v
	}
	cmd.Anchor = uint32(number(m["anchor"]))
	return cmd, cmd.check()
}

func (c Command) check() error {
	switch c.Op {
	case OpToggle:
		if c.Lift == "" || c.Level == "" || c.Face == "" {
			return fmt.Errorf("script: toggle needs lift, level and face")
		}
	case OpAddLevel, OpRemoveLevel, OpCurrentLevel:
		if c.Level == "" {
			return fmt.Errorf("script: %s needs a level", c.Op)
		}
	case OpMoveAnchor:
		if c.Anchor == 0 {
			return fmt.Errorf("script: move_anchor needs an anchor id")
		}
	case OpValidate:
	default:
		return fmt.Errorf("%w %q", ErrUnknownOp, c.Op)
	}
	return nil
}

func number(v any) float64 {
	switch n := v.(type) {
	case int64:
		return float64(n)
	case int:
		return float64(n)
	case float64:
		return n
	default:
		return 0
	}
}
