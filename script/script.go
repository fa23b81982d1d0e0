// Package script runs tengo edit scripts against a site.
//
// A script either calls the functions of the `editor` variable, for example
// editor.toggle("lift_a", "L1", "front", true), or defines a global
// `commands` array of maps such as {op: "add_level", level: "L3",
// elevation: 8}. Calls are recorded first, then the `commands` entries.
package script

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// Run compiles and executes src, returning the commands it produced in order.
func Run(ctx context.Context, src []byte) ([]Command, error) {
	rec := &recorder{}
	s := tengo.NewScript(src)
	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	if err := s.Add("editor", rec.module()); err != nil {
		return nil, fmt.Errorf("script: bind editor: %w", err)
	}

	compiled, err := s.RunContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("script: run: %w", err)
	}
	if rec.err != nil {
		return nil, rec.err
	}

	cmds := rec.commands
	if compiled.IsDefined("commands") {
		for i, item := range compiled.Get("commands").Array() {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("script: commands[%d] is %T, want a map", i, item)
			}
			cmd, err := decodeCommand(m)
			if err != nil {
				return nil, fmt.Errorf("commands[%d]: %w", i, err)
			}
			cmds = append(cmds, cmd)
		}
	}
	return cmds, nil
}

func RunFile(ctx context.Context, path string) ([]Command, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("script: read %s: %w", path, err)
	}
	return Run(ctx, src)
}

type recorder struct {
	commands []Command
	err      error
}

func (r *recorder) push(cmd Command) (tengo.Object, error) {
	if err := cmd.check(); err != nil {
		if r.err == nil {
			r.err = err
		}
		return tengo.FalseValue, nil
	}
	r.commands = append(r.commands, cmd)
	return tengo.TrueValue, nil
}

func (r *recorder) module() *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["toggle"] = &tengo.UserFunction{Name: "toggle", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 4 {
			return nil, tengo.ErrWrongNumArguments
		}
		available, _ := tengo.ToBool(args[3])
		return r.push(Command{
			Op:        OpToggle,
			Lift:      objectAsString(args[0]),
			Level:     objectAsString(args[1]),
			Face:      objectAsString(args[2]),
			Available: available,
		})
	}}

	values["add_level"] = &tengo.UserFunction{Name: "add_level", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		cmd := Command{Op: OpAddLevel, Level: objectAsString(args[0])}
		if len(args) > 1 {
			cmd.Elevation, _ = tengo.ToFloat64(args[1])
		}
		return r.push(cmd)
	}}

	for _, op := range []Op{OpRemoveLevel, OpCurrentLevel} {
		values[string(op)] = &tengo.UserFunction{Name: string(op), Value: func(args ...tengo.Object) (tengo.Object, error) {
			if len(args) < 1 {
				return nil, tengo.ErrWrongNumArguments
			}
			return r.push(Command{Op: op, Level: objectAsString(args[0])})
		}}
	}

	values["move_anchor"] = &tengo.UserFunction{Name: "move_anchor", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 3 {
			return nil, tengo.ErrWrongNumArguments
		}
		id, _ := tengo.ToInt64(args[0])
		cmd := Command{Op: OpMoveAnchor, Anchor: uint32(id)}
		cmd.X, _ = tengo.ToFloat64(args[1])
		cmd.Y, _ = tengo.ToFloat64(args[2])
		if len(args) > 3 {
			z, _ := tengo.ToFloat64(args[3])
			cmd.Z = &z
		}
		return r.push(cmd)
	}}

	values["validate"] = &tengo.UserFunction{Name: "validate", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return r.push(Command{Op: OpValidate})
	}}

	return &tengo.ImmutableMap{Value: values}
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	if s, ok := tengo.ToString(obj); ok {
		return strings.TrimSpace(s)
	}
	return ""
}
