package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/milk9111/siteeditor/editor"
	"github.com/milk9111/siteeditor/script"
	"github.com/milk9111/siteeditor/sitefile"
)

func open(cfg editor.Config, sitePath string) (*editor.Session, error) {
	spec, err := sitefile.LoadSpec(sitePath)
	if err != nil {
		return nil, err
	}
	return editor.Open(cfg, spec)
}

func runInspect(w io.Writer, cfg editor.Config, sitePath string) error {
	s, err := open(cfg, sitePath)
	if err != nil {
		return err
	}
	return printSummary(w, s.Summary())
}

func runValidate(w io.Writer, cfg editor.Config, sitePath string) error {
	s, err := open(cfg, sitePath)
	if err != nil {
		return err
	}
	issues, err := s.Validate()
	if err != nil {
		return err
	}
	printIssues(w, s, issues)
	if len(issues) > 0 {
		return fmt.Errorf("%s: %d issue(s) found", sitePath, len(issues))
	}
	return nil
}

func runScript(ctx context.Context, w io.Writer, cfg editor.Config, sitePath, scriptPath, outPath string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	s, err := open(cfg, sitePath)
	if err != nil {
		return err
	}
	if err := apply(ctx, s, scriptPath); err != nil {
		return err
	}
	if outPath != "" {
		spec, err := s.Snapshot()
		if err != nil {
			return err
		}
		if err := spec.Save(outPath); err != nil {
			return err
		}
		log.Printf("siteeditor: wrote %s", outPath)
	}
	return printSummary(w, s.Summary())
}

func apply(ctx context.Context, s *editor.Session, scriptPath string) error {
	cmds, err := script.RunFile(ctx, scriptPath)
	if err != nil {
		return err
	}
	if err := s.Apply(ctx, cmds); err != nil {
		return err
	}
	for _, err := range s.DrainErrors() {
		log.Printf("siteeditor: %s: %v", scriptPath, err)
	}
	return nil
}

func runWatch(ctx context.Context, w io.Writer, cfg editor.Config, sitePath, scriptPath string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dirs := []string{filepath.Dir(sitePath)}
	if scriptPath != "" && filepath.Dir(scriptPath) != dirs[0] {
		dirs = append(dirs, filepath.Dir(scriptPath))
	}
	watcher, err := sitefile.NewWatcher(cfg.WatchDebounce, dirs...)
	if err != nil {
		return fmt.Errorf("watch %s: %w", sitePath, err)
	}
	defer watcher.Close()

	reload := func() {
		s, err := open(cfg, sitePath)
		if err != nil {
			log.Printf("siteeditor: reload %s: %v", sitePath, err)
			return
		}
		if scriptPath != "" {
			if err := apply(ctx, s, scriptPath); err != nil {
				log.Printf("siteeditor: %v", err)
				return
			}
		}
		if err := printSummary(w, s.Summary()); err != nil {
			log.Printf("siteeditor: %v", err)
		}
	}
	reload()

	watched := map[string]bool{filepath.Clean(sitePath): true}
	if scriptPath != "" {
		watched[filepath.Clean(scriptPath)] = true
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case path, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !watched[filepath.Clean(path)] {
				continue
			}
			log.Printf("siteeditor: %s changed", path)
			reload()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("siteeditor: watch: %v", err)
		}
	}
}
