package main

import (
	"context"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/tsawler/examine/format"
)

// WatchCmd watches a directory and extracts questions from every DOCX
// created or modified under it, writing a sibling .json file.
type WatchCmd struct {
	Dir      string        `arg:"" help:"Directory to watch" type:"existingdir"`
	Debounce time.Duration `help:"Quiet period before processing a changed file" default:"500ms"`
}

func (c *WatchCmd) Run(a *app) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(c.Dir); err != nil {
		return err
	}
	a.log.Info("watching", "dir", c.Dir)

	// Editors fire several events per save; coalesce them with a
	// per-path timer.
	var mu sync.Mutex
	pending := map[string]*time.Timer{}

	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			a.log.Error("watch error", "error", err)
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if format.Detect(event.Name) != format.DOCX {
				continue
			}

			path := event.Name
			mu.Lock()
			if t, ok := pending[path]; ok {
				t.Stop()
			}
			pending[path] = time.AfterFunc(c.Debounce, func() {
				mu.Lock()
				delete(pending, path)
				mu.Unlock()
				c.process(a, path)
			})
			mu.Unlock()
		}
	}
}

func (c *WatchCmd) process(a *app, path string) {
	out := strings.TrimSuffix(path, filepath.Ext(path)) + ".json"

	warnings, err := newExtractor(a, path, "", false).ExportFile(out)
	logWarnings(a, warnings)
	if err != nil {
		a.log.Error("extraction failed", "file", path, "error", err)
		return
	}
	a.log.Info("extracted", "file", path, "output", out)
}
