package main

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce collapses the burst of events editors emit for one save.
const watchDebounce = 200 * time.Millisecond

// watchSchema regenerates migrations whenever the dump file changes, until
// ctx is cancelled. The directory is watched rather than the file so editors
// that replace the file on save keep triggering events. Regeneration errors
// are logged and watching continues.
func watchSchema(ctx context.Context, path string, regenerate func(context.Context) error) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve watch path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	log.Printf("watching %s for changes (Ctrl+C to stop)", abs)

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isSchemaChange(event, abs) {
				continue
			}
			pending = time.After(watchDebounce)
		case <-pending:
			pending = nil
			log.Printf("schema changed, regenerating...")
			if err := regenerate(ctx); err != nil {
				log.Printf("  WARN: regenerate: %v", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("  WARN: file watcher: %v", err)
		}
	}
}

func isSchemaChange(event fsnotify.Event, path string) bool {
	if filepath.Clean(event.Name) != path {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create) != 0
}
