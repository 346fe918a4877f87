package core

import (
	"context"
	"fmt"
	"log"

	"github.com/fsnotify/fsnotify"
)

const templateChangeOps = fsnotify.Write | fsnotify.Create | fsnotify.Rename | fsnotify.Remove

// WatchTemplates calls onChange whenever a file in dir is written, created,
// renamed or removed. It blocks until ctx is done.
func WatchTemplates(ctx context.Context, dir string, onChange func(name string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&templateChangeOps != 0 {
				onChange(event.Name)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("template watcher: %v", err)
		}
	}
}
