package core

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatchTemplates_NotifiesOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := writeTempFile(t, dir, IndexTemplate, "v1")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan string, 16)
	ready := make(chan error, 1)
	go func() {
		ready <- WatchTemplates(ctx, dir, func(name string) {
			changed <- name
		})
	}()

	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(path, []byte("v2"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case name := <-changed:
		if filepath.Base(name) != IndexTemplate {
			t.Errorf("unexpected changed file %q", name)
		}
	case err := <-ready:
		t.Fatalf("watcher exited early: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change notification")
	}

	cancel()

	select {
	case err := <-ready:
		if err != nil {
			t.Errorf("expected nil error on cancel, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}

func TestWatchTemplates_MissingDir(t *testing.T) {
	err := WatchTemplates(context.Background(), filepath.Join(t.TempDir(), "missing"), func(string) {})
	if err == nil {
		t.Error("expected error for missing directory")
	}
}
