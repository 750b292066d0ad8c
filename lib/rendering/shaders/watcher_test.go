//go:build linux

package shaders

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jhenstridge/go-inotify"
)

func TestWatchSignalsRewrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "watched.shader")
	if err := os.WriteFile(path, []byte("#shader vertex\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	reload := make(chan struct{}, 1)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, reload)
	}()

	// give the watcher time to register before writing
	time.Sleep(100 * time.Millisecond)
	select {
	case err := <-done:
		cancel()
		t.Skipf("inotify unavailable: %s", err)
	default:
	}

	if err := os.WriteFile(filepath.Join(dir, "other.shader"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("#shader fragment\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-reload:
	case <-time.After(2 * time.Second):
		t.Errorf("no reload signalled after rewriting the file")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Watch returned %s", err)
		}
	case <-time.After(2 * time.Second):
		t.Errorf("Watch did not return after cancel")
	}
}

func TestIsReloadEvent(t *testing.T) {
	path := "/srv/shaders/basic.shader"
	tests := []struct {
		name string
		ev   string
		mask inotify.Mask
		want bool
	}{
		{"close write", "basic.shader", inotify.IN_CLOSE_WRITE, true},
		{"renamed over", "basic.shader", inotify.IN_MOVED_TO, true},
		{"modify only", "basic.shader", inotify.IN_MODIFY, false},
		{"other file", "other.shader", inotify.IN_CLOSE_WRITE, false},
		{"full path", path, inotify.IN_CLOSE_WRITE, false},
	}
	for _, tt := range tests {
		if got := isReloadEvent(tt.ev, tt.mask, path); got != tt.want {
			t.Errorf("%s: isReloadEvent(%q, %#x) = %v, want %v", tt.name, tt.ev, tt.mask, got, tt.want)
		}
	}
}

func TestWatchIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "watched.shader")
	if err := os.WriteFile(path, []byte("#shader vertex\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	reload := make(chan struct{}, 1)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, reload)
	}()

	time.Sleep(100 * time.Millisecond)
	select {
	case err := <-done:
		t.Skipf("inotify unavailable: %s", err)
	default:
	}

	if err := os.WriteFile(filepath.Join(dir, "other.shader"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case <-reload:
		t.Errorf("reload signalled for an unrelated file")
	case <-time.After(300 * time.Millisecond):
	}
}
