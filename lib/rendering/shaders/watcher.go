//go:build linux

package shaders

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jhenstridge/go-inotify"
)

const reloadMask = inotify.IN_CLOSE_WRITE | inotify.IN_MOVED_TO

// Watch signals on reload whenever the file at path has been rewritten,
// until ctx is cancelled. The containing directory is watched so that
// editors replacing the file by a rename are noticed too.
func Watch(ctx context.Context, path string, reload chan<- struct{}) error {
	watcher, err := inotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "could not create inotify watcher")
	}

	path = filepath.Clean(path)
	_, err = watcher.Watch(filepath.Dir(path))
	if err != nil {
		_ = watcher.Close()
		return errors.Wrapf(err, "could not watch %s", path)
	}
	logger := slog.Default().With("module", "shaders")

	for {
		select {
		case <-ctx.Done():
			return errors.Wrap(watcher.Close(), "could not close inotify watcher")
		case ev, ok := <-watcher.Event:
			if !ok {
				// read errors are only reported through Close
				return errors.Wrap(watcher.Close(), "inotify watcher stopped")
			}
			if !isReloadEvent(ev.Name, ev.Mask, path) {
				continue
			}
			logger.Debug("Reloading shader due to inotify event")
			// let the writer finish whatever it does after closing
			time.Sleep(100 * time.Millisecond)
			select {
			case reload <- struct{}{}:
			default:
			}
		}
	}
}

// isReloadEvent reports whether an event on the watched directory, naming
// a file inside it, means path has new content
func isReloadEvent(name string, mask inotify.Mask, path string) bool {
	return name == filepath.Base(path) && mask&reloadMask != 0
}
