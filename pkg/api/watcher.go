package api

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// rebuildDebounce coalesces bursts of filesystem events (editors write
// several events per save) into a single router rebuild.
const rebuildDebounce = 250 * time.Millisecond

// Watch monitors the spec directory and rebuilds the router when its
// contents change. New subdirectories are added to the watch as they
// appear. Blocks until the context is canceled.
func (s *Server) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := addWatchTree(watcher, s.cfg.OpenAPIDir); err != nil {
		return err
	}
	s.log.WithField("dir", s.cfg.OpenAPIDir).Info("Watching spec directory for changes")

	debounce := time.NewTimer(rebuildDebounce)
	if !debounce.Stop() {
		<-debounce.C
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					watcher.Add(event.Name)
				}
			}
			s.log.WithField("event", event.String()).Debug("Spec directory changed")
			debounce.Reset(rebuildDebounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.log.WithError(err).Warn("Spec watcher error")

		case <-debounce.C:
			if err := s.Rebuild(); err != nil {
				s.log.WithError(err).Error("Failed to rebuild routes after spec change")
				continue
			}
			s.log.Info("Routes rebuilt after spec change")
		}
	}
}

func addWatchTree(watcher *fsnotify.Watcher, root string) error {
	if _, err := os.Stat(root); os.IsNotExist(err) {
		// Watching a missing directory is a no-op; the server keeps
		// serving the fixed endpoint set.
		return nil
	}
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}
