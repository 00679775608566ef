package server

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the schema whenever its file changes, until ctx is
// cancelled. The parent directory is watched rather than the file itself so
// atomic save-and-rename editors and config-map style symlink swaps are
// picked up.
func (s *Server) Watch(ctx context.Context) error {
	absPath, err := filepath.Abs(s.cfg.SchemaPath)
	if err != nil {
		return fmt.Errorf("absolute path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(absPath), err)
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != absPath {
					continue
				}
				if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Rename) {
					continue
				}
				s.logger.Debug("schema file changed", "op", event.Op.String())
				if err := s.Reload(); err != nil {
					// Keep serving with the previous schema.
					s.logger.Error("schema reload failed", "err", err)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.logger.Error("schema watcher error", "err", err)
			}
		}
	}()

	return nil
}
