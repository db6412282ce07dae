package models

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the mesh at path whenever it is written or replaced and
// passes the fresh mesh to fn. The parent directory is watched so editors
// that save by rename are picked up. Reload failures are logged and the
// previous mesh stays in use. Watch blocks until ctx is done.
func Watch(ctx context.Context, path string, logger *slog.Logger, fn func(*Mesh)) error {
	if logger == nil {
		logger = slog.Default()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			mesh, err := Load(abs)
			if err != nil {
				logger.Error("reload mesh", "path", path, "err", err)
				continue
			}
			logger.Info("reloaded mesh", "path", path, "vertices", mesh.VertexCount(), "faces", mesh.TriangleCount())
			fn(mesh)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("mesh watcher", "err", err)
		}
	}
}
