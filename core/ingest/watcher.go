package ingest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"SqueezeFM/logger"
	"SqueezeFM/repository"

	"github.com/fsnotify/fsnotify"
)

// Watch keeps importing JSON drops from the import directory until the
// context is cancelled. onImport runs after each successful import so the
// caller can invalidate the snapshot cache and notify connected clients.
func Watch(ctx context.Context, dir string, repo repository.TrackRepository, onImport func(count int)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create import watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch import directory %s: %w", dir, err)
	}
	logger.Info("Watching import directory", logger.String("dir", dir))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Create != fsnotify.Create {
				continue
			}
			if !strings.HasSuffix(strings.ToLower(event.Name), ".json") {
				continue
			}
			// Give the writer a moment to finish the file.
			time.Sleep(200 * time.Millisecond)

			count, err := ImportFile(event.Name, repo)
			if err != nil {
				logger.Error("Import failed", logger.String("file", event.Name), logger.ErrorField(err))
				continue
			}
			logger.Info("Imported catalog drop",
				logger.String("file", event.Name),
				logger.Int("tracks", count))
			if onImport != nil && count > 0 {
				onImport(count)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("Import watcher error", logger.ErrorField(err))
		}
	}
}
