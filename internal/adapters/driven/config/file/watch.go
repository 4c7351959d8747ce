package file

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/docsight-labs/docsight-cli/internal/logger"
)

// Watch reloads the store whenever the config file changes on disk and
// signals each successful reload on the returned channel. Watching stops
// when ctx is cancelled. Editors that replace the file on save (rename or
// remove plus create) are handled by re-adding the watch on the directory.
func (s *ConfigStore) Watch(ctx context.Context) (<-chan struct{}, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the directory, not the file: the file may not exist yet, and
	// atomic-save editors replace it with a new inode.
	if err := watcher.Add(filepath.Dir(s.filePath)); err != nil {
		watcher.Close()
		return nil, err
	}

	reloads := make(chan struct{}, 1)

	go func() {
		defer watcher.Close()
		defer close(reloads)

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Name != s.filePath {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				if err := s.Load(); err != nil {
					logger.Warn("reloading config after change: %v", err)
					continue
				}
				logger.Info("config reloaded from %s", s.filePath)
				select {
				case reloads <- struct{}{}:
				default:
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("config watcher: %v", err)
			}
		}
	}()

	return reloads, nil
}
