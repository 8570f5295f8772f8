// pkg/engine/watcher.go
package engine

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// ConfigWatcher watches a configuration document for changes and invokes
// a callback when modifications settle. Writes are debounced so a rapid
// succession of saves triggers one rebuild.
type ConfigWatcher struct {
	path          string
	onChange      func()
	watcher       *fsnotify.Watcher
	debounceDelay time.Duration
	logger        zerolog.Logger

	mu            sync.Mutex
	debounceTimer *time.Timer
}

// NewConfigWatcher creates a watcher for the given document path.
func NewConfigWatcher(path string, onChange func(), logger zerolog.Logger) (*ConfigWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &ConfigWatcher{
		path:          path,
		onChange:      onChange,
		watcher:       watcher,
		debounceDelay: 200 * time.Millisecond,
		logger:        logger.With().Str("component", "engine.watcher").Logger(),
	}, nil
}

// Start blocks watching the document until the context is canceled. Run
// it in its own goroutine.
func (w *ConfigWatcher) Start(ctx context.Context) error {
	// fsnotify watches directories, not files.
	dir := filepath.Dir(w.path)
	base := filepath.Base(w.path)

	if err := w.watcher.Add(dir); err != nil {
		w.logger.Error().Err(err).Str("dir", dir).Msg("failed to watch config directory")
		return err
	}
	w.logger.Info().Str("file", w.path).Dur("debounce", w.debounceDelay).Msg("watching config document")

	defer func() {
		if err := w.watcher.Close(); err != nil {
			w.logger.Warn().Err(err).Msg("error closing watcher")
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != base {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.scheduleReload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn().Err(err).Msg("watch error")
		}
	}
}

func (w *ConfigWatcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.debounceDelay, w.onChange)
}
