package shader

import (
	"fmt"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/village-viewer/internal/logger"
)

// Watcher reports shader programs whose sources changed on disk.
type Watcher struct {
	fsw *fsnotify.Watcher
}

// NewWatcher starts watching dir (non-recursively).
func NewWatcher(dir string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating shader watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}
	return &Watcher{fsw: fsw}, nil
}

// Changed drains pending events without blocking and returns the distinct
// program names touched since the last call.
func (w *Watcher) Changed() []string {
	var names []string
	seen := make(map[string]bool)

	for {
		select {
		case e, ok := <-w.fsw.Events:
			if !ok {
				return names
			}
			if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
				continue
			}
			name := ProgramName(e.Name)
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			names = append(names, name)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return names
			}
			logger.Warn("shader watcher error", zap.Error(err))
		default:
			return names
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
