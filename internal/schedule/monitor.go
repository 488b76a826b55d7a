package schedule

import (
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"splitflap/internal/applog"
)

// Monitor watches the schedule file for edits so a running schedule engine
// can hot-reload it. Changed is non-blocking and meant to be polled once
// per control-loop iteration.
type Monitor struct {
	watcher *fsnotify.Watcher
	name    string
}

func NewMonitor(path string) (*Monitor, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the directory: editors and atomic renames replace the file,
	// which drops a watch on the file itself.
	if err := w.Add(filepath.Dir(path)); err != nil {
		_ = w.Close()
		return nil, err
	}
	return &Monitor{watcher: w, name: filepath.Base(path)}, nil
}

// Changed drains pending filesystem events and reports whether the
// schedule file was written, created, or renamed since the last call.
func (m *Monitor) Changed() bool {
	if m == nil {
		return false
	}
	changed := false
	for {
		select {
		case ev, ok := <-m.watcher.Events:
			if !ok {
				return changed
			}
			if filepath.Base(ev.Name) != m.name {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				changed = true
			}
		case err, ok := <-m.watcher.Errors:
			if !ok {
				return changed
			}
			if err != nil && !strings.Contains(err.Error(), "overflow") {
				applog.Warnf("schedule watcher: %v", err)
			}
		default:
			return changed
		}
	}
}

func (m *Monitor) Close() error {
	if m == nil {
		return nil
	}
	return m.watcher.Close()
}
