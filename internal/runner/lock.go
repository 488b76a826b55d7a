package runner

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"splitflap/internal/applog"
	"splitflap/internal/fstore"
)

// LockConflictError means another live process holds the instance lock.
type LockConflictError struct {
	Mode      string
	PID       int
	StartedAt time.Time
}

func (e *LockConflictError) Error() string {
	return fmt.Sprintf("%s already running (PID %d, started %s)",
		e.Mode, e.PID, e.StartedAt.Local().Format("15:04:05"))
}

type lockData struct {
	Mode      string    `json:"mode"`
	PID       int       `json:"pid"`
	StartedAt time.Time `json:"started_at"`
}

// Lock is the advisory single-instance lock. Acquire it before starting an
// engine and release it with defer so every exit path clears it.
type Lock struct {
	path string
}

// pidAlive is injectable for tests.
var pidAlive = processAlive

// AcquireLock claims the lock file. A lock held by a live process is a
// LockConflictError; a lock whose process is gone, or whose content is
// unreadable, is treated as abandoned and silently reclaimed.
func AcquireLock(path, mode string) (*Lock, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		var held lockData
		if jsonErr := json.Unmarshal(data, &held); jsonErr == nil && held.PID > 0 && pidAlive(held.PID) {
			return nil, &LockConflictError{Mode: held.Mode, PID: held.PID, StartedAt: held.StartedAt}
		}
		applog.Warnf("reclaiming stale lock file %s", path)
		if rmErr := os.Remove(path); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			return nil, fmt.Errorf("remove stale lock: %w", rmErr)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	held := lockData{Mode: mode, PID: os.Getpid(), StartedAt: timeNow()}
	if err := fstore.WriteJSONAtomic(path, held); err != nil {
		return nil, fmt.Errorf("write lock file: %w", err)
	}
	applog.Debugf("acquired %s lock (PID %d)", mode, held.PID)
	return &Lock{path: path}, nil
}

// Release removes the lock file. Safe to call more than once.
func (l *Lock) Release() {
	if l == nil || l.path == "" {
		return
	}
	if err := os.Remove(l.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		applog.Warnf("release lock: %v", err)
	}
	l.path = ""
}
