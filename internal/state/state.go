// Package state persists the runner's position between invocations so a
// crash or restart resumes where rotation left off. Loading is best-effort:
// a broken state file costs the resume position, never the run.
package state

import (
	"encoding/json"
	"errors"
	"os"
	"time"

	"splitflap/internal/applog"
	"splitflap/internal/fstore"
)

type Status string

const (
	StatusStopped Status = "stopped"
	StatusRunning Status = "running"
	StatusPaused  Status = "paused"
)

type State struct {
	Status      Status     `json:"status"`
	Index       int        `json:"index"`
	LastShownAt *time.Time `json:"last_shown_at,omitempty"`
}

func Default() State {
	return State{Status: StatusStopped}
}

// LoadOrDefault reads the state file. Any failure — missing file, corrupt
// JSON, bad values — yields the default state with a warning.
func LoadOrDefault(path string) State {
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			applog.Warnf("read runtime state %s: %v", path, err)
		}
		return Default()
	}
	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		applog.Warnf("corrupt runtime state %s, using defaults: %v", path, err)
		return Default()
	}
	switch st.Status {
	case StatusStopped, StatusRunning, StatusPaused:
	default:
		st.Status = StatusStopped
	}
	if st.Index < 0 {
		st.Index = 0
	}
	return st
}

// Save writes the state atomically.
func (s State) Save(path string) error {
	return fstore.WriteJSONAtomic(path, s)
}
