// Package runner drives the display: the rotation and schedule engines,
// the keyboard-aware control loop, and the single-instance lock that keeps
// two runners off one board.
package runner

import (
	"context"
	"time"
)

// Flow tells the control loop whether to keep iterating.
type Flow int

const (
	FlowContinue Flow = iota
	FlowExit
)

// Engine is one runnable mode (playlist rotation or schedule).
type Engine interface {
	// Start transitions the engine into its running state.
	Start()
	// Tick performs at most one emission. Called once per loop iteration.
	Tick(ctx context.Context) (Flow, error)
	// HandleKey dispatches one interactive key.
	HandleKey(k Key) Flow
	// HelpText is printed for the '?' key.
	HelpText() string
	// Cleanup persists the final stopped state. Runs on every exit path.
	Cleanup()
}

const playlistHelp = `controls:
  q  quit
  p  pause rotation
  r  resume rotation
  n  show next item now
  ?  show this help`

const scheduleHelp = `controls:
  q  quit
  ?  show this help`

// timeNow is swapped out by tests that steer the rotation clock.
var timeNow = time.Now
