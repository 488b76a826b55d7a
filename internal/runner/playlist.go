package runner

import (
	"context"
	"fmt"
	"io"
	"time"

	"splitflap/internal/applog"
	"splitflap/internal/playlist"
	"splitflap/internal/state"
)

// PlaylistRunner rotates through playlist items on a fixed interval with
// pause/resume/skip controls and a crash-resumable position.
type PlaylistRunner struct {
	playlist  playlist.Playlist
	status    state.Status
	index     int
	statePath string
	runOnce   bool

	cycleComplete bool
	// lastDisplay zero means the current item is due immediately, both at
	// startup and after the 'n' key clears the timer.
	lastDisplay time.Time
	// pausedAt preserves the remaining interval across pause/resume.
	pausedAt time.Time

	presenter Presenter
	out       io.Writer
}

func NewPlaylistRunner(pl playlist.Playlist, statePath string, startIndex int, runOnce bool, p Presenter, out io.Writer) *PlaylistRunner {
	if startIndex < 0 || startIndex >= pl.Len() {
		startIndex = 0
	}
	return &PlaylistRunner{
		playlist:  pl,
		status:    state.StatusStopped,
		index:     startIndex,
		statePath: statePath,
		runOnce:   runOnce,
		presenter: p,
		out:       out,
	}
}

// ResumePlaylistRunner restores the start index from the saved runtime
// state, clamping indexes that no longer fit the playlist.
func ResumePlaylistRunner(pl playlist.Playlist, statePath string, runOnce bool, p Presenter, out io.Writer) *PlaylistRunner {
	saved := state.LoadOrDefault(statePath)
	start := saved.Index
	if start >= pl.Len() {
		start = 0
	}
	applog.Infof("restored playlist state: index=%d", start)
	return NewPlaylistRunner(pl, statePath, start, runOnce, p, out)
}

func (r *PlaylistRunner) Index() int           { return r.index }
func (r *PlaylistRunner) Status() state.Status { return r.status }
func (r *PlaylistRunner) CycleComplete() bool  { return r.cycleComplete }
func (r *PlaylistRunner) HelpText() string     { return playlistHelp }

func (r *PlaylistRunner) Start() {
	if r.playlist.IsEmpty() {
		applog.Warnf("cannot start empty playlist")
		return
	}
	r.status = state.StatusRunning
	r.cycleComplete = false
	r.saveState()
	applog.Infof("playlist started at index %d/%d", r.index+1, r.playlist.Len())
	fmt.Fprintf(r.out, "Starting playlist (%d items, %d second interval)...\n",
		r.playlist.Len(), r.playlist.IntervalSeconds)
}

func (r *PlaylistRunner) Tick(ctx context.Context) (Flow, error) {
	if r.runOnce && r.cycleComplete {
		applog.Infof("completed one full cycle, stopping")
		fmt.Fprintln(r.out, "Completed one full cycle.")
		r.status = state.StatusStopped
		return FlowExit, nil
	}
	if !r.shouldDisplay() {
		return FlowContinue, nil
	}
	r.displayCurrent(ctx)
	r.advance()
	r.saveState()
	return FlowContinue, nil
}

func (r *PlaylistRunner) HandleKey(k Key) Flow {
	switch k {
	case KeyQuit:
		applog.Infof("quit requested via keyboard")
		return FlowExit
	case KeyPause:
		r.Pause()
	case KeyResume:
		r.Resume()
	case KeyNext:
		r.handleNextKey()
	case KeyHelp:
		fmt.Fprintf(r.out, "\n%s\n\n", r.HelpText())
	}
	return FlowContinue
}

func (r *PlaylistRunner) Cleanup() {
	r.status = state.StatusStopped
	r.saveState()
	applog.Infof("playlist runner cleanup complete")
}

// Pause halts rotation, remembering when so Resume can credit the time
// spent paused back to the interval. No-op unless running.
func (r *PlaylistRunner) Pause() {
	if r.status != state.StatusRunning {
		return
	}
	r.status = state.StatusPaused
	r.pausedAt = timeNow()
	r.saveState()
	applog.Infof("playlist paused at index %d", r.index)
	fmt.Fprintln(r.out, "Paused.")
}

// Resume restarts rotation. The emission timestamp is shifted forward by
// the pause duration so the remaining wait is preserved exactly; pausing
// never shortens the interval.
func (r *PlaylistRunner) Resume() {
	if r.status != state.StatusPaused {
		return
	}
	r.status = state.StatusRunning
	if !r.lastDisplay.IsZero() && !r.pausedAt.IsZero() {
		pauseDuration := timeNow().Sub(r.pausedAt)
		r.lastDisplay = r.lastDisplay.Add(pauseDuration)
		applog.Debugf("adjusted display timer by %s", pauseDuration)
	}
	r.pausedAt = time.Time{}
	r.saveState()
	applog.Infof("playlist resumed from index %d", r.index)
	fmt.Fprintln(r.out, "Resumed.")
}

// handleNextKey implements the two-phase "next" control. "Next" means the
// item the index points at, which has not been shown yet: the first press
// queues it for immediate display without advancing. Only a repeat press
// while paused skips past it.
func (r *PlaylistRunner) handleNextKey() {
	if r.lastDisplay.IsZero() && r.status == state.StatusPaused {
		r.Skip()
	} else {
		r.lastDisplay = time.Time{}
		applog.Infof("queued immediate display of item %d", r.index)
	}

	if r.status == state.StatusPaused {
		if item, ok := r.playlist.Get(r.index); ok {
			fmt.Fprintf(r.out, "Next: %s [%s] - will display on resume\n", item.Widget, item.ID)
		}
	} else {
		fmt.Fprintln(r.out, "Showing next item...")
	}
}

// Skip advances the position regardless of timer state.
func (r *PlaylistRunner) Skip() {
	r.advance()
	r.saveState()
	applog.Infof("skipped to item %d", r.index)
	fmt.Fprintln(r.out, "Skipping to next item...")
}

func (r *PlaylistRunner) advance() {
	if r.playlist.IsEmpty() {
		return
	}
	r.index = (r.index + 1) % r.playlist.Len()
	if r.index == 0 {
		r.cycleComplete = true
	}
}

func (r *PlaylistRunner) shouldDisplay() bool {
	if r.status != state.StatusRunning {
		return false
	}
	if r.lastDisplay.IsZero() {
		return true
	}
	return timeNow().Sub(r.lastDisplay) >= r.playlist.Interval()
}

func (r *PlaylistRunner) displayCurrent(ctx context.Context) {
	item, ok := r.playlist.Get(r.index)
	if !ok {
		applog.Warnf("no item to display at index %d", r.index)
		return
	}

	applog.Infof("displaying playlist item %d/%d: %s (%s)",
		r.index+1, r.playlist.Len(), item.ID, item.Widget)
	fmt.Fprintf(r.out, "[%d/%d] Showing %s...\n", r.index+1, r.playlist.Len(), item.Widget)

	// Persist before generating content so a crash mid-emission resumes
	// by re-attempting this item.
	r.saveState()

	label := fmt.Sprintf("item %s", item.Widget)
	// Emission failures already showed the error layout; rotation goes on.
	_ = r.presenter.Present(ctx, item.Widget, item.Input, label)

	r.lastDisplay = timeNow()
}

func (r *PlaylistRunner) saveState() {
	now := timeNow()
	st := state.State{Status: r.status, Index: r.index, LastShownAt: &now}
	if err := st.Save(r.statePath); err != nil {
		applog.Warnf("save runtime state: %v", err)
	}
}
