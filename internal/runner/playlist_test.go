package runner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"splitflap/internal/playlist"
	"splitflap/internal/state"
)

type presentCall struct {
	widget string
	label  string
}

type fakePresenter struct {
	calls []presentCall
	hook  func()
	err   error
}

func (f *fakePresenter) Present(_ context.Context, widget string, _ json.RawMessage, label string) error {
	if f.hook != nil {
		f.hook()
	}
	f.calls = append(f.calls, presentCall{widget: widget, label: label})
	return f.err
}

// setClock pins the rotation clock and returns a function that advances it.
// Tests using it must not run in parallel.
func setClock(t *testing.T, at time.Time) func(time.Duration) {
	t.Helper()
	cur := at
	timeNow = func() time.Time { return cur }
	t.Cleanup(func() { timeNow = time.Now })
	return func(d time.Duration) { cur = cur.Add(d) }
}

func testPlaylist(n int) playlist.Playlist {
	pl := playlist.Playlist{IntervalSeconds: 60}
	for i := 0; i < n; i++ {
		pl.Items = append(pl.Items, playlist.Item{
			ID:     fmt.Sprintf("it%02d", i),
			Widget: "text",
			Input:  json.RawMessage(`"hello"`),
		})
	}
	return pl
}

func newTestRunner(t *testing.T, n int, runOnce bool) (*PlaylistRunner, *fakePresenter, string) {
	t.Helper()
	statePath := filepath.Join(t.TempDir(), "state.json")
	fp := &fakePresenter{}
	r := NewPlaylistRunner(testPlaylist(n), statePath, 0, runOnce, fp, &bytes.Buffer{})
	return r, fp, statePath
}

func TestPlaylistStartEmptyIsNoOp(t *testing.T) {
	setClock(t, time.Unix(1700000000, 0))
	statePath := filepath.Join(t.TempDir(), "state.json")
	fp := &fakePresenter{}
	r := NewPlaylistRunner(playlist.Playlist{IntervalSeconds: 60}, statePath, 0, false, fp, &bytes.Buffer{})

	r.Start()
	if r.Status() != state.StatusStopped {
		t.Fatalf("Status() = %q, want stopped", r.Status())
	}

	flow, err := r.Tick(context.Background())
	if err != nil || flow != FlowContinue {
		t.Fatalf("Tick() = (%v, %v), want (FlowContinue, nil)", flow, err)
	}
	if len(fp.calls) != 0 {
		t.Fatalf("Present called %d times on empty playlist", len(fp.calls))
	}
}

func TestPlaylistTickDisplaysAndAdvances(t *testing.T) {
	setClock(t, time.Unix(1700000000, 0))
	r, fp, statePath := newTestRunner(t, 3, false)

	r.Start()
	if _, err := r.Tick(context.Background()); err != nil {
		t.Fatalf("Tick() error: %v", err)
	}

	if len(fp.calls) != 1 || fp.calls[0].widget != "text" {
		t.Fatalf("calls = %+v, want one text emission", fp.calls)
	}
	if r.Index() != 1 {
		t.Fatalf("Index() = %d, want 1", r.Index())
	}

	saved := state.LoadOrDefault(statePath)
	if saved.Status != state.StatusRunning || saved.Index != 1 {
		t.Fatalf("saved state = %+v, want running at index 1", saved)
	}
}

func TestPlaylistPersistsBeforeEmitting(t *testing.T) {
	setClock(t, time.Unix(1700000000, 0))
	r, fp, statePath := newTestRunner(t, 3, false)

	var atEmit state.State
	fp.hook = func() { atEmit = state.LoadOrDefault(statePath) }

	r.Start()
	if _, err := r.Tick(context.Background()); err != nil {
		t.Fatalf("Tick() error: %v", err)
	}

	if atEmit.Status != state.StatusRunning || atEmit.Index != 0 {
		t.Fatalf("state at emit time = %+v, want running at index 0", atEmit)
	}
}

func TestPlaylistIntervalGate(t *testing.T) {
	advance := setClock(t, time.Unix(1700000000, 0))
	r, fp, _ := newTestRunner(t, 3, false)

	r.Start()
	r.Tick(context.Background())
	r.Tick(context.Background())
	if len(fp.calls) != 1 {
		t.Fatalf("calls = %d after back-to-back ticks, want 1", len(fp.calls))
	}

	advance(59 * time.Second)
	r.Tick(context.Background())
	if len(fp.calls) != 1 {
		t.Fatalf("displayed before the interval elapsed")
	}

	advance(time.Second)
	r.Tick(context.Background())
	if len(fp.calls) != 2 {
		t.Fatalf("calls = %d after interval elapsed, want 2", len(fp.calls))
	}
}

func TestPlaylistPauseCreditsTimeOnResume(t *testing.T) {
	advance := setClock(t, time.Unix(1700000000, 0))
	r, fp, _ := newTestRunner(t, 3, false)

	r.Start()
	r.Tick(context.Background()) // displays item 0, timer starts

	advance(30 * time.Second)
	r.HandleKey(KeyPause)
	if r.Status() != state.StatusPaused {
		t.Fatalf("Status() = %q after pause, want paused", r.Status())
	}

	advance(10 * time.Minute)
	r.HandleKey(KeyResume)
	if r.Status() != state.StatusRunning {
		t.Fatalf("Status() = %q after resume, want running", r.Status())
	}

	// 30s had elapsed before the pause; the remaining 30s still apply.
	r.Tick(context.Background())
	if len(fp.calls) != 1 {
		t.Fatalf("pause shortened the interval")
	}

	advance(30 * time.Second)
	r.Tick(context.Background())
	if len(fp.calls) != 2 {
		t.Fatalf("calls = %d after remaining interval, want 2", len(fp.calls))
	}
}

func TestPlaylistPauseResumeNoOpsOutsideState(t *testing.T) {
	setClock(t, time.Unix(1700000000, 0))
	r, _, _ := newTestRunner(t, 3, false)

	r.HandleKey(KeyResume) // not paused
	if r.Status() != state.StatusStopped {
		t.Fatalf("resume changed status from stopped to %q", r.Status())
	}

	r.Start()
	r.HandleKey(KeyResume)
	if r.Status() != state.StatusRunning {
		t.Fatalf("resume while running changed status to %q", r.Status())
	}
}

func TestPlaylistNextKeyWhileRunning(t *testing.T) {
	setClock(t, time.Unix(1700000000, 0))
	r, fp, _ := newTestRunner(t, 3, false)

	r.Start()
	r.Tick(context.Background()) // item 0 shown, index now 1

	r.HandleKey(KeyNext)
	if r.Index() != 1 {
		t.Fatalf("Index() = %d after 'n' while running, want 1", r.Index())
	}

	// The cleared timer makes the current item due immediately.
	r.Tick(context.Background())
	if len(fp.calls) != 2 {
		t.Fatalf("calls = %d, want immediate display of item 1", len(fp.calls))
	}
	if r.Index() != 2 {
		t.Fatalf("Index() = %d after display, want 2", r.Index())
	}
}

func TestPlaylistNextKeyTwoPhaseWhilePaused(t *testing.T) {
	setClock(t, time.Unix(1700000000, 0))
	r, _, _ := newTestRunner(t, 3, false)

	r.Start()
	r.Tick(context.Background()) // index 1, timer set
	r.HandleKey(KeyPause)

	r.HandleKey(KeyNext) // clears the timer, no advance
	if r.Index() != 1 {
		t.Fatalf("Index() = %d after first 'n', want 1", r.Index())
	}

	r.HandleKey(KeyNext) // timer already clear, skips
	if r.Index() != 2 {
		t.Fatalf("Index() = %d after second 'n', want 2", r.Index())
	}

	r.HandleKey(KeyNext) // still clear, skips again
	if r.Index() != 0 {
		t.Fatalf("Index() = %d after third 'n', want 0", r.Index())
	}
	if !r.CycleComplete() {
		t.Fatalf("wraparound did not mark the cycle complete")
	}
}

func TestPlaylistNextKeyPausedBeforeFirstDisplay(t *testing.T) {
	setClock(t, time.Unix(1700000000, 0))
	r, _, _ := newTestRunner(t, 3, false)

	r.Start()
	r.HandleKey(KeyPause)

	// Nothing shown yet: the timer is already clear, so 'n' skips.
	r.HandleKey(KeyNext)
	if r.Index() != 1 {
		t.Fatalf("Index() = %d, want 1", r.Index())
	}
}

func TestPlaylistRunOnceExitsAfterCycle(t *testing.T) {
	advance := setClock(t, time.Unix(1700000000, 0))
	r, fp, _ := newTestRunner(t, 2, true)

	r.Start()
	for i := 0; i < 2; i++ {
		flow, _ := r.Tick(context.Background())
		if flow != FlowContinue {
			t.Fatalf("Tick %d exited early", i)
		}
		advance(time.Minute)
	}
	if !r.CycleComplete() {
		t.Fatalf("cycle not complete after both items displayed")
	}

	flow, _ := r.Tick(context.Background())
	if flow != FlowExit {
		t.Fatalf("Tick after full cycle = %v, want FlowExit", flow)
	}
	if r.Status() != state.StatusStopped {
		t.Fatalf("Status() = %q after exit, want stopped", r.Status())
	}
	if len(fp.calls) != 2 {
		t.Fatalf("calls = %d, want exactly 2", len(fp.calls))
	}
}

func TestResumePlaylistRunnerClampsIndex(t *testing.T) {
	setClock(t, time.Unix(1700000000, 0))
	statePath := filepath.Join(t.TempDir(), "state.json")
	now := time.Unix(1700000000, 0)
	st := state.State{Status: state.StatusRunning, Index: 10, LastShownAt: &now}
	if err := st.Save(statePath); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	r := ResumePlaylistRunner(testPlaylist(2), statePath, false, &fakePresenter{}, &bytes.Buffer{})
	if r.Index() != 0 {
		t.Fatalf("Index() = %d for out-of-range saved index, want 0", r.Index())
	}
}

func TestPlaylistCleanupPersistsStopped(t *testing.T) {
	setClock(t, time.Unix(1700000000, 0))
	r, _, statePath := newTestRunner(t, 3, false)

	r.Start()
	r.Cleanup()

	saved := state.LoadOrDefault(statePath)
	if saved.Status != state.StatusStopped {
		t.Fatalf("saved status = %q after cleanup, want stopped", saved.Status)
	}
}

func TestPlaylistEmissionErrorKeepsRotating(t *testing.T) {
	setClock(t, time.Unix(1700000000, 0))
	r, fp, _ := newTestRunner(t, 2, false)
	fp.err = fmt.Errorf("send failed")

	r.Start()
	flow, err := r.Tick(context.Background())
	if err != nil || flow != FlowContinue {
		t.Fatalf("Tick() = (%v, %v), want rotation to continue", flow, err)
	}
	if r.Index() != 1 {
		t.Fatalf("Index() = %d after failed emission, want 1", r.Index())
	}
}
