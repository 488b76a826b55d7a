package runner

import (
	"context"
	"fmt"
	"io"
	"time"

	"splitflap/internal/applog"
	"splitflap/internal/schedule"
)

// ScheduleRunner fires tasks at their absolute times. It tracks which task
// IDs already fired; the set is cleared only when the schedule reloads, so
// hot-edited files can re-arm a time that recurs.
type ScheduleRunner struct {
	schedule schedule.Schedule
	executed map[string]bool

	store     *schedule.Store
	monitor   *schedule.Monitor
	presenter Presenter
	out       io.Writer
}

func NewScheduleRunner(sched schedule.Schedule, p Presenter, out io.Writer) *ScheduleRunner {
	return &ScheduleRunner{
		schedule:  sched,
		executed:  map[string]bool{},
		presenter: p,
		out:       out,
	}
}

// WatchStore enables hot reload: edits to the store's file are picked up
// on the next tick.
func (r *ScheduleRunner) WatchStore(store *schedule.Store, monitor *schedule.Monitor) {
	r.store = store
	r.monitor = monitor
}

func (r *ScheduleRunner) HelpText() string { return scheduleHelp }

func (r *ScheduleRunner) Start() {
	applog.Infof("schedule started with %d tasks", r.schedule.Len())
	fmt.Fprintf(r.out, "Schedule running (%d tasks)...\n", r.schedule.Len())
	r.printNext()
}

// NextPending returns the earliest task that has not fired and is still in
// the future. Equal fire times keep insertion order.
func (r *ScheduleRunner) NextPending(now time.Time) (schedule.Task, bool) {
	var best schedule.Task
	found := false
	for _, task := range r.schedule.Tasks {
		if r.executed[task.ID] || !task.At.After(now) {
			continue
		}
		if !found || task.At.Before(best.At) {
			best = task
			found = true
		}
	}
	return best, found
}

// nextDue returns the earliest unexecuted task whose time has arrived.
func (r *ScheduleRunner) nextDue(now time.Time) (schedule.Task, bool) {
	var best schedule.Task
	found := false
	for _, task := range r.schedule.Tasks {
		if r.executed[task.ID] || task.At.After(now) {
			continue
		}
		if !found || task.At.Before(best.At) {
			best = task
			found = true
		}
	}
	return best, found
}

// Tick fires at most one due task. An overdue backlog drains one task per
// iteration rather than in a burst.
func (r *ScheduleRunner) Tick(ctx context.Context) (Flow, error) {
	r.maybeReload()

	now := timeNow()
	task, ok := r.nextDue(now)
	if !ok {
		return FlowContinue, nil
	}

	applog.Infof("executing scheduled task %s (%s)", task.ID, task.Widget)
	fmt.Fprintf(r.out, "Running scheduled %s [%s]...\n", task.Widget, task.ID)

	label := fmt.Sprintf("scheduled %s", task.Widget)
	// A failed task already showed the error layout; the schedule goes on.
	_ = r.presenter.Present(ctx, task.Widget, task.Input, label)
	r.executed[task.ID] = true

	r.rearm(task)
	r.printNext()
	return FlowContinue, nil
}

// rearm queues the next occurrence of a repeating task.
func (r *ScheduleRunner) rearm(task schedule.Task) {
	if task.Cron == "" {
		return
	}
	next, err := schedule.NextCron(task.Cron, timeNow())
	if err != nil {
		applog.Warnf("rearm task %s: %v", task.ID, err)
		return
	}
	repeat := task
	repeat.ID = task.ID + "+"
	repeat.At = next
	r.schedule.Tasks = append(r.schedule.Tasks, repeat)
	applog.Infof("rearmed task %s for %s", task.ID, next.Format("2006-01-02 15:04"))
}

// Reload replaces the collection and clears the executed set so tasks at
// recurring times become eligible again.
func (r *ScheduleRunner) Reload(sched schedule.Schedule) {
	r.schedule = sched
	r.executed = map[string]bool{}
	applog.Infof("schedule reloaded: %d tasks", sched.Len())
	fmt.Fprintf(r.out, "Schedule reloaded (%d tasks).\n", sched.Len())
	r.printNext()
}

func (r *ScheduleRunner) maybeReload() {
	if r.monitor == nil || !r.monitor.Changed() {
		return
	}
	sched, err := r.store.Load()
	if err != nil {
		applog.Warnf("reload schedule: %v", err)
		return
	}
	r.Reload(sched)
}

func (r *ScheduleRunner) HandleKey(k Key) Flow {
	switch k {
	case KeyQuit:
		applog.Infof("quit requested via keyboard")
		return FlowExit
	case KeyHelp:
		fmt.Fprintf(r.out, "\n%s\n\n", r.HelpText())
	}
	return FlowContinue
}

func (r *ScheduleRunner) Cleanup() {
	applog.Infof("schedule runner cleanup complete")
}

func (r *ScheduleRunner) printNext() {
	if task, ok := r.NextPending(timeNow()); ok {
		fmt.Fprintf(r.out, "Next task: %s at %s\n", task.Widget, task.At.Local().Format("3:04 PM"))
	} else {
		fmt.Fprintln(r.out, "No pending tasks.")
	}
}
