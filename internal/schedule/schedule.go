// Package schedule holds the time-based content collection: tasks that fire
// once at an absolute time, or repeatedly on a cron expression.
package schedule

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	robcron "github.com/robfig/cron/v3"
)

// Task fires its widget once At is reached. A non-empty Cron expression
// marks the task as repeating: after it fires, the next occurrence is
// re-armed from the expression.
type Task struct {
	ID     string          `json:"id"`
	At     time.Time       `json:"at"`
	Widget string          `json:"widget"`
	Input  json.RawMessage `json:"input,omitempty"`
	Cron   string          `json:"cron,omitempty"`
}

type Schedule struct {
	Tasks []Task `json:"tasks"`
}

func (s Schedule) Len() int { return len(s.Tasks) }

func (s Schedule) Get(i int) (Task, bool) {
	if i < 0 || i >= len(s.Tasks) {
		return Task{}, false
	}
	return s.Tasks[i], true
}

func (s Schedule) FindIndex(id string) int {
	for i, t := range s.Tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// sortTasks orders tasks ascending by fire time, keeping insertion order
// for equal times.
func sortTasks(tasks []Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].At.Before(tasks[j].At)
	})
}

var cronParser = robcron.NewParser(
	robcron.Minute | robcron.Hour | robcron.Dom | robcron.Month | robcron.Dow | robcron.Descriptor,
)

// NextCron returns the first firing of expr strictly after the given time.
func NextCron(expr string, after time.Time) (time.Time, error) {
	sched, err := cronParser.Parse(strings.TrimSpace(expr))
	if err != nil {
		return time.Time{}, fmt.Errorf("parse cron expression: %w", err)
	}
	return sched.Next(after), nil
}

var atLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
	time.RFC3339,
}

// ParseAt interprets a user-supplied fire time in the given location.
func ParseAt(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("time is required")
	}
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range atLayouts {
		if ts, err := time.ParseInLocation(layout, s, loc); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time: %q", s)
}
