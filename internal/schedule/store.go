package schedule

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"splitflap/internal/fstore"
	"splitflap/internal/playlist"
)

// Store persists a Schedule as a JSON document.
type Store struct {
	Path string
}

func NewStore(path string) *Store {
	return &Store{Path: strings.TrimSpace(path)}
}

// Load reads the schedule, sorted ascending by fire time. A missing or
// empty file yields an empty schedule; malformed JSON is an error.
func (s *Store) Load() (Schedule, error) {
	path := strings.TrimSpace(s.Path)
	if path == "" {
		return Schedule{}, errors.New("schedule path is empty")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Schedule{}, nil
		}
		return Schedule{}, err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return Schedule{}, nil
	}
	var sched Schedule
	if err := json.Unmarshal(data, &sched); err != nil {
		return Schedule{}, fmt.Errorf("parse schedule: %w", err)
	}
	sortTasks(sched.Tasks)
	return sched, nil
}

// Add inserts a task and returns it with its generated ID and resolved
// fire time. Tasks with a cron expression get their first firing computed
// from now.
func (s *Store) Add(task Task, now time.Time) (Task, error) {
	task.Widget = strings.TrimSpace(task.Widget)
	if task.Widget == "" {
		return Task{}, errors.New("widget name is required")
	}
	task.Cron = strings.TrimSpace(task.Cron)
	if task.Cron != "" {
		next, err := NextCron(task.Cron, now)
		if err != nil {
			return Task{}, err
		}
		task.At = next
	}
	if task.At.IsZero() {
		return Task{}, errors.New("fire time is required")
	}

	var out Task
	err := s.mutate(func(sched *Schedule) error {
		if strings.TrimSpace(task.ID) == "" {
			task.ID = playlist.NewItemID()
		}
		out = task
		sched.Tasks = append(sched.Tasks, task)
		sortTasks(sched.Tasks)
		return nil
	})
	if err != nil {
		return Task{}, err
	}
	return out, nil
}

// Remove deletes the task with the given ID.
func (s *Store) Remove(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return errors.New("id is required")
	}
	return s.mutate(func(sched *Schedule) error {
		idx := sched.FindIndex(id)
		if idx < 0 {
			return fmt.Errorf("task not found: %s", id)
		}
		sched.Tasks = append(sched.Tasks[:idx], sched.Tasks[idx+1:]...)
		return nil
	})
}

func (s *Store) Clear() error {
	return s.mutate(func(sched *Schedule) error {
		sched.Tasks = nil
		return nil
	})
}

func (s *Store) mutate(fn func(*Schedule) error) error {
	path := strings.TrimSpace(s.Path)
	if path == "" {
		return errors.New("schedule path is empty")
	}
	return fstore.WithLock(path+".lock", 5*time.Second, func() error {
		sched, err := s.Load()
		if err != nil {
			return err
		}
		if err := fn(&sched); err != nil {
			return err
		}
		return fstore.WriteJSONAtomic(path, sched)
	})
}
