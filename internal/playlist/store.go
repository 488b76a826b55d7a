package playlist

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"splitflap/internal/fstore"
)

// Store persists a Playlist as a JSON document.
type Store struct {
	Path string
}

func NewStore(path string) *Store {
	return &Store{Path: strings.TrimSpace(path)}
}

// Load reads the playlist. A missing or empty file yields the default
// playlist; malformed JSON is an error so user content is never silently
// discarded.
func (s *Store) Load() (Playlist, error) {
	path := strings.TrimSpace(s.Path)
	if path == "" {
		return Playlist{}, errors.New("playlist path is empty")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Playlist{}, err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return Default(), nil
	}
	var p Playlist
	if err := json.Unmarshal(data, &p); err != nil {
		return Playlist{}, fmt.Errorf("parse playlist: %w", err)
	}
	if p.IntervalSeconds == 0 {
		p.IntervalSeconds = DefaultIntervalSeconds
	}
	return p, nil
}

// Add appends a new item and returns it with its generated ID.
func (s *Store) Add(widget string, input json.RawMessage) (Item, error) {
	widget = strings.TrimSpace(widget)
	if widget == "" {
		return Item{}, errors.New("widget name is required")
	}
	var out Item
	err := s.mutate(func(p *Playlist) error {
		out = Item{ID: s.freshID(*p), Widget: widget, Input: input}
		p.Items = append(p.Items, out)
		return nil
	})
	if err != nil {
		return Item{}, err
	}
	return out, nil
}

// Remove deletes the item with the given ID.
func (s *Store) Remove(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return errors.New("id is required")
	}
	return s.mutate(func(p *Playlist) error {
		idx := p.FindIndex(id)
		if idx < 0 {
			return fmt.Errorf("item not found: %s", id)
		}
		p.Items = append(p.Items[:idx], p.Items[idx+1:]...)
		return nil
	})
}

// Clear removes every item but keeps the interval.
func (s *Store) Clear() error {
	return s.mutate(func(p *Playlist) error {
		p.Items = nil
		return nil
	})
}

// SetInterval updates the rotation interval, enforcing the floor.
func (s *Store) SetInterval(secs int) error {
	if err := ValidateInterval(secs); err != nil {
		return err
	}
	return s.mutate(func(p *Playlist) error {
		p.IntervalSeconds = secs
		return nil
	})
}

func (s *Store) mutate(fn func(*Playlist) error) error {
	path := strings.TrimSpace(s.Path)
	if path == "" {
		return errors.New("playlist path is empty")
	}
	return fstore.WithLock(path+".lock", 5*time.Second, func() error {
		p, err := s.Load()
		if err != nil {
			return err
		}
		if err := fn(&p); err != nil {
			return err
		}
		return fstore.WriteJSONAtomic(path, p)
	})
}

func (s *Store) freshID(p Playlist) string {
	for i := 0; i < 10; i++ {
		id := NewItemID()
		if p.FindIndex(id) < 0 {
			return id
		}
	}
	return NewItemID()
}
