// Package playlist holds the rotating content collection: an ordered list
// of widget invocations plus the shared rotation interval.
package playlist

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"time"
)

const (
	DefaultIntervalSeconds = 300
	MinIntervalSeconds     = 60
)

// Item is one unit of rotatable content.
type Item struct {
	ID     string          `json:"id"`
	Widget string          `json:"widget"`
	Input  json.RawMessage `json:"input,omitempty"`
}

// Playlist is the rotation collection. Order is rotation order.
type Playlist struct {
	IntervalSeconds int    `json:"interval_seconds"`
	Items           []Item `json:"items"`
}

func Default() Playlist {
	return Playlist{IntervalSeconds: DefaultIntervalSeconds}
}

func (p Playlist) Len() int      { return len(p.Items) }
func (p Playlist) IsEmpty() bool { return len(p.Items) == 0 }

func (p Playlist) Get(i int) (Item, bool) {
	if i < 0 || i >= len(p.Items) {
		return Item{}, false
	}
	return p.Items[i], true
}

func (p Playlist) FindIndex(id string) int {
	for i, item := range p.Items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func (p Playlist) Interval() time.Duration {
	return time.Duration(p.IntervalSeconds) * time.Second
}

// ValidateInterval enforces the rotation-interval floor. Checked at
// mutation time and again before a rotation starts; loaded files may carry
// stale values.
func ValidateInterval(secs int) error {
	if secs < MinIntervalSeconds {
		return fmt.Errorf("interval must be at least %d seconds, got %d", MinIntervalSeconds, secs)
	}
	return nil
}

const idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// NewItemID returns a short random identifier for a playlist item.
func NewItemID() string {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("%04d", time.Now().UTC().UnixNano()%10000)
	}
	for i, b := range buf {
		buf[i] = idAlphabet[int(b)%len(idAlphabet)]
	}
	return string(buf)
}
