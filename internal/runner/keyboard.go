package runner

import (
	"errors"
	"os"

	"golang.org/x/term"
)

// Key is one of the named interactive controls. Unmapped input never
// reaches an engine; the source swallows it.
type Key int

const (
	KeyNone Key = iota
	KeyQuit
	KeyPause
	KeyResume
	KeyNext
	KeyHelp
)

// KeySource yields at most one key per poll without blocking.
type KeySource interface {
	Poll() Key
	Close() error
}

// ScriptKeys replays a fixed key sequence, then reports no input. The test
// double for interactive sessions.
type ScriptKeys struct {
	Keys []Key
	pos  int
}

func (s *ScriptKeys) Poll() Key {
	if s == nil || s.pos >= len(s.Keys) {
		return KeyNone
	}
	k := s.Keys[s.pos]
	s.pos++
	return k
}

func (s *ScriptKeys) Close() error { return nil }

// TermKeys reads single bytes from a raw-mode terminal. A background
// goroutine feeds a small buffer so Poll never blocks the loop.
type TermKeys struct {
	fd    int
	saved *term.State
	bytes chan byte
}

func NewTermKeys() (*TermKeys, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, errors.New("stdin is not a terminal")
	}
	saved, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	t := &TermKeys{fd: fd, saved: saved, bytes: make(chan byte, 16)}
	go t.read()
	return t, nil
}

func (t *TermKeys) read() {
	buf := make([]byte, 1)
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil {
			return
		}
		if n == 0 {
			continue
		}
		select {
		case t.bytes <- buf[0]:
		default:
			// Drop input when the buffer is full; the loop polls often.
		}
	}
}

func (t *TermKeys) Poll() Key {
	select {
	case b := <-t.bytes:
		return mapKey(b)
	default:
		return KeyNone
	}
}

func (t *TermKeys) Close() error {
	if t == nil || t.saved == nil {
		return nil
	}
	return term.Restore(t.fd, t.saved)
}

func mapKey(b byte) Key {
	switch b {
	case 'q', 'Q', 0x03: // raw mode delivers ctrl-c as a byte
		return KeyQuit
	case 'p', 'P':
		return KeyPause
	case 'r', 'R':
		return KeyResume
	case 'n', 'N':
		return KeyNext
	case '?':
		return KeyHelp
	default:
		return KeyNone
	}
}
