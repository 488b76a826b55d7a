// Package applog is the process-wide leveled logger: every record goes to a
// log file, and records at or above a console threshold are mirrored to the
// terminal with optional color.
package applog

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// ParseLevel maps a config string to a Level, defaulting to info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

type Logger struct {
	mu sync.Mutex

	file io.Writer
	term io.Writer

	fileLevel Level
	termLevel Level
	termColor bool
}

type Options struct {
	File io.Writer
	Term io.Writer

	FileLevel Level
	TermLevel Level
	TermColor bool
}

func New(opts Options) *Logger {
	return &Logger{
		file:      opts.File,
		term:      opts.Term,
		fileLevel: opts.FileLevel,
		termLevel: opts.TermLevel,
		termColor: opts.TermColor,
	}
}

func (l *Logger) Close() error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if c, ok := l.file.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// TermColorEnabled reports whether w is a color-capable terminal.
func TermColorEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	termEnv := strings.TrimSpace(os.Getenv("TERM"))
	if termEnv == "" || termEnv == "dumb" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func (l *Logger) Logf(level Level, format string, args ...any) {
	if l == nil {
		return
	}
	text := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	if strings.TrimSpace(text) == "" {
		return
	}

	ts := time.Now().Format("2006-01-02 15:04:05.000")
	line := fmt.Sprintf("[%s] [%s] %s\n", ts, level, text)

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil && level >= l.fileLevel {
		_, _ = io.WriteString(l.file, line)
	}
	if l.term != nil && level >= l.termLevel {
		if l.termColor {
			_, _ = io.WriteString(l.term, colorize(level, line))
		} else {
			_, _ = io.WriteString(l.term, line)
		}
	}
}

func (l *Logger) Debugf(format string, args ...any) { l.Logf(LevelDebug, format, args...) }
func (l *Logger) Infof(format string, args ...any)  { l.Logf(LevelInfo, format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.Logf(LevelWarn, format, args...) }
func (l *Logger) Errorf(format string, args ...any) { l.Logf(LevelError, format, args...) }

const (
	ansiReset  = "\x1b[0m"
	ansiDim    = "\x1b[2m"
	ansiCyan   = "\x1b[36m"
	ansiYellow = "\x1b[33m"
	ansiRed    = "\x1b[31m"
)

func colorize(level Level, line string) string {
	code := ""
	switch level {
	case LevelDebug:
		code = ansiDim
	case LevelInfo:
		code = ansiCyan
	case LevelWarn:
		code = ansiYellow
	case LevelError:
		code = ansiRed
	default:
		return line
	}
	return code + line + ansiReset
}

var (
	stdMu sync.Mutex
	std   = New(Options{
		Term:      os.Stderr,
		TermLevel: LevelWarn,
		TermColor: TermColorEnabled(os.Stderr),
	})
)

// Setup replaces the default logger with one writing to the given file path
// at the given thresholds. An empty path keeps terminal-only logging.
func Setup(filePath string, fileLevel, termLevel Level) error {
	var file io.Writer
	if strings.TrimSpace(filePath) != "" {
		f, err := os.OpenFile(filePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		file = f
	}
	stdMu.Lock()
	defer stdMu.Unlock()
	std = New(Options{
		File:      file,
		Term:      os.Stderr,
		FileLevel: fileLevel,
		TermLevel: termLevel,
		TermColor: TermColorEnabled(os.Stderr),
	})
	return nil
}

func Default() *Logger {
	stdMu.Lock()
	defer stdMu.Unlock()
	return std
}

func Debugf(format string, args ...any) { Default().Debugf(format, args...) }
func Infof(format string, args ...any)  { Default().Infof(format, args...) }
func Warnf(format string, args ...any)  { Default().Warnf(format, args...) }
func Errorf(format string, args ...any) { Default().Errorf(format, args...) }
