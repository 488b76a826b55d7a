package widgets

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"splitflap/internal/applog"
	"splitflap/internal/board"
)

// TextWidget wraps and centers a literal message.
type TextWidget struct{}

func (TextWidget) Name() string { return "text" }

func (TextWidget) Generate(_ context.Context, input json.RawMessage) ([]string, error) {
	text := stringInput(input)
	applog.Debugf("text widget: %d characters", len(text))
	return board.FormatMessage(text), nil
}

// FileWidget displays the raw lines of a text file.
type FileWidget struct{}

func (FileWidget) Name() string { return "file" }

func (FileWidget) Generate(_ context.Context, input json.RawMessage) ([]string, error) {
	path := strings.TrimSpace(stringInput(input))
	if path == "" {
		return nil, &WidgetError{Widget: "file", Reason: "file path is required"}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &WidgetError{Widget: "file", Reason: fmt.Sprintf("reading %s", path), Err: err}
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	applog.Debugf("file widget: %d lines from %s", len(lines), path)
	return lines, nil
}

// ClearWidget blanks the board.
type ClearWidget struct{}

func (ClearWidget) Name() string { return "clear" }

func (ClearWidget) Generate(context.Context, json.RawMessage) ([]string, error) {
	return []string{""}, nil
}
