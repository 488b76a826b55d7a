package widgets

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"splitflap/internal/board"
)

func TestRegistryUnknownWidget(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	_, err := r.Generate(context.Background(), "nope", nil)
	var we *WidgetError
	if !errors.As(err, &we) {
		t.Fatalf("expected WidgetError, got %v", err)
	}
	if we.BoardText() != "unknown error" {
		t.Fatalf("unexpected board text: %q", we.BoardText())
	}
}

func TestRegistryNameNormalization(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	r.Register(TextWidget{})
	input, _ := json.Marshal("hi")
	if _, err := r.Generate(context.Background(), "  TEXT ", input); err != nil {
		t.Fatalf("expected normalized lookup to succeed: %v", err)
	}
}

func TestTextWidgetFormats(t *testing.T) {
	t.Parallel()

	input, _ := json.Marshal("hello world")
	rows, err := TextWidget{}.Generate(context.Background(), input)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	want := []string{"", "", "     hello world      ", "", "", ""}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("unexpected rows: %q", rows)
	}
}

func TestFileWidgetReadsLines(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "note.txt")
	if err := os.WriteFile(path, []byte("line one\nline two\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	input, _ := json.Marshal(path)
	rows, err := FileWidget{}.Generate(context.Background(), input)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(rows) != 2 || rows[0] != "line one" {
		t.Fatalf("unexpected rows: %q", rows)
	}
}

func TestFileWidgetMissingFile(t *testing.T) {
	t.Parallel()

	input, _ := json.Marshal(filepath.Join(t.TempDir(), "absent.txt"))
	_, err := FileWidget{}.Generate(context.Background(), input)
	var we *WidgetError
	if !errors.As(err, &we) || we.BoardText() != "'file' not found" {
		t.Fatalf("expected file widget error, got %v", err)
	}
}

func TestClearWidget(t *testing.T) {
	t.Parallel()

	rows, err := ClearWidget{}.Generate(context.Background(), nil)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	g, err := board.Encode(rows)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if g != (board.Grid{}) {
		t.Fatalf("expected blank grid")
	}
}

func TestJokeWidgetIsDisplayable(t *testing.T) {
	t.Parallel()

	rows, err := JokeWidget{}.Generate(context.Background(), nil)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if _, err := board.Encode(rows); err != nil {
		t.Fatalf("joke output not displayable: %v", err)
	}
}

func TestParseDictLine(t *testing.T) {
	t.Parallel()

	entry, ok := parseDictLine("Abate (v) to become less active (the storm abated)")
	if !ok {
		t.Fatalf("expected line to parse")
	}
	if entry.word != "abate" || entry.wordType != "v" || entry.definition != "to become less active" {
		t.Fatalf("unexpected entry: %+v", entry)
	}

	if _, ok := parseDictLine("justoneword"); ok {
		t.Fatalf("expected parse failure for missing type")
	}
	if _, ok := parseDictLine("word no parens here"); ok {
		t.Fatalf("expected parse failure for missing type marker")
	}
}

func TestSATWordWidget(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "words.txt")
	content := "abate (v) to become less active (the storm abated)\nnot a valid line\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	rows, err := SATWordWidget{Path: path}.Generate(context.Background(), nil)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if rows[0] != "abate (v):" || rows[1] != "" {
		t.Fatalf("unexpected header rows: %q", rows)
	}

	_, err = SATWordWidget{Path: filepath.Join(t.TempDir(), "missing.txt")}.Generate(context.Background(), nil)
	var we *WidgetError
	if !errors.As(err, &we) || we.BoardText() != "dictionary unavailable" {
		t.Fatalf("expected dictionary error, got %v", err)
	}
}

func TestWeatherRowsLayout(t *testing.T) {
	t.Parallel()

	doc := `{
		"location": {"localtime": "2026-08-28 14:05"},
		"current": {
			"temp_f": 62.1,
			"pressure_in": 29.91,
			"condition": {"text": "Partly \"Cloudy\""}
		},
		"forecast": {"forecastday": [
			{"day": {"maxtemp_f": 73.2, "mintemp_f": 55.0}}
		]}
	}`
	var data weatherResponse
	if err := json.Unmarshal([]byte(doc), &data); err != nil {
		t.Fatalf("unmarshal fixture: %v", err)
	}

	rows := weatherRows(data)
	if len(rows) != board.Rows {
		t.Fatalf("expected %d rows, got %d", board.Rows, len(rows))
	}
	if rows[1] != board.CenterLine("W62.1D B55.0D R73.2D") {
		t.Fatalf("unexpected temps row: %q", rows[1])
	}
	if _, err := board.Encode(rows); err != nil {
		t.Fatalf("weather rows not displayable: %v", err)
	}
}
