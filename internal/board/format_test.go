package board

import (
	"reflect"
	"strings"
	"testing"
)

func TestCenterLine(t *testing.T) {
	t.Parallel()

	if got := CenterLine("hello world"); got != "     hello world      " {
		t.Fatalf("unexpected centering: %q", got)
	}
	if len(CenterLine("hello world")) != Cols {
		t.Fatalf("centered line must span %d cells", Cols)
	}
}

func TestCenterLineIdempotent(t *testing.T) {
	t.Parallel()

	once := CenterLine("hello world")
	if got := CenterLine(once); got != once {
		t.Fatalf("centering is not idempotent: %q vs %q", got, once)
	}
}

func TestFormatMessageCentered(t *testing.T) {
	t.Parallel()

	got := FormatMessage("hello world")
	want := []string{"", "", "     hello world      ", "", "", ""}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected layout: %q", got)
	}
}

func TestFormatMessageLongWord(t *testing.T) {
	t.Parallel()

	got := FormatMessage("thisisaverylongwordthatshouldwrap")
	want := []string{"", "", "thisisaverylongwordtha", "     tshouldwrap      ", "", ""}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected layout: %q", got)
	}
}

func TestFormatMessageLongWordMixed(t *testing.T) {
	t.Parallel()

	got := FormatMessage("1 1234567890123456789012 12345678901234567890123 1234567890 12345")
	want := []string{
		"          1           ",
		"1234567890123456789012",
		"1234567890123456789012",
		"          3           ",
		"   1234567890 12345   ",
		"",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected layout: %q", got)
	}
}

func TestFormatMessageColors(t *testing.T) {
	t.Parallel()

	got := FormatMessage("ROYGBVWKF")
	want := []string{"", "", "      ROYGBVWKF       ", "", "", ""}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected layout: %q", got)
	}
}

func TestFormatMessageFullBoardOfColors(t *testing.T) {
	t.Parallel()

	word := strings.Repeat("ROYGBVWK", 16) + "ROYG"
	got := FormatMessage(word)
	if len(got) != Rows {
		t.Fatalf("expected %d rows, got %d", Rows, len(got))
	}
	for i, row := range got {
		if len(row) != Cols {
			t.Fatalf("row %d has width %d", i, len(row))
		}
	}
	if strings.Join(got, "") != word {
		t.Fatalf("hard split reordered or lost characters")
	}
}

func TestWrapSplitPreservesWord(t *testing.T) {
	t.Parallel()

	word := strings.Repeat("abcdefghij", 5)
	rows := Wrap(word)
	if want := (len(word) + Cols - 1) / Cols; len(rows) != want {
		t.Fatalf("expected %d rows, got %d", want, len(rows))
	}
	joined := ""
	for _, row := range rows {
		joined += strings.TrimSpace(row)
	}
	if joined != word {
		t.Fatalf("split rows do not reproduce the word: %q", joined)
	}
}

func TestFullJustify(t *testing.T) {
	t.Parallel()

	got := FullJustify("hello", "world")
	if got != "hello            world" {
		t.Fatalf("unexpected justify: %q", got)
	}
	if len(got) != Cols {
		t.Fatalf("justified row must span %d cells, got %d", Cols, len(got))
	}
}

func TestFullJustifyFallback(t *testing.T) {
	t.Parallel()

	got := FullJustify("thisisaverylongword", "thatshouldwrap")
	if got != "thisisaverylongword thatshouldwrap" {
		t.Fatalf("expected single-space fallback, got %q", got)
	}
}

func TestFullJustifyEmptySides(t *testing.T) {
	t.Parallel()

	if got := FullJustify("", "world"); got != "                 world" {
		t.Fatalf("unexpected justify: %q", got)
	}
	if got := FullJustify("hello", ""); got != "hello                 " {
		t.Fatalf("unexpected justify: %q", got)
	}
}

func TestFormatError(t *testing.T) {
	t.Parallel()

	got := FormatError("This is an error message to display on the board.")
	want := []string{
		"        error         ",
		"R R R R R R R R R R R",
		"   this is an error   ",
		"message to display on ",
		"      the board.      ",
		"",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected layout: %q", got)
	}
}

func TestErrorDisplaySingleRowCenteredLow(t *testing.T) {
	t.Parallel()

	got := FormatError("short message")
	want := []string{
		"        error         ",
		"R R R R R R R R R R R",
		"",
		"    short message     ",
		"",
		"",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected layout: %q", got)
	}
}

func TestErrorDisplayTruncatesLongText(t *testing.T) {
	t.Parallel()

	long := "this is a very long error message that exceeds forty characters and should be truncated"
	rows := ErrorDisplay(&fakeDisplayErr{header: "error", text: long})
	joined := strings.ReplaceAll(strings.Join(rows[2:], ""), " ", "")
	if !strings.Contains(joined, "...") {
		t.Fatalf("expected truncation marker in %q", joined)
	}
}

type fakeDisplayErr struct {
	header string
	text   string
}

func (e *fakeDisplayErr) Error() string       { return e.text }
func (e *fakeDisplayErr) BoardHeader() string { return e.header }
func (e *fakeDisplayErr) BoardText() string   { return e.text }

func TestErrorDisplayTypedHeaders(t *testing.T) {
	t.Parallel()

	rows := ErrorDisplay(&fakeDisplayErr{header: "widget error", text: "weather data unavailable"})
	if rows[0] != CenterLine("widget error") {
		t.Fatalf("unexpected header row: %q", rows[0])
	}
	if rows[1] != "R R R R R R R R R R R" {
		t.Fatalf("unexpected divider row: %q", rows[1])
	}
	joined := strings.ReplaceAll(strings.Join(rows[2:], ""), " ", "")
	if !strings.Contains(joined, "weatherdataunavailable") {
		t.Fatalf("expected message content in %q", joined)
	}
}
