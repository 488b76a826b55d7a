package board

import (
	"errors"
	"strings"
)

// errDivider is the alternating red-flap row under the error header.
const errDivider = "R R R R R R R R R R R"

// maxErrText caps the free-text portion of an on-board error message.
const maxErrText = 40

// DisplayableError is implemented by error types that know their on-board
// category header and short user-facing message.
type DisplayableError interface {
	BoardHeader() string
	BoardText() string
}

// FormatError renders a raw error message with the generic "error" header.
func FormatError(message string) []string {
	return errorRows("error", message)
}

// ErrorDisplay renders any error as a 6-row board message. Typed errors
// choose their header and message via DisplayableError; everything else is
// shown under the generic header, truncated when long.
func ErrorDisplay(err error) []string {
	header, text := "error", err.Error()
	var de DisplayableError
	if errors.As(err, &de) {
		header, text = de.BoardHeader(), de.BoardText()
	}
	if len(text) > maxErrText {
		text = text[:maxErrText-3] + "..."
	}
	return errorRows(header, text)
}

// errorRows lays out the fixed error format: centered header, divider row,
// and up to 4 wrapped message rows vertically centered in the remainder.
func errorRows(header, message string) []string {
	out := []string{CenterLine(header), errDivider}
	content := Wrap(strings.ToLower(message))
	if len(content) > Rows-2 {
		content = content[:Rows-2]
	}
	top := (Rows - 2 - len(content)) / 2
	for i := 0; i < top; i++ {
		out = append(out, "")
	}
	for _, line := range content {
		out = append(out, CenterLine(line))
	}
	for len(out) < Rows {
		out = append(out, "")
	}
	return out
}
