// Package board converts text into the fixed 6x22 character-code grid a
// split-flap display consumes. It owns the device alphabet, word wrapping,
// centering, full justification, and the on-board error layout.
package board

import (
	"fmt"
	"sort"
	"strings"
)

const (
	// Rows and Cols are the fixed dimensions of the display.
	Rows = 6
	Cols = 22
)

// Grid is one full board worth of character codes.
type Grid [Rows][Cols]int

// Color tokens are written as uppercase letters inside widget text so they
// survive the otherwise-lowercase alphabet. 'D' renders the degree sign.
var charCodes = map[rune]int{
	' ': 0,
	'a': 1, 'b': 2, 'c': 3, 'd': 4, 'e': 5, 'f': 6, 'g': 7, 'h': 8,
	'i': 9, 'j': 10, 'k': 11, 'l': 12, 'm': 13, 'n': 14, 'o': 15, 'p': 16,
	'q': 17, 'r': 18, 's': 19, 't': 20, 'u': 21, 'v': 22, 'w': 23, 'x': 24,
	'y': 25, 'z': 26,
	'1': 27, '2': 28, '3': 29, '4': 30, '5': 31, '6': 32, '7': 33, '8': 34,
	'9': 35, '0': 36,
	'!': 37, '@': 38, '#': 39, '$': 40, '(': 41, ')': 42, '-': 44, '+': 46,
	'&': 47, '=': 48, ';': 49, ':': 50, '\'': 52, '"': 53, '%': 54, ',': 55,
	'.': 56, '/': 59, '?': 60,
	'D': 62,
	'R': 63, 'O': 64, 'Y': 65, 'G': 66, 'B': 67, 'V': 68, 'W': 69, 'K': 70,
	'F': 71,
}

var codeLabels = func() map[int]rune {
	out := make(map[int]rune, len(charCodes))
	for r, code := range charCodes {
		if _, ok := out[code]; !ok {
			out[code] = r
		}
	}
	return out
}()

// CharCode returns the device code for r and whether r is in the alphabet.
func CharCode(r rune) (int, bool) {
	code, ok := charCodes[r]
	return code, ok
}

// Label returns the printable character for a code, or ' ' for unknown codes.
func Label(code int) rune {
	if r, ok := codeLabels[code]; ok {
		return r
	}
	return ' '
}

// IsColorCode reports whether code is one of the solid color flaps.
func IsColorCode(code int) bool {
	return code >= 63 && code <= 71
}

// UnsupportedCharsError reports every character of a message that has no
// alphabet mapping, deduplicated and sorted.
type UnsupportedCharsError struct {
	Chars []rune
}

func (e *UnsupportedCharsError) Error() string {
	quoted := make([]string, 0, len(e.Chars))
	for _, r := range e.Chars {
		quoted = append(quoted, fmt.Sprintf("%q", r))
	}
	return "unsupported characters: " + strings.Join(quoted, ", ")
}

// BoardHeader implements DisplayableError.
func (e *UnsupportedCharsError) BoardHeader() string { return "error" }

// BoardText implements DisplayableError.
func (e *UnsupportedCharsError) BoardText() string { return "text processing error" }

// Validate checks every character of every line against the alphabet.
func Validate(lines []string) error {
	seen := map[rune]bool{}
	for _, line := range lines {
		for _, r := range line {
			if _, ok := charCodes[r]; !ok && !seen[r] {
				seen[r] = true
			}
		}
	}
	if len(seen) == 0 {
		return nil
	}
	bad := make([]rune, 0, len(seen))
	for r := range seen {
		bad = append(bad, r)
	}
	sort.Slice(bad, func(i, j int) bool { return bad[i] < bad[j] })
	return &UnsupportedCharsError{Chars: bad}
}

// Encode validates lines and lays them out as a full grid. Short lines are
// padded with blanks; anything beyond 6 rows or 22 cells is dropped.
func Encode(lines []string) (Grid, error) {
	var g Grid
	if err := Validate(lines); err != nil {
		return Grid{}, err
	}
	for i, line := range lines {
		if i >= Rows {
			break
		}
		for j, r := range line {
			if j >= Cols {
				break
			}
			g[i][j] = charCodes[r]
		}
	}
	return g, nil
}
