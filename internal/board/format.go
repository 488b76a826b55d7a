package board

import "strings"

// CenterLine pads line with blanks to the full row width. When the padding
// is odd the extra blank goes on the right. Lines already at or beyond the
// row width are returned unchanged.
func CenterLine(line string) string {
	if len(line) >= Cols {
		return line
	}
	left := (Cols - len(line)) / 2
	right := Cols - len(line) - left
	return strings.Repeat(" ", left) + line + strings.Repeat(" ", right)
}

// Wrap splits text on whitespace and packs words into rows of at most 22
// characters. A word longer than a row is hard-split at the row boundary;
// its trailing remainder closes as its own row so the split chunks stay in
// order.
func Wrap(text string) []string {
	var rows []string
	var cur string
	for _, word := range strings.Fields(text) {
		if len(word) > Cols {
			if cur != "" {
				rows = append(rows, cur)
				cur = ""
			}
			for len(word) > Cols {
				rows = append(rows, word[:Cols])
				word = word[Cols:]
			}
			if word != "" {
				rows = append(rows, word)
			}
			continue
		}
		if cur == "" {
			cur = word
			continue
		}
		if len(cur)+1+len(word) > Cols {
			rows = append(rows, cur)
			cur = word
			continue
		}
		cur += " " + word
	}
	if cur != "" {
		rows = append(rows, cur)
	}
	return rows
}

// CenterRows pads rows with blank lines to the full row count, split evenly
// with the surplus row at the bottom. More than 6 rows are truncated.
func CenterRows(rows []string) []string {
	if len(rows) >= Rows {
		return rows[:Rows]
	}
	top := (Rows - len(rows)) / 2
	out := make([]string, 0, Rows)
	for i := 0; i < top; i++ {
		out = append(out, "")
	}
	out = append(out, rows...)
	for len(out) < Rows {
		out = append(out, "")
	}
	return out
}

// FormatMessage wraps text, centers each row, and vertically centers the
// result into exactly 6 rows.
func FormatMessage(text string) []string {
	rows := Wrap(text)
	for i := range rows {
		rows[i] = CenterLine(rows[i])
	}
	return CenterRows(rows)
}

// FullJustify joins left and right with enough blanks for the row to span
// exactly 22 characters. When the two sides no longer fit around at least
// one blank, they are joined with a single space instead.
func FullJustify(left, right string) string {
	if len(left)+len(right) >= Cols-1 {
		return left + " " + right
	}
	return left + strings.Repeat(" ", Cols-len(left)-len(right)) + right
}
