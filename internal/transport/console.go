package transport

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	runewidth "github.com/mattn/go-runewidth"

	"splitflap/internal/applog"
	"splitflap/internal/board"
)

// Console renders the grid to a writer instead of a device. Used by
// --dry-run and the console transport.
type Console struct {
	out   io.Writer
	color bool
}

func NewConsole(out io.Writer) *Console {
	return &Console{out: out, color: applog.TermColorEnabled(out)}
}

var consoleColors = map[int]lipgloss.Style{
	63: lipgloss.NewStyle().Foreground(lipgloss.Color("1")),  // red
	64: lipgloss.NewStyle().Foreground(lipgloss.Color("208")), // orange
	65: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),  // yellow
	66: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),  // green
	67: lipgloss.NewStyle().Foreground(lipgloss.Color("4")),  // blue
	68: lipgloss.NewStyle().Foreground(lipgloss.Color("5")),  // violet
	69: lipgloss.NewStyle().Foreground(lipgloss.Color("7")),  // white
	70: lipgloss.NewStyle().Foreground(lipgloss.Color("0")),  // black
	71: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),  // filled
}

func (c *Console) Name() string { return "console" }

func (c *Console) Send(_ context.Context, g board.Grid) error {
	border := "+" + strings.Repeat("-", board.Cols) + "+"
	title := centerTitle("board", len(border))

	var b strings.Builder
	b.WriteString(title + "\n")
	b.WriteString(border + "\n")
	for _, row := range g {
		b.WriteString("|")
		for _, code := range row {
			b.WriteString(c.cell(code))
		}
		b.WriteString("|\n")
	}
	b.WriteString(border + "\n")

	_, err := io.WriteString(c.out, b.String())
	return err
}

func (c *Console) cell(code int) string {
	if board.IsColorCode(code) {
		block := "█"
		if style, ok := consoleColors[code]; ok && c.color {
			return style.Render(block)
		}
		return block
	}
	r := board.Label(code)
	if r >= 'a' && r <= 'z' {
		r = r - 'a' + 'A'
	}
	if r == 'D' {
		return "°"
	}
	return string(r)
}

func centerTitle(title string, width int) string {
	w := runewidth.StringWidth(title)
	if w >= width {
		return title
	}
	left := (width - w) / 2
	return fmt.Sprintf("%s%s", strings.Repeat(" ", left), title)
}
