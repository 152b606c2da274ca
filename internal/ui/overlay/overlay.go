// Package overlay layers a rendered popup over a rendered view.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Center places box in the middle of a width x height area. Lines around
// the box are left blank so Compose keeps the base visible there.
func Center(box string, width, height int) string {
	lines := strings.Split(box, "\n")
	boxWidth := 0
	for _, line := range lines {
		boxWidth = max(boxWidth, lipgloss.Width(line))
	}

	top := max((height-len(lines))/2, 0)
	left := strings.Repeat(" ", max((width-boxWidth)/2, 0))

	out := make([]string, 0, top+len(lines))
	for range top {
		out = append(out, "")
	}
	for _, line := range lines {
		out = append(out, left+line)
	}
	return strings.Join(out, "\n")
}

// Compose draws top over base. On every line, the span between the first
// and last visible cell of top replaces the same columns of base. ANSI
// styling on both sides is preserved.
func Compose(base, top string, width int) string {
	baseLines := strings.Split(base, "\n")

	for i, line := range strings.Split(top, "\n") {
		if i >= len(baseLines) {
			break
		}
		plain := ansi.Strip(line)
		if strings.TrimSpace(plain) == "" {
			continue
		}

		start := len(plain) - len(strings.TrimLeft(plain, " "))
		end := ansi.StringWidth(strings.TrimRight(plain, " "))
		baseLines[i] = splice(baseLines[i], ansi.Cut(line, start, end), start, end, width)
	}
	return strings.Join(baseLines, "\n")
}

// splice replaces columns [start, end) of line with mid.
func splice(line, mid string, start, end, width int) string {
	if w := ansi.StringWidth(line); w < width {
		line += strings.Repeat(" ", width-w)
	}

	// Cutting through a wide rune drops it, so pad back to the column.
	prefix := ansi.Cut(line, 0, start)
	if w := ansi.StringWidth(prefix); w < start {
		prefix += strings.Repeat(" ", start-w)
	}
	if end >= width {
		return prefix + mid
	}

	suffix := ansi.Cut(line, end, width)
	want := width - end
	if w := ansi.StringWidth(suffix); w > want {
		suffix = ansi.TruncateLeft(suffix, w-want, "")
	}
	if w := ansi.StringWidth(suffix); w < want {
		suffix = strings.Repeat(" ", want-w) + suffix
	}
	return prefix + mid + suffix
}
