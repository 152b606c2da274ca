package popup

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/reel/internal/ui/styles"
)

// Frame draws a rounded box holding a centered title, the body and a
// centered footer. The box is at most maxWidth columns wide; longer body
// lines wrap.
func Frame(title, body, footer string, maxWidth int) string {
	t := styles.T()

	inner := max(lipgloss.Width(title), lipgloss.Width(footer))
	for line := range strings.SplitSeq(body, "\n") {
		inner = max(inner, lipgloss.Width(line))
	}
	// Border and padding take four columns.
	inner = max(min(inner, maxWidth-4), 1)

	center := lipgloss.NewStyle().Width(inner).Align(lipgloss.Center)
	parts := make([]string, 0, 5)
	if title != "" {
		parts = append(parts, center.Render(t.S().Title.Render(title)), "")
	}
	parts = append(parts, lipgloss.NewStyle().Width(inner).Render(t.S().Base.Render(body)))
	if footer != "" {
		parts = append(parts, "", center.Render(t.S().Subtle.Render(footer)))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderFocus).
		Padding(0, 1).
		Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}
