// internal/app/view.go
package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/reel/internal/ui/overlay"
	"github.com/llehouerou/reel/internal/ui/transport"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.Quitting || m.Width == 0 || m.Height == 0 {
		return ""
	}

	helpView := m.Help.View(m.Keys)
	helpHeight := lipgloss.Height(helpView)
	surfaceHeight := max(m.Height-transport.Height-helpHeight, 0)

	base := strings.Join([]string{
		m.Surface.View(m.Width, surfaceHeight),
		transport.Render(*m.Transport, m.Width),
		helpView,
	}, "\n")

	if !m.Alerts.Active() {
		return base
	}
	return overlay.Compose(base, overlay.Center(m.Alerts.View(), m.Width, m.Height), m.Width)
}
