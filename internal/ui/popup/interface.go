// Package popup defines modal components drawn over the player.
package popup

import tea "github.com/charmbracelet/bubbletea"

// Popup is a modal component. While one is active it receives every key.
type Popup interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Popup, tea.Cmd)
	// View renders the popup box, without centering.
	View() string
	SetSize(width, height int)
	Active() bool
}
