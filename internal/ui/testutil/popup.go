package testutil

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/reel/internal/ui/popup"
)

// PopupHarness drives a popup with key presses and records the commands
// it returns.
type PopupHarness struct {
	popup popup.Popup
	cmds  []tea.Cmd
}

// NewPopupHarness initializes p and captures its init command.
func NewPopupHarness(p popup.Popup) *PopupHarness {
	h := &PopupHarness{popup: p}
	if cmd := p.Init(); cmd != nil {
		h.cmds = append(h.cmds, cmd)
	}
	return h
}

// Popup returns the driven popup.
func (h *PopupHarness) Popup() popup.Popup {
	return h.popup
}

// View returns the plain text of the popup view.
func (h *PopupHarness) View() string {
	return StripANSI(h.popup.View())
}

// SendMsg passes msg to the popup and returns the resulting command.
func (h *PopupHarness) SendMsg(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	h.popup, cmd = h.popup.Update(msg)
	if cmd != nil {
		h.cmds = append(h.cmds, cmd)
	}
	return cmd
}

// SendKey sends a rune key such as "y" or " ".
func (h *PopupHarness) SendKey(key string) tea.Cmd {
	if key == " " {
		return h.SendMsg(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	}
	return h.SendMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
}

// SendEnter sends the enter key.
func (h *PopupHarness) SendEnter() tea.Cmd {
	return h.SendMsg(tea.KeyMsg{Type: tea.KeyEnter})
}

// SendEscape sends the escape key.
func (h *PopupHarness) SendEscape() tea.Cmd {
	return h.SendMsg(tea.KeyMsg{Type: tea.KeyEscape})
}

// LastCommand returns the most recent command, or nil.
func (h *PopupHarness) LastCommand() tea.Cmd {
	if len(h.cmds) == 0 {
		return nil
	}
	return h.cmds[len(h.cmds)-1]
}

// ExecuteCmd runs cmd and returns its message, or nil for a nil cmd.
func ExecuteCmd(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}
