// internal/app/update.go
package app

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/reel/internal/mainloop"
	"github.com/llehouerou/reel/internal/ui/alert"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case AppearMsg:
		m.Controller.OnAppear()
		return m, nil

	case mainloop.TaskMsg:
		msg.Run()
		return m, m.Loop.Listen()

	case mainloop.ClosedMsg:
		return m, nil

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Alerts.SetSize(msg.Width, msg.Height)
		m.Help.Width = msg.Width
		return m, nil

	case alert.DismissedMsg:
		m.log.WithField("title", msg.Title).Debug("alert dismissed")
		m.alerter.dismissed(m.Alerts.Pending())
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// ctrl+c quits even behind an alert.
	if msg.String() == "ctrl+c" {
		return m.quit()
	}
	if m.Alerts.Active() {
		_, cmd := m.Alerts.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.Keys.Quit):
		return m.quit()
	case key.Matches(msg, m.Keys.Help):
		m.Help.ShowAll = !m.Help.ShowAll
	case key.Matches(msg, m.Keys.PlayPause):
		m.Controller.TogglePlayPause()
	case key.Matches(msg, m.Keys.Rewind):
		m.Controller.Rewind()
	case key.Matches(msg, m.Keys.FastForward):
		m.Controller.FastForward()
	case key.Matches(msg, m.Keys.SeekBack):
		m.Controller.SeekBy(-m.SeekStep)
	case key.Matches(msg, m.Keys.SeekForward):
		m.Controller.SeekBy(m.SeekStep)
	case key.Matches(msg, m.Keys.Jump):
		digit := msg.String()[0] - '0'
		m.Controller.SeekFraction(float64(digit) / 10)
	}
	return m, nil
}

// quit tears the screen down before leaving the program.
func (m Model) quit() (tea.Model, tea.Cmd) {
	m.Controller.OnDisappear()
	m.Loop.Close()
	m.Quitting = true
	return m, tea.Quit
}
