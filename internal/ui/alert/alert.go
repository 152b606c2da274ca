// Package alert is a modal popup reporting errors with a single OK
// button.
package alert

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/reel/internal/ui/popup"
	"github.com/llehouerou/reel/internal/ui/widget"
)

var (
	_ popup.Popup    = (*Model)(nil)
	_ widget.Alerter = (*Model)(nil)
)

// DismissedMsg is sent when the user acknowledges an alert.
type DismissedMsg struct {
	Title   string
	Message string
}

type entry struct {
	title   string
	message string
}

// Model shows alerts one at a time, oldest first.
type Model struct {
	width int
	queue []entry
}

// New creates an empty alert model.
func New() *Model {
	return &Model{}
}

// ShowAlert queues an alert. It shows once earlier ones are dismissed.
func (m *Model) ShowAlert(title, message string) {
	m.queue = append(m.queue, entry{title: title, message: message})
}

// SetSize records the screen size. Alerts are at most 60 columns wide and
// never wider than the screen.
func (m *Model) SetSize(width, _ int) {
	m.width = width
}

// Active reports whether an alert is showing.
func (m *Model) Active() bool {
	return len(m.queue) > 0
}

// Current returns the alert on screen.
func (m *Model) Current() (title, message string, ok bool) {
	if len(m.queue) == 0 {
		return "", "", false
	}
	return m.queue[0].title, m.queue[0].message, true
}

// Pending returns the number of queued alerts, including the one showing.
func (m *Model) Pending() int {
	return len(m.queue)
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !m.Active() {
		return m, nil
	}

	switch keyMsg.String() {
	case "enter", "esc", " ", "o":
		e := m.queue[0]
		m.queue = m.queue[1:]
		return m, func() tea.Msg {
			return DismissedMsg{Title: e.title, Message: e.message}
		}
	}
	return m, nil
}

func (m *Model) View() string {
	if !m.Active() || m.width == 0 {
		return ""
	}

	footer := "[ OK ]  enter"
	if more := len(m.queue) - 1; more > 0 {
		footer = fmt.Sprintf("[ OK ]  enter · %d more", more)
	}
	e := m.queue[0]
	return popup.Frame(e.title, e.message, footer, min(m.width, 60))
}
