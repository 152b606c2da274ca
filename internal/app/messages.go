// internal/app/messages.go
package app

import tea "github.com/charmbracelet/bubbletea"

// AppearMsg asks the model to start playback. Init sends it once.
type AppearMsg struct{}

func appearCmd() tea.Msg { return AppearMsg{} }
