// Package surface is the display slot the media backend renders into.
package surface

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/reel/internal/media"
	"github.com/llehouerou/reel/internal/ui"
	"github.com/llehouerou/reel/internal/ui/render"
	"github.com/llehouerou/reel/internal/ui/styles"
)

// Surface holds the player bound for visual output.
type Surface struct {
	player media.Backend
}

// New returns an unbound surface.
func New() *Surface {
	return &Surface{}
}

// Player returns the bound player, or nil.
func (s *Surface) Player() media.Backend { return s.player }

// SetPlayer binds p.
func (s *Surface) SetPlayer(p media.Backend) { s.player = p }

// View draws the surface as a framed box of the given outer size. It
// shows the title and playback state of the bound player.
func (s *Surface) View(width, height int) string {
	t := styles.T()
	innerW := max(width-2, 0)
	innerH := max(height-ui.BorderHeight, 0)

	var lines []string
	if height >= ui.MinSurfaceHeight {
		title, state := "no player", ""
		if s.player != nil {
			title = "untitled"
			if d, ok := s.player.(media.Describer); ok && d.Title() != "" {
				title = d.Title()
			}
			state = State(s.player.Rate())
		}
		lines = append(lines, t.Gradient(render.Truncate(title, innerW)))
		if state != "" && innerH > 1 {
			lines = append(lines, "", t.S().Muted.Render(state))
		}
	}

	// Vertically center the content.
	top := max((innerH-len(lines))/2, 0)
	body := strings.Repeat("\n", top) + strings.Join(lines, "\n")

	return t.S().Frame.
		Width(innerW).
		Height(innerH).
		Align(lipgloss.Center).
		Render(body)
}

// State describes a playback rate.
func State(rate float64) string {
	switch {
	case rate == 0:
		return "paused"
	case rate == 1:
		return "playing"
	case rate > 0:
		return fmt.Sprintf("fast forward %g×", rate)
	default:
		return fmt.Sprintf("rewind %g×", -rate)
	}
}
