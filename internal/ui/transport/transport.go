// Package transport renders the playback controls row.
package transport

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/reel/internal/ui"
	"github.com/llehouerou/reel/internal/ui/render"
	"github.com/llehouerou/reel/internal/ui/styles"
	"github.com/llehouerou/reel/internal/ui/widget"
)

const (
	filledCell = "━"
	emptyCell  = "─"
	thumb      = "●"
)

// Height is the number of rows Render produces.
const Height = 1

// Render draws the controls on one line of the given width:
//
//	◀◀  ▶  ▶▶   0:12  ━━━━━●──────────  1:48
//
// Disabled controls are dimmed and the disabled slider has no thumb.
func Render(t widget.Transport, width int) string {
	buttons := strings.Join([]string{
		renderButton(t.Rewind),
		renderButton(t.Play),
		renderButton(t.FastForward),
	}, "  ")
	elapsed := renderLabel(t.Elapsed)
	remaining := renderLabel(t.Remaining)

	const gap = "  "
	fixed := lipgloss.Width(buttons) + lipgloss.Width(elapsed) + lipgloss.Width(remaining) + 3*len(gap)
	barWidth := width - fixed
	if barWidth < ui.MinSliderWidth {
		return render.Row(buttons, elapsed+" / "+remaining, width)
	}
	return buttons + gap + elapsed + gap + RenderSlider(t.Slider, barWidth) + gap + remaining
}

// RenderSlider draws s as a bar of exactly width cells.
func RenderSlider(s widget.Slider, width int) string {
	if width <= 0 {
		return ""
	}
	st := styles.T().S()

	filled := min(int(float64(width)*s.Fraction()), width)
	if !s.Enabled {
		return st.Disabled.Render(strings.Repeat(emptyCell, width))
	}

	// The thumb takes the last filled cell, or the first one at 0.
	thumbAt := max(filled-1, 0)
	return st.Accent.Render(strings.Repeat(filledCell, thumbAt)) +
		st.Accent.Render(thumb) +
		st.Muted.Render(strings.Repeat(emptyCell, width-thumbAt-1))
}

func renderButton(b widget.Button) string {
	st := styles.T().S()
	if !b.Enabled {
		return st.Disabled.Render(b.Icon.Glyph())
	}
	return st.Title.Render(b.Icon.Glyph())
}

func renderLabel(l widget.Label) string {
	st := styles.T().S()
	if !l.Enabled {
		return st.Disabled.Render(l.Text)
	}
	return st.Base.Render(l.Text)
}
