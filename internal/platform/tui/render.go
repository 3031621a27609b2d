package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-warp/internal/core"
)

// cellColorBits is the per-channel depth cells are rendered at. Shading
// is continuous, so colors are quantized before styling: runs merge and the
// style cache holds at most 4096 entries.
const cellColorBits = 4

// ScreenRenderer converts Screen buffers to styled strings.
// Styles are cached per quantized color.
type ScreenRenderer struct {
	renderer *lipgloss.Renderer
	styles   map[core.Color]lipgloss.Style
}

// NewScreenRenderer creates a renderer bound to a lipgloss renderer.
// A nil renderer uses the process default (the local terminal); SSH sessions
// pass a renderer for their own output.
func NewScreenRenderer(r *lipgloss.Renderer) *ScreenRenderer {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return &ScreenRenderer{
		renderer: r,
		styles:   make(map[core.Color]lipgloss.Style),
	}
}

// Renderer returns the underlying lipgloss renderer.
func (sr *ScreenRenderer) Renderer() *lipgloss.Renderer {
	return sr.renderer
}

func (sr *ScreenRenderer) style(c core.Color) lipgloss.Style {
	if st, ok := sr.styles[c]; ok {
		return st
	}
	st := sr.renderer.NewStyle()
	if !c.IsDefault() {
		st = st.Foreground(lipgloss.Color(c.Hex()))
	}
	sr.styles[c] = st
	return st
}

// Render converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func (sr *ScreenRenderer) Render(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same color for efficiency
		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color.Quantize(cellColorBits)

			run.Reset()
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color.Quantize(cellColorBits) != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			if startColor.IsDefault() {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(sr.style(startColor).Render(run.String()))
		}
	}
	return sb.String()
}
