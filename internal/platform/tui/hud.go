package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-warp/internal/core"
	"github.com/vovakirdan/tui-warp/internal/starfield"
)

// hudHeight is the number of terminal rows below the scene: readout and help.
const hudHeight = 2

var (
	barColorCool = core.ColorCyan.Hex()
	barColorHot  = core.ColorHot.Hex()
	labelColor   = core.ColorGray.Hex()
	dimColor     = core.ColorDim.Hex()
)

// HUD is the speed readout under the scene. It implements starfield.SpeedSink.
type HUD struct {
	bar     progress.Model
	readout starfield.Readout
	title   string
	width   int

	label lipgloss.Style
	value lipgloss.Style
	dim   lipgloss.Style
}

// NewHUD creates a HUD for a scene title.
func NewHUD(r *lipgloss.Renderer, title string, width int) *HUD {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	bar := progress.New(progress.WithSolidFill(barColorCool), progress.WithoutPercentage())
	h := &HUD{
		bar:   bar,
		title: title,
		label: r.NewStyle().Foreground(lipgloss.Color(labelColor)),
		value: r.NewStyle().Bold(true).Foreground(lipgloss.Color(barColorCool)),
		dim:   r.NewStyle().Foreground(lipgloss.Color(dimColor)),
	}
	h.SetWidth(width)
	return h
}

// ReportSpeed implements starfield.SpeedSink. The bar turns hot above the
// configured threshold.
func (h *HUD) ReportSpeed(r starfield.Readout) {
	h.readout = r
	color := barColorCool
	if r.Hot {
		color = barColorHot
	}
	h.bar.FullColor = color
	h.value = h.value.Foreground(lipgloss.Color(color))
}

// Readout returns the last reported readout.
func (h *HUD) Readout() starfield.Readout {
	return h.readout
}

// SetWidth fits the bar to the terminal width.
func (h *HUD) SetWidth(width int) {
	h.width = width
	h.bar.Width = max(width-48, 10)
}

// View renders the readout line.
func (h *HUD) View(state core.FlightState) string {
	status := ""
	if state.Paused {
		status = "  " + h.dim.Render("paused")
	}
	return fmt.Sprintf("%s %s %s %s %s %s%s",
		h.label.Render(h.title),
		h.label.Render("SPEED"),
		h.value.Render(fmt.Sprintf("%6s", h.readout.Text())),
		h.bar.ViewAs(h.readout.Fill),
		h.dim.Render(fmt.Sprintf("%3.0f%%", h.readout.Percent())),
		h.label.Render(fmt.Sprintf("DIST %.0f", state.Distance)),
		status,
	)
}
