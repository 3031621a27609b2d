package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/vovakirdan/tui-warp/internal/core"
	"github.com/vovakirdan/tui-warp/internal/starfield"
)

func asciiRenderer() *lipgloss.Renderer {
	r := lipgloss.NewRenderer(&strings.Builder{})
	r.SetColorProfile(termenv.Ascii)
	return r
}

func TestScreenRendererPlainText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawText(0, 0, "warp")
	s.SetColored(1, 1, '*', core.RGB(255, 255, 255))

	sr := NewScreenRenderer(asciiRenderer())
	got := sr.Render(s)

	if got != s.String() {
		t.Errorf("Render() = %q, want %q", got, s.String())
	}
}

func TestScreenRendererColors(t *testing.T) {
	r := lipgloss.NewRenderer(&strings.Builder{})
	r.SetColorProfile(termenv.TrueColor)

	s := core.NewScreen(3, 1)
	s.SetColored(0, 0, '*', core.RGB(255, 0, 0))
	s.SetColored(1, 0, '*', core.RGB(255, 0, 0))

	got := NewScreenRenderer(r).Render(s)
	if !strings.Contains(got, "\x1b[") {
		t.Errorf("expected ANSI escapes in %q", got)
	}
	if !strings.HasSuffix(got, " ") {
		t.Errorf("default-colored tail should be unstyled, got %q", got)
	}
}

func TestScreenRendererStyleCacheIsBounded(t *testing.T) {
	r := lipgloss.NewRenderer(&strings.Builder{})
	r.SetColorProfile(termenv.TrueColor)
	sr := NewScreenRenderer(r)

	s := core.NewScreen(256, 64)
	for frame := range 8 {
		for y := range 64 {
			for x := range 256 {
				s.SetColored(x, y, '*', core.RGB(uint8(x), uint8(y*4+frame), uint8(x^y)))
			}
		}
		sr.Render(s)
	}
	if n := len(sr.styles); n > 1<<(3*cellColorBits) {
		t.Errorf("style cache holds %d entries, want at most %d", n, 1<<(3*cellColorBits))
	}

	// Near shades share one run and one escape sequence.
	s = core.NewScreen(2, 1)
	s.SetColored(0, 0, '*', core.RGB(200, 10, 10))
	s.SetColored(1, 0, '*', core.RGB(201, 11, 9))
	got := sr.Render(s)
	if strings.Count(got, "\x1b[0m") != 1 {
		t.Errorf("near shades should render as one run, got %q", got)
	}
}

func TestNewScreenRendererDefault(t *testing.T) {
	sr := NewScreenRenderer(nil)
	if sr.Renderer() != lipgloss.DefaultRenderer() {
		t.Error("nil renderer should fall back to the default renderer")
	}
}

func TestHUDReportSpeed(t *testing.T) {
	h := NewHUD(asciiRenderer(), "Warp Run", 80)

	h.ReportSpeed(starfield.Readout{Value: 12.5, Fill: 0.04, Hot: false})
	if h.bar.FullColor != barColorCool {
		t.Errorf("cool readout: bar color = %q, want %q", h.bar.FullColor, barColorCool)
	}

	h.ReportSpeed(starfield.Readout{Value: 150, Fill: 0.5, Hot: true})
	if h.bar.FullColor != barColorHot {
		t.Errorf("hot readout: bar color = %q, want %q", h.bar.FullColor, barColorHot)
	}
	if h.Readout().Value != 150 {
		t.Errorf("Readout().Value = %v, want 150", h.Readout().Value)
	}
}

func TestHUDView(t *testing.T) {
	h := NewHUD(asciiRenderer(), "Warp Run", 80)
	h.ReportSpeed(starfield.Readout{Value: 150, Fill: 0.5, Hot: true})

	view := h.View(core.FlightState{Distance: 1234, Paused: true})
	for _, want := range []string{"Warp Run", "SPEED", "150.0", "50%", "DIST 1234", "paused"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() = %q, missing %q", view, want)
		}
	}
}

func TestHUDSetWidth(t *testing.T) {
	h := NewHUD(asciiRenderer(), "Warp Run", 80)
	if h.bar.Width != 32 {
		t.Errorf("bar width at 80 cols = %d, want 32", h.bar.Width)
	}

	h.SetWidth(20)
	if h.bar.Width != 10 {
		t.Errorf("bar width at 20 cols = %d, want minimum 10", h.bar.Width)
	}
}
