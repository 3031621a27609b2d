package gfx

import (
	"image/color"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/tui-warp/internal/core"
	"github.com/vovakirdan/tui-warp/internal/starfield"
)

func TestWarpTransition(t *testing.T) {
	tests := []struct {
		name          string
		wasHeld, held bool
		want          core.Action
	}{
		{"press engages", false, true, core.ActionEngage},
		{"release drops", true, false, core.ActionRelease},
		{"hold is quiet", true, true, core.ActionNone},
		{"idle is quiet", false, false, core.ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, warpTransition(tt.wasHeld, tt.held))
		})
	}
}

func TestNRGBA(t *testing.T) {
	assert.Equal(t, color.NRGBA{R: 255, G: 0, B: 0, A: 255}, nrgba(colorful.Color{R: 1}, 1))
	assert.Equal(t, color.NRGBA{R: 0, G: 255, B: 0, A: 0}, nrgba(colorful.Color{G: 2}, -1))
	assert.Equal(t, uint8(128), nrgba(colorful.Color{}, 0.5).A)
}

func TestBarFill(t *testing.T) {
	assert.InDelta(t, 0.0, barFill(-0.5, 240), 1e-9)
	assert.InDelta(t, 120.0, barFill(0.5, 240), 1e-9)
	assert.InDelta(t, 240.0, barFill(1.5, 240), 1e-9)
}

func TestDotRadius(t *testing.T) {
	assert.Equal(t, 0.6, dotRadius(0.1, 0.6))
	assert.Equal(t, maxDotRadius, dotRadius(50, 0.6))
	assert.Equal(t, 1.5, dotRadius(1.5, 0.6))
}

func TestWindowSinkAndBackend(t *testing.T) {
	w := &Window{}

	w.ReportSpeed(starfield.Readout{Value: 42, Fill: 0.3, Hot: true})
	assert.Equal(t, 42.0, w.readout.Value)
	assert.True(t, w.readout.Hot)

	w.Present(&starfield.Frame{NowMs: 7, Speed: 3})
	assert.True(t, w.hasFrame)
	assert.Equal(t, uint64(7), w.frame.NowMs)
}

func TestLayoutFollowsWindow(t *testing.T) {
	w := &Window{}
	gw, gh := w.Layout(1024, 0)
	assert.Equal(t, 1024, gw)
	assert.Equal(t, 1, gh)
}
