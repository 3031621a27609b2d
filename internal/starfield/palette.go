package starfield

import (
	"fmt"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/vovakirdan/tui-warp/internal/config"
)

// ColorCycler interpolates through a palette as a pure function of wall-clock time.
type ColorCycler struct {
	palette    []colorful.Color
	durationMs uint64
}

// NewColorCycler validates the palette and cycle duration.
// Both violations are configuration errors a flight cannot run with.
func NewColorCycler(palette []colorful.Color, duration time.Duration) (*ColorCycler, error) {
	if len(palette) < 2 {
		return nil, fmt.Errorf("starfield: %w (got %d)", config.ErrPaletteTooSmall, len(palette))
	}
	ms := duration.Milliseconds()
	if ms <= 0 {
		return nil, fmt.Errorf("starfield: %w (got %v)", config.ErrNonPositiveDuration, duration)
	}
	return &ColorCycler{
		palette:    append([]colorful.Color(nil), palette...),
		durationMs: uint64(ms),
	}, nil
}

// ColorAt returns the palette color at the given wall-clock time.
//
// Progress through the palette is kept in integer milliseconds until the
// final blend factor, so a time that lands exactly on a palette entry
// returns that entry with no rounding drift.
func (c *ColorCycler) ColorAt(timeMs uint64) colorful.Color {
	n := uint64(len(c.palette))
	scaled := (timeMs % c.durationMs) * n
	i1 := scaled / c.durationMs
	i2 := (i1 + 1) % n
	t := float64(scaled%c.durationMs) / float64(c.durationMs)
	return c.palette[i1].BlendRgb(c.palette[i2], t)
}

// Duration returns the cycle period.
func (c *ColorCycler) Duration() time.Duration {
	return time.Duration(c.durationMs) * time.Millisecond
}

// Len returns the palette size.
func (c *ColorCycler) Len() int {
	return len(c.palette)
}
