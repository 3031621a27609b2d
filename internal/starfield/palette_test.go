package starfield

import (
	"testing"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-warp/internal/config"
)

var (
	blue    = colorful.Color{R: 0, G: 0, B: 1}
	purple  = colorful.Color{R: 128.0 / 255, G: 0, B: 128.0 / 255}
	magenta = colorful.Color{R: 1, G: 0, B: 1}
)

func TestColorAtLandsOnPaletteEntries(t *testing.T) {
	c, err := NewColorCycler([]colorful.Color{blue, purple, magenta}, 3*time.Second)
	require.NoError(t, err)

	assert.Equal(t, blue, c.ColorAt(0))
	assert.Equal(t, purple, c.ColorAt(1000))
	assert.Equal(t, magenta, c.ColorAt(2000))
	assert.Equal(t, blue, c.ColorAt(3000))
}

func TestColorAtExactForEveryIntegerProgress(t *testing.T) {
	palette, err := config.ParsePalette(config.DefaultWarpConfig().Nebula.Palette)
	require.NoError(t, err)
	c, err := NewColorCycler(palette, 20*time.Second)
	require.NoError(t, err)

	n := uint64(len(palette))
	step := uint64(20000) / n
	for k := range uint64(3 * n) {
		assert.Equal(t, palette[k%n], c.ColorAt(k*step), "k=%d", k)
	}
}

func TestColorAtPeriodic(t *testing.T) {
	c, err := NewColorCycler([]colorful.Color{blue, purple, magenta}, 3*time.Second)
	require.NoError(t, err)

	for _, ms := range []uint64{0, 1, 499, 1500, 2999, 1_700_000_000_123} {
		assert.Equal(t, c.ColorAt(ms), c.ColorAt(ms+3000), "t=%d", ms)
	}
}

func TestColorAtInterpolatesAndWraps(t *testing.T) {
	c, err := NewColorCycler([]colorful.Color{blue, magenta}, 2*time.Second)
	require.NoError(t, err)

	// Halfway from blue to magenta.
	mid := c.ColorAt(500)
	assert.InDelta(t, 0.5, mid.R, 1e-12)
	assert.InDelta(t, 1.0, mid.B, 1e-12)

	// Halfway from magenta back to blue.
	back := c.ColorAt(1500)
	assert.InDelta(t, 0.5, back.R, 1e-12)
}

func TestNewColorCyclerErrors(t *testing.T) {
	_, err := NewColorCycler([]colorful.Color{blue}, time.Second)
	assert.ErrorIs(t, err, config.ErrPaletteTooSmall)

	_, err = NewColorCycler(nil, time.Second)
	assert.ErrorIs(t, err, config.ErrPaletteTooSmall)

	_, err = NewColorCycler([]colorful.Color{blue, purple}, 0)
	assert.ErrorIs(t, err, config.ErrNonPositiveDuration)

	_, err = NewColorCycler([]colorful.Color{blue, purple}, -time.Second)
	assert.ErrorIs(t, err, config.ErrNonPositiveDuration)
}

func TestColorCyclerCopiesPalette(t *testing.T) {
	palette := []colorful.Color{blue, purple}
	c, err := NewColorCycler(palette, time.Second)
	require.NoError(t, err)

	palette[0] = magenta
	assert.Equal(t, blue, c.ColorAt(0))
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, time.Second, c.Duration())
}
