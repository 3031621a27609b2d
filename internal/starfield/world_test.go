package starfield

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-warp/internal/config"
)

// smallConfig shrinks the default pools so tests stay fast.
func smallConfig() config.WarpConfig {
	cfg := config.DefaultWarpConfig()
	cfg.Stars.Capacity = 400
	cfg.Dust.Capacity = 100
	cfg.Streaks.Capacity = 200
	return cfg
}

func newTestWorld(t *testing.T, seed int64) *World {
	t.Helper()
	w, err := NewWorld(smallConfig(), seed, testRefDt)
	require.NoError(t, err)
	return w
}

func TestNewWorldBuildsEveryPool(t *testing.T) {
	w := newTestWorld(t, 1)
	cfg := smallConfig()

	assert.Equal(t, cfg.Stars.Capacity, w.Stars.Len())
	assert.Equal(t, cfg.Dust.Capacity, w.Dust.Len())
	assert.Equal(t, cfg.Clouds.Capacity, w.Clouds.Len())
	assert.Equal(t, cfg.Streaks.Capacity, w.Streaks.Len())
	assert.Equal(t, cfg.Asteroids.Count, w.Asteroids.Len())
	assert.Equal(t, cfg.Backdrop.Clouds.Capacity, w.Backdrop.Len())
	assert.Len(t, w.Pools(), 6)
	assert.Equal(t,
		cfg.Stars.Capacity+cfg.Dust.Capacity+cfg.Clouds.Capacity+cfg.Streaks.Capacity+
			cfg.Asteroids.Count+cfg.Backdrop.Clouds.Capacity,
		w.Population())
}

func TestNewWorldStarsAreTinted(t *testing.T) {
	w := newTestWorld(t, 1)
	bright := 0
	for _, c := range w.Stars.Colors() {
		if c.R > 1 || c.G > 1 || c.B > 1 {
			bright++
		}
	}
	assert.Positive(t, bright, "brightness multiplier should push some stars past 1")
}

func TestNewWorldStaggersStars(t *testing.T) {
	w := newTestWorld(t, 1)
	pos := w.Stars.Positions()
	for i := 1; i < len(pos); i++ {
		assert.Greater(t, pos[i][2], pos[i-1][2])
	}
}

func TestNewWorldRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.WarpConfig)
		want   error
	}{
		{"short palette", func(c *config.WarpConfig) { c.Nebula.Palette = []string{"#ffffff"} }, config.ErrPaletteTooSmall},
		{"zero cycle", func(c *config.WarpConfig) { c.Nebula.Cycle = 0 }, config.ErrNonPositiveDuration},
		{"bad easing", func(c *config.WarpConfig) { c.Speed.Easing = 1.5 }, config.ErrInvalidEasing},
		{"inverted bounds", func(c *config.WarpConfig) { c.Dust.ForwardBound = -5000 }, config.ErrInvalidBounds},
		{"asteroids without spacing", func(c *config.WarpConfig) { c.Asteroids.Stagger, c.Asteroids.Jitter = 0, 0 }, config.ErrInvalidBounds},
		{"backdrop clouds ahead of bound", func(c *config.WarpConfig) { c.Backdrop.Clouds.ForwardBound = -2000 }, config.ErrInvalidBounds},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := smallConfig()
			tt.mutate(&cfg)
			_, err := NewWorld(cfg, 1, testRefDt)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestWorldDeterministicBySeed(t *testing.T) {
	a := newTestWorld(t, 99)
	b := newTestWorld(t, 99)
	c := newTestWorld(t, 100)

	sa := NewFrameScheduler(a, nil, nil)
	sb := NewFrameScheduler(b, nil, nil)
	a.Engage()
	b.Engage()
	for i := range uint64(300) {
		sa.Tick(i*16, testRefDt)
		sb.Tick(i*16, testRefDt)
	}

	assert.Equal(t, a.Stars.Positions(), b.Stars.Positions())
	assert.Equal(t, a.Streaks.Heads(), b.Streaks.Heads())
	assert.Equal(t, a.Asteroids.Asteroids(), b.Asteroids.Asteroids())
	assert.Equal(t, a.Stats(), b.Stats())

	assert.NotEqual(t, a.Dust.Positions(), c.Dust.Positions())
}

func TestWorldWarpCounting(t *testing.T) {
	w := newTestWorld(t, 1)

	w.Engage()
	w.Engage()
	assert.Equal(t, 1, w.Stats().Warps)

	w.Release()
	w.ToggleWarp()
	assert.True(t, w.Speed.Engaged())
	assert.Equal(t, 2, w.Stats().Warps)

	w.ToggleWarp()
	assert.False(t, w.Speed.Engaged())
	assert.Equal(t, 2, w.Stats().Warps)
}

func TestWorldStatsAccumulate(t *testing.T) {
	w := newTestWorld(t, 1)
	s := NewFrameScheduler(w, nil, nil)

	w.Engage()
	for i := range uint64(120) {
		s.Tick(i*16, testRefDt)
	}
	stats := w.Stats()

	assert.Equal(t, uint64(120), stats.Ticks)
	assert.Equal(t, w.Speed.Current(), stats.PeakSpeed)
	assert.Positive(t, stats.Distance)
	assert.Positive(t, stats.Recycled)
}

func TestWorldConfigRoundTrip(t *testing.T) {
	w := newTestWorld(t, 1)
	assert.Equal(t, 20*time.Second, w.Config().Nebula.Cycle)
}
