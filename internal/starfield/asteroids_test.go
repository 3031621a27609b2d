package starfield

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-warp/internal/config"
)

func TestAsteroidFieldInitialPlacement(t *testing.T) {
	cfg := config.DefaultWarpConfig().Asteroids
	f := NewAsteroidField(cfg, NewSource(11))

	require.Equal(t, cfg.Count, f.Len())
	for i, a := range f.Asteroids() {
		assert.Equal(t, cfg.FirstDepth-float64(i)*cfg.Stagger, a.Position[2])
		assert.GreaterOrEqual(t, a.Scale, cfg.ScaleMin)
		assert.Less(t, a.Scale, cfg.ScaleMax)
	}
	assert.Equal(t, cfg.FirstDepth-float64(cfg.Count-1)*cfg.Stagger, f.RearBound())
}

func TestAsteroidFieldRearBoundRecedes(t *testing.T) {
	cfg := config.DefaultWarpConfig().Asteroids
	f := NewAsteroidField(cfg, NewSource(11))

	const speed = 40.0
	step := speed * cfg.SpeedScale
	recycled := 0
	for range 500 {
		limit := f.RearBound() + step
		n := f.Tick(speed)
		recycled += n

		require.Equal(t, cfg.Count, f.Len())
		for _, a := range f.Asteroids() {
			assert.LessOrEqual(t, a.Position[2], cfg.ForwardBound)
			assert.GreaterOrEqual(t, a.Position[2], f.RearBound())
		}
		if n > 0 {
			assert.Less(t, f.RearBound(), limit-cfg.Stagger+1e-9)
		}
	}
	assert.Positive(t, recycled)
}

func TestAsteroidFieldSpinsAtRest(t *testing.T) {
	cfg := config.DefaultWarpConfig().Asteroids
	f := NewAsteroidField(cfg, NewSource(2))

	before := f.Asteroids()[0]
	for range 10 {
		assert.Equal(t, 0, f.Tick(0))
	}
	after := f.Asteroids()[0]

	assert.Equal(t, before.Position, after.Position)
	assert.InDelta(t, before.Rotation[0]+10*cfg.SpinX, after.Rotation[0], 1e-12)
	assert.InDelta(t, before.Rotation[1]+10*cfg.SpinY, after.Rotation[1], 1e-12)
	assert.Equal(t, before.Rotation[2], after.Rotation[2])
}

func TestAsteroidFieldRecycleLandsStrictlyBehind(t *testing.T) {
	cfg := config.DefaultWarpConfig().Asteroids
	cfg.Stagger, cfg.Jitter = 1, 0
	require.NoError(t, config.Validate(withAsteroids(cfg)))

	f := NewAsteroidField(cfg, NewSource(5))
	const speed = 40.0
	for range 300 {
		prev := f.RearBound() + speed*cfg.SpeedScale
		if f.Tick(speed) > 0 {
			assert.Less(t, f.RearBound(), prev)
		}
	}
}

func withAsteroids(a config.AsteroidSpec) config.WarpConfig {
	cfg := config.DefaultWarpConfig()
	cfg.Asteroids = a
	return cfg
}
