// Package starfield simulates continuous forward flight through a starfield.
//
// Every visual primitive lives in a fixed-size pool that is advanced and
// recycled in place each tick, so per-frame cost is bounded by the pool sizes
// no matter how long a flight runs. The package has no rendering or UI
// dependencies: backends consume the buffers after each tick.
package starfield

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/vovakirdan/tui-warp/internal/config"
)

// Stats accumulates over a flight.
type Stats struct {
	Ticks     uint64
	Distance  float64 // Readout units times seconds
	PeakSpeed float64
	Warps     int
	Recycled  uint64
}

// World owns every subsystem of a flight. A World has a single writer; each
// terminal or SSH session runs its own.
type World struct {
	Speed     *SpeedController
	Nebula    *ColorCycler
	Stars     *ParticlePool
	Dust      *ParticlePool
	Clouds    *ParticlePool
	Streaks   *WarpStreaks
	Asteroids *AsteroidField
	Backdrop  *Backdrop
	Camera    Camera

	cfg   config.WarpConfig
	pools []Pool
	stats Stats
}

// NewWorld builds a world from a configuration. The seed fixes every random
// placement; refDt is the reference tick interval in seconds that the
// configured easing is defined against.
func NewWorld(cfg config.WarpConfig, seed int64, refDt float64) (*World, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	speed, err := NewSpeedController(cfg.Speed.Cruise, cfg.Speed.Warp, cfg.Speed.Easing, refDt)
	if err != nil {
		return nil, err
	}

	nebulaColors, err := config.ParsePalette(cfg.Nebula.Palette)
	if err != nil {
		return nil, fmt.Errorf("starfield: %w", err)
	}
	nebula, err := NewColorCycler(nebulaColors, cfg.Nebula.Cycle)
	if err != nil {
		return nil, err
	}

	starColors, err := config.ParseStarPalette(cfg.StarPalette)
	if err != nil {
		return nil, fmt.Errorf("starfield: %w", err)
	}

	rng := NewSource(seed)

	var stagger Stagger
	if cfg.Stars.Stagger {
		stagger = EvenStagger(cfg.Stars.SpawnFar, cfg.Stars.SpawnNear)
	}
	stars := NewParticlePool(poolConfig(cfg.Stars, true), rng, stagger)
	stars.Tint(starColors, cfg.StarPalette.BrightnessMin, cfg.StarPalette.BrightnessMax)

	dust := NewParticlePool(poolConfig(cfg.Dust, false), rng, nil)

	clouds := NewParticlePool(poolConfig(cfg.Clouds, true), rng, nil)
	clouds.Paint(nebula.ColorAt(0))

	streaks := NewWarpStreaks(poolConfig(cfg.Streaks.PoolSpec, true), cfg.Streaks.TailLengthFactor, rng)
	streaks.Tint(starColors)

	asteroids := NewAsteroidField(cfg.Asteroids, rng)

	backdropTint := colorful.Color{R: 1, G: 1, B: 1}
	if cfg.Backdrop.Color != "" {
		if backdropTint, err = colorful.Hex(cfg.Backdrop.Color); err != nil {
			return nil, fmt.Errorf("starfield: backdrop color: %w", err)
		}
	}
	backdrop := NewBackdrop(cfg.Backdrop, backdropTint, rng)

	w := &World{
		Speed:     speed,
		Nebula:    nebula,
		Stars:     stars,
		Dust:      dust,
		Clouds:    clouds,
		Streaks:   streaks,
		Asteroids: asteroids,
		Backdrop:  backdrop,
		Camera:    NewCamera(cfg.Camera),
		cfg:       cfg,
	}
	w.pools = []Pool{backdrop, clouds, stars, dust, streaks, asteroids}
	return w, nil
}

// Engage targets warp speed. Engaging while already engaged is not counted.
func (w *World) Engage() {
	if !w.Speed.Engaged() {
		w.stats.Warps++
	}
	w.Speed.Engage()
}

// Release targets cruise speed.
func (w *World) Release() {
	w.Speed.Release()
}

// ToggleWarp flips between warp and cruise targets.
func (w *World) ToggleWarp() {
	if w.Speed.Engaged() {
		w.Release()
		return
	}
	w.Engage()
}

// Pools returns every pool in tick order.
func (w *World) Pools() []Pool {
	return w.pools
}

// Config returns the configuration the world was built from.
func (w *World) Config() config.WarpConfig {
	return w.cfg
}

// Stats returns the accumulated flight statistics.
func (w *World) Stats() Stats {
	return w.stats
}

// Population returns the total entity count across all pools.
func (w *World) Population() int {
	n := 0
	for _, p := range w.pools {
		n += p.Len()
	}
	return n
}

func (w *World) record(speed, dt float64, recycled int) {
	w.stats.Ticks++
	w.stats.Recycled += uint64(recycled)
	if dt > 0 {
		w.stats.Distance += speed * w.cfg.Speed.ReadoutScale * dt
	}
	w.stats.PeakSpeed = max(w.stats.PeakSpeed, speed)
}
