package starfield

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/vovakirdan/tui-warp/internal/config"
)

// Backdrop is the far layer behind every other pool: a galaxy band turning
// by a fixed angle each tick, and background clouds spinning in place.
type Backdrop struct {
	galaxy     float64
	galaxySpin float64
	clouds     *ParticlePool
	color      colorful.Color
}

// NewBackdrop builds the backdrop. The clouds are painted with tint.
func NewBackdrop(spec config.BackdropSpec, tint colorful.Color, rng Source) *Backdrop {
	clouds := NewParticlePool(poolConfig(spec.Clouds, true), rng, nil)
	clouds.Paint(tint)
	return &Backdrop{
		galaxySpin: spec.GalaxySpin,
		clouds:     clouds,
		color:      tint,
	}
}

// Tick turns the galaxy and spins the clouds. The clouds move in depth only
// if their pool has a speed scale; the default backdrop has none.
func (b *Backdrop) Tick(speed float64) int {
	b.galaxy = math.Mod(b.galaxy+b.galaxySpin, 2*math.Pi)
	if b.galaxy < 0 {
		b.galaxy += 2 * math.Pi
	}
	return b.clouds.Tick(speed)
}

func (b *Backdrop) Len() int {
	return b.clouds.Len()
}

// Galaxy returns the galaxy band angle in radians, in [0, 2π).
func (b *Backdrop) Galaxy() float64 {
	return b.galaxy
}

// Clouds returns the background cloud pool.
func (b *Backdrop) Clouds() *ParticlePool {
	return b.clouds
}

// Color returns the background cloud tint.
func (b *Backdrop) Color() colorful.Color {
	return b.color
}
