package starfield

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/vovakirdan/tui-warp/internal/config"
)

// Pool is a fixed-size set of entities advanced once per tick.
type Pool interface {
	// Tick moves every entity by the given global speed and returns
	// how many entities were recycled.
	Tick(speed float64) int
	// Len returns the entity count, which never changes.
	Len() int
}

// PoolConfig is the immutable configuration of a particle pool.
// Depth is the Z axis; the viewer looks toward negative Z, so particles
// approach by increasing Z.
type PoolConfig struct {
	Capacity     int
	ExtentX      float64 // Lateral half-extent on X
	ExtentY      float64 // Lateral half-extent on Y
	SpawnFar     float64 // Initial depth range
	SpawnNear    float64
	ForwardBound float64 // Recycle when depth exceeds this
	RearMin      float64 // Recycled depth range
	RearMax      float64
	SpeedScale   float64
	Spin         float64 // Radians per tick; zero disables angles
	Colored      bool
}

// poolConfig converts a YAML pool spec.
func poolConfig(spec config.PoolSpec, colored bool) PoolConfig {
	return PoolConfig{
		Capacity:     max(spec.Capacity, 0),
		ExtentX:      spec.ExtentX,
		ExtentY:      spec.ExtentY,
		SpawnFar:     spec.SpawnFar,
		SpawnNear:    spec.SpawnNear,
		ForwardBound: spec.ForwardBound,
		RearMin:      spec.RearMin,
		RearMax:      spec.RearMax,
		SpeedScale:   spec.SpeedScale,
		Spin:         spec.Spin,
		Colored:      colored,
	}
}

// Stagger places particle i of n at an initial depth.
type Stagger func(i, n int) float64

// EvenStagger spreads n particles evenly over (far, near), one per slot center.
func EvenStagger(far, near float64) Stagger {
	return func(i, n int) float64 {
		return far + (near-far)*(float64(i)+0.5)/float64(n)
	}
}

// ParticlePool holds positions (and optional colors and spin angles) for a
// fixed number of particles. Buffers are allocated once and recycled in place.
type ParticlePool struct {
	cfg       PoolConfig
	rng       Source
	positions []mgl64.Vec3
	colors    []colorful.Color
	angles    []float64
}

// NewParticlePool allocates the pool and samples every initial position.
// A nil stagger samples initial depth uniformly over the spawn range.
func NewParticlePool(cfg PoolConfig, rng Source, stagger Stagger) *ParticlePool {
	cfg.Capacity = max(cfg.Capacity, 0)
	p := &ParticlePool{
		cfg:       cfg,
		rng:       rng,
		positions: make([]mgl64.Vec3, cfg.Capacity),
	}
	if cfg.Colored {
		p.colors = make([]colorful.Color, cfg.Capacity)
		for i := range p.colors {
			p.colors[i] = colorful.Color{R: 1, G: 1, B: 1}
		}
	}
	if cfg.Spin != 0 {
		p.angles = make([]float64, cfg.Capacity)
	}

	for i := range p.positions {
		var depth float64
		if stagger != nil {
			depth = stagger(i, cfg.Capacity)
		} else {
			depth = uniform(rng, cfg.SpawnFar, cfg.SpawnNear)
		}
		p.positions[i] = mgl64.Vec3{
			symmetric(rng, cfg.ExtentX),
			symmetric(rng, cfg.ExtentY),
			depth,
		}
		if p.angles != nil {
			p.angles[i] = rng.Float64() * 2 * math.Pi
		}
	}
	return p
}

// Tint assigns each particle a random palette color scaled by a random
// brightness in [minBright, maxBright). It is a no-op for uncolored pools
// or an empty palette.
func (p *ParticlePool) Tint(palette []colorful.Color, minBright, maxBright float64) {
	if p.colors == nil || len(palette) == 0 {
		return
	}
	for i := range p.colors {
		p.colors[i] = tint(p.rng, palette, minBright, maxBright)
	}
}

// Paint sets every particle to the same color.
func (p *ParticlePool) Paint(c colorful.Color) {
	for i := range p.colors {
		p.colors[i] = c
	}
}

// Tick advances every particle's depth by speed*SpeedScale. A particle whose
// depth strictly exceeds the forward bound is moved to a fresh depth in the
// rear range with resampled lateral coordinates.
func (p *ParticlePool) Tick(speed float64) int {
	step := speed * p.cfg.SpeedScale
	recycled := 0
	for i := range p.positions {
		pos := &p.positions[i]
		pos[2] += step
		if pos[2] > p.cfg.ForwardBound {
			pos[0] = symmetric(p.rng, p.cfg.ExtentX)
			pos[1] = symmetric(p.rng, p.cfg.ExtentY)
			pos[2] = uniform(p.rng, p.cfg.RearMin, p.cfg.RearMax)
			recycled++
		}
	}
	for i := range p.angles {
		p.angles[i] += p.cfg.Spin
	}
	return recycled
}

// Len returns the particle count.
func (p *ParticlePool) Len() int {
	return len(p.positions)
}

// Positions returns the position buffer. It is owned by the pool and
// mutated in place on every tick.
func (p *ParticlePool) Positions() []mgl64.Vec3 {
	return p.positions
}

// Colors returns the color buffer, or nil for uncolored pools.
func (p *ParticlePool) Colors() []colorful.Color {
	return p.colors
}

// Angles returns the spin angles, or nil when the pool does not spin.
func (p *ParticlePool) Angles() []float64 {
	return p.angles
}

// Config returns the pool configuration.
func (p *ParticlePool) Config() PoolConfig {
	return p.cfg
}

func tint(rng Source, palette []colorful.Color, minBright, maxBright float64) colorful.Color {
	base := palette[int(rng.Float64()*float64(len(palette)))%len(palette)]
	b := uniform(rng, minBright, maxBright)
	return colorful.Color{R: base.R * b, G: base.G * b, B: base.B * b}
}
