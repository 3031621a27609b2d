package starfield

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-warp/internal/config"
)

// Asteroid is one entity of the asteroid field.
type Asteroid struct {
	Position mgl64.Vec3
	Rotation mgl64.Vec3 // Euler angles in radians
	Scale    float64
}

// AsteroidField is a small pool of spinning asteroids.
//
// Unlike ParticlePool, recycled asteroids are not drawn from a fixed rear
// range. The field tracks a rear bound that travels with the asteroids; each
// recycle lands strictly behind it and becomes the new rear bound, so spacing
// never collapses and the sequence does not visibly repeat.
type AsteroidField struct {
	cfg       config.AsteroidSpec
	rng       Source
	asteroids []Asteroid
	rearBound float64
}

// NewAsteroidField places count asteroids at FirstDepth - i*Stagger.
func NewAsteroidField(cfg config.AsteroidSpec, rng Source) *AsteroidField {
	cfg.Count = max(cfg.Count, 0)
	f := &AsteroidField{
		cfg:       cfg,
		rng:       rng,
		asteroids: make([]Asteroid, cfg.Count),
		rearBound: cfg.FirstDepth,
	}
	for i := range f.asteroids {
		depth := cfg.FirstDepth - float64(i)*cfg.Stagger
		f.place(&f.asteroids[i], depth)
		f.rearBound = math.Min(f.rearBound, depth)
	}
	return f
}

// place puts a at depth with fresh lateral position, scale and rotation.
func (f *AsteroidField) place(a *Asteroid, depth float64) {
	a.Position = mgl64.Vec3{
		symmetric(f.rng, f.cfg.ExtentX),
		symmetric(f.rng, f.cfg.ExtentY),
		depth,
	}
	a.Scale = uniform(f.rng, f.cfg.ScaleMin, f.cfg.ScaleMax)
	a.Rotation = mgl64.Vec3{
		f.rng.Float64() * math.Pi,
		f.rng.Float64() * math.Pi,
		f.rng.Float64() * math.Pi,
	}
}

// Tick advances depth by speed*SpeedScale and rotation by the fixed per-tick
// spin rates. Spin advances every tick, even at zero speed; a recycle
// re-randomizes the orientation it spins from.
func (f *AsteroidField) Tick(speed float64) int {
	step := speed * f.cfg.SpeedScale
	f.rearBound += step
	recycled := 0
	for i := range f.asteroids {
		a := &f.asteroids[i]
		a.Position[2] += step
		a.Rotation[0] += f.cfg.SpinX
		a.Rotation[1] += f.cfg.SpinY
		if a.Position[2] > f.cfg.ForwardBound {
			depth := f.rearBound - f.cfg.Stagger - f.rng.Float64()*f.cfg.Jitter
			f.place(a, depth)
			f.rearBound = depth
			recycled++
		}
	}
	return recycled
}

// Len returns the asteroid count.
func (f *AsteroidField) Len() int {
	return len(f.asteroids)
}

// Asteroids returns the asteroid buffer.
func (f *AsteroidField) Asteroids() []Asteroid {
	return f.asteroids
}

// RearBound returns the depth of the most recently placed asteroid.
func (f *AsteroidField) RearBound() float64 {
	return f.rearBound
}
