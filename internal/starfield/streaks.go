package starfield

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
)

// WarpStreaks is a pool of line segments. Each streak has a head that moves
// like a particle and a tail derived from the head every tick, so streak
// length tracks the instantaneous speed.
type WarpStreaks struct {
	cfg        PoolConfig
	tailFactor float64
	rng        Source
	heads      []mgl64.Vec3
	tails      []mgl64.Vec3
	colors     []colorful.Color
}

// NewWarpStreaks allocates the streak pool. Streaks start with zero length.
func NewWarpStreaks(cfg PoolConfig, tailLengthFactor float64, rng Source) *WarpStreaks {
	cfg.Capacity = max(cfg.Capacity, 0)
	s := &WarpStreaks{
		cfg:        cfg,
		tailFactor: tailLengthFactor,
		rng:        rng,
		heads:      make([]mgl64.Vec3, cfg.Capacity),
		tails:      make([]mgl64.Vec3, cfg.Capacity),
		colors:     make([]colorful.Color, cfg.Capacity),
	}
	for i := range s.heads {
		s.heads[i] = mgl64.Vec3{
			symmetric(rng, cfg.ExtentX),
			symmetric(rng, cfg.ExtentY),
			uniform(rng, cfg.SpawnFar, cfg.SpawnNear),
		}
		s.tails[i] = s.heads[i]
		s.colors[i] = colorful.Color{R: 1, G: 1, B: 1}
	}
	return s
}

// Tint assigns each streak a random palette color at full brightness.
func (s *WarpStreaks) Tint(palette []colorful.Color) {
	if len(palette) == 0 {
		return
	}
	for i := range s.colors {
		s.colors[i] = tint(s.rng, palette, 1, 1)
	}
}

// Tick advances every head by speed*SpeedScale and recomputes every tail as
// head depth minus speed*tailLengthFactor. A head past the forward bound is
// reset, together with its tail, to a single freshly sampled point before the
// tail is recomputed.
func (s *WarpStreaks) Tick(speed float64) int {
	step := speed * s.cfg.SpeedScale
	tailOffset := speed * s.tailFactor
	recycled := 0
	for i := range s.heads {
		head := &s.heads[i]
		head[2] += step
		if head[2] > s.cfg.ForwardBound {
			*head = mgl64.Vec3{
				symmetric(s.rng, s.cfg.ExtentX),
				symmetric(s.rng, s.cfg.ExtentY),
				uniform(s.rng, s.cfg.RearMin, s.cfg.RearMax),
			}
			s.tails[i] = *head
			recycled++
		}
		s.tails[i] = mgl64.Vec3{head[0], head[1], head[2] - tailOffset}
	}
	return recycled
}

// Len returns the streak count.
func (s *WarpStreaks) Len() int {
	return len(s.heads)
}

// Heads returns the head position buffer.
func (s *WarpStreaks) Heads() []mgl64.Vec3 {
	return s.heads
}

// Tails returns the tail position buffer.
func (s *WarpStreaks) Tails() []mgl64.Vec3 {
	return s.tails
}

// Colors returns the per-streak colors.
func (s *WarpStreaks) Colors() []colorful.Color {
	return s.colors
}

// Config returns the pool configuration.
func (s *WarpStreaks) Config() PoolConfig {
	return s.cfg
}

// TailLengthFactor returns the tail offset per unit of speed.
func (s *WarpStreaks) TailLengthFactor() float64 {
	return s.tailFactor
}
