package starfield

import "github.com/lucasb-eyer/go-colorful"

// Frame is everything a backend needs to present one tick.
// It is reused between ticks; backends must not retain it.
type Frame struct {
	NowMs         uint64
	Speed         float64
	Ratio         float64
	CloudColor    colorful.Color
	EngineGlow    float64
	StreakOpacity float64
	Rig           Rig
	Readout       Readout
	Recycled      int
	World         *World
}

// Backend presents a frame once all mutation for the tick is done.
type Backend interface {
	Present(f *Frame)
}

// SpeedSink receives the speed readout once per tick.
type SpeedSink interface {
	ReportSpeed(r Readout)
}

// FrameScheduler runs one simulation tick per display refresh.
type FrameScheduler struct {
	world   *World
	backend Backend
	sink    SpeedSink
	frame   Frame
}

// NewFrameScheduler creates a scheduler. backend and sink may be nil.
func NewFrameScheduler(w *World, backend Backend, sink SpeedSink) *FrameScheduler {
	return &FrameScheduler{world: w, backend: backend, sink: sink}
}

// SetBackend replaces the rendering backend.
func (s *FrameScheduler) SetBackend(b Backend) {
	s.backend = b
}

// SetSink replaces the speed sink.
func (s *FrameScheduler) SetSink(sink SpeedSink) {
	s.sink = sink
}

// World returns the world driven by the scheduler.
func (s *FrameScheduler) World() *World {
	return s.world
}

// Tick advances the world by dt seconds at wall-clock time nowMs:
// speed, nebula color, every pool, then the derived effects. The backend is
// presented only after all mutation, and the sink is updated last.
func (s *FrameScheduler) Tick(nowMs uint64, dt float64) *Frame {
	w := s.world

	w.Speed.Tick(dt)
	speed := w.Speed.Current()

	cloudColor := w.Nebula.ColorAt(nowMs)
	w.Clouds.Paint(cloudColor)

	recycled := 0
	for _, p := range w.pools {
		recycled += p.Tick(speed)
	}

	ratio := w.Speed.Ratio()
	fx := w.cfg.Effects
	s.frame = Frame{
		NowMs:         nowMs,
		Speed:         speed,
		Ratio:         ratio,
		CloudColor:    cloudColor,
		EngineGlow:    EngineGlow(ratio, fx),
		StreakOpacity: StreakOpacity(ratio, w.cfg.Streaks.MaxOpacity),
		Rig:           ShipRig(ratio, nowMs, fx),
		Readout:       SpeedReadout(speed, w.Speed.Warp(), w.cfg.Speed),
		Recycled:      recycled,
		World:         w,
	}
	w.record(speed, dt, recycled)

	if s.backend != nil {
		s.backend.Present(&s.frame)
	}
	if s.sink != nil {
		s.sink.ReportSpeed(s.frame.Readout)
	}
	return &s.frame
}

// MultiBackend presents each frame to every non-nil backend in order.
type MultiBackend []Backend

// Present implements Backend.
func (m MultiBackend) Present(f *Frame) {
	for _, b := range m {
		if b != nil {
			b.Present(f)
		}
	}
}
