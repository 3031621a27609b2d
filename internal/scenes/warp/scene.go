// Package warp implements the starfield flight scenes.
// Each scene preset (warp run, nebula drift, asteroid belt) registers itself
// with the scene registry and drives its own starfield world.
package warp

import (
	"errors"
	"time"

	"github.com/charmbracelet/harmonica"

	"github.com/vovakirdan/tui-warp/internal/config"
	"github.com/vovakirdan/tui-warp/internal/core"
	"github.com/vovakirdan/tui-warp/internal/registry"
	"github.com/vovakirdan/tui-warp/internal/starfield"
)

// maxStepDt caps the simulated time of a single step, so a stalled terminal
// or a long pause does not fling the speed to its target in one tick.
const maxStepDt = 0.25

// ErrInvalidTickRate is returned by Reset for a non-positive tick rate.
var ErrInvalidTickRate = errors.New("warp: tick rate must be positive")

func init() {
	for _, p := range config.Presets() {
		registry.Register(string(p), func(cfg config.WarpConfig) registry.Scene {
			return New(p, cfg)
		})
	}
}

// Scene is a flight through one preset of the starfield.
type Scene struct {
	preset   config.ScenePreset
	base     config.WarpConfig
	world    *starfield.World
	sched    *starfield.FrameScheduler
	raster   *Rasterizer
	backend  starfield.Backend
	sink     starfield.SpeedSink
	frame    starfield.Frame
	hasFrame bool
	refDt    float64
	lastNow  time.Time
	paused   bool
}

// New creates a scene for a preset on top of a loaded configuration.
func New(preset config.ScenePreset, cfg config.WarpConfig) *Scene {
	return &Scene{preset: preset, base: cfg}
}

// ID returns the preset name.
func (s *Scene) ID() string {
	return string(s.preset)
}

// Title returns the display name of the preset.
func (s *Scene) Title() string {
	return s.preset.Title()
}

// Reset builds a fresh world. The reference tick interval that the
// configured easing is defined against comes from the tick rate.
func (s *Scene) Reset(cfg core.RuntimeConfig) error {
	if cfg.TickRate <= 0 {
		return ErrInvalidTickRate
	}

	wc := s.base
	if err := config.ApplyPreset(&wc, s.preset); err != nil {
		return err
	}

	s.refDt = harmonica.FPS(cfg.TickRate)
	world, err := starfield.NewWorld(wc, cfg.Seed, s.refDt)
	if err != nil {
		return err
	}

	s.world = world
	s.sched = starfield.NewFrameScheduler(world, s.backend, s.sink)
	s.raster = NewRasterizer(cfg.Seed)
	s.frame = starfield.Frame{}
	s.hasFrame = false
	s.lastNow = time.Time{}
	s.paused = false
	return nil
}

// Step applies input and advances the world to now. The first step after a
// reset advances by one reference tick. While paused the world is frozen and
// warp input is ignored.
func (s *Scene) Step(in core.InputFrame, now time.Time) core.StepResult {
	if s.sched == nil {
		return core.StepResult{State: s.State()}
	}

	if in.Has(core.ActionPause) {
		s.paused = !s.paused
	}

	dt := s.refDt
	if !s.lastNow.IsZero() {
		dt = core.ClampF(now.Sub(s.lastNow).Seconds(), 0, maxStepDt)
	}
	s.lastNow = now

	if s.paused {
		return core.StepResult{State: s.State()}
	}

	if in.Has(core.ActionEngage) {
		s.world.Engage()
	}
	if in.Has(core.ActionRelease) {
		s.world.Release()
	}
	if in.Has(core.ActionToggleWarp) {
		s.world.ToggleWarp()
	}

	f := s.sched.Tick(uint64(max(now.UnixMilli(), 0)), dt)
	s.frame = *f
	s.hasFrame = true

	return core.StepResult{State: s.State()}
}

// Render draws the latest frame. Before the first step the screen is blank.
func (s *Scene) Render(dst *core.Screen) {
	if !s.hasFrame {
		dst.Clear()
		return
	}
	s.raster.Bind(dst)
	s.raster.Present(&s.frame)

	if s.paused {
		const boxW = 12
		dst.DrawBox(core.NewRect((dst.Width()-boxW)/2, dst.Height()/2-1, boxW, 3))
		dst.DrawTextCentered(dst.Height()/2, "PAUSED")
	}
}

// State returns the flight state.
func (s *Scene) State() core.FlightState {
	if s.world == nil {
		return core.FlightState{Paused: s.paused}
	}
	stats := s.world.Stats()
	return core.FlightState{
		Ticks:     stats.Ticks,
		Speed:     s.world.Speed.Current(),
		PeakSpeed: stats.PeakSpeed,
		Distance:  stats.Distance,
		Warps:     stats.Warps,
		Paused:    s.paused,
	}
}

// Attach connects an extra rendering backend and the speed sink.
// They survive Reset.
func (s *Scene) Attach(backend starfield.Backend, sink starfield.SpeedSink) {
	s.backend = backend
	s.sink = sink
	if s.sched != nil {
		s.sched.SetBackend(backend)
		s.sched.SetSink(sink)
	}
}

// Frame returns the latest frame and whether one exists yet.
func (s *Scene) Frame() (starfield.Frame, bool) {
	return s.frame, s.hasFrame
}
