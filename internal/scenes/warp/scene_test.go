package warp

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-warp/internal/config"
	"github.com/vovakirdan/tui-warp/internal/core"
	"github.com/vovakirdan/tui-warp/internal/registry"
	"github.com/vovakirdan/tui-warp/internal/starfield"
)

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func testConfig() config.WarpConfig {
	cfg := config.DefaultWarpConfig()
	cfg.Stars.Capacity = 2000
	cfg.Streaks.Capacity = 500
	return cfg
}

func runtimeConfig(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed}
}

func newScene(t *testing.T, preset config.ScenePreset, seed int64) *Scene {
	t.Helper()
	s := New(preset, testConfig())
	if err := s.Reset(runtimeConfig(seed)); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	return s
}

// fly steps the scene n times at the reference rate starting at epoch.
func fly(s *Scene, n int, in core.InputFrame) core.StepResult {
	var res core.StepResult
	for i := range n {
		res = s.Step(in, epoch.Add(time.Duration(i)*time.Second/60))
		in = core.NewInputFrame()
	}
	return res
}

func TestScenesRegistered(t *testing.T) {
	for _, p := range config.Presets() {
		if !registry.Exists(string(p)) {
			t.Errorf("scene %q not registered", p)
		}
	}

	list := registry.List()
	if len(list) != 3 {
		t.Fatalf("registry.List() = %d scenes, want 3", len(list))
	}
	if list[0].ID != "belt" || list[0].Title != "Asteroid Belt" {
		t.Errorf("first scene = %+v, want belt", list[0])
	}

	sc, err := registry.Create("nebula", testConfig())
	if err != nil {
		t.Fatalf("Create(nebula) error = %v", err)
	}
	if sc.Title() != "Nebula Drift" {
		t.Errorf("Title() = %q", sc.Title())
	}
}

func TestSceneFirstStepEasesAtReferenceRate(t *testing.T) {
	s := newScene(t, config.PresetWarp, 1)

	in := core.NewInputFrame()
	in.Set(core.ActionEngage)
	res := s.Step(in, epoch)

	if got := res.State.Speed; got < 1.2959999 || got > 1.2960001 {
		t.Errorf("speed after first step = %v, want 1.296", got)
	}
	if res.State.Warps != 1 {
		t.Errorf("warps = %d, want 1", res.State.Warps)
	}
}

func TestSceneToggleAndRelease(t *testing.T) {
	s := newScene(t, config.PresetWarp, 1)

	in := core.NewInputFrame()
	in.Set(core.ActionToggleWarp)
	res := fly(s, 120, in)
	peak := res.State.Speed
	if peak < 20 {
		t.Fatalf("speed after 2s of warp = %v, want > 20", peak)
	}

	rel := core.NewInputFrame()
	rel.Set(core.ActionRelease)
	s.Step(rel, epoch.Add(3*time.Second))
	res = fly(s, 10, core.NewInputFrame())
	if res.State.Speed >= peak {
		t.Errorf("speed after release = %v, want below %v", res.State.Speed, peak)
	}
	if res.State.PeakSpeed < peak {
		t.Errorf("peak speed = %v, want >= %v", res.State.PeakSpeed, peak)
	}
}

func TestScenePauseFreezesWorld(t *testing.T) {
	s := newScene(t, config.PresetWarp, 1)
	fly(s, 10, core.NewInputFrame())
	ticks := s.State().Ticks

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	res := s.Step(pause, epoch.Add(time.Second))
	if !res.State.Paused {
		t.Fatal("expected paused state")
	}

	warp := core.NewInputFrame()
	warp.Set(core.ActionEngage)
	for i := range 30 {
		s.Step(warp, epoch.Add(time.Second+time.Duration(i)*time.Millisecond))
	}
	if got := s.State().Ticks; got != ticks {
		t.Errorf("ticks while paused = %d, want %d", got, ticks)
	}
	if s.State().Warps != 0 {
		t.Error("warp input must be ignored while paused")
	}

	res = s.Step(pause, epoch.Add(2*time.Second))
	if res.State.Paused || res.State.Ticks != ticks+1 {
		t.Errorf("after unpause: paused=%v ticks=%d", res.State.Paused, res.State.Ticks)
	}
}

func TestSceneStepClampsLongGaps(t *testing.T) {
	a := newScene(t, config.PresetWarp, 1)
	b := newScene(t, config.PresetWarp, 1)

	in := core.NewInputFrame()
	in.Set(core.ActionEngage)
	a.Step(in, epoch)
	b.Step(in, epoch)

	a.Step(core.NewInputFrame(), epoch.Add(time.Hour))
	b.Step(core.NewInputFrame(), epoch.Add(time.Duration(maxStepDt*float64(time.Second))))

	if a.State().Speed != b.State().Speed {
		t.Errorf("speed after long gap = %v, want %v", a.State().Speed, b.State().Speed)
	}
}

func TestSceneDeterminism(t *testing.T) {
	render := func() string {
		s := newScene(t, config.PresetBelt, 12345)
		in := core.NewInputFrame()
		in.Set(core.ActionEngage)
		fly(s, 200, in)
		screen := core.NewScreen(80, 24)
		s.Render(screen)
		return screen.String()
	}

	if a, b := render(), render(); a != b {
		t.Error("same seed and input produced different frames")
	}
}

func TestSceneRender(t *testing.T) {
	s := newScene(t, config.PresetWarp, 7)
	screen := core.NewScreen(80, 24)

	s.Render(screen)
	if strings.TrimSpace(screen.String()) != "" {
		t.Error("screen should be blank before the first step")
	}

	fly(s, 5, core.NewInputFrame())
	s.Render(screen)
	out := screen.String()
	if !strings.Contains(out, "<=/\\=>") {
		t.Errorf("ship not drawn:\n%s", out)
	}
	if strings.Count(out, " ") == 80*24 {
		t.Error("nothing drawn")
	}

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	s.Step(pause, epoch.Add(time.Second))
	s.Render(screen)
	if !strings.Contains(screen.Row(12), "PAUSED") {
		t.Error("pause overlay missing")
	}
	if !strings.Contains(screen.Row(11), "┌") {
		t.Error("pause overlay should be boxed")
	}
}

func TestSceneRenderSmallScreens(t *testing.T) {
	s := newScene(t, config.PresetNebula, 3)
	fly(s, 3, core.NewInputFrame())

	for _, size := range [][2]int{{0, 0}, {1, 1}, {5, 3}, {200, 60}} {
		screen := core.NewScreen(size[0], size[1])
		s.Render(screen)
	}
}

func TestSceneResetErrors(t *testing.T) {
	s := New(config.PresetWarp, testConfig())
	if err := s.Reset(core.RuntimeConfig{TickRate: 0}); err != ErrInvalidTickRate {
		t.Errorf("Reset(tick 0) error = %v, want ErrInvalidTickRate", err)
	}

	bad := testConfig()
	bad.Nebula.Palette = []string{"#000000"}
	s = New(config.PresetWarp, bad)
	if err := s.Reset(runtimeConfig(1)); err == nil {
		t.Error("Reset with one-color palette should fail")
	}

	s = New(config.ScenePreset("void"), testConfig())
	if err := s.Reset(runtimeConfig(1)); err == nil {
		t.Error("Reset with unknown preset should fail")
	}

	// A scene that never reset must not panic.
	if res := s.Step(core.NewInputFrame(), epoch); res.State.Ticks != 0 {
		t.Error("unreset scene should not tick")
	}
}

type countingSink struct{ reports []starfield.Readout }

func (c *countingSink) ReportSpeed(r starfield.Readout) { c.reports = append(c.reports, r) }

type countingBackend struct{ frames int }

func (c *countingBackend) Present(*starfield.Frame) { c.frames++ }

func TestSceneAttachSurvivesReset(t *testing.T) {
	s := New(config.PresetWarp, testConfig())
	sink := &countingSink{}
	backend := &countingBackend{}
	s.Attach(backend, sink)

	if err := s.Reset(runtimeConfig(1)); err != nil {
		t.Fatal(err)
	}
	fly(s, 4, core.NewInputFrame())

	if len(sink.reports) != 4 || backend.frames != 4 {
		t.Errorf("sink=%d backend=%d, want 4 each", len(sink.reports), backend.frames)
	}
	if f, ok := s.Frame(); !ok || f.World == nil {
		t.Error("Frame() should hold the latest frame")
	}
}
