// Package gfx flies scenes in a desktop window with Ebitengine.
// The window is both the rendering backend and the speed sink of its scene.
package gfx

import (
	"bytes"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/vovakirdan/tui-warp/internal/core"
	"github.com/vovakirdan/tui-warp/internal/registry"
	"github.com/vovakirdan/tui-warp/internal/starfield"
)

// Window runs one scene in an Ebitengine window.
type Window struct {
	scene    registry.Scene
	config   core.RuntimeConfig
	frame    starfield.Frame
	hasFrame bool
	readout  starfield.Readout
	state    core.FlightState
	input    core.InputFrame
	held     bool
	width    int
	height   int
	started  time.Time

	titleFace *text.GoTextFace
	monoFace  *text.GoTextFace
}

// NewWindow attaches the window to scene and resets it.
// cfg.ScreenW and cfg.ScreenH are the window size in pixels.
func NewWindow(scene registry.Scene, cfg core.RuntimeConfig) (*Window, error) {
	regular, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("gfx: load regular font: %w", err)
	}
	mono, err := text.NewGoTextFaceSource(bytes.NewReader(gomono.TTF))
	if err != nil {
		return nil, fmt.Errorf("gfx: load mono font: %w", err)
	}

	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	w := &Window{
		scene:     scene,
		config:    cfg,
		input:     core.NewInputFrame(),
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		titleFace: &text.GoTextFace{Source: regular, Size: 18},
		monoFace:  &text.GoTextFace{Source: mono, Size: 16},
	}

	scene.Attach(w, w)
	if err := scene.Reset(cfg); err != nil {
		return nil, fmt.Errorf("gfx: %s: %w", scene.ID(), err)
	}
	return w, nil
}

// Present implements starfield.Backend. The frame is kept until Draw.
func (w *Window) Present(f *starfield.Frame) {
	w.frame = *f
	w.hasFrame = true
}

// ReportSpeed implements starfield.SpeedSink.
func (w *Window) ReportSpeed(r starfield.Readout) {
	w.readout = r
}

// Update polls input and steps the scene to the current wall-clock time.
func (w *Window) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		w.input.Set(core.ActionPause)
	}

	held := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) ||
		ebiten.IsKeyPressed(ebiten.KeySpace) ||
		ebiten.IsKeyPressed(ebiten.KeyW) ||
		ebiten.IsKeyPressed(ebiten.KeyUp)
	if a := warpTransition(w.held, held); a != core.ActionNone {
		w.input.Set(a)
	}
	w.held = held

	if w.started.IsZero() {
		w.started = time.Now()
	}
	res := w.scene.Step(w.input, time.Now())
	w.state = res.State
	w.input.Clear()
	return nil
}

// warpTransition maps a change in the hold state to an engage or release.
func warpTransition(wasHeld, held bool) core.Action {
	switch {
	case held && !wasHeld:
		return core.ActionEngage
	case !held && wasHeld:
		return core.ActionRelease
	}
	return core.ActionNone
}

// Layout follows the window size so the starfield fills any resize.
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	w.width, w.height = max(outsideWidth, 1), max(outsideHeight, 1)
	return w.width, w.height
}

// State returns the latest flight state.
func (w *Window) State() core.FlightState {
	return w.state
}

// Elapsed returns the time since the first update.
func (w *Window) Elapsed() time.Duration {
	if w.started.IsZero() {
		return 0
	}
	return time.Since(w.started)
}

// Run opens the window and blocks until it is closed.
func (w *Window) Run() error {
	ebiten.SetWindowSize(w.width, w.height)
	ebiten.SetWindowTitle("warp - " + w.scene.Title())
	ebiten.SetWindowResizable(true)
	ebiten.SetTPS(max(w.config.TickRate, 1))

	if err := ebiten.RunGame(w); err != nil {
		return fmt.Errorf("gfx: %w", err)
	}
	return nil
}
