package gfx

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/vovakirdan/tui-warp/internal/core"
	"github.com/vovakirdan/tui-warp/internal/starfield"
)

const (
	starFar        = 2200.0
	dustFar        = 220.0
	cloudRadius    = 40.0
	starSize       = 0.5
	asteroidRadius = 3.0
	maxDotRadius   = 3.0
	shipRollPx     = 160.0
	hudBarWidth    = 240.0
	hudBarHeight   = 10.0
	backdropRadius = 300.0
	galaxyPuffs    = 64
)

var (
	background = color.RGBA{4, 4, 12, 255}
	hudCool    = colorful.Color{R: 0, G: 1, B: 0.8}
	hudHot     = colorful.Color{R: 1, G: 0.2, B: 0}
	hullColor  = colorful.Color{R: 0.85, G: 0.88, B: 0.95}
	rockColor  = colorful.Color{R: 0.55, G: 0.5, B: 0.45}
	galaxyTone = colorful.Color{R: 0.6, G: 0.6, B: 0.6}
)

// view projects world points to window pixels for one frame.
type view struct {
	vp    mgl64.Mat4
	w, h  float64
	focal float64 // Pixels per world unit at unit distance
}

func newView(f *starfield.Frame, width, height int) view {
	cam := f.World.Config().Camera
	w, h := float64(width), float64(height)
	return view{
		vp:    f.World.Camera.ViewProjection(w/h, f.Rig),
		w:     w,
		h:     h,
		focal: h / 2 / math.Tan(mgl64.DegToRad(cam.FOV)/2),
	}
}

func (v view) project(p mgl64.Vec3) (x, y, dist float64, ok bool) {
	x, y, dist, ok = starfield.Project(v.vp, p, v.w, v.h)
	if !ok || x < -v.w || y < -v.h || x > 2*v.w || y > 2*v.h {
		return 0, 0, 0, false
	}
	return x, y, dist, true
}

// Draw renders the latest frame back to front, then the HUD.
func (w *Window) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	if !w.hasFrame || w.frame.World == nil {
		return
	}

	b := screen.Bounds()
	v := newView(&w.frame, b.Dx(), b.Dy())
	f := &w.frame

	drawGalaxy(screen, v, f)
	drawBackdropClouds(screen, v, f)
	drawClouds(screen, v, f)
	drawStars(screen, v, f)
	drawDust(screen, v, f)
	drawStreaks(screen, v, f)
	drawAsteroids(screen, v, f)
	drawShip(screen, v, f)
	w.drawHUD(screen)
}

// drawGalaxy draws a tilted band of soft puffs that scrolls with the galaxy
// angle and wraps at the window edge.
func drawGalaxy(dst *ebiten.Image, v view, f *starfield.Frame) {
	angle := f.World.Backdrop.Galaxy()
	clr := nrgba(galaxyTone, 0.05)
	for i := range galaxyPuffs {
		theta := 2 * math.Pi * float64(i) / galaxyPuffs
		u := math.Mod(theta+angle, 2*math.Pi) / (2 * math.Pi)
		x := u * v.w
		y := v.h*(0.35+0.3*u) + math.Sin(3*theta)*v.h*0.04
		sw := math.Sin(5 * theta)
		r := v.h * (0.06 + 0.03*sw*sw)
		vector.DrawFilledCircle(dst, float32(x), float32(y), float32(r), clr, true)
	}
}

func drawBackdropClouds(dst *ebiten.Image, v view, f *starfield.Frame) {
	b := f.World.Backdrop
	clr := nrgba(b.Color(), 0.1)
	for _, p := range b.Clouds().Positions() {
		x, y, dist, ok := v.project(p)
		if !ok {
			continue
		}
		r := math.Min(backdropRadius*v.focal/dist, v.h)
		vector.DrawFilledCircle(dst, float32(x), float32(y), float32(r), clr, true)
	}
}

func drawClouds(dst *ebiten.Image, v view, f *starfield.Frame) {
	clr := nrgba(f.CloudColor, 0.08)
	for _, p := range f.World.Clouds.Positions() {
		x, y, dist, ok := v.project(p)
		if !ok {
			continue
		}
		r := math.Min(cloudRadius*v.focal/dist, v.h)
		vector.DrawFilledCircle(dst, float32(x), float32(y), float32(r), clr, true)
		vector.DrawFilledCircle(dst, float32(x), float32(y), float32(r*0.55), clr, true)
	}
}

func drawStars(dst *ebiten.Image, v view, f *starfield.Frame) {
	pool := f.World.Stars
	pos, colors := pool.Positions(), pool.Colors()
	for i, p := range pos {
		x, y, dist, ok := v.project(p)
		if !ok {
			continue
		}
		c := colorful.Color{R: 1, G: 1, B: 1}
		if colors != nil {
			c = colors[i]
		}
		r := dotRadius(starSize*v.focal/dist, 0.6)
		vector.DrawFilledCircle(dst, float32(x), float32(y), float32(r), nrgba(c, fade(dist, starFar)), true)
	}
}

func drawDust(dst *ebiten.Image, v view, f *starfield.Frame) {
	for _, p := range f.World.Dust.Positions() {
		x, y, dist, ok := v.project(p)
		if !ok {
			continue
		}
		clr := nrgba(colorful.Color{R: 0.7, G: 0.7, B: 0.75}, 0.6*fade(dist, dustFar))
		vector.DrawFilledRect(dst, float32(x), float32(y), 1, 1, clr, false)
	}
}

func drawStreaks(dst *ebiten.Image, v view, f *starfield.Frame) {
	if f.StreakOpacity <= 0 {
		return
	}
	s := f.World.Streaks
	heads, tails, colors := s.Heads(), s.Tails(), s.Colors()
	for i := range heads {
		hx, hy, _, hok := v.project(heads[i])
		tx, ty, dist, tok := v.project(tails[i])
		if !hok || !tok {
			continue
		}
		clr := nrgba(colors[i], f.StreakOpacity*fade(dist, starFar))
		vector.StrokeLine(dst, float32(tx), float32(ty), float32(hx), float32(hy), 1.5, clr, true)
	}
}

func drawAsteroids(dst *ebiten.Image, v view, f *starfield.Frame) {
	for _, a := range f.World.Asteroids.Asteroids() {
		x, y, dist, ok := v.project(a.Position)
		if !ok {
			continue
		}
		r := math.Min(a.Scale*asteroidRadius*v.focal/dist, v.h/2)
		alpha := fade(dist, starFar)
		vector.DrawFilledCircle(dst, float32(x), float32(y), float32(r), nrgba(rockColor, alpha), true)

		// A ridge line makes the spin visible.
		rx, ry := math.Cos(a.Rotation[2])*r, math.Sin(a.Rotation[2])*r
		vector.StrokeLine(dst, float32(x-rx), float32(y-ry), float32(x+rx), float32(y+ry),
			float32(math.Max(r/6, 1)), nrgba(rockColor.BlendRgb(colorful.Color{}, 0.5), alpha), true)
	}
}

func drawShip(dst *ebiten.Image, v view, f *starfield.Frame) {
	cx := v.w/2 + f.Rig.Roll*shipRollPx
	cy := v.h - 60
	hull := nrgba(hullColor, 1)

	// Engine glow grows with the warp ratio.
	t := 0.0
	if fx := f.World.Config().Effects; fx.GlowRange > 0 {
		t = core.ClampF((f.EngineGlow-fx.GlowBase)/fx.GlowRange, 0, 1)
	}
	glow := nrgba(hudCool.BlendRgb(hudHot, t), 0.35+0.4*t)
	vector.DrawFilledCircle(dst, float32(cx), float32(cy+18), float32(f.EngineGlow), glow, true)

	tip := [2]float64{cx, cy - 28}
	left := [2]float64{cx - 34, cy + 16}
	right := [2]float64{cx + 34, cy + 16}
	for _, seg := range [][2][2]float64{{tip, left}, {left, right}, {right, tip}} {
		vector.StrokeLine(dst, float32(seg[0][0]), float32(seg[0][1]), float32(seg[1][0]), float32(seg[1][1]), 2, hull, true)
	}
}

func (w *Window) drawHUD(dst *ebiten.Image) {
	r := w.readout
	c := hudCool
	if r.Hot {
		c = hudHot
	}

	drawText(dst, w.scene.Title(), w.titleFace, 16, 12, nrgba(colorful.Color{R: 1, G: 1, B: 1}, 0.8))
	drawText(dst, "SPEED "+r.Text(), w.monoFace, 16, 40, nrgba(c, 1))

	x, y := float32(16), float32(64)
	vector.DrawFilledRect(dst, x, y, hudBarWidth, hudBarHeight, nrgba(colorful.Color{R: 0.2, G: 0.2, B: 0.25}, 1), false)
	vector.DrawFilledRect(dst, x, y, float32(barFill(r.Fill, hudBarWidth)), hudBarHeight, nrgba(c, 1), false)

	if w.state.Paused {
		drawText(dst, "PAUSED", w.titleFace, float64(w.width)/2-30, float64(w.height)/2, nrgba(hullColor, 1))
	}
}

func drawText(dst *ebiten.Image, s string, face *text.GoTextFace, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, s, face, op)
}

// barFill converts a readout fill to pixels, clamped to the bar.
func barFill(fill, width float64) float64 {
	return core.ClampF(fill, 0, 1) * width
}

func dotRadius(r, minR float64) float64 {
	return core.ClampF(r, minR, maxDotRadius)
}

func fade(dist, far float64) float64 {
	return core.ClampF(1.15-dist/far, 0.25, 1)
}

// nrgba converts a palette color and opacity to an Ebitengine color.
func nrgba(c colorful.Color, alpha float64) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(core.ClampF(alpha, 0, 1) * 255))}
}
