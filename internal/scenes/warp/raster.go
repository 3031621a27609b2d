package warp

import (
	"math"

	"github.com/aquilax/go-perlin"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/vovakirdan/tui-warp/internal/core"
	"github.com/vovakirdan/tui-warp/internal/starfield"
)

// Terminal cells are roughly twice as tall as they are wide.
const cellAspect = 2.0

// Glyph budgets per screen cell. Pools are far denser than a terminal grid,
// so each point pool is drawn with a fixed index stride that keeps the same
// particles on screen from frame to frame.
const (
	starDensity   = 1.0 / 10
	dustDensity   = 1.0 / 60
	streakDensity = 1.0 / 15
)

const (
	starFade        = 2200.0
	dustFade        = 220.0
	cloudRadius     = 40.0
	asteroidRadius  = 3.0
	maxStreakCells  = 24
	minStreakAlpha  = 0.05
	twinklePeriodMs = 700.0
	shipRollCols    = 30.0

	backdropRadius = 300.0
	galaxyTilt     = 0.3  // Rows of slope across the screen, as a fraction of height
	galaxyHalf     = 0.16 // Band half-height as a fraction of screen height
	galaxyRing     = 3.0  // Noise sampling radius; larger means finer grain
	galaxyCutoff   = 0.12
)

var (
	engineCool = colorful.Color{R: 0, G: 1, B: 0.8}
	engineHot  = colorful.Color{R: 1, G: 0.3, B: 0}
)

var shipSprite = []string{
	`  /\  `,
	` /##\ `,
	`<=/\=>`,
}

var asteroidTexture = []rune("@#%&")

// Rasterizer draws starfield frames into a terminal screen buffer.
// It implements starfield.Backend.
type Rasterizer struct {
	screen *core.Screen
	noise  *perlin.Perlin
}

// NewRasterizer creates a rasterizer whose star twinkle is seeded by seed.
func NewRasterizer(seed int64) *Rasterizer {
	return &Rasterizer{noise: perlin.NewPerlin(2, 2, 3, seed)}
}

// Bind sets the screen buffer the next Present draws into.
func (r *Rasterizer) Bind(s *core.Screen) {
	r.screen = s
}

// Present clears the bound screen and draws the frame back to front:
// galaxy, background clouds, clouds, stars, dust, streaks, asteroids, then
// the ship.
func (r *Rasterizer) Present(f *starfield.Frame) {
	s := r.screen
	if s == nil || f == nil || f.World == nil {
		return
	}
	s.Clear()
	if s.Width() == 0 || s.Height() == 0 {
		return
	}

	v := newViewport(f, s.Width(), s.Height())
	r.drawGalaxy(f)
	r.drawBackdropClouds(v, f)
	r.drawClouds(v, f)
	r.drawStars(v, f)
	r.drawDust(v, f)
	r.drawStreaks(v, f)
	r.drawAsteroids(v, f)
	r.drawShip(f)
}

type viewport struct {
	vp    mgl64.Mat4
	w, h  float64
	focal float64 // Rows per world unit at unit distance
}

func newViewport(f *starfield.Frame, w, h int) viewport {
	cam := f.World.Config().Camera
	aspect := float64(w) / (float64(h) * cellAspect)
	return viewport{
		vp:    f.World.Camera.ViewProjection(aspect, f.Rig),
		w:     float64(w),
		h:     float64(h),
		focal: float64(h) / 2 / math.Tan(mgl64.DegToRad(cam.FOV)/2),
	}
}

func (v viewport) cells() int {
	return int(v.w * v.h)
}

// cell projects p to an on-screen cell.
func (v viewport) cell(p mgl64.Vec3) (x, y int, dist float64, ok bool) {
	fx, fy, dist, ok := starfield.Project(v.vp, p, v.w, v.h)
	if !ok || fx < 0 || fy < 0 || fx >= v.w || fy >= v.h {
		return 0, 0, 0, false
	}
	return int(fx), int(fy), dist, true
}

func (r *Rasterizer) drawStars(v viewport, f *starfield.Frame) {
	pool := f.World.Stars
	pos, colors := pool.Positions(), pool.Colors()
	t := float64(f.NowMs) / twinklePeriodMs
	step := stride(len(pos), v.cells(), starDensity)
	for i := 0; i < len(pos); i += step {
		x, y, dist, ok := v.cell(pos[i])
		if !ok {
			continue
		}
		twinkle := 0.8 + 0.35*r.noise.Noise2D(float64(i)*0.37, t)
		c := colorful.Color{R: 1, G: 1, B: 1}
		if colors != nil {
			c = colors[i]
		}
		r.screen.SetColored(x, y, starGlyph(dist), shade(c, fade(dist, starFade)*twinkle))
	}
}

func (r *Rasterizer) drawDust(v viewport, f *starfield.Frame) {
	pos := f.World.Dust.Positions()
	step := stride(len(pos), v.cells(), dustDensity)
	for i := 0; i < len(pos); i += step {
		x, y, dist, ok := v.cell(pos[i])
		if !ok {
			continue
		}
		r.screen.SetColored(x, y, '.', core.ColorGray.Scale(fade(dist, dustFade)))
	}
}

func (r *Rasterizer) drawStreaks(v viewport, f *starfield.Frame) {
	if f.StreakOpacity < minStreakAlpha {
		return
	}
	streaks := f.World.Streaks
	heads, tails, colors := streaks.Heads(), streaks.Tails(), streaks.Colors()
	step := stride(len(heads), v.cells(), streakDensity)
	for i := 0; i < len(heads); i += step {
		hx, hy, _, hok := starfield.Project(v.vp, heads[i], v.w, v.h)
		tx, ty, dist, tok := starfield.Project(v.vp, tails[i], v.w, v.h)
		if !hok || !tok {
			continue
		}
		c := shade(colors[i], f.StreakOpacity*fade(dist, starFade))
		r.line(clampCoord(tx, v.w), clampCoord(ty, v.h), clampCoord(hx, v.w), clampCoord(hy, v.h),
			streakGlyph(hx-tx, hy-ty), c)
	}
}

// drawGalaxy draws a tilted band of faint noise. Noise is sampled on a
// circle around the galaxy angle so the band scrolls without a seam.
func (r *Rasterizer) drawGalaxy(f *starfield.Frame) {
	s := r.screen
	w, h := float64(s.Width()), float64(s.Height())
	angle := f.World.Backdrop.Galaxy()
	half := math.Max(galaxyHalf*h, 1)
	for x := range s.Width() {
		u := float64(x) / w
		theta := 2*math.Pi*u + angle
		cy := h * (0.5 - galaxyTilt/2 + galaxyTilt*u)
		for y := int(cy - half); y <= int(cy+half); y++ {
			n := r.noise.Noise3D(math.Cos(theta)*galaxyRing, math.Sin(theta)*galaxyRing, float64(y)*0.21)
			if n < galaxyCutoff {
				continue
			}
			glyph := '.'
			if n > 0.35 {
				glyph = ':'
			}
			falloff := 1 - math.Abs(float64(y)+0.5-cy)/half
			s.SetColored(x, y, glyph, core.ColorDim.Scale(0.6+0.8*falloff))
		}
	}
}

func (r *Rasterizer) drawBackdropClouds(v viewport, f *starfield.Frame) {
	b := f.World.Backdrop
	pos, angles := b.Clouds().Positions(), b.Clouds().Angles()
	c := shade(b.Color(), 0.22)
	for i, p := range pos {
		fx, fy, dist, ok := starfield.Project(v.vp, p, v.w, v.h)
		if !ok {
			continue
		}
		ry := math.Min(backdropRadius*v.focal/dist, v.h/2)
		if ry < 0.5 {
			continue
		}
		angle := 0.0
		if angles != nil {
			angle = angles[i]
		}
		r.ellipse(fx, fy, ry*cellAspect, ry*cellAspect*0.6, angle, func(x, y int, d float64) {
			if d < 0.35 {
				r.screen.SetColored(x, y, '░', c)
			}
		})
	}
}

func (r *Rasterizer) drawClouds(v viewport, f *starfield.Frame) {
	clouds := f.World.Clouds
	pos, angles := clouds.Positions(), clouds.Angles()
	c := shade(f.CloudColor, 0.45)
	for i, p := range pos {
		fx, fy, dist, ok := starfield.Project(v.vp, p, v.w, v.h)
		if !ok {
			continue
		}
		ry := math.Min(cloudRadius*v.focal/dist, v.h/2)
		if ry < 0.5 {
			continue
		}
		angle := 0.0
		if angles != nil {
			angle = angles[i]
		}
		r.ellipse(fx, fy, ry*cellAspect, ry*cellAspect*0.55, angle, func(x, y int, d float64) {
			glyph := '░'
			if d < 0.4 {
				glyph = '▒'
			}
			r.screen.SetColored(x, y, glyph, c)
		})
	}
}

func (r *Rasterizer) drawAsteroids(v viewport, f *starfield.Frame) {
	for _, a := range f.World.Asteroids.Asteroids() {
		fx, fy, dist, ok := starfield.Project(v.vp, a.Position, v.w, v.h)
		if !ok {
			continue
		}
		c := core.ColorGray.Scale(fade(dist, starFade) * 1.2)
		ry := math.Min(a.Scale*asteroidRadius*v.focal/dist, v.h/2)
		if ry < 0.6 {
			r.screen.SetColored(int(math.Floor(fx)), int(math.Floor(fy)), 'o', c)
			continue
		}
		rot := a.Rotation
		r.ellipse(fx, fy, ry*cellAspect, ry*cellAspect, rot[2], func(x, y int, _ float64) {
			u := float64(x)*math.Cos(rot[0]) + float64(y)*math.Sin(rot[1])
			idx := int(math.Abs(math.Floor(u*0.7))) % len(asteroidTexture)
			r.screen.SetColored(x, y, asteroidTexture[idx], c)
		})
	}
}

func (r *Rasterizer) drawShip(f *starfield.Frame) {
	s := r.screen
	w, h := s.Width(), s.Height()
	if w < 10 || h < 8 {
		return
	}
	fx := f.World.Config().Effects
	x := (w-len(shipSprite[0]))/2 + int(math.Round(f.Rig.Roll*shipRollCols))
	y := h - len(shipSprite) - 1
	for i, row := range shipSprite {
		s.DrawTextColored(x, y+i, row, core.ColorWhite)
	}

	t := 0.0
	if fx.GlowRange > 0 {
		t = core.ClampF((f.EngineGlow-fx.GlowBase)/fx.GlowRange, 0, 1)
	}
	flame := "  ..  "
	if t > 0.5 {
		flame = "  **  "
	} else if t > 0.1 {
		flame = "  ''  "
	}
	s.DrawTextColored(x, h-1, flame, shade(engineCool.BlendRgb(engineHot, t), 0.5+0.5*t))
}

// ellipse calls plot for every on-screen cell inside the ellipse centered at
// (cx, cy) with semi-axes a (columns) and b, rotated by angle. d is the
// normalized squared distance from the center.
func (r *Rasterizer) ellipse(cx, cy, a, b, angle float64, plot func(x, y int, d float64)) {
	if a <= 0 || b <= 0 {
		return
	}
	w, h := float64(r.screen.Width()), float64(r.screen.Height())
	reach := math.Max(a, b)
	x0, x1 := int(math.Max(cx-reach, 0)), int(math.Min(cx+reach, w-1))
	y0, y1 := int(math.Max(cy-reach/cellAspect, 0)), int(math.Min(cy+reach/cellAspect, h-1))
	cos, sin := math.Cos(angle), math.Sin(angle)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dx := float64(x) + 0.5 - cx
			dy := (float64(y) + 0.5 - cy) * cellAspect
			u := dx*cos + dy*sin
			t := -dx*sin + dy*cos
			d := (u*u)/(a*a) + (t*t)/(b*b)
			if d <= 1 {
				plot(x, y, d)
			}
		}
	}
}

// line draws a Bresenham line of at most maxStreakCells cells.
func (r *Rasterizer) line(fx0, fy0, fx1, fy1 float64, glyph rune, c core.Color) {
	x0, y0 := int(math.Floor(fx0)), int(math.Floor(fy0))
	x1, y1 := int(math.Floor(fx1)), int(math.Floor(fy1))
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for range maxStreakCells {
		r.screen.SetColored(x0, y0, glyph, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// stride returns the index step that keeps n points within the glyph budget.
func stride(n, cells int, density float64) int {
	target := int(float64(cells) * density)
	if target <= 0 || n <= target {
		return 1
	}
	return (n + target - 1) / target
}

func starGlyph(dist float64) rune {
	switch {
	case dist < 120:
		return '*'
	case dist < 500:
		return '+'
	case dist < 1200:
		return '·'
	default:
		return '.'
	}
}

// streakGlyph picks a line character for a screen-space direction (Y down).
func streakGlyph(dx, dy float64) rune {
	a := math.Atan2(dy*cellAspect, dx)
	if a < 0 {
		a += math.Pi
	}
	switch {
	case a < math.Pi/8 || a >= 7*math.Pi/8:
		return '-'
	case a < 3*math.Pi/8:
		return '\\'
	case a < 5*math.Pi/8:
		return '|'
	default:
		return '/'
	}
}

func fade(dist, far float64) float64 {
	return core.ClampF(1.15-dist/far, 0.25, 1)
}

func shade(c colorful.Color, k float64) core.Color {
	return core.RGBf(c.R*k, c.G*k, c.B*k)
}

// clampCoord keeps projected coordinates near the screen so that points
// close to the camera do not overflow integer conversion.
func clampCoord(v, size float64) float64 {
	return core.ClampF(v, -size, 2*size)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
