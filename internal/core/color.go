package core

import "fmt"

// Color is a 24-bit foreground color for a screen cell.
// The zero value is the terminal's default foreground.
type Color uint32

// colorSet marks a Color as carrying an explicit RGB value,
// so that pure black stays distinguishable from the default.
const colorSet Color = 1 << 24

// Named colors used by the HUD and the scene rasterizer.
const (
	ColorDefault Color = 0
	ColorWhite         = colorSet | 0xffffff
	ColorGray          = colorSet | 0x8a8a8a
	ColorDim           = colorSet | 0x4e4e4e
	ColorCyan          = colorSet | 0x00ffcc
	ColorHot           = colorSet | 0xff3300
)

// RGB builds a color from its 8-bit channels.
func RGB(r, g, b uint8) Color {
	return colorSet | Color(r)<<16 | Color(g)<<8 | Color(b)
}

// RGBf builds a color from float channels in [0, 1].
// Channels outside the range are clamped, which lets over-bright
// star tints saturate instead of wrapping.
func RGBf(r, g, b float64) Color {
	return RGB(channel(r), channel(g), channel(b))
}

func channel(v float64) uint8 {
	return uint8(ClampF(v, 0, 1)*255 + 0.5)
}

// IsDefault reports whether c is the terminal default color.
func (c Color) IsDefault() bool {
	return c&colorSet == 0
}

// RGB returns the 8-bit channels of c.
func (c Color) RGB() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// Quantize keeps the top bits of every channel and repeats them into the
// low bits, so black and white survive and the result has at most
// 2^(3*bits) distinct values. The default color is returned unchanged.
func (c Color) Quantize(bits uint) Color {
	if c.IsDefault() || bits >= 8 {
		return c
	}
	bits = max(bits, 1)
	q := func(v uint8) uint8 {
		v &^= 1<<(8-bits) - 1
		for shift := bits; shift < 8; shift += bits {
			v |= v >> shift
		}
		return v
	}
	r, g, b := c.RGB()
	return RGB(q(r), q(g), q(b))
}

// Hex returns c formatted as #rrggbb, or "" for the default color.
func (c Color) Hex() string {
	if c.IsDefault() {
		return ""
	}
	r, g, b := c.RGB()
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// Scale multiplies every channel by f (clamped), used for fading
// glyphs toward black with distance or opacity.
func (c Color) Scale(f float64) Color {
	if c.IsDefault() {
		return c
	}
	r, g, b := c.RGB()
	return RGBf(float64(r)/255*f, float64(g)/255*f, float64(b)/255*f)
}
