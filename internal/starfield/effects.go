package starfield

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-warp/internal/config"
	"github.com/vovakirdan/tui-warp/internal/core"
)

// WarpRatio normalizes speed between cruise (0) and warp (1), clamped.
func WarpRatio(current, cruise, warp float64) float64 {
	if warp <= cruise {
		return 0
	}
	return core.ClampF((current-cruise)/(warp-cruise), 0, 1)
}

// StreakOpacity is the warp streak material opacity for a warp ratio.
func StreakOpacity(ratio, maxOpacity float64) float64 {
	return core.ClampF(ratio, 0, 1) * maxOpacity
}

// EngineGlow is the engine light intensity for a warp ratio.
func EngineGlow(ratio float64, fx config.EffectsConfig) float64 {
	return fx.GlowBase + ratio*fx.GlowRange
}

// Rig is the ship rig shake for one tick. Roll is a rotation about the view
// axis in radians; Sway is a lateral offset in world units.
type Rig struct {
	Amplitude float64
	Roll      float64
	Sway      float64
}

// ShipRig derives the rig shake from the warp ratio and wall-clock time only.
// Both oscillators depend on time alone, so their phase is independent of
// frame rate.
func ShipRig(ratio float64, nowMs uint64, fx config.EffectsConfig) Rig {
	amp := fx.SmallShake
	if ratio > fx.ShakeThreshold {
		amp = ratio * fx.BigShake
	}
	t := float64(nowMs)
	return Rig{
		Amplitude: amp,
		Roll:      math.Sin(t*fx.RollFreq) * amp,
		Sway:      math.Sin(t*fx.SwayFreq) * amp * fx.SwayScale,
	}
}

// Readout is the speed display handed to the UI sink.
type Readout struct {
	Value float64 // Speed in display units
	Fill  float64 // Bar fill in [0, 1], current speed over warp speed
	Hot   bool    // Speed above the hot threshold
}

// SpeedReadout builds the display values for a speed.
func SpeedReadout(current, warp float64, sc config.SpeedConfig) Readout {
	fill := 0.0
	if warp > 0 {
		fill = core.ClampF(current/warp, 0, 1)
	}
	return Readout{
		Value: current * sc.ReadoutScale,
		Fill:  fill,
		Hot:   current > sc.HotThreshold,
	}
}

// Text formats the value with one decimal.
func (r Readout) Text() string {
	return fmt.Sprintf("%.1f", r.Value)
}

// Percent returns the bar fill as a percentage.
func (r Readout) Percent() float64 {
	return r.Fill * 100
}
