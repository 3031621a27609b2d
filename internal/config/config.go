// Package config provides YAML-based flight configuration loading,
// validation and scene presets for the warp platform.
package config

import "time"

// WarpConfig contains all configuration for a warp flight scene.
type WarpConfig struct {
	Speed       SpeedConfig   `yaml:"speed"`
	Nebula      NebulaConfig  `yaml:"nebula"`
	StarPalette PaletteConfig `yaml:"star_palette"`
	Stars       PoolSpec      `yaml:"stars"`
	Dust        PoolSpec      `yaml:"dust"`
	Clouds      PoolSpec      `yaml:"clouds"`
	Streaks     StreakSpec    `yaml:"streaks"`
	Asteroids   AsteroidSpec  `yaml:"asteroids"`
	Backdrop    BackdropSpec  `yaml:"backdrop"`
	Effects     EffectsConfig `yaml:"effects"`
	Camera      CameraConfig  `yaml:"camera"`
}

// SpeedConfig defines the cruise/warp speeds and the easing between them.
type SpeedConfig struct {
	Cruise       float64 `yaml:"cruise"`
	Warp         float64 `yaml:"warp"`
	Easing       float64 `yaml:"easing"`        // Fraction of the gap closed per reference tick, in (0, 1)
	HotThreshold float64 `yaml:"hot_threshold"` // Speed above which the HUD bar turns hot
	ReadoutScale float64 `yaml:"readout_scale"` // Multiplier from speed to the displayed value
}

// NebulaConfig defines the drifting-cloud color cycle.
type NebulaConfig struct {
	Palette []string      `yaml:"palette"` // Hex colors, at least two
	Cycle   time.Duration `yaml:"cycle"`   // Period of one full palette cycle
}

// PaletteConfig tints stars and streaks at creation.
type PaletteConfig struct {
	Colors        []string `yaml:"colors"`
	BrightnessMin float64  `yaml:"brightness_min"`
	BrightnessMax float64  `yaml:"brightness_max"`
}

// PoolSpec defines one fixed-capacity particle pool.
type PoolSpec struct {
	Capacity     int     `yaml:"capacity"`
	ExtentX      float64 `yaml:"extent_x"`      // Lateral half-extent on X
	ExtentY      float64 `yaml:"extent_y"`      // Lateral half-extent on Y
	SpawnFar     float64 `yaml:"spawn_far"`     // Initial depth range, far end
	SpawnNear    float64 `yaml:"spawn_near"`    // Initial depth range, near end
	Stagger      bool    `yaml:"stagger"`       // Evenly pre-space initial depths instead of sampling
	ForwardBound float64 `yaml:"forward_bound"` // Recycle when depth exceeds this
	RearMin      float64 `yaml:"rear_min"`
	RearMax      float64 `yaml:"rear_max"`
	SpeedScale   float64 `yaml:"speed_scale"`
	Spin         float64 `yaml:"spin"` // Radians per tick around the view axis
}

// StreakSpec defines the warp streak pool.
type StreakSpec struct {
	PoolSpec         `yaml:",inline"`
	TailLengthFactor float64 `yaml:"tail_length_factor"`
	MaxOpacity       float64 `yaml:"max_opacity"`
}

// BackdropSpec defines the far layers: a galaxy band that turns slowly and
// large background clouds that spin in place.
type BackdropSpec struct {
	GalaxySpin float64  `yaml:"galaxy_spin"` // Radians per tick
	Color      string   `yaml:"color"`       // Hex tint of the background clouds
	Clouds     PoolSpec `yaml:"clouds"`
}

// AsteroidSpec defines the asteroid field.
type AsteroidSpec struct {
	Count        int     `yaml:"count"`
	FirstDepth   float64 `yaml:"first_depth"`
	Stagger      float64 `yaml:"stagger"` // Spacing between consecutive asteroids
	Jitter       float64 `yaml:"jitter"`  // Extra random spacing added on recycle
	ExtentX      float64 `yaml:"extent_x"`
	ExtentY      float64 `yaml:"extent_y"`
	ForwardBound float64 `yaml:"forward_bound"`
	SpeedScale   float64 `yaml:"speed_scale"`
	ScaleMin     float64 `yaml:"scale_min"`
	ScaleMax     float64 `yaml:"scale_max"`
	SpinX        float64 `yaml:"spin_x"`
	SpinY        float64 `yaml:"spin_y"`
}

// EffectsConfig defines the secondary effects derived from the warp ratio.
type EffectsConfig struct {
	GlowBase       float64 `yaml:"glow_base"`
	GlowRange      float64 `yaml:"glow_range"`
	ShakeThreshold float64 `yaml:"shake_threshold"`
	BigShake       float64 `yaml:"big_shake"`
	SmallShake     float64 `yaml:"small_shake"`
	RollFreq       float64 `yaml:"roll_freq"` // Radians per millisecond
	SwayFreq       float64 `yaml:"sway_freq"` // Radians per millisecond
	SwayScale      float64 `yaml:"sway_scale"`
}

// CameraConfig defines the viewer used by the rendering backends.
type CameraConfig struct {
	FOV    float64 `yaml:"fov"` // Vertical field of view in degrees
	Near   float64 `yaml:"near"`
	Far    float64 `yaml:"far"`
	Height float64 `yaml:"height"`
	Back   float64 `yaml:"back"`
}

// ScenePreset names a registered scene variant.
type ScenePreset string

const (
	PresetWarp   ScenePreset = "warp"
	PresetNebula ScenePreset = "nebula"
	PresetBelt   ScenePreset = "belt"
)

// Presets lists every known scene preset in display order.
func Presets() []ScenePreset {
	return []ScenePreset{PresetWarp, PresetNebula, PresetBelt}
}

// Title returns the human-readable name of a preset.
func (p ScenePreset) Title() string {
	switch p {
	case PresetWarp:
		return "Warp Run"
	case PresetNebula:
		return "Nebula Drift"
	case PresetBelt:
		return "Asteroid Belt"
	default:
		return string(p)
	}
}
