package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/warp.yaml
var defaultWarpYAML []byte

// DefaultWarpConfig returns the hard-coded warp configuration.
// It mirrors defaults/warp.yaml and is the fallback when the embedded
// YAML cannot be parsed.
func DefaultWarpConfig() WarpConfig {
	return WarpConfig{
		Speed: SpeedConfig{
			Cruise:       0.1,
			Warp:         30,
			Easing:       0.04,
			HotThreshold: 5,
			ReadoutScale: 10,
		},
		Nebula: NebulaConfig{
			Palette: []string{"#0000ff", "#800080", "#ff00ff", "#ff4500", "#00ffff"},
			Cycle:   20 * time.Second,
		},
		StarPalette: PaletteConfig{
			Colors:        []string{"#aaccff", "#ffffff", "#ffddbb"},
			BrightnessMin: 1,
			BrightnessMax: 2,
		},
		Stars: PoolSpec{
			Capacity:     10000,
			ExtentX:      1000,
			ExtentY:      1000,
			SpawnFar:     -2000,
			SpawnNear:    200,
			Stagger:      true,
			ForwardBound: 200,
			RearMin:      -2000,
			RearMax:      -2000,
			SpeedScale:   1,
		},
		Dust: PoolSpec{
			Capacity:     2000,
			ExtentX:      200,
			ExtentY:      200,
			SpawnFar:     -200,
			SpawnNear:    200,
			ForwardBound: 200,
			RearMin:      -200,
			RearMax:      -200,
			SpeedScale:   1.5,
		},
		Clouds: PoolSpec{
			Capacity:     15,
			ExtentX:      75,
			ExtentY:      40,
			SpawnFar:     -700,
			SpawnNear:    -100,
			ForwardBound: 50,
			RearMin:      -500,
			RearMax:      -500,
			SpeedScale:   0.8,
			Spin:         0.002,
		},
		Streaks: StreakSpec{
			PoolSpec: PoolSpec{
				Capacity:     5000,
				ExtentX:      400,
				ExtentY:      400,
				SpawnFar:     -1000,
				SpawnNear:    200,
				ForwardBound: 200,
				RearMin:      -2500,
				RearMax:      -1500,
				SpeedScale:   2,
			},
			TailLengthFactor: 2,
			MaxOpacity:       0.8,
		},
		Asteroids: AsteroidSpec{
			Count:        5,
			FirstDepth:   -200,
			Stagger:      200,
			Jitter:       100,
			ExtentX:      40,
			ExtentY:      20,
			ForwardBound: 100,
			SpeedScale:   0.5,
			ScaleMin:     0.8,
			ScaleMax:     1.8,
			SpinX:        0.005,
			SpinY:        0.01,
		},
		Backdrop: BackdropSpec{
			GalaxySpin: 0.0001,
			Color:      "#cc6633",
			Clouds: PoolSpec{
				Capacity:     20,
				ExtentX:      1500,
				ExtentY:      500,
				SpawnFar:     -1750,
				SpawnNear:    -250,
				ForwardBound: 0,
				RearMin:      -1750,
				RearMax:      -1750,
				Spin:         0.0001,
			},
		},
		Effects: EffectsConfig{
			GlowBase:       5,
			GlowRange:      30,
			ShakeThreshold: 0.164,
			BigShake:       0.15,
			SmallShake:     0.01,
			RollFreq:       0.005,
			SwayFreq:       0.01,
			SwayScale:      0.3,
		},
		Camera: CameraConfig{
			FOV:    75,
			Near:   0.1,
			Far:    4000,
			Height: 2,
			Back:   5,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultWarpYAML
}
