package config

import (
	"fmt"
	"time"
)

// ApplyPreset modifies the config for a scene preset.
func ApplyPreset(cfg *WarpConfig, preset ScenePreset) error {
	switch preset {
	case PresetWarp:
		// The base configuration is the warp run.
	case PresetNebula:
		cfg.Clouds.Capacity = 40
		cfg.Clouds.ExtentX = 120
		cfg.Clouds.ExtentY = 60
		cfg.Nebula.Cycle = 8 * time.Second
		cfg.Stars.Capacity = cfg.Stars.Capacity / 2
		cfg.Speed.Warp = 12
		cfg.Speed.HotThreshold = 3
	case PresetBelt:
		cfg.Asteroids.Count = 14
		cfg.Asteroids.Stagger = 90
		cfg.Asteroids.Jitter = 60
		cfg.Asteroids.ExtentX = 70
		cfg.Asteroids.ExtentY = 35
		cfg.Asteroids.SpeedScale = 0.8
		cfg.Streaks.MaxOpacity = 0.5
	default:
		return fmt.Errorf("config: %w %q", ErrUnknownPreset, preset)
	}
	return nil
}
