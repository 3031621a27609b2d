package config

import (
	"errors"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Configuration errors. A flight cannot start with any of these.
var (
	ErrPaletteTooSmall     = errors.New("palette needs at least two colors")
	ErrNonPositiveDuration = errors.New("cycle duration must be at least one millisecond")
	ErrInvalidEasing       = errors.New("easing must be in (0, 1)")
	ErrInvalidSpeeds       = errors.New("warp speed must exceed cruise speed")
	ErrInvalidBounds       = errors.New("forward bound must lie ahead of the rear range")
	ErrUnknownPreset       = errors.New("unknown scene preset")
)

// Validate checks the invariants a flight depends on.
// Zero-capacity pools are allowed; they simply stay empty.
func Validate(cfg WarpConfig) error {
	if cfg.Speed.Easing <= 0 || cfg.Speed.Easing >= 1 {
		return fmt.Errorf("config: speed: %w (got %v)", ErrInvalidEasing, cfg.Speed.Easing)
	}
	if cfg.Speed.Warp <= cfg.Speed.Cruise {
		return fmt.Errorf("config: speed: %w (cruise %v, warp %v)", ErrInvalidSpeeds, cfg.Speed.Cruise, cfg.Speed.Warp)
	}

	if _, err := ParsePalette(cfg.Nebula.Palette); err != nil {
		return fmt.Errorf("config: nebula palette: %w", err)
	}
	if cfg.Nebula.Cycle.Milliseconds() <= 0 {
		return fmt.Errorf("config: nebula cycle: %w (got %v)", ErrNonPositiveDuration, cfg.Nebula.Cycle)
	}

	if len(cfg.StarPalette.Colors) > 0 {
		if _, err := parseColors(cfg.StarPalette.Colors); err != nil {
			return fmt.Errorf("config: star palette: %w", err)
		}
	}

	pools := []struct {
		name string
		spec PoolSpec
	}{
		{"stars", cfg.Stars},
		{"dust", cfg.Dust},
		{"clouds", cfg.Clouds},
		{"streaks", cfg.Streaks.PoolSpec},
		{"backdrop clouds", cfg.Backdrop.Clouds},
	}
	for _, p := range pools {
		if err := validatePool(p.spec); err != nil {
			return fmt.Errorf("config: %s: %w", p.name, err)
		}
	}

	if cfg.Backdrop.Color != "" {
		if _, err := colorful.Hex(cfg.Backdrop.Color); err != nil {
			return fmt.Errorf("config: backdrop color %q: %w", cfg.Backdrop.Color, err)
		}
	}

	if err := validateAsteroids(cfg.Asteroids); err != nil {
		return fmt.Errorf("config: asteroids: %w", err)
	}

	return nil
}

func validatePool(spec PoolSpec) error {
	if spec.Capacity <= 0 {
		return nil
	}
	if spec.RearMin > spec.RearMax {
		return fmt.Errorf("%w: rear_min %v > rear_max %v", ErrInvalidBounds, spec.RearMin, spec.RearMax)
	}
	if spec.ForwardBound <= spec.RearMax {
		return fmt.Errorf("%w: forward_bound %v <= rear_max %v", ErrInvalidBounds, spec.ForwardBound, spec.RearMax)
	}
	return nil
}

// validateAsteroids keeps every recycle strictly behind the previous rear
// bound: the step back is stagger plus a non-negative jitter.
func validateAsteroids(a AsteroidSpec) error {
	if a.Count <= 0 {
		return nil
	}
	if a.ForwardBound <= a.FirstDepth {
		return fmt.Errorf("%w: forward_bound %v <= first_depth %v", ErrInvalidBounds, a.ForwardBound, a.FirstDepth)
	}
	if a.Stagger <= 0 {
		return fmt.Errorf("%w: stagger %v must be positive", ErrInvalidBounds, a.Stagger)
	}
	if a.Jitter < 0 {
		return fmt.Errorf("%w: jitter %v must not be negative", ErrInvalidBounds, a.Jitter)
	}
	return nil
}

// ParsePalette parses a color cycle palette. It must hold at least two colors.
func ParsePalette(hex []string) ([]colorful.Color, error) {
	if len(hex) < 2 {
		return nil, fmt.Errorf("%w (got %d)", ErrPaletteTooSmall, len(hex))
	}
	return parseColors(hex)
}

// ParseStarPalette parses the star tint palette. An empty palette is allowed
// and leaves stars white.
func ParseStarPalette(p PaletteConfig) ([]colorful.Color, error) {
	return parseColors(p.Colors)
}

func parseColors(hex []string) ([]colorful.Color, error) {
	colors := make([]colorful.Color, 0, len(hex))
	for _, h := range hex {
		c, err := colorful.Hex(h)
		if err != nil {
			return nil, fmt.Errorf("invalid color %q: %w", h, err)
		}
		colors = append(colors, c)
	}
	return colors, nil
}
