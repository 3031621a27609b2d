package starfield

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-warp/internal/config"
)

// SpeedController eases the current speed toward a target speed.
//
// The easing constant is the fraction of the remaining gap closed in one
// reference tick. Ticks of other lengths use the equivalent exponential
// decay, so a slow terminal and a fast window converge at the same rate.
type SpeedController struct {
	current float64
	target  float64
	cruise  float64
	warp    float64
	easing  float64
	refDt   float64 // seconds
	decay   float64 // per second
}

// NewSpeedController starts at cruise speed with cruise as the target.
// refDt is the reference tick interval in seconds.
func NewSpeedController(cruise, warp, easing, refDt float64) (*SpeedController, error) {
	if easing <= 0 || easing >= 1 {
		return nil, fmt.Errorf("starfield: %w (got %v)", config.ErrInvalidEasing, easing)
	}
	if warp <= cruise {
		return nil, fmt.Errorf("starfield: %w", config.ErrInvalidSpeeds)
	}
	if refDt <= 0 {
		return nil, fmt.Errorf("starfield: reference tick must be positive (got %v)", refDt)
	}
	return &SpeedController{
		current: cruise,
		target:  cruise,
		cruise:  cruise,
		warp:    warp,
		easing:  easing,
		refDt:   refDt,
		decay:   -math.Log(1-easing) / refDt,
	}, nil
}

// SetTarget records the desired speed.
func (s *SpeedController) SetTarget(v float64) {
	s.target = v
}

// Engage sets the target to warp speed.
func (s *SpeedController) Engage() {
	s.target = s.warp
}

// Release sets the target back to cruise speed.
func (s *SpeedController) Release() {
	s.target = s.cruise
}

// Engaged reports whether the target is warp speed.
func (s *SpeedController) Engaged() bool {
	return s.target == s.warp
}

// Tick advances the eased speed by dt seconds. Non-positive dt is a no-op.
func (s *SpeedController) Tick(dt float64) {
	if dt <= 0 {
		return
	}
	alpha := 1 - math.Exp(-s.decay*dt)
	if dt == s.refDt {
		alpha = s.easing
	}
	s.step(alpha)
}

// TickFixed advances by exactly one reference tick.
func (s *SpeedController) TickFixed() {
	s.step(s.easing)
}

func (s *SpeedController) step(alpha float64) {
	gap := s.target - s.current
	next := s.current + gap*alpha
	// Rounding must never carry current past the target.
	if (s.target-next)*gap < 0 {
		next = s.target
	}
	s.current = next
}

// Current returns the eased speed.
func (s *SpeedController) Current() float64 {
	return s.current
}

// Target returns the desired speed.
func (s *SpeedController) Target() float64 {
	return s.target
}

// Cruise returns the cruise speed.
func (s *SpeedController) Cruise() float64 {
	return s.cruise
}

// Warp returns the warp speed.
func (s *SpeedController) Warp() float64 {
	return s.warp
}

// Ratio returns the warp ratio of the current speed.
func (s *SpeedController) Ratio() float64 {
	return WarpRatio(s.current, s.cruise, s.warp)
}
