package core

// RuntimeConfig contains configuration passed to scenes at initialization.
// Scenes use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic placement and recycling
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// FlightState is the observable state of a running flight.
// Returned by Scene.State() to communicate status to the platform.
type FlightState struct {
	Ticks     uint64  // Simulation ticks advanced (pauses excluded)
	Speed     float64 // Current eased speed
	PeakSpeed float64 // Highest speed reached
	Distance  float64 // Accumulated distance in readout units
	Warps     int     // Number of times warp was engaged
	Paused    bool
}

// StepResult is returned by Scene.Step() after each simulation tick.
type StepResult struct {
	State FlightState
}
