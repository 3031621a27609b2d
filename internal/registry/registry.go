// Package registry provides a global registry for scene factories.
// Scenes register themselves in init() functions, allowing the platform
// to discover and instantiate scenes without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/vovakirdan/tui-warp/internal/config"
	"github.com/vovakirdan/tui-warp/internal/core"
	"github.com/vovakirdan/tui-warp/internal/starfield"
)

// Scene is the interface every flight scene implements.
// Scenes own their simulation and draw into a terminal screen buffer; the
// platform handles input mapping, timing and presentation.
type Scene interface {
	// ID returns a unique identifier for this scene (e.g., "warp", "belt").
	// Used for CLI commands and the flight log.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset builds a fresh flight. The RuntimeConfig provides screen
	// dimensions, tick rate and seed. Configuration errors are returned.
	Reset(cfg core.RuntimeConfig) error

	// Step applies the input collected since the last tick and advances the
	// simulation to wall-clock time now.
	Step(in core.InputFrame, now time.Time) core.StepResult

	// Render draws the latest frame into the provided screen buffer.
	Render(dst *core.Screen)

	// State returns the current flight state.
	State() core.FlightState

	// Attach connects an extra rendering backend and the speed sink.
	// Either may be nil.
	Attach(backend starfield.Backend, sink starfield.SpeedSink)
}

// SceneInfo contains metadata about a registered scene.
type SceneInfo struct {
	ID    string
	Title string
}

// Factory creates a new scene instance from a loaded configuration.
type Factory func(cfg config.WarpConfig) Scene

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a scene factory to the registry.
// Typically called from a scene package's init() function.
// Panics if a scene with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: scene %q already registered", id))
	}

	factories[id] = f

	// Get title by creating a temporary instance
	titles[id] = f(config.DefaultWarpConfig()).Title()
}

// List returns information about all registered scenes, sorted by ID.
func List() []SceneInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]SceneInfo, 0, len(factories))
	for id := range factories {
		result = append(result, SceneInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new scene by its ID.
// Returns an error if the scene ID is not registered.
func Create(id string, cfg config.WarpConfig) (Scene, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown scene %q", id)
	}

	return f(cfg), nil
}

// Exists checks if a scene with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
