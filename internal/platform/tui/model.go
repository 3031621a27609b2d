package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-warp/internal/core"
	"github.com/vovakirdan/tui-warp/internal/registry"
	"github.com/vovakirdan/tui-warp/internal/storage"
)

// Model is the Bubble Tea model for one flight.
type Model struct {
	id         uint64 // Stamps this flight's ticks
	scene      registry.Scene
	screen     *core.Screen
	renderer   *ScreenRenderer
	hud        *HUD
	help       help.Model
	keyMapper  *KeyMapper
	store      *storage.Store
	config     core.RuntimeConfig
	session    string
	inputFrame core.InputFrame
	state      core.FlightState
	started    time.Time
	quitting   bool
	backToMenu bool
	quitOnBack bool  // Standalone flights exit the program on back
	saved      *bool // Shared across value copies so a flight is logged once
}

// NewModel resets the scene and creates a flight model for it.
// session names the pilot in the flight log ("local" or the SSH user).
// r may be nil for the local terminal.
func NewModel(scene registry.Scene, store *storage.Store, cfg core.RuntimeConfig, session string, r *lipgloss.Renderer) (Model, error) {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	sr := NewScreenRenderer(r)
	hud := NewHUD(sr.Renderer(), scene.Title(), cfg.ScreenW)
	scene.Attach(nil, hud)
	if err := scene.Reset(cfg); err != nil {
		return Model{}, fmt.Errorf("tui: %s: %w", scene.ID(), err)
	}

	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		id:         nextFlightID(),
		scene:      scene,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH-hudHeight),
		renderer:   sr,
		hud:        hud,
		help:       h,
		keyMapper:  NewKeyMapper(),
		store:      store,
		config:     cfg,
		session:    session,
		inputFrame: core.NewInputFrame(),
		started:    time.Now(),
		saved:      new(bool),
	}, nil
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate, m.id)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if a := m.keyMapper.MapMouse(msg); a != core.ActionNone {
			m.inputFrame.Set(a)
		}
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.Flight != m.id {
			return m, nil
		}
		return m.handleTick(msg.Time)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keyMapper.Keys().Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	switch a := m.keyMapper.MapKey(msg); a {
	case core.ActionQuit:
		m.quitting = true
		m.saveFlight()
		return m, tea.Quit
	case core.ActionBack:
		m.backToMenu = true
		m.saveFlight()
		if m.quitOnBack {
			return m, tea.Quit
		}
		return m, nil
	case core.ActionNone:
	default:
		m.inputFrame.Set(a)
	}

	return m, nil
}

// handleResize resizes the screen buffer only; the flight keeps its state.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height-hudHeight)
	m.hud.SetWidth(msg.Width)
	m.help.Width = msg.Width
	return m, nil
}

// handleTick advances the scene to the tick's wall-clock time.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}

	result := m.scene.Step(m.inputFrame, now)
	m.state = result.State

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate, m.id)
}

// saveFlight logs the flight once. Flights that never ticked are not logged.
func (m Model) saveFlight() {
	if *m.saved || m.store == nil || m.state.Ticks == 0 {
		return
	}
	*m.saved = true

	f := &storage.Flight{
		SceneID:   m.scene.ID(),
		Session:   m.session,
		Seed:      m.config.Seed,
		Duration:  time.Since(m.started),
		Distance:  m.state.Distance,
		PeakSpeed: m.state.PeakSpeed,
		Warps:     m.state.Warps,
	}
	if _, err := m.store.SaveFlight(f); err != nil {
		log.Warn("could not log flight", "scene", f.SceneID, "error", err)
		return
	}
	log.Debug("flight logged", "id", f.FlightID, "scene", f.SceneID, "distance", f.Distance)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.scene.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".warp", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Warn("could not create screenshot directory", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.scene.ID(), timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		log.Warn("could not save screenshot", "error", err)
		return
	}
	log.Debug("screenshot saved", "path", path)
}

// View renders the scene, the HUD and the key help.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.scene.Render(m.screen)
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderer.Render(m.screen),
		m.hud.View(m.state),
		m.help.View(m.keyMapper.Keys()),
	)
}

// State returns the latest flight state.
func (m Model) State() core.FlightState {
	return m.state
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the scene menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run flies a scene in the local terminal until the user quits or goes back.
// It reports whether the user asked for the menu.
func Run(scene registry.Scene, store *storage.Store, cfg core.RuntimeConfig) (backToMenu bool, err error) {
	model, err := NewModel(scene, store, cfg, "local", nil)
	if err != nil {
		return false, err
	}
	model.quitOnBack = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Mouse press and release drive warp
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	if fm, ok := final.(Model); ok {
		return fm.BackToMenu(), nil
	}
	return false, nil
}
