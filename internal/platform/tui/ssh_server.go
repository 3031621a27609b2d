package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/tui-warp/internal/config"
	"github.com/vovakirdan/tui-warp/internal/core"
	"github.com/vovakirdan/tui-warp/internal/registry"
	"github.com/vovakirdan/tui-warp/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.warp/host_key.
	HostKeyPath string

	// DBPath is the path to the flight log database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// TickRate is the simulation rate for every session.
	TickRate int

	// Warp is the base configuration scenes are created from.
	Warp config.WarpConfig

	// Logger receives session events. Nil uses a stderr logger.
	Logger *log.Logger
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.warp/flights.db",
		IdleTimeout: 30 * time.Minute,
		TickRate:    60,
		Warp:        config.DefaultWarpConfig(),
	}
}

// SSHServer wraps a Wish SSH server that serves flights to remote terminals.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "warp-ssh",
		})
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	// Flights are still served without a log
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open flight log", "error", err)
		store = nil
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("tui: cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".warp", "host_key")
	}

	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("tui: cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("tui: cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
// "ssh host <scene>" flies that scene directly; otherwise the menu is shown.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sess.User())
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
		Seed:     time.Now().UnixNano(),
	}

	model := NewSessionModel(s.store, s.config.Warp, cfg, sess.User(), bubbletea.MakeRenderer(sess))
	if args := sess.Command(); len(args) > 0 && registry.Exists(args[0]) {
		if err := model.startFlight(args[0]); err != nil {
			s.logger.Warn("could not start scene", "scene", args[0], "error", err)
		}
	}

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		start := time.Now()
		s.logger.Info("session started",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
		)
		next(sess)
		s.logger.Info("session ended",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
			"duration", time.Since(start).Round(time.Second),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.store != nil {
		s.store.Close()
	}

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

type sessionMode int

const (
	modeMenu sessionMode = iota
	modeFlight
	modeFlightLog
)

// SessionModel manages a full session: menu -> flight -> menu, with the
// flight log one key away. Every session owns its own scene and world.
type SessionModel struct {
	store    *storage.Store
	warp     config.WarpConfig
	config   core.RuntimeConfig
	username string
	renderer *lipgloss.Renderer
	mode     sessionMode
	menu     MenuModel
	flight   *Model
	log      FlightLogModel
	quitting bool
}

// NewSessionModel creates a new session model. r may be nil for the local terminal.
func NewSessionModel(store *storage.Store, warp config.WarpConfig, cfg core.RuntimeConfig, username string, r *lipgloss.Renderer) *SessionModel {
	return &SessionModel{
		store:    store,
		warp:     warp,
		config:   cfg,
		username: username,
		renderer: r,
		menu:     NewMenuModel(store, cfg, r),
	}
}

// Init initializes the session.
func (m *SessionModel) Init() tea.Cmd {
	if m.mode == modeFlight && m.flight != nil {
		return m.flight.Init()
	}
	return m.menu.Init()
}

// Update handles messages for the session.
func (m *SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.mode {
	case modeFlight:
		return m.updateFlight(msg)
	case modeFlightLog:
		return m.updateFlightLog(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m *SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.WantsFlightLog():
		m.log = NewFlightLogModel(m.store, m.config.ScreenW, m.config.ScreenH, m.renderer)
		m.mode = modeFlightLog
		return m, nil

	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.Selected() != nil:
		if err := m.startFlight(m.menu.Selected().SceneID); err != nil {
			log.Warn("could not start scene", "scene", m.menu.Selected().SceneID, "error", err)
			m.resetMenu()
			return m, nil
		}
		return m, m.flight.Init()
	}

	// Menu quits itself when a choice is made; the session keeps running.
	return m, filterQuit(cmd)
}

func (m *SessionModel) updateFlight(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.flight.Update(msg)
	if fm, ok := newModel.(Model); ok {
		m.flight = &fm
	}

	if m.flight.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.flight.BackToMenu() {
		m.flight = nil
		m.resetMenu()
		return m, m.menu.Init()
	}

	return m, cmd
}

func (m *SessionModel) updateFlightLog(msg tea.Msg) (tea.Model, tea.Cmd) {
	newLog, cmd := m.log.Update(msg)
	if lm, ok := newLog.(FlightLogModel); ok {
		m.log = lm
	}

	if m.log.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.log.IsGoingBack() {
		m.resetMenu()
		return m, nil
	}

	return m, cmd
}

// startFlight creates the scene and switches the session to flight mode.
func (m *SessionModel) startFlight(sceneID string) error {
	scene, err := registry.Create(sceneID, m.warp)
	if err != nil {
		return err
	}

	cfg := m.config
	cfg.Seed = time.Now().UnixNano()
	flight, err := NewModel(scene, m.store, cfg, m.username, m.renderer)
	if err != nil {
		return err
	}

	m.flight = &flight
	m.mode = modeFlight
	return nil
}

func (m *SessionModel) resetMenu() {
	m.menu = NewMenuModel(m.store, m.config, m.renderer)
	m.mode = modeMenu
}

// filterQuit drops a tea.Quit command so a sub-screen cannot end the session.
func filterQuit(cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	return func() tea.Msg {
		msg := cmd()
		if _, ok := msg.(tea.QuitMsg); ok {
			return nil
		}
		return msg
	}
}

// View renders the current screen.
func (m *SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.mode {
	case modeFlight:
		if m.flight != nil {
			return m.flight.View()
		}
	case modeFlightLog:
		return m.log.View()
	}

	return m.menu.View()
}

// InFlight reports whether the session is currently flying a scene.
func (m *SessionModel) InFlight() bool {
	return m.mode == modeFlight && m.flight != nil
}
