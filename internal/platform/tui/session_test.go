package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-warp/internal/config"
	_ "github.com/vovakirdan/tui-warp/internal/scenes/warp"
)

func containsLine(view, want string) bool {
	return strings.Contains(view, want)
}

func sessionUpdate(t *testing.T, m *SessionModel, msg tea.Msg) tea.Cmd {
	t.Helper()
	next, cmd := m.Update(msg)
	if next != m {
		t.Fatalf("Update returned a different model %T", next)
	}
	return cmd
}

func newTestSession() *SessionModel {
	return NewSessionModel(nil, config.DefaultWarpConfig(), testConfig(), "tester", asciiRenderer())
}

func TestMenuListsScenes(t *testing.T) {
	m := NewMenuModel(nil, testConfig(), asciiRenderer())
	view := m.View()

	for _, p := range config.Presets() {
		if !strings.Contains(view, p.Title()) {
			t.Errorf("menu should list %q", p.Title())
		}
	}
}

func TestSessionMenuToFlightAndBack(t *testing.T) {
	m := newTestSession()

	cmd := sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.InFlight() {
		t.Fatal("enter should start a flight")
	}
	if cmd == nil {
		t.Error("starting a flight should schedule a tick")
	}

	flight := *m.flight
	sessionUpdate(t, m, tick(flight))
	sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.InFlight() {
		t.Fatal("esc should return to the menu")
	}
	if m.quitting {
		t.Error("back should not end the session")
	}

	// A tick left over from the flight must not disturb the menu
	sessionUpdate(t, m, tick(flight))
	if m.mode != modeMenu {
		t.Errorf("mode = %v, want menu", m.mode)
	}
}

func TestSessionIgnoresTicksFromEarlierFlight(t *testing.T) {
	m := newTestSession()

	sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	first := *m.flight
	sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.InFlight() {
		t.Fatal("enter should start a second flight")
	}
	second := *m.flight
	if first.id == second.id {
		t.Fatal("each flight needs its own tick stamp")
	}

	// The first flight's pending tick must not start a second tick chain.
	if cmd := sessionUpdate(t, m, tick(first)); cmd != nil {
		t.Error("stale tick re-armed the tick loop")
	}
	if m.flight.State().Ticks != 0 {
		t.Errorf("stale tick advanced the flight to %d ticks", m.flight.State().Ticks)
	}

	if cmd := sessionUpdate(t, m, tick(second)); cmd == nil {
		t.Error("the flight's own tick should schedule the next one")
	}
	if m.flight.State().Ticks != 1 {
		t.Errorf("ticks = %d, want 1", m.flight.State().Ticks)
	}
}

func TestSessionFlightLog(t *testing.T) {
	m := newTestSession()

	sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.mode != modeFlightLog {
		t.Fatalf("tab should open the flight log, mode = %v", m.mode)
	}
	if !strings.Contains(m.View(), "FLIGHT LOG") {
		t.Error("flight log view should have a title")
	}

	cmd := sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.mode != modeMenu {
		t.Errorf("esc should return to the menu, mode = %v", m.mode)
	}
	if cmd != nil {
		t.Error("leaving the flight log should not quit the session")
	}
}

func TestSessionQuit(t *testing.T) {
	m := newTestSession()

	cmd := sessionUpdate(t, m, runeKey('q'))
	if !m.quitting || cmd == nil {
		t.Error("q should quit the session")
	}
	if m.View() != "" {
		t.Error("quitting session should render nothing")
	}
}

func TestSessionStartFlightDirect(t *testing.T) {
	m := newTestSession()

	if err := m.startFlight("nebula"); err != nil {
		t.Fatalf("startFlight() error: %v", err)
	}
	if !m.InFlight() {
		t.Error("session should be in flight")
	}
	if err := m.startFlight("missing"); err == nil {
		t.Error("unknown scene should fail")
	}
}

func TestFilterQuit(t *testing.T) {
	if filterQuit(nil) != nil {
		t.Error("nil command should stay nil")
	}
	if msg := filterQuit(tea.Quit)(); msg != nil {
		t.Errorf("quit should be dropped, got %T", msg)
	}
}
