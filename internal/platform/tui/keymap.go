package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-warp/internal/core"
)

// FlightKeyMap defines the key bindings used during a flight.
// Terminals do not report key releases, so warp on the keyboard is a toggle;
// holding the left mouse button engages warp until release.
type FlightKeyMap struct {
	Warp       key.Binding
	Pause      key.Binding
	Screenshot key.Binding
	Back       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k FlightKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Warp, k.Pause, k.Screenshot, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k FlightKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Warp, k.Pause},
		{k.Screenshot, k.Back, k.Quit},
	}
}

// DefaultFlightKeyMap returns default key bindings.
func DefaultFlightKeyMap() FlightKeyMap {
	return FlightKeyMap{
		Warp: key.NewBinding(
			key.WithKeys(" ", "w", "up"),
			key.WithHelp("space/w", "warp"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "menu"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// KeyMapper translates Bubble Tea input messages to flight actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	keys FlightKeyMap
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{keys: DefaultFlightKeyMap()}
}

// Keys returns the flight key bindings, for help rendering.
func (km *KeyMapper) Keys() FlightKeyMap {
	return km.keys
}

// MapKey translates a key message to a flight action.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, km.keys.Quit):
		return core.ActionQuit
	case key.Matches(msg, km.keys.Warp):
		return core.ActionToggleWarp
	case key.Matches(msg, km.keys.Pause):
		return core.ActionPause
	case key.Matches(msg, km.keys.Back):
		return core.ActionBack
	}
	return core.ActionNone
}

// MapMouse translates a mouse message to a flight action:
// left button press engages warp, any release drops back to cruise.
func (km *KeyMapper) MapMouse(msg tea.MouseMsg) core.Action {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			return core.ActionEngage
		}
	case tea.MouseActionRelease:
		return core.ActionRelease
	}
	return core.ActionNone
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionFlightLog
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab", "l":
		return MenuActionFlightLog
	}

	return MenuActionNone
}
