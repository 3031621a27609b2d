package core

import "strings"

// Action represents a semantic flight action, abstracted from physical input.
// Mouse buttons, keys and SSH sessions all map onto these.
type Action int

const (
	ActionNone       Action = iota
	ActionEngage            // mouse press, hold key - engage warp
	ActionRelease           // mouse release - drop back to cruise
	ActionToggleWarp        // Space, W - toggle warp (terminals without key-up events)
	ActionPause             // P - pause/unpause the scheduler
	ActionBack              // B, Escape - go back to the scene menu
	ActionQuit              // Q, Ctrl+C - exit flight/session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionEngage:
		return "Engage"
	case ActionRelease:
		return "Release"
	case ActionToggleWarp:
		return "ToggleWarp"
	case ActionPause:
		return "Pause"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame is the set of actions collected between two simulation ticks.
// It is a small value type so frames can be copied and cleared without
// allocating.
type InputFrame struct {
	bits uint32
}

// NewInputFrame returns an empty frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

func (f *InputFrame) Set(a Action) {
	if a > ActionNone && a < 32 {
		f.bits |= 1 << a
	}
}

func (f InputFrame) Has(a Action) bool {
	return a > ActionNone && a < 32 && f.bits&(1<<a) != 0
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	return f.bits == 0
}

func (f *InputFrame) Clear() {
	f.bits = 0
}

// String lists the triggered actions, e.g. "[Engage Pause]".
func (f InputFrame) String() string {
	names := make([]string, 0, 4)
	for a := ActionEngage; a <= ActionQuit; a++ {
		if f.Has(a) {
			names = append(names, a.String())
		}
	}
	return "[" + strings.Join(names, " ") + "]"
}
