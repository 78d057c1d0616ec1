package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/starsurge/internal/core"
)

// defaultHoldTicks is how long a direction stays held after its last key
// event. Terminals report repeats, not releases, so movement decays instead.
const defaultHoldTicks = 8

// GameKeyMap holds the in-game bindings.
type GameKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Shield   key.Binding
	IonPulse key.Binding
	Radar    key.Binding
	Pause    key.Binding
	Restart  key.Binding
	Confirm  key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Shield, k.IonPulse, k.Radar, k.Pause, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Shield, k.IonPulse, k.Radar},
		{k.Pause, k.Restart, k.Confirm, k.Back, k.Quit},
	}
}

// DefaultGameKeyMap returns the default in-game bindings.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "w"), key.WithHelp("up/w", "move up")),
		Down:     key.NewBinding(key.WithKeys("down", "s"), key.WithHelp("down/s", "move down")),
		Left:     key.NewBinding(key.WithKeys("left", "a"), key.WithHelp("left/a", "move left")),
		Right:    key.NewBinding(key.WithKeys("right", "d"), key.WithHelp("right/d", "move right")),
		Shield:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "shield")),
		IonPulse: key.NewBinding(key.WithKeys("q", " "), key.WithHelp("q/space", "ion pulse")),
		Radar:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "radar")),
		Pause:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause")),
		Restart:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new run")),
		Confirm:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "continue")),
		Back:     key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back/pause")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

type direction int

const (
	dirUp direction = iota
	dirDown
	dirLeft
	dirRight
	dirCount
)

// KeyMapper translates Bubble Tea key messages to game actions and keeps
// a decaying movement latch per direction.
type KeyMapper struct {
	keys      GameKeyMap
	holdTicks int
	held      [dirCount]int // remaining ticks per direction
}

// NewKeyMapper creates a key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{keys: DefaultGameKeyMap(), holdTicks: defaultHoldTicks}
}

// Keys returns the bindings, for help views.
func (km *KeyMapper) Keys() GameKeyMap {
	return km.keys
}

// MapKey translates a key message to a discrete action. Movement keys latch
// their direction and return ActionNone. isQuit reports a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	k := km.keys
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit, true
	case key.Matches(msg, k.Up):
		km.hold(dirUp, dirDown)
	case key.Matches(msg, k.Down):
		km.hold(dirDown, dirUp)
	case key.Matches(msg, k.Left):
		km.hold(dirLeft, dirRight)
	case key.Matches(msg, k.Right):
		km.hold(dirRight, dirLeft)
	case key.Matches(msg, k.Shield):
		return core.ActionShield, false
	case key.Matches(msg, k.IonPulse):
		return core.ActionIonPulse, false
	case key.Matches(msg, k.Radar):
		return core.ActionRadar, false
	case key.Matches(msg, k.Pause):
		return core.ActionPause, false
	case key.Matches(msg, k.Restart):
		return core.ActionRestart, false
	case key.Matches(msg, k.Confirm):
		return core.ActionConfirm, false
	case key.Matches(msg, k.Back):
		return core.ActionBack, false
	}
	return core.ActionNone, false
}

// hold latches d and drops the opposite direction.
func (km *KeyMapper) hold(d, opposite direction) {
	km.held[d] = km.holdTicks
	km.held[opposite] = 0
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone && action != core.ActionQuit {
		frame.Set(action)
	}
	return isQuit
}

// ApplyMovement writes the latched movement vector into frame and ages the
// latch by one tick.
func (km *KeyMapper) ApplyMovement(frame *core.InputFrame) {
	var x, y float64
	if km.held[dirLeft] > 0 {
		x--
	}
	if km.held[dirRight] > 0 {
		x++
	}
	if km.held[dirUp] > 0 {
		y--
	}
	if km.held[dirDown] > 0 {
		y++
	}
	frame.SetMove(x, y)

	for i := range km.held {
		if km.held[i] > 0 {
			km.held[i]--
		}
	}
}

// ReleaseAll clears the movement latch.
func (km *KeyMapper) ReleaseAll() {
	km.held = [dirCount]int{}
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
	MenuActionScoreboard
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k":
		return MenuActionUp
	case "s", "down", "j":
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}
	return MenuActionNone
}
