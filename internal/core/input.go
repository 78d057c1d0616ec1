package core

import "math"

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone     Action = iota
	ActionShield          // E - activate shield
	ActionIonPulse        // Q/Space - fire ion pulse
	ActionRadar           // R - activate radar
	ActionConfirm         // Enter - confirm selection in menu
	ActionBack            // B, Escape - go back to menu
	ActionRestart         // N - restart game after game over
	ActionQuit            // Ctrl+C - exit game/session
	ActionPause           // P - pause/unpause game
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionShield:
		return "Shield"
	case ActionIonPulse:
		return "IonPulse"
	case ActionRadar:
		return "Radar"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input state for one simulation tick: a movement
// vector plus the discrete actions triggered during the frame.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool

	// MoveX and MoveY form the movement vector. Length is clamped to 1.
	MoveX, MoveY float64
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// SetMove stores the movement vector, scaling it down to unit length when longer.
func (f *InputFrame) SetMove(x, y float64) {
	if l := math.Hypot(x, y); l > 1 {
		x /= l
		y /= l
	}
	f.MoveX = x
	f.MoveY = y
}

// Move returns the movement vector.
func (f InputFrame) Move() (float64, float64) {
	return f.MoveX, f.MoveY
}

// Clear resets all actions and the movement vector for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.MoveX = 0
	f.MoveY = 0
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	clone.MoveX = f.MoveX
	clone.MoveY = f.MoveY
	return clone
}
