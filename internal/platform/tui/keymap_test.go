package tui

import (
	"math"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/starsurge/internal/core"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKeyActions(t *testing.T) {
	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"shield", runeKey("e"), core.ActionShield, false},
		{"ion pulse q", runeKey("q"), core.ActionIonPulse, false},
		{"ion pulse space", runeKey(" "), core.ActionIonPulse, false},
		{"radar", runeKey("r"), core.ActionRadar, false},
		{"pause", runeKey("p"), core.ActionPause, false},
		{"restart", runeKey("n"), core.ActionRestart, false},
		{"confirm", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{"back", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{"quit", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"movement", tea.KeyMsg{Type: tea.KeyUp}, core.ActionNone, false},
		{"unbound", runeKey("z"), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			km := NewKeyMapper()
			action, quit := km.MapKey(tt.msg)
			if action != tt.action || quit != tt.quit {
				t.Errorf("MapKey(%q) = %v, %v; want %v, %v", tt.msg.String(), action, quit, tt.action, tt.quit)
			}
		})
	}
}

func TestMovementLatchDecays(t *testing.T) {
	km := NewKeyMapper()
	km.MapKey(runeKey("d"))

	frame := core.NewInputFrame()
	for i := range defaultHoldTicks {
		km.ApplyMovement(&frame)
		if frame.MoveX != 1 || frame.MoveY != 0 {
			t.Fatalf("tick %d: move = (%v, %v), want (1, 0)", i, frame.MoveX, frame.MoveY)
		}
	}
	km.ApplyMovement(&frame)
	if frame.MoveX != 0 {
		t.Errorf("move after the hold window = %v, want 0", frame.MoveX)
	}
}

func TestMovementDiagonalIsUnitLength(t *testing.T) {
	km := NewKeyMapper()
	km.MapKey(tea.KeyMsg{Type: tea.KeyUp})
	km.MapKey(tea.KeyMsg{Type: tea.KeyRight})

	frame := core.NewInputFrame()
	km.ApplyMovement(&frame)
	if l := math.Hypot(frame.MoveX, frame.MoveY); math.Abs(l-1) > 1e-9 {
		t.Errorf("diagonal length = %v, want 1", l)
	}
	if frame.MoveX <= 0 || frame.MoveY >= 0 {
		t.Errorf("move = (%v, %v), want up-right", frame.MoveX, frame.MoveY)
	}
}

func TestMovementOppositeReplaces(t *testing.T) {
	km := NewKeyMapper()
	km.MapKey(runeKey("a"))
	km.MapKey(runeKey("d"))

	frame := core.NewInputFrame()
	km.ApplyMovement(&frame)
	if frame.MoveX != 1 {
		t.Errorf("MoveX = %v, want 1 after pressing right last", frame.MoveX)
	}

	km.ReleaseAll()
	km.ApplyMovement(&frame)
	if frame.MoveX != 0 || frame.MoveY != 0 {
		t.Errorf("move after ReleaseAll = (%v, %v)", frame.MoveX, frame.MoveY)
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runeKey("j"), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{runeKey("q"), MenuActionQuit},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{runeKey("x"), MenuActionNone},
	}
	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", tt.msg.String(), got, tt.want)
		}
	}
}
