package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/starsurge/internal/core"
	"github.com/vovakirdan/starsurge/internal/storage"
)

// fakeGame records the frames it is stepped with.
type fakeGame struct {
	state  core.GameState
	frames []core.InputFrame
	resets int
}

func (g *fakeGame) ID() string               { return "fake" }
func (g *fakeGame) Title() string            { return "Fake" }
func (g *fakeGame) Reset(core.RuntimeConfig) { g.resets++; g.state = core.GameState{Lives: 3, Level: 1} }
func (g *fakeGame) Render(dst *core.Screen)  { dst.DrawText(0, 0, "fake") }
func (g *fakeGame) State() core.GameState    { return g.state }
func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.frames = append(g.frames, in.Clone())
	return core.StepResult{State: g.state}
}

func (g *fakeGame) last() core.InputFrame {
	return g.frames[len(g.frames)-1]
}

func testModel(t *testing.T, g *fakeGame, store *storage.Store, opts ...ModelOption) Model {
	t.Helper()
	m := NewModel(g, store, core.RuntimeConfig{ScreenW: 40, ScreenH: 12, TickRate: 60, Seed: 1}, opts...)
	m.Init()
	return m
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return out
}

func TestModelForwardsActionsAndMovement(t *testing.T) {
	g := &fakeGame{}
	m := testModel(t, g, nil)

	m = send(t, m, runeKey("e"))
	m = send(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m = send(t, m, TickMsg{})

	in := g.last()
	if !in.Has(core.ActionShield) {
		t.Error("shield action not forwarded")
	}
	if in.MoveX != -1 {
		t.Errorf("MoveX = %v, want -1", in.MoveX)
	}

	m = send(t, m, TickMsg{})
	if g.last().Has(core.ActionShield) {
		t.Error("actions should not repeat on the next tick")
	}
	if g.last().MoveX != -1 {
		t.Error("movement should stay latched between key repeats")
	}
}

func TestModelBackPausesWhilePlaying(t *testing.T) {
	g := &fakeGame{}
	m := testModel(t, g, nil, embeddedModel())

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m = send(t, m, TickMsg{})
	if !g.last().Has(core.ActionPause) {
		t.Error("Back while playing should pause")
	}
	if m.BackToMenu() {
		t.Error("Back while playing should not leave the game")
	}

	g.state.Paused = true
	m = send(t, m, TickMsg{})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Error("Back while paused should return to the menu")
	}
}

func TestModelQuit(t *testing.T) {
	m := testModel(t, &fakeGame{}, nil)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if !m.IsQuitting() {
		t.Error("ctrl+c should quit")
	}
	if m.View() != "" {
		t.Error("a quitting model renders nothing")
	}
}

func TestModelSavesScoreOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	g := &fakeGame{}
	m := testModel(t, g, store, WithPlayerName("ace"))

	g.state = core.GameState{Score: 120, Level: 4, GameOver: true}
	m = send(t, m, TickMsg{})
	m = send(t, m, TickMsg{})

	if m.Rank() != 1 {
		t.Errorf("Rank() = %d, want 1", m.Rank())
	}
	runs, _ := store.TopScores("fake", 10)
	if len(runs) != 1 || runs[0].Level != 4 {
		t.Errorf("runs = %v, want one run at level 4", runs)
	}
	table, _ := store.HighScores("fake")
	if len(table) != 1 || table[0].Name != "ace" {
		t.Errorf("table = %v", table)
	}
	if !strings.Contains(m.View(), "Rank #1") {
		t.Error("view should announce the new high score")
	}
}

func TestModelRestartReseeds(t *testing.T) {
	g := &fakeGame{}
	m := testModel(t, g, nil)

	g.state.GameOver = true
	m = send(t, m, TickMsg{})
	m = send(t, m, runeKey("n"))
	m = send(t, m, TickMsg{})

	if g.resets != 2 {
		t.Errorf("resets = %d, want 2", g.resets)
	}
	if m.gameState.GameOver {
		t.Error("restart should clear the game over state")
	}
}
