package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/starsurge/internal/core"
	"github.com/vovakirdan/starsurge/internal/registry"
	"github.com/vovakirdan/starsurge/internal/storage"
)

// Model is the Bubble Tea model that runs one game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	keys       *KeyMapper
	help       help.Model
	logger     *log.Logger
	inputFrame core.InputFrame
	gameState  core.GameState
	player     string
	rank       int  // High-score rank of the last finished run, 0 if none
	embedded   bool // Hosted by a session; Back returns to its menu
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether score has been saved for current game over
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithPlayerName sets the name recorded in the high-score table.
func WithPlayerName(name string) ModelOption {
	return func(m *Model) { m.player = name }
}

// WithModelLogger sets the logger used for storage failures.
func WithModelLogger(l *log.Logger) ModelOption {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// embeddedModel marks a model hosted by a SessionModel.
func embeddedModel() ModelOption {
	return func(m *Model) { m.embedded = true }
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...ModelOption) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, playfieldHeight(cfg.ScreenH)),
		store:      store,
		config:     cfg,
		keys:       NewKeyMapper(),
		help:       help.New(),
		logger:     log.New(io.Discard),
		inputFrame: core.NewInputFrame(),
		player:     storage.DefaultName,
	}
	m.help.Width = cfg.ScreenW
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// playfieldHeight leaves the last terminal row for the help bar.
func playfieldHeight(h int) int {
	return max(1, h-1)
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionNone:
	case core.ActionBack:
		if m.gameState.GameOver || m.gameState.Paused {
			if m.embedded {
				m.backToMenu = true
				return m, nil
			}
			m.quitting = true
			return m, tea.Quit
		}
		m.inputFrame.Set(core.ActionPause)
	default:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleResize keeps the run going; the game scales to whatever screen it gets.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, playfieldHeight(msg.Height))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.scoreSaved = false
		m.rank = 0
		m.inputFrame.Clear()
		m.keys.ReleaseAll()
		return m, tickCmd(m.config.TickRate)
	}

	m.keys.ApplyMovement(&m.inputFrame)
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	// A victory can be continued into endless play; the final run is saved again.
	if !m.gameState.GameOver {
		m.scoreSaved = false
	}
	if m.gameState.GameOver && !m.scoreSaved {
		m.saveScore()
		m.scoreSaved = true
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveScore records the finished run and offers it to the high-score table.
func (m *Model) saveScore() {
	m.rank = 0
	if m.store == nil || m.gameState.Score <= 0 {
		return
	}
	id := m.game.ID()
	if _, err := m.store.SaveScore(id, m.gameState.Score, m.gameState.Level); err != nil {
		m.logger.Warn("could not save score", "game", id, "error", err)
	}
	rank, err := m.store.SubmitHighScore(id, storage.HighScore{Name: m.player, Score: m.gameState.Score})
	if err != nil {
		m.logger.Warn("could not update high scores", "game", id, "error", err)
		return
	}
	m.rank = rank
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".starsurge", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

var (
	helpBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	rankStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
)

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.screen.Clear()
	m.game.Render(m.screen)
	out := RenderScreen(m.screen)

	footer := m.help.View(m.keys.Keys())
	if m.gameState.GameOver && m.rank > 0 {
		footer = rankStyle.Render(fmt.Sprintf("New high score! Rank #%d  ", m.rank)) + footer
	}
	return out + "\n" + helpBarStyle.Render(footer)
}

// IsQuitting returns true if the user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user asked to return to the session menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Rank returns the high-score rank of the last finished run, or 0.
func (m Model) Rank() int {
	return m.rank
}

// Run starts the Bubble Tea program with the given game.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...ModelOption) error {
	model := NewModel(game, store, cfg, opts...)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
