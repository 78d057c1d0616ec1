package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/starsurge/internal/registry"
	"github.com/vovakirdan/starsurge/internal/storage"
)

const (
	minWidthForSidebar = 80  // Narrower terminals get mode tabs instead
	sidebarWidth       = 22  // Mode list width, border included
	maxRuns            = 100 // Run records loaded per mode
)

const boardDateLayout = "Jan 02 15:04"

// scoreView selects which list the scoreboard shows.
type scoreView int

const (
	viewHighScores scoreView = iota // Named top-ten table
	viewRuns                        // Every recorded run, best first
)

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardFrameStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	boardDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boardStatsStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	boardEmptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(2, 4)
	boardActive     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1)
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Next   key.Binding
	Prev   key.Binding
	Toggle key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Toggle, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Next, k.Prev}, {k.Toggle, k.Back, k.Quit}}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "scroll up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "scroll down")),
		Next:   key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next mode")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab", "prev mode")),
		Toggle: key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "table/runs")),
		Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel shows the named high-score table and the run history of
// each registered mode.
type ScoreboardModel struct {
	modes      []registry.GameInfo
	current    int
	store      *storage.Store
	view       scoreView
	highScores []storage.HighScore
	runs       []storage.ScoreEntry
	stats      *storage.GameStats
	table      table.Model
	help       help.Model
	keys       ScoreboardKeyMap
	width      int
	height     int
	quitting   bool
	goingBack  bool // Back was pressed rather than quit
}

// NewScoreboardModel creates a scoreboard sized to width x height.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		modes:  registry.List(),
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.rebuild()
	return m
}

func (m ScoreboardModel) wide() bool {
	return m.width >= minWidthForSidebar
}

// rebuild reloads the selected mode and recreates the table for the
// current size and view.
func (m *ScoreboardModel) rebuild() {
	m.highScores, m.runs, m.stats = nil, nil, nil
	if m.store != nil && len(m.modes) > 0 {
		id := m.modes[m.current].ID
		// Read failures show as empty lists.
		if list, err := m.store.HighScores(id); err == nil {
			m.highScores = list
		}
		if runs, err := m.store.TopScores(id, maxRuns); err == nil {
			m.runs = runs
		}
		if stats, err := m.store.GetGameStats(id); err == nil {
			m.stats = stats
		}
	}

	m.table = table.New(
		table.WithColumns(m.columns()),
		table.WithRows(m.rows()),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-10)),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	m.table.SetStyles(styles)
}

func (m ScoreboardModel) columns() []table.Column {
	second := table.Column{Title: "Name", Width: storage.MaxNameLength}
	if m.view == viewRuns {
		second = table.Column{Title: "Level", Width: 6}
	}
	cols := []table.Column{
		{Title: "Rank", Width: 6},
		second,
		{Title: "Score", Width: 10},
		{Title: "Date", Width: 14},
	}

	avail := m.width - 4
	if m.wide() {
		avail -= sidebarWidth + 3
	}
	if rest := avail - cols[0].Width - cols[1].Width - cols[2].Width - 8; rest > cols[3].Width {
		cols[3].Width = min(rest, 20)
	}
	return cols
}

func (m ScoreboardModel) rows() []table.Row {
	if m.view == viewRuns {
		out := make([]table.Row, len(m.runs))
		for i, r := range m.runs {
			out[i] = table.Row{"#" + strconv.Itoa(i+1), strconv.Itoa(r.Level), strconv.Itoa(r.Score), r.CreatedAt.Format(boardDateLayout)}
		}
		return out
	}
	out := make([]table.Row, len(m.highScores))
	for i, h := range m.highScores {
		out[i] = table.Row{"#" + strconv.Itoa(i+1), h.Name, strconv.Itoa(h.Score), h.Date.Local().Format(boardDateLayout)}
	}
	return out
}

func (m ScoreboardModel) rowCount() int {
	if m.view == viewRuns {
		return len(m.runs)
	}
	return len(m.highScores)
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.step(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.step(-1)
			return m, nil
		case key.Matches(msg, m.keys.Toggle):
			m.view = 1 - m.view
			m.rebuild()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.rebuild()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// step moves the mode selection by delta, wrapping around.
func (m *ScoreboardModel) step(delta int) {
	if len(m.modes) == 0 {
		return
	}
	m.current = (m.current + delta + len(m.modes)) % len(m.modes)
	m.rebuild()
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	heading := "HIGH SCORES"
	if m.view == viewRuns {
		heading = "RECENT RUNS"
	}
	if len(m.modes) > 0 {
		heading += " - " + m.modes[m.current].Title
	}

	body := boardFrameStyle.Render(m.tableView())
	if m.wide() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar(), "  ", body)
	} else {
		body = centerText(m.tabs(), m.width) + "\n\n" + centerText(body, m.width)
	}

	parts := []string{centerText(boardTitleStyle.Render(heading), m.width), "", body}
	if line := m.statsLine(); line != "" {
		parts = append(parts, boardStatsStyle.Render(line))
	}
	parts = append(parts, boardDimStyle.Render(m.help.View(m.keys)))
	return "\n" + strings.Join(parts, "\n")
}

func (m ScoreboardModel) sidebar() string {
	var b strings.Builder
	b.WriteString("Modes\n")
	b.WriteString(strings.Repeat("-", sidebarWidth-4))
	for i, g := range m.modes {
		title := truncate(g.Title, sidebarWidth-6)
		b.WriteString("\n")
		if i == m.current {
			b.WriteString(boardTitleStyle.Render("> " + title))
		} else {
			b.WriteString("  " + title)
		}
	}
	return boardFrameStyle.Width(sidebarWidth).Render(b.String())
}

// tabs lists the modes on one line, collapsing to the current one when the
// line does not fit.
func (m ScoreboardModel) tabs() string {
	if len(m.modes) == 0 {
		return ""
	}
	labels := make([]string, len(m.modes))
	for i, g := range m.modes {
		title := truncate(g.Title, 10)
		if i == m.current {
			labels[i] = boardActive.Render(title)
		} else {
			labels[i] = boardDimStyle.Render(" " + title + " ")
		}
	}
	line := strings.Join(labels, " ")
	if lipgloss.Width(line) > m.width-4 {
		return fmt.Sprintf("< %s >", m.modes[m.current].Title)
	}
	return line
}

func (m ScoreboardModel) tableView() string {
	if m.rowCount() == 0 {
		return boardEmptyStyle.Render("No scores recorded yet.\nFly a run to set a high score!")
	}
	return m.table.View()
}

// statsLine summarizes every recorded run of the selected mode.
func (m ScoreboardModel) statsLine() string {
	if m.stats == nil || m.stats.GamesCount == 0 {
		return ""
	}
	line := fmt.Sprintf("Runs %d  |  Best %d  |  Best level %d  |  Average %.0f",
		m.stats.GamesCount, m.stats.HighScore, m.stats.BestLevel, m.stats.AvgScore)
	if !m.stats.LastPlayed.IsZero() {
		line += "  |  Last " + m.stats.LastPlayed.Local().Format(boardDateLayout)
	}
	return line
}

// truncate shortens s to n runes, marking the cut with a dot.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n || n < 2 {
		return s
	}
	return string(r[:n-1]) + "."
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := finalModel.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
