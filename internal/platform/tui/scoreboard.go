package tui

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/mindgrid/internal/games/mindgrid"
	"github.com/vovakirdan/mindgrid/internal/storage"
)

const scoreboardRows = 50

// boardTab is one board variant on the scoreboard.
type boardTab struct {
	variant mindgrid.Variant
	size    int
	best    int
}

func (b boardTab) label() string {
	return fmt.Sprintf("%dx%d", b.size, b.size)
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Scroll key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Scroll, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Next: key.NewBinding(
			key.WithKeys("right", "l", "tab"),
			key.WithHelp("→/tab", "bigger board"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "h", "shift+tab"),
			key.WithHelp("←", "smaller board"),
		),
		Scroll: key.NewBinding(
			key.WithKeys("up", "down", "k", "j"),
			key.WithHelp("↑/↓", "scroll"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel lists finished runs per board size.
type ScoreboardModel struct {
	store     *storage.Store
	boards    []boardTab
	current   int
	scores    []storage.ScoreEntry
	stats     *storage.GameStats
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel opens the scoreboard on the smallest board.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		store:  store,
		boards: scoreboardTabs(store),
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.table = newScoreTable(width, height)
	m.load()
	return m
}

// scoreboardTabs orders the variants by grid size.
func scoreboardTabs(store *storage.Store) []boardTab {
	tabs := make([]boardTab, 0, len(mindgrid.Variants))
	for _, v := range mindgrid.Variants {
		tab := boardTab{variant: v, size: v.GridSize()}
		if store != nil {
			tab.best, _ = store.HighScore(v.ID)
		}
		tabs = append(tabs, tab)
	}
	slices.SortStableFunc(tabs, func(a, b boardTab) int {
		return cmp.Compare(a.size, b.size)
	})
	return tabs
}

func newScoreTable(width, height int) table.Model {
	dateWidth := 12
	if width >= 90 {
		dateWidth = 18
	}
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 4},
			{Title: "Score", Width: 8},
			{Title: "Moves", Width: 6},
			{Title: "Max tile", Width: 8},
			{Title: "Pts/move", Width: 8},
			{Title: "Played", Width: dateWidth},
		}),
		table.WithFocused(true),
		table.WithHeight(max(3, height-12)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// load reads runs and stats for the current board.
func (m *ScoreboardModel) load() {
	m.scores, m.stats = nil, nil
	if m.store != nil && len(m.boards) > 0 {
		id := m.boards[m.current].variant.ID
		if scores, err := m.store.TopScores(id, scoreboardRows); err == nil {
			m.scores = scores
		}
		if stats, err := m.store.GameStats(id); err == nil {
			m.stats = stats
		}
	}

	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		rows[i] = table.Row{
			strconv.Itoa(i + 1),
			strconv.Itoa(s.Score),
			strconv.Itoa(s.Moves),
			strconv.Itoa(s.MaxTile),
			pointsPerMove(s.Score, s.Moves),
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func pointsPerMove(score, moves int) string {
	if moves == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f", float64(score)/float64(moves))
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
			m.switchBoard(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.switchBoard(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = newScoreTable(m.width, m.height)
		m.load()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *ScoreboardModel) switchBoard(delta int) {
	if len(m.boards) == 0 {
		return
	}
	m.current = (m.current + delta + len(m.boards)) % len(m.boards)
	m.load()
}

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	tabStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	activeTabStyle  = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}
	if len(m.boards) == 0 {
		return centerText("No boards registered.", m.width)
	}

	tab := m.boards[m.current]
	var b strings.Builder

	b.WriteString(centerText(boardTitleStyle.Render("HIGH SCORES - "+tab.variant.Title), m.width))
	b.WriteString("\n\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	body := m.renderRuns()
	if stats := m.renderStats(); stats != "" {
		body = lipgloss.JoinHorizontal(lipgloss.Top, panelStyle.Render(body), "  ", panelStyle.Render(stats))
	} else {
		body = panelStyle.Render(body)
	}
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, body))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// renderTabs shows every board size with its best score.
func (m ScoreboardModel) renderTabs() string {
	tabs := make([]string, len(m.boards))
	for i, t := range m.boards {
		label := t.label()
		if t.best > 0 {
			label += " " + strconv.Itoa(t.best)
		}
		if i == m.current {
			tabs[i] = activeTabStyle.Render(label)
		} else {
			tabs[i] = tabStyle.Render(label)
		}
	}
	line := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	if lipgloss.Width(line) > m.width {
		line = fmt.Sprintf("< %s >", m.boards[m.current].label())
	}
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, line)
}

func (m ScoreboardModel) renderRuns() string {
	if len(m.scores) == 0 {
		return dimStyle.Italic(true).Padding(1, 2).
			Render("No finished runs on this board yet.")
	}
	return m.table.View()
}

// renderStats summarizes the board's runs; empty when there are none.
func (m ScoreboardModel) renderStats() string {
	if m.stats == nil || m.stats.GamesCount == 0 {
		return ""
	}
	tile := colorStyles[mindgrid.TileColor(m.stats.BestTile)].Render(strconv.Itoa(m.stats.BestTile))
	lines := []string{
		boardTitleStyle.Render("Stats"),
		"",
		fmt.Sprintf("Runs      %d", m.stats.GamesCount),
		fmt.Sprintf("Best      %d", m.stats.HighScore),
		fmt.Sprintf("Average   %.0f", m.stats.AvgScore),
		"Best tile " + tile,
		"Last      " + m.stats.LastPlayed.Format("Jan 02"),
	}
	return strings.Join(lines, "\n")
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
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
