package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/trap-streets/internal/storage"
)

const (
	statsPanelMinWidth = 90
	statsPanelWidth    = 22
	scoreboardLimit    = 100
)

// ScoreboardView selects which sessions the table lists.
type ScoreboardView int

const (
	ViewTop ScoreboardView = iota
	ViewRecent
)

func (v ScoreboardView) String() string {
	if v == ViewRecent {
		return "Recent"
	}
	return "Top"
}

// ScoreboardKeyMap holds the scoreboard bindings.
type ScoreboardKeyMap struct {
	Up, Down, Toggle, Back, Quit key.Binding
}

func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Back, k.Quit}
}

func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultScoreboardKeyMap returns the default scoreboard bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle: key.NewBinding(key.WithKeys("tab", "left", "right", "h", "l"), key.WithHelp("tab", "top/recent")),
		Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

var sessionColumns = []table.Column{
	{Title: "#", Width: 5},
	{Title: "Player", Width: 12},
	{Title: "Result", Width: 7},
	{Title: "Score", Width: 6},
	{Title: "Level", Width: 7},
	{Title: "When", Width: 14},
}

// newSessionTable builds an empty table sized for a terminal of the given
// height.
func newSessionTable(termHeight int) table.Model {
	t := table.New(
		table.WithColumns(sessionColumns),
		table.WithFocused(true),
		table.WithHeight(max(termHeight-8, 3)),
	)
	st := table.DefaultStyles()
	st.Header = st.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(border).
		BorderBottom(true).
		Bold(true)
	st.Selected = st.Selected.Foreground(accent).Background(lipgloss.Color("57")).Bold(false)
	t.SetStyles(st)
	return t
}

func sessionRow(rank int, s storage.SessionRecord) table.Row {
	orDash := func(v string) string {
		if v == "" {
			return "-"
		}
		return v
	}
	return table.Row{
		fmt.Sprintf("%d", rank),
		orDash(s.Player),
		s.Result(),
		fmt.Sprintf("%ds", s.Score),
		orDash(s.Difficulty),
		s.CreatedAt.Local().Format("Jan 02 15:04"),
	}
}

// ScoreboardModel lists stored sessions with an aggregate stats panel on
// wide terminals.
type ScoreboardModel struct {
	store    *storage.Store
	view     ScoreboardView
	sessions []storage.SessionRecord
	stats    *storage.Stats
	loadErr  error
	table    table.Model
	help     help.Model
	keys     ScoreboardKeyMap
	width    int
	height   int
	quitting bool
	back     bool
}

// NewScoreboardModel creates a scoreboard showing the top sessions.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
		table:  newSessionTable(height),
	}
	m.reload()
	return m
}

// reload fetches the current view and stats, then refills the table.
func (m *ScoreboardModel) reload() {
	m.sessions, m.stats, m.loadErr = nil, nil, nil
	if m.store != nil {
		fetch := m.store.TopSessions
		if m.view == ViewRecent {
			fetch = m.store.RecentSessions
		}
		m.sessions, m.loadErr = fetch(scoreboardLimit)
		m.stats, _ = m.store.Stats()
	}
	m.fillTable()
}

func (m *ScoreboardModel) fillTable() {
	rows := make([]table.Row, 0, len(m.sessions))
	for i, s := range m.sessions {
		rows = append(rows, sessionRow(i+1, s))
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = newSessionTable(msg.Height)
		m.fillTable()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.back = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Toggle):
			m.view = 1 - m.view
			m.reload()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m ScoreboardModel) View() string {
	if m.quitting || m.back {
		return ""
	}

	title := titleStyle.Render(centerText(fmt.Sprintf("TRAP STREETS · %s sessions", m.view), m.width))
	body := panelStyle.Render(m.tableView())
	if m.width >= statsPanelMinWidth {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.statsView(), "  ", body)
	}
	return title + "\n\n" + body + "\n" + helpStyle.Render(m.help.View(m.keys))
}

func (m ScoreboardModel) statsView() string {
	style := panelStyle.Width(statsPanelWidth)
	head := "Stats\n" + strings.Repeat("─", statsPanelWidth-4) + "\n"
	st := m.stats
	if st == nil || st.Played == 0 {
		return style.Render(head + "No sessions yet")
	}

	lines := []struct{ label, value string }{
		{"Played", fmt.Sprint(st.Played)},
		{"Wins", fmt.Sprint(st.Wins)},
		{"Win rate", fmt.Sprintf("%.0f%%", float64(st.Wins)/float64(st.Played)*100)},
		{"Best", fmt.Sprintf("%ds", st.HighScore)},
		{"Average", fmt.Sprintf("%.1fs", st.AvgScore)},
	}
	var b strings.Builder
	b.WriteString(head)
	for i, l := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%-9s %s", l.label+":", l.value)
	}
	return style.Render(b.String())
}

func (m ScoreboardModel) tableView() string {
	switch {
	case m.loadErr != nil:
		return noteStyle.Render("Could not load sessions:\n" + m.loadErr.Error())
	case len(m.sessions) == 0:
		return noteStyle.Render("No sessions recorded yet.\nSurvive the streets to set a record!")
	}
	return m.table.View()
}

// IsGoingBack reports whether the user asked for the menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.back
}

// IsQuitting reports whether the user asked to quit.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard shows the scoreboard in the local terminal. Returns true if
// the user asked for the menu.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	m, ok, err := runProgram(NewScoreboardModel(store, width, height))
	if err != nil || !ok {
		return false, err
	}
	return m.IsGoingBack(), nil
}
