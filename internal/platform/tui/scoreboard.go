package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 70  // Minimum width to show the stats sidebar
	sidebarWidth       = 24  // Width of the stats sidebar
	maxScores          = 100 // Max scores to load
)

// scoreKeys is the help view for the score scene.
type scoreKeys struct{ k KeyMap }

func (h scoreKeys) ShortHelp() []key.Binding {
	return []key.Binding{h.k.Up, h.k.Down, h.k.Back, h.k.Quit}
}

func (h scoreKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp()}
}

// scoreScene shows the best score, aggregate stats and the run history.
type scoreScene struct {
	scores      []storage.ScoreEntry
	stats       *storage.GameStats
	best        int
	table       table.Model
	showSidebar bool
}

func newScoreScene() *scoreScene {
	return &scoreScene{}
}

// Enter reloads everything from the store.
func (s *scoreScene) Enter(a *App) tea.Cmd {
	s.showSidebar = a.width >= minWidthForSidebar
	s.table = s.createTable(a.width, a.height)
	s.load(a)
	return nil
}

func (s *scoreScene) Exit(_ *App) {}

// createTable creates a new table with appropriate columns.
func (s *scoreScene) createTable(width, height int) table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Score", Width: 10},
		{Title: "Date", Width: 18},
	}

	tableWidth := width - 4 // Margins
	if s.showSidebar {
		tableWidth -= sidebarWidth + 3 // Sidebar + border + gap
	}
	if tableWidth > 40 {
		columns[1].Width = 12
		columns[2].Width = min(tableWidth-22, 20)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(height-8, 3)), // Leave room for header, help, and margins
	)

	st := table.DefaultStyles()
	st.Header = st.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	st.Selected = st.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(st)

	return t
}

// load reads scores, stats and the best score.
func (s *scoreScene) load(a *App) {
	s.scores, s.stats, s.best = nil, nil, 0
	if a.store != nil {
		var err error
		if s.scores, err = a.store.TopScores(flappy.GameID, maxScores); err != nil {
			a.logger.Warn("could not load scores", "error", err)
		}
		if s.stats, err = a.store.Stats(flappy.GameID); err != nil {
			a.logger.Warn("could not load stats", "error", err)
		}
		if s.best, err = a.store.BestScore(flappy.GameID); err != nil {
			a.logger.Warn("could not load best score", "error", err)
		}
	}
	s.updateTableRows()
}

// updateTableRows updates the table with current scores.
func (s *scoreScene) updateTableRows() {
	rows := make([]table.Row, len(s.scores))
	for i, e := range s.scores {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", e.Score),
			e.CreatedAt.Local().Format("Jan 02 15:04"),
		}
	}
	s.table.SetRows(rows)
	s.table.GotoTop()
}

func (s *scoreScene) Update(a *App, msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch a.keys.MenuAction(msg) {
		case core.ActionQuit:
			return a.quit()
		case core.ActionBack, core.ActionConfirm:
			return a.switchTo(SceneMenu)
		case core.ActionUp, core.ActionDown:
			s.table, cmd = s.table.Update(msg)
			return cmd
		}

	case tea.WindowSizeMsg:
		s.showSidebar = msg.Width >= minWidthForSidebar
		s.table = s.createTable(msg.Width, msg.Height)
		s.updateTableRows()
	}
	return nil
}

func (s *scoreScene) Render(a *App) string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render(fmt.Sprintf("HIGH SCORES  -  Best: %d", s.best)), a.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	tableRendered := tableStyle.Render(s.renderTableContent())

	if s.showSidebar {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, s.renderSidebar(), "  ", tableRendered))
	} else {
		b.WriteString(tableRendered)
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(a.help.View(scoreKeys{a.keys})))
	return b.String()
}

// renderSidebar renders the aggregate stats panel.
func (s *scoreScene) renderSidebar() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sb strings.Builder
	sb.WriteString("Stats\n")
	sb.WriteString(strings.Repeat("-", sidebarWidth-4))
	sb.WriteString("\n")

	st := s.stats
	if st == nil {
		st = &storage.GameStats{}
	}
	fmt.Fprintf(&sb, "Runs:    %d\n", st.GamesCount)
	fmt.Fprintf(&sb, "Best:    %d\n", max(s.best, st.HighScore))
	fmt.Fprintf(&sb, "Average: %.1f\n", st.AvgScore)
	fmt.Fprintf(&sb, "Total:   %d\n", st.TotalScore)
	if !st.LastPlayed.IsZero() {
		fmt.Fprintf(&sb, "Last:    %s\n", st.LastPlayed.Local().Format("Jan 02 15:04"))
	}
	return sidebarStyle.Render(sb.String())
}

// renderTableContent renders the table or empty message.
func (s *scoreScene) renderTableContent() string {
	if len(s.scores) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No scores recorded yet.\nPlay a game to set a high score!")
	}
	return s.table.View()
}
