package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
)

// MenuItem is one entry of the main menu.
type MenuItem struct {
	Title  string
	Target SceneID
	Quit   bool
}

var menuItems = []MenuItem{
	{Title: "Play", Target: ScenePlay},
	{Title: "Scores", Target: SceneScore},
	{Title: "Exit", Quit: true},
}

var (
	menuTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("11"))
	menuItemStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	menuSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuHintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// menuScene is the title screen.
type menuScene struct {
	cursor int
	best   int
}

func newMenuScene() *menuScene {
	return &menuScene{}
}

// Enter refreshes the best score shown under the title.
func (m *menuScene) Enter(a *App) tea.Cmd {
	m.best = 0
	if a.store == nil {
		return nil
	}
	best, err := a.store.BestScore(flappy.GameID)
	if err != nil {
		a.logger.Warn("could not read best score", "error", err)
		return nil
	}
	m.best = best
	return nil
}

func (m *menuScene) Exit(_ *App) {}

func (m *menuScene) Update(a *App, msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	switch a.keys.MenuAction(keyMsg) {
	case core.ActionQuit:
		return a.quit()
	case core.ActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case core.ActionDown:
		if m.cursor < len(menuItems)-1 {
			m.cursor++
		}
	case core.ActionConfirm:
		item := menuItems[m.cursor]
		if item.Quit {
			return a.quit()
		}
		return a.switchTo(item.Target)
	}
	return nil
}

func (m *menuScene) Render(a *App) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("  F L A P P Y  "), a.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(menuHintStyle.Render(fmt.Sprintf("Best: %d", m.best)), a.width))
	b.WriteString("\n\n")

	for i, item := range menuItems {
		line := menuItemStyle.Render("  " + item.Title)
		if i == m.cursor {
			line = menuSelectedStyle.Render("> " + item.Title)
		}
		b.WriteString(centerText(line, a.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(a.help.View(menuHelp{a.keys}), a.width))
	b.WriteString("\n")
	return b.String()
}
