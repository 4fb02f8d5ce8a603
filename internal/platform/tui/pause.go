package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
)

var pauseItems = []string{"Continue", "Exit to menu"}

// pauseScene freezes the run and offers to continue or leave.
// The machine keeps ticking so the pause takes effect at a tick boundary.
type pauseScene struct {
	cursor int
}

func newPauseScene() *pauseScene {
	return &pauseScene{}
}

func (p *pauseScene) Enter(a *App) tea.Cmd {
	p.cursor = 0
	a.machine.Send(flappy.EventPause)
	return nil
}

func (p *pauseScene) Exit(_ *App) {}

func (p *pauseScene) Update(a *App, msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch a.keys.MenuAction(msg) {
		case core.ActionQuit:
			return a.quit()
		case core.ActionUp:
			p.cursor = max(p.cursor-1, 0)
		case core.ActionDown:
			p.cursor = min(p.cursor+1, len(pauseItems)-1)
		case core.ActionPause, core.ActionBack:
			return p.resume(a)
		case core.ActionConfirm:
			if p.cursor == 0 {
				return p.resume(a)
			}
			a.endRun()
			return a.switchTo(SceneMenu)
		}

	case TickMsg:
		a.machine.Tick(tickSeconds(a.runtime.TickRate))
	}
	return nil
}

// resume hands control back to the play scene, which shows the countdown.
func (p *pauseScene) resume(a *App) tea.Cmd {
	a.machine.Send(flappy.EventResume)
	return a.switchTo(ScenePlay)
}

func (p *pauseScene) Render(a *App) string {
	if a.tooSmall() {
		return centerText("Terminal too small", a.width)
	}
	a.renderGame()
	p.drawOptions(a.screen)
	return RenderScreen(a.screen) + "\n" + a.footer(menuHelp{a.keys})
}

// drawOptions draws the option list below the paused banner.
func (p *pauseScene) drawOptions(s *core.Screen) {
	boxW := 20
	boxH := len(pauseItems) + 2
	box := core.NewRect((s.Width()-boxW)/2, s.Height()/2+3, boxW, boxH)

	s.DrawRect(box, ' ', core.ColorDefault)
	s.DrawBox(box, core.ColorCyan)
	for i, item := range pauseItems {
		color := core.ColorGray
		prefix := "  "
		if i == p.cursor {
			color = core.ColorBrightYellow
			prefix = "> "
		}
		s.DrawTextColor(box.X+2, box.Y+1+i, prefix+item, color)
	}
}
