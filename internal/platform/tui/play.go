package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
)

// playScene runs the simulation. Key presses are collected into an input
// frame and handed to the machine at the next tick boundary.
type playScene struct {
	frame core.InputFrame
}

func newPlayScene() *playScene {
	return &playScene{frame: core.NewInputFrame()}
}

// Enter starts a run unless one is being resumed from the pause scene.
func (p *playScene) Enter(a *App) tea.Cmd {
	p.frame.Clear()
	if a.machine != nil {
		return nil
	}
	if err := a.newRun(); err != nil {
		a.logger.Error("could not start run", "error", err)
		return a.switchTo(SceneMenu)
	}
	return nil
}

func (p *playScene) Exit(_ *App) {
	p.frame.Clear()
}

func (p *playScene) Update(a *App, msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch action := a.keys.GameAction(msg); action {
		case core.ActionQuit:
			return a.quit()
		case core.ActionScreenshot:
			a.saveScreenshot()
		case core.ActionPause:
			// Only a running game can pause; a finished one restarts on its own
			if a.machine.State() == flappy.Running {
				return a.switchTo(ScenePause)
			}
		case core.ActionBack:
			a.endRun()
			return a.switchTo(SceneMenu)
		case core.ActionFlap, core.ActionRestart:
			p.frame.Set(action)
		}

	case TickMsg:
		a.machine.Apply(p.frame)
		p.frame.Clear()
		a.machine.Tick(tickSeconds(a.runtime.TickRate))
	}
	return nil
}

func (p *playScene) Render(a *App) string {
	if a.tooSmall() {
		return centerText("Terminal too small", a.width)
	}
	a.renderGame()
	return RenderScreen(a.screen) + "\n" + a.footer(a.keys)
}
