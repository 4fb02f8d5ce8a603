package tui

import tea "github.com/charmbracelet/bubbletea"

// SceneID names a scene.
type SceneID int

const (
	SceneMenu SceneID = iota
	ScenePlay
	ScenePause
	SceneScore
)

// String returns the scene name.
func (id SceneID) String() string {
	switch id {
	case SceneMenu:
		return "menu"
	case ScenePlay:
		return "play"
	case ScenePause:
		return "pause"
	case SceneScore:
		return "score"
	default:
		return "unknown"
	}
}

// Scene is one screen of the app. The App calls Enter when the scene becomes
// active, Exit when it is left, and routes every message to Update while it
// is active. Scenes keep their own UI state; shared state lives on the App.
type Scene interface {
	Enter(a *App) tea.Cmd
	Exit(a *App)
	Update(a *App, msg tea.Msg) tea.Cmd
	Render(a *App) string
}

// ParseScene maps a command-line scene name to its ID.
func ParseScene(name string) (SceneID, bool) {
	switch name {
	case "menu", "":
		return SceneMenu, true
	case "play":
		return ScenePlay, true
	case "score", "scores":
		return SceneScore, true
	}
	return SceneMenu, false
}
