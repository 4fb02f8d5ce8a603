package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keySpace = tea.KeyMsg{Type: tea.KeySpace}
)

func newTestApp(t *testing.T, store storage.Backend, start SceneID) *App {
	t.Helper()
	app := NewApp(Options{
		Config:        config.DefaultFlappyConfig(),
		Runtime:       core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7},
		Store:         store,
		ScreenshotDir: t.TempDir(),
		Start:         start,
	})
	app.Init()
	return app
}

func TestKeyMapGameAction(t *testing.T) {
	keys := DefaultKeyMap()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.Action
	}{
		{"space", keySpace, core.ActionFlap},
		{"up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionFlap},
		{"p", runes("p"), core.ActionPause},
		{"r", runes("r"), core.ActionRestart},
		{"esc", keyEsc, core.ActionBack},
		{"q", runes("q"), core.ActionQuit},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{"ctrl+s", tea.KeyMsg{Type: tea.KeyCtrlS}, core.ActionScreenshot},
		{"unbound", runes("x"), core.ActionNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := keys.GameAction(tc.msg); got != tc.want {
				t.Errorf("GameAction(%q) = %v, expected %v", tc.msg.String(), got, tc.want)
			}
		})
	}
}

func TestKeyMapMenuAction(t *testing.T) {
	keys := DefaultKeyMap()

	tests := []struct {
		msg  tea.KeyMsg
		want core.Action
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp},
		{runes("k"), core.ActionUp},
		{runes("j"), core.ActionDown},
		{keyEnter, core.ActionConfirm},
		{keySpace, core.ActionConfirm},
		{keyEsc, core.ActionBack},
	}

	for _, tc := range tests {
		if got := keys.MenuAction(tc.msg); got != tc.want {
			t.Errorf("MenuAction(%q) = %v, expected %v", tc.msg.String(), got, tc.want)
		}
	}
}

func TestAppMenuStartsRun(t *testing.T) {
	app := newTestApp(t, storage.NewMemory(), SceneMenu)
	if app.Scene() != SceneMenu {
		t.Fatalf("Scene() = %v, expected menu", app.Scene())
	}
	if !strings.Contains(app.View(), "F L A P P Y") {
		t.Error("menu title missing")
	}

	app.Update(keyEnter)
	if app.Scene() != ScenePlay || app.Machine() == nil {
		t.Fatalf("Scene() = %v with machine %v, expected a running play scene", app.Scene(), app.Machine())
	}

	app.Update(TickMsg(time.Now()))
	if app.Machine().State() != flappy.Running {
		t.Errorf("machine state = %v, expected running", app.Machine().State())
	}
	if !strings.Contains(app.View(), "Score: 0") {
		t.Error("HUD missing from play view")
	}
}

func TestAppFlapReachesMachine(t *testing.T) {
	app := newTestApp(t, nil, ScenePlay)
	app.Update(keySpace)
	app.Update(TickMsg(time.Now()))

	if v := app.Machine().Snapshot().Flyer.Velocity; v >= 0 {
		t.Errorf("velocity = %g after a flap, expected upward", v)
	}
}

func TestAppPauseAndResume(t *testing.T) {
	app := newTestApp(t, nil, ScenePlay)
	app.Update(TickMsg(time.Now()))

	app.Update(runes("p"))
	if app.Scene() != ScenePause {
		t.Fatalf("Scene() = %v, expected pause", app.Scene())
	}
	app.Update(TickMsg(time.Now()))
	if app.Machine().State() != flappy.Paused {
		t.Fatalf("machine state = %v, expected paused", app.Machine().State())
	}
	if view := app.View(); !strings.Contains(view, "Continue") || !strings.Contains(view, "PAUSED") {
		t.Error("pause view missing its options")
	}

	app.Update(keyEnter)
	if app.Scene() != ScenePlay {
		t.Fatalf("Scene() = %v, expected play", app.Scene())
	}
	app.Update(TickMsg(time.Now()))
	if app.Machine().State() != flappy.CountingDown {
		t.Errorf("machine state = %v, expected counting_down", app.Machine().State())
	}
}

func TestAppPauseExitToMenu(t *testing.T) {
	app := newTestApp(t, nil, ScenePlay)
	app.Update(TickMsg(time.Now()))
	app.Update(runes("p"))

	app.Update(runes("j"))
	app.Update(keyEnter)

	if app.Scene() != SceneMenu || app.Machine() != nil {
		t.Errorf("Scene() = %v with machine %v, expected menu without a run", app.Scene(), app.Machine())
	}
}

func TestAppBackEndsRun(t *testing.T) {
	app := newTestApp(t, nil, ScenePlay)
	app.Update(TickMsg(time.Now()))
	app.Update(keyEsc)

	if app.Scene() != SceneMenu || app.Machine() != nil {
		t.Errorf("Scene() = %v with machine %v, expected menu without a run", app.Scene(), app.Machine())
	}
}

func TestAppRecordRun(t *testing.T) {
	store := storage.NewMemory()
	app := newTestApp(t, store, SceneMenu)

	app.recordRun(flappy.Snapshot{Score: 0})
	app.recordRun(flappy.Snapshot{Score: 3})

	scores, err := store.TopScores(flappy.GameID, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(scores) != 1 || scores[0].Score != 3 {
		t.Errorf("history = %v, expected one entry of 3", scores)
	}
}

func TestAppGameOverIsRecordedOnce(t *testing.T) {
	store := storage.NewMemory()
	app := newTestApp(t, store, ScenePlay)
	pilot := flappy.Autopilot{}

	// Fly until the first gate is passed
	for i := 0; i < 60*20 && app.Machine().Snapshot().Score == 0; i++ {
		if pilot.Decide(app.Machine().Snapshot()).Has(core.ActionFlap) {
			app.Update(keySpace)
		}
		app.Update(TickMsg(time.Now()))
	}
	score := app.Machine().Snapshot().Score
	if score == 0 {
		t.Fatal("autopilot never passed a gate")
	}

	// Then drop until the run ends
	for i := 0; i < 60*5 && app.Machine().State() != flappy.GameOver; i++ {
		app.Update(TickMsg(time.Now()))
	}
	if app.Machine().State() != flappy.GameOver {
		t.Fatalf("machine state = %v, expected game_over", app.Machine().State())
	}
	// Stay within the restart delay
	for i := 0; i < 10; i++ {
		app.Update(TickMsg(time.Now()))
	}

	scores, err := store.TopScores(flappy.GameID, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(scores) != 1 || scores[0].Score != score {
		t.Errorf("history = %v, expected one entry of %d", scores, score)
	}
}

func TestAppScreenshot(t *testing.T) {
	app := newTestApp(t, nil, ScenePlay)
	app.Update(TickMsg(time.Now()))
	app.Update(tea.KeyMsg{Type: tea.KeyCtrlS})

	entries, err := os.ReadDir(app.shotDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("found %d screenshots, expected 1", len(entries))
	}
	data, err := os.ReadFile(filepath.Join(app.shotDir, entries[0].Name()))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "Score: 0") {
		t.Error("screenshot does not contain the frame")
	}
	if !strings.Contains(app.View(), "saved") {
		t.Error("status line missing after screenshot")
	}
}

func TestWriteScreenshotNeedsDir(t *testing.T) {
	if _, err := writeScreenshot("", core.NewScreen(4, 2), time.Now()); err == nil {
		t.Error("writeScreenshot() without a directory should fail")
	}
}

func TestAppQuit(t *testing.T) {
	app := newTestApp(t, nil, ScenePlay)
	_, cmd := app.Update(runes("q"))

	if cmd == nil {
		t.Fatal("quit returned no command")
	}
	if app.View() != "" {
		t.Error("View() should be empty after quitting")
	}
	if app.Machine() != nil {
		t.Error("quitting should end the run")
	}
}

func TestScoreSceneShowsHistory(t *testing.T) {
	store := storage.NewMemory()
	store.SaveScore(flappy.GameID, 5)
	store.SaveScore(flappy.GameID, 9)
	store.SetBestScore(flappy.GameID, 9)

	app := newTestApp(t, store, SceneScore)
	view := app.View()
	if !strings.Contains(view, "Best: 9") {
		t.Errorf("score view missing best score:\n%s", view)
	}
	if !strings.Contains(view, "#2") {
		t.Errorf("score view missing history rows:\n%s", view)
	}

	app.Update(keyEsc)
	if app.Scene() != SceneMenu {
		t.Errorf("Scene() = %v, expected menu", app.Scene())
	}
}

func TestScoreSceneWithoutStore(t *testing.T) {
	app := newTestApp(t, nil, SceneScore)
	if !strings.Contains(app.View(), "No scores recorded yet") {
		t.Error("empty score view missing placeholder")
	}
}

func TestTooSmallTerminal(t *testing.T) {
	app := newTestApp(t, nil, ScenePlay)
	app.Update(tea.WindowSizeMsg{Width: 10, Height: 4})

	if !strings.Contains(app.View(), "too small") {
		t.Error("expected a too-small notice")
	}
}

func TestParseScene(t *testing.T) {
	if id, ok := ParseScene("play"); !ok || id != ScenePlay {
		t.Errorf("ParseScene(play) = %v, %v", id, ok)
	}
	if _, ok := ParseScene("credits"); ok {
		t.Error("ParseScene(credits) should fail")
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(12, 2)
	s.DrawTextColor(0, 0, "hello", core.ColorGreen)
	s.DrawTextColor(0, 1, "world", core.ColorDefault)

	out := RenderScreen(s)
	if !strings.Contains(out, "hello") || !strings.Contains(out, "world") {
		t.Errorf("RenderScreen() lost text: %q", out)
	}
}
