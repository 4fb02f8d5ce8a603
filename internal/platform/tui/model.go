package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// Minimum terminal size for drawing the game.
const (
	minWidth  = 20
	minHeight = 8
)

// Options configures an App.
type Options struct {
	Config  config.FlappyConfig
	Runtime core.RuntimeConfig
	// Store may be nil; scores are then kept for the session only.
	Store  storage.Backend
	Logger *log.Logger
	// ScreenshotDir defaults to ~/.flappy/screenshots.
	ScreenshotDir string
	// Start is the first scene shown.
	Start SceneID
}

// App is the Bubble Tea model. It owns the current run and delegates input,
// ticks and drawing to the active scene.
type App struct {
	cfg     config.FlappyConfig
	runtime core.RuntimeConfig
	store   storage.Backend
	logger  *log.Logger
	shotDir string

	keys   KeyMap
	help   help.Model
	screen *core.Screen
	width  int
	height int

	scenes  map[SceneID]Scene
	current SceneID
	start   SceneID

	machine  *flappy.Machine
	runs     int
	status   string // One-line notice under the game, e.g. a saved screenshot
	quitting bool
}

// NewApp creates the app. The config must already be valid.
func NewApp(opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	runtime := opts.Runtime
	if runtime.TickRate <= 0 {
		runtime.TickRate = 60
	}
	// Use time-based seed if not specified
	if runtime.Seed == 0 {
		runtime.Seed = time.Now().UnixNano()
	}

	shotDir := opts.ScreenshotDir
	if shotDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			shotDir = filepath.Join(home, ".flappy", "screenshots")
		}
	}

	a := &App{
		cfg:     opts.Config,
		runtime: runtime,
		store:   opts.Store,
		logger:  logger,
		shotDir: shotDir,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		width:   runtime.ScreenW,
		height:  runtime.ScreenH,
		start:   opts.Start,
		scenes: map[SceneID]Scene{
			SceneMenu:  newMenuScene(),
			ScenePlay:  newPlayScene(),
			ScenePause: newPauseScene(),
			SceneScore: newScoreScene(),
		},
	}
	a.screen = core.NewScreen(a.width, a.gameHeight())
	a.help.Width = a.width
	return a
}

// Init enters the start scene and starts the frame clock.
func (a *App) Init() tea.Cmd {
	a.current = a.start
	return tea.Batch(a.scenes[a.current].Enter(a), tickCmd(a.runtime.TickRate))
}

// Update routes messages to the active scene.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.screen.Resize(a.width, a.gameHeight())
		a.help.Width = a.width

	case TickMsg:
		cmd := a.scenes[a.current].Update(a, msg)
		if a.quitting {
			return a, cmd
		}
		return a, tea.Batch(cmd, tickCmd(a.runtime.TickRate))
	}

	return a, a.scenes[a.current].Update(a, msg)
}

// View renders the active scene.
func (a *App) View() string {
	if a.quitting {
		return ""
	}
	return a.scenes[a.current].Render(a)
}

// Scene returns the active scene.
func (a *App) Scene() SceneID {
	return a.current
}

// Machine returns the current run, or nil outside of a game.
func (a *App) Machine() *flappy.Machine {
	return a.machine
}

// switchTo leaves the active scene and enters next.
func (a *App) switchTo(next SceneID) tea.Cmd {
	if next == a.current {
		return nil
	}
	a.scenes[a.current].Exit(a)
	a.logger.Debug("scene change", "from", a.current, "to", next)
	a.current = next
	return a.scenes[next].Enter(a)
}

// quit stops the program.
func (a *App) quit() tea.Cmd {
	a.quitting = true
	a.endRun()
	return tea.Quit
}

// gameHeight leaves the last terminal row for the help bar.
func (a *App) gameHeight() int {
	return max(a.height-1, 0)
}

// newRun builds a fresh machine. Each run from the menu uses a new seed.
func (a *App) newRun() error {
	m, err := flappy.New(a.cfg,
		flappy.WithStore(a.bestStore()),
		flappy.WithLogger(a.logger),
		flappy.WithSeed(a.runtime.Seed+int64(a.runs)),
		flappy.WithTransitionHook(a.onTransition),
	)
	if err != nil {
		return fmt.Errorf("start run: %w", err)
	}
	a.machine = m
	a.runs++
	a.status = ""
	return nil
}

// bestStore adapts the backend, keeping a nil backend a nil interface.
func (a *App) bestStore() flappy.BestScoreStore {
	if a.store == nil {
		return nil
	}
	return a.store
}

// endRun drops the current run.
func (a *App) endRun() {
	a.machine = nil
}

// onTransition records a finished run once per game over.
func (a *App) onTransition(_, to flappy.State) {
	if to == flappy.GameOver && a.machine != nil {
		a.recordRun(a.machine.Snapshot())
	}
}

// recordRun appends a finished run to the score history.
func (a *App) recordRun(s flappy.Snapshot) {
	a.logger.Info("run over", "score", s.Score, "best", s.Best, "cause", s.Collision, "seconds", fmt.Sprintf("%.1f", s.Elapsed))
	if a.store == nil || s.Score <= 0 {
		return
	}
	if _, err := a.store.SaveScore(flappy.GameID, s.Score); err != nil {
		// Best-effort save, game continues regardless
		a.logger.Warn("could not save score", "score", s.Score, "error", err)
	}
}

// renderGame draws the current run into the screen buffer.
func (a *App) renderGame() {
	if a.machine == nil {
		a.screen.Clear()
		return
	}
	flappy.Render(a.screen, a.machine.Snapshot())
}

// tooSmall reports whether the terminal cannot fit the game.
func (a *App) tooSmall() bool {
	return a.width < minWidth || a.height < minHeight
}

// footer returns the help bar, or the status line when one is set.
func (a *App) footer(keys help.KeyMap) string {
	if a.status != "" {
		return a.status
	}
	return a.help.View(keys)
}

// saveScreenshot writes the current frame to a text file.
func (a *App) saveScreenshot() {
	a.renderGame()
	path, err := writeScreenshot(a.shotDir, a.screen, time.Now())
	if err != nil {
		a.logger.Warn("could not save screenshot", "error", err)
		a.status = "screenshot failed"
		return
	}
	a.logger.Info("screenshot saved", "path", path)
	a.status = "saved " + path
}

// writeScreenshot writes the unstyled screen to dir and returns the file path.
func writeScreenshot(dir string, screen *core.Screen, now time.Time) (string, error) {
	if dir == "" {
		return "", fmt.Errorf("no screenshot directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}

	filename := fmt.Sprintf("%s_%s.txt", flappy.GameID, now.Format("20060102_150405"))
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(screen.String()), 0o600); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// Run starts a local Bubble Tea program for the app.
func Run(app *App) error {
	p := tea.NewProgram(
		app,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
