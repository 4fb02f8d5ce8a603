package flappy

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

func renderMachine(t *testing.T, m *Machine) *core.Screen {
	t.Helper()
	screen := core.NewScreen(80, 24)
	Render(screen, m.Snapshot())
	return screen
}

func findRune(s *core.Screen, r rune) (core.Cell, bool) {
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if c := s.GetCell(x, y); c.Rune == r {
				return c, true
			}
		}
	}
	return core.Cell{}, false
}

func TestRenderDrawsWorldAndHUD(t *testing.T) {
	m := newTestMachine(t)
	m.Tick(0.01)
	screen := renderMachine(t, m)
	out := screen.String()

	if !strings.Contains(out, "Score: 0") {
		t.Error("HUD score missing")
	}
	if !strings.Contains(out, "Best: 0") || !strings.Contains(out, "easy") {
		t.Error("HUD best score or tier missing")
	}
	if _, ok := findRune(screen, GateChar); !ok {
		t.Error("no gate drawn")
	}
	if c, ok := findRune(screen, FlyerChar); !ok || c.Color != core.ColorYellow {
		t.Errorf("flyer cell = %+v (found %v), expected yellow", c, ok)
	}
	if !strings.Contains(screen.Row(23), string(GroundChar)) {
		t.Error("ground missing from last row")
	}
}

func TestRenderOverlays(t *testing.T) {
	m := newTestMachine(t)
	m.Tick(0.01)

	m.Send(EventPause)
	m.Tick(0.01)
	if out := renderMachine(t, m).String(); !strings.Contains(out, "PAUSED") {
		t.Error("pause overlay missing")
	}

	m.Send(EventResume)
	m.Tick(0.01)
	if out := renderMachine(t, m).String(); !strings.Contains(out, "Fly in: 3") {
		t.Error("countdown overlay missing")
	}
}

func TestRenderGameOverTintsFlyer(t *testing.T) {
	m := newTestMachine(t)
	for i := 0; i < 200 && m.State() != GameOver; i++ {
		m.Tick(1.0 / 60)
	}
	screen := renderMachine(t, m)

	if !strings.Contains(screen.String(), "GAME OVER") {
		t.Error("game over overlay missing")
	}
	if c, ok := findRune(screen, FlyerBeak); !ok || c.Color != core.ColorRed {
		t.Errorf("flyer cell = %+v (found %v), expected red", c, ok)
	}
}

func TestRenderPinsFlyerAboveGround(t *testing.T) {
	m := newTestMachine(t)
	m.Tick(0.01)
	s := m.Snapshot()
	s.Flyer.Y = s.World.Height + 100

	screen := core.NewScreen(80, 24)
	Render(screen, s)

	if !strings.ContainsRune(screen.Row(22), FlyerBeak) {
		t.Errorf("flyer below the world should be drawn on the last field row, got %q", screen.Row(22))
	}
	if strings.ContainsRune(screen.Row(23), FlyerChar) {
		t.Error("flyer drawn over the ground")
	}
}

func TestRenderEmptyScreen(t *testing.T) {
	m := newTestMachine(t)
	Render(core.NewScreen(0, 0), m.Snapshot())
}
