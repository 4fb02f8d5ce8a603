package flappy

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Visual characters for rendering
const (
	FlyerChar     = '●'
	FlyerBeak     = '▶'
	GateChar      = '█'
	GateCapTop    = '▄'
	GateCapBottom = '▀'
	GroundChar    = '═'
)

// viewport maps world units onto screen cells. The last row is the ground.
type viewport struct {
	sx, sy float64
	worldH float64
	fieldH int
}

func newViewport(dst *core.Screen, s Snapshot) viewport {
	fieldH := max(dst.Height()-1, 1)
	return viewport{
		sx:     float64(dst.Width()) / s.World.Width,
		sy:     float64(fieldH) / s.World.Height,
		worldH: s.World.Height,
		fieldH: fieldH,
	}
}

func (v viewport) col(x float64) int { return int(math.Floor(x * v.sx)) }
// row maps a world y to a screen row. Heights outside the world land on the edge rows.
func (v viewport) row(y float64) int {
	return int(math.Floor(core.ClampF(y, 0, v.worldH) * v.sy))
}

// Render draws a snapshot to the screen.
func Render(dst *core.Screen, s Snapshot) {
	dst.Clear()
	if dst.Width() == 0 || dst.Height() == 0 {
		return
	}
	v := newViewport(dst, s)

	dst.DrawHLine(0, dst.Height()-1, dst.Width(), GroundChar, core.ColorOrange)

	for _, p := range s.Pairs {
		drawPair(dst, v, p)
	}
	drawFlyer(dst, v, s)
	drawHUD(dst, s)

	switch s.State {
	case Paused:
		drawMessage(dst, "PAUSED", "Press P to resume")
	case CountingDown:
		drawMessage(dst, fmt.Sprintf("Fly in: %d", s.Countdown), "Get ready")
	case GameOver:
		drawMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  Best: %d", s.Score, s.Best))
	}
}

func drawPair(dst *core.Screen, v viewport, p GatePair) {
	x0 := v.col(p.X)
	x1 := max(v.col(p.X+p.Width), x0+1)
	gapTop := v.row(p.GapY)
	gapBottom := v.row(p.GapY + p.GapHeight)

	for x := x0; x < x1; x++ {
		for y := 0; y < gapTop; y++ {
			dst.SetColor(x, y, GateChar, core.ColorGreen)
		}
		if gapTop > 0 {
			dst.SetColor(x, gapTop-1, GateCapTop, core.ColorBrightGreen)
		}
		for y := gapBottom; y < v.fieldH; y++ {
			dst.SetColor(x, y, GateChar, core.ColorGreen)
		}
		if gapBottom < v.fieldH {
			dst.SetColor(x, gapBottom, GateCapBottom, core.ColorBrightGreen)
		}
	}
}

func drawFlyer(dst *core.Screen, v viewport, s Snapshot) {
	color := core.ColorYellow
	if s.State == GameOver {
		color = core.ColorRed
	}

	x0 := v.col(s.Flyer.X)
	x1 := max(v.col(s.Flyer.X+s.Flyer.W), x0+1)
	// A flyer that left the world is pinned to the field edge
	y0 := core.Clamp(v.row(s.Flyer.Y), 0, v.fieldH-1)
	y1 := core.Clamp(v.row(s.Flyer.Y+s.Flyer.H), y0+1, v.fieldH)

	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			dst.SetColor(x, y, FlyerChar, color)
		}
	}
	dst.SetColor(x1-1, y0, FlyerBeak, color)
}

func drawHUD(dst *core.Screen, s Snapshot) {
	dst.DrawTextColor(2, 0, fmt.Sprintf(" Score: %d ", s.Score), core.ColorBrightWhite)

	right := fmt.Sprintf(" Best: %d  %s ", s.Best, s.Tier)
	dst.DrawTextColor(dst.Width()-utf8.RuneCountInString(right)-2, 0, right, core.ColorBrightYellow)
}

// drawMessage draws a boxed two-line message in the middle of the screen.
func drawMessage(dst *core.Screen, title, subtitle string) {
	boxW := max(utf8.RuneCountInString(title), utf8.RuneCountInString(subtitle)) + 4
	boxH := 5
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorCyan)
	dst.DrawTextCentered(box.Y+1, title, core.ColorBrightWhite)
	dst.DrawTextCentered(box.Y+3, subtitle, core.ColorGray)
}
