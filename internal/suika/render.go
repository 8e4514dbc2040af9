package suika

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/vovakirdan/tui-suika/internal/core"
)

// Screen requirements
const (
	minScreenW = 40
	minScreenH = 16
	hudWidth   = 22
)

// Visual characters for rendering
const (
	ItemChar       = '█'
	GuideChar      = '░'
	DropLineChar   = '┊'
	DangerLineChar = '┄'
	PulseChar      = '·'
	WallVert       = '│'
	FloorChar      = '─'
	FloorLeft      = '└'
	FloorRight     = '┘'
)

// layout maps world coordinates to screen cells. Cells are about twice as
// tall as they are wide, so a row spans two columns' worth of world units.
type layout struct {
	ok      bool
	screenW int
	screenH int

	x0, y0     int // Screen cell of the field's top-left interior cell
	cols, rows int
	unitX      float64 // World units per column
	unitY      float64 // World units per row
	left       float64 // World x of the inner face of the left wall
}

func computeLayout(w, h int, s Settings) layout {
	l := layout{screenW: w, screenH: h}
	if w < minScreenW || h < minScreenH {
		return l
	}

	half := s.WallThickness / 2
	innerW := s.FieldWidth - 2*half
	innerH := s.FieldHeight - half
	if innerW <= 0 || innerH <= 0 {
		return l
	}

	availCols := w - hudWidth - 3 // Two walls and a gap before the HUD
	availRows := h - 2            // Title row and floor
	if availCols < 8 || availRows < 8 {
		return l
	}

	l.unitX = math.Max(innerW/float64(availCols), innerH/(2*float64(availRows)))
	l.unitY = 2 * l.unitX
	l.cols = int(math.Ceil(innerW / l.unitX))
	l.rows = int(math.Ceil(innerH / l.unitY))
	l.left = half

	totalW := l.cols + 3 + hudWidth
	l.x0 = (w-totalW)/2 + 1
	l.y0 = 1 + (availRows-l.rows)/2
	l.ok = true
	return l
}

// cell returns the screen cell containing a world point.
func (l layout) cell(wx, wy float64) (int, int) {
	cx := l.x0 + int(math.Floor((wx-l.left)/l.unitX))
	cy := l.y0 + int(math.Floor(wy/l.unitY))
	return cx, cy
}

// center returns the world point at the middle of a screen cell.
func (l layout) center(sx, sy int) (float64, float64) {
	return l.left + (float64(sx-l.x0)+0.5)*l.unitX, (float64(sy-l.y0) + 0.5) * l.unitY
}

// worldX maps a screen column to a world x coordinate.
func (l layout) worldX(sx int) float64 {
	wx, _ := l.center(sx, l.y0)
	return wx
}

func (l layout) inField(sx, sy int) bool {
	return sx >= l.x0 && sx < l.x0+l.cols && sy >= l.y0 && sy < l.y0+l.rows
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.layout.screenW != dst.Width() || g.layout.screenH != dst.Height() {
		g.layout = computeLayout(dst.Width(), dst.Height(), g.settings)
	}
	if !g.layout.ok {
		g.renderTooSmall(dst)
		return
	}
	if g.match == nil {
		return
	}

	g.renderContainer(dst)
	g.renderDangerLine(dst)
	g.renderDropLine(dst)
	g.renderItems(dst)
	g.renderPulses(dst)
	g.renderGuide(dst)
	g.renderHUD(dst)
	g.renderOverlays(dst)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := dst.Height() / 2
	dst.DrawTextCentered(y, "Window too small", core.ColorYellow)
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", minScreenW, minScreenH), core.ColorGray)
}

func (g *Game) renderContainer(dst *core.Screen) {
	l := g.layout
	dst.DrawVLine(l.x0-1, l.y0, l.rows, WallVert, core.ColorGray)
	dst.DrawVLine(l.x0+l.cols, l.y0, l.rows, WallVert, core.ColorGray)

	floorY := l.y0 + l.rows
	dst.DrawHLine(l.x0, floorY, l.cols, FloorChar, core.ColorGray)
	dst.SetColored(l.x0-1, floorY, FloorLeft, core.ColorGray)
	dst.SetColored(l.x0+l.cols, floorY, FloorRight, core.ColorGray)
}

func (g *Game) renderDangerLine(dst *core.Screen) {
	l := g.layout
	_, row := l.cell(l.left, g.settings.DangerLineY)

	color := core.ColorRed
	if p := g.match.DangerProgress(); p > 0 {
		period := uint64(30 - 24*p)
		if period < 4 {
			period = 4
		}
		if (g.tick/period)%2 == 0 {
			color = core.ColorBrightRed
		} else {
			color = core.ColorYellow
		}
	}
	for c := 0; c < l.cols; c += 2 {
		dst.SetColored(l.x0+c, row, DangerLineChar, color)
	}
}

// guideVisible reports whether the armed item is waiting at the top.
func (g *Game) guideVisible() bool {
	st := g.match.State()
	return !st.Dropping() && !st.GameOver()
}

func (g *Game) renderDropLine(dst *core.Screen) {
	if !g.guideVisible() {
		return
	}
	l := g.layout
	r := g.match.Factory.Radius(g.match.State().Armed())
	col, top := l.cell(g.guideX, g.settings.SpawnY+r)
	for y := top + 1; y < l.y0+l.rows; y++ {
		dst.SetColored(col, y, DropLineChar, core.ColorDarkGray)
	}
}

func (g *Game) renderItems(dst *core.Screen) {
	l := g.layout
	eng := g.match.Engine()
	for _, it := range g.match.State().Items() {
		body, ok := eng.Body(it.Body)
		if !ok {
			continue
		}
		tier := g.tiers.At(it.Tier)
		g.fillDisc(dst, body.Position.X, body.Position.Y, body.Radius, ItemChar, tier.Color())

		// Tier number at the center when the disc is wide enough
		if body.Radius >= l.unitX {
			label := strconv.Itoa(it.Tier + 1)
			cx, cy := l.cell(body.Position.X, body.Position.Y)
			dst.DrawTextColored(cx-len(label)/2, cy, label, core.ColorBrightWhite)
		}
	}
}

// fillDisc paints every field cell whose center lies inside the circle.
// A circle smaller than a cell still paints its center cell.
func (g *Game) fillDisc(dst *core.Screen, x, y, r float64, ch rune, color core.Color) {
	l := g.layout
	minX, minY := l.cell(x-r, y-r)
	maxX, maxY := l.cell(x+r, y+r)

	painted := 0
	for sy := minY; sy <= maxY; sy++ {
		for sx := minX; sx <= maxX; sx++ {
			if !l.inField(sx, sy) {
				continue
			}
			wx, wy := l.center(sx, sy)
			if dx, dy := wx-x, wy-y; dx*dx+dy*dy <= r*r {
				dst.SetColored(sx, sy, ch, color)
				painted++
			}
		}
	}
	if painted == 0 {
		if cx, cy := l.cell(x, y); l.inField(cx, cy) {
			dst.SetColored(cx, cy, ch, color)
		}
	}
}

func (g *Game) renderPulses(dst *core.Screen) {
	l := g.layout
	for _, p := range g.pulses {
		reach := p.radius * g.settings.PopRadiusFactor
		ring := p.ringRadius(reach)
		color := g.tiers.At(p.tier).Color()

		minX, minY := l.cell(p.center.X-ring, p.center.Y-ring)
		maxX, maxY := l.cell(p.center.X+ring, p.center.Y+ring)
		for sy := minY; sy <= maxY; sy++ {
			for sx := minX; sx <= maxX; sx++ {
				if !l.inField(sx, sy) || dst.Get(sx, sy) != ' ' {
					continue
				}
				wx, wy := l.center(sx, sy)
				if d := math.Hypot(wx-p.center.X, wy-p.center.Y); math.Abs(d-ring) <= l.unitY/2 {
					dst.SetColored(sx, sy, PulseChar, color)
				}
			}
		}
	}
}

func (g *Game) renderGuide(dst *core.Screen) {
	if !g.guideVisible() {
		return
	}
	st := g.match.State()
	tier := g.tiers.At(st.Armed())
	g.fillDisc(dst, g.guideX, g.settings.SpawnY, g.match.Factory.Radius(st.Armed()), GuideChar, tier.Color())
}

func (g *Game) renderHUD(dst *core.Screen) {
	l := g.layout
	st := g.match.State()
	x := l.x0 + l.cols + 2
	y := l.y0

	dst.DrawTextColored(x, y, "SUIKA", core.ColorBrightYellow)
	dst.DrawTextColored(x, y+2, fmt.Sprintf("Score %6d", st.Score()), core.ColorBrightWhite)
	dst.DrawTextColored(x, y+3, fmt.Sprintf("Best  %6d", g.HighScore()), core.ColorGray)

	g.renderTierLine(dst, x, y+5, "Drop", st.Armed(), st.Dropping())
	g.renderTierLine(dst, x, y+6, "Next", st.Next(), false)

	// Danger meter
	const meterW = 10
	filled := int(math.Round(g.match.DangerProgress() * meterW))
	meterColor := core.ColorGreen
	if filled > 0 {
		meterColor = core.ColorBrightRed
	}
	dst.DrawTextColored(x, y+8, "Danger ", core.ColorGray)
	dst.DrawTextColored(x+7, y+8, strings.Repeat("▮", filled)+strings.Repeat("▯", meterW-filled), meterColor)

	// Controls pinned to the bottom, tier legend fills the space between
	controls := []string{
		"←/→ mouse  move",
		"space/click drop",
		"p pause  q quit",
	}
	ctrlY := dst.Height() - len(controls) - 1
	for i, c := range controls {
		dst.DrawTextColored(x, ctrlY+i, c, core.ColorDarkGray)
	}

	legendY := y + 10
	for i := 0; i < g.tiers.Count() && legendY+i < ctrlY-1; i++ {
		t := g.tiers.At(i)
		dst.SetColored(x, legendY+i, '●', t.Color())
		dst.DrawTextColored(x+2, legendY+i, fmt.Sprintf("%2d %s", i+1, t.Label), core.ColorGray)
	}
}

func (g *Game) renderTierLine(dst *core.Screen, x, y int, caption string, tier int, dim bool) {
	t := g.tiers.At(tier)
	dst.DrawTextColored(x, y, caption, core.ColorGray)
	color := t.Color()
	if dim {
		color = core.ColorDarkGray
	}
	dst.SetColored(x+5, y, '●', color)
	dst.DrawTextColored(x+7, y, t.Label, color)
}

// renderOverlays draws pause and game over boxes over the field.
func (g *Game) renderOverlays(dst *core.Screen) {
	st := g.match.State()
	switch {
	case st.GameOver():
		g.drawOverlayBox(dst, core.ColorBrightRed,
			"GAME OVER",
			fmt.Sprintf("Score: %d", st.Score()),
			"R restart  Q quit",
		)
	case g.paused:
		g.drawOverlayBox(dst, core.ColorBrightYellow,
			"PAUSED",
			"P to resume",
		)
	}
}

func (g *Game) drawOverlayBox(dst *core.Screen, color core.Color, lines ...string) {
	l := g.layout
	boxW := 0
	for _, s := range lines {
		if w := runewidth.StringWidth(s); w > boxW {
			boxW = w
		}
	}
	boxW += 4
	if boxW > l.cols {
		boxW = l.cols
	}
	boxH := len(lines) + 2

	bx := l.x0 + (l.cols-boxW)/2
	by := l.y0 + (l.rows-boxH)/2
	box := core.NewRect(bx, by, boxW, boxH)
	dst.FillRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, color)

	for i, s := range lines {
		tx := bx + (boxW-runewidth.StringWidth(s))/2
		c := core.ColorBrightWhite
		if i == 0 {
			c = color
		}
		dst.DrawTextColored(tx, by+1+i, s, c)
	}
}
