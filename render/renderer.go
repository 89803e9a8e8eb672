// Package render draws arena snapshots onto a tcell screen
package render

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/pie-merge/arena"
	"github.com/lixenwraith/pie-merge/core"
	"github.com/lixenwraith/pie-merge/effect"
	"github.com/lixenwraith/pie-merge/status"
)

// Renderer owns the screen for drawing, input polling stays with the caller
type Renderer struct {
	screen    tcell.Screen
	view      Viewport
	width     int
	height    int
	tierCount int

	arenaW, arenaH float64

	showStats bool
	stats     *status.Registry
}

// NewRenderer sizes the viewport to the current screen
func NewRenderer(screen tcell.Screen, arenaW, arenaH float64, tierCount int) *Renderer {
	r := &Renderer{
		screen:    screen,
		tierCount: tierCount,
		arenaW:    arenaW,
		arenaH:    arenaH,
	}
	w, h := screen.Size()
	r.Resize(w, h)
	return r
}

// Resize refits the viewport
func (r *Renderer) Resize(width, height int) {
	r.width, r.height = width, height
	r.view = NewViewport(r.arenaW, r.arenaH, width, height)
}

// ToArena converts a mouse cell to arena coordinates
func (r *Renderer) ToArena(x, y int) core.Vec2 {
	return r.view.ToArena(x, y)
}

// ToggleStats shows or hides the metrics overlay
func (r *Renderer) ToggleStats(reg *status.Registry) {
	r.showStats = !r.showStats
	r.stats = reg
}

// Draw renders one frame
func (r *Renderer) Draw(snap arena.Snapshot) {
	base := tcell.StyleDefault.Background(RgbBackground).Foreground(RgbText)
	r.screen.SetStyle(base)
	r.screen.Clear()

	r.drawFrame(snap, base)
	r.drawGauge(snap, base)
	for _, p := range snap.Pieces {
		r.drawPiece(p, base)
	}
	if snap.Dropper.Visible {
		r.drawDisc(snap.Dropper.Pos, snap.Dropper.Radius, TierColor(snap.Dropper.Tier, r.tierCount), 1, base)
		r.drawLabel(snap.Dropper.Pos, snap.Dropper.Name, base.Foreground(RgbDropperGlow))
	}
	for _, f := range snap.Flashes {
		r.drawRing(f, base)
	}
	r.drawHUD(snap, base)
	if snap.HasAnnouncement {
		a := snap.Announcement
		fg := toTcell(Fade(fromTcell(RgbAnnounce), a.Alpha))
		_, y := r.view.ToScreen(core.V(0, a.Y))
		r.drawCentered(y, a.Text, base.Foreground(fg).Bold(true))
	}
	if snap.GameOver {
		r.drawGameOver(snap, base)
	}
	if r.showStats && r.stats != nil {
		r.drawStats(base)
	}
	r.screen.Show()
}

func (r *Renderer) drawFrame(snap arena.Snapshot, base tcell.Style) {
	a := snap.Arena
	style := base.Foreground(RgbFrame)
	lx, top := r.view.ToScreen(core.V(a.Left, a.CeilingY))
	rx, bottom := r.view.ToScreen(core.V(a.Right, a.FloorY))
	for y := top; y <= bottom; y++ {
		r.screen.SetContent(lx-1, y, '│', nil, style)
		r.screen.SetContent(rx, y, '│', nil, style)
	}
	for x := lx; x < rx; x++ {
		r.screen.SetContent(x, bottom, '─', nil, style)
	}
	r.screen.SetContent(lx-1, bottom, '└', nil, style)
	r.screen.SetContent(rx, bottom, '┘', nil, style)
}

// drawGauge lights the ceiling line one segment per severity step
func (r *Renderer) drawGauge(snap arena.Snapshot, base tcell.Style) {
	a := snap.Arena
	segs := max(snap.Segments, 1)
	lx, y := r.view.ToScreen(core.V(a.Left, a.CeilingY))
	rx, _ := r.view.ToScreen(core.V(a.Right, a.CeilingY))
	span := max(rx-lx, 1)
	for x := lx; x < rx; x++ {
		seg := (x - lx) * segs / span
		fg := RgbGaugeIdle
		if seg < snap.Severity {
			fg = toTcell(GaugeColor(seg, segs))
		}
		r.screen.SetContent(x, y, '▀', nil, base.Foreground(fg))
	}
}

func (r *Renderer) drawPiece(p arena.PieceView, base tcell.Style) {
	if p.Scale <= 0 {
		return
	}
	alpha := 1.0
	if p.Merging {
		alpha = 0.7
	}
	r.drawDisc(p.Pos, p.Radius*p.Scale, TierColor(p.Tier, r.tierCount), alpha, base)
	if p.Scale > 0.6 {
		r.drawLabel(p.Pos, p.Name, base.Foreground(RgbBackground))
	}
}

// drawDisc fills every cell whose center lies inside the circle
func (r *Renderer) drawDisc(center core.Vec2, radius float64, c colorful.Color, alpha float64, base tcell.Style) {
	if radius <= 0 {
		return
	}
	bg := toTcell(Fade(c, alpha))
	style := base.Background(bg)
	x0, y0 := r.view.ToScreen(center.Sub(core.V(radius, radius)))
	x1, y1 := r.view.ToScreen(center.Add(core.V(radius, radius)))
	r2 := radius * radius
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if center.Sub(r.view.ToArena(x, y)).LenSq() > r2 {
				continue
			}
			r.screen.SetContent(x, y, ' ', nil, style)
		}
	}
	cx, cy := r.view.ToScreen(center)
	r.screen.SetContent(cx, cy, ' ', nil, style)
}

// drawLabel writes the first letters of name at the piece center
func (r *Renderer) drawLabel(center core.Vec2, name string, style tcell.Style) {
	if name == "" {
		return
	}
	x, y := r.view.ToScreen(center)
	_, _, cellStyle, _ := r.screen.GetContent(x, y)
	_, bg, _ := cellStyle.Decompose()
	style = style.Background(bg)
	r.screen.SetContent(x, y, []rune(name)[0], nil, style)
}

// drawRing outlines a flash, fading with its alpha
func (r *Renderer) drawRing(f effect.Flash, base tcell.Style) {
	radius := f.Radius * f.Scale
	if radius <= 0 || f.Alpha <= 0 {
		return
	}
	fg := toTcell(Fade(fromTcell(RgbFrame), f.Alpha))
	style := base.Foreground(fg)
	steps := max(int(2*math.Pi*radius/r.view.Unit()), 8)
	for i := range steps {
		theta := 2 * math.Pi * float64(i) / float64(steps)
		p := f.Pos.Add(core.V(math.Cos(theta)*radius, math.Sin(theta)*radius))
		x, y := r.view.ToScreen(p)
		r.screen.SetContent(x, y, '·', nil, style)
	}
}

func (r *Renderer) drawHUD(snap arena.Snapshot, base tcell.Style) {
	r.drawText(1, 0, fmt.Sprintf("SCORE %d", snap.Score), base.Bold(true))
	next := "-"
	if snap.Dropper.Visible {
		next = snap.Dropper.Name
	}
	right := fmt.Sprintf("NEXT %s  STRESS %d/%d", next, snap.Severity, max(snap.Segments, 1))
	r.drawText(r.width-len([]rune(right))-1, 0, right, base.Foreground(RgbTextDim))

	hint := "click: drop  m: mute  p: pause  d: stats  q: quit"
	switch {
	case snap.State == "Idle":
		hint = "click or space to start"
	case snap.Paused:
		hint = "PAUSED  p: resume"
	}
	r.drawText(1, 1, hint, base.Foreground(RgbTextDim))
}

func (r *Renderer) drawGameOver(snap arena.Snapshot, base tcell.Style) {
	fg := toTcell(Fade(fromTcell(RgbGameOver), snap.GameOverAlpha))
	mid := r.height / 2
	r.drawCentered(mid, "GAME OVER", base.Foreground(fg).Bold(true))
	if snap.PlayAgain {
		r.drawCentered(mid+1, fmt.Sprintf("FINAL SCORE %d", snap.FinalScore), base)
		r.drawCentered(mid+2, "r: play again", base.Foreground(RgbTextDim))
	}
}

func (r *Renderer) drawStats(base tcell.Style) {
	style := base.Foreground(RgbTextDim)
	for i, line := range r.stats.Lines() {
		r.drawText(1, hudRows+i, fmt.Sprintf("%-26s %v", line.Key, line.Value), style)
	}
}

func (r *Renderer) drawCentered(y int, text string, style tcell.Style) {
	r.drawText((r.width-len([]rune(text)))/2, y, text, style)
}

func (r *Renderer) drawText(x, y int, text string, style tcell.Style) {
	for i, ch := range []rune(text) {
		r.screen.SetContent(x+i, y, ch, nil, style)
	}
}
