package terminal

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/wricardo/mcp-training/sokoban/game/engine"
)

// Canvas is the part of tcell.Screen the renderer draws into
type Canvas interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (width, height int)
}

// Dialog is a modal message drawn over the board
type Dialog struct {
	Title string
	Lines []string
}

// Renderer draws the board, status line and dialogs
type Renderer struct {
	floor  tcell.Style
	wall   tcell.Style
	goal   tcell.Style
	player tcell.Style
	box    tcell.Style
	boxOn  tcell.Style
	status tcell.Style
	dialog tcell.Style
	title  tcell.Style
}

// NewRenderer creates a renderer with the default palette
func NewRenderer() *Renderer {
	base := tcell.StyleDefault.Background(tcell.ColorBlack)
	return &Renderer{
		floor:  base,
		wall:   base.Foreground(tcell.NewRGBColor(150, 150, 150)),
		goal:   base.Foreground(tcell.ColorRed),
		player: base.Foreground(tcell.ColorYellow).Bold(true),
		box:    base.Foreground(tcell.ColorBlue).Bold(true),
		boxOn:  base.Foreground(tcell.ColorGreen).Bold(true),
		status: tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite),
		dialog: tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlue),
		title:  tcell.StyleDefault.Foreground(tcell.ColorYellow).Background(tcell.ColorBlue).Bold(true),
	}
}

// styleFor returns the style of a level-text character
func (r *Renderer) styleFor(ch rune) tcell.Style {
	switch ch {
	case '#':
		return r.wall
	case '.':
		return r.goal
	case '@', '+':
		return r.player
	case '$':
		return r.box
	case '*':
		return r.boxOn
	default:
		return r.floor
	}
}

// BoardOrigin returns where the top-left cell of a level is drawn. The board
// is centred above the status line and pinned to 0 when it does not fit.
func BoardOrigin(canvasW, canvasH, levelW, levelH int) (x, y int) {
	x = (canvasW - levelW) / 2
	y = (canvasH - 1 - levelH) / 2
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	return x, y
}

// Draw renders snap onto c, with dialog on top when it is non-nil
func (r *Renderer) Draw(c Canvas, snap engine.Snapshot, dialog *Dialog) {
	w, h := c.Size()
	ox, oy := BoardOrigin(w, h, snap.Width, snap.Height)

	for y, row := range snap.Rows {
		x := 0
		for _, ch := range row {
			drawCell(c, w, h-1, ox+x, oy+y, ch, r.styleFor(ch))
			x++
		}
	}

	status := fmt.Sprintf(" Level %d | Boxes %d/%d | Undo %d | arrows/wasd move  u undo  r restart  q quit",
		snap.LevelID, snap.BoxesHome, snap.Boxes, snap.UndoDepth)
	drawLine(c, 0, h-1, w, status, r.status, true)

	if dialog != nil {
		r.drawDialog(c, w, h, dialog)
	}
}

func (r *Renderer) drawDialog(c Canvas, w, h int, d *Dialog) {
	inner := len([]rune(d.Title))
	for _, line := range d.Lines {
		if n := len([]rune(line)); n > inner {
			inner = n
		}
	}
	boxW := inner + 4
	boxH := len(d.Lines) + 4
	x0 := (w - boxW) / 2
	y0 := (h - boxH) / 2
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}

	for y := 0; y < boxH; y++ {
		for x := 0; x < boxW; x++ {
			ch := ' '
			switch {
			case (y == 0 || y == boxH-1) && (x == 0 || x == boxW-1):
				ch = '+'
			case y == 0 || y == boxH-1:
				ch = '-'
			case x == 0 || x == boxW-1:
				ch = '|'
			}
			drawCell(c, w, h, x0+x, y0+y, ch, r.dialog)
		}
	}

	drawLine(c, x0+2, y0+1, x0+boxW-2, d.Title, r.title, false)
	for i, line := range d.Lines {
		drawLine(c, x0+2, y0+3+i, x0+boxW-2, line, r.dialog, false)
	}
}

// drawLine writes text from (x, y) and stops before column maxX. With fill
// the rest of the line up to maxX is painted in style.
func drawLine(c Canvas, x, y, maxX int, text string, style tcell.Style, fill bool) {
	for _, ch := range text {
		if x >= maxX {
			return
		}
		c.SetContent(x, y, ch, nil, style)
		x++
	}
	if !fill {
		return
	}
	for ; x < maxX; x++ {
		c.SetContent(x, y, ' ', nil, style)
	}
}

// drawCell writes one cell when it lies inside w x h
func drawCell(c Canvas, w, h, x, y int, ch rune, style tcell.Style) {
	if x < 0 || y < 0 || x >= w || y >= h {
		return
	}
	c.SetContent(x, y, ch, nil, style)
}
