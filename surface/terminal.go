package surface

import (
	"github.com/battlesnakeio/classic/rules"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"
)

// Screen is a grid of character cells, implemented by the terminal backends.
type Screen interface {
	Clear()
	SetCell(x, y int, ch rune, fg, bg colorful.Color)
	Flush() error
}

// Columns per grid cell, so cells come out roughly square.
const cellColumns = 2

var (
	borderColor = MustParseColor("white")
	titleColor  = MustParseColor("white")
)

// Terminal rasterizes frames onto a Screen. The board is drawn inside a border
// whose top left corner is at (left, top); status lines go below it.
type Terminal struct {
	screen    Screen
	left, top int
	cols      int
	rows      int
	bg        []colorful.Color
	status    []string
}

// NewTerminal returns a terminal surface drawing on s.
func NewTerminal(s Screen, left, top int) *Terminal {
	return &Terminal{screen: s, left: left, top: top}
}

// Clear implements rules.Surface. Width and height are in display units.
func (t *Terminal) Clear(width, height int) {
	t.cols = width / rules.CellSize * cellColumns
	t.rows = height / rules.CellSize
	t.bg = make([]colorful.Color, t.cols*t.rows)
	t.screen.Clear()
	t.renderBoard()
}

// SetStatus sets the lines drawn under the board.
func (t *Terminal) SetStatus(lines []string) {
	t.status = lines
}

// FillRect implements rules.Surface.
func (t *Terminal) FillRect(x, y, w, h int, color string) {
	c := MustParseColor(color)
	t.cells(x, y, w, h, func(col, row int) {
		t.set(col, row, ' ', c, c)
	})
}

// StrokeRect implements rules.Surface. Outlines are thinner than a cell and are
// not drawn.
func (t *Terminal) StrokeRect(x, y, w, h int, color string) {}

// FillCircle implements rules.Surface. Circles that fit in one grid cell are
// drawn as a glyph on the existing background, larger ones fill their cells.
func (t *Terminal) FillCircle(cx, cy, r int, color string) {
	c := MustParseColor(color)
	if 2*r < rules.CellSize {
		col := floorDiv(cx, rules.CellSize) * cellColumns
		row := floorDiv(cy, rules.CellSize)
		t.set(col, row, '●', c, t.background(col, row))
		t.set(col+1, row, ' ', c, t.background(col+1, row))
		return
	}
	t.cells(cx-r, cy-r, 2*r, 2*r, func(col, row int) {
		t.set(col, row, ' ', c, c)
	})
}

// Text implements rules.Surface.
func (t *Terminal) Text(x, y int, text, color string, align rules.Align) {
	c := MustParseColor(color)
	col := floorDiv(x, rules.CellSize) * cellColumns
	row := floorDiv(y, rules.CellSize)
	switch align {
	case rules.AlignCenter:
		col -= runewidth.StringWidth(text) / 2
	case rules.AlignRight:
		col -= runewidth.StringWidth(text)
	}
	for _, ch := range text {
		t.set(col, row, ch, c, t.background(col, row))
		col += runewidth.RuneWidth(ch)
	}
}

// Flush draws the status lines and shows the frame.
func (t *Terminal) Flush() error {
	for i, line := range t.status {
		tbprint(t.screen, t.left, t.top+t.rows+2+i, titleColor, colorful.Color{}, line)
	}
	return t.screen.Flush()
}

// cells calls f for every board cell the display rectangle touches.
func (t *Terminal) cells(x, y, w, h int, f func(col, row int)) {
	if w <= 0 || h <= 0 {
		return
	}
	c0, c1 := floorDiv(x, rules.CellSize), floorDiv(x+w-1, rules.CellSize)
	r0, r1 := floorDiv(y, rules.CellSize), floorDiv(y+h-1, rules.CellSize)
	for row := r0; row <= r1; row++ {
		for c := c0; c <= c1; c++ {
			for i := 0; i < cellColumns; i++ {
				f(c*cellColumns+i, row)
			}
		}
	}
}

func (t *Terminal) inside(col, row int) bool {
	return col >= 0 && col < t.cols && row >= 0 && row < t.rows
}

func (t *Terminal) background(col, row int) colorful.Color {
	if !t.inside(col, row) {
		return colorful.Color{}
	}
	return t.bg[row*t.cols+col]
}

func (t *Terminal) set(col, row int, ch rune, fg, bg colorful.Color) {
	if !t.inside(col, row) {
		return
	}
	t.bg[row*t.cols+col] = bg
	t.screen.SetCell(t.left+1+col, t.top+1+row, ch, fg, bg)
}

func (t *Terminal) renderBoard() {
	var (
		left   = t.left
		right  = t.left + t.cols + 1
		top    = t.top
		bottom = t.top + t.rows + 1
		bg     = colorful.Color{}
	)
	for i := top + 1; i < bottom; i++ {
		t.screen.SetCell(left, i, '│', borderColor, bg)
		t.screen.SetCell(right, i, '│', borderColor, bg)
	}
	for i := left + 1; i < right; i++ {
		t.screen.SetCell(i, top, '─', borderColor, bg)
		t.screen.SetCell(i, bottom, '─', borderColor, bg)
	}
	t.screen.SetCell(left, top, '┌', borderColor, bg)
	t.screen.SetCell(left, bottom, '└', borderColor, bg)
	t.screen.SetCell(right, top, '┐', borderColor, bg)
	t.screen.SetCell(right, bottom, '┘', borderColor, bg)

	tbprint(t.screen, left, top-1, titleColor, bg, "Snake!")
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}

func tbprint(s Screen, x, y int, fg, bg colorful.Color, msg string) {
	for _, c := range msg {
		s.SetCell(x, y, c, fg, bg)
		x += runewidth.RuneWidth(c)
	}
}
