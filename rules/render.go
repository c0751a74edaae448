package rules

import "fmt"

// Align is the horizontal anchor of drawn text.
type Align int

// Text alignments.
const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Surface is a 2D drawing target addressed in display units, CellSize units per
// grid cell. Colors are names ("green") or hex strings ("#A0B1C2").
type Surface interface {
	Clear(width, height int)
	FillRect(x, y, w, h int, color string)
	StrokeRect(x, y, w, h int, color string)
	FillCircle(cx, cy, r int, color string)
	Text(x, y int, text, color string, align Align)
	Flush() error
}

const segmentSize = CellSize - 2

// Render draws the current state onto the surface.
func (e *Engine) Render(s Surface) error {
	return RenderSnapshot(e.Snapshot(), s)
}

// RenderSnapshot draws a frame: background, snake, food, and the bonus with its
// countdown when visible. It only reads the snapshot.
func RenderSnapshot(snap Snapshot, s Surface) error {
	width, height := snap.Width*CellSize, snap.Height*CellSize
	s.Clear(width, height)
	s.FillRect(0, 0, width, height, backgroundColor)

	for i, p := range snap.Snake {
		color := segmentColor(i)
		s.FillRect(p.X*CellSize, p.Y*CellSize, segmentSize, segmentSize, color)
		s.StrokeRect(p.X*CellSize, p.Y*CellSize, segmentSize, segmentSize, outlineColor)
	}

	s.FillCircle(snap.Food.X*CellSize+foodRadius, snap.Food.Y*CellSize+foodRadius, foodRadius, foodColor)

	if snap.BigFood.Visible {
		b := snap.BigFood
		s.FillCircle(b.Position.X*CellSize+bonusRadius, b.Position.Y*CellSize+bonusRadius, bonusRadius, b.Color)
		s.Text(width/2, height/2, fmt.Sprintf("Time: %d", b.Countdown), labelColor, AlignCenter)
	}
	return s.Flush()
}
