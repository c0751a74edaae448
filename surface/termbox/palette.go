package termbox

import (
	"github.com/battlesnakeio/classic/surface"
	"github.com/lucasb-eyer/go-colorful"
	termbox "github.com/nsf/termbox-go"
)

// xterm colors 16-255: a 6x6x6 cube followed by 24 grays. The 16 system colors
// are left out as terminals theme them.
var xterm = func() []colorful.Color {
	levels := []float64{0, 95, 135, 175, 215, 255}
	var p []colorful.Color
	for _, r := range levels {
		for _, g := range levels {
			for _, b := range levels {
				p = append(p, colorful.Color{R: r / 255, G: g / 255, B: b / 255})
			}
		}
	}
	for i := 0; i < 24; i++ {
		v := float64(8+10*i) / 255
		p = append(p, colorful.Color{R: v, G: v, B: v})
	}
	return p
}()

var attributes = map[colorful.Color]termbox.Attribute{}

// attribute returns the Output256 attribute closest to c. In that mode
// attribute n selects xterm color n-1.
func attribute(c colorful.Color) termbox.Attribute {
	if a, ok := attributes[c]; ok {
		return a
	}
	a := termbox.Attribute(16 + surface.Nearest(c, xterm) + 1)
	attributes[c] = a
	return a
}
