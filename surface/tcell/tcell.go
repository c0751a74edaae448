// Package tcell plays the game in a terminal through tcell, with true color
// where the terminal supports it.
package tcell

import (
	"github.com/battlesnakeio/classic/rules"
	"github.com/battlesnakeio/classic/surface"
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Backend is a terminal surface on a tcell screen.
type Backend struct {
	*surface.Terminal
	screen tcell.Screen
	events chan string
	done   chan struct{}
}

// New initializes the terminal. Close must be called to restore it.
func New() (*Backend, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewWithScreen(s)
}

// NewWithScreen uses an existing, uninitialized screen.
func NewWithScreen(s tcell.Screen) (*Backend, error) {
	if err := s.Init(); err != nil {
		return nil, err
	}
	s.HideCursor()
	b := &Backend{
		Terminal: surface.NewTerminal(screen{s}, 2, 1),
		screen:   s,
		events:   make(chan string, 16),
		done:     make(chan struct{}),
	}
	go b.pollEvents()
	return b, nil
}

// Events implements surface.Backend.
func (b *Backend) Events() <-chan string {
	return b.events
}

// Close restores the terminal.
func (b *Backend) Close() error {
	close(b.done)
	b.screen.Fini()
	return nil
}

func (b *Backend) pollEvents() {
	defer close(b.events)
	for {
		ev := b.screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if token, ok := keyToken(ev); ok {
				select {
				case b.events <- token:
				case <-b.done:
					return
				}
			}
		case *tcell.EventResize:
			b.screen.Sync()
		}
	}
}

func keyToken(ev *tcell.EventKey) (string, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return rules.MoveUp, true
	case tcell.KeyDown:
		return rules.MoveDown, true
	case tcell.KeyLeft:
		return rules.MoveLeft, true
	case tcell.KeyRight:
		return rules.MoveRight, true
	case tcell.KeyEnter:
		return surface.TokenReplay, true
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return surface.TokenQuit, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'k':
			return rules.MoveUp, true
		case 's', 'j':
			return rules.MoveDown, true
		case 'a', 'h':
			return rules.MoveLeft, true
		case 'd', 'l':
			return rules.MoveRight, true
		case 'r', ' ':
			return surface.TokenReplay, true
		case 'q':
			return surface.TokenQuit, true
		}
	}
	return "", false
}

type screen struct{ s tcell.Screen }

func (sc screen) Clear() {
	sc.s.Clear()
}

func (sc screen) SetCell(x, y int, ch rune, fg, bg colorful.Color) {
	style := tcell.StyleDefault.Foreground(color(fg)).Background(color(bg))
	sc.s.SetContent(x, y, ch, nil, style)
}

func (sc screen) Flush() error {
	sc.s.Show()
	return nil
}

func color(c colorful.Color) tcell.Color {
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
