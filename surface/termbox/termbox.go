// Package termbox plays the game in a terminal through termbox-go.
package termbox

import (
	"github.com/battlesnakeio/classic/rules"
	"github.com/battlesnakeio/classic/surface"
	"github.com/lucasb-eyer/go-colorful"
	termbox "github.com/nsf/termbox-go"
)

// Backend is a terminal surface. Colors are mapped onto the xterm 256 color
// palette.
type Backend struct {
	*surface.Terminal
	events  chan string
	done    chan struct{}
	stopped chan struct{}
}

// New initializes the terminal. Close must be called to restore it.
func New() (*Backend, error) {
	if err := termbox.Init(); err != nil {
		return nil, err
	}
	termbox.SetOutputMode(termbox.Output256)
	b := &Backend{
		Terminal: surface.NewTerminal(screen{}, 2, 1),
		events:   make(chan string, 16),
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
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
	select {
	case <-b.stopped:
	default:
		termbox.Interrupt()
	}
	termbox.Close()
	return nil
}

func (b *Backend) pollEvents() {
	defer close(b.stopped)
	for {
		ev := termbox.PollEvent()
		switch ev.Type {
		case termbox.EventInterrupt, termbox.EventError:
			close(b.events)
			return
		case termbox.EventKey:
			if token, ok := keyToken(ev); ok {
				b.deliver(token)
			}
		}
	}
}

// deliver hands a token to the reader. It gives up once Close is called, so a
// full buffer nobody drains cannot keep the poller from seeing the interrupt.
func (b *Backend) deliver(token string) bool {
	select {
	case b.events <- token:
		return true
	case <-b.done:
		return false
	}
}

func keyToken(ev termbox.Event) (string, bool) {
	switch ev.Key {
	case termbox.KeyArrowUp:
		return rules.MoveUp, true
	case termbox.KeyArrowDown:
		return rules.MoveDown, true
	case termbox.KeyArrowLeft:
		return rules.MoveLeft, true
	case termbox.KeyArrowRight:
		return rules.MoveRight, true
	case termbox.KeyEnter, termbox.KeySpace:
		return surface.TokenReplay, true
	case termbox.KeyEsc, termbox.KeyCtrlC:
		return surface.TokenQuit, true
	}
	switch ev.Ch {
	case 'w', 'k':
		return rules.MoveUp, true
	case 's', 'j':
		return rules.MoveDown, true
	case 'a', 'h':
		return rules.MoveLeft, true
	case 'd', 'l':
		return rules.MoveRight, true
	case 'r':
		return surface.TokenReplay, true
	case 'q':
		return surface.TokenQuit, true
	}
	return "", false
}

type screen struct{}

func (screen) Clear() {
	termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)
}

func (screen) SetCell(x, y int, ch rune, fg, bg colorful.Color) {
	termbox.SetCell(x, y, ch, attribute(fg), attribute(bg))
}

func (screen) Flush() error {
	return termbox.Flush()
}
