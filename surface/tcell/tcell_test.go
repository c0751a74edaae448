package tcell

import (
	"testing"

	"github.com/battlesnakeio/classic/rules"
	"github.com/battlesnakeio/classic/surface"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/require"
)

func TestKeyToken(t *testing.T) {
	tests := []struct {
		ev    *tcell.EventKey
		token string
	}{
		{tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), rules.MoveUp},
		{tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), rules.MoveDown},
		{tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), rules.MoveLeft},
		{tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), rules.MoveRight},
		{tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone), rules.MoveLeft},
		{tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone), surface.TokenReplay},
		{tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), surface.TokenQuit},
		{tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), surface.TokenQuit},
	}
	for _, test := range tests {
		token, ok := keyToken(test.ev)
		require.True(t, ok)
		require.Equal(t, test.token, token)
	}
	_, ok := keyToken(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone))
	require.False(t, ok)
}

func TestRenderToSimulationScreen(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	b, err := NewWithScreen(sim)
	require.NoError(t, err)
	defer b.Close()
	sim.SetSize(80, 30)

	b.SetStatus([]string{"Score: 0"})
	err = rules.RenderSnapshot(rules.Snapshot{
		Width:  5,
		Height: 5,
		Snake:  []rules.Point{{X: 2, Y: 2}},
		Food:   rules.Point{X: 0, Y: 0},
	}, b)
	require.NoError(t, err)

	// border corner at the top left, food glyph at the first board cell
	ch, _, _, _ := sim.GetContent(2, 1)
	require.Equal(t, '┌', ch)
	ch, _, _, _ = sim.GetContent(3, 2)
	require.Equal(t, '●', ch)
	ch, _, _, _ = sim.GetContent(2, 8)
	require.Equal(t, 'S', ch)
}

func TestEventsFromSimulationScreen(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	b, err := NewWithScreen(sim)
	require.NoError(t, err)

	sim.InjectKey(tcell.KeyUp, 0, tcell.ModNone)
	require.Equal(t, rules.MoveUp, <-b.Events())

	b.Close()
	for range b.Events() {
	}
}

func TestCloseWithUnreadEvents(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	b, err := NewWithScreen(sim)
	require.NoError(t, err)

	// more than the backend buffers, fewer than the screen queues on top
	for i := 0; i < 20; i++ {
		sim.InjectKey(tcell.KeyLeft, 0, tcell.ModNone)
	}
	b.Close()
	n := 0
	for range b.Events() {
		n++
	}
	require.True(t, n <= 20)
}
