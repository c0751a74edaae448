// Package raylib plays the game in a desktop window. Every call must be made
// from the main goroutine.
package raylib

import (
	"image/color"

	"github.com/battlesnakeio/classic/rules"
	"github.com/battlesnakeio/classic/surface"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	statusHeight   = 80
	statusFontSize = 20
	labelFontSize  = 24
)

var keys = []struct {
	key   int32
	token string
}{
	{rl.KeyUp, rules.MoveUp},
	{rl.KeyW, rules.MoveUp},
	{rl.KeyDown, rules.MoveDown},
	{rl.KeyS, rules.MoveDown},
	{rl.KeyLeft, rules.MoveLeft},
	{rl.KeyA, rules.MoveLeft},
	{rl.KeyRight, rules.MoveRight},
	{rl.KeyD, rules.MoveRight},
	{rl.KeyR, surface.TokenReplay},
	{rl.KeyEnter, surface.TokenReplay},
	{rl.KeySpace, surface.TokenReplay},
	{rl.KeyQ, surface.TokenQuit},
}

// Backend is a raylib window sized for a width x height board.
type Backend struct {
	events  chan string
	status  []string
	height  int
	colors  map[string]color.RGBA
	drawing bool
}

// New opens the window.
func New(width, height int) *Backend {
	w, h := int32(width*rules.CellSize), int32(height*rules.CellSize)
	rl.SetConfigFlags(rl.FlagVsyncHint)
	rl.InitWindow(w, h+statusHeight, "Snake")
	rl.SetExitKey(0)
	rl.SetTargetFPS(60)
	return &Backend{
		events: make(chan string, 16),
		height: int(h),
		colors: map[string]color.RGBA{},
	}
}

// Events implements surface.Backend. Keys are read when a frame is flushed.
func (b *Backend) Events() <-chan string {
	return b.events
}

// SetStatus implements surface.Backend.
func (b *Backend) SetStatus(lines []string) {
	b.status = lines
}

// Close closes the window.
func (b *Backend) Close() error {
	rl.CloseWindow()
	return nil
}

// Clear implements rules.Surface.
func (b *Backend) Clear(width, height int) {
	rl.BeginDrawing()
	b.drawing = true
	rl.ClearBackground(rl.Black)
}

// FillRect implements rules.Surface.
func (b *Backend) FillRect(x, y, w, h int, c string) {
	rl.DrawRectangle(int32(x), int32(y), int32(w), int32(h), b.color(c))
}

// StrokeRect implements rules.Surface.
func (b *Backend) StrokeRect(x, y, w, h int, c string) {
	rl.DrawRectangleLines(int32(x), int32(y), int32(w), int32(h), b.color(c))
}

// FillCircle implements rules.Surface.
func (b *Backend) FillCircle(cx, cy, r int, c string) {
	rl.DrawCircle(int32(cx), int32(cy), float32(r), b.color(c))
}

// Text implements rules.Surface.
func (b *Backend) Text(x, y int, text, c string, align rules.Align) {
	w := rl.MeasureText(text, labelFontSize)
	px := int32(x)
	switch align {
	case rules.AlignCenter:
		px -= w / 2
	case rules.AlignRight:
		px -= w
	}
	rl.DrawText(text, px, int32(y)-labelFontSize/2, labelFontSize, b.color(c))
}

// Flush draws the status panel, ends the frame and collects input.
func (b *Backend) Flush() error {
	if !b.drawing {
		return nil
	}
	for i, line := range b.status {
		y := int32(b.height + 5 + i*(statusFontSize+4))
		rl.DrawText(line, 10, y, statusFontSize, rl.White)
	}
	rl.EndDrawing()
	b.drawing = false

	if rl.WindowShouldClose() {
		b.send(surface.TokenQuit)
	}
	for _, k := range keys {
		if rl.IsKeyPressed(k.key) {
			b.send(k.token)
		}
	}
	return nil
}

func (b *Backend) send(token string) {
	select {
	case b.events <- token:
	default:
	}
}

func (b *Backend) color(name string) color.RGBA {
	if c, ok := b.colors[name]; ok {
		return c
	}
	c := toRGBA(name)
	b.colors[name] = c
	return c
}

func toRGBA(name string) color.RGBA {
	r, g, bl := surface.MustParseColor(name).RGB255()
	return color.RGBA{R: r, G: g, B: bl, A: 255}
}
