package surface

import "github.com/battlesnakeio/classic/rules"

// Input tokens beyond the four directions.
const (
	TokenReplay = "replay"
	TokenQuit   = "quit"
)

// Backend is a window or terminal the game is played in.
type Backend interface {
	rules.Surface
	// SetStatus sets the lines shown under the board on the next Flush.
	SetStatus(lines []string)
	// Events delivers input tokens: rules.MoveUp and friends, TokenReplay and
	// TokenQuit.
	Events() <-chan string
	Close() error
}
