package surface

import (
	"fmt"

	"github.com/battlesnakeio/classic/rules"
)

// StatusLines returns the score panel for a snapshot.
func StatusLines(snap rules.Snapshot) []string {
	lines := []string{
		fmt.Sprintf("Score: %d", snap.Score),
		fmt.Sprintf("High Score: %d", snap.HighScore),
	}
	switch {
	case snap.Replaying:
		lines = append(lines, "Replaying...")
	case snap.GameOver:
		over := "Game Over!"
		if snap.Death != nil {
			over = fmt.Sprintf("Game Over! (%s)", snap.Death.Cause)
		}
		lines = append(lines, over, "Press r to replay, q to quit")
	case snap.Direction == rules.DirectionNone:
		lines = append(lines, "Use the arrow keys to start")
	}
	return lines
}
