package rules

// Death records why and when the game ended.
type Death struct {
	Turn  int64  `json:"turn"`
	Cause string `json:"cause"`
}

// checkForDeath looks at the moved snake and reports whether it died. Possible
// causes are running off the board and running into its own body.
func checkForDeath(width, height int, turn int64, s *Snake) *Death {
	head := s.Head()
	if deathByOutOfBounds(head, width, height) {
		return &Death{Turn: turn, Cause: DeathCauseWallCollision}
	}
	for i, b := range s.Body {
		if i == 0 {
			continue
		}
		if deathByBodyCollision(head, b) {
			return &Death{Turn: turn, Cause: DeathCauseSnakeSelfCollision}
		}
	}
	return nil
}

func deathByBodyCollision(head, body Point) bool {
	return head.Equal(body)
}

func deathByOutOfBounds(head Point, width, height int) bool {
	return (head.X < 0) || (head.X >= width) || (head.Y < 0) || (head.Y >= height)
}
