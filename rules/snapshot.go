package rules

// Snapshot is a copy of everything a UI needs to draw a frame and show the
// score, high score, game over and replay signals.
type Snapshot struct {
	GameID        string     `json:"gameId"`
	Status        GameStatus `json:"status"`
	Turn          int64      `json:"turn"`
	Width         int        `json:"width"`
	Height        int        `json:"height"`
	Snake         []Point    `json:"snake"`
	Direction     Point      `json:"direction"`
	Food          Point      `json:"food"`
	BigFood       BigFood    `json:"bigFood"`
	Score         int        `json:"score"`
	HighScore     int        `json:"highScore"`
	SpeedMS       int64      `json:"speedMs"`
	GameOver      bool       `json:"gameOver"`
	ReplayVisible bool       `json:"replayVisible"`
	Replaying     bool       `json:"replaying"`
	Death         *Death     `json:"death,omitempty"`
	Version       uint64     `json:"version"`
}

// Snapshot copies the current state.
func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		GameID:    e.gameID,
		Status:    e.status,
		Turn:      e.turn,
		Width:     e.cfg.Width,
		Height:    e.cfg.Height,
		Snake:     e.snake.clone(),
		Direction: e.direction,
		Food:      e.food,
		BigFood:   e.bigFood,
		Score:     e.score,
		HighScore: e.highScore,
		SpeedMS:   e.speed.Milliseconds(),
		GameOver:  e.status == GameStatusComplete,
		Replaying: e.replaying,
		Version:   e.version,
	}
	s.ReplayVisible = s.GameOver
	if e.death != nil {
		d := *e.death
		s.Death = &d
	}
	return s
}
