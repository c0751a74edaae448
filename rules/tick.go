package rules

import (
	"math"

	log "github.com/sirupsen/logrus"
)

const (
	foodRadius  = 9
	bonusRadius = 18
	headRadius  = 9
)

// Tick advances the game one step: the snake moves, food and bonus food are
// resolved, then the board and body are checked for a collision. Once the game is
// over Tick does nothing.
func (e *Engine) Tick() {
	if e.status != GameStatusRunning {
		return
	}
	e.turn++
	e.committed = e.direction

	// a snake that has not been given a direction stays put
	if e.direction.IsZero() {
		e.emit(Event{Kind: EventTick})
		return
	}

	head := e.snake.Move(e.direction)

	switch {
	case head.Equal(e.food):
		e.score++
		e.food = e.generateFood()
		log.WithFields(log.Fields{
			"GameID": e.gameID,
			"Turn":   e.turn,
			"Score":  e.score,
		}).Debug("snake ate")
		e.emit(Event{Kind: EventFoodEaten})
	case e.bigFood.Visible && touchingBigFood(head, e.bigFood.Position):
		e.eatBigFood()
	default:
		e.snake.RemoveTail()
	}

	if death := checkForDeath(e.cfg.Width, e.cfg.Height, e.turn, &e.snake); death != nil {
		e.endGame(death)
		return
	}
	e.emit(Event{Kind: EventTick})
}

// generateFood picks a random cell on the board. The cell may be under the snake.
func (e *Engine) generateFood() Point {
	return Point{
		X: e.rng.Intn(e.cfg.Width),
		Y: e.rng.Intn(e.cfg.Height),
	}
}

// touchingBigFood compares the distance between the center of the head cell and
// the center of the bonus circle against the sum of their radii.
func touchingBigFood(head, bonus Point) bool {
	hx, hy := float64(head.X*CellSize+headRadius), float64(head.Y*CellSize+headRadius)
	bx, by := float64(bonus.X*CellSize+bonusRadius), float64(bonus.Y*CellSize+bonusRadius)
	return math.Hypot(hx-bx, hy-by) < bonusRadius+headRadius
}
