package rules

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
)

const storeTimeout = 2 * time.Second

// endGame stops the game timers, records the death and settles the high score.
// A replaying window still open runs out on its own.
func (e *Engine) endGame(death *Death) {
	e.stopTimers()
	e.status = GameStatusComplete
	e.death = death

	fields := log.Fields{
		"GameID": e.gameID,
		"Turn":   e.turn,
		"Score":  e.score,
		"Cause":  death.Cause,
	}
	log.WithFields(fields).Info("game over")

	if e.score > e.highScore {
		e.highScore = e.score
		e.saveHighScore()
		log.WithFields(fields).Info("new high score")
		e.emit(Event{Kind: EventHighScore, Death: death})
	}
	e.emit(Event{Kind: EventGameOver, Death: death})
}

func (e *Engine) saveHighScore() {
	if e.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	if err := e.store.Set(ctx, HighScoreKey, e.highScore); err != nil {
		log.WithError(err).WithField("GameID", e.gameID).Warn("unable to persist high score")
	}
}
