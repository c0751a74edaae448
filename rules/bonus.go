package rules

import (
	"time"

	log "github.com/sirupsen/logrus"
)

// spawnBigFood runs on the spawn timer. It only places a bonus once the player
// has scored enough and no bonus is already showing.
func (e *Engine) spawnBigFood() {
	if e.status != GameStatusRunning {
		return
	}
	if e.score < e.cfg.BonusMinScore || e.bigFood.Visible {
		return
	}

	e.bigFood = BigFood{
		Position:  e.generateFood(),
		Visible:   true,
		Countdown: e.cfg.BonusCountdown,
		Color:     bonusStartColor,
	}
	stop(&e.timers.recolor)
	stop(&e.timers.countdown)
	e.timers.recolor = e.clock.Every(e.cfg.BonusRecolor, e.recolorBigFood)
	e.timers.countdown = e.clock.Every(time.Second, e.countdownBigFood)

	log.WithFields(log.Fields{
		"GameID":   e.gameID,
		"Turn":     e.turn,
		"Position": e.bigFood.Position,
	}).Info("big food spawned")
	e.emit(Event{Kind: EventBonusSpawned})
}

func (e *Engine) recolorBigFood() {
	e.bigFood.Color = randomColor(e.rng)
	e.touch()
}

func (e *Engine) countdownBigFood() {
	e.bigFood.Countdown--
	if e.bigFood.Countdown > 0 {
		e.touch()
		return
	}
	e.hideBigFood()
	log.WithFields(log.Fields{
		"GameID": e.gameID,
		"Turn":   e.turn,
	}).Info("big food expired")
	e.emit(Event{Kind: EventBonusExpired})
}

func (e *Engine) eatBigFood() {
	e.score += e.cfg.BonusPoints
	e.hideBigFood()
	e.startSpeedRamp()
	log.WithFields(log.Fields{
		"GameID": e.gameID,
		"Turn":   e.turn,
		"Score":  e.score,
	}).Info("snake ate big food")
	e.emit(Event{Kind: EventBonusEaten})
}

func (e *Engine) hideBigFood() {
	e.bigFood.Visible = false
	stop(&e.timers.recolor)
	stop(&e.timers.countdown)
}
