package rules

import (
	log "github.com/sirupsen/logrus"
)

// startSpeedRamp (re)starts the repeating timer that shortens the tick interval.
// Any ramp timer already running is replaced, so the next step is a full period
// away.
func (e *Engine) startSpeedRamp() {
	stop(&e.timers.ramp)
	e.timers.ramp = e.clock.Every(e.cfg.SpeedRamp, e.speedUp)
}

func (e *Engine) speedUp() {
	next := e.speed - e.cfg.SpeedStep
	if next < e.cfg.MinSpeed {
		next = e.cfg.MinSpeed
	}
	if next == e.speed {
		return
	}
	e.speed = next
	log.WithFields(log.Fields{
		"GameID": e.gameID,
		"Speed":  e.speed,
	}).Info("speed up")
	e.emit(Event{Kind: EventSpeedUp})
}
