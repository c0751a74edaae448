// Package rules implements the classic snake game: the board, the snake's
// movement and growth, collisions, the timed bonus food, the speed ramp and the
// end of game bookkeeping. An Engine is driven by a clock.Clock and is not safe for
// concurrent use; callers serialize access (see the worker package).
package rules

import (
	"context"
	"time"

	"github.com/battlesnakeio/classic/clock"
	uuid "github.com/satori/go.uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/exp/rand"
)

// HighScoreKey is the key the high score is stored under.
const HighScoreKey = "highScore"

// HighScoreStore is the persistence the engine reads the high score from at start
// up and writes it to when a game beats it.
type HighScoreStore interface {
	Get(ctx context.Context, key string) (int, bool, error)
	Set(ctx context.Context, key string, value int) error
}

// Config holds the tunables of a game. The zero value is not usable, start from
// DefaultConfig.
type Config struct {
	Width  int
	Height int
	Start  Point

	StartSpeed time.Duration
	MinSpeed   time.Duration
	SpeedStep  time.Duration
	SpeedRamp  time.Duration

	BonusSpawn     time.Duration
	BonusCountdown int
	BonusMinScore  int
	BonusRecolor   time.Duration
	BonusPoints    int

	ReplayingFor time.Duration
}

// DefaultConfig returns the settings of the classic game on a 20x20 board.
func DefaultConfig() Config {
	return Config{
		Width:          20,
		Height:         20,
		Start:          Point{X: 10, Y: 10},
		StartSpeed:     150 * time.Millisecond,
		MinSpeed:       50 * time.Millisecond,
		SpeedStep:      10 * time.Millisecond,
		SpeedRamp:      30 * time.Second,
		BonusSpawn:     30 * time.Second,
		BonusCountdown: 6,
		BonusMinScore:  4,
		BonusRecolor:   500 * time.Millisecond,
		BonusPoints:    5,
		ReplayingFor:   5 * time.Second,
	}
}

// BigFood is the timed bonus item.
type BigFood struct {
	Position  Point  `json:"position"`
	Visible   bool   `json:"visible"`
	Countdown int    `json:"countdown"`
	Color     string `json:"color"`
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand sets the random source used for food placement and bonus colors.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

// WithListener registers a callback for game events. Listeners run synchronously
// on the engine's goroutine.
func WithListener(l func(Event)) Option {
	return func(e *Engine) { e.listeners = append(e.listeners, l) }
}

type timers struct {
	tick      clock.Timer
	spawn     clock.Timer
	recolor   clock.Timer
	countdown clock.Timer
	ramp      clock.Timer
	replaying clock.Timer
}

// Engine owns the state of one player's game.
type Engine struct {
	cfg       Config
	clock     clock.Clock
	store     HighScoreStore
	rng       *rand.Rand
	listeners []func(Event)

	gameID    string
	status    GameStatus
	turn      int64
	snake     Snake
	direction Point
	committed Point
	food      Point
	bigFood   BigFood
	score     int
	highScore int
	speed     time.Duration
	death     *Death
	replaying bool
	version   uint64

	timers timers
}

// New creates an engine and loads the high score from the store. A store that
// fails is logged and the high score starts at zero. The game is not started until
// Reset is called.
func New(ctx context.Context, cfg Config, clk clock.Clock, store HighScoreStore, opts ...Option) *Engine {
	e := &Engine{
		cfg:    cfg,
		clock:  clk,
		store:  store,
		status: GameStatusStopped,
		speed:  cfg.StartSpeed,
		snake:  Snake{Body: []Point{cfg.Start}},
		bigFood: BigFood{
			Color: bonusStartColor,
		},
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	e.loadHighScore(ctx)
	return e
}

func (e *Engine) loadHighScore(ctx context.Context) {
	if e.store == nil {
		return
	}
	v, ok, err := e.store.Get(ctx, HighScoreKey)
	if err != nil {
		log.WithError(err).Warn("unable to load high score, starting from 0")
		return
	}
	if ok && v > 0 {
		e.highScore = v
	}
}

// Reset starts a new game from the canonical initial state. Every timer of the
// previous game, the replaying window included, is cancelled before the new ones
// are scheduled.
func (e *Engine) Reset() {
	e.stopTimers()
	stop(&e.timers.replaying)

	e.gameID = uuid.NewV4().String()
	e.status = GameStatusRunning
	e.turn = 0
	e.snake = Snake{Body: []Point{e.cfg.Start}}
	e.direction = DirectionNone
	e.committed = DirectionNone
	e.food = e.generateFood()
	e.score = 0
	e.bigFood.Visible = false
	e.speed = e.cfg.StartSpeed
	e.death = nil
	e.replaying = false

	e.timers.spawn = e.clock.Every(e.cfg.BonusSpawn, e.spawnBigFood)
	e.startSpeedRamp()
	e.scheduleTick()

	log.WithFields(log.Fields{
		"GameID":    e.gameID,
		"Width":     e.cfg.Width,
		"Height":    e.cfg.Height,
		"HighScore": e.highScore,
	}).Info("game reset")
	e.emit(Event{Kind: EventReset})
}

// Replay resets the game and raises the replaying signal for a short window.
func (e *Engine) Replay() {
	e.Reset()
	e.replaying = true
	e.timers.replaying = e.clock.AfterFunc(e.cfg.ReplayingFor, func() {
		e.timers.replaying = nil
		e.replaying = false
		e.touch()
	})
	e.touch()
}

// SetDirection changes the direction used by the next tick. Tokens that are not
// a direction, or that travel on the axis the snake is already moving on, are
// ignored. It reports whether the direction was accepted.
func (e *Engine) SetDirection(token string) bool {
	if e.status != GameStatusRunning {
		return false
	}
	dir, ok := ParseMove(token)
	if !ok {
		return false
	}
	if sameAxis(e.committed, dir) {
		return false
	}
	e.direction = dir
	e.touch()
	return true
}

// Speed returns the current tick interval.
func (e *Engine) Speed() time.Duration {
	return e.speed
}

// Status returns the lifecycle state of the game.
func (e *Engine) Status() GameStatus {
	return e.status
}

// Version changes every time the observable state changes.
func (e *Engine) Version() uint64 {
	return e.version
}

func (e *Engine) scheduleTick() {
	e.timers.tick = e.clock.AfterFunc(e.speed, func() {
		e.timers.tick = nil
		e.Tick()
		if e.status == GameStatusRunning {
			e.scheduleTick()
		}
	})
}

func (e *Engine) stopTimers() {
	stop(&e.timers.tick)
	stop(&e.timers.spawn)
	stop(&e.timers.recolor)
	stop(&e.timers.countdown)
	stop(&e.timers.ramp)
}

func stop(t *clock.Timer) {
	if *t != nil {
		(*t).Stop()
		*t = nil
	}
}

func (e *Engine) touch() {
	e.version++
}

func (e *Engine) emit(ev Event) {
	ev.GameID = e.gameID
	ev.Turn = e.turn
	ev.Score = e.score
	e.touch()
	for _, l := range e.listeners {
		l(ev)
	}
}
