// Package worker runs a game. The engine and its clock are owned by the goroutine
// calling Run; input is queued to it and state is published from it, so the
// engine itself never needs locking.
package worker

import (
	"context"
	"sync"
	"time"

	"github.com/battlesnakeio/classic/clock"
	"github.com/battlesnakeio/classic/rules"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// ReplayToken asks for a new game.
const ReplayToken = "replay"

// ErrStopped is returned by Submit once Run has returned.
var ErrStopped = errors.New("worker: stopped")

type command struct {
	token  string
	result chan bool
}

// Worker drives one engine in real time.
type Worker struct {
	FrameInterval time.Duration

	engine   *rules.Engine
	clock    *clock.Manual
	commands chan command
	done     chan struct{}
	stopOnce sync.Once
	version  uint64

	lock   sync.RWMutex
	latest rules.Snapshot
	subs   map[int]chan rules.Snapshot
	nextID int
}

// New creates the engine, loading the high score from store, and starts the
// first game. Nothing moves until Run is called.
func New(ctx context.Context, cfg rules.Config, store rules.HighScoreStore, frame time.Duration, opts ...rules.Option) *Worker {
	w := &Worker{
		FrameInterval: frame,
		clock:         clock.NewManual(time.Now()),
		commands:      make(chan command),
		done:          make(chan struct{}),
		subs:          map[int]chan rules.Snapshot{},
	}
	opts = append([]rules.Option{rules.WithListener(observe)}, opts...)
	w.engine = rules.New(ctx, cfg, w.clock, store, opts...)
	w.engine.Reset()
	w.publish()
	return w
}

// Run advances the game clock by the real time elapsed every frame and applies
// submitted input, until ctx is done. A worker runs once: after Run returns,
// calling it again returns ErrStopped.
func (w *Worker) Run(ctx context.Context) error {
	select {
	case <-w.done:
		return ErrStopped
	default:
	}
	defer w.stop()

	ticker := time.NewTicker(w.FrameInterval)
	defer ticker.Stop()

	last := time.Now()
	log.WithField("FrameInterval", w.FrameInterval).Info("worker started")
	for {
		select {
		case <-ctx.Done():
			log.Info("worker stopped")
			return ctx.Err()
		case cmd := <-w.commands:
			cmd.result <- w.apply(cmd.token)
			w.publish()
		case now := <-ticker.C:
			w.step(now.Sub(last))
			last = now
		}
	}
}

// Submit queues an input token: one of the rules.Move tokens or ReplayToken. It
// reports whether the engine accepted it.
func (w *Worker) Submit(ctx context.Context, token string) (bool, error) {
	cmd := command{token: token, result: make(chan bool, 1)}
	select {
	case w.commands <- cmd:
	case <-w.done:
		return false, ErrStopped
	case <-ctx.Done():
		return false, ctx.Err()
	}
	return <-cmd.result, nil
}

// Snapshot returns the latest published state.
func (w *Worker) Snapshot() rules.Snapshot {
	w.lock.RLock()
	defer w.lock.RUnlock()
	return w.latest
}

// Subscribe returns a channel receiving every new state, starting with the
// current one. A slow reader only misses intermediate states. The channel is
// closed by cancel or when Run returns.
func (w *Worker) Subscribe() (<-chan rules.Snapshot, func()) {
	w.lock.Lock()
	defer w.lock.Unlock()

	ch := make(chan rules.Snapshot, 1)
	ch <- w.latest
	select {
	case <-w.done:
		close(ch)
		return ch, func() {}
	default:
	}

	id := w.nextID
	w.nextID++
	w.subs[id] = ch
	subscribers.Inc()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			w.lock.Lock()
			defer w.lock.Unlock()
			if _, ok := w.subs[id]; ok {
				delete(w.subs, id)
				close(ch)
				subscribers.Dec()
			}
		})
	}
}

func (w *Worker) apply(token string) bool {
	if token == ReplayToken {
		w.engine.Replay()
		return true
	}
	return w.engine.SetDirection(token)
}

// step advances the clock by at most one tick interval, so a late frame moves
// the snake once instead of catching up on every missed tick.
func (w *Worker) step(elapsed time.Duration) {
	start := time.Now()
	if max := w.engine.Speed(); elapsed > max {
		elapsed = max
	}
	w.clock.Advance(elapsed)
	w.publish()
	frameDuration.Observe(time.Since(start).Seconds())
}

func (w *Worker) publish() {
	if v := w.engine.Version(); v == w.version && w.latest.GameID != "" {
		return
	}
	snap := w.engine.Snapshot()
	w.version = snap.Version

	w.lock.Lock()
	defer w.lock.Unlock()
	w.latest = snap
	for _, ch := range w.subs {
		select {
		case <-ch:
		default:
		}
		ch <- snap
	}
	speedGauge.Set(float64(snap.SpeedMS))
	scoreGauge.Set(float64(snap.Score))
}

func (w *Worker) stop() {
	w.stopOnce.Do(func() {
		w.lock.Lock()
		defer w.lock.Unlock()
		close(w.done)
		for id, ch := range w.subs {
			delete(w.subs, id)
			close(ch)
			subscribers.Dec()
		}
	})
}
