// Package sound plays short tones for game events.
package sound

import (
	"sync"
	"time"

	"github.com/battlesnakeio/classic/rules"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	log "github.com/sirupsen/logrus"
)

const sampleRate = beep.SampleRate(44100)

type note struct {
	freq     float64
	duration time.Duration
}

var tunes = map[rules.EventKind][]note{
	rules.EventFoodEaten:    {{880, 60 * time.Millisecond}},
	rules.EventBonusSpawned: {{660, 80 * time.Millisecond}, {990, 80 * time.Millisecond}},
	rules.EventBonusEaten:   {{523, 70 * time.Millisecond}, {659, 70 * time.Millisecond}, {784, 120 * time.Millisecond}},
	rules.EventBonusExpired: {{330, 150 * time.Millisecond}},
	rules.EventSpeedUp:      {{440, 40 * time.Millisecond}, {554, 40 * time.Millisecond}},
	rules.EventGameOver:     {{392, 150 * time.Millisecond}, {311, 150 * time.Millisecond}, {196, 300 * time.Millisecond}},
	rules.EventHighScore:    {{784, 100 * time.Millisecond}, {1047, 200 * time.Millisecond}},
}

// Player plays a tune for each game event. A Player that failed to open the
// audio device stays silent.
type Player struct {
	mixer  *beep.Mixer
	volume float64
	mu     sync.Mutex
	ready  bool
}

// NewPlayer returns a silent player. Call Initialize to open the speaker.
func NewPlayer() *Player {
	return &Player{mixer: &beep.Mixer{}, volume: -2}
}

// Initialize opens the audio device.
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ready {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.ready = true
	return nil
}

// Close stops playback and releases the device.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.ready = false
}

// OnEvent queues the tune for ev, if it has one. It can be registered with
// rules.WithListener.
func (p *Player) OnEvent(ev rules.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready {
		return
	}
	s, err := tune(tunes[ev.Kind])
	if err != nil {
		log.WithError(err).Debug("unable to build tune")
		return
	}
	if s == nil {
		return
	}
	speaker.Lock()
	p.mixer.Add(&effects.Volume{Streamer: s, Base: 2, Volume: p.volume})
	speaker.Unlock()
}

func tune(notes []note) (beep.Streamer, error) {
	if len(notes) == 0 {
		return nil, nil
	}
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		tone, err := generators.SineTone(sampleRate, n.freq)
		if err != nil {
			return nil, err
		}
		parts = append(parts, beep.Take(sampleRate.N(n.duration), tone))
	}
	return beep.Seq(parts...), nil
}
