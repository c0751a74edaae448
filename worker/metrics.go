package worker

import (
	"github.com/battlesnakeio/classic/rules"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	events = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "snake",
			Subsystem: "worker",
			Name:      "events_total",
			Help:      "Game events by kind.",
		},
		[]string{"kind"},
	)
	finalScores = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "snake",
			Subsystem: "worker",
			Name:      "final_score",
			Help:      "Score at game over.",
			Buckets:   prometheus.LinearBuckets(0, 5, 10),
		},
	)
	frameDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "snake",
			Subsystem: "worker",
			Name:      "frame_seconds",
			Help:      "Time spent advancing the game per frame.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 8),
		},
	)
	scoreGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "snake",
			Subsystem: "worker",
			Name:      "score",
			Help:      "Score of the current game.",
		},
	)
	speedGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "snake",
			Subsystem: "worker",
			Name:      "speed_ms",
			Help:      "Current tick interval in milliseconds.",
		},
	)
	subscribers = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "snake",
			Subsystem: "worker",
			Name:      "subscribers",
			Help:      "Open snapshot subscriptions.",
		},
	)
)

func init() {
	prometheus.MustRegister(events, finalScores, frameDuration, scoreGauge, speedGauge, subscribers)
}

func observe(ev rules.Event) {
	events.WithLabelValues(string(ev.Kind)).Inc()
	if ev.Kind == rules.EventGameOver {
		finalScores.Observe(float64(ev.Score))
	}
}
