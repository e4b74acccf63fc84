// Package metrics exposes Prometheus metrics for stepping sessions and the
// holes played in them.
package metrics

import (
	"net/http"
	"time"

	"github.com/lox/golfforbots/internal/game"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager owns every golfforbots metric. A nil *Manager is valid and records
// nothing.
type Manager struct {
	namespace      string
	subsystem      string
	latencyBuckets []float64
	enabled        bool
	registry       *prometheus.Registry

	sessionsActive prometheus.Gauge
	sessionsTotal  prometheus.Counter
	stepLatency    prometheus.Histogram
	errors         *prometheus.CounterVec

	strokes       *prometheus.CounterVec
	penalties     prometheus.Counter
	holesStarted  prometheus.Counter
	holesComplete prometheus.Counter
	holeScore     prometheus.Histogram
	truncations   prometheus.Counter
	regenerations prometheus.Counter
}

// NewManager creates a metrics manager on its own registry unless one is
// supplied.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:      "golf",
		subsystem:      "gym",
		latencyBuckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25},
		enabled:        true,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.sessionsActive = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "sessions_active",
		Help:      "Number of connected stepping sessions",
	})
	m.sessionsTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "sessions_total",
		Help:      "Total stepping sessions opened",
	})
	m.stepLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "step_latency_seconds",
		Help:      "Time to resolve one step request",
		Buckets:   m.latencyBuckets,
	})
	m.errors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_total",
		Help:      "Error replies sent to clients by code",
	}, []string{"code"})

	m.strokes = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "strokes_total",
		Help:      "Strokes played by outcome and landing terrain",
	}, []string{"outcome", "terrain"})
	m.penalties = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "penalty_strokes_total",
		Help:      "Penalty strokes charged for out of bounds and water",
	})
	m.holesStarted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "holes_started_total",
		Help:      "Holes generated",
	})
	m.holesComplete = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "holes_completed_total",
		Help:      "Holes finished on the green",
	})
	m.holeScore = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "hole_score_strokes",
		Help:      "Strokes taken on completed holes",
		Buckets:   prometheus.LinearBuckets(1, 1, 20),
	})
	m.truncations = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "episode_truncations_total",
		Help:      "Episodes cut off at the score cap",
	})
	m.regenerations = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "layout_regenerations_total",
		Help:      "Hole layouts discarded because a placement ran out of retries",
	})
}

func (m *Manager) active() bool { return m != nil && m.enabled }

// Registry returns the registry metrics are registered on.
func (m *Manager) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// SessionOpened records a new connection.
func (m *Manager) SessionOpened() {
	if !m.active() {
		return
	}
	m.sessionsActive.Inc()
	m.sessionsTotal.Inc()
}

// SessionClosed records a closed connection.
func (m *Manager) SessionClosed() {
	if !m.active() {
		return
	}
	m.sessionsActive.Dec()
}

// ObserveStep records how long a step took.
func (m *Manager) ObserveStep(d time.Duration) {
	if !m.active() {
		return
	}
	m.stepLatency.Observe(d.Seconds())
}

// RecordError counts an error reply.
func (m *Manager) RecordError(code string) {
	if !m.active() {
		return
	}
	m.errors.WithLabelValues(code).Inc()
}

// RecordTruncation counts an episode cut off at the score cap.
func (m *Manager) RecordTruncation() {
	if !m.active() {
		return
	}
	m.truncations.Inc()
}

// OnEvent implements game.EventSubscriber so a manager can be subscribed to
// any engine's event bus.
func (m *Manager) OnEvent(event game.GameEvent) {
	if !m.active() {
		return
	}
	switch ev := event.(type) {
	case game.StrokeEvent:
		m.strokes.WithLabelValues(string(ev.Result.Outcome), ev.Result.Terrain.String()).Inc()
	case game.PenaltyEvent:
		m.penalties.Add(float64(ev.Strokes))
	case game.HoleCompleteEvent:
		m.holesComplete.Inc()
		m.holeScore.Observe(float64(ev.Score))
	case game.NewHoleEvent:
		m.holesStarted.Inc()
		if ev.Attempts > 1 {
			m.regenerations.Add(float64(ev.Attempts - 1))
		}
	}
}
