package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Respawn outcome labels.
const (
	RespawnPlaced   = "placed"
	RespawnFallback = "grid_fallback"
	RespawnSkipped  = "skipped"
	RespawnFailed   = "failed"
)

// Metrics holds the prometheus instruments for a running simulation.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	CombatsTotal      *prometheus.CounterVec
	EliminationsTotal *prometheus.CounterVec
	RespawnsTotal     *prometheus.CounterVec
	ActorsAlive       prometheus.Gauge
	Score             *prometheus.GaugeVec
	TickDuration      prometheus.Histogram
}

// NewMetrics creates and registers the simulation metrics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		CombatsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dinos_combats_total",
				Help: "Total number of resolved contacts by kind",
			},
			[]string{"kind"},
		),
		EliminationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dinos_eliminations_total",
				Help: "Total number of eliminations by identity",
			},
			[]string{"name"},
		),
		RespawnsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dinos_respawns_total",
				Help: "Total number of respawn timer fires by outcome",
			},
			[]string{"outcome"},
		),
		ActorsAlive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "dinos_actors_alive",
			Help: "Number of occupied roster slots",
		}),
		Score: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "dinos_score",
				Help: "Current score by identity",
			},
			[]string{"name"},
		),
		TickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "dinos_tick_duration_seconds",
			Help:    "Wall time spent in one simulation tick",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8),
		}),
	}

	reg.MustRegister(m.CombatsTotal, m.EliminationsTotal, m.RespawnsTotal, m.ActorsAlive, m.Score, m.TickDuration)
	return m
}

// ObserveCombat records a contact and its loser.
func (m *Metrics) ObserveCombat(mutual bool, loser string) {
	if m == nil {
		return
	}
	kind := "one_sided"
	if mutual {
		kind = "mutual"
	}
	m.CombatsTotal.WithLabelValues(kind).Inc()
	m.EliminationsTotal.WithLabelValues(loser).Inc()
}

// ObserveRespawn records a respawn timer outcome.
func (m *Metrics) ObserveRespawn(outcome string) {
	if m == nil {
		return
	}
	m.RespawnsTotal.WithLabelValues(outcome).Inc()
}

// SetAlive sets the occupied slot gauge.
func (m *Metrics) SetAlive(n int) {
	if m == nil {
		return
	}
	m.ActorsAlive.Set(float64(n))
}

// SetScore sets an identity's score gauge.
func (m *Metrics) SetScore(name string, score int) {
	if m == nil {
		return
	}
	m.Score.WithLabelValues(name).Set(float64(score))
}

// ObserveTick records the wall time of one tick.
func (m *Metrics) ObserveTick(d time.Duration) {
	if m == nil {
		return
	}
	m.TickDuration.Observe(d.Seconds())
}
