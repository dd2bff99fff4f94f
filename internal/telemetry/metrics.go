// Package telemetry exposes Prometheus metrics fed from the event bus and
// instruments Redis clients.
package telemetry

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"trivia-service/internal/domain"
	"trivia-service/internal/event"
)

const namespace = "trivia"

type Metrics struct {
	registry *prometheus.Registry

	sessionsStarted  *prometheus.CounterVec
	sessionsFinished *prometheus.CounterVec
	answers          *prometheus.CounterVec
	points           prometheus.Counter
	finalScores      prometheus.Histogram
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		sessionsStarted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_started_total",
			Help:      "Sessions started, by mode.",
		}, []string{"mode"}),
		sessionsFinished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_finished_total",
			Help:      "Sessions that reached game over, by mode.",
		}, []string{"mode"}),
		answers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "answers_total",
			Help:      "Resolved questions, by result (correct, wrong, timeout).",
		}, []string{"mode", "result"}),
		points: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "points_awarded_total",
			Help:      "Points awarded across all sessions.",
		}),
		finalScores: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "final_score",
			Help:      "Score at game over.",
			Buckets:   prometheus.LinearBuckets(0, 500, 10),
		}),
	}
	m.registry.MustRegister(
		m.sessionsStarted,
		m.sessionsFinished,
		m.answers,
		m.points,
		m.finalScores,
		collectors.NewGoCollector(),
	)
	return m
}

// Subscribe feeds the counters from engine events.
func (m *Metrics) Subscribe(b *event.Bus) {
	b.Subscribe(domain.EventNameSessionStarted, func(_ context.Context, e event.Event) error {
		ev := e.(domain.EventSessionStarted)
		m.sessionsStarted.WithLabelValues(string(ev.Mode)).Inc()
		return nil
	})
	b.Subscribe(domain.EventNameAnswerResolved, func(_ context.Context, e event.Event) error {
		ev := e.(domain.EventAnswerResolved)
		m.answers.WithLabelValues(string(ev.Mode), answerResult(ev)).Inc()
		m.points.Add(float64(ev.Awarded))
		return nil
	})
	b.Subscribe(domain.EventNameSessionEnded, func(_ context.Context, e event.Event) error {
		ev := e.(domain.EventSessionEnded)
		m.sessionsFinished.WithLabelValues(string(ev.Mode)).Inc()
		m.finalScores.Observe(float64(ev.Score))
		return nil
	})
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func answerResult(ev domain.EventAnswerResolved) string {
	switch {
	case ev.TimedOut:
		return "timeout"
	case ev.Correct:
		return "correct"
	default:
		return "wrong"
	}
}
