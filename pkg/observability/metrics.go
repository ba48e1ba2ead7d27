package observability

import (
	"context"

	"github.com/aretw0/gaitcgm/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "gaitcgm"

// Metrics collects per-step and per-trial execution metrics.
type Metrics struct {
	stepDuration *prometheus.HistogramVec
	stepErrors   *prometheus.CounterVec
	trialRuns    *prometheus.CounterVec
	framesTotal  *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg. Pass
// prometheus.DefaultRegisterer to expose them on the default handler.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		stepDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "step",
				Name:      "duration_seconds",
				Help:      "Duration of step invocations over a whole trial.",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
			[]string{"model", "namespace", "step"},
		),
		stepErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "step",
				Name:      "errors_total",
				Help:      "Step invocations that failed.",
			},
			[]string{"model", "step"},
		),
		trialRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "trial",
				Name:      "runs_total",
				Help:      "Trial runs by outcome.",
			},
			[]string{"model", "status"},
		),
		framesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "trial",
				Name:      "frames_total",
				Help:      "Frames processed by successful trial runs.",
			},
			[]string{"model"},
		),
	}
	reg.MustRegister(m.stepDuration, m.stepErrors, m.trialRuns, m.framesTotal)
	return m
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStepFinish: func(_ context.Context, e *domain.StepEvent) {
			m.stepDuration.WithLabelValues(e.Model, string(e.Namespace), e.Step).Observe(e.Duration.Seconds())
			if e.Err != nil {
				m.stepErrors.WithLabelValues(e.Model, e.Step).Inc()
			}
		},
		OnRunFinish: func(_ context.Context, e *domain.RunEvent) {
			if e.Err != nil {
				m.trialRuns.WithLabelValues(e.Model, "error").Inc()
				return
			}
			m.trialRuns.WithLabelValues(e.Model, "ok").Inc()
			m.framesTotal.WithLabelValues(e.Model).Add(float64(e.Frames))
		},
	}
}
