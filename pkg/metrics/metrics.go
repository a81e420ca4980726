package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Validation outcomes used as the "outcome" label.
const (
	OutcomeValid        = "valid"
	OutcomeInvalid      = "invalid"
	OutcomeInconclusive = "inconclusive"
	OutcomeStructural   = "structural_error"
)

// Config controls metric naming.
type Config struct {
	Namespace string    `env:"KG_METRICS_NAMESPACE" envDefault:"kinderkit"`
	Subsystem string    `env:"KG_METRICS_SUBSYSTEM" envDefault:"engine"`
	Buckets   []float64 `env:"KG_METRICS_BUCKETS" envSeparator:","`
}

// DefaultConfig returns the naming used when no configuration is loaded.
func DefaultConfig() Config {
	return Config{Namespace: "kinderkit", Subsystem: "engine"}
}

// EngineMetrics tracks validation calls.
//
// Metrics:
//   - <ns>_<sub>_validations_total{entity,operation,outcome}
//   - <ns>_<sub>_violations_total{entity,code}
//   - <ns>_<sub>_hook_failures_total{rule}
//   - <ns>_<sub>_validation_duration_seconds{entity}
//
// A nil *EngineMetrics is valid and records nothing.
type EngineMetrics struct {
	validationsTotal   *prometheus.CounterVec
	violationsTotal    *prometheus.CounterVec
	hookFailuresTotal  *prometheus.CounterVec
	validationDuration *prometheus.HistogramVec
}

// New creates the engine metrics and registers them with reg.
// It panics if the metrics are already registered, like prometheus.MustRegister.
func New(cfg Config, reg prometheus.Registerer) *EngineMetrics {
	buckets := cfg.Buckets
	if len(buckets) == 0 {
		// Synchronous calls finish well under a millisecond; hook calls can take seconds.
		buckets = prometheus.ExponentialBuckets(0.00005, 4, 10) // 50µs to ~13s
	}

	m := &EngineMetrics{
		validationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "validations_total",
				Help:      "Total number of validation calls by outcome",
			},
			[]string{"entity", "operation", "outcome"},
		),
		violationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "violations_total",
				Help:      "Total number of reported violations by code",
			},
			[]string{"entity", "code"},
		),
		hookFailuresTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "hook_failures_total",
				Help:      "Total number of external hook failures",
			},
			[]string{"rule"},
		),
		validationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "validation_duration_seconds",
				Help:      "Duration of validation calls in seconds",
				Buckets:   buckets,
			},
			[]string{"entity"},
		),
	}

	reg.MustRegister(
		m.validationsTotal,
		m.violationsTotal,
		m.hookFailuresTotal,
		m.validationDuration,
	)

	return m
}

// RecordValidation records one finished call.
func (m *EngineMetrics) RecordValidation(entity, operation, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.validationsTotal.WithLabelValues(entity, operation, outcome).Inc()
	m.validationDuration.WithLabelValues(entity).Observe(d.Seconds())
}

func (m *EngineMetrics) RecordViolation(entity, code string) {
	if m == nil {
		return
	}
	m.violationsTotal.WithLabelValues(entity, code).Inc()
}

func (m *EngineMetrics) RecordHookFailure(rule string) {
	if m == nil {
		return
	}
	m.hookFailuresTotal.WithLabelValues(rule).Inc()
}
