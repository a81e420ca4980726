// Package metrics exposes Prometheus instrumentation for validation calls.
//
//	reg := prometheus.NewRegistry()
//	m := metrics.New(metrics.DefaultConfig(), reg)
//	eng, err := engine.New(registry, engine.WithMetrics(m))
//
// Counters are labeled by entity, operation, outcome, violation code and
// external rule ID. Label cardinality is bounded by the schema registry.
package metrics
