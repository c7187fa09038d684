package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// LoaderMetrics records bulk-load outcomes per data source.
type LoaderMetrics struct {
	duration *prometheus.HistogramVec
	loaded   *prometheus.CounterVec
	skipped  *prometheus.CounterVec
}

// NewLoaderMetrics registers the bulk loader metrics on the provided registerer.
func NewLoaderMetrics(reg prometheus.Registerer) *LoaderMetrics {
	if reg == nil {
		return &LoaderMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bulk_load_duration_seconds",
		Help:    "Duration of bulk load runs in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"source"})
	loaded := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bulk_load_rows_loaded",
		Help: "Rows successfully created by the bulk loader.",
	}, []string{"source"})
	skipped := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bulk_load_rows_skipped",
		Help: "Malformed rows skipped by the bulk loader.",
	}, []string{"source"})
	reg.MustRegister(duration, loaded, skipped)
	return &LoaderMetrics{
		duration: duration,
		loaded:   loaded,
		skipped:  skipped,
	}
}

// ObserveDuration records the duration for the named source.
func (m *LoaderMetrics) ObserveDuration(source string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(source)).Observe(duration.Seconds())
}

// AddLoaded increments the loaded-row counter for the named source.
func (m *LoaderMetrics) AddLoaded(source string, n int) {
	if m == nil || m.loaded == nil || n <= 0 {
		return
	}
	m.loaded.WithLabelValues(normalizeLabel(source)).Add(float64(n))
}

// AddSkipped increments the skipped-row counter for the named source.
func (m *LoaderMetrics) AddSkipped(source string, n int) {
	if m == nil || m.skipped == nil || n <= 0 {
		return
	}
	m.skipped.WithLabelValues(normalizeLabel(source)).Add(float64(n))
}

// LedgerMetrics counts stock ledger operations by outcome.
type LedgerMetrics struct {
	operations *prometheus.CounterVec
}

// NewLedgerMetrics registers the stock ledger metrics on the provided registerer.
func NewLedgerMetrics(reg prometheus.Registerer) *LedgerMetrics {
	if reg == nil {
		return &LedgerMetrics{}
	}
	operations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stock_ledger_operations",
		Help: "Stock ledger operations by kind and outcome.",
	}, []string{"op", "outcome"})
	reg.MustRegister(operations)
	return &LedgerMetrics{operations: operations}
}

// IncOperation increments the ledger op counter.
func (m *LedgerMetrics) IncOperation(op, outcome string) {
	if m == nil || m.operations == nil {
		return
	}
	m.operations.WithLabelValues(normalizeLabel(op), normalizeLabel(outcome)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
