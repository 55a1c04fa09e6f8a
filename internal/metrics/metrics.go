// Package metrics holds the Prometheus collectors for a ddata run.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Fetch outcomes.
const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// Nuclide statuses.
const (
	StatusResolved = "resolved"
	StatusInvalid  = "invalid"
	StatusFailed   = "failed"
	StatusNoData   = "no_data"
	StatusEmitted  = "emitted"
)

// Registry groups the collectors of one run on a private Prometheus registry.
type Registry struct {
	registry *prometheus.Registry

	FetchesTotal   *prometheus.CounterVec
	FetchDuration  *prometheus.HistogramVec
	RowsTotal      *prometheus.CounterVec
	NuclidesTotal  *prometheus.CounterVec
	ArtifactsTotal *prometheus.CounterVec
}

// NewRegistry creates a Registry with every collector registered.
func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}

	r.FetchesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "ddata_source_fetches_total",
			Help: "Total number of data source requests",
		},
		[]string{"backend", "outcome"},
	)

	r.FetchDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ddata_source_fetch_duration_seconds",
			Help:    "Data source request duration in seconds",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5, 30},
		},
		[]string{"backend"},
	)

	r.RowsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "ddata_decode_rows_total",
			Help: "Total number of CSV rows decoded",
		},
		[]string{"result"},
	)

	r.NuclidesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "ddata_nuclides_total",
			Help: "Requested nuclides by resolution status",
		},
		[]string{"status"},
	)

	r.ArtifactsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "ddata_artifacts_written_total",
			Help: "Output files written by format",
		},
		[]string{"format"},
	)

	return r
}

// RecordFetch records one data source request.
func (r *Registry) RecordFetch(backend, outcome string, duration time.Duration) {
	r.FetchesTotal.WithLabelValues(backend, outcome).Inc()
	r.FetchDuration.WithLabelValues(backend).Observe(duration.Seconds())
}

// RecordRows records decoded CSV rows.
func (r *Registry) RecordRows(kept, dropped int) {
	r.RowsTotal.WithLabelValues("kept").Add(float64(kept))
	r.RowsTotal.WithLabelValues("dropped").Add(float64(dropped))
}

// RecordNuclide counts one nuclide in the given status.
func (r *Registry) RecordNuclide(status string) {
	r.NuclidesTotal.WithLabelValues(status).Inc()
}

// RecordArtifact counts one written output file.
func (r *Registry) RecordArtifact(format string) {
	r.ArtifactsTotal.WithLabelValues(format).Inc()
}

// GetPrometheusRegistry returns the underlying Prometheus registry.
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}

// WriteTextfile writes every metric to path in the text exposition format
// read by the node_exporter textfile collector.
func (r *Registry) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
