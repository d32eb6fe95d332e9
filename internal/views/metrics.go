package views

import (
	"time"

	"github.com/MGabeD/chrysus/internal/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RecorderInterface decouples view instrumentation from prometheus so
// tests can run without a registry.
type RecorderInterface interface {
	CountFetch(mode models.ViewMode, outcome string)
	CountStaleDiscard(mode models.ViewMode)
	RecordFetchDuration(mode models.ViewMode, duration time.Duration)
	CountUpload(outcome string)
	SetRosterSize(size int)
}

type PrometheusMetrics struct {
	fetchesTotal       *prometheus.CounterVec
	staleDiscardsTotal *prometheus.CounterVec
	fetchDuration      *prometheus.HistogramVec
	uploadsTotal       *prometheus.CounterVec
	rosterSize         prometheus.Gauge
}

func NewPrometheusMetrics() RecorderInterface {
	return &PrometheusMetrics{
		fetchesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "view_fetches_total",
				Help: "Total number of view fetches by outcome",
			},
			[]string{"view", "outcome"},
		),
		staleDiscardsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "view_stale_results_discarded_total",
				Help: "Total number of fetch results discarded as stale",
			},
			[]string{"view"},
		),
		fetchDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "view_fetch_duration_milliseconds",
				Help:    "View fetch duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
			[]string{"view"},
		),
		uploadsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "statement_uploads_total",
				Help: "Total number of statement uploads by outcome",
			},
			[]string{"outcome"},
		),
		rosterSize: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "roster_holders_total",
				Help: "Current number of known account holders",
			},
		),
	}
}

func (m *PrometheusMetrics) CountFetch(mode models.ViewMode, outcome string) {
	m.fetchesTotal.WithLabelValues(mode.String(), outcome).Inc()
}

func (m *PrometheusMetrics) CountStaleDiscard(mode models.ViewMode) {
	m.staleDiscardsTotal.WithLabelValues(mode.String()).Inc()
}

func (m *PrometheusMetrics) RecordFetchDuration(mode models.ViewMode, duration time.Duration) {
	m.fetchDuration.WithLabelValues(mode.String()).Observe(float64(duration.Milliseconds()))
}

func (m *PrometheusMetrics) CountUpload(outcome string) {
	m.uploadsTotal.WithLabelValues(outcome).Inc()
}

func (m *PrometheusMetrics) SetRosterSize(size int) {
	m.rosterSize.Set(float64(size))
}

// NopRecorder discards all instrumentation.
type NopRecorder struct{}

func (NopRecorder) CountFetch(models.ViewMode, string)                {}
func (NopRecorder) CountStaleDiscard(models.ViewMode)                 {}
func (NopRecorder) RecordFetchDuration(models.ViewMode, time.Duration) {}
func (NopRecorder) CountUpload(string)                                {}
func (NopRecorder) SetRosterSize(int)                                 {}
