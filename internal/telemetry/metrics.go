package telemetry

import (
	"github.com/dukerupert/ukpostcode/internal/postcode"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PostcodeMetrics counts checker outcomes. A nil *PostcodeMetrics is a
// valid no-op recorder.
type PostcodeMetrics struct {
	// ChecksTotal counts checked postcodes by outcome: "valid" or the
	// failure code (length, character, pattern_mismatch, area_rule).
	ChecksTotal *prometheus.CounterVec

	// BatchSize observes the number of postcodes per request, by source.
	BatchSize *prometheus.HistogramVec

	// BatchesRejected counts requests refused before checking, by reason.
	BatchesRejected *prometheus.CounterVec
}

// NewPostcodeMetrics registers checker metrics on reg.
func NewPostcodeMetrics(namespace string, reg prometheus.Registerer) *PostcodeMetrics {
	factory := promauto.With(reg)

	return &PostcodeMetrics{
		ChecksTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "postcode",
				Name:      "checks_total",
				Help:      "Postcodes checked, by outcome",
			},
			[]string{"outcome"},
		),
		BatchSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "postcode",
				Name:      "batch_size",
				Help:      "Postcodes per request",
				Buckets:   []float64{1, 2, 5, 10, 25, 50, 100, 250, 500},
			},
			[]string{"source"},
		),
		BatchesRejected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "postcode",
				Name:      "batches_rejected_total",
				Help:      "Requests rejected before any postcode was checked, by reason",
			},
			[]string{"reason"},
		),
	}
}

// RecordBatch records one request's results.
func (m *PostcodeMetrics) RecordBatch(source string, results []postcode.Result) {
	if m == nil {
		return
	}

	m.BatchSize.WithLabelValues(source).Observe(float64(len(results)))
	for _, r := range results {
		m.ChecksTotal.WithLabelValues(Outcome(r)).Inc()
	}
}

// RecordRejected records a request refused before checking.
func (m *PostcodeMetrics) RecordRejected(reason string) {
	if m == nil {
		return
	}
	m.BatchesRejected.WithLabelValues(reason).Inc()
}

// Outcome is the metric label for a result.
func Outcome(r postcode.Result) string {
	if r.Valid {
		return "valid"
	}
	if code := r.Code(); code != "" {
		return code
	}
	return "invalid"
}
