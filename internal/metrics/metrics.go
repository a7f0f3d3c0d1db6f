// Package metrics records verification metrics and exports them in the
// Prometheus textfile format for CI collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// File states recorded by ObserveFile.
const (
	FileVerified   = "verified"
	FileSkipped    = "skipped_deadline"
	FileUpToDate   = "up_to_date"
	FileOtherShard = "other_shard"
)

// Recorder collects the metrics of one verification pass. A nil *Recorder
// is valid and discards everything.
type Recorder struct {
	registry *prometheus.Registry

	verifications *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	files         *prometheus.CounterVec
	testcases     *prometheus.CounterVec
	totalSeconds  prometheus.Gauge
	lastRun       prometheus.Gauge
}

// NewRecorder creates a recorder with its own registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,

		verifications: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "verify_helper_verifications_total",
			Help: "Verification results by status",
		}, []string{"status"}),

		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "verify_helper_verification_duration_seconds",
			Help:    "Verification step duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 12), // 0.1s to ~7min
		}, []string{"status"}),

		files: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "verify_helper_files_total",
			Help: "Test files by scheduling decision",
		}, []string{"state"}),

		testcases: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "verify_helper_testcases_total",
			Help: "Judged samples by judge status",
		}, []string{"status"}),

		totalSeconds: factory.NewGauge(prometheus.GaugeOpts{
			Name: "verify_helper_pass_seconds",
			Help: "Summed elapsed time of the verifications run in the last pass",
		}),

		lastRun: factory.NewGauge(prometheus.GaugeOpts{
			Name: "verify_helper_last_run_timestamp_seconds",
			Help: "Unix time the last pass started",
		}),
	}
}

// ObserveVerification records one verification result.
func (r *Recorder) ObserveVerification(status string, elapsed float64) {
	if r == nil {
		return
	}
	r.verifications.WithLabelValues(status).Inc()
	r.duration.WithLabelValues(status).Observe(elapsed)
}

// ObserveTestcase records one judged sample.
func (r *Recorder) ObserveTestcase(status string) {
	if r == nil {
		return
	}
	r.testcases.WithLabelValues(status).Inc()
}

// ObserveFile records the scheduling decision for a test file.
func (r *Recorder) ObserveFile(state string) {
	if r == nil {
		return
	}
	r.files.WithLabelValues(state).Inc()
}

// SetPass records the start time and total elapsed seconds of a pass.
func (r *Recorder) SetPass(startUnix, totalSeconds float64) {
	if r == nil {
		return
	}
	r.lastRun.Set(startUnix)
	r.totalSeconds.Set(totalSeconds)
}

// Registry returns the registry holding the metrics.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteTextfile writes all metrics to path in the text exposition format.
// The file is replaced atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil {
		return nil
	}
	return prometheus.WriteToTextfile(path, r.registry)
}
