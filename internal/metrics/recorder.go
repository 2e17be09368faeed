package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "fibbench"

// Recorder accumulates benchmark outcomes on a private registry, so several
// recorders can coexist in one process.
type Recorder struct {
	registry   *prometheus.Registry
	meanNs     *prometheus.GaugeVec
	minNs      *prometheus.GaugeVec
	calls      *prometheus.CounterVec
	mismatches *prometheus.CounterVec
	allocBytes *prometheus.GaugeVec
	runInfo    *prometheus.GaugeVec
}

// NewRecorder creates a Recorder whose metrics carry runID as a constant label.
func NewRecorder(runID string) *Recorder {
	labels := prometheus.Labels{"run_id": runID}
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		meanNs: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "mean_ns_per_call",
			Help:        "Mean latency per call in nanoseconds.",
			ConstLabels: labels,
		}, []string{"strategy", "n"}),
		minNs: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "min_ns_per_call",
			Help:        "Minimum observed latency per call in nanoseconds.",
			ConstLabels: labels,
		}, []string{"strategy", "n"}),
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "timed_calls_total",
			Help:        "Number of timed strategy calls.",
			ConstLabels: labels,
		}, []string{"strategy"}),
		mismatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "mismatches_total",
			Help:        "Number of measurements aborted by an incorrect result.",
			ConstLabels: labels,
		}, []string{"strategy"}),
		allocBytes: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "allocated_bytes",
			Help:        "Bytes allocated while measuring a strategy.",
			ConstLabels: labels,
		}, []string{"strategy"}),
		runInfo: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "run_info",
			Help:        "Benchmark run parameters.",
			ConstLabels: labels,
		}, []string{"batch_size", "gc_mode"}),
	}
	r.registry.MustRegister(
		r.meanNs, r.minNs, r.calls, r.mismatches, r.allocBytes, r.runInfo,
		collectors.NewGoCollector(),
	)
	return r
}

// SetRunInfo records the run parameters.
func (r *Recorder) SetRunInfo(batchSize, gcMode string) {
	r.runInfo.WithLabelValues(batchSize, gcMode).Set(1)
}

// ObserveResult records the statistics of a completed measurement.
func (r *Recorder) ObserveResult(strategy, n string, meanNs float64, minNs int64, calls int) {
	r.meanNs.WithLabelValues(strategy, n).Set(meanNs)
	r.minNs.WithLabelValues(strategy, n).Set(float64(minNs))
	r.calls.WithLabelValues(strategy).Add(float64(calls))
}

// ObserveMismatch counts a measurement aborted by an incorrect result.
func (r *Recorder) ObserveMismatch(strategy string) {
	r.mismatches.WithLabelValues(strategy).Inc()
}

// ObserveMemory records the bytes allocated while measuring strategy.
func (r *Recorder) ObserveMemory(strategy string, d MemoryDelta) {
	r.allocBytes.WithLabelValues(strategy).Set(float64(d.TotalAlloc))
}

// Gatherer exposes the private registry.
func (r *Recorder) Gatherer() prometheus.Gatherer { return r.registry }

// WriteTextfile atomically writes every metric to path in the text
// exposition format.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
