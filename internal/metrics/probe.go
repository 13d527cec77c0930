package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Probe sources.
const (
	SourcePoll = "poll"
	SourcePing = "ping"
)

var (
	ProbesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sitewatch",
			Subsystem: "probe",
			Name:      "total",
			Help:      "Probes completed, by source, verdict and failure cause",
		},
		[]string{"source", "verdict", "cause"},
	)

	ProbeDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "sitewatch",
			Subsystem: "probe",
			Name:      "duration_seconds",
			Help:      "Probe latency in seconds",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"source"},
	)

	PollPassDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "sitewatch",
			Subsystem: "poll",
			Name:      "pass_duration_seconds",
			Help:      "Wall-clock duration of one poll pass",
			Buckets:   prometheus.ExponentialBuckets(.05, 2, 10),
		},
	)

	Targets = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "sitewatch",
			Name:      "targets",
			Help:      "Number of tracked targets",
		},
	)
)

func init() {
	Registry.MustRegister(ProbesTotal, ProbeDuration, PollPassDuration, Targets)
}

// ObserveProbe records one completed probe.
func ObserveProbe(source, verdict, cause string, latency time.Duration) {
	ProbesTotal.WithLabelValues(source, verdict, cause).Inc()
	ProbeDuration.WithLabelValues(source).Observe(latency.Seconds())
}
