package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var providerDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: "launchpad",
		Subsystem: "provider",
		Name:      "call_duration_seconds",
		Help:      "Latency of calls to external providers.",
		Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
	},
	[]string{"provider", "operation", "outcome"},
)

func init() {
	prometheus.MustRegister(providerDuration)
}

// ObserveProvider records one vendor call; outcome is "ok" or "error".
func ObserveProvider(provider, operation string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	providerDuration.WithLabelValues(provider, operation, outcome).Observe(time.Since(start).Seconds())
}
