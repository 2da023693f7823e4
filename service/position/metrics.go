package position

import (
	"errors"
	"sync"

	"leverage/core"

	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	calculations *prometheus.CounterVec
	duration     *prometheus.HistogramVec
}

var (
	metricsOnce sync.Once
	registry    *metrics
)

func defaultMetrics() *metrics {
	metricsOnce.Do(func() {
		registry = &metrics{
			calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "leverage_calculations_total",
				Help: "Count of leverage calculations by operation and outcome.",
			}, []string{"operation", "outcome"}),
			duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
				Name:    "leverage_calculation_duration_seconds",
				Help:    "Latency of leverage calculations including metadata lookups.",
				Buckets: prometheus.DefBuckets,
			}, []string{"operation"}),
		}
		prometheus.MustRegister(registry.calculations, registry.duration)
	})
	return registry
}

func (m *metrics) observe(operation string, seconds float64, err error) {
	if m == nil {
		return
	}

	m.calculations.WithLabelValues(operation, outcome(err)).Inc()
	m.duration.WithLabelValues(operation).Observe(seconds)
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}

	var code core.ErrorCode
	if errors.As(err, &code) {
		return code.String()
	}

	return core.ErrUnknown.String()
}
