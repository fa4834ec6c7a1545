package sellsy

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "sellsy_client"

// CallMetrics holds the Prometheus collectors fed by a metrics observer.
type CallMetrics struct {
	Calls    *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

// NewCallMetrics creates the collectors and registers them with reg.
func NewCallMetrics(reg prometheus.Registerer) (*CallMetrics, error) {
	metrics := &CallMetrics{
		Calls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "calls_total",
				Help:      "API calls by method and outcome.",
			},
			[]string{"method", "outcome"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "call_duration_seconds",
				Help:      "Wall time of API calls, transport included.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method"},
		),
	}

	for _, collector := range []prometheus.Collector{metrics.Calls, metrics.Duration} {
		err := reg.Register(collector)
		if err != nil {
			return nil, fmt.Errorf("registering call metrics: %w", err)
		}
	}

	return metrics, nil
}

// Observer returns a response observer recording every exchange.
func (m *CallMetrics) Observer() ResponseObserver {
	return func(ctx context.Context, exchange *Exchange) {
		method := exchange.Settings.Method
		m.Calls.WithLabelValues(method, exchange.Outcome()).Inc()
		m.Duration.WithLabelValues(method).Observe(exchange.Duration.Seconds())
	}
}

// NewMetricsObserver registers call metrics with reg and returns the observer
// feeding them.
func NewMetricsObserver(reg prometheus.Registerer) (ResponseObserver, error) {
	metrics, err := NewCallMetrics(reg)
	if err != nil {
		return nil, err
	}

	return metrics.Observer(), nil
}
