package monitoring

import (
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// PrometheusMonitor implements Monitor over Prometheus instruments. Metric
// names are routed by suffix: "_ms" to a histogram, "_total" to a counter,
// everything else to a gauge. Tags are logged, not exported, so label
// cardinality stays fixed.
type PrometheusMonitor struct {
	logger    *zap.Logger
	durations *prometheus.HistogramVec
	counters  *prometheus.CounterVec
	gauges    *prometheus.GaugeVec
	errors    *prometheus.CounterVec
}

// NewPrometheusMonitor registers all instruments under the given namespace.
func NewPrometheusMonitor(namespace string, logger *zap.Logger) *PrometheusMonitor {
	return &PrometheusMonitor{
		logger: logger,
		durations: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_ms",
			Help:      "Operation durations in milliseconds, by metric name.",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		}, []string{"name"}),
		counters: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Event counts, by metric name.",
		}, []string{"name"}),
		gauges: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "gauge_value",
			Help:      "Gauge values, by metric name.",
		}, []string{"name"}),
		errors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "Errors by scope.",
		}, []string{"scope"}),
	}
}

func (m *PrometheusMonitor) RecordMetric(name string, value float64, tags map[string]string) {
	switch {
	case strings.HasSuffix(name, "_ms"):
		m.durations.WithLabelValues(name).Observe(value)
	case strings.HasSuffix(name, "_total"):
		m.counters.WithLabelValues(name).Add(value)
	default:
		m.gauges.WithLabelValues(name).Add(value)
	}
	if len(tags) > 0 && m.logger != nil {
		m.logger.Debug("metric recorded",
			zap.String("name", name),
			zap.Float64("value", value),
			zap.Any("tags", tags))
	}
}

func (m *PrometheusMonitor) RecordError(scope string, err error) {
	m.errors.WithLabelValues(scope).Inc()
	if m.logger != nil {
		m.logger.Warn("error recorded", zap.String("scope", scope), zap.Error(err))
	}
}

// Handler exposes the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
