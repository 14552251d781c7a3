package monitoring

// Monitor records service metrics and errors. Implementations must be safe
// for concurrent use; recording must never fail the caller.
type Monitor interface {
	// RecordMetric records a named measurement. Names ending in "_ms" are
	// treated as durations, names ending in "_total" as counters, and
	// everything else as gauge deltas.
	RecordMetric(name string, value float64, tags map[string]string)
	// RecordError counts an error under the given scope.
	RecordError(scope string, err error)
}

// Metric names used across the service.
const (
	MetricMatchDurationMS   = "match_duration_ms"
	MetricMatchResultsTotal = "match_results_total"
	MetricSessionsActive    = "sessions_active"
	MetricSessionsCompleted = "sessions_completed_total"
	MetricSessionsScheduled = "sessions_scheduled_total"
	MetricSessionsCancelled = "sessions_cancelled_total"
	MetricNotifyFanoutTotal = "notify_fanout_total"
)
