package blindx

import (
	"log/slog"

	"github.com/hengadev/blindx/internal/monitoring"
)

// MetricsCollector receives counters, gauges and timings from a metrics
// trace hook.
type MetricsCollector = monitoring.MetricsCollector

// InMemoryMetricsCollector keeps metrics in memory for tests and tooling.
type InMemoryMetricsCollector = monitoring.InMemoryMetricsCollector

// NewInMemoryMetricsCollector creates an empty in-memory collector.
func NewInMemoryMetricsCollector() *InMemoryMetricsCollector {
	return monitoring.NewInMemoryMetricsCollector()
}

// NoOpTraceHook discards every event.
type NoOpTraceHook = monitoring.NoOpHook

// NewLoggingTraceHook logs every event through logger. A nil logger writes
// JSON to stderr.
func NewLoggingTraceHook(logger *slog.Logger) TraceHook {
	return monitoring.NewLoggingHook(logger)
}

// NewMetricsTraceHook records counters and timings in collector.
func NewMetricsTraceHook(collector MetricsCollector) TraceHook {
	return monitoring.NewMetricsHook(collector)
}

// NewCompositeTraceHook forwards every event to each hook in order.
func NewCompositeTraceHook(hooks ...TraceHook) TraceHook {
	converted := make([]monitoring.Hook, 0, len(hooks))
	for _, h := range hooks {
		converted = append(converted, h)
	}
	return monitoring.NewCompositeHook(converted...)
}

// NewLogger builds the slog logger described by cfg's log settings.
func NewLogger(cfg Config) *slog.Logger {
	return monitoring.NewLogger(cfg.loggerConfig())
}
