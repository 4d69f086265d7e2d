package monitoring

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"
)

// Hook receives lifecycle and operation events from a session. Events only
// ever carry the session id, operation names, durations and error values.
type Hook interface {
	OnInitializeStart(ctx context.Context, sessionID string, metadata map[string]any)
	OnInitializeComplete(ctx context.Context, sessionID string, duration time.Duration, err error, metadata map[string]any)
	OnOperation(ctx context.Context, sessionID string, operation string, duration time.Duration, err error)
	OnClear(ctx context.Context, sessionID string)
}

// NoOpHook is a no-op implementation of Hook
type NoOpHook struct{}

func (NoOpHook) OnInitializeStart(ctx context.Context, sessionID string, metadata map[string]any) {}
func (NoOpHook) OnInitializeComplete(ctx context.Context, sessionID string, duration time.Duration, err error, metadata map[string]any) {
}
func (NoOpHook) OnOperation(ctx context.Context, sessionID string, operation string, duration time.Duration, err error) {
}
func (NoOpHook) OnClear(ctx context.Context, sessionID string) {}

// LoggingHook writes every event to a slog logger.
type LoggingHook struct {
	logger *slog.Logger
}

// NewLoggingHook creates a new logging hook. A nil logger logs to stderr as JSON.
func NewLoggingHook(logger *slog.Logger) *LoggingHook {
	if logger == nil {
		logger = NewLogger(LoggerConfig{Level: slog.LevelInfo, Format: FormatJSON})
	}
	return &LoggingHook{logger: logger}
}

func (l *LoggingHook) OnInitializeStart(ctx context.Context, sessionID string, metadata map[string]any) {
	l.logger.InfoContext(ctx, "session initialization started", withMetadata(metadata, "session_id", sessionID)...)
}

func (l *LoggingHook) OnInitializeComplete(ctx context.Context, sessionID string, duration time.Duration, err error, metadata map[string]any) {
	args := withMetadata(metadata, "session_id", sessionID, "duration", duration)
	if err != nil {
		l.logger.ErrorContext(ctx, "session initialization failed", append(args, "error", err)...)
		return
	}
	l.logger.InfoContext(ctx, "session initialization completed", args...)
}

func (l *LoggingHook) OnOperation(ctx context.Context, sessionID string, operation string, duration time.Duration, err error) {
	if err != nil {
		l.logger.WarnContext(ctx, "operation failed",
			"session_id", sessionID, "operation", operation, "duration", duration, "error", err)
		return
	}
	l.logger.DebugContext(ctx, "operation completed",
		"session_id", sessionID, "operation", operation, "duration", duration)
}

func (l *LoggingHook) OnClear(ctx context.Context, sessionID string) {
	l.logger.InfoContext(ctx, "session cleared", "session_id", sessionID)
}

func withMetadata(metadata map[string]any, args ...any) []any {
	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		args = append(args, k, metadata[k])
	}
	return args
}

// MetricsHook turns events into counters and timings.
type MetricsHook struct {
	collector MetricsCollector
}

// NewMetricsHook creates a new metrics hook
func NewMetricsHook(collector MetricsCollector) *MetricsHook {
	if collector == nil {
		collector = NoOpMetricsCollector{}
	}
	return &MetricsHook{collector: collector}
}

func (m *MetricsHook) OnInitializeStart(ctx context.Context, sessionID string, metadata map[string]any) {
	tags := map[string]string{}
	if entry, ok := metadata["entry_point"].(string); ok {
		tags["entry_point"] = entry
	}
	m.collector.IncrementCounter("blindx.initialize.started", tags)
}

func (m *MetricsHook) OnInitializeComplete(ctx context.Context, sessionID string, duration time.Duration, err error, metadata map[string]any) {
	tags := map[string]string{"status": status(err)}
	if err != nil {
		tags["error"] = fmt.Sprintf("%T", err)
	}
	m.collector.IncrementCounter("blindx.initialize.completed", tags)
	m.collector.RecordTiming("blindx.initialize.duration", duration, map[string]string{"status": status(err)})
}

func (m *MetricsHook) OnOperation(ctx context.Context, sessionID string, operation string, duration time.Duration, err error) {
	tags := map[string]string{"operation": operation, "status": status(err)}
	m.collector.IncrementCounter("blindx.operation.count", tags)
	m.collector.RecordTiming("blindx.operation.duration", duration, map[string]string{"operation": operation})
}

func (m *MetricsHook) OnClear(ctx context.Context, sessionID string) {
	m.collector.IncrementCounter("blindx.session.cleared", nil)
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// CompositeHook fans events out to several hooks in order.
type CompositeHook struct {
	hooks []Hook
}

// NewCompositeHook creates a new composite hook
func NewCompositeHook(hooks ...Hook) *CompositeHook {
	return &CompositeHook{hooks: hooks}
}

func (c *CompositeHook) OnInitializeStart(ctx context.Context, sessionID string, metadata map[string]any) {
	for _, hook := range c.hooks {
		hook.OnInitializeStart(ctx, sessionID, metadata)
	}
}

func (c *CompositeHook) OnInitializeComplete(ctx context.Context, sessionID string, duration time.Duration, err error, metadata map[string]any) {
	for _, hook := range c.hooks {
		hook.OnInitializeComplete(ctx, sessionID, duration, err, metadata)
	}
}

func (c *CompositeHook) OnOperation(ctx context.Context, sessionID string, operation string, duration time.Duration, err error) {
	for _, hook := range c.hooks {
		hook.OnOperation(ctx, sessionID, operation, duration, err)
	}
}

func (c *CompositeHook) OnClear(ctx context.Context, sessionID string) {
	for _, hook := range c.hooks {
		hook.OnClear(ctx, sessionID)
	}
}
