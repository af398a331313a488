package checkout

import "time"

// MetricsCollector receives checkout telemetry.
type MetricsCollector interface {
	RecordOperationDuration(operation string, d time.Duration)
	RecordOperationResult(operation, result string)
	RecordOrderVolume(amount float64)
	RecordError(operation, kind string)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector
type NoopMetricsCollector struct{}

func (n *NoopMetricsCollector) RecordOperationDuration(string, time.Duration) {}
func (n *NoopMetricsCollector) RecordOperationResult(string, string)          {}
func (n *NoopMetricsCollector) RecordOrderVolume(float64)                     {}
func (n *NoopMetricsCollector) RecordError(string, string)                    {}
