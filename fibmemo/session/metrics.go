package session

import (
	"sort"
	"time"
)

// MetricsCollector records per-query latency and failures for one session.
// Sessions are single-threaded, so it holds no lock.
type MetricsCollector struct {
	queryCount  int64
	queryErrors int64
	latency     []time.Duration
}

// NewMetricsCollector creates a new metrics collector
func NewMetricsCollector() *MetricsCollector {
	return &MetricsCollector{
		latency: make([]time.Duration, 0, 64),
	}
}

// RecordQuery records a single index query
func (mc *MetricsCollector) RecordQuery(duration time.Duration, err error) {
	mc.queryCount++
	mc.latency = append(mc.latency, duration)
	if err != nil {
		mc.queryErrors++
	}
}

// GetSummary returns a summary of collected metrics
func (mc *MetricsCollector) GetSummary() MetricsSummary {
	return MetricsSummary{
		QueryCount:   mc.queryCount,
		QueryErrors:  mc.queryErrors,
		QueryLatency: calculatePercentiles(mc.latency),
	}
}

// Reset clears all collected metrics
func (mc *MetricsCollector) Reset() {
	mc.queryCount = 0
	mc.queryErrors = 0
	mc.latency = mc.latency[:0]
}

// calculatePercentiles calculates p50, p95, p99 latencies
func calculatePercentiles(latencies []time.Duration) LatencyPercentiles {
	if len(latencies) == 0 {
		return LatencyPercentiles{}
	}

	sorted := make([]time.Duration, len(latencies))
	copy(sorted, latencies)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	return LatencyPercentiles{
		P50: sorted[len(sorted)*50/100],
		P95: sorted[len(sorted)*95/100],
		P99: sorted[len(sorted)*99/100],
	}
}

// MetricsSummary represents a summary of collected metrics
type MetricsSummary struct {
	QueryCount   int64              `json:"query_count"`
	QueryErrors  int64              `json:"query_errors"`
	QueryLatency LatencyPercentiles `json:"query_latency"`
}

// LatencyPercentiles represents latency percentiles
type LatencyPercentiles struct {
	P50 time.Duration `json:"p50"`
	P95 time.Duration `json:"p95"`
	P99 time.Duration `json:"p99"`
}
