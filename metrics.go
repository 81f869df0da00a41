package negsamp

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like
// Prometheus.
type MetricsCollector interface {
	// RecordBuild is called after sampler construction. records is the number
	// of source records indexed, duration is the total time taken, err is nil
	// if successful.
	RecordBuild(records int, duration time.Duration, err error)

	// RecordSample is called after each sampling operation. keys is the batch
	// key count, num the per-key sample count, rounds the number of draw
	// rounds the rejection loop needed, err is nil if successful.
	RecordSample(keys, num, rounds int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordBuild(int, time.Duration, error)        {}
func (NoopMetricsCollector) RecordSample(int, int, int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	BuildCount       atomic.Int64
	BuildErrors      atomic.Int64
	BuildTotalNanos  atomic.Int64
	SampleCount      atomic.Int64
	SampleErrors     atomic.Int64
	SampleTotalNanos atomic.Int64
	DrawRounds       atomic.Int64
}

func (c *BasicMetricsCollector) RecordBuild(records int, duration time.Duration, err error) {
	c.BuildCount.Add(1)
	c.BuildTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		c.BuildErrors.Add(1)
	}
}

func (c *BasicMetricsCollector) RecordSample(keys, num, rounds int, duration time.Duration, err error) {
	c.SampleCount.Add(1)
	c.SampleTotalNanos.Add(duration.Nanoseconds())
	c.DrawRounds.Add(int64(rounds))
	if err != nil {
		c.SampleErrors.Add(1)
	}
}

// MetricsStats is a point-in-time snapshot of a BasicMetricsCollector.
type MetricsStats struct {
	BuildCount      int64
	BuildErrors     int64
	BuildAvgNanos   int64
	SampleCount     int64
	SampleErrors    int64
	SampleAvgNanos  int64
	AvgDrawRounds   float64
}

// GetStats returns a snapshot of the collected metrics.
func (c *BasicMetricsCollector) GetStats() MetricsStats {
	stats := MetricsStats{
		BuildCount:   c.BuildCount.Load(),
		BuildErrors:  c.BuildErrors.Load(),
		SampleCount:  c.SampleCount.Load(),
		SampleErrors: c.SampleErrors.Load(),
	}
	if stats.BuildCount > 0 {
		stats.BuildAvgNanos = c.BuildTotalNanos.Load() / stats.BuildCount
	}
	if stats.SampleCount > 0 {
		stats.SampleAvgNanos = c.SampleTotalNanos.Load() / stats.SampleCount
		stats.AvgDrawRounds = float64(c.DrawRounds.Load()) / float64(stats.SampleCount)
	}
	return stats
}
