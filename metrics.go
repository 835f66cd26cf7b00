package enriched

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems; the
// promcollector package provides a Prometheus implementation.
type MetricsCollector interface {
	// RecordLoad is called after each table load.
	// records is the number of records added, duration the total time taken
	// including the fetch, err is nil if successful.
	RecordLoad(table string, records int, duration time.Duration, err error)

	// RecordTest is called after each enrichment run.
	// results is the number of results reported.
	RecordTest(test string, results int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordLoad(string, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordTest(string, int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	LoadCount      atomic.Int64
	LoadErrors     atomic.Int64
	LoadedRecords  atomic.Int64
	LoadTotalNanos atomic.Int64
	TestCount      atomic.Int64
	TestErrors     atomic.Int64
	TestResults    atomic.Int64
	TestTotalNanos atomic.Int64
}

// RecordLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLoad(_ string, records int, duration time.Duration, err error) {
	b.LoadCount.Add(1)
	b.LoadTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.LoadErrors.Add(1)
		return
	}
	b.LoadedRecords.Add(int64(records))
}

// RecordTest implements MetricsCollector.
func (b *BasicMetricsCollector) RecordTest(_ string, results int, duration time.Duration, err error) {
	b.TestCount.Add(1)
	b.TestTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.TestErrors.Add(1)
		return
	}
	b.TestResults.Add(int64(results))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		LoadCount:     b.LoadCount.Load(),
		LoadErrors:    b.LoadErrors.Load(),
		LoadedRecords: b.LoadedRecords.Load(),
		LoadAvgNanos:  avg(b.LoadTotalNanos.Load(), b.LoadCount.Load()),
		TestCount:     b.TestCount.Load(),
		TestErrors:    b.TestErrors.Load(),
		TestResults:   b.TestResults.Load(),
		TestAvgNanos:  avg(b.TestTotalNanos.Load(), b.TestCount.Load()),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	LoadCount     int64
	LoadErrors    int64
	LoadedRecords int64
	LoadAvgNanos  int64
	TestCount     int64
	TestErrors    int64
	TestResults   int64
	TestAvgNanos  int64
}
