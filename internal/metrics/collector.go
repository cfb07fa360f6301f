package metrics

import (
	"sync"
	"time"
)

// MetricsCollector collects in-process metrics for the client's core
// operations: sealing/opening envelopes, the two write-once/insert-only
// caches, and outbound LCD calls.
type MetricsCollector struct {
	mu sync.RWMutex

	// Counters
	SealCount          int64
	OpenCount          int64
	SuccessfulOpens    int64
	FailedOpens        int64
	CodeHashLookups    int64
	CacheHits          int64
	CacheMisses        int64
	LCDCalls           int64
	LCDErrors          int64

	// Timing metrics (in microseconds)
	SealTimes       []int64
	OpenTimes       []int64
	LCDLatencies    []int64
	CodeHashTimes   []int64

	// Start time for uptime calculation
	startTime time.Time

	// Configuration
	maxTimingSamples int
}

// NewMetricsCollector creates a new metrics collector
func NewMetricsCollector() *MetricsCollector {
	return &MetricsCollector{
		startTime:        time.Now(),
		maxTimingSamples: 1000, // Keep last 1000 samples for each timing metric
	}
}

// RecordSeal records an envelope seal operation
func (mc *MetricsCollector) RecordSeal(duration time.Duration) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	mc.SealCount++
	mc.recordTiming(&mc.SealTimes, duration)
}

// RecordOpen records an envelope open operation
func (mc *MetricsCollector) RecordOpen(success bool, duration time.Duration) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	mc.OpenCount++
	if success {
		mc.SuccessfulOpens++
	} else {
		mc.FailedOpens++
	}
	mc.recordTiming(&mc.OpenTimes, duration)
}

// RecordCodeHashLookup records a code-hash cache lookup
func (mc *MetricsCollector) RecordCodeHashLookup(cached bool, duration time.Duration) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	mc.CodeHashLookups++
	if cached {
		mc.CacheHits++
	} else {
		mc.CacheMisses++
	}
	mc.recordTiming(&mc.CodeHashTimes, duration)
}

// RecordLCDCall records an outbound LCD REST call
func (mc *MetricsCollector) RecordLCDCall(success bool, duration time.Duration) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	mc.LCDCalls++
	if !success {
		mc.LCDErrors++
	}
	mc.recordTiming(&mc.LCDLatencies, duration)
}

// recordTiming records a timing sample
func (mc *MetricsCollector) recordTiming(timings *[]int64, duration time.Duration) {
	microseconds := duration.Microseconds()
	*timings = append(*timings, microseconds)

	// Keep only last N samples
	if len(*timings) > mc.maxTimingSamples {
		*timings = (*timings)[len(*timings)-mc.maxTimingSamples:]
	}
}

// GetSnapshot returns a snapshot of current metrics
func (mc *MetricsCollector) GetSnapshot() *MetricsSnapshot {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	return &MetricsSnapshot{
		Timestamp:          time.Now(),
		Uptime:             time.Since(mc.startTime),
		SealCount:          mc.SealCount,
		OpenCount:          mc.OpenCount,
		SuccessfulOpens:    mc.SuccessfulOpens,
		FailedOpens:        mc.FailedOpens,
		CodeHashLookups:    mc.CodeHashLookups,
		CacheHits:          mc.CacheHits,
		CacheMisses:        mc.CacheMisses,
		LCDCalls:           mc.LCDCalls,
		LCDErrors:          mc.LCDErrors,
		AvgSealTime:        calculateAverage(mc.SealTimes),
		AvgOpenTime:        calculateAverage(mc.OpenTimes),
		AvgLCDTime:         calculateAverage(mc.LCDLatencies),
		AvgCodeHashTime:    calculateAverage(mc.CodeHashTimes),
		P95SealTime:        calculatePercentile(mc.SealTimes, 95),
		P95OpenTime:        calculatePercentile(mc.OpenTimes, 95),
		P95LCDTime:         calculatePercentile(mc.LCDLatencies, 95),
		P95CodeHashTime:    calculatePercentile(mc.CodeHashTimes, 95),
	}
}

// Reset resets all metrics
func (mc *MetricsCollector) Reset() {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	mc.SealCount = 0
	mc.OpenCount = 0
	mc.SuccessfulOpens = 0
	mc.FailedOpens = 0
	mc.CodeHashLookups = 0
	mc.CacheHits = 0
	mc.CacheMisses = 0
	mc.LCDCalls = 0
	mc.LCDErrors = 0

	mc.SealTimes = nil
	mc.OpenTimes = nil
	mc.LCDLatencies = nil
	mc.CodeHashTimes = nil

	mc.startTime = time.Now()
}

// MetricsSnapshot represents a point-in-time snapshot of metrics
type MetricsSnapshot struct {
	Timestamp time.Time
	Uptime    time.Duration

	// Counters
	SealCount       int64
	OpenCount       int64
	SuccessfulOpens int64
	FailedOpens     int64
	CodeHashLookups int64
	CacheHits       int64
	CacheMisses     int64
	LCDCalls        int64
	LCDErrors       int64

	// Timing averages (microseconds)
	AvgSealTime     float64
	AvgOpenTime     float64
	AvgLCDTime      float64
	AvgCodeHashTime float64

	// 95th percentile timings (microseconds)
	P95SealTime     int64
	P95OpenTime     int64
	P95LCDTime      int64
	P95CodeHashTime int64
}

// GetCacheHitRate returns the code-hash cache hit rate as a percentage
func (ms *MetricsSnapshot) GetCacheHitRate() float64 {
	total := ms.CacheHits + ms.CacheMisses
	if total == 0 {
		return 0
	}
	return float64(ms.CacheHits) / float64(total) * 100
}

// GetOpenSuccessRate returns the envelope-open success rate as a percentage
func (ms *MetricsSnapshot) GetOpenSuccessRate() float64 {
	if ms.OpenCount == 0 {
		return 0
	}
	return float64(ms.SuccessfulOpens) / float64(ms.OpenCount) * 100
}

// GetLCDErrorRate returns the LCD call error rate as a percentage
func (ms *MetricsSnapshot) GetLCDErrorRate() float64 {
	if ms.LCDCalls == 0 {
		return 0
	}
	return float64(ms.LCDErrors) / float64(ms.LCDCalls) * 100
}

// Helper functions

func calculateAverage(values []int64) float64 {
	if len(values) == 0 {
		return 0
	}

	var sum int64
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values))
}

func calculatePercentile(values []int64, percentile int) int64 {
	if len(values) == 0 {
		return 0
	}

	index := len(values) * percentile / 100
	if index >= len(values) {
		index = len(values) - 1
	}

	sorted := make([]int64, len(values))
	copy(sorted, values)

	for i := 0; i < len(sorted)-1; i++ {
		for j := 0; j < len(sorted)-i-1; j++ {
			if sorted[j] > sorted[j+1] {
				sorted[j], sorted[j+1] = sorted[j+1], sorted[j]
			}
		}
	}

	return sorted[index]
}

// Global metrics collector instance
var globalCollector = NewMetricsCollector()

// GetGlobalCollector returns the global metrics collector
func GetGlobalCollector() *MetricsCollector {
	return globalCollector
}
