package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetricsCollector_RecordSealAndOpen(t *testing.T) {
	mc := NewMetricsCollector()

	mc.RecordSeal(5 * time.Millisecond)
	mc.RecordSeal(15 * time.Millisecond)
	mc.RecordOpen(true, 10*time.Millisecond)
	mc.RecordOpen(false, 20*time.Millisecond)

	snap := mc.GetSnapshot()
	assert.EqualValues(t, 2, snap.SealCount)
	assert.EqualValues(t, 2, snap.OpenCount)
	assert.EqualValues(t, 1, snap.SuccessfulOpens)
	assert.EqualValues(t, 1, snap.FailedOpens)
	assert.Greater(t, snap.AvgSealTime, float64(0))
	assert.InDelta(t, 50, snap.GetOpenSuccessRate(), 0.01)
}

func TestMetricsCollector_RecordCodeHashLookup(t *testing.T) {
	mc := NewMetricsCollector()

	mc.RecordCodeHashLookup(true, time.Microsecond)
	mc.RecordCodeHashLookup(true, time.Microsecond)
	mc.RecordCodeHashLookup(false, time.Microsecond)

	snap := mc.GetSnapshot()
	assert.EqualValues(t, 3, snap.CodeHashLookups)
	assert.EqualValues(t, 2, snap.CacheHits)
	assert.EqualValues(t, 1, snap.CacheMisses)
	assert.InDelta(t, 66.67, snap.GetCacheHitRate(), 0.1)
}

func TestMetricsCollector_RecordLCDCall(t *testing.T) {
	mc := NewMetricsCollector()

	mc.RecordLCDCall(true, time.Millisecond)
	mc.RecordLCDCall(false, 2*time.Millisecond)
	mc.RecordLCDCall(false, 3*time.Millisecond)

	snap := mc.GetSnapshot()
	assert.EqualValues(t, 3, snap.LCDCalls)
	assert.EqualValues(t, 2, snap.LCDErrors)
	assert.InDelta(t, 66.67, snap.GetLCDErrorRate(), 0.1)
}

func TestMetricsCollector_Reset(t *testing.T) {
	mc := NewMetricsCollector()
	mc.RecordSeal(time.Millisecond)
	mc.RecordOpen(true, time.Millisecond)

	mc.Reset()

	snap := mc.GetSnapshot()
	assert.Zero(t, snap.SealCount)
	assert.Zero(t, snap.OpenCount)
	assert.Zero(t, snap.AvgSealTime)
}

func TestGetGlobalCollector_ReturnsSharedInstance(t *testing.T) {
	before := GetGlobalCollector().GetSnapshot().SealCount

	GetGlobalCollector().RecordSeal(time.Millisecond)

	after := GetGlobalCollector().GetSnapshot().SealCount
	assert.Equal(t, before+1, after, "GetGlobalCollector must return a shared, process-wide instance")
}
