package monitoring

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNoOpMetricsCollector(t *testing.T) {
	collector := NoOpMetricsCollector{}
	tags := map[string]string{"test": "value"}

	assert.NotPanics(t, func() {
		collector.IncrementCounter("test_counter", tags)
		collector.SetGauge("test_gauge", 42.5, tags)
		collector.RecordTiming("test_timing", time.Millisecond, tags)
	})
	assert.NoError(t, collector.Flush())
}

func TestInMemoryMetricsCollector_Counters(t *testing.T) {
	collector := NewInMemoryMetricsCollector()
	tags := map[string]string{"operation": "transform"}

	collector.IncrementCounter("ops", tags)
	collector.IncrementCounter("ops", tags)
	collector.IncrementCounter("ops", map[string]string{"operation": "encrypt"})

	assert.Equal(t, int64(2), collector.GetCounter("ops", tags))
	assert.Equal(t, int64(1), collector.GetCounter("ops", map[string]string{"operation": "encrypt"}))
	assert.Equal(t, int64(0), collector.GetCounter("ops", nil))
}

func TestInMemoryMetricsCollector_GaugesAndTimings(t *testing.T) {
	collector := NewInMemoryMetricsCollector()

	collector.SetGauge("dimension", 384, nil)
	assert.Equal(t, 384.0, collector.GetGauge("dimension", nil))

	collector.RecordTiming("build", 10*time.Millisecond, nil)
	collector.RecordTiming("build", 20*time.Millisecond, nil)
	timings := collector.GetTimings("build", nil)
	assert.Equal(t, []time.Duration{10 * time.Millisecond, 20 * time.Millisecond}, timings)

	// Returned slice is a copy.
	timings[0] = 0
	assert.Equal(t, 10*time.Millisecond, collector.GetTimings("build", nil)[0])

	collector.Reset()
	assert.Empty(t, collector.GetTimings("build", nil))
	assert.Zero(t, collector.GetGauge("dimension", nil))
}

func TestSeriesKey(t *testing.T) {
	tests := []struct {
		name     string
		metric   string
		tags     map[string]string
		expected string
	}{
		{name: "no tags", metric: "m", tags: nil, expected: "m"},
		{name: "single tag", metric: "m", tags: map[string]string{"a": "1"}, expected: "m,a=1"},
		{name: "sorted tags", metric: "m", tags: map[string]string{"z": "2", "a": "1"}, expected: "m,a=1,z=2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, seriesKey(tt.metric, tt.tags))
		})
	}
}

func TestInMemoryMetricsCollector_ConcurrentAccess(t *testing.T) {
	collector := NewInMemoryMetricsCollector()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				collector.IncrementCounter("concurrent", nil)
				collector.RecordTiming("concurrent", time.Microsecond, nil)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(5000), collector.GetCounter("concurrent", nil))
	assert.Len(t, collector.GetTimings("concurrent", nil), 5000)
}
