package profiler

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time {
	return c.t
}

func newTestProfiler(t *testing.T, clock *fakeClock, options ...ProfilerBuilderOption) *Profiler {
	t.Helper()
	p := NewProfiler(options...)
	p.now = clock.now
	p.lastTime = clock.t
	return p
}

func TestTickCountsFramesAndDraws(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	p := newTestProfiler(t, clock)

	for range 3 {
		clock.t = clock.t.Add(10 * time.Millisecond)
		assert.False(t, p.Tick(5*time.Millisecond, 112))
	}

	assert.Equal(t, 3.0, testutil.ToFloat64(p.frames))
	assert.Equal(t, 336.0, testutil.ToFloat64(p.drawCalls))
	assert.Equal(t, 1, testutil.CollectAndCount(p.frameSeconds))
}

func TestTickLogsAtInterval(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	clock := &fakeClock{t: time.Unix(0, 0)}
	p := newTestProfiler(t, clock, WithLogger(zap.New(core)), WithInterval(500*time.Millisecond))

	clock.t = clock.t.Add(250 * time.Millisecond)
	assert.False(t, p.Tick(time.Millisecond, 1))
	clock.t = clock.t.Add(250 * time.Millisecond)
	assert.True(t, p.Tick(time.Millisecond, 1))

	assert.InDelta(t, 4.0, testutil.ToFloat64(p.fps), 1e-9)
	entries := logs.FilterMessage("frame stats").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "profiler", entries[0].LoggerName)
	assert.InDelta(t, 4.0, entries[0].ContextMap()["fps"], 1e-9)
}

func TestRegistryCollectsFrameMetrics(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	p := newTestProfiler(t, clock)
	p.Tick(time.Millisecond, 2)

	count, err := testutil.GatherAndCount(p.Registry(),
		"breakout_frames_total", "breakout_draw_calls_total", "breakout_frame_seconds", "breakout_fps")
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestLogSummaryReportsTotals(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	clock := &fakeClock{t: time.Unix(0, 0)}
	p := newTestProfiler(t, clock, WithLogger(zap.New(core)), WithInterval(time.Second))

	assert.Zero(t, p.Summary().MeanFrameTime())
	for range 4 {
		clock.t = clock.t.Add(500 * time.Millisecond)
		p.Tick(2*time.Millisecond, 3)
	}

	sum := p.LogSummary()
	assert.Equal(t, uint64(4), sum.Frames)
	assert.Equal(t, uint64(12), sum.DrawCalls)
	assert.Equal(t, 8*time.Millisecond, sum.FrameTime)
	assert.Equal(t, 2*time.Millisecond, sum.MeanFrameTime())
	assert.InDelta(t, 2.0, sum.FPS, 1e-9)

	entries := logs.FilterMessage("profiler summary").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, uint64(4), fields["frames"])
	assert.Equal(t, uint64(12), fields["drawCalls"])
}
