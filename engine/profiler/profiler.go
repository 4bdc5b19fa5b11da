package profiler

import (
	"runtime"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Profiler tracks frame rate, draw calls and memory statistics for performance monitoring.
// Frame metrics are collected in its own prometheus registry, a summary is logged at a
// configurable interval and the run totals are logged by LogSummary.
type Profiler struct {
	mu *sync.Mutex

	logger   *zap.Logger
	registry *prometheus.Registry
	now      func() time.Time

	frames       prometheus.Counter
	drawCalls    prometheus.Counter
	frameSeconds prometheus.Histogram
	fps          prometheus.Gauge

	frameCount     int
	drawCount      int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64

	totals Summary
}

// Summary holds the totals of every frame ticked since the profiler was created.
type Summary struct {
	Frames    uint64
	DrawCalls uint64
	FrameTime time.Duration // sum of every frame's time
	FPS       float64       // rate over the last completed interval
}

// MeanFrameTime returns the average frame time, 0 before the first frame.
func (s Summary) MeanFrameTime() time.Duration {
	if s.Frames == 0 {
		return 0
	}
	return s.FrameTime / time.Duration(s.Frames)
}

// NewProfiler creates a new Profiler with default settings.
// Update interval defaults to 1 second and logging is disabled until WithLogger is given.
//
// Parameters:
//   - options: variadic list of ProfilerBuilderOption functions
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerBuilderOption) *Profiler {
	p := &Profiler{
		mu:             &sync.Mutex{},
		logger:         zap.NewNop(),
		registry:       prometheus.NewRegistry(),
		now:            time.Now,
		updateInterval: time.Second,
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "breakout_frames_total",
			Help: "Number of frames rendered",
		}),
		drawCalls: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "breakout_draw_calls_total",
			Help: "Number of draw calls issued",
		}),
		frameSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "breakout_frame_seconds",
			Help:    "Time spent rendering a frame",
			Buckets: []float64{0.001, 0.002, 0.004, 0.008, 0.016, 0.033, 0.066, 0.1, 0.25},
		}),
		fps: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "breakout_fps",
			Help: "Frames per second over the last update interval",
		}),
	}

	for _, opt := range options {
		opt(p)
	}

	p.registry.MustRegister(p.frames, p.drawCalls, p.frameSeconds, p.fps)
	p.lastTime = p.now()
	return p
}

// Registry returns the prometheus registry holding the frame metrics.
//
// Returns:
//   - *prometheus.Registry: the profiler's registry
func (p *Profiler) Registry() *prometheus.Registry {
	return p.registry
}

// Summary returns the totals collected so far.
func (p *Profiler) Summary() Summary {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.totals
}

// LogSummary logs the run totals, typically once on shutdown.
//
// Returns:
//   - Summary: the logged totals
func (p *Profiler) LogSummary() Summary {
	sum := p.Summary()
	p.logger.Info("profiler summary",
		zap.Uint64("frames", sum.Frames),
		zap.Uint64("drawCalls", sum.DrawCalls),
		zap.Duration("meanFrameTime", sum.MeanFrameTime()),
		zap.Float64("fps", sum.FPS),
	)
	return sum
}

// Tick should be called once per frame to track frame timing.
// Logs performance statistics when the update interval has elapsed.
// Statistics include: FPS, draw calls, heap usage, allocation rate, GC count/pause times, total memory.
//
// Parameters:
//   - frameTime: the time spent producing the frame
//   - drawCalls: the number of draw calls issued by the frame
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick(frameTime time.Duration, drawCalls int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.frames.Inc()
	p.drawCalls.Add(float64(drawCalls))
	p.frameSeconds.Observe(frameTime.Seconds())
	p.totals.Frames++
	p.totals.DrawCalls += uint64(drawCalls)
	p.totals.FrameTime += frameTime

	p.frameCount++
	p.drawCount += drawCalls
	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval || elapsed <= 0 {
		return false
	}

	fps := float64(p.frameCount) / elapsed.Seconds()
	p.fps.Set(fps)
	p.totals.FPS = fps

	runtime.ReadMemStats(&p.memStats)
	allocMB := float64(p.memStats.Alloc) / 1024 / 1024
	sysMB := float64(p.memStats.Sys) / 1024 / 1024
	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	allocRateMB := float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

	// PauseNs is a circular buffer of the last 256 GC pauses.
	gcCount := p.memStats.NumGC
	var lastPauseUs, maxPauseUs uint64
	if gcCount > 0 {
		lastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000
		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			if pause := p.memStats.PauseNs[i%256] / 1000; pause > maxPauseUs {
				maxPauseUs = pause
			}
		}
	}

	p.logger.Info("frame stats",
		zap.Float64("fps", fps),
		zap.Float64("drawsPerFrame", float64(p.drawCount)/float64(p.frameCount)),
		zap.Float64("heapMB", allocMB),
		zap.Float64("allocRateMBps", allocRateMB),
		zap.Uint32("gcCount", gcCount),
		zap.Uint64("gcLastPauseUs", lastPauseUs),
		zap.Uint64("gcMaxPauseUs", maxPauseUs),
		zap.Float64("sysMB", sysMB),
	)

	p.frameCount = 0
	p.drawCount = 0
	p.lastTime = currentTime
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}
