// Package telemetry collects performance metrics for the adaptive quality loop.
package telemetry

import (
	"log/slog"
	"runtime"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Phase names for the frame step. Keep in sync with the system registry.
const (
	PhaseMetrics   = "metrics"
	PhaseQuality   = "quality"
	PhaseSpatial   = "spatialRebuild"
	PhaseCulling   = "culling"
	PhaseParticles = "particles"
	PhaseStreams   = "streams"
	PhaseRender    = "render"
)

// Sample holds timing data for a single frame.
type Sample struct {
	Timestamp     time.Time
	FrameDuration time.Duration
	Phases        map[string]time.Duration
}

// Collector tracks performance metrics over a rolling window. It is the
// sole writer of the frame-time signal the quality controller reads.
type Collector struct {
	windowSize  int
	samples     []Sample
	writeIndex  int
	sampleCount int

	currentPhases map[string]time.Duration
	frameStart    time.Time
	phaseStart    time.Time
	lastPhase     string

	// Named start/stop timers outside the phase sequence
	timers     map[string]time.Time
	timerRings map[string]*durationRing

	// Memory accounting snapshots around named operations
	memBefore map[string]uint64
}

// NewCollector creates a performance collector.
// windowSize: number of frames to average over (e.g., 120 for 2 seconds at 60fps).
func NewCollector(windowSize int) *Collector {
	if windowSize < 1 {
		windowSize = 120
	}
	return &Collector{
		windowSize:    windowSize,
		samples:       make([]Sample, windowSize),
		currentPhases: make(map[string]time.Duration),
		timers:        make(map[string]time.Time),
		timerRings:    make(map[string]*durationRing),
		memBefore:     make(map[string]uint64),
	}
}

// StartFrame begins timing a new frame.
func (c *Collector) StartFrame() {
	c.frameStart = time.Now()
	c.currentPhases = make(map[string]time.Duration)
	c.lastPhase = ""
}

// StartPhase begins timing a specific phase, ending the previous one.
func (c *Collector) StartPhase(phase string) {
	now := time.Now()
	if c.lastPhase != "" {
		c.currentPhases[c.lastPhase] += now.Sub(c.phaseStart)
	}
	c.phaseStart = now
	c.lastPhase = phase
}

// EndFrame finishes timing the current frame and records the sample.
func (c *Collector) EndFrame() {
	now := time.Now()
	if c.lastPhase != "" {
		c.currentPhases[c.lastPhase] += now.Sub(c.phaseStart)
	}

	c.samples[c.writeIndex] = Sample{
		Timestamp:     now,
		FrameDuration: now.Sub(c.frameStart),
		Phases:        c.currentPhases,
	}
	c.writeIndex = (c.writeIndex + 1) % c.windowSize
	if c.sampleCount < c.windowSize {
		c.sampleCount++
	}
}

// StartTimer begins a named timer outside the phase sequence, recording a
// heap snapshot so StopTimer can report the memory delta.
func (c *Collector) StartTimer(name string) {
	c.timers[name] = time.Now()
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	c.memBefore[name] = ms.HeapAlloc
}

// StopTimer ends a named timer and returns its duration and heap delta.
// Returns false if the timer was never started.
func (c *Collector) StopTimer(name string) (time.Duration, int64, bool) {
	start, ok := c.timers[name]
	if !ok {
		return 0, 0, false
	}
	delete(c.timers, name)

	d := time.Since(start)
	ring, ok := c.timerRings[name]
	if !ok {
		ring = newDurationRing(c.windowSize)
		c.timerRings[name] = ring
	}
	ring.push(d)

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	memDelta := int64(ms.HeapAlloc) - int64(c.memBefore[name])
	delete(c.memBefore, name)

	return d, memDelta, true
}

// TimerAvg returns the rolling average of a named timer.
func (c *Collector) TimerAvg(name string) time.Duration {
	if ring, ok := c.timerRings[name]; ok {
		return ring.avg()
	}
	return 0
}

// Stats holds aggregated performance statistics over the window.
type Stats struct {
	AvgFrameTime time.Duration
	MinFrameTime time.Duration
	MaxFrameTime time.Duration
	StdDev       time.Duration
	P95FrameTime time.Duration
	FPS          float64

	// Phase breakdown (average durations and percentages of frame time)
	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64
}

// Stats computes aggregated statistics over the current window.
func (c *Collector) Stats() Stats {
	if c.sampleCount == 0 {
		return Stats{
			PhaseAvg: make(map[string]time.Duration),
			PhasePct: make(map[string]float64),
		}
	}

	frameTimes := make([]float64, c.sampleCount)
	var minFrame, maxFrame time.Duration
	phaseSum := make(map[string]time.Duration)

	for i := 0; i < c.sampleCount; i++ {
		s := c.samples[i]
		frameTimes[i] = float64(s.FrameDuration)

		if i == 0 || s.FrameDuration < minFrame {
			minFrame = s.FrameDuration
		}
		if s.FrameDuration > maxFrame {
			maxFrame = s.FrameDuration
		}
		for phase, dur := range s.Phases {
			phaseSum[phase] += dur
		}
	}

	mean, std := stat.MeanStdDev(frameTimes, nil)
	sort.Float64s(frameTimes)
	p95 := stat.Quantile(0.95, stat.Empirical, frameTimes, nil)

	avgFrame := time.Duration(mean)

	phaseAvg := make(map[string]time.Duration)
	phasePct := make(map[string]float64)
	for phase, sum := range phaseSum {
		phaseAvg[phase] = sum / time.Duration(c.sampleCount)
		if avgFrame > 0 {
			phasePct[phase] = float64(phaseAvg[phase]) / float64(avgFrame) * 100
		}
	}

	var fps float64
	if avgFrame > 0 {
		fps = float64(time.Second) / float64(avgFrame)
	}

	return Stats{
		AvgFrameTime: avgFrame,
		MinFrameTime: minFrame,
		MaxFrameTime: maxFrame,
		StdDev:       time.Duration(std),
		P95FrameTime: time.Duration(p95),
		FPS:          fps,
		PhaseAvg:     phaseAvg,
		PhasePct:     phasePct,
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (s Stats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_frame_us", s.AvgFrameTime.Microseconds()),
		slog.Int64("min_frame_us", s.MinFrameTime.Microseconds()),
		slog.Int64("max_frame_us", s.MaxFrameTime.Microseconds()),
		slog.Int64("p95_frame_us", s.P95FrameTime.Microseconds()),
		slog.Float64("fps", s.FPS),
	}
	for phase, pct := range s.PhasePct {
		attrs = append(attrs, slog.Float64(phase+"_pct", pct))
	}
	return slog.GroupValue(attrs...)
}

// durationRing is a fixed-capacity rolling window of durations.
type durationRing struct {
	buf   []time.Duration
	write int
	count int
}

func newDurationRing(size int) *durationRing {
	if size < 1 {
		size = 1
	}
	return &durationRing{buf: make([]time.Duration, size)}
}

func (r *durationRing) push(d time.Duration) {
	r.buf[r.write] = d
	r.write = (r.write + 1) % len(r.buf)
	if r.count < len(r.buf) {
		r.count++
	}
}

func (r *durationRing) avg() time.Duration {
	if r.count == 0 {
		return 0
	}
	var total time.Duration
	for i := 0; i < r.count; i++ {
		total += r.buf[i]
	}
	return total / time.Duration(r.count)
}
