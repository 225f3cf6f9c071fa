package telemetry

import (
	"log/slog"
	"runtime"
	"time"
)

// Report is the structured performance snapshot produced for collaborators
// and for CSV export.
type Report struct {
	FPS          float64
	AvgFrameTime time.Duration
	P95FrameTime time.Duration

	HeapAllocBytes uint64

	Quality        float32
	ThresholdScale float32

	ActiveParticles   int
	ActiveStreams     int
	CachedStreams     int
	StreamMemoryBytes int64

	VisibleHigh   int
	VisibleMedium int
	VisibleLow    int

	Insights []Insight
}

// BuildReport assembles a report from collector stats and counts supplied
// by the owning frame loop.
func BuildReport(stats Stats, table *InsightTable) Report {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	return Report{
		FPS:            stats.FPS,
		AvgFrameTime:   stats.AvgFrameTime,
		P95FrameTime:   stats.P95FrameTime,
		HeapAllocBytes: ms.HeapAlloc,
		Insights:       table.EvaluateStats(stats),
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (r Report) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Float64("fps", r.FPS),
		slog.Int64("avg_frame_us", r.AvgFrameTime.Microseconds()),
		slog.Int64("p95_frame_us", r.P95FrameTime.Microseconds()),
		slog.Uint64("heap_bytes", r.HeapAllocBytes),
		slog.Float64("quality", float64(r.Quality)),
		slog.Float64("threshold_scale", float64(r.ThresholdScale)),
		slog.Int("particles", r.ActiveParticles),
		slog.Int("streams", r.ActiveStreams),
		slog.Int64("stream_bytes", r.StreamMemoryBytes),
		slog.Int("visible_high", r.VisibleHigh),
		slog.Int("visible_medium", r.VisibleMedium),
		slog.Int("visible_low", r.VisibleLow),
	}
	return slog.GroupValue(attrs...)
}

// ReportCSV is a flat struct for CSV export of one report row.
type ReportCSV struct {
	Tick           int64   `csv:"tick"`
	FPS            float64 `csv:"fps"`
	AvgFrameUS     int64   `csv:"avg_frame_us"`
	P95FrameUS     int64   `csv:"p95_frame_us"`
	HeapBytes      uint64  `csv:"heap_bytes"`
	Quality        float32 `csv:"quality"`
	ThresholdScale float32 `csv:"threshold_scale"`
	Particles      int     `csv:"particles"`
	Streams        int     `csv:"streams"`
	StreamBytes    int64   `csv:"stream_bytes"`
	VisibleHigh    int     `csv:"visible_high"`
	VisibleMedium  int     `csv:"visible_medium"`
	VisibleLow     int     `csv:"visible_low"`
}

// CSVRow flattens a report for gocsv.
func (r Report) CSVRow(tick int64) ReportCSV {
	return ReportCSV{
		Tick:           tick,
		FPS:            r.FPS,
		AvgFrameUS:     r.AvgFrameTime.Microseconds(),
		P95FrameUS:     r.P95FrameTime.Microseconds(),
		HeapBytes:      r.HeapAllocBytes,
		Quality:        r.Quality,
		ThresholdScale: r.ThresholdScale,
		Particles:      r.ActiveParticles,
		Streams:        r.ActiveStreams,
		StreamBytes:    r.StreamMemoryBytes,
		VisibleHigh:    r.VisibleHigh,
		VisibleMedium:  r.VisibleMedium,
		VisibleLow:     r.VisibleLow,
	}
}
