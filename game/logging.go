package game

import (
	"log/slog"

	"github.com/mkrell/stardrift/telemetry"
)

// buildReport snapshots the current frame statistics plus the gauges the
// collector cannot see on its own.
func (g *Game) buildReport() telemetry.Report {
	report := telemetry.BuildReport(g.perf.Stats(), g.insights)
	report.Quality = g.quality.Quality()
	report.ThresholdScale = g.quality.ThresholdScale()
	report.ActiveParticles = g.particles.Count()
	report.ActiveStreams = g.streams.ActiveCount()
	report.CachedStreams = g.streams.Cache().Len()
	report.StreamMemoryBytes = g.streams.Cache().TotalMemory()
	report.VisibleHigh = len(g.visible.High)
	report.VisibleMedium = len(g.visible.Medium)
	report.VisibleLow = len(g.visible.Low)
	return report
}

// maybeLogStats emits a periodic report row. The CSV output runs on the
// same cadence as the log line.
func (g *Game) maybeLogStats(dt float32) {
	if g.cfg.Telemetry.LogIntervalSec <= 0 {
		return
	}
	g.logAccum += float64(dt)
	if g.logAccum < float64(g.cfg.Telemetry.LogIntervalSec) {
		return
	}
	g.logAccum = 0

	report := g.buildReport()
	if g.logStats {
		slog.Info("perf", "tick", g.tick, "report", report)
		for _, in := range report.Insights {
			slog.Warn("insight", "operation", in.Operation, "category", in.Category,
				"message", in.Message, "remediation", in.Remediation)
		}
	}
	if err := g.output.WriteReport(g.tick, report); err != nil {
		slog.Warn("writing perf row", "error", err)
	}
}

// DumpReport logs a full report immediately, regardless of the log-stats
// flag. Bound to a debug key and run once at shutdown.
func (g *Game) DumpReport() {
	report := g.buildReport()
	slog.Info("perf report", "tick", g.tick, "report", report)

	stats := g.perf.Stats()
	for _, sys := range g.registry.All() {
		if avg, ok := stats.PhaseAvg[sys.ID]; ok {
			slog.Info("phase", "name", sys.Name, "avg_us", avg.Microseconds(),
				"pct", stats.PhasePct[sys.ID])
		}
	}
	for _, in := range report.Insights {
		slog.Warn("insight", "operation", in.Operation, "category", in.Category,
			"message", in.Message, "remediation", in.Remediation)
	}
}
