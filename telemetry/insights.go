package telemetry

import "time"

// Insight is one categorized diagnostic with remediation text.
type Insight struct {
	Operation   string
	Category    string
	Message     string
	Remediation string
}

// rule matches an operation against duration and heap-delta budgets.
// A rule fires when either budget is exceeded (zero disables a budget).
type rule struct {
	op          string
	maxDuration time.Duration
	maxMemDelta int64
	category    string
	message     string
	remediation string
}

// InsightTable maps measured operations to diagnostics. A lookup table,
// not a learning system: rules are fixed at construction.
type InsightTable struct {
	rules []rule
}

// NewInsightTable creates a table with the default operation budgets.
func NewInsightTable() *InsightTable {
	return &InsightTable{rules: []rule{
		{
			op:          PhaseSpatial,
			maxDuration: 2 * time.Millisecond,
			category:    "spatial",
			message:     "spatial rebuild over budget",
			remediation: "increase grid cell size or rebuild less often",
		},
		{
			op:          PhaseCulling,
			maxDuration: 2 * time.Millisecond,
			category:    "culling",
			message:     "culling pass over budget",
			remediation: "lower LOD distances or shrink the camera query margin",
		},
		{
			op:          PhaseParticles,
			maxDuration: 3 * time.Millisecond,
			maxMemDelta: 256 * 1024,
			category:    "particles",
			message:     "particle update over budget",
			remediation: "reduce max_particles or emission rates",
		},
		{
			op:          PhaseStreams,
			maxDuration: 1 * time.Millisecond,
			category:    "audio",
			message:     "stream maintenance over budget",
			remediation: "lower memory_threshold_mb so eviction runs in smaller steps",
		},
		{
			op:          PhaseRender,
			maxDuration: 8 * time.Millisecond,
			category:    "render",
			message:     "render over budget",
			remediation: "check draw batching is grouping by atlas page",
		},
		{
			op:          "atlasPack",
			maxDuration: 250 * time.Millisecond,
			category:    "atlas",
			message:     "atlas packing slow",
			remediation: "reduce manifest size or pack at startup only",
		},
	}}
}

// Evaluate checks a single measurement against the table.
func (t *InsightTable) Evaluate(op string, d time.Duration, memDelta int64) (Insight, bool) {
	for _, r := range t.rules {
		if r.op != op {
			continue
		}
		over := r.maxDuration > 0 && d > r.maxDuration
		overMem := r.maxMemDelta > 0 && memDelta > r.maxMemDelta
		if over || overMem {
			return Insight{
				Operation:   op,
				Category:    r.category,
				Message:     r.message,
				Remediation: r.remediation,
			}, true
		}
	}
	return Insight{}, false
}

// EvaluateStats runs every rule against the windowed phase averages.
func (t *InsightTable) EvaluateStats(stats Stats) []Insight {
	var out []Insight
	for phase, avg := range stats.PhaseAvg {
		if in, ok := t.Evaluate(phase, avg, 0); ok {
			out = append(out, in)
		}
	}
	return out
}
