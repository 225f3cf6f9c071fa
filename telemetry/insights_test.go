package telemetry

import (
	"testing"
	"time"
)

func TestInsightFiresOverDurationBudget(t *testing.T) {
	table := NewInsightTable()

	in, ok := table.Evaluate(PhaseSpatial, 5*time.Millisecond, 0)
	if !ok {
		t.Fatal("no insight for a spatial rebuild far over budget")
	}
	if in.Operation != PhaseSpatial || in.Category != "spatial" {
		t.Errorf("insight = %+v, want spatial diagnostics", in)
	}
	if in.Remediation == "" {
		t.Error("insight carries no remediation")
	}
}

func TestInsightQuietUnderBudget(t *testing.T) {
	table := NewInsightTable()

	if _, ok := table.Evaluate(PhaseSpatial, time.Millisecond, 0); ok {
		t.Error("insight fired for in-budget spatial rebuild")
	}
	if _, ok := table.Evaluate("unknown_op", time.Hour, 1<<40); ok {
		t.Error("insight fired for an operation the table does not know")
	}
}

func TestInsightFiresOnMemoryDelta(t *testing.T) {
	table := NewInsightTable()

	// Particles have a heap-delta budget; fast but allocating heavily
	if _, ok := table.Evaluate(PhaseParticles, time.Microsecond, 1<<20); !ok {
		t.Error("no insight for a large particle heap delta")
	}
}

func TestEvaluateStats(t *testing.T) {
	table := NewInsightTable()

	stats := Stats{
		PhaseAvg: map[string]time.Duration{
			PhaseSpatial: 4 * time.Millisecond, // over
			PhaseCulling: 500 * time.Microsecond,
		},
	}

	insights := table.EvaluateStats(stats)
	if len(insights) != 1 {
		t.Fatalf("got %d insights, want 1", len(insights))
	}
	if insights[0].Operation != PhaseSpatial {
		t.Errorf("insight operation = %s, want %s", insights[0].Operation, PhaseSpatial)
	}
}
