package audio

import (
	"testing"
)

func TestQualityGateDescendsAndRecovers(t *testing.T) {
	g := NewQualityGate()

	if g.Tier() != TierHigh {
		t.Fatalf("initial tier = %v, want TierHigh", g.Tier())
	}

	g.Observe(0.65) // below fallHigh
	if g.Tier() != TierMedium {
		t.Errorf("tier after 0.65 = %v, want TierMedium", g.Tier())
	}

	g.Observe(0.35) // below fallMed
	if g.Tier() != TierLow {
		t.Errorf("tier after 0.35 = %v, want TierLow", g.Tier())
	}

	g.Observe(0.60) // above riseMed
	if g.Tier() != TierMedium {
		t.Errorf("tier after 0.60 = %v, want TierMedium", g.Tier())
	}

	g.Observe(0.90) // above riseHigh
	if g.Tier() != TierHigh {
		t.Errorf("tier after 0.90 = %v, want TierHigh", g.Tier())
	}
}

func TestQualityGateHysteresisNoFlap(t *testing.T) {
	g := NewQualityGate()

	// Drop just below the falling edge, then hover inside the dead band:
	// the tier must not bounce back to high.
	g.Observe(0.69)
	if g.Tier() != TierMedium {
		t.Fatalf("tier = %v, want TierMedium", g.Tier())
	}
	for i := 0; i < 50; i++ {
		g.Observe(0.75) // between fallHigh and riseHigh
		if g.Tier() != TierMedium {
			t.Fatalf("iteration %d: tier flapped to %v inside dead band", i, g.Tier())
		}
	}

	// Same dead band behavior at the medium/low boundary
	g.Observe(0.39)
	if g.Tier() != TierLow {
		t.Fatalf("tier = %v, want TierLow", g.Tier())
	}
	for i := 0; i < 50; i++ {
		g.Observe(0.50) // between fallMed and riseMed
		if g.Tier() != TierLow {
			t.Fatalf("iteration %d: tier flapped to %v inside dead band", i, g.Tier())
		}
	}
}

func TestQualityGateHardDropSkipsMedium(t *testing.T) {
	g := NewQualityGate()
	g.Observe(0.1)
	if g.Tier() != TierLow {
		t.Errorf("tier after hard drop = %v, want TierLow", g.Tier())
	}

	// And a full recovery jumps straight back to high
	g.Observe(0.95)
	if g.Tier() != TierHigh {
		t.Errorf("tier after full recovery = %v, want TierHigh", g.Tier())
	}
}
