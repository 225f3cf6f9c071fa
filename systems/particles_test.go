package systems

import (
	"math/rand"
	"testing"
)

func TestParticleBudgetHolds(t *testing.T) {
	s := NewParticleSystem(50, rand.New(rand.NewSource(1)))

	// Hammer the emitters far past the budget
	for i := 0; i < 200; i++ {
		s.EmitExhaust(0, 0, 0)
		s.EmitImpact(10, 10)
	}

	if s.Count() > 50 {
		t.Errorf("active particles = %d, budget is 50", s.Count())
	}
	if s.Count() != 50 {
		t.Errorf("active particles = %d, want the full budget under pressure", s.Count())
	}
}

func TestParticleExpiryReleasesToPool(t *testing.T) {
	s := NewParticleSystem(10, rand.New(rand.NewSource(2)))

	for i := 0; i < 10; i++ {
		s.EmitExhaust(0, 0, 0)
	}
	if s.Count() != 10 {
		t.Fatalf("emitted %d particles, want 10", s.Count())
	}

	// Exhaust lifetimes top out at 1.0s; a long step expires them all
	s.Update(2.0)
	if s.Count() != 0 {
		t.Fatalf("particles alive after full expiry: %d", s.Count())
	}

	// The budget is available again
	for i := 0; i < 10; i++ {
		s.EmitExhaust(0, 0, 0)
	}
	if s.Count() != 10 {
		t.Errorf("re-emission after expiry got %d, want 10", s.Count())
	}
}

func TestParticleQualityScalesBursts(t *testing.T) {
	full := NewParticleSystem(1000, rand.New(rand.NewSource(3)))
	reduced := NewParticleSystem(1000, rand.New(rand.NewSource(3)))
	reduced.SetQuality(0.3)

	for i := 0; i < 20; i++ {
		full.EmitImpact(0, 0)
		reduced.EmitImpact(0, 0)
	}

	if reduced.Count() >= full.Count() {
		t.Errorf("reduced quality emitted %d, full quality %d", reduced.Count(), full.Count())
	}
}

func TestParticleUpdateCompacts(t *testing.T) {
	s := NewParticleSystem(100, rand.New(rand.NewSource(4)))

	for i := 0; i < 20; i++ {
		s.EmitExhaust(0, 0, 0)
	}

	// Age them partially: nothing should die yet (min life 0.6)
	s.Update(0.1)
	if s.Count() != 20 {
		t.Fatalf("particles died early: %d left", s.Count())
	}

	// Kill roughly the short-lived half
	s.Update(0.65)
	remaining := s.Count()
	if remaining == 0 || remaining == 20 {
		t.Logf("remaining after partial expiry: %d", remaining)
	}

	// The live list must contain no nil entries after compaction
	for i, p := range s.Particles() {
		if p == nil {
			t.Fatalf("nil particle at index %d after compaction", i)
		}
		if p.Life <= 0 {
			t.Fatalf("dead particle at index %d still active", i)
		}
	}
}

func TestParticleSetQualityClamps(t *testing.T) {
	s := NewParticleSystem(10, rand.New(rand.NewSource(5)))
	s.SetQuality(-1)
	if s.quality != 0 {
		t.Errorf("quality after SetQuality(-1) = %f, want 0", s.quality)
	}
	s.SetQuality(2)
	if s.quality != 1 {
		t.Errorf("quality after SetQuality(2) = %f, want 1", s.quality)
	}
}
