package systems

import (
	"testing"
)

type poolItem struct {
	id    int
	lives int
}

func TestPoolExhaustion(t *testing.T) {
	nextID := 0
	p := NewPool(20,
		func() *poolItem { nextID++; return &poolItem{id: nextID} },
		func(it *poolItem) { it.lives = 0 },
	)

	// 25 acquires against capacity 20: exactly 20 distinct successes
	seen := make(map[*poolItem]bool)
	failures := 0
	for i := 0; i < 25; i++ {
		it, ok := p.Acquire()
		if !ok {
			if it != nil {
				t.Fatalf("failed acquire returned non-nil instance")
			}
			failures++
			continue
		}
		if seen[it] {
			t.Fatalf("instance %d handed out twice while in use", it.id)
		}
		seen[it] = true
	}

	if len(seen) != 20 {
		t.Errorf("distinct instances = %d, want 20", len(seen))
	}
	if failures != 5 {
		t.Errorf("failed acquires = %d, want 5", failures)
	}
	if p.InUse() != 20 || p.Free() != 0 {
		t.Errorf("InUse=%d Free=%d, want 20/0", p.InUse(), p.Free())
	}
}

func TestPoolReleaseMakesReusable(t *testing.T) {
	p := NewPool(1,
		func() *poolItem { return &poolItem{} },
		func(it *poolItem) { it.lives = 0 },
	)

	first, ok := p.Acquire()
	if !ok {
		t.Fatal("first acquire failed")
	}
	if _, ok := p.Acquire(); ok {
		t.Fatal("second acquire succeeded past capacity")
	}

	first.lives = 99
	p.Release(first)

	second, ok := p.Acquire()
	if !ok {
		t.Fatal("acquire after release failed")
	}
	if second != first {
		t.Error("pool did not reuse the released instance")
	}
	if second.lives != 0 {
		t.Errorf("released instance not reset: lives = %d", second.lives)
	}
}

func TestPoolLazyConstruction(t *testing.T) {
	constructed := 0
	p := NewPool(100,
		func() *poolItem { constructed++; return &poolItem{} },
		func(it *poolItem) {},
	)

	if constructed != 0 {
		t.Fatalf("constructed %d instances before first acquire", constructed)
	}

	a, _ := p.Acquire()
	p.Release(a)
	p.Acquire()

	// The release/acquire pair reuses; only one construction total
	if constructed != 1 {
		t.Errorf("constructed = %d, want 1", constructed)
	}
}

func TestPoolReleaseNil(t *testing.T) {
	p := NewPool(4,
		func() *poolItem { return &poolItem{} },
		func(it *poolItem) {},
	)
	p.Release(nil)
	if p.Free() != 0 {
		t.Errorf("Free after nil release = %d, want 0", p.Free())
	}
}
