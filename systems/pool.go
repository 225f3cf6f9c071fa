package systems

// Pool is a generic bounded object pool. Acquire never blocks and never
// panics: when the pool is exhausted it reports failure and the caller
// skips the optional work.
type Pool[T any] struct {
	free      []*T
	allocated int
	max       int
	newFn     func() *T
	resetFn   func(*T)
}

// NewPool creates a pool holding at most max instances. newFn constructs an
// instance on first use; resetFn must clear every mutable field so no state
// leaks across a release/acquire boundary.
func NewPool[T any](max int, newFn func() *T, resetFn func(*T)) *Pool[T] {
	if max < 1 {
		max = 1
	}
	return &Pool[T]{
		free:    make([]*T, 0, max),
		max:     max,
		newFn:   newFn,
		resetFn: resetFn,
	}
}

// Acquire returns a free instance, constructing one lazily while under
// capacity. Returns (nil, false) when the pool is exhausted.
func (p *Pool[T]) Acquire() (*T, bool) {
	if n := len(p.free); n > 0 {
		obj := p.free[n-1]
		p.free[n-1] = nil
		p.free = p.free[:n-1]
		return obj, true
	}
	if p.allocated < p.max {
		p.allocated++
		return p.newFn(), true
	}
	return nil, false
}

// Release resets the instance and returns it to the free list.
// Releasing nil is a no-op.
func (p *Pool[T]) Release(obj *T) {
	if obj == nil {
		return
	}
	p.resetFn(obj)
	p.free = append(p.free, obj)
}

// InUse returns the number of acquired instances.
func (p *Pool[T]) InUse() int {
	return p.allocated - len(p.free)
}

// Free returns the number of instances on the free list.
func (p *Pool[T]) Free() int {
	return len(p.free)
}

// Cap returns the maximum number of instances.
func (p *Pool[T]) Cap() int {
	return p.max
}
