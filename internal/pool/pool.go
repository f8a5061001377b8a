// Package pool provides a bounded free list for reusable engine nodes.
//
// It is deliberately not safe for concurrent use: the engine is strictly
// single-threaded and pools are confined to one Test instance. State reset is
// the owning component's responsibility; the pool only stores and hands back
// instances.
package pool

// Pool is a bounded free list of reusable instances. Acquire pops a recycled
// instance or constructs a new one; Release pushes an instance back until the
// capacity is reached, after which instances are discarded and left to the
// garbage collector.
type Pool[T any] struct {
	free     []T
	capacity int
	newFn    func() T
}

// New returns a Pool holding at most capacity idle instances. newFn must not
// be nil. A non-positive capacity falls back to a small default.
func New[T any](capacity int, newFn func() T) *Pool[T] {
	if capacity <= 0 {
		capacity = 16
	}
	return &Pool[T]{
		free:     make([]T, 0, capacity),
		capacity: capacity,
		newFn:    newFn,
	}
}

// Acquire returns a recycled or freshly constructed instance.
func (p *Pool[T]) Acquire() T {
	if n := len(p.free); n > 0 {
		v := p.free[n-1]
		var zero T
		p.free[n-1] = zero
		p.free = p.free[:n-1]
		return v
	}
	return p.newFn()
}

// Release returns an instance to the free list. Excess instances beyond the
// capacity are dropped.
func (p *Pool[T]) Release(v T) {
	if len(p.free) >= p.capacity {
		return
	}
	p.free = append(p.free, v)
}

// Idle reports the number of instances currently held by the free list.
func (p *Pool[T]) Idle() int { return len(p.free) }
