package pagination

import (
	"sync"
	"sync/atomic"
)

// View guards a paged listing against out-of-order fetch completions. Page
// fetches keyed only by page number can resolve out of order when the user
// pages quickly; the view must reflect the most recently requested page, not
// the most recently resolved response.
//
// Each fetch is tagged with a monotonically increasing sequence number via
// Issue. A completed fetch is published with Accept, which discards it unless
// its sequence number is still the latest issued.
type View[T any] struct {
	issued atomic.Uint64

	mu       sync.Mutex
	accepted uint64
	current  Page[T]
}

// Issue tags a new page request and returns its sequence number.
func (v *View[T]) Issue() uint64 {
	return v.issued.Add(1)
}

// Accept publishes a fetched page if seq is the latest issued sequence.
// It reports whether the page was accepted or discarded as stale.
func (v *View[T]) Accept(seq uint64, page Page[T]) bool {
	if seq != v.issued.Load() {
		return false
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if seq <= v.accepted {
		return false
	}
	v.accepted = seq
	v.current = page
	return true
}

// Current returns the most recently accepted page.
func (v *View[T]) Current() Page[T] {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.current
}
