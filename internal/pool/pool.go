// Package pool provides a slot-reuse container that hands out small integer
// identifiers for live elements and recycles them after removal.
//
// Removal never shifts or compacts storage. Memory is bounded by the high-water
// mark of concurrently live elements, and a hint pointer makes the common
// "remove, then add again nearby" pattern O(1).
//
// A Pool is not safe for concurrent mutation. Callers that share one across
// goroutines must serialize every Add and Remove.
package pool

import "fmt"

// entry is one slot of the pool. used is false for the empty marker.
type entry[T any] struct {
	value T
	used  bool
}

// Pool stores elements in reusable slots. The zero value is an empty pool.
type Pool[T any] struct {
	slots      []entry[T]
	hint       int // Where the next Add starts probing
	upperBound int // Every occupied slot is below this index
	live       int
}

// Add stores v in a free slot and returns the slot id.
//
// Probing starts at the hint and runs toward the upper bound, then wraps to
// the front and stops short of where it started. When no free slot is found
// a new one is committed at the upper bound. The hint is left on the chosen
// slot.
func (p *Pool[T]) Add(v T) int {
	lastStart := min(p.hint, p.upperBound-1)

	cur := p.hint
	for cur < p.upperBound && p.slots[cur].used {
		cur++
	}

	if cur >= p.upperBound {
		cur = 0
		for cur < lastStart && p.slots[cur].used {
			cur++
		}
	}

	if cur >= p.upperBound || p.slots[cur].used {
		cur = p.upperBound
		p.upperBound++
	}

	if cur == len(p.slots) {
		p.slots = append(p.slots, entry[T]{})
	}
	p.slots[cur] = entry[T]{value: v, used: true}
	p.hint = cur
	p.live++

	return cur
}

// Remove frees the slot id.
//
// Freeing the last slot below the upper bound trims the bound by exactly one;
// earlier free slots exposed by the trim stay inside the bound. Freeing any
// other slot points the hint at it so the next Add reuses it at once.
//
// Removing a slot that is not occupied panics.
func (p *Pool[T]) Remove(id int) {
	if id < 0 || id >= p.upperBound || !p.slots[id].used {
		panic(fmt.Sprintf("pool: remove of free slot %d (upper bound %d)", id, p.upperBound))
	}

	p.slots[id] = entry[T]{}
	p.live--

	if id == p.upperBound-1 {
		p.upperBound--
	} else {
		p.hint = id
	}
}

// ForEach calls visit for every occupied slot in increasing id order.
// live is the ordinal of the element within this walk and is not stable
// across calls.
func (p *Pool[T]) ForEach(visit func(v T, id, live int)) {
	n := 0
	for id := 0; id < p.upperBound; id++ {
		if !p.slots[id].used {
			continue
		}
		visit(p.slots[id].value, id, n)
		n++
	}
}

// Get returns the element stored at id.
func (p *Pool[T]) Get(id int) (T, bool) {
	if id < 0 || id >= p.upperBound || !p.slots[id].used {
		var zero T
		return zero, false
	}
	return p.slots[id].value, true
}

// Len returns the number of occupied slots.
func (p *Pool[T]) Len() int {
	return p.live
}

// UpperBound returns the exclusive bound of occupied slot ids.
func (p *Pool[T]) UpperBound() int {
	return p.upperBound
}

// Cap returns the number of slots ever committed, the high-water mark.
func (p *Pool[T]) Cap() int {
	return len(p.slots)
}
