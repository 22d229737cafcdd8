package astar

import "container/heap"

// frontier is the open set of one search: a binary min-heap of live candidates
// ordered by Score() ascending, ties broken by insertion sequence (FIFO).
//
// It keeps at most one live candidate per destination state; byEnd indexes the
// heap slot of that candidate so a dominated entry can be removed in O(log n)
// instead of a linear scan.
type frontier[T comparable] struct {
	items entryHeap[T]
	byEnd map[T]*entry[T]
	seq   uint64
}

// entry is one heap slot.
type entry[T comparable] struct {
	path  *Path[T]
	seq   uint64 // insertion order, for deterministic tie-breaks
	index int    // position in items, maintained by Swap
}

func newFrontier[T comparable]() *frontier[T] {
	return &frontier[T]{byEnd: make(map[T]*entry[T])}
}

// Len returns the number of live candidates.
func (f *frontier[T]) Len() int { return len(f.items) }

// push inserts p. Any live candidate with the same endpoint must have been
// removed first; push replaces the index entry unconditionally.
func (f *frontier[T]) push(p *Path[T]) {
	e := &entry[T]{path: p, seq: f.seq}
	f.seq++
	heap.Push(&f.items, e)
	f.byEnd[p.Endpoint()] = e
}

// pop removes and returns the lowest-score candidate.
func (f *frontier[T]) pop() *Path[T] {
	e := heap.Pop(&f.items).(*entry[T])
	delete(f.byEnd, e.path.Endpoint())

	return e.path
}

// remove drops the live candidate ending at state, if any, and reports whether one existed.
func (f *frontier[T]) remove(state T) bool {
	e, ok := f.byEnd[state]
	if !ok {
		return false
	}
	heap.Remove(&f.items, e.index)
	delete(f.byEnd, state)

	return true
}

// live returns the live candidate ending at state, if any.
func (f *frontier[T]) live(state T) (*Path[T], bool) {
	e, ok := f.byEnd[state]
	if !ok {
		return nil, false
	}

	return e.path, true
}

// endpoints returns the endpoints of every live candidate, in heap order.
func (f *frontier[T]) endpoints() []T {
	out := make([]T, len(f.items))
	for i, e := range f.items {
		out[i] = e.path.Endpoint()
	}

	return out
}

// entryHeap implements heap.Interface over *entry.
type entryHeap[T comparable] []*entry[T]

func (h entryHeap[T]) Len() int { return len(h) }

func (h entryHeap[T]) Less(i, j int) bool {
	si, sj := h[i].path.Score(), h[j].path.Score()
	if si != sj {
		return si < sj
	}

	return h[i].seq < h[j].seq
}

func (h entryHeap[T]) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *entryHeap[T]) Push(x any) {
	e := x.(*entry[T])
	e.index = len(*h)
	*h = append(*h, e)
}

func (h *entryHeap[T]) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*h = old[:n-1]

	return e
}
