package search

// Item is a heap entry returned by Pop
type Item[T any] struct {
	Value    T
	Priority float64
	seq      uint64
}

// Heap is an array-backed binary min-heap keyed by priority
// Equal priorities pop in insertion order; no decrease-key, callers re-push instead
type Heap[T any] struct {
	items []Item[T]
	seq   uint64
}

// NewHeap creates a heap with room for capacity entries
func NewHeap[T any](capacity int) *Heap[T] {
	return &Heap[T]{items: make([]Item[T], 0, capacity)}
}

// Len returns the number of queued entries
func (h *Heap[T]) Len() int { return len(h.items) }

// Reset empties the heap, keeping the backing array
func (h *Heap[T]) Reset() {
	h.items = h.items[:0]
	h.seq = 0
}

// Push enqueues value with the given priority
func (h *Heap[T]) Push(value T, priority float64) {
	h.items = append(h.items, Item[T]{Value: value, Priority: priority, seq: h.seq})
	h.seq++

	// Sift up
	i := len(h.items) - 1
	for i > 0 {
		parent := (i - 1) / 2
		if !h.less(i, parent) {
			break
		}
		h.items[parent], h.items[i] = h.items[i], h.items[parent]
		i = parent
	}
}

// Pop removes and returns the lowest-priority entry, ok is false when empty
func (h *Heap[T]) Pop() (Item[T], bool) {
	n := len(h.items)
	if n == 0 {
		return Item[T]{}, false
	}
	top := h.items[0]
	h.items[0] = h.items[n-1]
	h.items[n-1] = Item[T]{}
	h.items = h.items[:n-1]

	// Sift down
	i := 0
	for {
		left := 2*i + 1
		if left >= len(h.items) {
			break
		}
		smallest := left
		if right := left + 1; right < len(h.items) && h.less(right, left) {
			smallest = right
		}
		if !h.less(smallest, i) {
			break
		}
		h.items[i], h.items[smallest] = h.items[smallest], h.items[i]
		i = smallest
	}
	return top, true
}

// Peek returns the lowest-priority entry without removing it
func (h *Heap[T]) Peek() (Item[T], bool) {
	if len(h.items) == 0 {
		return Item[T]{}, false
	}
	return h.items[0], true
}

func (h *Heap[T]) less(i, j int) bool {
	a, b := h.items[i], h.items[j]
	if a.Priority != b.Priority {
		return a.Priority < b.Priority
	}
	return a.seq < b.seq
}
