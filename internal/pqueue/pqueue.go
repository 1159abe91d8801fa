// Package pqueue provides an indexed binary min-heap with true decrease-key.
//
// Items are identified by a caller-supplied key so the queue can answer
// membership in O(1) and reposition an item after its priority drops
// without removing and reinserting it. Priorities are read through a
// caller-supplied lookup on every comparison, so they may live in external
// state that changes between operations. The caller must only ever lower
// the priority of a queued item and must call DecreaseKey right after.
package pqueue

// Queue is an indexed min-priority queue of T keyed by K.
// The zero value is not usable; create queues with New.
type Queue[T any, K comparable] struct {
	items    []entry[T]
	index    map[K]int
	priority func(T) float64
	key      func(T) K
	tieBreak func(a, b T) bool
	fifo     bool
	seq      uint64
}

type entry[T any] struct {
	item T
	seq  uint64 // insertion sequence number
}

// Option configures a Queue.
type Option[T any] func(*options[T])

type options[T any] struct {
	tieBreak func(a, b T) bool
	fifo     bool
}

// WithTieBreak orders items of equal priority: less(a, b) reports whether
// a should leave the queue before b. Items still tied after less fall
// back to insertion order when WithInsertionOrder is also set.
func WithTieBreak[T any](less func(a, b T) bool) Option[T] {
	return func(o *options[T]) { o.tieBreak = less }
}

// WithInsertionOrder breaks remaining ties by insertion sequence, oldest
// first. Without it, equal-priority items leave in an order determined by
// heap structure alone.
func WithInsertionOrder[T any]() Option[T] {
	return func(o *options[T]) { o.fifo = true }
}

// New creates an empty queue ordered by priority and indexed by key.
func New[T any, K comparable](priority func(T) float64, key func(T) K, opts ...Option[T]) *Queue[T, K] {
	var o options[T]
	for _, opt := range opts {
		opt(&o)
	}
	return &Queue[T, K]{
		index:    make(map[K]int),
		priority: priority,
		key:      key,
		tieBreak: o.tieBreak,
		fifo:     o.fifo,
	}
}

// Len returns the number of queued items.
func (q *Queue[T, K]) Len() int {
	return len(q.items)
}

// Empty reports whether the queue holds no items.
func (q *Queue[T, K]) Empty() bool {
	return len(q.items) == 0
}

// ContainsKey reports whether an item with key k is queued.
func (q *Queue[T, K]) ContainsKey(k K) bool {
	_, ok := q.index[k]
	return ok
}

// Build replaces the queue contents with items and heapifies in O(n).
// When items repeat a key, the first occurrence wins.
func (q *Queue[T, K]) Build(items []T) {
	q.items = make([]entry[T], 0, len(items))
	q.index = make(map[K]int, len(items))
	for _, it := range items {
		k := q.key(it)
		if _, dup := q.index[k]; dup {
			continue
		}
		q.index[k] = len(q.items)
		q.items = append(q.items, entry[T]{item: it, seq: q.nextSeq()})
	}
	for i := len(q.items)/2 - 1; i >= 0; i-- {
		q.down(i)
	}
}

// Insert adds item in O(log n). If an item with the same key is already
// queued, Insert does nothing and returns false; use DecreaseKey instead.
func (q *Queue[T, K]) Insert(item T) bool {
	k := q.key(item)
	if _, ok := q.index[k]; ok {
		return false
	}
	i := len(q.items)
	q.items = append(q.items, entry[T]{item: item, seq: q.nextSeq()})
	q.index[k] = i
	q.up(i)
	return true
}

// Peek returns the minimum item without removing it.
func (q *Queue[T, K]) Peek() (T, bool) {
	if len(q.items) == 0 {
		var zero T
		return zero, false
	}
	return q.items[0].item, true
}

// DeleteMin removes and returns the minimum item in O(log n).
// The second result is false when the queue is empty.
func (q *Queue[T, K]) DeleteMin() (T, bool) {
	var zero T
	n := len(q.items)
	if n == 0 {
		return zero, false
	}

	top := q.items[0].item
	delete(q.index, q.key(top))

	last := q.items[n-1]
	q.items[n-1] = entry[T]{} // drop reference
	q.items = q.items[:n-1]
	if n == 1 {
		return top, true
	}

	q.items[0] = last
	q.index[q.key(last.item)] = 0
	q.down(0)
	return top, true
}

// DecreaseKey restores heap order for the queued item sharing item's key
// after its priority was lowered externally. It does nothing and returns
// false when the key is not queued.
func (q *Queue[T, K]) DecreaseKey(item T) bool {
	i, ok := q.index[q.key(item)]
	if !ok {
		return false
	}
	q.items[i].item = item
	q.up(i)
	return true
}

// Items returns a snapshot of the queued items in heap-array order.
func (q *Queue[T, K]) Items() []T {
	out := make([]T, len(q.items))
	for i, e := range q.items {
		out[i] = e.item
	}
	return out
}

// Keys returns a snapshot of the queued keys in heap-array order.
func (q *Queue[T, K]) Keys() []K {
	out := make([]K, len(q.items))
	for i, e := range q.items {
		out[i] = q.key(e.item)
	}
	return out
}

func (q *Queue[T, K]) nextSeq() uint64 {
	q.seq++
	return q.seq
}

// less reports whether the item at i must leave before the item at j.
func (q *Queue[T, K]) less(i, j int) bool {
	a, b := q.items[i], q.items[j]
	pa, pb := q.priority(a.item), q.priority(b.item)
	if pa != pb {
		return pa < pb
	}
	if q.tieBreak != nil {
		if q.tieBreak(a.item, b.item) {
			return true
		}
		if q.tieBreak(b.item, a.item) {
			return false
		}
	}
	if q.fifo {
		return a.seq < b.seq
	}
	return false
}

// swap exchanges two slots and updates both index entries together.
func (q *Queue[T, K]) swap(i, j int) {
	q.items[i], q.items[j] = q.items[j], q.items[i]
	q.index[q.key(q.items[i].item)] = i
	q.index[q.key(q.items[j].item)] = j
}

func (q *Queue[T, K]) up(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !q.less(i, parent) {
			return
		}
		q.swap(i, parent)
		i = parent
	}
}

func (q *Queue[T, K]) down(i int) {
	n := len(q.items)
	for {
		left := 2*i + 1
		if left >= n {
			return
		}
		smallest := left
		if right := left + 1; right < n && q.less(right, left) {
			smallest = right
		}
		if !q.less(smallest, i) {
			return
		}
		q.swap(i, smallest)
		i = smallest
	}
}
