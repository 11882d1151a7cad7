package stage

// ObservableSequence is an ordered list whose structural mutations are
// published. Reads (At, Len, Values) touch only the backing slice. Each
// mutator performs the operation, computes its own return value, publishes a
// copy of the whole resulting sequence exactly once, and then returns.
type ObservableSequence[T any] struct {
	items []T
	ch    Channel[[]T]
}

// NewObservableSequence creates a sequence over a copy of items that publishes
// on ch. ch may be nil.
func NewObservableSequence[T any](items []T, ch Channel[[]T]) *ObservableSequence[T] {
	return &ObservableSequence[T]{items: append([]T(nil), items...), ch: ch}
}

// At returns the element at index i. Panics when i is out of range.
func (s *ObservableSequence[T]) At(i int) T { return s.items[i] }

// Len returns the number of elements.
func (s *ObservableSequence[T]) Len() int { return len(s.items) }

// Values returns a copy of the elements.
func (s *ObservableSequence[T]) Values() []T {
	return append([]T(nil), s.items...)
}

func (s *ObservableSequence[T]) notify() {
	if s.ch != nil {
		s.ch.Publish(s.Values())
	}
}

// Push appends items and returns the new length.
func (s *ObservableSequence[T]) Push(items ...T) int {
	s.items = append(s.items, items...)
	n := len(s.items)
	s.notify()
	return n
}

// Pop removes and returns the last element. ok is false when the sequence was
// empty; the notification fires either way.
func (s *ObservableSequence[T]) Pop() (v T, ok bool) {
	if n := len(s.items); n > 0 {
		v, ok = s.items[n-1], true
		var zero T
		s.items[n-1] = zero
		s.items = s.items[:n-1]
	}
	s.notify()
	return v, ok
}

// Shift removes and returns the first element. ok is false when the sequence
// was empty; the notification fires either way.
func (s *ObservableSequence[T]) Shift() (v T, ok bool) {
	if n := len(s.items); n > 0 {
		v, ok = s.items[0], true
		copy(s.items, s.items[1:])
		var zero T
		s.items[n-1] = zero
		s.items = s.items[:n-1]
	}
	s.notify()
	return v, ok
}

// Unshift inserts items at the front, keeping their order, and returns the
// new length.
func (s *ObservableSequence[T]) Unshift(items ...T) int {
	next := make([]T, 0, len(items)+len(s.items))
	next = append(next, items...)
	s.items = append(next, s.items...)
	n := len(s.items)
	s.notify()
	return n
}

// Slice returns a copy of the elements in [start, end). Negative indices count
// back from the end; both bounds are clamped to the sequence. The backing
// store is left as is, but the notification still fires.
func (s *ObservableSequence[T]) Slice(start, end int) []T {
	n := len(s.items)
	start = clampIndex(start, n)
	end = clampIndex(end, n)
	var out []T
	if start < end {
		out = append(out, s.items[start:end]...)
	}
	s.notify()
	return out
}

// Splice removes deleteCount elements starting at start, inserts items in
// their place, and returns the removed elements. A negative start counts back
// from the end; deleteCount is clamped to what is available.
func (s *ObservableSequence[T]) Splice(start, deleteCount int, items ...T) []T {
	n := len(s.items)
	start = clampIndex(start, n)
	deleteCount = max(0, min(deleteCount, n-start))

	removed := append([]T(nil), s.items[start:start+deleteCount]...)
	next := make([]T, 0, n-deleteCount+len(items))
	next = append(next, s.items[:start]...)
	next = append(next, items...)
	next = append(next, s.items[start+deleteCount:]...)
	s.items = next
	s.notify()
	return removed
}

// clampIndex resolves a possibly negative index against length n into [0, n].
func clampIndex(i, n int) int {
	if i < 0 {
		i += n
		if i < 0 {
			return 0
		}
		return i
	}
	return min(i, n)
}
