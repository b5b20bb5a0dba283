package event

// Queue is a same-frame event buffer: producers Push during a phase and a
// later system in the same frame Drains it. Unlike the Bus nothing survives
// into the next frame.
type Queue[T any] struct {
	items []T
}

func NewQueue[T any]() *Queue[T] {
	return &Queue[T]{items: make([]T, 0, 16)}
}

func (q *Queue[T]) Push(ev T) { q.items = append(q.items, ev) }

func (q *Queue[T]) Len() int { return len(q.items) }

// Drain hands every queued event to fn in push order and empties the queue.
func (q *Queue[T]) Drain(fn func(T)) {
	for _, ev := range q.items {
		fn(ev)
	}
	var zero T
	for i := range q.items {
		q.items[i] = zero
	}
	q.items = q.items[:0]
}

// Reset discards anything left over.
func (q *Queue[T]) Reset() { q.items = q.items[:0] }
