package eddy

// queue is a FIFO of buffered values.
type queue[T any] struct {
	items []T
}

func (q *queue[T]) push(v T) {
	q.items = append(q.items, v)
}

func (q *queue[T]) pop() T {
	v := q.items[0]

	var zero T
	q.items[0] = zero
	q.items = q.items[1:]

	if len(q.items) == 0 {
		// Reset so the backing array does not grow without bound.
		q.items = nil
	}
	return v
}

func (q *queue[T]) len() int {
	return len(q.items)
}
