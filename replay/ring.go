package replay

import (
	"iter"

	"github.com/oomph-ac/fpcontroller/oerror"
)

// ring is a fixed capacity queue that overwrites its oldest item once full.
type ring[T any] struct {
	items []T
	head  int
	tail  int
	size  int
}

func newRing[T any](capacity int) *ring[T] {
	return &ring[T]{items: make([]T, capacity)}
}

// push appends an item, returning true if the oldest item had to be dropped to make room for it.
func (q *ring[T]) push(item T) (dropped bool) {
	if len(q.items) == 0 {
		panic(oerror.New("replay: push on zero-capacity ring"))
	}
	q.items[q.tail] = item
	q.tail = (q.tail + 1) % len(q.items)
	if q.size == len(q.items) {
		q.head = (q.head + 1) % len(q.items)
		return true
	}
	q.size++
	return false
}

// at returns the item at logical position index, 0 being the oldest.
func (q *ring[T]) at(index int) (T, bool) {
	var zero T
	if index < 0 || index >= q.size {
		return zero, false
	}
	return q.items[(q.head+index)%len(q.items)], true
}

func (q *ring[T]) len() int {
	return q.size
}

// all iterates over the items from oldest to newest.
func (q *ring[T]) all() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := range q.size {
			if !yield(q.items[(q.head+i)%len(q.items)]) {
				return
			}
		}
	}
}
