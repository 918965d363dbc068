package sequence

import (
	"iter"
	"sort"
)

// Iterator is a chainable, lazily evaluated sequence of T.
type Iterator[T any] struct {
	seq iter.Seq[T]
}

// From iterates data in order.
func From[T any](data []T) *Iterator[T] {
	return &Iterator[T]{seq: func(yield func(T) bool) {
		for _, v := range data {
			if !yield(v) {
				return
			}
		}
	}}
}

// FromMap iterates the values of data in map order.
func FromMap[K comparable, T any](data map[K]T) *Iterator[T] {
	return &Iterator[T]{seq: func(yield func(T) bool) {
		for _, v := range data {
			if !yield(v) {
				return
			}
		}
	}}
}

func (i *Iterator[T]) Seq() iter.Seq[T] { return i.seq }

// Collect exhausts the iterator into a slice.
func (i *Iterator[T]) Collect() []T {
	var out []T
	for v := range i.seq {
		out = append(out, v)
	}
	return out
}

// Sort returns an iterator over the elements ordered by less. The sort is
// stable.
func (i *Iterator[T]) Sort(less func(a, b T) bool) *Iterator[T] {
	data := i.Collect()
	sort.SliceStable(data, func(x, y int) bool { return less(data[x], data[y]) })
	return From(data)
}

// Filter keeps the elements satisfying pred.
func (i *Iterator[T]) Filter(pred func(T) bool) *Iterator[T] {
	return &Iterator[T]{seq: func(yield func(T) bool) {
		for v := range i.seq {
			if pred(v) && !yield(v) {
				return
			}
		}
	}}
}

func (i *Iterator[T]) Count() int {
	n := 0
	for range i.seq {
		n++
	}
	return n
}

// ToArray maps every element through callback.
func ToArray[T any, S any](it *Iterator[T], callback func(T) S) []S {
	var out []S
	for v := range it.seq {
		out = append(out, callback(v))
	}
	return out
}
