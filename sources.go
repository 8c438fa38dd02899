package linqkit

import (
	"iter"

	"golang.org/x/exp/constraints"
)

// FromSlice wraps an existing slice without copying it.
// The sequence aliases the slice's backing array: mutations through
// Refs, and mutations of the slice by the caller, are visible both ways.
func FromSlice[T any](vs []T) Enumerable[T] {
	return Enumerable[T]{
		produce: func() Producer[T] { return sliceProducer(vs) },
		count:   func() int { return len(vs) },
	}
}

// FromValues makes a sequence that owns the given values.
func FromValues[T any](vs ...T) Enumerable[T] {
	return FromSlice(vs)
}

// KeyValue is a key-value record, used by FromMap and the ToMap reducers.
type KeyValue[K, V any] struct {
	Key   K
	Value V
}

// FromMap makes a sequence of the map's key-value pairs.
// The pairs are snapshot on first iteration, so while their order is
// unspecified, it is the same on every restart of the same handle.
func FromMap[K comparable, V any](m map[K]V) Enumerable[KeyValue[K, V]] {
	cell := &memo[KeyValue[K, V]]{}
	snapshot := func() []KeyValue[K, V] {
		vs := make([]KeyValue[K, V], 0, len(m))
		for k, v := range m {
			vs = append(vs, KeyValue[K, V]{Key: k, Value: v})
		}
		return vs
	}
	return Enumerable[KeyValue[K, V]]{
		produce: func() Producer[KeyValue[K, V]] {
			return sliceProducer(cell.values(snapshot))
		},
		count: func() int { return len(m) },
	}
}

// FromSeq wraps a multi-use iter.Seq.
// The seq must be restartable for the Enumerable contract to hold;
// wrapping a single-use seq yields a sequence that is empty on its
// second iteration.
func FromSeq[T any](src iter.Seq[T]) Enumerable[T] {
	return Enumerable[T]{
		produce: func() Producer[T] {
			next, stop := iter.Pull(src)
			var (
				done    bool
				scratch T
			)
			return func() *T {
				if done {
					return nil
				}
				v, ok := next()
				if !ok {
					done = true
					stop()
					return nil
				}
				scratch = v
				return &scratch
			}
		},
	}
}

// FromProducer is the escape hatch for bespoke sources.
// The make function is called once per iteration and must return a fresh
// cursor; see Producer for the contract it has to fulfil.
func FromProducer[T any](make func() Producer[T]) Enumerable[T] {
	return Enumerable[T]{produce: make}
}

// FromCountingProducer is FromProducer for sources that can also report
// their size without traversal.
func FromCountingProducer[T any](make func() Producer[T], count func() int) Enumerable[T] {
	return Enumerable[T]{produce: make, count: count}
}

// Range makes a sequence of count consecutive integers starting at start.
func Range[T constraints.Integer](start T, count int) Enumerable[T] {
	if count < 0 {
		count = 0
	}
	return Enumerable[T]{
		produce: func() Producer[T] {
			var (
				index   int
				scratch T
			)
			return func() *T {
				if count <= index {
					return nil
				}
				scratch = start + T(index)
				index++
				return &scratch
			}
		},
		count: func() int { return count },
	}
}

// Repeat makes a sequence that contains the given value n times.
func Repeat[T any](v T, n int) Enumerable[T] {
	if n < 0 {
		n = 0
	}
	return Enumerable[T]{
		produce: func() Producer[T] {
			var (
				index   int
				scratch T
			)
			return func() *T {
				if n <= index {
					return nil
				}
				scratch = v
				index++
				return &scratch
			}
		},
		count: func() int { return n },
	}
}

// Empty makes a sequence with no elements.
func Empty[T any]() Enumerable[T] {
	return Enumerable[T]{count: func() int { return 0 }}
}
