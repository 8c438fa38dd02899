// Package linqkit provides deferred-execution query operators over lazy sequences.
//
// # Summary
//
// A query is built by wrapping a data source into an Enumerable and then
// applying operators to it. Operators never mutate their input; each
// application yields a new Enumerable (or a scalar for the terminal
// reducers). Nothing is computed at composition time: elements are only
// produced when the resulting sequence is iterated or its size is asked
// for, and operators that must see their whole input before producing
// anything (OrderBy, GroupBy, Join...) materialize it exactly once and
// cache the result on the handle they returned.
//
// An Enumerable is a restartable handle: every iteration starts over from
// the first element, and all cursor state lives in the Producer obtained
// from it, never in the handle itself.
//
// # Resources
//
// https://en.wikipedia.org/wiki/Language_Integrated_Query
// https://en.wikipedia.org/wiki/Iterator_pattern
package linqkit

import (
	"iter"
	"slices"
	"sync"
)

// Producer is the per-iteration cursor of an Enumerable.
// Each call returns a pointer to the next element of the sequence,
// or nil once the sequence is exhausted.
// After exhaustion it keeps returning nil on every subsequent call.
//
// The returned pointer stays valid until the next call only.
// Sequences backed by stable storage (FromSlice) hand out pointers into
// that storage, so writing through them is visible to every other view
// over the same backing store. Sequences that synthesize their elements
// (Select, Range) hand out pointers to producer-owned scratch storage
// that is overwritten by the next call.
type Producer[T any] func() *T

// Enumerable is a lazy, multipass, forward-only sequence of T elements.
//
// The handle itself is stateless and cheap to copy; obtaining a Producer
// from it restarts iteration from the first element. The zero value is an
// empty sequence.
type Enumerable[T any] struct {
	produce func() Producer[T]
	count   func() int // nil when fast counting is not possible
}

// Producer returns a fresh cursor positioned before the first element.
// Obtaining a producer has no side effect on the handle or on any other
// live producer.
func (q Enumerable[T]) Producer() Producer[T] {
	if q.produce == nil {
		return func() *T { return nil }
	}
	return q.produce()
}

// All yields the elements of the sequence.
// The returned iter.Seq is multi-use: every range over it restarts from
// the first element.
func (q Enumerable[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		next := q.Producer()
		for ptr := next(); ptr != nil; ptr = next() {
			if !yield(*ptr) {
				return
			}
		}
	}
}

// Refs yields pointers to the elements of the sequence.
// For sequences over stable storage the pointers alias the backing store,
// so in-place mutation through them is visible to all other views.
// See Producer for the validity window of each pointer.
func (q Enumerable[T]) Refs() iter.Seq[*T] {
	return func(yield func(*T) bool) {
		next := q.Producer()
		for ptr := next(); ptr != nil; ptr = next() {
			if !yield(ptr) {
				return
			}
		}
	}
}

// FastCount reports the number of elements when it is knowable without
// traversing the sequence.
func (q Enumerable[T]) FastCount() (int, bool) {
	if q.count == nil {
		return 0, false
	}
	return q.count(), true
}

// Count returns the number of elements in the sequence.
// When no fast count is available it falls back to a full traversal;
// the traversal uses its own producer and leaves every other live
// producer untouched. Count is idempotent.
func (q Enumerable[T]) Count() int {
	if n, ok := q.FastCount(); ok {
		return n
	}
	var total int
	next := q.Producer()
	for ptr := next(); ptr != nil; ptr = next() {
		total++
	}
	return total
}

// sliceProducer cursors over a slice, handing out pointers into it.
func sliceProducer[T any](vs []T) Producer[T] {
	var index int
	return func() *T {
		if len(vs) <= index {
			return nil
		}
		ptr := &vs[index]
		index++
		return ptr
	}
}

// memo is a materialize-on-first-use cache cell.
// It is shared by every producer of the handle that owns it, so the
// expensive materialization happens at most once per handle regardless of
// how many iterations are started.
type memo[T any] struct {
	once sync.Once
	vs   []T
}

func (m *memo[T]) values(init func() []T) []T {
	m.once.Do(func() { m.vs = init() })
	return m.vs
}

// derivedCount propagates a statically known size through an operator,
// without forcing the upstream count at composition time.
func derivedCount[T any](q Enumerable[T], f func(int) int) func() int {
	if q.count == nil {
		return nil
	}
	return func() int { return f(q.count()) }
}

// seenSet is an ordered set used by the set operators for
// membership tests, backed by a sorted slice.
type seenSet[T any] struct {
	compare func(T, T) int
	vs      []T
}

// add inserts v and reports whether it was not present before.
func (s *seenSet[T]) add(v T) bool {
	i, found := slices.BinarySearchFunc(s.vs, v, s.compare)
	if found {
		return false
	}
	s.vs = slices.Insert(s.vs, i, v)
	return true
}
