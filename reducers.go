package linqkit

import (
	"cmp"

	"golang.org/x/exp/constraints"
)

// The reducers below consume the sequence immediately and return a
// scalar. The ones without a seed or a default fail on documented
// preconditions with ErrEmptySequence or ErrOutOfRange; the _OrDefault_
// style siblings are the non-failing alternatives.

// Number is the constraint accepted by the arithmetic reducers.
type Number interface {
	constraints.Integer | constraints.Float
}

// Aggregate folds the sequence with fn, seeding the accumulator with the
// first element. It fails with ErrEmptySequence on an empty sequence;
// seed the fold with Reduce when that is not acceptable.
func Aggregate[T any](q Enumerable[T], fn func(acc, v T) T) (T, error) {
	next := q.Producer()
	ptr := next()
	if ptr == nil {
		var zero T
		return zero, ErrEmptySequence
	}
	acc := *ptr
	for ptr = next(); ptr != nil; ptr = next() {
		acc = fn(acc, *ptr)
	}
	return acc, nil
}

// Reduce folds the sequence with fn starting from the given initial
// accumulator. On an empty sequence the initial value is returned as is.
func Reduce[R, T any](q Enumerable[T], initial R, fn func(R, T) R) R {
	acc := initial
	next := q.Producer()
	for ptr := next(); ptr != nil; ptr = next() {
		acc = fn(acc, *ptr)
	}
	return acc
}

// All reports whether every element satisfies pred.
// It is true for an empty sequence.
func All[T any](q Enumerable[T], pred func(T) bool) bool {
	next := q.Producer()
	for ptr := next(); ptr != nil; ptr = next() {
		if !pred(*ptr) {
			return false
		}
	}
	return true
}

// Any reports whether the sequence has at least one element.
func Any[T any](q Enumerable[T]) bool {
	return q.Producer()() != nil
}

// Contains reports whether the sequence contains the given value.
func Contains[T comparable](q Enumerable[T], v T) bool {
	next := q.Producer()
	for ptr := next(); ptr != nil; ptr = next() {
		if *ptr == v {
			return true
		}
	}
	return false
}

// ContainsFunc is Contains with an explicit equality function.
func ContainsFunc[T any](q Enumerable[T], v T, eq func(T, T) bool) bool {
	next := q.Producer()
	for ptr := next(); ptr != nil; ptr = next() {
		if eq(*ptr, v) {
			return true
		}
	}
	return false
}

// CountBy returns the number of elements that satisfy pred.
func CountBy[T any](q Enumerable[T], pred func(T) bool) int {
	var total int
	next := q.Producer()
	for ptr := next(); ptr != nil; ptr = next() {
		if pred(*ptr) {
			total++
		}
	}
	return total
}

// Sum adds up the elements of a numeric sequence.
// It fails with ErrEmptySequence on an empty sequence.
func Sum[T Number](q Enumerable[T]) (T, error) {
	return SumBy(q, identity[T])
}

// SumBy adds up the numeric values selected from each element.
// It fails with ErrEmptySequence on an empty sequence.
func SumBy[T any, N Number](q Enumerable[T], sel func(T) N) (N, error) {
	var (
		sum      N
		iterated bool
	)
	next := q.Producer()
	for ptr := next(); ptr != nil; ptr = next() {
		sum += sel(*ptr)
		iterated = true
	}
	if !iterated {
		return sum, ErrEmptySequence
	}
	return sum, nil
}

// Average returns the mean of a numeric sequence, computed in the
// element type: for integers the division truncates.
// It fails with ErrEmptySequence on an empty sequence.
func Average[T Number](q Enumerable[T]) (T, error) {
	return AverageBy(q, identity[T])
}

// AverageBy returns the mean of the numeric values selected from each
// element. It fails with ErrEmptySequence on an empty sequence.
func AverageBy[T any, N Number](q Enumerable[T], sel func(T) N) (N, error) {
	var (
		sum   N
		total N
	)
	next := q.Producer()
	for ptr := next(); ptr != nil; ptr = next() {
		sum += sel(*ptr)
		total++
	}
	if total == 0 {
		return sum, ErrEmptySequence
	}
	return sum / total, nil
}

// Min returns the smallest element of the sequence.
// It fails with ErrEmptySequence on an empty sequence.
func Min[T cmp.Ordered](q Enumerable[T]) (T, error) {
	return MinOf(q, identity[T])
}

// MinOf returns the smallest value selected from the elements.
// It fails with ErrEmptySequence on an empty sequence.
func MinOf[T any, K cmp.Ordered](q Enumerable[T], sel func(T) K) (K, error) {
	next := q.Producer()
	ptr := next()
	if ptr == nil {
		var zero K
		return zero, ErrEmptySequence
	}
	best := sel(*ptr)
	for ptr = next(); ptr != nil; ptr = next() {
		best = min(best, sel(*ptr))
	}
	return best, nil
}

// Max returns the largest element of the sequence.
// It fails with ErrEmptySequence on an empty sequence.
func Max[T cmp.Ordered](q Enumerable[T]) (T, error) {
	return MaxOf(q, identity[T])
}

// MaxOf returns the largest value selected from the elements.
// It fails with ErrEmptySequence on an empty sequence.
func MaxOf[T any, K cmp.Ordered](q Enumerable[T], sel func(T) K) (K, error) {
	next := q.Producer()
	ptr := next()
	if ptr == nil {
		var zero K
		return zero, ErrEmptySequence
	}
	best := sel(*ptr)
	for ptr = next(); ptr != nil; ptr = next() {
		best = max(best, sel(*ptr))
	}
	return best, nil
}

// First returns the first element of the sequence.
// It fails with ErrEmptySequence on an empty sequence.
func First[T any](q Enumerable[T]) (T, error) {
	ptr := q.Producer()()
	if ptr == nil {
		var zero T
		return zero, ErrEmptySequence
	}
	return *ptr, nil
}

// FirstBy returns the first element that satisfies pred.
// It fails with ErrEmptySequence when the sequence is empty, and with
// ErrOutOfRange when it is not but no element matches.
func FirstBy[T any](q Enumerable[T], pred func(T) bool) (T, error) {
	next := q.Producer()
	ptr := next()
	if ptr == nil {
		var zero T
		return zero, ErrEmptySequence
	}
	for ; ptr != nil; ptr = next() {
		if pred(*ptr) {
			return *ptr, nil
		}
	}
	var zero T
	return zero, ErrOutOfRange
}

// FirstOrDefault returns the first element,
// or the zero value on an empty sequence.
func FirstOrDefault[T any](q Enumerable[T]) T {
	v, _ := First(q)
	return v
}

// FirstOrDefaultBy returns the first element satisfying pred,
// or the zero value when there is none.
func FirstOrDefaultBy[T any](q Enumerable[T], pred func(T) bool) T {
	v, err := FirstBy(q, pred)
	if err != nil {
		var zero T
		return zero
	}
	return v
}

// Last returns the last element of the sequence via a full forward scan.
// It fails with ErrEmptySequence on an empty sequence.
func Last[T any](q Enumerable[T]) (T, error) {
	next := q.Producer()
	ptr := next()
	if ptr == nil {
		var zero T
		return zero, ErrEmptySequence
	}
	last := *ptr
	for ptr = next(); ptr != nil; ptr = next() {
		last = *ptr
	}
	return last, nil
}

// LastBy returns the last element that satisfies pred, remembering the
// most recent match during a full forward scan.
// It fails with ErrEmptySequence when the sequence is empty, and with
// ErrOutOfRange when it is not but no element matches.
func LastBy[T any](q Enumerable[T], pred func(T) bool) (T, error) {
	var (
		last     T
		matched  bool
		iterated bool
	)
	next := q.Producer()
	for ptr := next(); ptr != nil; ptr = next() {
		iterated = true
		if pred(*ptr) {
			last = *ptr
			matched = true
		}
	}
	if !iterated {
		var zero T
		return zero, ErrEmptySequence
	}
	if !matched {
		var zero T
		return zero, ErrOutOfRange
	}
	return last, nil
}

// LastOrDefault returns the last element,
// or the zero value on an empty sequence.
func LastOrDefault[T any](q Enumerable[T]) T {
	v, _ := Last(q)
	return v
}

// LastOrDefaultBy returns the last element satisfying pred,
// or the zero value when there is none.
func LastOrDefaultBy[T any](q Enumerable[T], pred func(T) bool) T {
	v, err := LastBy(q, pred)
	if err != nil {
		var zero T
		return zero
	}
	return v
}

// Single returns the sole element of the sequence.
// It fails with ErrEmptySequence when the sequence is empty, and with
// ErrOutOfRange when it holds more than one element, duplicates included.
func Single[T any](q Enumerable[T]) (T, error) {
	next := q.Producer()
	ptr := next()
	if ptr == nil {
		var zero T
		return zero, ErrEmptySequence
	}
	v := *ptr
	if next() != nil {
		var zero T
		return zero, ErrOutOfRange
	}
	return v, nil
}

// SingleBy returns the sole element that satisfies pred.
// It fails with ErrEmptySequence when the sequence is empty, and with
// ErrOutOfRange when no element matches or more than one does.
func SingleBy[T any](q Enumerable[T], pred func(T) bool) (T, error) {
	var (
		found    T
		matched  bool
		iterated bool
	)
	next := q.Producer()
	for ptr := next(); ptr != nil; ptr = next() {
		iterated = true
		if !pred(*ptr) {
			continue
		}
		if matched {
			var zero T
			return zero, ErrOutOfRange
		}
		found = *ptr
		matched = true
	}
	if !iterated {
		var zero T
		return zero, ErrEmptySequence
	}
	if !matched {
		var zero T
		return zero, ErrOutOfRange
	}
	return found, nil
}

// SingleOrDefault returns the sole element of the sequence,
// or the zero value when it is empty or holds more than one element.
func SingleOrDefault[T any](q Enumerable[T]) T {
	v, err := Single(q)
	if err != nil {
		var zero T
		return zero
	}
	return v
}

// SingleOrDefaultBy returns the sole element satisfying pred, or the
// zero value when there is no match or more than one.
func SingleOrDefaultBy[T any](q Enumerable[T], pred func(T) bool) T {
	v, err := SingleBy(q, pred)
	if err != nil {
		var zero T
		return zero
	}
	return v
}

// ElementAt returns the element at the given 0-based index.
// It fails with ErrOutOfRange when the index is negative or past the end.
func ElementAt[T any](q Enumerable[T], index int) (T, error) {
	var zero T
	if index < 0 {
		return zero, ErrOutOfRange
	}
	if n, ok := q.FastCount(); ok && n <= index {
		return zero, ErrOutOfRange
	}
	next := q.Producer()
	for skipped := 0; skipped < index; skipped++ {
		if next() == nil {
			return zero, ErrOutOfRange
		}
	}
	ptr := next()
	if ptr == nil {
		return zero, ErrOutOfRange
	}
	return *ptr, nil
}

// ElementAtOrDefault returns the element at the given 0-based index,
// or the zero value when the index is out of range.
func ElementAtOrDefault[T any](q Enumerable[T], index int) T {
	v, err := ElementAt(q, index)
	if err != nil {
		var zero T
		return zero
	}
	return v
}

// SequenceEqual reports whether two sequences contain equal elements in
// the same order and have the same length.
func SequenceEqual[T comparable](a, b Enumerable[T]) bool {
	return SequenceEqualFunc(a, b, func(x, y T) bool { return x == y })
}

// SequenceEqualFunc is SequenceEqual with an explicit equality function.
func SequenceEqualFunc[T any](a, b Enumerable[T], eq func(T, T) bool) bool {
	nextA := a.Producer()
	nextB := b.Producer()
	for {
		pa := nextA()
		pb := nextB()
		if pa == nil || pb == nil {
			return pa == nil && pb == nil
		}
		if !eq(*pa, *pb) {
			return false
		}
	}
}

// ToSlice materializes the sequence into a freshly allocated slice.
func ToSlice[T any](q Enumerable[T]) []T {
	var vs []T
	if n, ok := q.FastCount(); ok {
		vs = make([]T, 0, n)
	}
	next := q.Producer()
	for ptr := next(); ptr != nil; ptr = next() {
		vs = append(vs, *ptr)
	}
	return vs
}

// ToMap materializes the sequence into a map keyed by the given key
// selector. On key collision the later element wins.
func ToMap[T any, K comparable](q Enumerable[T], key func(T) K) map[K]T {
	return ToMapValues(q, key, identity[T])
}

// ToMapValues is ToMap with a value selector applied to each element.
func ToMapValues[T any, K comparable, V any](q Enumerable[T], key func(T) K, value func(T) V) map[K]V {
	m := make(map[K]V)
	next := q.Producer()
	for ptr := next(); ptr != nil; ptr = next() {
		m[key(*ptr)] = value(*ptr)
	}
	return m
}
