package linqkit

import (
	"cmp"
	"slices"
)

// OrderedEnumerable is a sequence with a pending ordering.
// Applying ThenBy composes a further ordering for tie-breaking; the one
// eventual stable sort only happens when the result of Enumerable gets
// iterated or counted.
type OrderedEnumerable[T any] struct {
	src     Enumerable[T]
	compare func(T, T) int
}

// Enumerable finalizes the ordering into a lazy sequence handle.
// The sort materializes the source on first access and is cached, so it
// runs at most once per returned handle no matter how many iterations
// are started from it.
func (o OrderedEnumerable[T]) Enumerable() Enumerable[T] {
	cell := &memo[T]{}
	sorted := func() []T {
		vs := ToSlice(o.src)
		slices.SortStableFunc(vs, o.compare)
		return vs
	}
	return Enumerable[T]{
		produce: func() Producer[T] {
			return sliceProducer(cell.values(sorted))
		},
		count: o.src.count,
	}
}

// OrderBy sorts the sequence by the given key in ascending order.
// The sort is stable: elements with equal keys keep their relative order.
func OrderBy[T any, K cmp.Ordered](q Enumerable[T], key func(T) K) OrderedEnumerable[T] {
	return OrderByFunc(q, key, cmp.Compare[K])
}

// OrderByFunc is OrderBy with an explicit key comparison function.
func OrderByFunc[T, K any](q Enumerable[T], key func(T) K, compare func(K, K) int) OrderedEnumerable[T] {
	return OrderedEnumerable[T]{src: q, compare: keyComparator(key, compare, false)}
}

// OrderByDescending sorts the sequence by the given key in descending order.
func OrderByDescending[T any, K cmp.Ordered](q Enumerable[T], key func(T) K) OrderedEnumerable[T] {
	return OrderByDescendingFunc(q, key, cmp.Compare[K])
}

// OrderByDescendingFunc is OrderByDescending with an explicit key
// comparison function.
func OrderByDescendingFunc[T, K any](q Enumerable[T], key func(T) K, compare func(K, K) int) OrderedEnumerable[T] {
	return OrderedEnumerable[T]{src: q, compare: keyComparator(key, compare, true)}
}

// ThenBy refines an ordering with an ascending tie-breaker key.
// It does not sort again; the combined comparator applies the earlier
// ordering first and consults the new key only on ties.
func ThenBy[T any, K cmp.Ordered](o OrderedEnumerable[T], key func(T) K) OrderedEnumerable[T] {
	return ThenByFunc(o, key, cmp.Compare[K])
}

// ThenByFunc is ThenBy with an explicit key comparison function.
func ThenByFunc[T, K any](o OrderedEnumerable[T], key func(T) K, compare func(K, K) int) OrderedEnumerable[T] {
	return OrderedEnumerable[T]{
		src:     o.src,
		compare: dualComparator(o.compare, keyComparator(key, compare, false)),
	}
}

// ThenByDescending refines an ordering with a descending tie-breaker key.
func ThenByDescending[T any, K cmp.Ordered](o OrderedEnumerable[T], key func(T) K) OrderedEnumerable[T] {
	return ThenByDescendingFunc(o, key, cmp.Compare[K])
}

// ThenByDescendingFunc is ThenByDescending with an explicit key
// comparison function.
func ThenByDescendingFunc[T, K any](o OrderedEnumerable[T], key func(T) K, compare func(K, K) int) OrderedEnumerable[T] {
	return OrderedEnumerable[T]{
		src:     o.src,
		compare: dualComparator(o.compare, keyComparator(key, compare, true)),
	}
}

// Reverse yields the elements of the sequence in reverse order.
// The source is materialized on first access and cached per handle.
func Reverse[T any](q Enumerable[T]) Enumerable[T] {
	cell := &memo[T]{}
	reversed := func() []T {
		vs := ToSlice(q)
		slices.Reverse(vs)
		return vs
	}
	return Enumerable[T]{
		produce: func() Producer[T] {
			return sliceProducer(cell.values(reversed))
		},
		count: q.count,
	}
}

func keyComparator[T, K any](key func(T) K, compare func(K, K) int, descending bool) func(T, T) int {
	if descending {
		return func(a, b T) int { return -compare(key(a), key(b)) }
	}
	return func(a, b T) int { return compare(key(a), key(b)) }
}

func dualComparator[T any](first, second func(T, T) int) func(T, T) int {
	return func(a, b T) int {
		if c := first(a, b); c != 0 {
			return c
		}
		return second(a, b)
	}
}
