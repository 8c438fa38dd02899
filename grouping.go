package linqkit

import (
	"cmp"
	"slices"
)

// Grouping is one group produced by the GroupBy family: a key paired
// with a lazy view over the values that share it.
type Grouping[K, V any] struct {
	Key    K
	Values Enumerable[V]
}

// GroupBy groups the elements of the sequence by the given key.
// The whole source is consumed on first pull, since no group is complete
// before the last element has been seen; the result is cached per handle.
// Groups come out in ascending key order.
func GroupBy[T any, K cmp.Ordered](q Enumerable[T], key func(T) K) Enumerable[Grouping[K, T]] {
	return GroupByFunc(q, key, cmp.Compare[K])
}

// GroupByFunc is GroupBy with an explicit key comparison function.
func GroupByFunc[T, K any](q Enumerable[T], key func(T) K, compare func(K, K) int) Enumerable[Grouping[K, T]] {
	return groupEnumerable(q, key, identity[T], compare)
}

// GroupValuesBy is GroupBy with a value selector applied to each element
// before it is stored in its group.
func GroupValuesBy[T any, K cmp.Ordered, V any](q Enumerable[T], key func(T) K, value func(T) V) Enumerable[Grouping[K, V]] {
	return GroupValuesByFunc(q, key, value, cmp.Compare[K])
}

// GroupValuesByFunc is GroupValuesBy with an explicit key comparison
// function.
func GroupValuesByFunc[T, K, V any](q Enumerable[T], key func(T) K, value func(T) V, compare func(K, K) int) Enumerable[Grouping[K, V]] {
	return groupEnumerable(q, key, value, compare)
}

// GroupByAndFold groups the sequence by key and folds each group into a
// final record at emission time, instead of yielding the raw group.
func GroupByAndFold[T any, K cmp.Ordered, R any](q Enumerable[T], key func(T) K, fold func(K, Enumerable[T]) R) Enumerable[R] {
	return foldedGroupEnumerable(q, key, identity[T], cmp.Compare[K], fold)
}

// GroupValuesByAndFold is GroupByAndFold with a value selector applied
// to each element before grouping.
func GroupValuesByAndFold[T any, K cmp.Ordered, V, R any](q Enumerable[T], key func(T) K, value func(T) V, fold func(K, Enumerable[V]) R) Enumerable[R] {
	return foldedGroupEnumerable(q, key, value, cmp.Compare[K], fold)
}

func identity[T any](v T) T { return v }

// keyedGroup is the raw accumulation bucket shared by the grouping and
// joining operators.
type keyedGroup[K, V any] struct {
	key    K
	values []V
}

// collectGroups consumes the whole sequence into key-ordered buckets.
// Within a bucket, values keep their upstream relative order.
func collectGroups[T, K, V any](q Enumerable[T], key func(T) K, value func(T) V, compare func(K, K) int) []keyedGroup[K, V] {
	var groups []keyedGroup[K, V]
	next := q.Producer()
	for ptr := next(); ptr != nil; ptr = next() {
		k := key(*ptr)
		i, found := slices.BinarySearchFunc(groups, k, func(g keyedGroup[K, V], k K) int {
			return compare(g.key, k)
		})
		if !found {
			groups = slices.Insert(groups, i, keyedGroup[K, V]{key: k})
		}
		groups[i].values = append(groups[i].values, value(*ptr))
	}
	return groups
}

func groupEnumerable[T, K, V any](q Enumerable[T], key func(T) K, value func(T) V, compare func(K, K) int) Enumerable[Grouping[K, V]] {
	cell := &memo[Grouping[K, V]]{}
	build := func() []Grouping[K, V] {
		groups := collectGroups(q, key, value, compare)
		out := make([]Grouping[K, V], len(groups))
		for i, g := range groups {
			out[i] = Grouping[K, V]{Key: g.key, Values: FromSlice(g.values)}
		}
		return out
	}
	return Enumerable[Grouping[K, V]]{
		produce: func() Producer[Grouping[K, V]] {
			return sliceProducer(cell.values(build))
		},
	}
}

func foldedGroupEnumerable[T, K, V, R any](q Enumerable[T], key func(T) K, value func(T) V, compare func(K, K) int, fold func(K, Enumerable[V]) R) Enumerable[R] {
	cell := &memo[R]{}
	build := func() []R {
		groups := collectGroups(q, key, value, compare)
		out := make([]R, len(groups))
		for i, g := range groups {
			out[i] = fold(g.key, FromSlice(g.values))
		}
		return out
	}
	return Enumerable[R]{
		produce: func() Producer[R] {
			return sliceProducer(cell.values(build))
		},
	}
}
