package linqkit

import (
	"cmp"
	"slices"
)

// Distinct drops the duplicate elements of the sequence,
// keeping the first occurrence of each value.
func Distinct[T cmp.Ordered](q Enumerable[T]) Enumerable[T] {
	return DistinctFunc(q, cmp.Compare[T])
}

// DistinctFunc is Distinct with an explicit element comparison function.
func DistinctFunc[T any](q Enumerable[T], compare func(T, T) int) Enumerable[T] {
	return Enumerable[T]{
		produce: func() Producer[T] {
			next := q.Producer()
			seen := seenSet[T]{compare: compare}
			return func() *T {
				for ptr := next(); ptr != nil; ptr = next() {
					if seen.add(*ptr) {
						return ptr
					}
				}
				return nil
			}
		},
	}
}

// Union yields the set union of two sequences: all of q, then all of
// other, with duplicates dropped across both. An element yielded from q
// is never yielded again when it shows up in other.
func Union[T cmp.Ordered](q, other Enumerable[T]) Enumerable[T] {
	return UnionFunc(q, other, cmp.Compare[T])
}

// UnionFunc is Union with an explicit element comparison function.
func UnionFunc[T any](q, other Enumerable[T], compare func(T, T) int) Enumerable[T] {
	return DistinctFunc(Concat(q, other), compare)
}

// Except yields the elements of q that are not present in other.
// The other sequence is snapshot on first pull, not at composition time.
func Except[T cmp.Ordered](q, other Enumerable[T]) Enumerable[T] {
	return ExceptFunc(q, other, cmp.Compare[T])
}

// ExceptFunc is Except with an explicit element comparison function.
func ExceptFunc[T any](q, other Enumerable[T], compare func(T, T) int) Enumerable[T] {
	filter := sortedSnapshot(other, compare)
	return Enumerable[T]{
		produce: func() Producer[T] {
			next := q.Producer()
			return func() *T {
				for ptr := next(); ptr != nil; ptr = next() {
					if _, found := slices.BinarySearchFunc(filter(), *ptr, compare); !found {
						return ptr
					}
				}
				return nil
			}
		},
	}
}

// Intersect yields the elements of q that are also present in other,
// in their order of appearance in q.
// The other sequence is snapshot on first pull, not at composition time.
func Intersect[T cmp.Ordered](q, other Enumerable[T]) Enumerable[T] {
	return IntersectFunc(q, other, cmp.Compare[T])
}

// IntersectFunc is Intersect with an explicit element comparison function.
func IntersectFunc[T any](q, other Enumerable[T], compare func(T, T) int) Enumerable[T] {
	filter := sortedSnapshot(other, compare)
	return Enumerable[T]{
		produce: func() Producer[T] {
			next := q.Producer()
			return func() *T {
				for ptr := next(); ptr != nil; ptr = next() {
					if _, found := slices.BinarySearchFunc(filter(), *ptr, compare); found {
						return ptr
					}
				}
				return nil
			}
		},
	}
}

// sortedSnapshot defers materializing a sorted copy of the sequence to
// the first call; the snapshot is shared by every producer of the
// operator handle that owns it.
func sortedSnapshot[T any](q Enumerable[T], compare func(T, T) int) func() []T {
	cell := &memo[T]{}
	build := func() []T {
		vs := ToSlice(q)
		slices.SortFunc(vs, compare)
		return vs
	}
	return func() []T { return cell.values(build) }
}
