package linqkit

import (
	"cmp"
	"slices"
)

// Join performs an inner equi-join of two sequences.
// On first pull the inner sequence is consumed into a key-ordered
// multimap, the outer sequence is streamed against it, and the full
// result list is materialized and cached per handle. Each outer element
// is paired with every inner element sharing its key, outer order first,
// inner scan order within a key. Outer elements without a match produce
// no rows.
func Join[Outer, Inner any, K cmp.Ordered, R any](
	outer Enumerable[Outer], inner Enumerable[Inner],
	outerKey func(Outer) K, innerKey func(Inner) K,
	result func(Outer, Inner) R,
) Enumerable[R] {
	return JoinFunc(outer, inner, outerKey, innerKey, result, cmp.Compare[K])
}

// JoinFunc is Join with an explicit key comparison function.
func JoinFunc[Outer, Inner, K, R any](
	outer Enumerable[Outer], inner Enumerable[Inner],
	outerKey func(Outer) K, innerKey func(Inner) K,
	result func(Outer, Inner) R, compare func(K, K) int,
) Enumerable[R] {
	cell := &memo[R]{}
	build := func() []R {
		groups := collectGroups(inner, innerKey, identity[Inner], compare)
		var out []R
		next := outer.Producer()
		for ptr := next(); ptr != nil; ptr = next() {
			if g, found := findGroup(groups, outerKey(*ptr), compare); found {
				for _, iv := range g.values {
					out = append(out, result(*ptr, iv))
				}
			}
		}
		return out
	}
	return Enumerable[R]{
		produce: func() Producer[R] {
			return sliceProducer(cell.values(build))
		},
	}
}

// GroupJoin joins two sequences like Join, but emits exactly one row per
// outer element, pairing it with the (possibly empty) lazy group of all
// inner elements sharing its key.
func GroupJoin[Outer, Inner any, K cmp.Ordered, R any](
	outer Enumerable[Outer], inner Enumerable[Inner],
	outerKey func(Outer) K, innerKey func(Inner) K,
	result func(Outer, Enumerable[Inner]) R,
) Enumerable[R] {
	return GroupJoinFunc(outer, inner, outerKey, innerKey, result, cmp.Compare[K])
}

// GroupJoinFunc is GroupJoin with an explicit key comparison function.
func GroupJoinFunc[Outer, Inner, K, R any](
	outer Enumerable[Outer], inner Enumerable[Inner],
	outerKey func(Outer) K, innerKey func(Inner) K,
	result func(Outer, Enumerable[Inner]) R, compare func(K, K) int,
) Enumerable[R] {
	cell := &memo[R]{}
	build := func() []R {
		groups := collectGroups(inner, innerKey, identity[Inner], compare)
		var out []R
		next := outer.Producer()
		for ptr := next(); ptr != nil; ptr = next() {
			matches := Empty[Inner]()
			if g, found := findGroup(groups, outerKey(*ptr), compare); found {
				matches = FromSlice(g.values)
			}
			out = append(out, result(*ptr, matches))
		}
		return out
	}
	return Enumerable[R]{
		produce: func() Producer[R] {
			return sliceProducer(cell.values(build))
		},
	}
}

func findGroup[K, V any](groups []keyedGroup[K, V], k K, compare func(K, K) int) (keyedGroup[K, V], bool) {
	i, found := slices.BinarySearchFunc(groups, k, func(g keyedGroup[K, V], k K) int {
		return compare(g.key, k)
	})
	if !found {
		var zero keyedGroup[K, V]
		return zero, false
	}
	return groups[i], true
}
