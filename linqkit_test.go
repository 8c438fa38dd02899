package linqkit_test

import (
	"testing"

	"go.llib.dev/testcase"
	"go.llib.dev/testcase/assert"

	"go.llib.dev/linqkit"
	"go.llib.dev/linqkit/linqkitcontract"
)

// countingSource wraps a slice and records every element access,
// so tests can prove that composition alone reads nothing.
func countingSource[T any](vs []T, accesses *int) linqkit.Enumerable[T] {
	return linqkit.FromProducer(func() linqkit.Producer[T] {
		var index int
		return func() *T {
			if len(vs) <= index {
				return nil
			}
			*accesses++
			ptr := &vs[index]
			index++
			return ptr
		}
	})
}

func TestEnumerable_contract(t *testing.T) {
	testcase.RunSuite(t,
		linqkitcontract.Enumerable[int](func(testing.TB) linqkit.Enumerable[int] {
			return linqkit.FromValues(1, 2, 3, 4, 5)
		}),
		linqkitcontract.Enumerable[int](func(testing.TB) linqkit.Enumerable[int] {
			return linqkit.Empty[int]()
		}),
		linqkitcontract.Enumerable[int](func(testing.TB) linqkit.Enumerable[int] {
			return linqkit.Range(7, 12)
		}),
		linqkitcontract.Enumerable[string](func(testing.TB) linqkit.Enumerable[string] {
			return linqkit.Repeat("na", 8)
		}),
		linqkitcontract.Enumerable[int](func(testing.TB) linqkit.Enumerable[int] {
			return linqkit.Where(linqkit.Range(0, 100), func(n int) bool { return n%3 == 0 })
		}),
		linqkitcontract.Enumerable[int](func(testing.TB) linqkit.Enumerable[int] {
			return linqkit.Distinct(linqkit.FromValues(1, 1, 2, 3, 3, 3))
		}),
		linqkitcontract.Enumerable[int](func(testing.TB) linqkit.Enumerable[int] {
			return linqkit.OrderBy(linqkit.FromValues(3, 1, 2), func(n int) int { return n }).Enumerable()
		}),
	)
}

func TestEnumerable_zeroValue(t *testing.T) {
	var q linqkit.Enumerable[int]
	assert.Empty(t, linqkit.ToSlice(q))
	assert.Equal(t, 0, q.Count())
	assert.Nil(t, q.Producer()())
}

func TestEnumerable_laziness(t *testing.T) {
	s := testcase.NewSpec(t)

	s.Test("composing a pipeline reads no source element", func(t *testcase.T) {
		var accesses int
		src := countingSource([]int{5, 3, 5, 1, 4, 1, 2}, &accesses)

		q := linqkit.Where(src, func(n int) bool { return n != 4 })
		q = linqkit.Select(q, func(n int) int { return n * 10 })
		q = linqkit.Distinct(q)
		q = linqkit.Except(q, linqkit.FromValues(30))
		q = linqkit.Take(q, 3)
		ordered := linqkit.OrderBy(q, func(n int) int { return n }).Enumerable()

		assert.Equal(t, 0, accesses)

		assert.Equal(t, []int{10, 20, 50}, linqkit.ToSlice(ordered))
		assert.NotEqual(t, 0, accesses)
	})

	s.Test("querying the size of a traversal-counted sequence consumes it lazily", func(t *testcase.T) {
		var accesses int
		src := countingSource([]int{1, 2, 3}, &accesses)
		q := linqkit.Where(src, func(int) bool { return true })

		_, ok := q.FastCount()
		assert.False(t, ok)
		assert.Equal(t, 0, accesses)

		assert.Equal(t, 3, q.Count())
		assert.Equal(t, 3, accesses)
	})

	s.Test("stopping iteration early leaves the tail unread", func(t *testcase.T) {
		var accesses int
		src := countingSource([]int{1, 2, 3, 4, 5}, &accesses)

		for range src.All() {
			break
		}
		assert.Equal(t, 1, accesses)
	})
}

func TestEnumerable_restartability(t *testing.T) {
	s := testcase.NewSpec(t)

	s.Test("two independent iterations yield the same elements", func(t *testcase.T) {
		q := linqkit.Where(linqkit.FromValues(1, 2, 3, 4), func(n int) bool { return n%2 == 0 })
		assert.Equal(t, []int{2, 4}, linqkit.ToSlice(q))
		assert.Equal(t, []int{2, 4}, linqkit.ToSlice(q))
	})

	s.Test("a live producer is not affected by another traversal", func(t *testcase.T) {
		q := linqkit.FromValues(1, 2, 3)
		next := q.Producer()
		assert.Equal(t, 1, *next())
		assert.Equal(t, []int{1, 2, 3}, linqkit.ToSlice(q))
		assert.Equal(t, 2, *next())
	})
}

func TestEnumerable_size(t *testing.T) {
	s := testcase.NewSpec(t)

	s.Test("size is idempotent and does not change iteration results", func(t *testcase.T) {
		q := linqkit.Select(linqkit.FromValues(1, 2, 3), func(n int) int { return n + 1 })
		assert.Equal(t, 3, q.Count())
		assert.Equal(t, 3, q.Count())
		assert.Equal(t, []int{2, 3, 4}, linqkit.ToSlice(q))
	})

	s.Test("fast size propagates through size-preserving operators", func(t *testcase.T) {
		q := linqkit.Select(linqkit.Range(0, 10), func(n int) string { return "x" })
		n, ok := q.FastCount()
		assert.True(t, ok)
		assert.Equal(t, 10, n)
	})

	s.Test("fast size is suppressed by predicate operators", func(t *testcase.T) {
		q := linqkit.Where(linqkit.Range(0, 10), func(int) bool { return true })
		_, ok := q.FastCount()
		assert.False(t, ok)
	})
}

func TestEnumerable_refs(t *testing.T) {
	s := testcase.NewSpec(t)

	s.Test("mutation through Refs is visible in the backing slice", func(t *testcase.T) {
		vs := []int{1, 2, 3}
		q := linqkit.FromSlice(vs)
		for ptr := range q.Refs() {
			*ptr *= 2
		}
		assert.Equal(t, []int{2, 4, 6}, vs)
	})

	s.Test("mutation stays visible through operators that pass elements through", func(t *testcase.T) {
		vs := []int{1, 2, 3, 4}
		q := linqkit.Where(linqkit.FromSlice(vs), func(n int) bool { return n%2 == 0 })
		for ptr := range q.Refs() {
			*ptr = 0
		}
		assert.Equal(t, []int{1, 0, 3, 0}, vs)
	})

	s.Test("Select hands out scratch storage, not the source", func(t *testcase.T) {
		vs := []int{1, 2, 3}
		q := linqkit.Select(linqkit.FromSlice(vs), func(n int) int { return n })
		for ptr := range q.Refs() {
			*ptr = 42
		}
		assert.Equal(t, []int{1, 2, 3}, vs)
	})
}
