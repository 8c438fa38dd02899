package linqkit_test

import (
	"testing"

	"go.llib.dev/testcase"
	"go.llib.dev/testcase/assert"

	"go.llib.dev/linqkit"
)

func TestOrderBy(t *testing.T) {
	s := testcase.NewSpec(t)

	s.Test("sorts ascending by the selected key", func(t *testcase.T) {
		q := linqkit.OrderBy(linqkit.FromValues(3, 1, 2), func(n int) int { return n })
		assert.Equal(t, []int{1, 2, 3}, linqkit.ToSlice(q.Enumerable()))
	})

	s.Test("the sort is stable", func(t *testcase.T) {
		type rec struct {
			Key  int
			Tag  string
		}
		src := linqkit.FromValues(
			rec{2, "a"}, rec{1, "b"}, rec{2, "c"}, rec{1, "d"}, rec{2, "e"},
		)
		sorted := linqkit.OrderBy(src, func(r rec) int { return r.Key }).Enumerable()
		assert.Equal(t, []rec{
			{1, "b"}, {1, "d"}, {2, "a"}, {2, "c"}, {2, "e"},
		}, linqkit.ToSlice(sorted))
	})

	s.Test("nothing is sorted before the first pull, and at most once per handle", func(t *testcase.T) {
		var keyCalls int
		ordered := linqkit.OrderBy(linqkit.FromValues(3, 1, 2), func(n int) int {
			keyCalls++
			return n
		})
		q := ordered.Enumerable()
		assert.Equal(t, 0, keyCalls)

		_ = linqkit.ToSlice(q)
		sortCalls := keyCalls
		assert.NotEqual(t, 0, sortCalls)

		_ = linqkit.ToSlice(q)
		assert.Equal(t, sortCalls, keyCalls)
	})

	s.Test("size is preserved from the source", func(t *testcase.T) {
		q := linqkit.OrderBy(linqkit.Range(0, 9), func(n int) int { return -n }).Enumerable()
		n, ok := q.FastCount()
		assert.True(t, ok)
		assert.Equal(t, 9, n)
	})
}

func TestOrderByDescending(t *testing.T) {
	q := linqkit.OrderByDescending(linqkit.FromValues(1, 3, 2), func(n int) int { return n })
	assert.Equal(t, []int{3, 2, 1}, linqkit.ToSlice(q.Enumerable()))
}

func TestOrderByFunc(t *testing.T) {
	// order by string length with a custom comparator
	q := linqkit.OrderByFunc(
		linqkit.FromValues("ccc", "a", "bb"),
		func(s string) string { return s },
		func(a, b string) int { return len(a) - len(b) })
	assert.Equal(t, []string{"a", "bb", "ccc"}, linqkit.ToSlice(q.Enumerable()))
}

func TestThenBy(t *testing.T) {
	s := testcase.NewSpec(t)

	type person struct {
		Name string
		Age  int
	}

	people := testcase.Let(s, func(t *testcase.T) linqkit.Enumerable[person] {
		return linqkit.FromValues(
			person{"carol", 30},
			person{"alice", 25},
			person{"dave", 25},
			person{"bob", 30},
		)
	})

	s.Test("breaks ties of the primary ordering", func(t *testcase.T) {
		ordered := linqkit.OrderBy(people.Get(t), func(p person) int { return p.Age })
		ordered = linqkit.ThenBy(ordered, func(p person) string { return p.Name })
		assert.Equal(t, []person{
			{"alice", 25}, {"dave", 25}, {"bob", 30}, {"carol", 30},
		}, linqkit.ToSlice(ordered.Enumerable()))
	})

	s.Test("composes comparators instead of re-sorting", func(t *testcase.T) {
		var primaryCalls int
		ordered := linqkit.OrderBy(people.Get(t), func(p person) int {
			primaryCalls++
			return p.Age
		})
		ordered = linqkit.ThenByDescending(ordered, func(p person) string { return p.Name })
		_ = linqkit.ToSlice(ordered.Enumerable())
		// the primary key selector participated in the one combined sort
		assert.NotEqual(t, 0, primaryCalls)
	})

	s.Test("descending tie-breaker", func(t *testcase.T) {
		ordered := linqkit.OrderBy(people.Get(t), func(p person) int { return p.Age })
		ordered = linqkit.ThenByDescending(ordered, func(p person) string { return p.Name })
		assert.Equal(t, []person{
			{"dave", 25}, {"alice", 25}, {"carol", 30}, {"bob", 30},
		}, linqkit.ToSlice(ordered.Enumerable()))
	})

	s.Test("elements equal under every key keep their relative order", func(t *testcase.T) {
		type rec struct{ A, B, Tag int }
		src := linqkit.FromValues(rec{1, 1, 1}, rec{1, 1, 2}, rec{1, 1, 3})
		ordered := linqkit.ThenBy(
			linqkit.OrderBy(src, func(r rec) int { return r.A }),
			func(r rec) int { return r.B })
		assert.Equal(t,
			[]rec{{1, 1, 1}, {1, 1, 2}, {1, 1, 3}},
			linqkit.ToSlice(ordered.Enumerable()))
	})
}

func TestReverse(t *testing.T) {
	s := testcase.NewSpec(t)

	s.Test("yields the elements backwards", func(t *testcase.T) {
		q := linqkit.Reverse(linqkit.FromValues(1, 2, 3))
		assert.Equal(t, []int{3, 2, 1}, linqkit.ToSlice(q))
		assert.Equal(t, []int{3, 2, 1}, linqkit.ToSlice(q))
	})

	s.Test("size is preserved", func(t *testcase.T) {
		n, ok := linqkit.Reverse(linqkit.Range(0, 6)).FastCount()
		assert.True(t, ok)
		assert.Equal(t, 6, n)
	})

	s.Test("materialization happens on first pull only", func(t *testcase.T) {
		var accesses int
		src := countingSource([]int{1, 2, 3}, &accesses)
		q := linqkit.Reverse(src)
		assert.Equal(t, 0, accesses)
		_ = linqkit.ToSlice(q)
		_ = linqkit.ToSlice(q)
		assert.Equal(t, 3, accesses)
	})
}
