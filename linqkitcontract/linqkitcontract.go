// Package linqkitcontract provides the behavioral contract every
// linqkit.Enumerable source and operator result has to fulfil.
package linqkitcontract

import (
	"testing"

	"go.llib.dev/testcase"
	"go.llib.dev/testcase/assert"

	"go.llib.dev/linqkit"
)

// Enumerable returns the contract suite of the lazy sequence handle.
// The mk function must return an equivalent handle on every call within
// a test.
func Enumerable[T any](mk func(testing.TB) linqkit.Enumerable[T]) testcase.Suite {
	s := testcase.NewSpec(nil)

	subject := testcase.Let(s, func(t *testcase.T) linqkit.Enumerable[T] {
		return mk(t)
	})

	s.Then("iteration is restartable and yields the same elements every time", func(t *testcase.T) {
		q := subject.Get(t)
		first := linqkit.ToSlice(q)
		second := linqkit.ToSlice(q)
		assert.Equal(t, first, second)
	})

	s.Then("Count is idempotent and does not disturb iteration", func(t *testcase.T) {
		q := subject.Get(t)
		before := linqkit.ToSlice(q)
		n1 := q.Count()
		n2 := q.Count()
		assert.Equal(t, n1, n2)
		assert.Equal(t, len(before), n1)
		assert.Equal(t, before, linqkit.ToSlice(q))
	})

	s.Then("FastCount, when available, agrees with a full traversal", func(t *testcase.T) {
		q := subject.Get(t)
		n, ok := q.FastCount()
		if !ok {
			t.Log("no fast count on this sequence")
			return
		}
		assert.Equal(t, n, len(linqkit.ToSlice(q)))
	})

	s.Then("an exhausted producer keeps reporting exhaustion", func(t *testcase.T) {
		q := subject.Get(t)
		next := q.Producer()
		for next() != nil {
		}
		assert.Nil(t, next())
		assert.Nil(t, next())
	})

	s.Then("producers do not share cursor state", func(t *testcase.T) {
		q := subject.Get(t)
		a := q.Producer()
		b := q.Producer()
		for a() != nil {
		}
		assert.Equal(t, linqkit.ToSlice(q), collect(b))
	})

	return s.AsSuite("Enumerable")
}

func collect[T any](next linqkit.Producer[T]) []T {
	var vs []T
	for ptr := next(); ptr != nil; ptr = next() {
		vs = append(vs, *ptr)
	}
	return vs
}
