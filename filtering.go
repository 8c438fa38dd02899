package linqkit

// Where filters the sequence, keeping the elements that satisfy pred.
func Where[T any](q Enumerable[T], pred func(T) bool) Enumerable[T] {
	return Enumerable[T]{
		produce: func() Producer[T] {
			next := q.Producer()
			return func() *T {
				for ptr := next(); ptr != nil; ptr = next() {
					if pred(*ptr) {
						return ptr
					}
				}
				return nil
			}
		},
	}
}

// WhereWithIndex is Where with a predicate that also receives the
// 0-based index of the element in the upstream sequence.
func WhereWithIndex[T any](q Enumerable[T], pred func(T, int) bool) Enumerable[T] {
	return Enumerable[T]{
		produce: func() Producer[T] {
			next := q.Producer()
			var index int
			return func() *T {
				for ptr := next(); ptr != nil; ptr = next() {
					i := index
					index++
					if pred(*ptr, i) {
						return ptr
					}
				}
				return nil
			}
		},
	}
}

// Take keeps the first n elements of the sequence and drops the rest.
// When the sequence has fewer than n elements, all of them are kept.
func Take[T any](q Enumerable[T], n int) Enumerable[T] {
	if n < 0 {
		n = 0
	}
	return Enumerable[T]{
		produce: func() Producer[T] {
			next := q.Producer()
			var taken int
			return func() *T {
				if n <= taken {
					return nil
				}
				ptr := next()
				if ptr == nil {
					taken = n
					return nil
				}
				taken++
				return ptr
			}
		},
		count: derivedCount(q, func(size int) int { return min(n, size) }),
	}
}

// TakeWhile keeps elements as long as pred holds,
// then drops everything from the first failing element on.
func TakeWhile[T any](q Enumerable[T], pred func(T) bool) Enumerable[T] {
	return TakeWhileWithIndex(q, func(v T, _ int) bool { return pred(v) })
}

// TakeWhileWithIndex is TakeWhile with a predicate that also receives
// the 0-based element index.
func TakeWhileWithIndex[T any](q Enumerable[T], pred func(T, int) bool) Enumerable[T] {
	return Enumerable[T]{
		produce: func() Producer[T] {
			next := q.Producer()
			var (
				index int
				done  bool
			)
			return func() *T {
				if done {
					return nil
				}
				ptr := next()
				if ptr == nil || !pred(*ptr, index) {
					done = true
					return nil
				}
				index++
				return ptr
			}
		},
	}
}

// Skip drops the first n elements of the sequence and keeps the rest.
// When the sequence has fewer than n elements, the result is empty.
func Skip[T any](q Enumerable[T], n int) Enumerable[T] {
	if n < 0 {
		n = 0
	}
	return Enumerable[T]{
		produce: func() Producer[T] {
			next := q.Producer()
			var skipped int
			return func() *T {
				for skipped < n {
					if next() == nil {
						skipped = n
						return nil
					}
					skipped++
				}
				return next()
			}
		},
		count: derivedCount(q, func(size int) int { return max(0, size-n) }),
	}
}

// SkipWhile drops elements as long as pred holds,
// then keeps everything from the first failing element on.
func SkipWhile[T any](q Enumerable[T], pred func(T) bool) Enumerable[T] {
	return SkipWhileWithIndex(q, func(v T, _ int) bool { return pred(v) })
}

// SkipWhileWithIndex is SkipWhile with a predicate that also receives
// the 0-based element index.
func SkipWhileWithIndex[T any](q Enumerable[T], pred func(T, int) bool) Enumerable[T] {
	return Enumerable[T]{
		produce: func() Producer[T] {
			next := q.Producer()
			var (
				index    int
				skipping = true
			)
			return func() *T {
				for skipping {
					ptr := next()
					if ptr == nil {
						skipping = false
						return nil
					}
					if !pred(*ptr, index) {
						skipping = false
						return ptr
					}
					index++
				}
				return next()
			}
		},
	}
}
