package linqkit

// Select transforms each element of the sequence with sel.
// The produced elements live in producer-owned scratch storage;
// mutating them does not reach back into the source.
func Select[From, To any](q Enumerable[From], sel func(From) To) Enumerable[To] {
	return Enumerable[To]{
		produce: func() Producer[To] {
			next := q.Producer()
			var scratch To
			return func() *To {
				ptr := next()
				if ptr == nil {
					return nil
				}
				scratch = sel(*ptr)
				return &scratch
			}
		},
		count: q.count,
	}
}

// SelectWithIndex is Select with a selector that also receives the
// 0-based index of the element.
func SelectWithIndex[From, To any](q Enumerable[From], sel func(From, int) To) Enumerable[To] {
	return Enumerable[To]{
		produce: func() Producer[To] {
			next := q.Producer()
			var (
				index   int
				scratch To
			)
			return func() *To {
				ptr := next()
				if ptr == nil {
					return nil
				}
				scratch = sel(*ptr, index)
				index++
				return &scratch
			}
		},
		count: q.count,
	}
}

// SelectMany maps each element to a sequence and flattens the results
// into a single sequence, in order.
func SelectMany[From, To any](q Enumerable[From], sel func(From) Enumerable[To]) Enumerable[To] {
	return SelectManyWithIndex(q, func(v From, _ int) Enumerable[To] { return sel(v) })
}

// SelectManyWithIndex is SelectMany with a selector that also receives
// the 0-based index of the element.
func SelectManyWithIndex[From, To any](q Enumerable[From], sel func(From, int) Enumerable[To]) Enumerable[To] {
	return Enumerable[To]{
		produce: func() Producer[To] {
			next := q.Producer()
			var (
				index int
				inner Producer[To]
			)
			return func() *To {
				for {
					if inner != nil {
						if ptr := inner(); ptr != nil {
							return ptr
						}
						inner = nil
					}
					ptr := next()
					if ptr == nil {
						return nil
					}
					inner = sel(*ptr, index).Producer()
					index++
				}
			}
		},
	}
}

// Cast converts each element to the To type through a type assertion.
// It panics during iteration when an element's dynamic type is not To.
func Cast[To, From any](q Enumerable[From]) Enumerable[To] {
	return Select(q, func(v From) To { return any(v).(To) })
}

// Concat yields all elements of q followed by all elements of other.
func Concat[T any](q, other Enumerable[T]) Enumerable[T] {
	var count func() int
	if q.count != nil && other.count != nil {
		count = func() int { return q.count() + other.count() }
	}
	return Enumerable[T]{
		produce: func() Producer[T] {
			var (
				next   = q.Producer()
				second bool
			)
			return func() *T {
				if ptr := next(); ptr != nil {
					return ptr
				}
				if second {
					return nil
				}
				second = true
				next = other.Producer()
				return next()
			}
		},
		count: count,
	}
}

// Zip pairs up the elements of two sequences and combines each pair with
// sel. The result ends when the shorter input ends.
func Zip[A, B, C any](qa Enumerable[A], qb Enumerable[B], sel func(A, B) C) Enumerable[C] {
	var count func() int
	if qa.count != nil && qb.count != nil {
		count = func() int { return min(qa.count(), qb.count()) }
	}
	return Enumerable[C]{
		produce: func() Producer[C] {
			var (
				nextA   = qa.Producer()
				nextB   = qb.Producer()
				scratch C
			)
			return func() *C {
				pa := nextA()
				pb := nextB()
				if pa == nil || pb == nil {
					return nil
				}
				scratch = sel(*pa, *pb)
				return &scratch
			}
		},
		count: count,
	}
}

// DefaultIfEmpty substitutes a one-element sequence containing def
// when the source sequence is empty.
func DefaultIfEmpty[T any](q Enumerable[T], def T) Enumerable[T] {
	return Enumerable[T]{
		produce: func() Producer[T] {
			var (
				next    = q.Producer()
				started bool
				done    bool
				scratch T
			)
			return func() *T {
				if done {
					return nil
				}
				ptr := next()
				if ptr == nil {
					done = true
					if !started {
						scratch = def
						return &scratch
					}
					return nil
				}
				started = true
				return ptr
			}
		},
		count: derivedCount(q, func(size int) int { return max(1, size) }),
	}
}
