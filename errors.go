package linqkit

// Error is a constant error value.
//
//	const ErrSomething linqkit.Error = "something went wrong"
type Error string

func (err Error) Error() string { return string(err) }

const (
	// ErrEmptySequence is returned by reducers that require at least one
	// element but were applied to a sequence that has none.
	ErrEmptySequence Error = "EmptySequence: sequence contains no elements"
	// ErrOutOfRange is returned when a requested position or match does
	// not exist in an otherwise non-empty sequence.
	ErrOutOfRange Error = "OutOfRange: no element at the requested position"
)
