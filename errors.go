package verity

import (
	"errors"
	"fmt"
)

// Failure is the outcome of a failing predicate in Throw mode: an ordinary,
// data-dependent validation result, never a programming defect. It carries
// the resolved message and the attribution path(s) the failure is filed
// against (joined with ", " when redirected to several).
type Failure struct {
	Message string
	Path    string
}

func (f *Failure) Error() string {
	if f.Path == "" {
		return f.Message
	}
	return fmt.Sprintf("%s at %s", f.Message, f.Path)
}

// UsageError marks a defect in the calling code: wrong argument types to a
// comparison predicate, a non-iterable value passed to Each, duplicate rule
// registration, an invalid mode. Usage errors are raised immediately in every
// mode and are never recorded into a Result.
type UsageError struct {
	Op     string
	Reason string
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("verity: %s: %s", e.Op, e.Reason)
}

func usage(op, format string, args ...any) *UsageError {
	return &UsageError{Op: op, Reason: fmt.Sprintf(format, args...)}
}

// AsFailure extracts a *Failure from an error using errors.As.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

// Guard runs fn and converts a Throw-mode *Failure raised inside it into an
// ordinary error return. Usage errors and foreign panics propagate untouched.
func Guard(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if f, ok := r.(*Failure); ok {
				err = f
				return
			}
			panic(r)
		}
	}()
	fn()
	return nil
}
