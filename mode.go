package verity

// Mode governs how a failing predicate propagates. It is fixed for the whole
// lifetime of a Test and copied unchanged into every node spawned from it.
type Mode int

const (
	// Throw aborts the evaluation at the first failing predicate by raising
	// a *Failure; the shared Result is never populated.
	Throw Mode = iota + 1
	// Break records the first failure into the Result and treats every
	// subsequent predicate in the same Value call as vacuously fulfilled.
	Break
	// NextPath records failures per attribution path and skips only checks
	// whose attribution path is structurally nested under an already-failed
	// path; unrelated paths keep evaluating.
	NextPath
)

func (m Mode) valid() bool { return m >= Throw && m <= NextPath }

func (m Mode) String() string {
	switch m {
	case Throw:
		return "throw"
	case Break:
		return "break"
	case NextPath:
		return "next-path"
	default:
		return "invalid"
	}
}
