package verity

// Result accumulates validation failures keyed by attribution path. One
// Result is shared by every node spawned from the same Test; it is
// append-only except for an explicit Reset.
//
// The interface has two implementations: the recording result returned by
// NewResult, and Discard, a no-op sink used where outcomes must be evaluated
// but not kept (Conditionally's probe runs against it).
type Result interface {
	// AddFailure appends message under path. An empty message is a usage
	// error; an empty path files the failure against the root value.
	AddFailure(path, message string)
	// ErrorAt returns the first message recorded under path, or "".
	ErrorAt(path string) string
	// ErrorsAt returns every message recorded under path in insertion order.
	ErrorsAt(path string) []string
	// AllErrors returns every recorded message, grouped by path in first-
	// failure order.
	AllErrors() []string
	// IsValid reports whether no failure has been recorded.
	IsValid() bool
	// IsPathValid reports whether no failure has been recorded under path.
	IsPathValid(path string) bool
	// Paths enumerates the paths with at least one failure, in first-failure
	// order.
	Paths() []string
	// Reset discards all recorded failures.
	Reset()
}

// NewResult returns an empty recording Result.
func NewResult() Result {
	return &recordedResult{byPath: make(map[string][]string)}
}

// Discard is a Result that records nothing and always reports valid.
var Discard Result = noopResult{}

type recordedResult struct {
	byPath map[string][]string
	order  []string
}

func (r *recordedResult) AddFailure(path, message string) {
	if message == "" {
		panic(usage("Result.AddFailure", "message must not be empty"))
	}
	if _, seen := r.byPath[path]; !seen {
		r.order = append(r.order, path)
	}
	r.byPath[path] = append(r.byPath[path], message)
}

func (r *recordedResult) ErrorAt(path string) string {
	if msgs := r.byPath[path]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

func (r *recordedResult) ErrorsAt(path string) []string {
	msgs := r.byPath[path]
	if len(msgs) == 0 {
		return nil
	}
	out := make([]string, len(msgs))
	copy(out, msgs)
	return out
}

func (r *recordedResult) AllErrors() []string {
	var out []string
	for _, p := range r.order {
		out = append(out, r.byPath[p]...)
	}
	return out
}

func (r *recordedResult) IsValid() bool { return len(r.order) == 0 }

func (r *recordedResult) IsPathValid(path string) bool {
	return len(r.byPath[path]) == 0
}

func (r *recordedResult) Paths() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

func (r *recordedResult) Reset() {
	r.byPath = make(map[string][]string)
	r.order = nil
}

type noopResult struct{}

func (noopResult) AddFailure(path, message string) {
	if message == "" {
		panic(usage("Result.AddFailure", "message must not be empty"))
	}
}

func (noopResult) ErrorAt(string) string    { return "" }
func (noopResult) ErrorsAt(string) []string { return nil }
func (noopResult) AllErrors() []string      { return nil }
func (noopResult) IsValid() bool            { return true }
func (noopResult) IsPathValid(string) bool  { return true }
func (noopResult) Paths() []string          { return nil }
func (noopResult) Reset()                   {}
