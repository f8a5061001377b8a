package verity

// nodeState is the per-step payload carried by a Validator: the value under
// test, its structural position, where failures are attributed, and the
// shared Result. It is immutable for the lifetime of one step; descending
// into a child value clones it with overrides.
type nodeState struct {
	mode        Mode
	value       any
	path        string   // full structural path from the root value ("" at the root)
	localPath   string   // segment contributed by the step that created this node
	basePath    string   // attribution base supplied to ValueAt, carried unchanged
	errorPaths  []string // attribution paths; defaults to join(basePath, path)
	redirected  bool     // attribution was redirected via ErrorContext
	errorPrefix string
	result      Result
}

// defaultErrorPaths computes the attribution for a node that has not been
// redirected via ErrorContext.
func defaultErrorPaths(basePath, path string) []string {
	return []string{joinPath(basePath, path)}
}

func (n *nodeState) reset() {
	*n = nodeState{}
}

// childOverrides names the fields a descent step replaces; zero-valued
// fields inherit from the parent.
type childOverrides struct {
	value      any
	valueSet   bool
	seg        string // local path segment appended to the parent path
	errorPaths []string
}

// child clones the node with overrides applied, extending the structural
// path by seg when present. A redirected attribution stays in force for the
// whole subtree; otherwise attribution follows the structural path.
func (n *nodeState) child(o childOverrides) nodeState {
	c := *n
	if o.seg != "" {
		c.localPath = o.seg
		c.path = joinPath(n.path, o.seg)
	}
	if o.valueSet {
		c.value = o.value
	}
	switch {
	case o.errorPaths != nil:
		c.errorPaths = o.errorPaths
		c.redirected = true
	case n.redirected:
		c.errorPaths = n.errorPaths
	default:
		c.errorPaths = defaultErrorPaths(c.basePath, c.path)
	}
	return c
}

// failureState records every attribution path that has failed during one
// Value call. It is shared by reference across the whole tree spawned from
// that call and only grows; it is never shared between calls.
type failureState struct {
	failedPaths []string
}

func (f *failureState) mark(path string) {
	f.failedPaths = append(f.failedPaths, path)
}

func (f *failureState) any() bool { return len(f.failedPaths) > 0 }

// covers reports whether path is structurally nested under (or equal to) an
// already-failed path.
func (f *failureState) covers(path string) bool {
	for _, failed := range f.failedPaths {
		if hasPathPrefix(path, failed) {
			return true
		}
	}
	return false
}

// coversAny reports whether any of the given attribution paths is covered.
func (f *failureState) coversAny(paths []string) bool {
	for _, p := range paths {
		if f.covers(p) {
			return true
		}
	}
	return false
}

// stickyEntry is one compound-combinator frame: target is the outcome that
// terminates the combinator (true for FulfillOneOf, false for FulfillAllOf);
// once a funneled predicate yields target, the entry is fulfilled and
// remaining sibling calls in the same expression become no-ops returning
// target.
type stickyEntry struct {
	target    bool
	fulfilled bool
}

// stickyStack is shared by reference across the tree spawned from one Value
// call so that predicates evaluated on child validators (Prop chains inside a
// combinator list) still observe the active combinator frame. Nested
// combinators follow an explicit push/pop protocol.
type stickyStack struct {
	entries []stickyEntry
}

func (s *stickyStack) push(target bool) {
	s.entries = append(s.entries, stickyEntry{target: target})
}

func (s *stickyStack) pop() {
	if n := len(s.entries); n > 0 {
		s.entries = s.entries[:n-1]
	}
}

func (s *stickyStack) top() *stickyEntry {
	if n := len(s.entries); n > 0 {
		return &s.entries[n-1]
	}
	return nil
}

// observe feeds a funneled predicate outcome to the active frame.
func (s *stickyStack) observe(ok bool) {
	if e := s.top(); e != nil && !e.fulfilled && ok == e.target {
		e.fulfilled = true
	}
}

// insideChoice reports whether any active frame is a disjunction
// (FulfillOneOf). Failures inside a disjunction are not reported
// individually; the combinator funnels the aggregate.
func (s *stickyStack) insideChoice() bool {
	for i := range s.entries {
		if s.entries[i].target {
			return true
		}
	}
	return false
}

func (s *stickyStack) reset() { s.entries = s.entries[:0] }
