// Package rules layers a named rule registry on top of the verity engine so
// a validation tree does not have to be rebuilt per call. Rules are
// registered once per property path and replayed against any number of
// values; results accumulate in the owning Set's shared Result.
package rules

import (
	"github.com/tidwall/gjson"

	verity "github.com/verity-go/verity"
)

// Rule validates the value a registered path resolved to. It receives a
// fresh Validator rooted at that value (with attribution under the path) and
// the optional caller context passed to ValidateWithContext.
type Rule func(v *verity.Validator, context any) bool

// Set is a registry mapping property paths to reusable rules. The zero Set
// is not usable; construct one with NewSet.
type Set struct {
	test  *verity.Test
	rules map[string]Rule
	order []string
}

// NewSet returns an empty Set whose rules run in mode, with the optional
// errorPrefix prepended to every message.
func NewSet(mode verity.Mode, errorPrefix ...string) *Set {
	return &Set{
		test:  verity.New(mode, errorPrefix...),
		rules: make(map[string]Rule),
	}
}

// AddRule registers exactly one rule under path; the root path "" denotes
// the whole value. Registering a nil rule or the same path twice is a usage
// error. AddRule returns the Set for chained registration.
func (s *Set) AddRule(path string, fn Rule) *Set {
	if fn == nil {
		panic(&verity.UsageError{Op: "rules.AddRule", Reason: "rule must not be nil"})
	}
	if _, dup := s.rules[path]; dup {
		panic(&verity.UsageError{Op: "rules.AddRule", Reason: "duplicate rule for path " + pathLabel(path)})
	}
	s.rules[path] = fn
	s.order = append(s.order, path)
	return s
}

// Validate resolves each selected rule's path against value (all rules when
// paths is empty, in registration order) and runs the rule against the
// resolved child value. It returns the shared Result.
func (s *Set) Validate(value any, paths ...string) verity.Result {
	return s.ValidateWithContext(nil, value, paths...)
}

// ValidateWithContext is Validate with an arbitrary context handed to every
// rule invocation.
func (s *Set) ValidateWithContext(context any, value any, paths ...string) verity.Result {
	for _, path := range s.selected(paths) {
		child := value
		if path != "" {
			child = s.test.Value(value).Prop(path).Value()
		}
		s.rules[path](s.test.ValueAt(child, path), context)
	}
	return s.test.Result()
}

// ValidateValue runs the single rule registered under path directly against
// value (value is the child, not the root object).
func (s *Set) ValidateValue(value any, path string, context ...any) verity.Result {
	fn := s.lookup(path)
	var ctx any
	if len(context) > 0 {
		ctx = context[0]
	}
	fn(s.test.ValueAt(value, path), ctx)
	return s.test.Result()
}

// ValidateJSON resolves each selected rule's path directly against raw JSON
// bytes and validates the extracted values; the document is never decoded as
// a whole. Numbers arrive as float64 per gjson semantics.
func (s *Set) ValidateJSON(data []byte, paths ...string) verity.Result {
	for _, path := range s.selected(paths) {
		var child any
		if path == "" {
			child = gjson.ParseBytes(data).Value()
		} else {
			child = gjson.GetBytes(data, path).Value()
		}
		s.rules[path](s.test.ValueAt(child, path), nil)
	}
	return s.test.Result()
}

// IsValid reports whether value passes the selected rules. A Throw-mode
// *Failure is swallowed into false; usage errors still propagate.
func (s *Set) IsValid(value any, paths ...string) bool {
	ok := true
	err := verity.Guard(func() {
		before := len(s.test.Result().AllErrors())
		s.Validate(value, paths...)
		ok = len(s.test.Result().AllErrors()) == before
	})
	return err == nil && ok
}

// IsValueValid reports whether value passes the single rule under path,
// swallowing a Throw-mode *Failure.
func (s *Set) IsValueValid(value any, path string) bool {
	ok := true
	err := verity.Guard(func() {
		before := len(s.test.Result().AllErrors())
		s.ValidateValue(value, path)
		ok = len(s.test.Result().AllErrors()) == before
	})
	return err == nil && ok
}

// Result returns the Result shared by every validation on this Set.
func (s *Set) Result() verity.Result { return s.test.Result() }

// Paths returns the registered paths in registration order.
func (s *Set) Paths() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// selected returns the paths to run: the full registration order, or the
// requested subset in stable order. Requesting an unregistered path is a
// usage error.
func (s *Set) selected(paths []string) []string {
	if len(paths) == 0 {
		return s.order
	}
	want := make(map[string]bool, len(paths))
	for _, p := range paths {
		s.lookup(p)
		want[p] = true
	}
	out := make([]string, 0, len(want))
	for _, p := range s.order {
		if want[p] {
			out = append(out, p)
		}
	}
	return out
}

func (s *Set) lookup(path string) Rule {
	fn, ok := s.rules[path]
	if !ok {
		panic(&verity.UsageError{Op: "rules.Set", Reason: "no rule registered for path " + pathLabel(path)})
	}
	return fn
}

func pathLabel(path string) string {
	if path == "" {
		return `"" (root)`
	}
	return `"` + path + `"`
}
