package verity

import (
	"strings"

	"github.com/verity-go/verity/message"
)

// Validator is the fluent orchestrator for one validation step. It wraps a
// nodeState and the bookkeeping shared across the tree spawned from one
// Test.Value call.
//
// Lifecycle: a Validator is pooled. The first context-creating operation on
// it (a verb accessor, a navigation call, Each or Value) owns its return to
// the pool, which happens as soon as that operation's chain segment
// completes — immediately after the terminal predicate or navigation call.
// Obtain a fresh Validator per fluent chain and do not retain one past its
// terminal call. Compound combinators hand the same Validator to their list
// builder; chains started inside the builder never recycle it prematurely.
type Validator struct {
	test   *Test
	node   nodeState
	failed *failureState // shared across the whole tree of one Value call
	sticky *stickyStack  // shared combinator frames, explicit push/pop
	// fulfilled marks this branch as vacuously passed (Optional on a nil
	// value, Conditionally on a false condition). Children inherit it at
	// creation time.
	fulfilled bool
	// owned records that a context-creating operation has claimed the pool
	// return of this instance.
	owned bool
}

// active guards against use after pool return.
func (v *Validator) active() {
	if v.test == nil {
		panic(usage("Validator", "used after its chain segment completed"))
	}
}

// claim marks v as owned and reports whether the caller became the owner.
// Only the owner releases v back to the pool.
func (v *Validator) claim() bool {
	if v.owned {
		return false
	}
	v.owned = true
	return true
}

// shortCircuited reports whether evaluation at this node is pre-empted, and
// the vacuous outcome a skipped predicate returns. Precedence: this node's
// fulfilled flag, then the active combinator frame, then the mode rule.
func (v *Validator) shortCircuited() (bool, bool) {
	if v.fulfilled {
		return true, true
	}
	if e := v.sticky.top(); e != nil && e.fulfilled {
		return true, e.target
	}
	switch v.node.mode {
	case Break:
		if v.failed.any() {
			return true, true
		}
	case NextPath:
		if v.failed.coversAny(v.node.errorPaths) {
			return true, true
		}
	}
	return false, false
}

// Is returns the predicate surface bound to this node.
func (v *Validator) Is() *Check { return v.context(false) }

// Does is an alias of Is.
func (v *Validator) Does() *Check { return v.context(false) }

// IsNot returns a predicate surface that inverts every predicate's boolean
// result before failure handling.
func (v *Validator) IsNot() *Check { return v.context(true) }

// DoesNot is an alias of IsNot.
func (v *Validator) DoesNot() *Check { return v.context(true) }

func (v *Validator) context(negated bool) *Check {
	v.active()
	return v.test.acquireCheck(v, negated, v.claim())
}

// Optional marks this branch as vacuously fulfilled when the current value
// is nil. Descendants inherit the decision.
func (v *Validator) Optional() *Validator {
	v.active()
	if !v.fulfilled && isNilValue(v.node.value) {
		v.fulfilled = true
	}
	return v
}

// Conditionally evaluates pred against a disposable probe Validator whose
// failures are discarded; when pred reports false, this branch is marked
// vacuously fulfilled. The probe runs in Break mode so a single failing check
// settles it cheaply.
func (v *Validator) Conditionally(pred func(*Validator) bool) *Validator {
	v.active()
	if pred == nil {
		panic(usage("Conditionally", "predicate must not be nil"))
	}
	if skip, _ := v.shortCircuited(); skip {
		return v
	}
	probeNode := v.node
	probeNode.mode = Break
	probeNode.result = Discard
	probe := &Validator{
		test:   v.test,
		node:   probeNode,
		failed: &failureState{},
		sticky: &stickyStack{},
	}
	if !pred(probe) {
		v.fulfilled = true
	}
	return v
}

// Prop descends into the property named by path (nested dotted/bracketed
// paths are resolved in one step). Pure navigation: it evaluates no predicate
// and never touches the failure bookkeeping. A missing property yields a
// child holding nil, which Optional or a predicate can then judge.
func (v *Validator) Prop(path string) *Validator {
	v.active()
	if path == "" {
		panic(usage("Prop", "path must not be empty"))
	}
	owner := v.claim()
	defer func() {
		if owner {
			v.test.releaseValidator(v)
		}
	}()
	if skip, _ := v.shortCircuited(); skip {
		return v.test.acquire(v.node.child(childOverrides{valueSet: true, seg: path}), v.failed, v.sticky, true)
	}
	val, _ := resolveValuePath(v.node.value, path)
	return v.test.acquire(v.node.child(childOverrides{value: val, valueSet: true, seg: path}), v.failed, v.sticky, false)
}

// Transform applies fn to the current value, producing a child node at the
// same path describing the derived value. fn is not invoked on a
// short-circuited branch.
func (v *Validator) Transform(fn func(any) any) *Validator {
	v.active()
	if fn == nil {
		panic(usage("Transform", "transform function must not be nil"))
	}
	owner := v.claim()
	defer func() {
		if owner {
			v.test.releaseValidator(v)
		}
	}()
	if skip, _ := v.shortCircuited(); skip {
		return v.test.acquire(v.node.child(childOverrides{}), v.failed, v.sticky, true)
	}
	return v.test.acquire(v.node.child(childOverrides{value: fn(v.node.value), valueSet: true}), v.failed, v.sticky, false)
}

// ErrorContext redirects failures at or under the child node to the given
// attribution paths (resolved against the base path supplied to ValueAt).
// Redirection is orthogonal to short-circuiting: an inherited fulfilled flag
// stays in force.
func (v *Validator) ErrorContext(paths ...string) *Validator {
	v.active()
	if len(paths) == 0 {
		panic(usage("ErrorContext", "at least one attribution path is required"))
	}
	owner := v.claim()
	defer func() {
		if owner {
			v.test.releaseValidator(v)
		}
	}()
	resolved := make([]string, len(paths))
	for i, p := range paths {
		resolved[i] = joinPath(v.node.basePath, p)
	}
	skip, _ := v.shortCircuited()
	return v.test.acquire(v.node.child(childOverrides{errorPaths: resolved}), v.failed, v.sticky, v.fulfilled || skip)
}

// Each requires the current value to be an iterable collection (a usage
// error otherwise, not a validation failure) and evaluates pred against each
// element in order under an index-based child path: "[i]" for sequences,
// "[key]" for associative collections. It returns true only if every element
// passed. In NextPath mode iteration continues past failing elements so each
// path still contributes; other modes stop at the first failure. An optional
// message files an aggregate failure under this node's attribution paths.
func (v *Validator) Each(pred func(*Validator) bool, msgAndArgs ...any) bool {
	v.active()
	if pred == nil {
		panic(usage("Each", "predicate must not be nil"))
	}
	owner := v.claim()
	defer func() {
		if owner {
			v.test.releaseValidator(v)
		}
	}()
	if skip, res := v.shortCircuited(); skip {
		return res
	}
	elems, ok := elements(v.node.value)
	if !ok {
		panic(usage("Each", "value of type %T is not iterable", v.node.value))
	}
	all := true
	for _, e := range elems {
		child := v.test.acquire(
			v.node.child(childOverrides{value: e.value, valueSet: true, seg: e.seg}),
			v.failed, v.sticky, false,
		)
		if !pred(child) {
			all = false
			if v.node.mode != NextPath {
				break
			}
		}
	}
	if all {
		v.sticky.observe(true)
		return true
	}
	v.reportAggregate(msgAndArgs)
	v.sticky.observe(false)
	return false
}

// Value returns the raw current value; its only side effect is normal node
// teardown.
func (v *Validator) Value() any {
	v.active()
	owner := v.claim()
	val := v.node.value
	if owner {
		v.test.releaseValidator(v)
	}
	return val
}

// Fulfill is shorthand for Does().Fulfill.
func (v *Validator) Fulfill(pred any, msgAndArgs ...any) bool {
	return v.Does().Fulfill(pred, msgAndArgs...)
}

// FulfillOneOf is shorthand for Does().FulfillOneOf.
func (v *Validator) FulfillOneOf(build func(*Validator) []bool, msgAndArgs ...any) bool {
	return v.Does().FulfillOneOf(build, msgAndArgs...)
}

// FulfillAllOf is shorthand for Does().FulfillAllOf.
func (v *Validator) FulfillAllOf(build func(*Validator) []bool, msgAndArgs ...any) bool {
	return v.Does().FulfillAllOf(build, msgAndArgs...)
}

// report is the recording half of the failure funnel: it resolves the
// message template against this node and, depending on the mode, raises a
// *Failure or files the message under every attribution path.
func (v *Validator) report(template string, args []any) {
	n := &v.node
	parent := ""
	if len(n.errorPaths) > 0 {
		parent = parentPath(n.errorPaths[0])
	}
	msg := message.Resolve(template, message.Context{
		Value:       n.value,
		Paths:       n.errorPaths,
		CurrentPath: n.localPath,
		ParentPath:  parent,
		Args:        args,
	})
	if n.errorPrefix != "" {
		msg = n.errorPrefix + msg
	}
	if n.mode == Throw {
		panic(&Failure{Message: msg, Path: strings.Join(n.errorPaths, ", ")})
	}
	for _, p := range n.errorPaths {
		n.result.AddFailure(p, msg)
		v.failed.mark(p)
	}
}

// reportAggregate files a caller-supplied aggregate message for a compound
// operation, unless the tree has short-circuited in the meantime (an element
// failure in Break mode already settled the call) or an enclosing
// disjunction defers reporting.
func (v *Validator) reportAggregate(msgAndArgs []any) {
	if len(msgAndArgs) == 0 {
		return
	}
	if skip, _ := v.shortCircuited(); skip {
		return
	}
	if v.sticky.insideChoice() {
		return
	}
	tmpl, args := splitMsgAndArgs(msgAndArgs)
	v.report(tmpl, args)
}

// splitMsgAndArgs separates the testify-style variadic tail into the message
// template and its positional arguments.
func splitMsgAndArgs(msgAndArgs []any) (string, []any) {
	tmpl, ok := msgAndArgs[0].(string)
	if !ok {
		panic(usage("message", "first element of msgAndArgs must be a string template, got %T", msgAndArgs[0]))
	}
	if tmpl == "" {
		panic(usage("message", "message template must not be empty"))
	}
	return tmpl, msgAndArgs[1:]
}
