package verity

// Check is the transient predicate surface returned by the verb accessors.
// Every predicate evaluates a boolean condition against the bound node's
// value, applies the verb's negation, and routes the outcome through the
// single failure funnel. Instances are pooled and recycled as soon as their
// terminal call returns; do not retain one.
type Check struct {
	v       *Validator
	negated bool
	// owner records whether this surface claimed the bound Validator's pool
	// return (the root context of the chain); surfaces obtained mid-chain,
	// e.g. inside a combinator list builder, must not recycle it.
	owner bool
}

// teardown recycles the surface and, for the root context, the Validator.
// It runs deferred so pool return happens on every exit path, including a
// Throw-mode failure or a usage error unwinding the stack.
func (c *Check) teardown() {
	v := c.v
	if v == nil || v.test == nil {
		return
	}
	t := v.test
	owner := c.owner
	t.releaseCheck(c)
	if owner {
		t.releaseValidator(v)
	}
}

// eval is the leaf-predicate skeleton: short-circuit probe, condition against
// the current value, then the funnel.
func (c *Check) eval(cond func(any) bool, def string, defArgs []any, user []any) bool {
	defer c.teardown()
	if skip, res := c.v.shortCircuited(); skip {
		return res
	}
	return c.finish(cond(c.v.node.value), def, defArgs, user)
}

// finish is the failure funnel. The (negation-adjusted) outcome feeds the
// active combinator frame; successes return immediately, failures inside a
// disjunction defer reporting to the combinator, and everything else resolves
// a message (caller-supplied over the predicate default) and reports it per
// the mode. A missing template means there is nothing to file — the boolean
// still comes back false.
func (c *Check) finish(ok bool, def string, defArgs []any, user []any) bool {
	if c.negated {
		ok = !ok
	}
	if ok {
		c.v.sticky.observe(true)
		return true
	}
	// A combinator entry may have recorded a failure of its own between the
	// pre-evaluation probe and this point; never file a duplicate once the
	// tree has short-circuited. Checked before observing so that fulfilling
	// our own conjunction frame does not mask this very report.
	skip, _ := c.v.shortCircuited()
	c.v.sticky.observe(false)
	if skip {
		return false
	}
	if c.v.sticky.insideChoice() {
		return false
	}
	tmpl, args := def, defArgs
	if len(user) > 0 {
		tmpl, args = splitMsgAndArgs(user)
		if len(args) == 0 {
			// let custom templates reference the predicate's own arguments
			args = defArgs
		}
	}
	if tmpl == "" {
		return false
	}
	c.v.report(tmpl, args)
	return false
}

// Fulfill routes the result of pred through the funnel. pred is either a
// pre-computed bool or a func(*Validator) bool receiving the bound Validator;
// anything else is a usage error.
func (c *Check) Fulfill(pred any, msgAndArgs ...any) bool {
	defer c.teardown()
	var fn func(*Validator) bool
	switch p := pred.(type) {
	case bool:
		fn = func(*Validator) bool { return p }
	case func(*Validator) bool:
		if p == nil {
			panic(usage("Fulfill", "predicate function must not be nil"))
		}
		fn = p
	default:
		panic(usage("Fulfill", "predicate must be a bool or func(*Validator) bool, got %T", pred))
	}
	if skip, res := c.v.shortCircuited(); skip {
		return res
	}
	return c.finish(fn(c.v), msgFulfill, nil, msgAndArgs)
}

// FulfillOneOf evaluates the eagerly-built predicate list and funnels the
// disjunction. A combinator frame targeting "first true wins" is pushed for
// the duration of the build, so once an entry passes, the remaining sibling
// calls in the same list become no-ops. Individual entry failures are not
// reported; the disjunction files one message when every entry fails.
func (c *Check) FulfillOneOf(build func(*Validator) []bool, msgAndArgs ...any) bool {
	defer c.teardown()
	if build == nil {
		panic(usage("FulfillOneOf", "list builder must not be nil"))
	}
	if skip, res := c.v.shortCircuited(); skip {
		return res
	}
	v := c.v
	var results []bool
	func() {
		v.sticky.push(true)
		defer v.sticky.pop()
		results = build(v)
	}()
	ok := false
	for _, r := range results {
		if r {
			ok = true
			break
		}
	}
	return c.finish(ok, msgOneOf, nil, msgAndArgs)
}

// FulfillAllOf evaluates the eagerly-built predicate list and funnels the
// conjunction. In Throw and Break modes a frame targeting "first false wins"
// is pushed so evaluation stops contributing after the first failure; in
// NextPath mode no frame is pushed and every entry still evaluates, letting
// nested per-path failures reach the Result. Entry failures report through
// their own messages; the conjunction files an aggregate message only when
// one is supplied.
func (c *Check) FulfillAllOf(build func(*Validator) []bool, msgAndArgs ...any) bool {
	defer c.teardown()
	if build == nil {
		panic(usage("FulfillAllOf", "list builder must not be nil"))
	}
	if skip, res := c.v.shortCircuited(); skip {
		return res
	}
	v := c.v
	var results []bool
	func() {
		if v.node.mode != NextPath {
			v.sticky.push(false)
			defer v.sticky.pop()
		}
		results = build(v)
	}()
	ok := true
	for _, r := range results {
		if !r {
			ok = false
			break
		}
	}
	return c.finish(ok, "", nil, msgAndArgs)
}
