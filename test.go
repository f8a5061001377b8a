package verity

import "github.com/verity-go/verity/internal/pool"

// poolCapacity bounds the idle instances each Test retains. Deep objects
// recycle nodes quickly, so a modest cap keeps the free lists small.
const poolCapacity = 64

// Test is the reusable entry point produced by New: it binds a mode and an
// error-message prefix, owns a shared Result populated by every Value call
// made through it, and keeps the node pools warm across calls.
//
// A Test and everything spawned from it is single-threaded; drive one Value
// call to completion before starting the next on the same Test.
type Test struct {
	mode       Mode
	prefix     string
	result     Result
	validators *pool.Pool[*Validator]
	checks     *pool.Pool[*Check]
}

// New returns a Test bound to mode. The optional errorPrefix is prepended to
// every message the Test produces. An invalid mode is a usage error.
func New(mode Mode, errorPrefix ...string) *Test {
	if !mode.valid() {
		panic(usage("New", "invalid mode %d", int(mode)))
	}
	prefix := ""
	if len(errorPrefix) > 0 {
		prefix = errorPrefix[0]
	}
	t := &Test{
		mode:   mode,
		prefix: prefix,
		result: NewResult(),
	}
	t.validators = pool.New(poolCapacity, func() *Validator { return &Validator{} })
	t.checks = pool.New(poolCapacity, func() *Check { return &Check{} })
	return t
}

// Value starts a validation over v rooted at the empty path.
//
// Each call acquires a pooled root Validator with fresh short-circuit
// bookkeeping; failures from all calls accumulate in the shared Result. The
// returned Validator is consumed by its first navigation or terminal call
// (see Validator) — obtain a fresh one per fluent chain.
func (t *Test) Value(v any) *Validator { return t.ValueAt(v, "") }

// ValueAt starts a validation over v with every attribution path resolved
// under basePath. The structural path still starts empty; basePath only
// shifts where failures are filed.
func (t *Test) ValueAt(v any, basePath string) *Validator {
	root := t.acquire(nodeState{
		mode:        t.mode,
		value:       v,
		basePath:    basePath,
		errorPaths:  defaultErrorPaths(basePath, ""),
		errorPrefix: t.prefix,
		result:      t.result,
	}, &failureState{}, &stickyStack{}, false)
	return root
}

// Result returns the Result shared by every Value call on this Test.
func (t *Test) Result() Result { return t.result }

// Mode returns the mode the Test was created with.
func (t *Test) Mode() Mode { return t.mode }

// acquire hands out a pooled Validator bound to the given node and shared
// per-call state.
func (t *Test) acquire(node nodeState, failed *failureState, sticky *stickyStack, fulfilled bool) *Validator {
	v := t.validators.Acquire()
	v.test = t
	v.node = node
	v.failed = failed
	v.sticky = sticky
	v.fulfilled = fulfilled
	v.owned = false
	return v
}

// releaseValidator resets v and returns it to the pool. Callers must not
// touch v afterwards.
func (t *Test) releaseValidator(v *Validator) {
	v.node.reset()
	v.test = nil
	v.failed = nil
	v.sticky = nil
	v.fulfilled = false
	v.owned = false
	t.validators.Release(v)
}

// acquireCheck hands out a pooled predicate surface bound to v.
func (t *Test) acquireCheck(v *Validator, negated, owner bool) *Check {
	c := t.checks.Acquire()
	c.v = v
	c.negated = negated
	c.owner = owner
	return c
}

// releaseCheck resets c and returns it to the pool.
func (t *Test) releaseCheck(c *Check) {
	c.v = nil
	c.negated = false
	c.owner = false
	t.checks.Release(c)
}
