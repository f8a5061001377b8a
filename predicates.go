package verity

import (
	"net/mail"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Default message templates, resolved through the message package. A
// caller-supplied message in the msgAndArgs tail always takes precedence.
const (
	msgIdenticalTo          = "expected a value identical to ${0} but got ${VALUE}"
	msgEqualTo              = "expected a value equal to ${0} but got ${VALUE}"
	msgNil                  = "expected a nil value but got ${VALUE}"
	msgAnArray              = "expected an array but got ${VALUE}"
	msgABoolean             = "expected a boolean but got ${VALUE}"
	msgAFunction            = "expected a function"
	msgAFloatString         = "expected a float string but got ${VALUE}"
	msgAnInteger            = "expected an integer but got ${VALUE}"
	msgAnIntegerString      = "expected an integer string but got ${VALUE}"
	msgANumber              = "expected a number but got ${VALUE}"
	msgAnObject             = "expected an object but got ${VALUE}"
	msgAString              = "expected a string but got ${VALUE}"
	msgAUUID                = "expected a UUID but got ${VALUE}"
	msgAnEmail              = "expected an email address but got ${VALUE}"
	msgEmpty                = "expected an empty value but got ${VALUE}"
	msgLessThan             = "expected a value less than ${0} but got ${VALUE}"
	msgLessThanOrEqualTo    = "expected a value less than or equal to ${0} but got ${VALUE}"
	msgGreaterThan          = "expected a value greater than ${0} but got ${VALUE}"
	msgGreaterThanOrEqualTo = "expected a value greater than or equal to ${0} but got ${VALUE}"
	msgInRange              = "expected a value in range [${0}, ${1}] but got ${VALUE}"
	msgIn                   = "expected ${VALUE} to be contained in the given collection"
	msgStartWith            = "expected ${VALUE} to start with ${0}"
	msgEndWith              = "expected ${VALUE} to end with ${0}"
	msgMatch                = "expected ${VALUE} to match ${0}"
	msgFulfill              = "expected the predicate to be fulfilled by ${VALUE}"
	msgOneOf                = "expected at least one condition to be fulfilled by ${VALUE}"
)

var (
	floatStringRe   = regexp.MustCompile(`^[+-]?\d+\.\d+$`)
	integerStringRe = regexp.MustCompile(`^[+-]?\d+$`)
)

// IdenticalTo passes when the value and want are comparable and equal under
// Go equality. Non-comparable values are never identical.
func (c *Check) IdenticalTo(want any, msgAndArgs ...any) bool {
	return c.eval(func(v any) bool { return identical(v, want) }, msgIdenticalTo, []any{want}, msgAndArgs)
}

// EqualTo passes when the value deeply equals want.
func (c *Check) EqualTo(want any, msgAndArgs ...any) bool {
	return c.eval(func(v any) bool { return deepEqual(v, want) }, msgEqualTo, []any{want}, msgAndArgs)
}

// Nil passes for nil values, including typed nil pointers, maps and slices.
func (c *Check) Nil(msgAndArgs ...any) bool {
	return c.eval(isNilValue, msgNil, nil, msgAndArgs)
}

// AnArray passes for slices and arrays.
func (c *Check) AnArray(msgAndArgs ...any) bool {
	return c.eval(isSequence, msgAnArray, nil, msgAndArgs)
}

// ABoolean passes for bool-kinded values.
func (c *Check) ABoolean(msgAndArgs ...any) bool {
	return c.eval(isBool, msgABoolean, nil, msgAndArgs)
}

// AFunction passes for func-kinded values.
func (c *Check) AFunction(msgAndArgs ...any) bool {
	return c.eval(isFunc, msgAFunction, nil, msgAndArgs)
}

// AFloatString passes for strings holding a decimal float literal such as
// "3.14" or "-0.5".
func (c *Check) AFloatString(msgAndArgs ...any) bool {
	return c.eval(func(v any) bool {
		s, ok := v.(string)
		return ok && floatStringRe.MatchString(s)
	}, msgAFloatString, nil, msgAndArgs)
}

// AnInteger passes for integer-kinded values and for floats or json.Number
// values without a fractional part.
func (c *Check) AnInteger(msgAndArgs ...any) bool {
	return c.eval(isInteger, msgAnInteger, nil, msgAndArgs)
}

// AnIntegerString passes for strings holding an integer literal such as "42"
// or "-7".
func (c *Check) AnIntegerString(msgAndArgs ...any) bool {
	return c.eval(func(v any) bool {
		s, ok := v.(string)
		return ok && integerStringRe.MatchString(s)
	}, msgAnIntegerString, nil, msgAndArgs)
}

// ANumber passes for any numeric kind, including json.Number.
func (c *Check) ANumber(msgAndArgs ...any) bool {
	return c.eval(isNumber, msgANumber, nil, msgAndArgs)
}

// AnObject passes for maps, structs and pointers to structs.
func (c *Check) AnObject(msgAndArgs ...any) bool {
	return c.eval(isObject, msgAnObject, nil, msgAndArgs)
}

// AString passes for string-kinded values.
func (c *Check) AString(msgAndArgs ...any) bool {
	return c.eval(isString, msgAString, nil, msgAndArgs)
}

// AUUID passes for strings parseable as a UUID in any of the formats
// accepted by github.com/google/uuid.
func (c *Check) AUUID(msgAndArgs ...any) bool {
	return c.eval(func(v any) bool {
		s, ok := v.(string)
		return ok && uuid.Validate(s) == nil
	}, msgAUUID, nil, msgAndArgs)
}

// AnEmail passes for strings holding a plain RFC 5322 address without a
// display name.
func (c *Check) AnEmail(msgAndArgs ...any) bool {
	return c.eval(func(v any) bool {
		s, ok := v.(string)
		if !ok || strings.TrimSpace(s) == "" {
			return false
		}
		addr, err := mail.ParseAddress(s)
		return err == nil && addr.Address == s
	}, msgAnEmail, nil, msgAndArgs)
}

// Empty passes for nil values, blank strings and zero-length collections.
func (c *Check) Empty(msgAndArgs ...any) bool {
	return c.eval(isEmpty, msgEmpty, nil, msgAndArgs)
}

// LessThan passes for numeric values strictly below limit. A non-numeric
// limit is a usage error; a non-numeric value is a validation failure.
func (c *Check) LessThan(limit any, msgAndArgs ...any) bool {
	lim := mustNumber("LessThan", "limit", limit)
	return c.eval(func(v any) bool {
		f, ok := asFloat(v)
		return ok && f < lim
	}, msgLessThan, []any{limit}, msgAndArgs)
}

// LessThanOrEqualTo passes for numeric values at or below limit.
func (c *Check) LessThanOrEqualTo(limit any, msgAndArgs ...any) bool {
	lim := mustNumber("LessThanOrEqualTo", "limit", limit)
	return c.eval(func(v any) bool {
		f, ok := asFloat(v)
		return ok && f <= lim
	}, msgLessThanOrEqualTo, []any{limit}, msgAndArgs)
}

// GreaterThan passes for numeric values strictly above limit.
func (c *Check) GreaterThan(limit any, msgAndArgs ...any) bool {
	lim := mustNumber("GreaterThan", "limit", limit)
	return c.eval(func(v any) bool {
		f, ok := asFloat(v)
		return ok && f > lim
	}, msgGreaterThan, []any{limit}, msgAndArgs)
}

// GreaterThanOrEqualTo passes for numeric values at or above limit.
func (c *Check) GreaterThanOrEqualTo(limit any, msgAndArgs ...any) bool {
	lim := mustNumber("GreaterThanOrEqualTo", "limit", limit)
	return c.eval(func(v any) bool {
		f, ok := asFloat(v)
		return ok && f >= lim
	}, msgGreaterThanOrEqualTo, []any{limit}, msgAndArgs)
}

// InRange passes for numeric values within [start, end], bounds included.
// Non-numeric bounds or an inverted range are usage errors.
func (c *Check) InRange(start, end any, msgAndArgs ...any) bool {
	lo := mustNumber("InRange", "start", start)
	hi := mustNumber("InRange", "end", end)
	if lo > hi {
		panic(usage("InRange", "start %v must not exceed end %v", start, end))
	}
	return c.eval(func(v any) bool {
		f, ok := asFloat(v)
		return ok && f >= lo && f <= hi
	}, msgInRange, []any{start, end}, msgAndArgs)
}

// In passes when the value is deeply equal to a member of collection, which
// must be iterable (a usage error otherwise).
func (c *Check) In(collection any, msgAndArgs ...any) bool {
	if _, ok := elements(collection); !ok {
		panic(usage("In", "collection of type %T is not iterable", collection))
	}
	return c.eval(func(v any) bool {
		found, _ := contains(collection, v)
		return found
	}, msgIn, nil, msgAndArgs)
}

// StartWith passes for strings beginning with prefix.
func (c *Check) StartWith(prefix string, msgAndArgs ...any) bool {
	return c.eval(func(v any) bool {
		s, ok := v.(string)
		return ok && strings.HasPrefix(s, prefix)
	}, msgStartWith, []any{prefix}, msgAndArgs)
}

// EndWith passes for strings ending with suffix.
func (c *Check) EndWith(suffix string, msgAndArgs ...any) bool {
	return c.eval(func(v any) bool {
		s, ok := v.(string)
		return ok && strings.HasSuffix(s, suffix)
	}, msgEndWith, []any{suffix}, msgAndArgs)
}

// Match passes for strings matching pattern, which is either a
// *regexp.Regexp or a string compiled on the fly (a failing compile is a
// usage error).
func (c *Check) Match(pattern any, msgAndArgs ...any) bool {
	var re *regexp.Regexp
	switch p := pattern.(type) {
	case *regexp.Regexp:
		if p == nil {
			panic(usage("Match", "pattern must not be nil"))
		}
		re = p
	case string:
		compiled, err := regexp.Compile(p)
		if err != nil {
			panic(usage("Match", "invalid pattern %q: %v", p, err))
		}
		re = compiled
	default:
		panic(usage("Match", "pattern must be a *regexp.Regexp or string, got %T", pattern))
	}
	return c.eval(func(v any) bool {
		s, ok := v.(string)
		return ok && re.MatchString(s)
	}, msgMatch, []any{re.String()}, msgAndArgs)
}

// mustNumber validates a comparison predicate's own argument; a wrong type
// here is a defect in the calling code, not a validation outcome.
func mustNumber(op, name string, v any) float64 {
	f, ok := asFloat(v)
	if !ok {
		panic(usage(op, "%s must be numeric, got %T", name, v))
	}
	return f
}
