package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	verity "github.com/verity-go/verity"
	"github.com/verity-go/verity/rules"
)

func signupRules() *rules.Set {
	return rules.NewSet(verity.NextPath).
		AddRule("name", func(v *verity.Validator, _ any) bool {
			return v.Is().AString()
		}).
		AddRule("age", func(v *verity.Validator, _ any) bool {
			return v.Is().InRange(18, 99)
		}).
		AddRule("email", func(v *verity.Validator, _ any) bool {
			return v.Optional().Is().AnEmail()
		})
}

func TestAddRuleUsageErrors(t *testing.T) {
	s := rules.NewSet(verity.Break)
	s.AddRule("name", func(v *verity.Validator, _ any) bool { return true })

	assert.Panics(t, func() { s.AddRule("name", func(v *verity.Validator, _ any) bool { return true }) })
	assert.Panics(t, func() { s.AddRule("other", nil) })
}

func TestValidateRunsAllRulesInRegistrationOrder(t *testing.T) {
	s := signupRules()

	res := s.Validate(map[string]any{"name": 7, "age": 12, "email": "nope"})
	assert.Equal(t, []string{"name", "age", "email"}, res.Paths())
	assert.Equal(t, []string{"name", "age", "email"}, s.Paths())
}

func TestValidateSubsetKeepsStableOrder(t *testing.T) {
	s := signupRules()

	res := s.Validate(map[string]any{"name": 7, "age": 12}, "age", "name")
	assert.Equal(t, []string{"name", "age"}, res.Paths())
}

func TestValidateUnknownPathIsUsageError(t *testing.T) {
	s := signupRules()
	assert.Panics(t, func() { s.Validate(map[string]any{}, "nope") })
}

func TestValidatePassingValueRecordsNothing(t *testing.T) {
	s := signupRules()

	res := s.Validate(map[string]any{"name": "John", "age": 23, "email": "john@example.com"})
	assert.True(t, res.IsValid())

	// optional rule tolerates the property being absent
	res = s.Validate(map[string]any{"name": "John", "age": 23})
	assert.True(t, res.IsValid())
}

func TestValidateAttributesFailuresToRulePaths(t *testing.T) {
	s := signupRules()

	res := s.Validate(map[string]any{"name": "John", "age": 12, "email": "john@example.com"})
	assert.True(t, res.IsPathValid("name"))
	assert.False(t, res.IsPathValid("age"))
	assert.Contains(t, res.ErrorAt("age"), "range [18, 99]")
}

func TestRootRuleSeesWholeValue(t *testing.T) {
	s := rules.NewSet(verity.NextPath).
		AddRule("", func(v *verity.Validator, _ any) bool {
			return v.Is().AnObject("payload must be an object")
		})

	assert.True(t, s.Validate(map[string]any{}).IsValid())

	res := s.Validate("not an object")
	assert.Equal(t, "payload must be an object", res.ErrorAt(""))
}

func TestValidateValueRunsSingleRuleAgainstChildValue(t *testing.T) {
	s := signupRules()

	res := s.ValidateValue(12, "age")
	assert.False(t, res.IsPathValid("age"))
	assert.True(t, res.IsPathValid("name"))

	assert.Panics(t, func() { s.ValidateValue(1, "unknown") })
}

func TestValidateWithContextHandsContextToEveryRule(t *testing.T) {
	type tenant struct{ MinAge int }

	s := rules.NewSet(verity.NextPath).
		AddRule("age", func(v *verity.Validator, ctx any) bool {
			min := 18
			if tn, ok := ctx.(tenant); ok {
				min = tn.MinAge
			}
			return v.Is().GreaterThanOrEqualTo(min)
		})

	assert.True(t, s.IsValid(map[string]any{"age": 23}))

	res := s.ValidateWithContext(tenant{MinAge: 30}, map[string]any{"age": 23})
	assert.False(t, res.IsPathValid("age"))
}

func TestIsValidSwallowsThrownFailures(t *testing.T) {
	s := rules.NewSet(verity.Throw).
		AddRule("name", func(v *verity.Validator, _ any) bool {
			return v.Is().AString()
		}).
		AddRule("age", func(v *verity.Validator, _ any) bool {
			return v.Is().InRange(18, 99)
		})

	assert.True(t, s.IsValid(map[string]any{"name": "John", "age": 23}))
	assert.False(t, s.IsValid(map[string]any{"name": "John", "age": 12}))
	assert.True(t, s.IsValueValid(23, "age"))
	assert.False(t, s.IsValueValid(12, "age"))

	// throwing never populated the shared result
	assert.True(t, s.Result().IsValid())
}

func TestIsValidTracksOnlyNewFailures(t *testing.T) {
	s := signupRules()

	assert.False(t, s.IsValid(map[string]any{"name": 7, "age": 23}))
	// earlier recorded failures must not taint later verdicts
	assert.True(t, s.IsValid(map[string]any{"name": "John", "age": 23}))
	assert.False(t, s.Result().IsValid())
}

func TestValidateJSONExtractsValuesWithoutFullDecode(t *testing.T) {
	s := rules.NewSet(verity.NextPath).
		AddRule("user.name", func(v *verity.Validator, _ any) bool {
			return v.Is().AString()
		}).
		AddRule("user.age", func(v *verity.Validator, _ any) bool {
			// gjson numbers surface as float64
			return v.Is().InRange(18, 99)
		}).
		AddRule("user.tags", func(v *verity.Validator, _ any) bool {
			return v.Each(func(e *verity.Validator) bool { return e.Is().AString() })
		})

	assert.True(t, s.ValidateJSON([]byte(`{"user":{"name":"John","age":23,"tags":["a","b"]}}`)).IsValid())

	res := s.ValidateJSON([]byte(`{"user":{"name":"John","age":12,"tags":["a",3]}}`))
	assert.False(t, res.IsPathValid("user.age"))
	assert.False(t, res.IsPathValid("user.tags[1]"))
	assert.True(t, res.IsPathValid("user.name"))
}

func TestValidateJSONMissingPathValidatesNil(t *testing.T) {
	s := rules.NewSet(verity.NextPath).
		AddRule("user.phone", func(v *verity.Validator, _ any) bool {
			return v.Optional().Is().AnIntegerString()
		})

	require.True(t, s.ValidateJSON([]byte(`{"user":{}}`)).IsValid())
}

func TestResultIsSharedAcrossCalls(t *testing.T) {
	s := signupRules()

	s.Validate(map[string]any{"name": 7, "age": 23})
	s.Validate(map[string]any{"name": "John", "age": 12})

	res := s.Result()
	assert.Equal(t, []string{"name", "age"}, res.Paths())
	assert.Len(t, res.AllErrors(), 2)
}
