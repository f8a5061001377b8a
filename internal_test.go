package verity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoinPath(t *testing.T) {
	assert.Equal(t, "a", joinPath("", "a"))
	assert.Equal(t, "a.b", joinPath("a", "b"))
	assert.Equal(t, "a[0]", joinPath("a", "[0]"))
	assert.Equal(t, "a", joinPath("a", ""))
	assert.Equal(t, "[0]", joinPath("", "[0]"))
}

func TestHasPathPrefixIsSegmentAware(t *testing.T) {
	assert.True(t, hasPathPrefix("a.b", "a.b"))
	assert.True(t, hasPathPrefix("a.b.c", "a.b"))
	assert.True(t, hasPathPrefix("a.b[0]", "a.b"))
	assert.True(t, hasPathPrefix("anything", ""))

	// a shared string prefix is not structural nesting
	assert.False(t, hasPathPrefix("nameSuffix", "name"))
	assert.False(t, hasPathPrefix("a.bc", "a.b"))
	assert.False(t, hasPathPrefix("a", "a.b"))
}

func TestParentPath(t *testing.T) {
	assert.Equal(t, "a.b", parentPath("a.b.c"))
	assert.Equal(t, "a", parentPath("a[0]"))
	assert.Equal(t, "", parentPath("a"))
	assert.Equal(t, "", parentPath(""))
}

func TestSplitSegments(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitSegments("a.b"))
	assert.Equal(t, []string{"a", "[0]", "c"}, splitSegments("a[0].c"))
	assert.Equal(t, []string{"[1]"}, splitSegments("[1]"))
	assert.Nil(t, splitSegments(""))
}

func TestResolveValuePath(t *testing.T) {
	obj := map[string]any{
		"person": map[string]any{
			"name": "John",
			"pets": []any{map[string]any{"kind": "cat"}},
		},
	}

	v, ok := resolveValuePath(obj, "person.name")
	require.True(t, ok)
	assert.Equal(t, "John", v)

	v, ok = resolveValuePath(obj, "person.pets[0].kind")
	require.True(t, ok)
	assert.Equal(t, "cat", v)

	_, ok = resolveValuePath(obj, "person.missing")
	assert.False(t, ok)

	_, ok = resolveValuePath(obj, "person.pets[9]")
	assert.False(t, ok)
}

func TestResolveValuePathStructs(t *testing.T) {
	type address struct {
		Zip string `json:"zip"`
	}
	type person struct {
		Name    string `json:"name"`
		Address *address
	}
	p := person{Name: "Ada", Address: &address{Zip: "1010"}}

	v, ok := resolveValuePath(p, "name")
	require.True(t, ok)
	assert.Equal(t, "Ada", v)

	v, ok = resolveValuePath(&p, "Address.zip")
	require.True(t, ok)
	assert.Equal(t, "1010", v)
}

func TestElementsOrdering(t *testing.T) {
	elems, ok := elements([]any{"x", "y"})
	require.True(t, ok)
	assert.Equal(t, "[0]", elems[0].seg)
	assert.Equal(t, "[1]", elems[1].seg)

	elems, ok = elements(map[string]any{"b": 2, "a": 1})
	require.True(t, ok)
	assert.Equal(t, "[a]", elems[0].seg)
	assert.Equal(t, "[b]", elems[1].seg)

	_, ok = elements("not iterable")
	assert.False(t, ok)
	_, ok = elements(nil)
	assert.False(t, ok)
}

func TestValidatorPoolRecycling(t *testing.T) {
	tt := New(Break)

	v1 := tt.Value("x")
	v1.Is().AString()

	// the chain above completed, so the validator and its predicate surface
	// went back to the pool
	assert.Equal(t, 1, tt.validators.Idle())
	assert.Equal(t, 1, tt.checks.Idle())

	v2 := tt.Value("y")
	assert.Same(t, v1, v2)
	v2.Is().AString()
}

func TestNavigationRecyclesEachSegment(t *testing.T) {
	tt := New(Break)
	obj := map[string]any{"a": map[string]any{"b": 1}}

	tt.Value(obj).Prop("a").Prop("b").Is().ANumber()

	// every segment recycled its validator; the deepest descent needed two
	// live instances at once, so the free list holds exactly two
	assert.Equal(t, 2, tt.validators.Idle())
	assert.Equal(t, 1, tt.checks.Idle())
}

func TestUseAfterReleaseIsUsageError(t *testing.T) {
	tt := New(Break)
	v := tt.Value("x")
	v.Is().AString()

	assert.Panics(t, func() { v.Is() })
}
