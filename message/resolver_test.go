package message_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/verity-go/verity/message"
)

func TestResolvePositionalArgs(t *testing.T) {
	got := message.Resolve("between ${0} and ${1}", message.Context{Args: []any{18, 99}})
	assert.Equal(t, "between 18 and 99", got)
}

func TestResolveValueAndPaths(t *testing.T) {
	ctx := message.Context{
		Value:       23,
		Paths:       []string{"person.age", "profile.age"},
		CurrentPath: "age",
		ParentPath:  "person",
	}

	assert.Equal(t, "got 23", message.Resolve("got ${VALUE}", ctx))
	assert.Equal(t, "at person.age", message.Resolve("at ${PATH}", ctx))
	assert.Equal(t, "person.age or profile.age", message.Resolve("${PATH0} or ${PATH1}", ctx))
	assert.Equal(t, "seg age of person", message.Resolve("seg ${CURRENT_PATH} of ${PARENT_PATH}", ctx))
}

func TestResolveNilValue(t *testing.T) {
	got := message.Resolve("got ${VALUE}", message.Context{})
	assert.Equal(t, "got <nil>", got)
}

func TestResolveEscapedPlaceholder(t *testing.T) {
	got := message.Resolve(`literal \${VALUE} here`, message.Context{Value: 1})
	assert.Equal(t, "literal ${VALUE} here", got)
}

func TestResolveUnknownPlaceholderKeptLiteral(t *testing.T) {
	ctx := message.Context{Args: []any{"only"}}
	assert.Equal(t, "have only and ${1}", message.Resolve("have ${0} and ${1}", ctx))
	assert.Equal(t, "${NOPE}", message.Resolve("${NOPE}", ctx))
}

func TestResolveUnterminatedPlaceholder(t *testing.T) {
	assert.Equal(t, "tail ${VALUE", message.Resolve("tail ${VALUE", message.Context{Value: 1}))
}

func TestResolveWithoutPlaceholders(t *testing.T) {
	assert.Equal(t, "plain text", message.Resolve("plain text", message.Context{}))
}

type upperResolver struct{}

func (upperResolver) Resolve(template string, _ message.Context) string { return template + "!" }

func TestSetResolverReplacesAndRestores(t *testing.T) {
	message.SetResolver(upperResolver{})
	defer message.SetResolver(nil)

	assert.Equal(t, "msg!", message.Resolve("msg", message.Context{}))

	message.SetResolver(nil)
	assert.Equal(t, "got 1", message.Resolve("got ${0}", message.Context{Args: []any{1}}))
}
