// Package message renders failure-message templates. Templates carry
// placeholders that are substituted from the validation context:
//
//	${0}, ${1}, ...   positional arguments
//	${VALUE}          the value under test
//	${PATH}           the first attribution path
//	${PATH0}, ...     attribution path n when a failure is filed under several
//	${CURRENT_PATH}   the path segment contributed by the current node
//	${PARENT_PATH}    the attribution path with the current segment removed
//
// A backslash immediately before "${" escapes the substitution and emits the
// placeholder literally.
package message

import (
	"fmt"
	"strconv"
	"strings"
)

// Context carries the data a template may reference.
type Context struct {
	Value       any
	Paths       []string
	CurrentPath string
	ParentPath  string
	Args        []any
}

// Resolver turns a template plus context into final text.
type Resolver interface {
	Resolve(template string, ctx Context) string
}

var currentResolver Resolver = placeholderResolver{}

// SetResolver replaces the Resolver implementation; nil restores the default
// placeholder resolver.
func SetResolver(r Resolver) {
	if r == nil {
		currentResolver = placeholderResolver{}
		return
	}
	currentResolver = r
}

// Resolve renders template with the current Resolver.
func Resolve(template string, ctx Context) string {
	return currentResolver.Resolve(template, ctx)
}

// placeholderResolver is the built-in ${...} substitution engine.
type placeholderResolver struct{}

func (placeholderResolver) Resolve(template string, ctx Context) string {
	if !strings.Contains(template, "${") {
		return template
	}
	var b strings.Builder
	b.Grow(len(template))
	for i := 0; i < len(template); {
		// escaped placeholder: `\${` emits `${` literally
		if template[i] == '\\' && strings.HasPrefix(template[i:], `\${`) {
			b.WriteString("${")
			end := strings.IndexByte(template[i+1:], '}')
			if end < 0 {
				b.WriteString(template[i+3:])
				return b.String()
			}
			b.WriteString(template[i+3 : i+1+end+1])
			i = i + 1 + end + 1
			continue
		}
		if template[i] == '$' && strings.HasPrefix(template[i:], "${") {
			end := strings.IndexByte(template[i:], '}')
			if end < 0 {
				b.WriteString(template[i:])
				return b.String()
			}
			name := template[i+2 : i+end]
			if sub, ok := substitute(name, ctx); ok {
				b.WriteString(sub)
			} else {
				b.WriteString(template[i : i+end+1])
			}
			i += end + 1
			continue
		}
		b.WriteByte(template[i])
		i++
	}
	return b.String()
}

func substitute(name string, ctx Context) (string, bool) {
	switch name {
	case "VALUE":
		return formatValue(ctx.Value), true
	case "PATH":
		if len(ctx.Paths) > 0 {
			return ctx.Paths[0], true
		}
		return "", true
	case "CURRENT_PATH":
		return ctx.CurrentPath, true
	case "PARENT_PATH":
		return ctx.ParentPath, true
	}
	if n, ok := trimIndex(name, "PATH"); ok {
		if n < len(ctx.Paths) {
			return ctx.Paths[n], true
		}
		return "", false
	}
	if n, err := strconv.Atoi(name); err == nil && n >= 0 {
		if n < len(ctx.Args) {
			return formatValue(ctx.Args[n]), true
		}
		return "", false
	}
	return "", false
}

func trimIndex(name, prefix string) (int, bool) {
	rest, found := strings.CutPrefix(name, prefix)
	if !found || rest == "" {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func formatValue(v any) string {
	if v == nil {
		return "<nil>"
	}
	return fmt.Sprint(v)
}
