package verity

import (
	"strconv"
	"strings"
)

// joinPath appends a path segment to base using dotted/bracketed notation.
// Bracket segments ("[0]", "[key]") attach directly; everything else joins
// with a dot. Either side may be empty.
func joinPath(base, seg string) string {
	switch {
	case seg == "":
		return base
	case base == "":
		return seg
	case seg[0] == '[':
		return base + seg
	default:
		return base + "." + seg
	}
}

// indexSegment renders the local path of a sequence element.
func indexSegment(i int) string { return "[" + strconv.Itoa(i) + "]" }

// keySegment renders the local path of an associative element.
func keySegment(k string) string { return "[" + k + "]" }

// hasPathPrefix reports whether path is prefix itself or structurally nested
// under it. The check is segment-aware: "name.first" and "name[0]" are under
// "name", but "nameSuffix" is not.
func hasPathPrefix(path, prefix string) bool {
	if prefix == "" {
		return true
	}
	if path == prefix {
		return true
	}
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	switch path[len(prefix)] {
	case '.', '[':
		return true
	}
	return false
}

// parentPath strips the final segment from a path. The parent of a
// single-segment path is the empty (root) path.
func parentPath(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		switch path[i] {
		case '.':
			return path[:i]
		case '[':
			return path[:i]
		case ']':
			// malformed trailing bracket without opener; treat as root
		}
	}
	return ""
}

// splitSegments breaks a dotted/bracketed path into lookup segments.
// "a.b[0].c" yields ["a", "[0]", "c", ...] with bracket segments kept intact
// so value resolution can distinguish index access from key access.
func splitSegments(path string) []string {
	if path == "" {
		return nil
	}
	var segs []string
	start := 0
	for i := 0; i < len(path); i++ {
		switch path[i] {
		case '.':
			if i > start {
				segs = append(segs, path[start:i])
			}
			start = i + 1
		case '[':
			if i > start {
				segs = append(segs, path[start:i])
			}
			end := strings.IndexByte(path[i:], ']')
			if end < 0 {
				// unterminated bracket; take the remainder literally
				segs = append(segs, path[i:])
				return segs
			}
			segs = append(segs, path[i:i+end+1])
			start = i + end + 1
			i = start - 1
		}
	}
	if start < len(path) {
		segs = append(segs, path[start:])
	}
	return segs
}
