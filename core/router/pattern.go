package router

import (
	"fmt"
	"strings"
)

type segmentKind uint8

const (
	segLiteral  segmentKind = iota // /users
	segNamed                       // /:id
	segWildcard                    // /*rest
)

type segment struct {
	kind  segmentKind
	value string // literal text or parameter key
}

// parsePattern splits a route pattern into segments and validates it.
func parsePattern(pattern string) ([]segment, error) {
	if pattern == "" || pattern[0] != '/' {
		return nil, fmt.Errorf("%w: '%s' must begin with '/'", ErrInvalidPattern, pattern)
	}

	parts := splitPath(pattern)
	segs := make([]segment, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))

	for i, part := range parts {
		var seg segment
		switch {
		case part == "":
			return nil, fmt.Errorf("%w: '%s' has an empty segment", ErrInvalidPattern, pattern)

		case part[0] == ':':
			seg = segment{kind: segNamed, value: part[1:]}
			if seg.value == "" {
				return nil, fmt.Errorf("%w: '%s' has an unnamed parameter", ErrInvalidPattern, pattern)
			}

		case part[0] == '*':
			seg = segment{kind: segWildcard, value: part[1:]}
			if seg.value == "" {
				seg.value = "*"
			}
			if i != len(parts)-1 {
				return nil, fmt.Errorf("%w: '%s'", ErrWildcardPosition, pattern)
			}

		default:
			seg = segment{kind: segLiteral, value: part}
		}

		if seg.kind != segLiteral {
			if _, dup := seen[seg.value]; dup {
				return nil, fmt.Errorf("%w: '%s' has duplicate key '%s'", ErrDuplicateParam, pattern, seg.value)
			}
			seen[seg.value] = struct{}{}
		}

		segs = append(segs, seg)
	}

	return segs, nil
}

// canonicalPattern renders segments back into a pattern without a trailing slash.
func canonicalPattern(segs []segment) string {
	if len(segs) == 0 {
		return "/"
	}

	var b strings.Builder
	for _, seg := range segs {
		b.WriteByte('/')
		switch seg.kind {
		case segNamed:
			b.WriteByte(':')
		case segWildcard:
			b.WriteByte('*')
			if seg.value == "*" {
				continue
			}
		}
		b.WriteString(seg.value)
	}
	return b.String()
}

// splitPath drops the leading slash and a single trailing slash, then splits
// on '/'. The root path yields no segments.
func splitPath(path string) []string {
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}
	path = strings.TrimPrefix(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

// Join concatenates a prefix and a sub-pattern into a single pattern.
func Join(prefix, pattern string) string {
	prefix = strings.TrimRight(prefix, "/")
	pattern = strings.TrimLeft(pattern, "/")
	if pattern == "" {
		if prefix == "" {
			return "/"
		}
		return prefix
	}
	return prefix + "/" + pattern
}
