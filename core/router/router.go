package router

import (
	"slices"
	"strings"
)

// MethodAny registers a value that answers every method not registered explicitly.
const MethodAny = "*"

// Kind classifies the outcome of a route lookup.
type Kind uint8

const (
	// NoPathMatch means no registered pattern matches the path.
	NoPathMatch Kind = iota
	// PathMatchWrongMethod means a pattern matches but has nothing registered for the method.
	PathMatchWrongMethod
	// Matched means a value was found for both path and method.
	Matched
)

// String returns a human readable name for the kind.
func (k Kind) String() string {
	switch k {
	case Matched:
		return "matched"
	case PathMatchWrongMethod:
		return "wrong_method"
	default:
		return "no_match"
	}
}

// Result is the outcome of Router.Match.
type Result[T any] struct {
	Kind    Kind
	Value   T
	Params  Params
	Pattern string   // canonical pattern of the matched terminal, empty on NoPathMatch
	Allowed []string // methods registered at the terminal, set on PathMatchWrongMethod
}

// Err maps a non-matching result to ErrNotFound or ErrMethodNotAllowed.
// Returns nil for a match.
func (r Result[T]) Err() error {
	switch r.Kind {
	case NoPathMatch:
		return ErrNotFound
	case PathMatchWrongMethod:
		return ErrMethodNotAllowed
	default:
		return nil
	}
}

// RouteInfo describes a single registered (method, pattern) pair.
type RouteInfo struct {
	Method  string
	Pattern string
}

// Router is a segment trie mapping (method, pattern) to values of type T.
//
// Registration is not safe for concurrent use. Once registration is complete
// the router is read-only and Match may be called from any number of goroutines.
type Router[T any] struct {
	nodes []node[T]
}

// New creates an empty router.
func New[T any]() *Router[T] {
	r := &Router[T]{}
	r.alloc() // root
	return r
}

// Insert registers value for method at pattern.
// Structural conflicts are reported as *RegistrationError.
func (r *Router[T]) Insert(method, pattern string, value T) error {
	if !validMethod(method) {
		return &RegistrationError{Method: method, Pattern: pattern, Err: ErrInvalidMethod}
	}

	segs, err := parsePattern(pattern)
	if err != nil {
		return &RegistrationError{Method: method, Pattern: pattern, Err: err}
	}

	id := rootNode
	for _, seg := range segs {
		id, err = r.child(id, seg)
		if err != nil {
			return &RegistrationError{Method: method, Pattern: pattern, Err: err}
		}
	}

	n := &r.nodes[id]
	if err := n.set(method, value); err != nil {
		return &RegistrationError{Method: method, Pattern: pattern, Err: err}
	}
	n.pattern = canonicalPattern(segs)

	return nil
}

// Match resolves method and path against the registered patterns.
// A single trailing slash on path is ignored; matching is case-sensitive.
func (r *Router[T]) Match(method, path string) Result[T] {
	var res Result[T]

	id, params, ok := r.find(rootNode, splitPath(path), nil)
	if !ok {
		res.Kind = NoPathMatch
		return res
	}

	n := &r.nodes[id]
	res.Pattern = n.pattern
	res.Params = params

	if v, ok := n.lookup(method); ok {
		res.Kind = Matched
		res.Value = v
		return res
	}

	res.Kind = PathMatchWrongMethod
	res.Allowed = n.allowed()
	return res
}

// Routes lists every registered route sorted by pattern then method.
func (r *Router[T]) Routes() []RouteInfo {
	var routes []RouteInfo
	for i := range r.nodes {
		n := &r.nodes[i]
		if !n.terminal() {
			continue
		}
		for m := range n.endpoints {
			routes = append(routes, RouteInfo{Method: m, Pattern: n.pattern})
		}
		if n.hasAny {
			routes = append(routes, RouteInfo{Method: MethodAny, Pattern: n.pattern})
		}
	}

	slices.SortFunc(routes, func(a, b RouteInfo) int {
		if c := strings.Compare(a.Pattern, b.Pattern); c != 0 {
			return c
		}
		return strings.Compare(a.Method, b.Method)
	})
	return routes
}

// validMethod accepts MethodAny or a non-empty HTTP token.
func validMethod(method string) bool {
	if method == MethodAny {
		return true
	}
	if method == "" {
		return false
	}
	for i := 0; i < len(method); i++ {
		c := method[i]
		if c <= ' ' || c >= 0x7f || strings.IndexByte("()<>@,;:\\\"/[]?={}", c) >= 0 {
			return false
		}
	}
	return true
}

