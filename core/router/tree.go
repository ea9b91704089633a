package router

// Segment trie stored as an arena: nodes live in Router.nodes and reference
// their children by index, so the structure can be frozen by simply no
// longer calling Insert.

import (
	"fmt"
	"net/http"
	"slices"
	"strings"
)

type nodeID int32

const (
	noNode   nodeID = -1
	rootNode nodeID = 0
)

type node[T any] struct {
	// literal children keyed by exact segment
	literals map[string]nodeID

	// single-segment parameter child
	named    nodeID
	namedKey string

	// remainder-of-path child, always a leaf
	wildcard    nodeID
	wildcardKey string

	// terminal data
	pattern   string
	endpoints map[string]T
	anyValue  T
	hasAny    bool
}

func (r *Router[T]) alloc() nodeID {
	r.nodes = append(r.nodes, node[T]{named: noNode, wildcard: noNode})
	return nodeID(len(r.nodes) - 1)
}

// child returns the node reached from id through seg, creating it if needed.
// The arena may grow here, so no *node pointer is held across alloc.
func (r *Router[T]) child(id nodeID, seg segment) (nodeID, error) {
	switch seg.kind {
	case segNamed:
		if next := r.nodes[id].named; next != noNode {
			if key := r.nodes[id].namedKey; key != seg.value {
				return noNode, fmt.Errorf("%w: ':%s' vs ':%s'", ErrParamConflict, seg.value, key)
			}
			return next, nil
		}
		next := r.alloc()
		r.nodes[id].named = next
		r.nodes[id].namedKey = seg.value
		return next, nil

	case segWildcard:
		if next := r.nodes[id].wildcard; next != noNode {
			if key := r.nodes[id].wildcardKey; key != seg.value {
				return noNode, fmt.Errorf("%w: '*%s' vs '*%s'", ErrParamConflict, seg.value, key)
			}
			return next, nil
		}
		next := r.alloc()
		r.nodes[id].wildcard = next
		r.nodes[id].wildcardKey = seg.value
		return next, nil

	default:
		if next, ok := r.nodes[id].literals[seg.value]; ok {
			return next, nil
		}
		next := r.alloc()
		if r.nodes[id].literals == nil {
			r.nodes[id].literals = make(map[string]nodeID)
		}
		r.nodes[id].literals[seg.value] = next
		return next, nil
	}
}

// find walks segs from id. Children are tried literal, then named, then
// wildcard; a branch that does not reach a terminal is abandoned and the
// next kind is tried.
func (r *Router[T]) find(id nodeID, segs []string, params Params) (nodeID, Params, bool) {
	n := &r.nodes[id]

	if len(segs) == 0 {
		return id, params, n.terminal()
	}

	seg := segs[0]

	if next, ok := n.literals[seg]; ok {
		if found, p, ok := r.find(next, segs[1:], params); ok {
			return found, p, true
		}
	}

	if n.named != noNode && seg != "" {
		if found, p, ok := r.find(n.named, segs[1:], append(params, Param{Key: n.namedKey, Value: seg})); ok {
			return found, p, true
		}
	}

	if n.wildcard != noNode && r.nodes[n.wildcard].terminal() {
		if rest := strings.Join(segs, "/"); rest != "" {
			return n.wildcard, append(params, Param{Key: n.wildcardKey, Value: rest}), true
		}
	}

	return noNode, params, false
}

func (n *node[T]) terminal() bool {
	return len(n.endpoints) > 0 || n.hasAny
}

func (n *node[T]) set(method string, value T) error {
	if method == MethodAny {
		if n.hasAny {
			return ErrDuplicateRoute
		}
		n.anyValue = value
		n.hasAny = true
		return nil
	}

	if _, ok := n.endpoints[method]; ok {
		return ErrDuplicateRoute
	}
	if n.endpoints == nil {
		n.endpoints = make(map[string]T)
	}
	n.endpoints[method] = value
	return nil
}

// lookup resolves method at a terminal: exact method, HEAD served by GET,
// then the any-method value.
func (n *node[T]) lookup(method string) (T, bool) {
	if v, ok := n.endpoints[method]; ok {
		return v, true
	}
	if method == http.MethodHead {
		if v, ok := n.endpoints[http.MethodGet]; ok {
			return v, true
		}
	}
	if n.hasAny {
		return n.anyValue, true
	}
	var zero T
	return zero, false
}

func (n *node[T]) allowed() []string {
	methods := make([]string, 0, len(n.endpoints)+1)
	for m := range n.endpoints {
		methods = append(methods, m)
	}
	if _, ok := n.endpoints[http.MethodGet]; ok {
		if _, ok := n.endpoints[http.MethodHead]; !ok {
			methods = append(methods, http.MethodHead)
		}
	}
	slices.Sort(methods)
	return methods
}
