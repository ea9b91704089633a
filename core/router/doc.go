// Package router maps (method, path) pairs to values with a segment trie.
//
// Patterns are made of '/'-separated segments:
//
//	/users          literal, matches exactly
//	/users/:id      named, binds one non-empty segment under "id"
//	/files/*rest    wildcard, binds the non-empty remainder, slashes included
//	/static/*       unnamed wildcard, binds under "*"
//
// A wildcard must be the last segment. Matching is case-sensitive and a
// single trailing slash on either the pattern or the path is ignored.
//
// At every segment literal children are tried first, then the named child,
// then the wildcard. A branch that reaches no registered route is abandoned
// and the next kind is tried, so registration order never affects the
// result:
//
//	r := router.New[string]()
//	_ = r.Insert(http.MethodGet, "/users/new", "form")
//	_ = r.Insert(http.MethodGet, "/users/:id", "show")
//
//	r.Match(http.MethodGet, "/users/new").Value // "form"
//	r.Match(http.MethodGet, "/users/42").Params // [{id 42}]
//
// Once a path matches, the method is resolved: an exact registration, then
// GET for HEAD requests, then a MethodAny registration. Anything else is
// PathMatchWrongMethod and Result.Allowed lists what the path does accept.
//
// Insert reports structural problems as *RegistrationError. The router is
// not safe for concurrent Insert; after registration Match may be called
// from many goroutines.
package router
