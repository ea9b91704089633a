package tidal

// New creates a server without shared state.
func New(opts ...Option[struct{}]) *Server[struct{}] {
	return WithState(struct{}{}, opts...)
}

// WithState creates a server that hands state to every request.
// Request.State returns S by value: only a pointer (or another reference
// type such as a map or channel) gives every request the same instance.
// A struct value is copied into each request. Mutations through a shared
// pointer must be synchronized inside the state itself.
func WithState[S any](state S, opts ...Option[S]) *Server[S] {
	return newServer(state, opts...)
}
