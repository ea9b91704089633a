package router

// Param is a single path parameter bound by a matched pattern.
type Param struct {
	Key   string
	Value string
}

// Params holds path parameters in pattern order, left to right.
// Keys are unique within one match.
type Params []Param

// Get returns the value bound to key.
func (ps Params) Get(key string) (string, bool) {
	for _, p := range ps {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// Map copies the parameters into a map. Returns an empty, non-nil map when
// no parameters were bound.
func (ps Params) Map() map[string]string {
	m := make(map[string]string, len(ps))
	for _, p := range ps {
		m[p.Key] = p.Value
	}
	return m
}
