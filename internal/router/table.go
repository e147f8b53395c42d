package router

// Param is a single parameter binding extracted during a match.
type Param struct {
	Name  string
	Value string
}

// Params is the ordered list of bindings accumulated along the matched
// path. The slice form keeps the hot path allocation-light; routes
// rarely carry more than a handful of parameters.
type Params []Param

// Get returns the value bound under name.
func (p Params) Get(name string) (string, bool) {
	for i := range p {
		if p[i].Name == name {
			return p[i].Value, true
		}
	}
	return "", false
}

// Map copies the bindings into a map for callers that prefer one.
func (p Params) Map() map[string]string {
	if len(p) == 0 {
		return nil
	}
	m := make(map[string]string, len(p))
	for i := range p {
		m[p[i].Name] = p[i].Value
	}
	return m
}

// MatchResult is the outcome of a successful match.
type MatchResult struct {
	// Value is the payload supplied at registration. Its meaning is
	// defined entirely by the caller.
	Value any

	// Pattern is the registered pattern string that matched.
	Pattern string

	// Params holds the parameter bindings, in path order.
	Params Params
}

// registration pairs a pattern with its caller-supplied payload.
type registration struct {
	pattern string
	value   any
}

// Builder accumulates routes and produces an immutable Table. The
// build phase is single-threaded and exclusive; a Builder must not be
// shared across goroutines.
type Builder struct {
	trie   *trie
	routes []registration
	frozen bool
}

// NewBuilder creates an empty route table builder.
func NewBuilder() *Builder {
	return &Builder{trie: newTrie()}
}

// Register parses the pattern and inserts it with the given payload.
// Errors are fatal to this single registration only: the builder
// remains usable and previously registered routes are unaffected.
// After Finalize, Register returns ErrTableFrozen.
func (b *Builder) Register(pattern string, value any) error {
	if b.frozen {
		return ErrTableFrozen
	}

	p, err := ParsePattern(pattern)
	if err != nil {
		return err
	}

	id := int32(len(b.routes))
	if err := b.trie.insert(p, id, b.patternOf); err != nil {
		return err
	}

	b.routes = append(b.routes, registration{pattern: pattern, value: value})
	return nil
}

// Len returns the number of registered routes.
func (b *Builder) Len() int {
	return len(b.routes)
}

// Finalize freezes the builder and returns the finished table.
// Subsequent Register calls are rejected.
func (b *Builder) Finalize() *Table {
	b.frozen = true
	return &Table{trie: b.trie, routes: b.routes}
}

// patternOf resolves a route index to its pattern string for conflict
// messages.
func (b *Builder) patternOf(id int32) string {
	return b.routes[id].pattern
}

// Table is the frozen route table. It is immutable after Finalize and
// safe for unbounded concurrent Match calls without locking: lookup is
// a pure read traversal whose only mutable state is stack-local.
type Table struct {
	trie   *trie
	routes []registration
}

// Match finds the route for the given request path and extracts its
// parameter bindings. The caller is responsible for supplying a
// normalized path: no query string, and percent-decoding either already
// applied or deliberately deferred.
//
// Any string is a legal input; paths that do not start with "/" (the
// empty string included) simply do not match. Match never returns an
// error: ok=false means no registered route corresponds to the path.
func (t *Table) Match(path string) (MatchResult, bool) {
	if len(path) == 0 || path[0] != '/' {
		return MatchResult{}, false
	}

	var params Params
	id, ok := t.trie.lookup(splitPath(path), &params)
	if !ok {
		return MatchResult{}, false
	}

	r := t.routes[id]
	return MatchResult{Value: r.value, Pattern: r.pattern, Params: params}, true
}

// Len returns the number of routes in the table.
func (t *Table) Len() int {
	return len(t.routes)
}

// Patterns returns the registered patterns in registration order.
func (t *Table) Patterns() []string {
	out := make([]string, len(t.routes))
	for i, r := range t.routes {
		out[i] = r.pattern
	}
	return out
}
