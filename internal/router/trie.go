package router

import "strings"

// none marks an absent child or route slot in the arena.
const none int32 = -1

// node is a single trie node. Nodes live in a flat arena owned by the
// trie and reference each other by index, so the finished structure has
// no pointer cycles and lookups walk plain slice indices.
//
// Within one node a concrete path component is consumed by at most one
// of the exact static match or the parameter edge; lookup tries static
// first, then parameter, then wildcard.
type node struct {
	// static maps a literal path component to a child index.
	static map[string]int32

	// paramChild is the single parameter edge, with the binding name
	// stored on the edge itself.
	paramChild int32
	paramName  string

	// wildcardChild is the single catch-all edge. Wildcard children
	// are always terminal.
	wildcardChild int32
	wildcardName  string

	// route is the index of the route terminating at this node.
	route int32
}

// trie is the arena-backed prefix tree over pattern segments.
type trie struct {
	nodes []node
}

// newTrie creates a trie containing only the root node.
func newTrie() *trie {
	t := &trie{nodes: make([]node, 0, 8)}
	t.newNode()
	return t
}

// newNode appends a fresh node to the arena and returns its index.
func (t *trie) newNode() int32 {
	t.nodes = append(t.nodes, node{
		paramChild:    none,
		wildcardChild: none,
		route:         none,
	})
	return int32(len(t.nodes) - 1)
}

// insert walks the trie from the root, consuming one segment per step
// and creating nodes as needed, then binds the route index at the
// terminal node. existing resolves a route index to its pattern string
// for conflict reporting.
//
// A failed insert may leave freshly created interior nodes behind; they
// carry no route and cannot affect the matching behavior of previously
// inserted routes.
func (t *trie) insert(p Pattern, route int32, existing func(int32) string) error {
	cur := int32(0)

	for _, seg := range p.Segments {
		switch seg.Kind {
		case SegmentStatic:
			child, ok := t.nodes[cur].static[seg.Literal]
			if !ok {
				child = t.newNode()
				if t.nodes[cur].static == nil {
					t.nodes[cur].static = make(map[string]int32)
				}
				t.nodes[cur].static[seg.Literal] = child
			}
			cur = child

		case SegmentParam:
			if t.nodes[cur].paramChild == none {
				child := t.newNode()
				t.nodes[cur].paramChild = child
				t.nodes[cur].paramName = seg.Name
				cur = child
				continue
			}
			// Two structurally identical param edges with different
			// names would silently bind the wrong name for one of the
			// registrations, so the collision is a hard conflict.
			if t.nodes[cur].paramName != seg.Name {
				return &ConflictError{
					Pattern: p.Raw,
					Cause:   ErrParamNameConflict,
				}
			}
			cur = t.nodes[cur].paramChild

		case SegmentWildcard:
			if t.nodes[cur].wildcardChild == none {
				child := t.newNode()
				t.nodes[cur].wildcardChild = child
				t.nodes[cur].wildcardName = seg.Name
				cur = child
				continue
			}
			if t.nodes[cur].wildcardName != seg.Name {
				return &ConflictError{
					Pattern: p.Raw,
					Cause:   ErrWildcardConflict,
				}
			}
			cur = t.nodes[cur].wildcardChild
		}
	}

	if prev := t.nodes[cur].route; prev != none {
		return &ConflictError{
			Pattern:  p.Raw,
			Existing: existing(prev),
			Cause:    ErrDuplicateRoute,
		}
	}

	t.nodes[cur].route = route
	return nil
}

// lookup matches the path components against the trie, appending
// parameter bindings to params as it descends. It returns the matched
// route index, or ok=false when no registered route corresponds to the
// components.
func (t *trie) lookup(comps []string, params *Params) (int32, bool) {
	return t.match(0, comps, params)
}

// match performs the recursive descent from the node at index cur.
//
// Precedence per component is exact static, then parameter, then
// wildcard. A parameter descent that dead-ends deeper in the tree is
// undone (the binding is truncated) before the wildcard at the current
// depth is considered, so a shallower catch-all can still win after a
// failed parameter interpretation.
func (t *trie) match(cur int32, comps []string, params *Params) (int32, bool) {
	n := &t.nodes[cur]

	if len(comps) == 0 {
		if n.route != none {
			return n.route, true
		}
		return none, false
	}

	head := comps[0]

	if child, ok := n.static[head]; ok {
		if route, ok := t.match(child, comps[1:], params); ok {
			return route, true
		}
	}

	if n.paramChild != none && head != "" {
		*params = append(*params, Param{Name: n.paramName, Value: head})
		if route, ok := t.match(n.paramChild, comps[1:], params); ok {
			return route, true
		}
		*params = (*params)[:len(*params)-1]
	}

	if n.wildcardChild != none {
		wc := &t.nodes[n.wildcardChild]
		if wc.route != none {
			*params = append(*params, Param{
				Name:  n.wildcardName,
				Value: strings.Join(comps, "/"),
			})
			return wc.route, true
		}
	}

	return none, false
}
