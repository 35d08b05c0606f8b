package dag

import (
	"sort"
	"sync"
)

// Graph is a collection of nodes and their dependencies.
// All operations on the graph are concurrency-safe.
type Graph struct {
	// mutex protects the nodes map during concurrent access.
	mutex sync.RWMutex
	// nodes stores all nodes in the graph, keyed by their unique ID.
	nodes map[string]*node
	// edges mirrors the links between nodes as a flat set.
	edges EdgeSet
}

// node represents a single vertex in the graph. It is un-exported to
// enforce interaction with the graph via the public API (using string IDs),
// not by direct struct manipulation.
type node struct {
	// id is the unique identifier for the node.
	id string
	// declared is false for nodes that only appear as an edge endpoint.
	declared bool
	// deps holds the set of nodes that this node depends on (predecessors).
	deps map[string]*node
	// dependents holds the set of nodes that depend on this node (successors).
	dependents map[string]*node
}

// Edge is a directed dependency: To consumes data produced by From.
type Edge struct {
	From string
	To   string
}

// NodeSet is a set of node IDs.
type NodeSet map[string]struct{}

// EdgeSet is a set of edges. Parallel dependencies collapse to one entry.
type EdgeSet map[Edge]struct{}

// NewNodeSet builds a set from the given IDs.
func NewNodeSet(ids ...string) NodeSet {
	s := make(NodeSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Add inserts id into the set.
func (s NodeSet) Add(id string) {
	s[id] = struct{}{}
}

// Has reports whether id is in the set.
func (s NodeSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Union adds every member of other to s.
func (s NodeSet) Union(other NodeSet) {
	for id := range other {
		s[id] = struct{}{}
	}
}

// Sorted returns the members in lexicographic order.
func (s NodeSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Add inserts e into the set.
func (s EdgeSet) Add(e Edge) {
	s[e] = struct{}{}
}

// Has reports whether e is in the set.
func (s EdgeSet) Has(e Edge) bool {
	_, ok := s[e]
	return ok
}

// Union adds every member of other to s.
func (s EdgeSet) Union(other EdgeSet) {
	for e := range other {
		s[e] = struct{}{}
	}
}

// Clone returns an independent copy of the set.
func (s EdgeSet) Clone() EdgeSet {
	out := make(EdgeSet, len(s))
	out.Union(s)
	return out
}

// Sorted returns the edges ordered by (From, To).
func (s EdgeSet) Sorted() []Edge {
	out := make([]Edge, 0, len(s))
	for e := range s {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}
		return out[i].To < out[j].To
	})
	return out
}
