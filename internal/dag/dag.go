package dag

import (
	"fmt"
	"sort"
)

// New creates and returns an initialized, empty Graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]*node),
		edges: make(EdgeSet),
	}
}

// ensure returns the node for id, creating an undeclared one if needed.
// Callers must hold the write lock.
func (g *Graph) ensure(id string) *node {
	n, ok := g.nodes[id]
	if !ok {
		n = &node{
			id:         id,
			deps:       make(map[string]*node),
			dependents: make(map[string]*node),
		}
		g.nodes[id] = n
	}
	return n
}

// AddNode declares a node with the given ID. Declaring the same ID twice is
// a no-op.
func (g *Graph) AddNode(id string) {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	g.ensure(id).declared = true
}

// AddEdge creates a directed edge from the `fromID` node to the `toID` node.
// This signifies that `toID` has a dependency on `fromID`. Endpoints that were
// never declared are tracked so traversals still cross them, but they are not
// reported by Full. Self-referencing edges are rejected.
func (g *Graph) AddEdge(fromID, toID string) error {
	if fromID == toID {
		return fmt.Errorf("self-referential edge not allowed: %s -> %s", fromID, fromID)
	}

	g.mutex.Lock()
	defer g.mutex.Unlock()

	fromNode := g.ensure(fromID)
	toNode := g.ensure(toID)

	toNode.deps[fromID] = fromNode
	fromNode.dependents[toID] = toNode
	g.edges.Add(Edge{From: fromID, To: toID})

	return nil
}

// Has reports whether id was declared with AddNode.
func (g *Graph) Has(id string) bool {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	n, ok := g.nodes[id]
	return ok && n.declared
}

// Dependencies returns the sorted IDs of the nodes that the given node depends on.
func (g *Graph) Dependencies(id string) ([]string, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node not found: %s", id)
	}
	return sortedKeys(n.deps), nil
}

// Dependents returns the sorted IDs of the nodes that depend on the given node.
func (g *Graph) Dependents(id string) ([]string, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node not found: %s", id)
	}
	return sortedKeys(n.dependents), nil
}

// DetectCycles checks the graph for any cycles. It returns a non-nil error
// if a cycle is found, indicating the first node involved in the detected cycle.
func (g *Graph) DetectCycles() error {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	// permanent: fully visited and not part of a cycle.
	// temporary: on the current recursion stack.
	permanent := make(map[string]bool)
	temporary := make(map[string]bool)

	var visit func(n *node) error
	visit = func(n *node) error {
		if permanent[n.id] {
			return nil
		}
		if temporary[n.id] {
			return fmt.Errorf("cycle detected involving node '%s'", n.id)
		}

		temporary[n.id] = true
		for _, id := range sortedKeys(n.dependents) {
			if err := visit(n.dependents[id]); err != nil {
				return err
			}
		}
		delete(temporary, n.id)
		permanent[n.id] = true

		return nil
	}

	for _, id := range sortedKeys(g.nodes) {
		if err := visit(g.nodes[id]); err != nil {
			return err
		}
	}

	return nil
}

func sortedKeys(m map[string]*node) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
