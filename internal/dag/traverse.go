package dag

// Full returns every declared node and every edge of the graph.
func (g *Graph) Full() (NodeSet, EdgeSet) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	nodes := make(NodeSet, len(g.nodes))
	for id, n := range g.nodes {
		if n.declared {
			nodes.Add(id)
		}
	}
	return nodes, g.edges.Clone()
}

// Ancestors walks the graph backwards from id. The result always contains id
// itself, together with every edge crossed on the way.
func (g *Graph) Ancestors(id string) (NodeSet, EdgeSet) {
	return g.walk(id, func(n *node) map[string]*node { return n.deps }, func(cur, next string) Edge {
		return Edge{From: next, To: cur}
	})
}

// Descendants walks the graph forwards from id. The result always contains
// id itself, together with every edge crossed on the way.
func (g *Graph) Descendants(id string) (NodeSet, EdgeSet) {
	return g.walk(id, func(n *node) map[string]*node { return n.dependents }, func(cur, next string) Edge {
		return Edge{From: cur, To: next}
	})
}

// Subgraph starts from {id} with no edges and adds the ancestors when
// upstream is set and the descendants when downstream is set. The flags are
// taken literally: with both false only id is returned.
func (g *Graph) Subgraph(id string, upstream, downstream bool) (NodeSet, EdgeSet) {
	nodes := NewNodeSet(id)
	edges := make(EdgeSet)

	if upstream {
		upNodes, upEdges := g.Ancestors(id)
		nodes.Union(upNodes)
		edges.Union(upEdges)
	}
	if downstream {
		downNodes, downEdges := g.Descendants(id)
		nodes.Union(downNodes)
		edges.Union(downEdges)
	}
	return nodes, edges
}

// walk is a breadth-first traversal over the neighbours returned by next.
func (g *Graph) walk(start string, next func(*node) map[string]*node, edge func(cur, nxt string) Edge) (NodeSet, EdgeSet) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	visited := NewNodeSet(start)
	edges := make(EdgeSet)
	queue := []string{start}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		n, ok := g.nodes[cur]
		if !ok {
			continue
		}
		for id := range next(n) {
			edges.Add(edge(cur, id))
			if !visited.Has(id) {
				visited.Add(id)
				queue = append(queue, id)
			}
		}
	}
	return visited, edges
}
