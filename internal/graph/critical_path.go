package graph

// CriticalPath is the root-to-leaf path with the largest cumulative node
// duration. It is derived from a Graph and never stored on it.
type CriticalPath struct {
	NodeIDs       []string
	TotalDuration float64
}

// Contains reports whether the node id lies on the path.
func (p CriticalPath) Contains(id string) bool {
	for _, nid := range p.NodeIDs {
		if nid == id {
			return true
		}
	}
	return false
}

// ComputeCriticalPath finds the maximum-duration root-to-leaf path.
//
// Each node contributes its own duration; for every node the longest
// distance from any root is max over parents plus the node's duration.
// Ties between parents resolve to the parent whose edge was discovered
// first, and ties between endpoints resolve to node insertion order, so
// repeated runs over the same graph yield the same path.
func ComputeCriticalPath(g *Graph) CriticalPath {
	if g == nil || g.NodeCount() == 0 {
		return CriticalPath{}
	}

	// Incoming edge sources per node, in edge-discovery order.
	incoming := make(map[string][]string)
	for _, e := range g.edges {
		incoming[e.Target] = append(incoming[e.Target], e.Source)
	}

	dist := make(map[string]float64, len(g.order))
	prev := make(map[string]string, len(g.order))
	for _, id := range topoOrder(g) {
		node := g.nodes[id]
		var acc float64
		var parent string
		if sources := incoming[id]; len(sources) > 0 {
			parent = sources[0]
			acc = dist[sources[0]]
			for _, src := range sources[1:] {
				if dist[src] > acc {
					acc = dist[src]
					parent = src
				}
			}
		}
		dist[id] = acc + node.Duration()
		if parent != "" {
			prev[id] = parent
		}
	}

	// Endpoint: global maximum distance, first in insertion order on ties.
	endpoint := g.order[0]
	for _, id := range g.order[1:] {
		if dist[id] > dist[endpoint] {
			endpoint = id
		}
	}

	var path []string
	for id := endpoint; ; {
		path = append([]string{id}, path...)
		parent, ok := prev[id]
		if !ok {
			break
		}
		id = parent
	}

	return CriticalPath{NodeIDs: path, TotalDuration: dist[endpoint]}
}

// topoOrder returns a deterministic topological ordering (Kahn's
// algorithm). The builder guarantees acyclicity, so every node appears.
func topoOrder(g *Graph) []string {
	indegree := make(map[string]int, len(g.order))
	for _, e := range g.edges {
		indegree[e.Target]++
	}

	queue := make([]string, 0, len(g.order))
	for _, id := range g.order {
		if indegree[id] == 0 {
			queue = append(queue, id)
		}
	}

	order := make([]string, 0, len(g.order))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		order = append(order, id)
		for _, e := range g.edges {
			if e.Source != id {
				continue
			}
			indegree[e.Target]--
			if indegree[e.Target] == 0 {
				queue = append(queue, e.Target)
			}
		}
	}
	return order
}
