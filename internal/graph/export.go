package graph

// The export contract is the stable, data-only schema handed to
// renderers (Mermaid, DOT, HTML, JSON) and external tools. Nothing here
// references the Graph's internals, so a serialized export round-trips
// to an equivalent graph.

// ExportNode is one node of the export contract. Heat is the node's
// duration min-max normalized across the graph (0..1), used by the
// latency heat map.
type ExportNode struct {
	ID             string         `json:"id"`
	Label          string         `json:"label"`
	Kind           Kind           `json:"kind"`
	Start          float64        `json:"start_time"`
	End            float64        `json:"end_time"`
	Duration       float64        `json:"duration"`
	Heat           float64        `json:"heat_score"`
	OnCriticalPath bool           `json:"on_critical_path"`
	Attributes     map[string]any `json:"attributes,omitempty"`
}

// ExportEdge is one directed edge of the export contract.
type ExportEdge struct {
	Source string `json:"source_id"`
	Target string `json:"target_id"`
}

// ExportCriticalPath carries the derived critical path.
type ExportCriticalPath struct {
	NodeIDs       []string `json:"node_ids"`
	TotalDuration float64  `json:"total_duration"`
}

// Export is the complete renderer-facing view of one analyzed trace.
// Node order is insertion order, edge order is discovery order, and
// warnings keep their accumulation order.
type Export struct {
	Nodes        []ExportNode       `json:"nodes"`
	Edges        []ExportEdge       `json:"edges"`
	CriticalPath ExportCriticalPath `json:"critical_path"`
	Warnings     []string           `json:"warnings"`
}

// NewExport flattens a graph, its critical path, and accumulated warnings
// into the export contract.
func NewExport(g *Graph, path CriticalPath, warnings []string) Export {
	nodes := g.Nodes()

	minDur, maxDur := 0.0, 0.0
	for i, n := range nodes {
		d := n.Duration()
		if i == 0 || d < minDur {
			minDur = d
		}
		if d > maxDur {
			maxDur = d
		}
	}
	durRange := maxDur - minDur

	onPath := make(map[string]bool, len(path.NodeIDs))
	for _, id := range path.NodeIDs {
		onPath[id] = true
	}

	exp := Export{
		Nodes: make([]ExportNode, 0, len(nodes)),
		Edges: make([]ExportEdge, 0, g.EdgeCount()),
		CriticalPath: ExportCriticalPath{
			NodeIDs:       append([]string(nil), path.NodeIDs...),
			TotalDuration: path.TotalDuration,
		},
		Warnings: append([]string(nil), warnings...),
	}

	for _, n := range nodes {
		heat := 0.0
		if durRange > 0 {
			heat = (n.Duration() - minDur) / durRange
		}
		exp.Nodes = append(exp.Nodes, ExportNode{
			ID:             n.ID,
			Label:          n.Label,
			Kind:           n.Kind,
			Start:          n.Start,
			End:            n.End,
			Duration:       n.Duration(),
			Heat:           heat,
			OnCriticalPath: onPath[n.ID],
			Attributes:     n.Attributes,
		})
	}
	for _, e := range g.Edges() {
		exp.Edges = append(exp.Edges, ExportEdge{Source: e.Source, Target: e.Target})
	}
	return exp
}

// FromExport reconstructs a graph, critical path, and warnings from a
// previously serialized export, preserving node and edge ordering.
func FromExport(exp Export) (*Graph, CriticalPath, []string) {
	g := &Graph{
		order: make([]string, 0, len(exp.Nodes)),
		nodes: make(map[string]Node, len(exp.Nodes)),
	}
	for _, n := range exp.Nodes {
		if _, exists := g.nodes[n.ID]; !exists {
			g.order = append(g.order, n.ID)
		}
		g.nodes[n.ID] = Node{
			ID:         n.ID,
			Label:      n.Label,
			Kind:       ParseKind(string(n.Kind)),
			Start:      n.Start,
			End:        n.End,
			Attributes: n.Attributes,
		}
	}
	for _, e := range exp.Edges {
		_, srcOK := g.nodes[e.Source]
		_, tgtOK := g.nodes[e.Target]
		if srcOK && tgtOK {
			g.edges = append(g.edges, Edge{Source: e.Source, Target: e.Target})
		}
	}
	path := CriticalPath{
		NodeIDs:       append([]string(nil), exp.CriticalPath.NodeIDs...),
		TotalDuration: exp.CriticalPath.TotalDuration,
	}
	return g, path, append([]string(nil), exp.Warnings...)
}
