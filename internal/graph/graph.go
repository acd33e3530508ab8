// Package graph holds the canonical call-graph model that every trace
// format is normalized into, plus the builder and latency analysis that
// operate on it.
package graph

// Kind categorizes what a node represents in an orchestration run.
type Kind string

const (
	// KindAgent represents an agent turn or chain execution
	KindAgent Kind = "agent"
	// KindTool represents a tool invocation
	KindTool Kind = "tool"
	// KindLLMCall represents an LLM API call
	KindLLMCall Kind = "llm_call"
	// KindUserInput represents user-provided input
	KindUserInput Kind = "user_input"
	// KindSystem represents framework-internal work (workflow steps, routing)
	KindSystem Kind = "system"
	// KindUnknown is the fallback when no hint resolves
	KindUnknown Kind = "unknown"
)

// ParseKind maps a string to a Kind, falling back to KindUnknown.
func ParseKind(s string) Kind {
	switch Kind(s) {
	case KindAgent, KindTool, KindLLMCall, KindUserInput, KindSystem:
		return Kind(s)
	default:
		return KindUnknown
	}
}

// Span is the format-neutral record produced by extractors and consumed
// by the builder. Timestamps are milliseconds; a zero Start and End means
// the source carried no timing data.
type Span struct {
	ID         string
	ParentID   string
	Label      string
	Kind       Kind
	Start      float64
	End        float64
	Attributes map[string]any
}

// Node is one unit of work in the graph. Nodes are immutable once the
// builder returns; Attributes is an opaque payload passed through to
// renderers and never inspected by graph algorithms.
type Node struct {
	ID         string
	Label      string
	Kind       Kind
	Start      float64
	End        float64
	Attributes map[string]any
}

// Duration returns the node's elapsed time in milliseconds, clamped to zero.
func (n Node) Duration() float64 {
	if n.End <= n.Start {
		return 0
	}
	return n.End - n.Start
}

// Edge is a directed relation: Target was caused by / nested within Source.
type Edge struct {
	Source string
	Target string
}

// Graph is the finalized orchestration graph. Node iteration follows
// insertion order and edge iteration follows discovery order, so exports
// and renderings are deterministic.
type Graph struct {
	order []string
	nodes map[string]Node
	edges []Edge
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	return len(g.order)
}

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

// Node returns the node with the given id.
func (g *Graph) Node(id string) (Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []Node {
	out := make([]Node, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.nodes[id])
	}
	return out
}

// Edges returns all edges in discovery order.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// Children returns the nodes this node connects to, in edge-discovery order.
func (g *Graph) Children(id string) []Node {
	var out []Node
	for _, e := range g.edges {
		if e.Source == id {
			out = append(out, g.nodes[e.Target])
		}
	}
	return out
}

// Parents returns the nodes connecting to this node, in edge-discovery order.
func (g *Graph) Parents(id string) []Node {
	var out []Node
	for _, e := range g.edges {
		if e.Target == id {
			out = append(out, g.nodes[e.Source])
		}
	}
	return out
}

// Roots returns the trace entry points: nodes with no incoming edge,
// in insertion order.
func (g *Graph) Roots() []Node {
	hasParent := make(map[string]bool, len(g.edges))
	for _, e := range g.edges {
		hasParent[e.Target] = true
	}
	var out []Node
	for _, id := range g.order {
		if !hasParent[id] {
			out = append(out, g.nodes[id])
		}
	}
	return out
}

// Leaves returns nodes with no outgoing edge, in insertion order.
func (g *Graph) Leaves() []Node {
	hasChild := make(map[string]bool, len(g.edges))
	for _, e := range g.edges {
		hasChild[e.Source] = true
	}
	var out []Node
	for _, id := range g.order {
		if !hasChild[id] {
			out = append(out, g.nodes[id])
		}
	}
	return out
}
