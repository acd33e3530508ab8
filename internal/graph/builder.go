package graph

import (
	"fmt"
)

// EmptyTraceError is returned when extraction yields no usable spans.
// It is the only fatal build condition; every other anomaly degrades to
// a warning so that a partial trace still renders.
type EmptyTraceError struct {
	SpanCount int
}

func (e *EmptyTraceError) Error() string {
	return fmt.Sprintf("trace contains no usable spans (span count: %d)", e.SpanCount)
}

// Build constructs a Graph from canonical spans. It returns the finalized
// graph together with the ordered list of warnings describing every
// degraded condition: id collisions, inverted timestamps, orphaned
// parents, duplicate edges, and cycle breaks.
func Build(spans []Span) (*Graph, []string, error) {
	if len(spans) == 0 {
		return nil, nil, &EmptyTraceError{SpanCount: 0}
	}

	var warnings []string

	order := make([]string, 0, len(spans))
	nodes := make(map[string]Node, len(spans))
	for _, s := range spans {
		n := Node{
			ID:         s.ID,
			Label:      s.Label,
			Kind:       s.Kind,
			Start:      s.Start,
			End:        s.End,
			Attributes: s.Attributes,
		}
		if n.End < n.Start {
			warnings = append(warnings, fmt.Sprintf("span %q has end time before start time, duration clamped to 0", n.ID))
			n.End = n.Start
		}
		if _, exists := nodes[n.ID]; exists {
			warnings = append(warnings, fmt.Sprintf("duplicate span id %q, later record wins", n.ID))
		} else {
			order = append(order, n.ID)
		}
		nodes[n.ID] = n
	}

	// Edges in span discovery order. An edge is dropped when its parent is
	// unknown (span promoted to root), when it repeats an existing pair, or
	// when it would close a cycle.
	seen := make(map[Edge]bool)
	adjacency := make(map[string][]string)
	var edges []Edge
	for _, s := range spans {
		if s.ParentID == "" {
			continue
		}
		if _, known := nodes[s.ParentID]; !known {
			warnings = append(warnings, fmt.Sprintf("span %q references unknown parent %q, orphaned span treated as root", s.ID, s.ParentID))
			continue
		}
		e := Edge{Source: s.ParentID, Target: s.ID}
		if seen[e] {
			warnings = append(warnings, fmt.Sprintf("duplicate edge %s -> %s dropped", e.Source, e.Target))
			continue
		}
		seen[e] = true
		if reaches(adjacency, e.Target, e.Source) {
			warnings = append(warnings, fmt.Sprintf("edge %s -> %s would close a cycle, dropped", e.Source, e.Target))
			continue
		}
		edges = append(edges, e)
		adjacency[e.Source] = append(adjacency[e.Source], e.Target)
	}

	return &Graph{order: order, nodes: nodes, edges: edges}, warnings, nil
}

// reaches reports whether `to` is reachable from `from` over the edges
// accepted so far. Checking this before accepting each edge keeps the
// graph acyclic and drops exactly the edge that would close a cycle, in
// edge-discovery order.
func reaches(adjacency map[string][]string, from, to string) bool {
	if from == to {
		return true
	}
	visited := map[string]bool{from: true}
	stack := []string{from}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, next := range adjacency[cur] {
			if next == to {
				return true
			}
			if !visited[next] {
				visited[next] = true
				stack = append(stack, next)
			}
		}
	}
	return false
}
