package render

import (
	"fmt"
	"strings"

	"github.com/dissectlabs/dissect/internal/graph"
)

var dotFillColors = map[graph.Kind]string{
	graph.KindAgent:     "#E3F2FD",
	graph.KindTool:      "#FFF3E0",
	graph.KindLLMCall:   "#F3E5F5",
	graph.KindUserInput: "#E8F5E9",
	graph.KindSystem:    "#FCE4EC",
	graph.KindUnknown:   "#F5F5F5",
}

// DOT renders the export as a Graphviz digraph. Critical-path nodes and
// the edges between consecutive critical-path nodes are drawn in red.
func DOT(exp graph.Export) string {
	var b strings.Builder
	b.WriteString("digraph \"OrchestrationGraph\" {\n")
	b.WriteString("    rankdir=TB;\n")
	b.WriteString("    node [shape=box, style=\"rounded,filled\", fontname=\"Arial\"];\n")
	b.WriteString("    edge [fontname=\"Arial\", fontsize=10];\n\n")

	for _, n := range exp.Nodes {
		fill, ok := dotFillColors[n.Kind]
		if !ok {
			fill = dotFillColors[graph.KindUnknown]
		}
		label := escapeDot(n.Label)
		if n.Duration > 0 {
			label = fmt.Sprintf("%s\\n%.0fms", label, n.Duration)
		}
		extra := ""
		if n.OnCriticalPath {
			extra = ", color=\"#D32F2F\", penwidth=2"
		}
		fmt.Fprintf(&b, "    %q [label=\"%s\", fillcolor=%q%s];\n", n.ID, label, fill, extra)
	}
	b.WriteString("\n")

	critical := make(map[[2]string]bool)
	for i := 0; i+1 < len(exp.CriticalPath.NodeIDs); i++ {
		critical[[2]string{exp.CriticalPath.NodeIDs[i], exp.CriticalPath.NodeIDs[i+1]}] = true
	}

	for _, e := range exp.Edges {
		if critical[[2]string{e.Source, e.Target}] {
			fmt.Fprintf(&b, "    %q -> %q [color=\"#D32F2F\", penwidth=2];\n", e.Source, e.Target)
		} else {
			fmt.Fprintf(&b, "    %q -> %q;\n", e.Source, e.Target)
		}
	}

	b.WriteString("}\n")
	return b.String()
}

func escapeDot(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	return strings.ReplaceAll(s, "\"", "\\\"")
}
