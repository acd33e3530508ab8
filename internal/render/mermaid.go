// Package render turns the export contract into renderer outputs:
// Mermaid flowcharts, Graphviz DOT, self-contained HTML reports, and
// indented JSON.
package render

import (
	"fmt"

	"github.com/TyphonHill/go-mermaid/diagrams/flowchart"

	"github.com/dissectlabs/dissect/internal/graph"
)

// Mermaid renders the export as a Mermaid flowchart wrapped in a
// markdown fence. Node shapes and colors follow the node kind, and
// critical-path nodes get a heavier stroke.
func Mermaid(exp graph.Export) string {
	diagram := flowchart.NewFlowchart()
	diagram.EnableMarkdownFence()
	diagram.SetDirection(flowchart.FlowchartDirectionTopDown)
	diagram.Config.SetHtmlLabels(true)

	nodes := make(map[string]*flowchart.Node, len(exp.Nodes))
	for _, n := range exp.Nodes {
		node := diagram.AddNode(mermaidLabel(n))
		applyShape(node, n.Kind)
		if style := kindStyle(n.Kind, n.OnCriticalPath); style != nil {
			node.SetStyle(style)
		}
		nodes[n.ID] = node
	}

	for _, e := range exp.Edges {
		src, srcOK := nodes[e.Source]
		tgt, tgtOK := nodes[e.Target]
		if srcOK && tgtOK {
			diagram.AddLink(src, tgt)
		}
	}

	return diagram.String()
}

func mermaidLabel(n graph.ExportNode) string {
	label := n.Label
	if len(label) > 60 {
		label = label[:57] + "..."
	}
	if n.Duration > 0 {
		return fmt.Sprintf("%s<br/>%.0fms", label, n.Duration)
	}
	return label
}

func applyShape(node *flowchart.Node, kind graph.Kind) {
	switch kind {
	case graph.KindAgent:
		node.SetShape(flowchart.NodeShapeTerminal)
	case graph.KindTool:
		node.SetShape(flowchart.NodeShapeSubprocess)
	case graph.KindLLMCall:
		node.SetShape(flowchart.NodeShapeDecision)
	case graph.KindUserInput:
		node.SetShape(flowchart.NodeShapeInputOutput)
	case graph.KindSystem:
		node.SetShape(flowchart.NodeShapePrepare)
	default:
		node.SetShape(flowchart.NodeShapeProcess)
	}
}

func kindStyle(kind graph.Kind, onCriticalPath bool) *flowchart.NodeStyle {
	style := flowchart.NewNodeStyle()
	style.StrokeWidth = 1
	if onCriticalPath {
		style.StrokeWidth = 3
	}

	switch kind {
	case graph.KindAgent:
		style.Fill = "#E3F2FD"
		style.Stroke = "#1976D2"
	case graph.KindTool:
		style.Fill = "#FFF3E0"
		style.Stroke = "#F57C00"
	case graph.KindLLMCall:
		style.Fill = "#F3E5F5"
		style.Stroke = "#7B1FA2"
	case graph.KindUserInput:
		style.Fill = "#E8F5E9"
		style.Stroke = "#388E3C"
	case graph.KindSystem:
		style.Fill = "#FCE4EC"
		style.Stroke = "#880E4F"
	default:
		if !onCriticalPath {
			return nil
		}
		style.Fill = "#F5F5F5"
		style.Stroke = "#D32F2F"
	}

	return style
}
