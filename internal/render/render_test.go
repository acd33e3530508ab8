package render

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/dissectlabs/dissect/internal/graph"
)

func sampleExport(t *testing.T) graph.Export {
	t.Helper()
	spans := []graph.Span{
		{ID: "u", Label: "user_request", Kind: graph.KindUserInput, Start: 0, End: 50},
		{ID: "w", ParentID: "u", Label: "worker_agent", Kind: graph.KindAgent, Start: 50, End: 450},
		{ID: "c", ParentID: "u", Label: "checker_tool", Kind: graph.KindTool, Start: 50, End: 350},
	}
	g, warnings, err := graph.Build(spans)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return graph.NewExport(g, graph.ComputeCriticalPath(g), warnings)
}

func TestMermaid(t *testing.T) {
	out := Mermaid(sampleExport(t))

	if !strings.HasPrefix(out, "```mermaid") {
		t.Error("output is not fenced mermaid markdown")
	}
	if !strings.Contains(out, "flowchart") {
		t.Error("output missing flowchart header")
	}
	for _, label := range []string{"user_request", "worker_agent", "checker_tool"} {
		if !strings.Contains(out, label) {
			t.Errorf("output missing node label %q", label)
		}
	}
	if !strings.Contains(out, "400ms") {
		t.Error("output missing duration annotation")
	}
}

func TestMermaidTruncatesLongLabels(t *testing.T) {
	long := strings.Repeat("x", 80)
	spans := []graph.Span{{ID: "a", Label: long, Start: 0, End: 10}}
	g, _, err := graph.Build(spans)
	if err != nil {
		t.Fatal(err)
	}
	exp := graph.NewExport(g, graph.ComputeCriticalPath(g), nil)

	out := Mermaid(exp)
	if strings.Contains(out, long) {
		t.Error("long label was not truncated")
	}
	if !strings.Contains(out, "...") {
		t.Error("truncated label missing ellipsis")
	}
}

func TestDOT(t *testing.T) {
	out := DOT(sampleExport(t))

	if !strings.HasPrefix(out, "digraph") {
		t.Error("output is not a digraph")
	}
	if !strings.Contains(out, `"u" -> "w"`) || !strings.Contains(out, `"u" -> "c"`) {
		t.Error("output missing edges")
	}
	// Critical nodes and the edge between them are red.
	if !strings.Contains(out, `"u" -> "w" [color="#D32F2F", penwidth=2];`) {
		t.Error("critical edge not highlighted")
	}
	if strings.Contains(out, `"u" -> "c" [color=`) {
		t.Error("non-critical edge should not be highlighted")
	}
}

func TestDOTEscapesLabels(t *testing.T) {
	spans := []graph.Span{{ID: "a", Label: `say "hi"`, Start: 0, End: 10}}
	g, _, err := graph.Build(spans)
	if err != nil {
		t.Fatal(err)
	}
	exp := graph.NewExport(g, graph.ComputeCriticalPath(g), nil)

	out := DOT(exp)
	if !strings.Contains(out, `say \"hi\"`) {
		t.Errorf("label not escaped:\n%s", out)
	}
}

func TestHTML(t *testing.T) {
	exp := sampleExport(t)
	exp.Warnings = []string{"something degraded"}

	out, err := HTML(exp, "run.json")
	if err != nil {
		t.Fatalf("HTML() error = %v", err)
	}

	for _, want := range []string{
		"<!DOCTYPE html>",
		"Dissect Orchestration Report",
		"run.json",
		"user_request",
		"worker_agent",
		"const graphData =",
		"something degraded",
		"450",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestHeatColor(t *testing.T) {
	tests := []struct {
		heat float64
		want string
	}{
		{0, "#FFEBEE"},
		{1, "#FF4B36"},
		{-5, "#FFEBEE"},
		{5, "#FF4B36"},
	}
	for _, tt := range tests {
		if got := heatColor(tt.heat); got != tt.want {
			t.Errorf("heatColor(%v) = %q, want %q", tt.heat, got, tt.want)
		}
	}
}

func TestJSON(t *testing.T) {
	exp := sampleExport(t)

	out, err := JSON(exp)
	if err != nil {
		t.Fatalf("JSON() error = %v", err)
	}

	var decoded graph.Export
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded.Nodes) != 3 || len(decoded.Edges) != 2 {
		t.Errorf("decoded %d nodes, %d edges, want 3, 2", len(decoded.Nodes), len(decoded.Edges))
	}
}
