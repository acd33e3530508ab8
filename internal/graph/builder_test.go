package graph

import (
	"errors"
	"strings"
	"testing"
)

func TestBuildEmptyTrace(t *testing.T) {
	_, _, err := Build(nil)

	var emptyErr *EmptyTraceError
	if !errors.As(err, &emptyErr) {
		t.Fatalf("Build(nil) error = %v, want EmptyTraceError", err)
	}
}

func TestBuildSimpleTree(t *testing.T) {
	spans := []Span{
		{ID: "a", Label: "root", Kind: KindAgent, Start: 0, End: 100},
		{ID: "b", ParentID: "a", Label: "child", Kind: KindTool, Start: 10, End: 50},
		{ID: "c", ParentID: "a", Label: "child2", Kind: KindLLMCall, Start: 50, End: 90},
	}

	g, warnings, err := Build(spans)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("Build() warnings = %v, want none", warnings)
	}
	if g.NodeCount() != 3 {
		t.Errorf("NodeCount() = %d, want 3", g.NodeCount())
	}
	if g.EdgeCount() != 2 {
		t.Errorf("EdgeCount() = %d, want 2", g.EdgeCount())
	}

	roots := g.Roots()
	if len(roots) != 1 || roots[0].ID != "a" {
		t.Errorf("Roots() = %v, want [a]", roots)
	}

	children := g.Children("a")
	if len(children) != 2 || children[0].ID != "b" || children[1].ID != "c" {
		t.Errorf("Children(a) = %v, want [b c]", children)
	}
}

func TestBuildDuplicateID(t *testing.T) {
	spans := []Span{
		{ID: "a", Label: "first", Start: 0, End: 10},
		{ID: "b", Label: "other", Start: 0, End: 10},
		{ID: "a", Label: "second", Start: 0, End: 20},
	}

	g, warnings, err := Build(spans)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if g.NodeCount() != 2 {
		t.Errorf("NodeCount() = %d, want 2", g.NodeCount())
	}

	// Later record wins, but the first insertion position is kept.
	node, ok := g.Node("a")
	if !ok || node.Label != "second" {
		t.Errorf("Node(a).Label = %q, want %q", node.Label, "second")
	}
	nodes := g.Nodes()
	if nodes[0].ID != "a" || nodes[1].ID != "b" {
		t.Errorf("node order = [%s %s], want [a b]", nodes[0].ID, nodes[1].ID)
	}

	if !hasWarning(warnings, `duplicate span id "a"`) {
		t.Errorf("warnings = %v, want duplicate id warning", warnings)
	}
}

func TestBuildOrphanParent(t *testing.T) {
	spans := []Span{
		{ID: "a", Label: "root", Start: 0, End: 10},
		{ID: "b", ParentID: "ghost", Label: "orphan", Start: 0, End: 10},
	}

	g, warnings, err := Build(spans)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if g.EdgeCount() != 0 {
		t.Errorf("EdgeCount() = %d, want 0", g.EdgeCount())
	}
	roots := g.Roots()
	if len(roots) != 2 {
		t.Errorf("Roots() = %d nodes, want 2", len(roots))
	}
	if !hasWarning(warnings, `references unknown parent "ghost"`) {
		t.Errorf("warnings = %v, want orphan warning", warnings)
	}
}

func TestBuildDuplicateEdge(t *testing.T) {
	spans := []Span{
		{ID: "a", Label: "root", Start: 0, End: 10},
		{ID: "b", ParentID: "a", Label: "child", Start: 0, End: 10},
		{ID: "b", ParentID: "a", Label: "child again", Start: 0, End: 10},
	}

	g, warnings, err := Build(spans)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount() = %d, want 1", g.EdgeCount())
	}
	if !hasWarning(warnings, "duplicate edge a -> b dropped") {
		t.Errorf("warnings = %v, want duplicate edge warning", warnings)
	}
}

func TestBuildCycleBroken(t *testing.T) {
	// a -> b accepted first, so b -> a must be dropped.
	spans := []Span{
		{ID: "b", ParentID: "a", Label: "b", Start: 0, End: 10},
		{ID: "a", ParentID: "b", Label: "a", Start: 0, End: 10},
	}

	g, warnings, err := Build(spans)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if g.EdgeCount() != 1 {
		t.Fatalf("EdgeCount() = %d, want 1", g.EdgeCount())
	}
	edge := g.Edges()[0]
	if edge.Source != "a" || edge.Target != "b" {
		t.Errorf("kept edge = %s -> %s, want a -> b", edge.Source, edge.Target)
	}
	if !hasWarning(warnings, "would close a cycle, dropped") {
		t.Errorf("warnings = %v, want cycle warning", warnings)
	}
}

func TestBuildSelfEdge(t *testing.T) {
	spans := []Span{
		{ID: "a", ParentID: "a", Label: "self", Start: 0, End: 10},
	}

	g, warnings, err := Build(spans)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if g.EdgeCount() != 0 {
		t.Errorf("EdgeCount() = %d, want 0", g.EdgeCount())
	}
	if !hasWarning(warnings, "would close a cycle, dropped") {
		t.Errorf("warnings = %v, want cycle warning", warnings)
	}
}

func TestBuildInvertedTimestamps(t *testing.T) {
	spans := []Span{
		{ID: "a", Label: "backwards", Start: 100, End: 40},
	}

	g, warnings, err := Build(spans)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	node, _ := g.Node("a")
	if node.Duration() != 0 {
		t.Errorf("Duration() = %v, want 0", node.Duration())
	}
	if !hasWarning(warnings, "duration clamped to 0") {
		t.Errorf("warnings = %v, want clamp warning", warnings)
	}
}

func hasWarning(warnings []string, substr string) bool {
	for _, w := range warnings {
		if strings.Contains(w, substr) {
			return true
		}
	}
	return false
}
