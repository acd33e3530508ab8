package trace

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/dissectlabs/dissect/internal/graph"
)

const otelFixture = `{
	"spans": [
		{"spanId": "u", "name": "user_request", "startTimeUnixNano": 0, "endTimeUnixNano": 50000000},
		{"spanId": "w", "parentSpanId": "u", "name": "worker_agent", "startTimeUnixNano": 50000000, "endTimeUnixNano": 450000000},
		{"spanId": "c", "parentSpanId": "u", "name": "checker_tool", "startTimeUnixNano": 50000000, "endTimeUnixNano": 350000000}
	]
}`

func TestAnalyzeEndToEnd(t *testing.T) {
	result, err := Analyze(context.Background(), []byte(otelFixture))
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if result.Format != FormatOpenTelemetry {
		t.Errorf("Format = %q, want opentelemetry", result.Format)
	}
	if result.Graph.NodeCount() != 3 || result.Graph.EdgeCount() != 2 {
		t.Errorf("graph = %d nodes, %d edges, want 3, 2", result.Graph.NodeCount(), result.Graph.EdgeCount())
	}

	wantPath := []string{"u", "w"}
	if !reflect.DeepEqual(result.CriticalPath.NodeIDs, wantPath) {
		t.Errorf("CriticalPath = %v, want %v", result.CriticalPath.NodeIDs, wantPath)
	}
	if result.CriticalPath.TotalDuration != 450 {
		t.Errorf("TotalDuration = %v, want 450", result.CriticalPath.TotalDuration)
	}

	kinds := map[string]graph.Kind{}
	for _, n := range result.Export.Nodes {
		kinds[n.ID] = n.Kind
	}
	if kinds["u"] != graph.KindUserInput || kinds["w"] != graph.KindAgent || kinds["c"] != graph.KindTool {
		t.Errorf("kinds = %v", kinds)
	}
}

func TestAnalyzeIdempotent(t *testing.T) {
	first, err := Analyze(context.Background(), []byte(otelFixture))
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	second, err := Analyze(context.Background(), []byte(otelFixture))
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if !reflect.DeepEqual(first.Export, second.Export) {
		t.Error("repeated analysis of the same bytes produced different exports")
	}
}

func TestAnalyzeUnsupportedFormat(t *testing.T) {
	_, err := Analyze(context.Background(), []byte(`{"zebra": 1, "apple": 2}`))

	var unsupported *UnsupportedFormatError
	if !errors.As(err, &unsupported) {
		t.Fatalf("error = %v, want UnsupportedFormatError", err)
	}
	if !reflect.DeepEqual(unsupported.Keys, []string{"apple", "zebra"}) {
		t.Errorf("Keys = %v, want sorted [apple zebra]", unsupported.Keys)
	}
}

func TestAnalyzeEmptyTrace(t *testing.T) {
	_, err := Analyze(context.Background(), []byte(`{"spans": []}`))

	var empty *graph.EmptyTraceError
	if !errors.As(err, &empty) {
		t.Fatalf("error = %v, want EmptyTraceError", err)
	}
}

func TestAnalyzeInvalidJSON(t *testing.T) {
	if _, err := Analyze(context.Background(), []byte(`{not json`)); err == nil {
		t.Error("Analyze() error = nil, want JSON error")
	}
}

func TestAnalyzeWithClassifier(t *testing.T) {
	c := NewClassifier()
	c.rules = append([]classifyRule{{Match: "user_request", Kind: graph.KindSystem}}, c.rules...)

	result, err := Analyze(context.Background(), []byte(otelFixture), WithClassifier(c))
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	for _, n := range result.Export.Nodes {
		if n.ID == "u" && n.Kind != graph.KindSystem {
			t.Errorf("custom rule ignored, kind = %q", n.Kind)
		}
	}
}
