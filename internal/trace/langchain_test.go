package trace

import (
	"testing"

	"github.com/dissectlabs/dissect/internal/graph"
)

func TestLangChainExtractNestedRuns(t *testing.T) {
	raw := decodeJSON(t, `{
		"runs": [
			{
				"id": "run-1",
				"name": "AgentExecutor",
				"run_type": "chain",
				"start_time": "2026-08-25T10:00:00Z",
				"end_time": "2026-08-25T10:00:02Z",
				"inputs": {"input": "question"},
				"child_runs": [
					{
						"id": "run-2",
						"name": "ChatOpenAI",
						"run_type": "llm",
						"start_time": "2026-08-25T10:00:00Z",
						"end_time": "2026-08-25T10:00:01Z"
					},
					{
						"id": "run-3",
						"name": "Calculator",
						"run_type": "tool",
						"start_time": "2026-08-25T10:00:01Z",
						"end_time": "2026-08-25T10:00:02Z"
					}
				]
			}
		]
	}`)

	e := &LangChainExtractor{classifier: NewClassifier()}
	spans, warnings, err := e.Extract(raw)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %v, want none", warnings)
	}
	if len(spans) != 3 {
		t.Fatalf("got %d spans, want 3", len(spans))
	}

	root := spans[0]
	if root.ID != "run-1" || root.ParentID != "" || root.Kind != graph.KindAgent {
		t.Errorf("root = %+v", root)
	}
	if root.Attributes["run_type"] != "chain" {
		t.Errorf("run_type attr = %v", root.Attributes["run_type"])
	}
	if _, ok := root.Attributes["inputs"]; !ok {
		t.Error("inputs attribute missing")
	}
	// Two seconds of wall time.
	if root.End-root.Start != 2000 {
		t.Errorf("root duration = %v, want 2000", root.End-root.Start)
	}

	llm := spans[1]
	if llm.ParentID != "run-1" || llm.Kind != graph.KindLLMCall {
		t.Errorf("llm = %+v", llm)
	}
	tool := spans[2]
	if tool.ParentID != "run-1" || tool.Kind != graph.KindTool {
		t.Errorf("tool = %+v", tool)
	}
}

func TestLangChainRunTypeMapping(t *testing.T) {
	tests := []struct {
		runType string
		want    graph.Kind
	}{
		{"chain", graph.KindAgent},
		{"agent", graph.KindAgent},
		{"tool", graph.KindTool},
		{"retriever", graph.KindTool},
		{"llm", graph.KindLLMCall},
		{"chat_model", graph.KindLLMCall},
		{"prompt", graph.KindSystem},
	}

	e := &LangChainExtractor{classifier: NewClassifier()}
	for _, tt := range tests {
		t.Run(tt.runType, func(t *testing.T) {
			raw := map[string]any{"id": "r", "name": "x", "run_type": tt.runType}
			spans, _, err := e.Extract(raw)
			if err != nil {
				t.Fatalf("Extract() error = %v", err)
			}
			if spans[0].Kind != tt.want {
				t.Errorf("kind = %q, want %q", spans[0].Kind, tt.want)
			}
		})
	}
}

func TestLangChainBareArrayAndMissingFields(t *testing.T) {
	raw := decodeJSON(t, `[
		{"run_type": "llm"},
		{"run_type": "tool", "name": "search"}
	]`)

	e := &LangChainExtractor{classifier: NewClassifier()}
	spans, warnings, err := e.Extract(raw)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(spans) != 2 {
		t.Fatalf("got %d spans, want 2", len(spans))
	}

	// No name falls back to run_type for the label.
	if spans[0].Label != "llm" {
		t.Errorf("label = %q, want %q", spans[0].Label, "llm")
	}
	if !hasWarningSubstring(warnings, "missing id") {
		t.Errorf("warnings = %v, want missing id warning", warnings)
	}
	if !hasWarningSubstring(warnings, "missing timestamps") {
		t.Errorf("warnings = %v, want missing timestamps warning", warnings)
	}
}
