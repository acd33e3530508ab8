package trace

import (
	"testing"

	"github.com/dissectlabs/dissect/internal/graph"
)

func TestCrewAIExtract(t *testing.T) {
	raw := decodeJSON(t, `{
		"crew_name": "research-crew",
		"crew_id": "crew-1",
		"execution_trace": [
			{"step_id": "s1", "name": "plan", "type": "agent_execution", "start_time": 0, "end_time": 2},
			{"step_id": "s2", "name": "search", "type": "tool_call", "start_time": 2, "end_time": 3},
			{"step_id": "s3", "name": "summarize", "type": "llm_call", "start_time": 3, "end_time": 5}
		],
		"agents": [
			{
				"agent_id": "ag-1",
				"role": "Researcher",
				"tool_calls": [
					{"tool_id": "t1", "tool_name": "web_search"}
				]
			}
		],
		"tasks": [
			{"task_id": "task-1", "description": "Write a report"}
		]
	}`)

	e := &CrewAIExtractor{classifier: NewClassifier()}
	spans, warnings, err := e.Extract(raw)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %v, want none", warnings)
	}
	// crew + 3 steps + agent + tool call + task
	if len(spans) != 7 {
		t.Fatalf("got %d spans, want 7", len(spans))
	}

	crew := spans[0]
	if crew.ID != "crew-1" || crew.Label != "research-crew" || crew.Kind != graph.KindAgent {
		t.Errorf("crew = %+v", crew)
	}

	byID := map[string]graph.Span{}
	for _, s := range spans {
		byID[s.ID] = s
	}

	if s := byID["s1"]; s.ParentID != "crew-1" || s.Kind != graph.KindAgent {
		t.Errorf("step s1 = %+v", s)
	}
	if s := byID["s2"]; s.Kind != graph.KindTool {
		t.Errorf("step s2 = %+v", s)
	}
	if s := byID["s3"]; s.Kind != graph.KindLLMCall {
		t.Errorf("step s3 = %+v", s)
	}
	// Numeric seconds normalize to milliseconds.
	if s := byID["s1"]; s.Start != 0 || s.End != 2000 {
		t.Errorf("step s1 timing = %v..%v, want 0..2000", s.Start, s.End)
	}

	if s := byID["ag-1"]; s.ParentID != "crew-1" || s.Label != "Researcher" {
		t.Errorf("agent = %+v", s)
	}
	if s := byID["t1"]; s.ParentID != "ag-1" || s.Kind != graph.KindTool || s.Label != "web_search" {
		t.Errorf("tool call = %+v", s)
	}
	if s := byID["task-1"]; s.ParentID != "crew-1" || s.Label != "Write a report" {
		t.Errorf("task = %+v", s)
	}
}

func TestCrewAIMissingCrewID(t *testing.T) {
	raw := decodeJSON(t, `{
		"crew_name": "anon-crew",
		"agents": [],
		"tasks": []
	}`)

	e := &CrewAIExtractor{classifier: NewClassifier()}
	spans, warnings, err := e.Extract(raw)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	if spans[0].ID == "" {
		t.Error("crew got no synthetic id")
	}
	if !hasWarningSubstring(warnings, "missing crew_id") {
		t.Errorf("warnings = %v, want crew_id warning", warnings)
	}
}
