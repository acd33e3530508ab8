package trace

import (
	"fmt"

	"github.com/dissectlabs/dissect/internal/graph"
)

// LangChainExtractor handles LangChain / LangSmith run exports: a
// top-level `runs` array (or a single run object, or a bare sequence of
// runs) where each run nests its children under `child_runs`.
type LangChainExtractor struct {
	classifier *Classifier
}

func (e *LangChainExtractor) Format() Format { return FormatLangChain }

// runTypeKinds maps LangChain run_type values to node kinds.
var runTypeKinds = map[string]graph.Kind{
	"chain":      graph.KindAgent,
	"agent":      graph.KindAgent,
	"tool":       graph.KindTool,
	"llm":        graph.KindLLMCall,
	"chat_model": graph.KindLLMCall,
	"retriever":  graph.KindTool,
	"prompt":     graph.KindSystem,
}

func (e *LangChainExtractor) Extract(raw any) ([]graph.Span, []string, error) {
	var runs []any
	switch v := raw.(type) {
	case map[string]any:
		if list, ok := asSlice(v["runs"]); ok {
			runs = list
		} else {
			runs = []any{v}
		}
	case []any:
		runs = v
	default:
		return nil, nil, &UnsupportedFormatError{Keys: TopLevelKeys(raw)}
	}

	var spans []graph.Span
	var warnings []string
	position := 0
	for _, run := range runs {
		spans, warnings = e.walkRun(run, "", spans, warnings, &position)
	}
	return spans, warnings, nil
}

// walkRun converts one run and, recursively, its child_runs. position
// counts records across the whole document so synthetic ids stay stable.
func (e *LangChainExtractor) walkRun(raw any, parentID string, spans []graph.Span, warnings []string, position *int) ([]graph.Span, []string) {
	m, ok := asMap(raw)
	if !ok {
		warnings = append(warnings, fmt.Sprintf("run record %d is not an object, skipped", *position))
		*position++
		return spans, warnings
	}

	runType := stringField(m, "run_type")
	label := stringField(m, "name")
	if label == "" {
		label = runType
	}
	if label == "" {
		label = "unknown"
	}

	id := stringField(m, "id", "run_id")
	if id == "" {
		id = syntheticID(label, *position)
		warnings = append(warnings, fmt.Sprintf("run %q missing id, synthetic id assigned", label))
	}

	kind, known := runTypeKinds[runType]
	if !known {
		kind = e.classifier.Classify(label, nil)
	}

	start, startOK := parseTimestamp(m["start_time"])
	end, endOK := parseTimestamp(m["end_time"])
	if !startOK || !endOK {
		warnings = append(warnings, fmt.Sprintf("run %q missing timestamps, duration defaulted to 0", id))
		if !startOK {
			start = end
		}
		if !endOK {
			end = start
		}
	}

	attrs := make(map[string]any)
	if runType != "" {
		attrs["run_type"] = runType
	}
	for _, key := range []string{"inputs", "outputs", "error"} {
		if v, ok := m[key]; ok && v != nil {
			attrs[key] = v
		}
	}
	if len(attrs) == 0 {
		attrs = nil
	}

	spans = append(spans, graph.Span{
		ID:         id,
		ParentID:   parentID,
		Label:      label,
		Kind:       kind,
		Start:      start,
		End:        end,
		Attributes: attrs,
	})
	*position++

	children, _ := asSlice(m["child_runs"])
	for _, child := range children {
		spans, warnings = e.walkRun(child, id, spans, warnings, position)
	}
	return spans, warnings
}
