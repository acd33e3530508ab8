package trace

import (
	"fmt"

	"github.com/dissectlabs/dissect/internal/graph"
)

// CrewAIExtractor handles CrewAI crew exports: crew metadata plus any of
// `execution_trace` steps, `agents` (with nested `tool_calls`), and
// `tasks`. The crew itself becomes the root span; every other record
// hangs off it.
type CrewAIExtractor struct {
	classifier *Classifier
}

func (e *CrewAIExtractor) Format() Format { return FormatCrewAI }

func (e *CrewAIExtractor) Extract(raw any) ([]graph.Span, []string, error) {
	doc, ok := asMap(raw)
	if !ok {
		return nil, nil, &UnsupportedFormatError{Keys: TopLevelKeys(raw)}
	}

	var warnings []string
	position := 0

	crewName := stringField(doc, "crew_name")
	if crewName == "" {
		crewName = "crew"
	}
	crewID := stringField(doc, "crew_id")
	if crewID == "" {
		crewID = syntheticID(crewName, position)
		warnings = append(warnings, fmt.Sprintf("crew %q missing crew_id, synthetic id assigned", crewName))
	}
	position++

	spans := []graph.Span{{
		ID:    crewID,
		Label: crewName,
		Kind:  graph.KindAgent,
	}}

	steps, _ := asSlice(doc["execution_trace"])
	for _, rawStep := range steps {
		step, ok := asMap(rawStep)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("execution trace record %d is not an object, skipped", position))
			position++
			continue
		}
		label := stringField(step, "name", "step_id")
		if label == "" {
			label = "step"
		}
		id := stringField(step, "step_id")
		if id == "" {
			id = syntheticID(label, position)
			warnings = append(warnings, fmt.Sprintf("step %q missing step_id, synthetic id assigned", label))
		}

		var kind graph.Kind
		switch stringField(step, "type") {
		case "agent_execution":
			kind = graph.KindAgent
		case "tool_call":
			kind = graph.KindTool
		case "llm_call":
			kind = graph.KindLLMCall
		default:
			kind = e.classifier.Classify(label, nil)
		}

		start, startOK := parseTimestamp(step["start_time"])
		end, endOK := parseTimestamp(step["end_time"])
		if !startOK || !endOK {
			warnings = append(warnings, fmt.Sprintf("step %q missing timestamps, duration defaulted to 0", id))
			if !startOK {
				start = end
			}
			if !endOK {
				end = start
			}
		}

		spans = append(spans, graph.Span{
			ID:       id,
			ParentID: crewID,
			Label:    label,
			Kind:     kind,
			Start:    start,
			End:      end,
		})
		position++
	}

	agents, _ := asSlice(doc["agents"])
	for _, rawAgent := range agents {
		agent, ok := asMap(rawAgent)
		if !ok {
			position++
			continue
		}
		label := stringField(agent, "role", "name")
		if label == "" {
			label = "agent"
		}
		agentID := stringField(agent, "agent_id")
		if agentID == "" {
			agentID = syntheticID(label, position)
			warnings = append(warnings, fmt.Sprintf("agent %q missing agent_id, synthetic id assigned", label))
		}
		spans = append(spans, graph.Span{
			ID:       agentID,
			ParentID: crewID,
			Label:    label,
			Kind:     graph.KindAgent,
		})
		position++

		toolCalls, _ := asSlice(agent["tool_calls"])
		for _, rawTool := range toolCalls {
			tool, ok := asMap(rawTool)
			if !ok {
				position++
				continue
			}
			toolLabel := stringField(tool, "tool_name", "name")
			if toolLabel == "" {
				toolLabel = "tool"
			}
			toolID := stringField(tool, "tool_id")
			if toolID == "" {
				toolID = syntheticID(toolLabel, position)
				warnings = append(warnings, fmt.Sprintf("tool call %q missing tool_id, synthetic id assigned", toolLabel))
			}
			spans = append(spans, graph.Span{
				ID:       toolID,
				ParentID: agentID,
				Label:    toolLabel,
				Kind:     graph.KindTool,
			})
			position++
		}
	}

	tasks, _ := asSlice(doc["tasks"])
	for _, rawTask := range tasks {
		task, ok := asMap(rawTask)
		if !ok {
			position++
			continue
		}
		label := stringField(task, "description", "name", "task_id")
		if label == "" {
			label = "task"
		}
		id := stringField(task, "task_id")
		if id == "" {
			id = syntheticID(label, position)
			warnings = append(warnings, fmt.Sprintf("task %q missing task_id, synthetic id assigned", label))
		}
		spans = append(spans, graph.Span{
			ID:       id,
			ParentID: crewID,
			Label:    label,
			Kind:     graph.KindAgent,
		})
		position++
	}

	return spans, warnings, nil
}
