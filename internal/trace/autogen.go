package trace

import (
	"fmt"
	"strings"

	"github.com/dissectlabs/dissect/internal/graph"
)

// AutoGenExtractor handles AutoGen conversation logs: an `agents` roster
// plus an ordered `messages` array. The first message attaches to its
// sending agent; later messages chain onto their predecessor, so the
// conversation reads as one causal sequence. Function/tool calls nest
// under the message that issued them.
type AutoGenExtractor struct {
	classifier *Classifier
}

func (e *AutoGenExtractor) Format() Format { return FormatAutoGen }

func (e *AutoGenExtractor) Extract(raw any) ([]graph.Span, []string, error) {
	doc, ok := asMap(raw)
	if !ok {
		return nil, nil, &UnsupportedFormatError{Keys: TopLevelKeys(raw)}
	}

	var spans []graph.Span
	var warnings []string
	position := 0

	agentIDs := make(map[string]string)
	agents, _ := asSlice(doc["agents"])
	for _, rawAgent := range agents {
		agent, ok := asMap(rawAgent)
		if !ok {
			position++
			continue
		}
		label := stringField(agent, "name")
		if label == "" {
			label = "agent"
		}
		id := stringField(agent, "agent_id")
		if id == "" {
			id = syntheticID(label, position)
		}

		kind := graph.KindAgent
		if strings.Contains(strings.ToLower(stringField(agent, "type")), "user") {
			kind = graph.KindUserInput
		}

		spans = append(spans, graph.Span{ID: id, Label: label, Kind: kind})
		agentIDs[label] = id
		position++
	}

	prevMessageID := ""
	messages, _ := asSlice(doc["messages"])
	for _, rawMsg := range messages {
		msg, ok := asMap(rawMsg)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("message record %d is not an object, skipped", position))
			position++
			continue
		}

		sender := stringField(msg, "sender")
		label := sender
		if label == "" {
			label = "message"
		}
		id := stringField(msg, "message_id", "id")
		if id == "" {
			id = syntheticID(label, position)
			warnings = append(warnings, fmt.Sprintf("message from %q missing message_id, synthetic id assigned", label))
		}

		kind := graph.KindAgent
		if stringField(msg, "role") == "user" {
			kind = graph.KindUserInput
		}

		start, hasTS := parseTimestamp(msg["timestamp"])
		if !hasTS {
			warnings = append(warnings, fmt.Sprintf("message %q missing timestamp, duration defaulted to 0", id))
			start = 0
		}

		parentID := prevMessageID
		if parentID == "" {
			parentID = agentIDs[sender]
		}

		var attrs map[string]any
		if content := stringField(msg, "content"); content != "" {
			attrs = map[string]any{"content": content}
		}

		spans = append(spans, graph.Span{
			ID:         id,
			ParentID:   parentID,
			Label:      label,
			Kind:       kind,
			Start:      start,
			End:        start,
			Attributes: attrs,
		})
		position++

		spans, warnings = e.extractCalls(msg, id, spans, warnings, &position)
		prevMessageID = id
	}

	return spans, warnings, nil
}

// extractCalls pulls tool invocations out of a message. AutoGen exports
// use either `function_calls` ({id, name, arguments}) or the OpenAI-style
// `tool_calls` ({id, function: {name, arguments}}).
func (e *AutoGenExtractor) extractCalls(msg map[string]any, messageID string, spans []graph.Span, warnings []string, position *int) ([]graph.Span, []string) {
	functionCalls, _ := asSlice(msg["function_calls"])
	for _, rawCall := range functionCalls {
		call, ok := asMap(rawCall)
		if !ok {
			*position++
			continue
		}
		label := stringField(call, "name")
		if label == "" {
			label = "function"
		}
		id := stringField(call, "id")
		if id == "" {
			id = syntheticID(label, *position)
			warnings = append(warnings, fmt.Sprintf("function call %q missing id, synthetic id assigned", label))
		}
		var attrs map[string]any
		if args := stringField(call, "arguments"); args != "" {
			attrs = map[string]any{"arguments": args}
		}
		spans = append(spans, graph.Span{
			ID:         id,
			ParentID:   messageID,
			Label:      label,
			Kind:       graph.KindTool,
			Attributes: attrs,
		})
		*position++
	}

	toolCalls, _ := asSlice(msg["tool_calls"])
	for _, rawCall := range toolCalls {
		call, ok := asMap(rawCall)
		if !ok {
			*position++
			continue
		}
		label := "tool"
		var attrs map[string]any
		if fn, ok := asMap(call["function"]); ok {
			if name := stringField(fn, "name"); name != "" {
				label = name
			}
			if args := stringField(fn, "arguments"); args != "" {
				attrs = map[string]any{"arguments": args}
			}
		}
		id := stringField(call, "id")
		if id == "" {
			id = syntheticID(label, *position)
			warnings = append(warnings, fmt.Sprintf("tool call %q missing id, synthetic id assigned", label))
		}
		spans = append(spans, graph.Span{
			ID:         id,
			ParentID:   messageID,
			Label:      label,
			Kind:       graph.KindTool,
			Attributes: attrs,
		})
		*position++
	}

	return spans, warnings
}
