package trace

import (
	"fmt"
	"strconv"

	"github.com/dissectlabs/dissect/internal/graph"
)

// OTelExtractor handles OTLP JSON exports: either a flat top-level
// `spans` array or the full resourceSpans -> scopeSpans -> spans nesting.
type OTelExtractor struct {
	classifier *Classifier
}

func (e *OTelExtractor) Format() Format { return FormatOpenTelemetry }

func (e *OTelExtractor) Extract(raw any) ([]graph.Span, []string, error) {
	doc, ok := asMap(raw)
	if !ok {
		return nil, nil, &UnsupportedFormatError{Keys: TopLevelKeys(raw)}
	}

	var warnings []string
	records := collectOTelSpans(doc)

	spans := make([]graph.Span, 0, len(records))
	for i, rec := range records {
		m, ok := asMap(rec)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("span record %d is not an object, skipped", i))
			continue
		}

		label := stringField(m, "name")
		if label == "" {
			label = "unknown"
		}
		id := stringField(m, "spanId", "span_id")
		if id == "" {
			id = syntheticID(label, i)
			warnings = append(warnings, fmt.Sprintf("span record %d (%s) missing span id, synthetic id assigned", i, label))
		}

		attrs := parseOTelAttributes(m["attributes"])

		start, startOK := unixNanoToMillis(m["startTimeUnixNano"])
		end, endOK := unixNanoToMillis(m["endTimeUnixNano"])
		if !startOK || !endOK {
			warnings = append(warnings, fmt.Sprintf("span %q missing timestamps, duration defaulted to 0", id))
			if !startOK {
				start = end
			}
			if !endOK {
				end = start
			}
		}

		spans = append(spans, graph.Span{
			ID:         id,
			ParentID:   stringField(m, "parentSpanId", "parent_span_id"),
			Label:      label,
			Kind:       e.classifier.Classify(label, attrs),
			Start:      start,
			End:        end,
			Attributes: attrs,
		})
	}
	return spans, warnings, nil
}

// collectOTelSpans flattens either OTLP shape into one span list.
func collectOTelSpans(doc map[string]any) []any {
	if spans, ok := asSlice(doc["spans"]); ok {
		return spans
	}
	var out []any
	resourceSpans, _ := asSlice(doc["resourceSpans"])
	for _, rs := range resourceSpans {
		rsMap, ok := asMap(rs)
		if !ok {
			continue
		}
		scopeSpans, _ := asSlice(rsMap["scopeSpans"])
		for _, ss := range scopeSpans {
			ssMap, ok := asMap(ss)
			if !ok {
				continue
			}
			if spans, ok := asSlice(ssMap["spans"]); ok {
				out = append(out, spans...)
			}
		}
	}
	return out
}

// parseOTelAttributes converts the OTLP typed attribute array
// ([{key, value: {stringValue | intValue | ...}}]) into a flat map.
func parseOTelAttributes(v any) map[string]any {
	list, ok := asSlice(v)
	if !ok || len(list) == 0 {
		return nil
	}
	out := make(map[string]any, len(list))
	for _, item := range list {
		attr, ok := asMap(item)
		if !ok {
			continue
		}
		key := stringField(attr, "key")
		if key == "" {
			continue
		}
		value, ok := asMap(attr["value"])
		if !ok {
			out[key] = attr["value"]
			continue
		}
		switch {
		case value["stringValue"] != nil:
			out[key] = value["stringValue"]
		case value["intValue"] != nil:
			out[key] = coerceInt(value["intValue"])
		case value["doubleValue"] != nil:
			out[key] = value["doubleValue"]
		case value["boolValue"] != nil:
			out[key] = value["boolValue"]
		default:
			out[key] = value
		}
	}
	return out
}

// coerceInt handles OTLP intValue fields, which arrive as JSON numbers
// or as decimal strings.
func coerceInt(v any) any {
	switch n := v.(type) {
	case float64:
		return int64(n)
	case string:
		if i, err := strconv.ParseInt(n, 10, 64); err == nil {
			return i
		}
	}
	return v
}

// unixNanoToMillis converts an OTLP nanosecond timestamp (number or
// decimal string) to milliseconds.
func unixNanoToMillis(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n / 1e6, true
	case string:
		if n == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, false
		}
		return parsed / 1e6, true
	default:
		return 0, false
	}
}
