// Package trace turns raw framework trace files into the canonical
// graph model: it sniffs the format, extracts canonical spans, and runs
// the build/analysis pipeline.
package trace

import (
	"fmt"
	"sort"
	"strings"
)

// Format identifies which extractor applies to a decoded trace payload.
type Format string

const (
	FormatOpenTelemetry Format = "opentelemetry"
	FormatLangChain     Format = "langchain"
	FormatCrewAI        Format = "crewai"
	FormatAutoGen       Format = "autogen"
	FormatUnknown       Format = "unknown"
)

// UnsupportedFormatError is returned when no detection rule matches.
// Keys carries the sorted top-level keys of the payload for diagnostics.
type UnsupportedFormatError struct {
	Keys []string
}

func (e *UnsupportedFormatError) Error() string {
	if len(e.Keys) == 0 {
		return "unsupported trace format: document has no recognizable structure"
	}
	return fmt.Sprintf("unsupported trace format: no parser matches top-level keys [%s]", strings.Join(e.Keys, ", "))
}

// Detect inspects a decoded JSON document and returns the matching
// format. Detection is purely structural; rules are evaluated in
// priority order and the first match wins.
func Detect(raw any) Format {
	switch v := raw.(type) {
	case map[string]any:
		if hasKey(v, "spans") || hasKey(v, "resourceSpans") {
			return FormatOpenTelemetry
		}
		if hasKey(v, "runs") || hasKey(v, "run_type") {
			return FormatLangChain
		}
		if hasKey(v, "crew_name") && hasKey(v, "agents") && hasKey(v, "tasks") {
			return FormatCrewAI
		}
		if hasKey(v, "agents") && hasKey(v, "messages") {
			return FormatAutoGen
		}
	case []any:
		// A bare sequence of LangChain run records.
		for _, item := range v {
			if m, ok := item.(map[string]any); ok && hasKey(m, "run_type") {
				return FormatLangChain
			}
		}
	}
	return FormatUnknown
}

// TopLevelKeys returns the sorted top-level keys of a decoded document,
// for UnsupportedFormatError diagnostics.
func TopLevelKeys(raw any) []string {
	m, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func hasKey(m map[string]any, key string) bool {
	_, ok := m[key]
	return ok
}
