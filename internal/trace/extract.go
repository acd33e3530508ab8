package trace

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dissectlabs/dissect/internal/graph"
)

// Extractor converts one format's decoded JSON shape into canonical
// spans. Extractors depend only on the JSON structure, never on the
// framework's runtime, so format support stays additive.
type Extractor interface {
	Format() Format
	Extract(raw any) ([]graph.Span, []string, error)
}

// ExtractorFor returns the extractor for a detected format.
func ExtractorFor(format Format, classifier *Classifier) (Extractor, bool) {
	if classifier == nil {
		classifier = NewClassifier()
	}
	switch format {
	case FormatOpenTelemetry:
		return &OTelExtractor{classifier: classifier}, true
	case FormatLangChain:
		return &LangChainExtractor{classifier: classifier}, true
	case FormatCrewAI:
		return &CrewAIExtractor{classifier: classifier}, true
	case FormatAutoGen:
		return &AutoGenExtractor{classifier: classifier}, true
	default:
		return nil, false
	}
}

// spanIDNamespace seeds name-based UUIDs for records that carry no id.
var spanIDNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("dissect/span"))

// syntheticID derives a stable id from a record's label and its position
// in the source, so repeated runs over the same file agree.
func syntheticID(label string, position int) string {
	return uuid.NewSHA1(spanIDNamespace, []byte(fmt.Sprintf("%s#%d", label, position))).String()
}

// parseTimestamp normalizes a JSON timestamp to milliseconds. Numeric
// values above 1e10 are taken as Unix milliseconds, smaller ones as Unix
// seconds; strings must be RFC 3339.
func parseTimestamp(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return numericToMillis(t), true
	case int:
		return numericToMillis(float64(t)), true
	case int64:
		return numericToMillis(float64(t)), true
	case string:
		if t == "" {
			return 0, false
		}
		parsed, err := time.Parse(time.RFC3339, t)
		if err != nil {
			return 0, false
		}
		return float64(parsed.UnixNano()) / 1e6, true
	default:
		return 0, false
	}
}

func numericToMillis(v float64) float64 {
	if v > 1e10 {
		return v
	}
	return v * 1000
}

func asMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

func asSlice(v any) ([]any, bool) {
	s, ok := v.([]any)
	return s, ok
}

func stringField(m map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := m[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}
