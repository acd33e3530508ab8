package render

import (
	"encoding/json"

	"github.com/dissectlabs/dissect/internal/graph"
)

// JSON renders the export contract itself, indented.
func JSON(exp graph.Export) (string, error) {
	data, err := json.MarshalIndent(exp, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
