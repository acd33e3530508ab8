// Package config generates starter configuration files.
package config

import (
	"fmt"

	"github.com/dissectlabs/dissect/internal/utils"
)

// Generator generates configuration files
type Generator struct{}

// NewGenerator creates a new config generator
func NewGenerator() *Generator {
	return &Generator{}
}

// GenerateConfig writes a starter .dissect.toml configuration file.
func (g *Generator) GenerateConfig(outputPath string) error {
	content := `# Dissect configuration

# Trace dissect's own pipeline stages with OpenTelemetry.
trace = false
trace_exporter = "console"   # console | otlp | file
trace_endpoint = ""
trace_sample = 1.0

environment = "dev"

# Custom node classification rules, written by 'dissect init'.
# rules = "dissect-rules.toml"
`

	if err := utils.WriteFile(outputPath, []byte(content)); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GenerateRules writes a starter classification rules file. Rules are
// checked in order before the built-in defaults; match is a substring
// of the lowercased span name or an exact attribute key.
func (g *Generator) GenerateRules(outputPath string) error {
	content := `# Dissect classification rules
# Matched in order, before the built-in defaults.
# kind is one of: agent, tool, llm_call, user_input, system

[[rule]]
match = "my-planner"
kind = "agent"

[[rule]]
match = "vector_search"
kind = "tool"
`

	if err := utils.WriteFile(outputPath, []byte(content)); err != nil {
		return fmt.Errorf("failed to write rules file: %w", err)
	}

	return nil
}
