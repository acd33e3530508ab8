package check

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dissectlabs/dissect/internal/graph"
)

// ParseSuiteFile parses a YAML suite file into a Suite.
func ParseSuiteFile(filePath string) (*Suite, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return ParseSuite(data)
}

// ParseSuite parses YAML suite data into a Suite.
func ParseSuite(data []byte) (*Suite, error) {
	var suite Suite
	if err := yaml.Unmarshal(data, &suite); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateSuite(&suite); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return &suite, nil
}

func validateSuite(suite *Suite) error {
	if suite.Name == "" {
		return fmt.Errorf("suite name is required")
	}

	if len(suite.Checks) == 0 {
		return fmt.Errorf("at least one check is required")
	}

	for i, check := range suite.Checks {
		if check.Name == "" {
			return fmt.Errorf("check %d: name is required", i)
		}
		if !hasAssertion(check) {
			return fmt.Errorf("check '%s': at least one assertion is required", check.Name)
		}
		if check.MinNodes != nil && *check.MinNodes < 0 {
			return fmt.Errorf("check '%s': min_nodes must not be negative", check.Name)
		}
		if check.MaxNodes != nil && check.MinNodes != nil && *check.MaxNodes < *check.MinNodes {
			return fmt.Errorf("check '%s': max_nodes is below min_nodes", check.Name)
		}
		if check.MaxCriticalPathMs != nil && *check.MaxCriticalPathMs < 0 {
			return fmt.Errorf("check '%s': max_critical_path_ms must not be negative", check.Name)
		}
		for _, kind := range check.RequireKinds {
			if graph.ParseKind(kind) == graph.KindUnknown && kind != string(graph.KindUnknown) {
				return fmt.Errorf("check '%s': unknown kind %q", check.Name, kind)
			}
		}
	}

	return nil
}

func hasAssertion(c Check) bool {
	return c.MinNodes != nil || c.MaxNodes != nil ||
		len(c.RequireLabels) > 0 || len(c.ForbidLabels) > 0 ||
		len(c.RequireKinds) > 0 ||
		c.MaxCriticalPathMs != nil || c.MaxWarnings != nil
}
