// Package check runs YAML assertion suites against analyzed traces, for
// catching orchestration regressions in CI.
package check

// Suite represents a collection of checks to run against one trace.
type Suite struct {
	Name        string            `yaml:"name"`
	Description string            `yaml:"description,omitempty"`
	Checks      []Check           `yaml:"checks"`
	Metadata    map[string]string `yaml:"metadata,omitempty"`
}

// Check represents a single assertion over the analyzed trace. Numeric
// fields are pointers so zero is a usable bound.
type Check struct {
	Name              string   `yaml:"name"`
	Description       string   `yaml:"description,omitempty"`
	MinNodes          *int     `yaml:"min_nodes,omitempty"`
	MaxNodes          *int     `yaml:"max_nodes,omitempty"`
	RequireLabels     []string `yaml:"require_labels,omitempty"`
	ForbidLabels      []string `yaml:"forbid_labels,omitempty"`
	RequireKinds      []string `yaml:"require_kinds,omitempty"`
	MaxCriticalPathMs *float64 `yaml:"max_critical_path_ms,omitempty"`
	MaxWarnings       *int     `yaml:"max_warnings,omitempty"`
}

// CheckResult represents the result of a single check.
type CheckResult struct {
	CheckName    string `json:"check_name"`
	Passed       bool   `json:"passed"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// SuiteResults represents results for an entire suite.
type SuiteResults struct {
	SuiteName    string        `json:"suite_name"`
	TotalChecks  int           `json:"total_checks"`
	PassedChecks int           `json:"passed_checks"`
	FailedChecks int           `json:"failed_checks"`
	Results      []CheckResult `json:"results"`
}

// AllPassed returns true if every check passed.
func (sr *SuiteResults) AllPassed() bool {
	return sr.FailedChecks == 0
}

// PassRate returns the pass rate as a percentage.
func (sr *SuiteResults) PassRate() float64 {
	if sr.TotalChecks == 0 {
		return 0
	}
	return float64(sr.PassedChecks) / float64(sr.TotalChecks) * 100
}
