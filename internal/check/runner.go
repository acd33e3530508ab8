package check

import (
	"fmt"
	"strings"

	"github.com/dissectlabs/dissect/internal/graph"
)

// Run evaluates every check in the suite against the export and returns
// the aggregated results. Checks never abort the run; each one records
// its own pass or fail.
func Run(suite *Suite, exp graph.Export) *SuiteResults {
	results := &SuiteResults{
		SuiteName:   suite.Name,
		TotalChecks: len(suite.Checks),
	}

	for _, check := range suite.Checks {
		result := runCheck(check, exp)
		if result.Passed {
			results.PassedChecks++
		} else {
			results.FailedChecks++
		}
		results.Results = append(results.Results, result)
	}

	return results
}

func runCheck(check Check, exp graph.Export) CheckResult {
	var failures []string

	if check.MinNodes != nil && len(exp.Nodes) < *check.MinNodes {
		failures = append(failures, fmt.Sprintf("expected at least %d nodes, got %d", *check.MinNodes, len(exp.Nodes)))
	}
	if check.MaxNodes != nil && len(exp.Nodes) > *check.MaxNodes {
		failures = append(failures, fmt.Sprintf("expected at most %d nodes, got %d", *check.MaxNodes, len(exp.Nodes)))
	}

	labels := make(map[string]bool, len(exp.Nodes))
	kinds := make(map[graph.Kind]bool, len(exp.Nodes))
	for _, n := range exp.Nodes {
		labels[n.Label] = true
		kinds[n.Kind] = true
	}

	for _, label := range check.RequireLabels {
		if !labels[label] {
			failures = append(failures, fmt.Sprintf("required node %q not found", label))
		}
	}
	for _, label := range check.ForbidLabels {
		if labels[label] {
			failures = append(failures, fmt.Sprintf("forbidden node %q present", label))
		}
	}
	for _, kind := range check.RequireKinds {
		if !kinds[graph.Kind(kind)] {
			failures = append(failures, fmt.Sprintf("no node of kind %q found", kind))
		}
	}

	if check.MaxCriticalPathMs != nil && exp.CriticalPath.TotalDuration > *check.MaxCriticalPathMs {
		failures = append(failures, fmt.Sprintf("critical path is %.2fms, budget is %.2fms",
			exp.CriticalPath.TotalDuration, *check.MaxCriticalPathMs))
	}
	if check.MaxWarnings != nil && len(exp.Warnings) > *check.MaxWarnings {
		failures = append(failures, fmt.Sprintf("expected at most %d warnings, got %d", *check.MaxWarnings, len(exp.Warnings)))
	}

	return CheckResult{
		CheckName:    check.Name,
		Passed:       len(failures) == 0,
		ErrorMessage: strings.Join(failures, "; "),
	}
}
