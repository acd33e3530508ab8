package check

import (
	"encoding/json"
	"fmt"
	"io"
)

// Reporter generates suite reports in various formats
type Reporter struct {
	format string
}

// NewReporter creates a new reporter
func NewReporter(format string) *Reporter {
	return &Reporter{format: format}
}

// Generate creates a report and writes it to the writer
func (r *Reporter) Generate(results *SuiteResults, w io.Writer) error {
	switch r.format {
	case "console":
		return r.generateConsole(results, w)
	case "json":
		return r.generateJSON(results, w)
	default:
		return fmt.Errorf("unsupported format: %s", r.format)
	}
}

// generateConsole creates a human-readable console report
func (r *Reporter) generateConsole(results *SuiteResults, w io.Writer) error {
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "═══════════════════════════════════════════════════════════════\n")
	fmt.Fprintf(w, "  CHECK RESULTS: %s\n", results.SuiteName)
	fmt.Fprintf(w, "═══════════════════════════════════════════════════════════════\n")
	fmt.Fprintf(w, "\n")

	fmt.Fprintf(w, "Total Checks:   %d\n", results.TotalChecks)
	fmt.Fprintf(w, "Passed:         %d ✓\n", results.PassedChecks)
	fmt.Fprintf(w, "Failed:         %d ✗\n", results.FailedChecks)
	fmt.Fprintf(w, "Pass Rate:      %.1f%%\n", results.PassRate())
	fmt.Fprintf(w, "\n")

	if results.FailedChecks > 0 {
		fmt.Fprintf(w, "───────────────────────────────────────────────────────────────\n")
		fmt.Fprintf(w, "  FAILED CHECKS\n")
		fmt.Fprintf(w, "───────────────────────────────────────────────────────────────\n")
		fmt.Fprintf(w, "\n")

		for _, result := range results.Results {
			if !result.Passed {
				fmt.Fprintf(w, "✗ %s\n", result.CheckName)
				fmt.Fprintf(w, "  %s\n", result.ErrorMessage)
				fmt.Fprintf(w, "\n")
			}
		}
	}

	fmt.Fprintf(w, "───────────────────────────────────────────────────────────────\n")
	if results.AllPassed() {
		fmt.Fprintf(w, "  ✓ ALL CHECKS PASSED\n")
	} else {
		fmt.Fprintf(w, "  ✗ SOME CHECKS FAILED\n")
	}
	fmt.Fprintf(w, "───────────────────────────────────────────────────────────────\n")
	fmt.Fprintf(w, "\n")

	return nil
}

// generateJSON creates a JSON report
func (r *Reporter) generateJSON(results *SuiteResults, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(results)
}
