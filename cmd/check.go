package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dissectlabs/dissect/internal/check"
	"github.com/dissectlabs/dissect/internal/utils"
)

var (
	checkSuiteFile    string
	checkReportFormat string
)

// checkCmd runs an assertion suite against a trace
var checkCmd = &cobra.Command{
	Use:   "check <trace-file>",
	Short: "Run an assertion suite against a trace",
	Long: `Analyze a trace file and run a YAML assertion suite against the
result. Suites assert on node counts, required or forbidden labels,
required kinds, critical path budgets, and warning counts.

Example suite:

  name: ci-gate
  checks:
    - name: pipeline-shape
      min_nodes: 3
      require_labels: ["planner"]
      require_kinds: ["llm_call"]
    - name: latency-budget
      max_critical_path_ms: 5000

Exits non-zero when any check fails, for use as a CI gate.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		suite, err := check.ParseSuiteFile(checkSuiteFile)
		if err != nil {
			return utils.NewUserError(
				fmt.Sprintf("Failed to load suite %q", checkSuiteFile),
				"Check the YAML structure against 'dissect check --help'",
				err,
			)
		}

		result, err := analyzeFile(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		results := check.Run(suite, result.Export)

		reporter := check.NewReporter(checkReportFormat)
		if err := reporter.Generate(results, os.Stdout); err != nil {
			return err
		}

		if !results.AllPassed() {
			return fmt.Errorf("%d of %d checks failed", results.FailedChecks, results.TotalChecks)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringVarP(&checkSuiteFile, "suite", "s", "", "YAML suite file (required)")
	checkCmd.Flags().StringVar(&checkReportFormat, "format", "console", "report format: console|json")
	_ = checkCmd.MarkFlagRequired("suite")
}
