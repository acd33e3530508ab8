package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dissectlabs/dissect/internal/diff"
)

var diffFailOnRegression bool

// diffCmd compares two analyzed traces
var diffCmd = &cobra.Command{
	Use:   "diff <old-trace> <new-trace>",
	Short: "Compare two traces",
	Long: `Analyze two trace files and report what changed between them:
added and removed nodes, duration changes, added and removed edges, and
the shift in critical path length. Nodes are matched by label.

Exits non-zero with --fail-on-regression when any node got slower.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		oldResult, err := analyzeFile(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		newResult, err := analyzeFile(cmd.Context(), args[1])
		if err != nil {
			return err
		}

		d := diff.Compare(oldResult.Export, newResult.Export)
		printDiff(d, oldResult.CriticalPath.TotalDuration, newResult.CriticalPath.TotalDuration)

		if diffFailOnRegression && len(d.Regressions()) > 0 {
			return fmt.Errorf("%d regression(s) found", len(d.Regressions()))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(diffCmd)
	diffCmd.Flags().BoolVar(&diffFailOnRegression, "fail-on-regression", false, "exit non-zero when any node got slower")
}

func printDiff(d diff.Diff, oldPath, newPath float64) {
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	yellow := color.New(color.FgYellow)

	bold.Println("Trace Diff")
	pathDelta := newPath - oldPath
	fmt.Printf("  Critical path: %.0fms -> %.0fms (%+.0fms)\n", oldPath, newPath, pathDelta)
	fmt.Println()

	if !d.HasChanges() {
		green.Println("No changes.")
		return
	}

	if added := d.Added(); len(added) > 0 {
		bold.Println("Added Nodes")
		for _, n := range added {
			green.Printf("  + %s (%.0fms)\n", n.Label, n.NewDurationMs)
		}
		fmt.Println()
	}

	if removed := d.Removed(); len(removed) > 0 {
		bold.Println("Removed Nodes")
		for _, n := range removed {
			red.Printf("  - %s (%.0fms)\n", n.Label, n.OldDurationMs)
		}
		fmt.Println()
	}

	if changed := d.Changed(); len(changed) > 0 {
		bold.Println("Duration Changes")
		for _, n := range changed {
			line := fmt.Sprintf("  ~ %-40s %8.0fms -> %8.0fms (%+.0fms, %+.1f%%)",
				n.Label, n.OldDurationMs, n.NewDurationMs, n.ChangeMs, n.ChangePct)
			if n.IsRegression() {
				red.Println(line)
			} else {
				green.Println(line)
			}
		}
		fmt.Println()
	}

	if len(d.Edges) > 0 {
		bold.Println("Edge Changes")
		for _, e := range d.Edges {
			if e.Status == diff.StatusAdded {
				yellow.Printf("  + %s -> %s\n", e.Source, e.Target)
			} else {
				yellow.Printf("  - %s -> %s\n", e.Source, e.Target)
			}
		}
	}
}
