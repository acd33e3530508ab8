package cmd

import (
	"context"
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dissectlabs/dissect/internal/graph"
	"github.com/dissectlabs/dissect/internal/trace"
	"github.com/dissectlabs/dissect/internal/utils"
)

// traceCmd analyzes a trace file and prints a summary
var traceCmd = &cobra.Command{
	Use:   "trace <trace-file>",
	Short: "Analyze a trace and print a summary",
	Long: `Analyze a trace file and print the normalized graph summary:
detected format, node and edge counts, the critical path, and any
warnings recorded while normalizing.

Supported formats are detected automatically: OpenTelemetry JSON,
LangChain run exports, CrewAI execution logs, and AutoGen conversation
logs.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := analyzeFile(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printSummary(result)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(traceCmd)
}

// analyzeFile runs the full pipeline on a trace file, honoring the
// global --rules flag.
func analyzeFile(ctx context.Context, path string) (*trace.Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	data, err := utils.ReadFile(path)
	if err != nil {
		return nil, utils.NewUserError(
			fmt.Sprintf("Failed to read trace file %q", path),
			"Check that the path exists and is readable",
			err,
		)
	}

	opts := []trace.Option{}
	if rulesFile != "" {
		classifier := trace.NewClassifier()
		if err := classifier.LoadRules(rulesFile); err != nil {
			return nil, utils.NewUserError(
				fmt.Sprintf("Failed to load classification rules from %q", rulesFile),
				"Rules files are TOML with [[rule]] tables carrying match and kind keys",
				err,
			)
		}
		opts = append(opts, trace.WithClassifier(classifier))
	}

	result, err := trace.Analyze(ctx, data, opts...)
	if err != nil {
		return nil, err
	}

	GetLogger().Debug().
		Str("format", string(result.Format)).
		Int("nodes", len(result.Export.Nodes)).
		Int("edges", len(result.Export.Edges)).
		Msg("trace analyzed")

	return result, nil
}

func printSummary(result *trace.Result) {
	bold := color.New(color.Bold)
	red := color.New(color.FgRed, color.Bold)
	yellow := color.New(color.FgYellow)
	cyan := color.New(color.FgCyan)

	bold.Println("Trace Summary")
	fmt.Printf("  Format:  %s\n", cyan.Sprint(result.Format))
	fmt.Printf("  Nodes:   %d\n", len(result.Export.Nodes))
	fmt.Printf("  Edges:   %d\n", len(result.Export.Edges))
	fmt.Println()

	bold.Printf("Critical Path (%.0fms)\n", result.CriticalPath.TotalDuration)
	labels := make(map[string]string, len(result.Export.Nodes))
	for _, n := range result.Export.Nodes {
		labels[n.ID] = n.Label
	}
	for _, id := range result.CriticalPath.NodeIDs {
		red.Printf("  %s\n", labels[id])
	}
	fmt.Println()

	bold.Println("Slowest Nodes")
	for _, n := range topByDuration(result, 5) {
		fmt.Printf("  %-40s %8.0fms  heat %.2f\n", n.Label, n.Duration, n.Heat)
	}

	if len(result.Warnings) > 0 {
		fmt.Println()
		yellow.Printf("Warnings (%d)\n", len(result.Warnings))
		for _, w := range result.Warnings {
			yellow.Printf("  ! %s\n", w)
		}
	}
}

// topByDuration returns up to n export nodes sorted by duration,
// slowest first.
func topByDuration(result *trace.Result, n int) []graph.ExportNode {
	nodes := append([]graph.ExportNode(nil), result.Export.Nodes...)
	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].Duration > nodes[j].Duration
	})
	if len(nodes) > n {
		nodes = nodes[:n]
	}
	return nodes
}
