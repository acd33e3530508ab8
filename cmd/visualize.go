package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dissectlabs/dissect/internal/render"
	"github.com/dissectlabs/dissect/internal/utils"
)

var (
	visualizeType   string
	visualizeOutput string
)

// visualizeCmd renders an analyzed trace
var visualizeCmd = &cobra.Command{
	Use:   "visualize <trace-file>",
	Short: "Render a trace as a diagram or report",
	Long: `Analyze a trace file and render the resulting graph.

Output types:
  mermaid   Mermaid flowchart in a markdown fence (default)
  dot       Graphviz DOT digraph
  html      Self-contained HTML report with a latency heat map
  json      The raw export contract, indented

Examples:
  dissect visualize run.json
  dissect visualize run.json -t dot -o graph.dot
  dissect visualize run.json -t html -o report.html`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := analyzeFile(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		var out string
		switch visualizeType {
		case "mermaid":
			out = render.Mermaid(result.Export)
		case "dot":
			out = render.DOT(result.Export)
		case "html":
			title := filepath.Base(args[0])
			out, err = render.HTML(result.Export, title)
			if err != nil {
				return err
			}
		case "json":
			out, err = render.JSON(result.Export)
			if err != nil {
				return err
			}
		default:
			return utils.NewValidationError("type", "must be one of mermaid, dot, html, json")
		}

		if visualizeOutput == "" {
			fmt.Println(out)
			return nil
		}

		if err := utils.WriteFile(visualizeOutput, []byte(out)); err != nil {
			return utils.NewUserError(
				fmt.Sprintf("Failed to write output to %q", visualizeOutput),
				"Check that the directory is writable",
				err,
			)
		}
		GetLogger().Info().Str("path", visualizeOutput).Str("type", visualizeType).Msg("visualization written")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(visualizeCmd)
	visualizeCmd.Flags().StringVarP(&visualizeType, "type", "t", "mermaid", "output type: mermaid|dot|html|json")
	visualizeCmd.Flags().StringVarP(&visualizeOutput, "output", "o", "", "output file (default: stdout)")
}
