package cmd

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/dissectlabs/dissect/internal/tui"
)

// exploreCmd launches the interactive explorer
var exploreCmd = &cobra.Command{
	Use:   "explore <trace-file>",
	Short: "Explore a trace interactively",
	Long: `Analyze a trace file and open it in the interactive terminal
explorer: navigate the call tree, inspect node timings and attributes,
and filter down to the critical path.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := analyzeFile(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		model := tui.NewExplorer(result.Export, filepath.Base(args[0]))
		p := tea.NewProgram(model, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("explorer failed: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exploreCmd)
}
