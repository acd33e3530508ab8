package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dissectlabs/dissect/internal/config"
	"github.com/dissectlabs/dissect/internal/utils"
)

var initForce bool

// initCmd scaffolds starter configuration files
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write starter configuration files",
	Long: `Write a starter .dissect.toml in the current directory, plus a
dissect-rules.toml with example classification rules.

Use --force to overwrite existing files.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		gen := config.NewGenerator()

		files := []struct {
			path     string
			generate func(string) error
		}{
			{".dissect.toml", gen.GenerateConfig},
			{"dissect-rules.toml", gen.GenerateRules},
		}

		for _, f := range files {
			if utils.FileExists(f.path) && !initForce {
				fmt.Printf("Skipping %s (exists, use --force to overwrite)\n", f.path)
				continue
			}
			if err := f.generate(f.path); err != nil {
				return err
			}
			fmt.Printf("Wrote %s\n", f.path)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite existing files")
}
