package cli

import (
	"fmt"

	"github.com/nextflow-io/npr/internal/manifest"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate <plugin.yaml>",
	Short: "Validate a plugin manifest against the registry schema",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		result, err := manifest.ValidateFile(path)
		if err != nil {
			return err
		}

		if result.Valid {
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s is valid\n", path)
			return nil
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✗ %s has %d issue(s):\n", path, len(result.Issues))
		for _, issue := range result.Issues {
			if issue.Path != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s: %s\n", issue.Path, issue.Message)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", issue.Message)
			}
		}
		return fmt.Errorf("manifest validation failed")
	},
}
