package cli

import (
	"fmt"

	"github.com/nextflow-io/npr/internal/registry"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(checksumCmd)
}

var checksumCmd = &cobra.Command{
	Use:   "checksum <file>",
	Short: "Print the sha512 digest of an artifact",
	Long: `Compute the digest the registry uses for server-side integrity
verification, in the same "sha512:<hex>" form it is transmitted in.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		digest, err := registry.DigestFile(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), digest)
		return nil
	},
}
