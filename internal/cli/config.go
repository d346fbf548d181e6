package cli

import (
	"fmt"
	"strings"

	"github.com/nextflow-io/npr/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage registry settings",
	Long:  `Read and write npr configuration stored at ~/.npr/config.yaml.`,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		config.Load()
		key, value := args[0], args[1]
		if err := config.Set(key, value); err != nil {
			return fmt.Errorf("setting config key %q: %w", key, err)
		}
		fmt.Printf("Set %s = %s\n", key, value)
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		config.Load()
		value := config.Get(args[0])
		fmt.Println(value)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the resolved registry settings and where each came from",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		resolver := config.NewResolver()

		url, urlLayer := resolver.ResolveURL("")
		fmt.Fprintf(cmd.OutOrStdout(), "api url: %s (%s)\n", url, urlLayer)

		key, keyLayer, err := resolver.ResolveKey("")
		if err != nil {
			fmt.Fprintln(cmd.OutOrStdout(), "api key: not configured")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "api key: %s (%s)\n", maskKey(key), keyLayer)
		return nil
	},
}

// maskKey keeps the first four characters of a secret visible, enough
// to tell keys apart without leaking them into logs.
func maskKey(key string) string {
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + strings.Repeat("*", len(key)-4)
}
