package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nextflow-io/npr/internal/config"
	"github.com/nextflow-io/npr/internal/manifest"
	"github.com/nextflow-io/npr/internal/registry"
	"github.com/spf13/cobra"
)

var (
	publishID          string
	publishVersion     string
	publishProvider    string
	publishManifest    string
	publishReadme      string
	publishSpec        string
	publishAPIURL      string
	publishAPIKey      string
	publishIfNotExists bool
	publishDryRun      bool
)

var publishCmd = &cobra.Command{
	Use:   "publish <archive.zip>",
	Short: "Publish a plugin archive to the registry",
	Long: `Publish a finished plugin archive using the two-phase release protocol.
Release metadata is read from plugin.yaml in the working directory (or
--manifest) and can be overridden per field with flags. The archive
checksum is computed locally and verified server-side before upload.`,
	Args: cobra.ExactArgs(1),
	RunE: runPublish,
}

func init() {
	publishCmd.Flags().StringVar(&publishID, "id", "", "Plugin identifier (overrides the manifest)")
	publishCmd.Flags().StringVar(&publishVersion, "version", "", "Release version (overrides the manifest)")
	publishCmd.Flags().StringVar(&publishProvider, "provider", "", "Publishing organization (overrides the manifest)")
	publishCmd.Flags().StringVar(&publishManifest, "manifest", "", "Path to plugin.yaml (default: ./plugin.yaml)")
	publishCmd.Flags().StringVar(&publishReadme, "readme", "", "Path to the plugin README (default: README.md next to the manifest)")
	publishCmd.Flags().StringVar(&publishSpec, "spec", "", "Path to the capability spec document (overrides the manifest)")
	publishCmd.Flags().StringVar(&publishAPIURL, "api-url", "", "Registry API base URL (overrides properties and environment)")
	publishCmd.Flags().StringVar(&publishAPIKey, "api-key", "", "Registry API key (overrides properties and environment)")
	publishCmd.Flags().BoolVar(&publishIfNotExists, "if-not-exists", false, "Skip instead of failing when the release already exists")
	publishCmd.Flags().BoolVar(&publishDryRun, "dry-run", false, "Run pre-flight checks and print the checksum without contacting the registry")
	rootCmd.AddCommand(publishCmd)
}

func runPublish(cmd *cobra.Command, args []string) error {
	archivePath := args[0]

	artifact, err := os.ReadFile(archivePath)
	if err != nil {
		return fmt.Errorf("reading plugin archive: %w", err)
	}

	req, err := buildPublishRequest(archivePath, artifact)
	if err != nil {
		return err
	}

	resolver := config.NewResolver()
	cfg, err := resolver.Resolve(publishAPIURL, publishAPIKey)
	if err != nil {
		return err
	}

	if publishDryRun {
		if err := registry.Preflight(*req); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Dry run: would publish %s@%s to %s\n", req.ID, req.Version, cfg.BaseURL)
		fmt.Fprintf(cmd.OutOrStdout(), "  checksum: %s\n", req.Checksum)
		return nil
	}

	client, err := registry.NewClient(cfg)
	if err != nil {
		return err
	}

	result, err := registry.NewPublisher(client).Publish(cmd.Context(), *req, !publishIfNotExists)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ %s\n", result.Message)
	return nil
}

// buildPublishRequest merges the manifest with flag overrides and loads
// the README and optional spec document.
func buildPublishRequest(archivePath string, artifact []byte) (*registry.PublishRequest, error) {
	manifestPath := publishManifest
	if manifestPath == "" {
		manifestPath = manifest.FileName
	}

	// The manifest is optional when every field is supplied by flags.
	var m manifest.PluginManifest
	manifestDir := "."
	if _, err := os.Stat(manifestPath); err == nil {
		data, err := os.ReadFile(manifestPath)
		if err != nil {
			return nil, fmt.Errorf("reading manifest: %w", err)
		}
		result, err := manifest.Validate(data)
		if err != nil {
			return nil, err
		}
		if !result.Valid {
			return nil, &registry.ConfigError{Message: fmt.Sprintf(
				"%s failed validation: %s (run the validate command for details)",
				manifestPath, result.Issues[0].Message)}
		}
		parsed, err := manifest.Parse(data)
		if err != nil {
			return nil, err
		}
		m = *parsed
		manifestDir = filepath.Dir(manifestPath)
	} else if publishManifest != "" {
		return nil, fmt.Errorf("manifest %s not found", publishManifest)
	}

	req := registry.PublishRequest{
		ReleaseRequest: registry.ReleaseRequest{
			ID:       firstNonEmpty(publishID, m.Name),
			Version:  firstNonEmpty(publishVersion, m.Version),
			Provider: firstNonEmpty(publishProvider, m.Provider),
			Checksum: registry.DigestBytes(artifact),
			Filename: filepath.Base(archivePath),
			Artifact: artifact,
		},
	}

	readme, err := loadReadme(manifestDir)
	if err != nil {
		return nil, err
	}
	req.Readme = readme

	spec, err := loadSpec(manifestDir, m.Spec)
	if err != nil {
		return nil, err
	}
	req.Spec = spec

	return &req, nil
}

// loadReadme reads the README from --readme, or README.md next to the
// manifest. A missing file is reported through the publisher's
// precondition check, not here.
func loadReadme(manifestDir string) (string, error) {
	path := publishReadme
	if path == "" {
		path = filepath.Join(manifestDir, "README.md")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if publishReadme == "" && os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("reading README %s: %w", path, err)
	}
	return string(data), nil
}

// loadSpec reads the optional capability spec document and checks it is
// well-formed JSON before it is embedded in the draft release request.
func loadSpec(manifestDir, manifestSpec string) (json.RawMessage, error) {
	path := publishSpec
	if path == "" && manifestSpec != "" {
		path = filepath.Join(manifestDir, manifestSpec)
	}
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading spec document %s: %w", path, err)
	}
	if !json.Valid(data) {
		return nil, &registry.ConfigError{Message: fmt.Sprintf(
			"spec document %s is not valid JSON", path)}
	}
	return json.RawMessage(data), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
