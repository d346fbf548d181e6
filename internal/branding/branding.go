// Package branding provides compile-time identity values for the CLI.
//
// Forkers pointing the tool at a different registry edit branding.yaml,
// then rebuild. Go's //go:embed bakes the file into the binary.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName            string `yaml:"cli_name"`
	DisplayName        string `yaml:"display_name"`
	Description        string `yaml:"description"`
	HomeDir            string `yaml:"home_dir"`
	EnvPrefix          string `yaml:"env_prefix"`
	PropertyPrefix     string `yaml:"property_prefix"`
	DefaultRegistryURL string `yaml:"default_registry_url"`
}

func load() {
	once.Do(func() {
		// Set hard defaults in case the embedded file is missing/empty.
		defaults = brand{
			CLIName:            "npr",
			DisplayName:        "Nextflow Plugin Registry CLI",
			Description:        "Publish Nextflow plugin releases to a plugin registry",
			HomeDir:            ".npr",
			EnvPrefix:          "NPR",
			PropertyPrefix:     "npr",
			DefaultRegistryURL: "https://registry.nextflow.io/api/",
		}
		// Overlay with embedded YAML values.
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "npr").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".npr").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "NPR").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// DefaultRegistryURL returns the compiled-in registry API base URL.
func DefaultRegistryURL() string { load(); return defaults.DefaultRegistryURL }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("API_KEY") → "NPR_API_KEY".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}

// PropertyKey returns a fully qualified property key, e.g., PropertyKey("apiUrl") → "npr.apiUrl".
func PropertyKey(suffix string) string {
	load()
	return defaults.PropertyPrefix + "." + suffix
}
