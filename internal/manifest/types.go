package manifest

// FileName is the conventional manifest filename next to the plugin
// sources.
const FileName = "plugin.yaml"

// PluginManifest is the metadata a plugin ships for publishing.
type PluginManifest struct {
	// Name is the plugin identifier on the registry, e.g. "nf-hello".
	Name        string `yaml:"name" json:"name"`
	Version     string `yaml:"version" json:"version"`
	Provider    string `yaml:"provider" json:"provider"`
	Description string `yaml:"description" json:"description"`

	Keywords []string `yaml:"keywords,omitempty" json:"keywords,omitempty"`
	License  string   `yaml:"license,omitempty" json:"license,omitempty"`

	// Spec points at the optional machine-readable capability spec
	// document (JSON), relative to the manifest file.
	Spec string `yaml:"spec,omitempty" json:"spec,omitempty"`
}
