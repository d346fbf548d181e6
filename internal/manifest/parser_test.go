package manifest

import (
	"path/filepath"
	"testing"
)

func testPath(file string) string {
	return filepath.Join("testdata", file)
}

func TestParseFileFullManifest(t *testing.T) {
	m, err := ParseFile(testPath("valid-plugin.yaml"))
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}

	if m.Name != "nf-hello" {
		t.Errorf("Name = %q, want %q", m.Name, "nf-hello")
	}
	if m.Version != "0.4.0" {
		t.Errorf("Version = %q, want %q", m.Version, "0.4.0")
	}
	if m.Provider != "seqera.io" {
		t.Errorf("Provider = %q, want %q", m.Provider, "seqera.io")
	}
	if m.Spec != "spec.json" {
		t.Errorf("Spec = %q, want %q", m.Spec, "spec.json")
	}
	if len(m.Keywords) != 2 {
		t.Errorf("Keywords = %v, want 2 entries", m.Keywords)
	}
}

func TestParseFileMinimalManifest(t *testing.T) {
	m, err := ParseFile(testPath("valid-minimal.yaml"))
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if m.Spec != "" {
		t.Errorf("Spec = %q, want empty", m.Spec)
	}
	if m.License != "" {
		t.Errorf("License = %q, want empty", m.License)
	}
}

func TestParseFileNotFound(t *testing.T) {
	if _, err := ParseFile(testPath("nonexistent.yaml")); err == nil {
		t.Fatal("expected error for nonexistent file, got nil")
	}
}

func TestParseInvalidYAML(t *testing.T) {
	if _, err := ParseFile(testPath("invalid-not-yaml.yaml")); err == nil {
		t.Fatal("expected error for invalid YAML, got nil")
	}
}
