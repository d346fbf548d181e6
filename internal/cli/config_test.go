package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func runConfigShow(t *testing.T) string {
	t.Helper()
	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	if err := configShowCmd.RunE(cmd, nil); err != nil {
		t.Fatalf("config show: %v", err)
	}
	return out.String()
}

func TestConfigShowReportsProvenance(t *testing.T) {
	// Project property supplies the URL, environment supplies the key.
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".npr.yaml"),
		"npr:\n  apiUrl: https://props.example.com\n")
	chdir(t, dir)
	t.Setenv("HOME", t.TempDir())
	t.Setenv("NPR_API_URL", "")
	t.Setenv("NPR_API_KEY", "env-key")

	got := runConfigShow(t)

	if !strings.Contains(got, "api url: https://props.example.com/ (project property)") {
		t.Errorf("output %q missing property-sourced URL", got)
	}
	if !strings.Contains(got, "api key: env-*** (environment)") {
		t.Errorf("output %q missing masked env-sourced key", got)
	}
}

func TestConfigShowEnvironmentBeatsDefault(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("NPR_API_URL", "https://env.example.com/api")
	t.Setenv("NPR_API_KEY", "env-key")

	got := runConfigShow(t)

	if !strings.Contains(got, "api url: https://env.example.com/api/ (environment)") {
		t.Errorf("output %q missing env-sourced URL", got)
	}
}

func TestConfigShowFallsBackToDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("NPR_API_URL", "")
	t.Setenv("NPR_API_KEY", "")

	got := runConfigShow(t)

	if !strings.Contains(got, "api url: https://registry.nextflow.io/api/ (default)") {
		t.Errorf("output %q missing default URL provenance", got)
	}
	if !strings.Contains(got, "api key: not configured") {
		t.Errorf("output %q should report the key as not configured", got)
	}
}

func TestMaskKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"env-key", "env-***"},
		{"abcd", "****"},
		{"ab", "**"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := maskKey(tt.in); got != tt.want {
			t.Errorf("maskKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
