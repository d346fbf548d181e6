package config

import (
	"testing"
)

func TestLoadReadsPrefixedEnvironment(t *testing.T) {
	// Point the user config at an empty home so only the environment
	// contributes.
	t.Setenv("HOME", t.TempDir())
	t.Setenv("NPR_MIRROR", "https://mirror.example.com")

	Load()

	if got := Get("mirror"); got != "https://mirror.example.com" {
		t.Errorf("Get(mirror) = %q, want the NPR_MIRROR value", got)
	}
}

func TestGetUnsetKeyIsEmpty(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	Load()

	if got := Get("no-such-key"); got != "" {
		t.Errorf("Get(no-such-key) = %q, want empty", got)
	}
}
