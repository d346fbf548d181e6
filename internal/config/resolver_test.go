package config

import (
	"errors"
	"strings"
	"testing"

	"github.com/nextflow-io/npr/internal/registry"
	"github.com/spf13/viper"
)

func newTestResolver(props, env map[string]string) *Resolver {
	v := viper.New()
	for key, value := range props {
		v.Set(key, value)
	}
	return &Resolver{
		v: v,
		lookupEnv: func(name string) (string, bool) {
			value, ok := env[name]
			return value, ok
		},
	}
}

func TestResolveURLPrecedence(t *testing.T) {
	props := map[string]string{"npr.apiUrl": "https://props.example.com"}
	env := map[string]string{"NPR_API_URL": "https://env.example.com"}

	tests := []struct {
		name      string
		explicit  string
		props     map[string]string
		env       map[string]string
		wantURL   string
		wantLayer Layer
	}{
		{"explicit wins over everything", "https://flag.example.com", props, env, "https://flag.example.com/", LayerFlag},
		{"property wins over environment", "", props, env, "https://props.example.com/", LayerProperty},
		{"environment wins over default", "", nil, env, "https://env.example.com/", LayerEnv},
		{"default when all unset", "", nil, nil, "https://registry.nextflow.io/api/", LayerDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestResolver(tt.props, tt.env)
			url, layer := r.ResolveURL(tt.explicit)
			if url != tt.wantURL {
				t.Errorf("url = %q, want %q", url, tt.wantURL)
			}
			if layer != tt.wantLayer {
				t.Errorf("layer = %q, want %q", layer, tt.wantLayer)
			}
		})
	}
}

func TestResolveURLIsNormalized(t *testing.T) {
	r := newTestResolver(nil, map[string]string{"NPR_API_URL": "https://env.example.com/api"})
	url, _ := r.ResolveURL("")
	if !strings.HasSuffix(url, "/") {
		t.Errorf("url = %q, want trailing slash", url)
	}
	again, _ := r.ResolveURL(url)
	if again != url {
		t.Errorf("normalization not idempotent: %q vs %q", again, url)
	}
}

func TestResolveKeyPrecedence(t *testing.T) {
	r := newTestResolver(
		map[string]string{"npr.apiKey": "prop-key"},
		map[string]string{"NPR_API_KEY": "env-key"},
	)

	key, layer, err := r.ResolveKey("flag-key")
	if err != nil {
		t.Fatalf("ResolveKey: %v", err)
	}
	if key != "flag-key" || layer != LayerFlag {
		t.Errorf("got (%q, %q), want explicit value", key, layer)
	}

	key, layer, err = r.ResolveKey("")
	if err != nil {
		t.Fatalf("ResolveKey: %v", err)
	}
	if key != "prop-key" || layer != LayerProperty {
		t.Errorf("got (%q, %q), want property value", key, layer)
	}

	key, layer, err = newTestResolver(nil, map[string]string{"NPR_API_KEY": "env-key"}).ResolveKey("")
	if err != nil {
		t.Fatalf("ResolveKey: %v", err)
	}
	if key != "env-key" || layer != LayerEnv {
		t.Errorf("got (%q, %q), want environment value", key, layer)
	}
}

func TestResolveKeyMissingEverywhere(t *testing.T) {
	r := newTestResolver(nil, nil)

	_, _, err := r.ResolveKey("")
	var cfgErr *registry.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("error = %T, want *registry.ConfigError", err)
	}

	// The message must enumerate every place the key can be set.
	for _, want := range []string{"--api-key", "npr.apiKey", "NPR_API_KEY"} {
		if !strings.Contains(cfgErr.Message, want) {
			t.Errorf("message %q missing remediation path %q", cfgErr.Message, want)
		}
	}
}

func TestResolveKeyHasNoDefault(t *testing.T) {
	// Unlike the URL, a key resolved at no layer is an error, never a
	// fallback value.
	r := newTestResolver(map[string]string{"npr.apiUrl": "https://props.example.com"}, nil)
	if _, _, err := r.ResolveKey(""); err == nil {
		t.Fatal("expected error for unset key, got nil")
	}
}

func TestWhitespaceValuesAreUnset(t *testing.T) {
	r := newTestResolver(
		map[string]string{"npr.apiKey": "   "},
		map[string]string{"NPR_API_KEY": "env-key"},
	)
	key, layer, err := r.ResolveKey("  ")
	if err != nil {
		t.Fatalf("ResolveKey: %v", err)
	}
	if key != "env-key" || layer != LayerEnv {
		t.Errorf("got (%q, %q), want fall-through to environment", key, layer)
	}
}

func TestResolveBuildsImmutableConfig(t *testing.T) {
	r := newTestResolver(nil, map[string]string{
		"NPR_API_URL": "https://env.example.com/api",
		"NPR_API_KEY": "env-key",
	})

	cfg, err := r.Resolve("", "")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.BaseURL != "https://env.example.com/api/" {
		t.Errorf("BaseURL = %q, want normalized env URL", cfg.BaseURL)
	}
	if cfg.APIKey != "env-key" {
		t.Errorf("APIKey = %q, want %q", cfg.APIKey, "env-key")
	}
}

func TestResolveFailsWithoutKey(t *testing.T) {
	r := newTestResolver(nil, nil)
	_, err := r.Resolve("https://flag.example.com", "")
	var cfgErr *registry.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("error = %T, want *registry.ConfigError", err)
	}
}
