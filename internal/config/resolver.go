package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nextflow-io/npr/internal/branding"
	"github.com/nextflow-io/npr/internal/registry"
	"github.com/spf13/viper"
)

// Layer identifies which configuration layer supplied a resolved value.
type Layer string

const (
	LayerFlag     Layer = "flag"
	LayerProperty Layer = "project property"
	LayerEnv      Layer = "environment"
	LayerDefault  Layer = "default"
	LayerNone     Layer = "unset"
)

// Property key suffixes and env var suffixes for the two settings.
// Full names are derived through the branding package, e.g.
// "npr.apiUrl" and "NPR_API_URL".
const (
	urlProperty = "apiUrl"
	keyProperty = "apiKey"
	urlEnvVar   = "API_URL"
	keyEnvVar   = "API_KEY"
)

// Resolver resolves the registry URL and API key across configuration
// layers, first non-empty value wins:
//
//  1. explicit value (command-line flag)
//  2. project property (.npr.yaml in the working directory, falling
//     back to ~/.npr/config.yaml)
//  3. environment variable
//  4. compiled-in default (URL only; the API key has no default)
type Resolver struct {
	v         *viper.Viper
	lookupEnv func(string) (string, bool)
}

// NewResolver loads the property layers and returns a ready Resolver.
func NewResolver() *Resolver {
	v := viper.New()
	v.SetConfigType(fileType)

	// User-level settings first, project properties merged on top.
	v.SetConfigFile(FilePath())
	_ = v.ReadInConfig()

	if wd, err := os.Getwd(); err == nil {
		project := filepath.Join(wd, ProjectFileName)
		if _, statErr := os.Stat(project); statErr == nil {
			v.SetConfigFile(project)
			_ = v.MergeInConfig()
		}
	}

	return &Resolver{v: v, lookupEnv: os.LookupEnv}
}

// ResolveURL resolves the registry API base URL, already normalized,
// and reports the layer it came from.
func (r *Resolver) ResolveURL(explicit string) (string, Layer) {
	value, layer := r.lookup(explicit, urlProperty, urlEnvVar)
	if layer == LayerNone {
		return registry.NormalizeURL(branding.DefaultRegistryURL()), LayerDefault
	}
	return registry.NormalizeURL(value), layer
}

// ResolveKey resolves the registry API key. There is no default: a key
// missing at every layer is a ConfigError whose message names each
// place it can be set.
func (r *Resolver) ResolveKey(explicit string) (string, Layer, error) {
	value, layer := r.lookup(explicit, keyProperty, keyEnvVar)
	if layer == LayerNone {
		return "", LayerNone, &registry.ConfigError{Message: fmt.Sprintf(
			"registry API key is not configured. Set it with the --api-key flag, the %s project property, or the %s environment variable",
			branding.PropertyKey(keyProperty), branding.EnvVar(keyEnvVar))}
	}
	return value, layer, nil
}

// Resolve collapses both settings into an immutable registry.Config.
func (r *Resolver) Resolve(explicitURL, explicitKey string) (registry.Config, error) {
	url, _ := r.ResolveURL(explicitURL)
	key, _, err := r.ResolveKey(explicitKey)
	if err != nil {
		return registry.Config{}, err
	}
	return registry.Config{BaseURL: url, APIKey: key}, nil
}

// lookup walks the explicit > property > environment chain and returns
// the first non-empty value together with its layer.
func (r *Resolver) lookup(explicit, propertySuffix, envSuffix string) (string, Layer) {
	if v := strings.TrimSpace(explicit); v != "" {
		return v, LayerFlag
	}
	if v := strings.TrimSpace(r.v.GetString(branding.PropertyKey(propertySuffix))); v != "" {
		return v, LayerProperty
	}
	if v, ok := r.lookupEnv(branding.EnvVar(envSuffix)); ok {
		if v = strings.TrimSpace(v); v != "" {
			return v, LayerEnv
		}
	}
	return "", LayerNone
}
