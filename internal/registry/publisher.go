package registry

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// idPattern is the registry's plugin identifier contract.
var idPattern = regexp.MustCompile(`^[a-zA-Z0-9-]{5,64}$`)

// readmeRemediation is the full remediation text for a missing plugin
// README, inlined so a CI failure is self-explanatory.
const readmeRemediation = `plugin README is missing or empty

Every published plugin must ship a README.md; the registry renders it
as the plugin's landing page. At minimum it must contain:

  - a top-level heading naming the plugin
  - a short paragraph describing what the plugin does
  - a "Usage" section showing how to enable the plugin in a pipeline
  - a "Configuration" section listing the supported options

Formatting rules: plain Markdown, UTF-8 encoded, no raw HTML. Place
README.md next to plugin.yaml (or point --readme at it) and publish
again.`

// PublishRequest bundles a release request with the pre-flight inputs
// checked before any network activity.
type PublishRequest struct {
	ReleaseRequest

	// Readme is the plugin README contents. Publishing without a
	// non-empty README is rejected locally.
	Readme string
}

// Publisher coordinates a publish attempt: it validates the request
// locally, then drives the release protocol in either fail-on-duplicate
// or skip-on-duplicate mode.
type Publisher struct {
	client *Client
}

// NewPublisher creates a Publisher on top of an existing client.
func NewPublisher(client *Client) *Publisher {
	return &Publisher{client: client}
}

// Publish validates the request and executes the release. With
// failOnDuplicate set, an already-existing release surfaces as the
// registry's HTTP 409 error; otherwise it is skipped and reported as a
// successful no-op.
func (p *Publisher) Publish(ctx context.Context, req PublishRequest, failOnDuplicate bool) (*ReleaseResult, error) {
	if err := Preflight(req); err != nil {
		return nil, err
	}

	if failOnDuplicate {
		res, err := p.client.Release(ctx, req.ReleaseRequest)
		if err != nil {
			return nil, err
		}
		res.Message = fmt.Sprintf("Published %s@%s to %s", req.ID, req.Version, p.client.BaseURL())
		return res, nil
	}

	res, err := p.client.ReleaseIfNotExists(ctx, req.ReleaseRequest)
	if err != nil {
		return nil, err
	}
	if res.Skipped {
		res.Message = fmt.Sprintf("Skipped %s@%s: %s", req.ID, req.Version, res.Message)
	} else {
		res.Message = fmt.Sprintf("Published %s@%s to %s", req.ID, req.Version, p.client.BaseURL())
	}
	return res, nil
}

// Preflight checks a publish request without touching the network.
// Validation failures come back as PreconditionError (missing README)
// or ConfigError (bad identifier, version, or checksum).
func Preflight(req PublishRequest) error {
	if strings.TrimSpace(req.Readme) == "" {
		return &PreconditionError{Message: readmeRemediation}
	}
	if !idPattern.MatchString(req.ID) {
		return &ConfigError{Message: fmt.Sprintf(
			"invalid plugin id %q: must match %s", req.ID, idPattern.String())}
	}
	if _, err := semver.StrictNewVersion(req.Version); err != nil {
		return &ConfigError{Message: fmt.Sprintf(
			"invalid plugin version %q: %v", req.Version, err)}
	}
	if !strings.HasPrefix(req.Checksum, DigestPrefix) {
		return &ConfigError{Message: fmt.Sprintf(
			"artifact checksum %q is missing the %q algorithm prefix", req.Checksum, DigestPrefix)}
	}
	return nil
}
