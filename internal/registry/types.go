package registry

import "encoding/json"

// Config holds the resolved registry connection settings. It is built
// once per invocation by the config resolver and never mutated after.
type Config struct {
	BaseURL string // API base URL, normalized to end with a single "/"
	APIKey  string // bearer token; must be non-empty before any network call
}

// ReleaseRequest describes one publish attempt.
type ReleaseRequest struct {
	ID       string // plugin identifier, e.g. "nf-hello"
	Version  string // semantic version string
	Provider string // publishing organization, mandatory
	Checksum string // artifact digest with algorithm prefix, e.g. "sha512:<hex>"
	Filename string // artifact filename sent with the upload
	Artifact []byte // artifact bytes

	// Spec is the optional machine-readable capability spec document,
	// embedded verbatim in the draft release request when present.
	Spec json.RawMessage
}

// DraftRelease is the server-assigned handle returned by phase 1. It
// lives only for the duration of a single release call: created by
// CreateDraftRelease, consumed once by UploadArtifact.
type DraftRelease struct {
	ID     string // opaque release identifier
	Status string
}

// ReleaseResult is the outcome of a coordinator call. Skipped is only
// reachable through the duplicate-skip path (HTTP 409 on phase 1).
type ReleaseResult struct {
	Success bool
	Skipped bool
	Message string
}
