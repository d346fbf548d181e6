package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/nextflow-io/npr/internal/branding"
)

const releasePath = "v1/plugins/release"

const (
	connectTimeout = 30 * time.Second
	draftTimeout   = 60 * time.Second
	// Uploads carry whole plugin archives, so they get a much longer
	// overall deadline than the draft call.
	uploadTimeout = 5 * time.Minute
)

// Client talks the two-phase release protocol to one registry. Its only
// state is the immutable (base URL, API key) pair, so a single instance
// is safe to reuse across independent release calls.
type Client struct {
	baseURL      string
	apiKey       string
	draftClient  *http.Client
	uploadClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces both underlying HTTP clients, dropping the
// default timeouts (useful for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.draftClient = c
		cl.uploadClient = c
	}
}

// NewClient creates a Client for the given connection settings. An
// empty API key is rejected immediately with a ConfigError; the base
// URL is normalized exactly once, here.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, &ConfigError{Message: "registry API key is empty"}
	}
	dialer := &net.Dialer{Timeout: connectTimeout}
	c := &Client{
		baseURL: NormalizeURL(cfg.BaseURL),
		apiKey:  cfg.APIKey,
		draftClient: &http.Client{
			Timeout:   draftTimeout,
			Transport: &http.Transport{DialContext: dialer.DialContext},
		},
		uploadClient: &http.Client{
			Timeout:   uploadTimeout,
			Transport: &http.Transport{DialContext: dialer.DialContext},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalized registry base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// NormalizeURL ensures a base URL ends with exactly one trailing slash.
// It is idempotent: normalizing an already-normalized URL returns the
// same string.
func NormalizeURL(u string) string {
	u = strings.TrimSpace(u)
	if u == "" {
		return u
	}
	return strings.TrimRight(u, "/") + "/"
}

// draftReleaseBody is the phase-1 request payload.
type draftReleaseBody struct {
	ID       string          `json:"id"`
	Version  string          `json:"version"`
	Checksum string          `json:"checksum"`
	Provider string          `json:"provider"`
	Spec     json.RawMessage `json:"spec,omitempty"`
}

// draftReleaseResponse is the phase-1 success payload. The release id
// is opaque to the client: JSON numbers and strings are both accepted
// and carried as their literal text.
type draftReleaseResponse struct {
	ReleaseID any    `json:"releaseId"`
	Status    string `json:"status"`
}

// CreateDraftRelease runs phase 1: it registers the release metadata
// and checksum with the registry and returns the server-assigned draft
// handle. A missing provider is a configuration error and is never
// attempted over the wire.
func (c *Client) CreateDraftRelease(ctx context.Context, req ReleaseRequest) (*DraftRelease, error) {
	if strings.TrimSpace(req.Provider) == "" {
		return nil, &ConfigError{Message: fmt.Sprintf(
			"plugin provider is not set. Declare it in plugin.yaml or pass --provider to %s publish",
			branding.CLIName())}
	}

	endpoint := c.baseURL + releasePath
	payload, err := json.Marshal(draftReleaseBody{
		ID:       req.ID,
		Version:  req.Version,
		Checksum: req.Checksum,
		Provider: req.Provider,
		Spec:     req.Spec,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding draft release request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating draft release request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	c.setCommonHeaders(httpReq)

	body, err := c.do(c.draftClient, httpReq, endpoint)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var resp draftReleaseResponse
	if err := dec.Decode(&resp); err != nil {
		return nil, fmt.Errorf("parsing draft release response from %s: %w", endpoint, err)
	}

	var releaseID string
	switch v := resp.ReleaseID.(type) {
	case string:
		releaseID = v
	case json.Number:
		releaseID = v.String()
	case nil:
	default:
		return nil, fmt.Errorf("draft release response from %s has a non-scalar releaseId", endpoint)
	}
	if releaseID == "" {
		return nil, fmt.Errorf("draft release response from %s is missing releaseId", endpoint)
	}

	return &DraftRelease{ID: releaseID, Status: resp.Status}, nil
}

// UploadArtifact runs phase 2: it uploads the plugin archive against a
// draft release created in phase 1.
func (c *Client) UploadArtifact(ctx context.Context, draft *DraftRelease, filename string, artifact []byte) error {
	endpoint := c.baseURL + releasePath + "/" + draft.ID + "/upload"

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("payload", filename)
	if err != nil {
		return fmt.Errorf("creating upload form: %w", err)
	}
	if _, err := part.Write(artifact); err != nil {
		return fmt.Errorf("writing upload form: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finalizing upload form: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return fmt.Errorf("creating upload request: %w", err)
	}
	httpReq.Header.Set("Content-Type", w.FormDataContentType())
	c.setCommonHeaders(httpReq)

	_, err = c.do(c.uploadClient, httpReq, endpoint)
	return err
}

// Release runs the full protocol: draft creation, then artifact upload.
// The phases are strictly sequential and nothing is retried; retry
// policy belongs to the caller (typically a CI pipeline).
func (c *Client) Release(ctx context.Context, req ReleaseRequest) (*ReleaseResult, error) {
	draft, err := c.CreateDraftRelease(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := c.UploadArtifact(ctx, draft, req.Filename, req.Artifact); err != nil {
		return nil, err
	}
	return &ReleaseResult{Success: true}, nil
}

// ReleaseIfNotExists behaves like Release, except an HTTP 409 during
// draft creation means the release already exists on the registry: the
// upload is never attempted and the result reports Skipped instead of
// failing. Every other failure, including any phase-2 failure,
// propagates unchanged.
func (c *Client) ReleaseIfNotExists(ctx context.Context, req ReleaseRequest) (*ReleaseResult, error) {
	draft, err := c.CreateDraftRelease(ctx, req)
	if err != nil {
		var httpErr *HTTPError
		if errors.As(err, &httpErr) && httpErr.Status == http.StatusConflict {
			dup := &DuplicateError{HTTP: httpErr}
			return &ReleaseResult{Success: true, Skipped: true, Message: dup.Error()}, nil
		}
		return nil, err
	}
	if err := c.UploadArtifact(ctx, draft, req.Filename, req.Artifact); err != nil {
		return nil, err
	}
	return &ReleaseResult{Success: true}, nil
}

func (c *Client) setCommonHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("User-Agent", branding.CLIName()+"-client")
}

// do executes a request and classifies the outcome: transport and
// context failures become ConnectionError, non-200 responses become
// HTTPError with the response body attached, and a 200 returns the
// raw body.
func (c *Client) do(client *http.Client, req *http.Request, endpoint string) ([]byte, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, &ConnectionError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ConnectionError{Endpoint: endpoint, Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &HTTPError{
			Endpoint: endpoint,
			Status:   resp.StatusCode,
			Body:     strings.TrimSpace(string(body)),
		}
	}
	return body, nil
}
