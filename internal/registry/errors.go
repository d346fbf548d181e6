package registry

import "fmt"

// ConfigError reports a required input (API key, provider, version)
// that is missing or invalid. It is always raised before any network
// attempt.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string { return e.Message }

// ConnectionError reports a transport-level failure: connection
// refused, unresolved host, or a cancelled context. The endpoint is
// included so the failing target is visible in build logs.
type ConnectionError struct {
	Endpoint string
	Err      error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("cannot reach %s: %v", e.Endpoint, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// HTTPError reports a non-200 application response. The numeric status
// is a first-class field so callers branch on it rather than on
// message text.
type HTTPError struct {
	Endpoint string
	Status   int
	Body     string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s returned status %d", e.Endpoint, e.Status)
	}
	return fmt.Sprintf("%s returned status %d: %s", e.Endpoint, e.Status, e.Body)
}

// DuplicateError marks a release that already exists on the registry,
// classified from an HTTP 409 during draft creation. It unwraps to the
// original HTTPError.
type DuplicateError struct {
	HTTP *HTTPError
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("release already exists: %s", e.HTTP.Error())
}

func (e *DuplicateError) Unwrap() error { return e.HTTP }

// PreconditionError reports a failed pre-flight check. The message
// carries the full remediation text so a CI failure is actionable
// without consulting external documentation.
type PreconditionError struct {
	Message string
}

func (e *PreconditionError) Error() string { return e.Message }
