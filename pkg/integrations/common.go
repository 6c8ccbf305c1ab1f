package integrations

import (
	"errors"
	"net/http"
	"time"
)

// DefaultTimeout bounds a single upstream request when no timeout is configured.
const DefaultTimeout = 10 * time.Second

// maxBodySize caps how much of an upstream response is read.
const maxBodySize = 4 << 20

var (
	// ErrNotFound is returned when the upstream answers 404 for the request path.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, non-2xx responses).
	ErrNetwork = errors.New("network error")
)

// NewHTTPClient creates an HTTP client with the given request timeout.
// A non-positive timeout selects [DefaultTimeout].
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}
