package integrations

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/matzehuels/biblio/pkg/errors"
	"github.com/matzehuels/biblio/pkg/observability"
)

// Client provides shared HTTP functionality for upstream catalog clients.
// It applies default headers, classifies failures into coded transport
// faults and reports every request to the observability hooks.
//
// Client never retries. A failed request is reported to the caller once.
type Client struct {
	http    *http.Client
	headers map[string]string
}

// NewClient creates a Client with the given timeout and default headers.
// Headers are applied to all requests made through this client.
// Pass nil for headers if no default headers are needed.
func NewClient(timeout time.Duration, headers map[string]string) *Client {
	return &Client{
		http:    NewHTTPClient(timeout),
		headers: headers,
	}
}

// Get performs an HTTP GET request and returns the response body.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	return c.GetWithHeaders(ctx, url, nil)
}

// GetWithHeaders performs an HTTP GET with additional headers merged with defaults.
// Request-specific headers override client defaults for the same key.
//
// Any response outside 2xx is a transport fault: the returned *errors.Error
// carries NETWORK_ERROR, TIMEOUT or RATE_LIMITED and wraps [ErrNetwork].
func (c *Client) GetWithHeaders(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfig, err, "invalid upstream request")
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	host, path := req.URL.Host, req.URL.Path
	hooks := observability.HTTP()
	hooks.OnRequest(ctx, req.Method, host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		return nil, transportError(host, err)
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp); err != nil {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
		return nil, err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return nil, transportError(host, err)
	}
	if len(body) > maxBodySize {
		return nil, errors.New(errors.ErrCodeSchema, "response from %s exceeds %d bytes", host, maxBodySize)
	}
	return body, nil
}

func transportError(host string, err error) error {
	cause := fmt.Errorf("%w: %w", ErrNetwork, err)
	if isTimeout(err) {
		return errors.Wrap(errors.ErrCodeTimeout, cause, "request to %s timed out", host)
	}
	return errors.Wrap(errors.ErrCodeNetwork, cause, "request to %s failed", host)
}

func isTimeout(err error) bool {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return stderrors.As(err, &ne) && ne.Timeout()
}

func checkStatus(resp *http.Response) error {
	code := resp.StatusCode
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return errors.Wrap(errors.ErrCodeNetwork, fmt.Errorf("%w: %w", ErrNetwork, ErrNotFound),
			"upstream returned status %d", code)
	case code == http.StatusTooManyRequests:
		rl := &errors.RateLimitedError{RetryAfter: retryAfter(resp.Header.Get("Retry-After"))}
		return errors.Wrap(errors.ErrCodeRateLimited, fmt.Errorf("%w: %w", ErrNetwork, rl),
			"upstream returned status %d", code)
	default:
		return errors.Wrap(errors.ErrCodeNetwork, fmt.Errorf("%w: status %d", ErrNetwork, code),
			"upstream returned status %d", code)
	}
}

// retryAfter parses a Retry-After header given in seconds.
// HTTP-date values and garbage yield zero.
func retryAfter(v string) int {
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
