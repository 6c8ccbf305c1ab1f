package googlebooks

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/matzehuels/biblio/pkg/buildinfo"
	"github.com/matzehuels/biblio/pkg/errors"
	"github.com/matzehuels/biblio/pkg/integrations"
)

// DefaultBaseURL is the public Google Books volumes endpoint.
const DefaultBaseURL = "https://www.googleapis.com/books/v1/volumes"

// Options configures a [Client].
type Options struct {
	BaseURL string        // Volumes endpoint; required
	APIKey  string        // Optional; sent as the key query parameter
	Timeout time.Duration // Per-request timeout; 0 selects integrations.DefaultTimeout
}

// Query identifies the volume to fetch.
type Query struct {
	// Identifier is the normalized ISBN. It is sent as-is.
	Identifier string
}

// Client fetches raw volume payloads from Google Books.
type Client struct {
	*integrations.Client
	base   *url.URL
	apiKey string
}

// NewClient creates a Google Books client.
// It returns a CONFIG_ERROR fault when BaseURL is empty or not an absolute
// http(s) URL.
func NewClient(opts Options) (*Client, error) {
	if err := errors.ValidateURL(opts.BaseURL); err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfig, err, "invalid upstream base URL %q", opts.BaseURL)
	}
	base, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfig, err, "invalid upstream base URL %q", opts.BaseURL)
	}

	headers := map[string]string{
		"Content-Type": "application/json",
		"Accept":       "application/json",
		"User-Agent":   buildinfo.UserAgent(),
	}
	return &Client{
		Client: integrations.NewClient(opts.Timeout, headers),
		base:   base,
		apiKey: opts.APIKey,
	}, nil
}

// Fetch performs a single volumes request for q.
//
// A body that is empty or not a JSON object yields an empty Payload and no
// error; [Validate] reports it. Failures to reach the catalog, and any
// non-2xx answer, are returned as transport faults wrapping
// [integrations.ErrNetwork]. Fetch never retries.
func (c *Client) Fetch(ctx context.Context, q Query) (Payload, error) {
	body, err := c.Get(ctx, c.requestURL(q))
	if err != nil {
		return nil, err
	}
	return DecodePayload(body), nil
}

func (c *Client) requestURL(q Query) string {
	u := *c.base
	params := u.Query()
	params.Set("q", q.Identifier+"+isbn")
	params.Set("maxResults", strconv.Itoa(1))
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}
	u.RawQuery = params.Encode()
	return u.String()
}
