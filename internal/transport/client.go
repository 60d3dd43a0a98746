// Package transport provides the HTTP plumbing shared by chain API
// clients: a timeout-bound client plus JSON response decoding with
// status-to-error mapping.
package transport

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/wasmregistry/codemap/pkg/constants"
	"github.com/wasmregistry/codemap/pkg/errors"
	"github.com/wasmregistry/codemap/pkg/logging"
)

// DefaultHTTPTimeout is the default timeout for HTTP requests.
var DefaultHTTPTimeout = constants.DefaultHTTPTimeout

// Client performs HTTP requests against a chain REST endpoint.
type Client struct {
	http    *http.Client
	network string // label carried into errors, e.g. "mainnet"
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// New creates a transport client for the named network.
func New(network string, opts ...Option) *Client {
	c := &Client{
		http:    &http.Client{Timeout: DefaultHTTPTimeout},
		network: network,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Network returns the network label this client reports errors under.
func (c *Client) Network() string {
	return c.network
}

// Get performs a GET request with JSON accept headers.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.WrapResource("create", "request", "GET "+url, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &errors.APIError{
			Network:  c.network,
			Endpoint: url,
			Message:  "request failed",
			Err:      err,
		}
	}
	return resp, nil
}

// GetJSON performs a GET request and decodes the JSON response into target.
func (c *Client) GetJSON(ctx context.Context, url string, target any) error {
	resp, err := c.Get(ctx, url)
	if err != nil {
		return err
	}
	return c.DecodeResponse(resp, url, target)
}

// DecodeResponse decodes a JSON response into the target structure.
// Non-2xx statuses map to an APIError carrying the status and body.
func (c *Client) DecodeResponse(resp *http.Response, endpoint string, target any) error {
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logging.Warn().Err(err).Str("endpoint", endpoint).Msg("failed to close response body")
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.WrapIO("read", "response body", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &errors.APIError{
			Network:    c.network,
			StatusCode: resp.StatusCode,
			Endpoint:   endpoint,
			Message:    string(body),
		}
	}

	if err := json.Unmarshal(body, target); err != nil {
		return errors.WrapParse("json", endpoint, err)
	}

	return nil
}
