package chain

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/wasmregistry/codemap/internal/transport"
	"github.com/wasmregistry/codemap/pkg/constants"
	"github.com/wasmregistry/codemap/pkg/errors"
	"github.com/wasmregistry/codemap/pkg/logging"
)

// LCD query paths.
const (
	codePath      = "/cosmwasm/wasm/v1/code"
	proposalsPath = "/cosmos/gov/v1/proposals"
)

// Client fetches stored code entries and governance proposals from one
// network's LCD endpoint.
type Client struct {
	cfg  Config
	hc   *http.Client
	http *transport.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client used for LCD requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.hc = hc
	}
}

// New creates a client for the given network configuration.
func New(cfg Config, opts ...Option) *Client {
	c := &Client{cfg: cfg}
	for _, opt := range opts {
		opt(c)
	}
	var topts []transport.Option
	if c.hc != nil {
		topts = append(topts, transport.WithHTTPClient(c.hc))
	}
	c.http = transport.New(cfg.Name, topts...)
	return c
}

// Network returns the network label this client queries.
func (c *Client) Network() string {
	return c.cfg.Name
}

// CodeInfos fetches every stored code entry, following the pagination
// token until the server stops returning one. Arrival order is
// preserved across pages. A successful fetch returns a non-nil slice
// even when the chain reports no stored code.
func (c *Client) CodeInfos(ctx context.Context) ([]CodeInfo, error) {
	var (
		infos   = []CodeInfo{}
		nextKey string
	)
	for page := 1; ; page++ {
		if page > constants.MaxPages {
			return nil, c.paginationStuck(codePath, page)
		}

		var resp codePage
		if err := c.http.GetJSON(ctx, c.codeURL(nextKey), &resp); err != nil {
			return nil, err
		}
		infos = append(infos, resp.CodeInfos...)

		logging.Debug().
			Str("network", c.cfg.Name).
			Int("page", page).
			Int("entries", len(resp.CodeInfos)).
			Msg("Fetched code info page")

		nextKey = resp.Pagination.NextKey
		if nextKey == "" {
			break
		}
	}
	return infos, nil
}

// Proposals fetches every governance proposal with the given status,
// following pagination the same way as CodeInfos.
func (c *Client) Proposals(ctx context.Context, status ProposalStatus) ([]Proposal, error) {
	var (
		proposals = []Proposal{}
		nextKey   string
	)
	for page := 1; ; page++ {
		if page > constants.MaxPages {
			return nil, c.paginationStuck(proposalsPath, page)
		}

		var resp proposalPage
		if err := c.http.GetJSON(ctx, c.proposalsURL(status, nextKey), &resp); err != nil {
			return nil, err
		}
		proposals = append(proposals, resp.Proposals...)

		logging.Debug().
			Str("network", c.cfg.Name).
			Int("page", page).
			Int("proposals", len(resp.Proposals)).
			Msg("Fetched proposal page")

		nextKey = resp.Pagination.NextKey
		if nextKey == "" {
			break
		}
	}
	return proposals, nil
}

func (c *Client) codeURL(nextKey string) string {
	u := c.cfg.baseURL() + codePath
	if nextKey != "" {
		u += "?pagination.key=" + url.QueryEscape(nextKey)
	}
	return u
}

func (c *Client) proposalsURL(status ProposalStatus, nextKey string) string {
	q := url.Values{}
	q.Set("proposal_status", strconv.Itoa(int(status)))
	if nextKey != "" {
		q.Set("pagination.key", nextKey)
	}
	return c.cfg.baseURL() + proposalsPath + "?" + q.Encode()
}

// paginationStuck reports a server that never stops returning
// continuation tokens.
func (c *Client) paginationStuck(path string, page int) error {
	return &errors.APIError{
		Network:  c.cfg.Name,
		Endpoint: c.cfg.baseURL() + path,
		Message:  fmt.Sprintf("pagination exceeded %d pages without terminating", page-1),
	}
}
