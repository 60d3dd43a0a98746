// Package chain queries Cosmos SDK LCD endpoints for stored wasm code
// metadata and governance proposals. Each client is bound to exactly one
// network configuration; mainnet and testnet are never mixed in a fetch.
package chain

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/wasmregistry/codemap/pkg/constants"
	"github.com/wasmregistry/codemap/pkg/errors"
)

// Config identifies one network's LCD endpoint.
type Config struct {
	Name string `json:"name"` // human label, e.g. "juno"
	REST string `json:"rest"` // LCD base URL without trailing slash
}

// DefaultMainnet returns the built-in mainnet endpoint configuration.
func DefaultMainnet() Config {
	return Config{
		Name: constants.DefaultMainnetName,
		REST: constants.DefaultMainnetREST,
	}
}

// DefaultTestnet returns the built-in testnet endpoint configuration.
func DefaultTestnet() Config {
	return Config{
		Name: constants.DefaultTestnetName,
		REST: constants.DefaultTestnetREST,
	}
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.Name == "" {
		return &errors.ConfigError{
			Component: "chain",
			Message:   "network name is required",
		}
	}
	if c.REST == "" {
		return &errors.ConfigError{
			Component: "chain",
			Message:   fmt.Sprintf("network %q has no REST endpoint", c.Name),
		}
	}
	u, err := url.Parse(c.REST)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return &errors.ConfigError{
			Component: "chain",
			Message:   fmt.Sprintf("network %q has an invalid REST endpoint %q", c.Name, c.REST),
			Err:       err,
		}
	}
	return nil
}

// baseURL returns the REST endpoint normalized for path concatenation.
func (c Config) baseURL() string {
	return strings.TrimSuffix(c.REST, "/")
}
