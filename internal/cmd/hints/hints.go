// Package hints provides actionable user guidance for CLI failures.
package hints

import (
	"errors"
	"fmt"
	"strings"

	pkgerrors "github.com/wasmregistry/codemap/pkg/errors"
)

// Hint represents actionable user guidance.
type Hint struct {
	Message string // Human-readable guidance message
	Command string // Optional specific command to run
	URL     string // Optional documentation link
}

// New creates a new hint with the given message.
func New(message string) *Hint {
	return &Hint{
		Message: message,
	}
}

// WithCommand adds a command to the hint.
func (h *Hint) WithCommand(command string) *Hint {
	h.Command = command
	return h
}

// WithURL adds a URL to the hint.
func (h *Hint) WithURL(url string) *Hint {
	h.URL = url
	return h
}

// String returns a string representation of the hint.
func (h *Hint) String() string {
	var parts []string

	parts = append(parts, fmt.Sprintf("💡 %s", h.Message))

	if h.Command != "" {
		parts = append(parts, fmt.Sprintf("   Run: %s", h.Command))
	}

	if h.URL != "" {
		parts = append(parts, fmt.Sprintf("   See: %s", h.URL))
	}

	return strings.Join(parts, "\n")
}

// ForError maps a failure to guidance the user can act on. Report
// failures carry their own explanation and yield no hint; hints cover
// the infrastructure errors around them.
func ForError(err error) []*Hint {
	if err == nil {
		return nil
	}

	switch {
	case pkgerrors.IsRateLimited(err):
		return []*Hint{
			New("The LCD endpoint rate limited this run").
				WithCommand("codemap verify --skip-governance"),
			New("Public proxies throttle aggressively; a dedicated node avoids the limit").
				WithURL("https://cosmos.directory"),
		}

	case pkgerrors.IsChainUnavailable(err):
		return []*Hint{
			New("The LCD endpoint is unavailable; set networks.mainnet.rest to another node in .codemap.yaml").
				WithURL("https://cosmos.directory"),
		}

	case pkgerrors.IsNotFound(err):
		var nf *pkgerrors.NotFoundError
		if errors.As(err, &nf) && nf.Resource == "contract" {
			return []*Hint{
				New("Browse the registry to find valid code ids").
					WithCommand("codemap list"),
			}
		}
		return nil
	}

	var ioErr *pkgerrors.IOError
	if errors.As(err, &ioErr) {
		return []*Hint{
			New(fmt.Sprintf("Could not %s %s; pass the registry location explicitly", ioErr.Operation, ioErr.Path)).
				WithCommand("codemap validate --registry path/to/contracts.json"),
		}
	}

	var cfgErr *pkgerrors.ConfigError
	if errors.As(err, &cfgErr) {
		return []*Hint{
			New("Check the configuration file and environment overrides").
				WithCommand("codemap check --config .codemap.yaml --verbose"),
		}
	}

	return nil
}
