// Package filter narrows registry record lists for browsing commands.
package filter

import (
	"strings"

	"github.com/wasmregistry/codemap/pkg/registry"
)

// ContractFilter applies filters to registry record lists.
type ContractFilter struct {
	Search     string // substring match on name and description
	Governance string // exact match: "Genesis" or a proposal id
	Deprecated bool   // keep only deprecated records
}

// Apply filters a slice of registry records.
func (f *ContractFilter) Apply(contracts []registry.Contract) []registry.Contract {
	if f == nil || f.isEmpty() {
		return contracts
	}

	var filtered []registry.Contract
	for _, c := range contracts {
		if f.matches(c) {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

func (f *ContractFilter) isEmpty() bool {
	return f.Search == "" &&
		f.Governance == "" &&
		!f.Deprecated
}

func (f *ContractFilter) matches(c registry.Contract) bool {
	if f.Deprecated && !c.Deprecated {
		return false
	}

	if f.Governance != "" && c.Governance != f.Governance {
		return false
	}

	if f.Search != "" {
		term := strings.ToLower(f.Search)
		name := strings.ToLower(c.Name)
		desc := strings.ToLower(c.Description)
		if !strings.Contains(name, term) && !strings.Contains(desc, term) {
			return false
		}
	}

	return true
}
