// Package reconcile cross-references the local contract registry against
// observed chain state and classifies every difference into an actionable
// discrepancy category.
package reconcile

import (
	"fmt"
	"strings"
)

// Category classifies a discrepancy between the registry and chain state.
type Category string

const (
	// CategoryMissingFromRegistry indicates code stored on chain with no
	// registry entry.
	CategoryMissingFromRegistry Category = "missing_from_registry"
	// CategoryMissingFromChain indicates a registry entry whose code id
	// does not resolve on chain.
	CategoryMissingFromChain Category = "missing_from_chain"
	// CategoryHashMismatch indicates a registry hash that differs from the
	// stored code's data hash.
	CategoryHashMismatch Category = "hash_mismatch"
	// CategoryGovernanceMisattribution indicates a "Genesis" entry whose
	// hash matches a governance code-upload payload.
	CategoryGovernanceMisattribution Category = "governance_misattribution"
	// CategoryDeprecatedStillLive indicates a deprecated entry that still
	// resolves on chain. Deployed code cannot be removed from a chain, so
	// findings in this category are advisory bookkeeping signals.
	CategoryDeprecatedStillLive Category = "deprecated_still_live"
	// CategoryTestnetDivergence indicates a testnet deployment that has
	// drifted from its registry record.
	CategoryTestnetDivergence Category = "testnet_divergence"
)

// categoryOrder fixes the report order of categories.
var categoryOrder = []Category{
	CategoryMissingFromRegistry,
	CategoryMissingFromChain,
	CategoryHashMismatch,
	CategoryGovernanceMisattribution,
	CategoryDeprecatedStillLive,
	CategoryTestnetDivergence,
}

// Categories returns every discrepancy category in report order.
func Categories() []Category {
	return append([]Category(nil), categoryOrder...)
}

// rank returns the position of a category in the fixed report order.
func rank(c Category) int {
	for i, cat := range categoryOrder {
		if cat == c {
			return i
		}
	}
	return len(categoryOrder)
}

// Priority ranks how urgently a recommendation should be acted on.
type Priority string

const (
	// PriorityHigh marks findings that make the registry misleading.
	PriorityHigh Priority = "high"
	// PriorityMedium marks findings that need review but do not
	// invalidate the registry.
	PriorityMedium Priority = "medium"
)

// categoryPriority is the fixed category-to-priority mapping.
var categoryPriority = map[Category]Priority{
	CategoryMissingFromRegistry:      PriorityHigh,
	CategoryMissingFromChain:         PriorityMedium,
	CategoryHashMismatch:             PriorityHigh,
	CategoryGovernanceMisattribution: PriorityMedium,
	CategoryDeprecatedStillLive:      PriorityMedium,
	CategoryTestnetDivergence:        PriorityMedium,
}

// Testnet divergence reasons.
const (
	// ReasonNotFound means the testnet code id does not resolve at all.
	ReasonNotFound = "not_found"
	// ReasonHashMismatch means the testnet code resolves with a
	// different hash.
	ReasonHashMismatch = "hash_mismatch"
)

// ProposalRef identifies the governance proposal backing a finding.
type ProposalRef struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Status string `json:"status"`
}

// Discrepancy is one detected difference between the registry and
// observed chain state.
type Discrepancy struct {
	Category      Category     `json:"category"`
	CodeID        string       `json:"code_id"`                   // registry identity, or chain identity when unregistered
	Name          string       `json:"name,omitempty"`            // registry name when known
	Creator       string       `json:"creator,omitempty"`         // chain-side uploader address
	Expected      string       `json:"expected,omitempty"`        // registry-side value
	Actual        string       `json:"actual,omitempty"`          // chain-side value
	Reason        string       `json:"reason,omitempty"`          // sub-classification within the category
	TestnetCodeID string       `json:"testnet_code_id,omitempty"` // testnet identity for divergence findings
	Proposal      *ProposalRef `json:"proposal,omitempty"`        // matched governance proposal
	Advisory      bool         `json:"advisory,omitempty"`        // informational, no remediation implied
}

// String renders the discrepancy as one human-readable line.
func (d Discrepancy) String() string {
	name := d.Name
	if name == "" {
		name = "unregistered"
	}
	switch d.Category {
	case CategoryMissingFromRegistry:
		return fmt.Sprintf("code %s on chain has no registry entry (creator %s, hash %s)", d.CodeID, d.Creator, d.Actual)
	case CategoryMissingFromChain:
		return fmt.Sprintf("%s (code %s) does not resolve on chain", name, d.CodeID)
	case CategoryHashMismatch:
		return fmt.Sprintf("%s (code %s) hash mismatch: registry %s, chain %s", name, d.CodeID, d.Expected, d.Actual)
	case CategoryGovernanceMisattribution:
		ref := "a governance proposal"
		if d.Proposal != nil {
			ref = fmt.Sprintf("proposal %s (%s, %s)", d.Proposal.ID, d.Proposal.Title, d.Proposal.Status)
		}
		return fmt.Sprintf("%s (code %s) is attributed to Genesis but was uploaded via %s", name, d.CodeID, ref)
	case CategoryDeprecatedStillLive:
		return fmt.Sprintf("%s (code %s) is deprecated in the registry but still live on chain", name, d.CodeID)
	case CategoryTestnetDivergence:
		if d.Reason == ReasonNotFound {
			return fmt.Sprintf("%s testnet code %s does not resolve on the testnet", name, d.TestnetCodeID)
		}
		return fmt.Sprintf("%s testnet code %s hash mismatch: registry %s, chain %s", name, d.TestnetCodeID, d.Expected, d.Actual)
	default:
		return fmt.Sprintf("%s (code %s): %s", name, d.CodeID, d.Category)
	}
}

// Recommendation is a prioritized, human-actionable follow-up derived
// from one non-empty discrepancy category.
type Recommendation struct {
	Category Category `json:"category"`
	Priority Priority `json:"priority"`
	Count    int      `json:"count"`
	Message  string   `json:"message"`
}

// Summary aggregates counts for one reconciliation pass.
type Summary struct {
	LocalContracts int              `json:"local_contracts"`
	OnChainCodes   int              `json:"on_chain_codes"`
	TestnetCodes   int              `json:"testnet_codes"`
	Proposals      int              `json:"proposals"`
	IndexedUploads int              `json:"indexed_uploads"` // hashed code-upload payloads
	Matched        int              `json:"matched"`         // code ids present both locally and on chain
	ByCategory     map[Category]int `json:"by_category,omitempty"`
	Total          int              `json:"total"`
}

// Result is the full outcome of one reconciliation pass.
type Result struct {
	Discrepancies   []Discrepancy    `json:"discrepancies"`
	Recommendations []Recommendation `json:"recommendations"`
	Summary         Summary          `json:"summary"`
}

// HasDiscrepancies returns true when the pass found any difference.
func (r *Result) HasDiscrepancies() bool {
	return r.Summary.Total > 0
}

// Actionable returns the number of non-advisory discrepancies. Advisory
// findings are reported but do not fail a verification run.
func (r *Result) Actionable() int {
	n := 0
	for _, d := range r.Discrepancies {
		if !d.Advisory {
			n++
		}
	}
	return n
}

// ByCategory returns the discrepancies of one category in report order.
func (r *Result) ByCategory(c Category) []Discrepancy {
	var out []Discrepancy
	for _, d := range r.Discrepancies {
		if d.Category == c {
			out = append(out, d)
		}
	}
	return out
}

// String returns a human-readable summary of the result.
func (r *Result) String() string {
	if !r.HasDiscrepancies() {
		return fmt.Sprintf("No discrepancies across %d registry and %d on-chain entries", r.Summary.LocalContracts, r.Summary.OnChainCodes)
	}

	var parts []string
	for _, cat := range categoryOrder {
		if n := r.Summary.ByCategory[cat]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s: %d", cat, n))
		}
	}
	return fmt.Sprintf("%d discrepancies (%s)", r.Summary.Total, strings.Join(parts, ", "))
}
