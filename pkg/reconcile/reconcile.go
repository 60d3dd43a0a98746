package reconcile

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/wasmregistry/codemap/pkg/chain"
	"github.com/wasmregistry/codemap/pkg/checksum"
	"github.com/wasmregistry/codemap/pkg/logging"
	"github.com/wasmregistry/codemap/pkg/registry"
)

// indices holds the identity-keyed lookup tables built once per pass.
type indices struct {
	localByID      map[string]registry.Contract
	onChainByID    map[string]chain.CodeInfo
	onChainByHash  map[string]chain.CodeInfo // onChainByID mirrored under the normalized hash
	testnetByID    map[string]chain.CodeInfo
	proposalByHash map[string]ProposalRef // normalized upload hash, first matching proposal wins
	indexedUploads int
}

// Reconcile compares the registry against fetched chain state and
// returns every detected discrepancy plus derived recommendations.
// Categories are computed independently, so one record may surface in
// several at once.
//
// A nil testnetOnChain means the testnet was not queried and testnet
// checks are skipped entirely; an empty non-nil slice means the testnet
// answered with no stored code.
func Reconcile(local []registry.Contract, onChain, testnetOnChain []chain.CodeInfo, proposals []chain.Proposal) *Result {
	idx := buildIndices(local, onChain, testnetOnChain, proposals)

	discrepancies := []Discrepancy{}
	discrepancies = append(discrepancies, missingFromRegistry(onChain, idx)...)
	discrepancies = append(discrepancies, missingFromChain(local, idx)...)
	discrepancies = append(discrepancies, hashMismatches(local, idx)...)
	discrepancies = append(discrepancies, governanceMisattributions(local, idx)...)
	discrepancies = append(discrepancies, deprecatedStillLive(local, idx)...)
	if testnetOnChain != nil {
		discrepancies = append(discrepancies, testnetDivergence(local, idx)...)
	}
	sortDiscrepancies(discrepancies)

	summary := summarize(local, onChain, testnetOnChain, proposals, idx, discrepancies)

	return &Result{
		Discrepancies:   discrepancies,
		Recommendations: recommendations(summary),
		Summary:         summary,
	}
}

// buildIndices creates the lookup tables every category check consults.
// Code-upload payloads that yield no hash are logged and skipped; they
// can never match a registry entry.
func buildIndices(local []registry.Contract, onChain, testnetOnChain []chain.CodeInfo, proposals []chain.Proposal) *indices {
	idx := &indices{
		localByID:      make(map[string]registry.Contract, len(local)),
		onChainByID:    make(map[string]chain.CodeInfo, len(onChain)),
		onChainByHash:  make(map[string]chain.CodeInfo, len(onChain)),
		testnetByID:    make(map[string]chain.CodeInfo, len(testnetOnChain)),
		proposalByHash: make(map[string]ProposalRef),
	}

	for _, c := range local {
		idx.localByID[c.CodeID] = c
	}
	for _, info := range onChain {
		idx.onChainByID[info.CodeID] = info
		idx.onChainByHash[checksum.Normalize(info.DataHash)] = info
	}
	for _, info := range testnetOnChain {
		idx.testnetByID[info.CodeID] = info
	}

	for _, p := range proposals {
		for _, msg := range p.StoreCodeMessages() {
			payload, _ := msg.Payload()
			hash, err := checksum.FromBase64(payload)
			if err != nil {
				logging.Warn().
					Err(err).
					Str("proposal_id", p.ID).
					Msg("Skipping code-upload payload with no computable hash")
				continue
			}
			if _, exists := idx.proposalByHash[hash]; !exists {
				idx.proposalByHash[hash] = ProposalRef{
					ID:     p.ID,
					Title:  p.Title,
					Status: p.Status.String(),
				}
			}
			idx.indexedUploads++
		}
	}

	return idx
}

// missingFromRegistry flags on-chain code ids with no registry entry.
func missingFromRegistry(onChain []chain.CodeInfo, idx *indices) []Discrepancy {
	var out []Discrepancy
	for _, info := range onChain {
		if _, exists := idx.localByID[info.CodeID]; exists {
			continue
		}
		out = append(out, Discrepancy{
			Category: CategoryMissingFromRegistry,
			CodeID:   info.CodeID,
			Creator:  info.Creator,
			Actual:   checksum.Normalize(info.DataHash),
		})
	}
	return out
}

// missingFromChain flags registry records whose code id does not
// resolve on chain.
func missingFromChain(local []registry.Contract, idx *indices) []Discrepancy {
	var out []Discrepancy
	for _, c := range local {
		if _, exists := idx.onChainByID[c.CodeID]; exists {
			continue
		}
		out = append(out, Discrepancy{
			Category: CategoryMissingFromChain,
			CodeID:   c.CodeID,
			Name:     c.Name,
			Expected: c.Hash,
		})
	}
	return out
}

// hashMismatches compares registry hashes against on-chain data hashes
// for records that resolve on chain. The comparison is case-insensitive;
// chains report lowercase hex while the registry convention is uppercase.
func hashMismatches(local []registry.Contract, idx *indices) []Discrepancy {
	var out []Discrepancy
	for _, c := range local {
		info, exists := idx.onChainByID[c.CodeID]
		if !exists || checksum.Equal(c.Hash, info.DataHash) {
			continue
		}
		out = append(out, Discrepancy{
			Category: CategoryHashMismatch,
			CodeID:   c.CodeID,
			Name:     c.Name,
			Expected: checksum.Normalize(c.Hash),
			Actual:   checksum.Normalize(info.DataHash),
		})
	}
	return out
}

// governanceMisattributions flags records attributed to Genesis whose
// hash matches a governance code-upload payload.
func governanceMisattributions(local []registry.Contract, idx *indices) []Discrepancy {
	var out []Discrepancy
	for _, c := range local {
		if !c.IsGenesis() {
			continue
		}
		ref, hit := idx.proposalByHash[checksum.Normalize(c.Hash)]
		if !hit {
			continue
		}
		out = append(out, Discrepancy{
			Category: CategoryGovernanceMisattribution,
			CodeID:   c.CodeID,
			Name:     c.Name,
			Expected: "Genesis",
			Actual:   "proposal " + ref.ID,
			Proposal: &ref,
		})
	}
	return out
}

// deprecatedStillLive flags deprecated records that still resolve on
// chain. Advisory: stored code cannot be removed from a chain.
func deprecatedStillLive(local []registry.Contract, idx *indices) []Discrepancy {
	var out []Discrepancy
	for _, c := range local {
		if !c.Deprecated {
			continue
		}
		if _, live := idx.onChainByID[c.CodeID]; !live {
			continue
		}
		out = append(out, Discrepancy{
			Category: CategoryDeprecatedStillLive,
			CodeID:   c.CodeID,
			Name:     c.Name,
			Advisory: true,
		})
	}
	return out
}

// testnetDivergence checks every registry record carrying a testnet
// deployment against the fetched testnet state. A missing code id and a
// differing hash are distinct findings, never merged.
func testnetDivergence(local []registry.Contract, idx *indices) []Discrepancy {
	var out []Discrepancy
	for _, c := range local {
		if !c.HasTestnet() {
			continue
		}
		t := c.Testnet

		info, exists := idx.testnetByID[t.CodeID]
		if !exists {
			out = append(out, Discrepancy{
				Category:      CategoryTestnetDivergence,
				CodeID:        c.CodeID,
				Name:          c.Name,
				Reason:        ReasonNotFound,
				TestnetCodeID: t.CodeID,
				Expected:      checksum.Normalize(t.Hash),
			})
			continue
		}
		if checksum.Equal(t.Hash, info.DataHash) {
			continue
		}
		out = append(out, Discrepancy{
			Category:      CategoryTestnetDivergence,
			CodeID:        c.CodeID,
			Name:          c.Name,
			Reason:        ReasonHashMismatch,
			TestnetCodeID: t.CodeID,
			Expected:      checksum.Normalize(t.Hash),
			Actual:        checksum.Normalize(info.DataHash),
		})
	}
	return out
}

// sortDiscrepancies orders findings by category, then numeric code id.
func sortDiscrepancies(ds []Discrepancy) {
	sort.SliceStable(ds, func(i, j int) bool {
		if ri, rj := rank(ds[i].Category), rank(ds[j].Category); ri != rj {
			return ri < rj
		}
		return lessNumeric(ds[i].CodeID, ds[j].CodeID)
	})
}

// lessNumeric orders decimal id strings by value, falling back to
// lexical order for ids that do not parse.
func lessNumeric(a, b string) bool {
	na, errA := strconv.ParseUint(a, 10, 64)
	nb, errB := strconv.ParseUint(b, 10, 64)
	if errA == nil && errB == nil {
		return na < nb
	}
	return a < b
}

// summarize computes coverage and per-category counts for the pass.
func summarize(local []registry.Contract, onChain, testnetOnChain []chain.CodeInfo, proposals []chain.Proposal, idx *indices, ds []Discrepancy) Summary {
	matched := 0
	for _, c := range local {
		if _, exists := idx.onChainByID[c.CodeID]; exists {
			matched++
		}
	}

	byCategory := make(map[Category]int)
	for _, d := range ds {
		byCategory[d.Category]++
	}

	return Summary{
		LocalContracts: len(local),
		OnChainCodes:   len(onChain),
		TestnetCodes:   len(testnetOnChain),
		Proposals:      len(proposals),
		IndexedUploads: idx.indexedUploads,
		Matched:        matched,
		ByCategory:     byCategory,
		Total:          len(ds),
	}
}

// recommendations derives one prioritized action per non-empty category
// in report order. The category-to-priority mapping is fixed.
func recommendations(s Summary) []Recommendation {
	recs := []Recommendation{}
	for _, cat := range categoryOrder {
		n := s.ByCategory[cat]
		if n == 0 {
			continue
		}
		recs = append(recs, Recommendation{
			Category: cat,
			Priority: categoryPriority[cat],
			Count:    n,
			Message:  recommendationMessage(cat, n),
		})
	}
	return recs
}

func recommendationMessage(c Category, n int) string {
	switch c {
	case CategoryMissingFromRegistry:
		return fmt.Sprintf("Research and register %s found on chain without a registry entry", countNoun(n, "code id"))
	case CategoryMissingFromChain:
		return fmt.Sprintf("Verify %s whose code id does not resolve on chain", countNoun(n, "registry record"))
	case CategoryHashMismatch:
		return fmt.Sprintf("Re-verify %s whose hash differs from the stored bytecode", countNoun(n, "registry record"))
	case CategoryGovernanceMisattribution:
		return fmt.Sprintf("Correct the governance attribution of %s claiming Genesis but matching a proposal upload", countNoun(n, "record"))
	case CategoryDeprecatedStillLive:
		return fmt.Sprintf("Review %s marked deprecated but still live on chain (informational)", countNoun(n, "record"))
	case CategoryTestnetDivergence:
		return fmt.Sprintf("Refresh the testnet deployment details of %s", countNoun(n, "record"))
	default:
		return fmt.Sprintf("Review %s", countNoun(n, "finding"))
	}
}

// countNoun formats a count with basic pluralization.
func countNoun(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
