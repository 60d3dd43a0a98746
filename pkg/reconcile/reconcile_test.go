package reconcile

import (
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wasmregistry/codemap/pkg/chain"
	"github.com/wasmregistry/codemap/pkg/logging"
	"github.com/wasmregistry/codemap/pkg/registry"
)

// upperHash builds a deterministic 64-char uppercase hash from a seed.
func upperHash(seed byte) string {
	return strings.ToUpper(hex.EncodeToString(bytes.Repeat([]byte{seed}, 32)))
}

// payloadHash is the uppercase digest a store-code payload indexes under.
func payloadHash(raw []byte) string {
	sum := sha256.Sum256(raw)
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

func contract(codeID, hash, name, governance string) registry.Contract {
	return registry.Contract{
		CodeID:     codeID,
		Hash:       hash,
		Name:       name,
		Governance: governance,
	}
}

func storeCodeProposal(id, title string, payload []byte) chain.Proposal {
	return chain.Proposal{
		ID:     id,
		Title:  title,
		Status: chain.ProposalStatusPassed,
		Messages: []chain.ProposalMessage{
			{Type: chain.MsgStoreCodeType, WasmByteCode: base64.StdEncoding.EncodeToString(payload)},
		},
	}
}

func TestReconcileCleanRun(t *testing.T) {
	local := []registry.Contract{
		contract("1", upperHash(0xAA), "cw20-base", "Genesis"),
		contract("2", upperHash(0xBB), "cw721-base", "7"),
	}
	onChain := []chain.CodeInfo{
		{CodeID: "1", Creator: "juno1aaa", DataHash: strings.ToLower(upperHash(0xAA))},
		{CodeID: "2", Creator: "juno1bbb", DataHash: strings.ToLower(upperHash(0xBB))},
	}

	r := Reconcile(local, onChain, nil, nil)

	assert.False(t, r.HasDiscrepancies())
	assert.Empty(t, r.Discrepancies)
	assert.Empty(t, r.Recommendations)
	assert.Equal(t, 2, r.Summary.Matched)
	assert.Equal(t, 0, r.Summary.Total)
	assert.Contains(t, r.String(), "No discrepancies")
}

func TestMissingFromRegistry(t *testing.T) {
	local := []registry.Contract{
		contract("1", upperHash(0xAA), "cw20-base", "Genesis"),
	}
	onChain := []chain.CodeInfo{
		{CodeID: "1", DataHash: strings.ToLower(upperHash(0xAA))},
		{CodeID: "9", Creator: "juno1intruder", DataHash: strings.ToLower(upperHash(0xCC))},
	}

	r := Reconcile(local, onChain, nil, nil)

	found := r.ByCategory(CategoryMissingFromRegistry)
	require.Len(t, found, 1)
	assert.Equal(t, "9", found[0].CodeID)
	assert.Equal(t, "juno1intruder", found[0].Creator)
	assert.Equal(t, upperHash(0xCC), found[0].Actual)

	require.Len(t, r.Recommendations, 1)
	rec := r.Recommendations[0]
	assert.Equal(t, CategoryMissingFromRegistry, rec.Category)
	assert.Equal(t, PriorityHigh, rec.Priority)
	assert.Equal(t, 1, rec.Count)
	assert.Contains(t, rec.Message, "1 code id")
}

func TestMissingFromChain(t *testing.T) {
	local := []registry.Contract{
		contract("1", upperHash(0xAA), "cw20-base", "Genesis"),
		contract("3", upperHash(0xDD), "cw1-whitelist", "9"),
	}
	onChain := []chain.CodeInfo{
		{CodeID: "1", DataHash: strings.ToLower(upperHash(0xAA))},
	}

	r := Reconcile(local, onChain, nil, nil)

	found := r.ByCategory(CategoryMissingFromChain)
	require.Len(t, found, 1)
	assert.Equal(t, "3", found[0].CodeID)
	assert.Equal(t, "cw1-whitelist", found[0].Name)
	assert.Equal(t, upperHash(0xDD), found[0].Expected)

	require.Len(t, r.Recommendations, 1)
	assert.Equal(t, PriorityMedium, r.Recommendations[0].Priority)
}

func TestHashMismatch(t *testing.T) {
	t.Run("case difference is not a mismatch", func(t *testing.T) {
		local := []registry.Contract{
			contract("1", upperHash(0xAA), "cw20-base", "Genesis"),
		}
		onChain := []chain.CodeInfo{
			{CodeID: "1", DataHash: strings.ToLower(upperHash(0xAA))},
		}

		r := Reconcile(local, onChain, nil, nil)
		assert.Empty(t, r.ByCategory(CategoryHashMismatch))
		assert.False(t, r.HasDiscrepancies())
	})

	t.Run("differing bytes are a mismatch", func(t *testing.T) {
		local := []registry.Contract{
			contract("1", upperHash(0xAA), "cw20-base", "Genesis"),
		}
		onChain := []chain.CodeInfo{
			{CodeID: "1", DataHash: strings.ToLower(upperHash(0xBB))},
		}

		r := Reconcile(local, onChain, nil, nil)

		found := r.ByCategory(CategoryHashMismatch)
		require.Len(t, found, 1)
		assert.Equal(t, "1", found[0].CodeID)
		assert.Equal(t, upperHash(0xAA), found[0].Expected)
		assert.Equal(t, upperHash(0xBB), found[0].Actual)

		require.Len(t, r.Recommendations, 1)
		assert.Equal(t, PriorityHigh, r.Recommendations[0].Priority)

		// The record still counts as matched: the code id resolved.
		assert.Equal(t, 1, r.Summary.Matched)
	})
}

func TestGovernanceMisattribution(t *testing.T) {
	wasm := []byte("pretend wasm bytecode")

	t.Run("genesis claim with proposal hash hit", func(t *testing.T) {
		local := []registry.Contract{
			contract("1", payloadHash(wasm), "cw20-base", "Genesis"),
		}
		onChain := []chain.CodeInfo{
			{CodeID: "1", DataHash: strings.ToLower(payloadHash(wasm))},
		}
		proposals := []chain.Proposal{
			storeCodeProposal("12", "Upload cw20-base", wasm),
		}

		r := Reconcile(local, onChain, nil, proposals)

		found := r.ByCategory(CategoryGovernanceMisattribution)
		require.Len(t, found, 1)
		assert.Equal(t, "1", found[0].CodeID)
		assert.Equal(t, "Genesis", found[0].Expected)
		assert.Equal(t, "proposal 12", found[0].Actual)
		require.NotNil(t, found[0].Proposal)
		assert.Equal(t, "12", found[0].Proposal.ID)
		assert.Equal(t, "Upload cw20-base", found[0].Proposal.Title)
		assert.Equal(t, "passed", found[0].Proposal.Status)
	})

	t.Run("proposal attribution is not checked", func(t *testing.T) {
		local := []registry.Contract{
			contract("1", payloadHash(wasm), "cw20-base", "12"),
		}
		onChain := []chain.CodeInfo{
			{CodeID: "1", DataHash: strings.ToLower(payloadHash(wasm))},
		}
		proposals := []chain.Proposal{
			storeCodeProposal("12", "Upload cw20-base", wasm),
		}

		r := Reconcile(local, onChain, nil, proposals)
		assert.Empty(t, r.ByCategory(CategoryGovernanceMisattribution))
	})

	t.Run("genesis claim with no proposal hit", func(t *testing.T) {
		local := []registry.Contract{
			contract("1", upperHash(0xAA), "cw20-base", "Genesis"),
		}
		onChain := []chain.CodeInfo{
			{CodeID: "1", DataHash: strings.ToLower(upperHash(0xAA))},
		}
		proposals := []chain.Proposal{
			storeCodeProposal("12", "Upload something else", []byte("other bytes")),
		}

		r := Reconcile(local, onChain, nil, proposals)
		assert.Empty(t, r.ByCategory(CategoryGovernanceMisattribution))
		assert.Equal(t, 1, r.Summary.IndexedUploads)
	})

	t.Run("malformed payload is skipped with a warning", func(t *testing.T) {
		tl := logging.CaptureLoggingForTest(t)

		local := []registry.Contract{
			contract("1", upperHash(0xAA), "cw20-base", "Genesis"),
		}
		onChain := []chain.CodeInfo{
			{CodeID: "1", DataHash: strings.ToLower(upperHash(0xAA))},
		}
		proposals := []chain.Proposal{
			{
				ID:     "44",
				Title:  "Broken upload",
				Status: chain.ProposalStatusPassed,
				Messages: []chain.ProposalMessage{
					{Type: chain.MsgStoreCodeType, WasmByteCode: "!!!not-base64!!!"},
				},
			},
		}

		r := Reconcile(local, onChain, nil, proposals)

		assert.Empty(t, r.ByCategory(CategoryGovernanceMisattribution))
		assert.Equal(t, 0, r.Summary.IndexedUploads)
		assert.True(t, tl.Contains("no computable hash"))
		assert.True(t, tl.Contains("proposal_id"))
	})
}

func TestDeprecatedStillLive(t *testing.T) {
	t.Run("deprecated and live is advisory", func(t *testing.T) {
		deprecated := contract("4", upperHash(0xEE), "cw1-subkeys", "12")
		deprecated.Deprecated = true
		local := []registry.Contract{deprecated}
		onChain := []chain.CodeInfo{
			{CodeID: "4", DataHash: strings.ToLower(upperHash(0xEE))},
		}

		r := Reconcile(local, onChain, nil, nil)

		found := r.ByCategory(CategoryDeprecatedStillLive)
		require.Len(t, found, 1)
		assert.Equal(t, "4", found[0].CodeID)
		assert.True(t, found[0].Advisory)

		// Advisory findings are reported but not actionable failures.
		assert.Equal(t, 1, r.Summary.Total)
		assert.Equal(t, 0, r.Actionable())

		require.Len(t, r.Recommendations, 1)
		assert.Equal(t, PriorityMedium, r.Recommendations[0].Priority)
		assert.Contains(t, r.Recommendations[0].Message, "informational")
	})

	t.Run("deprecated and absent is not flagged here", func(t *testing.T) {
		deprecated := contract("4", upperHash(0xEE), "cw1-subkeys", "12")
		deprecated.Deprecated = true
		local := []registry.Contract{deprecated}

		r := Reconcile(local, []chain.CodeInfo{}, nil, nil)

		assert.Empty(t, r.ByCategory(CategoryDeprecatedStillLive))
		assert.Len(t, r.ByCategory(CategoryMissingFromChain), 1)
	})
}

func TestTestnetDivergence(t *testing.T) {
	withTestnet := func(mainID, testID, testHash string) registry.Contract {
		c := contract(mainID, upperHash(0xAA), "cw20-base", "Genesis")
		c.Testnet = &registry.TestnetDeployment{
			CodeID:  testID,
			Hash:    testHash,
			Network: "uni-6",
		}
		return c
	}
	onChain := []chain.CodeInfo{
		{CodeID: "1", DataHash: strings.ToLower(upperHash(0xAA))},
	}

	t.Run("not found and hash mismatch stay distinct", func(t *testing.T) {
		local := []registry.Contract{withTestnet("1", "100", upperHash(0x11))}

		t.Run("not found", func(t *testing.T) {
			r := Reconcile(local, onChain, []chain.CodeInfo{}, nil)

			found := r.ByCategory(CategoryTestnetDivergence)
			require.Len(t, found, 1)
			assert.Equal(t, ReasonNotFound, found[0].Reason)
			assert.Equal(t, "100", found[0].TestnetCodeID)
			assert.Equal(t, "1", found[0].CodeID)
			assert.Equal(t, upperHash(0x11), found[0].Expected)
			assert.Empty(t, found[0].Actual)
		})

		t.Run("hash mismatch", func(t *testing.T) {
			testnet := []chain.CodeInfo{
				{CodeID: "100", DataHash: strings.ToLower(upperHash(0x22))},
			}
			r := Reconcile(local, onChain, testnet, nil)

			found := r.ByCategory(CategoryTestnetDivergence)
			require.Len(t, found, 1)
			assert.Equal(t, ReasonHashMismatch, found[0].Reason)
			assert.Equal(t, upperHash(0x11), found[0].Expected)
			assert.Equal(t, upperHash(0x22), found[0].Actual)
		})
	})

	t.Run("matching testnet hash ignores case", func(t *testing.T) {
		local := []registry.Contract{withTestnet("1", "100", strings.ToLower(upperHash(0x11)))}
		testnet := []chain.CodeInfo{
			{CodeID: "100", DataHash: upperHash(0x11)},
		}

		r := Reconcile(local, onChain, testnet, nil)
		assert.Empty(t, r.ByCategory(CategoryTestnetDivergence))
	})

	t.Run("nil testnet input skips the checks", func(t *testing.T) {
		local := []registry.Contract{withTestnet("1", "100", upperHash(0x11))}

		r := Reconcile(local, onChain, nil, nil)
		assert.Empty(t, r.ByCategory(CategoryTestnetDivergence))
		assert.False(t, r.HasDiscrepancies())
	})
}

func TestCategoriesAreIndependent(t *testing.T) {
	wasm := []byte("uploaded via governance")

	c := contract("1", payloadHash(wasm), "cw20-base", "Genesis")
	c.Deprecated = true
	local := []registry.Contract{c}

	// Chain stores different bytes for the same code id, and the
	// registry hash matches a proposal upload.
	onChain := []chain.CodeInfo{
		{CodeID: "1", DataHash: strings.ToLower(upperHash(0x55))},
	}
	proposals := []chain.Proposal{
		storeCodeProposal("3", "Historic upload", wasm),
	}

	r := Reconcile(local, onChain, nil, proposals)

	assert.Len(t, r.ByCategory(CategoryHashMismatch), 1)
	assert.Len(t, r.ByCategory(CategoryGovernanceMisattribution), 1)
	assert.Len(t, r.ByCategory(CategoryDeprecatedStillLive), 1)
	assert.Equal(t, 3, r.Summary.Total)
	assert.Len(t, r.Recommendations, 3)
}

func TestCoverageSymmetry(t *testing.T) {
	local := []registry.Contract{
		contract("1", upperHash(0x01), "one", "Genesis"),
		contract("2", upperHash(0x02), "two", "5"),
		contract("3", upperHash(0x03), "three", "6"),
	}
	onChain := []chain.CodeInfo{
		{CodeID: "2", DataHash: strings.ToLower(upperHash(0x02))},
		{CodeID: "3", DataHash: strings.ToLower(upperHash(0x03))},
		{CodeID: "9", DataHash: strings.ToLower(upperHash(0x09))},
	}

	r := Reconcile(local, onChain, nil, nil)

	missingFromChain := len(r.ByCategory(CategoryMissingFromChain))
	missingFromRegistry := len(r.ByCategory(CategoryMissingFromRegistry))

	// Every record lands in matched or its missing bucket.
	assert.Equal(t, len(local), r.Summary.Matched+missingFromChain)
	assert.Equal(t, len(onChain), r.Summary.Matched+missingFromRegistry)
	assert.Equal(t, 2, r.Summary.Matched)
}

func TestDeterministicOrdering(t *testing.T) {
	local := []registry.Contract{
		contract("2", upperHash(0x02), "two", "5"),
		contract("1", upperHash(0x01), "one", "Genesis"),
	}
	// Arrival order 10 before 9; output must be numeric.
	onChain := []chain.CodeInfo{
		{CodeID: "10", DataHash: strings.ToLower(upperHash(0x10))},
		{CodeID: "9", DataHash: strings.ToLower(upperHash(0x09))},
		{CodeID: "2", DataHash: strings.ToLower(upperHash(0xFF))},
	}

	r := Reconcile(local, onChain, nil, nil)

	require.Len(t, r.Discrepancies, 4)

	// Categories appear in fixed report order.
	assert.Equal(t, CategoryMissingFromRegistry, r.Discrepancies[0].Category)
	assert.Equal(t, CategoryMissingFromRegistry, r.Discrepancies[1].Category)
	assert.Equal(t, CategoryMissingFromChain, r.Discrepancies[2].Category)
	assert.Equal(t, CategoryHashMismatch, r.Discrepancies[3].Category)

	// Numeric ordering within a category: 9 before 10.
	assert.Equal(t, "9", r.Discrepancies[0].CodeID)
	assert.Equal(t, "10", r.Discrepancies[1].CodeID)

	// The same inputs produce the same result.
	again := Reconcile(local, onChain, nil, nil)
	assert.Equal(t, r, again)
}

func TestRecommendationCounts(t *testing.T) {
	local := []registry.Contract{
		contract("1", upperHash(0x01), "one", "Genesis"),
		contract("2", upperHash(0x02), "two", "5"),
	}
	onChain := []chain.CodeInfo{
		{CodeID: "1", DataHash: strings.ToLower(upperHash(0xA1))},
		{CodeID: "2", DataHash: strings.ToLower(upperHash(0xA2))},
	}

	r := Reconcile(local, onChain, nil, nil)

	require.Len(t, r.Recommendations, 1)
	rec := r.Recommendations[0]
	assert.Equal(t, CategoryHashMismatch, rec.Category)
	assert.Equal(t, 2, rec.Count)
	assert.Contains(t, rec.Message, "2 registry records")
	assert.Contains(t, r.String(), "hash_mismatch: 2")
}

func TestLegacyProposalPayloadIndexed(t *testing.T) {
	wasm := []byte("legacy upload bytes")

	local := []registry.Contract{
		contract("1", payloadHash(wasm), "cw20-base", "Genesis"),
	}
	onChain := []chain.CodeInfo{
		{CodeID: "1", DataHash: strings.ToLower(payloadHash(wasm))},
	}
	proposals := []chain.Proposal{
		{
			ID:     "2",
			Title:  "Legacy store code",
			Status: chain.ProposalStatusPassed,
			Messages: []chain.ProposalMessage{
				{
					Type: chain.LegacyContentType,
					Content: &chain.LegacyContent{
						Type:         chain.StoreCodeProposalType,
						WasmByteCode: base64.StdEncoding.EncodeToString(wasm),
					},
				},
			},
		},
	}

	r := Reconcile(local, onChain, nil, proposals)

	found := r.ByCategory(CategoryGovernanceMisattribution)
	require.Len(t, found, 1)
	require.NotNil(t, found[0].Proposal)
	assert.Equal(t, "2", found[0].Proposal.ID)
	assert.Equal(t, 1, r.Summary.IndexedUploads)
}
