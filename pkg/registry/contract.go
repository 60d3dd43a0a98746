// Package registry models the curated contract registry: an ordered JSON
// collection of contract records, the loader that reads it, and the
// schema that guards it.
package registry

// Contract is one record of the registry.
type Contract struct {
	CodeID      string             `json:"code_id"`           // Decimal string, unique, ascending across the collection
	Hash        string             `json:"hash"`              // SHA-256 of the wasm bytes, 64 uppercase hex chars
	Name        string             `json:"name"`              // Display name
	Description string             `json:"description"`       // Human-readable summary
	Release     Release            `json:"release"`           // Source release the code was built from
	Author      Author             `json:"author"`            // Publisher
	Governance  string             `json:"governance"`        // "Genesis" or a decimal proposal id
	Deprecated  bool               `json:"deprecated"`        // Superseded or retired from use
	Testnet     *TestnetDeployment `json:"testnet,omitempty"` // Optional testnet counterpart
}

// Release identifies the source release a code id was built from.
type Release struct {
	URL     string `json:"url"`     // Release or tag URL
	Version string `json:"version"` // Version label, e.g. "v0.16.0"
}

// Author identifies who published the contract.
type Author struct {
	Name string `json:"name"` // Author or organization name
	URL  string `json:"url"`  // Homepage or repository URL
}

// TestnetDeployment records the testnet counterpart of a contract.
type TestnetDeployment struct {
	CodeID     string `json:"code_id"`     // Testnet code id, independent of the mainnet one
	Hash       string `json:"hash"`        // 64 hex chars, case-insensitive on testnet
	Network    string `json:"network"`     // Testnet chain name, e.g. "uni-6"
	DeployedBy string `json:"deployed_by"` // Address or handle that deployed it
	DeployedAt string `json:"deployed_at"` // Deployment timestamp
}

// IsGenesis reports whether the record claims a genesis upload rather
// than a governance proposal.
func (c *Contract) IsGenesis() bool {
	return c.Governance == "Genesis"
}

// HasTestnet reports whether the record carries a testnet deployment.
func (c *Contract) HasTestnet() bool {
	return c.Testnet != nil
}

// Collection is the decoded registry plus its source path.
type Collection struct {
	Path      string
	Contracts []Contract
}

// Len returns the number of records in the collection.
func (c *Collection) Len() int {
	return len(c.Contracts)
}

// ByCodeID indexes the collection by code id. Later records win on
// duplicate ids; validation reports duplicates separately.
func (c *Collection) ByCodeID() map[string]Contract {
	index := make(map[string]Contract, len(c.Contracts))
	for _, contract := range c.Contracts {
		index[contract.CodeID] = contract
	}
	return index
}
