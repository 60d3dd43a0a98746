// Package table provides common table formatting utilities for CLI commands.
package table

import (
	"fmt"

	"github.com/wasmregistry/codemap/pkg/registry"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// ContractsToTableData converts registry records to table format.
func ContractsToTableData(contracts []registry.Contract, wide bool) Data {
	headers := []string{"Code ID", "Name", "Version", "Governance", "Status"}
	if wide {
		headers = append(headers, "Hash", "Author", "Testnet")
	}

	rows := make([][]string, 0, len(contracts))
	for _, c := range contracts {
		row := []string{
			c.CodeID,
			c.Name,
			c.Release.Version,
			FormatGovernance(c.Governance),
			FormatStatus(c.Deprecated),
		}

		if wide {
			row = append(row, c.Hash, c.Author.Name, FormatTestnet(c.Testnet))
		}

		rows = append(rows, row)
	}

	alignment := []Align{AlignRight, AlignLeft, AlignLeft, AlignLeft, AlignLeft}
	if wide {
		alignment = append(alignment, AlignLeft, AlignLeft, AlignLeft)
	}

	return Data{
		Headers:         headers,
		Rows:            rows,
		ColumnAlignment: alignment,
	}
}

// ContractToDetailsData converts a single record to a key-value table.
func ContractToDetailsData(c registry.Contract) Data {
	rows := [][]string{
		{"Code ID", c.CodeID},
		{"Name", c.Name},
		{"Description", Truncate(c.Description, 80)},
		{"Hash", c.Hash},
		{"Release", fmt.Sprintf("%s (%s)", c.Release.Version, c.Release.URL)},
		{"Author", fmt.Sprintf("%s (%s)", c.Author.Name, c.Author.URL)},
		{"Governance", FormatGovernance(c.Governance)},
		{"Status", FormatStatus(c.Deprecated)},
	}

	if c.HasTestnet() {
		t := c.Testnet
		rows = append(rows,
			[]string{"Testnet Code ID", t.CodeID},
			[]string{"Testnet Hash", t.Hash},
			[]string{"Testnet Network", t.Network},
			[]string{"Testnet Deployed By", t.DeployedBy},
			[]string{"Testnet Deployed At", t.DeployedAt},
		)
	}

	return Data{
		Headers: []string{"Property", "Value"},
		Rows:    rows,
	}
}

// FormatGovernance renders the governance attribution for display.
func FormatGovernance(governance string) string {
	if governance == "Genesis" {
		return governance
	}
	return "Proposal " + governance
}

// FormatStatus renders the deprecation flag for display.
func FormatStatus(deprecated bool) string {
	if deprecated {
		return "deprecated"
	}
	return "active"
}

// FormatTestnet renders the testnet column for display.
func FormatTestnet(t *registry.TestnetDeployment) string {
	if t == nil {
		return "-"
	}
	return fmt.Sprintf("%s (%s)", t.CodeID, t.Network)
}

// Truncate shortens a string to max characters with an ellipsis.
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
