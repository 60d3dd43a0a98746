// Package output provides common output formatting utilities for CLI commands.
package output

import (
	"os"

	"github.com/wasmregistry/codemap/internal/cmd/globals"
	"github.com/wasmregistry/codemap/internal/cmd/table"
	"github.com/wasmregistry/codemap/pkg/registry"
)

// FormatContracts handles the common pattern of formatting registry
// records for output. Table formats go through the table builders;
// structured formats receive the records themselves.
func FormatContracts(contracts []registry.Contract, globalFlags *globals.Flags) error {
	format := DetectFormat(globalFlags.Output)
	formatter := NewFormatter(format)

	var outputData any
	switch format {
	case FormatTable, FormatWide:
		td := table.ContractsToTableData(contracts, format == FormatWide)
		outputData = Data{
			Headers:         td.Headers,
			Rows:            td.Rows,
			ColumnAlignment: td.ColumnAlignment,
		}
	default:
		outputData = contracts
	}

	return formatter.Format(os.Stdout, outputData)
}

// FormatContractDetails renders one record as a key-value table, or as
// the record itself for structured formats.
func FormatContractDetails(contract registry.Contract, globalFlags *globals.Flags) error {
	format := DetectFormat(globalFlags.Output)
	formatter := NewFormatter(format)

	if format == FormatTable || format == FormatWide {
		td := table.ContractToDetailsData(contract)
		return formatter.Format(os.Stdout, Data{
			Headers: td.Headers,
			Rows:    td.Rows,
		})
	}

	return formatter.Format(os.Stdout, contract)
}

// FormatTableData renders pre-built table data through the formatter.
func FormatTableData(td table.Data) error {
	formatter := NewFormatter(FormatTable)
	return formatter.Format(os.Stdout, Data{
		Headers:         td.Headers,
		Rows:            td.Rows,
		ColumnAlignment: td.ColumnAlignment,
	})
}
