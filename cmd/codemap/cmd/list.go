package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wasmregistry/codemap/internal/cmd/filter"
	"github.com/wasmregistry/codemap/internal/cmd/globals"
	"github.com/wasmregistry/codemap/internal/cmd/output"
	pkgerrors "github.com/wasmregistry/codemap/pkg/errors"
	"github.com/wasmregistry/codemap/pkg/registry"
)

// listCmd represents the list command.
var listCmd = &cobra.Command{
	Use:   "list [code-id]",
	Short: "List registry records",
	Args:  cobra.MaximumNArgs(1),
	Example: `  codemap list                        # List all records
  codemap list 42                     # Show one record in detail
  codemap list --deprecated           # Show only deprecated records
  codemap list --governance Genesis   # Show genesis-attributed records
  codemap list --search cw20 -o json  # Search, machine-readable`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	globals.AddResourceFlags(listCmd)
}

// runList prints the registry, filtered by the resource flags, or one
// record in detail when a code id is given.
func runList(cmd *cobra.Command, args []string) error {
	collection, err := registry.Load(registryPath())
	if err != nil {
		return err
	}

	globalFlags, err := globals.Parse(cmd)
	if err != nil {
		return err
	}

	// Single record detail view
	if len(args) == 1 {
		return showContractDetails(cmd, collection, args[0], globalFlags)
	}

	resourceFlags := globals.ParseResources(cmd)
	contractFilter := &filter.ContractFilter{
		Search:     resourceFlags.Search,
		Governance: resourceFlags.Governance,
		Deprecated: resourceFlags.Deprecated,
	}
	filtered := contractFilter.Apply(collection.Contracts)

	// The registry is kept sorted by numeric code id, so filtered
	// output inherits that order.
	if resourceFlags.Limit > 0 && len(filtered) > resourceFlags.Limit {
		filtered = filtered[:resourceFlags.Limit]
	}

	if !globalFlags.Quiet {
		fmt.Fprintf(os.Stderr, "Found %d contracts\n", len(filtered))
	}

	return output.FormatContracts(filtered, globalFlags)
}

// showContractDetails shows detailed information about a specific record.
func showContractDetails(cmd *cobra.Command, collection *registry.Collection, codeID string, globalFlags *globals.Flags) error {
	for _, c := range collection.Contracts {
		if c.CodeID == codeID {
			return output.FormatContractDetails(c, globalFlags)
		}
	}

	// Suppress usage display for not found errors
	cmd.SilenceUsage = true
	return &pkgerrors.NotFoundError{
		Resource: "contract",
		ID:       codeID,
	}
}
