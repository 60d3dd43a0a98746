package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wasmregistry/codemap/pkg/check"
)

// verifyCmd represents the verify command.
var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify the registry against live chain state",
	Long: `Verify every registry record against on-chain code info and
governance-proposal history.

The registry, the stored-code query, and the governance proposals are
fetched concurrently, then reconciled: missing entries on either side,
hash mismatches, misattributed governance, deprecated records still
live on chain, and testnet divergence are reported with prioritized
recommendations.

The governance fetch is advisory: when the proposals endpoint is
unreachable, verification continues without the governance index.

Examples:
  codemap verify                      # Verify against the mainnet
  codemap verify --network all        # Also check testnet deployments
  codemap verify --skip-governance    # Skip the proposal fetch
  codemap verify -o json              # Machine-readable report`,
	Args: cobra.NoArgs,
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	addVerifyFlags(verifyCmd)
}

// addVerifyFlags registers the flags shared by verify and check.
func addVerifyFlags(cmd *cobra.Command) {
	cmd.Flags().String("network", "mainnet",
		"Networks to query: mainnet or all")
	cmd.Flags().Bool("skip-governance", false,
		"Skip the governance-proposal fetch")
}

// runVerify executes the chain verification phase only.
func runVerify(cmd *cobra.Command, _ []string) error {
	opts, err := verifyOptions(cmd, check.ModeVerify)
	if err != nil {
		return err
	}

	report, err := check.Run(cmd.Context(), opts...)
	if err != nil {
		return err
	}

	return finishReport(cmd, report)
}

// verifyOptions assembles the run options shared by verify and check
// from the command's flags and the resolved configuration.
func verifyOptions(cmd *cobra.Command, mode check.Mode) ([]check.Option, error) {
	network, err := cmd.Flags().GetString("network")
	if err != nil {
		return nil, err
	}
	skipGovernance, err := cmd.Flags().GetBool("skip-governance")
	if err != nil {
		return nil, err
	}

	opts := []check.Option{
		check.WithRegistryPath(registryPath()),
		check.WithMode(mode),
		check.WithMainnet(mainnetConfig()),
	}

	switch network {
	case "mainnet":
		// Mainnet state drives every core category; testnet checks are opt-in.
	case "all":
		opts = append(opts, check.WithTestnet(testnetConfig()))
	default:
		return nil, fmt.Errorf("unknown network %q: must be mainnet or all", network)
	}

	if skipGovernance {
		opts = append(opts, check.WithSkipGovernance())
	}

	return opts, nil
}
