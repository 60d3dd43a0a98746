package cmd

import (
	"github.com/spf13/cobra"

	"github.com/wasmregistry/codemap/pkg/check"
)

// validateCmd represents the validate command.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the registry against the collection schema",
	Long: `Validate the structure and content of the contract registry file.

Every record is checked against the collection schema: required fields,
hash and governance patterns, no unknown properties, unique code ids,
and ascending numeric code id order. All violations are collected and
reported in one pass.

Examples:
  codemap validate                          # Validate contracts.json
  codemap validate --registry other.json    # Validate another registry file
  codemap validate -o json                  # Machine-readable report`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

// runValidate executes the schema validation phase only.
func runValidate(cmd *cobra.Command, _ []string) error {
	report, err := check.Run(cmd.Context(),
		check.WithRegistryPath(registryPath()),
		check.WithMode(check.ModeValidate),
	)
	if err != nil {
		return err
	}

	return finishReport(cmd, report)
}
