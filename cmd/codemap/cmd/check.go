package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/wasmregistry/codemap/pkg/check"
	"github.com/wasmregistry/codemap/pkg/constants"
	pkgerrors "github.com/wasmregistry/codemap/pkg/errors"
)

// checkCmd represents the check command.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate and verify the registry in one run",
	Long: `Run schema validation and chain verification together and report
one consolidated outcome.

Both phases always execute: a failing validation does not stop
verification, so the report carries complete findings. The run succeeds
only when every phase passed.

Examples:
  codemap check                             # Both phases against the mainnet
  codemap check --network all               # Include testnet deployments
  codemap check --report-file report.md     # Also write a markdown report`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	addVerifyFlags(checkCmd)
	checkCmd.Flags().String("report-file", "",
		"Write a markdown report to the given path")
}

// runCheck executes both phases and optionally writes the markdown report.
func runCheck(cmd *cobra.Command, _ []string) error {
	opts, err := verifyOptions(cmd, check.ModeAll)
	if err != nil {
		return err
	}

	report, err := check.Run(cmd.Context(), opts...)
	if err != nil {
		return err
	}

	reportFile, err := cmd.Flags().GetString("report-file")
	if err != nil {
		return err
	}
	if reportFile != "" {
		if err := writeReportFile(report, reportFile); err != nil {
			return err
		}
	}

	return finishReport(cmd, report)
}

// writeReportFile renders the markdown report to path.
func writeReportFile(report *check.Report, path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, constants.FilePermissions)
	if err != nil {
		return pkgerrors.WrapIO("create", path, err)
	}

	if err := report.WriteMarkdown(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
