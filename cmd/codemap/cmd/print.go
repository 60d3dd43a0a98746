package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wasmregistry/codemap/internal/cmd/alerts"
	"github.com/wasmregistry/codemap/internal/cmd/globals"
	"github.com/wasmregistry/codemap/internal/cmd/output"
	"github.com/wasmregistry/codemap/internal/cmd/table"
	"github.com/wasmregistry/codemap/pkg/check"
	pkgerrors "github.com/wasmregistry/codemap/pkg/errors"
)

// finishReport prints the consolidated report in the configured format
// and maps the run outcome to the process exit code: any failed phase
// becomes a non-nil error and therefore exit code 1.
func finishReport(cmd *cobra.Command, report *check.Report) error {
	globalFlags, err := globals.Parse(cmd)
	if err != nil {
		return err
	}

	format := output.DetectFormat(globalFlags.Output)
	switch format {
	case output.FormatJSON, output.FormatYAML:
		formatter := output.NewFormatter(format)
		if err := formatter.Format(os.Stdout, report); err != nil {
			return err
		}
	default:
		printReport(report, globalFlags)
	}

	if !report.Success {
		// The report has already been printed in full.
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return pkgerrors.New(report.Summary())
	}
	return nil
}

// printReport renders the human-readable report: one alert per phase
// plus tables for problems, findings, and recommendations.
func printReport(report *check.Report, globalFlags *globals.Flags) {
	aw := alerts.NewFormatWriter(os.Stdout, output.FormatTable)

	if report.Validation.Executed {
		printValidation(aw, report.Validation)
	}
	if report.Verification.Executed {
		if report.Validation.Executed {
			fmt.Println()
		}
		printVerification(aw, report.Verification, globalFlags)
	}
}

func printValidation(aw *alerts.FormatWriter, v check.Validation) {
	switch {
	case v.Error != "":
		_ = aw.WriteAlert(alerts.NewError("Validation could not run").WithDetails(v.Error))
	case v.Valid:
		_ = aw.WriteAlert(alerts.NewSuccess(fmt.Sprintf("Validation passed (%d records)", v.Records)))
	default:
		_ = aw.WriteAlert(alerts.NewError(fmt.Sprintf("Validation failed with %d problems", len(v.Problems))))
		fmt.Println()
		_ = output.FormatTableData(table.ProblemsToTableData(v.Problems))
	}
}

func printVerification(aw *alerts.FormatWriter, v check.Verification, globalFlags *globals.Flags) {
	if v.Error != "" {
		_ = aw.WriteAlert(alerts.NewError("Verification could not run").WithDetails(v.Error))
		return
	}
	if v.Result == nil {
		return
	}
	res := v.Result

	switch {
	case !res.HasDiscrepancies():
		_ = aw.WriteAlert(alerts.NewSuccess(res.String()))
	case v.Passed:
		// Advisory findings only
		_ = aw.WriteAlert(alerts.NewWarning(res.String()))
	default:
		_ = aw.WriteAlert(alerts.NewError(res.String()))
	}

	if !globalFlags.Quiet {
		fmt.Println()
		_ = output.FormatTableData(table.SummaryToTableData(res.Summary, v.Testnet != ""))
	}

	if res.HasDiscrepancies() {
		fmt.Println()
		_ = output.FormatTableData(table.DiscrepanciesToTableData(res.Discrepancies))

		if len(res.Recommendations) > 0 {
			fmt.Println()
			_ = output.FormatTableData(table.RecommendationsToTableData(res.Recommendations))
		}
	}
}
