// Package emoji provides symbol constants for CLI output.
// These symbols create a consistent visual language across all command-line commands.
package emoji

// Symbol constants for CLI output provide a consistent visual language across commands.
// These symbols are used for status indicators, alerts, and user feedback in terminal output.
const (
	// Success symbols indicate positive outcomes or passing states.

	// Success represents successful completion of an operation.
	// Used for: passing validation, clean verification, completed reports.
	Success = "✓"

	// Error and warning symbols indicate problems or missing requirements.

	// Error represents failures or load-bearing problems.
	// Used for: schema violations, aborted fetches, failed phases.
	Error = "✗"

	// Warning represents warnings or non-critical issues.
	// Used for: advisory findings, degraded governance fetches.
	Warning = "!"

	// Status symbols for record and configuration states.

	// Optional represents optional or skipped items.
	// Used for: skipped phases, records without a testnet deployment.
	Optional = "-"

	// Unknown represents unknown or indeterminate states.
	// Used for: unrecognized status codes, undefined behavior.
	Unknown = "?"

	// Information symbols.

	// Info represents informational messages.
	// Used for: general information, tips, context.
	Info = "i"
)
