package check

import (
	"fmt"
	"strings"
	"time"

	"github.com/wasmregistry/codemap/pkg/reconcile"
)

// Mode selects which phases a run executes.
type Mode string

const (
	// ModeValidate runs schema validation only.
	ModeValidate Mode = "validate"
	// ModeVerify runs chain verification only.
	ModeVerify Mode = "verify"
	// ModeAll runs both phases.
	ModeAll Mode = "all"
)

// Valid reports whether m is one of the run modes.
func (m Mode) Valid() bool {
	switch m {
	case ModeValidate, ModeVerify, ModeAll:
		return true
	}
	return false
}

func (m Mode) includesValidate() bool { return m == ModeValidate || m == ModeAll }
func (m Mode) includesVerify() bool   { return m == ModeVerify || m == ModeAll }

// Problem is one schema violation found during validation.
type Problem struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Validation is the outcome of the schema validation phase.
type Validation struct {
	Executed bool      `json:"executed"`
	Valid    bool      `json:"valid"`
	Records  int       `json:"records"`
	Problems []Problem `json:"problems,omitempty"`
	Error    string    `json:"error,omitempty"` // registry could not be read or parsed
}

// Verification is the outcome of the chain verification phase.
// Passed means every load-bearing fetch succeeded and reconciliation
// found no actionable discrepancy; advisory findings are reported
// without failing the phase.
type Verification struct {
	Executed bool              `json:"executed"`
	Passed   bool              `json:"passed"`
	Mainnet  string            `json:"mainnet,omitempty"` // REST endpoint queried
	Testnet  string            `json:"testnet,omitempty"` // REST endpoint when queried
	Result   *reconcile.Result `json:"result,omitempty"`
	Error    string            `json:"error,omitempty"` // phase could not run
}

// Report is the consolidated outcome of one run.
type Report struct {
	RunID        string        `json:"run_id"`
	Mode         Mode          `json:"mode"`
	RegistryPath string        `json:"registry"`
	StartedAt    time.Time     `json:"started_at"`
	Duration     time.Duration `json:"duration"`
	Validation   Validation    `json:"validation"`
	Verification Verification  `json:"verification"`
	Success      bool          `json:"success"`
}

// succeeded computes the aggregate outcome: every executed phase passed.
func (r *Report) succeeded() bool {
	ok := true
	if r.Validation.Executed {
		ok = ok && r.Validation.Valid
	}
	if r.Verification.Executed {
		ok = ok && r.Verification.Passed
	}
	return ok
}

// Summary returns a one-line human summary distinguishing phase
// failures from phases that could not run at all.
func (r *Report) Summary() string {
	var parts []string

	if r.Validation.Executed {
		switch {
		case r.Validation.Error != "":
			parts = append(parts, fmt.Sprintf("validation could not run: %s", r.Validation.Error))
		case r.Validation.Valid:
			parts = append(parts, fmt.Sprintf("validation passed (%d records)", r.Validation.Records))
		default:
			parts = append(parts, fmt.Sprintf("validation failed (%d problems)", len(r.Validation.Problems)))
		}
	}

	if r.Verification.Executed {
		switch {
		case r.Verification.Error != "":
			parts = append(parts, fmt.Sprintf("verification could not run: %s", r.Verification.Error))
		case r.Verification.Result != nil && r.Verification.Result.HasDiscrepancies():
			total := r.Verification.Result.Summary.Total
			advisory := total - r.Verification.Result.Actionable()
			if advisory > 0 {
				parts = append(parts, fmt.Sprintf("verification found %d discrepancies (%d advisory)", total, advisory))
			} else {
				parts = append(parts, fmt.Sprintf("verification found %d discrepancies", total))
			}
		default:
			parts = append(parts, "verification passed")
		}
	}

	if len(parts) == 0 {
		return "no phases executed"
	}
	if r.Success {
		return "OK: " + strings.Join(parts, "; ")
	}
	return "FAILED: " + strings.Join(parts, "; ")
}
