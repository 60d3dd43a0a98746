package table

import (
	"strconv"

	"github.com/wasmregistry/codemap/pkg/check"
	"github.com/wasmregistry/codemap/pkg/reconcile"
)

// ProblemsToTableData converts validation problems to table format.
func ProblemsToTableData(problems []check.Problem) Data {
	rows := make([][]string, 0, len(problems))
	for _, p := range problems {
		rows = append(rows, []string{p.Path, p.Message})
	}

	return Data{
		Headers: []string{"Path", "Problem"},
		Rows:    rows,
	}
}

// DiscrepanciesToTableData converts reconciliation findings to table format.
func DiscrepanciesToTableData(ds []reconcile.Discrepancy) Data {
	rows := make([][]string, 0, len(ds))
	for _, d := range ds {
		rows = append(rows, []string{
			string(d.Category),
			d.CodeID,
			valueOrDash(d.Name),
			valueOrDash(ShortHash(d.Expected)),
			valueOrDash(ShortHash(d.Actual)),
			valueOrDash(discrepancyNote(d)),
		})
	}

	return Data{
		Headers:         []string{"Category", "Code ID", "Name", "Expected", "Actual", "Note"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignRight, AlignLeft, AlignLeft, AlignLeft, AlignLeft},
	}
}

// discrepancyNote renders the category-specific context column.
func discrepancyNote(d reconcile.Discrepancy) string {
	switch {
	case d.Proposal != nil:
		return "proposal " + d.Proposal.ID + ": " + Truncate(d.Proposal.Title, 40)
	case d.Category == reconcile.CategoryTestnetDivergence:
		return d.Reason + " (testnet code " + d.TestnetCodeID + ")"
	case d.Creator != "":
		return "creator " + d.Creator
	case d.Advisory:
		return "advisory"
	}
	return ""
}

// RecommendationsToTableData converts recommendations to table format.
func RecommendationsToTableData(recs []reconcile.Recommendation) Data {
	rows := make([][]string, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, []string{
			string(r.Priority),
			string(r.Category),
			strconv.Itoa(r.Count),
			r.Message,
		})
	}

	return Data{
		Headers:         []string{"Priority", "Category", "Count", "Action"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignLeft, AlignRight, AlignLeft},
	}
}

// SummaryToTableData converts a reconciliation summary to table format.
func SummaryToTableData(s reconcile.Summary, testnet bool) Data {
	rows := [][]string{
		{"Registry records", strconv.Itoa(s.LocalContracts)},
		{"On-chain codes", strconv.Itoa(s.OnChainCodes)},
	}
	if testnet {
		rows = append(rows, []string{"Testnet codes", strconv.Itoa(s.TestnetCodes)})
	}
	rows = append(rows,
		[]string{"Proposals", strconv.Itoa(s.Proposals)},
		[]string{"Matched", strconv.Itoa(s.Matched)},
		[]string{"Discrepancies", strconv.Itoa(s.Total)},
	)

	return Data{
		Headers:         []string{"Metric", "Count"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignRight},
	}
}

// ShortHash abbreviates a 64-character digest for narrow columns. Values
// that are not digests pass through unchanged.
func ShortHash(hash string) string {
	if len(hash) != 64 {
		return hash
	}
	return hash[:10] + "..."
}

func valueOrDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
