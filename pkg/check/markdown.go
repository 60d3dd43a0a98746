package check

import (
	"fmt"
	"io"
	"time"

	md "github.com/nao1215/markdown"

	"github.com/wasmregistry/codemap/pkg/constants"
	"github.com/wasmregistry/codemap/pkg/reconcile"
)

// WriteMarkdown renders the consolidated report as a markdown audit
// document.
func (r *Report) WriteMarkdown(w io.Writer) error {
	doc := md.NewMarkdown(w)

	doc.H1("Registry Check Report").
		Table(md.TableSet{
			Header: []string{"Field", "Value"},
			Rows: [][]string{
				{"Run ID", md.Code(r.RunID)},
				{"Mode", string(r.Mode)},
				{"Registry", md.Code(r.RegistryPath)},
				{"Started", r.StartedAt.Format(constants.TimeFormatISO8601)},
				{"Duration", r.Duration.Round(time.Millisecond).String()},
				{"Outcome", passFail(r.Success)},
			},
		})

	if r.Validation.Executed {
		writeValidation(doc, r.Validation)
	}
	if r.Verification.Executed {
		writeVerification(doc, r.Verification)
	}

	return doc.Build()
}

func writeValidation(doc *md.Markdown, v Validation) {
	doc.H2("Validation")

	switch {
	case v.Error != "":
		doc.PlainTextf("Could not run: %s", v.Error).LF()
	case v.Valid:
		doc.PlainTextf("Passed. %d records conform to the collection schema.", v.Records).LF()
	default:
		doc.PlainTextf("Failed with %d problems across %d records:", len(v.Problems), v.Records).LF()
		items := make([]string, 0, len(v.Problems))
		for _, p := range v.Problems {
			items = append(items, fmt.Sprintf("%s: %s", md.Code(p.Path), p.Message))
		}
		doc.BulletList(items...)
	}
}

func writeVerification(doc *md.Markdown, v Verification) {
	doc.H2("Verification")

	endpoints := fmt.Sprintf("Mainnet: %s", md.Code(v.Mainnet))
	if v.Testnet != "" {
		endpoints += fmt.Sprintf(", testnet: %s", md.Code(v.Testnet))
	}
	doc.PlainText(endpoints).LF()

	if v.Error != "" {
		doc.PlainTextf("Could not run: %s", v.Error).LF()
		return
	}
	if v.Result == nil {
		return
	}

	res := v.Result
	doc.H3("Summary")
	rows := [][]string{
		{"Registry records", fmt.Sprintf("%d", res.Summary.LocalContracts)},
		{"On-chain codes", fmt.Sprintf("%d", res.Summary.OnChainCodes)},
	}
	if v.Testnet != "" {
		rows = append(rows, []string{"Testnet codes", fmt.Sprintf("%d", res.Summary.TestnetCodes)})
	}
	rows = append(rows,
		[]string{"Proposals", fmt.Sprintf("%d", res.Summary.Proposals)},
		[]string{"Indexed uploads", fmt.Sprintf("%d", res.Summary.IndexedUploads)},
		[]string{"Matched", fmt.Sprintf("%d", res.Summary.Matched)},
		[]string{"Discrepancies", fmt.Sprintf("%d", res.Summary.Total)},
		[]string{"Actionable", fmt.Sprintf("%d", res.Actionable())},
	)
	doc.Table(md.TableSet{
		Header: []string{"Metric", "Count"},
		Rows:   rows,
	})

	if !res.HasDiscrepancies() {
		doc.PlainText("No discrepancies found.").LF()
		return
	}

	doc.H3("Discrepancies")
	for _, section := range discrepancySections(res) {
		doc.H4(section.title)
		doc.BulletList(section.items...)
	}

	if len(res.Recommendations) > 0 {
		doc.H3("Recommendations")
		items := make([]string, 0, len(res.Recommendations))
		for _, rec := range res.Recommendations {
			items = append(items, fmt.Sprintf("%s: %s", md.Bold(string(rec.Priority)), rec.Message))
		}
		doc.BulletList(items...)
	}
}

type discrepancySection struct {
	title string
	items []string
}

// discrepancySections groups findings by category in report order,
// one rendered line per finding.
func discrepancySections(res *reconcile.Result) []discrepancySection {
	var sections []discrepancySection
	for _, cat := range reconcile.Categories() {
		ds := res.ByCategory(cat)
		if len(ds) == 0 {
			continue
		}
		items := make([]string, 0, len(ds))
		for _, d := range ds {
			items = append(items, d.String())
		}
		sections = append(sections, discrepancySection{
			title: fmt.Sprintf("%s (%d)", cat, len(ds)),
			items: items,
		})
	}
	return sections
}

func passFail(ok bool) string {
	if ok {
		return "passed"
	}
	return "failed"
}
