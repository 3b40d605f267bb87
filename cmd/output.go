package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/outreach-cli/internal/model"
	"github.com/sells-group/outreach-cli/internal/scorer"
)

// Output formats accepted by --format.
const (
	formatTable = "table"
	formatCSV   = "csv"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

func validFormat(f string) bool {
	switch f {
	case formatTable, formatCSV, formatJSON, formatYAML:
		return true
	}
	return false
}

// withOutput runs fn against the --output file, or stdout when path is empty.
func withOutput(path string, fn func(io.Writer) error) error {
	if path == "" {
		return fn(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "output: create %s", path)
	}
	if err := fn(f); err != nil {
		_ = f.Close()
		return err
	}
	return eris.Wrapf(f.Close(), "output: close %s", path)
}

func writeLeads(w io.Writer, leads []model.Lead, format string) error {
	switch format {
	case formatTable:
		return writeLeadTable(w, leads)
	case formatCSV:
		return writeLeadCSV(w, leads)
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(leads), "output: encode json")
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(leads); err != nil {
			return eris.Wrap(err, "output: encode yaml")
		}
		return eris.Wrap(enc.Close(), "output: flush yaml")
	default:
		return eris.Errorf("output: unsupported format %q", format)
	}
}

var leadCSVHeader = []string{
	"id", "company", "website", "industry", "location", "revenue_musd",
	"employee_count", "title", "owner_email", "bbb_rating", "priority_score",
	"score_explanations", "opener_status", "ai_opener", "ai_subject",
}

func writeLeadCSV(w io.Writer, leads []model.Lead) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(leadCSVHeader); err != nil {
		return eris.Wrap(err, "output: write CSV header")
	}
	for _, l := range leads {
		row := []string{
			l.ID,
			l.CompanyName,
			l.Website,
			l.Industry,
			l.Location,
			formatRevenue(l.Revenue),
			formatEmployees(l.EmployeeCount),
			l.Title,
			l.OwnerEmail,
			l.BBBRating,
			strconv.Itoa(l.PriorityScoreInfo.Total),
			strings.Join(l.PriorityScoreInfo.Breakdown.Explanations, "; "),
			string(l.OpenerStatus),
			l.AIOpener,
			l.AISubject,
		}
		if err := cw.Write(row); err != nil {
			return eris.Wrap(err, "output: write CSV row")
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "output: flush CSV")
}

func writeLeadTable(out io.Writer, leads []model.Lead) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "SCORE\tCOMPANY\tINDUSTRY\tLOCATION\tREVENUE\tEMPLOYEES")
	_, _ = fmt.Fprintln(w, "-----\t-------\t--------\t--------\t-------\t---------")

	for _, l := range leads {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			l.PriorityScoreInfo.Total,
			truncate(l.CompanyName, 36),
			truncate(l.Industry, 22),
			truncate(l.Location, 24),
			revenueLabel(l.Revenue),
			formatEmployees(l.EmployeeCount),
		)
	}
	return eris.Wrap(w.Flush(), "output: write table")
}

func printLeadSummary(w io.Writer, leads []model.Lead) {
	if len(leads) == 0 {
		fmt.Fprintln(w, "No leads.")
		return
	}
	var sum int
	minScore, maxScore := scorer.MaxScore, 0
	for _, l := range leads {
		t := l.PriorityScoreInfo.Total
		sum += t
		minScore = min(minScore, t)
		maxScore = max(maxScore, t)
	}
	fmt.Fprintf(w, "\n--- Summary ---\n")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "Leads scored:\t%d\n", len(leads))
	_, _ = fmt.Fprintf(tw, "Score range:\t%d - %d\n", minScore, maxScore)
	_, _ = fmt.Fprintf(tw, "Average score:\t%.1f\n", float64(sum)/float64(len(leads)))
	_ = tw.Flush()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func formatRevenue(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func revenueLabel(v *float64) string {
	if v == nil {
		return "-"
	}
	return "$" + formatRevenue(v) + "M"
}

func formatEmployees(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
