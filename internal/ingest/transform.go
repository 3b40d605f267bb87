package ingest

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/sells-group/outreach-cli/internal/model"
)

var (
	numericRunRe = regexp.MustCompile(`[0-9.]+`)
	nonDigitRe   = regexp.MustCompile(`[^0-9]`)
)

// TransformRawDataToLead converts a raw export row into a partial Lead with
// typed revenue (millions), employee count, and derived location. Fields that
// fail to parse are left absent. The lead is not scored or defaulted.
func TransformRawDataToLead(raw model.RawRow, id string) model.Lead {
	lead := model.Lead{ID: id}

	lead.CompanyName, _ = raw.Get(model.HeaderCompany)
	lead.Website, _ = raw.Get(model.HeaderWebsite)
	lead.Industry, _ = raw.Get(model.HeaderIndustry)
	lead.Title, _ = raw.Get(model.HeaderOwnerTitle)
	lead.OwnerEmail, _ = raw.Get(model.HeaderOwnerEmail)
	lead.BBBRating, _ = raw.Get(model.HeaderBBBRating)

	if v, ok := raw.Get(model.HeaderRevenue); ok {
		lead.Revenue = parseRevenue(v)
	}
	if v, ok := raw.Get(model.HeaderEmployeeCount); ok {
		lead.EmployeeCount = parseEmployeeCount(v)
	}
	lead.Location = deriveLocation(raw)

	return lead
}

// parseRevenue reads a free-text revenue figure in millions. "M" keeps the
// value, "K" divides by 1000, and a bare number is taken as millions.
//
// The unit check looks for "m" or "k" anywhere in the lowercased text, so
// currency tokens containing those letters are classified by them too.
func parseRevenue(s string) *float64 {
	lc := strings.ToLower(s)
	run := numericRunRe.FindString(strings.ReplaceAll(lc, ",", ""))
	if run == "" {
		return nil
	}

	v, ok := parseDecimalPrefix(run)
	if !ok {
		return nil
	}

	if !strings.Contains(lc, "m") && strings.Contains(lc, "k") {
		v /= 1000
	}
	return &v
}

// parseDecimalPrefix parses the longest leading decimal in a run of digits and
// dots, so "1.2.3" reads as 1.2 and "." fails.
func parseDecimalPrefix(run string) (float64, bool) {
	if first := strings.IndexByte(run, '.'); first >= 0 {
		if second := strings.IndexByte(run[first+1:], '.'); second >= 0 {
			run = run[:first+1+second]
		}
	}
	if strings.Trim(run, ".") == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(run, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseEmployeeCount strips separators and any non-digit characters before
// parsing, so "1,234 employees" reads as 1234.
func parseEmployeeCount(s string) *int {
	digits := nonDigitRe.ReplaceAllString(strings.ReplaceAll(s, ",", ""), "")
	if digits == "" {
		return nil
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return nil
	}
	return &n
}

// deriveLocation prefers an explicit Location column and otherwise joins the
// non-empty City and State values.
func deriveLocation(raw model.RawRow) string {
	if loc, ok := raw.Get(model.HeaderLocation); ok {
		if loc = strings.TrimSpace(loc); loc != "" {
			return loc
		}
	}

	var parts []string
	for _, key := range []string{model.HeaderCity, model.HeaderState} {
		if v, ok := raw.Get(key); ok {
			if v = strings.TrimSpace(v); v != "" {
				parts = append(parts, v)
			}
		}
	}
	return strings.Join(parts, ", ")
}
