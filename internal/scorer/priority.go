// Package scorer computes outreach priority scores for leads.
package scorer

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/sells-group/outreach-cli/internal/model"
)

// MaxScore caps a lead's total priority score.
const MaxScore = 100

// threshold is one rung of a numeric rule ladder.
type threshold struct {
	bound     float64
	inclusive bool
	points    int
	label     string
}

func (t threshold) matches(v float64) bool {
	if t.inclusive {
		return v >= t.bound
	}
	return v > t.bound
}

// Ladders are evaluated top to bottom; the first match wins.
var (
	revenueTiers = []threshold{
		{bound: 50, points: 30, label: "High Revenue"},
		{bound: 10, inclusive: true, points: 20, label: "Significant Revenue"},
		{bound: 1, inclusive: true, points: 10, label: "Notable Revenue"},
	}
	employeeTiers = []threshold{
		{bound: 500, points: 30, label: "Large Employee Count"},
		{bound: 100, inclusive: true, points: 20, label: "Medium Employee Count"},
		{bound: 10, inclusive: true, points: 10, label: "Small Employee Count"},
	}
)

type titleTier struct {
	keywords []string
	points   int
	label    string
}

var titleTiers = []titleTier{
	{keywords: []string{"ceo", "cfo", "cto", "cmo", "coo", "founder", "president"}, points: 20, label: "Key Title"},
	{keywords: []string{"vp", "vice president"}, points: 15, label: "VP Level Title"},
	{keywords: []string{"director"}, points: 10, label: "Director Level Title"},
	{keywords: []string{"manager"}, points: 5, label: "Manager Level Title"},
}

type grade struct {
	points int
	label  string
}

var bbbGrades = map[string]grade{
	"A+": {20, "Excellent BBB Rating"},
	"A":  {18, "Strong BBB Rating"},
	"A-": {16, "Good BBB Rating"},
	"B+": {14, "BBB Rating"},
	"B":  {12, "BBB Rating"},
	"B-": {10, "BBB Rating"},
	"C+": {8, "Fair BBB Rating"},
	"C":  {6, "Fair BBB Rating"},
	"C-": {4, "Fair BBB Rating"},
}

// factor scores one signal. ok is false when the rule did not fire, either
// because the field is absent or because no tier matched.
type factor func(lead model.Lead) (points int, explanation string, ok bool)

var factors = []struct {
	score factor
	slot  func(b *model.ScoreBreakdown) *int
}{
	{revenueFactor, func(b *model.ScoreBreakdown) *int { return &b.RevenuePoints }},
	{employeeFactor, func(b *model.ScoreBreakdown) *int { return &b.EmployeePoints }},
	{titleFactor, func(b *model.ScoreBreakdown) *int { return &b.TitlePoints }},
	{bbbFactor, func(b *model.ScoreBreakdown) *int { return &b.BBBPoints }},
}

// CalculatePriorityScore scores a lead from its revenue, headcount, owner
// title, and BBB rating. Absent fields contribute nothing. It never fails.
func CalculatePriorityScore(lead model.Lead) model.PriorityScoreInfo {
	var (
		breakdown model.ScoreBreakdown
		total     int
	)

	for _, f := range factors {
		points, explanation, ok := f.score(lead)
		if !ok {
			continue
		}
		*f.slot(&breakdown) = points
		total += points
		breakdown.Explanations = append(breakdown.Explanations, explanation)
	}

	if len(breakdown.Explanations) == 0 {
		breakdown.Explanations = []string{model.NoFactorsExplanation}
	}

	return model.PriorityScoreInfo{
		Total:     min(total, MaxScore),
		Breakdown: breakdown,
	}
}

func revenueFactor(lead model.Lead) (int, string, bool) {
	if lead.Revenue == nil {
		return 0, "", false
	}
	return ladder(revenueTiers, *lead.Revenue, "$"+formatNumber(*lead.Revenue)+"M")
}

func employeeFactor(lead model.Lead) (int, string, bool) {
	if lead.EmployeeCount == nil {
		return 0, "", false
	}
	n := *lead.EmployeeCount
	return ladder(employeeTiers, float64(n), formatNumber(n))
}

func ladder(tiers []threshold, v float64, shown string) (int, string, bool) {
	for _, t := range tiers {
		if t.matches(v) {
			return t.points, explain(t.points, t.label, shown), true
		}
	}
	return 0, "", false
}

func titleFactor(lead model.Lead) (int, string, bool) {
	if lead.Title == "" {
		return 0, "", false
	}
	words := titleWords(lead.Title)
	for _, tier := range titleTiers {
		for _, kw := range tier.keywords {
			if containsPhrase(words, strings.Fields(kw)) {
				return tier.points, explain(tier.points, tier.label, lead.Title), true
			}
		}
	}
	return 0, "", false
}

// titleWords lowercases a title and splits it on every non-letter rune, so
// keywords only ever match whole words.
func titleWords(title string) []string {
	return strings.FieldsFunc(strings.ToLower(title), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
}

// containsPhrase reports whether phrase appears as consecutive words.
func containsPhrase(words, phrase []string) bool {
	if len(phrase) == 0 {
		return false
	}
	for i := 0; i+len(phrase) <= len(words); i++ {
		match := true
		for j, p := range phrase {
			if words[i+j] != p {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

func bbbFactor(lead model.Lead) (int, string, bool) {
	rating := strings.TrimSpace(lead.BBBRating)
	if rating == "" || rating == "N/A" {
		return 0, "", false
	}
	g, ok := bbbGrades[strings.ToUpper(rating)]
	if !ok {
		return 0, "", false
	}
	return g.points, explain(g.points, g.label, lead.BBBRating), true
}

func explain(points int, label, shown string) string {
	return fmt.Sprintf("+%d: %s (%s)", points, label, shown)
}

var printer = message.NewPrinter(language.English)

// formatNumber renders a value with thousands grouping and at most three
// fraction digits, e.g. 1234.5 as "1,234.5".
func formatNumber[T int | float64](v T) string {
	return printer.Sprintf("%v", number.Decimal(v, number.MaxFractionDigits(3)))
}
