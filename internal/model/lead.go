package model

import "strings"

// Defaults applied to required lead fields the export left blank.
const (
	UnknownCompany  = "Unknown Company"
	UnknownIndustry = "Unknown Industry"
	UnknownLocation = "Unknown Location"
)

// NoFactorsExplanation is the single explanation recorded when no scoring
// rule fired for a lead.
const NoFactorsExplanation = "No specific scoring factors met."

// Recognized lead export headers.
const (
	HeaderCompany       = "Company"
	HeaderWebsite       = "Website"
	HeaderIndustry      = "Industry"
	HeaderRevenue       = "Revenue"
	HeaderEmployeeCount = "Employee Count"
	HeaderOwnerTitle    = "Owner's Title"
	HeaderOwnerEmail    = "Owner's Email"
	HeaderBBBRating     = "BBB Rating"
	HeaderCity          = "City"
	HeaderState         = "State"
	HeaderLocation      = "Location"
)

// RawRow maps header names to cell values for one CSV data row. A missing key
// means the value is absent; empty cells are never stored.
type RawRow map[string]string

// Get returns the value for key and whether it is present.
func (r RawRow) Get(key string) (string, bool) {
	v, ok := r[key]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// OpenerStatus records the outcome of AI opener generation for a lead.
type OpenerStatus string

const (
	OpenerPending   OpenerStatus = ""
	OpenerGenerated OpenerStatus = "generated"
	OpenerSkipped   OpenerStatus = "skipped"
	OpenerFailed    OpenerStatus = "failed"
)

// ScoreBreakdown records the points each factor contributed and one
// explanation per rule that fired, in factor evaluation order.
type ScoreBreakdown struct {
	RevenuePoints  int      `json:"revenuePoints" yaml:"revenue_points"`
	EmployeePoints int      `json:"employeePoints" yaml:"employee_points"`
	TitlePoints    int      `json:"titlePoints" yaml:"title_points"`
	BBBPoints      int      `json:"bbbPoints" yaml:"bbb_points"`
	Explanations   []string `json:"explanations" yaml:"explanations"`
}

// PriorityScoreInfo is the outreach priority computed for a lead.
type PriorityScoreInfo struct {
	Total     int            `json:"total" yaml:"total"`
	Breakdown ScoreBreakdown `json:"breakdown" yaml:"breakdown"`
}

// Lead is one prospective customer derived from a lead export row.
// Empty strings and nil pointers mean the value is absent.
type Lead struct {
	ID            string   `json:"id" yaml:"id"`
	CompanyName   string   `json:"companyName" yaml:"company_name"`
	Website       string   `json:"website,omitempty" yaml:"website,omitempty"`
	Industry      string   `json:"industry" yaml:"industry"`
	Location      string   `json:"location" yaml:"location"`
	Revenue       *float64 `json:"revenue,omitempty" yaml:"revenue,omitempty"` // millions
	EmployeeCount *int     `json:"employeeCount,omitempty" yaml:"employee_count,omitempty"`
	Title         string   `json:"title,omitempty" yaml:"title,omitempty"`
	OwnerEmail    string   `json:"ownerEmail,omitempty" yaml:"owner_email,omitempty"`
	BBBRating     string   `json:"bbbRating,omitempty" yaml:"bbb_rating,omitempty"`

	PriorityScoreInfo PriorityScoreInfo `json:"priorityScoreInfo" yaml:"priority_score_info"`

	AIOpener     string       `json:"aiOpener,omitempty" yaml:"ai_opener,omitempty"`
	AISubject    string       `json:"aiSubject,omitempty" yaml:"ai_subject,omitempty"`
	OpenerStatus OpenerStatus `json:"openerStatus,omitempty" yaml:"opener_status,omitempty"`
	OpenerError  string       `json:"openerError,omitempty" yaml:"opener_error,omitempty"`
}

// ApplyDefaults fills the required display fields left empty by the export.
func (l *Lead) ApplyDefaults() {
	if l.CompanyName == "" {
		l.CompanyName = UnknownCompany
	}
	if l.Industry == "" {
		l.Industry = UnknownIndustry
	}
	if l.Location == "" {
		l.Location = UnknownLocation
	}
}

// HasAIContext reports whether the lead carries enough real data (industry
// and location, not placeholders) to prompt for an opener.
func (l *Lead) HasAIContext() bool {
	return isKnown(l.Industry, UnknownIndustry) && isKnown(l.Location, UnknownLocation)
}

func isKnown(v, placeholder string) bool {
	v = strings.TrimSpace(v)
	return v != "" && v != "N/A" && v != placeholder
}
