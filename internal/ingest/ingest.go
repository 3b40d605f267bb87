package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/outreach-cli/internal/model"
	"github.com/sells-group/outreach-cli/internal/scorer"
)

// ProcessOptions configures Process.
type ProcessOptions struct {
	// BatchID is embedded in every lead id. A short random id is generated
	// when empty.
	BatchID string
	// Limit keeps only the first N rows in input order (0 = all).
	Limit int
}

// Process transforms and scores raw rows, applies display defaults, and
// returns the leads ordered by priority (highest first, ties in input order).
func Process(rows []model.RawRow, opts ProcessOptions) []model.Lead {
	batchID := opts.BatchID
	if batchID == "" {
		batchID = NewBatchID()
	}
	if opts.Limit > 0 && opts.Limit < len(rows) {
		rows = rows[:opts.Limit]
	}

	leads := make([]model.Lead, len(rows))
	for i, raw := range rows {
		lead := TransformRawDataToLead(raw, fmt.Sprintf("lead-%d-%s", i, batchID))
		lead.PriorityScoreInfo = scorer.CalculatePriorityScore(lead)
		lead.ApplyDefaults()
		leads[i] = lead
	}

	SortByPriority(leads)

	zap.L().Debug("ingest: leads processed",
		zap.String("batch_id", batchID),
		zap.Int("leads", len(leads)),
	)
	return leads
}

// SortByPriority orders leads by total score, highest first. The sort is
// stable so equal scores keep their input order.
func SortByPriority(leads []model.Lead) {
	slices.SortStableFunc(leads, func(a, b model.Lead) int {
		return b.PriorityScoreInfo.Total - a.PriorityScoreInfo.Total
	})
}

// NewBatchID returns a short random id for one upload batch.
func NewBatchID() string {
	return strings.SplitN(uuid.NewString(), "-", 2)[0]
}

// Load parses CSV text and returns scored, sorted leads.
func Load(text string, opts ProcessOptions) ([]model.Lead, error) {
	rows, err := ParseCSV(text)
	if err != nil {
		return nil, err
	}
	return Process(rows, opts), nil
}

// LoadFile reads a .csv or .xlsx lead export from disk and returns scored,
// sorted leads.
func LoadFile(path string, opts ProcessOptions) ([]model.Lead, error) {
	var (
		rows []model.RawRow
		err  error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		rows, err = ParseXLSX(path, 0)
	default:
		var data []byte
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, eris.Wrapf(err, "ingest: read %s", path)
		}
		rows, err = ParseCSV(string(data))
	}
	if err != nil {
		return nil, err
	}

	return Process(rows, opts), nil
}
