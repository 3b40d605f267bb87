package ingest

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/outreach-cli/internal/model"
)

// ParseXLSX reads one sheet of an XLSX lead export and normalizes it the same
// way as ParseCSV: the first non-blank row is the header, blank rows are
// skipped, and empty cells are left absent.
func ParseXLSX(path string, sheetIndex int) ([]model.RawRow, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "ingest: open xlsx")
	}
	if sheetIndex < 0 || sheetIndex >= len(f.Sheets) {
		return nil, eris.Errorf("ingest: sheet index %d out of range (file has %d sheets)", sheetIndex, len(f.Sheets))
	}

	var records [][]string
	for _, row := range f.Sheets[sheetIndex].Rows {
		if row == nil {
			continue
		}
		cells := normalizeCells(rowToStrings(row))
		if isBlank(cells) {
			continue
		}
		records = append(records, cells)
	}

	return rowsFromRecords(records)
}

// rowsFromRecords maps pre-split records (header first) into raw rows.
func rowsFromRecords(records [][]string) ([]model.RawRow, error) {
	if len(records) < 2 {
		return nil, eris.Wrapf(ErrMalformedInput, "ingest: got %d row(s)", len(records))
	}
	headers := records[0]
	rows := make([]model.RawRow, 0, len(records)-1)
	for _, rec := range records[1:] {
		rows = append(rows, mapRow(headers, rec))
	}
	return rows, nil
}

func rowToStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for j, cell := range row.Cells {
		cells[j] = strings.TrimSpace(cell.String())
	}
	return cells
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if c != "" {
			return false
		}
	}
	return true
}
