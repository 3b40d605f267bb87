// Package ingest parses lead exports into normalized, scored Lead records.
package ingest

import (
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/outreach-cli/internal/model"
)

// ErrMalformedInput is returned when an export lacks a header row plus at
// least one data row.
var ErrMalformedInput = eris.New("ingest: CSV must have a header row and at least one data row")

// SplitLine splits one CSV line on commas, honoring double-quoted fields.
// A doubled quote inside quotes is a literal quote. Every field is trimmed.
// An unterminated quote consumes the rest of the line into the current field.
func SplitLine(line string) []string {
	var (
		fields  []string
		current strings.Builder
		quoted  bool
	)

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"':
			if quoted && i+1 < len(line) && line[i+1] == '"' {
				current.WriteByte('"')
				i++
				continue
			}
			quoted = !quoted
		case c == ',' && !quoted:
			fields = append(fields, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteByte(c)
		}
	}

	return append(fields, strings.TrimSpace(current.String()))
}

// ParseCSV parses lead export text into header-keyed rows. Blank lines are
// skipped, empty cells are left absent, and short rows simply omit the
// trailing headers.
func ParseCSV(text string) ([]model.RawRow, error) {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) < 2 {
		return nil, eris.Wrapf(ErrMalformedInput, "ingest: got %d line(s)", len(lines))
	}

	headers := normalizeCells(SplitLine(strings.TrimSpace(lines[0])))

	rows := make([]model.RawRow, 0, len(lines)-1)
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, mapRow(headers, normalizeCells(SplitLine(line))))
	}

	return rows, nil
}

// mapRow pairs headers with values. Empty header names and empty values are
// dropped, as are values past the last header.
func mapRow(headers, values []string) model.RawRow {
	row := make(model.RawRow, len(headers))
	for i, h := range headers {
		if h == "" || i >= len(values) {
			continue
		}
		if values[i] == "" {
			continue
		}
		row[h] = values[i]
	}
	return row
}

// normalizeCells strips one enclosing quote from each end of every cell and
// trims the result.
func normalizeCells(cells []string) []string {
	for i, c := range cells {
		c = strings.TrimPrefix(c, `"`)
		c = strings.TrimSuffix(c, `"`)
		cells[i] = strings.TrimSpace(c)
	}
	return cells
}
