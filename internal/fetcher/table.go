// Package fetcher reads the raw tabular exports (CSV or XLSX) into an
// in-memory table keyed by normalized column name, and maps tables
// into the typed records the pipeline consumes.
package fetcher

import (
	"strings"

	"github.com/rotisserie/eris"
)

// Table is an ordered sequence of rows with named columns. Cell access
// is by normalized header name so exports with shifted column order or
// odd casing still load.
type Table struct {
	Header []string
	Rows   [][]string

	index map[string]int
}

// NewTable builds a Table from a header row and data rows.
func NewTable(header []string, rows [][]string) (*Table, error) {
	if len(header) == 0 {
		return nil, eris.New("fetcher: table has no header row")
	}
	idx := make(map[string]int, len(header))
	for i, col := range header {
		idx[normalizeCol(col)] = i
	}
	return &Table{Header: header, Rows: rows, index: idx}, nil
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.Rows) }

// HasColumn reports whether the named column exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[normalizeCol(name)]
	return ok
}

// Cell returns the cell at row i for the named column. An absent
// column, short row, or empty cell is a null (nil).
func (t *Table) Cell(i int, name string) *string {
	idx, ok := t.index[normalizeCol(name)]
	if !ok || i >= len(t.Rows) || idx >= len(t.Rows[i]) {
		return nil
	}
	v := strings.TrimSpace(t.Rows[i][idx])
	if v == "" {
		return nil
	}
	return &v
}

// normalizeCol lowercases and strips spacing quirks so "Venue Name",
// "VENUE NAME", and "venue_name" all match.
func normalizeCol(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "_", " ")
	return strings.Join(strings.Fields(s), " ")
}
