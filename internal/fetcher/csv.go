package fetcher

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
)

// ReadCSV parses a CSV stream into a Table. The first row is the
// header. Variable-width rows are tolerated; short rows read as null
// cells.
func ReadCSV(ctx context.Context, r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var (
		header []string
		rows   [][]string
	)
	for {
		if ctx.Err() != nil {
			return nil, eris.Wrap(ctx.Err(), "csv: context cancelled")
		}
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrap(err, "csv: read row")
		}
		if header == nil {
			header = record
			continue
		}
		rows = append(rows, record)
	}
	return NewTable(header, rows)
}

// ReadTableFile loads a table from a file path, dispatching on the
// extension: .xlsx goes through the spreadsheet reader, anything else
// is treated as CSV.
func ReadTableFile(ctx context.Context, path string) (*Table, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return ReadXLSX(path, XLSXOptions{})
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "fetcher: open %s", path)
	}
	defer f.Close()
	return ReadCSV(ctx, f)
}
