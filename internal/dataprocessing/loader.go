package dataprocessing

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"censuscli/internal/infrastructure"
	"censuscli/pkg/contracts/domain"
)

// loaderLogger is the global logger tagged with the loader component.
func loaderLogger() *slog.Logger {
	return infrastructure.WithComponent(infrastructure.GetLogger(), "loader")
}

// LoadTable reads headerless comma-delimited records and assigns fields to
// columns by position. Leading whitespace of every field is dropped. A record
// with the wrong number of fields aborts the load with a RowShapeError.
func LoadTable(r io.Reader, columns []string) (*Table, error) {
	table, err := NewTable(columns)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	// Stray quotes inside a field are kept as text.
	reader.LazyQuotes = true
	// Field counts are checked below so the error carries both counts.
	reader.FieldsPerRecord = -1

	for row := 0; ; row++ {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record %d: %w", row, err)
		}
		if err := appendRecord(table, row, rec); err != nil {
			return nil, err
		}
	}

	loaderLogger().Debug("Record table loaded",
		slog.Int("rows", table.Len()),
		slog.Int("columns", len(columns)))

	return table, nil
}

// LoadTableFile loads the record table from path. Workbooks (.xlsx) are read
// from their first sheet; every other extension is treated as delimited text.
func LoadTableFile(path string, columns []string) (*Table, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return loadWorkbook(path, columns)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open data file: %w", err)
	}
	defer f.Close()

	return LoadTable(f, columns)
}

func loadWorkbook(path string, columns []string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", filepath.Base(path))
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}

	table, err := NewTable(columns)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}

	row := 0
	for _, cells := range rows {
		// GetRows drops trailing empty cells, so a fully empty row comes back empty.
		if len(cells) == 0 {
			continue
		}
		rec := make([]string, len(cells))
		for i, c := range cells {
			rec[i] = strings.TrimLeft(c, " \t")
		}
		if err := appendRecord(table, row, rec); err != nil {
			return nil, err
		}
		row++
	}

	loaderLogger().Debug("Record table loaded from workbook",
		slog.String("sheet", sheets[0]),
		slog.Int("rows", table.Len()))

	return table, nil
}

func appendRecord(table *Table, row int, rec []string) error {
	expected := len(table.columns)
	if len(rec) != expected {
		return &RowShapeError{Row: row, Expected: expected, Actual: len(rec)}
	}
	values := make([]domain.Value, len(rec))
	for i, field := range rec {
		values[i] = domain.Some(field)
	}
	return table.AppendRow(values)
}
