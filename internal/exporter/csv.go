package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"censuscli/internal/config"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVWriter writes report files, resolving relative names against the
// reports directory
type CSVWriter struct {
	paths  *config.Paths
	logger *slog.Logger
}

// NewCSVWriter creates a CSV writer. paths may be nil, in which case file
// names are used as given.
func NewCSVWriter(paths *config.Paths, logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{paths: paths, logger: logger}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers []string
	Records [][]string
	// BOMPrefix starts the file with a UTF-8 BOM so Excel detects the
	// encoding.
	BOMPrefix bool
}

// WriteCSV replaces the file name with the headers and records of options
func (w *CSVWriter) WriteCSV(name string, options WriteOptions) (err error) {
	path := w.resolvePath(name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close file: %w", cerr)
		}
	}()

	if options.BOMPrefix {
		if _, err := file.Write(utf8BOM); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	cw := csv.NewWriter(file)
	if len(options.Headers) > 0 {
		if err := cw.Write(options.Headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}
	if err := cw.WriteAll(options.Records); err != nil {
		return fmt.Errorf("failed to write records: %w", err)
	}

	w.logger.Debug("CSV file written",
		slog.String("path", path),
		slog.Int("records", len(options.Records)))
	return nil
}

// WriteSimpleCSV replaces filePath with headers followed by records
func (w *CSVWriter) WriteSimpleCSV(filePath string, headers []string, records [][]string, bom bool) error {
	return w.WriteCSV(filePath, WriteOptions{
		Headers:   headers,
		Records:   records,
		BOMPrefix: bom,
	})
}

func (w *CSVWriter) resolvePath(name string) string {
	if w.paths == nil {
		return name
	}
	return w.paths.GetReportPath(name)
}
