package exporter

import (
	"fmt"
	"log/slog"

	"censuscli/internal/config"
	"censuscli/internal/dataprocessing"
	"censuscli/internal/infrastructure"
)

// PreparedTableFile is the file name of the exported prepared table.
const PreparedTableFile = "prepared_census.csv"

// TableExporter writes the prepared table and chart pivots as CSV files
type TableExporter struct {
	csvWriter *CSVWriter
	bom       bool
	logger    *slog.Logger
}

// NewTableExporter creates a new table exporter
func NewTableExporter(paths *config.Paths, bom bool, logger *slog.Logger) *TableExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &TableExporter{
		csvWriter: NewCSVWriter(paths, logger),
		bom:       bom,
		logger:    infrastructure.WithComponent(logger, "table_exporter"),
	}
}

// ExportTable writes every column of t, absent cells as empty fields
func (e *TableExporter) ExportTable(t *dataprocessing.Table, filename string) error {
	if err := e.csvWriter.WriteSimpleCSV(filename, t.Columns(), t.Records(), e.bom); err != nil {
		return fmt.Errorf("failed to export table: %w", err)
	}
	e.logger.Info("Exported prepared table",
		slog.String("file", filename),
		slog.Int("rows", t.Len()))
	return nil
}

// ExportPivots writes one <chart name>.csv per chart
func (e *TableExporter) ExportPivots(charts []ChartData) error {
	for _, c := range charts {
		filename := c.Spec.Name + ".csv"
		if err := e.csvWriter.WriteSimpleCSV(filename, c.Pivot.Header(), c.Pivot.Records(), e.bom); err != nil {
			return fmt.Errorf("failed to export pivot %s: %w", c.Spec.Name, err)
		}
		e.logger.Info("Exported chart pivot",
			slog.String("chart", c.Spec.Name),
			slog.String("file", filename),
			slog.Int("groups", len(c.Pivot.Rows)))
	}
	return nil
}
