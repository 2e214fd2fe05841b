// Package exporter writes the prepared census table and its chart
// aggregations to disk.
//
// This package contains three main components:
//
// CSVWriter: Core CSV writing functionality with support for headers,
// appending and a UTF-8 BOM for Excel compatibility.
//
// TableExporter: Writes the prepared table and one CSV per chart pivot.
//
// WorkbookRenderer: Renders every chart of the catalogue as a native Excel
// column chart next to its pivot data, plus an index sheet listing each
// chart's parameters.
//
// Example usage:
//
//	charts, err := exporter.BuildChartData(table, exporter.DefaultCharts())
//	if err != nil {
//	    return err
//	}
//	renderer := exporter.NewWorkbookRenderer(logger)
//	err = renderer.Render(paths.Workbook, charts)
package exporter
