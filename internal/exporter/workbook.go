package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/xuri/excelize/v2"

	"censuscli/internal/infrastructure"
	"censuscli/pkg/contracts/domain"
)

const (
	// IndexSheet lists every rendered chart and its parameters.
	IndexSheet = "Charts"

	labelSeparator = " / "
)

var indexHeader = []interface{}{
	"Chart", "Title", "Kind", "Group Columns", "Value Column", "Filter",
	"X Label", "Y Label", "Rotation", "Annotation", "Colors", "Groups",
}

// WorkbookRenderer draws the chart catalogue into an Excel workbook
type WorkbookRenderer struct {
	logger *slog.Logger
}

// NewWorkbookRenderer creates a new workbook renderer
func NewWorkbookRenderer(logger *slog.Logger) *WorkbookRenderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkbookRenderer{logger: infrastructure.WithComponent(logger, "workbook_renderer")}
}

// Render writes one sheet per chart holding its pivot data and a native
// column chart, plus the index sheet, and saves the workbook to path.
func (r *WorkbookRenderer) Render(path string, charts []ChartData) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", IndexSheet); err != nil {
		return fmt.Errorf("failed to name index sheet: %w", err)
	}
	if err := f.SetSheetRow(IndexSheet, "A1", &indexHeader); err != nil {
		return fmt.Errorf("failed to write index header: %w", err)
	}

	for i, c := range charts {
		if err := r.renderChart(f, c); err != nil {
			return fmt.Errorf("chart %s: %w", c.Spec.Name, err)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := indexRow(c)
		if err := f.SetSheetRow(IndexSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write index row: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	r.logger.Info("Rendered chart workbook",
		slog.String("path", path),
		slog.Int("charts", len(charts)))
	return nil
}

// renderChart writes the pivot at A1 of a sheet named after the chart: group
// labels in column A, one column per pivot column, then anchors the chart
// beside the data.
func (r *WorkbookRenderer) renderChart(f *excelize.File, c ChartData) error {
	sheet := c.Spec.Name
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	header := make([]interface{}, 0, len(c.Pivot.Columns)+1)
	header = append(header, formatList(c.Pivot.GroupColumns))
	for _, col := range c.Pivot.Columns {
		header = append(header, col)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	labels := c.Pivot.Labels(labelSeparator)
	for i, row := range c.Pivot.Rows {
		values := make([]interface{}, 0, len(row.Counts)+1)
		values = append(values, labels[i])
		for _, n := range row.Counts {
			values = append(values, n)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}

	if len(c.Pivot.Rows) == 0 || len(c.Pivot.Columns) == 0 {
		r.logger.Warn("Skipping chart with no data",
			slog.String("chart", c.Spec.Name))
		return nil
	}

	chart, err := buildChart(c)
	if err != nil {
		return err
	}
	anchor, err := excelize.CoordinatesToCellName(len(c.Pivot.Columns)+3, 2)
	if err != nil {
		return err
	}
	if err := f.AddChart(sheet, anchor, chart); err != nil {
		return fmt.Errorf("failed to add chart: %w", err)
	}

	r.logger.Debug("Rendered chart",
		slog.String("chart", c.Spec.Name),
		slog.Int("groups", len(c.Pivot.Rows)),
		slog.Int("series", len(c.Pivot.Columns)))
	return nil
}

func buildChart(c ChartData) (*excelize.Chart, error) {
	var chartType excelize.ChartType
	switch c.Spec.Kind {
	case domain.ChartKindBar:
		chartType = excelize.Col
	case domain.ChartKindStackedBar:
		chartType = excelize.ColStacked
	default:
		return nil, fmt.Errorf("unsupported chart kind %q", c.Spec.Kind)
	}

	sheet := c.Spec.Name
	last := len(c.Pivot.Rows) + 1
	categories := fmt.Sprintf("'%s'!$A$2:$A$%d", sheet, last)

	series := make([]excelize.ChartSeries, len(c.Pivot.Columns))
	for i := range c.Pivot.Columns {
		col, err := excelize.ColumnNumberToName(i + 2)
		if err != nil {
			return nil, err
		}
		series[i] = excelize.ChartSeries{
			Name:       fmt.Sprintf("'%s'!$%s$1", sheet, col),
			Categories: categories,
			Values:     fmt.Sprintf("'%s'!$%s$2:$%s$%d", sheet, col, col, last),
		}
		if i < len(c.Spec.Colors) {
			series[i].Fill = excelize.Fill{
				Type:    "pattern",
				Pattern: 1,
				Color:   []string{formatColor(c.Spec.Colors[i])},
			}
		}
	}

	return &excelize.Chart{
		Type:   chartType,
		Series: series,
		Title:  []excelize.RichTextRun{{Text: c.Spec.Title}},
		Legend: excelize.ChartLegend{Position: "top_right"},
		PlotArea: excelize.ChartPlotArea{
			ShowVal: c.Spec.AnnotationFormat != "",
			NumFmt:  excelize.ChartNumFmt{CustomNumFmt: annotationNumFmt(c.Spec.AnnotationFormat)},
		},
		XAxis: excelize.ChartAxis{
			Title:     []excelize.RichTextRun{{Text: c.Spec.XLabel}},
			// DrawingML rotation runs clockwise.
			Alignment: excelize.Alignment{TextRotation: -c.Spec.Rotation},
		},
		YAxis: excelize.ChartAxis{
			MajorGridLines: true,
			Title:          []excelize.RichTextRun{{Text: c.Spec.YLabel}},
		},
		Dimension: excelize.ChartDimension{Width: 960, Height: 480},
	}, nil
}

func indexRow(c ChartData) []interface{} {
	filter := ""
	if c.Spec.Filter != nil {
		filter = formatFilter(c.Spec.Filter.Column, c.Spec.Filter.Value)
	}
	colors := make([]string, len(c.Spec.Colors))
	for i, col := range c.Spec.Colors {
		colors[i] = formatColor(col)
	}
	return []interface{}{
		c.Spec.Name,
		c.Spec.Title,
		string(c.Spec.Kind),
		formatList(c.Spec.GroupColumns),
		c.Spec.ValueColumn,
		filter,
		c.Spec.XLabel,
		c.Spec.YLabel,
		strconv.Itoa(c.Spec.Rotation),
		c.Spec.AnnotationFormat,
		formatList(colors),
		len(c.Pivot.Rows),
	}
}
