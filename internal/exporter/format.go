package exporter

import (
	"fmt"
	"strings"
)

// formatFilter renders a row filter for the chart index
func formatFilter(column, value string) string {
	if column == "" {
		return ""
	}
	return fmt.Sprintf("%s == %s", column, value)
}

// formatColor converts "#rrggbb" into the upper-case hex form workbooks use
func formatColor(c string) string {
	return strings.ToUpper(strings.TrimPrefix(c, "#"))
}

// formatList joins list values for a single cell
func formatList(values []string) string {
	return strings.Join(values, ", ")
}

// annotationNumFmt maps a value label format onto an Excel number format.
func annotationNumFmt(format string) string {
	switch format {
	case "":
		return ""
	case "%d":
		return "0"
	default:
		return "General"
	}
}
