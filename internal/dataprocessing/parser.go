package dataprocessing

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// IncomeColumn names the final field of every data record. The attribute
// description never declares it, so the loader appends it to the catalog.
const IncomeColumn = "income"

// Catalog is the ordered list of column names of the data file.
type Catalog []string

// attributeLine holds one extracted declaration and where it came from.
type attributeLine struct {
	line int
	name string
}

// isAttributeDeclaration reports whether a description line declares a
// column. Lines with '|' are comments and lines with '>' are value examples.
func isAttributeDeclaration(line string) bool {
	return strings.Contains(line, ":") &&
		!strings.Contains(line, "|") &&
		!strings.Contains(line, ">")
}

// scanAttributes splits text into lines itself so that no line length limit
// can end the scan early.
func scanAttributes(text string) []attributeLine {
	var out []attributeLine
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if !isAttributeDeclaration(line) {
			continue
		}
		name, _, _ := strings.Cut(line, ":")
		out = append(out, attributeLine{line: i + 1, name: strings.TrimSpace(name)})
	}
	return out
}

// ParseAttributeNames extracts the column names declared in an attribute
// description, in file order. Names are not deduplicated or checked.
func ParseAttributeNames(text string) []string {
	lines := scanAttributes(text)
	names := make([]string, len(lines))
	for i, l := range lines {
		names[i] = l.name
	}
	return names
}

// ValidateAttributeNames reports the first empty, repeated or reserved name
// declared in the description.
func ValidateAttributeNames(text string, reserved ...string) error {
	seen := make(map[string]int)
	for _, l := range scanAttributes(text) {
		if l.name == "" {
			return &SchemaParseError{Line: l.line, Name: l.name, Reason: "empty attribute name"}
		}
		for _, r := range reserved {
			if l.name == r {
				return &SchemaParseError{Line: l.line, Name: l.name, Reason: "reserved attribute name"}
			}
		}
		if first, dup := seen[l.name]; dup {
			return &SchemaParseError{
				Line:   l.line,
				Name:   l.name,
				Reason: fmt.Sprintf("duplicate attribute name, first declared on line %d", first),
			}
		}
		seen[l.name] = l.line
	}
	return nil
}

// LoadCatalog reads an attribute description and returns its column names
// with the income column appended. In strict mode malformed names are
// rejected with a SchemaParseError.
func LoadCatalog(r io.Reader, strict bool) (Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read attribute description: %w", err)
	}
	text := string(data)

	if strict {
		if err := ValidateAttributeNames(text, IncomeColumn); err != nil {
			return nil, err
		}
	}

	names := ParseAttributeNames(text)
	catalog := append(Catalog(names), IncomeColumn)

	loaderLogger().Debug("Attribute catalog parsed",
		slog.Int("attributes", len(names)),
		slog.Any("columns", []string(catalog)))

	return catalog, nil
}
