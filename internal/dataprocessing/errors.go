package dataprocessing

import (
	"fmt"
	"strings"
)

// SchemaParseError reports an attribute declaration that yields an empty or
// duplicate column name.
type SchemaParseError struct {
	Line   int    `json:"line"`
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// Error implements the error interface
func (e *SchemaParseError) Error() string {
	return fmt.Sprintf("attribute description line %d: %s (name %q)", e.Line, e.Reason, e.Name)
}

// RowShapeError reports a data row whose field count differs from the catalog.
// Row is the 0-based index of the record in the input.
type RowShapeError struct {
	Row      int `json:"row"`
	Expected int `json:"expected"`
	Actual   int `json:"actual"`
}

// Error implements the error interface
func (e *RowShapeError) Error() string {
	return fmt.Sprintf("row %d has %d fields, expected %d", e.Row, e.Actual, e.Expected)
}

// CategoryViolation is one cell outside a declared category domain.
type CategoryViolation struct {
	Row   int    `json:"row"`
	Value string `json:"value"`
}

// UnknownCategoryError lists every row whose value falls outside the declared
// categories of Column.
type UnknownCategoryError struct {
	Column    string              `json:"column"`
	Allowed   []string            `json:"allowed"`
	Offenders []CategoryViolation `json:"offenders"`
}

// Error implements the error interface
func (e *UnknownCategoryError) Error() string {
	const maxListed = 5
	parts := make([]string, 0, maxListed)
	for i, v := range e.Offenders {
		if i == maxListed {
			parts = append(parts, fmt.Sprintf("... %d more", len(e.Offenders)-maxListed))
			break
		}
		parts = append(parts, fmt.Sprintf("row %d=%q", v.Row, v.Value))
	}
	return fmt.Sprintf("column %q: %d value(s) outside [%s]: %s",
		e.Column, len(e.Offenders), strings.Join(e.Allowed, ", "), strings.Join(parts, ", "))
}

// ConfigError reports a preparation step pointed at a column the table does
// not have.
type ConfigError struct {
	Step    string `json:"step"`
	Column  string `json:"column"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: column %q: %s", e.Step, e.Column, e.Message)
}

func missingColumn(step, column string) *ConfigError {
	return &ConfigError{Step: step, Column: column, Message: "column not found"}
}

// StepError wraps the failure of one named preparation step.
type StepError struct {
	Step  string `json:"step"`
	Cause error  `json:"cause,omitempty"`
}

// Error implements the error interface
func (e *StepError) Error() string {
	if e == nil {
		return "unknown step error"
	}
	return fmt.Sprintf("[%s] %v", e.Step, e.Cause)
}

// Unwrap returns the underlying error
func (e *StepError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// wrapStep attaches the step name unless err is nil.
func wrapStep(step string, err error) error {
	if err == nil {
		return nil
	}
	return &StepError{Step: step, Cause: err}
}
