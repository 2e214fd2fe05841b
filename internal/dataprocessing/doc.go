// Package dataprocessing loads and prepares the adult census dataset.
//
// # Architecture
//
// The package has two stages that run in sequence:
//
// 1. Schema loading: LoadCatalog turns the attribute description into the
// ordered column list (with "income" appended) and LoadTable/LoadTableFile
// read the headerless data file into a Table.
//
// 2. Feature preparation: Preparer.Prepare drops the fnlwgt column,
// normalizes the "?" sentinel, orders the income column and derives the
// education_grouped and age_grouped columns.
//
// PivotCounts and Summarize read the prepared table for chart rendering and
// reporting.
//
// # Usage
//
//	catalog, err := dataprocessing.LoadCatalog(namesFile, true)
//	if err != nil {
//	    return err
//	}
//	table, err := dataprocessing.LoadTableFile("adult.data.txt", catalog)
//	if err != nil {
//	    return err
//	}
//	report, err := dataprocessing.NewPreparer(cfg, logger, metrics).Prepare(ctx, table)
//
// # Error Handling
//
// Structural problems abort the run and come back as typed errors:
//
//	- SchemaParseError: empty, duplicate or reserved attribute names (strict catalog)
//	- RowShapeError: a record with the wrong number of fields
//	- UnknownCategoryError: income labels outside <=50K / >50K
//	- ConfigError: a step configured for a column the table lacks
//
// Preparation failures are wrapped in StepError; use errors.As to reach the
// typed cause. Values the education and age lookups cannot group become
// absent cells and are counted in PrepareReport.LookupMisses.
//
// # Missing Values
//
// Cells are domain.Value, which is either present or explicitly absent.
// Absent cells are skipped by PivotCounts, ValueCounts and CountDistinct.
package dataprocessing
