package exporter

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"censuscli/internal/dataprocessing"
	"censuscli/pkg/contracts/domain"
)

// ChartData pairs a chart specification with the pivot it draws.
type ChartData struct {
	Spec  domain.ChartSpec
	Pivot *dataprocessing.Pivot
}

// DefaultCharts returns the chart catalogue drawn from a prepared table.
func DefaultCharts() []domain.ChartSpec {
	return []domain.ChartSpec{
		{
			Name:             "education_income",
			Kind:             domain.ChartKindBar,
			Title:            "Impact of Education Level on Income",
			GroupColumns:     []string{dataprocessing.EducationGroupColumn},
			ValueColumn:      dataprocessing.IncomeColumn,
			Colors:           []string{"#528bd9", "#f08b18"},
			XLabel:           "Education Level",
			YLabel:           "Number of Adults",
			Rotation:         45,
			AnnotationFormat: "%d",
		},
		{
			Name:         "education_income_stacked",
			Kind:         domain.ChartKindStackedBar,
			Title:        "Impact of Education on Income",
			GroupColumns: []string{dataprocessing.EducationGroupColumn},
			ValueColumn:  dataprocessing.IncomeColumn,
			Colors:       []string{"#799ac7", "#eda95a"},
			XLabel:       "Education Level",
			YLabel:       "Number of Adults",
			Rotation:     45,
		},
		{
			Name:         "occupation_age_income",
			Kind:         domain.ChartKindStackedBar,
			Title:        "Stacked Bar Chart of Income and Total Data Count by Occupation and Age Group",
			GroupColumns: []string{dataprocessing.OccupationColumn, dataprocessing.AgeGroupColumn},
			ValueColumn:  dataprocessing.IncomeColumn,
			Colors:       []string{"#799ac7", "#eda95a"},
			XLabel:       "Occupation",
			YLabel:       "Count",
			Rotation:     45,
		},
		{
			Name:         "high_income_occupation_age",
			Kind:         domain.ChartKindBar,
			Title:        "Distribution of Income >$50,000 USD Across Occupation and Age",
			GroupColumns: []string{dataprocessing.OccupationColumn},
			ValueColumn:  dataprocessing.AgeGroupColumn,
			Filter: &domain.RowFilter{
				Column: dataprocessing.IncomeColumn,
				Value:  domain.IncomeAbove50KLabel,
			},
			GroupOrder: domain.GroupOrderAppearance,
			XLabel:     "Occupation",
			YLabel:     "Count",
			Rotation:   45,
		},
	}
}

var specValidator = validator.New()

// BuildChartData validates every chart spec and computes the pivot behind it.
func BuildChartData(t *dataprocessing.Table, specs []domain.ChartSpec) ([]ChartData, error) {
	out := make([]ChartData, 0, len(specs))
	for _, spec := range specs {
		if err := specValidator.Struct(spec); err != nil {
			return nil, fmt.Errorf("chart %s: invalid spec: %w", spec.Name, err)
		}
		source := t
		if spec.Filter != nil {
			filtered, err := t.WhereEquals(spec.Filter.Column, spec.Filter.Value)
			if err != nil {
				return nil, fmt.Errorf("chart %s: %w", spec.Name, err)
			}
			source = filtered
		}
		if spec.GroupOrder == domain.GroupOrderAppearance {
			if source == t {
				source = t.Clone()
			}
			if err := declareAppearanceOrder(source, spec.GroupColumns); err != nil {
				return nil, fmt.Errorf("chart %s: %w", spec.Name, err)
			}
		}
		pivot, err := dataprocessing.PivotCounts(source, spec.GroupColumns, spec.ValueColumn)
		if err != nil {
			return nil, fmt.Errorf("chart %s: %w", spec.Name, err)
		}
		out = append(out, ChartData{Spec: spec, Pivot: pivot})
	}
	return out, nil
}

// declareAppearanceOrder fixes every group column without declared categories
// to its values in order of first appearance.
func declareAppearanceOrder(t *dataprocessing.Table, columns []string) error {
	for _, col := range columns {
		if _, ok := t.Categories(col); ok {
			continue
		}
		values, err := t.DistinctInOrder(col)
		if err != nil {
			return err
		}
		if err := t.SetCategories(col, values, false); err != nil {
			return err
		}
	}
	return nil
}
