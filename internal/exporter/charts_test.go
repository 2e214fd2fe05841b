package exporter

import (
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"censuscli/internal/dataprocessing"
	"censuscli/pkg/contracts/domain"
)

func TestDefaultChartsAreValid(t *testing.T) {
	v := validator.New()
	seen := make(map[string]bool)
	for _, spec := range DefaultCharts() {
		assert.NoError(t, v.Struct(spec), spec.Name)
		assert.False(t, seen[spec.Name], "duplicate chart %s", spec.Name)
		seen[spec.Name] = true
	}
	assert.Len(t, seen, 4)
}

func TestBuildChartData(t *testing.T) {
	table := preparedFixture(t)

	charts, err := BuildChartData(table, DefaultCharts())
	require.NoError(t, err)
	require.Len(t, charts, 4)

	byName := make(map[string]ChartData)
	for _, c := range charts {
		byName[c.Spec.Name] = c
	}

	education := byName["education_income"].Pivot
	assert.Equal(t, domain.IncomeCategories(), education.Columns)
	assert.Len(t, education.Rows, len(domain.EducationGroupOrder()))
	n, _ := education.Count([]string{domain.EducationMasters}, ">50K")
	assert.Equal(t, 1, n)
	n, _ = education.Count([]string{domain.EducationMasters}, "<=50K")
	assert.Equal(t, 0, n)
	n, _ = education.Count([]string{domain.EducationBachelors}, "<=50K")
	assert.Equal(t, 2, n)

	occupationAge := byName["occupation_age_income"].Pivot
	assert.Equal(t, []string{dataprocessing.OccupationColumn, dataprocessing.AgeGroupColumn}, occupationAge.GroupColumns)
	for _, row := range occupationAge.Rows {
		assert.Len(t, row.Counts, 2)
	}

	// Only >50K rows with a known occupation and age bin are counted;
	// occupations keep their order of first appearance.
	highIncome := byName["high_income_occupation_age"].Pivot
	assert.Equal(t, domain.AgeBinLabels, highIncome.Columns)
	assert.Equal(t, []string{"Prof-specialty", "Exec-managerial"}, highIncome.Labels(""))
	total := 0
	for _, row := range highIncome.Rows {
		total += row.Total()
	}
	assert.Equal(t, 2, total)
}

func TestBuildChartDataErrors(t *testing.T) {
	table := preparedFixture(t)

	_, err := BuildChartData(table, []domain.ChartSpec{{
		Name:         "broken",
		Kind:         domain.ChartKindBar,
		GroupColumns: []string{"nope"},
		ValueColumn:  dataprocessing.IncomeColumn,
	}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chart broken")

	_, err = BuildChartData(table, []domain.ChartSpec{{
		Name:         "bad_filter",
		Kind:         domain.ChartKindBar,
		GroupColumns: []string{dataprocessing.OccupationColumn},
		ValueColumn:  dataprocessing.IncomeColumn,
		Filter:       &domain.RowFilter{Column: "nope", Value: "x"},
	}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chart bad_filter")
}

func TestBuildChartDataValidatesSpecs(t *testing.T) {
	table := preparedFixture(t)
	valid := domain.ChartSpec{
		Name:         "valid",
		Kind:         domain.ChartKindBar,
		GroupColumns: []string{dataprocessing.OccupationColumn},
		ValueColumn:  dataprocessing.IncomeColumn,
	}

	tests := []struct {
		name   string
		mutate func(*domain.ChartSpec)
	}{
		{"unknown kind", func(s *domain.ChartSpec) { s.Kind = "pie" }},
		{"no group columns", func(s *domain.ChartSpec) { s.GroupColumns = nil }},
		{"name too long for a sheet", func(s *domain.ChartSpec) { s.Name = strings.Repeat("x", 32) }},
		{"unknown group order", func(s *domain.ChartSpec) { s.GroupOrder = "random" }},
		{"rotation out of range", func(s *domain.ChartSpec) { s.Rotation = 120 }},
		{"unsupported annotation", func(s *domain.ChartSpec) { s.AnnotationFormat = "%.2f" }},
		{"filter without column", func(s *domain.ChartSpec) { s.Filter = &domain.RowFilter{Value: ">50K"} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := valid
			tt.mutate(&spec)
			_, err := BuildChartData(table, []domain.ChartSpec{spec})
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid spec")
		})
	}

	_, err := BuildChartData(table, []domain.ChartSpec{valid})
	assert.NoError(t, err)
}

func TestBuildChartDataAppearanceOrder(t *testing.T) {
	table := preparedFixture(t)
	spec := domain.ChartSpec{
		Name:         "occupation_income",
		Kind:         domain.ChartKindBar,
		GroupColumns: []string{dataprocessing.OccupationColumn},
		ValueColumn:  dataprocessing.IncomeColumn,
	}
	sorted, err := BuildChartData(table, []domain.ChartSpec{spec})
	require.NoError(t, err)

	spec.GroupOrder = domain.GroupOrderAppearance
	appearance, err := BuildChartData(table, []domain.ChartSpec{spec})
	require.NoError(t, err)

	want, err := table.DistinctInOrder(dataprocessing.OccupationColumn)
	require.NoError(t, err)
	assert.Equal(t, want, appearance[0].Pivot.Labels(""))
	assert.Equal(t, "Adm-clerical", want[0])
	assert.ElementsMatch(t, sorted[0].Pivot.Labels(""), appearance[0].Pivot.Labels(""))
	assert.NotEqual(t, sorted[0].Pivot.Labels(""), appearance[0].Pivot.Labels(""))

	_, declared := table.Categories(dataprocessing.OccupationColumn)
	assert.False(t, declared, "source table is left untouched")
}
