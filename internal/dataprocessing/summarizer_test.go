package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"censuscli/pkg/contracts/domain"
)

func TestSummarizeFixture(t *testing.T) {
	stats, err := Summarize(preparedFixture(t))
	require.NoError(t, err)

	assert.Equal(t, 10, stats.Rows)
	assert.Equal(t, 17, stats.MinAge)
	assert.Equal(t, 90, stats.MaxAge)
	// United-States and Mexico; the "?" row is absent after preparation.
	assert.Equal(t, 2, stats.DistinctNativeCountries)
	assert.Equal(t, 8, stats.DistinctEducationLevels)
	require.Len(t, stats.AgeCounts, 10)
	assert.Equal(t, domain.ValueCount{Value: "17", Count: 1}, stats.AgeCounts[0])
	assert.Equal(t, domain.ValueCount{Value: "90", Count: 1}, stats.AgeCounts[9])
	assert.Equal(t, []domain.ValueCount{
		{Value: "<=50K", Count: 6},
		{Value: ">50K", Count: 4},
	}, stats.IncomeCounts)
}

func TestIncomeCounts(t *testing.T) {
	// Declared order wins over frequency and occurrence.
	table := tableOf(t, []string{IncomeColumn},
		[]string{">50K"}, []string{">50K"}, []string{absent}, []string{"<=50K"},
	)
	counts, err := IncomeCounts(table)
	require.NoError(t, err)
	assert.Equal(t, []domain.ValueCount{
		{Value: "<=50K", Count: 1},
		{Value: ">50K", Count: 2},
	}, counts)

	_, err = IncomeCounts(tableOf(t, []string{IncomeColumn}, []string{"<=50K."}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 0")
}

func TestValueCounts(t *testing.T) {
	table := tableOf(t, []string{"age"},
		[]string{"9"}, []string{"10"}, []string{"39"}, []string{"39"},
		[]string{absent}, []string{"x"}, []string{"10"},
	)
	counts, err := ValueCounts(table, "age")
	require.NoError(t, err)
	assert.Equal(t, []domain.ValueCount{
		{Value: "10", Count: 2},
		{Value: "39", Count: 2},
		{Value: "9", Count: 1},
		{Value: "x", Count: 1},
	}, counts)

	_, err = ValueCounts(table, "missing")
	assert.Error(t, err)
}

func TestSummarizeWithoutAges(t *testing.T) {
	table := tableOf(t, []string{AgeColumn, NativeCountryColumn, EducationColumn},
		[]string{absent, "Cuba", "Masters"},
	)
	stats, err := Summarize(table)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.MinAge)
	assert.Equal(t, 0, stats.MaxAge)
	assert.Empty(t, stats.AgeCounts)
	assert.Nil(t, stats.IncomeCounts)
	assert.Equal(t, 1, stats.DistinctNativeCountries)
}

func TestSummarizeMissingColumn(t *testing.T) {
	_, err := Summarize(tableOf(t, []string{"sex"}))
	assert.Error(t, err)
}
