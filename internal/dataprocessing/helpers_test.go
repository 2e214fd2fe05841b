package dataprocessing

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"censuscli/internal/shared/testutil"
	"censuscli/pkg/contracts/domain"
)

// absent marks an absent cell in tableOf rows.
const absent = "\x00"

// tableOf builds a table from string rows; the absent marker becomes an
// absent cell.
func tableOf(t *testing.T, columns []string, rows ...[]string) *Table {
	t.Helper()
	table, err := NewTable(columns)
	require.NoError(t, err)
	for _, r := range rows {
		cells := make([]domain.Value, len(r))
		for i, s := range r {
			if s == absent {
				cells[i] = domain.Absent()
			} else {
				cells[i] = domain.Some(s)
			}
		}
		require.NoError(t, table.AppendRow(cells))
	}
	return table
}

// fixtureTable loads the census fixture into a raw table.
func fixtureTable(t *testing.T) *Table {
	t.Helper()
	catalog, err := LoadCatalog(strings.NewReader(testutil.CensusNames), true)
	require.NoError(t, err)
	table, err := LoadTable(strings.NewReader(testutil.CensusData()), catalog)
	require.NoError(t, err)
	return table
}

// preparedFixture returns the census fixture after preparation.
func preparedFixture(t *testing.T) *Table {
	t.Helper()
	table := fixtureTable(t)
	_, err := NewPreparer(PreparerConfig{Workers: 2}, nil, nil).Prepare(context.Background(), table)
	require.NoError(t, err)
	return table
}

// cell returns the raw value at row i of column, and whether it is present.
func cell(t *testing.T, table *Table, i int, column string) (string, bool) {
	t.Helper()
	v, err := table.Get(i, column)
	require.NoError(t, err)
	return v.Get()
}
