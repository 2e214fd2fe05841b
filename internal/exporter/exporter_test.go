package exporter

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"censuscli/internal/dataprocessing"
	"censuscli/internal/shared/testutil"
)

// preparedFixture loads and prepares the census fixture.
func preparedFixture(t *testing.T) *dataprocessing.Table {
	t.Helper()
	catalog, err := dataprocessing.LoadCatalog(strings.NewReader(testutil.CensusNames), true)
	require.NoError(t, err)
	table, err := dataprocessing.LoadTable(strings.NewReader(testutil.CensusData()), catalog)
	require.NoError(t, err)
	_, err = dataprocessing.NewPreparer(dataprocessing.PreparerConfig{Workers: 2}, nil, nil).
		Prepare(context.Background(), table)
	require.NoError(t, err)
	return table
}
