package dataprocessing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"censuscli/pkg/contracts/domain"
)

func TestNewTableRejectsDuplicateColumns(t *testing.T) {
	_, err := NewTable([]string{"age", "sex", "age"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate column "age"`)
}

func TestTableAppendRowShape(t *testing.T) {
	table := tableOf(t, []string{"a", "b"}, []string{"1", "2"})
	err := table.AppendRow([]domain.Value{domain.Some("x")})

	var shapeErr *RowShapeError
	require.True(t, errors.As(err, &shapeErr))
	assert.Equal(t, &RowShapeError{Row: 1, Expected: 2, Actual: 1}, shapeErr)
	assert.Equal(t, 1, table.Len())
}

func TestTableColumnEditing(t *testing.T) {
	table := tableOf(t, []string{"a", "b", "c"},
		[]string{"1", "2", "3"},
		[]string{"4", "5", "6"},
	)

	require.NoError(t, table.DropColumn("b"))
	assert.Equal(t, []string{"a", "c"}, table.Columns())
	assert.Equal(t, [][]string{{"1", "3"}, {"4", "6"}}, table.Records())
	assert.False(t, table.HasColumn("b"))
	assert.Error(t, table.DropColumn("b"))

	require.NoError(t, table.AddColumn("d", []domain.Value{domain.Some("x"), domain.Absent()}))
	v, ok := cell(t, table, 0, "d")
	assert.True(t, ok)
	assert.Equal(t, "x", v)
	_, ok = cell(t, table, 1, "d")
	assert.False(t, ok)

	assert.Error(t, table.AddColumn("d", []domain.Value{domain.Absent(), domain.Absent()}), "duplicate")
	assert.Error(t, table.AddColumn("e", []domain.Value{domain.Absent()}), "wrong length")

	require.NoError(t, table.Set(1, "c", domain.Some("9")))
	v, _ = cell(t, table, 1, "c")
	assert.Equal(t, "9", v)
	assert.Error(t, table.Set(5, "c", domain.Absent()))
	_, err := table.Get(0, "missing")
	assert.Error(t, err)
}

func TestTableRowIsCopy(t *testing.T) {
	table := tableOf(t, []string{"a"}, []string{"1"})
	row := table.Row(0)
	row[0] = domain.Some("changed")
	v, _ := cell(t, table, 0, "a")
	assert.Equal(t, "1", v)
}

func TestTableIntColumn(t *testing.T) {
	table := tableOf(t, []string{"age"}, []string{"39"}, []string{absent}, []string{"abc"}, []string{"17"})
	values, ok, err := table.IntColumn("age")
	require.NoError(t, err)
	assert.Equal(t, []int{39, 0, 0, 17}, values)
	assert.Equal(t, []bool{true, false, false, true}, ok)
}

func TestTableCategories(t *testing.T) {
	table := tableOf(t, []string{"income"},
		[]string{">50K"}, []string{"<=50K"}, []string{absent}, []string{">50K"},
	)

	distinct, err := table.OrderedDistinct("income")
	require.NoError(t, err)
	assert.Equal(t, []string{"<=50K", ">50K"}, distinct, "lexical without categories")

	require.NoError(t, table.SetCategories("income", []string{">50K", "<=50K"}, true))
	distinct, err = table.OrderedDistinct("income")
	require.NoError(t, err)
	assert.Equal(t, []string{">50K", "<=50K"}, distinct, "declared order wins")

	cats, ok := table.Categories("income")
	require.True(t, ok)
	assert.True(t, cats.Ordered)
	assert.True(t, cats.Contains(">50K"))
	assert.False(t, cats.Contains(">50K."))

	err = table.SetCategories("income", []string{"<=50K"}, true)
	var catErr *UnknownCategoryError
	require.ErrorAs(t, err, &catErr)
	assert.Equal(t, []CategoryViolation{{Row: 0, Value: ">50K"}, {Row: 3, Value: ">50K"}}, catErr.Offenders)
}

func TestTableFilter(t *testing.T) {
	table := tableOf(t, []string{"occupation", "income"},
		[]string{"Sales", ">50K"},
		[]string{"Sales", "<=50K"},
		[]string{absent, ">50K"},
	)
	require.NoError(t, table.SetCategories("income", []string{"<=50K", ">50K"}, true))

	high, err := table.WhereEquals("income", ">50K")
	require.NoError(t, err)
	assert.Equal(t, 2, high.Len())
	_, ok := high.Categories("income")
	assert.True(t, ok, "categories carried over")

	_, err = table.WhereEquals("missing", "x")
	assert.Error(t, err)

	clone := table.Clone()
	assert.True(t, clone.Equal(table))
	require.NoError(t, clone.Set(0, "occupation", domain.Some("Craft-repair")))
	assert.False(t, clone.Equal(table))
	v, _ := cell(t, table, 0, "occupation")
	assert.Equal(t, "Sales", v, "clone is deep")
}

func TestTableRecordsRendersAbsentAsEmpty(t *testing.T) {
	table := tableOf(t, []string{"a", "b"}, []string{absent, "x"})
	assert.Equal(t, [][]string{{"", "x"}}, table.Records())
}

func TestTableIncome(t *testing.T) {
	table := tableOf(t, []string{"age", IncomeColumn},
		[]string{"39", "<=50K"},
		[]string{"40", ">50K"},
		[]string{"41", absent},
		[]string{"42", "50K+"},
	)

	inc, ok, err := table.Income(0)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, domain.IncomeAtMost50K, inc)

	inc, ok, err = table.Income(1)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, domain.IncomeAtMost50K.Less(inc))

	_, ok, err = table.Income(2)
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = table.Income(3)
	assert.Error(t, err)

	_, _, err = tableOf(t, []string{"age"}, []string{"1"}).Income(0)
	assert.Error(t, err)
}

func TestTableDistinctInOrder(t *testing.T) {
	table := tableOf(t, []string{"occupation"},
		[]string{"Sales"}, []string{absent}, []string{"Craft-repair"}, []string{"Sales"},
	)
	values, err := table.DistinctInOrder("occupation")
	require.NoError(t, err)
	assert.Equal(t, []string{"Sales", "Craft-repair"}, values)

	_, err = table.DistinctInOrder("missing")
	assert.Error(t, err)
}
