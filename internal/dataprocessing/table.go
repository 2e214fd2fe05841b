package dataprocessing

import (
	"fmt"
	"sort"
	"strconv"

	"censuscli/pkg/contracts/domain"
)

// Categories declares the closed domain of a column. Labels are listed in
// display order; Ordered marks the order as a total order over the labels.
type Categories struct {
	Labels  []string
	Ordered bool
}

// Contains reports whether label belongs to the domain.
func (c Categories) Contains(label string) bool {
	return c.index(label) >= 0
}

func (c Categories) index(label string) int {
	for i, l := range c.Labels {
		if l == label {
			return i
		}
	}
	return -1
}

// Table is the in-memory record table: named columns over rows of cells.
// Every row holds exactly one cell per column.
type Table struct {
	columns    []string
	index      map[string]int
	rows       [][]domain.Value
	categories map[string]Categories
}

// NewTable creates an empty table with the given columns. Column names must be
// unique.
func NewTable(columns []string) (*Table, error) {
	t := &Table{
		columns:    append([]string(nil), columns...),
		index:      make(map[string]int, len(columns)),
		categories: make(map[string]Categories),
	}
	for i, c := range columns {
		if _, dup := t.index[c]; dup {
			return nil, fmt.Errorf("duplicate column %q", c)
		}
		t.index[c] = i
	}
	return t, nil
}

// Columns returns a copy of the column names in order.
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

// HasColumn reports whether the table has a column called name.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// AppendRow adds a row. The row must hold one cell per column.
func (t *Table) AppendRow(row []domain.Value) error {
	if len(row) != len(t.columns) {
		return &RowShapeError{Row: len(t.rows), Expected: len(t.columns), Actual: len(row)}
	}
	t.rows = append(t.rows, append([]domain.Value(nil), row...))
	return nil
}

// Row returns a copy of row i.
func (t *Table) Row(i int) []domain.Value {
	return append([]domain.Value(nil), t.rows[i]...)
}

// Get returns the cell at row i in column name.
func (t *Table) Get(i int, name string) (domain.Value, error) {
	c, ok := t.index[name]
	if !ok {
		return domain.Value{}, fmt.Errorf("column %q not found", name)
	}
	if i < 0 || i >= len(t.rows) {
		return domain.Value{}, fmt.Errorf("row %d out of range [0,%d)", i, len(t.rows))
	}
	return t.rows[i][c], nil
}

// Income parses the income cell of row i. An absent cell reports false.
func (t *Table) Income(i int) (domain.Income, bool, error) {
	v, err := t.Get(i, IncomeColumn)
	if err != nil {
		return 0, false, err
	}
	raw, present := v.Get()
	if !present {
		return 0, false, nil
	}
	inc, err := domain.ParseIncome(raw)
	if err != nil {
		return 0, false, fmt.Errorf("row %d: %w", i, err)
	}
	return inc, true, nil
}

// Set replaces the cell at row i in column name.
func (t *Table) Set(i int, name string, v domain.Value) error {
	c, ok := t.index[name]
	if !ok {
		return fmt.Errorf("column %q not found", name)
	}
	if i < 0 || i >= len(t.rows) {
		return fmt.Errorf("row %d out of range [0,%d)", i, len(t.rows))
	}
	t.rows[i][c] = v
	return nil
}

// Column returns a copy of every cell in column name, in row order.
func (t *Table) Column(name string) ([]domain.Value, error) {
	c, ok := t.index[name]
	if !ok {
		return nil, fmt.Errorf("column %q not found", name)
	}
	out := make([]domain.Value, len(t.rows))
	for i, row := range t.rows {
		out[i] = row[c]
	}
	return out, nil
}

// IntColumn parses every present cell of column name as an integer. Absent
// cells and cells that do not parse are reported as not ok.
func (t *Table) IntColumn(name string) (values []int, ok []bool, err error) {
	cells, err := t.Column(name)
	if err != nil {
		return nil, nil, err
	}
	values = make([]int, len(cells))
	ok = make([]bool, len(cells))
	for i, v := range cells {
		raw, present := v.Get()
		if !present {
			continue
		}
		n, perr := strconv.Atoi(raw)
		if perr != nil {
			continue
		}
		values[i], ok[i] = n, true
	}
	return values, ok, nil
}

// DropColumn removes column name from every row.
func (t *Table) DropColumn(name string) error {
	c, ok := t.index[name]
	if !ok {
		return fmt.Errorf("column %q not found", name)
	}
	t.columns = append(t.columns[:c:c], t.columns[c+1:]...)
	for i, row := range t.rows {
		t.rows[i] = append(row[:c:c], row[c+1:]...)
	}
	delete(t.categories, name)
	t.reindex()
	return nil
}

// AddColumn appends a new column with one cell per row.
func (t *Table) AddColumn(name string, cells []domain.Value) error {
	if _, dup := t.index[name]; dup {
		return fmt.Errorf("column %q already exists", name)
	}
	if len(cells) != len(t.rows) {
		return fmt.Errorf("column %q has %d cells, table has %d rows", name, len(cells), len(t.rows))
	}
	t.columns = append(t.columns, name)
	t.index[name] = len(t.columns) - 1
	for i := range t.rows {
		t.rows[i] = append(t.rows[i], cells[i])
	}
	return nil
}

func (t *Table) reindex() {
	t.index = make(map[string]int, len(t.columns))
	for i, c := range t.columns {
		t.index[c] = i
	}
}

// CategoryViolations lists the present cells of column name that fall outside
// labels. Absent cells never violate a domain.
func (t *Table) CategoryViolations(name string, labels []string) ([]CategoryViolation, error) {
	cells, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	domainSet := Categories{Labels: labels}
	var out []CategoryViolation
	for i, v := range cells {
		raw, present := v.Get()
		if present && !domainSet.Contains(raw) {
			out = append(out, CategoryViolation{Row: i, Value: raw})
		}
	}
	return out, nil
}

// SetCategories attaches a category domain to column name. Every present cell
// must already belong to the domain.
func (t *Table) SetCategories(name string, labels []string, ordered bool) error {
	violations, err := t.CategoryViolations(name, labels)
	if err != nil {
		return err
	}
	if len(violations) > 0 {
		return &UnknownCategoryError{Column: name, Allowed: append([]string(nil), labels...), Offenders: violations}
	}
	t.categories[name] = Categories{Labels: append([]string(nil), labels...), Ordered: ordered}
	return nil
}

// Categories returns the declared domain of column name, if any.
func (t *Table) Categories(name string) (Categories, bool) {
	c, ok := t.categories[name]
	return c, ok
}

// OrderedDistinct returns the distinct present values of column name. Values
// follow the declared category order when the column has one and sort
// lexically otherwise.
func (t *Table) OrderedDistinct(name string) ([]string, error) {
	cells, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	var out []string
	for _, v := range cells {
		raw, present := v.Get()
		if !present {
			continue
		}
		if _, ok := seen[raw]; ok {
			continue
		}
		seen[raw] = struct{}{}
		out = append(out, raw)
	}
	if cats, ok := t.categories[name]; ok {
		sort.SliceStable(out, func(i, j int) bool {
			return cats.index(out[i]) < cats.index(out[j])
		})
		return out, nil
	}
	sort.Strings(out)
	return out, nil
}

// DistinctInOrder returns the distinct present values of column name in order
// of first appearance.
func (t *Table) DistinctInOrder(name string) ([]string, error) {
	cells, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	out := []string{}
	for _, v := range cells {
		raw, present := v.Get()
		if !present {
			continue
		}
		if _, ok := seen[raw]; ok {
			continue
		}
		seen[raw] = struct{}{}
		out = append(out, raw)
	}
	return out, nil
}

// Filter returns a new table holding the rows for which keep returns true.
// Column metadata is carried over.
func (t *Table) Filter(keep func(row int) bool) *Table {
	out := &Table{
		columns:    t.Columns(),
		index:      make(map[string]int, len(t.columns)),
		categories: make(map[string]Categories, len(t.categories)),
	}
	for k, v := range t.index {
		out.index[k] = v
	}
	for k, v := range t.categories {
		out.categories[k] = v
	}
	for i, row := range t.rows {
		if keep(i) {
			out.rows = append(out.rows, append([]domain.Value(nil), row...))
		}
	}
	return out
}

// WhereEquals keeps rows whose column name holds exactly value.
func (t *Table) WhereEquals(name, value string) (*Table, error) {
	c, ok := t.index[name]
	if !ok {
		return nil, fmt.Errorf("column %q not found", name)
	}
	return t.Filter(func(i int) bool {
		raw, present := t.rows[i][c].Get()
		return present && raw == value
	}), nil
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	return t.Filter(func(int) bool { return true })
}

// Equal reports whether both tables hold the same columns, cells and
// category metadata.
func (t *Table) Equal(other *Table) bool {
	if len(t.columns) != len(other.columns) || len(t.rows) != len(other.rows) {
		return false
	}
	for i := range t.columns {
		if t.columns[i] != other.columns[i] {
			return false
		}
	}
	for i := range t.rows {
		for j := range t.rows[i] {
			if !t.rows[i][j].Equal(other.rows[i][j]) {
				return false
			}
		}
	}
	if len(t.categories) != len(other.categories) {
		return false
	}
	for k, a := range t.categories {
		b, ok := other.categories[k]
		if !ok || a.Ordered != b.Ordered || len(a.Labels) != len(b.Labels) {
			return false
		}
		for i := range a.Labels {
			if a.Labels[i] != b.Labels[i] {
				return false
			}
		}
	}
	return true
}

// Records renders the table as strings, with absent cells as "".
func (t *Table) Records() [][]string {
	out := make([][]string, len(t.rows))
	for i, row := range t.rows {
		rec := make([]string, len(row))
		for j, v := range row {
			rec[j] = v.String()
		}
		out[i] = rec
	}
	return out
}
