package dataprocessing

import (
	"fmt"
	"strings"
)

// PivotRow is one group of a pivot: a value per group column and a count per
// pivot column.
type PivotRow struct {
	Key    []string `json:"key"`
	Counts []int    `json:"counts"`
}

// Total returns the sum of the row's counts.
func (r PivotRow) Total() int {
	total := 0
	for _, n := range r.Counts {
		total += n
	}
	return total
}

// Pivot holds grouped counts in wide form: one row per group key, one column
// per distinct value of the counted column.
type Pivot struct {
	GroupColumns []string   `json:"group_columns"`
	ValueColumn  string     `json:"value_column"`
	Columns      []string   `json:"columns"`
	Rows         []PivotRow `json:"rows"`
}

// Count returns the count for the group key and pivot column, and whether both
// exist.
func (p *Pivot) Count(key []string, column string) (int, bool) {
	c := -1
	for i, name := range p.Columns {
		if name == column {
			c = i
			break
		}
	}
	if c < 0 {
		return 0, false
	}
	for _, row := range p.Rows {
		if equalKeys(row.Key, key) {
			return row.Counts[c], true
		}
	}
	return 0, false
}

// Series returns the counts of one pivot column across every row, in row order.
func (p *Pivot) Series(column string) ([]int, error) {
	for c, name := range p.Columns {
		if name != column {
			continue
		}
		out := make([]int, len(p.Rows))
		for i, row := range p.Rows {
			out[i] = row.Counts[c]
		}
		return out, nil
	}
	return nil, fmt.Errorf("pivot has no column %q", column)
}

// Labels joins each row key into a single category label.
func (p *Pivot) Labels(sep string) []string {
	out := make([]string, len(p.Rows))
	for i, row := range p.Rows {
		out[i] = strings.Join(row.Key, sep)
	}
	return out
}

// Header returns the group column names followed by the pivot columns.
func (p *Pivot) Header() []string {
	return append(append([]string(nil), p.GroupColumns...), p.Columns...)
}

// Records renders the pivot rows as strings, aligned with Header.
func (p *Pivot) Records() [][]string {
	out := make([][]string, len(p.Rows))
	for i, row := range p.Rows {
		rec := append([]string(nil), row.Key...)
		for _, n := range row.Counts {
			rec = append(rec, fmt.Sprintf("%d", n))
		}
		out[i] = rec
	}
	return out
}

// PivotCounts counts rows by every combination of groupColumns and reshapes the
// counts so each value of valueColumn becomes a column.
//
// Group keys are the cartesian product of each group column's domain, and the
// pivot columns are the value column's domain. A column's domain is its
// declared categories when it has them, otherwise its observed values in
// sorted order. Combinations without rows count zero. Rows with an absent
// group or value are left out.
func PivotCounts(t *Table, groupColumns []string, valueColumn string) (*Pivot, error) {
	const step = "pivot_counts"
	if len(groupColumns) == 0 {
		return nil, &ConfigError{Step: step, Column: valueColumn, Message: "no group columns"}
	}

	groupIdx := make([]int, len(groupColumns))
	domains := make([][]string, len(groupColumns))
	for i, col := range groupColumns {
		c, ok := t.index[col]
		if !ok {
			return nil, missingColumn(step, col)
		}
		groupIdx[i] = c
		d, err := columnDomain(t, col)
		if err != nil {
			return nil, err
		}
		domains[i] = d
	}

	valueIdx, ok := t.index[valueColumn]
	if !ok {
		return nil, missingColumn(step, valueColumn)
	}
	values, err := columnDomain(t, valueColumn)
	if err != nil {
		return nil, err
	}
	valuePos := make(map[string]int, len(values))
	for i, v := range values {
		valuePos[v] = i
	}

	keys := cartesian(domains)
	pivot := &Pivot{
		GroupColumns: append([]string(nil), groupColumns...),
		ValueColumn:  valueColumn,
		Columns:      values,
		Rows:         make([]PivotRow, len(keys)),
	}
	rowPos := make(map[string]int, len(keys))
	for i, key := range keys {
		pivot.Rows[i] = PivotRow{Key: key, Counts: make([]int, len(values))}
		rowPos[joinKey(key)] = i
	}

	key := make([]string, len(groupColumns))
rows:
	for _, row := range t.rows {
		for i, c := range groupIdx {
			raw, present := row[c].Get()
			if !present {
				continue rows
			}
			key[i] = raw
		}
		raw, present := row[valueIdx].Get()
		if !present {
			continue
		}
		r, okRow := rowPos[joinKey(key)]
		v, okVal := valuePos[raw]
		if !okRow || !okVal {
			continue
		}
		pivot.Rows[r].Counts[v]++
	}

	return pivot, nil
}

// columnDomain returns the declared categories of a column, or its observed
// values in sorted order.
func columnDomain(t *Table, name string) ([]string, error) {
	if cats, ok := t.Categories(name); ok {
		return append([]string(nil), cats.Labels...), nil
	}
	return t.OrderedDistinct(name)
}

func cartesian(domains [][]string) [][]string {
	out := [][]string{{}}
	for _, d := range domains {
		next := make([][]string, 0, len(out)*len(d))
		for _, prefix := range out {
			for _, v := range d {
				key := append(append([]string(nil), prefix...), v)
				next = append(next, key)
			}
		}
		out = next
	}
	return out
}

// joinKey builds a map key from group values; the unit separator cannot occur
// in parsed census fields.
func joinKey(key []string) string {
	return strings.Join(key, "\x1f")
}

func equalKeys(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
