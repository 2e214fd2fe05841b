package dataprocessing

import (
	"fmt"
	"sort"
	"strconv"

	"censuscli/pkg/contracts/domain"
)

// Summarize computes the scalar statistics reported for a prepared table:
// the age range, the age value counts and the number of distinct native
// countries and education levels.
func Summarize(t *Table) (*domain.SummaryStats, error) {
	ages, ok, err := t.IntColumn(AgeColumn)
	if err != nil {
		return nil, err
	}

	stats := &domain.SummaryStats{Rows: t.Len()}
	seen := false
	for i, age := range ages {
		if !ok[i] {
			continue
		}
		if !seen || age < stats.MinAge {
			stats.MinAge = age
		}
		if !seen || age > stats.MaxAge {
			stats.MaxAge = age
		}
		seen = true
	}

	if stats.AgeCounts, err = ValueCounts(t, AgeColumn); err != nil {
		return nil, err
	}
	if t.HasColumn(IncomeColumn) {
		if stats.IncomeCounts, err = IncomeCounts(t); err != nil {
			return nil, err
		}
	}
	if stats.DistinctNativeCountries, err = CountDistinct(t, NativeCountryColumn); err != nil {
		return nil, err
	}
	if stats.DistinctEducationLevels, err = CountDistinct(t, EducationColumn); err != nil {
		return nil, err
	}
	return stats, nil
}

// ValueCounts counts the present values of a column, most frequent first.
// Ties sort by value, numerically when both values are integers.
func ValueCounts(t *Table, column string) ([]domain.ValueCount, error) {
	cells, err := t.Column(column)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, v := range cells {
		if raw, present := v.Get(); present {
			counts[raw]++
		}
	}

	out := make([]domain.ValueCount, 0, len(counts))
	for v, n := range counts {
		out = append(out, domain.ValueCount{Value: v, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return lessValue(out[i].Value, out[j].Value)
	})
	return out, nil
}

// IncomeCounts counts the present income labels in income category order.
func IncomeCounts(t *Table) ([]domain.ValueCount, error) {
	counts := make(map[domain.Income]int)
	for i := 0; i < t.Len(); i++ {
		inc, present, err := t.Income(i)
		if err != nil {
			return nil, err
		}
		if present {
			counts[inc]++
		}
	}

	incomes := make([]domain.Income, 0, len(counts))
	for inc := range counts {
		incomes = append(incomes, inc)
	}
	sort.Slice(incomes, func(i, j int) bool { return incomes[i].Less(incomes[j]) })

	out := make([]domain.ValueCount, len(incomes))
	for i, inc := range incomes {
		out[i] = domain.ValueCount{Value: inc.String(), Count: counts[inc]}
	}
	return out, nil
}

// CountDistinct returns the number of distinct present values in a column.
func CountDistinct(t *Table, column string) (int, error) {
	values, err := t.OrderedDistinct(column)
	if err != nil {
		return 0, fmt.Errorf("count distinct: %w", err)
	}
	return len(values), nil
}

func lessValue(a, b string) bool {
	x, errA := strconv.Atoi(a)
	y, errB := strconv.Atoi(b)
	if errA == nil && errB == nil {
		return x < y
	}
	return a < b
}
