package domain

import "fmt"

// Income is the ordered outcome category of a census record.
type Income int

const (
	// IncomeAtMost50K is "<=50K", the lower category.
	IncomeAtMost50K Income = iota
	// IncomeAbove50K is ">50K", the upper category.
	IncomeAbove50K
)

const (
	IncomeAtMost50KLabel = "<=50K"
	IncomeAbove50KLabel  = ">50K"
)

// Incomes returns every outcome category in declared order.
func Incomes() []Income {
	return []Income{IncomeAtMost50K, IncomeAbove50K}
}

// IncomeCategories returns the outcome labels in declared order.
func IncomeCategories() []string {
	incomes := Incomes()
	labels := make([]string, len(incomes))
	for i, inc := range incomes {
		labels[i] = inc.String()
	}
	return labels
}

// ParseIncome maps a raw label onto the closed outcome domain.
func ParseIncome(s string) (Income, error) {
	switch s {
	case IncomeAtMost50KLabel:
		return IncomeAtMost50K, nil
	case IncomeAbove50KLabel:
		return IncomeAbove50K, nil
	default:
		return 0, fmt.Errorf("unknown income category %q", s)
	}
}

// String returns the label of the category.
func (i Income) String() string {
	switch i {
	case IncomeAtMost50K:
		return IncomeAtMost50KLabel
	case IncomeAbove50K:
		return IncomeAbove50KLabel
	default:
		return fmt.Sprintf("Income(%d)", int(i))
	}
}

// Compare returns -1, 0 or +1 following the declared category order.
func (i Income) Compare(other Income) int {
	switch {
	case i < other:
		return -1
	case i > other:
		return 1
	default:
		return 0
	}
}

// Less reports whether i sorts before other.
func (i Income) Less(other Income) bool {
	return i.Compare(other) < 0
}
