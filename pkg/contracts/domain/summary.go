package domain

// ValueCount is the number of rows holding Value in some column.
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// SummaryStats holds the scalar aggregates reported after preparation.
type SummaryStats struct {
	Rows                    int          `json:"rows"`
	MinAge                  int          `json:"min_age"`
	MaxAge                  int          `json:"max_age"`
	AgeCounts               []ValueCount `json:"age_counts"`
	// IncomeCounts follows the income category order.
	IncomeCounts            []ValueCount `json:"income_counts,omitempty"`
	DistinctNativeCountries int          `json:"distinct_native_countries"`
	DistinctEducationLevels int          `json:"distinct_education_levels"`
}
