package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAgeBinLabel(t *testing.T) {
	tests := []struct {
		name   string
		age    int
		label  string
		binned bool
	}{
		{name: "below lowest edge", age: 16, binned: false},
		{name: "lowest edge is inclusive", age: 17, label: "17-20", binned: true},
		{name: "inside first bin", age: 19, label: "17-20", binned: true},
		{name: "upper edge is exclusive", age: 20, label: "21-30", binned: true},
		{name: "middle bin", age: 45, label: "41-50", binned: true},
		{name: "last binned age", age: 89, label: "81-90", binned: true},
		{name: "top edge is out of domain", age: 90, binned: false},
		{name: "far above", age: 120, binned: false},
		{name: "negative", age: -1, binned: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			label, ok := AgeBinLabel(tt.age)
			assert.Equal(t, tt.binned, ok)
			assert.Equal(t, tt.label, label)
		})
	}
}

func TestAgeBins(t *testing.T) {
	bins := AgeBins()
	require.Len(t, bins, 8)
	require.Len(t, AgeBinEdges, len(AgeBinLabels)+1)

	for i, b := range bins {
		assert.Equal(t, AgeBinEdges[i], b.Lower)
		assert.Equal(t, AgeBinEdges[i+1], b.Upper)
		assert.Equal(t, AgeBinLabels[i], b.Label)
		assert.True(t, b.Contains(b.Lower))
		assert.False(t, b.Contains(b.Upper))
	}
}

func TestGroupEducation(t *testing.T) {
	tests := []struct {
		raw   string
		group string
		ok    bool
	}{
		{"Preschool", EducationPreschool, true},
		{"1st-4th", EducationPrimary, true},
		{"5th-6th", EducationPrimary, true},
		{"7th-8th", EducationPrimary, true},
		{"9th", EducationSecondary, true},
		{"12th", EducationSecondary, true},
		{"HS-grad", EducationHSGraduate, true},
		{"Some-college", EducationSomeCollege, true},
		{"Assoc-acdm", EducationAssociate, true},
		{"Assoc-voc", EducationAssociate, true},
		{"Bachelors", EducationBachelors, true},
		{"Masters", EducationMasters, true},
		{"Prof-school", EducationProfSchool, true},
		{"Doctorate", EducationDoctorate, true},
		{"Unknown", "", false},
		{"masters", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			group, ok := GroupEducation(tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.group, group)
		})
	}
}

func TestEducationMappingCoversGroupOrder(t *testing.T) {
	assert.Len(t, EducationMapping, 16)

	order := EducationGroupOrder()
	declared := make(map[string]bool, len(order))
	for _, g := range order {
		declared[g] = true
	}
	used := make(map[string]bool)
	for raw, g := range EducationMapping {
		assert.True(t, declared[g], "group %q of %q is not in the display order", g, raw)
		used[g] = true
	}
	assert.Len(t, used, len(order), "every group in the display order is reachable")
}
