package dataprocessing

import (
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"censuscli/internal/shared/testutil"
)

func TestParseAttributeNames(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "comment and class lines are skipped",
			text: "age: continuous.\n| this is a comment\n>50K, <=50K.\n",
			want: []string{"age"},
		},
		{
			name: "name is trimmed text before first colon",
			text: "  hours-per-week : continuous: really\n",
			want: []string{"hours-per-week"},
		},
		{
			name: "lines without a colon are skipped",
			text: "age continuous\n\nsex: Female, Male.\n",
			want: []string{"sex"},
		},
		{
			name: "pipe anywhere excludes the line",
			text: "age: continuous. | note\n",
			want: []string{},
		},
		{
			name: "greater-than anywhere excludes the line",
			text: "capital-gain: continuous, >0 when present\n",
			want: []string{},
		},
		{
			name: "duplicates and empty names are kept",
			text: "age: a\n: b\nage: c\n",
			want: []string{"age", "", "age"},
		},
		{
			name: "crlf line endings",
			text: "age: continuous.\r\nsex: Female, Male.\r\n",
			want: []string{"age", "sex"},
		},
		{
			name: "declarations after a very long line are kept",
			text: "age: continuous.\n" + strings.Repeat("z", 2<<20) + "\nsex: Female, Male.\n",
			want: []string{"age", "sex"},
		},
		{
			name: "empty text",
			text: "",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseAttributeNames(tt.text))
		})
	}
}

func TestValidateAttributeNames(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		reserved []string
		wantLine int
		wantName string
		reason   string
	}{
		{
			name: "valid description",
			text: testutil.CensusNames,
		},
		{
			name:     "empty name",
			text:     "age: continuous.\n : Private.\n",
			wantLine: 2,
			reason:   "empty attribute name",
		},
		{
			name:     "duplicate name",
			text:     "age: continuous.\n| comment\nage: again.\n",
			wantLine: 3,
			wantName: "age",
			reason:   "duplicate attribute name, first declared on line 1",
		},
		{
			name:     "reserved name",
			text:     "age: continuous.\nincome: <=50K.\n",
			reserved: []string{IncomeColumn},
			wantLine: 2,
			wantName: "income",
			reason:   "reserved attribute name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAttributeNames(tt.text, tt.reserved...)
			if tt.reason == "" {
				assert.NoError(t, err)
				return
			}
			var perr *SchemaParseError
			require.True(t, errors.As(err, &perr), "got %v", err)
			assert.Equal(t, tt.wantLine, perr.Line)
			assert.Equal(t, tt.wantName, perr.Name)
			assert.Equal(t, tt.reason, perr.Reason)
			assert.Contains(t, perr.Error(), "line")
		})
	}
}

func TestLoadCatalog(t *testing.T) {
	t.Run("appends income", func(t *testing.T) {
		catalog, err := LoadCatalog(strings.NewReader(testutil.CensusNames), true)
		require.NoError(t, err)
		assert.Equal(t, testutil.CensusColumns, []string(catalog))
		assert.Equal(t, IncomeColumn, catalog[len(catalog)-1])
	})

	t.Run("strict rejects duplicates", func(t *testing.T) {
		_, err := LoadCatalog(strings.NewReader("age: a\nage: b\n"), true)
		var perr *SchemaParseError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, 2, perr.Line)
	})

	t.Run("permissive keeps duplicates", func(t *testing.T) {
		catalog, err := LoadCatalog(strings.NewReader("age: a\nage: b\n"), false)
		require.NoError(t, err)
		assert.Equal(t, Catalog{"age", "age", IncomeColumn}, catalog)
	})

	t.Run("long description lines keep line numbers", func(t *testing.T) {
		text := "age: a\n| " + strings.Repeat("x", 2<<20) + "\nage: b\n"
		_, err := LoadCatalog(strings.NewReader(text), true)
		var perr *SchemaParseError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, 3, perr.Line)
	})

	t.Run("read failure", func(t *testing.T) {
		_, err := LoadCatalog(iotest.ErrReader(errors.New("disk gone")), true)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "disk gone")
	})
}
