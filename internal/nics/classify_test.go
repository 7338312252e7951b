// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package nics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsStateRow(t *testing.T) {
	tests := []struct {
		name string
		line string
		want bool
	}{
		{name: "state row", line: "Alabama 41,502 38,214 45,007 120,000 244,723", want: true},
		{name: "multi-word state", line: "District of Columbia 120 98 101 319", want: true},
		{name: "surrounding whitespace", line: "   Texas 1 2 3   ", want: true},
		{name: "empty", line: "", want: false},
		{name: "whitespace only", line: "   \t", want: false},
		{name: "standalone totals label", line: "Totals", want: false},
		{name: "totals row", line: "Totals 2,345,678 2,100,000", want: false},
		{name: "grand total row", line: "Grand Total 2,345,678", want: false},
		{name: "report title", line: "NICS Firearm Checks: Month/Year by State", want: false},
		{name: "background checks title", line: "NICS Firearm Background Checks 2024", want: false},
		{name: "column header", line: "State / Territory Jan Feb Mar Grand Total", want: false},
		{name: "page footer", line: "Page 1 of 28", want: false},
		{name: "note", line: "NOTE: 1 these figures are not checks", want: false},
		{name: "date range header", line: "January 1, 2025 - August 31, 2025", want: false},
		{name: "statistics footnote", line: "These statistics represent 1 check", want: false},
		{name: "disclaimer footnote", line: "They do not represent the number of firearms sold 2", want: false},
		{name: "leading digit", line: "12,345 Alabama 1 2", want: false},
		{name: "leading punctuation", line: "* Alabama 1 2 3", want: false},
		{name: "no digits", line: "Alabama", want: false},
		{
			name: "footnote sentence",
			line: "Figures from 2 offices may include permits and rechecks for each state",
			want: false,
		},
	}
	c := NewClassifier()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.IsStateRow(tt.line))
		})
	}
}

func TestIsStateRowExtraPrefixes(t *testing.T) {
	c := NewClassifier("Guam", "  ", "Virgin Islands")

	assert.False(t, c.IsStateRow("Guam 12 14 26"))
	assert.False(t, c.IsStateRow("Virgin Islands 3 4 7"))
	assert.True(t, c.IsStateRow("Hawaii 12 14 26"), "blank extra prefixes must not reject everything")
}
