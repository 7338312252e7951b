// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package nics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRow(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		months  int
		want    Row
		wantErr error
	}{
		{
			name:   "full year with grouped thousands",
			line:   "Alabama 1,000 1,000 1,000 1,000 1,000 1,000 1,000 1,000 1,000 1,000 1,000 1,500 12,500",
			months: 12,
			want: Row{
				State:  "Alabama",
				Months: []int64{1000, 1000, 1000, 1000, 1000, 1000, 1000, 1000, 1000, 1000, 1000, 1500},
				Total:  12500,
			},
		},
		{
			name:   "partial year",
			line:   "New Hampshire 10 20 30 60",
			months: 3,
			want:   Row{State: "New Hampshire", Months: []int64{10, 20, 30}, Total: 60},
		},
		{
			name:   "extra leading integers ignored",
			line:   "Region 5 Alaska 1 2 3 6",
			months: 3,
			want:   Row{State: "Region", Months: []int64{1, 2, 3}, Total: 6},
		},
		{
			name:   "millions",
			line:   "Kentucky 1,234,567 1,234,567",
			months: 1,
			want:   Row{State: "Kentucky", Months: []int64{1234567}, Total: 1234567},
		},
		{
			name:    "too few tokens",
			line:    "Alabama 10 20 30",
			months:  3,
			wantErr: ErrTooFewTokens,
		},
		{
			name:    "months do not sum to total",
			line:    "Alabama 10 20 30 61",
			months:  3,
			wantErr: ErrTotalMismatch,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRow(tt.line, tt.months)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRowMonthCountOutOfRange(t *testing.T) {
	_, err := ParseRow("Alabama 1 1", 0)
	require.Error(t, err)

	_, err = ParseRow("Alabama 1 1", 13)
	require.Error(t, err)
}
