package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, time.March, 14, 15, 30, 0, 0, time.UTC)

func TestParseDate(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "", want: ""},
		{input: "2024-01-31", want: "2024-01-31"},
		{input: " 15/12/2024 ", want: "2024-12-15"},
		{input: "1/2/2025", want: "2025-02-01"},
		{input: "29/02/2024", want: "2024-02-29"},
		{input: "today", want: "2024-03-14"},
		{input: "TODAY", want: "2024-03-14"},
		{input: "+3d", want: "2024-03-17"},
		{input: "-1d", want: "2024-03-13"},
		{input: "+2w", want: "2024-03-28"},
		{input: "3 days", want: "2024-03-17"},
		{input: "1 week", want: "2024-03-21"},
		{input: "31/02/2024", wantErr: true},
		{input: "15/13/2024", wantErr: true},
		{input: "2024-13-01", wantErr: true},
		{input: "someday maybe", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDate(tt.input, now)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDateNaturalLanguage(t *testing.T) {
	got, err := ParseDate("tomorrow", now)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", got)
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "", want: ""},
		{input: "9:05", want: "09:05"},
		{input: "18:30", want: "18:30"},
		{input: "2024-03-14T09:00:00Z", want: "2024-03-14T09:00:00Z"},
		{input: "24:00", wantErr: true},
		{input: "9.30", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseClock(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseHours(t *testing.T) {
	tests := []struct {
		input   string
		want    float64
		wantErr bool
	}{
		{input: "", want: 0},
		{input: "0", want: 0},
		{input: "1.5", want: 1.5},
		{input: "1e1", want: 10},
		{input: "1h30m", want: 1.5},
		{input: "45m", want: 0.75},
		{input: "-2", wantErr: true},
		{input: "lots", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseHours(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "-", FormatDate("", now))
	assert.Equal(t, "14/03/2024 (today)", FormatDate("2024-03-14", now))
	assert.Equal(t, "13/03/2024 (1 day ago)", FormatDate("2024-03-13", now))
	assert.Equal(t, "17/03/2024 (3 days from now)", FormatDate("2024-03-17", now))
	assert.Equal(t, "14/03/2024 09:00", FormatDate("2024-03-14T09:00:00Z", now))
	assert.Equal(t, "whenever", FormatDate("whenever", now))
}

func TestFormatHours(t *testing.T) {
	assert.Equal(t, "-", FormatHours(nil))
	zero := 0.0
	assert.Equal(t, "0h", FormatHours(&zero))
	h := 1.25
	assert.Equal(t, "1.25h", FormatHours(&h))
}
