package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTruant(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  ParsedTruant
	}{
		{
			name:  "plain title",
			input: "  Renew   passport ",
			want:  ParsedTruant{Title: "Renew passport", Errors: []string{}},
		},
		{
			name:  "all fields",
			input: "Launch campaign @Projects +vh ~wip https://Example.com/brief",
			want: ParsedTruant{
				Title:    "Launch campaign",
				Category: "Projects",
				Priority: "very-high",
				Status:   "in-progress",
				Link:     "https://example.com/brief",
				Errors:   []string{},
			},
		},
		{
			name:  "quoted category in the middle",
			input: `Call mum @"Family stuff" +2`,
			want: ParsedTruant{
				Title:    "Call mum",
				Category: "Family stuff",
				Priority: "medium",
				Errors:   []string{},
			},
		},
		{
			name:  "invalid priority and status",
			input: "Taxes +someday ~blocked",
			want: ParsedTruant{
				Title: "Taxes",
				Errors: []string{
					"Invalid priority 'someday'. Use: very-high, high, medium, low",
					"Invalid status 'blocked'. Use: new, in-progress, done",
				},
			},
		},
		{
			name:  "plus inside a word is kept",
			input: "Learn C++ ~done",
			want:  ParsedTruant{Title: "Learn C++", Status: "done", Errors: []string{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTruant(tt.input))
		})
	}
}

func TestNormalizePriority(t *testing.T) {
	for input, want := range map[string]string{
		"4": "very-high", "URGENT": "very-high", "high": "high", "3": "high",
		"med": "medium", " 1 ": "low",
	} {
		got, ok := NormalizePriority(input)
		assert.True(t, ok, input)
		assert.Equal(t, want, got, input)
	}

	_, ok := NormalizePriority("5")
	assert.False(t, ok)
}

func TestNormalizeLink(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "", want: ""},
		{input: "https://example.com/a?b=1", want: "https://example.com/a?b=1"},
		{input: "Example.COM/Path", want: "https://example.com/Path"},
		{input: "http://localhost:8080/x", want: "http://localhost:8080/x"},
		{input: "ftp://example.com/file", wantErr: true},
		{input: "notalink", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := NormalizeLink(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
