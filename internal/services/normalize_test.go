package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTimestamp(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
		{
			name:     "whitespace only",
			input:    "   ",
			expected: "",
		},
		{
			name:     "plain seconds",
			input:    "750",
			expected: "00:12:30",
		},
		{
			name:     "seconds over an hour",
			input:    "3725",
			expected: "01:02:05",
		},
		{
			name:     "mm:ss",
			input:    "12:30",
			expected: "00:12:30",
		},
		{
			name:     "hh:mm:ss",
			input:    "01:02:03",
			expected: "01:02:03",
		},
		{
			name:     "single digit parts are padded",
			input:    "1:2:3",
			expected: "01:02:03",
		},
		{
			name:     "extra leading parts are dropped",
			input:    "1:02:03:04",
			expected: "02:03:04",
		},
		{
			name:     "surrounding whitespace",
			input:    " 12:30 ",
			expected: "00:12:30",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeTimestamp(tt.input))
		})
	}
}

func TestNormalizeTags(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "nil",
			input:    nil,
			expected: nil,
		},
		{
			name:     "trims and drops empties",
			input:    []string{" biology ", "", "  "},
			expected: []string{"biology"},
		},
		{
			name:     "case-insensitive dedup keeps first casing",
			input:    []string{"Bio", "bio", "BIO", "chem"},
			expected: []string{"Bio", "chem"},
		},
		{
			name:     "order preserved",
			input:    []string{"exam", "biology", "exam"},
			expected: []string{"exam", "biology"},
		},
		{
			name:     "all empty collapses to nil",
			input:    []string{"", " "},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeTags(tt.input))
		})
	}
}

func TestHarvestWords(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{
			name:     "empty text",
			text:     "",
			expected: nil,
		},
		{
			name:     "lowercases and dedups preserving order",
			text:     "Entropy always wins; entropy never rests.",
			expected: []string{"entropy", "always", "wins", "never", "rests"},
		},
		{
			name:     "stop words and short tokens are dropped",
			text:     "the cat is on a mat",
			expected: []string{"cat", "mat"},
		},
		{
			name:     "hyphenated terms survive",
			text:     "state-of-the-art methods",
			expected: []string{"state-of-the-art", "methods"},
		},
		{
			name:     "numbers are ignored",
			text:     "chapter 42 covers osmosis",
			expected: []string{"chapter", "covers", "osmosis"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HarvestWords(tt.text))
		})
	}
}
