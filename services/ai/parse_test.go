package ai

import (
	"errors"
	"reflect"
	"testing"
)

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "no fences",
			input:    `["lofi rain", "coffee shop jazz"]`,
			expected: `["lofi rain", "coffee shop jazz"]`,
		},
		{
			name:     "json fence",
			input:    "```json\n[\"lofi rain\"]\n```",
			expected: `["lofi rain"]`,
		},
		{
			name:     "plain fence",
			input:    "```\n[\"lofi rain\"]\n```",
			expected: `["lofi rain"]`,
		},
		{
			name:     "surrounding whitespace",
			input:    "  \n[\"a\", \"b\"]\n  ",
			expected: `["a", "b"]`,
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := StripCodeFences(tt.input)
			if result != tt.expected {
				t.Errorf("StripCodeFences(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestStripCodeFencesIsIdempotent(t *testing.T) {
	input := "```json\n[\"lofi rain\", \"chill piano\"]\n```"

	once := StripCodeFences(input)
	twice := StripCodeFences(once)

	if once != twice {
		t.Errorf("Stripping twice changed the result: %q vs %q", once, twice)
	}
}

func TestParseQueriesFencedEqualsUnfenced(t *testing.T) {
	unfenced := `["lofi rain", "coffee shop jazz", "rainy day acoustic", "chill piano", "soft jazz rain"]`
	fenced := "```json\n" + unfenced + "\n```"

	fromUnfenced, err := ParseQueries(unfenced)
	if err != nil {
		t.Fatalf("ParseQueries(unfenced) failed: %v", err)
	}

	fromFenced, err := ParseQueries(fenced)
	if err != nil {
		t.Fatalf("ParseQueries(fenced) failed: %v", err)
	}

	if !reflect.DeepEqual(fromUnfenced, fromFenced) {
		t.Errorf("Fenced and unfenced parses differ: %v vs %v", fromFenced, fromUnfenced)
	}
}

func TestParseQueries(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
		wantErr  bool
	}{
		{
			name:     "five queries",
			input:    `["lofi rain", "coffee shop jazz", "rainy day acoustic", "chill piano", "soft jazz rain"]`,
			expected: []string{"lofi rain", "coffee shop jazz", "rainy day acoustic", "chill piano", "soft jazz rain"},
		},
		{
			name:     "three queries is still authoritative",
			input:    `["a", "b", "c"]`,
			expected: []string{"a", "b", "c"},
		},
		{
			name:    "array padded with prose",
			input:   `Here you go: ["lofi rain", "chill piano"] Enjoy!`,
			wantErr: true,
		},
		{
			name:     "blank entries kept verbatim",
			input:    `["lofi rain", "", "  ", "chill piano"]`,
			expected: []string{"lofi rain", "", "  ", "chill piano"},
		},
		{
			name:     "empty array is valid",
			input:    `[]`,
			expected: []string{},
		},
		{
			name:    "plain prose",
			input:   "I cannot help with that request.",
			wantErr: true,
		},
		{
			name:    "object wrapping an array",
			input:   `{"queries": ["a", "b"]}`,
			wantErr: true,
		},
		{
			name:    "array of objects",
			input:   `[{"query": "lofi rain"}]`,
			wantErr: true,
		},
		{
			name:    "truncated array",
			input:   `["lofi rain", "chill`,
			wantErr: true,
		},
		{
			name:    "empty input",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseQueries(tt.input)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseQueries(%q) expected error, got %v", tt.input, result)
				}
				if !errors.Is(err, ErrBadResponse) {
					t.Errorf("Expected ErrBadResponse, got %v", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("ParseQueries(%q) failed: %v", tt.input, err)
			}
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("ParseQueries(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}
