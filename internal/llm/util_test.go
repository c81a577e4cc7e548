package llm

import (
	"testing"
)

func TestCleanJSONBlock_MarkdownCodeBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "json code block",
			input:    "```json\n{\"matchScore\": 85}\n```",
			expected: `{"matchScore": 85}`,
		},
		{
			name:     "generic code block",
			input:    "```\n{\"matchScore\": 85}\n```",
			expected: `{"matchScore": 85}`,
		},
		{
			name:     "code block with language identifier",
			input:    "```javascript\n{\"matchScore\": 85}\n```",
			expected: `{"matchScore": 85}`,
		},
		{
			name:     "plain JSON",
			input:    `{"matchScore": 85}`,
			expected: `{"matchScore": 85}`,
		},
		{
			name:     "surrounding whitespace",
			input:    "  \n```json\n{\"matchScore\": 85}\n```\n  ",
			expected: `{"matchScore": 85}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CleanJSONBlock(tt.input)
			if result != tt.expected {
				t.Errorf("CleanJSONBlock() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestCleanJSONBlock_MultilineJSON(t *testing.T) {
	input := "```json\n{\n  \"matchScore\": 85,\n  \"recommendation\": \"Consider\"\n}\n```"
	expected := "{\n  \"matchScore\": 85,\n  \"recommendation\": \"Consider\"\n}"

	result := CleanJSONBlock(input)
	if result != expected {
		t.Errorf("CleanJSONBlock() = %q, want %q", result, expected)
	}
}

func TestCleanJSONBlock_NonJSONText(t *testing.T) {
	input := "I was unable to evaluate this candidate."
	result := CleanJSONBlock(input)
	if result != input {
		t.Errorf("CleanJSONBlock() = %q, want unchanged input", result)
	}
}
