package scoring

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterPriorities(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "drops blank slots",
			input:    []string{"ships fast", "", "  "},
			expected: []string{"ships fast"},
		},
		{
			name:     "all blank",
			input:    []string{"", " ", "\t"},
			expected: []string{},
		},
		{
			name:     "nothing to drop",
			input:    []string{"ownership", "communication"},
			expected: []string{"ownership", "communication"},
		},
		{
			name:     "nil input",
			input:    nil,
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FilterPriorities(tt.input))
		})
	}
}

func TestBuildPrompt(t *testing.T) {
	req := Request{
		FirstName:           "Ada",
		LastName:            "Lovelace",
		CoverLetter:         "I build backend systems.",
		ResumeText:          "Six years of Go.",
		JobTitle:            "Backend Engineer",
		JobDescription:      "Own the ingestion pipeline.",
		MustHaveSkills:      []string{"Go", "PostgreSQL"},
		PreferredBackground: "Startup platform teams",
		NiceToHaveSkills:    []string{"Kubernetes"},
		Priorities:          []string{"ships fast", "", "ownership"},
	}

	prompt := BuildPrompt(req)

	assert.Contains(t, prompt, "Position: Backend Engineer")
	assert.Contains(t, prompt, "Required Skills: Go, PostgreSQL")
	assert.Contains(t, prompt, "Bonus Skills: Kubernetes")
	assert.Contains(t, prompt, "Key Priorities: ships fast, ownership")
	assert.Contains(t, prompt, "Name: Ada Lovelace")
	assert.Contains(t, prompt, "Resume Text: Six years of Go.")

	// The recommendation thresholds render as literal percentages.
	assert.Contains(t, prompt, `"Strongly Consider" (>80%)`)
	assert.NotContains(t, prompt, "%!")
	assert.Equal(t, 1, strings.Count(prompt, "Key Priorities:"))
}
