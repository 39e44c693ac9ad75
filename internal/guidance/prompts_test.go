package guidance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "no fence", input: ` {"a":1} `, expected: `{"a":1}`},
		{name: "json fence", input: "```json\n{\"a\":1}\n```", expected: `{"a":1}`},
		{name: "bare fence", input: "```\n{\"a\":1}\n```\n", expected: `{"a":1}`},
		{name: "single line fence", input: "```{\"a\":1}```", expected: `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, stripCodeFence(tt.input))
		})
	}
}

func TestParseCareerAdviceDropsBlankSteps(t *testing.T) {
	advice, err := parseCareerAdvice(`{"title":" Nurse ","description":"Care for people.","steps":["", "Volunteer", "  "]}`)

	assert.NoError(t, err)
	assert.Equal(t, "Nurse", advice.Title)
	assert.Equal(t, []string{"Volunteer"}, advice.Steps)
}
