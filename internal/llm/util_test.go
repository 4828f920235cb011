package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONBlock(t *testing.T) {
	tailored := `{"resume": {"summary": "Go engineer"}}`

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bare json", tailored, tailored},
		{"json fence", "```json\n" + tailored + "\n```", tailored},
		{"anonymous fence", "```\n" + tailored + "\n```", tailored},
		{"other language tag", "```javascript\n" + tailored + "\n```", tailored},
		{"surrounding whitespace", "\n  " + tailored + "  \n", tailored},
		{"fence without closing", "```json\n" + tailored, tailored},
		{"single line fence", "```json" + tailored + "```", tailored},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanJSONBlock(tt.input))
		})
	}
}

func TestCleanJSONBlock_KeepsFirstLineOfUnfencedJSON(t *testing.T) {
	// A brace on the first line means there is no language tag to drop.
	input := "```\n{\"a\": 1,\n\"b\": 2}\n```"
	assert.Equal(t, "{\"a\": 1,\n\"b\": 2}", CleanJSONBlock(input))
}
