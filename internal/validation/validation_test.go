package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const validDoc = `\documentclass{article}
\begin{document}
\section*{Experience}
\begin{itemize}
\item Built a thing at Acme \& Co
\end{itemize}
\end{document}
`

func TestCheckSource_Valid(t *testing.T) {
	violations := CheckSource(validDoc)
	assert.Empty(t, violations)
	assert.False(t, HasErrors(violations))
}

func TestCheckSource_UnbalancedBraces(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unclosed", `\textbf{hello`},
		{"extra close", `hello}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations := CheckSource(tt.content)
			assert.True(t, HasErrors(violations))
			assert.Equal(t, "unbalanced_braces", violations[0].Type)
		})
	}
}

func TestCheckSource_EscapedBracesAreIgnored(t *testing.T) {
	violations := CheckSource(`\begin{document}50\% of \{x\} cases\end{document}`)
	assert.False(t, HasErrors(violations))
}

func TestCheckSource_MismatchedEnvironment(t *testing.T) {
	content := `\begin{document}
\begin{itemize}
\item one
\end{enumerate}
\end{document}
`
	violations := CheckSource(content)
	assert.True(t, HasErrors(violations))
	assert.Equal(t, "mismatched_environment", violations[0].Type)
}

func TestCheckSource_UnclosedEnvironment(t *testing.T) {
	content := `\begin{document}
\begin{itemize}
\item one
\end{document}
`
	violations := CheckSource(content)
	assert.True(t, HasErrors(violations))
}

func TestCheckSource_PlaceholderText(t *testing.T) {
	content := `\begin{document}
Dear [Company Name] team,
\end{document}
`
	violations := CheckSource(content)
	assert.True(t, HasErrors(violations))
	assert.Equal(t, "placeholder_text", violations[0].Type)
	assert.NotNil(t, violations[0].LineNumber)
	assert.Equal(t, 2, *violations[0].LineNumber)
}

func TestCheckSource_EmptyDocument(t *testing.T) {
	violations := CheckSource(`\begin{document}  \end{document}`)
	assert.True(t, HasErrors(violations))
	assert.Equal(t, "empty_document", violations[0].Type)
}

func TestSummary(t *testing.T) {
	violations := []Violation{
		{Details: "first"},
		{Details: "second"},
	}
	assert.Equal(t, "first; second", Summary(violations))
}
